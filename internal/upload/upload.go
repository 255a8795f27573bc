// Package upload sends a collected catalogue to a spec-box server.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/unbound-force/spec-collector/internal/report"
	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

// DefaultTimeout bounds a whole upload request.
const DefaultTimeout = 60 * time.Second

// maxErrorBody is the number of response bytes kept in an APIError.
const maxErrorBody = 512

// Client uploads suites to the catalogue server at Host.
type Client struct {
	// Host is the server base URL, e.g. "https://specs.example.com".
	Host string

	// HTTPClient sends the requests. Nil uses a client with
	// DefaultTimeout.
	HTTPClient *http.Client
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Endpoint   string

	// Body holds at most the first 512 bytes of the response.
	Body string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("upload failed: status %d from %s", e.StatusCode, e.Endpoint)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Endpoint returns the import URL for project.
func (c *Client) Endpoint(project string) (string, error) {
	base, err := url.Parse(strings.TrimRight(c.Host, "/"))
	if err != nil {
		return "", fmt.Errorf("parsing host: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("host %q is not an absolute URL", c.Host)
	}
	return base.JoinPath("api", "projects", project, "import").String(), nil
}

// Upload posts the suite as JSON to the project's import endpoint.
func (c *Client) Upload(ctx context.Context, project string, suite taxonomy.Suite) error {
	if project == "" {
		return fmt.Errorf("project is required")
	}
	endpoint, err := c.Endpoint(project)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := report.WriteJSON(&body, suite); err != nil {
		return fmt.Errorf("encoding suite: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}
