// Package playwright reads Playwright JSON reports and runs the
// Playwright CLI to produce them.
package playwright

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StatusPassed is the expected status of tests enabled in code.
const StatusPassed = "passed"

// Report is the top-level structure of the JSON reporter output. Only
// the fields consumed by the collector are decoded.
type Report struct {
	Suites []Suite     `json:"suites"`
	Errors []TestError `json:"errors,omitempty"`
}

// Suite is a describe block or a file-level suite. Suites nest to
// arbitrary depth.
type Suite struct {
	Title  string  `json:"title"`
	File   string  `json:"file"`
	Line   int     `json:"line"`
	Column int     `json:"column"`
	Specs  []Spec  `json:"specs"`
	Suites []Suite `json:"suites,omitempty"`
}

// Spec is a single test declaration.
type Spec struct {
	Title  string   `json:"title"`
	ID     string   `json:"id"`
	File   string   `json:"file"`
	Line   int      `json:"line"`
	Column int      `json:"column"`
	OK     bool     `json:"ok"`
	Tags   []string `json:"tags,omitempty"`
	Tests  []Test   `json:"tests"`
}

// ExpectedStatus returns the expected status of the spec's first test,
// or StatusPassed when the spec has no tests.
func (s Spec) ExpectedStatus() string {
	if len(s.Tests) == 0 || s.Tests[0].ExpectedStatus == "" {
		return StatusPassed
	}
	return s.Tests[0].ExpectedStatus
}

// Test is one run configuration (project) of a spec.
type Test struct {
	ExpectedStatus string       `json:"expectedStatus"`
	ProjectName    string       `json:"projectName,omitempty"`
	ProjectID      string       `json:"projectId,omitempty"`
	Status         string       `json:"status,omitempty"`
	Timeout        int          `json:"timeout,omitempty"`
	Annotations    []Annotation `json:"annotations,omitempty"`
}

// Annotation is a test annotation such as skip or fixme.
type Annotation struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// TestError is a top-level error reported by the runner.
type TestError struct {
	Message string `json:"message"`
}

// ParseReport decodes a JSON report from r.
func ParseReport(r io.Reader) (*Report, error) {
	var rpt Report
	if err := json.NewDecoder(r).Decode(&rpt); err != nil {
		return nil, fmt.Errorf("decoding playwright report: %w", err)
	}
	return &rpt, nil
}

// LoadReport reads and decodes the JSON report at path.
func LoadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening playwright report: %w", err)
	}
	defer f.Close()

	rpt, err := ParseReport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rpt, nil
}
