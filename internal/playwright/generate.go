package playwright

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GenerateOptions configures a Playwright list run.
type GenerateOptions struct {
	// ConfigPath is passed to --config when non-empty.
	ConfigPath string

	// Dir is the working directory of the runner. Empty means the
	// current directory.
	Dir string

	// Command is the launcher binary. Defaults to "npx".
	Command string

	// Args precede the Playwright arguments. Defaults to
	// ["playwright"] so that the command line is
	// "npx playwright test --list --reporter=json".
	Args []string
}

// Generate runs Playwright in list mode with the JSON reporter and
// decodes the report it prints on stdout. Tests are listed, not
// executed.
func Generate(ctx context.Context, opts GenerateOptions) (*Report, error) {
	name := opts.Command
	if name == "" {
		name = "npx"
	}
	args := opts.Args
	if args == nil {
		args = []string{"playwright"}
	}
	args = append(append([]string{}, args...), "test", "--list", "--reporter=json")
	if opts.ConfigPath != "" {
		args = append(args, "--config", opts.ConfigPath)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s failed: %w\n%s",
			name, strings.Join(args, " "), err, stderr.String())
	}

	rpt, err := ParseReport(&stdout)
	if err != nil {
		return nil, fmt.Errorf("reading output of %s: %w", name, err)
	}
	return rpt, nil
}
