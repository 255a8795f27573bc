// Package report writes a collected catalogue as JSON for the
// catalogue server and as a styled text summary for terminals.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

// WriteJSON writes the suite as indented JSON to the writer.
func WriteJSON(w io.Writer, suite taxonomy.Suite) error {
	suite = normalize(suite)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(suite)
}

// WriteFile writes the suite as JSON to path, creating parent
// directories as needed.
func WriteFile(path string, suite taxonomy.Suite) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := WriteJSON(f, suite); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// normalize replaces nil slices so they encode as [] instead of null.
func normalize(s taxonomy.Suite) taxonomy.Suite {
	if s.Features == nil {
		s.Features = []taxonomy.Feature{}
	}
	if s.Attributes == nil {
		s.Attributes = []taxonomy.ProjectAttribute{}
	}
	if s.Trees == nil {
		s.Trees = []taxonomy.Tree{}
	}
	return s
}
