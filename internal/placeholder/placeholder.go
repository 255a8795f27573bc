// Package placeholder reads and writes the YAML list of empty tests:
// tests that are declared in a spec file but intentionally left
// unimplemented.
//
// The file is a YAML sequence of entries:
//
//	- testName: handles timeout
//	  fileName: auth/login.spec.ts
//	  details:
//	    tag: ["@slow"]
//
// Writers append one single-entry sequence per test, so a file is the
// concatenation of many sequences, which YAML reads back as one.
package placeholder

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the conventional location of the empty-test list.
const DefaultFile = "specBoxTests.yml"

// Test is one empty test entry.
type Test struct {
	// TestName is the test title.
	TestName string `yaml:"testName" json:"testName"`

	// FileName is the spec file that declared the test. Entries
	// without it are grouped under the empty path.
	FileName string `yaml:"fileName,omitempty" json:"fileName,omitempty"`

	// Details is the free-form details payload passed by the test.
	Details map[string]any `yaml:"details,omitempty" json:"details,omitempty"`
}

// Parse decodes every YAML document in r and concatenates their
// sequences. An empty stream yields no tests.
func Parse(r io.Reader) ([]Test, error) {
	dec := yaml.NewDecoder(r)

	var tests []Test
	for {
		var doc []Test
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return tests, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding empty tests: %w", err)
		}
		tests = append(tests, doc...)
	}
}

// Load reads the empty-test list at path. A missing file is not an
// error and yields no tests.
func Load(path string) ([]Test, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening empty tests file: %w", err)
	}
	defer f.Close()

	tests, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tests, nil
}

// Append adds t to the list at path, creating the file if needed.
func Append(path string, t Test) error {
	if t.TestName == "" {
		return fmt.Errorf("empty test name")
	}

	out, err := yaml.Marshal([]Test{t})
	if err != nil {
		return fmt.Errorf("encoding empty test: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening empty tests file: %w", err)
	}
	if _, err := f.Write(out); err != nil {
		f.Close()
		return fmt.Errorf("writing empty test: %w", err)
	}
	return f.Close()
}
