package playwright

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const sampleReport = `{
  "config": {"rootDir": "/repo/tests"},
  "suites": [
    {
      "title": "auth/login.spec.ts",
      "file": "auth/login.spec.ts",
      "line": 0,
      "column": 0,
      "specs": [
        {
          "title": "succeeds",
          "ok": true,
          "tags": [],
          "id": "a1",
          "file": "auth/login.spec.ts",
          "line": 3,
          "column": 5,
          "tests": [
            {"timeout": 30000, "annotations": [], "expectedStatus": "passed",
             "projectName": "chromium", "projectId": "chromium", "results": [], "status": "expected"}
          ]
        }
      ],
      "suites": [
        {
          "title": "errors",
          "file": "auth/login.spec.ts",
          "line": 10,
          "column": 6,
          "specs": [
            {
              "title": "rejects bad password",
              "ok": true,
              "id": "a2",
              "file": "auth/login.spec.ts",
              "line": 11,
              "column": 7,
              "tests": [
                {"expectedStatus": "skipped", "annotations": [{"type": "skip"}], "status": "skipped"}
              ]
            }
          ]
        }
      ]
    }
  ],
  "errors": []
}`

func TestParseReport_Structure(t *testing.T) {
	rpt, err := ParseReport(strings.NewReader(sampleReport))
	if err != nil {
		t.Fatalf("ParseReport failed: %v", err)
	}

	if len(rpt.Suites) != 1 {
		t.Fatalf("expected 1 root suite, got %d", len(rpt.Suites))
	}
	root := rpt.Suites[0]
	if root.File != "auth/login.spec.ts" {
		t.Errorf("root suite file = %q", root.File)
	}
	if len(root.Specs) != 1 || root.Specs[0].Title != "succeeds" {
		t.Errorf("unexpected root specs: %+v", root.Specs)
	}
	if len(root.Suites) != 1 || root.Suites[0].Title != "errors" {
		t.Fatalf("unexpected nested suites: %+v", root.Suites)
	}
	nested := root.Suites[0].Specs[0]
	if nested.ExpectedStatus() != "skipped" {
		t.Errorf("nested expected status = %q, want skipped", nested.ExpectedStatus())
	}
	if len(nested.Tests[0].Annotations) != 1 || nested.Tests[0].Annotations[0].Type != "skip" {
		t.Errorf("annotations not decoded: %+v", nested.Tests[0].Annotations)
	}
}

func TestParseReport_Invalid(t *testing.T) {
	if _, err := ParseReport(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSpec_ExpectedStatusDefaults(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"no_tests", Spec{}, StatusPassed},
		{"empty_status", Spec{Tests: []Test{{}}}, StatusPassed},
		{"first_wins", Spec{Tests: []Test{{ExpectedStatus: "failed"}, {ExpectedStatus: "passed"}}}, "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.ExpectedStatus(); got != tt.want {
				t.Errorf("ExpectedStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte(sampleReport), 0o644); err != nil {
		t.Fatal(err)
	}

	rpt, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if len(rpt.Suites) != 1 {
		t.Errorf("expected 1 suite, got %d", len(rpt.Suites))
	}
}

func TestLoadReport_Missing(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing report")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestGenerate_PassesListArguments(t *testing.T) {
	requireShell(t)

	script := `printf '{"suites":[{"title":"%s","file":"a.spec.ts","specs":[]}]}' "$*"`
	rpt, err := Generate(context.Background(), GenerateOptions{
		Command:    "sh",
		Args:       []string{"-c", script},
		ConfigPath: "pw.config.ts",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(rpt.Suites) != 1 {
		t.Fatalf("expected 1 suite, got %d", len(rpt.Suites))
	}
	want := "--list --reporter=json --config pw.config.ts"
	if got := rpt.Suites[0].Title; got != want {
		t.Errorf("runner arguments = %q, want %q", got, want)
	}
}

func TestGenerate_CommandFailure(t *testing.T) {
	requireShell(t)

	_, err := Generate(context.Background(), GenerateOptions{
		Command: "sh",
		Args:    []string{"-c", "echo boom >&2; exit 3"},
	})
	if err == nil {
		t.Fatal("expected error for failing runner")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should include runner stderr, got: %v", err)
	}
}

func TestGenerate_InvalidOutput(t *testing.T) {
	requireShell(t)

	_, err := Generate(context.Background(), GenerateOptions{
		Command: "sh",
		Args:    []string{"-c", "echo listing tests"},
	})
	if err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}
