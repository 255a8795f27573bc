package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/unbound-force/spec-collector/internal/collector"
	"github.com/unbound-force/spec-collector/internal/placeholder"
	"github.com/unbound-force/spec-collector/internal/playwright"
	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

// sampleSuite runs a small report and placeholder list through the
// collector so the output has every shape the schema describes.
func sampleSuite() taxonomy.Suite {
	rpt := &playwright.Report{Suites: []playwright.Suite{
		{
			Title: "auth/login.spec.ts",
			File:  "auth/login.spec.ts",
			Specs: []playwright.Spec{
				{Title: "signs in", File: "auth/login.spec.ts", Tests: []playwright.Test{{ExpectedStatus: "passed"}}},
				{Title: "remembers user", File: "auth/login.spec.ts", Tests: []playwright.Test{{ExpectedStatus: "skipped"}}},
			},
		},
		{
			Title: "shop/cart/add-item-with-a-very-long-descriptive-name.spec.ts",
			File:  "shop/cart/add-item-with-a-very-long-descriptive-name.spec.ts",
			Specs: []playwright.Spec{
				{Title: "adds", File: "shop/cart/add-item-with-a-very-long-descriptive-name.spec.ts", Tests: []playwright.Test{{ExpectedStatus: "passed"}}},
			},
		},
	}}
	tests := []placeholder.Test{
		{TestName: "locks after 3 attempts", FileName: "auth/login.spec.ts"},
		{TestName: "pays by card", FileName: "shop/checkout.spec.ts"},
	}

	m := collector.Merge(rpt, "", tests)
	suite, _ := collector.Build(m.Specs, m.Placeholders, collector.Options{})
	return suite
}

func compileSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	sch, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema))
	if err != nil {
		t.Fatalf("failed to parse schema JSON: %v", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", sch); err != nil {
		t.Fatalf("failed to add schema resource: %v", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		t.Fatalf("failed to compile schema: %v", err)
	}
	return compiled
}

func validateAgainstSchema(t *testing.T, data []byte) {
	t.Helper()
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if err := compileSchema(t).Validate(inst); err != nil {
		t.Errorf("JSON output does not conform to schema:\n%v", err)
	}
}

func TestWriteJSON_ValidJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSuite()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("output is not valid JSON:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "\n  \"features\"") {
		t.Error("expected two-space indentation")
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	want := sampleSuite()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, want); err != nil {
		t.Fatal(err)
	}
	var got taxonomy.Suite
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("suite changed through JSON (-want +got):\n%s", diff)
	}
}

func TestWriteJSON_ValidAgainstSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSuite()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	validateAgainstSchema(t, buf.Bytes())
}

func TestWriteJSON_EmptySuite_ValidAgainstSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, taxonomy.Suite{}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if strings.Contains(buf.String(), "null") {
		t.Errorf("empty suite should encode empty arrays, got:\n%s", buf.String())
	}
	validateAgainstSchema(t, buf.Bytes())
}

func TestSchema_RejectsBadState(t *testing.T) {
	doc := `{"features":[{"code":"a","title":"A","fileName":"a","filePath":"a.yml",
		"groups":[{"title":"A","assertions":[{"title":"x","automationState":"Manual"}]}],
		"attributes":{},"dependencies":[]}],"attributes":[],"trees":[],"metaFilePath":""}`
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if err := compileSchema(t).Validate(inst); err == nil {
		t.Error("schema accepted an unknown automation state")
	}
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "result.json")
	if err := WriteFile(path, sampleSuite()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	validateAgainstSchema(t, data)
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := os.WriteFile(path, []byte("stale content that is longer than an empty suite"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, taxonomy.Suite{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("old content survived")
	}
}

func TestWriteText_HasFeatures(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleSuite()); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{"Login", "auth_login.spec.ts", "lvl0", "TESTS"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteText_HasSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleSuite()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "3 feature(s), 5 assertion(s), 2 automated") {
		t.Errorf("summary line missing or wrong:\n%s", buf.String())
	}
}

func TestWriteText_EmptySuite(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, taxonomy.Suite{}); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	if !strings.Contains(output, "No features collected") {
		t.Error("expected empty-suite message")
	}
	if !strings.Contains(output, "0 feature(s), 0 assertion(s), 0 automated") {
		t.Error("expected zero summary")
	}
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestWriteText_FitsIn80Columns(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleSuite()); err != nil {
		t.Fatal(err)
	}

	const maxWidth = 80
	for i, line := range strings.Split(buf.String(), "\n") {
		plain := stripANSI(line)
		if width := utf8.RuneCountInString(plain); width > maxWidth {
			t.Errorf("line %d exceeds %d columns (%d runes): %q",
				i+1, maxWidth, width, plain)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 8, "much ..."},
		{"Вход › ошибки", 8, "Вход ..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCoverageStyle(t *testing.T) {
	s := DefaultStyles()
	tests := []struct {
		name      string
		automated int
		total     int
		want      lipgloss.Style
	}{
		{"empty", 0, 0, s.Muted},
		{"full", 3, 3, s.Full},
		{"none", 0, 3, s.None},
		{"partial", 1, 3, s.Partial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.CoverageStyle(tt.automated, tt.total)
			if got.GetForeground() != tt.want.GetForeground() {
				t.Errorf("CoverageStyle(%d, %d) picked the wrong style", tt.automated, tt.total)
			}
		})
	}
}

func TestFindDuplicateAssertions(t *testing.T) {
	tests := []struct {
		name      string
		groups    []taxonomy.Group
		wantTitle string
		wantOK    bool
	}{
		{
			name: "unique",
			groups: []taxonomy.Group{
				{Title: "A", Assertions: []taxonomy.Assertion{{Title: "x"}, {Title: "y"}}},
			},
		},
		{
			name: "within_group",
			groups: []taxonomy.Group{
				{Title: "A", Assertions: []taxonomy.Assertion{{Title: "x"}, {Title: "y"}, {Title: "x"}}},
			},
			wantTitle: "x",
			wantOK:    true,
		},
		{
			name: "across_groups",
			groups: []taxonomy.Group{
				{Title: "A", Assertions: []taxonomy.Assertion{{Title: "x"}, {Title: "y"}}},
				{Title: "A - Empty Tests", Assertions: []taxonomy.Assertion{{Title: "z"}, {Title: "y"}, {Title: "x"}}},
			},
			wantTitle: "y",
			wantOK:    true,
		},
		{
			name: "no_groups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := FindDuplicateAssertions(taxonomy.Feature{Groups: tt.groups})
			if title != tt.wantTitle || ok != tt.wantOK {
				t.Errorf("FindDuplicateAssertions() = (%q, %v), want (%q, %v)",
					title, ok, tt.wantTitle, tt.wantOK)
			}
		})
	}
}

func TestFindDuplicates(t *testing.T) {
	suite := taxonomy.Suite{Features: []taxonomy.Feature{
		{Code: "a", Groups: []taxonomy.Group{{Assertions: []taxonomy.Assertion{{Title: "x"}, {Title: "x"}}}}},
		{Code: "b", Groups: []taxonomy.Group{{Assertions: []taxonomy.Assertion{{Title: "x"}}}}},
		{Code: "c", Groups: []taxonomy.Group{
			{Assertions: []taxonomy.Assertion{{Title: "y"}}},
			{Assertions: []taxonomy.Assertion{{Title: "y"}}},
		}},
	}}

	want := []Duplicate{{Code: "a", Title: "x"}, {Code: "c", Title: "y"}}
	if diff := cmp.Diff(want, FindDuplicates(suite)); diff != "" {
		t.Errorf("FindDuplicates mismatch (-want +got):\n%s", diff)
	}
}
