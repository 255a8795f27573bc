package report

import "github.com/unbound-force/spec-collector/internal/taxonomy"

// FindDuplicateAssertions returns the first assertion title that
// occurs more than once across the groups of a feature.
func FindDuplicateAssertions(f taxonomy.Feature) (string, bool) {
	seen := make(map[string]struct{})
	for _, g := range f.Groups {
		for _, a := range g.Assertions {
			if _, ok := seen[a.Title]; ok {
				return a.Title, true
			}
			seen[a.Title] = struct{}{}
		}
	}
	return "", false
}

// Duplicate names a feature holding a repeated assertion title.
type Duplicate struct {
	Code  string
	Title string
}

// FindDuplicates runs FindDuplicateAssertions over every feature of
// the suite, in feature order.
func FindDuplicates(s taxonomy.Suite) []Duplicate {
	var out []Duplicate
	for _, f := range s.Features {
		if title, ok := FindDuplicateAssertions(f); ok {
			out = append(out, Duplicate{Code: f.Code, Title: title})
		}
	}
	return out
}
