package collector

import (
	"strings"

	"github.com/unbound-force/spec-collector/internal/placeholder"
	"github.com/unbound-force/spec-collector/internal/playwright"
	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

// SuiteDelimiter joins describe-block titles and the spec title into an
// assertion title.
const SuiteDelimiter = " › "

// SpecRecord is a runner-reported spec together with the titles of the
// describe blocks that enclose it, outermost first.
type SpecRecord struct {
	playwright.Spec
	ParentSuites []string
}

// Kind tags the origin of a Record.
type Kind int

// Record kinds.
const (
	KindSpec Kind = iota + 1
	KindPlaceholder
)

// Record is a raw test record of either origin. Exactly one of Spec and
// Placeholder is meaningful, selected by Kind.
type Record struct {
	Kind        Kind
	Spec        SpecRecord
	Placeholder placeholder.Test
}

// FromSpec wraps a spec record.
func FromSpec(s SpecRecord) Record {
	return Record{Kind: KindSpec, Spec: s}
}

// FromPlaceholder wraps an empty test entry.
func FromPlaceholder(p placeholder.Test) Record {
	return Record{Kind: KindPlaceholder, Placeholder: p}
}

// MapAssertion converts r into a catalogue assertion.
//
// Specs are titled with their describe chain and count as Automated
// only when their first test is expected to pass. Empty tests keep
// their own name and are always Unknown.
func MapAssertion(r Record) taxonomy.Assertion {
	switch r.Kind {
	case KindSpec:
		state := taxonomy.Unknown
		if r.Spec.ExpectedStatus() == playwright.StatusPassed {
			state = taxonomy.Automated
		}
		return taxonomy.Assertion{
			Title:           qualifiedTitle(r.Spec.ParentSuites, r.Spec.Title),
			AutomationState: state,
		}
	case KindPlaceholder:
		return taxonomy.Assertion{
			Title:           r.Placeholder.TestName,
			AutomationState: taxonomy.Unknown,
		}
	default:
		return taxonomy.Assertion{AutomationState: taxonomy.Unknown}
	}
}

// MapAssertions converts records in order.
func MapAssertions(records []Record) []taxonomy.Assertion {
	out := make([]taxonomy.Assertion, 0, len(records))
	for _, r := range records {
		out = append(out, MapAssertion(r))
	}
	return out
}

func qualifiedTitle(parents []string, title string) string {
	if len(parents) == 0 {
		return title
	}
	parts := make([]string, 0, len(parents)+1)
	parts = append(parts, parents...)
	parts = append(parts, title)
	return strings.Join(parts, SuiteDelimiter)
}

func specRecords(specs []SpecRecord) []Record {
	out := make([]Record, 0, len(specs))
	for _, s := range specs {
		out = append(out, FromSpec(s))
	}
	return out
}

func placeholderRecords(tests []placeholder.Test) []Record {
	out := make([]Record, 0, len(tests))
	for _, t := range tests {
		out = append(out, FromPlaceholder(t))
	}
	return out
}
