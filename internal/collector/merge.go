package collector

import (
	"path/filepath"

	"github.com/unbound-force/spec-collector/internal/placeholder"
	"github.com/unbound-force/spec-collector/internal/playwright"
)

// Merger builds the two path-keyed record maps consumed by Aggregate.
// Several reports (one per configured project) may be added before
// aggregation; records are appended in the order they are added.
type Merger struct {
	Specs        *PathMap[SpecRecord]
	Placeholders *PathMap[placeholder.Test]
}

// NewMerger returns a Merger with empty maps.
func NewMerger() *Merger {
	return &Merger{
		Specs:        NewPathMap[SpecRecord](),
		Placeholders: NewPathMap[placeholder.Test](),
	}
}

// Merge is a convenience for a single report and empty-test list.
func Merge(rpt *playwright.Report, rootPath string, tests []placeholder.Test) *Merger {
	m := NewMerger()
	m.AddReport(rpt, rootPath)
	m.AddPlaceholders(tests)
	return m
}

// suiteFrame is a pending list of sibling suites and the describe
// chain they inherit.
type suiteFrame struct {
	suites  []playwright.Suite
	parents []string
}

// AddReport walks the suite tree of rpt and appends every spec under
// its file path, made relative to rootPath.
//
// The walk uses an explicit stack of sibling lists instead of
// recursion. Specs of one suite keep their declaration order, but when
// a file receives specs from several suites the relative order of
// those suites is not guaranteed to match the source.
//
// A suite adds its title to the describe chain only when the title is
// meaningful (non-empty and different from its file) and the suite has
// siblings. A lone suite, like the per-file suite the runner wraps
// around every spec file, adds nothing.
func (m *Merger) AddReport(rpt *playwright.Report, rootPath string) {
	if rpt == nil {
		return
	}

	stack := []suiteFrame{{suites: rpt.Suites}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, suite := range frame.suites {
			chain := frame.parents
			if name := suiteTitle(suite); name != "" && len(frame.suites) > 1 {
				chain = append(append([]string(nil), frame.parents...), name)
			}

			for _, spec := range suite.Specs {
				m.Specs.Append(relativePath(rootPath, spec.File), SpecRecord{
					Spec:         spec,
					ParentSuites: chain,
				})
			}

			if len(suite.Suites) > 0 {
				stack = append(stack, suiteFrame{suites: suite.Suites, parents: chain})
			}
		}
	}
}

// AddPlaceholders appends every empty test under its own file name.
// Entries without a file name share the empty path.
func (m *Merger) AddPlaceholders(tests []placeholder.Test) {
	for _, t := range tests {
		m.Placeholders.Append(t.FileName, t)
	}
}

func suiteTitle(s playwright.Suite) string {
	if s.Title == "" || s.Title == s.File {
		return ""
	}
	return s.Title
}

// relativePath returns file relative to root with forward slashes.
// Both sides are resolved against the working directory first, so an
// absolute file under a relative root still yields a relative key.
// When no relative path exists the cleaned file path is used.
func relativePath(root, file string) string {
	if file == "" {
		return ""
	}
	if root == "" {
		return filepath.ToSlash(filepath.Clean(file))
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(file))
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(file))
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(file))
	}
	return filepath.ToSlash(rel)
}
