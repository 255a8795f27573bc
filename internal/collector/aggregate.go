// Package collector merges runner-reported specs and empty tests by
// file path and aggregates them into catalogue features classified by
// path levels.
package collector

import (
	"fmt"
	"strings"

	"github.com/unbound-force/spec-collector/internal/classify"
	"github.com/unbound-force/spec-collector/internal/placeholder"
	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

// EmptyTestsSuffix is appended to the title of the group holding a
// file's empty tests.
const EmptyTestsSuffix = " - Empty Tests"

// CodeSeparator replaces path separators in feature codes.
const CodeSeparator = "_"

// defaultFormatter is used when Options.Formatter is nil.
var defaultFormatter = classify.MustNew(classify.Options{})

// FilePathSuffix is appended to a test path to form a feature's
// file path.
const FilePathSuffix = ".yml"

// PathFilter reports whether a raw test path takes part in the run.
type PathFilter func(path string) bool

// Options configures Aggregate.
type Options struct {
	// Formatter formats titles and attributes. Nil uses a Formatter
	// with default options.
	Formatter *classify.Formatter

	// PathFilter excludes paths for which it returns false. Nil
	// includes every path.
	PathFilter PathFilter
}

// Collision records two paths whose feature codes were equal. The
// later path's code is suffixed with a counter.
type Collision struct {
	// Code is the code both paths normalize to.
	Code string

	// Path is the path that kept Code.
	Path string

	// OtherPath is the later path that was renamed.
	OtherPath string

	// Resolved is the code assigned to OtherPath.
	Resolved string
}

// Result is the output of one aggregation run.
type Result struct {
	// Features holds one feature per path with at least one assertion,
	// in candidate order.
	Features []taxonomy.Feature

	// Levels holds the attribute values of every emitted feature.
	Levels *LevelValueSet

	// Collisions lists feature codes that had to be disambiguated.
	Collisions []Collision
}

// Aggregate builds features for every path of specs and placeholders.
//
// Candidate paths are the spec paths in insertion order followed by
// placeholder paths not already seen. Paths rejected by the filter are
// skipped entirely. Each remaining path gets a group of its specs and a
// group of its empty tests, each only when non-empty; paths with no
// groups produce no feature and contribute no attribute values.
//
// Aggregate performs no I/O and never fails.
func Aggregate(specs *PathMap[SpecRecord], placeholders *PathMap[placeholder.Test], opts Options) *Result {
	f := opts.Formatter
	if f == nil {
		f = defaultFormatter
	}

	res := &Result{
		Features: []taxonomy.Feature{},
		Levels:   NewLevelValueSet(f.Levels()),
	}
	codes := make(map[string]string)

	for _, path := range candidatePaths(specs, placeholders) {
		if opts.PathFilter != nil && !opts.PathFilter(path) {
			continue
		}

		groups := buildGroups(f, path, specs.Get(path), placeholders.Get(path))
		if len(groups) == 0 {
			continue
		}

		attrs := f.Classify(path)
		res.Levels.Add(attrs)

		code := featureCode(path)
		if owner, taken := codes[code]; taken {
			resolved := disambiguate(code, codes)
			res.Collisions = append(res.Collisions, Collision{
				Code:      code,
				Path:      owner,
				OtherPath: path,
				Resolved:  resolved,
			})
			code = resolved
		}
		codes[code] = path

		res.Features = append(res.Features, taxonomy.Feature{
			Code:         code,
			Title:        f.FeatureTitle(path),
			FileName:     classify.Stem(path),
			FilePath:     path + FilePathSuffix,
			Groups:       groups,
			Attributes:   wrapAttributes(attrs),
			Dependencies: []string{},
		})
	}

	return res
}

// Suite assembles the run output: features, project attributes, and
// the classification tree.
func (r *Result) Suite() taxonomy.Suite {
	attrs, trees := BuildTrees(r.Levels)
	return taxonomy.Suite{
		Features:     r.Features,
		Attributes:   attrs,
		Trees:        trees,
		MetaFilePath: "",
	}
}

// Build aggregates the maps and returns the assembled suite together
// with the aggregation result.
func Build(specs *PathMap[SpecRecord], placeholders *PathMap[placeholder.Test], opts Options) (taxonomy.Suite, *Result) {
	res := Aggregate(specs, placeholders, opts)
	return res.Suite(), res
}

func candidatePaths(specs *PathMap[SpecRecord], placeholders *PathMap[placeholder.Test]) []string {
	paths := specs.Keys()
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		seen[p] = struct{}{}
	}
	for _, p := range placeholders.Keys() {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	return paths
}

func buildGroups(f *classify.Formatter, path string, specs []SpecRecord, empty []placeholder.Test) []taxonomy.Group {
	var groups []taxonomy.Group
	title := f.TitleFromPath(path)

	if len(specs) > 0 {
		groups = append(groups, taxonomy.Group{
			Title:      title,
			Assertions: MapAssertions(specRecords(specs)),
		})
	}
	if len(empty) > 0 {
		groups = append(groups, taxonomy.Group{
			Title:      title + EmptyTestsSuffix,
			Assertions: MapAssertions(placeholderRecords(empty)),
		})
	}
	return groups
}

func featureCode(path string) string {
	return strings.ReplaceAll(path, "/", CodeSeparator)
}

func disambiguate(code string, taken map[string]string) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s%s%d", code, CodeSeparator, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func wrapAttributes(values []string) map[string][]string {
	out := make(map[string][]string, len(values))
	for i, v := range values {
		out[taxonomy.LevelKey(i)] = []string{v}
	}
	return out
}
