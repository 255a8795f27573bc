// Package classify derives display titles and level attributes from
// test file paths.
//
// A path such as "auth/oauth/login-flow.spec.ts" is split into its
// directory segments and a cleaned file name, giving the attribute
// list ["Auth", "Oauth", "Login flow"]. The list is truncated to the
// configured number of levels; the truncated tail is kept visible in
// the feature title instead.
package classify

import (
	"fmt"
	"path"
	"strings"

	"github.com/dlclark/regexp2"
)

// DefaultLevels is the number of classification levels used when
// Options.Levels is not positive.
const DefaultLevels = 3

// Options configures a Formatter.
type Options struct {
	// Levels is the maximum number of attributes derived from a path.
	// Zero or negative means DefaultLevels.
	Levels int

	// Remove lists regular expressions removed from file names, in
	// addition to the built-in test markers. Every match is removed.
	// Patterns use ECMAScript syntax, so lookaround and backreferences
	// are allowed.
	Remove []string

	// Replace lists [find, replacement] pairs applied in order after
	// removal. Find is an ECMAScript regular expression; every match is
	// replaced. The replacement may refer to groups as $1.
	Replace [][2]string
}

type replacement struct {
	find *regexp2.Regexp
	with string
}

// Formatter formats titles and attributes for test file paths. A
// Formatter is immutable after New and safe for concurrent use.
type Formatter struct {
	levels  int
	remove  *regexp2.Regexp
	replace []replacement
}

// New compiles the removal and replacement patterns in opts.
func New(opts Options) (*Formatter, error) {
	levels := opts.Levels
	if levels <= 0 {
		levels = DefaultLevels
	}

	patterns := append(append([]string{}, testFileMarkers...), opts.Remove...)
	remove, err := regexp2.Compile(strings.Join(patterns, "|"), regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compiling remove patterns: %w", err)
	}

	f := &Formatter{levels: levels, remove: remove}
	for _, pair := range opts.Replace {
		find, err := regexp2.Compile(pair[0], regexp2.ECMAScript)
		if err != nil {
			return nil, fmt.Errorf("compiling replace pattern %q: %w", pair[0], err)
		}
		f.replace = append(f.replace, replacement{find: find, with: pair[1]})
	}
	return f, nil
}

// MustNew is like New but panics if a pattern does not compile. It is
// meant for options known at build time.
func MustNew(opts Options) *Formatter {
	f, err := New(opts)
	if err != nil {
		panic("classify: " + err.Error())
	}
	return f
}

// Levels returns the number of classification levels.
func (f *Formatter) Levels() int {
	return f.levels
}

// Classify returns the formatted attribute list for p: every directory
// segment followed by the cleaned file name, with empty segments
// dropped, truncated to the configured number of levels.
func (f *Formatter) Classify(p string) []string {
	attrs := f.attributes(p)
	if len(attrs) > f.levels {
		attrs = attrs[:f.levels]
	}
	return attrs
}

// TitleFromPath returns the cleaned file name of p, ignoring its
// directory.
func (f *Formatter) TitleFromPath(p string) string {
	_, name := splitPath(p)
	return f.FormatFilename(name)
}

// FeatureTitle returns the display title of the feature at p. When p
// has more segments than the configured levels, the segments cut off
// by Classify precede the file name, joined with
// FeatureTitleSeparator.
func (f *Formatter) FeatureTitle(p string) string {
	attrs := f.attributes(p)
	if len(attrs) <= f.levels {
		return f.TitleFromPath(p)
	}
	tail := attrs[f.levels:]
	return strings.Join(tail, FeatureTitleSeparator)
}

// attributes returns the untruncated attribute list for p.
func (f *Formatter) attributes(p string) []string {
	dirs, name := splitPath(p)

	attrs := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		if v := FormatPathElement(d); v != "" {
			attrs = append(attrs, v)
		}
	}
	if v := f.FormatFilename(name); v != "" {
		attrs = append(attrs, v)
	}
	return attrs
}

// Stem returns the base name of p without its last extension. A base
// name that consists only of an extension, like ".env", is returned
// unchanged.
func Stem(p string) string {
	_, name := splitPath(p)
	return name
}

// splitPath splits a slash-separated path into its non-empty directory
// segments and the file name stem.
func splitPath(p string) ([]string, string) {
	dir, base := "", p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		dir, base = p[:i], p[i+1:]
	}

	name := base
	if ext := path.Ext(base); ext != base {
		name = strings.TrimSuffix(base, ext)
	}

	var dirs []string
	for _, seg := range strings.Split(dir, "/") {
		if seg == "" || seg == "." {
			continue
		}
		dirs = append(dirs, seg)
	}
	return dirs, name
}
