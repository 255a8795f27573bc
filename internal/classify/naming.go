package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// testFileMarkers are stripped from every file name before the
// configured removal patterns. They are regular expressions joined
// into a single alternation.
var testFileMarkers = []string{
	`\.spec`,
	`\.e2e`,
	`\.integration`,
	`\.test`,
	`\.tsx?$`,
	`\.jsx?$`,
}

// FeatureTitleSeparator joins the path segments of a feature title
// whose path is deeper than the configured number of levels.
const FeatureTitleSeparator = " / "

// FormatFilename strips test markers and configured removal patterns
// from a file name stem, applies the configured replacements in order,
// and formats the result with FormatPathElement.
func (f *Formatter) FormatFilename(name string) string {
	cleaned := replaceAll(f.remove, name, "")
	for _, r := range f.replace {
		cleaned = replaceAll(r.find, cleaned, r.with)
	}
	return FormatPathElement(cleaned)
}

// replaceAll replaces every match of re in s. Without a match timeout
// Replace cannot fail, so s is returned unchanged only on error.
func replaceAll(re *regexp2.Regexp, s, with string) string {
	out, err := re.Replace(s, with, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// FormatPathElement turns dashes into spaces and upper-cases the first
// character. An empty element stays empty.
func FormatPathElement(element string) string {
	s := strings.ReplaceAll(element, "-", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
