// Package taxonomy defines the feature catalogue data structures
// produced by a collection run: features, assertion groups, and the
// level-based attribute classification shared by all features.
package taxonomy

import "fmt"

// AutomationState describes whether an assertion is backed by an
// enabled automated test.
type AutomationState string

// Automation state constants.
const (
	// Automated marks assertions whose test is expected to pass.
	Automated AutomationState = "Automated"

	// Unknown marks skipped, fixme, or placeholder tests.
	Unknown AutomationState = "Unknown"
)

// Assertion is a single test case as it appears in the catalogue.
type Assertion struct {
	// Title is the qualified test title, including any describe
	// blocks joined with SuiteDelimiter.
	Title string `json:"title"`

	// AutomationState classifies the test.
	AutomationState AutomationState `json:"automationState"`
}

// Group is a titled, ordered list of assertions. Groups are only
// emitted with at least one assertion.
type Group struct {
	Title      string      `json:"title"`
	Assertions []Assertion `json:"assertions"`
}

// Feature is the catalogue entry for one test file.
type Feature struct {
	// Code is the file path with separators replaced by underscores.
	Code string `json:"code"`

	// Title is the cleaned display title of the file.
	Title string `json:"title"`

	// FileName is the base name of the test file without its last
	// extension.
	FileName string `json:"fileName"`

	// FilePath is the test file path with a ".yml" suffix.
	FilePath string `json:"filePath"`

	// Groups holds the runner-derived group first, then the
	// placeholder group.
	Groups []Group `json:"groups"`

	// Attributes maps level keys (lvl0, lvl1, ...) to a single-element
	// list holding the value at that level.
	Attributes map[string][]string `json:"attributes"`

	// Dependencies is always empty.
	Dependencies []string `json:"dependencies"`
}

// AssertionCount returns the number of assertions across all groups.
func (f Feature) AssertionCount() int {
	n := 0
	for _, g := range f.Groups {
		n += len(g.Assertions)
	}
	return n
}

// AutomatedCount returns the number of Automated assertions across all
// groups.
func (f Feature) AutomatedCount() int {
	n := 0
	for _, g := range f.Groups {
		for _, a := range g.Assertions {
			if a.AutomationState == Automated {
				n++
			}
		}
	}
	return n
}

// AttributeValue is one distinct value observed at a level.
type AttributeValue struct {
	// Code is "<levelKey>_<value>".
	Code  string `json:"code"`
	Title string `json:"title"`
}

// ProjectAttribute lists every distinct value seen at one level.
type ProjectAttribute struct {
	Title  string           `json:"title"`
	Code   string           `json:"code"`
	Values []AttributeValue `json:"values"`
}

// Tree is a classification tree over a list of level keys.
type Tree struct {
	Title      string   `json:"title"`
	Code       string   `json:"code"`
	Attributes []string `json:"attributes"`
}

// Suite is the complete output of a collection run.
type Suite struct {
	Features     []Feature          `json:"features"`
	Attributes   []ProjectAttribute `json:"attributes"`
	Trees        []Tree             `json:"trees"`
	MetaFilePath string             `json:"metaFilePath"`
}

// AssertionCount returns the number of assertions across all features.
func (s Suite) AssertionCount() int {
	n := 0
	for _, f := range s.Features {
		n += f.AssertionCount()
	}
	return n
}

// LevelKey returns the attribute key for a zero-based level index,
// e.g. "lvl0".
func LevelKey(level int) string {
	return fmt.Sprintf("lvl%d", level)
}

// ValueCode returns the attribute value code for a value at a level,
// e.g. "lvl1_Login".
func ValueCode(level int, value string) string {
	return LevelKey(level) + "_" + value
}
