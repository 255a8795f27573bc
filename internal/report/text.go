package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

// Column budget: 80 cols total, 4 reserved for indent.
// TITLE=26, CODE=26, TESTS/AUTO fit in the rest.
const (
	maxTitle = 26
	maxCode  = 26
)

// WriteText writes a human-readable summary of the suite: one table
// row per feature, the distinct values per level, and a totals line.
func WriteText(w io.Writer, suite taxonomy.Suite) error {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render("=== Features ==="))
	if len(suite.Features) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No features collected."))
	} else {
		fmt.Fprintln(w, featureTable(suite.Features, s))
	}

	if len(suite.Attributes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render("=== Levels ==="))
		for _, attr := range suite.Attributes {
			fmt.Fprintf(w, "    %s %s\n",
				s.SummaryLabel.Render(attr.Code),
				s.SummaryValue.Render(fmt.Sprintf("%d value(s)", len(attr.Values))))
		}
	}

	automated := 0
	for _, f := range suite.Features {
		automated += f.AutomatedCount()
	}
	fmt.Fprintf(w, "\n%s\n",
		s.Header.Render(fmt.Sprintf(
			"%d feature(s), %d assertion(s), %d automated",
			len(suite.Features), suite.AssertionCount(), automated)))

	return nil
}

func featureTable(features []taxonomy.Feature, s Styles) *table.Table {
	rows := make([][]string, 0, len(features))
	coverage := make([]lipgloss.Style, 0, len(features))
	for _, f := range features {
		total, auto := f.AssertionCount(), f.AutomatedCount()
		rows = append(rows, []string{
			truncate(f.Title, maxTitle),
			truncate(f.Code, maxCode),
			strconv.Itoa(total),
			strconv.Itoa(auto),
		})
		coverage = append(coverage, s.CoverageStyle(auto, total))
	}

	return table.New().
		Width(76).
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 3 && row >= 0 && row < len(coverage) {
				return coverage[row]
			}
			return s.TableCell
		}).
		Headers("TITLE", "CODE", "TESTS", "AUTO").
		Rows(rows...)
}

// truncate shortens s to at most n runes, ending in "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
