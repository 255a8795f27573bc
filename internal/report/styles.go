package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal summaries.
// Lipgloss degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers.
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style

	// Full styles coverage cells where every assertion is automated.
	Full lipgloss.Style

	// Partial styles coverage cells with some automated assertions.
	Partial lipgloss.Style

	// None styles coverage cells with no automated assertions.
	None lipgloss.Style

	SummaryLabel lipgloss.Style
	SummaryValue lipgloss.Style

	Border lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		Full:    lipgloss.NewStyle().Foreground(lipgloss.Color("40")).PaddingRight(1),
		Partial: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).PaddingRight(1),
		None:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).PaddingRight(1),

		SummaryLabel: lipgloss.NewStyle().Bold(true).Width(20),
		SummaryValue: lipgloss.NewStyle(),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// CoverageStyle returns the style for a feature with automated out of
// total assertions.
func (s Styles) CoverageStyle(automated, total int) lipgloss.Style {
	switch {
	case total == 0:
		return s.Muted
	case automated == total:
		return s.Full
	case automated == 0:
		return s.None
	default:
		return s.Partial
	}
}
