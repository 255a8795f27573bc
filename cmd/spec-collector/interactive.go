package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/spec-collector/internal/taxonomy"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Next     key.Binding
	Prev     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Next, k.Prev},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Next:     key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next feature")),
	Prev:     key.NewBinding(key.WithKeys("p", "shift+tab"), key.WithHelp("p", "prev feature")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	automatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	unknownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// collectModel is the Bubble Tea model for browsing a collected suite.
type collectModel struct {
	suite    taxonomy.Suite
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string

	// anchors holds the content line of each feature header.
	anchors []int
}

func newCollectModel(suite taxonomy.Suite) collectModel {
	content, anchors := renderCollectContent(suite)
	return collectModel{
		suite:   suite,
		help:    help.New(),
		keys:    defaultKeyMap,
		content: content,
		anchors: anchors,
	}
}

// renderCollectContent renders every feature with its level path and
// one assertion table per group. It also returns the line offset of
// every feature header.
func renderCollectContent(suite taxonomy.Suite) (string, []int) {
	var sb strings.Builder
	anchors := make([]int, 0, len(suite.Features))

	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("Spec Collector: %d feature(s), %d assertion(s)",
			len(suite.Features), suite.AssertionCount())))
	sb.WriteString("\n\n")

	for _, f := range suite.Features {
		anchors = append(anchors, strings.Count(sb.String(), "\n"))
		sb.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("=== %s ===", f.Title)))
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(fmt.Sprintf("    %s", f.FilePath)))
		sb.WriteString("\n")
		if lv := levelPath(f); lv != "" {
			sb.WriteString(statusStyle.Render(fmt.Sprintf("    %s", lv)))
			sb.WriteString("\n")
		}

		for _, g := range f.Groups {
			rows := make([][]string, 0, len(g.Assertions))
			for _, a := range g.Assertions {
				title := a.Title
				if r := []rune(title); len(r) > 60 {
					title = string(r[:57]) + "..."
				}
				rows = append(rows, []string{string(a.AutomationState), title})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(tuiBorderStyle).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return tuiHeaderStyle
					}
					if col == 0 && row >= 0 && row < len(rows) {
						if rows[row][0] == string(taxonomy.Automated) {
							return automatedStyle
						}
						return unknownStyle
					}
					return lipgloss.NewStyle()
				}).
				Headers("STATE", g.Title).
				Rows(rows...)

			sb.WriteString(t.String())
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), anchors
}

// nextAnchor returns the first anchor below offset, or offset when
// there is none.
func nextAnchor(anchors []int, offset int) int {
	for _, a := range anchors {
		if a > offset {
			return a
		}
	}
	return offset
}

// prevAnchor returns the last anchor above offset, or 0.
func prevAnchor(anchors []int, offset int) int {
	prev := 0
	for _, a := range anchors {
		if a >= offset {
			break
		}
		prev = a
	}
	return prev
}

// levelPath joins a feature's attribute values in level order,
// e.g. "Auth / Login".
func levelPath(f taxonomy.Feature) string {
	var parts []string
	for i := 0; ; i++ {
		v, ok := f.Attributes[taxonomy.LevelKey(i)]
		if !ok || len(v) == 0 {
			break
		}
		parts = append(parts, v[0])
	}
	return strings.Join(parts, " / ")
}

func (m collectModel) Init() tea.Cmd {
	return nil
}

func (m collectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerHeight := 2

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case m.ready && key.Matches(msg, m.keys.Next):
			m.viewport.SetYOffset(nextAnchor(m.anchors, m.viewport.YOffset))
			return m, nil
		case m.ready && key.Matches(msg, m.keys.Prev):
			m.viewport.SetYOffset(prevAnchor(m.anchors, m.viewport.YOffset))
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m collectModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveCollect launches the Bubble Tea TUI for browsing the
// suite.
func runInteractiveCollect(suite taxonomy.Suite) error {
	model := newCollectModel(suite)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
