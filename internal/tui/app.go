// Package tui defines the Bubble Tea model for the interactive prune plan
// browser. The browser is read-only: it shows which archives a keep spec
// would retain or delete, it never deletes anything itself.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/c4rlo/tarsnap-prune/internal/prune"
)

// Config carries dependencies into the TUI app.
type Config struct {
	KeepSpec string
	Groups   map[string][]prune.Archive
	Plan     prune.Plan
}

// Model is the root Bubble Tea model (Elm architecture).
type Model struct {
	cfg Config

	// Dimensions
	width  int
	height int

	viewport viewport.Model
	ready    bool

	keymap Keymap
	styles Styles
}

// New constructs a new TUI Model.
func New(cfg Config) *Model {
	return &Model{
		cfg:    cfg,
		keymap: defaultKeymap(),
		styles: newStyles(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.viewport.SetContent(m.renderArchives())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case m.keymap.Quit, "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m *Model) headerView() string {
	title := m.styles.HeaderTitle.Render("  tarsnap-prune — plan for " + m.cfg.KeepSpec)
	return m.styles.Header.Width(m.width).Render(title)
}

func (m *Model) footerView() string {
	deleted := len(m.cfg.Plan.Delete)
	remaining := len(m.cfg.Plan.Remaining)
	summary := fmt.Sprintf(" %d to delete · %d remaining ", deleted, remaining)
	keys := m.styles.FooterKey.Render("↑/↓") + " scroll  " + m.styles.FooterKey.Render(m.keymap.Quit) + " quit"
	return m.styles.Footer.Width(m.width).Render(summary + "   " + keys)
}

// renderArchives renders one section per base-name group, newest archives
// first, each row badged KEEP or DELETE according to the plan.
func (m *Model) renderArchives() string {
	var b strings.Builder

	bases := make([]string, 0, len(m.cfg.Groups))
	for base := range m.cfg.Groups {
		bases = append(bases, base)
	}
	slices.Sort(bases)

	for _, base := range bases {
		arcs := slices.Clone(m.cfg.Groups[base])
		slices.SortStableFunc(arcs, func(a, c prune.Archive) int {
			return c.Timestamp.Compare(a.Timestamp)
		})

		b.WriteString(m.styles.GroupTitle.Render("▸ "+base) + "\n")
		for _, arc := range arcs {
			badge := m.styles.BadgeKeep.Render(" KEEP ")
			row := m.styles.RowKeep
			if m.cfg.Plan.Marked(arc.Name) {
				badge = m.styles.BadgeDelete.Render(" DEL  ")
				row = m.styles.RowDelete
			}
			line := fmt.Sprintf("  %s %s  %s",
				badge,
				arc.Timestamp.Format("2006-01-02 15:04:05"),
				arc.Name,
			)
			b.WriteString(row.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
