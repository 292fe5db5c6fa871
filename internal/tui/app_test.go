package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c4rlo/tarsnap-prune/internal/prune"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	groups := map[string][]prune.Archive{
		"home": {
			{Name: "home-1", Timestamp: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
			{Name: "home-2", Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	specs, err := prune.ParseKeepSpecs("1d")
	require.NoError(t, err)
	return New(Config{
		KeepSpec: "1d",
		Groups:   groups,
		Plan:     prune.BuildPlan(groups, specs),
	})
}

func TestRenderArchivesMarksPlan(t *testing.T) {
	m := testModel(t)
	out := m.renderArchives()

	assert.Contains(t, out, "home-1")
	assert.Contains(t, out, "home-2")
	assert.Contains(t, out, "KEEP")
	assert.Contains(t, out, "DEL")
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestFooterShowsQuitHint(t *testing.T) {
	m := testModel(t)
	m.width = 80
	footer := m.footerView()

	assert.Contains(t, footer, "quit")
	assert.Contains(t, footer, defaultKeymap().Quit)
}

func TestViewBeforeSizeIsPlaceholder(t *testing.T) {
	m := testModel(t)
	assert.True(t, strings.Contains(m.View(), "loading"))
}
