package tui

import (
	"os"
	"path/filepath"
	"testing"

	"matchman/internal/catalog"
	"matchman/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yml"), []byte(`
matches:
  - trigger: ":hi"
    replace: "hello"
  - trigger: ":bye"
    replace: "goodbye"
  - trigger: ":sig"
    replace: "Best regards"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "work.yml"),
		[]byte(`matches: [{trigger: ":w", replace: "work"}]`+"\n"), 0644))

	return New(session.New(catalog.New(dir, []string{"*.yml"})))
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{}
}

func send(m *Model, keys ...string) *Model {
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.Update(key(k))
	}
	return model.(*Model)
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0, m.cursor)

	m = send(m, "j", "j")
	assert.Equal(t, 2, m.cursor)

	m = send(m, "j")
	assert.Equal(t, 2, m.cursor, "cursor must stop at the last entry")

	m = send(m, "k", "k", "k")
	assert.Equal(t, 0, m.cursor)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFilterMode(t *testing.T) {
	m := newTestModel(t)

	m = send(m, "/")
	assert.Equal(t, modeFilter, m.mode)

	m = send(m, "h", "e", "l")
	assert.Equal(t, "hel", m.filter.Value())
	assert.Len(t, m.entries, 1, "only :hi/hello matches 'hel'")

	m = send(m, "enter")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Len(t, m.entries, 1)
}

func TestDeleteConfirm(t *testing.T) {
	m := newTestModel(t)

	t.Run("declined", func(t *testing.T) {
		m = send(m, "d")
		assert.Equal(t, modeConfirmDelete, m.mode)
		m = send(m, "n")
		assert.Equal(t, modeBrowse, m.mode)
		assert.Len(t, m.entries, 3)
	})

	t.Run("confirmed", func(t *testing.T) {
		m = send(m, "j", "d", "y")
		assert.Len(t, m.entries, 2)
		assert.Equal(t, ":hi", m.entries[0].Trigger)
		assert.Equal(t, ":sig", m.entries[1].Trigger)
	})
}

func TestCycleFiles(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, "base.yml", m.ctrl.Selected())

	m = send(m, "tab")
	assert.Equal(t, "work.yml", m.ctrl.Selected())
	assert.Len(t, m.entries, 1)

	m = send(m, "tab")
	assert.Equal(t, "base.yml", m.ctrl.Selected(), "cycling should wrap around")
}

func TestRefreshClearsFilter(t *testing.T) {
	m := newTestModel(t)
	m = send(m, "/", "h", "e", "l", "enter")
	require.Len(t, m.entries, 1)

	m = send(m, "r")
	assert.Empty(t, m.filter.Value())
	assert.Len(t, m.entries, 3)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m.width = 80
	out := m.View()
	assert.Contains(t, out, "base.yml")
	assert.Contains(t, out, ":hi")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "3 matches")
}
