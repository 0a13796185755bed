// Package tui is a terminal browser for match files: filter, inspect, and
// delete matches without leaving the shell. Adding and editing matches is
// the GUI's job.
package tui

import (
	"matchman/internal/session"
	"matchman/pkg/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeConfirmDelete
)

// Model is the bubbletea model driving the terminal browser.
type Model struct {
	ctrl *session.Controller

	mode      mode
	filter    textinput.Model
	entries   []types.Entry
	cursor    int
	statusMsg string

	width  int
	height int
}

// New creates the browser over an editing session.
func New(ctrl *session.Controller) *Model {
	ti := textinput.New()
	ti.Placeholder = "filter matches"
	ti.CharLimit = 128

	m := &Model{
		ctrl:   ctrl,
		filter: ti,
	}
	m.reload()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}
	case "tab", "]":
		m.cycleFile(1)
	case "shift+tab", "[":
		m.cycleFile(-1)
	case "/":
		m.mode = modeFilter
		m.filter.Focus()
		return m, textinput.Blink
	case "d", "x":
		if len(m.entries) > 0 {
			m.mode = modeConfirmDelete
		}
	case "r":
		m.ctrl.Refresh()
		m.filter.SetValue("")
		m.reload()
		m.statusMsg = "refreshed"
	case "o":
		if err := m.ctrl.OpenConfigFolder(); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "opened match folder"
		}
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeBrowse
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.ctrl.SetFilter(m.filter.Value())
	m.reload()
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		trigger := m.entries[m.cursor].Trigger
		if err := m.ctrl.DeleteAt(m.cursor); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "deleted " + trigger
		}
		m.reload()
	default:
		m.statusMsg = ""
	}
	m.mode = modeBrowse
	return m, nil
}

// cycleFile selects the next or previous catalog file, wrapping around.
func (m *Model) cycleFile(step int) {
	files := m.ctrl.Files()
	if len(files) < 2 {
		return
	}
	current := 0
	for i, f := range files {
		if f == m.ctrl.Selected() {
			current = i
			break
		}
	}
	next := (current + step + len(files)) % len(files)
	if err := m.ctrl.SelectFile(files[next]); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.filter.SetValue("")
	m.ctrl.SetFilter("")
	m.reload()
}

// reload re-snapshots the filtered view and clamps the cursor.
func (m *Model) reload() {
	m.entries = m.ctrl.FilteredMatches()
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
