package tui

import (
	"fmt"
	"strings"

	"matchman/pkg/types"
)

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	title := m.ctrl.Selected()
	if title == "" {
		title = "no match files"
	}
	sb.WriteString(TitleStyle.Render(" "+title+" ") + " " + StatusStyle.Render(m.ctrl.StatusLine()))
	sb.WriteString("\n\n")

	if m.ctrl.Status() == types.LoadParseFailed {
		sb.WriteString(WarningStyle.Render("this file could not be parsed; fix it in an editor and press r"))
		sb.WriteString("\n\n")
	}

	if m.mode == modeFilter || m.filter.Value() != "" {
		sb.WriteString(m.filter.View())
		sb.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		sb.WriteString(StatusStyle.Render("nothing to show"))
		sb.WriteString("\n")
	}

	for i, e := range m.entries {
		line := fmt.Sprintf("%s  %s",
			TriggerStyle.Render(padRight(e.Trigger, 16)),
			ReplaceStyle.Render(firstLine(e.Replace)))
		if i == m.cursor && m.mode != modeFilter {
			line = SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch m.mode {
	case modeConfirmDelete:
		sb.WriteString(WarningStyle.Render(fmt.Sprintf("delete %q? y/n", m.entries[m.cursor].Trigger)))
	case modeFilter:
		sb.WriteString(HelpStyle.Render("enter/esc done filtering"))
	default:
		sb.WriteString(HelpStyle.Render("j/k move • / filter • d delete • tab next file • r refresh • o open folder • q quit"))
	}
	if m.statusMsg != "" {
		sb.WriteString("  " + StatusStyle.Render(m.statusMsg))
	}
	sb.WriteString("\n")

	return sb.String()
}

// firstLine collapses a multi-line replacement for single-row display.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
