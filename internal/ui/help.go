package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// renderFooter renders the key help line for the focused area.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var keys help.KeyMap = m.keys
	if m.focus == focusSearch {
		keys = searchKeys{m.keys}
	}
	content := m.help.View(keys)
	if m.width < LayoutCompactWidth {
		return content
	}
	label := styles.FaintText.Render(m.theme.Name)
	gap := m.width - lipgloss.Width(content) - lipgloss.Width(label)
	if gap < 1 {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().Width(gap).Render(""), label)
}
