package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the transient help bar shown after SPC. It lists
// the keys that may follow the pending sequence in mode.
func RenderKeybindHelp(keyHandler *KeyHandler, mode AppMode, width int) string {
	if keyHandler == nil {
		return ""
	}
	bindings := NewKeyMap(keyHandler.Registry, keyHandler, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	h := help.New()
	h.Styles.ShortKey = Styles.Selected
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	prefix := keyHandler.Sequence()
	if prefix == "" {
		prefix = keyHandler.LeaderSeq
	}
	// border, padding and the prefix label
	if w := width - 5 - lipgloss.Width(prefix); w > 0 {
		h.Width = w
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)
	return box.Render(Styles.Muted.Render(prefix) + " " + h.ShortHelpView(bindings))
}
