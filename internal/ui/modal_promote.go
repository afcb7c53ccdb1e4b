package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"paneboard/internal/layout"
)

// PromoteModal asks which side of a split survives its removal.
// f/1 keeps the first side, s/2 the second; arrows move the cursor.
type PromoteModal struct {
	split  layout.NodeID
	labels [2]string
	cursor layout.Side
}

var _ View = (*PromoteModal)(nil)

// NewPromoteModal creates a chooser for split. first and second describe the
// two sides; the focused side is preselected.
func NewPromoteModal(split layout.NodeID, first, second string, focused layout.Side) *PromoteModal {
	return &PromoteModal{split: split, labels: [2]string{first, second}, cursor: focused}
}

// Cursor returns the side that enter would keep.
func (m *PromoteModal) Cursor() layout.Side { return m.cursor }

// Init implements View.
func (m *PromoteModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *PromoteModal) Update(msg tea.Msg) (View, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch msgKey.String() {
	case "esc":
		return m, func() tea.Msg { return DismissModalMsg{} }
	case "up", "down", "left", "right", "j", "k", "tab":
		m.cursor = m.cursor.Other()
	case "f", "1":
		return m, m.keep(layout.First)
	case "s", "2":
		return m, m.keep(layout.Second)
	case "enter":
		return m, m.keep(m.cursor)
	}
	return m, nil
}

func (m *PromoteModal) keep(side layout.Side) tea.Cmd {
	split := m.split
	return func() tea.Msg { return PromoteMsg{Split: split, Keep: side} }
}

// View implements View.
func (m *PromoteModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Remove split: keep which side?"))
	b.WriteString("\n\n")
	for i, side := range []layout.Side{layout.First, layout.Second} {
		line := side.String() + ": " + m.labels[i]
		if side == m.cursor {
			b.WriteString(Styles.Selected.Render("> " + line))
		} else {
			b.WriteString(Styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("f/s: keep first/second  Enter: keep selected  Esc: cancel"))
	return Styles.Box.Render(b.String())
}
