package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SaveProfileModal prompts for the profile name to save the board under.
type SaveProfileModal struct {
	input textinput.Model
}

var _ View = (*SaveProfileModal)(nil)

// NewSaveProfileModal creates the prompt prefilled with current.
func NewSaveProfileModal(current string) *SaveProfileModal {
	ti := textinput.New()
	ti.Placeholder = "profile-name"
	ti.Width = 40
	ti.SetValue(current)
	ti.Focus()
	return &SaveProfileModal{input: ti}
}

// Init implements View.
func (m *SaveProfileModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *SaveProfileModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name != "" {
				return m, func() tea.Msg { return SaveProfileMsg{Name: name} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *SaveProfileModal) View() string {
	content := Styles.Title.Render("Save profile") + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: save  Esc: cancel")
	return Styles.Box.Render(content)
}
