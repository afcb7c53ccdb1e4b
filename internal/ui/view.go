package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a self-contained region drawn over the board, such as a modal.
// Update returns the View so a modal can replace itself.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
