package ui

import tea "github.com/charmbracelet/bubbletea"

// keyToPTYBytes converts a key press into the bytes a terminal would send.
// Unknown keys return nil.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	var b []byte
	switch msg.Type {
	case tea.KeyEnter:
		b = []byte{'\r'}
	case tea.KeyBackspace:
		b = []byte{0x7f}
	case tea.KeyTab:
		b = []byte{'\t'}
	case tea.KeySpace:
		b = []byte{' '}
	case tea.KeyUp:
		b = []byte("\x1b[A")
	case tea.KeyDown:
		b = []byte("\x1b[B")
	case tea.KeyRight:
		b = []byte("\x1b[C")
	case tea.KeyLeft:
		b = []byte("\x1b[D")
	case tea.KeyCtrlD:
		b = []byte{0x04}
	case tea.KeyCtrlL:
		b = []byte{0x0c}
	case tea.KeyEsc:
		b = []byte{0x1b}
	default:
		if len(msg.Runes) > 0 {
			b = []byte(string(msg.Runes))
		}
	}
	if msg.Alt && len(b) > 0 {
		b = append([]byte{0x1b}, b...)
	}
	return b
}
