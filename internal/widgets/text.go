package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"paneboard/internal/module"
)

// Text shows a literal string wrapped to the pane width.
type Text struct {
	module.Base
	text string
}

func newText(fragment string, env module.Env) (module.Content, error) {
	return &Text{text: fragment}, nil
}

func (t *Text) Serialize() (string, error) { return module.Escape(t.text), nil }

func (t *Text) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(t.text)
}

func (t *Text) Copy() (module.Content, error) { return &Text{text: t.text}, nil }
