package widgets

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"paneboard/internal/module"
)

// Markdown renders its fragment with glamour. Output is cached per width.
type Markdown struct {
	module.Base
	source string
	style  string

	width    int
	rendered string
}

func newMarkdown(fragment, style string) *Markdown {
	return &Markdown{source: fragment, style: style, width: -1}
}

func (m *Markdown) Serialize() (string, error) { return module.Escape(m.source), nil }

func (m *Markdown) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if width != m.width {
		m.width = width
		m.rendered = m.render(width)
	}
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(m.rendered)
}

func (m *Markdown) render(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return m.source
	}
	out, err := r.Render(m.source)
	if err != nil {
		return m.source
	}
	return strings.Trim(out, "\n")
}

func (m *Markdown) Copy() (module.Content, error) {
	return newMarkdown(m.source, m.style), nil
}
