// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies. s must be
// plain text; use lipgloss.Width for styled strings.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in an ellipsis
// when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= VisualWidth(TruncateEllipsis) {
		return runewidth.Truncate(TruncateEllipsis, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRightVisual pads s with spaces to exactly targetWidth columns, truncating
// it first when it is wider.
func PadRightVisual(s string, targetWidth int) string {
	if targetWidth <= 0 {
		return ""
	}
	s = Truncate(s, targetWidth)
	return runewidth.FillRight(s, targetWidth)
}

// Fit forces a possibly styled block into exactly width x height cells:
// long lines wrap and the excess is cropped, short blocks are padded.
func Fit(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Height(height).
		MaxHeight(height).
		Render(s)
}
