package ui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"paneboard/internal/layout"
	"paneboard/internal/ui/textutil"
)

// Board renders a layout tree into a terminal area and hit-tests pointer
// events against the frame it last rendered.
type Board struct {
	Tree  *layout.Tree
	Area  layout.Rect
	Frame layout.Frame

	splits map[layout.NodeID]layout.SplitFrame
	strips map[layout.NodeID]layout.StripFrame
}

// NewBoard creates a board for tree. Call Relayout before rendering.
func NewBoard(tree *layout.Tree) *Board {
	return &Board{Tree: tree}
}

// Relayout recomputes the frame for area.
func (b *Board) Relayout(area layout.Rect) {
	b.Area = area
	b.Frame = b.Tree.Layout(area)
	b.splits = make(map[layout.NodeID]layout.SplitFrame, len(b.Frame.Splits))
	for _, sf := range b.Frame.Splits {
		b.splits[sf.Split] = sf
	}
	b.strips = make(map[layout.NodeID]layout.StripFrame, len(b.Frame.Strips))
	for _, sf := range b.Frame.Strips {
		b.strips[sf.Tabs] = sf
	}
}

// Strip returns the strip frame of a Tabs container.
func (b *Board) Strip(tabs layout.NodeID) (layout.StripFrame, bool) {
	sf, ok := b.strips[tabs]
	return sf, ok
}

// Render draws the whole frame. focused gets a highlighted title bar.
func (b *Board) Render(focused layout.NodeID) string {
	out := b.renderBin(b.Tree.Root(), focused)
	if out == "" {
		return textutil.Fit(Styles.Muted.Render("all panes hidden (SPC u shows them)"), b.Area.W, b.Area.H)
	}
	return out
}

func (b *Board) renderBin(bin, focused layout.NodeID) string {
	r, ok := b.Frame.Rects[bin]
	if !ok || r.Empty() {
		return ""
	}
	return b.renderContent(b.Tree.Content(bin), r, focused)
}

func (b *Board) renderContent(id layout.NodeID, r layout.Rect, focused layout.NodeID) string {
	switch b.Tree.Kind(id) {
	case layout.KindLeaf:
		return b.renderLeaf(id, r, id == focused)

	case layout.KindSplit:
		first, second := b.Tree.Bins(id)
		parts := nonEmpty(b.renderBin(first, focused), b.renderBin(second, focused))
		if len(parts) == 0 {
			return ""
		}
		if b.splits[id].Orientation == layout.Horizontal {
			return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)

	case layout.KindTabs:
		sf, ok := b.strips[id]
		if !ok {
			return ""
		}
		strip := b.renderStrip(sf)
		body := b.renderBin(b.Tree.Pages(id)[sf.Shown].Bin, focused)
		return lipgloss.JoinVertical(lipgloss.Left, nonEmpty(strip, body)...)
	}
	return ""
}

// renderLeaf draws a one-row title bar above the content. Areas of a single
// row get the content only.
func (b *Board) renderLeaf(leaf layout.NodeID, r layout.Rect, focused bool) string {
	inst := b.Tree.Instance(leaf)
	if r.H == 1 {
		return textutil.Fit(inst.Render(r.W, 1), r.W, 1)
	}

	title := " " + b.Tree.Module(leaf)
	if b.Tree.ShowsPicker(b.Tree.BinOf(leaf)) {
		title += " ▾ SPC c"
	}
	style := Styles.PaneTitle
	if focused {
		style = Styles.PaneTitleFocused
	}
	bar := style.Render(textutil.PadRightVisual(title, r.W))
	body := textutil.Fit(inst.Render(r.W, r.H-1), r.W, r.H-1)
	return lipgloss.JoinVertical(lipgloss.Left, bar, body)
}

// tabSegment is the cell range of one page label on a strip.
type tabSegment struct {
	Page   int
	X0, X1 int // [X0, X1)
	Label  string
}

func (b *Board) segments(sf layout.StripFrame) []tabSegment {
	var segs []tabSegment
	x := sf.Rect.X
	end := sf.Rect.X + sf.Rect.W
	for _, page := range sf.Pages {
		if x >= end {
			break
		}
		label := textutil.Truncate(" "+b.Tree.PageLabel(sf.Tabs, page)+" ", end-x)
		w := textutil.VisualWidth(label)
		segs = append(segs, tabSegment{Page: page, X0: x, X1: x + w, Label: label})
		x += w
	}
	return segs
}

func (b *Board) renderStrip(sf layout.StripFrame) string {
	if sf.Rect.Empty() {
		return ""
	}
	var line string
	for _, seg := range b.segments(sf) {
		if seg.Page == sf.Shown {
			line += Styles.TabActive.Render(seg.Label)
		} else {
			line += Styles.Tab.Render(seg.Label)
		}
	}
	return textutil.Fit(line, sf.Rect.W, sf.Rect.H)
}

// BoundaryAt returns the innermost split whose boundary lies under (x, y).
// The cells on both sides of the boundary count as a hit.
func (b *Board) BoundaryAt(x, y int) (layout.NodeID, bool) {
	for _, sf := range slices.Backward(b.Frame.Splits) {
		if sf.Folded || !sf.Rect.Contains(x, y) {
			continue
		}
		pos := x
		if sf.Orientation == layout.Vertical {
			pos = y
		}
		if pos == sf.Boundary || pos == sf.Boundary-1 {
			return sf.Split, true
		}
	}
	return 0, false
}

// TabAt returns the page whose strip label lies under (x, y).
func (b *Board) TabAt(x, y int) (tabs layout.NodeID, page int, ok bool) {
	for _, sf := range b.Frame.Strips {
		if !sf.Rect.Contains(x, y) {
			continue
		}
		for _, seg := range b.segments(sf) {
			if x >= seg.X0 && x < seg.X1 {
				return sf.Tabs, seg.Page, true
			}
		}
	}
	return 0, 0, false
}

// LeafAt returns the visible leaf under (x, y).
func (b *Board) LeafAt(x, y int) (layout.NodeID, bool) {
	for _, leaf := range b.Frame.Leaves {
		if b.Frame.Rects[leaf].Contains(x, y) {
			return leaf, true
		}
	}
	return 0, false
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
