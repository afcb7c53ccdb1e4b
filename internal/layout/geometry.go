package layout

import "math"

// TabStripHeight is the number of rows a Tabs container reserves for its strip.
const TabStripHeight = 1

// Rect is an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// SplitFrame is the computed partition of one Split.
type SplitFrame struct {
	Split  NodeID
	Rect   Rect
	First  Rect
	Second Rect
	// Boundary is the coordinate along the split axis where Second begins.
	Boundary    int
	Orientation Orientation
	// Folded is set when one side is hidden and the other takes the whole rect;
	// no boundary control is shown.
	Folded bool
}

// StripFrame is the page strip of one Tabs container.
type StripFrame struct {
	Tabs NodeID
	Rect Rect
	// Pages lists the visible page indexes in order; hidden pages are excluded.
	Pages []int
	// Shown is the page index whose content is laid out.
	Shown int
}

// Frame is the result of laying out a tree.
type Frame struct {
	Rects  map[NodeID]Rect
	Leaves []NodeID
	Splits []SplitFrame
	Strips []StripFrame
}

// Layout computes rectangles for every visible node inside area. It records
// each Split's rectangle for later drag conversions.
func (t *Tree) Layout(area Rect) Frame {
	f := Frame{Rects: make(map[NodeID]Rect)}
	t.layoutBin(&f, t.root, area)
	return f
}

func (t *Tree) layoutBin(f *Frame, id NodeID, r Rect) {
	b, ok := t.nodes[id]
	if !ok || b.hidden {
		return
	}
	f.Rects[id] = r
	t.layoutContent(f, b.content, r)
}

func (t *Tree) layoutContent(f *Frame, id NodeID, r Rect) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	f.Rects[id] = r
	switch n.kind {
	case KindLeaf:
		f.Leaves = append(f.Leaves, id)

	case KindSplit:
		n.rect = r
		sf := SplitFrame{Split: id, Rect: r, Orientation: n.spec.Orientation}
		v0, v1 := t.binVisible(n.bins[0]), t.binVisible(n.bins[1])
		switch {
		case v0 && v1:
			sf.First, sf.Second = partition(r, n.spec)
			if n.spec.Orientation == Horizontal {
				sf.Boundary = sf.Second.X
			} else {
				sf.Boundary = sf.Second.Y
			}
		case v0:
			sf.First, sf.Folded = r, true
		case v1:
			sf.Second, sf.Folded = r, true
		default:
			return
		}
		f.Splits = append(f.Splits, sf)
		t.layoutBin(f, n.bins[0], sf.First)
		t.layoutBin(f, n.bins[1], sf.Second)

	case KindTabs:
		strip := r
		strip.H = min(TabStripHeight, r.H)
		body := Rect{X: r.X, Y: r.Y + strip.H, W: r.W, H: r.H - strip.H}
		sf := StripFrame{Tabs: id, Rect: strip, Shown: -1}
		for i, p := range n.pages {
			if t.binVisible(p.Bin) {
				sf.Pages = append(sf.Pages, i)
			}
		}
		if len(sf.Pages) == 0 {
			return
		}
		sf.Shown = sf.Pages[0]
		for _, i := range sf.Pages {
			if i == n.active {
				sf.Shown = i
			}
		}
		f.Strips = append(f.Strips, sf)
		t.layoutBin(f, n.pages[sf.Shown].Bin, body)
	}
}

// partition splits r along the spec's axis so the two halves tile r exactly.
func partition(r Rect, spec SplitSpec) (first, second Rect) {
	extent := axisExtent(r, spec.Orientation)
	a := literal(spec, extent)
	if spec.Dominant == Second {
		a = extent - a
	}
	first, second = r, r
	if spec.Orientation == Horizontal {
		first.W = a
		second.X = r.X + a
		second.W = r.W - a
	} else {
		first.H = a
		second.Y = r.Y + a
		second.H = r.H - a
	}
	return first, second
}

// literal converts the configured size into cells for the given extent,
// clamped to [0, extent].
func literal(spec SplitSpec, extent int) int {
	var v float64
	if spec.Unit == Pixels {
		v = spec.Size
	} else {
		v = float64(extent) * spec.Size / 100
	}
	n := int(math.Round(v))
	return max(0, min(n, extent))
}

func axisExtent(r Rect, o Orientation) int {
	if o == Horizontal {
		return r.W
	}
	return r.H
}
