package layout

import (
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
)

// Promote removes a Split: the Content of the chosen side moves into the
// Split's parent Bin unchanged, and the other side plus the Split are destroyed.
func (t *Tree) Promote(split NodeID, keep Side) error {
	done := t.op("promote", nodeAttr("split", split), attribute.String("paneboard.side", keep.String()))
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		done(err)
		return err
	}
	parent := s.parent
	if _, err := t.lookup(parent, KindBin); err != nil {
		err = &StructuralInvariantError{Op: "promote", Node: split, Reason: "split has no parent bin"}
		done(err)
		return err
	}

	kept := s.bins[keep]
	survivor := t.nodes[kept].content
	t.nodes[kept].content = 0
	t.destroySubtree(s.bins[keep.Other()])
	delete(t.nodes, kept)
	delete(t.nodes, split)

	p := t.nodes[parent]
	p.content = survivor
	t.nodes[survivor].parent = parent
	t.propagate(parent)
	done(nil)
	return nil
}

// Swap exchanges the two children of a Split.
func (t *Tree) Swap(split NodeID) error {
	done := t.op("swap", nodeAttr("split", split))
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		done(err)
		return err
	}
	s.bins[0], s.bins[1] = s.bins[1], s.bins[0]
	done(nil)
	return nil
}

// SetMode selects one of the four orientation/dominance toggles.
func (t *Tree) SetMode(split NodeID, o Orientation, dominant Side) error {
	done := t.op("set_mode", nodeAttr("split", split),
		attribute.String("paneboard.orientation", o.String()),
		attribute.String("paneboard.dominant", dominant.String()))
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		done(err)
		return err
	}
	s.spec.Orientation = o
	s.spec.Dominant = dominant
	done(nil)
	return nil
}

// Modes lists the four mutually exclusive split toggles in cycling order.
var Modes = []struct {
	Orientation Orientation
	Dominant    Side
}{
	{Horizontal, First},
	{Horizontal, Second},
	{Vertical, First},
	{Vertical, Second},
}

// CycleMode advances a Split to the next toggle in Modes.
func (t *Tree) CycleMode(split NodeID) error {
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		return err
	}
	next := 0
	for i, m := range Modes {
		if m.Orientation == s.spec.Orientation && m.Dominant == s.spec.Dominant {
			next = (i + 1) % len(Modes)
			break
		}
	}
	return t.SetMode(split, Modes[next].Orientation, Modes[next].Dominant)
}

// Resize sets the literal size and unit of a Split.
func (t *Tree) Resize(split NodeID, size float64, unit Unit) error {
	done := t.op("resize", nodeAttr("split", split), attribute.Float64("paneboard.size", size))
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		done(err)
		return err
	}
	if size < 0 || math.IsNaN(size) || math.IsInf(size, 0) || (unit == Percent && size > 100) {
		err = fmt.Errorf("resize split %d: invalid size %v%s", split, size, unit)
		done(err)
		return err
	}
	s.spec.Size = size
	s.spec.Unit = unit
	done(nil)
	return nil
}

// ToggleUnit switches a Split between pixels and percent, converting the size
// against the extent it was last laid out with so the boundary stays put.
func (t *Tree) ToggleUnit(split NodeID) error {
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		return err
	}
	extent := axisExtent(s.rect, s.spec.Orientation)
	if s.spec.Unit == Pixels {
		size := 0.0
		if extent > 0 {
			size = math.Min(100, roundPercent(s.spec.Size*100/float64(extent)))
		}
		return t.Resize(split, size, Percent)
	}
	return t.Resize(split, float64(literal(s.spec, extent)), Pixels)
}

// BeginDrag arms the resize state machine of a Split at pointer (x, y).
func (t *Tree) BeginDrag(split NodeID, x, y int) error {
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		return err
	}
	s.drag = dragState{armed: true, originX: x, originY: y, startSize: s.spec.Size}
	return nil
}

// DragTo recomputes the literal size from the pointer delta while armed and
// returns the new size. It is a no-op when the Split is idle.
func (t *Tree) DragTo(split NodeID, x, y int) (float64, error) {
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		return 0, err
	}
	if !s.drag.armed {
		return s.spec.Size, nil
	}
	delta := x - s.drag.originX
	if s.spec.Orientation == Vertical {
		delta = y - s.drag.originY
	}
	if s.spec.Dominant == Second {
		delta = -delta
	}
	extent := axisExtent(s.rect, s.spec.Orientation)

	size := s.drag.startSize
	switch s.spec.Unit {
	case Pixels:
		size += float64(delta)
		if extent > 0 {
			size = math.Min(size, float64(extent))
		}
	case Percent:
		if extent > 0 {
			size = roundPercent(size + float64(delta)*100/float64(extent))
		}
		size = math.Min(size, 100)
	}
	s.spec.Size = math.Max(size, 0)
	return s.spec.Size, nil
}

// EndDrag commits the current size and disarms. Losing pointer capture is
// handled the same way.
func (t *Tree) EndDrag(split NodeID) error {
	s, err := t.lookup(split, KindSplit)
	if err != nil {
		return err
	}
	if !s.drag.armed {
		return nil
	}
	done := t.op("drag", nodeAttr("split", split), attribute.Float64("paneboard.size", s.spec.Size))
	s.drag = dragState{}
	done(nil)
	return nil
}

// Dragging reports whether a Split's drag is armed.
func (t *Tree) Dragging(split NodeID) bool {
	s, err := t.lookup(split, KindSplit)
	return err == nil && s.drag.armed
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
