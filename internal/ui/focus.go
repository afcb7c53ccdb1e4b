package ui

import "paneboard/internal/layout"

// FocusManager tracks and rotates focus across the visible leaves of a board.
type FocusManager struct {
	Current  layout.NodeID   // focused leaf; zero when nothing is focused
	Order    []layout.NodeID // tab order for focus rotation
	OnChange func(from, to layout.NodeID)
}

// Sync replaces the focus order. Focus stays on the current leaf when it is
// still present and otherwise moves to the first one.
func (f *FocusManager) Sync(order []layout.NodeID) {
	f.Order = order
	for _, id := range order {
		if id == f.Current {
			return
		}
	}
	var to layout.NodeID
	if len(order) > 0 {
		to = order[0]
	}
	f.set(to)
}

// Next advances focus to the next leaf in order.
// Returns the new current focus.
func (f *FocusManager) Next() layout.NodeID {
	return f.step(1)
}

// Prev moves focus to the previous leaf in order.
func (f *FocusManager) Prev() layout.NodeID {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) layout.NodeID {
	if len(f.Order) == 0 {
		return 0
	}
	idx := -1
	for i, id := range f.Order {
		if id == f.Current {
			idx = i
			break
		}
	}
	if idx < 0 && delta < 0 {
		idx = 0
	}
	n := len(f.Order)
	f.set(f.Order[((idx+delta)%n+n)%n])
	return f.Current
}

// SetFocus sets focus to the given leaf.
// Returns true if the leaf is in order.
func (f *FocusManager) SetFocus(id layout.NodeID) bool {
	for _, o := range f.Order {
		if o == id {
			f.set(id)
			return true
		}
	}
	return false
}

func (f *FocusManager) set(to layout.NodeID) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
