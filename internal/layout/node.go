package layout

import (
	"fmt"

	"paneboard/internal/module"
)

// NodeID addresses a node in a Tree's arena. Zero is never a valid node.
type NodeID int

// Kind is the variant of a node.
type Kind uint8

const (
	KindBin Kind = iota + 1
	KindSplit
	KindTabs
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindBin:
		return "bin"
	case KindSplit:
		return "split"
	case KindTabs:
		return "tabs"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Side selects one child of a Split.
type Side uint8

const (
	First Side = iota
	Second
)

func (s Side) String() string {
	if s == First {
		return "first"
	}
	return "second"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == First {
		return Second
	}
	return First
}

// Orientation of a Split. Horizontal places children left/right, Vertical top/bottom.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Unit of a Split's literal size. Pixels are terminal cells in this renderer.
type Unit uint8

const (
	Pixels Unit = iota
	Percent
)

func (u Unit) String() string {
	if u == Pixels {
		return "px"
	}
	return "%"
}

// SplitSpec is the configuration of a Split.
type SplitSpec struct {
	Orientation Orientation
	// Dominant is the side whose extent is pinned to Size; the other side stretches.
	Dominant Side
	Unit     Unit
	Size     float64
}

// DefaultSplit is used for splits created interactively.
var DefaultSplit = SplitSpec{Orientation: Horizontal, Dominant: First, Unit: Percent, Size: 50}

// Page is one entry of a Tabs container.
type Page struct {
	Label string
	Bin   NodeID
}

// dragState is the per-Split resize state machine: idle when !armed.
type dragState struct {
	armed     bool
	originX   int
	originY   int
	startSize float64
}

type node struct {
	kind   Kind
	parent NodeID

	// KindBin. hidden records the last visibility request sent to the parent.
	content NodeID
	hidden  bool

	// KindSplit
	spec SplitSpec
	bins [2]NodeID
	drag dragState
	rect Rect

	// KindTabs
	pages  []Page
	active int

	// KindLeaf. selfHidden is the module's own hide request, userHidden the
	// one made through Tree.Hide. Either hides the leaf.
	module     string
	inst       module.Content
	selfHidden bool
	userHidden bool
}

func (t *Tree) alloc(kind Kind) (NodeID, *node) {
	t.next++
	n := &node{kind: kind}
	t.nodes[t.next] = n
	return t.next, n
}

func (t *Tree) lookup(id NodeID, kind Kind) (*node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoNode, id)
	}
	if n.kind != kind {
		return nil, fmt.Errorf("%w: %d is a %s, not a %s", ErrNoNode, id, n.kind, kind)
	}
	return n, nil
}

// newBin wraps content in a fresh Bin. The bin's visibility flag is derived
// quietly from the content; no hide request is emitted.
func (t *Tree) newBin(content NodeID) NodeID {
	id, b := t.alloc(KindBin)
	b.content = content
	if c, ok := t.nodes[content]; ok {
		c.parent = id
	}
	b.hidden = !t.contentVisible(content)
	return id
}

// destroySubtree removes id and everything below it, calling Destroy on every
// content instance.
func (t *Tree) destroySubtree(id NodeID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	switch n.kind {
	case KindBin:
		t.destroySubtree(n.content)
	case KindSplit:
		t.destroySubtree(n.bins[0])
		t.destroySubtree(n.bins[1])
	case KindTabs:
		for _, p := range n.pages {
			t.destroySubtree(p.Bin)
		}
	case KindLeaf:
		if n.inst != nil {
			n.inst.Destroy()
		}
	}
	delete(t.nodes, id)
}

// discard drops nodes created by an aborted operation.
func (t *Tree) discard(ids []NodeID) {
	for i := len(ids) - 1; i >= 0; i-- {
		n, ok := t.nodes[ids[i]]
		if !ok {
			continue
		}
		if n.kind == KindLeaf && n.inst != nil {
			n.inst.Destroy()
		}
		delete(t.nodes, ids[i])
	}
}
