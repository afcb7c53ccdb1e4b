package layout

import "go.opentelemetry.io/otel/attribute"

// A container is visible iff at least one child Bin is visible. A Bin is
// visible iff it has not asked its parent to hide, and it asks exactly when its
// content is not visible. Requests travel upward only while they change
// something; the root Bin's request goes nowhere.

func (t *Tree) contentVisible(id NodeID) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	switch n.kind {
	case KindLeaf:
		return !n.selfHidden && !n.userHidden
	case KindSplit:
		return t.binVisible(n.bins[0]) || t.binVisible(n.bins[1])
	case KindTabs:
		for _, p := range n.pages {
			if t.binVisible(p.Bin) {
				return true
			}
		}
		return false
	case KindBin:
		return t.binVisible(id)
	}
	return false
}

func (t *Tree) binVisible(id NodeID) bool {
	n, ok := t.nodes[id]
	return ok && n.kind == KindBin && !n.hidden
}

// propagate re-evaluates bin after its content changed visibility and forwards
// the resulting hide request upward until it stops changing anything.
func (t *Tree) propagate(bin NodeID) {
	for bin != 0 {
		b, ok := t.nodes[bin]
		if !ok || b.kind != KindBin {
			return
		}
		hidden := !t.contentVisible(b.content)
		if hidden == b.hidden {
			return
		}
		b.hidden = hidden
		if t.hideHook != nil {
			t.hideHook(bin, hidden)
		}
		container, ok := t.nodes[b.parent]
		if !ok {
			return
		}
		bin = container.parent
	}
}

// hideLeaf records the module's own hide request.
func (t *Tree) hideLeaf(leaf NodeID, hidden bool) {
	n, err := t.lookup(leaf, KindLeaf)
	if err != nil || n.selfHidden == hidden {
		return
	}
	n.selfHidden = hidden
	t.propagate(n.parent)
}

func (t *Tree) userHideLeaf(leaf NodeID, hidden bool) {
	n, err := t.lookup(leaf, KindLeaf)
	if err != nil || n.userHidden == hidden {
		return
	}
	n.userHidden = hidden
	t.propagate(n.parent)
}

// Hide sets the user's hidden flag of the content in bin: the leaf it holds,
// or every leaf beneath it when it holds a container. A leaf whose module
// asked to hide stays hidden after Hide(bin, false).
func (t *Tree) Hide(bin NodeID, hidden bool) error {
	done := t.op("hide", nodeAttr("bin", bin), attribute.Bool("paneboard.hidden", hidden))
	b, err := t.lookup(bin, KindBin)
	if err != nil {
		done(err)
		return err
	}
	t.forLeaves(b.content, func(leaf NodeID) { t.userHideLeaf(leaf, hidden) })
	done(nil)
	return nil
}

// ShowAll clears every hide request made through Hide. Modules that asked to
// hide themselves stay hidden.
func (t *Tree) ShowAll() {
	for _, leaf := range t.Leaves() {
		t.userHideLeaf(leaf, false)
	}
}

// Visible reports whether id is visible.
func (t *Tree) Visible(id NodeID) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	if n.kind == KindBin {
		return !n.hidden
	}
	return t.contentVisible(id)
}

func (t *Tree) forLeaves(id NodeID, fn func(NodeID)) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	switch n.kind {
	case KindLeaf:
		fn(id)
	case KindBin:
		t.forLeaves(n.content, fn)
	case KindSplit:
		t.forLeaves(n.bins[0], fn)
		t.forLeaves(n.bins[1], fn)
	case KindTabs:
		for _, p := range n.pages {
			t.forLeaves(p.Bin, fn)
		}
	}
}
