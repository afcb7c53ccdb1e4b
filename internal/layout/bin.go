package layout

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"paneboard/internal/module"
)

// setContent installs detached content into bin and destroys what was there.
func (t *Tree) setContent(bin NodeID, content NodeID) {
	b := t.nodes[bin]
	old := b.content
	b.content = content
	t.nodes[content].parent = bin
	if old != 0 && old != content {
		t.destroySubtree(old)
	}
	t.propagate(bin)
}

// Replace parses descriptor and makes it the content of bin. The previous
// content is destroyed. On a parse error bin is left untouched.
func (t *Tree) Replace(bin NodeID, descriptor string) error {
	done := t.op("replace", nodeAttr("bin", bin))
	if _, err := t.lookup(bin, KindBin); err != nil {
		done(err)
		return err
	}
	content, err := t.parseSubtree(descriptor)
	t.observer.Parsed(err)
	if err != nil {
		done(err)
		return err
	}
	t.setContent(bin, content)
	done(nil)
	return nil
}

// SetModule replaces the content of bin with a fresh instance of the named module.
func (t *Tree) SetModule(bin NodeID, name string) error {
	if _, ok := t.reg.Lookup(name); !ok {
		return fmt.Errorf("set module: unknown module %q", name)
	}
	return t.Replace(bin, "("+name+":)")
}

// AddSplit wraps the content C of bin in a new Split: the first child keeps C,
// the second gets an independent copy of C. It returns the new Split.
func (t *Tree) AddSplit(bin NodeID, o Orientation) (NodeID, error) {
	done := t.op("add_split", nodeAttr("bin", bin), attribute.String("paneboard.orientation", o.String()))
	b, err := t.lookup(bin, KindBin)
	if err != nil {
		done(err)
		return 0, err
	}
	orig := b.content
	dup, err := t.copySubtree(orig)
	if err != nil {
		done(err)
		return 0, err
	}

	id, s := t.alloc(KindSplit)
	s.spec = DefaultSplit
	s.spec.Orientation = o
	s.bins = [2]NodeID{t.newBin(orig), t.newBin(dup)}
	for _, c := range s.bins {
		t.nodes[c].parent = id
	}
	s.parent = bin
	b.content = id
	t.propagate(bin)
	done(nil)
	return id, nil
}

// AddTabs wraps the content of bin in a Tabs container with a single page.
func (t *Tree) AddTabs(bin NodeID) (NodeID, error) {
	done := t.op("add_tabs", nodeAttr("bin", bin))
	b, err := t.lookup(bin, KindBin)
	if err != nil {
		done(err)
		return 0, err
	}
	page := t.newBin(b.content)
	id, tabs := t.alloc(KindTabs)
	tabs.pages = []Page{{Bin: page}}
	tabs.parent = bin
	t.nodes[page].parent = id
	b.content = id
	t.propagate(bin)
	done(nil)
	return id, nil
}

// copySubtree deep-copies content node id into a detached subtree. Leaves are
// copied with Copy, or rebuilt from their serialized fragment when Copy is
// unsupported. Nothing is left behind on failure.
func (t *Tree) copySubtree(id NodeID) (NodeID, error) {
	var created []NodeID
	dup, err := t.copyNode(id, &created)
	if err != nil {
		t.discard(created)
		return 0, err
	}
	return dup, nil
}

func (t *Tree) copyNode(id NodeID, created *[]NodeID) (NodeID, error) {
	n, ok := t.nodes[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoNode, id)
	}
	switch n.kind {
	case KindBin:
		c, err := t.copyNode(n.content, created)
		if err != nil {
			return 0, err
		}
		bin := t.newBin(c)
		*created = append(*created, bin)
		return bin, nil

	case KindSplit:
		var bins [2]NodeID
		for i, b := range n.bins {
			c, err := t.copyNode(b, created)
			if err != nil {
				return 0, err
			}
			bins[i] = c
		}
		sid, s := t.alloc(KindSplit)
		*created = append(*created, sid)
		s.spec = n.spec
		s.bins = bins
		for _, b := range bins {
			t.nodes[b].parent = sid
		}
		return sid, nil

	case KindTabs:
		pages := make([]Page, 0, len(n.pages))
		for _, p := range n.pages {
			c, err := t.copyNode(p.Bin, created)
			if err != nil {
				return 0, err
			}
			pages = append(pages, Page{Label: p.Label, Bin: c})
		}
		tid, tn := t.alloc(KindTabs)
		*created = append(*created, tid)
		tn.pages = pages
		tn.active = n.active
		for _, p := range pages {
			t.nodes[p.Bin].parent = tid
		}
		return tid, nil

	case KindLeaf:
		return t.copyLeaf(n, created)
	}
	return 0, fmt.Errorf("%w: %d has unknown kind", ErrNoNode, id)
}

// copyLeaf copies a leaf together with its hide requests.
func (t *Tree) copyLeaf(n *node, created *[]NodeID) (NodeID, error) {
	id, err := t.buildLeafCopy(n, created)
	if err != nil {
		return 0, err
	}
	if c, ok := t.nodes[id]; ok && c.kind == KindLeaf {
		c.userHidden = n.userHidden
		c.selfHidden = c.selfHidden || n.selfHidden
	}
	return id, nil
}

func (t *Tree) buildLeafCopy(n *node, created *[]NodeID) (NodeID, error) {
	inst, err := n.inst.Copy()
	switch {
	case err == nil && inst != nil:
		id := t.attachLeaf(n.module, inst)
		*created = append(*created, id)
		return id, nil
	case err == nil:
		return 0, &ContractViolationError{Module: n.module, Capability: "copy", Err: errors.New("copy returned no instance")}
	case !errors.Is(err, module.ErrUnsupported):
		return 0, &ContractViolationError{Module: n.module, Capability: "copy", Err: err}
	}

	src, err := leafDescriptor(n)
	if err != nil {
		return 0, err
	}
	p := &parser{t: t, src: src}
	id, end, err := p.node(0)
	if err == nil && end != len(src) {
		err = p.syntax(end, "end of input")
	}
	if err != nil {
		t.discard(p.created)
		return 0, &ContractViolationError{Module: n.module, Capability: "copy", Err: fmt.Errorf("rebuild from %q: %w", src, err)}
	}
	*created = append(*created, p.created...)
	return id, nil
}
