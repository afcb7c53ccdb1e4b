package layout

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// AddPage parses descriptor into a new page appended to tabs and selects it.
// It returns the new page index.
func (t *Tree) AddPage(tabs NodeID, descriptor, label string) (int, error) {
	done := t.op("add_page", nodeAttr("tabs", tabs))
	n, err := t.lookup(tabs, KindTabs)
	if err != nil {
		done(err)
		return 0, err
	}
	content, err := t.parseSubtree(descriptor)
	t.observer.Parsed(err)
	if err != nil {
		done(err)
		return 0, err
	}
	idx := t.insertPage(tabs, n, len(n.pages), content, label)
	done(nil)
	return idx, nil
}

// DuplicatePage inserts an independent copy of page index right after it and
// selects the copy.
func (t *Tree) DuplicatePage(tabs NodeID, index int) (int, error) {
	done := t.op("duplicate_page", nodeAttr("tabs", tabs), attribute.Int("paneboard.page", index))
	n, err := t.lookup(tabs, KindTabs)
	if err == nil {
		err = checkIndex(n, index)
	}
	if err != nil {
		done(err)
		return 0, err
	}
	src := n.pages[index]
	dup, err := t.copySubtree(t.nodes[src.Bin].content)
	if err != nil {
		done(err)
		return 0, err
	}
	idx := t.insertPage(tabs, n, index+1, dup, src.Label)
	done(nil)
	return idx, nil
}

func (t *Tree) insertPage(tabs NodeID, n *node, at int, content NodeID, label string) int {
	bin := t.newBin(content)
	t.nodes[bin].parent = tabs
	n.pages = append(n.pages, Page{})
	copy(n.pages[at+1:], n.pages[at:])
	n.pages[at] = Page{Label: label, Bin: bin}
	n.active = at
	t.propagate(n.parent)
	return at
}

// RemovePage destroys page index. When one page is left the Tabs collapses:
// it is destroyed and the remaining page's content moves into its parent Bin.
// The sole page of a Tabs cannot be removed; remove the Tabs' parent instead.
func (t *Tree) RemovePage(tabs NodeID, index int) error {
	done := t.op("remove_page", nodeAttr("tabs", tabs), attribute.Int("paneboard.page", index))
	n, err := t.lookup(tabs, KindTabs)
	if err == nil {
		err = checkIndex(n, index)
	}
	if err == nil && len(n.pages) < 2 {
		err = &StructuralInvariantError{Op: "remove_page", Node: tabs, Reason: "no page would remain to promote"}
	}
	if err == nil {
		if _, perr := t.lookup(n.parent, KindBin); perr != nil {
			err = &StructuralInvariantError{Op: "remove_page", Node: tabs, Reason: "tabs has no parent bin"}
		}
	}
	if err != nil {
		done(err)
		return err
	}

	t.destroySubtree(n.pages[index].Bin)
	n.pages = append(n.pages[:index], n.pages[index+1:]...)
	if n.active > index || n.active >= len(n.pages) {
		n.active--
	}
	if n.active < 0 {
		n.active = 0
	}

	if len(n.pages) == 1 {
		t.collapseTabs(tabs, n)
	} else {
		t.propagate(n.parent)
	}
	done(nil)
	return nil
}

func (t *Tree) collapseTabs(tabs NodeID, n *node) {
	parent := n.parent
	page := n.pages[0].Bin
	survivor := t.nodes[page].content
	delete(t.nodes, page)
	delete(t.nodes, tabs)
	p := t.nodes[parent]
	p.content = survivor
	t.nodes[survivor].parent = parent
	t.propagate(parent)
}

// Reorder moves page from to position to. The selected page stays selected.
func (t *Tree) Reorder(tabs NodeID, from, to int) error {
	done := t.op("reorder", nodeAttr("tabs", tabs), attribute.Int("paneboard.from", from), attribute.Int("paneboard.to", to))
	n, err := t.lookup(tabs, KindTabs)
	if err == nil {
		err = checkIndex(n, from)
	}
	if err == nil {
		err = checkIndex(n, to)
	}
	if err != nil {
		done(err)
		return err
	}
	activeBin := n.pages[n.active].Bin
	p := n.pages[from]
	n.pages = append(n.pages[:from], n.pages[from+1:]...)
	n.pages = append(n.pages, Page{})
	copy(n.pages[to+1:], n.pages[to:])
	n.pages[to] = p
	for i, pg := range n.pages {
		if pg.Bin == activeBin {
			n.active = i
		}
	}
	done(nil)
	return nil
}

// SelectPage makes page index the visible one.
func (t *Tree) SelectPage(tabs NodeID, index int) error {
	n, err := t.lookup(tabs, KindTabs)
	if err == nil {
		err = checkIndex(n, index)
	}
	if err != nil {
		return err
	}
	n.active = index
	return nil
}

// SetPageLabel changes the runtime label of a page.
func (t *Tree) SetPageLabel(tabs NodeID, index int, label string) error {
	n, err := t.lookup(tabs, KindTabs)
	if err == nil {
		err = checkIndex(n, index)
	}
	if err != nil {
		return err
	}
	n.pages[index].Label = label
	return nil
}

// PageLabel returns the label of a page, defaulting to the module name of the
// page's first leaf.
func (t *Tree) PageLabel(tabs NodeID, index int) string {
	n, err := t.lookup(tabs, KindTabs)
	if err != nil || checkIndex(n, index) != nil {
		return ""
	}
	if l := n.pages[index].Label; l != "" {
		return l
	}
	if leaf := t.firstLeaf(n.pages[index].Bin); leaf != 0 {
		return t.nodes[leaf].module
	}
	return fmt.Sprintf("page %d", index+1)
}

func (t *Tree) firstLeaf(id NodeID) NodeID {
	var first NodeID
	t.forLeaves(id, func(leaf NodeID) {
		if first == 0 {
			first = leaf
		}
	})
	return first
}

func checkIndex(n *node, index int) error {
	if index < 0 || index >= len(n.pages) {
		return fmt.Errorf("page index %d out of range [0, %d)", index, len(n.pages))
	}
	return nil
}
