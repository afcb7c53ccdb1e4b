package layout

import (
	"errors"
	"strconv"
	"strings"

	"paneboard/internal/module"
)

// Serialize returns the descriptor for the whole tree. It fails with a
// ContractViolationError if any content instance cannot serialize itself.
func (t *Tree) Serialize() (string, error) {
	var b strings.Builder
	if err := t.serialize(&b, t.root, true); err != nil {
		return "", err
	}
	return b.String(), nil
}

// SerializeNode returns the descriptor of the subtree rooted at id.
func (t *Tree) SerializeNode(id NodeID) (string, error) {
	if !t.Exists(id) {
		return "", ErrNoNode
	}
	var b strings.Builder
	if err := t.serialize(&b, id, true); err != nil {
		return "", err
	}
	return b.String(), nil
}

// String returns the descriptor, writing an empty fragment for content that
// cannot serialize itself.
func (t *Tree) String() string {
	var b strings.Builder
	_ = t.serialize(&b, t.root, false)
	return b.String()
}

func (t *Tree) serialize(b *strings.Builder, id NodeID, strict bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return ErrNoNode
	}
	switch n.kind {
	case KindBin:
		return t.serialize(b, n.content, strict)
	case KindSplit:
		b.WriteByte('{')
		if n.spec.Dominant == First {
			b.WriteByte('D')
		} else {
			b.WriteByte('d')
		}
		if n.spec.Orientation == Horizontal {
			b.WriteByte('h')
		} else {
			b.WriteByte('v')
		}
		b.WriteString(formatSize(n.spec.Size))
		if n.spec.Unit == Pixels {
			b.WriteByte('p')
		} else {
			b.WriteByte('%')
		}
		for _, c := range n.bins {
			if err := t.serialize(b, c, strict); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case KindTabs:
		b.WriteByte('[')
		for _, p := range n.pages {
			if err := t.serialize(b, p.Bin, strict); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindLeaf:
		frag, err := n.inst.Serialize()
		if err != nil {
			if strict {
				return &ContractViolationError{Module: n.module, Capability: "serialize", Err: err}
			}
			frag = ""
		}
		b.WriteByte('(')
		b.WriteString(n.module)
		b.WriteByte(':')
		b.WriteString(frag)
		b.WriteByte(')')
	}
	return nil
}

// leafDescriptor serializes a single leaf for the copy-by-reparse fallback.
func leafDescriptor(n *node) (string, error) {
	frag, err := n.inst.Serialize()
	if err != nil {
		if errors.Is(err, module.ErrUnsupported) {
			return "", &ContractViolationError{Module: n.module, Capability: "copy", Err: err}
		}
		return "", &ContractViolationError{Module: n.module, Capability: "serialize", Err: err}
	}
	return "(" + n.module + ":" + frag + ")", nil
}

func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
