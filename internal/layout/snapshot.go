package layout

// Snapshot is a structural dump of a tree for inspection tools. Bins are
// folded into their content; Hidden reports the Bin's state.
type Snapshot struct {
	ID          NodeID     `yaml:"id" json:"id"`
	Kind        string     `yaml:"kind" json:"kind"`
	Hidden      bool       `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Label       string     `yaml:"label,omitempty" json:"label,omitempty"`
	Selected    bool       `yaml:"selected,omitempty" json:"selected,omitempty"`
	Module      string     `yaml:"module,omitempty" json:"module,omitempty"`
	Fragment    string     `yaml:"fragment,omitempty" json:"fragment,omitempty"`
	Orientation string     `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	Dominant    string     `yaml:"dominant,omitempty" json:"dominant,omitempty"`
	Size        float64    `yaml:"size,omitempty" json:"size,omitempty"`
	Unit        string     `yaml:"unit,omitempty" json:"unit,omitempty"`
	Children    []Snapshot `yaml:"children,omitempty" json:"children,omitempty"`
}

// Snapshot dumps the tree starting at the root Bin.
func (t *Tree) Snapshot() Snapshot {
	return t.snapshotBin(t.root)
}

func (t *Tree) snapshotBin(bin NodeID) Snapshot {
	b, ok := t.nodes[bin]
	if !ok {
		return Snapshot{}
	}
	s := t.snapshotContent(b.content)
	s.Hidden = b.hidden
	return s
}

func (t *Tree) snapshotContent(id NodeID) Snapshot {
	n, ok := t.nodes[id]
	if !ok {
		return Snapshot{}
	}
	s := Snapshot{ID: id, Kind: n.kind.String()}
	switch n.kind {
	case KindLeaf:
		s.Module = n.module
		if frag, err := n.inst.Serialize(); err == nil {
			s.Fragment = frag
		}
	case KindSplit:
		s.Orientation = n.spec.Orientation.String()
		s.Dominant = n.spec.Dominant.String()
		s.Size = n.spec.Size
		s.Unit = n.spec.Unit.String()
		s.Children = []Snapshot{t.snapshotBin(n.bins[0]), t.snapshotBin(n.bins[1])}
	case KindTabs:
		for i, p := range n.pages {
			c := t.snapshotBin(p.Bin)
			c.Label = t.PageLabel(id, i)
			c.Selected = i == n.active
			s.Children = append(s.Children, c)
		}
	}
	return s
}
