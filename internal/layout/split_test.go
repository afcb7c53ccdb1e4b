package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromote(t *testing.T) {
	tests := []struct {
		keep      Side
		want      string
		destroyed string
	}{
		{First, "(dummy:a)", "dummy:b"},
		{Second, "(dummy:b)", "dummy:a"},
	}
	for _, tt := range tests {
		t.Run(tt.keep.String(), func(t *testing.T) {
			tree, log := mount(t, "{Dh50p(dummy:a)(dummy:b)}")
			split := tree.Content(tree.Root())
			first, second := tree.Bins(split)
			kept := map[Side]NodeID{First: tree.Content(first), Second: tree.Content(second)}[tt.keep]

			require.NoError(t, tree.Promote(split, tt.keep))
			assert.False(t, tree.Exists(split))
			assert.False(t, tree.Exists(first))
			assert.False(t, tree.Exists(second))
			assert.Equal(t, kept, tree.Content(tree.Root()), "survivor moves unchanged")
			assert.Equal(t, tree.Root(), tree.Parent(kept))
			assert.Equal(t, []string{tt.destroyed}, log.names)
			assert.Equal(t, tt.want, mustSerialize(t, tree))
			assert.Equal(t, 2, tree.Len(), "root bin and survivor")
		})
	}
}

func TestPromote_Nested(t *testing.T) {
	tree, _ := mount(t, "{Dh4p(dummy:a){Dv2p[(dummy:b)(dummy:c)](dummy:d)}}")
	_, second := tree.Bins(tree.Content(tree.Root()))
	inner := tree.Content(second)

	require.NoError(t, tree.Promote(inner, First))
	assert.Equal(t, "{Dh4p(dummy:a)[(dummy:b)(dummy:c)]}", mustSerialize(t, tree))
	assert.Equal(t, KindTabs, tree.Kind(tree.Content(second)))
}

func TestPromote_UnknownSplit(t *testing.T) {
	tree, _ := mount(t, "(dummy:)")
	err := tree.Promote(tree.Content(tree.Root()), First)
	assert.True(t, errors.Is(err, ErrNoNode))
}

func TestSwap(t *testing.T) {
	tree, _ := mount(t, "{dv30%(dummy:a)(text:b)}")
	split := tree.Content(tree.Root())
	require.NoError(t, tree.Swap(split))
	assert.Equal(t, "{dv30%(text:b)(dummy:a)}", mustSerialize(t, tree))
}

func TestCycleMode(t *testing.T) {
	tree, _ := mount(t, "{Dh10p(dummy:)(dummy:)}")
	split := tree.Content(tree.Root())

	var got []string
	for range Modes {
		require.NoError(t, tree.CycleMode(split))
		s, _ := tree.SplitSpec(split)
		got = append(got, s.Orientation.String()+"/"+s.Dominant.String())
	}
	assert.Equal(t, []string{
		"horizontal/second",
		"vertical/first",
		"vertical/second",
		"horizontal/first",
	}, got)
}

func TestResize(t *testing.T) {
	tree, _ := mount(t, "{Dh10p(dummy:)(dummy:)}")
	split := tree.Content(tree.Root())

	require.NoError(t, tree.Resize(split, 42.5, Percent))
	assert.Equal(t, "{Dh42.5%(dummy:)(dummy:)}", mustSerialize(t, tree))

	assert.Error(t, tree.Resize(split, -1, Pixels))
	assert.Error(t, tree.Resize(split, 101, Percent))
	s, _ := tree.SplitSpec(split)
	assert.Equal(t, 42.5, s.Size, "rejected resize leaves the size alone")
}

func TestToggleUnit(t *testing.T) {
	tree, _ := mount(t, "{Dh20p(dummy:)(dummy:)}")
	split := tree.Content(tree.Root())
	tree.Layout(Rect{W: 80, H: 24})

	require.NoError(t, tree.ToggleUnit(split))
	s, _ := tree.SplitSpec(split)
	assert.Equal(t, SplitSpec{Orientation: Horizontal, Dominant: First, Unit: Percent, Size: 25}, s)

	require.NoError(t, tree.ToggleUnit(split))
	s, _ = tree.SplitSpec(split)
	assert.Equal(t, SplitSpec{Orientation: Horizontal, Dominant: First, Unit: Pixels, Size: 20}, s)
}

func TestDrag(t *testing.T) {
	t.Run("pixels first dominant", func(t *testing.T) {
		tree, _ := mount(t, "{Dh20p(dummy:)(dummy:)}")
		split := tree.Content(tree.Root())
		tree.Layout(Rect{W: 100, H: 10})

		size, err := tree.DragTo(split, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, 20.0, size, "idle split ignores motion")

		require.NoError(t, tree.BeginDrag(split, 20, 5))
		assert.True(t, tree.Dragging(split))
		size, _ = tree.DragTo(split, 35, 5)
		assert.Equal(t, 35.0, size)
		size, _ = tree.DragTo(split, 500, 5)
		assert.Equal(t, 100.0, size, "clamped to the split's extent")
		size, _ = tree.DragTo(split, -300, 5)
		assert.Equal(t, 0.0, size)
		size, _ = tree.DragTo(split, 30, 5)
		assert.Equal(t, 30.0, size, "deltas are measured from the drag origin")

		require.NoError(t, tree.EndDrag(split))
		assert.False(t, tree.Dragging(split))
		assert.Equal(t, "{Dh30p(dummy:)(dummy:)}", mustSerialize(t, tree))
	})

	t.Run("percent second dominant vertical", func(t *testing.T) {
		tree, _ := mount(t, "{dv50%(dummy:)(dummy:)}")
		split := tree.Content(tree.Root())
		tree.Layout(Rect{W: 10, H: 40})

		require.NoError(t, tree.BeginDrag(split, 0, 20))
		size, _ := tree.DragTo(split, 0, 30)
		assert.Equal(t, 25.0, size, "moving the boundary down shrinks the second side")
		size, _ = tree.DragTo(split, 0, 7)
		assert.Equal(t, 82.5, size)
		require.NoError(t, tree.EndDrag(split))
	})
}

func TestMutationObserver(t *testing.T) {
	obs := &recordingObserver{}
	tree, _ := mount(t, "{Dh50p(dummy:a)(dummy:b)}", WithObserver(obs))
	split := tree.Content(tree.Root())

	require.NoError(t, tree.Swap(split))
	require.Error(t, tree.Swap(tree.Root()))
	require.NoError(t, tree.Promote(split, First))

	assert.Equal(t, []string{"swap:ok", "swap:err", "promote:ok"}, obs.ops)
	assert.Equal(t, 1, obs.parses)
}

type recordingObserver struct {
	parses int
	ops    []string
}

func (r *recordingObserver) Parsed(error) { r.parses++ }

func (r *recordingObserver) Mutated(op string, err error) {
	if err != nil {
		r.ops = append(r.ops, op+":err")
		return
	}
	r.ops = append(r.ops, op+":ok")
}
