package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hideEvents []string

func (h *hideEvents) hook(bin NodeID, hidden bool) {
	*h = append(*h, fmt.Sprintf("%d:%t", bin, hidden))
}

func (h *hideEvents) take() []string {
	out := *h
	*h = nil
	return out
}

func ev(bin NodeID, hidden bool) string { return fmt.Sprintf("%d:%t", bin, hidden) }

func TestVisibility_RequestsFoldUpward(t *testing.T) {
	var events hideEvents
	tree, _ := mount(t, "{Dh4p(dummy:a)[(dummy:b)(dummy:c)]}", WithHideHook(events.hook))
	root := tree.Root()
	split := tree.Content(root)
	binA, binTabs := tree.Bins(split)
	tabs := tree.Content(binTabs)
	pages := tree.Pages(tabs)
	leafA := tree.Content(binA)
	leafB, leafC := tree.Content(pages[0].Bin), tree.Content(pages[1].Bin)

	paneAt(t, tree, leafA).Hide(true)
	assert.Equal(t, []string{ev(binA, true)}, events.take(), "sibling keeps the split visible")
	assert.True(t, tree.Visible(split))

	paneAt(t, tree, leafB).Hide(true)
	assert.Equal(t, []string{ev(pages[0].Bin, true)}, events.take())
	assert.True(t, tree.Visible(tabs))

	paneAt(t, tree, leafC).Hide(true)
	assert.Equal(t, []string{
		ev(pages[1].Bin, true),
		ev(binTabs, true),
		ev(root, true),
	}, events.take(), "last visible leaf hides every ancestor, root included")
	assert.False(t, tree.Visible(root))

	paneAt(t, tree, leafC).Hide(true)
	assert.Empty(t, events.take(), "repeated requests change nothing")

	paneAt(t, tree, leafA).Hide(false)
	assert.Equal(t, []string{ev(binA, false), ev(root, false)}, events.take())
	assert.False(t, tree.Visible(binTabs))
}

func TestVisibility_HideAndShowAll(t *testing.T) {
	var events hideEvents
	tree, _ := mount(t, "{Dh4p(dummy:a){Dv2p(dummy:b)(dummy:c)}}", WithHideHook(events.hook))
	_, second := tree.Bins(tree.Content(tree.Root()))

	require.NoError(t, tree.Hide(second, true))
	assert.False(t, tree.Visible(second))
	assert.True(t, tree.Visible(tree.Root()))
	assert.NotEmpty(t, events.take())

	tree.ShowAll()
	for _, leaf := range tree.Leaves() {
		assert.True(t, tree.Visible(leaf))
	}
	assert.True(t, tree.Visible(second))

	assert.Error(t, tree.Hide(tree.Content(tree.Root()), true), "hide takes a bin")
}

func TestVisibility_SurvivesMutations(t *testing.T) {
	tree, _ := mount(t, "{Dh4p(dummy:a)(dummy:b)}")
	first, second := tree.Bins(tree.Content(tree.Root()))
	require.NoError(t, tree.Hide(second, true))

	// Replacing hidden content with fresh content makes the bin visible again.
	require.NoError(t, tree.Replace(second, "(text:new)"))
	assert.True(t, tree.Visible(second))

	// A copy of a hidden leaf is hidden too, so splitting it shows nothing new.
	require.NoError(t, tree.Hide(first, true))
	split, err := tree.AddSplit(first, Vertical)
	require.NoError(t, err)
	a, b := tree.Bins(split)
	assert.False(t, tree.Visible(a))
	assert.False(t, tree.Visible(b))
	assert.False(t, tree.Visible(first))

	tree.ShowAll()
	assert.True(t, tree.Visible(a))
	assert.True(t, tree.Visible(b))
}

func TestVisibility_HiddenRootStaysHiddenAfterSplit(t *testing.T) {
	tree, _ := mount(t, "(dummy:a)")
	root := tree.Root()
	require.NoError(t, tree.Hide(root, true))

	_, err := tree.AddSplit(root, Horizontal)
	require.NoError(t, err)
	assert.False(t, tree.Visible(root))
	assert.Empty(t, tree.Layout(Rect{W: 20, H: 5}).Leaves)
}

func TestVisibility_UserAndModuleHidesAreIndependent(t *testing.T) {
	tree, _ := mount(t, "{Dh4p(dummy:a)(dummy:b)}")
	_, second := tree.Bins(tree.Content(tree.Root()))
	pane := paneAt(t, tree, tree.Content(second))

	// The module reappearing does not undo the user's hide.
	require.NoError(t, tree.Hide(second, true))
	pane.Hide(true)
	pane.Hide(false)
	assert.False(t, tree.Visible(second))

	// ShowAll clears the user's hide but not the module's.
	pane.Hide(true)
	tree.ShowAll()
	assert.False(t, tree.Visible(second))
	pane.Hide(false)
	assert.True(t, tree.Visible(second))

	// Hide(bin, false) cannot show a pane its module hid.
	pane.Hide(true)
	require.NoError(t, tree.Hide(second, false))
	assert.False(t, tree.Visible(second))
}

func TestVisibility_TabsStripSkipsHiddenPages(t *testing.T) {
	tree, _ := mount(t, "[(dummy:a)(dummy:b)(dummy:c)]")
	tabs := tree.Content(tree.Root())
	pages := tree.Pages(tabs)
	require.NoError(t, tree.SelectPage(tabs, 1))
	require.NoError(t, tree.Hide(pages[1].Bin, true))

	f := tree.Layout(Rect{W: 20, H: 5})
	require.Len(t, f.Strips, 1)
	assert.Equal(t, []int{0, 2}, f.Strips[0].Pages)
	assert.Equal(t, 0, f.Strips[0].Shown, "falls back to the first visible page")
	assert.Equal(t, []NodeID{tree.Content(pages[0].Bin)}, f.Leaves)
}
