package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paneboard/internal/module"
)

func TestAddSplit_CopyIsIndependent(t *testing.T) {
	tree, log := mount(t, "(dummy:state)")
	root := tree.Root()
	orig := tree.Content(root)

	split, err := tree.AddSplit(root, Horizontal)
	require.NoError(t, err)
	require.Equal(t, KindSplit, tree.Kind(split))

	first, second := tree.Bins(split)
	assert.Equal(t, orig, tree.Content(first), "first child keeps the original instance")
	dup := tree.Content(second)
	require.NotEqual(t, orig, dup)

	paneAt(t, tree, dup).value = "changed"
	assert.Equal(t, "state", paneAt(t, tree, orig).value)
	assert.Equal(t, "{Dh50%(dummy:state)(dummy:changed)}", mustSerialize(t, tree))
	assert.Equal(t, 2, log.live())
}

func TestAddSplit_FallsBackToReparse(t *testing.T) {
	tree, log := mount(t, "(nocopy:abc)")
	split, err := tree.AddSplit(tree.Root(), Vertical)
	require.NoError(t, err)

	first, second := tree.Bins(split)
	a, b := paneAt(t, tree, tree.Content(first)), paneAt(t, tree, tree.Content(second))
	assert.NotSame(t, a, b)
	assert.Equal(t, "abc", b.value)
	assert.Equal(t, "{Dv50%(nocopy:abc)(nocopy:abc)}", mustSerialize(t, tree))
	assert.Equal(t, 2, log.live())
}

func TestAddSplit_DeepCopiesContainers(t *testing.T) {
	tree, _ := mount(t, "{Dh4p(dummy:a)[(dummy:b)(nocopy:c)]}")
	before := tree.Leaves()

	split, err := tree.AddSplit(tree.Root(), Vertical)
	require.NoError(t, err)
	assert.Equal(t, "{Dv50%{Dh4p(dummy:a)[(dummy:b)(nocopy:c)]}{Dh4p(dummy:a)[(dummy:b)(nocopy:c)]}}", mustSerialize(t, tree))

	after := tree.Leaves()
	require.Len(t, after, 6)
	assert.Equal(t, before, after[:3])
	for i, id := range after[3:] {
		assert.NotSame(t, tree.Instance(before[i]), tree.Instance(id))
	}
	_, second := tree.Bins(split)
	assert.Equal(t, split, tree.Parent(second))
}

func TestAddSplit_FailureLeavesTreeUntouched(t *testing.T) {
	tree, log := mount(t, "{Dh4p(dummy:a)(broken:)}")
	_, second := tree.Bins(tree.Content(tree.Root()))
	nodes, live := tree.Len(), log.live()
	before := tree.String()

	_, err := tree.AddSplit(second, Horizontal)
	var cv *ContractViolationError
	require.True(t, errors.As(err, &cv), "got %v", err)
	assert.Equal(t, "broken", cv.Module)
	assert.Equal(t, nodes, tree.Len())
	assert.Equal(t, live, log.live())
	assert.Equal(t, before, tree.String())

	// A subtree copy that fails halfway is rolled back too.
	_, err = tree.AddSplit(tree.Root(), Vertical)
	require.Error(t, err)
	assert.Equal(t, nodes, tree.Len())
	assert.Equal(t, live, log.live())
}

func TestAddTabs_WrapsContent(t *testing.T) {
	tree, _ := mount(t, "(dummy:x)")
	leaf := tree.Content(tree.Root())

	tabs, err := tree.AddTabs(tree.Root())
	require.NoError(t, err)
	pages := tree.Pages(tabs)
	require.Len(t, pages, 1)
	assert.Equal(t, leaf, tree.Content(pages[0].Bin))
	assert.Equal(t, "[(dummy:x)]", mustSerialize(t, tree))
}

func TestReplace_DestroysOldContent(t *testing.T) {
	tree, log := mount(t, "{Dh4p(dummy:a)(dummy:b)}")
	first, _ := tree.Bins(tree.Content(tree.Root()))
	old := paneAt(t, tree, tree.Content(first))

	require.NoError(t, tree.Replace(first, "[(text:t1)(text:t2)]"))
	assert.True(t, old.destroyed)
	assert.Equal(t, "{Dh4p[(text:t1)(text:t2)](dummy:b)}", mustSerialize(t, tree))
	assert.Equal(t, 3, log.live())
}

func TestReplace_ParseErrorKeepsContent(t *testing.T) {
	tree, log := mount(t, "(dummy:a)")
	err := tree.Replace(tree.Root(), "{Dh4p(dummy:b)")
	var syn *SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, "(dummy:a)", mustSerialize(t, tree))
	assert.Equal(t, 1, log.live())
}

func TestSetModule(t *testing.T) {
	tree, _ := mount(t, "(dummy:a)")
	require.NoError(t, tree.SetModule(tree.Root(), "text"))
	assert.Equal(t, "(text:)", mustSerialize(t, tree))
	assert.Error(t, tree.SetModule(tree.Root(), "missing"))
}

func TestSerialize_StrictAndLenient(t *testing.T) {
	tree, _ := mount(t, "{Dh4p(dummy:a)(broken:)}")

	_, err := tree.Serialize()
	var cv *ContractViolationError
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, "serialize", cv.Capability)
	assert.Equal(t, "{Dh4p(dummy:a)(broken:)}", tree.String())
}

func TestAuthoring_ConfiguresContentAndPicker(t *testing.T) {
	tree, _ := mount(t, "{Dh4p(dummy:a)(dummy:b)}", WithAuthoring(true))
	split := tree.Content(tree.Root())
	first, _ := tree.Bins(split)

	assert.True(t, paneAt(t, tree, tree.Content(first)).authoring)
	assert.True(t, tree.ShowsPicker(first))
	assert.False(t, tree.ShowsPicker(tree.Root()), "containers render their own controls")

	tree.SetAuthoring(false)
	assert.False(t, paneAt(t, tree, tree.Content(first)).authoring)
	assert.False(t, tree.ShowsPicker(first))
}

func TestUpdate_ReachesEveryLeaf(t *testing.T) {
	tree, _ := mount(t, "{Dh4p(dummy:a)[(dummy:b)(dummy:c)]}")
	tree.Update()
	tree.Update()
	for _, leaf := range tree.Leaves() {
		assert.Equal(t, 2, paneAt(t, tree, leaf).updates)
	}
}

func TestDestroy_Cascades(t *testing.T) {
	tree, log := mount(t, "{Dh4p(dummy:a)[(dummy:b){Dv1p(dummy:c)(dummy:d)}]}")
	require.Equal(t, 4, log.live())
	tree.Destroy()
	assert.Zero(t, log.live())
	assert.Zero(t, tree.Len())
}

func TestHost_BindsToLeaf(t *testing.T) {
	tree, _ := mount(t, "(dummy:a)", WithAuthoring(true))
	p := paneAt(t, tree, tree.Content(tree.Root()))
	require.NotNil(t, p.Host())
	assert.True(t, p.Host().Authoring())
	var _ module.Host = p.Host()
}
