package build

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/rsplit"
)

func mustLeafset(t *testing.T, ids ...leafset.ID) *leafset.Map {
	t.Helper()
	m, err := leafset.Build(ids)
	require.NoError(t, err)
	return m
}

// S1: {1,2}|{3,4} is trivially displayable as ((1,2),3,4).
func TestBuildIncTrivialSuccess(t *testing.T) {
	taxa := []int{0, 1, 2, 3}
	e := NewEngine(taxa, true)

	split := rsplit.FromIncludeAll([]int{0, 1}, taxa)
	require.True(t, e.TryAdd([]*rsplit.Split{split}))

	require.Len(t, e.Solution.Components, 1)
	require.ElementsMatch(t, []int{0, 1}, e.Solution.getTaxa(e.Solution.Components[0]))

	m := mustLeafset(t, 1, 2, 3, 4)
	tree := ExtractTree(e.Solution, m)
	// one child node for the {0,1} clade, plus the two trivial singletons.
	require.Len(t, tree.Children(), 3)

	leaves := tree.Leaves()
	require.Len(t, leaves, 4)
}

// S2: {1,2}|rest and {1,3}|rest are each individually displayable, but
// jointly conflict (1,2 and 1,3 partially overlap without nesting), so the
// second addition must fail and leave the first addition's tree untouched.
func TestBuildIncConflictRejected(t *testing.T) {
	taxa := []int{0, 1, 2, 3}
	e := NewEngine(taxa, true)

	s1 := rsplit.FromIncludeAll([]int{0, 1}, taxa)
	require.True(t, e.TryAdd([]*rsplit.Split{s1}))

	before := e.Solution

	s2 := rsplit.FromIncludeAll([]int{0, 2}, taxa)
	ok := e.TryAdd([]*rsplit.Split{s2})
	require.False(t, ok, "{0,2} conflicts with already-accepted {0,1} and must be rejected")

	require.Len(t, before.Components, 1)
	require.ElementsMatch(t, []int{0, 1}, before.getTaxa(before.Components[0]))
}

// Rollback and rebuild-from-last-good strategies must agree on the final
// tree for the same accepted history.
func TestBuildIncRollbackAndRebuildAgree(t *testing.T) {
	taxa := []int{0, 1, 2, 3, 4}
	batches := [][]int{{0, 1}, {0, 1, 2}, {3, 4}}

	rollback := NewEngine(taxa, true)
	rebuild := NewEngine(taxa, false)

	for _, inc := range batches {
		sp := rsplit.FromIncludeAll(inc, taxa)
		okR := rollback.TryAdd([]*rsplit.Split{sp})
		okB := rebuild.TryAdd([]*rsplit.Split{sp})
		require.Equal(t, okR, okB)
	}

	m := mustLeafset(t, 1, 2, 3, 4, 5)
	require.Equal(t, ExtractTree(rollback.Solution, m).Newick(), ExtractTree(rebuild.Solution, m).Newick())
}

// A rejected batch must not perturb the in-place rollback engine's
// subsequent acceptance behavior.
func TestBuildIncRollbackThenContinue(t *testing.T) {
	taxa := []int{0, 1, 2, 3, 4, 5}
	e := NewEngine(taxa, true)

	require.True(t, e.TryAdd([]*rsplit.Split{rsplit.FromIncludeAll([]int{0, 1}, taxa)}))
	require.False(t, e.TryAdd([]*rsplit.Split{rsplit.FromIncludeAll([]int{0, 2}, taxa)}))
	require.True(t, e.TryAdd([]*rsplit.Split{rsplit.FromIncludeAll([]int{3, 4, 5}, taxa)}))

	require.Len(t, e.Solution.Components, 2)
}
