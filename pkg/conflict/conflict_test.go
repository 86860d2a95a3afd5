package conflict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

func leaf(t *testing.T, name string, id leafset.ID) *otree.Node {
	t.Helper()
	n := otree.NewLeaf(name)
	n.ExternalID = id
	n.HasExternalID = true
	return n
}

// ((1,2),3)
func clade12plus3(t *testing.T) *otree.Node {
	root := otree.NewInternal("")
	inner := otree.NewInternal("")
	inner.AddChild(leaf(t, "1", 1))
	inner.AddChild(leaf(t, "2", 2))
	root.AddChild(inner)
	root.AddChild(leaf(t, "3", 3))
	return root
}

func TestClassifyIdenticalTreesAreSupported(t *testing.T) {
	t1 := clade12plus3(t)
	t2 := clade12plus3(t)

	records, err := Classify(t1, t2)
	require.NoError(t, err)

	found := false
	for _, r := range records {
		if r.Relation == SupportedBy {
			found = true
		}
		require.NotEqual(t, ConflictsWith, r.Relation, "identical trees should not conflict")
	}
	require.True(t, found, "expected a supported_by record for the shared (1,2) clade")
}

// T1: ((1,2),3,4)   T2: ((1,3),2,4) -- the two internal clades overlap
// partially (share taxon 1, each excludes a taxon the other includes) so
// they must be reported as conflicting in both directions.
func TestClassifyPartialOverlapConflicts(t *testing.T) {
	t1 := otree.NewInternal("")
	a := otree.NewInternal("")
	a.AddChild(leaf(t, "1", 1))
	a.AddChild(leaf(t, "2", 2))
	t1.AddChild(a)
	t1.AddChild(leaf(t, "3", 3))
	t1.AddChild(leaf(t, "4", 4))

	t2 := otree.NewInternal("")
	b := otree.NewInternal("")
	b.AddChild(leaf(t, "1", 1))
	b.AddChild(leaf(t, "3", 3))
	t2.AddChild(b)
	t2.AddChild(leaf(t, "2", 2))
	t2.AddChild(leaf(t, "4", 4))

	records, err := Classify(t1, t2)
	require.NoError(t, err)

	conflict := false
	for _, r := range records {
		if r.Relation == ConflictsWith {
			conflict = true
		}
	}
	require.True(t, conflict, "expected a conflicts_with record")
}

func TestClassifyRequiresSharedLeaves(t *testing.T) {
	t1 := otree.NewInternal("")
	t1.AddChild(leaf(t, "1", 1))
	t2 := otree.NewInternal("")
	t2.AddChild(leaf(t, "2", 2))

	_, err := Classify(t1, t2)
	require.Error(t, err)
}
