package quartet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

func leaf(id leafset.ID, idx int) *otree.Node {
	n := otree.NewLeaf("")
	n.ExternalID = id
	n.HasExternalID = true
	n.LeafIndex = idx
	n.HasLeafIndex = true
	return n
}

// ((1,2),(3,4)) over the dense index space {0,1,2,3}.
func clade1234(t *testing.T) *otree.Node {
	root := otree.NewInternal("")
	a := otree.NewInternal("")
	a.AddChild(leaf(1, 0))
	a.AddChild(leaf(2, 1))
	b := otree.NewInternal("")
	b.AddChild(leaf(3, 2))
	b.AddChild(leaf(4, 3))
	root.AddChild(a)
	root.AddChild(b)
	return root
}

// S6: identical trees compare with zero diffs, one comparable quartet, and
// all-zero per-leaf diffs.
func TestCompareIdenticalTreesNoDiffs(t *testing.T) {
	t1 := Build(clade1234(t), 4)
	t2 := Build(clade1234(t), 4)

	diffs, comparable := Distance(t1, t2)
	require.Equal(t, 0, diffs)
	require.Equal(t, 1, comparable)

	_, _, diffByTaxon, _ := CompareExcluding(t1, t2, nil)
	for _, d := range diffByTaxon {
		require.Zero(t, d)
	}
}

// Property 6: for n leaves the table has exactly C(n,4) informative
// cells, and a fully resolved tree never reports Polytomy.
func TestQuartetCountAndResolution(t *testing.T) {
	tree := clade1234(t)
	table := Build(tree, 4)

	n := 0
	for a := 0; a < 4; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 4; c++ {
				for d := c + 1; d < 4; d++ {
					cls := table.GetSorted(a, b, c, d)
					require.NotEqual(t, Unknown, cls)
					require.NotEqual(t, Polytomy, cls)
					n++
				}
			}
		}
	}
	require.Equal(t, 1, n) // C(4,4) == 1
}

// Property 7: distance is symmetric.
func TestDistanceSymmetric(t *testing.T) {
	t1 := Build(clade1234(t), 4)

	other := otree.NewInternal("")
	a := otree.NewInternal("")
	a.AddChild(leaf(1, 0))
	a.AddChild(leaf(3, 2))
	other.AddChild(a)
	other.AddChild(leaf(2, 1))
	other.AddChild(leaf(4, 3))
	t2 := Build(other, 4)

	d12, c12 := Distance(t1, t2)
	d21, c21 := Distance(t2, t1)
	require.Equal(t, d12, d21)
	require.Equal(t, c12, c21)
}

func TestPruneAnalysisStopsWhenNoDiffsRemain(t *testing.T) {
	t1 := Build(clade1234(t), 4)
	t2 := Build(clade1234(t), 4)
	require.Empty(t, PruneAnalysis(t1, t2))
}

func TestPruneAnalysisRecordsWorstLeafFirst(t *testing.T) {
	t1 := Build(clade1234(t), 4)

	other := otree.NewInternal("")
	a := otree.NewInternal("")
	a.AddChild(leaf(1, 0))
	a.AddChild(leaf(3, 2))
	other.AddChild(a)
	other.AddChild(leaf(2, 1))
	other.AddChild(leaf(4, 3))
	t2 := Build(other, 4)

	rounds := PruneAnalysis(t1, t2)
	require.NotEmpty(t, rounds)
	require.Equal(t, 1, rounds[0].Diffs)
}

// Triplet analogue of TestQuartetCountAndResolution: n leaves give
// exactly C(n,3) informative cells.
func TestTripletCount(t *testing.T) {
	table := BuildTriplets(clade1234(t), 4)
	n := 0
	for a := 0; a < 4; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 4; c++ {
				require.NotEqual(t, TUnknown, table.GetSorted(a, b, c))
				n++
			}
		}
	}
	require.Equal(t, 4, n) // C(4,3) == 4
}

func TestTripletDistanceSymmetric(t *testing.T) {
	t1 := BuildTriplets(clade1234(t), 4)

	other := otree.NewInternal("")
	a := otree.NewInternal("")
	a.AddChild(leaf(1, 0))
	a.AddChild(leaf(3, 2))
	other.AddChild(a)
	other.AddChild(leaf(2, 1))
	other.AddChild(leaf(4, 3))
	t2 := BuildTriplets(other, 4)

	d12, c12 := TripletDistance(t1, t2)
	d21, c21 := TripletDistance(t2, t1)
	require.Equal(t, d12, d21)
	require.Equal(t, c12, c21)
}
