package quartet

import "github.com/otcgo/otcgo/pkg/otree"

// TripletClass is one cell's resolution class for a 3-tuple of leaves
// (spec §4.11's "analogous six-valued enum for triplets", TRIPLET_TYPE in
// original_source/otc/all_triplets.h).
type TripletClass int

const (
	TUnknown TripletClass = iota
	TPolytomy
	TOneTwo
	TOneThree
	TTwoThree
	TNotQ
)

func (c TripletClass) String() string {
	switch c {
	case TPolytomy:
		return "*"
	case TOneTwo:
		return "12"
	case TOneThree:
		return "13"
	case TTwoThree:
		return "23"
	case TNotQ:
		return "X"
	default:
		return "?"
	}
}

// TripletTable is the dense jagged triplet-class table over NumTips leaf
// indices, indexed by sorted 3-tuples (a<b<c) via relative offsets, one
// nesting level shallower than Table (all_triplets.h's by_lowest).
type TripletTable struct {
	NumTips int
	data    [][][]TripletClass
}

// NewTripletTable allocates an all-Unknown table for numTips leaves.
// Tables with fewer than 3 tips carry no cells.
func NewTripletTable(numTips int) *TripletTable {
	t := &TripletTable{NumTips: numTips}
	if numTips < 3 {
		return t
	}
	nr := numTips - 2
	t.data = make([][][]TripletClass, nr)
	for i := 0; i < nr; i++ {
		t.data[i] = genTmBySec(numTips, i)
	}
	return t
}

func genTmByThird(numTips, secIndex int) []TripletClass {
	minReal := secIndex + 1
	maxReal := numTips - 1
	return make([]TripletClass, maxReal-minReal+1)
}

func genTmBySec(numTips, firstInd int) [][]TripletClass {
	minReal := firstInd + 1
	maxReal := numTips - 2
	out := make([][]TripletClass, maxReal-minReal+1)
	for i := range out {
		out[i] = genTmByThird(numTips, minReal+i)
	}
	return out
}

// GetSorted returns the class stored for the ascending triple (a,b,c).
func (t *TripletTable) GetSorted(a, b, c int) TripletClass {
	return t.data[a][b-a-1][c-b-1]
}

func (t *TripletTable) setSorted(cls TripletClass, a, b, c int) {
	t.data[a][b-a-1][c-b-1] = cls
}

// BuildTriplets constructs the triplet table for root, whose leaves must
// already carry dense leaf indices over [0,numTips), one fewer nesting
// level than Build but otherwise the same shape (spec §4.11).
func BuildTriplets(root *otree.Node, numTips int) *TripletTable {
	t := NewTripletTable(numTips)
	if numTips < 3 {
		return t
	}
	root.Preorder(func(v *otree.Node) {
		if v.IsLeaf() {
			return
		}
		children := v.Children()
		if len(children) < 2 {
			return
		}
		childSets := make([][]int, len(children))
		for i, c := range children {
			childSets[i] = c.LeafIndexSet()
		}
		outgroup := complement(v.LeafIndexSet(), numTips)
		for i := range children {
			for j := i + 1; j < len(children); j++ {
				registerTripletSibs(t, childSets[i], childSets[j], outgroup)
			}
		}
		if len(children) > 2 {
			registerTripletPolytomy(t, childSets)
		}
	})
	return t
}

func registerTripletSibs(t *TripletTable, a, b, out []int) {
	for _, av := range a {
		for _, bv := range b {
			inSmall, inLarge := av, bv
			if inSmall > inLarge {
				inSmall, inLarge = inLarge, inSmall
			}
			for _, o := range out {
				registerTriplet(t, inSmall, inLarge, o)
			}
		}
	}
}

// registerTriplet ports all_triplets.h's register_triplet verbatim: given
// a sorted in-pair and one outgroup index, determine where the in-pair
// falls among the fully sorted 3-tuple.
func registerTriplet(t *TripletTable, inSmall, inLarge, out int) {
	switch {
	case inSmall < out:
		if inLarge < out {
			t.setSorted(TOneTwo, inSmall, inLarge, out)
		} else {
			t.setSorted(TOneThree, inSmall, out, inLarge)
		}
	default:
		t.setSorted(TTwoThree, out, inSmall, inLarge)
	}
}

// registerTripletPolytomy marks, for every distinct triple of children at
// a polytomy, every 3-tuple drawing one leaf from each child as Polytomy
// (all_triplets.h's register_poly_out, specialized to three children
// directly rather than a fourth "out" set since a triplet has no room for
// a fourth taxon).
func registerTripletPolytomy(t *TripletTable, children [][]int) {
	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			for k := j + 1; k < len(children); k++ {
				registerTripletPolyOut(t, children[i], children[j], children[k])
			}
		}
	}
}

func registerTripletPolyOut(t *TripletTable, f, s, third []int) {
	for _, fci := range f {
		for _, sci := range s {
			fsSmall, fsLarge := fci, sci
			if fsSmall > fsLarge {
				fsSmall, fsLarge = fsLarge, fsSmall
			}
			for _, tci := range third {
				var a, b, c int
				switch {
				case tci < fsSmall:
					a, b, c = tci, fsSmall, fsLarge
				case tci < fsLarge:
					a, b, c = fsSmall, tci, fsLarge
				default:
					a, b, c = fsSmall, fsLarge, tci
				}
				t.setSorted(TPolytomy, a, b, c)
			}
		}
	}
}
