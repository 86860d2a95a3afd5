// Package quartet implements the dense quartet resolution-class table,
// its comparison against another such table, and the triplet-pruning
// analysis built on top (spec §4.11).
//
// Grounded directly on original_source/otc/all_quartets.h (the
// gen_by_fourth/gen_by_third/gen_by_sec jagged-array layout and the
// QUARTET_TYPE enum, register_sorted's relative-offset indexing, and
// register_quartet/register_poly_out/register_poly_last_unsorted's exact
// sorted-tuple-classification arithmetic) and quartet_dist.h (comp_qt and
// calc_diffs_mat's per-taxon accumulation). Triplets reuse the same table
// shape with one fewer nesting level; see triplet.go.
package quartet

import "github.com/otcgo/otcgo/pkg/otree"

// Class is one cell's resolution class (spec §4.11, QUARTET_TYPE in the
// original).
type Class int

const (
	Unknown Class = iota
	Polytomy
	OneTwo
	OneThree
	OneFour
	NotQ
)

func (c Class) String() string {
	switch c {
	case Polytomy:
		return "*"
	case OneTwo:
		return "12"
	case OneThree:
		return "13"
	case OneFour:
		return "14"
	case NotQ:
		return "X"
	default:
		return "?"
	}
}

// Table is the dense jagged quartet-class table over NumTips leaf
// indices, indexed by sorted 4-tuples (a<b<c<d) via relative offsets
// exactly as all_quartets.h's by_lowest does.
type Table struct {
	NumTips int
	data    [][][][]Class
}

// NewTable allocates an all-Unknown table for numTips leaves. Tables with
// fewer than 4 tips carry no cells (there are no quartets to resolve).
func NewTable(numTips int) *Table {
	t := &Table{NumTips: numTips}
	if numTips < 4 {
		return t
	}
	nr := numTips - 3
	t.data = make([][][][]Class, nr)
	for i := 0; i < nr; i++ {
		t.data[i] = genBySec(numTips, i)
	}
	return t
}

func genByFourth(numTips, thirdIndex int) []Class {
	minReal := thirdIndex + 1
	maxReal := numTips - 1
	return make([]Class, maxReal-minReal+1)
}

func genByThird(numTips, secIndex int) [][]Class {
	minReal := secIndex + 1
	maxReal := numTips - 2
	out := make([][]Class, maxReal-minReal+1)
	for i := range out {
		out[i] = genByFourth(numTips, minReal+i)
	}
	return out
}

func genBySec(numTips, firstInd int) [][][]Class {
	minReal := firstInd + 1
	maxReal := numTips - 3
	out := make([][][]Class, maxReal-minReal+1)
	for i := range out {
		out[i] = genByThird(numTips, minReal+i)
	}
	return out
}

// GetSorted returns the class stored for the ascending tuple (a,b,c,d).
func (t *Table) GetSorted(a, b, c, d int) Class {
	return t.data[a][b-a-1][c-b-1][d-c-1]
}

func (t *Table) setSorted(cls Class, a, b, c, d int) {
	t.data[a][b-a-1][c-b-1][d-c-1] = cls
}

// Build constructs the quartet table for root, whose leaves must already
// carry dense leaf indices (see otree.AssignLeafIndices) over [0,numTips).
func Build(root *otree.Node, numTips int) *Table {
	t := NewTable(numTips)
	if numTips < 4 {
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
				registerSibs(t, childSets[i], childSets[j], outgroup)
			}
		}
		if len(children) > 2 {
			registerPolytomy(t, childSets, outgroup)
		}
	})
	return t
}

func complement(in []int, numTips int) []int {
	set := make(map[int]bool, len(in))
	for _, v := range in {
		set[v] = true
	}
	out := make([]int, 0, numTips-len(in))
	for i := 0; i < numTips; i++ {
		if !set[i] {
			out = append(out, i)
		}
	}
	return out
}

func registerSibs(t *Table, a, b, out []int) {
	for _, av := range a {
		for _, bv := range b {
			inSmall, inLarge := av, bv
			if inSmall > inLarge {
				inSmall, inLarge = inLarge, inSmall
			}
			for oi := 0; oi < len(out); oi++ {
				for noi := oi + 1; noi < len(out); noi++ {
					x, y := out[oi], out[noi]
					if x > y {
						x, y = y, x
					}
					registerQuartet(t, inSmall, inLarge, x, y)
				}
			}
		}
	}
}

// registerQuartet ports all_quartets.h's register_quartet verbatim: given
// a sorted in-pair and a sorted out-pair, it determines where the in-pair
// falls among the fully sorted 4-tuple and records the corresponding
// resolution class.
func registerQuartet(t *Table, inSmall, inLarge, outSmall, outLarge int) {
	switch {
	case inSmall < outSmall:
		switch {
		case inLarge < outSmall:
			t.setSorted(OneTwo, inSmall, inLarge, outSmall, outLarge)
		case inLarge < outLarge:
			t.setSorted(OneThree, inSmall, outSmall, inLarge, outLarge)
		default:
			t.setSorted(OneFour, inSmall, outSmall, outLarge, inLarge)
		}
	case inSmall < outLarge:
		if inLarge < outLarge {
			t.setSorted(OneFour, outSmall, inSmall, inLarge, outLarge)
		} else {
			t.setSorted(OneThree, outSmall, inSmall, outLarge, inLarge)
		}
	default:
		t.setSorted(OneTwo, outSmall, outLarge, inSmall, inLarge)
	}
}

func registerPolytomy(t *Table, children [][]int, outgroup []int) {
	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			for k := j + 1; k < len(children); k++ {
				registerPolyOut(t, children[i], children[j], children[k], outgroup)
				for l := k + 1; l < len(children); l++ {
					registerPolyOut(t, children[i], children[j], children[k], children[l])
				}
			}
		}
	}
}

func registerPolyOut(t *Table, f, s, third, out []int) {
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
				for _, oci := range out {
					registerPolyLastUnsorted(t, a, b, c, oci)
				}
			}
		}
	}
}

func registerPolyLastUnsorted(t *Table, u1, u2, u3, uu int) {
	var s1, s2, s3, s4 int
	if uu < u2 {
		s3, s4 = u2, u3
		if uu < u1 {
			s1, s2 = uu, u1
		} else {
			s1, s2 = u1, uu
		}
	} else {
		s1, s2 = u1, u2
		if uu < u3 {
			s3, s4 = uu, u3
		} else {
			s3, s4 = u3, uu
		}
	}
	t.setSorted(Polytomy, s1, s2, s3, s4)
}
