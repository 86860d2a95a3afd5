// Package rsplit implements RSplit, the rooted-bipartition value type
// described in spec §4.2: an include-set / exclude-set pair over a shared
// leaf index space, asserting that the leaves in the include set share an
// ancestor excluding every leaf in the exclude set.
package rsplit

import "sort"

// Split is an immutable rooted bipartition. In and Out are disjoint sorted
// slices of leaf indices over a shared leafset.Map; ID is an optional,
// monotonically increasing identifier used only for debug output and
// determinism, never for correctness.
//
// Invariant: In is non-empty. Out may be empty only for the trivial root
// split (include everything, exclude nothing).
type Split struct {
	In  []int
	Out []int
	ID  int
}

// FromIncludeAll builds a Split whose include set is include and whose
// exclude set is every index in allTaxa not in include.
func FromIncludeAll(include, allTaxa []int) *Split {
	inc := sortedCopy(include)
	inSet := toSet(inc)
	var out []int
	for _, t := range allTaxa {
		if !inSet[t] {
			out = append(out, t)
		}
	}
	sort.Ints(out)
	return &Split{In: inc, Out: out}
}

// FromIncludeExclude builds a Split from explicit include and exclude
// slices, each copied and sorted independently. The caller is responsible
// for the disjointness invariant; BUILD's merge step does not re-validate
// it (see pkg/build).
func FromIncludeExclude(include, exclude []int) *Split {
	return &Split{In: sortedCopy(include), Out: sortedCopy(exclude)}
}

// Trivial reports whether s is the trivial root split (no exclude group).
func (s *Split) Trivial() bool { return len(s.Out) == 0 }

// ExcludesAny reports whether s.Out intersects taxa. taxa is assumed
// sorted; this is used by BUILD to test whether a split is implied at a
// given level (spec §4.4 step 3: "any split whose exclude set is disjoint
// from taxa is implied at this level").
func (s *Split) ExcludesAny(taxa []int) bool {
	return intersects(s.Out, taxa)
}

// IncludesFirst returns the smallest index in s.In, used by BUILD to route
// a split to the component that owns it (spec §4.4 step 7).
func (s *Split) IncludesFirst() int {
	return s.In[0]
}

func sortedCopy(s []int) []int {
	if len(s) == 0 {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	sort.Ints(out)
	return out
}

func toSet(s []int) map[int]bool {
	m := make(map[int]bool, len(s))
	for _, v := range s {
		m[v] = true
	}
	return m
}

// intersects reports whether two sorted int slices share any element.
func intersects(a, b []int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}
