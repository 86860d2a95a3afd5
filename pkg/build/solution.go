// Package build implements the incremental BUILD engine: deciding whether
// a set of rooted bipartitions (rsplits) over a common leaf set is jointly
// displayable by a single rooted tree, and constructing that tree when it
// is (spec §4.3, §4.4).
//
// The control-flow shape — try to merge incoming definitions into an
// existing registry, detect irreconcilable collisions, let the caller
// decide what to do about a collision — is the same shape as pkg/yang's
// Modules.add (modules.go) and Entry.add (entry.go) in the teacher
// repository, scaled from a flat map to a recursive partition with
// explicit rollback because BUILD's failures must be undone several
// levels deep.
package build

import (
	"sort"

	"github.com/otcgo/otcgo/pkg/rsplit"
)

// Component is a maximal set of leaf positions (positions within the
// owning Solution's Taxa slice, not raw leaf indices — see Solution.Taxa)
// currently required to be monophyletic together (spec §3 "Component").
type Component struct {
	// Elements holds positions into the owning Solution's Taxa slice, in
	// the order they were first merged together.
	Elements []int

	// Solution is the recursive sub-problem owned by this component, or
	// nil if it has not yet been computed (or was invalidated by a
	// merge).
	Solution *Solution

	// NewSplits and OldSolutions are pending workloads to be processed
	// the next time this component is recursed into. Between BUILD calls
	// both are empty (spec §4.3 invariant).
	NewSplits    []*rsplit.Split
	OldSolutions []*Solution
}

// Solution is the recursive state of BUILD at one level (spec §3
// "Solution"): a taxon list, its partition into components, and the
// pending bookkeeping needed to resume work on it.
type Solution struct {
	// Taxa is the (fixed, for the lifetime of this Solution) leaf-index
	// list for this sub-problem, in absolute leaf-index space.
	Taxa []int

	// ImpliedSplits are splits whose include set is a subset of Taxa but
	// whose exclude set does not intersect Taxa: trivially satisfied at
	// this level, carried through unchanged.
	ImpliedSplits []*rsplit.Split

	// Components holds every non-trivial component at this level.
	// Positions in Taxa not referenced by any component's owning entry in
	// ComponentForIndex are "trivial singletons".
	Components []*Component

	// ComponentForIndex[i] is the Component owning position i of Taxa, or
	// nil if position i is a trivial singleton.
	ComponentForIndex []*Component

	// Visited is zero exactly for a freshly created Solution; BuildIncA
	// uses it to decide whether a SolutionRollbackInfo is needed for this
	// level (spec §4.4 step 2).
	Visited int
}

// NewSolution returns a freshly created Solution over taxa (copied and
// sorted, as rsplit.Split.ExcludesAny expects).
func NewSolution(taxa []int) *Solution {
	cp := make([]int, len(taxa))
	copy(cp, taxa)
	sort.Ints(cp)
	return &Solution{
		Taxa:              cp,
		ComponentForIndex: make([]*Component, len(cp)),
	}
}

// positionIndex builds the transient "indices[leaf-index] -> position in
// Taxa" scratch map described in spec §9. It is built fresh per BUILD call
// and passed explicitly rather than kept as shared mutable state, so that
// spec §5's "a subproblem is owned by exactly one thread from start to
// finish" holds even when distinct subproblems run on distinct
// goroutines.
func (s *Solution) positionIndex() map[int]int {
	idx := make(map[int]int, len(s.Taxa))
	for i, t := range s.Taxa {
		idx[t] = i
	}
	return idx
}

// getTaxa converts a Component's local positions (into this Solution's
// Taxa) into absolute leaf indices, in the component's element order.
// This is used when recursing into a component's sub-Solution (spec
// §4.4 step 8, "component.get_taxa(taxa)").
func (s *Solution) getTaxa(c *Component) []int {
	out := make([]int, len(c.Elements))
	for i, pos := range c.Elements {
		out[i] = s.Taxa[pos]
	}
	return out
}

// pack drops empty (fully absorbed) components from s.Components.
// ComponentForIndex needs no update: the merge already pointed every
// absorbed position at the survivor, and pack never rebuilds a Component
// in place, so pointer identity is preserved (see spec §4.4 step 5).
func (s *Solution) pack() {
	var kept []*Component
	for _, c := range s.Components {
		if len(c.Elements) > 0 {
			kept = append(kept, c)
		}
	}
	s.Components = kept
}

// singleComponentCoversAll reports whether, after merging, exactly one
// component contains every taxon in s — the BUILD failure condition
// (spec §4.4 step 6).
func (s *Solution) singleComponentCoversAll() bool {
	if len(s.Components) != 1 {
		return false
	}
	return len(s.Components[0].Elements) == len(s.Taxa)
}
