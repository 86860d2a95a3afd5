package build

import (
	"sort"

	"github.com/otcgo/otcgo/pkg/rsplit"
)

// BUILDINC is the top-level incremental BUILD driver (spec §4.4). It
// tries to add newSplits to sol, returning the (possibly reused/replaced)
// Solution and whether the addition succeeded. On failure sol is restored
// byte-equivalent to its state before the call (testable property 3); on
// success the rollback log is simply discarded.
func BUILDINC(sol *Solution, newSplits []*rsplit.Split) (*Solution, bool) {
	fresh := sol.Visited == 0
	var rollbackLog []*SolutionRollbackInfo
	result, ok := buildIncA(sol, newSplits, nil, &rollbackLog, true)
	if !ok {
		for i := len(rollbackLog) - 1; i >= 0; i-- {
			rollbackLog[i].rollback()
		}
		if fresh {
			// A fresh Solution keeps no rollback record; restoring it
			// means clearing it.
			*sol = *NewSolution(sol.Taxa)
		}
	}
	return result, ok
}

// buildIncA implements one level of BUILD (spec §4.4 "Algorithm at one
// level"). It returns the Solution that should be used as the caller's
// authoritative reference for this slot (ordinarily sol itself, but a
// different, reused Solution after step 1), and whether this level (and
// everything recursed into from it) succeeded.
func buildIncA(sol *Solution, newSplits []*rsplit.Split, subSolutions []*Solution, rollbackLog *[]*SolutionRollbackInfo, top bool) (*Solution, bool) {
	// Step 1: possibly reuse a previously computed sub-Solution over the
	// identical taxon set instead of rebuilding components from scratch.
	if len(subSolutions) == 1 && sameTaxonSet(subSolutions[0].Taxa, sol.Taxa) {
		sol = subSolutions[0]
		subSolutions = nil
	}

	// Step 2: visited check.
	wasVisited := sol.Visited > 0
	sol.Visited++
	var srb *SolutionRollbackInfo
	if wasVisited {
		srb = &SolutionRollbackInfo{
			Solution:          sol,
			ImpliedLen:        len(sol.ImpliedSplits),
			OrigNumComponents: len(sol.Components),
			ComponentsSnap:    append([]*Component(nil), sol.Components...),
		}
		*rollbackLog = append(*rollbackLog, srb)
	}

	// Step 3: remove implied splits (skipped at the top level, which has
	// no "outside" to be excluded from).
	if !top {
		var keepNew []*rsplit.Split
		for _, sp := range newSplits {
			if !sp.ExcludesAny(sol.Taxa) {
				sol.ImpliedSplits = append(sol.ImpliedSplits, sp)
			} else {
				keepNew = append(keepNew, sp)
			}
		}
		newSplits = keepNew

		queue := append([]*Solution(nil), subSolutions...)
		var kept []*Solution
		for len(queue) > 0 {
			sub := queue[0]
			queue = queue[1:]

			punctured := false
			for _, sp := range sub.ImpliedSplits {
				if sp.ExcludesAny(sol.Taxa) {
					punctured = true
					break
				}
			}
			if !punctured {
				kept = append(kept, sub)
				continue
			}
			for _, c := range sub.Components {
				if c.Solution != nil {
					queue = append(queue, c.Solution)
				}
			}
			for _, sp := range sub.ImpliedSplits {
				if sp.ExcludesAny(sol.Taxa) {
					newSplits = append(newSplits, sp)
				} else {
					sol.ImpliedSplits = append(sol.ImpliedSplits, sp)
				}
			}
		}
		subSolutions = kept
	}

	// Step 4: trivial success.
	if len(newSplits) == 0 && len(subSolutions) == 0 {
		return sol, true
	}

	// Step 5: merge.
	idx := sol.positionIndex()
	for _, sp := range newSplits {
		positions := make([]int, len(sp.In))
		for i, leaf := range sp.In {
			positions[i] = idx[leaf]
		}
		sol.mergePositions(positions, srb)
	}
	for _, sub := range subSolutions {
		positions := make([]int, len(sub.Taxa))
		for i, leaf := range sub.Taxa {
			positions[i] = idx[leaf]
		}
		sol.mergePositions(positions, srb)
	}
	sol.pack()

	// Step 6: failure.
	if sol.singleComponentCoversAll() {
		return sol, false
	}

	// Step 7: assign.
	for _, sp := range newSplits {
		pos := idx[sp.IncludesFirst()]
		c := sol.ComponentForIndex[pos]
		if c == nil {
			continue // a singleton include-group is trivially satisfied
		}
		c.NewSplits = append(c.NewSplits, sp)
	}
	for _, sub := range subSolutions {
		pos := idx[sub.Taxa[0]]
		c := sol.ComponentForIndex[pos]
		if c == nil {
			continue
		}
		c.OldSolutions = append(c.OldSolutions, sub)
	}

	// Step 8: recurse. Once any component's recursive call fails, the
	// remaining components are only drained (their pending workloads
	// moved into locals, clearing the component's own fields so the
	// between-calls invariant holds even after the eventual rollback),
	// never recursed into.
	failed := false
	for _, c := range sol.Components {
		localNew := c.NewSplits
		localOld := c.OldSolutions
		c.NewSplits = nil
		c.OldSolutions = nil
		if failed {
			continue
		}
		if c.Solution == nil {
			c.Solution = NewSolution(sol.getTaxa(c))
		}
		childResult, ok := buildIncA(c.Solution, localNew, localOld, rollbackLog, false)
		c.Solution = childResult
		if !ok {
			failed = true
		}
	}

	return sol, !failed
}

func sameTaxonSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]int(nil), a...)
	sb := append([]int(nil), b...)
	sort.Ints(sa)
	sort.Ints(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
