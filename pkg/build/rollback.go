package build

// MergeRollbackInfo records one component merger, enough to undo it
// exactly: the surviving component, the elements that were appended to it
// by this merge (whether they came from an absorbed component or were
// previously trivial singletons), the absorbed component itself (nil if
// the merge only absorbed trivial singletons or created Survivor from
// scratch), and Survivor's prior child-Solution pointer (spec §3
// "Rollback records").
type MergeRollbackInfo struct {
	Survivor      *Component
	Absorbed      *Component // nil: trivial-singleton merge, or Survivor was newly created
	AddedElements []int      // positions appended to Survivor.Elements by this merge
	PriorChild    *Solution  // Survivor.Solution before this merge invalidated it
	SurvivorIsNew bool       // true if Survivor itself did not exist in s.Components before this merge

	// AbsorbedOldSolution is Absorbed's Solution (if any) that was appended
	// to Survivor.OldSolutions by this merge; rollback gives it back to
	// Absorbed.
	AbsorbedOldSolution *Solution
}

// rollback undoes exactly the effect this record had on s.
func (r *MergeRollbackInfo) rollback(s *Solution) {
	n := len(r.AddedElements)
	r.Survivor.Elements = r.Survivor.Elements[:len(r.Survivor.Elements)-n]
	r.Survivor.Solution = r.PriorChild

	for _, pos := range r.AddedElements {
		s.ComponentForIndex[pos] = r.Absorbed
	}
	if r.Absorbed != nil {
		// Absorbed was emptied (not removed from s.Components) by the
		// merge; restoring its elements here and re-marking
		// ComponentForIndex above makes it live again. Its slot in
		// s.Components survives because SolutionRollbackInfo restores the
		// full pre-call Components snapshot regardless of any pack()
		// that ran in between.
		r.Absorbed.Elements = append([]int(nil), r.AddedElements...)
		r.Absorbed.Solution = r.AbsorbedOldSolution
	}
	if r.SurvivorIsNew {
		r.Survivor.Elements = nil
	}
	// Whatever this merge queued on Survivor.OldSolutions (Absorbed's
	// Solution, Survivor's own prior child) is pending work that step 8 may
	// already have drained; between calls the list is empty (spec §4.3), so
	// rollback leaves it empty.
	r.Survivor.OldSolutions = nil
}

// SolutionRollbackInfo records everything BuildIncA mutated on one
// Solution during one call, so it can be restored byte-for-byte on
// failure (spec §3 "Rollback records", testable property 3).
type SolutionRollbackInfo struct {
	Solution          *Solution
	ImpliedLen        int // len(s.ImpliedSplits) before this call
	Merges            []*MergeRollbackInfo
	OrigNumComponents int
	ComponentsSnap    []*Component // snapshot of s.Components before this call
}

// rollback restores s to the state captured by r: implied-split length,
// every merge undone in reverse order, and the original Components slice.
func (r *SolutionRollbackInfo) rollback() {
	s := r.Solution
	for i := len(r.Merges) - 1; i >= 0; i-- {
		r.Merges[i].rollback(s)
	}
	s.ImpliedSplits = s.ImpliedSplits[:r.ImpliedLen]
	s.Components = append([]*Component(nil), r.ComponentsSnap...)
	_ = r.OrigNumComponents
}
