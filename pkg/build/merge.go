package build

// mergePositions merges every position in positions into a single
// component of s (spec §4.4 step 5), creating a component from scratch
// if none of positions currently owns one, absorbing existing components
// into the largest (canonical) one otherwise, and appending any merged
// component's prior child Solution onto the survivor's OldSolutions so it
// gets reconciled on the next recursion into that component.
//
// If srb is non-nil, every mutation is also recorded so SolutionRollbackInfo
// can undo it; srb is nil exactly when s was freshly created during this
// BuildIncA call and would simply be discarded wholesale on failure (spec
// §4.4 step 5(d)).
//
// mergePositions returns the resulting (possibly pre-existing, possibly
// brand new) Component, or nil if positions named a single already-
// trivial leaf and there was nothing to merge.
func (s *Solution) mergePositions(positions []int, srb *SolutionRollbackInfo) *Component {
	var order []*Component
	seen := make(map[*Component]bool)
	var trivial []int
	for _, pos := range positions {
		c := s.ComponentForIndex[pos]
		if c == nil {
			trivial = append(trivial, pos)
			continue
		}
		if !seen[c] {
			seen[c] = true
			order = append(order, c)
		}
	}

	if len(order) == 0 {
		if len(trivial) <= 1 {
			return nil
		}
		survivor := &Component{}
		added := append([]int(nil), trivial...)
		survivor.Elements = added
		s.Components = append(s.Components, survivor)
		for _, pos := range added {
			s.ComponentForIndex[pos] = survivor
		}
		if srb != nil {
			srb.Merges = append(srb.Merges, &MergeRollbackInfo{
				Survivor:      survivor,
				AddedElements: added,
				SurvivorIsNew: true,
			})
		}
		return survivor
	}

	survivorIdx := 0
	for i := 1; i < len(order); i++ {
		if len(order[i].Elements) > len(order[survivorIdx].Elements) {
			survivorIdx = i
		}
	}
	survivor := order[survivorIdx]

	absorb := func(added []int, absorbedSolution, priorChild *Solution, absorbed *Component) {
		survivor.Elements = append(survivor.Elements, added...)
		if priorChild != nil {
			survivor.OldSolutions = append(survivor.OldSolutions, priorChild)
		}
		survivor.Solution = nil
		for _, pos := range added {
			s.ComponentForIndex[pos] = survivor
		}
		var oldSol *Solution
		if absorbedSolution != nil {
			survivor.OldSolutions = append(survivor.OldSolutions, absorbedSolution)
			oldSol = absorbedSolution
		}
		if srb != nil {
			srb.Merges = append(srb.Merges, &MergeRollbackInfo{
				Survivor:            survivor,
				Absorbed:            absorbed,
				AddedElements:       added,
				PriorChild:          priorChild,
				AbsorbedOldSolution: oldSol,
			})
		}
	}

	for i, c := range order {
		if i == survivorIdx {
			continue
		}
		priorChild := survivor.Solution
		added := append([]int(nil), c.Elements...)
		absorbedSolution := c.Solution
		absorb(added, absorbedSolution, priorChild, c)
		c.Elements = nil
		c.Solution = nil
	}

	if len(trivial) > 0 {
		priorChild := survivor.Solution
		added := append([]int(nil), trivial...)
		absorb(added, nil, priorChild, nil)
	}

	return survivor
}
