package quartet

// Comparison is the per-quartet-cell outcome of comparing two tables
// (spec §4.11, Q_COMP in the original). Compare is symmetric in its
// arguments: a resolved class against a Polytomy is Compat whichever table
// it is read from, so Distance(a,b) == Distance(b,a).
type Comparison int

const (
	BothUnres Comparison = iota
	Compat
	SameRes
	ConflictRes
	NoComp
)

// Compare classifies one cell comparison, after quartet_dist.h's comp_qt.
func Compare(qt1, qt2 Class) Comparison {
	if qt1 == Unknown || qt2 == Unknown || qt1 == NotQ || qt2 == NotQ {
		return NoComp
	}
	if qt1 == Polytomy {
		if qt2 == Polytomy {
			return BothUnres
		}
		return Compat
	}
	if qt2 == Polytomy {
		return Compat
	}
	if qt1 == qt2 {
		return SameRes
	}
	return ConflictRes
}

// CompareExcluding walks every sorted 4-tuple over [0,t1.NumTips) whose
// members are all outside excluded, comparing t1 against t2 cell by cell
// (quartet_dist.h's calc_diffs_mat, generalized with an exclusion set for
// PruneAnalysis's successive rounds). t1 and t2 must have the same
// NumTips.
func CompareExcluding(t1, t2 *Table, excluded map[int]bool) (diffs, comparable int, diffByTaxon, compByTaxon []int) {
	n := t1.NumTips
	diffByTaxon = make([]int, n)
	compByTaxon = make([]int, n)
	if n < 4 {
		return 0, 0, diffByTaxon, compByTaxon
	}
	for i := 0; i < n-3; i++ {
		if excluded[i] {
			continue
		}
		for j := i + 1; j < n-2; j++ {
			if excluded[j] {
				continue
			}
			for k := j + 1; k < n-1; k++ {
				if excluded[k] {
					continue
				}
				for l := k + 1; l < n; l++ {
					if excluded[l] {
						continue
					}
					c := Compare(t1.GetSorted(i, j, k, l), t2.GetSorted(i, j, k, l))
					if c == NoComp {
						continue
					}
					if c == ConflictRes {
						diffs++
						diffByTaxon[i]++
						diffByTaxon[j]++
						diffByTaxon[k]++
						diffByTaxon[l]++
					}
					comparable++
					compByTaxon[i]++
					compByTaxon[j]++
					compByTaxon[k]++
					compByTaxon[l]++
				}
			}
		}
	}
	return diffs, comparable, diffByTaxon, compByTaxon
}

// Distance returns the aggregate (differing, comparable) counts between
// t1 and t2 over every quartet.
func Distance(t1, t2 *Table) (diffs, comparable int) {
	diffs, comparable, _, _ = CompareExcluding(t1, t2, nil)
	return diffs, comparable
}

// Round is one iteration of PruneAnalysis: the totals observed before
// pruning Leaf, and which leaf was pruned (spec §4.11 "triplet pruning
// analysis").
type Round struct {
	Leaf       int
	Diffs      int
	Comparable int
}

// PruneAnalysis repeatedly finds the leaf with the highest diff/comparable
// fraction (ties broken by smallest index), excludes it, and records the
// round, stopping once no differences remain (original_source/otc/
// triplet_analysis.h's TripletDistAnalysis::run loop).
func PruneAnalysis(t1, t2 *Table) []Round {
	excluded := map[int]bool{}
	var rounds []Round
	for {
		diffs, comparable, diffByTaxon, compByTaxon := CompareExcluding(t1, t2, excluded)
		if diffs < 1 {
			return rounds
		}
		best := -1
		bestFrac := -1.0
		for i := 0; i < t1.NumTips; i++ {
			if excluded[i] || compByTaxon[i] == 0 {
				continue
			}
			frac := float64(diffByTaxon[i]) / float64(compByTaxon[i])
			if frac > bestFrac {
				bestFrac = frac
				best = i
			}
		}
		if best < 0 {
			return rounds
		}
		rounds = append(rounds, Round{Leaf: best, Diffs: diffs, Comparable: comparable})
		excluded[best] = true
	}
}
