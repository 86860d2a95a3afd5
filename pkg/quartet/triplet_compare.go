package quartet

// TripletComparison mirrors Comparison one nesting level down: the
// per-triplet-cell outcome of comparing two TripletTables
// (original_source/otc/triple_dist.h's comp_qt specialized to triplets).
type TripletComparison int

const (
	TBothUnres TripletComparison = iota
	TCompat
	TSameRes
	TConflictRes
	TNoComp
)

// CompareTriplet classifies one cell comparison, the triplet analogue of
// Compare.
func CompareTriplet(t1, t2 TripletClass) TripletComparison {
	if t1 == TUnknown || t2 == TUnknown || t1 == TNotQ || t2 == TNotQ {
		return TNoComp
	}
	if t1 == TPolytomy {
		if t2 == TPolytomy {
			return TBothUnres
		}
		return TCompat
	}
	if t2 == TPolytomy {
		return TCompat
	}
	if t1 == t2 {
		return TSameRes
	}
	return TConflictRes
}

// CompareTripletsExcluding walks every sorted 3-tuple over
// [0,t1.NumTips) whose members are all outside excluded, comparing t1
// against t2 cell by cell (original_source/otc/triple_dist.h's
// calc_diffs_mat, generalized with an exclusion set for
// TripletPruneAnalysis's successive rounds). t1 and t2 must have the same
// NumTips.
func CompareTripletsExcluding(t1, t2 *TripletTable, excluded map[int]bool) (diffs, comparable int, diffByTaxon, compByTaxon []int) {
	n := t1.NumTips
	diffByTaxon = make([]int, n)
	compByTaxon = make([]int, n)
	if n < 3 {
		return 0, 0, diffByTaxon, compByTaxon
	}
	for i := 0; i < n-2; i++ {
		if excluded[i] {
			continue
		}
		for j := i + 1; j < n-1; j++ {
			if excluded[j] {
				continue
			}
			for k := j + 1; k < n; k++ {
				if excluded[k] {
					continue
				}
				c := CompareTriplet(t1.GetSorted(i, j, k), t2.GetSorted(i, j, k))
				if c == TNoComp {
					continue
				}
				if c == TConflictRes {
					diffs++
					diffByTaxon[i]++
					diffByTaxon[j]++
					diffByTaxon[k]++
				}
				comparable++
				compByTaxon[i]++
				compByTaxon[j]++
				compByTaxon[k]++
			}
		}
	}
	return diffs, comparable, diffByTaxon, compByTaxon
}

// TripletDistance returns the aggregate (differing, comparable) counts
// between t1 and t2 over every triplet.
func TripletDistance(t1, t2 *TripletTable) (diffs, comparable int) {
	diffs, comparable, _, _ = CompareTripletsExcluding(t1, t2, nil)
	return diffs, comparable
}

// TripletRound is one iteration of TripletPruneAnalysis.
type TripletRound struct {
	Leaf       int
	Diffs      int
	Comparable int
}

// TripletPruneAnalysis repeatedly finds the leaf with the highest
// diff/comparable fraction (ties broken by smallest index), excludes it,
// and records the round, stopping once no differences remain
// (original_source/otc/triplet_analysis.h's TripletDistAnalysis::run).
func TripletPruneAnalysis(t1, t2 *TripletTable) []TripletRound {
	excluded := map[int]bool{}
	var rounds []TripletRound
	for {
		diffs, comparable, diffByTaxon, compByTaxon := CompareTripletsExcluding(t1, t2, excluded)
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
		rounds = append(rounds, TripletRound{Leaf: best, Diffs: diffs, Comparable: comparable})
		excluded[best] = true
	}
}
