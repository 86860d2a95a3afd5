// Package conflict implements the rooted-tree conflict classifier (spec
// §4.7): given two rooted trees sharing a leaf set, it reports, for every
// non-trivial internal node of one tree, its relation to the other.
//
// The postorder-walk-with-reset-counters shape follows pkg/yang/entry.go's
// checkErrors: walk the tree once, accumulate state in per-node payload
// fields, reset before moving to unrelated subtrees.
package conflict

import (
	"fmt"
	"sort"

	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

// Relation is the classification of one induced-T2 node against one
// induced-T1 node (spec §4.7 definitions).
type Relation int

const (
	Unknown Relation = iota
	SupportedBy
	PartialPathOf
	Terminal
	ConflictsWith
	ResolvedBy
)

func (r Relation) String() string {
	switch r {
	case SupportedBy:
		return "supported_by"
	case PartialPathOf:
		return "partial_path_of"
	case Terminal:
		return "terminal"
	case ConflictsWith:
		return "conflicts_with"
	case ResolvedBy:
		return "resolved_by"
	default:
		return "unknown"
	}
}

// Record is one emitted relation: A relates to B as Relation describes,
// where A is a node of the tree being displayed against and B is a node
// of the tree being classified (spec §4.7 emits e.g. "supported_by(M, nd)").
type Record struct {
	Relation Relation
	A        *otree.Node
	B        *otree.Node
}

// Classify runs the one-direction algorithm of spec §4.7: for each node of
// t1 (restricted to leaves shared with t2; tips yield Terminal records),
// it reports how nodes of t2 relate to it, each Record carrying the t2
// node as A and the t1 node as B. Run it again with the arguments swapped
// to classify t2's nodes against t1.
//
// t1 and t2 are read-only; Classify operates on freshly induced copies
// and never mutates the caller's trees.
func Classify(t1, t2 *otree.Node) ([]Record, error) {
	shared, err := sharedExternalIDs(t1, t2)
	if err != nil {
		return nil, err
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("conflict: no shared leaves between trees")
	}

	keep := func(n *otree.Node) bool { return n.HasExternalID && shared[n.ExternalID] }
	it1, _ := otree.Induced(t1, keep)
	it2, proj2leaves := otree.Induced(t2, keep)
	if it1 == nil || it2 == nil {
		return nil, fmt.Errorf("conflict: induced tree over shared leaves is empty")
	}

	otree.ComputeDepth(it1)
	otree.ComputeDepth(it2)
	otree.ComputeTips(it1)
	otree.ComputeTips(it2)

	it2LeafByID := make(map[leafset.ID]*otree.Node)
	for _, l := range it2.Leaves() {
		if l.HasExternalID {
			it2LeafByID[l.ExternalID] = l
		}
	}
	_ = proj2leaves

	for _, l := range it1.Leaves() {
		if l.HasExternalID {
			l.SummaryNode = it2LeafByID[l.ExternalID]
		}
	}

	var records []Record
	it1.Postorder(func(nd *otree.Node) {
		if nd.IsLeaf() {
			classifyTip(nd, &records)
			return
		}
		if nd == it1 || nd.NumChildren() == 1 {
			return
		}
		classifyInternal(nd, &records)
	})
	return records, nil
}

func classifyTip(nd *otree.Node, records *[]Record) {
	t2leaf := nd.SummaryNode
	if t2leaf == nil {
		return
	}
	*records = append(*records, Record{Relation: Terminal, A: t2leaf, B: nd})
	for anc := nd.Parent; anc != nil && anc.NumChildren() == 1; anc = anc.Parent {
		*records = append(*records, Record{Relation: Terminal, A: t2leaf, B: anc})
	}
}

func classifyInternal(nd *otree.Node, records *[]Record) {
	var leaves2 []*otree.Node
	for _, l := range nd.Leaves() {
		if l.SummaryNode != nil {
			leaves2 = append(leaves2, l.SummaryNode)
		}
	}
	if len(leaves2) == 0 {
		return
	}
	m := otree.MRCAOfSet(leaves2)
	if m == nil {
		return
	}

	pathSet := map[*otree.Node]bool{}
	for _, leaf := range leaves2 {
		for p := leaf; p != nil; p = p.Parent {
			pathSet[p] = true
			if p == m {
				break
			}
		}
	}
	var nodes []*otree.Node
	for n := range pathSet {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Depth > nodes[j].Depth })

	counts := map[*otree.Node]int{}
	for _, n := range nodes {
		if n.IsLeaf() {
			counts[n] = 1
		}
	}
	for _, n := range nodes {
		if n == m {
			continue
		}
		counts[n.Parent] += counts[n]
	}

	nTipsAtM := m.NTips
	if counts[m] == nTipsAtM {
		*records = append(*records, Record{Relation: SupportedBy, A: m, B: nd})
		for anc := m.Parent; anc != nil && anc.NTips == nTipsAtM; anc = anc.Parent {
			*records = append(*records, Record{Relation: PartialPathOf, A: anc, B: nd})
		}
		return
	}

	conflictFound := false
	for _, n := range nodes {
		if n == m {
			continue
		}
		if counts[n] > 0 && counts[n] < n.NTips {
			*records = append(*records, Record{Relation: ConflictsWith, A: n, B: nd})
			conflictFound = true
		}
	}
	if !conflictFound {
		*records = append(*records, Record{Relation: ResolvedBy, A: m, B: nd})
	}
}

// NodeConflicts reports whether nd (found within treeOfNd) directly
// conflicts with some internal node of other, restricted to the leaves
// shared between treeOfNd and other: their leaf sets overlap but neither
// contains the other (spec §4.7 "conflicts_with", restated as a plain
// leaf-set compatibility test). Unlike Classify, it does not build the
// induced-tree/MRCA machinery; pkg/oracle uses it as a cheap boolean
// pre-filter rather than a full relation stream.
func NodeConflicts(treeOfNd, nd, other *otree.Node) (bool, error) {
	shared, err := sharedExternalIDs(treeOfNd, other)
	if err != nil {
		return false, err
	}
	a := leafIDSet(nd, shared)
	if len(a) == 0 {
		return false, nil
	}
	conflict := false
	other.Preorder(func(y *otree.Node) {
		if conflict || y.IsLeaf() {
			return
		}
		b := leafIDSet(y, shared)
		if len(b) == 0 {
			return
		}
		if setsOverlap(a, b) && !setSubset(a, b) && !setSubset(b, a) {
			conflict = true
		}
	})
	return conflict, nil
}

func leafIDSet(nd *otree.Node, shared map[leafset.ID]bool) map[leafset.ID]bool {
	out := map[leafset.ID]bool{}
	for _, l := range nd.Leaves() {
		if l.HasExternalID && shared[l.ExternalID] {
			out[l.ExternalID] = true
		}
	}
	return out
}

func setsOverlap(a, b map[leafset.ID]bool) bool {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for id := range small {
		if big[id] {
			return true
		}
	}
	return false
}

func setSubset(a, b map[leafset.ID]bool) bool {
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}

func sharedExternalIDs(t1, t2 *otree.Node) (map[leafset.ID]bool, error) {
	ids1 := map[leafset.ID]bool{}
	for _, l := range t1.Leaves() {
		if !l.HasExternalID {
			return nil, fmt.Errorf("conflict: leaf %q has no external id", l.Name)
		}
		ids1[l.ExternalID] = true
	}
	shared := map[leafset.ID]bool{}
	for _, l := range t2.Leaves() {
		if !l.HasExternalID {
			return nil, fmt.Errorf("conflict: leaf %q has no external id", l.Name)
		}
		if ids1[l.ExternalID] {
			shared[l.ExternalID] = true
		}
	}
	return shared, nil
}
