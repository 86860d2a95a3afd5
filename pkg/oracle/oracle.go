// Package oracle implements the conflict pre-filter and batched BUILD
// acceptor (spec §4.5): before a tree's splits reach BUILD, drop whatever
// directly conflicts with already-accepted trees, then feed the rest
// through BUILD a chunk at a time, halving on failure instead of testing
// one split at a time.
package oracle

import (
	"github.com/otcgo/otcgo/pkg/build"
	"github.com/otcgo/otcgo/pkg/conflict"
	"github.com/otcgo/otcgo/pkg/otree"
	"github.com/otcgo/otcgo/pkg/rsplit"
)

// FilterConflicting collapses every internal node of candidate that
// directly conflicts (spec §4.7 conflicts_with) with any tree already in
// accepted, leaving candidate's remaining structure untouched. It is a
// no-op if accepted is empty.
func FilterConflicting(accepted []*otree.Node, candidate *otree.Node) error {
	nodes := candidate.PreorderNodes()
	for _, nd := range nodes {
		if nd.IsRoot() || nd.IsLeaf() {
			continue
		}
		for _, t := range accepted {
			conflicts, err := conflict.NodeConflicts(candidate, nd, t)
			if err != nil {
				return err
			}
			if conflicts {
				nd.Collapse()
				break
			}
		}
	}
	return nil
}

// AddSplits feeds splits into e, each paired (by index) with the source
// tree node it was derived from. On BUILD rejection the corresponding
// node is collapsed in place. When batching is true, splits are tried in
// one shot per call and on failure recursively halved (spec §4.5
// add_batch); when false, each split is tried individually, which is
// exactly add_batch with every initial range already of length 1.
func AddSplits(e *build.Engine, splits []*rsplit.Split, nodes []*otree.Node, batching bool) {
	if !batching {
		for i := range splits {
			if !e.TryAdd(splits[i : i+1]) {
				nodes[i].Collapse()
			}
		}
		return
	}
	addBatch(e, splits, nodes)
}

func addBatch(e *build.Engine, splits []*rsplit.Split, nodes []*otree.Node) {
	if len(splits) == 0 {
		return
	}
	if e.TryAdd(splits) {
		return
	}
	if len(splits) == 1 {
		nodes[0].Collapse()
		return
	}
	mid := len(splits) / 2
	addBatch(e, splits[:mid], nodes[:mid])
	addBatch(e, splits[mid:], nodes[mid:])
}
