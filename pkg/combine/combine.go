// Package combine implements the combine driver (spec §4.8), name and
// placement transfer (spec §4.9), and the placement check (spec §4.10):
// the glue that iterates a prioritized list of input trees, feeds their
// splits through pkg/oracle and pkg/build, and turns the resulting
// Solution into a named, placement-checked summary tree.
//
// Grounded on pkg/util/build_yang.go's ProcessModules (iterate named
// inputs in priority order, accumulate into one registry, surface errors,
// produce entries) for the overall iterate-feed-extract skeleton, and on
// original_source/otc/lost_taxon_info.h for the name/placement
// conventions in §4.9/§4.10 (grouping multiple taxonomy nodes onto one
// summary node, picking a canonical one when no unique rootmost exists).
package combine

import (
	"fmt"

	"github.com/otcgo/otcgo/internal/config"
	"github.com/otcgo/otcgo/pkg/build"
	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/oracle"
	"github.com/otcgo/otcgo/pkg/otree"
	"github.com/otcgo/otcgo/pkg/rsplit"
)

// Placement is one detected anomaly from the §4.10 placement check: a
// named summary node whose external id is not actually a taxonomic
// descendant of its nearest named ancestor.
type Placement struct {
	Displaced      leafset.ID
	IntendedParent leafset.ID
}

// EquivalentGroup records a §4.9 name collision with no unique rootmost
// node: Canonical was transferred onto the summary node, Equivalent names
// the taxonomy nodes (by external id) that mapped to the same place but
// lost out under the configured CanonicalPick policy.
type EquivalentGroup struct {
	Canonical  leafset.ID
	Equivalent []leafset.ID
}

// Result is the combine driver's output (spec §6 "Outputs"): the rooted
// summary tree plus the placement anomalies and name-collision log
// produced while transferring names onto it.
type Result struct {
	Tree        *otree.Node
	Placements  []Placement
	Equivalents []EquivalentGroup
}

// Combine runs the driver of spec §4.8. trees is the prioritized input
// list, ordinary phylogenies first and the taxonomy last; incertaeSedis
// is the optional exemption set of external ids (spec's "incertae
// sedis"). trees and their nodes are mutated in place (rejected nodes are
// collapsed, as the oracle and BUILD require); callers that need the
// original inputs untouched must pass copies.
func Combine(trees []*otree.Node, incertaeSedis map[leafset.ID]bool, cfg config.Config) (*Result, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("combine: no input trees")
	}
	taxonomy := trees[len(trees)-1]
	for _, l := range taxonomy.Leaves() {
		if !l.HasExternalID {
			return nil, fmt.Errorf("combine: taxonomy leaf %q has no external id", l.Name)
		}
	}

	leafIDs := externalIDs(taxonomy)
	m, err := leafset.Build(leafIDs)
	if err != nil {
		return nil, err
	}

	engine := build.NewEngine(m.All(), cfg.Rollback)
	var acceptedTrees []*otree.Node

	for i, tree := range trees {
		isTaxonomy := i == len(trees)-1

		tree.AssignLeafIndices(m)
		if err := reconcileLeaves(tree, m, cfg); err != nil {
			return nil, err
		}

		if cfg.Oracle && !(isTaxonomy && len(incertaeSedis) > 0) {
			if err := oracle.FilterConflicting(acceptedTrees, tree); err != nil {
				return nil, err
			}
		}

		splits, nodes := enumerateSplits(tree, m, incertaeSedis, isTaxonomy, cfg.BranchOrder)
		oracle.AddSplits(engine, splits, nodes, cfg.Batching)

		acceptedTrees = append(acceptedTrees, tree)
	}

	summary := build.ExtractTree(engine.Solution, m)
	// Summary tips take their names from the taxonomy's tips.
	tipNames := make(map[leafset.ID]string)
	for _, l := range taxonomy.Leaves() {
		tipNames[l.ExternalID] = l.Name
	}
	for _, l := range summary.Leaves() {
		l.Name = tipNames[l.ExternalID]
	}
	otree.ComputeDepth(summary)
	otree.ComputeDepth(taxonomy)

	summary, equivalents := transferNames(summary, taxonomy, m, cfg.CanonicalPick, incertaeSedis)
	otree.ComputeDepth(summary)

	placements := checkPlacements(summary, taxonomy)

	return &Result{Tree: summary, Placements: placements, Equivalents: equivalents}, nil
}

// reconcileLeaves enforces spec §4.12's input-shape checks for one tree:
// every tip must carry an external id (fatal otherwise when SetOTTIDs is
// set), and every tip must be present in the shared leaf set unless
// PruneUnrecognized silently drops it.
func reconcileLeaves(tree *otree.Node, m *leafset.Map, cfg config.Config) error {
	var unrecognized []*otree.Node
	for _, l := range tree.Leaves() {
		if !l.HasExternalID {
			if cfg.SetOTTIDs {
				return fmt.Errorf("combine: leaf %q has no external id", l.Name)
			}
			continue
		}
		if !l.HasLeafIndex {
			unrecognized = append(unrecognized, l)
		}
	}
	if len(unrecognized) == 0 {
		return nil
	}
	if !cfg.PruneUnrecognized {
		return fmt.Errorf("combine: %d leaves not present in the taxonomy leaf set (e.g. ott%d)", len(unrecognized), unrecognized[0].ExternalID)
	}
	for _, l := range unrecognized {
		l.Collapse()
	}
	return nil
}

// enumerateSplits builds one rsplit.Split per non-trivial internal node
// of tree (spec §4.8 step 2), in the configured enumeration order. On the
// taxonomy tree with a non-empty incertaeSedis set, every exempted
// taxon's index is dropped from both the include and the exclude group,
// so its placement elsewhere is never treated as a conflict (spec §4.4
// "incertae sedis", scenario S4).
func enumerateSplits(tree *otree.Node, m *leafset.Map, incertaeSedis map[leafset.ID]bool, isTaxonomy bool, order config.BranchOrder) ([]*rsplit.Split, []*otree.Node) {
	exempt := map[int]bool{}
	if isTaxonomy {
		for id := range incertaeSedis {
			if idx, ok := m.Index(id); ok {
				exempt[idx] = true
			}
		}
	}

	var walk []*otree.Node
	if order == config.Postorder {
		walk = tree.PostorderNodes()
	} else {
		walk = tree.PreorderNodes()
	}

	var splits []*rsplit.Split
	var nodes []*otree.Node
	for _, nd := range walk {
		if nd.IsRoot() || nd.IsLeaf() {
			continue
		}
		include := dropExempt(nd.LeafIndexSet(), exempt)
		if len(include) < 2 {
			continue
		}
		var sp *rsplit.Split
		if len(exempt) > 0 {
			sp = rsplit.FromIncludeExclude(include, complementExcept(include, m.Len(), exempt))
		} else {
			sp = rsplit.FromIncludeAll(include, m.All())
		}
		splits = append(splits, sp)
		nodes = append(nodes, nd)
	}
	return splits, nodes
}

func dropExempt(in []int, exempt map[int]bool) []int {
	if len(exempt) == 0 {
		return in
	}
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !exempt[v] {
			out = append(out, v)
		}
	}
	return out
}

func complementExcept(include []int, n int, exempt map[int]bool) []int {
	inSet := make(map[int]bool, len(include))
	for _, v := range include {
		inSet[v] = true
	}
	var out []int
	for i := 0; i < n; i++ {
		if !inSet[i] && !exempt[i] {
			out = append(out, i)
		}
	}
	return out
}

func externalIDs(tree *otree.Node) []leafset.ID {
	var ids []leafset.ID
	for _, l := range tree.Leaves() {
		ids = append(ids, l.ExternalID)
	}
	return ids
}
