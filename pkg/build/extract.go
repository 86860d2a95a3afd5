package build

import (
	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

// ExtractTree converts a (successful) Solution into the rooted tree it
// displays, labelling leaves with external ids via m (spec §4.4 "Tree
// extraction"). The returned node is the root, always internal even when
// sol has a single child.
func ExtractTree(sol *Solution, m *leafset.Map) *otree.Node {
	root := otree.NewInternal("")
	extractInto(root, sol, m)
	return root
}

func extractInto(parent *otree.Node, sol *Solution, m *leafset.Map) {
	for _, c := range sol.Components {
		if len(c.Elements) == 0 {
			continue
		}
		var child *otree.Node
		if c.Solution != nil {
			child = otree.NewInternal("")
			extractInto(child, c.Solution, m)
		} else {
			child = newLeafGroup(sol, c.Elements, m)
		}
		parent.AddChild(child)
	}
	for pos, c := range sol.ComponentForIndex {
		if c != nil {
			continue
		}
		parent.AddChild(newLeaf(sol.Taxa[pos], m))
	}
}

// newLeafGroup builds a flat multifurcation of leaves for a component whose
// sub-Solution was never computed (every element is a trivial singleton
// within it). In a completed BUILDINC this never happens since step 8
// always assigns a (possibly childless) sub-Solution, but extraction stays
// defensive rather than panicking on a half-built Solution.
func newLeafGroup(sol *Solution, positions []int, m *leafset.Map) *otree.Node {
	group := otree.NewInternal("")
	for _, pos := range positions {
		group.AddChild(newLeaf(sol.Taxa[pos], m))
	}
	return group
}

func newLeaf(leafIndex int, m *leafset.Map) *otree.Node {
	leaf := otree.NewLeaf("")
	leaf.LeafIndex = leafIndex
	leaf.HasLeafIndex = true
	leaf.ExternalID = m.ID(leafIndex)
	leaf.HasExternalID = true
	return leaf
}
