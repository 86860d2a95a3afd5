package combine

import (
	"sort"

	"github.com/otcgo/otcgo/internal/config"
	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

// transferNames implements spec §4.9: for every non-tip taxonomy node
// whose internal node survived oracle + BUILD, locate the MRCA of its
// descendant leaves in summary and transfer names/external ids onto it,
// peeling off a fresh monotypic parent per uniquely-rootmost taxonomy
// node so a chain of nested taxonomy clades that collapsed onto the same
// summary node is not flattened into a single name. It returns the
// (possibly re-rooted, if the root itself needed a wrapper) summary tree
// and the log of name collisions with no unique rootmost.
func transferNames(summary, taxonomy *otree.Node, m *leafset.Map, pick config.CanonicalPick, incertaeSedis map[leafset.ID]bool) (*otree.Node, []EquivalentGroup) {
	leafByID := make(map[leafset.ID]*otree.Node)
	for _, l := range summary.Leaves() {
		if l.HasExternalID {
			leafByID[l.ExternalID] = l
		}
	}

	groups := map[*otree.Node][]*otree.Node{}
	var order []*otree.Node
	taxonomy.Postorder(func(t *otree.Node) {
		if t.IsLeaf() {
			return
		}
		var leaves []*otree.Node
		for _, l := range t.Leaves() {
			if !l.HasExternalID {
				continue
			}
			if sl, ok := leafByID[l.ExternalID]; ok {
				leaves = append(leaves, sl)
			}
		}
		if len(leaves) == 0 {
			return
		}
		mrca := otree.MRCAOfSet(leaves)
		if mrca == nil {
			return
		}
		if _, seen := groups[mrca]; !seen {
			order = append(order, mrca)
		}
		groups[mrca] = append(groups[mrca], t)
	})

	var equivalents []EquivalentGroup
	for _, mrca := range order {
		remaining := append([]*otree.Node(nil), groups[mrca]...)
		anchor := mrca
		for len(remaining) > 0 {
			root := uniqueRootmost(remaining)
			if root == nil {
				break
			}
			if anchor.IsRoot() {
				summary = wrapRoot(anchor, root)
				anchor = summary
			} else {
				anchor = wrapInPlace(anchor, root)
			}
			remaining = removeNode(remaining, root)
		}
		if len(remaining) == 0 {
			continue
		}
		canonical := pickCanonical(remaining, pick, incertaeSedis)
		if mrca.Name == "" && !mrca.HasExternalID {
			mrca.Name = canonical.Name
			mrca.ExternalID = canonical.ExternalID
			mrca.HasExternalID = canonical.HasExternalID
		}
		if len(remaining) > 1 {
			var rest []leafset.ID
			for _, n := range remaining {
				if n != canonical && n.HasExternalID {
					rest = append(rest, n.ExternalID)
				}
			}
			if len(rest) > 0 {
				equivalents = append(equivalents, EquivalentGroup{Canonical: canonical.ExternalID, Equivalent: rest})
			}
		}
	}
	return summary, equivalents
}

// uniqueRootmost returns the single node in nodes that is an ancestor of
// (or equal to, for the degenerate one-element case) every other node in
// nodes, using the taxonomy's own parent pointers, or nil if no such node
// exists.
func uniqueRootmost(nodes []*otree.Node) *otree.Node {
	for _, candidate := range nodes {
		isRootmost := true
		for _, other := range nodes {
			if other == candidate {
				continue
			}
			if !isAncestor(candidate, other) {
				isRootmost = false
				break
			}
		}
		if isRootmost {
			return candidate
		}
	}
	return nil
}

// isAncestor reports whether anc is a strict ancestor of n in the tree
// anc and n both belong to (taxonomy's parent-pointer chain).
func isAncestor(anc, n *otree.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == anc {
			return true
		}
	}
	return false
}

func removeNode(nodes []*otree.Node, target *otree.Node) []*otree.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

// wrapInPlace detaches anchor from its parent, creates a fresh monotypic
// internal node carrying taxonomyNode's name/external id in anchor's
// former position, and reattaches anchor as its sole child.
func wrapInPlace(anchor, taxonomyNode *otree.Node) *otree.Node {
	parent := anchor.Parent
	wrapper := otree.NewInternal(taxonomyNode.Name)
	wrapper.ExternalID = taxonomyNode.ExternalID
	wrapper.HasExternalID = taxonomyNode.HasExternalID
	anchor.Detach()
	wrapper.AddChild(anchor)
	parent.AddChild(wrapper)
	return wrapper
}

// wrapRoot is wrapInPlace's special case for anchor being the current
// summary root, which has no parent to splice the wrapper back into.
func wrapRoot(anchor, taxonomyNode *otree.Node) *otree.Node {
	wrapper := otree.NewInternal(taxonomyNode.Name)
	wrapper.ExternalID = taxonomyNode.ExternalID
	wrapper.HasExternalID = taxonomyNode.HasExternalID
	wrapper.AddChild(anchor)
	return wrapper
}

// pickCanonical implements the §9 "Unknown behavior" open-question
// decision: prefer a non-incertae-sedis node with the smallest external
// id, falling back to the lexicographically smallest name when every
// candidate is incertae sedis or the configured policy asks for
// lexicographic order directly.
func pickCanonical(nodes []*otree.Node, pick config.CanonicalPick, incertaeSedis map[leafset.ID]bool) *otree.Node {
	candidates := append([]*otree.Node(nil), nodes...)
	if pick == config.LexicographicName {
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
		return candidates[0]
	}

	var nonIS []*otree.Node
	for _, n := range candidates {
		if n.HasExternalID && !incertaeSedis[n.ExternalID] {
			nonIS = append(nonIS, n)
		}
	}
	if len(nonIS) == 0 {
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
		return candidates[0]
	}
	candidates = nonIS
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.HasExternalID != b.HasExternalID {
			return a.HasExternalID
		}
		if a.HasExternalID && a.ExternalID != b.ExternalID {
			return a.ExternalID < b.ExternalID
		}
		return a.Name < b.Name
	})
	return candidates[0]
}
