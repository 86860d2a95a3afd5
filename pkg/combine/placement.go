package combine

import (
	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

// checkPlacements implements spec §4.10: for every named internal node of
// summary with a known external id, find its nearest named ancestor and
// verify, against taxonomy, that the node's external id is actually a
// taxonomic descendant of the ancestor's external id. Mismatches are
// reported as Placement anomalies.
func checkPlacements(summary, taxonomy *otree.Node) []Placement {
	taxByID := make(map[leafset.ID]*otree.Node)
	taxonomy.Preorder(func(n *otree.Node) {
		if n.HasExternalID {
			taxByID[n.ExternalID] = n
		}
	})

	var placements []Placement
	summary.Preorder(func(n *otree.Node) {
		if n.IsLeaf() || !n.HasExternalID || n.Name == "" {
			return
		}
		ancestor := nearestNamedAncestor(n)
		if ancestor == nil || !ancestor.HasExternalID {
			return
		}
		txNode, ok := taxByID[n.ExternalID]
		if !ok {
			return
		}
		ancTxNode, ok := taxByID[ancestor.ExternalID]
		if !ok {
			return
		}
		if isAncestor(ancTxNode, txNode) {
			return
		}
		placements = append(placements, Placement{
			Displaced:      n.ExternalID,
			IntendedParent: nearestTaxonomicAncestorID(txNode),
		})
	})
	return placements
}

// nearestNamedAncestor walks up n's summary-tree parent chain and returns
// the first strict ancestor carrying a non-empty name, or nil if none
// does (n is under the root with no named ancestor at all).
func nearestNamedAncestor(n *otree.Node) *otree.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Name != "" {
			return p
		}
	}
	return nil
}

// nearestTaxonomicAncestorID returns the external id of txNode's nearest
// ancestor in the taxonomy that carries an external id (0 if none does),
// i.e. where the taxonomy actually places it -- the "intended parent" half
// of a Placement.
func nearestTaxonomicAncestorID(txNode *otree.Node) leafset.ID {
	for p := txNode.Parent; p != nil; p = p.Parent {
		if p.HasExternalID {
			return p.ExternalID
		}
	}
	return 0
}
