package otree

// Induced constructs the minimal tree topologically equivalent to source
// but containing only the leaves for which keep returns true, with
// intermediate MRCA nodes preserved and every monotypic (single-surviving-
// child) chain suppressed (spec §4.6's induced_tree).
//
// It returns the root of the freshly built induced tree and a map from
// every node of source's subtree to the induced node it projects onto:
// a kept leaf maps to its own copy, a branch point maps to its own copy,
// and any node on a suppressed monotypic chain maps to the single
// induced node that chain collapses into. Nodes with no kept descendant
// are absent from the map.
func Induced(source *Node, keep func(leaf *Node) bool) (*Node, map[*Node]*Node) {
	proj := make(map[*Node]*Node)
	root, ok := induced(source, keep, proj)
	if !ok {
		return nil, proj
	}
	return root, proj
}

func induced(n *Node, keep func(*Node) bool, proj map[*Node]*Node) (*Node, bool) {
	if n.IsLeaf() {
		if !keep(n) {
			return nil, false
		}
		copy := &Node{
			Name:          n.Name,
			ExternalID:    n.ExternalID,
			HasExternalID: n.HasExternalID,
			LeafIndex:     n.LeafIndex,
			HasLeafIndex:  n.HasLeafIndex,
		}
		proj[n] = copy
		return copy, true
	}

	var kept []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if ic, ok := induced(c, keep, proj); ok {
			kept = append(kept, ic)
		}
	}
	switch len(kept) {
	case 0:
		return nil, false
	case 1:
		proj[n] = kept[0]
		return kept[0], true
	default:
		nd := &Node{Name: n.Name, ExternalID: n.ExternalID, HasExternalID: n.HasExternalID, LeafIndex: -1}
		for _, c := range kept {
			nd.AddChild(c)
		}
		proj[n] = nd
		return nd, true
	}
}

// SharedLeafPredicate returns a keep function for Induced that reports
// true for leaves of one tree whose ExternalID also names a leaf of
// other.
func SharedLeafPredicate(other *Node) func(*Node) bool {
	ids := make(map[interface{}]bool)
	other.Preorder(func(n *Node) {
		if n.IsLeaf() && n.HasExternalID {
			ids[n.ExternalID] = true
		}
	})
	return func(leaf *Node) bool {
		return leaf.HasExternalID && ids[leaf.ExternalID]
	}
}
