package otree

// ComputeDepth sets root.Depth = 1 and every descendant's Depth to its
// parent's Depth + 1, in a single preorder pass (spec §4.6).
func ComputeDepth(root *Node) {
	root.Depth = 1
	root.Preorder(func(n *Node) {
		if n.Parent != nil {
			n.Depth = n.Parent.Depth + 1
		}
	})
}

// ComputeTips sets n.NTips, for every node in the tree rooted at root, to
// the number of leaves at or beneath it (spec §4.7's compute_tips, also
// reused generically wherever a node's descendant-leaf count is needed).
func ComputeTips(root *Node) {
	root.Postorder(func(n *Node) {
		if n.IsLeaf() {
			n.NTips = 1
			return
		}
		total := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			total += c.NTips
		}
		n.NTips = total
	})
}

// MRCAFromDepth returns the most recent common ancestor of a and b by
// lifting the deeper node until both are at the same depth, then lifting
// both together until they coincide. It is correct only after ComputeDepth
// has been run over the tree containing both a and b (spec §4.6).
func MRCAFromDepth(a, b *Node) *Node {
	for a.Depth > b.Depth {
		a = a.Parent
	}
	for b.Depth > a.Depth {
		b = b.Parent
	}
	for a != b {
		a = a.Parent
		b = b.Parent
	}
	return a
}

// MRCAOfSet returns the most recent common ancestor of every node in
// nodes, which must be non-empty and already depth-annotated. It folds
// MRCAFromDepth across the set; the result's depth is always <= the
// depth of every input node's nearest ancestor relation.
func MRCAOfSet(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}
	m := nodes[0]
	for _, n := range nodes[1:] {
		m = MRCAFromDepth(m, n)
	}
	return m
}
