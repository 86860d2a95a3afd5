package otree

import (
	"sort"

	"github.com/otcgo/otcgo/pkg/leafset"
)

// Preorder calls visit once for every node in n's subtree (including n),
// parent before children, in child-insertion order.
func (n *Node) Preorder(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		c.Preorder(visit)
	}
}

// Postorder calls visit once for every node in n's subtree (including n),
// children before their parent, in child-insertion order.
func (n *Node) Postorder(visit func(*Node)) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		c.Postorder(visit)
	}
	visit(n)
}

// PreorderNodes collects n's subtree into a slice, preorder.
func (n *Node) PreorderNodes() []*Node {
	var out []*Node
	n.Preorder(func(nd *Node) { out = append(out, nd) })
	return out
}

// PostorderNodes collects n's subtree into a slice, postorder.
func (n *Node) PostorderNodes() []*Node {
	var out []*Node
	n.Postorder(func(nd *Node) { out = append(out, nd) })
	return out
}

// Leaves returns every tip beneath n (or n itself, if n is a leaf), in
// left-to-right order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Preorder(func(nd *Node) {
		if nd.IsLeaf() {
			out = append(out, nd)
		}
	})
	return out
}

// LeafIndexSet returns the sorted set of leaf indices beneath n. Every
// leaf beneath n must have HasLeafIndex set (see AssignLeafIndices).
func (n *Node) LeafIndexSet() []int {
	leaves := n.Leaves()
	out := make([]int, 0, len(leaves))
	for _, l := range leaves {
		if l.HasLeafIndex {
			out = append(out, l.LeafIndex)
		}
	}
	sort.Ints(out)
	return out
}

// AssignLeafIndices sets LeafIndex/HasLeafIndex on every leaf beneath n
// whose ExternalID is present in m, using m's dense index space. Leaves
// not in m are left unassigned; callers that require every tip mapped
// (spec's set_ott_ids option) should check HasLeafIndex afterward.
func (n *Node) AssignLeafIndices(m *leafset.Map) {
	for _, l := range n.Leaves() {
		if idx, ok := m.Index(l.ExternalID); ok {
			l.LeafIndex = idx
			l.HasLeafIndex = true
		}
	}
}
