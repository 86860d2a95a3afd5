package otree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kylelemons/godebug/pretty"
)

func buildTree() *Node {
	root := NewInternal("")
	a := NewLeaf("1")
	b := NewLeaf("2")
	c := NewLeaf("3")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	return root
}

func TestAddChildAndChildren(t *testing.T) {
	root := buildTree()
	names := func(ns []*Node) []string {
		var out []string
		for _, n := range ns {
			out = append(out, n.Name)
		}
		return out
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, names(root.Children())); diff != "" {
		t.Errorf("Children order mismatch (-want +got):\n%s", diff)
	}
}

func TestDetach(t *testing.T) {
	root := buildTree()
	mid := root.Children()[1]
	mid.Detach()
	if got := len(root.Children()); got != 2 {
		t.Fatalf("after detach: %d children, want 2", got)
	}
	if mid.Parent != nil {
		t.Errorf("detached node still has a parent")
	}
}

func TestCollapsePromotesChildren(t *testing.T) {
	root := NewInternal("root")
	mid := NewInternal("mid")
	leafA := NewLeaf("a")
	leafB := NewLeaf("b")
	mid.AddChild(leafA)
	mid.AddChild(leafB)
	tail := NewLeaf("tail")
	root.AddChild(mid)
	root.AddChild(tail)

	mid.Collapse()

	names := []string{}
	for _, c := range root.Children() {
		names = append(names, c.Name)
	}
	want := []string{"a", "b", "tail"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Collapse order mismatch (-want +got):\n%s\n%s", diff, pretty.Sprint(names))
	}
	for _, c := range root.Children() {
		if c.Parent != root {
			t.Errorf("child %s has parent %v, want root", c.Name, c.Parent)
		}
	}
}

func TestCollapseLeafNoChildren(t *testing.T) {
	root := buildTree()
	mid := root.Children()[1]
	mid.Collapse()
	if got := len(root.Children()); got != 2 {
		t.Errorf("after collapsing a leaf: %d children, want 2", got)
	}
}

func TestPreorderPostorderOrder(t *testing.T) {
	root := buildTree()
	var pre, post []string
	root.Preorder(func(n *Node) { pre = append(pre, n.Name) })
	root.Postorder(func(n *Node) { post = append(post, n.Name) })
	if diff := cmp.Diff([]string{"", "1", "2", "3"}, pre); diff != "" {
		t.Errorf("Preorder mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", ""}, post); diff != "" {
		t.Errorf("Postorder mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDepthAndTips(t *testing.T) {
	root := buildTree()
	ComputeDepth(root)
	ComputeTips(root)
	if root.Depth != 1 {
		t.Errorf("root.Depth = %d, want 1", root.Depth)
	}
	for _, c := range root.Children() {
		if c.Depth != 2 {
			t.Errorf("%s.Depth = %d, want 2", c.Name, c.Depth)
		}
	}
	if root.NTips != 3 {
		t.Errorf("root.NTips = %d, want 3", root.NTips)
	}
}

func TestMRCAFromDepth(t *testing.T) {
	root := NewInternal("root")
	left := NewInternal("left")
	a := NewLeaf("a")
	b := NewLeaf("b")
	left.AddChild(a)
	left.AddChild(b)
	c := NewLeaf("c")
	root.AddChild(left)
	root.AddChild(c)
	ComputeDepth(root)

	if got := MRCAFromDepth(a, b); got != left {
		t.Errorf("MRCA(a,b) = %v, want left", got.Name)
	}
	if got := MRCAFromDepth(a, c); got != root {
		t.Errorf("MRCA(a,c) = %v, want root", got.Name)
	}
}

func TestNewickRoundTripShape(t *testing.T) {
	root := buildTree()
	nwk := root.Newick()
	if !strings.HasSuffix(nwk, ";") {
		t.Errorf("Newick() = %q, want trailing ;", nwk)
	}
	if !strings.Contains(nwk, "1") || !strings.Contains(nwk, "2") || !strings.Contains(nwk, "3") {
		t.Errorf("Newick() = %q, missing a leaf label", nwk)
	}
}

func TestInducedDropsUnsharedSuppressesMonotypic(t *testing.T) {
	// source: ((1,2),(3,4));
	root := NewInternal("")
	l := NewInternal("")
	l.AddChild(NewLeaf("1"))
	l.AddChild(NewLeaf("2"))
	r := NewInternal("")
	r.AddChild(NewLeaf("3"))
	r.AddChild(NewLeaf("4"))
	root.AddChild(l)
	root.AddChild(r)

	keep := func(n *Node) bool { return n.Name == "1" || n.Name == "3" || n.Name == "4" }
	induced, proj := Induced(root, keep)
	if induced == nil {
		t.Fatal("Induced returned nil")
	}
	leaves := induced.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("induced has %d leaves, want 3", len(leaves))
	}
	// "1" was the sole survivor under l, so l's projection should be the
	// leaf "1" itself (monotypic suppression), not a new internal node.
	if proj[l].Name != "1" {
		t.Errorf("proj[l].Name = %q, want \"1\"", proj[l].Name)
	}
}
