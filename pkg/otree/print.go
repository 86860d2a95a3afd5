package otree

import (
	"fmt"
	"io"
	"strings"

	"github.com/otcgo/otcgo/pkg/indent"
)

// Print writes a human-readable box-drawing dump of n's subtree to w,
// following the teacher's Entry.Print convention of recursing with an
// indent.Writer per depth level, generalized here to draw sibling
// branches (see pkg/indent's Branch/Continuation).
func (n *Node) Print(w io.Writer) {
	n.printNode(w, "", true)
}

func (n *Node) printNode(w io.Writer, prefix string, isLast bool) {
	label := n.Name
	if label == "" {
		label = "<unnamed>"
	}
	if n.HasExternalID {
		label = fmt.Sprintf("%s (ott%d)", label, n.ExternalID)
	}
	if prefix == "" {
		fmt.Fprintln(w, label)
	} else {
		fmt.Fprintln(indent.NewWriter(w, prefix), indent.Branch(isLast)+label)
	}

	children := n.Children()
	childPrefix := prefix + indent.Continuation(isLast)
	for i, c := range children {
		c.printNode(w, childPrefix, i == len(children)-1)
	}
}

// Newick renders n's subtree in Newick form: "(child,child,...)name" with
// an optional "_ottNNN" ID suffix, terminated with a semicolon at the
// root. Spaces in names are written as underscores, the form the parser
// folds back into spaces. This is the minimal counterpart to internal/newick's parser,
// kept here so round-tripping (spec §8 property 8) does not require a
// separate formatting package for the common case of dumping a tree this
// package itself built.
func (n *Node) Newick() string {
	var b strings.Builder
	n.writeNewick(&b)
	b.WriteByte(';')
	return b.String()
}

func (n *Node) writeNewick(b *strings.Builder) {
	if !n.IsLeaf() {
		b.WriteByte('(')
		children := n.Children()
		for i, c := range children {
			if i > 0 {
				b.WriteByte(',')
			}
			c.writeNewick(b)
		}
		b.WriteByte(')')
	}
	b.WriteString(strings.ReplaceAll(n.Name, " ", "_"))
	if n.HasExternalID {
		fmt.Fprintf(b, "_ott%d", n.ExternalID)
	}
}
