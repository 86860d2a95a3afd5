package newick

import (
	"fmt"
	"io"

	"github.com/otcgo/otcgo/pkg/otree"
)

// Write serializes root to Newick text on w. The actual rendering lives
// on otree.Node.Newick (pkg/otree/print.go), kept there because it is the
// natural counterpart to Node.Print for dumping a tree this package
// itself built; Write exists so callers that already hold an io.Writer
// (the tree-supplier contract of spec §6) don't need to know that.
func Write(w io.Writer, root *otree.Node) error {
	_, err := fmt.Fprintln(w, root.Newick())
	return err
}
