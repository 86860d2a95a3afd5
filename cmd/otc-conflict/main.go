// Program otc-conflict classifies the nodes of TREE1 against TREE2 (one
// direction, restricted to their shared leaves), reporting each relation
// (spec.md §4.7: supported_by, partial_path_of, terminal, conflicts_with,
// resolved_by).
//
// Usage: otc-conflict TREE1 TREE2
//
// Grounded on openconfig-goyang's yang.go main shape: read named files,
// parse, report errors to stderr, write the result to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/pborman/getopt/v2"

	"github.com/otcgo/otcgo/internal/newick"
	"github.com/otcgo/otcgo/pkg/conflict"
	"github.com/otcgo/otcgo/pkg/otree"
)

func main() {
	var help bool
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("TREE1 TREE2")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	if help {
		getopt.PrintUsage(os.Stderr)
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "otc-conflict: need exactly two input trees")
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	t1, err := readTree(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	t2, err := readTree(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	records, err := conflict.Classify(t1, t2)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, r := range records {
		fmt.Printf("%s(%s, %s)\n", r.Relation, nodeLabel(r.A), nodeLabel(r.B))
	}
}

// nodeLabel renders n for the relation report: its name if it has one,
// otherwise its Newick subtree, so a collapsed or unnamed internal node
// still identifies the clade it stands for.
func nodeLabel(n *otree.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.Newick()
}

func readTree(path string) (*otree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("otc-conflict: %w", err)
	}
	tree, err := newick.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("otc-conflict: %s: %w", path, err)
	}
	return tree, nil
}
