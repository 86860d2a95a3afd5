// Program otc-quartet computes the quartet distance (or, with --triplets,
// the triplet distance instead) between two Newick trees sharing a leaf set, and
// optionally runs the worst-leaf pruning analysis of spec.md §4.11.
//
// Usage: otc-quartet [--triplets] [--prune] TREE1 TREE2
//
// Grounded on openconfig-goyang's yang.go main shape: getopt-bound
// flags, files read and parsed, result written to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/pborman/getopt/v2"

	"github.com/otcgo/otcgo/internal/newick"
	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
	"github.com/otcgo/otcgo/pkg/quartet"
)

func main() {
	var triplets bool
	var prune bool
	var help bool
	getopt.BoolVarLong(&triplets, "triplets", 0, "compute the triplet distance instead of the quartet distance")
	getopt.BoolVarLong(&prune, "prune", 0, "run the worst-leaf pruning analysis and report each round")
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
		fmt.Fprintln(os.Stderr, "otc-quartet: need exactly two input trees")
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	t1, t2, m, err := loadSharedPair(args[0], args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if triplets {
		runTriplets(t1, t2, m, prune)
	} else {
		runQuartets(t1, t2, m, prune)
	}
}

func loadSharedPair(path1, path2 string) (*otree.Node, *otree.Node, *leafset.Map, error) {
	t1, err := readTree(path1)
	if err != nil {
		return nil, nil, nil, err
	}
	t2, err := readTree(path2)
	if err != nil {
		return nil, nil, nil, err
	}

	ids1 := externalIDs(t1)
	set1 := map[leafset.ID]bool{}
	for _, id := range ids1 {
		set1[id] = true
	}
	var shared []leafset.ID
	for _, l := range t2.Leaves() {
		if l.HasExternalID && set1[l.ExternalID] {
			shared = append(shared, l.ExternalID)
		}
	}
	if len(shared) == 0 {
		return nil, nil, nil, fmt.Errorf("otc-quartet: no shared leaves between trees")
	}

	m, err := leafset.Build(shared)
	if err != nil {
		return nil, nil, nil, err
	}

	keep := func(n *otree.Node) bool { return n.HasExternalID && m.Contains(n.ExternalID) }
	it1, _ := otree.Induced(t1, keep)
	it2, _ := otree.Induced(t2, keep)
	if it1 == nil || it2 == nil {
		return nil, nil, nil, fmt.Errorf("otc-quartet: induced tree over shared leaves is empty")
	}
	it1.AssignLeafIndices(m)
	it2.AssignLeafIndices(m)
	return it1, it2, m, nil
}

func readTree(path string) (*otree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("otc-quartet: %w", err)
	}
	tree, err := newick.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("otc-quartet: %s: %w", path, err)
	}
	return tree, nil
}

func externalIDs(root *otree.Node) []leafset.ID {
	var ids []leafset.ID
	for _, l := range root.Leaves() {
		if l.HasExternalID {
			ids = append(ids, l.ExternalID)
		}
	}
	return ids
}

func runQuartets(t1, t2 *otree.Node, m *leafset.Map, prune bool) {
	q1 := quartet.Build(t1, m.Len())
	q2 := quartet.Build(t2, m.Len())

	diffs, comparable := quartet.Distance(q1, q2)
	fmt.Printf("quartet distance: %d / %d comparable quartets\n", diffs, comparable)

	if !prune {
		return
	}
	for i, r := range quartet.PruneAnalysis(q1, q2) {
		fmt.Printf("round %d: prune ott%d (diffs=%d comparable=%d)\n", i+1, m.ID(r.Leaf), r.Diffs, r.Comparable)
	}
}

func runTriplets(t1, t2 *otree.Node, m *leafset.Map, prune bool) {
	t1t := quartet.BuildTriplets(t1, m.Len())
	t2t := quartet.BuildTriplets(t2, m.Len())

	diffs, comparable := quartet.TripletDistance(t1t, t2t)
	fmt.Printf("triplet distance: %d / %d comparable triplets\n", diffs, comparable)

	if !prune {
		return
	}
	for i, r := range quartet.TripletPruneAnalysis(t1t, t2t) {
		fmt.Printf("round %d: prune ott%d (diffs=%d comparable=%d)\n", i+1, m.ID(r.Leaf), r.Diffs, r.Comparable)
	}
}
