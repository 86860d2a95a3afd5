// Program otc-combine runs the combine driver of spec.md §4.8 over a
// prioritized list of Newick input trees and a final taxonomy tree,
// writing the resulting summary tree and its diagnostics.
//
// Usage: otc-combine [--config FILE] [--incertae-sedis FILE] [--watch DIR] TREE... TAXONOMY
//
// TREE... are the input trees in priority order (highest priority
// first); TAXONOMY is the final, lowest-priority input. With --watch,
// TAXONOMY is instead loaded (and reloaded on SIGHUP) from the *.tsv
// shard files in DIR via internal/taxonomy.CachedCatalog, which keeps the
// first shard's tree; combine then runs once against a snapshot taken
// under the reader/writer coordinator (spec.md §5).
//
// Grounded on openconfig-goyang's yang.go main: getopt-bound flags
// overlaid on a defaults struct, files read and parsed in a loop with
// errors written to stderr, exit(1) on any fatal condition.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pborman/getopt/v2"

	"github.com/otcgo/otcgo/internal/config"
	"github.com/otcgo/otcgo/internal/newick"
	"github.com/otcgo/otcgo/internal/taxonomy"
	"github.com/otcgo/otcgo/pkg/combine"
	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

func main() {
	var configPath string
	var incertaeSedisPath string
	var watchDir string
	var help bool

	getopt.StringVarLong(&configPath, "config", 0, "path to a TOML configuration file", "FILE")
	getopt.StringVarLong(&incertaeSedisPath, "incertae-sedis", 0, "path to a one-external-id-per-line incertae sedis file", "FILE")
	getopt.StringVarLong(&watchDir, "watch", 0, "load the taxonomy from the *.tsv shard files in DIR (reloaded on SIGHUP), instead of reading it from the last TREE argument", "DIR")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("TREE... TAXONOMY")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	if help {
		getopt.PrintUsage(os.Stderr)
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if incertaeSedisPath != "" {
		cfg.IncertaeSedisPath = incertaeSedisPath
	}

	args := getopt.Args()
	if watchDir == "" && len(args) < 2 {
		fmt.Fprintln(os.Stderr, "otc-combine: need at least one input tree and a taxonomy")
		os.Exit(1)
	}

	incertaeSedis, err := taxonomy.LoadIncertaeSedis(cfg.IncertaeSedisPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if watchDir != "" {
		runWatch(args, watchDir, incertaeSedis, cfg)
		return
	}

	trees, err := loadTrees(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := runCombine(trees, incertaeSedis, cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadTrees(paths []string) ([]*otree.Node, error) {
	trees := make([]*otree.Node, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("otc-combine: %w", err)
		}
		tree, err := newick.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("otc-combine: %s: %w", p, err)
		}
		trees[i] = tree
	}
	return trees, nil
}

func runCombine(trees []*otree.Node, incertaeSedis map[leafset.ID]bool, cfg config.Config, w io.Writer) error {
	res, err := combine.Combine(trees, incertaeSedis, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, res.Tree.Newick())
	for _, p := range res.Placements {
		fmt.Fprintf(w, "# placement anomaly: ott%d is not a taxonomic descendant of ott%d\n", p.Displaced, p.IntendedParent)
	}
	for _, eq := range res.Equivalents {
		fmt.Fprintf(w, "# equivalent names at ott%d: %v\n", eq.Canonical, eq.Equivalent)
	}
	return nil
}

// runWatch exercises cmd/otc-combine's --watch mode: the taxonomy is
// served from a CachedCatalog behind pkg/rwcoord, reloaded on SIGHUP from
// the shard files in watchDir, while combine runs once against the trees
// named in treePaths plus a taxonomy snapshot taken under a read token.
func runWatch(treePaths []string, watchDir string, incertaeSedis map[leafset.ID]bool, cfg config.Config) {
	shards, err := filepath.Glob(filepath.Join(watchDir, "*.tsv"))
	if err != nil || len(shards) == 0 {
		fmt.Fprintf(os.Stderr, "otc-combine: no taxonomy shard files (*.tsv) found in %s\n", watchDir)
		os.Exit(1)
	}

	cat := taxonomy.NewCachedCatalog()
	if err := cat.Reload(shards); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			if err := cat.Reload(shards); err != nil {
				fmt.Fprintln(os.Stderr, "otc-combine: reload failed:", err)
			}
		}
	}()

	trees, err := loadTrees(treePaths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	taxonomyTree := cat.Snapshot()
	if err := runCombine(append(trees, taxonomyTree), incertaeSedis, cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
