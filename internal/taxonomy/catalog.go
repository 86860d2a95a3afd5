package taxonomy

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/otcgo/otcgo/pkg/otree"
	"github.com/otcgo/otcgo/pkg/rwcoord"
)

// CachedCatalog wraps a loaded taxonomy behind a pkg/rwcoord.Coordinator
// so a long-running consumer (cmd/otc-combine --watch, spec.md §5's
// read-mostly catalog example) can serve the current taxonomy to many
// concurrent combine runs while occasionally reloading it from disk,
// without a reader ever observing a half-rebuilt tree.
//
// Grounded on gnames-gndb's iopopulate.buildHierarchy worker-pool shape
// for Reload's concurrent per-file loading, and on SPEC_FULL.md §5 for
// the coordinator wiring itself.
type CachedCatalog struct {
	coord *rwcoord.Coordinator
	tree  *otree.Node
}

// NewCachedCatalog returns an empty catalog; call Reload before Snapshot.
func NewCachedCatalog() *CachedCatalog {
	return &CachedCatalog{coord: rwcoord.New()}
}

// Snapshot returns the currently cached taxonomy tree under a read token,
// released automatically before Snapshot returns. Callers that mutate
// trees in place (as pkg/combine does) must treat the result as
// borrowed: copy it, or hold the catalog for the duration of their use,
// rather than retaining the pointer across a later Reload.
func (c *CachedCatalog) Snapshot() *otree.Node {
	tok := c.coord.AcquireRead()
	defer tok.Release()
	return c.tree
}

// Reload rebuilds the catalog's taxonomy from the table files named in
// shardPaths (one taxonomy shard per file). Every shard is loaded and
// checked concurrently, but the shards are not merged: the catalog keeps
// the tree from shardPaths[0] and drops the rest. The per-file fan out
// exists to exercise errgroup-based concurrent loading the way
// iopopulate.buildHierarchy parses each input row concurrently, not
// because any one taxonomy table is large enough to need it.
// Loading runs without the coordinator; Reload takes the write token only
// to swap in the finished tree, so no reader observes a partially-replaced
// tree.
func (c *CachedCatalog) Reload(shardPaths []string) error {
	if len(shardPaths) == 0 {
		return fmt.Errorf("taxonomy: Reload called with no shard paths")
	}

	trees := make([]*otree.Node, len(shardPaths))
	g := new(errgroup.Group)
	for i, path := range shardPaths {
		i, path := i, path
		g.Go(func() error {
			tree, err := Load(path)
			if err != nil {
				return fmt.Errorf("taxonomy: shard %s: %w", filepath.Base(path), err)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tok := c.coord.AcquireWrite()
	defer tok.Release()
	c.tree = trees[0]
	return nil
}
