// Package config implements the configuration block of spec §6: the
// recognized options and their effects on the combine driver, the oracle,
// and the BUILD engine. It is loaded in two stages, following the
// defaults-struct-then-flag-overrides pattern untoldecay-BeadsLog uses
// for its own BurntSushi/toml-backed config file, combined with the
// teacher's (openconfig-goyang's yang.go/types.go) getopt flag binding:
// Default returns the spec-mandated defaults, Load overlays an optional
// TOML file on top of them, and cmd/otc-combine overlays its
// --incertae-sedis getopt flag on top of that.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// BranchOrder selects the enumeration order of a tree's internal-node
// splits (spec §6 "branch_order").
type BranchOrder string

const (
	Preorder  BranchOrder = "preorder"
	Postorder BranchOrder = "postorder"
)

// CanonicalPick selects the policy DESIGN.md's "Name-collision canonical
// pick" open question resolves to when pkg/combine's name transfer finds
// no unique rootmost taxonomy node for a summary node.
type CanonicalPick string

const (
	SmallestID        CanonicalPick = "smallest_id"
	LexicographicName CanonicalPick = "lexicographic_name"
)

// Config mirrors spec §6's configuration block field-for-field.
type Config struct {
	Batching           bool          `toml:"batching"`
	Oracle             bool          `toml:"oracle"`
	Incremental        bool          `toml:"incremental"`
	Rollback           bool          `toml:"rollback"`
	BranchOrder        BranchOrder   `toml:"branch_order"`
	SynthesizeTaxonomy bool          `toml:"synthesize_taxonomy"`
	PruneUnrecognized  bool          `toml:"prune_unrecognized"`
	SetOTTIDs          bool          `toml:"set_ott_ids"`
	IncertaeSedisPath  string        `toml:"incertae_sedis_path"`
	CanonicalPick      CanonicalPick `toml:"canonical_pick"`
}

// Default returns the spec-mandated defaults: batching, oracle, and
// incremental-with-rollback all on, preorder enumeration, and the
// lexicographically-grounded smallest-id canonical-pick policy noted in
// spec §9's "Unknown behavior".
func Default() Config {
	return Config{
		Batching:      true,
		Oracle:        true,
		Incremental:   true,
		Rollback:      true,
		BranchOrder:   Preorder,
		CanonicalPick: SmallestID,
	}
}

// Load reads an optional TOML file at path, overlaying its fields onto
// Default()'s. A missing path is not an error; callers pass "" to skip
// loading entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return cfg, nil
}
