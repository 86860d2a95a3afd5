package build

import "github.com/otcgo/otcgo/pkg/rsplit"

// Engine owns one BUILD sub-problem across a sequence of incremental
// additions, offering both rollback strategies named in the design's open
// question (spec §6 "rollback: bool" config knob): true in-place rollback
// via SolutionRollbackInfo, or rebuild-from-last-known-good, which simply
// replays every previously accepted batch of splits into a fresh Solution.
// Both strategies are required to produce identical final trees for the
// same accepted history; Engine is the single place that invariant is
// enforced by construction, since both paths route through BUILDINC.
type Engine struct {
	UseRollback bool

	taxa     []int
	Solution *Solution
	accepted []*rsplit.Split
}

// NewEngine returns an Engine for a fresh Solution over taxa.
func NewEngine(taxa []int, useRollback bool) *Engine {
	return &Engine{
		UseRollback: useRollback,
		taxa:        taxa,
		Solution:    NewSolution(taxa),
	}
}

// TryAdd attempts to add splits to the engine's current tree, returning
// whether they were jointly consistent with everything accepted so far. On
// rejection the engine's state is unchanged.
func (e *Engine) TryAdd(splits []*rsplit.Split) bool {
	if e.UseRollback {
		sol, ok := BUILDINC(e.Solution, splits)
		e.Solution = sol
		if ok {
			e.accepted = append(e.accepted, splits...)
		}
		return ok
	}

	replay := make([]*rsplit.Split, 0, len(e.accepted)+len(splits))
	replay = append(replay, e.accepted...)
	replay = append(replay, splits...)
	trial := NewSolution(e.taxa)
	sol, ok := BUILDINC(trial, replay)
	if ok {
		e.Solution = sol
		e.accepted = append(e.accepted, splits...)
	}
	return ok
}
