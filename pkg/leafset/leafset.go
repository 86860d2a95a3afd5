// Package leafset implements the leaf index map: the bijection between
// external taxon identifiers and the dense 0..n-1 index space every other
// package in this module operates on (spec §4.1).
package leafset

import (
	"fmt"
	"sort"
)

// ID is an external taxon identifier (an "OTT id" in the glossary sense).
type ID int64

// Map is the immutable bijection between a sorted list of external IDs and
// their positions in the dense leaf index space. Once built it is never
// mutated; every algorithm in this module treats it as a read-only table
// shared by every subproblem derived from the same leaf set.
type Map struct {
	ids    []ID
	lookup map[ID]int
}

// Build constructs a Map from taxonIDs. taxonIDs is copied and sorted; the
// resulting index order matches that sorted order, which keeps Build
// deterministic regardless of input order. Build fails if any ID repeats.
func Build(taxonIDs []ID) (*Map, error) {
	ids := make([]ID, len(taxonIDs))
	copy(ids, taxonIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lookup := make(map[ID]int, len(ids))
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			return nil, fmt.Errorf("leafset: duplicate external id %d", id)
		}
		lookup[id] = i
	}
	return &Map{ids: ids, lookup: lookup}, nil
}

// Len returns the number of leaves, n.
func (m *Map) Len() int { return len(m.ids) }

// ID returns the external identifier at index i.
func (m *Map) ID(i int) ID { return m.ids[i] }

// IDs returns the full sorted slice of external identifiers. The caller
// must not mutate the returned slice.
func (m *Map) IDs() []ID { return m.ids }

// Index returns the dense index of external id, and whether id is a member
// of this leaf set.
func (m *Map) Index(id ID) (int, bool) {
	i, ok := m.lookup[id]
	return i, ok
}

// MustIndex is like Index but panics if id is not present; it is intended
// for call sites that have already validated membership (e.g. after
// Contains), mirroring the teacher's "we already checked this" internal
// helpers.
func (m *Map) MustIndex(id ID) int {
	i, ok := m.lookup[id]
	if !ok {
		panic(fmt.Sprintf("leafset: id %d is not a member of this leaf set", id))
	}
	return i
}

// Contains reports whether id is a member of this leaf set.
func (m *Map) Contains(id ID) bool {
	_, ok := m.lookup[id]
	return ok
}

// All returns the full set of indices [0, n).
func (m *Map) All() []int {
	all := make([]int, len(m.ids))
	for i := range all {
		all[i] = i
	}
	return all
}
