// Package taxonomy implements the deliberately thin taxonomy loader of
// SPEC_FULL.md §4.14: a flat `id\tparent_id\tname` table turned into an
// otree.Node tree, plus the incertae sedis exemption set reader. It
// performs no OTT-taxonomy-specific remapping; it exists only so
// cmd/otc-combine has a runnable last input tree.
//
// Grounded on gnames-gndb's iopopulate.buildHierarchy (retrieved in
// other_examples/65e250a2_gnames-gndb__internal-iopopulate-hierarchy.go.go)
// for the id/parent-id/name flat-table-to-tree shape: read every row into
// a map keyed by id first, then link parent pointers in a second pass,
// exactly as buildHierarchy's hNode map does before getBreadcrumbs walks
// it.
package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

// row is one line of the flat taxonomy table, before parent linking.
type row struct {
	id       leafset.ID
	parentID leafset.ID
	hasParent bool
	name     string
}

// Load reads a flat `id\tparent_id\tname` taxonomy table from path and
// returns its root as an otree.Node tree. A row with an empty parent_id
// field is the root; Load fails if the table has zero or more than one
// such row, or if any parent_id references an id not present in the
// table.
func Load(path string) (*otree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	defer f.Close()
	return parse(f)
}

// parse implements Load's table-to-tree construction, split out for
// testing against an in-memory reader.
func parse(r io.Reader) (*otree.Node, error) {
	rows, err := scanRows(r)
	if err != nil {
		return nil, err
	}

	nodes := make(map[leafset.ID]*otree.Node, len(rows))
	for _, rw := range rows {
		n := otree.NewInternal(rw.name)
		n.ExternalID = rw.id
		n.HasExternalID = true
		nodes[rw.id] = n
	}

	var root *otree.Node
	for _, rw := range rows {
		n := nodes[rw.id]
		if !rw.hasParent {
			if root != nil {
				return nil, fmt.Errorf("taxonomy: more than one root row (ids %d and %d)", root.ExternalID, rw.id)
			}
			root = n
			continue
		}
		parent, ok := nodes[rw.parentID]
		if !ok {
			return nil, fmt.Errorf("taxonomy: row %d references unknown parent id %d", rw.id, rw.parentID)
		}
		n.Detach()
		parent.AddChild(n)
	}
	if root == nil {
		return nil, fmt.Errorf("taxonomy: no root row found (every row had a parent_id)")
	}
	return root, nil
}

// scanRows tokenizes the flat table, one row per non-blank line, fields
// tab-separated: id, parent_id (empty for the root), name.
func scanRows(r io.Reader) ([]row, error) {
	var rows []row
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("taxonomy: line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
		}
		id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: line %d: invalid id %q: %w", lineNo, fields[0], err)
		}
		rw := row{id: leafset.ID(id), name: fields[2]}
		if parentField := strings.TrimSpace(fields[1]); parentField != "" {
			pid, err := strconv.ParseInt(parentField, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("taxonomy: line %d: invalid parent_id %q: %w", lineNo, fields[1], err)
			}
			rw.parentID = leafset.ID(pid)
			rw.hasParent = true
		}
		rows = append(rows, rw)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	return rows, nil
}

// LoadIncertaeSedis reads the one-external-id-per-line exemption set
// named by spec.md §6's IncertaeSedisPath configuration field. A blank
// path is not an error: it yields an empty set, since the exemption is
// optional.
func LoadIncertaeSedis(path string) (map[leafset.ID]bool, error) {
	if path == "" {
		return map[leafset.ID]bool{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: incertae sedis: %w", err)
	}
	defer f.Close()

	set := map[leafset.ID]bool{}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: incertae sedis: line %d: invalid id %q: %w", lineNo, line, err)
		}
		set[leafset.ID(id)] = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("taxonomy: incertae sedis: %w", err)
	}
	return set, nil
}
