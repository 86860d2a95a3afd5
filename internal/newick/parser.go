package newick

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/otcgo/otcgo/pkg/leafset"
	"github.com/otcgo/otcgo/pkg/otree"
)

// Parse reads a single Newick tree from input and returns its root as an
// otree.Node, grounded on pkg/yang/parse.go's recursive-descent statement
// builder: a parser struct holding the current lookahead token, one
// parse* method per grammar production, errors returned rather than
// accumulated (Newick has no "keep parsing the rest of the file after an
// error" use case the way a YANG module does).
func Parse(input string) (*otree.Node, error) {
	p := &parser{lex: newLexer(input)}
	p.advance()
	root, err := p.parseSubtree()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tSemicolon {
		return nil, fmt.Errorf("newick: expected ';' terminator, got %q at position %d", p.tok.text, p.tok.pos)
	}
	return root, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

// parseSubtree implements the grammar:
//
//	subtree := '(' subtree (',' subtree)* ')' label? | label
//
// with an optional trailing ':...' branch length discarded after either
// form (spec §1: "no branch-length semantics").
func (p *parser) parseSubtree() (*otree.Node, error) {
	if p.tok.kind == tError {
		return nil, fmt.Errorf("newick: %s at position %d", p.tok.text, p.tok.pos)
	}
	var node *otree.Node
	if p.tok.kind == tLParen {
		p.advance()
		internal := otree.NewInternal("")
		for {
			child, err := p.parseSubtree()
			if err != nil {
				return nil, err
			}
			internal.AddChild(child)
			if p.tok.kind == tComma {
				p.advance()
				continue
			}
			break
		}
		if p.tok.kind != tRParen {
			return nil, fmt.Errorf("newick: expected ')' at position %d, got %q", p.tok.pos, p.tok.text)
		}
		p.advance()
		node = internal
	} else {
		node = otree.NewLeaf("")
	}

	if p.tok.kind == tLabel {
		applyLabel(node, p.tok.text)
		p.advance()
	}
	if p.tok.kind == tColon {
		p.advance() // branch length: tokenized, never interpreted
	}
	return node, nil
}

// applyLabel splits raw (the lexer's untouched label text) into a display
// name and an optional trailing "_ottNNN" external-id suffix, folding
// remaining underscores to spaces per Newick convention, and sets both on
// n.
func applyLabel(n *otree.Node, raw string) {
	name := raw
	if idx := strings.LastIndex(raw, "_ott"); idx >= 0 {
		if id, err := strconv.ParseInt(raw[idx+4:], 10, 64); err == nil {
			n.ExternalID = leafset.ID(id)
			n.HasExternalID = true
			name = raw[:idx]
		}
	}
	n.Name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}
