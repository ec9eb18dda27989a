// Copyright © 2026 The ELPS authors

// Package regexparser provides an alternate lisp reader built from parser
// combinators.
//
//	expr   := <string> | <atom> | '\'' <expr> | <list>
//	list   := '(' <expr>* ( ')' | '.' <expr> ')' )
//	string := /"(?:[^"\\]|\\.)*"/
//	atom   := /[^()'". \t\n][^() \t\n]*/
//
// Atoms are classified exactly as the recursive descent parser classifies them.
// Input which the grammar rejects is handed to the recursive descent parser to
// produce a precise error.
package regexparser

import (
	"io"
	"sort"
	"strings"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser/rdparser"
	"github.com/haerfest/nextlisp/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseLVal(name, b)
}

// ParseLVal parses LVal values from text and returns them.
func ParseLVal(name string, text []byte) ([]*lisp.LVal, error) {
	var v []*lisp.LVal
	g := &grammar{name: name, lines: lineOffsets(text)}
	s := parsec.NewScanner(text)
	parser := g.parser()
	root, s := parser(s)
	for root != nil {
		lval, ok := root.(*lisp.LVal)
		if !ok {
			break
		}
		v = append(v, lval)
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return nil, g.diagnose(text[s.GetCursor():], s.GetCursor())
	}
	return v, nil
}

type grammar struct {
	name  string
	lines []int
}

// dottedTail marks the tail of an improper list.
type dottedTail struct {
	v *lisp.LVal
}

func (g *grammar) parser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	dot := parsec.Atom(".", "DOT")
	q := parsec.Atom("'", "QUOTE")
	str := parsec.Token(`"(?:[^"\\]|\\(?s:.))*"`, "STRING")
	atom := parsec.Token(`[^()'". \t\n][^() \t\n]*`, "ATOM")

	var expr parsec.Parser // forward declaration allows for recursive parsing
	term := parsec.OrdChoice(g.termNode, str, atom)
	quoted := parsec.And(g.quoteNode, q, &expr)
	items := parsec.Kleene(itemsNode, &expr)
	dotted := parsec.And(dottedNode, dot, &expr, closeP)
	end := parsec.OrdChoice(first, closeP, dotted)
	list := parsec.And(g.listNode, openP, items, end)
	expr = parsec.OrdChoice(first, term, quoted, list)
	return expr
}

func first(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func (g *grammar) termNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	term, ok := first(nodes).(*parsec.Terminal)
	if !ok {
		return nil
	}
	v := rdparser.Atom(term.GetValue())
	if v.Type == lisp.LError {
		// fail the match so diagnose reports the error
		return nil
	}
	if v.IsNil() {
		return v
	}
	v.Source = g.location(term.Position)
	return v
}

func (g *grammar) quoteNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 2 {
		return nil
	}
	v, ok := nodes[1].(*lisp.LVal)
	if !ok {
		return nil
	}
	quote := lisp.Quote(v)
	if term, ok := nodes[0].(*parsec.Terminal); ok {
		quote.Source = g.location(term.Position)
	}
	return quote
}

func itemsNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	cells := make([]*lisp.LVal, 0, len(nodes))
	for _, n := range nodes {
		if v, ok := n.(*lisp.LVal); ok {
			cells = append(cells, v)
		}
	}
	return cells
}

func dottedNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 3 {
		return nil
	}
	v, ok := nodes[1].(*lisp.LVal)
	if !ok {
		return nil
	}
	return &dottedTail{v}
}

func (g *grammar) listNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 3 {
		return nil
	}
	cells, _ := nodes[1].([]*lisp.LVal)
	tail := lisp.Nil()
	if d, ok := nodes[2].(*dottedTail); ok {
		if len(cells) == 0 {
			// (. x) is rejected by the recursive descent parser as well
			return nil
		}
		tail = d.v
	}
	if len(cells) == 0 {
		return lisp.Nil()
	}
	v := lisp.DottedList(cells, tail)
	if open, ok := nodes[0].(*parsec.Terminal); ok {
		v.Source = g.location(open.Position)
	}
	return v
}

// diagnose produces an error for text the grammar could not parse.
func (g *grammar) diagnose(rest []byte, offset int) error {
	_, err := rdparser.NewReader().Read(g.name, strings.NewReader(string(rest)))
	if err == nil {
		return lisp.GoError(lisp.ErrorConditionf(lisp.CondParseError, "%v: unexpected source text", g.location(offset)))
	}
	if lerr, ok := err.(*lisp.ErrorVal); ok && lerr.Source != nil {
		loc := g.location(offset + lerr.Source.Pos)
		lerr.Source = loc
	}
	return err
}

func (g *grammar) location(pos int) *token.Location {
	line := sort.Search(len(g.lines), func(i int) bool { return g.lines[i] > pos })
	return &token.Location{
		File: g.name,
		Pos:  pos,
		Line: line,
		Col:  pos - g.lines[line-1] + 1,
	}
}

// lineOffsets returns the byte offset at which each line of text starts.
func lineOffsets(text []byte) []int {
	lines := []int{0}
	for i, c := range text {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}
