// Copyright © 2026 The ELPS authors

package rdparser

import (
	"errors"
	"io"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser/lexer"
	"github.com/haerfest/nextlisp/parser/token"
)

// DefaultMaxDepth is the default limit on expression nesting.
const DefaultMaxDepth = 10000

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.TokenizeFile(name, string(src))
	if err != nil {
		return nil, lisp.GoError(LexError(err))
	}
	return New(tokens).ParseProgram()
}

// LexError converts an error returned by the lexer into an LError value.
func LexError(err error) *lisp.LVal {
	var lerr *token.LocationError
	if !errors.As(err, &lerr) {
		return lisp.ErrorCondition(lisp.CondParseError, err)
	}
	cond := lisp.CondParseError
	if errors.Is(lerr.Err, lexer.ErrUnterminatedString) {
		cond = lisp.CondUnterminatedString
	}
	v := lisp.ErrorCondition(cond, lerr.Err)
	v.Source = lerr.Source
	return v
}

// Parser is a recursive descent parser over a slice of tokens.
type Parser struct {
	// MaxDepth limits the nesting of expressions.  Deeper expressions
	// produce a stack-exhausted error.
	MaxDepth int
	src      *TokenSource
	depth    int
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		MaxDepth: DefaultMaxDepth,
		src:      src,
	}
}

// New initializes and returns a new Parser that reads tokens from a slice.
func New(tokens []*token.Token) *Parser {
	return NewFromSource(NewTokenSource(tokens))
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression.
func (p *Parser) Parse() (*lisp.LVal, error) {
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	expr := p.ParseExpression()
	if expr.Type == lisp.LError {
		return nil, lisp.GoError(expr)
	}
	return expr, nil
}

// ParseProgram parses a series of expressions until the tokens run out.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present and reports running out of tokens as
// an incomplete-expression error.
func (p *Parser) ParseExpression() *lisp.LVal {
	p.depth++
	defer func() { p.depth-- }()
	if p.MaxDepth > 0 && p.depth > p.MaxDepth {
		p.ReadToken()
		return p.errorf(lisp.CondStackExhausted, "expression nested deeper than %d", p.MaxDepth)
	}

	switch p.PeekType() {
	case token.ATOM:
		return p.ParseAtom()
	case token.QUOTE:
		return p.ParseQuote()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.DOT:
		p.ReadToken()
		return p.errorf(lisp.CondUnexpectedDot, "unexpected %s", p.TokenText())
	case token.PAREN_R:
		p.ReadToken()
		return p.errorf(lisp.CondUnexpectedCloseBracket, "unexpected %s", p.TokenText())
	case token.EOF:
		p.ReadToken()
		return p.errorf(lisp.CondIncompleteExpression, "unexpected end of input")
	default:
		p.ReadToken()
		return p.errorf(lisp.CondParseError, "unexpected token: %v", p.TokenType())
	}
}

func (p *Parser) ParseAtom() *lisp.LVal {
	if !p.Accept(token.ATOM) {
		return p.errorf(lisp.CondParseError, "invalid atom: %v", p.PeekType())
	}
	v := Atom(p.TokenText())
	if v.IsNil() {
		return v
	}
	if v.Type == lisp.LError {
		v.Source = p.Location()
		return v
	}
	return p.tokenLVal(v)
}

func (p *Parser) ParseQuote() *lisp.LVal {
	if !p.Accept(token.QUOTE) {
		return p.errorf(lisp.CondParseError, "invalid quote: %v", p.PeekType())
	}
	loc := p.Location()
	v := p.ParseExpression()
	if v.Type == lisp.LError {
		return v
	}
	q := lisp.Quote(v)
	q.Source = loc
	return q
}

// ParseConsExpression parses a list, which may end in a dotted tail.
func (p *Parser) ParseConsExpression() *lisp.LVal {
	if !p.Accept(token.PAREN_L) {
		return p.errorf(lisp.CondParseError, "invalid list: %v", p.PeekType())
	}
	open := p.Location()
	var cells []*lisp.LVal
	for {
		switch p.PeekType() {
		case token.EOF:
			p.ReadToken()
			return p.errorf(lisp.CondIncompleteExpression, "unmatched ( at %v", open)
		case token.PAREN_R:
			p.ReadToken()
			return p.list(open, cells, lisp.Nil())
		case token.DOT:
			p.ReadToken()
			if len(cells) == 0 {
				return p.errorf(lisp.CondUnexpectedDot, "unexpected . before first list element")
			}
			tail := p.ParseExpression()
			if tail.Type == lisp.LError {
				return tail
			}
			if p.Accept(token.PAREN_R) {
				return p.list(open, cells, tail)
			}
			p.ReadToken()
			if p.TokenType() == token.EOF {
				return p.errorf(lisp.CondIncompleteExpression, "unmatched ( at %v", open)
			}
			return p.errorf(lisp.CondUnexpectedDot, "expected ) after dotted tail, got %v", p.TokenType())
		default:
			x := p.ParseExpression()
			if x.Type == lisp.LError {
				return x
			}
			cells = append(cells, x)
		}
	}
}

func (p *Parser) list(open *token.Location, cells []*lisp.LVal, tail *lisp.LVal) *lisp.LVal {
	if len(cells) == 0 {
		return lisp.Nil()
	}
	v := lisp.DottedList(cells, tail)
	v.Source = open
	return v
}

// IsEOF returns true when all tokens have been consumed.
func (p *Parser) IsEOF() bool {
	return p.src.IsEOF()
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) PeekLocation() *token.Location {
	return p.src.Peek().Source
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Location()
	return v
}

func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) errorf(condition string, format string, v ...interface{}) *lisp.LVal {
	err := lisp.ErrorConditionf(condition, format, v...)
	err.Source = p.Location()
	return err
}
