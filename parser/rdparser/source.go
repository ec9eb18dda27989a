// Copyright © 2026 The ELPS authors

package rdparser

import (
	"github.com/haerfest/nextlisp/parser/token"
)

// TokenSource provides a cursor over a tokenized line.  Token is the token
// most recently consumed.  Once tokens run out Peek returns an EOF token
// located just past the last token.
type TokenSource struct {
	Token  *token.Token
	tokens []*token.Token
	pos    int
	eof    *token.Token
}

// NewTokenSource initializes and returns a new TokenSource over tokens.
func NewTokenSource(tokens []*token.Token) *TokenSource {
	eof := &token.Token{Type: token.EOF, Source: &token.Location{}}
	if len(tokens) > 0 {
		if last := tokens[len(tokens)-1].Source; last != nil {
			loc := *last
			loc.Pos += len(tokens[len(tokens)-1].Text)
			loc.Col += len(tokens[len(tokens)-1].Text)
			eof.Source = &loc
		}
	}
	return &TokenSource{
		tokens: tokens,
		eof:    eof,
	}
}

func (s *TokenSource) Peek() *token.Token {
	if s.pos >= len(s.tokens) {
		return s.eof
	}
	return s.tokens[s.pos]
}

func (s *TokenSource) Accept(fn func(*token.Token) bool) bool {
	if fn(s.Peek()) {
		s.scan()
		return true
	}
	return false
}

func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek()
		return false
	}
	s.scan()
	return true
}

func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

// Remaining returns the number of tokens not yet consumed.
func (s *TokenSource) Remaining() int {
	return len(s.tokens) - s.pos
}

func (s *TokenSource) scan() {
	s.Token = s.Peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
}
