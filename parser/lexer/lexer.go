// Copyright © 2026 The ELPS authors

// Package lexer splits source text into tokens.
package lexer

import (
	"errors"

	"github.com/haerfest/nextlisp/parser/token"
)

// ErrUnterminatedString is reported when input ends inside a string literal.
var ErrUnterminatedString = errors.New("unterminated string")

type LexFn func(*Lexer) *token.Token

type Lexer struct {
	scanner *token.Scanner
	lex     LexFn
	err     error
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
		lex:     (*Lexer).readToken,
	}
	return lex
}

// Tokenize splits line into tokens.  If line cannot be tokenized no tokens
// are returned, only an error.
func Tokenize(line string) ([]*token.Token, error) {
	return TokenizeFile("", line)
}

// TokenizeFile is like Tokenize but labels token locations with file.
func TokenizeFile(file, line string) ([]*token.Token, error) {
	lex := New(token.NewScanner(file, line))
	var tokens []*token.Token
	for {
		tok := lex.ReadToken()
		switch tok.Type {
		case token.EOF:
			return tokens, nil
		case token.ERROR:
			return nil, lex.Err()
		}
		tokens = append(tokens, tok)
	}
}

// ReadToken returns the next token in the stream.  At the end of input
// ReadToken returns a token with type token.EOF.  After a lexical error
// ReadToken returns a token with type token.ERROR and Err reports the cause.
func (lex *Lexer) ReadToken() *token.Token {
	return lex.lex(lex)
}

// Err returns the error which caused an ERROR token, if any.
func (lex *Lexer) Err() error {
	return lex.err
}

func (lex *Lexer) readToken() *token.Token {
	lex.skipWhitespace()
	if !lex.scanner.ScanRune() {
		return lex.scanner.EmitToken(token.EOF)
	}
	switch lex.scanner.Rune() {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '\'':
		return lex.scanner.EmitToken(token.QUOTE)
	case '.':
		return lex.scanner.EmitToken(token.DOT)
	case '"':
		return lex.readString()
	default:
		lex.scanner.AcceptSeq(isAtom)
		return lex.scanner.EmitToken(token.ATOM)
	}
}

func (lex *Lexer) readString() *token.Token {
	escaped := false
	for {
		if !lex.scanner.ScanRune() {
			return lex.errorf(ErrUnterminatedString)
		}
		switch {
		case escaped:
			escaped = false
		case lex.scanner.Rune() == '\\':
			escaped = true
		case lex.scanner.Rune() == '"':
			return lex.scanner.EmitToken(token.ATOM)
		}
	}
}

// errorf records err and makes every subsequent call to ReadToken return an
// ERROR token.
func (lex *Lexer) errorf(err error) *token.Token {
	tok := lex.scanner.EmitToken(token.ERROR)
	lex.err = &token.LocationError{Err: err, Source: tok.Source}
	lex.lex = func(*Lexer) *token.Token { return tok }
	return tok
}

func (lex *Lexer) skipWhitespace() {
	if lex.scanner.AcceptSeq(isSpace) > 0 {
		lex.scanner.Ignore()
	}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isAtom(c rune) bool {
	return c != '(' && c != ')' && !isSpace(c)
}
