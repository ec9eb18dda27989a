// Copyright © 2026 The ELPS authors

package token

import "fmt"

// Token is one lexical unit of source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case ATOM, ERROR:
		return fmt.Sprintf("%s(%s)", tok.Type, tok.Text)
	default:
		return tok.Type.String()
	}
}

type Type uint

// Type constants used by the lexer and parser.  INVALID, ERROR and EOF never
// appear in a successfully tokenized line; they exist for token streams.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Delimiters
	PAREN_L
	PAREN_R

	// Operators
	QUOTE
	DOT

	// ATOM is any symbol, number or string literal.  Classification happens
	// at parse time.
	ATOM

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		PAREN_L: "(",
		PAREN_R: ")",
		QUOTE:   "'",
		DOT:     ".",
		ATOM:    "atom",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

type Location struct {
	File string // a name representing the source stream
	Pos  int    // byte offset from the start of the stream
	Line int    // line number (starting at 1 when tracked)
	Col  int    // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

// Unwrap allows errors.Is to match the underlying error.
func (err *LocationError) Unwrap() error {
	return err.Err
}
