// Copyright © 2026 The ELPS authors

package rdparser

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser/lexer"
	"github.com/haerfest/nextlisp/parser/token"
)

// DefaultMaxLineLength is the longest line, in bytes and excluding the line
// terminator, that a LineReader accepts by default.
const DefaultMaxLineLength = 128

// ErrLineTooLong is returned by a LineReader for lines exceeding its maximum
// length.  The rest of the offending line is discarded.
var ErrLineTooLong = errors.New("line too long")

// LineReader reads one expression per line of input.
type LineReader struct {
	next     func() (string, error)
	name     string
	maxLen   int
	line     int
	maxDepth int
}

// LineReaderOption configures a LineReader.
type LineReaderOption func(*LineReader)

// WithMaxLineLength overrides DefaultMaxLineLength.  A value less than or
// equal to zero removes the limit.
func WithMaxLineLength(n int) LineReaderOption {
	return func(lr *LineReader) {
		lr.maxLen = n
	}
}

// WithSourceName sets the file name reported in token locations.
func WithSourceName(name string) LineReaderOption {
	return func(lr *LineReader) {
		lr.name = name
	}
}

// WithMaxDepth sets the MaxDepth of the parser used for each line.
func WithMaxDepth(n int) LineReaderOption {
	return func(lr *LineReader) {
		lr.maxDepth = n
	}
}

// NewLineReader returns a LineReader reading from r.
func NewLineReader(r io.Reader, opts ...LineReaderOption) *LineReader {
	return NewLineReaderFunc(bufioLines(r), opts...)
}

// NewLineReaderFunc returns a LineReader which takes lines from next.  Next
// returns lines without their terminator and io.EOF at the end of input, so
// a line editor can feed a LineReader.
func NewLineReaderFunc(next func() (string, error), opts ...LineReaderOption) *LineReader {
	lr := &LineReader{
		next:     next,
		name:     "stdin",
		maxLen:   DefaultMaxLineLength,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// ReadLine returns the next line of input without its terminator.  A final
// line without a terminator is returned like any other.  ReadLine returns
// io.EOF once the input is exhausted.
func (lr *LineReader) ReadLine() (string, error) {
	line, err := lr.next()
	if err != nil {
		return "", err
	}
	lr.line++
	line = strings.TrimSuffix(line, "\r")
	if lr.maxLen > 0 && len(line) > lr.maxLen {
		return "", &token.LocationError{
			Err:    ErrLineTooLong,
			Source: &token.Location{File: lr.name, Line: lr.line},
		}
	}
	return line, nil
}

// Line returns the number of the line read last.
func (lr *LineReader) Line() int {
	return lr.line
}

// Name returns the source name reported in token locations.
func (lr *LineReader) Name() string {
	return lr.name
}

func bufioLines(r io.Reader) func() (string, error) {
	br := bufio.NewReader(r)
	atEOF := false
	return func() (string, error) {
		if atEOF {
			return "", io.EOF
		}
		line, err := br.ReadString('\n')
		if err == io.EOF {
			atEOF = true
			if line == "" {
				return "", io.EOF
			}
		} else if err != nil {
			return "", err
		}
		return strings.TrimSuffix(line, "\n"), nil
	}
}

// ReadExpression reads lines until one is not blank and parses it as exactly
// one expression.  Errors in the line are returned as *lisp.ErrorVal values.
// ReadExpression returns io.EOF at the end of input.
func (lr *LineReader) ReadExpression() (*lisp.LVal, error) {
	for {
		line, err := lr.ReadLine()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		return lr.parseLine(line)
	}
}

func (lr *LineReader) parseLine(line string) (*lisp.LVal, error) {
	tokens, err := lexer.TokenizeFile(lr.name, line)
	if err != nil {
		lerr := LexError(err)
		if lerr.Source != nil {
			lerr.Source.Line = lr.line
		}
		return nil, lisp.GoError(lerr)
	}
	for _, tok := range tokens {
		tok.Source.Line = lr.line
	}
	expr, err := ParseLine(tokens, lr.maxDepth)
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseLine parses tokens as exactly one expression.  Tokens remaining after
// the expression produce a parse-error.
func ParseLine(tokens []*token.Token, maxDepth int) (*lisp.LVal, error) {
	p := New(tokens)
	p.MaxDepth = maxDepth
	expr := p.ParseExpression()
	if expr.Type == lisp.LError {
		return nil, lisp.GoError(expr)
	}
	if !p.IsEOF() {
		p.ReadToken()
		return nil, lisp.GoError(p.errorf(lisp.CondParseError, "unexpected %v after expression", p.TokenText()))
	}
	return expr, nil
}
