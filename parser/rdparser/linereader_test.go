// Copyright © 2026 The ELPS authors

package rdparser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("(car '(a b))\n\n   \nfoo\n(cons 1 2)"))
	var got []string
	for {
		v, err := r.ReadExpression()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, v.String())
	}
	assert.Equal(t, []string{"(CAR (QUOTE (A B)))", "FOO", "(CONS 1 2)"}, got)
}

func TestLineReaderErrors(t *testing.T) {
	r := NewLineReader(strings.NewReader("(a b\n\"abc\na b\n(a b)\n"))

	_, err := r.ReadExpression()
	assertCondition(t, lisp.CondIncompleteExpression, err)
	_, err = r.ReadExpression()
	assertCondition(t, lisp.CondUnterminatedString, err)
	_, err = r.ReadExpression()
	assertCondition(t, lisp.CondParseError, err)

	// errors do not disturb the following line
	v, err := r.ReadExpression()
	require.NoError(t, err)
	assert.Equal(t, "(A B)", v.String())

	_, err = r.ReadExpression()
	assert.Equal(t, io.EOF, err)
}

func TestLineReaderLineLength(t *testing.T) {
	long := "(" + strings.Repeat("a ", 100) + ")"
	r := NewLineReader(strings.NewReader(long + "\nok\n"))
	_, err := r.ReadExpression()
	assert.True(t, errors.Is(err, ErrLineTooLong), "%v", err)
	v, err := r.ReadExpression()
	require.NoError(t, err)
	assert.Equal(t, "OK", v.String())

	r = NewLineReader(strings.NewReader(long), WithMaxLineLength(0))
	v, err = r.ReadExpression()
	require.NoError(t, err)
	assert.Equal(t, 100, v.Len())

	line := strings.Repeat("x", DefaultMaxLineLength)
	r = NewLineReader(strings.NewReader(line + "\r\n"))
	v, err = r.ReadExpression()
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(line), v.Str)
}

func TestLineReaderLocations(t *testing.T) {
	r := NewLineReader(strings.NewReader("a\n\n  )"), WithSourceName("input"))
	_, err := r.ReadExpression()
	require.NoError(t, err)
	_, err = r.ReadExpression()
	require.Error(t, err)
	assert.Equal(t, "input:3:3: unexpected-close-bracket: unexpected )", err.Error())
}

func assertCondition(t *testing.T, condition string, err error) {
	t.Helper()
	var lerr *lisp.ErrorVal
	if assert.True(t, errors.As(err, &lerr), "%v", err) {
		assert.Equal(t, condition, lerr.Condition(), "%v", err)
	}
}

func TestLineReaderFunc(t *testing.T) {
	lines := []string{"(a", "", "'b", "c d"}
	next := func() (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
	lr := NewLineReaderFunc(next, WithSourceName("repl"))
	assert.Equal(t, "repl", lr.Name())

	_, err := lr.ReadExpression()
	assertCondition(t, lisp.CondIncompleteExpression, err)
	assert.Equal(t, 1, lr.Line())

	expr, err := lr.ReadExpression()
	require.NoError(t, err)
	assert.Equal(t, "(QUOTE B)", expr.String())
	assert.Equal(t, 3, lr.Line())
	assert.Equal(t, 3, expr.Source.Line)

	_, err = lr.ReadExpression()
	assertCondition(t, lisp.CondParseError, err)

	_, err = lr.ReadExpression()
	assert.Equal(t, io.EOF, err)
}
