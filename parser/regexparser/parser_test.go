// Copyright © 2026 The ELPS authors

package regexparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLVal(t *testing.T) {
	tests := []struct {
		source string
		output []string
	}{
		{``, nil},
		{`  `, nil},
		{`abc`, []string{`ABC`}},
		{`-12 +3 - 1+`, []string{`-12`, `3`, `-`, `1+`}},
		{`"a b" "say \"hi\""`, []string{`"a b"`, `"say \"hi\""`}},
		{`'x`, []string{`(QUOTE X)`}},
		{`() nil`, []string{`NIL`, `NIL`}},
		{`(a b c)`, []string{`(A B C)`}},
		{`(a . b)`, []string{`(A . B)`}},
		{`(a b . (c))`, []string{`(A B C)`}},
		{"(car\n  '(a b))\n(cdr x)", []string{`(CAR (QUOTE (A B)))`, `(CDR X)`}},
	}
	for i, test := range tests {
		exprs, err := ParseLVal("test", []byte(test.source))
		if !assert.NoError(t, err, "test %d", i) {
			continue
		}
		var output []string
		for _, v := range exprs {
			output = append(output, v.String())
		}
		assert.Equal(t, test.output, output, "test %d", i)
	}
}

func TestParseLValErrors(t *testing.T) {
	tests := []struct {
		source    string
		condition string
	}{
		{`(a b`, lisp.CondIncompleteExpression},
		{`a )`, lisp.CondUnexpectedCloseBracket},
		{`(a . b c)`, lisp.CondUnexpectedDot},
		{`(. a)`, lisp.CondUnexpectedDot},
		{`x "abc`, lisp.CondUnterminatedString},
		{`(a 99999999999999999999999)`, lisp.CondParseError},
	}
	for i, test := range tests {
		_, err := ParseLVal("test", []byte(test.source))
		var lerr *lisp.ErrorVal
		if assert.True(t, errors.As(err, &lerr), "test %d: %v", i, err) {
			assert.Equal(t, test.condition, lerr.Condition(), "test %d: %v", i, err)
		}
	}
}

func TestErrorLocation(t *testing.T) {
	_, err := ParseLVal("test", []byte("(a)\n  (b . )"))
	require.Error(t, err)
	var lerr *lisp.ErrorVal
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 2, lerr.Source.Line)
	assert.Equal(t, 8, lerr.Source.Col)
}

// Both readers produce the same expressions.
func TestCompareReaders(t *testing.T) {
	src := `
(label fact (lambda (n) (cond ((eq n 0) 1) (t (* n (fact (- n 1)))))))
'(a (b . c) "d e" -7 ())
(cons 'x '(y . z))
`
	rd, err := rdparser.NewReader().Read("test", strings.NewReader(src))
	require.NoError(t, err)
	pc, err := NewReader().Read("test", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, pc, len(rd))
	for i := range rd {
		assert.True(t, lisp.Equal(rd[i], pc[i]), "%v != %v", rd[i], pc[i])
		assert.Equal(t, rd[i].Source.Line, pc[i].Source.Line)
		assert.Equal(t, rd[i].Source.Col, pc[i].Source.Col)
	}
}
