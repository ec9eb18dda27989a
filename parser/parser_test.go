// Copyright © 2026 The ELPS authors

package parser

import (
	"strings"
	"testing"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	r := NewReader()
	exprs, err := r.Read("test", strings.NewReader("(+ 1 2)"))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, lisp.LPair, exprs[0].Type)
}

func TestNewReaderNamed(t *testing.T) {
	for _, name := range []string{"", ReaderRD, ReaderParsec} {
		r, err := NewReaderNamed(name)
		require.NoError(t, err, name)
		exprs, err := r.Read("test", strings.NewReader("(cons 'a '(b . c))"))
		require.NoError(t, err, name)
		require.Len(t, exprs, 1, name)
		assert.Equal(t, "(CONS (QUOTE A) (QUOTE (B . C)))", exprs[0].String(), name)
	}

	_, err := NewReaderNamed("yacc")
	assert.Error(t, err)
}
