// Copyright © 2026 The ELPS authors

package profiler

import (
	"testing"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/stretchr/testify/assert"
)

func TestDocFunLabeler(t *testing.T) {
	tests := []struct {
		doc   string
		label string
	}{
		{"", ""},
		{"no label here", ""},
		{"@trace{simple}", "simple"},
		{"Adds.  @trace{ Add It }", "Add_It"},
		{"@trace {spaced  out__label}", "spaced_out_label"},
		{"@trace{first} @trace{second}", "first"},
	}
	for _, test := range tests {
		fun := lisp.Fun("F", lisp.Formals(), nil)
		fun.FunData().Doc = test.doc
		assert.Equal(t, test.label, docFunLabeler(fun), "doc %q", test.doc)
	}
}

func TestFunName(t *testing.T) {
	lambda := lisp.List(lisp.Symbol("lambda"), lisp.Formals("x"), lisp.Symbol("x"))
	tests := []struct {
		fun  *lisp.LVal
		name string
	}{
		{lisp.Symbol("car"), "CAR"},
		{lisp.Fun("CDR", lisp.Formals("lis"), nil), "CDR"},
		{lambda, "LAMBDA"},
		{lisp.List(lisp.Symbol("label"), lisp.Symbol("f"), lambda), "F"},
		{lisp.Int(1), ""},
	}
	for _, test := range tests {
		assert.Equal(t, test.name, FunName(test.fun))
	}
}

func TestDefaultSkipFilter(t *testing.T) {
	lambda := lisp.List(lisp.Symbol("lambda"), lisp.Formals(), lisp.Nil())
	assert.False(t, defaultSkipFilter(lisp.Fun("CAR", lisp.Formals("lis"), nil)))
	assert.False(t, defaultSkipFilter(lambda))
	assert.False(t, defaultSkipFilter(lisp.List(lisp.Symbol("label"), lisp.Symbol("f"), lambda)))
	assert.True(t, defaultSkipFilter(lisp.Symbol("car")))
	assert.True(t, defaultSkipFilter(lisp.List(lisp.Symbol("car"), lisp.Symbol("x"))))
	assert.True(t, defaultSkipFilter(lisp.Int(3)))
}
