// Copyright © 2026 The ELPS authors

package profiler

import (
	"regexp"

	"github.com/haerfest/nextlisp/lisp"
)

// SkipFilter returns true for functions which should not be traced.
type SkipFilter func(fun *lisp.LVal) bool

// defaultSkipFilter traces builtins and function expressions.  A symbol in
// function position is skipped because the value it resolves to is applied
// immediately afterwards.
func defaultSkipFilter(fun *lisp.LVal) bool {
	switch fun.Type {
	case lisp.LFun:
		return false
	case lisp.LPair:
		head := fun.Car()
		return !head.IsSymbol(lisp.LambdaSymbol) && !head.IsSymbol(lisp.LabelSymbol)
	default:
		return true
	}
}

// WithDocFilter filters to only include spans for builtins with docs that
// denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter. All functions with a docstring that contains this string
// will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(fun *lisp.LVal) bool {
	docStr := fun.Docstring()
	if docStr == "" {
		return true
	}
	return !docTraceRegExp.MatchString(docStr)
}
