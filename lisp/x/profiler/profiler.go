// Copyright © 2026 The ELPS authors

// Package profiler provides lisp.Profiler implementations which annotate
// function applications with tracing spans or pprof labels.
package profiler

import (
	"fmt"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser/token"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Option configures a profiler.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

// FunName returns the name a span for the application of fun is given.
// Builtins are named after the symbol they were installed under and LABEL
// expressions after their label.  Other expressions are named by their head
// symbol.
func FunName(fun *lisp.LVal) string {
	switch fun.Type {
	case lisp.LFun, lisp.LSymbol:
		return fun.Str
	case lisp.LPair:
		head := fun.Car()
		if head.IsSymbol(lisp.LabelSymbol) {
			if name := fun.Cdr().Car(); name.Type == lisp.LSymbol {
				return name.Str
			}
		}
		if head.Type == lisp.LSymbol {
			return head.Str
		}
	}
	return ""
}

// prettyFunName returns a pretty name and original name for a fun. If there is
// no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(fun *lisp.LVal) (string, string) {
	origLabel := FunName(fun)
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(fun)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(v *lisp.LVal) bool {
	return !p.enabled || defaultSkipFilter(v) || p.skipFilter != nil && p.skipFilter(v)
}

// getSourceLoc returns the location of fun, falling back to the location of
// the head of a function expression.
func getSourceLoc(fun *lisp.LVal) *token.Location {
	if fun.Source != nil {
		return fun.Source
	}
	if fun.Type == lisp.LPair {
		return fun.Car().Source
	}
	return nil
}
