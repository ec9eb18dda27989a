// Copyright © 2026 The ELPS authors

package repl

import (
	"errors"

	"github.com/haerfest/nextlisp/diagnostic"
	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser/token"
)

// ErrorDiagnostic converts an error returned by the reader or evaluator into
// a Diagnostic.  Lisp errors carry their condition as the diagnostic code,
// their location as a span and their call stack as notes.
func ErrorDiagnostic(err error) diagnostic.Diagnostic {
	var lerr *lisp.ErrorVal
	if errors.As(err, &lerr) {
		return lispErrorToDiag((*lisp.LVal)(lerr))
	}
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  err.Error(),
	}
	var locErr *token.LocationError
	if errors.As(err, &locErr) {
		d.Message = locErr.Err.Error()
		if locErr.Source != nil {
			d.Spans = append(d.Spans, spanAt(locErr.Source))
		}
	}
	return d
}

// lispErrorToDiag converts an LError value to a Diagnostic for display.
func lispErrorToDiag(lerr *lisp.LVal) diagnostic.Diagnostic {
	ev := (*lisp.ErrorVal)(lerr)
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     ev.Condition(),
		Message:  ev.ErrorMessage(),
	}
	if lerr.Source != nil {
		d.Spans = append(d.Spans, spanAt(lerr.Source))
	}

	stack := lerr.CallStack()
	if stack != nil {
		for i := len(stack.Frames) - 1; i >= 0; i-- {
			frame := &stack.Frames[i]
			if frame.Source == nil || frame.Name == "" {
				continue
			}
			d.Notes = append(d.Notes, "in "+frame.Name+" at "+frame.Source.String())
		}
	}
	return d
}

func spanAt(loc *token.Location) diagnostic.Span {
	return diagnostic.Span{
		File: loc.File,
		Line: loc.Line,
		Col:  loc.Col,
	}
}
