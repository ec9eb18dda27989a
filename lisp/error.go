// Copyright © 2026 The ELPS authors

package lisp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ErrorVal implements the error interface so that errors can be first class lisp
// objects.  The error message is stored in the Cells slice while the
// condition name is stored in the Str field.
type ErrorVal LVal

// Error implements the error interface.  The condition name precedes the
// error message, and the source location precedes both when it is known.
func (e *ErrorVal) Error() string {
	if e.Source != nil {
		return fmt.Sprintf("%s: %s", e.Source, e.baseMessage())
	}
	return e.baseMessage()
}

func (e *ErrorVal) baseMessage() string {
	msg := e.ErrorMessage()
	if msg == "" {
		return e.Str
	}
	return fmt.Sprintf("%s: %s", e.Str, msg)
}

// Condition returns the error condition name (e.g., "unbound-symbol").
func (e *ErrorVal) Condition() string {
	return e.Str
}

// FunName returns the name of function on the top of the call stack when the
// error occurred.
func (e *ErrorVal) FunName() string {
	top := (*LVal)(e).CallStack().Top()
	if top == nil {
		return ""
	}
	return top.Name
}

// ErrorMessage returns the underlying message in the error.
func (e *ErrorVal) ErrorMessage() string {
	var buf strings.Builder
	for i, cell := range e.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		if cell.Type == LString {
			buf.WriteString(cell.Str)
		} else {
			buf.WriteString(cell.String())
		}
	}
	return buf.String()
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	stack := (*LVal)(e).CallStack()
	if stack != nil && len(stack.Frames) > 0 {
		if !wrote(stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// CallStack returns the call stack recorded in an LError value, or nil.
func (v *LVal) CallStack() *CallStack {
	if v.Type != LError {
		return nil
	}
	stack, _ := v.Native.(*CallStack)
	return stack
}

// GoError returns an error that represents v.  If v is not LError then nil is
// returned.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}

// ErrorCondition returns an LError with the given condition type and an error
// message computed by rendering v.  Strings are included verbatim while other
// lisp values are printed.
//
// Unlike the exported function, the ErrorCondition method returns an LVal with
// a copy env.Runtime.Stack.
func (env *LEnv) ErrorCondition(condition string, v ...interface{}) *LVal {
	cells := make([]*LVal, 0, len(v))
	for _, v := range v {
		switch v := v.(type) {
		case *LVal:
			cells = append(cells, v)
		case error:
			cells = append(cells, String(v.Error()))
		case string:
			cells = append(cells, String(v))
		default:
			cells = append(cells, String(fmt.Sprint(v)))
		}
	}
	return &LVal{
		Type:   LError,
		Str:    condition,
		Native: env.Runtime.Stack.Copy(),
		Cells:  cells,
	}
}

// ErrorConditionf returns an LError value with the given condition type and a
// a formatted error message rendered using fmt.Sprintf.
//
// Unlike the exported function, the ErrorConditionf method returns an LVal
// with a copy env.Runtime.Stack.
func (env *LEnv) ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return &LVal{
		Type:   LError,
		Str:    condition,
		Native: env.Runtime.Stack.Copy(),
		Cells:  []*LVal{String(fmt.Sprintf(format, v...))},
	}
}

// errorAssociate gives lerr the location src if lerr has no location yet, so
// an error points at the innermost expression with a known source.
func errorAssociate(lerr *LVal, src *LVal) {
	if lerr.Source == nil && src.Source != nil {
		lerr.Source = src.Source
	}
}
