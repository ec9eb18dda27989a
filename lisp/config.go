// Copyright © 2026 The ELPS authors

package lisp

import (
	"errors"
	"io"
)

// Config is a function that configures the runtime of a root environment.
type Config func(rt *Runtime) error

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the call stack height to exceed n.  A value of
// zero removes the limit, leaving deep recursion bounded only by the Go
// stack.
func WithMaximumStackHeight(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return errors.New("negative maximum stack height")
		}
		rt.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		rt.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes PRINT write to w instead of the
// default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stderr = w
		return nil
	}
}

// WithProfiler returns a Config that attaches p to the runtime.  The
// profiler is consulted on every function application.
func WithProfiler(p Profiler) Config {
	return func(rt *Runtime) error {
		rt.Profiler = p
		return nil
	}
}

// WithBuiltins returns a Config that installs funs in the global environment
// in addition to DefaultBuiltins().
func WithBuiltins(funs ...LBuiltinDef) Config {
	return func(rt *Runtime) error {
		rt.Builtins = append(rt.Builtins, funs...)
		return nil
	}
}
