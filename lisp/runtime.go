// Copyright © 2026 The ELPS authors

package lisp

import (
	"io"
	"os"
)

// Runtime is an object underlying a family of tree of LEnv values.  It holds
// shared environment state: the call stack, the output streams and the
// optional Reader and Profiler.
type Runtime struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Stack    *CallStack
	Reader   Reader
	Profiler Profiler
	Builtins []LBuiltinDef
}

// StandardRuntime returns a new Runtime writing to os.Stdout and os.Stderr
// with a call stack limited to DefaultMaxHeight frames.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stack:  &CallStack{MaxHeight: DefaultMaxHeight},
	}
}

// Reader parses source streams into expressions.
type Reader interface {
	Read(name string, r io.Reader) ([]*LVal, error)
}
