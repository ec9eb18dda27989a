// Copyright © 2026 The ELPS authors

// Package lisptest runs table driven tests of lisp expressions.
package lisptest

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser"
)

// DefaultMaxHeight is the call stack limit of environments created by this
// package.
const DefaultMaxHeight = 25000

func BenchmarkParse(path string, r func() lisp.Reader) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			_, err := r().Read("test", bytes.NewReader(buf))
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// NewEnv returns a global environment whose diagnostic output is logged
// through t.  Additional configuration is applied after the defaults.
func NewEnv(t testing.TB, config ...lisp.Config) *lisp.LEnv {
	t.Helper()
	logger := NewLogger(t)
	t.Cleanup(logger.Flush)
	config = append([]lisp.Config{
		lisp.WithMaximumStackHeight(DefaultMaxHeight),
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(logger),
		lisp.WithStdout(logger),
	}, config...)
	env, err := lisp.NewUserEnv(config...)
	if err != nil {
		t.Fatalf("failed to initialize lisp environment: %v", err)
	}
	return env
}

// LispError reports err as a test failure, including a stack trace when err
// is a lisp error.
func LispError(t testing.TB, err error) {
	t.Helper()
	lerr, ok := err.(*lisp.ErrorVal)
	if !ok {
		t.Error(err)
		return
	}
	var buf bytes.Buffer
	_, ioerr := lerr.WriteTrace(&buf)
	if ioerr != nil {
		t.Errorf("io error: %v", ioerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
	Output string // output written to Runtime.Stdout
	Error  string // the expected error condition, if any
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var outBuf bytes.Buffer
		env, err := lisp.NewUserEnv(
			lisp.WithMaximumStackHeight(DefaultMaxHeight),
			lisp.WithReader(parser.NewReader()),
			lisp.WithStdout(&outBuf),
			lisp.WithStderr(io.MultiWriter(os.Stderr, &outBuf)),
		)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			outBuf.Reset()
			v, err := env.Runtime.Reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				if expr.Error != "" && errorCondition(err) == expr.Error {
					continue
				}
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			result := env.Eval(v[0])
			if expr.Error != "" {
				if result.Type != lisp.LError || result.Str != expr.Error {
					t.Errorf("test %d %q: expr %d: expected %s error (got %v)", i, test.Name, j, expr.Error, result)
				}
			} else if result.String() != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if outBuf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, outBuf.String())
			}
		}
	}
}

func errorCondition(err error) string {
	lerr, ok := err.(*lisp.ErrorVal)
	if !ok {
		return ""
	}
	return lerr.Condition()
}

// RunBenchmark runs a standard benchmark that executes expressions parsed from
// source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	exprs, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		env, err := lisp.NewUserEnv(
			lisp.WithMaximumStackHeight(DefaultMaxHeight),
			lisp.WithReader(p),
			lisp.WithStdout(io.Discard),
			lisp.WithStderr(io.Discard),
		)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		for i, expr := range exprs {
			lerr := env.Eval(expr)
			if lerr.Type == lisp.LError {
				b.Fatalf("expr %d: %v", i, lerr)
			}
		}
		b.StopTimer()
	}
}
