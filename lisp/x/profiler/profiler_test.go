// Copyright © 2026 The ELPS authors

package profiler_test

import (
	"testing"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/lisptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLisp = `
((label count (lambda (n) (cond ((eq n 0) (add-it 1 2)) (t (count (- n 1)))))) 2)
((lambda (x) (add-it-again x 3)) 4)
`

func testBuiltins() lisp.Config {
	add := func(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
		return lisp.Int(args.Car().Int + args.Cdr().Car().Int)
	}
	return lisp.WithBuiltins(
		lisp.NewBuiltin("add-it", lisp.Formals("x", "y"), add, "Adds x and y.  @trace{ Add It }"),
		lisp.NewBuiltin("add-it-again", lisp.Formals("x", "y"), add, "Adds x and y.  @trace{Add_It_Again}"),
		lisp.NewBuiltin("add-quietly", lisp.Formals("x", "y"), add, "Adds x and y."),
	)
}

// runTestLisp evaluates testLisp with p attached to the environment.
func runTestLisp(t *testing.T, p lisp.Profiler) {
	t.Helper()
	require.NoError(t, p.Enable())
	assert.True(t, p.IsEnabled())
	assert.Error(t, p.Enable())
	env := lisptest.NewEnv(t, testBuiltins(), lisp.WithProfiler(p))
	v := env.LoadString("test.lisp", testLisp)
	require.NotEqual(t, lisp.LError, v.Type, v.String())
	assert.Equal(t, "7", v.String())
	assert.NoError(t, p.Complete())
}
