// Copyright © 2026 The ELPS authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/haerfest/nextlisp/lisp/x/profiler"
)

func TestNewPprofAnnotator(t *testing.T) {
	runTestLisp(t, profiler.NewPprofAnnotator(context.Background()))
}
