// Copyright © 2026 The ELPS authors

package cmd

import (
	"io"
	"os"

	"github.com/haerfest/nextlisp/diagnostic"
	"github.com/haerfest/nextlisp/repl"
)

// renderError renders err to w.  Sources named in srcs are shown from
// memory, others are read from the file system.
func renderError(w io.Writer, color diagnostic.ColorMode, err error, srcs map[string]string) {
	r := &diagnostic.Renderer{
		Color:        color,
		SourceReader: diagnostic.MemorySource(srcs, os.ReadFile),
	}
	_ = r.Render(w, repl.ErrorDiagnostic(err))
}
