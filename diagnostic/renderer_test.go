// Copyright © 2026 The ELPS authors

package diagnostic

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRenderer returns a Renderer with colors disabled and in-memory
// sources.
func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color:        ColorNever,
		SourceReader: MemorySource(sources, nil),
	}
}

func render(t *testing.T, r *Renderer, d Diagnostic) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	return buf.String()
}

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(cons 1\n  (car 'a))",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Code:     "wrong-type",
		Message:  "CAR: argument is not a list: symbol",
		Spans: []Span{
			{File: "test.lisp", Line: 2, Col: 3, Label: "in this expression"},
		},
	})
	assert.Equal(t, `error[wrong-type]: CAR: argument is not a list: symbol
  --> test.lisp:2:3
   |
 2 |    (car 'a))
   |    ^^^^^^^^ in this expression
   |
`, got)
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(a)\n(b c)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityWarning,
		Message:  "something odd",
		Spans:    []Span{{File: "test.lisp", Line: 2, Col: 2, EndCol: 2}},
	})
	assert.Contains(t, got, "warning: something odd")
	assert.Contains(t, got, "--> test.lisp:2:2")
	assert.Contains(t, got, "(b c)")
	assert.Contains(t, got, "   ^\n")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans:    []Span{{File: "stdin", Line: 5, Col: 3}},
	})
	assert.Contains(t, got, "error: some error")
	assert.Contains(t, got, "--> stdin:5:3")
	assert.Contains(t, got, "|")
	assert.NotContains(t, got, "^")
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(my-fn 1 2)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Code:     "unbound-symbol",
		Message:  "unbound symbol: MY-FN",
		Spans:    []Span{{File: "test.lisp", Line: 1, Col: 2, EndCol: 6}},
		Notes: []string{
			"in MY-FN at test.lisp:1:2",
		},
	})
	assert.Contains(t, got, "= note: in MY-FN at test.lisp:1:2")
	assert.Contains(t, got, " ^^^^^")
}

func TestDetectEndCol(t *testing.T) {
	r := &Renderer{}
	tests := []struct {
		source string
		col    int
		end    int
	}{
		{"(car x)", 2, 4},
		{"(car x)", 1, 7},
		{"(a (b \")\") c) d", 4, 10},
		{"(unclosed", 1, 9},
		{`x "a\"b" y`, 3, 8},
		{`"open`, 1, 5},
		{"'x", 1, 1},
		{"abc", 9, 9},
	}
	for _, test := range tests {
		assert.Equal(t, test.end, r.detectEndCol(test.source, test.col), "%q col %d", test.source, test.col)
	}
}

func TestRenderCarriageReturn(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.lisp": "(a)\r\n(b c)\r\n",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityNote,
		Message:  "here",
		Spans:    []Span{{File: "test.lisp", Line: 2, Col: 4}},
	})
	assert.Contains(t, got, "note: here")
	assert.Contains(t, got, " 2 |  (b c)\n")
	assert.Contains(t, got, "   |     ^\n")
}

func TestRenderNoSpans(t *testing.T) {
	got := render(t, testRenderer(nil), Diagnostic{
		Severity: SeverityError,
		Message:  "file not found",
	})
	assert.Equal(t, "error: file not found\n", got)
}

func TestRenderColor(t *testing.T) {
	r := testRenderer(nil)
	r.Color = ColorAlways
	got := render(t, r, Diagnostic{Severity: SeverityError, Message: "boom"})
	assert.Contains(t, got, "\033[1;31m")
	assert.Contains(t, got, "\033[0m")
}

func TestMemorySourceFallback(t *testing.T) {
	read := MemorySource(map[string]string{"a": "x"}, func(name string) ([]byte, error) {
		if name == "b" {
			return []byte("y"), nil
		}
		return nil, errors.New("missing")
	})
	src, err := read("a")
	assert.NoError(t, err)
	assert.Equal(t, "x", string(src))
	src, err = read("b")
	assert.NoError(t, err)
	assert.Equal(t, "y", string(src))
	_, err = read("c")
	assert.Error(t, err)
}

func TestParseColorMode(t *testing.T) {
	for _, mode := range []ColorMode{ColorAuto, ColorAlways, ColorNever} {
		m, err := ParseColorMode(mode.String())
		assert.NoError(t, err)
		assert.Equal(t, mode, m)
	}
	m, err := ParseColorMode("")
	assert.NoError(t, err)
	assert.Equal(t, ColorAuto, m)
	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestChoosePalette(t *testing.T) {
	assert.Equal(t, ansiPalette, choosePalette(ColorAlways, nil))
	assert.Equal(t, noPalette, choosePalette(ColorNever, os.Stdout))
	assert.Equal(t, noPalette, choosePalette(ColorAuto, nil))
}
