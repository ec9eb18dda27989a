// Copyright © 2026 The ELPS authors

package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// MemorySource returns a SourceReader serving the named sources in srcs.
// Names missing from srcs are read with fallback, when it is not nil.
func MemorySource(srcs map[string]string, fallback func(string) ([]byte, error)) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if src, ok := srcs[name]; ok {
			return []byte(src), nil
		}
		if fallback != nil {
			return fallback(name)
		}
		return nil, fmt.Errorf("no source: %s", name)
	}
}

// Render writes d to w with a single write.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	var b strings.Builder

	kind := d.Severity.String()
	if d.Code != "" {
		kind += "[" + d.Code + "]"
	}
	fmt.Fprintf(&b, "%s%s%s%s: %s%s%s\n",
		severityColor(d.Severity, p), p.bold, kind, p.reset,
		p.bold, d.Message, p.reset)

	for _, span := range d.Spans {
		r.writeSpan(&b, span, p)
	}
	for _, note := range d.Notes {
		fmt.Fprintf(&b, "   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func severityColor(s Severity, p palette) string {
	switch s {
	case SeverityWarning:
		return p.yellow
	case SeverityNote:
		return p.boldCyan
	default:
		return p.boldRed
	}
}

// writeSpan writes the location of span followed, when its source line can be
// read, by the line and a caret underline.
func (r *Renderer) writeSpan(b *strings.Builder, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc += ":" + strconv.Itoa(span.Line)
		if span.Col > 0 {
			loc += ":" + strconv.Itoa(span.Col)
		}
	}
	fmt.Fprintf(b, "  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		fmt.Fprintf(b, "   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	num := strconv.Itoa(span.Line)
	gutter := func(label string) string {
		return " " + p.boldBlue + label + " |" + p.reset
	}
	blank := gutter(strings.Repeat(" ", len(num)))

	col := span.Col
	if col <= 0 {
		col = 1
	}
	end := span.EndCol
	if end <= 0 {
		end = r.detectEndCol(source, col)
	}
	if end < col {
		end = col
	}
	var prefix string
	if col-1 <= len(source) {
		prefix = source[:col-1]
	}

	b.WriteString(blank + "\n")
	b.WriteString(gutter(num) + "  " + expandTabs(source) + "\n")
	b.WriteString(blank + "  " + strings.Repeat(" ", utf8.RuneCountInString(expandTabs(prefix))))
	b.WriteString(p.boldRed + strings.Repeat("^", end-col+1) + p.reset)
	if span.Label != "" {
		b.WriteString(" " + p.boldRed + span.Label + p.reset)
	}
	b.WriteString("\n" + blank + "\n")
}

// sourceLine returns the 1-based line of file.  The second result is false
// when the source cannot be read, the line does not exist or is empty.
func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	read := r.SourceReader
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(file)
	if err != nil {
		return "", false
	}
	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return "", false
	}
	text := strings.TrimSuffix(lines[line-1], "\r")
	return text, text != ""
}

// detectEndCol scans from col to find the end of the current token.  A
// token starting with a double quote extends to the closing quote and an
// open parenthesis extends to its match, or the end of the line.
func (r *Renderer) detectEndCol(source string, col int) int {
	if col <= 0 || col > len(source) {
		return col
	}
	end := col - 1 // 0-based
	switch source[end] {
	case '(':
		depth := 0
		inString := false
		for ; end < len(source); end++ {
			switch c := source[end]; {
			case inString && c == '\\':
				end++
			case c == '"':
				inString = !inString
			case inString:
			case c == '(':
				depth++
			case c == ')':
				depth--
				if depth == 0 {
					return end + 1
				}
			}
		}
		return len(source)
	case '"':
		for end++; end < len(source); end++ {
			switch source[end] {
			case '\\':
				end++
			case '"':
				return end + 1
			}
		}
		return len(source)
	}
	i := strings.IndexFunc(source[end:], isDelimiter)
	switch {
	case i < 0:
		return len(source)
	case i == 0:
		return col // single character
	}
	return end + i
}

func isDelimiter(c rune) bool {
	return strings.ContainsRune(" \t()'", c)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// fileFromWriter returns the *os.File behind w for terminal detection, or nil.
func fileFromWriter(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}
