// Copyright © 2026 The ELPS authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

// docWidth is the column at which documentation is wrapped.
const docWidth = 72

func docCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doc [NAME...]",
		Short: "Show documentation for primitives and special forms",
		Long: `Show the built-in documentation of primitives and special forms.

Without arguments every documented name is listed.  Names are not case
sensitive.

Examples:
  nextlisp doc            Document everything
  nextlisp doc car cdr    Document CAR and CDR
  nextlisp doc cond       Document the COND special form`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			err := renderDocs(out, args)
			if flushErr := out.Flush(); err == nil {
				err = flushErr
			}
			return err
		},
	}
}

type docEntry struct {
	signature string
	kind      string
	doc       string
}

// docEntries returns documentation of the special forms and default
// builtins keyed by upper-case name.
func docEntries() map[string]docEntry {
	entries := make(map[string]docEntry)
	for name, doc := range lisp.SpecialFormDocs {
		sig, body, _ := strings.Cut(doc, "\n")
		entries[name] = docEntry{sig, "special form", body}
	}
	for _, b := range lisp.DefaultBuiltins() {
		name := strings.ToUpper(b.Name())
		sig := lisp.DottedList([]*lisp.LVal{lisp.Symbol(name)}, b.Formals()).String()
		doc := ""
		if d, ok := b.(interface{ Docstring() string }); ok {
			doc = d.Docstring()
		}
		entries[name] = docEntry{sig, "builtin", doc}
	}
	return entries
}

func renderDocs(w io.Writer, names []string) error {
	entries := docEntries()
	if len(names) == 0 {
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	for i, name := range names {
		entry, ok := entries[strings.ToUpper(name)]
		if !ok {
			return fmt.Errorf("no documentation for %s", name)
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", entry.kind, entry.signature); err != nil {
			return err
		}
		if doc := cleanDocstring(entry.doc); doc != "" {
			if _, err := fmt.Fprintln(w, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanDocstring joins the lines of each paragraph of doc and wraps the
// result, indented by two spaces.
func cleanDocstring(doc string) string {
	var paras []string
	for _, para := range strings.Split(strings.TrimSpace(doc), "\n\n") {
		if words := strings.Fields(para); len(words) > 0 {
			paras = append(paras, strings.Join(words, " "))
		}
	}
	if len(paras) == 0 {
		return ""
	}
	text := indent.String(wordwrap.String(strings.Join(paras, "\n\n"), docWidth), 2)
	text = strings.ReplaceAll(text, "\n  \n", "\n\n")
	return strings.TrimSuffix(text, "\n")
}
