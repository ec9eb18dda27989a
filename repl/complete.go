// Copyright © 2026 The ELPS authors

package repl

import (
	"sort"
	"strings"
	"unicode"

	"github.com/haerfest/nextlisp/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the
// symbols bound in the global environment and the special form names.
type symbolCompleter struct {
	env *lisp.LEnv
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == '\'' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Symbols are case-insensitive.  Completions follow the case the user
	// is typing in.
	lower := !strings.ContainsFunc(prefix, unicode.IsUpper)
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		suffix := sym[len(prefix):]
		if lower {
			suffix = strings.ToLower(suffix)
		}
		result = append(result, []rune(suffix))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	for _, name := range c.env.Symbols() {
		add(name)
	}
	for _, name := range lisp.SpecialForms {
		add(name)
	}
	sort.Strings(result)
	return result
}
