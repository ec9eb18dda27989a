// Copyright © 2026 The ELPS authors

package rdparser

import (
	"strconv"

	"github.com/haerfest/nextlisp/lisp"
)

// Atom classifies the text of an ATOM token.  An optionally signed decimal
// integer is a number and text delimited by double quotes is a string with
// the quotes removed.  The symbol NIL reads as the empty value, so printed
// values read back as themselves.  Anything else is a symbol.  Atom returns a
// parse-error for integer literals that overflow int.
func Atom(text string) *lisp.LVal {
	switch {
	case isInt(text):
		x, err := strconv.Atoi(text)
		if err != nil {
			return lisp.ErrorConditionf(lisp.CondParseError, "integer literal overflows int: %v", text)
		}
		return lisp.Int(x)
	case len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"':
		return lisp.String(text[1 : len(text)-1])
	default:
		sym := lisp.Symbol(text)
		if sym.Str == lisp.NilSymbol {
			return lisp.Nil()
		}
		return sym
	}
}

func isInt(text string) bool {
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
