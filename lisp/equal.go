// Copyright © 2026 The ELPS authors

package lisp

// Eq reports whether a and b are the same atom.  Empty values are Eq to each
// other, symbols are Eq when their names match and numbers are Eq when their
// values match.  Every other pair of values, including two pairs with the
// same structure, is not Eq.
func Eq(a, b *LVal) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() && b.IsNil()
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LSymbol:
		return a.Str == b.Str
	case LInt:
		return a.Int == b.Int
	default:
		return false
	}
}

// Equal reports whether a and b have the same structure.  Pairs are compared
// element by element.  Two lists which run out at the same time are Equal.
// Remaining atoms are compared with Eq, except that strings compare by text.
func Equal(a, b *LVal) bool {
	for a.Type == LPair && b.Type == LPair {
		if !Equal(a.Cells[0], b.Cells[0]) {
			return false
		}
		a, b = a.Cells[1], b.Cells[1]
	}
	if a.Type == LString && b.Type == LString {
		return a.Str == b.Str
	}
	return Eq(a, b)
}
