// Copyright © 2026 The ELPS authors

package lisp

// True interprets v as a boolean and returns the result.  Every value other
// than Nil() is true.
func True(v *LVal) bool {
	return !v.IsNil()
}

// Not interprets v as a boolean value and returns its negation.
func Not(v *LVal) bool {
	return !True(v)
}

// GoValue converts v to its natural representation in Go.  Lists are turned
// into slices, symbols and strings into strings, and Nil() into nil.  Errors
// are converted with GoError.  Improper lists and functions are returned as
// is.
func GoValue(v *LVal) interface{} {
	switch v.Type {
	case LNil:
		return nil
	case LError:
		return GoError(v)
	case LSymbol, LString:
		return v.Str
	case LInt:
		return v.Int
	case LPair:
		cells, ok := v.Slice()
		if !ok {
			return v
		}
		s := make([]interface{}, len(cells))
		for i := range cells {
			s[i] = GoValue(cells[i])
		}
		return s
	}
	return v
}

// Value conveniently converts v to an LVal.  Value is the inverse of the
// GoValue function for bool, int, string and slice values.  Other types
// produce a wrong-type error.
func Value(v interface{}) *LVal {
	switch v := v.(type) {
	case nil:
		return Nil()
	case *LVal:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(v)
	case string:
		return String(v)
	case []interface{}:
		cells := make([]*LVal, len(v))
		for i := range v {
			cells[i] = Value(v[i])
			if cells[i].Type == LError {
				return cells[i]
			}
		}
		return List(cells...)
	default:
		return ErrorConditionf(CondWrongType, "cannot convert %T to a lisp value", v)
	}
}
