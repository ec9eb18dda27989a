// Copyright © 2026 The ELPS authors

package lisp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haerfest/nextlisp/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LValType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LNil is the type of the empty value returned by Nil().  It terminates
	// proper lists and is the only false value.
	LNil
	// LPair values store their car in LVal.Cells[0] and their cdr in
	// LVal.Cells[1].
	LPair
	// LSymbol values store the upper-cased symbol name in the LVal.Str field.
	LSymbol
	// LString values store the literal interior of a string in LVal.Str.
	// Escape sequences are kept as written.
	LString
	// LInt values store an int in the LVal.Int field.
	LInt
	// LFun values are native procedures.  They use the following fields in
	// an LVal:
	// 		LVal.Str      The name the procedure was installed under
	// 		LVal.Native   An LFunData object
	LFun
	// LError values store their condition name in LVal.Str and their
	// message in LVal.Cells.  A copy of the call stack at the time of their
	// creation is kept in LVal.Native.
	LError
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNil:     "nil",
	LPair:    "pair",
	LSymbol:  "symbol",
	LString:  "string",
	LInt:     "int",
	LFun:     "function",
	LError:   "error",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// Well-known symbol names.  Symbols are compared by name so these never need
// to be interned.
const (
	QuoteSymbol  = "QUOTE"
	CondSymbol   = "COND"
	LambdaSymbol = "LAMBDA"
	LabelSymbol  = "LABEL"
	TrueSymbol   = "T"
	NilSymbol    = "NIL"
	// VarArgSymbol separates required formals from a rest parameter in the
	// formals of a builtin.
	VarArgSymbol = "&REST"
)

// SpecialForms lists the head symbols which change evaluation rules.
var SpecialForms = []string{QuoteSymbol, CondSymbol, LambdaSymbol, LabelSymbol}

type LFunData struct {
	Builtin LBuiltin
	Formals *LVal
	Doc     string
}

// LVal is a lisp value
type LVal struct {
	// Native is generic storage for data which cannot be represented as an
	// LVal (and thus can't be stored in Cells).
	Native interface{}

	// Source is the value's originating location in source code.  It is nil
	// for values constructed at runtime.  Programs should not modify the
	// contents of Source as the reference may be shared by multiple LVals.
	Source *token.Location

	// Str used by LSymbol, LString, LFun and LError values
	Str string

	// Cells used by pairs and errors as storage space for lisp objects.
	Cells []*LVal

	// Type is the native type for a value in lisp.
	Type LType

	Int int
}

// Singleton LVals for Nil and true.
//
// INVARIANT: Code that receives Nil() or Bool(true) MUST NOT mutate any field
// on the returned *LVal.
var (
	singletonNil  = &LVal{Type: LNil}
	singletonTrue = &LVal{Type: LSymbol, Str: TrueSymbol}
)

// Nil returns the empty value: the empty list, an absent value and false.
//
// The returned value is a shared singleton.  Callers MUST NOT mutate it.
func Nil() *LVal {
	return singletonNil
}

// Bool returns T when b is true and Nil() otherwise.
//
// The returned value is a shared singleton.  Callers MUST NOT mutate it.
func Bool(b bool) *LVal {
	if b {
		return singletonTrue
	}
	return singletonNil
}

// Int returns an LVal representing the number x.
func Int(x int) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Type: LString,
		Str:  str,
	}
}

// Symbol returns an LVal representing the symbol s.  The name is normalized
// to upper case.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  strings.ToUpper(s),
	}
}

// Cons returns a new pair.
func Cons(car, cdr *LVal) *LVal {
	return &LVal{
		Type:  LPair,
		Cells: []*LVal{car, cdr},
	}
}

// List returns a proper list containing the given values.
func List(vals ...*LVal) *LVal {
	return DottedList(vals, Nil())
}

// DottedList returns a list containing vals whose final cdr is tail.  When
// tail is Nil() the result is a proper list.  When vals is empty tail itself
// is returned.
func DottedList(vals []*LVal, tail *LVal) *LVal {
	lis := tail
	for i := len(vals) - 1; i >= 0; i-- {
		lis = Cons(vals[i], lis)
	}
	return lis
}

// Quote returns the list (QUOTE v).
func Quote(v *LVal) *LVal {
	return List(Symbol(QuoteSymbol), v)
}

// Fun returns an LVal representing a native procedure named name.
func Fun(name string, formals *LVal, fn LBuiltin) *LVal {
	return &LVal{
		Type: LFun,
		Str:  name,
		Native: &LFunData{
			Builtin: fn,
			Formals: formals,
		},
	}
}

// Formals returns a list of symbols describing the arguments of a builtin.
func Formals(argSymbols ...string) *LVal {
	cells := make([]*LVal, len(argSymbols))
	for i := range argSymbols {
		cells[i] = Symbol(argSymbols[i])
	}
	return List(cells...)
}

// ErrorCondition returns an LError representing err and having the given
// condition type.
//
// The Env.ErrorCondition() method is typically preferred during evaluation
// because it records the call stack.
func ErrorCondition(condition string, err error) *LVal {
	return &LVal{
		Type:  LError,
		Str:   condition,
		Cells: []*LVal{String(err.Error())},
	}
}

// ErrorConditionf returns an LError with the given condition type and a
// message rendered using fmt.Sprintf.
func ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return &LVal{
		Type:  LError,
		Str:   condition,
		Cells: []*LVal{String(fmt.Sprintf(format, v...))},
	}
}

// Car returns the first element of a pair.  Car returns Nil() for any value
// which is not a pair.
func (v *LVal) Car() *LVal {
	if v.Type != LPair {
		return Nil()
	}
	return v.Cells[0]
}

// Cdr returns the rest of a pair.  Cdr returns Nil() for any value which is
// not a pair.
func (v *LVal) Cdr() *LVal {
	if v.Type != LPair {
		return Nil()
	}
	return v.Cells[1]
}

// IsNil returns true if v is the empty value.
func (v *LVal) IsNil() bool {
	return v.Type == LNil
}

// IsSymbol returns true if v is a symbol named name.
func (v *LVal) IsSymbol(name string) bool {
	return v.Type == LSymbol && v.Str == name
}

// IsAtom returns true unless v is a pair.
func (v *LVal) IsAtom() bool {
	return v.Type != LPair
}

// FunData returns the function data of an LFun value, or nil.
func (v *LVal) FunData() *LFunData {
	if v.Type != LFun {
		return nil
	}
	fd, _ := v.Native.(*LFunData)
	return fd
}

// Builtin returns the Go implementation of an LFun value.
func (v *LVal) Builtin() LBuiltin {
	fd := v.FunData()
	if fd == nil {
		return nil
	}
	return fd.Builtin
}

// Docstring returns the documentation of an LFun value.
func (v *LVal) Docstring() string {
	fd := v.FunData()
	if fd == nil {
		return ""
	}
	return fd.Doc
}

// Slice returns the elements of a proper list.  The second return value is
// false if v is not a proper list.
func (v *LVal) Slice() ([]*LVal, bool) {
	var cells []*LVal
	for ; v.Type == LPair; v = v.Cells[1] {
		cells = append(cells, v.Cells[0])
	}
	return cells, v.IsNil()
}

// Len returns the number of pairs in the chain starting at v.
func (v *LVal) Len() int {
	n := 0
	for ; v.Type == LPair; v = v.Cells[1] {
		n++
	}
	return n
}

func (v *LVal) String() string {
	var buf strings.Builder
	v.write(&buf)
	return buf.String()
}

func (v *LVal) write(buf *strings.Builder) {
	switch v.Type {
	case LNil:
		buf.WriteString(NilSymbol)
	case LSymbol:
		buf.WriteString(v.Str)
	case LString:
		buf.WriteByte('"')
		buf.WriteString(v.Str)
		buf.WriteByte('"')
	case LInt:
		buf.WriteString(strconv.Itoa(v.Int))
	case LFun:
		buf.WriteString("<builtin ")
		buf.WriteString(v.Str)
		buf.WriteString(">")
	case LError:
		buf.WriteString((*ErrorVal)(v).Error())
	case LPair:
		buf.WriteByte('(')
		v.Cells[0].write(buf)
		tail := v.Cells[1]
		for ; tail.Type == LPair; tail = tail.Cells[1] {
			buf.WriteByte(' ')
			tail.Cells[0].write(buf)
		}
		if !tail.IsNil() {
			buf.WriteString(" . ")
			tail.write(buf)
		}
		buf.WriteByte(')')
	default:
		buf.WriteString("<")
		buf.WriteString(v.Type.String())
		buf.WriteString(">")
	}
}
