// Copyright © 2026 The ELPS authors

package lisp

import "fmt"

// LBuiltin is a function that performs executes a lisp function.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Formals() *LVal
	Eval(env *LEnv, args *LVal) *LVal
}

// docBuiltin is implemented by builtins which carry documentation.
type docBuiltin interface {
	Docstring() string
}

type langBuiltin struct {
	name    string
	formals *LVal
	fun     LBuiltin
	docs    string
}

// NewBuiltin returns an LBuiltinDef which can be installed with
// WithBuiltins.
func NewBuiltin(name string, formals *LVal, fun LBuiltin, docs string) LBuiltinDef {
	return &langBuiltin{name, formals, fun, docs}
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() *LVal {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

func (fun *langBuiltin) Docstring() string {
	return fun.docs
}

var langBuiltins = []*langBuiltin{
	{"+", Formals(VarArgSymbol, "x"), builtinAdd, `
		Returns the sum of its arguments.  With no arguments + returns 0.`},
	{"-", Formals(VarArgSymbol, "x"), builtinSub, `
		Subtracts each argument after the first from the first argument.  With
		one argument - returns its negation.  With no arguments - returns 0.`},
	{"*", Formals(VarArgSymbol, "x"), builtinMul, `
		Returns the product of its arguments.  With no arguments * returns 1.`},
	{"car", Formals("lis"), builtinCAR, `
		Returns the first element of lis.  The car of NIL is NIL.`},
	{"cdr", Formals("lis"), builtinCDR, `
		Returns the pair following the first element of lis.  The cdr of NIL
		is NIL.`},
	{"cons", Formals("head", "tail"), builtinCons, `
		Returns a new pair with head as its car and tail as its cdr.`},
	{"atom", Formals("value"), builtinAtom, `
		Returns T unless value is a pair.`},
	{"eq", Formals("a", "b"), builtinEq, `
		Returns T if a and b are the same atom: both NIL, symbols with the
		same name or equal numbers.  Pairs are never eq.`},
	{"equal", Formals("a", "b"), builtinEqual, `
		Returns T if a and b have the same structure.  Strings compare by
		their text.`},
	{"null", Formals("value"), builtinNull, `
		Returns T if value is NIL.`},
	{"list", Formals(VarArgSymbol, "values"), builtinList, `
		Returns a proper list of its arguments.`},
	{"print", Formals("value"), builtinPrint, `
		Writes the printed representation of value followed by a newline to
		the standard output of the runtime.  Returns value.`},
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to
// environments by NewUserEnv.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range ops {
		ops[i] = langBuiltins[i]
	}
	return ops
}

// SpecialFormDocs documents the special forms, which are not values and so
// cannot carry docstrings themselves.
var SpecialFormDocs = map[string]string{
	QuoteSymbol: `(QUOTE expr)
		Returns expr without evaluating it.  'expr is shorthand for
		(QUOTE expr).`,
	CondSymbol: `(COND (test expr) ...)
		Evaluates each test in order.  The value of the expr following the
		first test which is not NIL is returned.  A clause without an expr
		returns the value of its test.  When no test succeeds COND returns
		NIL.`,
	LambdaSymbol: `(LAMBDA (param ...) body)
		A function expression.  Applying it binds each param to the
		corresponding argument on top of the caller's environment and
		evaluates body.`,
	LabelSymbol: `(LABEL name lambda)
		A named function expression.  Applying it binds name to lambda so the
		body of lambda may call itself, then applies lambda.`,
}

func builtinAdd(env *LEnv, args *LVal) *LVal {
	sum := 0
	for ; args.Type == LPair; args = args.Cells[1] {
		x := args.Cells[0]
		if x.Type != LInt {
			return notANumber(env, "+", x)
		}
		sum += x.Int
	}
	return Int(sum)
}

func builtinMul(env *LEnv, args *LVal) *LVal {
	prod := 1
	for ; args.Type == LPair; args = args.Cells[1] {
		x := args.Cells[0]
		if x.Type != LInt {
			return notANumber(env, "*", x)
		}
		prod *= x.Int
	}
	return Int(prod)
}

func builtinSub(env *LEnv, args *LVal) *LVal {
	if args.IsNil() {
		return Int(0)
	}
	first := args.Cells[0]
	if first.Type != LInt {
		return notANumber(env, "-", first)
	}
	rest := args.Cells[1]
	if rest.IsNil() {
		return Int(-first.Int)
	}
	diff := first.Int
	for ; rest.Type == LPair; rest = rest.Cells[1] {
		x := rest.Cells[0]
		if x.Type != LInt {
			return notANumber(env, "-", x)
		}
		diff -= x.Int
	}
	return Int(diff)
}

func notANumber(env *LEnv, op string, x *LVal) *LVal {
	return env.ErrorConditionf(CondNotANumber, "%s: argument is not a number: %v", op, x)
}

func builtinCAR(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	switch lis.Type {
	case LNil:
		return Nil()
	case LPair:
		return lis.Cells[0]
	default:
		return env.ErrorConditionf(CondWrongType, "CAR: argument is not a list: %v", lis.Type)
	}
}

func builtinCDR(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	switch lis.Type {
	case LNil:
		return Nil()
	case LPair:
		return lis.Cells[1]
	default:
		return env.ErrorConditionf(CondWrongType, "CDR: argument is not a list: %v", lis.Type)
	}
}

func builtinCons(env *LEnv, args *LVal) *LVal {
	head, tail := args.Cells[0], args.Cells[1].Cells[0]
	return Cons(head, tail)
}

func builtinAtom(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsAtom())
}

func builtinEq(env *LEnv, args *LVal) *LVal {
	a, b := args.Cells[0], args.Cells[1].Cells[0]
	return Bool(Eq(a, b))
}

func builtinEqual(env *LEnv, args *LVal) *LVal {
	a, b := args.Cells[0], args.Cells[1].Cells[0]
	return Bool(Equal(a, b))
}

func builtinNull(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsNil())
}

func builtinList(env *LEnv, args *LVal) *LVal {
	return args
}

func builtinPrint(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	_, err := fmt.Fprintln(env.Runtime.Stdout, v)
	if err != nil {
		return env.ErrorCondition(CondIOError, err)
	}
	return v
}
