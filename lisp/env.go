// Copyright © 2026 The ELPS authors

package lisp

import (
	"io"
	"strings"
)

// LEnv is a lisp environment.  Each LEnv holds at most one binding and a
// pointer to the environment it extends, so an environment is a newest-first
// association list of bindings.  An LEnv is never modified after creation.
// The root of every environment tree holds no binding.
type LEnv struct {
	Parent  *LEnv
	Runtime *Runtime
	sym     string
	val     *LVal
}

// NewEnvRuntime initializes a new root LEnv.  When rt is nil
// StandardRuntime() is called to create a new Runtime for the returned LEnv.
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{
		Runtime: rt,
	}
}

// NewUserEnv creates the global environment.  The returned environment binds
// T, NIL, DefaultBuiltins() and any builtins added with WithBuiltins.
func NewUserEnv(config ...Config) (*LEnv, error) {
	rt := StandardRuntime()
	for _, fn := range config {
		err := fn(rt)
		if err != nil {
			return nil, err
		}
	}
	env := NewEnvRuntime(rt)
	env = env.Bind(Symbol(TrueSymbol), Bool(true))
	env = env.Bind(Symbol(NilSymbol), Nil())
	env = env.AddBuiltins(DefaultBuiltins()...)
	env = env.AddBuiltins(rt.Builtins...)
	return env, nil
}

// AddBuiltins returns env extended with a binding for each of funs.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) *LEnv {
	for _, f := range funs {
		v := Fun(strings.ToUpper(f.Name()), f.Formals(), f.Eval)
		if d, ok := f.(docBuiltin); ok {
			v.FunData().Doc = d.Docstring()
		}
		env = env.Bind(Symbol(f.Name()), v)
	}
	return env
}

// Get returns the value bound to the symbol k in the newest binding which
// matches it.  If no binding exists an unbound-symbol error is returned.
func (env *LEnv) Get(k *LVal) *LVal {
	for e := env; e != nil; e = e.Parent {
		if e.val != nil && e.sym == k.Str {
			return e.val
		}
	}
	return env.ErrorConditionf(CondUnboundSymbol, "unbound symbol: %v", k.Str)
}

// Bind returns a new environment extending env with a binding of the symbol
// sym to v.  The binding shadows any binding of sym in env.  Env itself is
// unchanged.
func (env *LEnv) Bind(sym, v *LVal) *LEnv {
	return &LEnv{
		Parent:  env,
		Runtime: env.Runtime,
		sym:     sym.Str,
		val:     v,
	}
}

// BindAll binds each symbol in the list params to the corresponding element
// of the list args, in order.  BindAll returns an arity-mismatch error when
// the lists have different lengths and an invalid-form error when either is
// not a proper list or a parameter is not a symbol.
func (env *LEnv) BindAll(params, args *LVal) (*LEnv, *LVal) {
	nparams, nargs := params.Len(), args.Len()
	for {
		switch {
		case params.IsNil() && args.IsNil():
			return env, Nil()
		case params.Type == LPair && args.Type == LPair:
			p := params.Cells[0]
			if p.Type != LSymbol {
				return nil, env.ErrorConditionf(CondInvalidForm, "parameter is not a symbol: %v", p)
			}
			env = env.Bind(p, args.Cells[0])
			params, args = params.Cells[1], args.Cells[1]
		case params.Type != LPair && !params.IsNil():
			return nil, env.ErrorConditionf(CondInvalidForm, "improper parameter list")
		case args.Type != LPair && !args.IsNil():
			return nil, env.ErrorConditionf(CondInvalidForm, "improper argument list")
		default:
			return nil, env.ErrorConditionf(CondArityMismatch, "expected %d arguments, got %d", nparams, nargs)
		}
	}
}

// Root returns the root of the environment tree containing env.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// Symbols returns the names of all bound symbols, newest first.  Shadowed
// bindings are reported once.
func (env *LEnv) Symbols() []string {
	var syms []string
	seen := make(map[string]bool)
	for e := env; e != nil; e = e.Parent {
		if e.val == nil || seen[e.sym] {
			continue
		}
		seen[e.sym] = true
		syms = append(syms, e.sym)
	}
	return syms
}

// LoadString evaluates the expressions in exprs.  See Load.
func (env *LEnv) LoadString(name, exprs string) *LVal {
	return env.Load(name, strings.NewReader(exprs))
}

// Load reads LVals from r and evaluates them in order.  The value returned by
// the last evaluated LVal will be returned.  Evaluation stops at the first
// error.  If env.Runtime.Reader has not been set then an error will be
// returned by Load.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return env.ErrorConditionf(CondParseError, "no reader for environment runtime")
	}

	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		if lerr, ok := err.(*ErrorVal); ok {
			return (*LVal)(lerr)
		}
		return env.ErrorCondition(CondParseError, err)
	}

	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}
