// Copyright © 2026 The ELPS authors

package lisp

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Eval does not modify v.
func (env *LEnv) Eval(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		res := env.Get(v)
		if res.Type == LError {
			errorAssociate(res, v)
		}
		return res
	case LPair:
		res := env.evalPair(v)
		if res.Type == LError {
			errorAssociate(res, v)
		}
		return res
	default:
		return v
	}
}

func (env *LEnv) evalPair(v *LVal) *LVal {
	head, rest := v.Cells[0], v.Cells[1]
	switch {
	case head.IsSymbol(QuoteSymbol):
		if rest.Type != LPair {
			return env.ErrorConditionf(CondInvalidForm, "%s requires an argument", QuoteSymbol)
		}
		return rest.Cells[0]
	case head.IsSymbol(CondSymbol):
		return env.evcon(rest)
	}
	args := env.Evlis(rest)
	if args.Type == LError {
		return args
	}
	return env.Apply(head, args)
}

// evcon evaluates the clauses of a COND expression.
func (env *LEnv) evcon(clauses *LVal) *LVal {
	for ; clauses.Type == LPair; clauses = clauses.Cells[1] {
		clause := clauses.Cells[0]
		if clause.Type != LPair {
			return env.ErrorConditionf(CondInvalidForm, "%s clause is not a list: %v", CondSymbol, clause)
		}
		test := env.Eval(clause.Cells[0])
		if test.Type == LError {
			return test
		}
		if test.IsNil() {
			continue
		}
		body := clause.Cells[1]
		if body.Type != LPair {
			return test
		}
		return env.Eval(body.Cells[0])
	}
	if !clauses.IsNil() {
		return env.ErrorConditionf(CondInvalidForm, "improper %s clause list", CondSymbol)
	}
	return Nil()
}

// Evlis evaluates each element of list from left to right and returns a new
// proper list of the results.  The first error encountered is returned
// instead.
func (env *LEnv) Evlis(list *LVal) *LVal {
	var cells []*LVal
	for ; list.Type == LPair; list = list.Cells[1] {
		v := env.Eval(list.Cells[0])
		if v.Type == LError {
			return v
		}
		cells = append(cells, v)
	}
	if !list.IsNil() {
		return env.ErrorConditionf(CondInvalidForm, "improper argument list")
	}
	return List(cells...)
}

// Apply invokes fn with the evaluated argument list args.  A symbol fn is
// resolved in env first.  A LAMBDA expression binds its parameters on top of
// env, so the body sees the bindings of the caller.  A LABEL expression
// binds its name to its LAMBDA expression before applying it.
func (env *LEnv) Apply(fn, args *LVal) *LVal {
	err := env.Runtime.Stack.Push(fn.Source, funName(fn))
	if err != nil {
		return env.ErrorCondition(CondStackExhausted, err)
	}
	defer env.Runtime.Stack.Pop()
	defer env.trace(fn)()

	switch fn.Type {
	case LSymbol:
		f := env.Get(fn)
		if f.Type == LError {
			return f
		}
		if f.IsSymbol(fn.Str) {
			return env.ErrorConditionf(CondNotApplicable, "not applicable: %v", fn)
		}
		return env.Apply(f, args)
	case LFun:
		return env.funCall(fn, args)
	case LPair:
		head := fn.Cells[0]
		switch {
		case head.IsSymbol(LambdaSymbol):
			return env.applyLambda(fn, args)
		case head.IsSymbol(LabelSymbol):
			return env.applyLabel(fn, args)
		}
		f := env.Eval(fn)
		if f.Type == LError {
			return f
		}
		return env.Apply(f, args)
	default:
		return env.ErrorConditionf(CondNotApplicable, "not applicable: %v", fn)
	}
}

func (env *LEnv) applyLambda(fn, args *LVal) *LVal {
	form, ok := fn.Slice()
	if !ok || len(form) != 3 {
		return env.ErrorConditionf(CondInvalidForm, "malformed %s expression: %v", LambdaSymbol, fn)
	}
	params, body := form[1], form[2]
	fenv, lerr := env.BindAll(params, args)
	if lerr.Type == LError {
		return lerr
	}
	return fenv.Eval(body)
}

func (env *LEnv) applyLabel(fn, args *LVal) *LVal {
	form, ok := fn.Slice()
	if !ok || len(form) != 3 || form[1].Type != LSymbol {
		return env.ErrorConditionf(CondInvalidForm, "malformed %s expression: %v", LabelSymbol, fn)
	}
	name, lambda := form[1], form[2]
	return env.Bind(name, lambda).Apply(lambda, args)
}

// funCall invokes the native function fn after checking that args satisfies
// the required formals of fn.
func (env *LEnv) funCall(fn, args *LVal) *LVal {
	fd := fn.FunData()
	if fd == nil || fd.Builtin == nil {
		return env.ErrorConditionf(CondNotApplicable, "not applicable: %v", fn)
	}
	nreq := requiredArgs(fd.Formals)
	if args.Len() < nreq {
		return env.ErrorConditionf(CondArityMismatch, "%s: expected at least %d arguments, got %d", fn.Str, nreq, args.Len())
	}
	return fd.Builtin(env, args)
}

func (env *LEnv) trace(fn *LVal) func() {
	if env.Runtime.Profiler == nil || !env.Runtime.Profiler.IsEnabled() {
		return func() {}
	}
	return env.Runtime.Profiler.Start(fn)
}

// requiredArgs returns the number of formals preceding VarArgSymbol.
func requiredArgs(formals *LVal) int {
	n := 0
	for ; formals.Type == LPair; formals = formals.Cells[1] {
		if formals.Cells[0].IsSymbol(VarArgSymbol) {
			break
		}
		n++
	}
	return n
}

// funName returns a name for the frame of a call to fn.
func funName(fn *LVal) string {
	switch fn.Type {
	case LSymbol, LFun:
		return fn.Str
	case LPair:
		head := fn.Cells[0]
		if head.IsSymbol(LabelSymbol) {
			if name := fn.Cdr().Car(); name.Type == LSymbol {
				return name.Str
			}
		}
		if head.Type == LSymbol {
			return head.Str
		}
	}
	return fn.Type.String()
}
