package lisp

// Callable is the single operation every invocable Value exposes: apply
// args, in the lexical context of env, either evaluating them first or
// passing them through verbatim depending on shouldEvalArgs.
type Callable interface {
	Call(args *List, env *Env, shouldEvalArgs bool) (Value, error)
}

// asCallable reports whether v can be invoked, returning the Callable view
// of it. Builtin and Lambda are the only callable variants; unifying them
// behind one interface keeps Eval's dispatch flat instead of special-casing
// by name.
func asCallable(v Value) (Callable, bool) {
	switch v.kind {
	case KindBuiltin:
		return v.fn, true
	case KindLambda:
		return v.lam, true
	default:
		return nil, false
	}
}

// BuiltinFunc is the Go implementation behind a primitive or special form.
// It receives the tail of the call: a fresh list of evaluated values when
// Call evaluated the arguments first, otherwise the raw, unevaluated tail.
type BuiltinFunc func(args *List, env *Env) (Value, error)

// Builtin is a registered primitive callable: a name, its do_eval
// discipline, and an implementation.
type Builtin struct {
	name   string
	doEval bool
	fn     BuiltinFunc
}

// NewBuiltin constructs a Builtin. doEval controls whether arguments are
// evaluated before fn runs when the evaluator itself dispatches the call;
// special forms (quote, if, let, set, and, or, begin, lambda) pass
// doEval=false.
func NewBuiltin(name string, doEval bool, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, doEval: doEval, fn: fn}
}

// Name returns the builtin's registered name, used in Display and error
// messages.
func (b *Builtin) Name() string { return b.name }

// Call evaluates args first only when both the caller asked for it
// (shouldEvalArgs) and this builtin wants it (doEval); internal callers
// such as map/fold pass shouldEvalArgs=false to suppress re-evaluation
// regardless of doEval.
func (b *Builtin) Call(args *List, env *Env, shouldEvalArgs bool) (Value, error) {
	if shouldEvalArgs && b.doEval {
		evaluated, err := evalArgs(args, env)
		if err != nil {
			return Value{}, err
		}
		return b.fn(evaluated, env)
	}
	return b.fn(args, env)
}

// Lambda is a user-defined closure: formal parameters, a body of
// expressions, and the environment captured when lambda was evaluated —
// not the call site. That capture is what makes closures work.
type Lambda struct {
	params []string
	body   *List
	env    *Env
}

// NewLambda constructs a Lambda closing over env.
func NewLambda(params []string, body *List, env *Env) *Lambda {
	return &Lambda{params: params, body: body, env: env}
}

// Call evaluates args (unless shouldEvalArgs is false), binds them
// positionally to the formal parameters in a fresh frame parented by the
// closure's captured environment, then evaluates the body in order,
// returning the last result (or Nil for an empty body).
func (l *Lambda) Call(args *List, callerEnv *Env, shouldEvalArgs bool) (Value, error) {
	var argVals *List
	if shouldEvalArgs {
		v, err := evalArgs(args, callerEnv)
		if err != nil {
			return Value{}, err
		}
		argVals = v
	} else {
		argVals = args
	}

	if argVals.Len() < len(l.params) {
		return Value{}, &InvalidArgCountError{Expected: len(l.params), Got: argVals.Len()}
	}

	local := l.env.NewChild()
	cur := argVals
	for _, name := range l.params {
		local.Decl(name, cur.Car())
		cur = cur.Cdr()
	}
	return evalBody(l.body, local)
}
