package lisp

// Eval interprets v against env. Atoms other than Symbol self-evaluate;
// Symbol resolves through the environment chain; List(Empty) evaluates to
// Nil and List(Node) evaluates its head, checks that it is callable, and
// dispatches to it per the callable's do_eval discipline.
func Eval(v Value, env *Env) (Value, error) {
	switch v.kind {
	case KindSymbol:
		val, ok := env.Get(v.text)
		if !ok {
			return Value{}, &UnknownSymbolError{Name: v.text}
		}
		return val, nil
	case KindList:
		return callList(v.list, env)
	default:
		return v, nil
	}
}

// callList evaluates the head of l to obtain a callable and invokes it on
// the tail, letting the callable decide whether to evaluate its arguments.
func callList(l *List, env *Env) (Value, error) {
	if l == nil {
		return Nil(), nil
	}
	head, err := Eval(l.car, env)
	if err != nil {
		return Value{}, err
	}
	callable, ok := asCallable(head)
	if !ok {
		return Value{}, &InvalidCallError{Type: head.TypeName()}
	}
	if err := env.root().enterCall(); err != nil {
		return Value{}, err
	}
	defer env.root().exitCall()
	return callable.Call(l.cdr, env, true)
}

// evalArgs evaluates each element of args left to right against env,
// collecting the results into a new list in order. The first error
// short-circuits the walk.
func evalArgs(args *List, env *Env) (*List, error) {
	out := make([]Value, 0, args.Len())
	for n := args; n != nil; n = n.cdr {
		v, err := Eval(n.car, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return FromSlice(out), nil
}

// evalBody evaluates a sequence of expressions in order against env,
// returning the value of the last one, or Nil if the sequence is empty.
func evalBody(body *List, env *Env) (Value, error) {
	result := Nil()
	for n := body; n != nil; n = n.cdr {
		v, err := Eval(n.car, env)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}
