package lisp

import "fmt"

// LoadStdlib is the one-call bootstrap collaborator: it declares the
// constant bindings and registers every builtin from the language's
// catalogue into env, which is expected to be a fresh root frame.
func LoadStdlib(env *Env) {
	env.Decl("nil", Nil())
	env.Decl("#t", NewBool(true))
	env.Decl("true", NewBool(true))
	env.Decl("#f", NewBool(false))
	env.Decl("false", NewBool(false))

	register(env, "quote", false, quoteBuiltin)
	register(env, "let", false, letBuiltin)
	register(env, "set", false, setBuiltin)
	register(env, "if", false, ifBuiltin)
	register(env, "and", false, andBuiltin)
	register(env, "or", false, orBuiltin)
	register(env, "begin", false, beginBuiltin)
	register(env, "lambda", false, lambdaBuiltin)
	register(env, "funcall", true, funcallBuiltin)
	register(env, "apply", true, applyBuiltin)
	register(env, "eval", true, evalBuiltin)
	register(env, "map", true, mapBuiltin)
	register(env, "fold", true, foldBuiltin)
	register(env, "car", true, carBuiltin)
	register(env, "cdr", true, cdrBuiltin)
	register(env, "cons", true, consBuiltin)
	register(env, "list", true, listBuiltin)
	register(env, "not", true, notBuiltin)
	register(env, "+", true, addBuiltin)
	register(env, "*", true, mulBuiltin)
	register(env, "-", true, subBuiltin)
	register(env, "/", true, divBuiltin)
	register(env, "<", true, ltBuiltin)
	register(env, ">", true, gtBuiltin)
	register(env, "<=", true, leBuiltin)
	register(env, ">=", true, geBuiltin)
	register(env, "atom", true, atomBuiltin)
	register(env, "typeof", true, typeofBuiltin)
	register(env, "display", true, displayBuiltin)
	register(env, "debug", true, debugBuiltin)

	// equal and = name the very same builtin object: they are one
	// function with two spellings, not two functions that merely agree.
	eq := NewBuiltin("equal", true, equalBuiltin)
	eqVal := NewBuiltinValue(eq)
	env.Decl("equal", eqVal)
	env.Decl("=", eqVal)
}

func register(env *Env, name string, doEval bool, fn BuiltinFunc) {
	env.Decl(name, NewBuiltinValue(NewBuiltin(name, doEval, fn)))
}

func quoteBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	return args.Car(), nil
}

func assignBuiltin(args *List, env *Env, assign func(*Env, string, Value)) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 0}
	}
	name := args.Car()
	if name.Kind() != KindSymbol {
		return Value{}, &InvalidArgTypeError{Expected: "Symbol", Actual: name.TypeName()}
	}
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 1}
	}
	val, err := Eval(rest.Car(), env)
	if err != nil {
		return Value{}, err
	}
	assign(env, name.Text(), val)
	return val, nil
}

func letBuiltin(args *List, env *Env) (Value, error) {
	return assignBuiltin(args, env, (*Env).Decl)
}

func setBuiltin(args *List, env *Env) (Value, error) {
	return assignBuiltin(args, env, (*Env).Set)
}

func ifBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 0}
	}
	cond, err := Eval(args.Car(), env)
	if err != nil {
		return Value{}, err
	}
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 1}
	}
	if Truthy(cond) {
		return Eval(rest.Car(), env)
	}
	elseBranch := rest.Cdr()
	if elseBranch == nil {
		return Nil(), nil
	}
	return Eval(elseBranch.Car(), env)
}

func andBuiltin(args *List, env *Env) (Value, error) {
	last := NewBool(true)
	for n := args; n != nil; n = n.Cdr() {
		v, err := Eval(n.Car(), env)
		if err != nil {
			return Value{}, err
		}
		if !Truthy(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func orBuiltin(args *List, env *Env) (Value, error) {
	last := NewBool(false)
	for n := args; n != nil; n = n.Cdr() {
		v, err := Eval(n.Car(), env)
		if err != nil {
			return Value{}, err
		}
		if Truthy(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func beginBuiltin(args *List, env *Env) (Value, error) {
	return evalBody(args, env.NewChild())
}

func lambdaBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	formals := args.Car()
	if formals.Kind() != KindList {
		return Value{}, &InvalidArgTypeError{Expected: "List", Actual: formals.TypeName()}
	}
	var params []string
	for n := formals.List(); n != nil; n = n.Cdr() {
		if n.Car().Kind() != KindSymbol {
			return Value{}, &InvalidArgTypeError{Expected: "Symbol", Actual: n.Car().TypeName()}
		}
		params = append(params, n.Car().Text())
	}
	return NewLambdaValue(NewLambda(params, args.Cdr(), env)), nil
}

func funcallBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	callable, ok := asCallable(args.Car())
	if !ok {
		return Value{}, &InvalidCallError{Type: args.Car().TypeName()}
	}
	return callable.Call(args.Cdr(), env, false)
}

func applyBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 0}
	}
	callable, ok := asCallable(args.Car())
	if !ok {
		return Value{}, &InvalidCallError{Type: args.Car().TypeName()}
	}
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 1}
	}
	listArg := rest.Car()
	if listArg.Kind() != KindList {
		return Value{}, &InvalidArgTypeError{Expected: "List", Actual: listArg.TypeName()}
	}
	return callable.Call(listArg.List(), env, false)
}

func evalBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	return Eval(args.Car(), env)
}

func mapBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 0}
	}
	callable, ok := asCallable(args.Car())
	if !ok {
		return Value{}, &InvalidCallError{Type: args.Car().TypeName()}
	}
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 1}
	}
	listArg := rest.Car()
	if listArg.Kind() != KindList {
		return Value{}, &InvalidArgTypeError{Expected: "List", Actual: listArg.TypeName()}
	}
	var out []Value
	for n := listArg.List(); n != nil; n = n.Cdr() {
		v, err := callable.Call(n.Car().Wrap(), env, false)
		if err != nil {
			return Value{}, err
		}
		out = append(out, v)
	}
	return NewListValue(FromSlice(out)), nil
}

func foldBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 3, Got: 0}
	}
	callable, ok := asCallable(args.Car())
	if !ok {
		return Value{}, &InvalidCallError{Type: args.Car().TypeName()}
	}
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 3, Got: 1}
	}
	acc := rest.Car()
	rest2 := rest.Cdr()
	if rest2 == nil {
		return Value{}, &InvalidArgCountError{Expected: 3, Got: 2}
	}
	listArg := rest2.Car()
	if listArg.Kind() != KindList {
		return Value{}, &InvalidArgTypeError{Expected: "List", Actual: listArg.TypeName()}
	}
	for n := listArg.List(); n != nil; n = n.Cdr() {
		v, err := callable.Call(Cons(acc, n.Car().Wrap()), env, false)
		if err != nil {
			return Value{}, err
		}
		acc = v
	}
	return acc, nil
}

func carBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	v := args.Car()
	if v.Kind() != KindList {
		return Value{}, &InvalidArgTypeError{Expected: "List", Actual: v.TypeName()}
	}
	return v.List().Car(), nil
}

func cdrBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	v := args.Car()
	if v.Kind() != KindList {
		return Value{}, &InvalidArgTypeError{Expected: "List", Actual: v.TypeName()}
	}
	tail := v.List().Cdr()
	if tail == nil {
		return Nil(), nil
	}
	return NewListValue(tail), nil
}

func consBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 0}
	}
	head := args.Car()
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 1}
	}
	tail := rest.Car()
	if tail.Kind() != KindList {
		return Value{}, &InvalidArgTypeError{Expected: "List", Actual: tail.TypeName()}
	}
	return NewListValue(Cons(head, tail.List())), nil
}

func listBuiltin(args *List, env *Env) (Value, error) {
	return NewListValue(args), nil
}

func notBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	return NewBool(!Truthy(args.Car())), nil
}

func addBuiltin(args *List, env *Env) (Value, error) {
	acc := 0.0
	for n := args; n != nil; n = n.Cdr() {
		if n.Car().Kind() != KindNumber {
			return Value{}, &InvalidArgTypeError{Expected: "Number", Actual: n.Car().TypeName()}
		}
		acc += n.Car().Number()
	}
	return NewNumber(acc), nil
}

func mulBuiltin(args *List, env *Env) (Value, error) {
	acc := 1.0
	for n := args; n != nil; n = n.Cdr() {
		if n.Car().Kind() != KindNumber {
			return Value{}, &InvalidArgTypeError{Expected: "Number", Actual: n.Car().TypeName()}
		}
		acc *= n.Car().Number()
	}
	return NewNumber(acc), nil
}

// subBuiltin and divBuiltin special-case a single argument as the numeric
// inverse (0-x, 1/x) rather than folding from an identity, per the
// language's kept single-arg behaviour.
func subBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	if args.Car().Kind() != KindNumber {
		return Value{}, &InvalidArgTypeError{Expected: "Number", Actual: args.Car().TypeName()}
	}
	if args.Cdr() == nil {
		return NewNumber(-args.Car().Number()), nil
	}
	acc := args.Car().Number()
	for n := args.Cdr(); n != nil; n = n.Cdr() {
		if n.Car().Kind() != KindNumber {
			return Value{}, &InvalidArgTypeError{Expected: "Number", Actual: n.Car().TypeName()}
		}
		acc -= n.Car().Number()
	}
	return NewNumber(acc), nil
}

func divBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	if args.Car().Kind() != KindNumber {
		return Value{}, &InvalidArgTypeError{Expected: "Number", Actual: args.Car().TypeName()}
	}
	if args.Cdr() == nil {
		return NewNumber(1 / args.Car().Number()), nil
	}
	acc := args.Car().Number()
	for n := args.Cdr(); n != nil; n = n.Cdr() {
		if n.Car().Kind() != KindNumber {
			return Value{}, &InvalidArgTypeError{Expected: "Number", Actual: n.Car().TypeName()}
		}
		acc /= n.Car().Number()
	}
	return NewNumber(acc), nil
}

func equalBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 0}
	}
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 1}
	}
	return NewBool(Equal(args.Car(), rest.Car())), nil
}

func compareBuiltin(args *List, cmpNum func(a, b float64) bool, cmpStr func(a, b string) bool) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 0}
	}
	rest := args.Cdr()
	if rest == nil {
		return Value{}, &InvalidArgCountError{Expected: 2, Got: 1}
	}
	a, b := args.Car(), rest.Car()
	switch {
	case a.Kind() == KindNumber && b.Kind() == KindNumber:
		return NewBool(cmpNum(a.Number(), b.Number())), nil
	case a.Kind() == KindString && b.Kind() == KindString:
		return NewBool(cmpStr(a.Text(), b.Text())), nil
	default:
		return Value{}, &InvalidCompError{Left: a.TypeName(), Right: b.TypeName()}
	}
}

func ltBuiltin(args *List, env *Env) (Value, error) {
	return compareBuiltin(args, func(a, b float64) bool { return a < b }, func(a, b string) bool { return a < b })
}

func gtBuiltin(args *List, env *Env) (Value, error) {
	return compareBuiltin(args, func(a, b float64) bool { return a > b }, func(a, b string) bool { return a > b })
}

func leBuiltin(args *List, env *Env) (Value, error) {
	return compareBuiltin(args, func(a, b float64) bool { return a <= b }, func(a, b string) bool { return a <= b })
}

func geBuiltin(args *List, env *Env) (Value, error) {
	return compareBuiltin(args, func(a, b float64) bool { return a >= b }, func(a, b string) bool { return a >= b })
}

func atomBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	v := args.Car()
	nonEmptyList := v.Kind() == KindList && v.List() != nil
	return NewBool(!nonEmptyList), nil
}

func typeofBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	return NewString(args.Car().TypeName()), nil
}

func displayBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	fmt.Println(Display(args.Car()))
	return args.Car(), nil
}

func debugBuiltin(args *List, env *Env) (Value, error) {
	if args == nil {
		return Value{}, &InvalidArgCountError{Expected: 1, Got: 0}
	}
	fmt.Println(Debug(args.Car()))
	return args.Car(), nil
}
