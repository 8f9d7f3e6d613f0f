package lisp

// Env is one frame of the lexical-scoping chain: a name-to-Value mapping
// plus an optional parent. The root frame has no parent and lives for the
// whole session; local frames live for the dynamic extent of the construct
// that created them, and closures extend that lifetime by holding a
// reference to the frame handle captured at definition time. Because Env is
// always used by pointer, it already is the shared handle a closure needs:
// a Lambda and the active call stack can reference the very same frame,
// and Go's garbage collector retires it once nothing does.
type Env struct {
	vars    map[string]Value
	parent  *Env
	limiter *depthLimiter // non-nil only on the root frame
}

// depthLimiter bounds recursive evaluation depth across the whole call
// stack.
type depthLimiter struct {
	max int
	cur int
}

// NewRootEnv returns a parentless frame suitable as the session's global
// environment.
func NewRootEnv() *Env {
	return &Env{vars: make(map[string]Value), limiter: &depthLimiter{}}
}

// NewChild returns a frame whose parent is e, used for function invocation
// and block scopes (begin, lambda calls).
func (e *Env) NewChild() *Env {
	return &Env{vars: make(map[string]Value), parent: e}
}

// root walks up the parent chain to the frame holding the depth limiter.
func (e *Env) root() *Env {
	for e.parent != nil {
		e = e.parent
	}
	return e
}

// SetMaxDepth bounds the recursion depth allowed from this frame's root
// onward; 0 means unlimited.
func (e *Env) SetMaxDepth(max int) { e.root().limiter.max = max }

func (l *depthLimiter) enter() error {
	l.cur++
	if l.max > 0 && l.cur > l.max {
		l.cur--
		return &StackOverflowError{Depth: l.cur + 1}
	}
	return nil
}

func (l *depthLimiter) exit() { l.cur-- }

func (e *Env) enterCall() error { return e.limiter.enter() }
func (e *Env) exitCall()        { e.limiter.exit() }

// Get looks up name in this frame, delegating to the parent chain if
// absent. The boolean result is false iff no frame in the chain binds name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Decl installs a binding in this frame, shadowing any outer binding of the
// same name. let and lambda-parameter binding use Decl.
func (e *Env) Decl(name string, v Value) { e.vars[name] = v }

// Set mutates name in place in the frame that defines it, walking the
// parent chain to find it. If no frame binds name, it is created at the
// root (create-on-assign semantics at the top level).
func (e *Env) Set(name string, v Value) {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return
		}
	}
	e.root().Decl(name, v)
}
