package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant a Value currently holds.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindSymbol
	KindString
	KindBuiltin
	KindLambda
	KindList
)

// Value is the tagged runtime datum every expression evaluates to. It is
// deliberately a small value type, not a pointer: Go's garbage collector
// gives us the shared-ownership semantics the language spec describes
// (symbols/strings never duplicate their backing text because Go strings
// already share their underlying bytes on copy; functions and lists are
// held by pointer and so are naturally shared by reference) without any
// manual refcounting.
type Value struct {
	kind Kind
	b    bool
	num  float64
	text string
	fn   *Builtin
	lam  *Lambda
	list *List
}

// List is an immutable, persistent cons-list of Values. A nil *List is the
// empty list; Cons never mutates an existing node, so tails are always safe
// to share between lists.
type List struct {
	car Value
	cdr *List
}

func Nil() Value                 { return Value{kind: KindNil} }
func NewBool(b bool) Value       { return Value{kind: KindBool, b: b} }
func NewNumber(n float64) Value  { return Value{kind: KindNumber, num: n} }
func NewSymbol(s string) Value   { return Value{kind: KindSymbol, text: s} }
func NewString(s string) Value   { return Value{kind: KindString, text: s} }
func NewBuiltinValue(b *Builtin) Value { return Value{kind: KindBuiltin, fn: b} }
func NewLambdaValue(l *Lambda) Value   { return Value{kind: KindLambda, lam: l} }
func NewListValue(l *List) Value       { return Value{kind: KindList, list: l} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Bool reports the boolean payload; only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Number reports the numeric payload; only meaningful when Kind() == KindNumber.
func (v Value) Number() float64 { return v.num }

// Text reports the Symbol/String payload; only meaningful for those kinds.
func (v Value) Text() string { return v.text }

// List reports the list payload (possibly nil for the empty list); only
// meaningful when Kind() == KindList.
func (v Value) List() *List { return v.list }

// Builtin reports the builtin payload; only meaningful when Kind() == KindBuiltin.
func (v Value) Builtin() *Builtin { return v.fn }

// Lambda reports the lambda payload; only meaningful when Kind() == KindLambda.
func (v Value) Lambda() *Lambda { return v.lam }

// TypeName returns the variant's canonical name, used in error messages and
// by the typeof builtin.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "Nil"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindSymbol:
		return "Symbol"
	case KindString:
		return "String"
	case KindBuiltin:
		return "Builtin"
	case KindLambda:
		return "Lambda"
	case KindList:
		return "List"
	default:
		return "Unknown"
	}
}

// Wrap returns a singleton list holding v.
func (v Value) Wrap() *List { return Cons(v, nil) }

// Quote returns (quote v), the two-element list 'v desugars to.
func Quote(v Value) Value { return NewListValue(Cons(NewSymbol("quote"), v.Wrap())) }

// Cons allocates a fresh node whose cdr aliases tail; tail is never copied
// or mutated.
func Cons(head Value, tail *List) *List { return &List{car: head, cdr: tail} }

// Car returns the first element of l, or Nil if l is empty.
func (l *List) Car() Value {
	if l == nil {
		return Nil()
	}
	return l.car
}

// Cdr returns the tail of l, or nil (the empty list) if l is empty.
func (l *List) Cdr() *List {
	if l == nil {
		return nil
	}
	return l.cdr
}

// Len reports the number of items at the top level of l. O(n).
func (l *List) Len() int {
	n := 0
	for ; l != nil; l = l.cdr {
		n++
	}
	return n
}

// FromSlice builds a list whose order matches items, terminated by the
// empty list.
func FromSlice(items []Value) *List {
	var out *List
	for i := len(items) - 1; i >= 0; i-- {
		out = Cons(items[i], out)
	}
	return out
}

// ToSlice collects l into a freshly allocated slice, preserving order.
func (l *List) ToSlice() []Value {
	out := make([]Value, 0, l.Len())
	for n := l; n != nil; n = n.cdr {
		out = append(out, n.car)
	}
	return out
}

// Fold reduces l left-to-right, short-circuiting on the first error from f.
func (l *List) Fold(acc Value, f func(acc, v Value) (Value, error)) (Value, error) {
	var err error
	for n := l; n != nil; n = n.cdr {
		acc, err = f(acc, n.car)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// Equal implements structural equality for Nil/Bool/Number/Symbol/
// String/List and identity equality for Builtin/Lambda.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindSymbol, KindString:
		return a.text == b.text
	case KindBuiltin:
		return a.fn == b.fn
	case KindLambda:
		return a.lam == b.lam
	case KindList:
		return listsEqual(a.list, b.list)
	default:
		return false
	}
}

func listsEqual(a, b *List) bool {
	for {
		if a == nil || b == nil {
			return a == b
		}
		if !Equal(a.car, b.car) {
			return false
		}
		a, b = a.cdr, b.cdr
	}
}

// Truthy reports whether v counts as true in and/or/if: everything except
// Nil and Bool(false).
func Truthy(v Value) bool {
	return !(v.kind == KindNil || (v.kind == KindBool && !v.b))
}

// Display renders v the way the interactive loop prints a successful
// result: unescaped quoted strings, canonical decimal numbers, #t/#f, nil,
// and parenthesised lists.
func Display(v Value) string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "#t"
		}
		return "#f"
	case KindNumber:
		return formatNumber(v.num)
	case KindSymbol:
		return v.text
	case KindString:
		return `"` + v.text + `"`
	case KindBuiltin:
		return "#<builtin:" + v.fn.name + ">"
	case KindLambda:
		return "#<lambda>"
	case KindList:
		var b strings.Builder
		b.WriteByte('(')
		for n := v.list; n != nil; n = n.cdr {
			if n != v.list {
				b.WriteByte(' ')
			}
			b.WriteString(Display(n.car))
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "?"
	}
}

// Debug renders v in a structural form that names the variant, used by the
// debug builtin.
func Debug(v Value) string {
	switch v.kind {
	case KindNil:
		return "Nil"
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindNumber:
		return fmt.Sprintf("Number(%s)", formatNumber(v.num))
	case KindSymbol:
		return fmt.Sprintf("Symbol(%s)", v.text)
	case KindString:
		return fmt.Sprintf("String(%q)", v.text)
	case KindBuiltin:
		return fmt.Sprintf("Builtin(%s)", v.fn.name)
	case KindLambda:
		return "Lambda"
	case KindList:
		var parts []string
		for n := v.list; n != nil; n = n.cdr {
			parts = append(parts, Debug(n.car))
		}
		return "List(" + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// String lets Value participate in fmt's %v/%s verbs, %s'ing to its Display form.
func (v Value) String() string { return Display(v) }
