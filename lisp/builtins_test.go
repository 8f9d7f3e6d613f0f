package lisp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, env *Env, src string) Value {
	t.Helper()
	v, err := NewParser(strings.NewReader(src)).ParseValue()
	require.NoError(t, err)
	result, err := Eval(v, env)
	require.NoError(t, err)
	return result
}

func evalErr(t *testing.T, env *Env, src string) error {
	t.Helper()
	v, err := NewParser(strings.NewReader(src)).ParseValue()
	require.NoError(t, err)
	_, err = Eval(v, env)
	return err
}

func TestArithmeticBuiltins(t *testing.T) {
	cases := []struct{ in, want string }{
		{"(+ 1 2 3 4)", "10"},
		{"(+)", "0"},
		{"(* 2 3 4)", "24"},
		{"(*)", "1"},
		{"(- 5 2 1)", "2"},
		{"(- 5)", "-5"},
		{"(/ 8 2 2)", "2"},
		{"(/ 4)", "0.25"},
	}
	for _, c := range cases {
		env := newTestEnv()
		got := Display(mustEval(t, env, c.in))
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestArithmeticRejectsNonNumbers(t *testing.T) {
	env := newTestEnv()
	err := evalErr(t, env, `(+ 1 "two")`)
	assert.IsType(t, &InvalidArgTypeError{}, err)
}

func TestComparisonBuiltins(t *testing.T) {
	cases := []struct{ in, want string }{
		{"(< 1 2)", "#t"},
		{"(< 2 1)", "#f"},
		{"(> 2 1)", "#t"},
		{"(<= 1 1)", "#t"},
		{"(>= 1 2)", "#f"},
		{`(< "a" "b")`, "#t"},
	}
	for _, c := range cases {
		env := newTestEnv()
		got := Display(mustEval(t, env, c.in))
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestComparisonRejectsMixedTypes(t *testing.T) {
	env := newTestEnv()
	err := evalErr(t, env, `(< 1 "a")`)
	require.Error(t, err)
	ice, ok := err.(*InvalidCompError)
	require.True(t, ok)
	assert.Equal(t, "Number", ice.Left)
	assert.Equal(t, "String", ice.Right)
}

func TestEqualAndEqualsSignAreTheSameFunction(t *testing.T) {
	env := newTestEnv()
	eq, _ := env.Get("equal")
	sign, _ := env.Get("=")
	assert.Equal(t, eq.Builtin(), sign.Builtin())
}

func TestEqualBuiltin(t *testing.T) {
	env := newTestEnv()
	assert.True(t, Truthy(mustEval(t, env, "(equal 1 1)")))
	assert.False(t, Truthy(mustEval(t, env, "(equal 1 2)")))
	assert.True(t, Truthy(mustEval(t, env, "(= '(1 2) '(1 2))")))
}

func TestNotBuiltin(t *testing.T) {
	env := newTestEnv()
	assert.True(t, Truthy(mustEval(t, env, "(not #f)")))
	assert.False(t, Truthy(mustEval(t, env, "(not 0)")), "0 is truthy, so (not 0) is false")
	assert.True(t, Truthy(mustEval(t, env, "(not nil)")))
}

func TestAtomBuiltin(t *testing.T) {
	env := newTestEnv()
	assert.True(t, Truthy(mustEval(t, env, "(atom 1)")))
	assert.True(t, Truthy(mustEval(t, env, "(atom '())")), "the empty list is an atom")
	assert.False(t, Truthy(mustEval(t, env, "(atom '(1 2))")))
}

func TestTypeofBuiltin(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, `"Number"`, Display(mustEval(t, env, "(typeof 1)")))
	assert.Equal(t, `"Symbol"`, Display(mustEval(t, env, "(typeof 'x)")))
	assert.Equal(t, `"String"`, Display(mustEval(t, env, `(typeof "x")`)))
	assert.Equal(t, `"List"`, Display(mustEval(t, env, "(typeof '(1))")))
	assert.Equal(t, `"Nil"`, Display(mustEval(t, env, "(typeof nil)")))
}

func TestCarCdrOnList(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "1", Display(mustEval(t, env, "(car '(1 2 3))")))
	assert.Equal(t, "(2 3)", Display(mustEval(t, env, "(cdr '(1 2 3))")))
	assert.Equal(t, "nil", Display(mustEval(t, env, "(cdr '(1))")), "cdr of a singleton list is nil, not ()")
}

func TestCarCdrRejectNonList(t *testing.T) {
	env := newTestEnv()
	assert.IsType(t, &InvalidArgTypeError{}, evalErr(t, env, "(car 1)"))
	assert.IsType(t, &InvalidArgTypeError{}, evalErr(t, env, "(cdr 1)"))
}

func TestListBuiltinCollectsEvaluatedArgs(t *testing.T) {
	env := newTestEnv()
	got := Display(mustEval(t, env, "(list (+ 1 1) (+ 2 2))"))
	assert.Equal(t, "(2 4)", got)
}

func TestIfBranches(t *testing.T) {
	env := newTestEnv()
	assert.Equal(t, "1", Display(mustEval(t, env, "(if #t 1 2)")))
	assert.Equal(t, "2", Display(mustEval(t, env, "(if #f 1 2)")))
	assert.Equal(t, "nil", Display(mustEval(t, env, "(if #f 1)")), "a missing else branch evaluates to nil")
}

func TestIfDoesNotEvaluateTheUntakenBranch(t *testing.T) {
	env := newTestEnv()
	// car of an atom would fail; if this were evaluated the test would
	// error out instead of returning the then-branch.
	got := mustEval(t, env, "(if #t 1 (car 2))")
	assert.Equal(t, "1", Display(got))
}

func TestLambdaArity(t *testing.T) {
	env := newTestEnv()
	mustEval(t, env, "(let f (lambda (x y) (+ x y)))")
	err := evalErr(t, env, "(f 1)")
	require.Error(t, err)
	iace, ok := err.(*InvalidArgCountError)
	require.True(t, ok)
	assert.Equal(t, 2, iace.Expected)
	assert.Equal(t, 1, iace.Got)
}

func TestFuncallAndApply(t *testing.T) {
	env := newTestEnv()
	got := Display(mustEval(t, env, "(funcall + 1 2 3)"))
	assert.Equal(t, "6", got)

	got = Display(mustEval(t, env, "(apply + '(1 2 3))"))
	assert.Equal(t, "6", got)
}

func TestEvalBuiltinEvaluatesAQuotedForm(t *testing.T) {
	env := newTestEnv()
	got := Display(mustEval(t, env, "(eval (list '+ 1 2))"))
	assert.Equal(t, "3", got)
}

func TestBeginReturnsLastExpression(t *testing.T) {
	env := newTestEnv()
	got := Display(mustEval(t, env, "(begin 1 2 3)"))
	assert.Equal(t, "3", got)
}

func TestBeginIntroducesAFreshFrame(t *testing.T) {
	env := newTestEnv()
	mustEval(t, env, "(let x 1)")
	mustEval(t, env, "(begin (let x 2))")
	got := Display(mustEval(t, env, "x"))
	assert.Equal(t, "1", got, "let inside begin must not leak into the enclosing frame")
}

func TestMapAndFoldOverList(t *testing.T) {
	env := newTestEnv()
	got := Display(mustEval(t, env, "(map (lambda (x) (* 2 x)) '(1 2 3))"))
	assert.Equal(t, "(2 4 6)", got)

	got = Display(mustEval(t, env, "(fold * 1 '(1 2 3 4))"))
	assert.Equal(t, "24", got)
}

func TestMapRejectsNonCallableHead(t *testing.T) {
	env := newTestEnv()
	err := evalErr(t, env, "(map 1 '(1 2 3))")
	assert.IsType(t, &InvalidCallError{}, err)
}

func TestQuoteSuppressesEvaluation(t *testing.T) {
	env := newTestEnv()
	got := Display(mustEval(t, env, "(quote (+ 1 2))"))
	assert.Equal(t, "(+ 1 2)", got)
}

func TestLetDeclaresSetMutates(t *testing.T) {
	env := newTestEnv()
	mustEval(t, env, "(let x 1)")
	mustEval(t, env, "(let x 2)")
	assert.Equal(t, "2", Display(mustEval(t, env, "x")), "let redeclares rather than erroring on an existing name")

	mustEval(t, env, "(set x 3)")
	assert.Equal(t, "3", Display(mustEval(t, env, "x")))
}

func TestDisplayAndDebugBuiltinsReturnTheirArgument(t *testing.T) {
	env := newTestEnv()
	got := mustEval(t, env, "(display 42)")
	assert.Equal(t, NewNumber(42), got, "display/debug are identity functions with a side effect")

	got = mustEval(t, env, "(debug 42)")
	assert.Equal(t, NewNumber(42), got)
}
