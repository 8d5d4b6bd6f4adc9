package luna

import (
	"math"
	"testing"
)

func completionOk(t *testing.T, c Completion) {
	t.Helper()
	if !c.IsOk() {
		t.Fatalf("unexpected exception: %s", c.Value.GoString())
	}
}

func Test_AsBoolean_Coercions(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{None, false},
		{Bool(true), true},
		{Bool(false), false},
		{Int(0), false},
		{Int(5), true},
		{Num(0), false},
		{Num(0.1), true},
		{Sym(Intern("x")), true},
		{Str(""), false},
		{Str("x"), true},
	}
	for _, c := range cases {
		got, comp := AsBoolean(c.v)
		completionOk(t, comp)
		if got != c.want {
			t.Fatalf("AsBoolean(%v) = %v, want %v", c.v.GoString(), got, c.want)
		}
	}
}

func Test_AsInteger_Coercions(t *testing.T) {
	cases := []struct {
		v    Value
		want int64
	}{
		{None, 0},
		{Bool(true), 1},
		{Bool(false), 0},
		{Int(42), 42},
		{Num(3.9), 3},
	}
	for _, c := range cases {
		got, comp := AsInteger(c.v)
		completionOk(t, comp)
		if got != c.want {
			t.Fatalf("AsInteger(%v) = %d, want %d", c.v.GoString(), got, c.want)
		}
	}
	if _, comp := AsInteger(Str("x")); comp.IsOk() {
		t.Fatal("AsInteger(string) should raise")
	}
}

func Test_OpEq_StringAndSymbolDirect(t *testing.T) {
	eq, comp := OpEq(Str("a"), Str("a"))
	completionOk(t, comp)
	if !eq {
		t.Fatal(`"a" == "a" should be true`)
	}
	eq, comp = OpEq(Sym(Intern("a")), Sym(Intern("a")))
	completionOk(t, comp)
	if !eq {
		t.Fatal("#a == #a should be true (same interned pointer)")
	}
}

func Test_OpEq_CrossKindIsFalseNotException(t *testing.T) {
	eq, comp := OpEq(Str("x"), Int(5))
	completionOk(t, comp)
	if eq {
		t.Fatal(`"x" == 5 should be false`)
	}
}

func Test_OpEq_NumericWidening(t *testing.T) {
	eq, comp := OpEq(Int(2), Num(2.0))
	completionOk(t, comp)
	if !eq {
		t.Fatal("2 == 2.0 should be true")
	}
}

func Test_OpCmp_Integers(t *testing.T) {
	ord, comp := OpCmp(Int(1), Int(2))
	completionOk(t, comp)
	if ord != SymLess {
		t.Fatalf("OpCmp(1,2) = %s, want less", ord.Name())
	}
	ord, comp = OpCmp(Int(2), Int(2))
	completionOk(t, comp)
	if ord != SymEquivalent {
		t.Fatalf("OpCmp(2,2) = %s, want equivalent", ord.Name())
	}
	ord, comp = OpCmp(Int(3), Int(2))
	completionOk(t, comp)
	if ord != SymGreater {
		t.Fatalf("OpCmp(3,2) = %s, want greater", ord.Name())
	}
}

func Test_OpCmp_Strings(t *testing.T) {
	ord, comp := OpCmp(Str("abc"), Str("abd"))
	completionOk(t, comp)
	if ord != SymLess {
		t.Fatalf(`OpCmp("abc","abd") = %s, want less`, ord.Name())
	}
}

func Test_OpAdd_StringConcat(t *testing.T) {
	v, comp := OpAdd(Str("foo"), Str("bar"))
	completionOk(t, comp)
	if v.Kind != KindString || v.Str != "foobar" {
		t.Fatalf(`OpAdd("foo","bar") = %v, want "foobar"`, v.GoString())
	}
}

func Test_OpAdd_StringWins_OverSymbol(t *testing.T) {
	v, comp := OpAdd(Str("foo"), Sym(Intern("bar")))
	completionOk(t, comp)
	if v.Kind != KindString || v.Str != "foobar" {
		t.Fatalf(`OpAdd("foo", #bar) = %v, want string "foobar"`, v.GoString())
	}
}

func Test_OpAdd_SymbolConcat(t *testing.T) {
	v, comp := OpAdd(Sym(Intern("foo")), Sym(Intern("bar")))
	completionOk(t, comp)
	if v.Kind != KindSymbol || v.Sym.Name() != "foobar" {
		t.Fatalf("OpAdd(#foo,#bar) = %v, want symbol foobar", v.GoString())
	}
}

func Test_OpAdd_NumericWidening(t *testing.T) {
	v, comp := OpAdd(Int(1), Num(2.5))
	completionOk(t, comp)
	if v.Kind != KindNumber || v.N != 3.5 {
		t.Fatalf("OpAdd(1, 2.5) = %v, want 3.5", v.GoString())
	}
}

func Test_OpAdd_IntegerArithmetic(t *testing.T) {
	v, comp := OpAdd(Int(1), Int(2))
	completionOk(t, comp)
	if v.Kind != KindInteger || v.I != 3 {
		t.Fatalf("OpAdd(1,2) = %v, want 3", v.GoString())
	}
}

func Test_Precedence_TermLeftAssociative(t *testing.T) {
	// 1 - 2 - 3 should be ((1 - 2) - 3) = -4, exercised at the op level.
	v, comp := OpSub(Int(1), Int(2))
	completionOk(t, comp)
	v, comp = OpSub(v, Int(3))
	completionOk(t, comp)
	if v.I != -4 {
		t.Fatalf("(1-2)-3 = %d, want -4", v.I)
	}
}

func Test_OpDiv_IntegerByZero_ReturnsZero(t *testing.T) {
	v, comp := OpDiv(Int(5), Int(0))
	completionOk(t, comp)
	if v.Kind != KindInteger || v.I != 0 {
		t.Fatalf("OpDiv(5,0) = %v, want integer 0", v.GoString())
	}
}

func Test_OpMod_IntegerByZero_ReturnsZero(t *testing.T) {
	v, comp := OpMod(Int(5), Int(0))
	completionOk(t, comp)
	if v.Kind != KindInteger || v.I != 0 {
		t.Fatalf("OpMod(5,0) = %v, want integer 0", v.GoString())
	}
}

func Test_OpDiv_NumberByZero_IsInf(t *testing.T) {
	v, comp := OpDiv(Num(1), Num(0))
	completionOk(t, comp)
	if v.Kind != KindNumber || !math.IsInf(v.N, 1) {
		t.Fatalf("OpDiv(1.0, 0.0) should be the number +Inf, got %v", v.GoString())
	}
}

func Test_OpBinOr_NotOpBinAnd(t *testing.T) {
	// Regression test for the original's BinOrExpr::eval bug (spec.md §9):
	// 0b0110 | 0b1001 must be 0b1111, not 0b0000 (what opBinAnd would give).
	v, comp := OpBinOr(Int(6), Int(9))
	completionOk(t, comp)
	if v.I != 15 {
		t.Fatalf("OpBinOr(6,9) = %d, want 15", v.I)
	}
}

func Test_OpBinAnd(t *testing.T) {
	v, comp := OpBinAnd(Int(6), Int(9))
	completionOk(t, comp)
	if v.I != 0 {
		t.Fatalf("OpBinAnd(6,9) = %d, want 0", v.I)
	}
}

func Test_OpNot_CoercesThroughBoolean(t *testing.T) {
	v, comp := OpNot(Int(0))
	completionOk(t, comp)
	if v.Kind != KindBoolean || v.B != true {
		t.Fatalf("OpNot(0) = %v, want true", v.GoString())
	}
}

func Test_TypeOf_AllSevenKinds(t *testing.T) {
	cases := []struct {
		v    Value
		want *Symbol
	}{
		{None, SymNone},
		{Bool(true), SymBoolean},
		{Int(1), SymInteger},
		{Num(1), SymNumber},
		{Sym(Intern("a")), SymSymbol},
		{Str("a"), SymString},
		{ObjVal(NewList(nil)), SymObject},
	}
	for _, c := range cases {
		if got := TypeOf(c.v); got != c.want {
			t.Fatalf("TypeOf(%v) = %s, want %s", c.v.GoString(), got.Name(), c.want.Name())
		}
	}
}

func Test_As_StringToSymbol(t *testing.T) {
	v, comp := As(Str("hello"), SymSymbol)
	if comp.IsOk() {
		t.Fatalf("As(\"hello\", Symbol) = %v, want an exception (symbol coercion is identity-or-raise)", v.GoString())
	}
}

func Test_AsStringVal_NumberHasFractionalPoint(t *testing.T) {
	s, comp := AsStringVal(Num(3))
	completionOk(t, comp)
	if s != "3.0" {
		t.Fatalf("AsStringVal(3.0) = %q, want %q", s, "3.0")
	}
}

func Test_AsStringVal_Integer(t *testing.T) {
	s, comp := AsStringVal(Int(42))
	completionOk(t, comp)
	if s != "42" {
		t.Fatalf("AsStringVal(42) = %q, want %q", s, "42")
	}
}

func Test_OpEval_Symbol_LooksUpInEnv(t *testing.T) {
	env := NewEnvironment(nil)
	env.DeclSym(Intern("x"), Int(9))
	v, comp := OpEval(Sym(Intern("x")), env)
	completionOk(t, comp)
	if v.I != 9 {
		t.Fatalf("OpEval(#x) = %v, want 9", v.GoString())
	}
}

func Test_OpEval_Scalar_IsIdentity(t *testing.T) {
	v, comp := OpEval(Int(5), NewEnvironment(nil))
	completionOk(t, comp)
	if v.I != 5 {
		t.Fatalf("OpEval(5) = %v, want 5", v.GoString())
	}
}

func Test_OpEval_Object_DelegatesToEval(t *testing.T) {
	env := NewEnvironment(nil)
	node := &BinaryNode{Op: "+", Left: Int(1), Right: Int(2)}
	v, comp := OpEval(ObjVal(node), env)
	completionOk(t, comp)
	if v.I != 3 {
		t.Fatalf("OpEval(1+2) = %v, want 3", v.GoString())
	}
}
