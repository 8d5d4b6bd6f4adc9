// ops.go: coercions (as*/is) and the scalar operator table
//
// Direct port of original_source/src/luna-lang/ops.cpp: typeOf, is*/as*,
// opEq/opCmp/opAnd/opOr/opNot/opAdd/opSub/opMul/opDiv/opMod/opBinNot/
// opBinAnd/opBinOr, and the single opEval dispatch entry point named in
// spec.md §2 item 9. Every function here mirrors a same-named function in
// ops.cpp; see spec.md §4.5 for the coercion table this implements.
package luna

import "math"

// TypeOf returns the well-known type symbol for v's runtime kind (spec.md
// §3: "exactly the seven listed above").
func TypeOf(v Value) *Symbol {
	switch v.Kind {
	case KindNone:
		return SymNone
	case KindBoolean:
		return SymBoolean
	case KindInteger:
		return SymInteger
	case KindNumber:
		return SymNumber
	case KindSymbol:
		return SymSymbol
	case KindString:
		return SymString
	case KindObject:
		return SymObject
	default:
		return SymNone
	}
}

// Is reports whether v's runtime kind matches the type symbol tag.
func Is(v Value, tag *Symbol) bool {
	return TypeOf(v) == tag
}

// AsBoolean: none→false, bool→itself, integer→i≠0, number→n≠0, symbol→true,
// string→len>0, object→obj.Truthy().
func AsBoolean(v Value) (bool, Completion) {
	switch v.Kind {
	case KindNone:
		return false, Ok
	case KindBoolean:
		return v.B, Ok
	case KindInteger:
		return v.I != 0, Ok
	case KindNumber:
		return v.N != 0, Ok
	case KindSymbol:
		return true, Ok
	case KindString:
		return len(v.Str) > 0, Ok
	case KindObject:
		return v.Obj.Truthy()
	default:
		return false, ExceptionStr("cannot coerce to boolean")
	}
}

// AsInteger: none→0, bool→0|1, integer→itself, number→trunc, else exception.
func AsInteger(v Value) (int64, Completion) {
	switch v.Kind {
	case KindNone:
		return 0, Ok
	case KindBoolean:
		if v.B {
			return 1, Ok
		}
		return 0, Ok
	case KindInteger:
		return v.I, Ok
	case KindNumber:
		return int64(v.N), Ok
	default:
		return 0, ExceptionStr("cannot coerce to integer")
	}
}

// AsNumber: none→0.0, bool→0.0|1.0, integer→widen, number→itself.
func AsNumber(v Value) (float64, Completion) {
	switch v.Kind {
	case KindNone:
		return 0, Ok
	case KindBoolean:
		if v.B {
			return 1, Ok
		}
		return 0, Ok
	case KindInteger:
		return float64(v.I), Ok
	case KindNumber:
		return v.N, Ok
	default:
		return 0, ExceptionStr("cannot coerce to number")
	}
}

// AsSymbol is identity on a symbol Value; else exception.
func AsSymbol(v Value) (*Symbol, Completion) {
	if v.Kind != KindSymbol {
		return nil, ExceptionStr("cannot coerce to symbol")
	}
	return v.Sym, Ok
}

// AsObject is identity on an object Value; else exception.
func AsObject(v Value) (Object, Completion) {
	if v.Kind != KindObject {
		return nil, ExceptionStr("not an object")
	}
	return v.Obj, Ok
}

// AsIndex accepts only integer-valued Values (not floats/strings/etc).
func AsIndex(v Value) (int64, Completion) {
	if v.Kind != KindInteger {
		return 0, ExceptionStr("not an index")
	}
	return v.I, Ok
}

// As dispatches to the coercion named by tag (one of the seven type
// symbols), returning a Value of that kind.
func As(v Value, tag *Symbol) (Value, Completion) {
	switch tag {
	case SymNone:
		if v.Kind != KindNone {
			return None, ExceptionStr("cannot coerce to none")
		}
		return None, Ok
	case SymBoolean:
		b, c := AsBoolean(v)
		if !c.IsOk() {
			return None, c
		}
		return Bool(b), Ok
	case SymInteger:
		i, c := AsInteger(v)
		if !c.IsOk() {
			return None, c
		}
		return Int(i), Ok
	case SymNumber:
		n, c := AsNumber(v)
		if !c.IsOk() {
			return None, c
		}
		return Num(n), Ok
	case SymSymbol:
		s, c := AsSymbol(v)
		if !c.IsOk() {
			return None, c
		}
		return Sym(s), Ok
	case SymString:
		s, c := AsStringVal(v)
		if !c.IsOk() {
			return None, c
		}
		return Str(s), Ok
	default:
		return None, ExceptionStr("unknown target type")
	}
}

// AsStringVal is the coercion half of spec.md §4.5's "asString": canonical
// rendering for scalars, object.Stringify() for objects. The text of an
// unevaluated `assert` expression is built separately, by parser.go's
// renderTokenRange.
func AsStringVal(v Value) (string, Completion) {
	switch v.Kind {
	case KindNone:
		return "none", Ok
	case KindBoolean:
		if v.B {
			return "true", Ok
		}
		return "false", Ok
	case KindInteger:
		return formatInt(v.I), Ok
	case KindNumber:
		return formatNumber(v.N), Ok
	case KindSymbol:
		return v.Sym.Name(), Ok
	case KindString:
		return v.Str, Ok
	case KindObject:
		return v.Obj.Stringify()
	default:
		return "", ExceptionStr("cannot coerce to string")
	}
}

// OpEq implements spec.md §4.4 Equality: object-side-authoritative,
// otherwise numeric-if-either-is-number, else integer — extended (see
// DESIGN.md) with direct string/symbol content comparison so that ordinary
// string and symbol equality do not raise, and with a "not equal" (rather
// than exception) result when a scalar coercion would otherwise fail, since
// `x == y` between unrelated kinds should report false, not crash.
func OpEq(a, b Value) (bool, Completion) {
	if a.Kind == KindObject {
		return a.Obj.Eq(b)
	}
	if b.Kind == KindObject {
		return b.Obj.Eq(a)
	}
	if a.Kind == KindString && b.Kind == KindString {
		return a.Str == b.Str, Ok
	}
	if a.Kind == KindSymbol && b.Kind == KindSymbol {
		return a.Sym == b.Sym, Ok
	}
	if a.Kind == KindNumber || b.Kind == KindNumber {
		an, ca := AsNumber(a)
		bn, cb := AsNumber(b)
		if !ca.IsOk() || !cb.IsOk() {
			return false, Ok
		}
		return an == bn, Ok
	}
	ai, ca := AsInteger(a)
	bi, cb := AsInteger(b)
	if !ca.IsOk() || !cb.IsOk() {
		return false, Ok
	}
	return ai == bi, Ok
}

// OpCmp implements spec.md §4.4 Comparison, returning one of
// {less, equivalent, greater} (unordered is reserved for object
// comparisons that choose to return it).
func OpCmp(a, b Value) (*Symbol, Completion) {
	if a.Kind == KindObject {
		return a.Obj.Cmp(b)
	}
	if b.Kind == KindObject {
		res, c := b.Obj.Cmp(a)
		if !c.IsOk() || res == nil {
			return res, c
		}
		return flipOrdering(res), Ok
	}
	if a.Kind == KindString || b.Kind == KindString {
		as, ca := AsStringVal(a)
		bs, cb := AsStringVal(b)
		if !ca.IsOk() {
			return nil, ca
		}
		if !cb.IsOk() {
			return nil, cb
		}
		return orderingFromCmp(compareStrings(as, bs)), Ok
	}
	if a.Kind == KindNumber || b.Kind == KindNumber {
		an, ca := AsNumber(a)
		bn, cb := AsNumber(b)
		if !ca.IsOk() {
			return nil, ca
		}
		if !cb.IsOk() {
			return nil, cb
		}
		return orderingFromCmp(compareFloats(an, bn)), Ok
	}
	ai, ca := AsInteger(a)
	bi, cb := AsInteger(b)
	if !ca.IsOk() {
		return nil, ca
	}
	if !cb.IsOk() {
		return nil, cb
	}
	return orderingFromCmp(compareInts(ai, bi)), Ok
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func orderingFromCmp(c int) *Symbol {
	switch {
	case c < 0:
		return SymLess
	case c > 0:
		return SymGreater
	default:
		return SymEquivalent
	}
}

func flipOrdering(s *Symbol) *Symbol {
	switch s {
	case SymLess:
		return SymGreater
	case SymGreater:
		return SymLess
	default:
		return s
	}
}

// OpAnd/OpOr/OpNot coerce through AsBoolean; callers (BinaryNode) are
// responsible for NOT short-circuiting (spec.md §4.4), these helpers only
// combine already-evaluated operands.
func OpAnd(a, b Value) (Value, Completion) {
	ab, ca := AsBoolean(a)
	if !ca.IsOk() {
		return None, ca
	}
	bb, cb := AsBoolean(b)
	if !cb.IsOk() {
		return None, cb
	}
	return Bool(ab && bb), Ok
}

func OpOr(a, b Value) (Value, Completion) {
	ab, ca := AsBoolean(a)
	if !ca.IsOk() {
		return None, ca
	}
	bb, cb := AsBoolean(b)
	if !cb.IsOk() {
		return None, cb
	}
	return Bool(ab || bb), Ok
}

func OpNot(a Value) (Value, Completion) {
	ab, c := AsBoolean(a)
	if !c.IsOk() {
		return None, c
	}
	return Bool(!ab), Ok
}

// OpNeg: none→0, bool→±integer, integer/number negate.
func OpNeg(a Value) (Value, Completion) {
	switch a.Kind {
	case KindNone:
		return Int(0), Ok
	case KindBoolean:
		if a.B {
			return Int(-1), Ok
		}
		return Int(0), Ok
	case KindInteger:
		return Int(-a.I), Ok
	case KindNumber:
		return Num(-a.N), Ok
	default:
		return None, ExceptionStr("cannot negate")
	}
}

// OpAdd: string-concat if either side is a string, symbol-concat if either
// side is a symbol (and neither is a string), number if either is a
// number, else integer.
func OpAdd(a, b Value) (Value, Completion) {
	if a.Kind == KindString || b.Kind == KindString {
		as, ca := AsStringVal(a)
		if !ca.IsOk() {
			return None, ca
		}
		bs, cb := AsStringVal(b)
		if !cb.IsOk() {
			return None, cb
		}
		return Str(as + bs), Ok
	}
	if a.Kind == KindSymbol || b.Kind == KindSymbol {
		as, ca := AsStringVal(a)
		if !ca.IsOk() {
			return None, ca
		}
		bs, cb := AsStringVal(b)
		if !cb.IsOk() {
			return None, cb
		}
		return Sym(Intern(as + bs)), Ok
	}
	return numericOp(a, b, func(x, y float64) float64 { return x + y }, func(x, y int64) int64 { return x + y })
}

func OpSub(a, b Value) (Value, Completion) {
	return numericOp(a, b, func(x, y float64) float64 { return x - y }, func(x, y int64) int64 { return x - y })
}

func OpMul(a, b Value) (Value, Completion) {
	return numericOp(a, b, func(x, y float64) float64 { return x * y }, func(x, y int64) int64 { return x * y })
}

func OpDiv(a, b Value) (Value, Completion) {
	return numericOp(a, b, func(x, y float64) float64 { return x / y }, func(x, y int64) int64 {
		if y == 0 {
			return 0
		}
		return x / y
	})
}

// OpMod: numbers use IEEE remainder (fmod), integers use Go's %.
func OpMod(a, b Value) (Value, Completion) {
	return numericOp(a, b, math.Mod, func(x, y int64) int64 {
		if y == 0 {
			return 0
		}
		return x % y
	})
}

func numericOp(a, b Value, fnum func(float64, float64) float64, fint func(int64, int64) int64) (Value, Completion) {
	if a.Kind == KindNumber || b.Kind == KindNumber {
		an, ca := AsNumber(a)
		if !ca.IsOk() {
			return None, ca
		}
		bn, cb := AsNumber(b)
		if !cb.IsOk() {
			return None, cb
		}
		return Num(fnum(an, bn)), Ok
	}
	ai, ca := AsInteger(a)
	if !ca.IsOk() {
		return None, ca
	}
	bi, cb := AsInteger(b)
	if !cb.IsOk() {
		return None, cb
	}
	return Int(fint(ai, bi)), Ok
}

// OpBinNot/OpBinAnd/OpBinOr: integer-coerce and apply the bitwise op.
func OpBinNot(a Value) (Value, Completion) {
	ai, c := AsInteger(a)
	if !c.IsOk() {
		return None, c
	}
	return Int(^ai), Ok
}

func OpBinAnd(a, b Value) (Value, Completion) {
	ai, ca := AsInteger(a)
	if !ca.IsOk() {
		return None, ca
	}
	bi, cb := AsInteger(b)
	if !cb.IsOk() {
		return None, cb
	}
	return Int(ai & bi), Ok
}

// OpBinOr applies bitwise OR. NOTE: original_source's BinOrExpr::eval calls
// opBinAnd here by mistake (spec.md §9, flagged as a bug to fix, not
// preserve); this rewrite's ast.go wires BinaryNode's "binor" op to OpBinOr.
func OpBinOr(a, b Value) (Value, Completion) {
	ai, ca := AsInteger(a)
	if !ca.IsOk() {
		return None, ca
	}
	bi, cb := AsInteger(b)
	if !cb.IsOk() {
		return None, cb
	}
	return Int(ai | bi), Ok
}

// OpGet/OpSet/OpDecl/OpHas/OpLen/OpCall require an object receiver; they
// coerce through AsObject and delegate to the protocol method.
func OpGet(target, key Value) (Value, Completion) {
	o, c := AsObject(target)
	if !c.IsOk() {
		return None, c
	}
	return o.Get(key)
}

func OpSet(target, key, val Value) (Value, Completion) {
	o, c := AsObject(target)
	if !c.IsOk() {
		return None, c
	}
	return o.Set(key, val)
}

func OpDecl(target, key, val Value) (Value, Completion) {
	o, c := AsObject(target)
	if !c.IsOk() {
		return None, c
	}
	return o.Decl(key, val)
}

func OpHas(target, key Value) (bool, Completion) {
	o, c := AsObject(target)
	if !c.IsOk() {
		return false, c
	}
	return o.Has(key)
}

func OpLen(target Value) (int64, Completion) {
	o, c := AsObject(target)
	if !c.IsOk() {
		return 0, c
	}
	return o.Length()
}

func OpCall(target Value, params *Table) (Value, Completion) {
	o, c := AsObject(target)
	if !c.IsOk() {
		return None, c
	}
	return o.Call(params)
}

// OpEval is the single evaluation entry point named in spec.md §2 item 9:
// literals return themselves, a symbol looks itself up in env, an object
// delegates to its own Eval.
func OpEval(v Value, env *Environment) (Value, Completion) {
	switch v.Kind {
	case KindSymbol:
		return env.GetSym(v.Sym)
	case KindObject:
		return v.Obj.Eval(env)
	default:
		return v, Ok
	}
}
