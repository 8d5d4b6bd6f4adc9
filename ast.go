// ast.go: the AST node set and its evaluation semantics (spec.md §4.4)
//
// Grounded on original_source/src/lang/expr.cpp and src/luna-lang/expr.cpp
// (every struct in this file is a close port of a same-purpose C++ struct
// there). Each node type is a Go struct implementing the Object protocol's
// Eval method; everything else falls back to BaseObject's defaults, since
// spec.md §3 says "each node is an Object whose only meaningful operation
// is eval(env)". Nodes are referenced from elsewhere only via Value{Kind:
// KindObject, Obj: <node>}; OpEval(v, env) is the single dispatch point
// (spec.md §2 item 9) that knows to call node.Eval for an object Value.
package luna

// evalAll evaluates vs in order, short-circuiting on the first non-Ok
// Completion. Used by list literals; blocks, table literals, and call
// arguments run their own in-order loops with the same short-circuit rule.
func evalAll(vs []Value, env *Environment) ([]Value, Completion) {
	out := make([]Value, 0, len(vs))
	for _, v := range vs {
		r, c := OpEval(v, env)
		if !c.IsOk() {
			return nil, c
		}
		out = append(out, r)
	}
	return out, Ok
}

// QuoteNode captures Inner without evaluating it (the `#expr` prefix form,
// and the key half of dot-access / declaration names).
type QuoteNode struct {
	BaseObject
	Inner Value
}

func (n *QuoteNode) Eval(env *Environment) (Value, Completion) { return n.Inner, Ok }

// UnaryNode covers `not`, unary `-`, `~`, and `typeof`.
type UnaryNode struct {
	BaseObject
	Op      string // "not" | "neg" | "binnot" | "typeof"
	Operand Value
}

func (n *UnaryNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.Operand, env)
	if !c.IsOk() {
		return None, c
	}
	switch n.Op {
	case "not":
		return OpNot(v)
	case "neg":
		return OpNeg(v)
	case "binnot":
		return OpBinNot(v)
	case "typeof":
		return Sym(TypeOf(v)), Ok
	default:
		return None, ExceptionStr("unknown unary operator " + n.Op)
	}
}

// BinaryNode covers every binary operator except assignment and member
// access (which get their own node types below). `and`/`or` evaluate both
// sides unconditionally — spec.md §4.4/§5: "NOT short-circuiting".
type BinaryNode struct {
	BaseObject
	Op          string
	Left, Right Value
}

func (n *BinaryNode) Eval(env *Environment) (Value, Completion) {
	lv, c := OpEval(n.Left, env)
	if !c.IsOk() {
		return None, c
	}
	rv, c := OpEval(n.Right, env)
	if !c.IsOk() {
		return None, c
	}
	switch n.Op {
	case "+":
		return OpAdd(lv, rv)
	case "-":
		return OpSub(lv, rv)
	case "*":
		return OpMul(lv, rv)
	case "/":
		return OpDiv(lv, rv)
	case "%":
		return OpMod(lv, rv)
	case "and":
		return OpAnd(lv, rv)
	case "or":
		return OpOr(lv, rv)
	case "binand":
		return OpBinAnd(lv, rv)
	case "binor":
		// Fixed per spec.md §9: the original BinOrExpr mistakenly called
		// opBinAnd here; this applies OpBinOr.
		return OpBinOr(lv, rv)
	case "==":
		eq, c := OpEq(lv, rv)
		if !c.IsOk() {
			return None, c
		}
		return Bool(eq), Ok
	case "!=":
		eq, c := OpEq(lv, rv)
		if !c.IsOk() {
			return None, c
		}
		return Bool(!eq), Ok
	case "<", "<=", ">", ">=":
		ord, c := OpCmp(lv, rv)
		if !c.IsOk() {
			return None, c
		}
		return Bool(compareMatches(n.Op, ord)), Ok
	default:
		return None, ExceptionStr("unknown binary operator " + n.Op)
	}
}

func compareMatches(op string, ord *Symbol) bool {
	switch op {
	case "<":
		return ord == SymLess
	case "<=":
		return ord == SymLess || ord == SymEquivalent
	case ">":
		return ord == SymGreater
	case ">=":
		return ord == SymGreater || ord == SymEquivalent
	default:
		return false
	}
}

// IsNode/AsNode: the right-hand side is a raw (unevaluated) type-tag
// symbol, exactly like a quoted identifier — see ast.go's GetNode doc for
// why member-access keys and type tags both skip environment lookup.
type IsNode struct {
	BaseObject
	Left Value
	Type *Symbol
}

func (n *IsNode) Eval(env *Environment) (Value, Completion) {
	lv, c := OpEval(n.Left, env)
	if !c.IsOk() {
		return None, c
	}
	return Bool(Is(lv, n.Type)), Ok
}

type AsNode struct {
	BaseObject
	Left Value
	Type *Symbol
}

func (n *AsNode) Eval(env *Environment) (Value, Completion) {
	lv, c := OpEval(n.Left, env)
	if !c.IsOk() {
		return None, c
	}
	return As(lv, n.Type)
}

// GetNode implements both `.` member access (Key is a *QuoteNode-wrapped
// Value, so evaluating it is a no-op unwrap) and `[expr]` indexing (Key is
// an ordinary expression Value, so evaluating it runs normal evaluation).
// Both forms desugar to the same opGet call (spec.md §4.3.2).
type GetNode struct {
	BaseObject
	Target, Key Value
}

func (n *GetNode) Eval(env *Environment) (Value, Completion) {
	tv, c := OpEval(n.Target, env)
	if !c.IsOk() {
		return None, c
	}
	kv, c := OpEval(n.Key, env)
	if !c.IsOk() {
		return None, c
	}
	return OpGet(tv, kv)
}

// SetNode implements assignment to a member-access target (§4.3.3):
// `target[key] = rhs` / `target.key = rhs`.
type SetNode struct {
	BaseObject
	Target, Key, RHS Value
}

func (n *SetNode) Eval(env *Environment) (Value, Completion) {
	tv, c := OpEval(n.Target, env)
	if !c.IsOk() {
		return None, c
	}
	kv, c := OpEval(n.Key, env)
	if !c.IsOk() {
		return None, c
	}
	rv, c := OpEval(n.RHS, env)
	if !c.IsOk() {
		return None, c
	}
	return OpSet(tv, kv, rv)
}

// DeclNode: `var IDENT = expr`. Key is the raw symbol, never evaluated.
type DeclNode struct {
	BaseObject
	Key *Symbol
	RHS Value
}

func (n *DeclNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.RHS, env)
	if !c.IsOk() {
		return None, c
	}
	env.DeclSym(n.Key, v)
	return v, Ok
}

// SetEnvNode: bare `IDENT = expr` assignment, through the environment's
// set-with-fallback-create rule (§4.6).
type SetEnvNode struct {
	BaseObject
	Key *Symbol
	RHS Value
}

func (n *SetEnvNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.RHS, env)
	if !c.IsOk() {
		return None, c
	}
	env.SetSym(n.Key, v)
	return v, Ok
}

// IfNode: Else may be None (the literal none Value) when no else branch
// was written.
type IfNode struct {
	BaseObject
	Cond, Then, Else Value
}

func (n *IfNode) Eval(env *Environment) (Value, Completion) {
	cv, c := OpEval(n.Cond, env)
	if !c.IsOk() {
		return None, c
	}
	b, c := AsBoolean(cv)
	if !c.IsOk() {
		return None, c
	}
	if b {
		return OpEval(n.Then, env)
	}
	return OpEval(n.Else, env)
}

// WhileNode implements the loop/completion interplay of spec.md §4.4.
type WhileNode struct {
	BaseObject
	Cond, Body Value
}

func (n *WhileNode) Eval(env *Environment) (Value, Completion) {
	result := None
	for {
		cv, c := OpEval(n.Cond, env)
		if !c.IsOk() {
			return None, c
		}
		b, c := AsBoolean(cv)
		if !c.IsOk() {
			return None, c
		}
		if !b {
			return result, Ok
		}
		v, c := OpEval(n.Body, env)
		switch c.Kind {
		case CNone:
			result = v
		case CContinue:
			continue
		case CBreak:
			return c.Value, Ok
		case CException, CReturn:
			return None, c
		}
	}
}

// TryNode implements try/catch: an exception completion from Try binds its
// value under CatchName in a fresh child scope and evaluates Catch; any
// other completion (including CNone) propagates/returns as-is.
type TryNode struct {
	BaseObject
	Try       Value
	CatchName *Symbol
	Catch     Value
}

func (n *TryNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.Try, env)
	if c.Kind != CException {
		return v, c
	}
	catchEnv := NewEnvironment(env)
	catchEnv.DeclSym(n.CatchName, c.Value)
	return OpEval(n.Catch, catchEnv)
}

// AssertNode raises `exception("assertion failed <source>")` when Expr is
// falsy; Source is the pre-rendered source-like text of the unevaluated
// expression (parser.go's renderTokenRange builds this once, at parse time).
type AssertNode struct {
	BaseObject
	Expr   Value
	Source string
}

func (n *AssertNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.Expr, env)
	if !c.IsOk() {
		return None, c
	}
	b, c := AsBoolean(v)
	if !c.IsOk() {
		return None, c
	}
	if !b {
		return None, ExceptionStr("assertion failed " + n.Source)
	}
	return v, Ok
}

// BlockNode: Scoped is false only for the wrapping top-level program node
// (spec.md §4.3 "does not introduce a new scope").
type BlockNode struct {
	BaseObject
	Exprs  []Value
	Scoped bool
}

func (n *BlockNode) Eval(env *Environment) (Value, Completion) {
	inner := env
	if n.Scoped {
		inner = NewEnvironment(env)
	}
	result := None
	for _, e := range n.Exprs {
		v, c := OpEval(e, inner)
		if !c.IsOk() {
			return None, c
		}
		result = v
	}
	return result, Ok
}

// TableLitNode: Keys are captured unevaluated (identifiers become symbols,
// literals become their values — spec.md §4.4); Vals are ordinary
// expressions evaluated in order, insertion order retained.
type TableLitNode struct {
	BaseObject
	Keys []Value
	Vals []Value
}

func (n *TableLitNode) Eval(env *Environment) (Value, Completion) {
	t := NewTable()
	for i := range n.Keys {
		v, c := OpEval(n.Vals[i], env)
		if !c.IsOk() {
			return None, c
		}
		if _, c := t.put(n.Keys[i], v); !c.IsOk() {
			return None, c
		}
	}
	return ObjVal(t), Ok
}

// ListLitNode evaluates items left-to-right and builds a List.
type ListLitNode struct {
	BaseObject
	Items []Value
}

func (n *ListLitNode) Eval(env *Environment) (Value, Completion) {
	vals, c := evalAll(n.Items, env)
	if !c.IsOk() {
		return None, c
	}
	return ObjVal(NewList(vals)), Ok
}

// FuncLitNode evaluates each default once, in the defining environment,
// every time the literal itself is evaluated (spec.md §4.4).
type FuncLitNode struct {
	BaseObject
	Sig  []ParamSpec
	Body Value
}

// ParamSpec mirrors Param but keeps the default as an unevaluated
// expression Value until FuncLitNode.Eval runs.
type ParamSpec struct {
	Key        *Symbol
	DefaultExp Value
	HasDefault bool
}

func (n *FuncLitNode) Eval(env *Environment) (Value, Completion) {
	sig := make([]Param, len(n.Sig))
	for i, p := range n.Sig {
		sig[i] = Param{Key: p.Key, Required: !p.HasDefault}
		if p.HasDefault {
			dv, c := OpEval(p.DefaultExp, env)
			if !c.IsOk() {
				return None, c
			}
			sig[i].Default = dv
			sig[i].HasValue = true
		}
	}
	return ObjVal(NewFunction(env, sig, n.Body)), Ok
}

// CallArg is one call-site argument: Key is nil for a positional argument,
// or the explicit name for a named argument (`name: expr`).
type CallArg struct {
	Key *Symbol
	Val Value
}

// CallNode evaluates the callee, builds a params Table keyed by name or
// 0-based position, and invokes the callee's Call.
type CallNode struct {
	BaseObject
	Callee Value
	Args   []CallArg
}

func (n *CallNode) Eval(env *Environment) (Value, Completion) {
	cv, c := OpEval(n.Callee, env)
	if !c.IsOk() {
		return None, c
	}
	obj, c := AsObject(cv)
	if !c.IsOk() {
		return None, c
	}
	params := NewTable()
	posIdx := int64(0)
	for _, a := range n.Args {
		v, c := OpEval(a.Val, env)
		if !c.IsOk() {
			return None, c
		}
		if a.Key != nil {
			if _, c := params.put(Sym(a.Key), v); !c.IsOk() {
				return None, c
			}
		} else {
			if _, c := params.put(Int(posIdx), v); !c.IsOk() {
				return None, c
			}
			posIdx++
		}
	}
	return obj.Call(params)
}

// ReturnNode/ContinueNode/BreakNode/ThrowNode evaluate Arg (already `none`
// if the source omitted it) and raise the matching Completion.
type ReturnNode struct {
	BaseObject
	Arg Value
}

func (n *ReturnNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.Arg, env)
	if !c.IsOk() {
		return None, c
	}
	return None, Return(v)
}

type ContinueNode struct {
	BaseObject
	Arg Value
}

func (n *ContinueNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.Arg, env)
	if !c.IsOk() {
		return None, c
	}
	return None, Continue(v)
}

type BreakNode struct {
	BaseObject
	Arg Value
}

func (n *BreakNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.Arg, env)
	if !c.IsOk() {
		return None, c
	}
	return None, Break(v)
}

type ThrowNode struct {
	BaseObject
	Arg Value
}

func (n *ThrowNode) Eval(env *Environment) (Value, Completion) {
	v, c := OpEval(n.Arg, env)
	if !c.IsOk() {
		return None, c
	}
	return None, Exception(v)
}
