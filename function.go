// function.go: the Function object — closure + parameter signature + body
//
// Grounded on original_source/src/lang/objects.cpp's `Func`/`Param`/
// `Native`/`Code` (`Code = Union<Value, Native>`) and its parameter-binding
// algorithm in `call`.
package luna

// Param is one entry in a Function's ordered parameter signature: a name,
// an optional default (evaluated once, in the defining environment, when
// the function literal is created — spec.md §4.4 "Function literal"), and
// whether the parameter is required.
type Param struct {
	Key      *Symbol
	Default  Value
	HasValue bool // Default is meaningful
	Required bool
}

// NativeFunc is a host-provided callable body (spec.md §3: "a native
// callable taking a single Table of arguments").
type NativeFunc func(params *Table) (Value, Completion)

// Function is a closure: a defining environment, an ordered parameter
// signature, and a body that is either a user AST node (Body, wrapped as a
// Value so it can be evaluated via OpEval) or a NativeFunc.
type Function struct {
	BaseObject
	env    *Environment
	sig    []Param
	body   Value // Kind == KindObject wrapping an AST node, when Native == nil
	native NativeFunc
}

// NewFunction builds a user-defined function capturing env, sig, and the
// AST body node (wrapped as a Value).
func NewFunction(env *Environment, sig []Param, body Value) *Function {
	return &Function{env: env, sig: sig, body: body}
}

// NewNativeFunction builds a host-provided function with no captured
// environment and no AST body.
func NewNativeFunction(sig []Param, fn NativeFunc) *Function {
	return &Function{sig: sig, native: fn}
}

// Call implements objects.cpp's `Func::call`: binds params against sig in
// a fresh child of the defining environment, then evaluates the body.
func (f *Function) Call(params *Table) (Value, Completion) {
	callEnv := NewEnvironment(f.env)
	posIdx := int64(0)
	for _, p := range f.sig {
		keyVal := Sym(p.Key)
		if has, c := params.Has(keyVal); c.IsOk() && has {
			v, c := params.Get(keyVal)
			if !c.IsOk() {
				return None, c
			}
			callEnv.DeclSym(p.Key, v)
			continue
		}
		if has, c := params.Has(Int(posIdx)); c.IsOk() && has {
			v, c := params.Get(Int(posIdx))
			if !c.IsOk() {
				return None, c
			}
			callEnv.DeclSym(p.Key, v)
			posIdx++
			continue
		}
		if !p.Required {
			callEnv.DeclSym(p.Key, p.Default)
			continue
		}
		return None, ExceptionStr("missing parameter: " + p.Key.Name())
	}

	if f.native != nil {
		return f.native(paramsFor(callEnv))
	}
	v, c := OpEval(f.body, callEnv)
	switch c.Kind {
	case CReturn, CBreak, CContinue:
		return c.Value, Ok
	default:
		return v, c
	}
}

// paramsFor is unused by user functions (their body evaluates against
// callEnv directly) but native functions expect a Table of the *bound*
// parameters, matching spec.md §3's "native callable taking a single Table
// of arguments" rather than raw positional args.
func paramsFor(callEnv *Environment) *Table {
	t := NewTable()
	for k, v := range callEnv.locals {
		t.put(Sym(k), v)
	}
	return t
}

func (f *Function) Eval(env *Environment) (Value, Completion) {
	return None, ExceptionStr("not evaluable")
}

func (f *Function) Stringify() (string, Completion) {
	return "<function>", Ok
}

func (f *Function) Truthy() (bool, Completion) { return true, Ok }
