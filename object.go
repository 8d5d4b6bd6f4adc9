// object.go: the object protocol (the "vtable" of spec.md §2 item 3)
//
// Grounded on original_source/src/luna-lang/base.cpp's `Base` struct, which
// the C++ core inherits from and selectively overrides. Go has no virtual
// base class, so this file gives every concrete Object a BaseObject it can
// embed: BaseObject implements every protocol method with the C++ default
// ("not indexable", "not callable", …), and concrete types (Table, List,
// Environment, Function, and every AST node in ast.go) shadow only the
// methods they actually support, exactly mirroring which methods `Base`'s
// subclasses override in the original. This is the "trait/interface
// abstraction" spec.md §9 explicitly sanctions as an alternative to a
// tagged enum of object kinds.
package luna

// Object is the uniform protocol every heap-allocated Luna value
// implements: get/set/decl/has/eq/cmp/eval/call/string/boolean/len/hash.
// Every method returns a Completion alongside its result; a non-Ok
// Completion means the operation raised (almost always `exception`).
type Object interface {
	Get(key Value) (Value, Completion)
	Set(key, val Value) (Value, Completion)
	Decl(key, val Value) (Value, Completion)
	Has(key Value) (bool, Completion)
	Eq(other Value) (bool, Completion)
	Cmp(other Value) (*Symbol, Completion)
	Eval(env *Environment) (Value, Completion)
	Call(params *Table) (Value, Completion)
	Stringify() (string, Completion)
	Truthy() (bool, Completion)
	Length() (int64, Completion)
	HashCode() (uint64, Completion)
}

// BaseObject supplies the protocol's defaults. Concrete object types embed
// it and override only the methods they support; the rest keep raising the
// appropriate "not X" exception, matching base.cpp's defaulted overrides.
type BaseObject struct{}

func (BaseObject) Get(key Value) (Value, Completion) {
	return None, ExceptionStr("not indexable")
}

func (BaseObject) Set(key, val Value) (Value, Completion) {
	return None, ExceptionStr("not indexable")
}

func (BaseObject) Decl(key, val Value) (Value, Completion) {
	return None, ExceptionStr("not indexable")
}

func (BaseObject) Has(key Value) (bool, Completion) {
	return false, ExceptionStr("not indexable")
}

func (BaseObject) Eq(other Value) (bool, Completion) {
	return false, ExceptionStr("not equatable")
}

func (BaseObject) Cmp(other Value) (*Symbol, Completion) {
	return nil, ExceptionStr("not comparable")
}

func (BaseObject) Eval(env *Environment) (Value, Completion) {
	return None, ExceptionStr("not evaluable")
}

func (BaseObject) Call(params *Table) (Value, Completion) {
	return None, ExceptionStr("not callable")
}

// Stringify's default matches base.cpp's default `string()` ("{}"); nearly
// every concrete object overrides this with something more useful.
func (BaseObject) Stringify() (string, Completion) {
	return "{}", Ok
}

// Truthy's default matches base.cpp's default `boolean()` (true).
func (BaseObject) Truthy() (bool, Completion) {
	return true, Ok
}

func (BaseObject) Length() (int64, Completion) {
	return 0, ExceptionStr("not indexable")
}

func (BaseObject) HashCode() (uint64, Completion) {
	return 0, ExceptionStr("not hashable")
}
