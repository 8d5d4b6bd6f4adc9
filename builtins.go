// builtins.go: the host builtin surface (spec.md §6)
//
// Grounded on original_source/src/luna-lang/builtins.cpp (the five type
// constructors: `boolean(from:)`/`integer(from:)`/`number(from:)`/
// `symbol(from:)`/`string(from:)`, each a thin wrapper around ops.cpp's
// `as*`) and on the teacher's builtin_core.go registration idiom: each
// builtin is a NativeFunc declared directly into an Environment by name,
// rather than assembled through a separate registry type. `len`/`println`/
// `input`/`exit` are spec.md §6's host-boundary operations, absent from the
// original_source pack (its host embedding was a C++ test harness); they are
// written fresh in the same NativeFunc shape as the type constructors.
package luna

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// RegisterBuiltins declares every spec.md §6 builtin into env, reading
// input lines from stdin and writing println/prompt output to stdout. exit()
// terminates the host process directly (spec.md §6: "terminate process with
// success"), matching the teacher's cmd/msg/main.go's own direct os.Exit
// calls rather than unwinding through a Completion.
func RegisterBuiltins(env *Environment, stdout io.Writer, stdin *bufio.Reader) {
	env.DeclSym(Intern("len"), ObjVal(NewNativeFunction(
		[]Param{{Key: SymOf, Required: true}},
		func(params *Table) (Value, Completion) {
			v, c := params.Get(Sym(SymOf))
			if !c.IsOk() {
				return None, c
			}
			n, c := lengthOf(v)
			if !c.IsOk() {
				return None, c
			}
			return Int(n), Ok
		},
	)))

	fmtSym := Intern("fmt")
	env.DeclSym(Intern("println"), ObjVal(NewNativeFunction(
		[]Param{{Key: fmtSym, Required: true}},
		func(params *Table) (Value, Completion) {
			v, c := params.Get(Sym(fmtSym))
			if !c.IsOk() {
				return None, c
			}
			s, c := AsStringVal(v)
			if !c.IsOk() {
				return None, c
			}
			fmt.Fprintln(stdout, s)
			return None, Ok
		},
	)))

	promptSym := Intern("prompt")
	env.DeclSym(Intern("input"), ObjVal(NewNativeFunction(
		[]Param{{Key: promptSym, Required: true}},
		func(params *Table) (Value, Completion) {
			v, c := params.Get(Sym(promptSym))
			if !c.IsOk() {
				return None, c
			}
			s, c := AsStringVal(v)
			if !c.IsOk() {
				return None, c
			}
			fmt.Fprint(stdout, s)
			line, err := stdin.ReadString('\n')
			if err != nil && line == "" {
				return None, ExceptionStr("input: end of input")
			}
			line = trimTrailingNewline(line)
			return Str(line), Ok
		},
	)))

	env.DeclSym(Intern("exit"), ObjVal(NewNativeFunction(
		nil,
		func(params *Table) (Value, Completion) {
			os.Exit(0)
			return None, Ok
		},
	)))

	registerTypeConstructor(env, "boolean", SymBoolean)
	registerTypeConstructor(env, "integer", SymInteger)
	registerTypeConstructor(env, "number", SymNumber)
	registerTypeConstructor(env, "symbol", SymSymbol)
	registerTypeConstructor(env, "string", SymString)
}

func registerTypeConstructor(env *Environment, name string, tag *Symbol) {
	env.DeclSym(Intern(name), ObjVal(NewNativeFunction(
		[]Param{{Key: SymFrom, Required: true}},
		func(params *Table) (Value, Completion) {
			v, c := params.Get(Sym(SymFrom))
			if !c.IsOk() {
				return None, c
			}
			return As(v, tag)
		},
	)))
}

// lengthOf implements spec.md §6's `len(of:)`: strings measure their byte
// length directly (they are a scalar Kind, not an Object), everything else
// goes through the object protocol's Length.
func lengthOf(v Value) (int64, Completion) {
	if v.Kind == KindString {
		return int64(len(v.Str)), Ok
	}
	return OpLen(v)
}

func trimTrailingNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}
