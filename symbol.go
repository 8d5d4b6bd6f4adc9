// symbol.go: the interner
//
// A Symbol is a canonical, immutable handle for a name. Two symbols compare
// equal iff they are the same pointer, so Symbol can be used directly as a
// Go map key or compared with ==.
package luna

import "sync"

// Symbol is an interned name. The zero value is not a valid symbol; always
// obtain one from an Interner.
type Symbol struct {
	name string
}

// Name returns the original string this symbol was interned from.
func (s *Symbol) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Interner hands out one canonical *Symbol per distinct string. It is safe
// for concurrent use, though the evaluator itself is single-threaded.
type Interner struct {
	mu      sync.Mutex
	symbols map[string]*Symbol
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{symbols: make(map[string]*Symbol)}
}

// Intern returns the canonical *Symbol for name, creating it on first use.
func (in *Interner) Intern(name string) *Symbol {
	in.mu.Lock()
	defer in.mu.Unlock()
	if s, ok := in.symbols[name]; ok {
		return s
	}
	s := &Symbol{name: name}
	in.symbols[name] = s
	return s
}

// Well-known symbols used throughout the core: ordering tags, type tags, and
// the named parameters recognized by host builtins. These are interned once
// against a dedicated global interner so that code that never touches a
// user-supplied Interpreter (constant folding, tests) can still compare
// against them by pointer.
var wellKnown = NewInterner()

var (
	SymLess       = wellKnown.Intern("less")
	SymEquivalent = wellKnown.Intern("equivalent")
	SymGreater    = wellKnown.Intern("greater")
	SymUnordered  = wellKnown.Intern("unordered")

	SymNone    = wellKnown.Intern("None")
	SymBoolean = wellKnown.Intern("Boolean")
	SymInteger = wellKnown.Intern("Integer")
	SymNumber  = wellKnown.Intern("Number")
	SymSymbol  = wellKnown.Intern("Symbol")
	SymString  = wellKnown.Intern("String")
	SymObject  = wellKnown.Intern("Object")

	SymFrom = wellKnown.Intern("from")
	SymOf   = wellKnown.Intern("of")
)

// Intern returns the process-wide canonical symbol for name. The core uses
// a single shared interner (rather than one per Interpreter) since symbols
// are meant to compare equal across any two values that spell the same
// name, regardless of which Interpreter produced them.
func Intern(name string) *Symbol {
	return wellKnown.Intern(name)
}
