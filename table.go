// table.go: the Table object — an insertion-ordered map from Value to Value
//
// Grounded on original_source/src/lang/objects.cpp's `Table` (a `Map<Value,
// Value> _fields`) and on the teacher's `MapObject{Entries, Keys []string}`
// ordered-map pattern (interpreter.go) for the "keep insertion order
// alongside a lookup map" idiom — generalized here to Value keys rather
// than the teacher's string-only keys, since spec.md §3 requires "any
// hashable Value (including integers)".
package luna

import "strings"

// tableKey is a hashable, comparable projection of a Value suitable for use
// as a Go map key (Value itself is not comparable because of the Object
// field, which may wrap an uncomparable concrete type).
//
// Symbol and String both collapse to the same kTableStr bucket, keyed by
// their text: spec.md §2 calls Table a "string→value map" while §3 allows
// "any hashable Value (including integers)" for its keys, and a table
// literal's bare-identifier keys (`{ b: 2 }`, a Symbol) must be reachable
// through `t["b"]` (a String) — see spec.md §8 scenario 3. Treating Symbol
// and String as the same key space by name satisfies both.
type tableKeyKind int

const (
	kTableNone tableKeyKind = iota
	kTableBool
	kTableInt
	kTableNum
	kTableStr
)

type tableKey struct {
	kind tableKeyKind
	b    bool
	i    int64
	n    float64
	str  string
}

func keyOf(v Value) (tableKey, Completion) {
	switch v.Kind {
	case KindNone:
		return tableKey{kind: kTableNone}, Ok
	case KindBoolean:
		return tableKey{kind: kTableBool, b: v.B}, Ok
	case KindInteger:
		return tableKey{kind: kTableInt, i: v.I}, Ok
	case KindNumber:
		return tableKey{kind: kTableNum, n: v.N}, Ok
	case KindSymbol:
		return tableKey{kind: kTableStr, str: v.Sym.Name()}, Ok
	case KindString:
		return tableKey{kind: kTableStr, str: v.Str}, Ok
	default:
		return tableKey{}, ExceptionStr("unhashable key")
	}
}

// Table is an ordered insertion map. Keys must be hashable scalar Values
// (spec.md §3); the order slice preserves first-insertion order.
type Table struct {
	BaseObject
	fields map[tableKey]Value
	orig   map[tableKey]Value // original Value form of each key, for iteration/printing
	order  []tableKey
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{fields: map[tableKey]Value{}, orig: map[tableKey]Value{}}
}

func (t *Table) Get(key Value) (Value, Completion) {
	k, c := keyOf(key)
	if !c.IsOk() {
		return None, c
	}
	v, ok := t.fields[k]
	if !ok {
		return None, ExceptionStr("key not found")
	}
	return v, Ok
}

func (t *Table) Set(key, val Value) (Value, Completion) {
	return t.put(key, val)
}

func (t *Table) Decl(key, val Value) (Value, Completion) {
	return t.put(key, val)
}

func (t *Table) put(key, val Value) (Value, Completion) {
	k, c := keyOf(key)
	if !c.IsOk() {
		return None, c
	}
	if _, exists := t.fields[k]; !exists {
		t.order = append(t.order, k)
	}
	t.fields[k] = val
	t.orig[k] = key
	return val, Ok
}

func (t *Table) Has(key Value) (bool, Completion) {
	k, c := keyOf(key)
	if !c.IsOk() {
		return false, c
	}
	_, ok := t.fields[k]
	return ok, Ok
}

// Eq is object-authoritative per spec.md §3/§4.4: same length, same key
// membership, and pairwise-equal values (matching objects.cpp's Table::eq).
func (t *Table) Eq(other Value) (bool, Completion) {
	if other.Kind != KindObject {
		return false, Ok
	}
	ot, ok := other.Obj.(*Table)
	if !ok {
		return false, Ok
	}
	if len(t.order) != len(ot.order) {
		return false, Ok
	}
	for _, k := range t.order {
		ov, has := ot.fields[k]
		if !has {
			return false, Ok
		}
		eq, c := OpEq(t.fields[k], ov)
		if !c.IsOk() {
			return false, c
		}
		if !eq {
			return false, Ok
		}
	}
	return true, Ok
}

func (t *Table) Eval(env *Environment) (Value, Completion) {
	return None, ExceptionStr("not evaluable")
}

// Stringify renders `{k: v, k: v}` in insertion order.
func (t *Table) Stringify() (string, Completion) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range t.order {
		if i > 0 {
			b.WriteString(", ")
		}
		keyVal := t.orig[k]
		ks, c := AsStringVal(keyVal)
		if !c.IsOk() {
			return "", c
		}
		vs, c := AsStringVal(t.fields[k])
		if !c.IsOk() {
			return "", c
		}
		b.WriteString(ks)
		b.WriteString(": ")
		b.WriteString(vs)
	}
	b.WriteByte('}')
	return b.String(), Ok
}

func (t *Table) Truthy() (bool, Completion) {
	return len(t.order) > 0, Ok
}

func (t *Table) Length() (int64, Completion) {
	return int64(len(t.order)), Ok
}

// Keys returns the Values (not the internal tableKeys) in insertion order.
func (t *Table) Keys() []Value {
	out := make([]Value, len(t.order))
	for i, k := range t.order {
		out[i] = t.orig[k]
	}
	return out
}
