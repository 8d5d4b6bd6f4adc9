// list.go: the List object — a dense, integer-indexed sequence of Value
//
// Grounded on original_source/src/lang/objects.cpp's `List` (`Vec<Value>
// _items`; bounds-checked get/set via asIndex).
package luna

import "strings"

type List struct {
	BaseObject
	items []Value
}

// NewList wraps items (copied) in a List object.
func NewList(items []Value) *List {
	cp := make([]Value, len(items))
	copy(cp, items)
	return &List{items: cp}
}

func (l *List) Get(key Value) (Value, Completion) {
	i, c := AsIndex(key)
	if !c.IsOk() {
		return None, c
	}
	if i < 0 || i >= int64(len(l.items)) {
		return None, ExceptionStr("index out of bound")
	}
	return l.items[i], Ok
}

func (l *List) Set(key, val Value) (Value, Completion) {
	i, c := AsIndex(key)
	if !c.IsOk() {
		return None, c
	}
	if i < 0 || i >= int64(len(l.items)) {
		return None, ExceptionStr("index out of bound")
	}
	l.items[i] = val
	return val, Ok
}

// Decl has the same bounds-checked semantics as Set for List (objects.cpp:
// "decl=set" for List — lists have no notion of declaring a new slot).
func (l *List) Decl(key, val Value) (Value, Completion) {
	return l.Set(key, val)
}

func (l *List) Has(key Value) (bool, Completion) {
	i, c := AsIndex(key)
	if !c.IsOk() {
		return false, c
	}
	return i >= 0 && i < int64(len(l.items)), Ok
}

func (l *List) Eq(other Value) (bool, Completion) {
	if other.Kind != KindObject {
		return false, Ok
	}
	ol, ok := other.Obj.(*List)
	if !ok {
		return false, Ok
	}
	if len(l.items) != len(ol.items) {
		return false, Ok
	}
	for i := range l.items {
		eq, c := OpEq(l.items[i], ol.items[i])
		if !c.IsOk() {
			return false, c
		}
		if !eq {
			return false, Ok
		}
	}
	return true, Ok
}

func (l *List) Eval(env *Environment) (Value, Completion) {
	return None, ExceptionStr("not evaluable")
}

func (l *List) Stringify() (string, Completion) {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		s, c := AsStringVal(v)
		if !c.IsOk() {
			return "", c
		}
		b.WriteString(s)
	}
	b.WriteByte(']')
	return b.String(), Ok
}

func (l *List) Truthy() (bool, Completion) {
	return len(l.items) > 0, Ok
}

func (l *List) Length() (int64, Completion) {
	return int64(len(l.items)), Ok
}

// Items returns the underlying slice (not a copy).
func (l *List) Items() []Value { return l.items }
