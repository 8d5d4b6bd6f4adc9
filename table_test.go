package luna

import "testing"

func Test_Table_SetGetHas(t *testing.T) {
	tbl := NewTable()
	if _, comp := tbl.Set(Str("a"), Int(1)); !comp.IsOk() {
		t.Fatalf("Set failed: %s", comp.Value.GoString())
	}
	has, comp := tbl.Has(Str("a"))
	completionOk(t, comp)
	if !has {
		t.Fatal(`Has("a") should be true after Set`)
	}
	v, comp := tbl.Get(Str("a"))
	completionOk(t, comp)
	if v.I != 1 {
		t.Fatalf(`Get("a") = %v, want 1`, v.GoString())
	}
}

func Test_Table_GetMissingKey_Raises(t *testing.T) {
	tbl := NewTable()
	if _, comp := tbl.Get(Str("missing")); comp.IsOk() {
		t.Fatal(`Get("missing") should raise`)
	}
}

// Regression test for spec.md §8 scenario 3: a table-literal bare-identifier
// key (interned as a Symbol) must be reachable via string-literal indexing.
func Test_Table_SymbolKeyReachableByStringIndex(t *testing.T) {
	tbl := NewTable()
	if _, comp := tbl.put(Sym(Intern("b")), Int(2)); !comp.IsOk() {
		t.Fatalf("put failed: %s", comp.Value.GoString())
	}
	v, comp := tbl.Get(Str("b"))
	completionOk(t, comp)
	if v.I != 2 {
		t.Fatalf(`Get("b") after Symbol-keyed put = %v, want 2`, v.GoString())
	}
}

func Test_Table_StringKeyReachableBySymbolIndex(t *testing.T) {
	tbl := NewTable()
	if _, comp := tbl.put(Str("c"), Int(3)); !comp.IsOk() {
		t.Fatalf("put failed: %s", comp.Value.GoString())
	}
	v, comp := tbl.Get(Sym(Intern("c")))
	completionOk(t, comp)
	if v.I != 3 {
		t.Fatalf("Get(#c) after String-keyed put = %v, want 3", v.GoString())
	}
}

func Test_Table_IntegerKeysDistinctFromStringKeys(t *testing.T) {
	tbl := NewTable()
	tbl.put(Int(1), Str("int-one"))
	tbl.put(Str("1"), Str("string-one"))
	v, comp := tbl.Get(Int(1))
	completionOk(t, comp)
	if v.Str != "int-one" {
		t.Fatalf(`Get(1) = %q, want "int-one"`, v.Str)
	}
	v, comp = tbl.Get(Str("1"))
	completionOk(t, comp)
	if v.Str != "string-one" {
		t.Fatalf(`Get("1") = %q, want "string-one"`, v.Str)
	}
}

func Test_Table_InsertionOrderPreserved(t *testing.T) {
	tbl := NewTable()
	tbl.put(Str("z"), Int(1))
	tbl.put(Str("a"), Int(2))
	tbl.put(Str("m"), Int(3))
	keys := tbl.Keys()
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, k := range keys {
		if k.Str != want[i] {
			t.Fatalf("Keys()[%d] = %q, want %q", i, k.Str, want[i])
		}
	}
}

func Test_Table_ReassignDoesNotDuplicateOrder(t *testing.T) {
	tbl := NewTable()
	tbl.put(Str("a"), Int(1))
	tbl.put(Str("a"), Int(2))
	if len(tbl.Keys()) != 1 {
		t.Fatalf("got %d keys after reassign, want 1", len(tbl.Keys()))
	}
	v, _ := tbl.Get(Str("a"))
	if v.I != 2 {
		t.Fatalf("Get(\"a\") after reassign = %v, want 2", v.GoString())
	}
}

func Test_Table_Stringify(t *testing.T) {
	tbl := NewTable()
	tbl.put(Str("a"), Int(1))
	tbl.put(Str("b"), Int(2))
	s, comp := tbl.Stringify()
	completionOk(t, comp)
	want := "{a: 1, b: 2}"
	if s != want {
		t.Fatalf("Stringify() = %q, want %q", s, want)
	}
}

func Test_Table_Eq(t *testing.T) {
	a := NewTable()
	a.put(Str("x"), Int(1))
	b := NewTable()
	b.put(Str("x"), Int(1))
	eq, comp := a.Eq(ObjVal(b))
	completionOk(t, comp)
	if !eq {
		t.Fatal("tables with same entries should be equal")
	}

	c := NewTable()
	c.put(Str("x"), Int(2))
	eq, comp = a.Eq(ObjVal(c))
	completionOk(t, comp)
	if eq {
		t.Fatal("tables with differing values should not be equal")
	}
}

func Test_Table_Truthy(t *testing.T) {
	empty := NewTable()
	truthy, comp := empty.Truthy()
	completionOk(t, comp)
	if truthy {
		t.Fatal("empty table should be falsy")
	}
	empty.put(Str("a"), Int(1))
	truthy, comp = empty.Truthy()
	completionOk(t, comp)
	if !truthy {
		t.Fatal("non-empty table should be truthy")
	}
}

func Test_Table_Length(t *testing.T) {
	tbl := NewTable()
	tbl.put(Str("a"), Int(1))
	tbl.put(Str("b"), Int(2))
	n, comp := tbl.Length()
	completionOk(t, comp)
	if n != 2 {
		t.Fatalf("Length() = %d, want 2", n)
	}
}

func Test_Table_UnhashableKeyRaises(t *testing.T) {
	tbl := NewTable()
	if _, comp := tbl.Set(ObjVal(NewList(nil)), Int(1)); comp.IsOk() {
		t.Fatal("Set with an object key should raise")
	}
}
