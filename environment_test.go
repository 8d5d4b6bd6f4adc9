package luna

import "testing"

func Test_Environment_DeclAndGetSym(t *testing.T) {
	env := NewEnvironment(nil)
	env.DeclSym(Intern("x"), Int(5))
	v, comp := env.GetSym(Intern("x"))
	completionOk(t, comp)
	if v.I != 5 {
		t.Fatalf("GetSym(x) = %v, want 5", v.GoString())
	}
}

func Test_Environment_GetSym_UndefinedRaises(t *testing.T) {
	env := NewEnvironment(nil)
	if _, comp := env.GetSym(Intern("nope")); comp.IsOk() {
		t.Fatal("GetSym on an undeclared name should raise")
	}
}

func Test_Environment_GetSym_WalksParentChain(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.DeclSym(Intern("x"), Int(1))
	child := NewEnvironment(parent)
	v, comp := child.GetSym(Intern("x"))
	completionOk(t, comp)
	if v.I != 1 {
		t.Fatalf("child.GetSym(x) = %v, want 1 (inherited from parent)", v.GoString())
	}
}

func Test_Environment_DeclSym_ShadowsParent(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.DeclSym(Intern("x"), Int(1))
	child := NewEnvironment(parent)
	child.DeclSym(Intern("x"), Int(2))

	v, _ := child.GetSym(Intern("x"))
	if v.I != 2 {
		t.Fatalf("child.GetSym(x) = %v, want 2 (shadowed)", v.GoString())
	}
	v, _ = parent.GetSym(Intern("x"))
	if v.I != 1 {
		t.Fatalf("parent.GetSym(x) = %v, want 1 (unaffected by shadowing)", v.GoString())
	}
}

// SetSym on an already-bound ancestor updates that binding in place, it
// does not shadow it in the current scope (spec.md §4.6).
func Test_Environment_SetSym_UpdatesAncestorInPlace(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.DeclSym(Intern("x"), Int(1))
	child := NewEnvironment(parent)
	child.SetSym(Intern("x"), Int(9))

	v, _ := parent.GetSym(Intern("x"))
	if v.I != 9 {
		t.Fatalf("parent.GetSym(x) after child.SetSym = %v, want 9", v.GoString())
	}
	if child.hasSym(Intern("x")) {
		if _, ok := child.locals[Intern("x")]; ok {
			t.Fatal("SetSym on an ancestor-bound name should not create a local binding")
		}
	}
}

// SetSym on an unbound name falls back to creating it in the CURRENT scope,
// not the root (spec.md §4.6's explicit deviation from the teacher's Env.Set).
func Test_Environment_SetSym_FallsBackToCurrentScopeOnUnbound(t *testing.T) {
	root := NewEnvironment(nil)
	child := NewEnvironment(root)
	child.SetSym(Intern("y"), Int(3))

	if _, ok := root.locals[Intern("y")]; ok {
		t.Fatal("SetSym fallback-create should land in the current scope, not root")
	}
	if _, ok := child.locals[Intern("y")]; !ok {
		t.Fatal("SetSym fallback-create should have created a binding in the current scope")
	}
}

func Test_Environment_ObjectProtocol_GetSetDeclHas(t *testing.T) {
	env := NewEnvironment(nil)
	key := Sym(Intern("z"))
	if _, comp := env.Decl(key, Int(4)); !comp.IsOk() {
		t.Fatalf("Decl failed: %s", comp.Value.GoString())
	}
	has, comp := env.Has(key)
	completionOk(t, comp)
	if !has {
		t.Fatal("Has(z) should be true after Decl")
	}
	v, comp := env.Get(key)
	completionOk(t, comp)
	if v.I != 4 {
		t.Fatalf("Get(z) = %v, want 4", v.GoString())
	}
	if _, comp := env.Set(key, Int(8)); !comp.IsOk() {
		t.Fatalf("Set failed: %s", comp.Value.GoString())
	}
	v, _ = env.Get(key)
	if v.I != 8 {
		t.Fatalf("Get(z) after Set = %v, want 8", v.GoString())
	}
}

func Test_Environment_Eq_NotEquatable(t *testing.T) {
	env := NewEnvironment(nil)
	if _, comp := env.Eq(ObjVal(env)); comp.IsOk() {
		t.Fatal("Environment.Eq should raise (not equatable), per spec.md §4.6")
	}
}

func Test_Environment_Truthy(t *testing.T) {
	env := NewEnvironment(nil)
	truthy, comp := env.Truthy()
	completionOk(t, comp)
	if !truthy {
		t.Fatal("an Environment value should always be truthy")
	}
}
