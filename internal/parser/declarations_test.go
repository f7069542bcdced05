package parser

import (
	"testing"

	"github.com/veld-lang/veld/internal/ast"
)

// parseModuleClean parses a module and fails the test on any
// diagnostic.
func parseModuleClean(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, diags := ParseModule(src, "test.veld")
	if len(diags) != 0 {
		t.Fatalf("ParseModule diagnostics: %v", diags)
	}
	return mod
}

func singleItem[T ast.Stmt](t *testing.T, src string) T {
	t.Helper()
	mod := parseModuleClean(t, src)
	if len(mod.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(mod.Items))
	}
	item, ok := mod.Items[0].(T)
	if !ok {
		t.Fatalf("item = %T, want %T", mod.Items[0], item)
	}
	return item
}

func TestLetStatement(t *testing.T) {
	t.Run("simple binding with type and init", func(t *testing.T) {
		let := singleItem[*ast.LetStmt](t, "let x: i32 = 42;")
		if let.Mut != ast.MutLet {
			t.Errorf("mut = %v, want let", let.Mut)
		}
		if let.Type == nil || let.Init == nil {
			t.Error("missing type or init")
		}
		if _, ok := let.Pat.(*ast.BindingPattern); !ok {
			t.Errorf("pattern = %T, want binding", let.Pat)
		}
	})

	t.Run("var and const mutability", func(t *testing.T) {
		if got := singleItem[*ast.LetStmt](t, "var n = 0;").Mut; got != ast.MutVar {
			t.Errorf("mut = %v, want var", got)
		}
		if got := singleItem[*ast.LetStmt](t, "const K = 1;").Mut; got != ast.MutConst {
			t.Errorf("mut = %v, want const", got)
		}
	})

	t.Run("tuple destructuring", func(t *testing.T) {
		let := singleItem[*ast.LetStmt](t, "let (a, b) = (1, 2)")
		tp, ok := let.Pat.(*ast.TuplePattern)
		if !ok {
			t.Fatalf("pattern = %T, want tuple", let.Pat)
		}
		if len(tp.Elems) != 2 {
			t.Errorf("got %d elements, want 2", len(tp.Elems))
		}
		if _, ok := let.Init.(*ast.TupleLit); !ok {
			t.Errorf("init = %T, want tuple literal", let.Init)
		}
	})

	t.Run("pub visibility", func(t *testing.T) {
		if !singleItem[*ast.LetStmt](t, "pub let shared = 1;").IsPub {
			t.Error("IsPub not set")
		}
	})
}

func TestFnDeclaration(t *testing.T) {
	t.Run("full signature", func(t *testing.T) {
		fn := singleItem[*ast.FnDecl](t, "fn clamp<T: Ord>(v: T, lo: T = min(), hi: T) -> T { v }")
		if fn.Name.Name != "clamp" {
			t.Errorf("name = %q", fn.Name.Name)
		}
		if len(fn.Generics) != 1 || len(fn.Generics[0].Bounds) != 1 {
			t.Errorf("generics = %v", fn.Generics)
		}
		if len(fn.Params) != 3 {
			t.Fatalf("got %d params, want 3", len(fn.Params))
		}
		if fn.Params[1].Default == nil {
			t.Error("param lo missing default")
		}
		if fn.ReturnType == nil || fn.Body == nil {
			t.Error("missing return type or body")
		}
	})

	t.Run("async function", func(t *testing.T) {
		fn := singleItem[*ast.FnDecl](t, "async fn load() { await fetch() }")
		if !fn.IsAsync {
			t.Error("IsAsync not set")
		}
	})

	t.Run("pub async function", func(t *testing.T) {
		fn := singleItem[*ast.FnDecl](t, "pub async fn go() {}")
		if !fn.IsPub || !fn.IsAsync {
			t.Errorf("IsPub=%v IsAsync=%v, want both", fn.IsPub, fn.IsAsync)
		}
	})
}

func TestStructDeclaration(t *testing.T) {
	t.Run("named fields", func(t *testing.T) {
		st := singleItem[*ast.StructDecl](t, "struct Point { x: f64, y: f64 = 0.0 }")
		if st.Kind != ast.StructNamed {
			t.Errorf("kind = %v", st.Kind)
		}
		if len(st.Fields) != 2 {
			t.Fatalf("got %d fields, want 2", len(st.Fields))
		}
		if st.Fields[1].Default == nil {
			t.Error("field y missing default")
		}
	})

	t.Run("tuple struct", func(t *testing.T) {
		st := singleItem[*ast.StructDecl](t, "struct Pair(i32, pub i32);")
		if st.Kind != ast.StructTuple {
			t.Errorf("kind = %v", st.Kind)
		}
		if len(st.Fields) != 2 || st.Fields[0].Name != nil {
			t.Errorf("fields = %v", st.Fields)
		}
		if !st.Fields[1].IsPub {
			t.Error("second field should be pub")
		}
	})

	t.Run("unit struct", func(t *testing.T) {
		st := singleItem[*ast.StructDecl](t, "struct Marker;")
		if st.Kind != ast.StructUnit || len(st.Fields) != 0 {
			t.Errorf("kind = %v fields = %d", st.Kind, len(st.Fields))
		}
	})

	t.Run("generic struct", func(t *testing.T) {
		st := singleItem[*ast.StructDecl](t, "struct Wrap<T> { inner: T }")
		if len(st.Generics) != 1 {
			t.Errorf("generics = %v", st.Generics)
		}
	})
}

func TestEnumDeclaration(t *testing.T) {
	src := `enum Shape {
		Empty,
		Circle(f64),
		Rect { w: f64, h: f64 },
		Magic = 42,
	}`
	en := singleItem[*ast.EnumDecl](t, src)
	if len(en.Variants) != 4 {
		t.Fatalf("got %d variants, want 4", len(en.Variants))
	}
	if en.Variants[0].Kind != ast.VariantUnit {
		t.Errorf("Empty kind = %v", en.Variants[0].Kind)
	}
	if en.Variants[1].Kind != ast.VariantTuple || len(en.Variants[1].Fields) != 1 {
		t.Errorf("Circle = %v", en.Variants[1])
	}
	if en.Variants[2].Kind != ast.VariantStruct || len(en.Variants[2].Fields) != 2 {
		t.Errorf("Rect = %v", en.Variants[2])
	}
	if en.Variants[3].Discriminant == nil {
		t.Error("Magic missing discriminant")
	}
}

func TestClassDeclaration(t *testing.T) {
	src := `class Counter extends Base {
		var count: i32 = 0
		let name: String
		const MAX = 100;
		static let registry = make();

		new(start: i32) { count = start }

		@deprecated
		@route("/inc")
		pub fn increment() { count += 1 }

		async fn sync() { await push() }
	}`
	cl := singleItem[*ast.ClassDecl](t, src)
	if cl.Extends == nil {
		t.Error("missing extends")
	}
	if len(cl.Members) != 7 {
		t.Fatalf("got %d members, want 7", len(cl.Members))
	}

	field, ok := cl.Members[0].(*ast.FieldDef)
	if !ok || !field.Mutable {
		t.Errorf("member 0 = %v, want mutable field", cl.Members[0])
	}
	if lf, ok := cl.Members[1].(*ast.FieldDef); !ok || lf.Mutable {
		t.Errorf("member 1 = %v, want immutable field", cl.Members[1])
	}
	if _, ok := cl.Members[2].(*ast.ConstMember); !ok {
		t.Errorf("member 2 = %T, want const", cl.Members[2])
	}
	if sf, ok := cl.Members[3].(*ast.FieldDef); !ok || !sf.IsStatic {
		t.Errorf("member 3 = %v, want static field", cl.Members[3])
	}
	ctor, ok := cl.Members[4].(*ast.CtorDecl)
	if !ok || len(ctor.Params) != 1 {
		t.Errorf("member 4 = %v, want constructor", cl.Members[4])
	}
	inc, ok := cl.Members[5].(*ast.FnDecl)
	if !ok {
		t.Fatalf("member 5 = %T, want method", cl.Members[5])
	}
	if !inc.IsPub || len(inc.Decorators) != 2 {
		t.Errorf("increment pub=%v decorators=%d", inc.IsPub, len(inc.Decorators))
	}
	if !inc.Decorators[1].HasArgs {
		t.Error("@route should carry arguments")
	}
	if m, ok := cl.Members[6].(*ast.FnDecl); !ok || !m.IsAsync {
		t.Errorf("member 6 = %v, want async method", cl.Members[6])
	}
}

func TestTraitDeclaration(t *testing.T) {
	src := `trait Container<T> {
		type Item;
		fn get(i: i32) -> T;
		fn len() -> i32 { 0 }
	}`
	tr := singleItem[*ast.TraitDecl](t, src)
	if len(tr.AssocTypes) != 1 {
		t.Errorf("assoc types = %d, want 1", len(tr.AssocTypes))
	}
	if len(tr.Methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(tr.Methods))
	}
	if tr.Methods[0].Body != nil {
		t.Error("signature-only method should have nil body")
	}
	if tr.Methods[1].Body == nil {
		t.Error("default method should have a body")
	}
}

func TestInterfaceIsTraitAlias(t *testing.T) {
	tr := singleItem[*ast.TraitDecl](t, "interface Show { fn show() -> String; }")
	if tr.Name.Name != "Show" {
		t.Errorf("name = %q", tr.Name.Name)
	}
}

func TestImplDeclaration(t *testing.T) {
	t.Run("trait for target", func(t *testing.T) {
		im := singleItem[*ast.ImplDecl](t, "impl<T> Show for Vec<T> { fn show() -> String { s } }")
		if im.Trait == nil || im.Target == nil {
			t.Fatal("missing trait or target")
		}
		if len(im.Generics) != 1 || len(im.Methods) != 1 {
			t.Errorf("generics=%d methods=%d", len(im.Generics), len(im.Methods))
		}
	})

	t.Run("inherent impl", func(t *testing.T) {
		im := singleItem[*ast.ImplDecl](t, "impl Point { fn norm() -> f64 { 0.0 } }")
		if im.Trait != nil {
			t.Errorf("trait = %v, want nil", im.Trait)
		}
	})
}

func TestTypeAlias(t *testing.T) {
	ta := singleItem[*ast.TypeAliasDecl](t, "type Pairs<T> = [(T, T)];")
	if len(ta.Generics) != 1 {
		t.Errorf("generics = %d, want 1", len(ta.Generics))
	}
	if _, ok := ta.Aliased.(*ast.SliceType); !ok {
		t.Errorf("aliased = %T, want slice type", ta.Aliased)
	}
}

func TestModuleAndUse(t *testing.T) {
	t.Run("nested module", func(t *testing.T) {
		md := singleItem[*ast.ModuleDecl](t, "module geometry { struct Point { x: f64 } }")
		if len(md.Items) != 1 {
			t.Errorf("items = %d, want 1", len(md.Items))
		}
	})

	t.Run("use tree forms", func(t *testing.T) {
		ud := singleItem[*ast.UseDecl](t, "use std::collections::{Map, set::Set as S, *};")
		tree := ud.Tree
		if len(tree.Segments) != 2 {
			t.Fatalf("segments = %d, want 2", len(tree.Segments))
		}
		if len(tree.Children) != 3 {
			t.Fatalf("children = %d, want 3", len(tree.Children))
		}
		if tree.Children[1].Alias == nil || tree.Children[1].Alias.Name != "S" {
			t.Errorf("child 1 alias = %v", tree.Children[1].Alias)
		}
		if !tree.Children[2].Wildcard {
			t.Error("child 2 should be wildcard")
		}
	})
}

func TestParseStatementEntry(t *testing.T) {
	stmt, diags := ParseStatement("x + 1", "test.veld")
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	if _, ok := stmt.(*ast.ExprStmt); !ok {
		t.Errorf("got %T, want *ast.ExprStmt", stmt)
	}

	_, diags = ParseStatement("let x = 1; trailing", "test.veld")
	if len(diags) == 0 {
		t.Error("want diagnostic for trailing tokens")
	}
}
