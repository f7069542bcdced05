package parser

import (
	"strings"
	"testing"

	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
)

func countKind(diags []diag.Diagnostic, kind diag.Kind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func TestUnclosedFunctionBodyKeepsPartialAST(t *testing.T) {
	mod, diags := ParseModule("fn add(x, y) { x + y", "test.veld")
	if len(mod.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(mod.Items))
	}
	fn, ok := mod.Items[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("item = %T, want *ast.FnDecl", mod.Items[0])
	}
	if fn.Body == nil || fn.Body.Tail == nil {
		t.Fatal("best-effort body missing")
	}
	if _, ok := fn.Body.Tail.(*ast.Binary); !ok {
		t.Errorf("tail = %T, want x + y", fn.Body.Tail)
	}
	if len(diags) != 1 || diags[0].Kind != diag.UnclosedDelimiter {
		t.Errorf("diagnostics = %v, want exactly one UnclosedDelimiter", diags)
	}
}

func TestBrokenFieldKeepsSiblings(t *testing.T) {
	src := `struct Rec {
		good: i32,
		broken,
		also_good: f64,
	}`
	mod, diags := ParseModule(src, "test.veld")
	st, ok := mod.Items[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("item = %T, want *ast.StructDecl", mod.Items[0])
	}
	var names []string
	for _, f := range st.Fields {
		if f.Name != nil {
			names = append(names, f.Name.Name)
		}
	}
	if strings.Join(names, ",") != "good,also_good" {
		t.Errorf("surviving fields = %v, want good and also_good", names)
	}
	if len(diags) != 1 {
		t.Errorf("got %d diagnostics, want exactly 1: %v", len(diags), diags)
	}
}

func TestBrokenStatementDoesNotPoisonSiblings(t *testing.T) {
	src := "let a = 1;\nlet b = ** ;\nlet c = 3;"
	mod, diags := ParseModule(src, "test.veld")
	if len(diags) == 0 {
		t.Fatal("want at least one diagnostic")
	}
	var lets int
	for _, item := range mod.Items {
		if let, ok := item.(*ast.LetStmt); ok {
			if _, bad := let.Init.(*ast.BadExpr); !bad && let.Init != nil {
				lets++
			}
		}
	}
	if lets < 2 {
		t.Errorf("got %d intact let bindings, want a and c to survive", lets)
	}
}

func TestBrokenMatchArmKeepsOthers(t *testing.T) {
	src := `match v {
		1 => one,
		** => broken,
		3 => three,
	}`
	expr, diags := ParseExpression(src, "test.veld")
	me, ok := expr.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.MatchExpr", expr)
	}
	if len(me.Arms) != 2 {
		t.Errorf("got %d arms, want the 2 intact ones", len(me.Arms))
	}
	if countKind(diags, diag.InvalidPatternToken) != 1 {
		t.Errorf("diagnostics = %v, want one InvalidPatternToken", diags)
	}
}

func TestUnclosedDelimiterReportedOnce(t *testing.T) {
	_, diags := ParseExpression("f(a, b", "test.veld")
	if countKind(diags, diag.UnclosedDelimiter) != 1 {
		t.Errorf("diagnostics = %v, want exactly one UnclosedDelimiter", diags)
	}

	_, diags = ParseExpression("[1, 2", "test.veld")
	if countKind(diags, diag.UnclosedDelimiter) != 1 {
		t.Errorf("diagnostics = %v, want exactly one UnclosedDelimiter", diags)
	}
}

func TestDiagnosticsAreSortedAndBounded(t *testing.T) {
	src := "let a = ** ;\nfn f( { }\nlet z = ** ;"
	_, diags := ParseModule(src, "test.veld")
	if len(diags) == 0 {
		t.Fatal("want diagnostics")
	}
	// One diagnostic per broken construct, not per skipped token.
	if len(diags) > 6 {
		t.Errorf("got %d diagnostics, recovery is over-reporting: %v", len(diags), diags)
	}
	for i := 1; i < len(diags); i++ {
		if diags[i].Span.Start.Offset < diags[i-1].Span.Start.Offset {
			t.Errorf("diagnostics out of order: %v before %v", diags[i-1], diags[i])
		}
	}
}

func TestEveryInputProducesTree(t *testing.T) {
	// Torture inputs: the parser must terminate and hand back a module,
	// never panic or loop.
	inputs := []string{
		"",
		";;;;",
		"}}}}",
		"((((",
		"let",
		"fn",
		"match",
		"\"unterminated {hole",
		"%%%%%",
		"class { { { struct",
		"@ @ @",
	}
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			mod, _ := ParseModule(src, "test.veld")
			if mod == nil {
				t.Fatal("nil module")
			}
		})
	}
}

func TestSpanContainment(t *testing.T) {
	src := `fn area(s: Shape) -> f64 {
	match s {
		Circle(r) => 3.14 * r ** 2,
		Rect { w, h } => w * h,
		_ => 0.0,
	}
}

class Counter {
	var n: i32 = 0
	new(start: i32) { n = start }
	fn bump() { n += 1 }
}

let table = ["a", "b"] |> index
`
	mod, diags := ParseModule(src, "test.veld")
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	var checked int
	ast.Inspect(mod, func(n ast.Node) bool {
		parentSpan := n.GetSpan()
		for _, c := range ast.Children(n) {
			cs := c.GetSpan()
			if !cs.IsValid() {
				t.Errorf("%s child %s has invalid span", n, c)
				continue
			}
			if !parentSpan.ContainsSpan(cs) {
				t.Errorf("%s span %v does not contain child %s span %v", n, parentSpan, c, cs)
			}
			checked++
		}
		return true
	})
	if checked < 30 {
		t.Errorf("only %d child spans checked; tree seems too small", checked)
	}
}

func TestIndexAtFindsInnermostNode(t *testing.T) {
	src := "fn f() { g(h + 1) }"
	mod, diags := ParseModule(src, "test.veld")
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	idx := ast.BuildIndex(mod)

	offset := strings.Index(src, "h")
	node := idx.At(offset)
	id, ok := node.(*ast.Identifier)
	if !ok || id.Name != "h" {
		t.Fatalf("At(%d) = %v, want identifier h", offset, node)
	}

	// The parent chain walks back up to the module root.
	path := idx.PathTo(node)
	if len(path) == 0 || path[0] != ast.Node(mod) {
		t.Fatalf("PathTo root = %v, want module", path)
	}
	if idx.Parent(mod) != nil {
		t.Error("module root should have no parent")
	}
}
