package parser

import (
	"testing"

	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
)

// parseExprClean parses an expression and fails the test on any
// diagnostic.
func parseExprClean(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, diags := ParseExpression(src, "test.veld")
	if len(diags) != 0 {
		t.Fatalf("ParseExpression(%q) diagnostics: %v", src, diags)
	}
	if expr == nil {
		t.Fatalf("ParseExpression(%q) returned nil", src)
	}
	return expr
}

func asBinary(t *testing.T, e ast.Expr, op ast.BinaryOp) *ast.Binary {
	t.Helper()
	bin, ok := e.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T (%s), want *ast.Binary", e, e)
	}
	if bin.Op != op {
		t.Fatalf("op = %v, want %v", bin.Op, op)
	}
	return bin
}

func identName(t *testing.T, e ast.Expr) string {
	t.Helper()
	id, ok := e.(*ast.Identifier)
	if !ok {
		t.Fatalf("got %T (%s), want *ast.Identifier", e, e)
	}
	return id.Name
}

func TestBinaryPrecedence(t *testing.T) {
	t.Run("multiplication binds tighter than addition", func(t *testing.T) {
		add := asBinary(t, parseExprClean(t, "a + b * c"), ast.OpAdd)
		if identName(t, add.Left) != "a" {
			t.Errorf("left = %s, want a", add.Left)
		}
		mul := asBinary(t, add.Right, ast.OpMul)
		if identName(t, mul.Left) != "b" || identName(t, mul.Right) != "c" {
			t.Errorf("right = %s, want b * c", add.Right)
		}
	})

	t.Run("same level associates left", func(t *testing.T) {
		outer := asBinary(t, parseExprClean(t, "a - b - c"), ast.OpSub)
		asBinary(t, outer.Left, ast.OpSub)
		if identName(t, outer.Right) != "c" {
			t.Errorf("right = %s, want c", outer.Right)
		}
	})

	t.Run("power associates right", func(t *testing.T) {
		outer := asBinary(t, parseExprClean(t, "a ** b ** c"), ast.OpPow)
		if identName(t, outer.Left) != "a" {
			t.Errorf("left = %s, want a", outer.Left)
		}
		asBinary(t, outer.Right, ast.OpPow)
	})

	t.Run("unary binds tighter than power", func(t *testing.T) {
		pow := asBinary(t, parseExprClean(t, "-a ** b"), ast.OpPow)
		un, ok := pow.Left.(*ast.Unary)
		if !ok || un.Op != ast.OpNeg {
			t.Fatalf("left = %s, want -a", pow.Left)
		}
	})

	t.Run("comparison below bitwise or", func(t *testing.T) {
		lt := asBinary(t, parseExprClean(t, "a | b < c"), ast.OpLt)
		asBinary(t, lt.Left, ast.OpBitOr)
	})

	t.Run("shift between additive and bitand", func(t *testing.T) {
		and := asBinary(t, parseExprClean(t, "a << b + c & d"), ast.OpBitAnd)
		shl := asBinary(t, and.Left, ast.OpShl)
		asBinary(t, shl.Right, ast.OpAdd)
	})

	t.Run("logical and binds tighter than or", func(t *testing.T) {
		or := asBinary(t, parseExprClean(t, "a || b && c"), ast.OpOr)
		asBinary(t, or.Right, ast.OpAnd)
	})

	t.Run("coalesce associates right", func(t *testing.T) {
		outer := asBinary(t, parseExprClean(t, "a ?? b ?? c"), ast.OpCoalesce)
		asBinary(t, outer.Right, ast.OpCoalesce)
	})

	t.Run("range binds looser than comparison operand arithmetic", func(t *testing.T) {
		rng := asBinary(t, parseExprClean(t, "0..n + 1"), ast.OpRange)
		asBinary(t, rng.Right, ast.OpAdd)
	})
}

func TestAssignment(t *testing.T) {
	t.Run("assignment associates right", func(t *testing.T) {
		outer, ok := parseExprClean(t, "a = b = c").(*ast.Assign)
		if !ok {
			t.Fatal("want *ast.Assign")
		}
		if identName(t, outer.Target) != "a" {
			t.Errorf("target = %s, want a", outer.Target)
		}
		inner, ok := outer.Value.(*ast.Assign)
		if !ok {
			t.Fatalf("value = %T, want nested assign", outer.Value)
		}
		if identName(t, inner.Target) != "b" || identName(t, inner.Value) != "c" {
			t.Errorf("inner = %s", inner)
		}
	})

	t.Run("compound assignment operators", func(t *testing.T) {
		tests := []struct {
			src string
			op  ast.AssignOp
		}{
			{"a += b", ast.AssignAdd},
			{"a -= b", ast.AssignSub},
			{"a *= b", ast.AssignMul},
			{"a <<= b", ast.AssignShl},
			{"a >>= b", ast.AssignShr},
		}
		for _, tt := range tests {
			asg, ok := parseExprClean(t, tt.src).(*ast.Assign)
			if !ok {
				t.Fatalf("%q: want *ast.Assign", tt.src)
			}
			if asg.Op != tt.op {
				t.Errorf("%q: op = %v, want %v", tt.src, asg.Op, tt.op)
			}
		}
	})
}

func TestPipelineRewrite(t *testing.T) {
	t.Run("bare callee gains one argument", func(t *testing.T) {
		call, ok := parseExprClean(t, "x |> double").(*ast.Call)
		if !ok {
			t.Fatal("want *ast.Call")
		}
		if identName(t, call.Callee) != "double" {
			t.Errorf("callee = %s", call.Callee)
		}
		if len(call.Args) != 1 || identName(t, call.Args[0]) != "x" {
			t.Errorf("args = %v, want [x]", call.Args)
		}
	})

	t.Run("existing arguments shift right", func(t *testing.T) {
		call, ok := parseExprClean(t, "x |> add(y)").(*ast.Call)
		if !ok {
			t.Fatal("want *ast.Call")
		}
		if len(call.Args) != 2 {
			t.Fatalf("got %d args, want 2", len(call.Args))
		}
		if identName(t, call.Args[0]) != "x" || identName(t, call.Args[1]) != "y" {
			t.Errorf("args = %v, want [x y]", call.Args)
		}
	})

	t.Run("chain stays left associative", func(t *testing.T) {
		outer, ok := parseExprClean(t, "x |> f |> g").(*ast.Call)
		if !ok {
			t.Fatal("want *ast.Call")
		}
		if identName(t, outer.Callee) != "g" {
			t.Errorf("outer callee = %s, want g", outer.Callee)
		}
		inner, ok := outer.Args[0].(*ast.Call)
		if !ok || identName(t, inner.Callee) != "f" {
			t.Fatalf("inner = %s, want f(x)", outer.Args[0])
		}
	})

	t.Run("no binary pipeline node survives", func(t *testing.T) {
		expr := parseExprClean(t, "a |> f(b) |> g")
		ast.Inspect(expr, func(n ast.Node) bool {
			if bin, ok := n.(*ast.Binary); ok {
				t.Errorf("unexpected binary node %v in pipeline rewrite", bin.Op)
			}
			return true
		})
	})
}

func TestCastAndTypeTest(t *testing.T) {
	cast, ok := parseExprClean(t, "x as i64").(*ast.Cast)
	if !ok {
		t.Fatal("want *ast.Cast")
	}
	if identName(t, cast.X) != "x" {
		t.Errorf("operand = %s", cast.X)
	}

	test, ok := parseExprClean(t, "shape is Circle").(*ast.TypeTest)
	if !ok {
		t.Fatal("want *ast.TypeTest")
	}
	if identName(t, test.X) != "shape" {
		t.Errorf("operand = %s", test.X)
	}

	// in parses as a plain binary at the same level.
	asBinary(t, parseExprClean(t, "key in map"), ast.OpIn)
}

func TestPostfixChain(t *testing.T) {
	expr := parseExprClean(t, "obj.field.method(1)[2]")
	idx, ok := expr.(*ast.Index)
	if !ok {
		t.Fatalf("got %T, want *ast.Index", expr)
	}
	mc, ok := idx.Receiver.(*ast.MethodCall)
	if !ok {
		t.Fatalf("got %T, want *ast.MethodCall", idx.Receiver)
	}
	if mc.Method.Name != "method" || len(mc.Args) != 1 {
		t.Errorf("method call = %s", mc)
	}
	fa, ok := mc.Receiver.(*ast.FieldAccess)
	if !ok || fa.Field.Name != "field" {
		t.Fatalf("receiver = %s, want obj.field", mc.Receiver)
	}
}

func TestGenericVersusComparison(t *testing.T) {
	t.Run("turbofish path call", func(t *testing.T) {
		call, ok := parseExprClean(t, "Vec::<i32>::new()").(*ast.Call)
		if !ok {
			t.Fatal("want *ast.Call")
		}
		path, ok := call.Callee.(*ast.Path)
		if !ok {
			t.Fatalf("callee = %T, want *ast.Path", call.Callee)
		}
		if len(path.Segments) != 2 {
			t.Fatalf("got %d segments, want 2", len(path.Segments))
		}
		if len(path.Segments[0].Generics) != 1 {
			t.Errorf("Vec segment generics = %v, want one", path.Segments[0].Generics)
		}
	})

	t.Run("angle brackets commit on path continuation", func(t *testing.T) {
		call, ok := parseExprClean(t, "Vec<i32>::new()").(*ast.Call)
		if !ok {
			t.Fatal("want *ast.Call")
		}
		path, ok := call.Callee.(*ast.Path)
		if !ok {
			t.Fatalf("callee = %T, want *ast.Path", call.Callee)
		}
		if len(path.Segments[0].Generics) != 1 {
			t.Errorf("generics = %v, want one", path.Segments[0].Generics)
		}
	})

	t.Run("plain less-than stays comparison", func(t *testing.T) {
		lt := asBinary(t, parseExprClean(t, "a < b"), ast.OpLt)
		if identName(t, lt.Left) != "a" || identName(t, lt.Right) != "b" {
			t.Errorf("got %s", lt)
		}
	})

	t.Run("chained comparison stays comparison", func(t *testing.T) {
		// a < b > (c) would also shape-match generics; the follow-set
		// check keeps it a comparison chain.
		asBinary(t, parseExprClean(t, "a < b && c > d"), ast.OpAnd)
	})

	t.Run("committed turbofish failure reports resolution", func(t *testing.T) {
		_, diags := ParseExpression("foo::<i32(0)", "test.veld")
		found := false
		for _, d := range diags {
			if d.Kind == diag.AmbiguityResolutionFailure {
				found = true
			}
		}
		if !found {
			t.Errorf("diagnostics = %v, want AmbiguityResolutionFailure", diags)
		}
	})
}

func TestNestedGenericsShiftSplit(t *testing.T) {
	stmt, diags := ParseStatement("let m: Map<String, Vec<i32>> = make();", "test.veld")
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	let, ok := stmt.(*ast.LetStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.LetStmt", stmt)
	}
	named, ok := let.Type.(*ast.NamedType)
	if !ok {
		t.Fatalf("type = %T, want *ast.NamedType", let.Type)
	}
	if len(named.Path.Segments[0].Generics) != 2 {
		t.Errorf("Map generics = %d, want 2", len(named.Path.Segments[0].Generics))
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.LiteralKind
	}{
		{"42", ast.LitInt},
		{"0xFF", ast.LitInt},
		{"3.5", ast.LitFloat},
		{`"hi"`, ast.LitString},
		{`r"raw"`, ast.LitRawString},
		{`b"bytes"`, ast.LitByteString},
		{"'x'", ast.LitChar},
		{"true", ast.LitBool},
		{"()", ast.LitUnit},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lit, ok := parseExprClean(t, tt.src).(*ast.Literal)
			if !ok {
				t.Fatalf("want *ast.Literal")
			}
			if lit.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", lit.Kind, tt.kind)
			}
		})
	}

	t.Run("int value decodes radix and grouping", func(t *testing.T) {
		lit := parseExprClean(t, "1_0_0").(*ast.Literal)
		if lit.Value.(uint64) != 100 {
			t.Errorf("value = %v, want 100", lit.Value)
		}
		lit = parseExprClean(t, "0b1000").(*ast.Literal)
		if lit.Value.(uint64) != 8 {
			t.Errorf("value = %v, want 8", lit.Value)
		}
	})

	t.Run("suffix survives on the node", func(t *testing.T) {
		lit := parseExprClean(t, "42u8").(*ast.Literal)
		if lit.Suffix != "u8" || lit.Value.(uint64) != 42 {
			t.Errorf("got value %v suffix %q", lit.Value, lit.Suffix)
		}
	})

	t.Run("escapes decode", func(t *testing.T) {
		lit := parseExprClean(t, `"a\nb\t\u{1F600}"`).(*ast.Literal)
		if lit.Value.(string) != "a\nb\t\U0001F600" {
			t.Errorf("value = %q", lit.Value)
		}
	})
}

func TestInterpolatedStringParts(t *testing.T) {
	t.Run("fragment hole fragment", func(t *testing.T) {
		is, ok := parseExprClean(t, `"Hello, {name}!"`).(*ast.InterpolatedString)
		if !ok {
			t.Fatal("want *ast.InterpolatedString")
		}
		if len(is.Parts) != 3 {
			t.Fatalf("got %d parts, want 3", len(is.Parts))
		}
		first, ok := is.Parts[0].(*ast.Literal)
		if !ok || first.Value.(string) != "Hello, " {
			t.Errorf("part 0 = %s", is.Parts[0])
		}
		if identName(t, is.Parts[1]) != "name" {
			t.Errorf("part 1 = %s", is.Parts[1])
		}
	})

	t.Run("hole holds a full expression", func(t *testing.T) {
		is := parseExprClean(t, `"sum: {a + b * c}"`).(*ast.InterpolatedString)
		asBinary(t, is.Parts[1], ast.OpAdd)
	})

	t.Run("nested interpolated string", func(t *testing.T) {
		is := parseExprClean(t, `"outer {"{inner}"} tail"`).(*ast.InterpolatedString)
		if len(is.Parts) != 3 {
			t.Fatalf("got %d parts, want 3", len(is.Parts))
		}
		nested, ok := is.Parts[1].(*ast.InterpolatedString)
		if !ok {
			t.Fatalf("part 1 = %T, want nested *ast.InterpolatedString", is.Parts[1])
		}
		if len(nested.Parts) != 1 || identName(t, nested.Parts[0]) != "inner" {
			t.Errorf("nested parts = %v", nested.Parts)
		}
	})
}

func TestClosures(t *testing.T) {
	t.Run("pipe form", func(t *testing.T) {
		lam, ok := parseExprClean(t, "|x, y| x + y").(*ast.Lambda)
		if !ok {
			t.Fatal("want *ast.Lambda")
		}
		if len(lam.Params) != 2 {
			t.Fatalf("got %d params, want 2", len(lam.Params))
		}
		asBinary(t, lam.Body, ast.OpAdd)
	})

	t.Run("empty pipe form", func(t *testing.T) {
		lam, ok := parseExprClean(t, "|| 42").(*ast.Lambda)
		if !ok {
			t.Fatal("want *ast.Lambda")
		}
		if len(lam.Params) != 0 {
			t.Errorf("got %d params, want 0", len(lam.Params))
		}
	})

	t.Run("typed pipe form with block", func(t *testing.T) {
		lam := parseExprClean(t, "|x: i32| -> i32 { x * 2 }").(*ast.Lambda)
		if lam.ReturnType == nil || lam.Params[0].Type == nil {
			t.Error("missing type annotations")
		}
		if _, ok := lam.Body.(*ast.BlockExpr); !ok {
			t.Errorf("body = %T, want block", lam.Body)
		}
	})

	t.Run("arrow form with parens", func(t *testing.T) {
		lam, ok := parseExprClean(t, "(a, b) => a * b").(*ast.Lambda)
		if !ok {
			t.Fatal("want *ast.Lambda")
		}
		if len(lam.Params) != 2 {
			t.Errorf("got %d params, want 2", len(lam.Params))
		}
	})

	t.Run("arrow form bare identifier", func(t *testing.T) {
		lam, ok := parseExprClean(t, "x => x + 1").(*ast.Lambda)
		if !ok {
			t.Fatal("want *ast.Lambda")
		}
		if len(lam.Params) != 1 {
			t.Errorf("got %d params, want 1", len(lam.Params))
		}
	})

	t.Run("empty arrow form", func(t *testing.T) {
		if _, ok := parseExprClean(t, "() => 0").(*ast.Lambda); !ok {
			t.Fatal("want *ast.Lambda")
		}
	})

	t.Run("async closure", func(t *testing.T) {
		lam, ok := parseExprClean(t, "async |x| x").(*ast.Lambda)
		if !ok {
			t.Fatal("want *ast.Lambda")
		}
		if !lam.IsAsync {
			t.Error("IsAsync not set")
		}
	})

	t.Run("parenthesized group is not a lambda", func(t *testing.T) {
		asBinary(t, parseExprClean(t, "(a + b)"), ast.OpAdd)
	})

	t.Run("tuple is not a lambda", func(t *testing.T) {
		tup, ok := parseExprClean(t, "(a, b)").(*ast.TupleLit)
		if !ok {
			t.Fatal("want *ast.TupleLit")
		}
		if len(tup.Elems) != 2 {
			t.Errorf("got %d elems, want 2", len(tup.Elems))
		}
	})
}

func TestControlFlowExpressions(t *testing.T) {
	t.Run("if else chains", func(t *testing.T) {
		ife, ok := parseExprClean(t, "if a { 1 } else if b { 2 } else { 3 }").(*ast.IfExpr)
		if !ok {
			t.Fatal("want *ast.IfExpr")
		}
		if _, ok := ife.Else.(*ast.IfExpr); !ok {
			t.Errorf("else = %T, want nested if", ife.Else)
		}
	})

	t.Run("subject brace opens body not struct literal", func(t *testing.T) {
		ife := parseExprClean(t, "if cond { x }").(*ast.IfExpr)
		if identName(t, ife.Cond) != "cond" {
			t.Errorf("cond = %s", ife.Cond)
		}
	})

	t.Run("struct literal allowed inside subject parens", func(t *testing.T) {
		ife := parseExprClean(t, "if (Point { x: 1 }).valid { y }").(*ast.IfExpr)
		fa, ok := ife.Cond.(*ast.FieldAccess)
		if !ok {
			t.Fatalf("cond = %T, want field access", ife.Cond)
		}
		if _, ok := fa.Receiver.(*ast.StructLit); !ok {
			t.Errorf("receiver = %T, want struct literal", fa.Receiver)
		}
	})

	t.Run("for over range", func(t *testing.T) {
		fe := parseExprClean(t, "for i in 0..10 { body }").(*ast.ForExpr)
		asBinary(t, fe.Iterable, ast.OpRange)
	})

	t.Run("while let destructures", func(t *testing.T) {
		we := parseExprClean(t, "while let Some(x) = it.next() { x }").(*ast.WhileExpr)
		if we.Pat == nil {
			t.Fatal("missing pattern")
		}
		if _, ok := we.Pat.(*ast.VariantPattern); !ok {
			t.Errorf("pattern = %T, want variant", we.Pat)
		}
	})

	t.Run("labeled loop with labeled break", func(t *testing.T) {
		le := parseExprClean(t, "'outer: loop { break 'outer 42 }").(*ast.LoopExpr)
		if le.Label != "outer" {
			t.Errorf("label = %q, want outer", le.Label)
		}
		br := le.Body.Tail.(*ast.BreakExpr)
		if br.Label != "outer" {
			t.Errorf("break label = %q", br.Label)
		}
		if br.Value == nil {
			t.Error("break value missing")
		}
	})

	t.Run("block tail is the value", func(t *testing.T) {
		blk := parseExprClean(t, "{ let x = 1; x + 1 }").(*ast.BlockExpr)
		if len(blk.Stmts) != 1 {
			t.Errorf("got %d stmts, want 1", len(blk.Stmts))
		}
		if blk.Tail == nil {
			t.Fatal("missing tail")
		}
		asBinary(t, blk.Tail, ast.OpAdd)
	})

	t.Run("async block", func(t *testing.T) {
		ab, ok := parseExprClean(t, "async { fetch() }").(*ast.AsyncBlock)
		if !ok {
			t.Fatal("want *ast.AsyncBlock")
		}
		if ab.Body.Tail == nil {
			t.Error("missing body tail")
		}
	})

	t.Run("spawn and await prefix", func(t *testing.T) {
		un, ok := parseExprClean(t, "await spawn work()").(*ast.Unary)
		if !ok || un.Op != ast.OpAwait {
			t.Fatalf("want await unary, got %T", un)
		}
		inner, ok := un.Operand.(*ast.Unary)
		if !ok || inner.Op != ast.OpSpawn {
			t.Fatalf("want spawn unary inside")
		}
	})
}

func TestMatchExpression(t *testing.T) {
	src := `match msg {
		Quit => 0,
		Move { x, y } if x > 0 => x + y,
		Write(text) | Append(text) => text.len(),
		_ => -1,
	}`
	me, ok := parseExprClean(t, src).(*ast.MatchExpr)
	if !ok {
		t.Fatal("want *ast.MatchExpr")
	}
	if len(me.Arms) != 4 {
		t.Fatalf("got %d arms, want 4", len(me.Arms))
	}
	if me.Arms[1].Guard == nil {
		t.Error("arm 1 guard missing")
	}
	if _, ok := me.Arms[1].Pat.(*ast.StructPattern); !ok {
		t.Errorf("arm 1 pattern = %T, want struct", me.Arms[1].Pat)
	}
	or, ok := me.Arms[2].Pat.(*ast.OrPattern)
	if !ok {
		t.Fatalf("arm 2 pattern = %T, want or", me.Arms[2].Pat)
	}
	if len(or.Alts) != 2 {
		t.Errorf("got %d alternatives, want 2", len(or.Alts))
	}
	if _, ok := me.Arms[3].Pat.(*ast.WildcardPattern); !ok {
		t.Errorf("arm 3 pattern = %T, want wildcard", me.Arms[3].Pat)
	}
}

func TestLiteralAndRangePatterns(t *testing.T) {
	src := `match x {
		-1 => a,
		0..10 => b,
		'a'..='z' => c,
		_ => d,
	}`
	me, ok := parseExprClean(t, src).(*ast.MatchExpr)
	if !ok {
		t.Fatal("want *ast.MatchExpr")
	}
	if len(me.Arms) != 4 {
		t.Fatalf("got %d arms, want 4", len(me.Arms))
	}
	lit, ok := me.Arms[0].Pat.(*ast.LiteralPattern)
	if !ok {
		t.Fatalf("arm 0 pattern = %T, want literal", me.Arms[0].Pat)
	}
	if !lit.Negated || lit.Value.Kind != ast.LitInt {
		t.Errorf("arm 0 = %+v, want negated int literal", lit)
	}
	rng, ok := me.Arms[1].Pat.(*ast.RangePattern)
	if !ok {
		t.Fatalf("arm 1 pattern = %T, want range", me.Arms[1].Pat)
	}
	if rng.Inclusive {
		t.Error("arm 1 range should be exclusive")
	}
	if _, ok := rng.Low.(*ast.Literal); !ok {
		t.Errorf("arm 1 low = %T, want *ast.Literal", rng.Low)
	}
	chars, ok := me.Arms[2].Pat.(*ast.RangePattern)
	if !ok {
		t.Fatalf("arm 2 pattern = %T, want range", me.Arms[2].Pat)
	}
	if !chars.Inclusive {
		t.Error("arm 2 range should be inclusive")
	}
	if low, ok := chars.Low.(*ast.Literal); !ok || low.Kind != ast.LitChar {
		t.Errorf("arm 2 low = %T, want char literal", chars.Low)
	}
}

func TestConstructorPathSegment(t *testing.T) {
	call, ok := parseExprClean(t, "Point::new(1, 2)").(*ast.Call)
	if !ok {
		t.Fatal("want *ast.Call")
	}
	path, ok := call.Callee.(*ast.Path)
	if !ok {
		t.Fatalf("callee = %T, want *ast.Path", call.Callee)
	}
	if got := path.Segments[len(path.Segments)-1].Name.Name; got != "new" {
		t.Errorf("last segment = %q, want new", got)
	}
	if len(call.Args) != 2 {
		t.Errorf("got %d args, want 2", len(call.Args))
	}
}

func TestTryCatchFinally(t *testing.T) {
	t.Run("full form", func(t *testing.T) {
		te, ok := parseExprClean(t, "try { risky() } catch (e) { log(e) } finally { done() }").(*ast.TryExpr)
		if !ok {
			t.Fatal("want *ast.TryExpr")
		}
		if len(te.Catches) != 1 || te.Finally == nil {
			t.Errorf("catches = %d, finally = %v", len(te.Catches), te.Finally)
		}
	})

	t.Run("dangling try reports but keeps tree", func(t *testing.T) {
		expr, diags := ParseExpression("try { risky() }", "test.veld")
		if _, ok := expr.(*ast.TryExpr); !ok {
			t.Fatalf("got %T, want *ast.TryExpr", expr)
		}
		if len(diags) != 1 || diags[0].Kind != diag.DanglingTry {
			t.Errorf("diagnostics = %v, want one DanglingTry", diags)
		}
	})
}

func TestStructLiteral(t *testing.T) {
	sl, ok := parseExprClean(t, "Point { x: 1, y, ..base }").(*ast.StructLit)
	if !ok {
		t.Fatal("want *ast.StructLit")
	}
	if len(sl.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(sl.Fields))
	}
	if sl.Fields[0].Value == nil {
		t.Error("field x missing value")
	}
	if sl.Fields[1].Value != nil {
		t.Error("field y should be shorthand")
	}
	if sl.Rest == nil {
		t.Error("missing ..base")
	}
}

func TestCollections(t *testing.T) {
	arr, ok := parseExprClean(t, "[1, 2, 3,]").(*ast.ArrayLit)
	if !ok {
		t.Fatal("want *ast.ArrayLit")
	}
	if len(arr.Elems) != 3 {
		t.Errorf("got %d elems, want 3", len(arr.Elems))
	}
}

func TestExpectedExpressionAfterOperator(t *testing.T) {
	t.Run("dangling binary operator", func(t *testing.T) {
		expr, diags := ParseExpression("a + ", "test.veld")
		if len(diags) != 1 || diags[0].Kind != diag.ExpectedExpressionAfterOperator {
			t.Fatalf("diagnostics = %v, want one ExpectedExpressionAfterOperator", diags)
		}
		bin, ok := expr.(*ast.Binary)
		if !ok {
			t.Fatalf("got %T, want binary with placeholder", expr)
		}
		if _, ok := bin.Right.(*ast.BadExpr); !ok {
			t.Errorf("right = %T, want *ast.BadExpr", bin.Right)
		}
	})

	t.Run("dangling prefix operator", func(t *testing.T) {
		_, diags := ParseExpression("a + -", "test.veld")
		if len(diags) != 1 || diags[0].Kind != diag.ExpectedExpressionAfterOperator {
			t.Fatalf("diagnostics = %v, want one ExpectedExpressionAfterOperator", diags)
		}
	})

	t.Run("dangling operator inside delimiter", func(t *testing.T) {
		_, diags := ParseExpression("f(a + )", "test.veld")
		if len(diags) != 1 || diags[0].Kind != diag.ExpectedExpressionAfterOperator {
			t.Fatalf("diagnostics = %v, want one ExpectedExpressionAfterOperator", diags)
		}
	})
}
