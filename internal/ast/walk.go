package ast

// Children returns the direct child nodes of n in source order. The type
// switch is exhaustive over the node enumeration; a new variant that is
// not listed here simply reports no children, which the span-containment
// tests catch immediately.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		out = append(out, c)
	}
	addExpr := func(e Expr) {
		if e != nil {
			add(e)
		}
	}
	addType := func(t TypeExpr) {
		if t != nil {
			add(t)
		}
	}
	addPat := func(p Pattern) {
		if p != nil {
			add(p)
		}
	}
	addBlock := func(b *BlockExpr) {
		if b != nil {
			add(b)
		}
	}
	addIdent := func(i *Identifier) {
		if i != nil {
			add(i)
		}
	}
	addGenerics := func(gs []*GenericParam) {
		for _, g := range gs {
			add(g)
		}
	}
	addParams := func(ps []*Param) {
		for _, p := range ps {
			add(p)
		}
	}
	addDecorators := func(ds []*Decorator) {
		for _, d := range ds {
			add(d)
		}
	}

	switch n := n.(type) {
	case *Module:
		for _, item := range n.Items {
			add(item)
		}

	// Statements and declarations.
	case *LetStmt:
		addPat(n.Pat)
		addType(n.Type)
		addExpr(n.Init)
	case *ExprStmt:
		addExpr(n.X)
	case *BadStmt:
	case *FnDecl:
		addDecorators(n.Decorators)
		addIdent(n.Name)
		addGenerics(n.Generics)
		addParams(n.Params)
		addType(n.ReturnType)
		addBlock(n.Body)
	case *StructDecl:
		addIdent(n.Name)
		addGenerics(n.Generics)
		for _, f := range n.Fields {
			add(f)
		}
	case *EnumDecl:
		addIdent(n.Name)
		addGenerics(n.Generics)
		for _, v := range n.Variants {
			add(v)
		}
	case *EnumVariant:
		addIdent(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
		addExpr(n.Discriminant)
	case *FieldDef:
		addDecorators(n.Decorators)
		addIdent(n.Name)
		addType(n.Type)
		addExpr(n.Default)
	case *ClassDecl:
		addIdent(n.Name)
		addGenerics(n.Generics)
		addType(n.Extends)
		for _, m := range n.Members {
			add(m)
		}
	case *ConstMember:
		addDecorators(n.Decorators)
		addIdent(n.Name)
		addType(n.Type)
		addExpr(n.Value)
	case *CtorDecl:
		addDecorators(n.Decorators)
		addParams(n.Params)
		addBlock(n.Body)
	case *TraitDecl:
		addIdent(n.Name)
		addGenerics(n.Generics)
		for _, at := range n.AssocTypes {
			add(at)
		}
		for _, m := range n.Methods {
			add(m)
		}
	case *AssocType:
		addIdent(n.Name)
		for _, b := range n.Bounds {
			add(b)
		}
	case *ImplDecl:
		addGenerics(n.Generics)
		addType(n.Trait)
		addType(n.Target)
		for _, m := range n.Methods {
			add(m)
		}
	case *TypeAliasDecl:
		addIdent(n.Name)
		addGenerics(n.Generics)
		addType(n.Aliased)
	case *ModuleDecl:
		addIdent(n.Name)
		for _, item := range n.Items {
			add(item)
		}
	case *UseDecl:
		add(n.Tree)
	case *UseTree:
		for _, seg := range n.Segments {
			add(seg)
		}
		addIdent(n.Alias)
		for _, child := range n.Children {
			add(child)
		}
	case *GenericParam:
		addIdent(n.Name)
		for _, b := range n.Bounds {
			add(b)
		}
	case *Param:
		addPat(n.Pat)
		addType(n.Type)
		addExpr(n.Default)
	case *Decorator:
		add(n.Name)
		for _, a := range n.Args {
			add(a)
		}

	// Expressions.
	case *Identifier, *Literal, *BadExpr:
	case *InterpolatedString:
		for _, p := range n.Parts {
			add(p)
		}
	case *Path:
		for _, seg := range n.Segments {
			add(seg)
		}
	case *PathSegment:
		addIdent(n.Name)
		for _, g := range n.Generics {
			add(g)
		}
	case *Unary:
		addExpr(n.Operand)
	case *Binary:
		addExpr(n.Left)
		addExpr(n.Right)
	case *Assign:
		addExpr(n.Target)
		addExpr(n.Value)
	case *Cast:
		addExpr(n.X)
		addType(n.Type)
	case *TypeTest:
		addExpr(n.X)
		addType(n.Type)
	case *Call:
		addExpr(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *MethodCall:
		addExpr(n.Receiver)
		addIdent(n.Method)
		for _, g := range n.Generics {
			add(g)
		}
		for _, a := range n.Args {
			add(a)
		}
	case *FieldAccess:
		addExpr(n.Receiver)
		addIdent(n.Field)
	case *Index:
		addExpr(n.Receiver)
		addExpr(n.Index)
	case *ArrayLit:
		for _, e := range n.Elems {
			add(e)
		}
	case *TupleLit:
		for _, e := range n.Elems {
			add(e)
		}
	case *StructLit:
		add(n.Path)
		for _, f := range n.Fields {
			add(f)
		}
		addExpr(n.Rest)
	case *StructLitField:
		addIdent(n.Name)
		addExpr(n.Value)
	case *Lambda:
		addParams(n.Params)
		addType(n.ReturnType)
		addExpr(n.Body)
	case *BlockExpr:
		for _, s := range n.Stmts {
			add(s)
		}
		addExpr(n.Tail)
	case *IfExpr:
		addExpr(n.Cond)
		addBlock(n.Then)
		addExpr(n.Else)
	case *MatchExpr:
		addExpr(n.Subject)
		for _, arm := range n.Arms {
			add(arm)
		}
	case *MatchArm:
		addPat(n.Pat)
		addExpr(n.Guard)
		addExpr(n.Body)
	case *ForExpr:
		addPat(n.Pat)
		addExpr(n.Iterable)
		addBlock(n.Body)
	case *WhileExpr:
		addPat(n.Pat)
		addExpr(n.Cond)
		addBlock(n.Body)
	case *LoopExpr:
		addBlock(n.Body)
	case *BreakExpr:
		addExpr(n.Value)
	case *ContinueExpr:
	case *ReturnExpr:
		addExpr(n.Value)
	case *TryExpr:
		addBlock(n.Body)
		for _, c := range n.Catches {
			add(c)
		}
		addBlock(n.Finally)
	case *CatchClause:
		addPat(n.Pat)
		addBlock(n.Body)
	case *AsyncBlock:
		addBlock(n.Body)

	// Patterns.
	case *WildcardPattern, *BadPattern:
	case *BindingPattern:
		addIdent(n.Name)
	case *LiteralPattern:
		add(n.Value)
	case *RangePattern:
		addExpr(n.Low)
		addExpr(n.High)
	case *TuplePattern:
		for _, e := range n.Elems {
			add(e)
		}
	case *ListPattern:
		for _, e := range n.Elems {
			add(e)
		}
		addIdent(n.RestBinding)
	case *StructPattern:
		add(n.Path)
		for _, f := range n.Fields {
			add(f)
		}
	case *FieldPattern:
		addIdent(n.Name)
		addPat(n.Pat)
	case *VariantPattern:
		add(n.Path)
		for _, e := range n.Elems {
			add(e)
		}
		for _, f := range n.Fields {
			add(f)
		}
	case *PathPattern:
		add(n.Path)
	case *OrPattern:
		for _, alt := range n.Alts {
			add(alt)
		}

	// Types.
	case *NamedType:
		add(n.Path)
	case *TupleType:
		for _, e := range n.Elems {
			add(e)
		}
	case *FuncType:
		for _, p := range n.Params {
			add(p)
		}
		addType(n.Return)
	case *RefType:
		addType(n.Elem)
	case *SliceType:
		addType(n.Elem)
	case *InferType, *BadType:
	}
	return out
}

// Inspect traverses the tree rooted at n in depth-first order, calling f
// for each node. If f returns false the children of that node are
// skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
