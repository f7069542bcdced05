// Package ast defines the Veld abstract syntax tree: a strict tree of
// tagged-union nodes with source spans. Nodes are created during parsing
// and are read-only afterward; there are no parent back-pointers (see
// NodeIndex for the auxiliary arena built by a separate pass).
package ast

import (
	"fmt"
	"strings"

	"github.com/veld-lang/veld/internal/position"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// GetSpan returns the source span for this node. A child node's span
	// is always contained in its parent's.
	GetSpan() position.Span
	// String returns a short debug representation of the node.
	String() string
}

// Stmt is implemented by statement and declaration nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by destructuring pattern nodes.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is implemented by type expression nodes.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Module is the root of a module-level parse: an ordered item sequence.
type Module struct {
	Span  position.Span
	Items []Stmt
}

func (m *Module) GetSpan() position.Span { return m.Span }
func (m *Module) String() string         { return "module" }

// ====== Bindings ======

// Mutability distinguishes the three binding forms.
type Mutability int

const (
	MutLet Mutability = iota
	MutVar
	MutConst
)

func (m Mutability) String() string {
	switch m {
	case MutVar:
		return "var"
	case MutConst:
		return "const"
	default:
		return "let"
	}
}

// LetStmt represents let/var/const bindings. The binding target is a full
// pattern, so `let (a, b) = pair` destructures.
type LetStmt struct {
	Span  position.Span
	Mut   Mutability
	Pat   Pattern
	Type  TypeExpr // optional
	Init  Expr     // optional
	IsPub bool
}

func (s *LetStmt) GetSpan() position.Span { return s.Span }
func (s *LetStmt) String() string         { return fmt.Sprintf("%s %s", s.Mut, s.Pat) }
func (s *LetStmt) stmtNode()              {}

// ExprStmt wraps an expression used in statement position.
type ExprStmt struct {
	Span position.Span
	X    Expr
}

func (s *ExprStmt) GetSpan() position.Span { return s.Span }
func (s *ExprStmt) String() string         { return s.X.String() }
func (s *ExprStmt) stmtNode()              {}

// BadStmt is a placeholder kept in the tree where a statement failed to
// parse, so sibling items survive error recovery.
type BadStmt struct {
	Span position.Span
}

func (s *BadStmt) GetSpan() position.Span { return s.Span }
func (s *BadStmt) String() string         { return "<bad stmt>" }
func (s *BadStmt) stmtNode()              {}

// ====== Shared declaration leaves ======

// GenericParam models one generic parameter with optional bounds:
// T, T: Bound + Bound.
type GenericParam struct {
	Span   position.Span
	Name   *Identifier
	Bounds []TypeExpr
}

func (g *GenericParam) GetSpan() position.Span { return g.Span }
func (g *GenericParam) String() string         { return g.Name.Name }

// Param is a function, closure, or constructor parameter. The binding is
// a pattern so parameters destructure; Type and Default are optional.
type Param struct {
	Span    position.Span
	Pat     Pattern
	Type    TypeExpr
	Default Expr
}

func (p *Param) GetSpan() position.Span { return p.Span }
func (p *Param) String() string         { return p.Pat.String() }

// Decorator is an @name or @name(args) annotation on a class member.
type Decorator struct {
	Span    position.Span
	Name    *Path
	Args    []Expr
	HasArgs bool
}

func (d *Decorator) GetSpan() position.Span { return d.Span }
func (d *Decorator) String() string         { return "@" + d.Name.String() }

// ====== Functions ======

// FnDecl is a named function or method. Body is nil for trait method
// signatures without a default body.
type FnDecl struct {
	Span       position.Span
	Name       *Identifier
	Generics   []*GenericParam
	Params     []*Param
	ReturnType TypeExpr
	Body       *BlockExpr
	IsAsync    bool
	IsPub      bool
	IsStatic   bool
	Decorators []*Decorator
}

func (f *FnDecl) GetSpan() position.Span { return f.Span }
func (f *FnDecl) String() string         { return fmt.Sprintf("fn %s", f.Name.Name) }
func (f *FnDecl) stmtNode()              {}
func (f *FnDecl) classMemberNode()       {}

// ====== Structs and enums ======

// StructKind distinguishes the three struct bodies.
type StructKind int

const (
	StructNamed StructKind = iota
	StructTuple
	StructUnit
)

// FieldDef is a struct, enum-variant, or class field. Name is nil for
// tuple-style fields. Mutable is set for class fields declared with
// var rather than let.
type FieldDef struct {
	Span       position.Span
	Name       *Identifier
	Type       TypeExpr
	Default    Expr
	IsPub      bool
	IsStatic   bool
	Mutable    bool
	Decorators []*Decorator
}

func (f *FieldDef) GetSpan() position.Span { return f.Span }
func (f *FieldDef) String() string {
	if f.Name != nil {
		return f.Name.Name
	}
	return "<field>"
}
func (f *FieldDef) classMemberNode() {}

// StructDecl is a value-semantics record declaration.
type StructDecl struct {
	Span     position.Span
	Name     *Identifier
	Generics []*GenericParam
	Kind     StructKind
	Fields   []*FieldDef
	IsPub    bool
}

func (s *StructDecl) GetSpan() position.Span { return s.Span }
func (s *StructDecl) String() string         { return fmt.Sprintf("struct %s", s.Name.Name) }
func (s *StructDecl) stmtNode()              {}

// VariantKind distinguishes enum variant bodies.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantStruct
)

// EnumVariant is one alternative of an enum, optionally with an explicit
// discriminant expression.
type EnumVariant struct {
	Span         position.Span
	Name         *Identifier
	Kind         VariantKind
	Fields       []*FieldDef
	Discriminant Expr
}

func (v *EnumVariant) GetSpan() position.Span { return v.Span }
func (v *EnumVariant) String() string         { return v.Name.Name }

// EnumDecl is an algebraic sum type declaration.
type EnumDecl struct {
	Span     position.Span
	Name     *Identifier
	Generics []*GenericParam
	Variants []*EnumVariant
	IsPub    bool
}

func (e *EnumDecl) GetSpan() position.Span { return e.Span }
func (e *EnumDecl) String() string         { return fmt.Sprintf("enum %s", e.Name.Name) }
func (e *EnumDecl) stmtNode()              {}

// ====== Classes ======

// ClassMember is implemented by the node kinds a class body may contain:
// *FieldDef, *FnDecl, *ConstMember, and *CtorDecl.
type ClassMember interface {
	Node
	classMemberNode()
}

// ConstMember is a class-level constant.
type ConstMember struct {
	Span       position.Span
	Name       *Identifier
	Type       TypeExpr
	Value      Expr
	IsPub      bool
	Decorators []*Decorator
}

func (c *ConstMember) GetSpan() position.Span { return c.Span }
func (c *ConstMember) String() string         { return fmt.Sprintf("const %s", c.Name.Name) }
func (c *ConstMember) classMemberNode()       {}

// CtorDecl is a class constructor: new(params) { ... }.
type CtorDecl struct {
	Span       position.Span
	Params     []*Param
	Body       *BlockExpr
	IsPub      bool
	Decorators []*Decorator
}

func (c *CtorDecl) GetSpan() position.Span { return c.Span }
func (c *CtorDecl) String() string         { return "new" }
func (c *CtorDecl) classMemberNode()       {}

// ClassDecl is a reference-semantics class with optional single
// inheritance.
type ClassDecl struct {
	Span     position.Span
	Name     *Identifier
	Generics []*GenericParam
	Extends  TypeExpr // optional
	Members  []ClassMember
	IsPub    bool
}

func (c *ClassDecl) GetSpan() position.Span { return c.Span }
func (c *ClassDecl) String() string         { return fmt.Sprintf("class %s", c.Name.Name) }
func (c *ClassDecl) stmtNode()              {}

// ====== Traits and impls ======

// AssocType is a trait associated-type item: type Name [: Bounds];
type AssocType struct {
	Span   position.Span
	Name   *Identifier
	Bounds []TypeExpr
}

func (a *AssocType) GetSpan() position.Span { return a.Span }
func (a *AssocType) String() string         { return fmt.Sprintf("type %s", a.Name.Name) }

// TraitDecl is a trait (or interface; the spellings are aliases) with
// method signatures, optional default bodies, and associated types.
type TraitDecl struct {
	Span       position.Span
	Name       *Identifier
	Generics   []*GenericParam
	AssocTypes []*AssocType
	Methods    []*FnDecl
	IsPub      bool
}

func (t *TraitDecl) GetSpan() position.Span { return t.Span }
func (t *TraitDecl) String() string         { return fmt.Sprintf("trait %s", t.Name.Name) }
func (t *TraitDecl) stmtNode()              {}

// ImplDecl binds a method set to a target type, optionally implementing
// a trait: impl<T> Trait for Target { ... }.
type ImplDecl struct {
	Span     position.Span
	Generics []*GenericParam
	Trait    TypeExpr // optional; nil for inherent impl
	Target   TypeExpr
	Methods  []*FnDecl
}

func (i *ImplDecl) GetSpan() position.Span { return i.Span }
func (i *ImplDecl) String() string         { return "impl" }
func (i *ImplDecl) stmtNode()              {}

// ====== Aliases, modules, imports ======

// TypeAliasDecl is type Name<...> = TypeExpr;
type TypeAliasDecl struct {
	Span     position.Span
	Name     *Identifier
	Generics []*GenericParam
	Aliased  TypeExpr
	IsPub    bool
}

func (t *TypeAliasDecl) GetSpan() position.Span { return t.Span }
func (t *TypeAliasDecl) String() string         { return fmt.Sprintf("type %s", t.Name.Name) }
func (t *TypeAliasDecl) stmtNode()              {}

// ModuleDecl is a nested module with its own item body.
type ModuleDecl struct {
	Span  position.Span
	Name  *Identifier
	Items []Stmt
	IsPub bool
}

func (m *ModuleDecl) GetSpan() position.Span { return m.Span }
func (m *ModuleDecl) String() string         { return fmt.Sprintf("module %s", m.Name.Name) }
func (m *ModuleDecl) stmtNode()              {}

// UseTree is one level of an import path. Nesting depth is unbounded:
// use a::b::{c, d::{e as f, *}};
type UseTree struct {
	Span     position.Span
	Segments []*Identifier
	Alias    *Identifier // optional, via `as`
	Wildcard bool        // trailing ::*
	Children []*UseTree  // trailing ::{...} group
}

func (u *UseTree) GetSpan() position.Span { return u.Span }
func (u *UseTree) String() string {
	parts := make([]string, len(u.Segments))
	for i, seg := range u.Segments {
		parts[i] = seg.Name
	}
	s := strings.Join(parts, "::")
	switch {
	case u.Wildcard:
		s += "::*"
	case len(u.Children) > 0:
		s += "::{...}"
	case u.Alias != nil:
		s += " as " + u.Alias.Name
	}
	return s
}

// UseDecl is an import declaration.
type UseDecl struct {
	Span  position.Span
	Tree  *UseTree
	IsPub bool
}

func (u *UseDecl) GetSpan() position.Span { return u.Span }
func (u *UseDecl) String() string         { return "use " + u.Tree.String() }
func (u *UseDecl) stmtNode()              {}
