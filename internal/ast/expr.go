package ast

import (
	"fmt"
	"strings"

	"github.com/veld-lang/veld/internal/position"
)

// ====== Atoms ======

// Identifier is a bare name.
type Identifier struct {
	Span position.Span
	Name string
}

func (i *Identifier) GetSpan() position.Span { return i.Span }
func (i *Identifier) String() string         { return i.Name }
func (i *Identifier) exprNode()              {}

// LiteralKind classifies literal values.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitRawString
	LitByteString
	LitChar
	LitBool
	LitUnit
)

// Literal is a literal value. Value holds the decoded payload (uint64
// magnitude for integers, float64, string, []byte, bool, rune); Text
// keeps the source spelling so
// formatting tools can round-trip, and Suffix keeps a numeric type
// suffix when present.
type Literal struct {
	Span   position.Span
	Kind   LiteralKind
	Value  any
	Text   string
	Suffix string
}

func (l *Literal) GetSpan() position.Span { return l.Span }
func (l *Literal) String() string {
	if l.Kind == LitUnit {
		return "()"
	}
	return fmt.Sprintf("%v", l.Value)
}
func (l *Literal) exprNode() {}

// InterpolatedString is a string with embedded expressions. Parts
// alternates *Literal fragments with arbitrary expressions, in source
// order.
type InterpolatedString struct {
	Span  position.Span
	Parts []Expr
}

func (s *InterpolatedString) GetSpan() position.Span { return s.Span }
func (s *InterpolatedString) String() string         { return "interpolated string" }
func (s *InterpolatedString) exprNode()              {}

// PathSegment is one segment of a qualified path, with optional generic
// arguments (Vec<i32>, or the turbofish form after ::).
type PathSegment struct {
	Span     position.Span
	Name     *Identifier
	Generics []TypeExpr
}

func (p *PathSegment) GetSpan() position.Span { return p.Span }
func (p *PathSegment) String() string {
	if len(p.Generics) == 0 {
		return p.Name.Name
	}
	args := make([]string, len(p.Generics))
	for i, g := range p.Generics {
		args[i] = g.String()
	}
	return fmt.Sprintf("%s<%s>", p.Name.Name, strings.Join(args, ", "))
}

// Path is a possibly-qualified name: a, a::b, Vec<i32>::new.
type Path struct {
	Span     position.Span
	Segments []*PathSegment
}

func (p *Path) GetSpan() position.Span { return p.Span }
func (p *Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		parts[i] = seg.String()
	}
	return strings.Join(parts, "::")
}
func (p *Path) exprNode() {}

// ====== Operators ======

// UnaryOp enumerates prefix operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpRef
	OpDeref
	OpSpawn
	OpAwait
)

var unaryOpNames = map[UnaryOp]string{
	OpNeg: "-", OpNot: "!", OpBitNot: "~", OpRef: "&", OpDeref: "*",
	OpSpawn: "spawn", OpAwait: "await",
}

func (op UnaryOp) String() string { return unaryOpNames[op] }

// BinaryOp enumerates infix operators. The pipeline operator never
// reaches the tree; it is rewritten into a Call during parsing.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpRange
	OpRangeInclusive
	OpCoalesce
	OpIn
)

var binaryOpNames = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpRem: "%", OpPow: "**",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "&&", OpOr: "||",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpShl: "<<", OpShr: ">>",
	OpRange: "..", OpRangeInclusive: "..=", OpCoalesce: "??", OpIn: "in",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// AssignOp enumerates assignment and compound-assignment operators.
type AssignOp int

const (
	AssignSimple AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignRem
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShl
	AssignShr
)

var assignOpNames = map[AssignOp]string{
	AssignSimple: "=", AssignAdd: "+=", AssignSub: "-=", AssignMul: "*=",
	AssignDiv: "/=", AssignRem: "%=", AssignBitAnd: "&=", AssignBitOr: "|=",
	AssignBitXor: "^=", AssignShl: "<<=", AssignShr: ">>=",
}

func (op AssignOp) String() string { return assignOpNames[op] }

// Unary is a prefix operation.
type Unary struct {
	Span    position.Span
	Op      UnaryOp
	Operand Expr
}

func (u *Unary) GetSpan() position.Span { return u.Span }
func (u *Unary) String() string         { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }
func (u *Unary) exprNode()              {}

// Binary is an infix operation.
type Binary struct {
	Span  position.Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *Binary) GetSpan() position.Span { return b.Span }
func (b *Binary) String() string         { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (b *Binary) exprNode()              {}

// Assign is assignment or compound assignment; right-associative.
type Assign struct {
	Span   position.Span
	Op     AssignOp
	Target Expr
	Value  Expr
}

func (a *Assign) GetSpan() position.Span { return a.Span }
func (a *Assign) String() string         { return fmt.Sprintf("(%s %s %s)", a.Target, a.Op, a.Value) }
func (a *Assign) exprNode()              {}

// Cast is `expr as Type`.
type Cast struct {
	Span position.Span
	X    Expr
	Type TypeExpr
}

func (c *Cast) GetSpan() position.Span { return c.Span }
func (c *Cast) String() string         { return fmt.Sprintf("(%s as %s)", c.X, c.Type) }
func (c *Cast) exprNode()              {}

// TypeTest is `expr is Type`.
type TypeTest struct {
	Span position.Span
	X    Expr
	Type TypeExpr
}

func (t *TypeTest) GetSpan() position.Span { return t.Span }
func (t *TypeTest) String() string         { return fmt.Sprintf("(%s is %s)", t.X, t.Type) }
func (t *TypeTest) exprNode()              {}

// ====== Postfix forms ======

// Call is a function call.
type Call struct {
	Span   position.Span
	Callee Expr
	Args   []Expr
}

func (c *Call) GetSpan() position.Span { return c.Span }
func (c *Call) String() string         { return fmt.Sprintf("%s(...)", c.Callee) }
func (c *Call) exprNode()              {}

// MethodCall is receiver.method(args), with optional turbofish generics.
type MethodCall struct {
	Span     position.Span
	Receiver Expr
	Method   *Identifier
	Generics []TypeExpr
	Args     []Expr
}

func (m *MethodCall) GetSpan() position.Span { return m.Span }
func (m *MethodCall) String() string         { return fmt.Sprintf("%s.%s(...)", m.Receiver, m.Method.Name) }
func (m *MethodCall) exprNode()              {}

// FieldAccess is receiver.field.
type FieldAccess struct {
	Span     position.Span
	Receiver Expr
	Field    *Identifier
}

func (f *FieldAccess) GetSpan() position.Span { return f.Span }
func (f *FieldAccess) String() string         { return fmt.Sprintf("%s.%s", f.Receiver, f.Field.Name) }
func (f *FieldAccess) exprNode()              {}

// Index is receiver[index].
type Index struct {
	Span     position.Span
	Receiver Expr
	Index    Expr
}

func (i *Index) GetSpan() position.Span { return i.Span }
func (i *Index) String() string         { return fmt.Sprintf("%s[%s]", i.Receiver, i.Index) }
func (i *Index) exprNode()              {}

// ====== Collections ======

// ArrayLit is [a, b, c].
type ArrayLit struct {
	Span  position.Span
	Elems []Expr
}

func (a *ArrayLit) GetSpan() position.Span { return a.Span }
func (a *ArrayLit) String() string         { return fmt.Sprintf("[%d elems]", len(a.Elems)) }
func (a *ArrayLit) exprNode()              {}

// TupleLit is (a, b) — one item with a trailing comma also counts.
type TupleLit struct {
	Span  position.Span
	Elems []Expr
}

func (t *TupleLit) GetSpan() position.Span { return t.Span }
func (t *TupleLit) String() string         { return fmt.Sprintf("(%d-tuple)", len(t.Elems)) }
func (t *TupleLit) exprNode()              {}

// StructLitField is one field initializer; Value nil means the shorthand
// form where the field name doubles as the value.
type StructLitField struct {
	Span  position.Span
	Name  *Identifier
	Value Expr
}

func (f *StructLitField) GetSpan() position.Span { return f.Span }
func (f *StructLitField) String() string         { return f.Name.Name }

// StructLit is Path { field: value, .. rest }.
type StructLit struct {
	Span   position.Span
	Path   *Path
	Fields []*StructLitField
	Rest   Expr // optional ..rest tail
}

func (s *StructLit) GetSpan() position.Span { return s.Span }
func (s *StructLit) String() string         { return fmt.Sprintf("%s{...}", s.Path) }
func (s *StructLit) exprNode()              {}

// ====== Functions ======

// Lambda is a closure: |x| x + 1, (a, b) => a + b, or || { ... }.
type Lambda struct {
	Span       position.Span
	Params     []*Param
	ReturnType TypeExpr
	Body       Expr
	IsAsync    bool
}

func (l *Lambda) GetSpan() position.Span { return l.Span }
func (l *Lambda) String() string         { return fmt.Sprintf("lambda(%d params)", len(l.Params)) }
func (l *Lambda) exprNode()              {}

// ====== Blocks and control flow ======

// BlockExpr is { stmts; tail } — the trailing expression without a
// semicolon is the block's value.
type BlockExpr struct {
	Span  position.Span
	Stmts []Stmt
	Tail  Expr // optional
}

func (b *BlockExpr) GetSpan() position.Span { return b.Span }
func (b *BlockExpr) String() string         { return "block" }
func (b *BlockExpr) exprNode()              {}

// IfExpr is an if expression; Else is nil, a *BlockExpr, or another
// *IfExpr for else-if chains.
type IfExpr struct {
	Span position.Span
	Cond Expr
	Then *BlockExpr
	Else Expr
}

func (i *IfExpr) GetSpan() position.Span { return i.Span }
func (i *IfExpr) String() string         { return "if" }
func (i *IfExpr) exprNode()              {}

// MatchArm is one arm of a match. Or-alternatives are folded into an
// OrPattern; Guard is the optional `if cond` clause, attached here
// rather than inside the pattern.
type MatchArm struct {
	Span  position.Span
	Pat   Pattern
	Guard Expr
	Body  Expr
}

func (a *MatchArm) GetSpan() position.Span { return a.Span }
func (a *MatchArm) String() string         { return "arm" }

// MatchExpr is a match expression.
type MatchExpr struct {
	Span    position.Span
	Subject Expr
	Arms    []*MatchArm
}

func (m *MatchExpr) GetSpan() position.Span { return m.Span }
func (m *MatchExpr) String() string         { return "match" }
func (m *MatchExpr) exprNode()              {}

// ForExpr is for pat in iterable { body }, optionally labeled.
type ForExpr struct {
	Span     position.Span
	Label    string
	Pat      Pattern
	Iterable Expr
	Body     *BlockExpr
}

func (f *ForExpr) GetSpan() position.Span { return f.Span }
func (f *ForExpr) String() string         { return "for" }
func (f *ForExpr) exprNode()              {}

// WhileExpr is while cond { body } or while let pat = subject { body }.
// Pat is nil for the plain form.
type WhileExpr struct {
	Span  position.Span
	Label string
	Pat   Pattern
	Cond  Expr
	Body  *BlockExpr
}

func (w *WhileExpr) GetSpan() position.Span { return w.Span }
func (w *WhileExpr) String() string         { return "while" }
func (w *WhileExpr) exprNode()              {}

// LoopExpr is an unconditional loop, optionally labeled.
type LoopExpr struct {
	Span  position.Span
	Label string
	Body  *BlockExpr
}

func (l *LoopExpr) GetSpan() position.Span { return l.Span }
func (l *LoopExpr) String() string         { return "loop" }
func (l *LoopExpr) exprNode()              {}

// BreakExpr is break ['label] [value].
type BreakExpr struct {
	Span  position.Span
	Label string
	Value Expr
}

func (b *BreakExpr) GetSpan() position.Span { return b.Span }
func (b *BreakExpr) String() string         { return "break" }
func (b *BreakExpr) exprNode()              {}

// ContinueExpr is continue ['label].
type ContinueExpr struct {
	Span  position.Span
	Label string
}

func (c *ContinueExpr) GetSpan() position.Span { return c.Span }
func (c *ContinueExpr) String() string         { return "continue" }
func (c *ContinueExpr) exprNode()              {}

// ReturnExpr is return [value].
type ReturnExpr struct {
	Span  position.Span
	Value Expr
}

func (r *ReturnExpr) GetSpan() position.Span { return r.Span }
func (r *ReturnExpr) String() string         { return "return" }
func (r *ReturnExpr) exprNode()              {}

// ====== Error handling and concurrency ======

// CatchClause is catch (pat)? { body }; the parentheses around the
// pattern are optional in source.
type CatchClause struct {
	Span position.Span
	Pat  Pattern // optional
	Body *BlockExpr
}

func (c *CatchClause) GetSpan() position.Span { return c.Span }
func (c *CatchClause) String() string         { return "catch" }

// TryExpr is try { } catch { }* finally { }?; at least one of catch or
// finally is required.
type TryExpr struct {
	Span    position.Span
	Body    *BlockExpr
	Catches []*CatchClause
	Finally *BlockExpr
}

func (t *TryExpr) GetSpan() position.Span { return t.Span }
func (t *TryExpr) String() string         { return "try" }
func (t *TryExpr) exprNode()              {}

// AsyncBlock is async { ... }.
type AsyncBlock struct {
	Span position.Span
	Body *BlockExpr
}

func (a *AsyncBlock) GetSpan() position.Span { return a.Span }
func (a *AsyncBlock) String() string         { return "async block" }
func (a *AsyncBlock) exprNode()              {}

// BadExpr is a placeholder kept where an expression failed to parse.
type BadExpr struct {
	Span position.Span
}

func (b *BadExpr) GetSpan() position.Span { return b.Span }
func (b *BadExpr) String() string         { return "<bad expr>" }
func (b *BadExpr) exprNode()              {}
