package ast

import (
	"fmt"
	"strings"

	"github.com/veld-lang/veld/internal/position"
)

// NamedType references a type by (possibly qualified, possibly generic)
// path: i32, Vec<T>, collections::Map<K, V>.
type NamedType struct {
	Span position.Span
	Path *Path
}

func (t *NamedType) GetSpan() position.Span { return t.Span }
func (t *NamedType) String() string         { return t.Path.String() }
func (t *NamedType) typeExprNode()          {}

// TupleType is (A, B); the empty tuple is the unit type.
type TupleType struct {
	Span  position.Span
	Elems []TypeExpr
}

func (t *TupleType) GetSpan() position.Span { return t.Span }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) typeExprNode() {}

// FuncType is fn(A, B) -> C.
type FuncType struct {
	Span   position.Span
	Params []TypeExpr
	Return TypeExpr // optional
}

func (t *FuncType) GetSpan() position.Span { return t.Span }
func (t *FuncType) String() string         { return fmt.Sprintf("fn(%d params)", len(t.Params)) }
func (t *FuncType) typeExprNode()          {}

// RefType is &T.
type RefType struct {
	Span position.Span
	Elem TypeExpr
}

func (t *RefType) GetSpan() position.Span { return t.Span }
func (t *RefType) String() string         { return "&" + t.Elem.String() }
func (t *RefType) typeExprNode()          {}

// SliceType is [T].
type SliceType struct {
	Span position.Span
	Elem TypeExpr
}

func (t *SliceType) GetSpan() position.Span { return t.Span }
func (t *SliceType) String() string         { return "[" + t.Elem.String() + "]" }
func (t *SliceType) typeExprNode()          {}

// InferType is the _ placeholder asking inference to fill the type in.
type InferType struct {
	Span position.Span
}

func (t *InferType) GetSpan() position.Span { return t.Span }
func (t *InferType) String() string         { return "_" }
func (t *InferType) typeExprNode()          {}

// BadType is a placeholder kept where a type expression failed to parse.
type BadType struct {
	Span position.Span
}

func (t *BadType) GetSpan() position.Span { return t.Span }
func (t *BadType) String() string         { return "<bad type>" }
func (t *BadType) typeExprNode()          {}
