package ast

import (
	"fmt"
	"strings"

	"github.com/veld-lang/veld/internal/position"
)

// WildcardPattern is _.
type WildcardPattern struct {
	Span position.Span
}

func (p *WildcardPattern) GetSpan() position.Span { return p.Span }
func (p *WildcardPattern) String() string         { return "_" }
func (p *WildcardPattern) patternNode()           {}

// BindingPattern binds the matched value to a name.
type BindingPattern struct {
	Span position.Span
	Name *Identifier
}

func (p *BindingPattern) GetSpan() position.Span { return p.Span }
func (p *BindingPattern) String() string         { return p.Name.Name }
func (p *BindingPattern) patternNode()           {}

// LiteralPattern matches a literal value; Negated covers -42.
type LiteralPattern struct {
	Span    position.Span
	Value   *Literal
	Negated bool
}

func (p *LiteralPattern) GetSpan() position.Span { return p.Span }
func (p *LiteralPattern) String() string {
	if p.Negated {
		return "-" + p.Value.String()
	}
	return p.Value.String()
}
func (p *LiteralPattern) patternNode() {}

// RangePattern matches low..high or low..=high.
type RangePattern struct {
	Span      position.Span
	Low       Expr
	High      Expr
	Inclusive bool
}

func (p *RangePattern) GetSpan() position.Span { return p.Span }
func (p *RangePattern) String() string {
	op := ".."
	if p.Inclusive {
		op = "..="
	}
	return fmt.Sprintf("%s%s%s", p.Low, op, p.High)
}
func (p *RangePattern) patternNode() {}

// TuplePattern destructures a tuple. Rest is the index of a `..` slot,
// or -1 when absent.
type TuplePattern struct {
	Span  position.Span
	Elems []Pattern
	Rest  int
}

func (p *TuplePattern) GetSpan() position.Span { return p.Span }
func (p *TuplePattern) String() string         { return fmt.Sprintf("(%d-tuple pattern)", len(p.Elems)) }
func (p *TuplePattern) patternNode()           {}

// ListPattern destructures a list with optional head/rest/tail shape.
// Rest is the index of the `..` slot (or -1); RestBinding optionally
// names the matched middle: [head, ..rest, tail].
type ListPattern struct {
	Span        position.Span
	Elems       []Pattern
	Rest        int
	RestBinding *Identifier
}

func (p *ListPattern) GetSpan() position.Span { return p.Span }
func (p *ListPattern) String() string         { return fmt.Sprintf("[%d elems]", len(p.Elems)) }
func (p *ListPattern) patternNode()           {}

// FieldPattern is one field of a struct pattern; Pat nil means the
// shorthand where the field name is also the binding.
type FieldPattern struct {
	Span position.Span
	Name *Identifier
	Pat  Pattern
}

func (p *FieldPattern) GetSpan() position.Span { return p.Span }
func (p *FieldPattern) String() string         { return p.Name.Name }

// StructPattern destructures a record: Path { a, b: pat, .. }.
type StructPattern struct {
	Span    position.Span
	Path    *Path
	Fields  []*FieldPattern
	HasRest bool // trailing .. ("and the rest")
}

func (p *StructPattern) GetSpan() position.Span { return p.Span }
func (p *StructPattern) String() string         { return p.Path.String() + "{...}" }
func (p *StructPattern) patternNode()           {}

// VariantPattern matches an enum variant with positional or named
// sub-patterns: Some(x), Shape::Circle { radius }.
type VariantPattern struct {
	Span   position.Span
	Path   *Path
	Elems  []Pattern       // positional form
	Fields []*FieldPattern // named form
}

func (p *VariantPattern) GetSpan() position.Span { return p.Span }
func (p *VariantPattern) String() string         { return p.Path.String() + "(...)" }
func (p *VariantPattern) patternNode()           {}

// PathPattern matches a unit variant or named constant by path.
type PathPattern struct {
	Span position.Span
	Path *Path
}

func (p *PathPattern) GetSpan() position.Span { return p.Span }
func (p *PathPattern) String() string         { return p.Path.String() }
func (p *PathPattern) patternNode()           {}

// OrPattern matches if any alternative matches. The parser does not
// check that alternatives bind identical name sets; that is a later
// pass's job.
type OrPattern struct {
	Span position.Span
	Alts []Pattern
}

func (p *OrPattern) GetSpan() position.Span { return p.Span }
func (p *OrPattern) String() string {
	parts := make([]string, len(p.Alts))
	for i, alt := range p.Alts {
		parts[i] = alt.String()
	}
	return strings.Join(parts, " | ")
}
func (p *OrPattern) patternNode() {}

// BadPattern is a placeholder kept where a pattern failed to parse.
type BadPattern struct {
	Span position.Span
}

func (p *BadPattern) GetSpan() position.Span { return p.Span }
func (p *BadPattern) String() string         { return "<bad pattern>" }
func (p *BadPattern) patternNode()           {}
