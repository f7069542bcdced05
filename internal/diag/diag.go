// Package diag defines the diagnostic values produced by the Veld lexer
// and parser. A parse call returns an ordered list of diagnostics next to
// its (possibly partial) AST; nothing in this package performs I/O.
package diag

import (
	"fmt"
	"sort"

	"github.com/veld-lang/veld/internal/position"
)

// Kind classifies a diagnostic. The set is closed; every recovery path in
// the parser maps to exactly one kind.
type Kind int

const (
	// LexError covers bad characters, unterminated literals and comments,
	// and malformed numeric literals. The lexer always advances at least
	// one code point past the offending input.
	LexError Kind = iota
	// UnexpectedToken is reported when no grammar rule matches the
	// current token.
	UnexpectedToken
	// UnclosedDelimiter is reported when a bracket, paren, or brace is
	// never matched before end of input or a synchronization point.
	UnclosedDelimiter
	// AmbiguityResolutionFailure is reported when a committed
	// disambiguation trial (such as a turbofish generic list) fails to
	// close and the parser falls back to a best-effort interpretation.
	AmbiguityResolutionFailure
	// DanglingTry is reported for a try block with neither a catch clause
	// nor a finally block.
	DanglingTry
	// InvalidPatternToken is reported when the current token cannot begin
	// any pattern production.
	InvalidPatternToken
	// ExpectedExpressionAfterOperator is reported when an operator was
	// consumed but the right-hand operand parse fails immediately.
	ExpectedExpressionAfterOperator
)

var kindNames = map[Kind]string{
	LexError:                        "lex error",
	UnexpectedToken:                 "unexpected token",
	UnclosedDelimiter:               "unclosed delimiter",
	AmbiguityResolutionFailure:      "ambiguity resolution failure",
	DanglingTry:                     "dangling try",
	InvalidPatternToken:             "invalid pattern token",
	ExpectedExpressionAfterOperator: "expected expression after operator",
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("diag.Kind(%d)", int(k))
}

// Diagnostic is a single reported problem with its source span.
type Diagnostic struct {
	Span    position.Span
	Kind    Kind
	Message string
	// Recovered marks diagnostics after which the parser resynchronized
	// and kept going, as opposed to ones absorbed locally.
	Recovered bool
}

// String renders the diagnostic in file:line:col form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.Start.String(), d.Kind.String(), d.Message)
}

// Sort orders diagnostics by source offset, preserving the report order
// of diagnostics at the same offset.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start.Offset < diags[j].Span.Start.Offset
	})
}
