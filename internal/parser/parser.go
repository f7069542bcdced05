package parser

import (
	"fmt"

	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// Parser owns one parse over one source buffer. Diagnostics from both
// the lexer and the parser are collected and returned together, sorted
// by source position; parsing never stops at the first error.
type Parser struct {
	cur   *cursor
	diags []diag.Diagnostic

	// trial counts nested speculative parses. While positive,
	// diagnostics are suppressed: a failed trial rewinds and must leave
	// no trace.
	trial int

	// noStructLit counts contexts in which { after a path starts a
	// block, not a struct literal (if/match/for/while subjects). Reset
	// inside any bracketed subexpression.
	noStructLit int
}

// New prepares a parser over src. The filename is used for positions
// only; it is not opened.
func New(src, filename string) *Parser {
	return &Parser{cur: newCursor(lexer.New(src, filename))}
}

// ParseModule parses a whole compilation unit: a sequence of top-level
// items. The returned module is never nil, even for empty or heavily
// broken input.
func ParseModule(src, filename string) (*ast.Module, []diag.Diagnostic) {
	p := New(src, filename)
	mod := p.parseModule()
	return mod, p.finish()
}

// ParseStatement parses a single statement or declaration, as a REPL
// line would. Trailing tokens after the statement are reported.
func ParseStatement(src, filename string) (ast.Stmt, []diag.Diagnostic) {
	p := New(src, filename)
	stmt := p.parseStmt()
	p.expectEOF()
	return stmt, p.finish()
}

// ParseExpression parses a single expression, as an embedded evaluator
// or debugger watch window would. Trailing tokens are reported.
func ParseExpression(src, filename string) (ast.Expr, []diag.Diagnostic) {
	p := New(src, filename)
	expr := p.parseExpr(bpLowest)
	if expr == nil {
		expr = &ast.BadExpr{Span: p.peek().Span}
	}
	p.expectEOF()
	return expr, p.finish()
}

func (p *Parser) parseModule() *ast.Module {
	start := p.peek()
	var items []ast.Stmt
	for !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenSemicolon) {
			p.advance()
			continue
		}
		before := p.cur.pos
		item := p.parseStmt()
		if item != nil {
			items = append(items, item)
		}
		// Forward progress guard: a statement parse that consumed
		// nothing would loop forever on the same token.
		if p.cur.pos == before {
			p.advance()
		}
	}
	span := position.Span{Start: start.Span.Start, End: p.peek().Span.End}
	return &ast.Module{Span: span, Items: items}
}

func (p *Parser) expectEOF() {
	if !p.at(lexer.TokenEOF) {
		tok := p.peek()
		p.report(diag.UnexpectedToken, tok.Span,
			"unexpected trailing %s", describe(tok))
	}
}

// finish merges lexer and parser diagnostics into one position-sorted
// stream.
func (p *Parser) finish() []diag.Diagnostic {
	all := append(p.cur.lex.Diagnostics(), p.diags...)
	diag.Sort(all)
	return all
}

// --- token plumbing ---

func (p *Parser) peek() lexer.Token  { return p.cur.peek() }
func (p *Parser) peek2() lexer.Token { return p.cur.peek2() }

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur.peek().Type == tt }

func (p *Parser) advance() lexer.Token { return p.cur.advance() }

// eat consumes the current token if it has the given type.
func (p *Parser) eat(tt lexer.TokenType) (lexer.Token, bool) {
	if p.at(tt) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

// expect consumes a token of the given type or reports an unexpected
// token diagnostic without consuming anything. The boolean result tells
// the caller whether to proceed or recover.
func (p *Parser) expect(tt lexer.TokenType, context string) (lexer.Token, bool) {
	if p.at(tt) {
		return p.advance(), true
	}
	tok := p.peek()
	p.report(diag.UnexpectedToken, tok.Span,
		"expected %s %s, found %s", tt, context, describe(tok))
	return tok, false
}

// expectSegmentName consumes a path-segment name. new is a keyword so
// constructors declare as members, but it stays legal as a segment so
// constructor paths like Vec<i32>::new resolve.
func (p *Parser) expectSegmentName(context string) (lexer.Token, bool) {
	if p.at(lexer.TokenIdent) || p.at(lexer.TokenNew) {
		return p.advance(), true
	}
	tok := p.peek()
	p.report(diag.UnexpectedToken, tok.Span,
		"expected %s %s, found %s", lexer.TokenIdent, context, describe(tok))
	return tok, false
}

// expectClosing consumes the closing delimiter matching open. If the
// stream ran out first, the open delimiter is reported as unclosed and
// the caller proceeds as if the close had been present.
func (p *Parser) expectClosing(tt lexer.TokenType, open lexer.Token) bool {
	if p.at(tt) {
		p.advance()
		return true
	}
	p.report(diag.UnclosedDelimiter, open.Span,
		"unclosed %s, expected %s before %s",
		describe(open), tt, describe(p.peek()))
	return false
}

// spanFrom builds the span from the start of a captured token to the
// end of the last consumed token.
func (p *Parser) spanFrom(start lexer.Token) position.Span {
	end := p.cur.prev.Span.End
	if p.cur.prev.Type == lexer.TokenEOF || end.Offset < start.Span.Start.Offset {
		end = start.Span.End
	}
	return position.Span{Start: start.Span.Start, End: end}
}

// --- diagnostics ---

func (p *Parser) report(kind diag.Kind, span position.Span, format string, args ...any) {
	if p.trial > 0 {
		return
	}
	p.diags = append(p.diags, diag.Diagnostic{
		Span:      span,
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Recovered: true,
	})
}

// describe renders a token for diagnostics: keyword and operator tokens
// by their lexeme, the rest by token type name.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Lexeme)
	case lexer.TokenInt, lexer.TokenFloat, lexer.TokenString, lexer.TokenRawString,
		lexer.TokenByteString, lexer.TokenChar, lexer.TokenStringStart:
		return fmt.Sprintf("%s literal", tok.Type)
	case lexer.TokenError:
		return fmt.Sprintf("invalid token %q", tok.Lexeme)
	}
	if tok.Lexeme != "" {
		return fmt.Sprintf("%q", tok.Lexeme)
	}
	return tok.Type.String()
}

// --- speculative parsing ---

// beginTrial starts a speculative parse: diagnostics are suppressed
// until the matching endTrial.
func (p *Parser) beginTrial() checkpoint {
	p.trial++
	return p.cur.save()
}

// endTrial finishes a speculative parse. With keep=false the cursor
// rewinds to the checkpoint and the attempt leaves no trace.
func (p *Parser) endTrial(cp checkpoint, keep bool) {
	p.trial--
	if !keep {
		p.cur.restore(cp)
	}
}
