package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseOrPattern parses pat | pat | ... as used by match arms. A single
// alternative is returned unwrapped.
func (p *Parser) parseOrPattern() ast.Pattern {
	first := p.parsePattern()
	if !p.at(lexer.TokenPipe) {
		return first
	}
	alts := []ast.Pattern{first}
	for {
		if _, ok := p.eat(lexer.TokenPipe); !ok {
			break
		}
		alts = append(alts, p.parsePattern())
	}
	return &ast.OrPattern{
		Span: position.Span{
			Start: first.GetSpan().Start,
			End:   alts[len(alts)-1].GetSpan().End,
		},
		Alts: alts,
	}
}

// parsePattern parses a single pattern alternative. Always returns a
// node; a token that cannot start a pattern is reported and yields
// BadPattern without being consumed, so the caller's recovery decides
// how far to skip.
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokenUnderscore:
		p.advance()
		return &ast.WildcardPattern{Span: tok.Span}
	case lexer.TokenInt, lexer.TokenFloat, lexer.TokenString,
		lexer.TokenRawString, lexer.TokenByteString, lexer.TokenChar,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenMinus:
		return p.parseLiteralPattern()
	case lexer.TokenIdent:
		return p.parsePathPattern()
	case lexer.TokenLParen:
		return p.parseTuplePattern()
	case lexer.TokenLBracket:
		return p.parseListPattern()
	}
	p.report(diag.InvalidPatternToken, tok.Span,
		"expected pattern, found %s", describe(tok))
	return &ast.BadPattern{Span: tok.Span}
}

// parseLiteralPattern parses a literal, optionally negated, optionally
// extended into a range: 1, -3, 'a'..='z', 0..10.
func (p *Parser) parseLiteralPattern() ast.Pattern {
	start := p.peek()
	low, negated := p.parseSignedLiteral()
	if low == nil {
		return &ast.BadPattern{Span: start.Span}
	}
	if !p.at(lexer.TokenDotDot) && !p.at(lexer.TokenDotDotEq) {
		return &ast.LiteralPattern{
			Span:    position.Span{Start: start.Span.Start, End: low.GetSpan().End},
			Value:   low,
			Negated: negated,
		}
	}
	inclusive := p.advance().Type == lexer.TokenDotDotEq
	high, _ := p.parseSignedLiteral()
	if high == nil {
		high = &ast.Literal{Span: p.peek().Span, Kind: ast.LitUnit}
	}
	return &ast.RangePattern{
		Span:      position.Span{Start: start.Span.Start, End: high.Span.End},
		Low:       low,
		High:      high,
		Inclusive: inclusive,
	}
}

// parseSignedLiteral parses a literal token with an optional leading
// minus, for pattern position only.
func (p *Parser) parseSignedLiteral() (*ast.Literal, bool) {
	negated := false
	minus, hasMinus := p.eat(lexer.TokenMinus)
	if hasMinus {
		negated = true
	}
	tok := p.peek()
	var lit *ast.Literal
	switch tok.Type {
	case lexer.TokenInt, lexer.TokenFloat:
		lit, _ = p.parseNumberLit().(*ast.Literal)
	case lexer.TokenString, lexer.TokenRawString, lexer.TokenByteString, lexer.TokenChar:
		lit, _ = p.parseStringLikeLit().(*ast.Literal)
	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		lit = &ast.Literal{Span: tok.Span, Kind: ast.LitBool, Value: tok.Type == lexer.TokenTrue, Text: tok.Lexeme}
	default:
		if hasMinus {
			p.report(diag.InvalidPatternToken, minus.Span,
				"expected literal after - in pattern, found %s", describe(tok))
		}
		return nil, negated
	}
	if hasMinus && lit != nil {
		lit.Span = position.Span{Start: minus.Span.Start, End: lit.Span.End}
	}
	return lit, negated
}

// parsePathPattern parses patterns that begin with an identifier: a
// binding, a qualified path, or an enum variant with positional or
// named sub-patterns.
func (p *Parser) parsePathPattern() ast.Pattern {
	first := p.advance()
	segments := []*ast.PathSegment{{Span: first.Span, Name: identFrom(first)}}
	for p.at(lexer.TokenColonColon) {
		p.advance()
		nameTok, ok := p.expectSegmentName("after :: in pattern")
		if !ok {
			break
		}
		segments = append(segments, &ast.PathSegment{Span: nameTok.Span, Name: identFrom(nameTok)})
	}
	span := position.Span{
		Start: segments[0].Span.Start,
		End:   segments[len(segments)-1].Span.End,
	}
	path := &ast.Path{Span: span, Segments: segments}

	switch p.peek().Type {
	case lexer.TokenLParen:
		open := p.advance()
		var elems []ast.Pattern
		for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenEOF) {
			elem := p.parsePattern()
			if _, bad := elem.(*ast.BadPattern); bad {
				break
			}
			elems = append(elems, elem)
			if _, ok := p.eat(lexer.TokenComma); !ok {
				break
			}
		}
		p.expectClosing(lexer.TokenRParen, open)
		return &ast.VariantPattern{Span: p.spanFrom(first), Path: path, Elems: elems}
	case lexer.TokenLBrace:
		if p.noStructLit > 0 {
			break
		}
		open := p.advance()
		var fields []*ast.FieldPattern
		hasRest := false
		for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
			if p.at(lexer.TokenDotDot) {
				p.advance()
				hasRest = true
				break
			}
			before := p.cur.pos
			nameTok, ok := p.expect(lexer.TokenIdent, "as field pattern")
			if !ok {
				p.syncMember()
				if p.cur.pos == before {
					p.advance()
				}
				continue
			}
			field := &ast.FieldPattern{Span: nameTok.Span, Name: identFrom(nameTok)}
			if _, ok := p.eat(lexer.TokenColon); ok {
				field.Pat = p.parsePattern()
				field.Span = position.Span{Start: nameTok.Span.Start, End: field.Pat.GetSpan().End}
			}
			fields = append(fields, field)
			if _, ok := p.eat(lexer.TokenComma); !ok {
				break
			}
		}
		p.expectClosing(lexer.TokenRBrace, open)
		return &ast.StructPattern{Span: p.spanFrom(first), Path: path, Fields: fields, HasRest: hasRest}
	}

	if len(segments) == 1 {
		return &ast.BindingPattern{Span: span, Name: segments[0].Name}
	}
	return &ast.PathPattern{Span: span, Path: path}
}

// parseTuplePattern parses (a, b, .., z). A single element without a
// comma is plain grouping. At most one rest slot is recorded by index.
func (p *Parser) parseTuplePattern() ast.Pattern {
	open := p.advance()
	if p.at(lexer.TokenRParen) {
		p.advance()
		return &ast.TuplePattern{Span: p.spanFrom(open), Rest: -1}
	}
	var elems []ast.Pattern
	rest := -1
	sawComma := false
	for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenDotDot) {
			dots := p.advance()
			if rest >= 0 {
				p.report(diag.InvalidPatternToken, dots.Span,
					"at most one .. allowed in a tuple pattern")
			}
			rest = len(elems)
		} else {
			elem := p.parsePattern()
			if _, bad := elem.(*ast.BadPattern); bad {
				break
			}
			elems = append(elems, elem)
		}
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
		sawComma = true
	}
	p.expectClosing(lexer.TokenRParen, open)
	if len(elems) == 1 && !sawComma && rest < 0 {
		return elems[0]
	}
	return &ast.TuplePattern{Span: p.spanFrom(open), Elems: elems, Rest: rest}
}

// parseListPattern parses [head, ..rest, tail] with an optional named
// or anonymous rest slot.
func (p *Parser) parseListPattern() ast.Pattern {
	open := p.advance()
	var elems []ast.Pattern
	rest := -1
	var restBinding *ast.Identifier
	for !p.at(lexer.TokenRBracket) && !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenDotDot) {
			dots := p.advance()
			if rest >= 0 {
				p.report(diag.InvalidPatternToken, dots.Span,
					"at most one .. allowed in a list pattern")
			}
			rest = len(elems)
			if p.at(lexer.TokenIdent) {
				restBinding = identFrom(p.advance())
			}
		} else {
			elem := p.parsePattern()
			if _, bad := elem.(*ast.BadPattern); bad {
				break
			}
			elems = append(elems, elem)
		}
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	p.expectClosing(lexer.TokenRBracket, open)
	return &ast.ListPattern{
		Span:        p.spanFrom(open),
		Elems:       elems,
		Rest:        rest,
		RestBinding: restBinding,
	}
}
