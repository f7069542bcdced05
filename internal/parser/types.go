package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// canStartType reports whether a token can begin a type expression.
func canStartType(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenIdent, lexer.TokenLParen, lexer.TokenLBracket,
		lexer.TokenAmp, lexer.TokenFn, lexer.TokenUnderscore:
		return true
	}
	return false
}

// parseType parses a type expression. Always returns a node; a failed
// parse yields BadType after reporting.
func (p *Parser) parseType() ast.TypeExpr {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokenIdent:
		return p.parseNamedType()
	case lexer.TokenUnderscore:
		p.advance()
		return &ast.InferType{Span: tok.Span}
	case lexer.TokenAmp:
		p.advance()
		elem := p.parseType()
		return &ast.RefType{
			Span: position.Span{Start: tok.Span.Start, End: elem.GetSpan().End},
			Elem: elem,
		}
	case lexer.TokenLBracket:
		open := p.advance()
		elem := p.parseType()
		p.expectClosing(lexer.TokenRBracket, open)
		return &ast.SliceType{Span: p.spanFrom(open), Elem: elem}
	case lexer.TokenLParen:
		return p.parseTupleType()
	case lexer.TokenFn:
		return p.parseFuncType()
	}
	if p.trial == 0 {
		p.report(diag.UnexpectedToken, tok.Span,
			"expected type, found %s", describe(tok))
	}
	return &ast.BadType{Span: tok.Span}
}

// parseNamedType parses a possibly qualified, possibly generic type
// path. In type position < is never comparison, so no speculation is
// needed; the closing > still goes through splitGt for nested lists.
func (p *Parser) parseNamedType() ast.TypeExpr {
	first := p.advance()
	segments := []*ast.PathSegment{{Span: first.Span, Name: identFrom(first)}}
	for {
		last := segments[len(segments)-1]
		switch {
		case p.at(lexer.TokenLt) && last.Generics == nil:
			open := p.advance()
			args := p.parseTypeList()
			if !p.cur.splitGt() {
				if p.trial == 0 {
					p.report(diag.UnclosedDelimiter, open.Span,
						"unclosed type argument list, expected > before %s", describe(p.peek()))
				}
			}
			if args == nil {
				args = []ast.TypeExpr{}
			}
			last.Generics = args
			last.Span = position.Span{Start: last.Span.Start, End: p.cur.prev.Span.End}
		case p.at(lexer.TokenColonColon):
			p.advance()
			nameTok, ok := p.expectSegmentName("after ::")
			if !ok {
				return p.namedTypeFrom(segments)
			}
			segments = append(segments, &ast.PathSegment{Span: nameTok.Span, Name: identFrom(nameTok)})
		default:
			return p.namedTypeFrom(segments)
		}
	}
}

func (p *Parser) namedTypeFrom(segments []*ast.PathSegment) ast.TypeExpr {
	span := position.Span{
		Start: segments[0].Span.Start,
		End:   segments[len(segments)-1].Span.End,
	}
	return &ast.NamedType{Span: span, Path: &ast.Path{Span: span, Segments: segments}}
}

// parseTupleType parses (A, B); () is the unit type and a single
// parenthesized type is just grouping.
func (p *Parser) parseTupleType() ast.TypeExpr {
	open := p.advance()
	if p.at(lexer.TokenRParen) {
		p.advance()
		return &ast.TupleType{Span: p.spanFrom(open)}
	}
	first := p.parseType()
	if !p.at(lexer.TokenComma) {
		p.expectClosing(lexer.TokenRParen, open)
		return first
	}
	elems := []ast.TypeExpr{first}
	for {
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
		if p.at(lexer.TokenRParen) {
			break
		}
		elems = append(elems, p.parseType())
	}
	p.expectClosing(lexer.TokenRParen, open)
	return &ast.TupleType{Span: p.spanFrom(open), Elems: elems}
}

// parseFuncType parses fn(A, B) -> C.
func (p *Parser) parseFuncType() ast.TypeExpr {
	kw := p.advance()
	open, ok := p.expect(lexer.TokenLParen, "after fn in type")
	if !ok {
		return &ast.BadType{Span: p.spanFrom(kw)}
	}
	var params []ast.TypeExpr
	for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenEOF) {
		params = append(params, p.parseType())
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	p.expectClosing(lexer.TokenRParen, open)
	var ret ast.TypeExpr
	if _, ok := p.eat(lexer.TokenArrow); ok {
		ret = p.parseType()
	}
	return &ast.FuncType{Span: p.spanFrom(kw), Params: params, Return: ret}
}
