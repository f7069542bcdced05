package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parsePathExpr parses everything a leading identifier can begin: a
// bare name, a qualified path with :: segments, generic arguments via
// turbofish or disambiguated angle brackets, the single-parameter
// arrow lambda, and a struct literal when the context allows braces.
func (p *Parser) parsePathExpr() ast.Expr {
	first := p.advance() // identifier

	// x => body is the shorthand lambda; nothing else a lone identifier
	// starts is followed by =>.
	if p.at(lexer.TokenFatArrow) {
		p.advance()
		param := &ast.Param{
			Span: first.Span,
			Pat:  &ast.BindingPattern{Span: first.Span, Name: identFrom(first)},
		}
		body := p.parseLambdaBody()
		return &ast.Lambda{
			Span:   position.Span{Start: first.Span.Start, End: body.GetSpan().End},
			Params: []*ast.Param{param},
			Body:   body,
		}
	}

	segments := []*ast.PathSegment{{Span: first.Span, Name: identFrom(first)}}

	for {
		last := segments[len(segments)-1]
		switch {
		case p.at(lexer.TokenColonColon) && p.peek2().Type == lexer.TokenLt:
			// Turbofish: the writer has committed to generic arguments,
			// so a failure here is a hard error, not a rewind.
			last.Generics = p.parseTurbofish()
			last.Span = position.Span{Start: last.Span.Start, End: p.cur.prev.Span.End}
		case p.at(lexer.TokenColonColon):
			p.advance()
			nameTok, ok := p.expectSegmentName("after ::")
			if !ok {
				return p.finishPathExpr(segments)
			}
			segments = append(segments, &ast.PathSegment{Span: nameTok.Span, Name: identFrom(nameTok)})
		case p.at(lexer.TokenLt) && last.Generics == nil:
			args, ok := p.tryGenericArgs()
			if !ok {
				return p.finishPathExpr(segments)
			}
			last.Generics = args
			last.Span = position.Span{Start: last.Span.Start, End: p.cur.prev.Span.End}
		default:
			return p.finishPathExpr(segments)
		}
	}
}

// finishPathExpr wraps accumulated segments into the right node and
// attaches a struct literal when one follows and the context permits.
func (p *Parser) finishPathExpr(segments []*ast.PathSegment) ast.Expr {
	span := position.Span{
		Start: segments[0].Span.Start,
		End:   segments[len(segments)-1].Span.End,
	}
	var base ast.Expr
	if len(segments) == 1 && segments[0].Generics == nil {
		base = segments[0].Name
	} else {
		base = &ast.Path{Span: span, Segments: segments}
	}

	if p.at(lexer.TokenLBrace) && p.noStructLit == 0 {
		path := &ast.Path{Span: span, Segments: segments}
		return p.parseStructLit(path)
	}
	return base
}

// parseTurbofish parses ::< type-args > after a path segment or method
// name. The ::< prefix is unambiguous, so errors inside are reported as
// a failed resolution rather than retried as comparison.
func (p *Parser) parseTurbofish() []ast.TypeExpr {
	p.advance() // ::
	open := p.advance()
	args := p.parseTypeList()
	if !p.cur.splitGt() {
		p.report(diag.AmbiguityResolutionFailure, open.Span,
			"expected > to close type arguments, found %s", describe(p.peek()))
	}
	if args == nil {
		args = []ast.TypeExpr{}
	}
	return args
}

// tryGenericArgs speculatively parses < type-args > in expression
// position. The attempt commits only when the closing > is followed by
// a token that can legally follow a type-argument list; otherwise the
// cursor rewinds and the < is left to parse as comparison.
func (p *Parser) tryGenericArgs() ([]ast.TypeExpr, bool) {
	cp := p.beginTrial()
	p.advance() // <
	args := p.parseTypeList()
	if args == nil || !p.cur.splitGt() || !genericArgsFollow(p.peek().Type) {
		p.endTrial(cp, false)
		return nil, false
	}
	p.endTrial(cp, true)
	return args, true
}

// genericArgsFollow lists the tokens that can legally follow a closed
// type-argument list in expression position. Anything else means the <
// was a comparison after all.
func genericArgsFollow(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenColonColon, lexer.TokenLParen, lexer.TokenLBrace,
		lexer.TokenRParen, lexer.TokenRBracket, lexer.TokenRBrace,
		lexer.TokenComma, lexer.TokenSemicolon, lexer.TokenDot,
		lexer.TokenColon, lexer.TokenFatArrow, lexer.TokenEOF,
		lexer.TokenInterpClose:
		return true
	}
	return false
}

// parseTypeList parses one or more comma-separated types for a generic
// argument list. Returns nil when the first element is missing.
func (p *Parser) parseTypeList() []ast.TypeExpr {
	if !canStartType(p.peek().Type) {
		if p.trial == 0 {
			p.report(diag.UnexpectedToken, p.peek().Span,
				"expected type, found %s", describe(p.peek()))
		}
		return nil
	}
	args := []ast.TypeExpr{p.parseType()}
	for {
		if _, ok := p.eat(lexer.TokenComma); !ok {
			return args
		}
		args = append(args, p.parseType())
	}
}

// parseStructLit parses Path { field: value, shorthand, ..rest } with
// the opening brace current.
func (p *Parser) parseStructLit(path *ast.Path) ast.Expr {
	open := p.advance()
	saved := p.noStructLit
	p.noStructLit = 0
	defer func() { p.noStructLit = saved }()

	var fields []*ast.StructLitField
	var rest ast.Expr
	for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
		before := p.cur.pos
		if p.at(lexer.TokenDotDot) {
			dots := p.advance()
			rest = p.parseExpr(bpLowest)
			if rest == nil {
				rest = p.missingOperand(dots)
			}
			break
		}
		nameTok, ok := p.expect(lexer.TokenIdent, "as struct literal field")
		if !ok {
			p.syncMember()
			if p.cur.pos == before {
				p.advance()
			}
			continue
		}
		field := &ast.StructLitField{Span: nameTok.Span, Name: identFrom(nameTok)}
		if _, ok := p.eat(lexer.TokenColon); ok {
			field.Value = p.parseExpr(bpLowest)
			if field.Value == nil {
				p.syncMember()
				continue
			}
			field.Span = position.Span{Start: nameTok.Span.Start, End: field.Value.GetSpan().End}
		}
		fields = append(fields, field)
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	p.expectClosing(lexer.TokenRBrace, open)
	return &ast.StructLit{
		Span:   position.Span{Start: path.Span.Start, End: p.cur.prev.Span.End},
		Path:   path,
		Fields: fields,
		Rest:   rest,
	}
}
