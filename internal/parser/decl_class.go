package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseClassDecl parses class Name<T> extends Base { members }. Members
// are fields (let/var), constants, the new(...) constructor, and
// methods, each with optional pub/static modifiers and decorators.
func (p *Parser) parseClassDecl(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as class name")
	decl := &ast.ClassDecl{
		Name:     identFrom(nameTok),
		Generics: p.parseGenericParams(),
		IsPub:    mods.isPub,
	}
	if _, ok := p.eat(lexer.TokenExtends); ok {
		decl.Extends = p.parseType()
	}
	open, ok := p.expect(lexer.TokenLBrace, "to open class body")
	if ok {
		for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
			if p.at(lexer.TokenSemicolon) {
				p.advance()
				continue
			}
			before := p.cur.pos
			member := p.parseClassMember()
			if member == nil {
				p.syncMember()
				if p.cur.pos == before {
					p.advance()
				}
				continue
			}
			decl.Members = append(decl.Members, member)
		}
		p.expectClosing(lexer.TokenRBrace, open)
	}
	decl.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return decl
}

// parseClassMember parses one class member. Returns nil after
// reporting when the leading token fits no member form; the caller
// skips to the next member so siblings survive.
func (p *Parser) parseClassMember() ast.ClassMember {
	start := p.peek()
	decorators := p.parseDecorators()

	mods := fnModifiers{decorators: decorators, start: start, hasStart: true}
	for {
		switch p.peek().Type {
		case lexer.TokenPub:
			p.advance()
			mods.isPub = true
			continue
		case lexer.TokenStatic:
			p.advance()
			mods.isStatic = true
			continue
		}
		break
	}

	switch p.peek().Type {
	case lexer.TokenFn:
		return p.parseFnDecl(mods)
	case lexer.TokenAsync:
		if p.peek2().Type == lexer.TokenFn {
			p.advance()
			mods.isAsync = true
			return p.parseFnDecl(mods)
		}
	case lexer.TokenNew:
		return p.parseCtorDecl(mods)
	case lexer.TokenConst:
		return p.parseConstMember(mods)
	case lexer.TokenLet, lexer.TokenVar:
		return p.parseClassField(mods)
	}
	p.report(diag.UnexpectedToken, p.peek().Span,
		"expected class member, found %s", describe(p.peek()))
	return nil
}

// parseDecorators parses a run of @name or @path(args) annotations.
func (p *Parser) parseDecorators() []*ast.Decorator {
	var decorators []*ast.Decorator
	for p.at(lexer.TokenAt) {
		at := p.advance()
		nameTok, ok := p.expect(lexer.TokenIdent, "as decorator name")
		if !ok {
			break
		}
		segments := []*ast.PathSegment{{Span: nameTok.Span, Name: identFrom(nameTok)}}
		for p.at(lexer.TokenColonColon) {
			p.advance()
			segTok, ok := p.expect(lexer.TokenIdent, "after :: in decorator")
			if !ok {
				break
			}
			segments = append(segments, &ast.PathSegment{Span: segTok.Span, Name: identFrom(segTok)})
		}
		pathSpan := position.Span{
			Start: segments[0].Span.Start,
			End:   segments[len(segments)-1].Span.End,
		}
		dec := &ast.Decorator{Name: &ast.Path{Span: pathSpan, Segments: segments}}
		if p.at(lexer.TokenLParen) {
			openParen := p.advance()
			dec.HasArgs = true
			dec.Args = p.parseCallArgs(openParen)
		}
		dec.Span = position.Span{Start: at.Span.Start, End: p.cur.prev.Span.End}
		decorators = append(decorators, dec)
	}
	return decorators
}

// parseCtorDecl parses the new(params) { body } constructor.
func (p *Parser) parseCtorDecl(mods fnModifiers) *ast.CtorDecl {
	kw := p.advance() // new
	start := mods.startOr(kw)
	ctor := &ast.CtorDecl{
		IsPub:      mods.isPub,
		Decorators: mods.decorators,
	}
	ctor.Params = p.parseParamList()
	if p.at(lexer.TokenLBrace) {
		open := p.advance()
		ctor.Body = p.parseBlockBody(open)
	} else {
		p.expect(lexer.TokenLBrace, "to open constructor body")
		p.synchronize()
	}
	ctor.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return ctor
}

// parseConstMember parses const NAME [: type] = value ;.
func (p *Parser) parseConstMember(mods fnModifiers) *ast.ConstMember {
	kw := p.advance()
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as constant name")
	m := &ast.ConstMember{
		Name:       identFrom(nameTok),
		IsPub:      mods.isPub,
		Decorators: mods.decorators,
	}
	if _, ok := p.eat(lexer.TokenColon); ok {
		m.Type = p.parseType()
	}
	if _, ok := p.expect(lexer.TokenAssign, "in constant member"); ok {
		m.Value = p.parseExpr(bpLowest)
		if m.Value == nil {
			m.Value = &ast.BadExpr{Span: p.peek().Span}
			p.syncMember()
		}
	}
	p.eat(lexer.TokenSemicolon)
	m.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return m
}

// parseClassField parses let/var name [: type] [= default] ; inside a
// class body.
func (p *Parser) parseClassField(mods fnModifiers) *ast.FieldDef {
	kw := p.advance() // let or var
	start := mods.startOr(kw)
	nameTok, ok := p.expect(lexer.TokenIdent, "as field name")
	if !ok {
		p.syncMember()
		return &ast.FieldDef{Span: p.spanFrom(start), IsPub: mods.isPub, IsStatic: mods.isStatic}
	}
	field := &ast.FieldDef{
		Name:       identFrom(nameTok),
		IsPub:      mods.isPub,
		IsStatic:   mods.isStatic,
		Mutable:    kw.Type == lexer.TokenVar,
		Decorators: mods.decorators,
	}
	if _, ok := p.eat(lexer.TokenColon); ok {
		field.Type = p.parseType()
	}
	if _, ok := p.eat(lexer.TokenAssign); ok {
		field.Default = p.parseExpr(bpLowest)
		if field.Default == nil {
			field.Default = &ast.BadExpr{Span: p.peek().Span}
			p.syncMember()
		}
	}
	p.eat(lexer.TokenSemicolon)
	field.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return field
}
