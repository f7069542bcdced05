package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseTraitDecl parses trait Name<T> { items }. The interface keyword
// lexes to the same token, so both spellings land here. Items are
// associated types and method signatures with optional default bodies.
func (p *Parser) parseTraitDecl(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as trait name")
	decl := &ast.TraitDecl{
		Name:     identFrom(nameTok),
		Generics: p.parseGenericParams(),
		IsPub:    mods.isPub,
	}
	open, ok := p.expect(lexer.TokenLBrace, "to open trait body")
	if ok {
		for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
			before := p.cur.pos
			switch p.peek().Type {
			case lexer.TokenSemicolon:
				p.advance()
			case lexer.TokenTypeKw:
				decl.AssocTypes = append(decl.AssocTypes, p.parseAssocType())
			case lexer.TokenFn:
				decl.Methods = append(decl.Methods, p.parseFnDecl(fnModifiers{}))
			case lexer.TokenAsync:
				if p.peek2().Type == lexer.TokenFn {
					akw := p.advance()
					decl.Methods = append(decl.Methods,
						p.parseFnDecl(fnModifiers{isAsync: true, start: akw, hasStart: true}))
					continue
				}
				fallthrough
			default:
				p.report(diag.UnexpectedToken, p.peek().Span,
					"expected trait item, found %s", describe(p.peek()))
				p.syncMember()
			}
			if p.cur.pos == before {
				p.advance()
			}
		}
		p.expectClosing(lexer.TokenRBrace, open)
	}
	decl.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return decl
}

// parseAssocType parses type Name [: Bound + Bound] ;.
func (p *Parser) parseAssocType() *ast.AssocType {
	kw := p.advance()
	nameTok, _ := p.expect(lexer.TokenIdent, "as associated type name")
	at := &ast.AssocType{Name: identFrom(nameTok)}
	if _, ok := p.eat(lexer.TokenColon); ok {
		at.Bounds = p.parseBoundList()
	}
	p.eat(lexer.TokenSemicolon)
	at.Span = position.Span{Start: kw.Span.Start, End: p.cur.prev.Span.End}
	return at
}

// parseImplDecl parses both impl forms: impl<T> Target { } for inherent
// methods and impl<T> Trait for Target { } for trait conformance. The
// first type parsed is reinterpreted as the trait when for follows it.
func (p *Parser) parseImplDecl() ast.Stmt {
	kw := p.advance()
	decl := &ast.ImplDecl{Generics: p.parseGenericParams()}
	first := p.parseType()
	if _, ok := p.eat(lexer.TokenFor); ok {
		decl.Trait = first
		decl.Target = p.parseType()
	} else {
		decl.Target = first
	}
	open, ok := p.expect(lexer.TokenLBrace, "to open impl body")
	if ok {
		for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
			before := p.cur.pos
			switch p.peek().Type {
			case lexer.TokenSemicolon:
				p.advance()
			case lexer.TokenFn:
				decl.Methods = append(decl.Methods, p.parseFnDecl(fnModifiers{}))
			case lexer.TokenPub:
				pubKw := p.advance()
				m := fnModifiers{isPub: true, start: pubKw, hasStart: true}
				if p.at(lexer.TokenAsync) && p.peek2().Type == lexer.TokenFn {
					p.advance()
					m.isAsync = true
				}
				if p.at(lexer.TokenFn) {
					decl.Methods = append(decl.Methods, p.parseFnDecl(m))
					continue
				}
				p.report(diag.UnexpectedToken, p.peek().Span,
					"expected fn after pub in impl, found %s", describe(p.peek()))
				p.syncMember()
			case lexer.TokenAsync:
				if p.peek2().Type == lexer.TokenFn {
					akw := p.advance()
					decl.Methods = append(decl.Methods,
						p.parseFnDecl(fnModifiers{isAsync: true, start: akw, hasStart: true}))
					continue
				}
				fallthrough
			default:
				p.report(diag.UnexpectedToken, p.peek().Span,
					"expected method, found %s", describe(p.peek()))
				p.syncMember()
			}
			if p.cur.pos == before {
				p.advance()
			}
		}
		p.expectClosing(lexer.TokenRBrace, open)
	}
	decl.Span = position.Span{Start: kw.Span.Start, End: p.cur.prev.Span.End}
	return decl
}
