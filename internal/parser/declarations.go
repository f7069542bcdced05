package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseStmt parses one statement: a declaration when the leading token
// starts one, otherwise an expression statement. A statement that fails
// outright reports once, skips to a synchronization point, and returns
// a BadStmt covering the skipped region.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Type {
	case lexer.TokenLet, lexer.TokenVar, lexer.TokenConst:
		return p.parseLet(fnModifiers{})
	case lexer.TokenFn:
		return p.parseFnDecl(fnModifiers{})
	case lexer.TokenAsync:
		if p.peek2().Type == lexer.TokenFn {
			kw := p.advance()
			return p.parseFnDecl(fnModifiers{isAsync: true, start: kw, hasStart: true})
		}
	case lexer.TokenStruct:
		return p.parseStructDecl(fnModifiers{})
	case lexer.TokenEnum:
		return p.parseEnumDecl(fnModifiers{})
	case lexer.TokenClass:
		return p.parseClassDecl(fnModifiers{})
	case lexer.TokenTrait:
		return p.parseTraitDecl(fnModifiers{})
	case lexer.TokenImpl:
		return p.parseImplDecl()
	case lexer.TokenTypeKw:
		return p.parseTypeAlias(fnModifiers{})
	case lexer.TokenModule:
		return p.parseModuleDecl(fnModifiers{})
	case lexer.TokenUse:
		return p.parseUseDecl(fnModifiers{})
	case lexer.TokenPub:
		return p.parsePubStmt()
	}

	start := p.peek()
	expr := p.parseExpr(bpLowest)
	if expr == nil {
		p.synchronize()
		return &ast.BadStmt{Span: p.spanFrom(start)}
	}
	p.eat(lexer.TokenSemicolon)
	return &ast.ExprStmt{Span: p.spanFromExpr(expr), X: expr}
}

// parsePubStmt parses the pub modifier and dispatches to the
// declaration it qualifies.
func (p *Parser) parsePubStmt() ast.Stmt {
	kw := p.advance()
	mods := fnModifiers{isPub: true, start: kw, hasStart: true}
	switch p.peek().Type {
	case lexer.TokenLet, lexer.TokenVar, lexer.TokenConst:
		return p.parseLet(mods)
	case lexer.TokenFn:
		return p.parseFnDecl(mods)
	case lexer.TokenAsync:
		if p.peek2().Type == lexer.TokenFn {
			p.advance()
			mods.isAsync = true
			return p.parseFnDecl(mods)
		}
	case lexer.TokenStruct:
		return p.parseStructDecl(mods)
	case lexer.TokenEnum:
		return p.parseEnumDecl(mods)
	case lexer.TokenClass:
		return p.parseClassDecl(mods)
	case lexer.TokenTrait:
		return p.parseTraitDecl(mods)
	case lexer.TokenTypeKw:
		return p.parseTypeAlias(mods)
	case lexer.TokenModule:
		return p.parseModuleDecl(mods)
	case lexer.TokenUse:
		return p.parseUseDecl(mods)
	}
	p.report(diag.UnexpectedToken, p.peek().Span,
		"expected declaration after pub, found %s", describe(p.peek()))
	p.synchronize()
	return &ast.BadStmt{Span: p.spanFrom(kw)}
}

// parseLet parses let/var/const pattern [: type] [= init] [;]. The
// binding target is a full pattern, so destructuring works everywhere
// a binding does.
func (p *Parser) parseLet(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	var mut ast.Mutability
	switch kw.Type {
	case lexer.TokenLet:
		mut = ast.MutLet
	case lexer.TokenVar:
		mut = ast.MutVar
	case lexer.TokenConst:
		mut = ast.MutConst
	}
	pat := p.parsePattern()
	if _, bad := pat.(*ast.BadPattern); bad {
		p.synchronize()
		return &ast.BadStmt{Span: position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}}
	}
	stmt := &ast.LetStmt{Mut: mut, Pat: pat, IsPub: mods.isPub}
	if _, ok := p.eat(lexer.TokenColon); ok {
		stmt.Type = p.parseType()
	}
	if _, ok := p.eat(lexer.TokenAssign); ok {
		stmt.Init = p.parseExpr(bpLowest)
		if stmt.Init == nil {
			stmt.Init = &ast.BadExpr{Span: p.peek().Span}
			p.synchronize()
		}
	}
	p.eat(lexer.TokenSemicolon)
	stmt.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return stmt
}

// parseTypeAlias parses type Name<T> = Type;.
func (p *Parser) parseTypeAlias(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as type alias name")
	decl := &ast.TypeAliasDecl{
		Name:     identFrom(nameTok),
		Generics: p.parseGenericParams(),
		IsPub:    mods.isPub,
	}
	if _, ok := p.expect(lexer.TokenAssign, "in type alias"); ok {
		decl.Aliased = p.parseType()
	} else {
		decl.Aliased = &ast.BadType{Span: p.peek().Span}
		p.synchronize()
	}
	p.eat(lexer.TokenSemicolon)
	decl.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return decl
}

// parseModuleDecl parses module name { items }.
func (p *Parser) parseModuleDecl(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as module name")
	decl := &ast.ModuleDecl{Name: identFrom(nameTok), IsPub: mods.isPub}
	open, ok := p.expect(lexer.TokenLBrace, "to open module body")
	if ok {
		for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
			if p.at(lexer.TokenSemicolon) {
				p.advance()
				continue
			}
			before := p.cur.pos
			item := p.parseStmt()
			if item != nil {
				decl.Items = append(decl.Items, item)
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

// parseUseDecl parses use path tree ;.
func (p *Parser) parseUseDecl(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	tree := p.parseUseTree()
	p.eat(lexer.TokenSemicolon)
	return &ast.UseDecl{
		Span:  position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End},
		Tree:  tree,
		IsPub: mods.isPub,
	}
}

// parseUseTree parses a use path with nested groups, wildcards, and
// renames: a::b, a::{b, c::d}, a::*, a::b as c.
func (p *Parser) parseUseTree() *ast.UseTree {
	start := p.peek()
	tree := &ast.UseTree{}
	if p.at(lexer.TokenStar) {
		// A bare * inside a group imports everything at that level.
		p.advance()
		tree.Wildcard = true
		tree.Span = p.spanFrom(start)
		return tree
	}
	for {
		nameTok, ok := p.expect(lexer.TokenIdent, "in use path")
		if !ok {
			p.synchronize()
			break
		}
		tree.Segments = append(tree.Segments, identFrom(nameTok))
		if !p.at(lexer.TokenColonColon) {
			break
		}
		if p.peek2().Type == lexer.TokenLBrace {
			p.advance() // ::
			open := p.advance()
			for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
				child := p.parseUseTree()
				tree.Children = append(tree.Children, child)
				if _, ok := p.eat(lexer.TokenComma); !ok {
					break
				}
			}
			p.expectClosing(lexer.TokenRBrace, open)
			break
		}
		if p.peek2().Type == lexer.TokenStar {
			p.advance() // ::
			p.advance() // *
			tree.Wildcard = true
			break
		}
		p.advance() // ::
	}
	if _, ok := p.eat(lexer.TokenAs); ok {
		aliasTok, ok := p.expect(lexer.TokenIdent, "after as in use")
		if ok {
			tree.Alias = identFrom(aliasTok)
		}
	}
	tree.Span = p.spanFrom(start)
	return tree
}
