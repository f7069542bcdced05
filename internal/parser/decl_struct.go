package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseStructDecl parses the three struct forms: named-field bodies,
// tuple structs, and unit structs.
//
//	struct Point { x: f64, y: f64 }
//	struct Pair(i32, i32);
//	struct Marker;
func (p *Parser) parseStructDecl(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as struct name")
	decl := &ast.StructDecl{
		Name:     identFrom(nameTok),
		Generics: p.parseGenericParams(),
		IsPub:    mods.isPub,
	}

	switch p.peek().Type {
	case lexer.TokenLBrace:
		decl.Kind = ast.StructNamed
		open := p.advance()
		decl.Fields = p.parseFieldDefs(open)
	case lexer.TokenLParen:
		decl.Kind = ast.StructTuple
		open := p.advance()
		for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenEOF) {
			fieldStart := p.peek()
			isPub := false
			if _, ok := p.eat(lexer.TokenPub); ok {
				isPub = true
			}
			ty := p.parseType()
			decl.Fields = append(decl.Fields, &ast.FieldDef{
				Span:  position.Span{Start: fieldStart.Span.Start, End: ty.GetSpan().End},
				Type:  ty,
				IsPub: isPub,
			})
			if _, ok := p.eat(lexer.TokenComma); !ok {
				break
			}
		}
		p.expectClosing(lexer.TokenRParen, open)
		p.eat(lexer.TokenSemicolon)
	default:
		decl.Kind = ast.StructUnit
		p.eat(lexer.TokenSemicolon)
	}
	decl.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return decl
}

// parseFieldDefs parses named fields up to the closing brace. A broken
// field is reported once and skipped to the next comma so its siblings
// survive.
func (p *Parser) parseFieldDefs(open lexer.Token) []*ast.FieldDef {
	var fields []*ast.FieldDef
	for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenComma) {
			p.advance()
			continue
		}
		before := p.cur.pos
		fieldStart := p.peek()
		isPub := false
		if _, ok := p.eat(lexer.TokenPub); ok {
			isPub = true
		}
		nameTok, ok := p.expect(lexer.TokenIdent, "as field name")
		if !ok {
			p.syncMember()
			if p.cur.pos == before {
				p.advance()
			}
			continue
		}
		field := &ast.FieldDef{Name: identFrom(nameTok), IsPub: isPub}
		if _, ok := p.expect(lexer.TokenColon, "after field name"); !ok {
			p.syncMember()
			continue
		}
		field.Type = p.parseType()
		if _, ok := p.eat(lexer.TokenAssign); ok {
			field.Default = p.parseExpr(bpLowest)
			if field.Default == nil {
				field.Default = &ast.BadExpr{Span: p.peek().Span}
				p.syncMember()
			}
		}
		field.Span = position.Span{Start: fieldStart.Span.Start, End: p.cur.prev.Span.End}
		fields = append(fields, field)
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	p.expectClosing(lexer.TokenRBrace, open)
	return fields
}

// parseEnumDecl parses enum Name<T> { variants }. Each variant may be
// unit, tuple, or struct shaped, with an optional discriminant.
func (p *Parser) parseEnumDecl(mods fnModifiers) ast.Stmt {
	kw := p.advance()
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as enum name")
	decl := &ast.EnumDecl{
		Name:     identFrom(nameTok),
		Generics: p.parseGenericParams(),
		IsPub:    mods.isPub,
	}
	open, ok := p.expect(lexer.TokenLBrace, "to open enum body")
	if ok {
		for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
			if p.at(lexer.TokenComma) {
				p.advance()
				continue
			}
			before := p.cur.pos
			variant := p.parseEnumVariant()
			if variant == nil {
				p.syncMember()
				if p.cur.pos == before {
					p.advance()
				}
				continue
			}
			decl.Variants = append(decl.Variants, variant)
			if _, ok := p.eat(lexer.TokenComma); !ok {
				break
			}
		}
		p.expectClosing(lexer.TokenRBrace, open)
	}
	decl.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return decl
}

func (p *Parser) parseEnumVariant() *ast.EnumVariant {
	nameTok, ok := p.expect(lexer.TokenIdent, "as enum variant")
	if !ok {
		return nil
	}
	variant := &ast.EnumVariant{Name: identFrom(nameTok), Kind: ast.VariantUnit}
	switch p.peek().Type {
	case lexer.TokenLParen:
		variant.Kind = ast.VariantTuple
		open := p.advance()
		for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenEOF) {
			ty := p.parseType()
			variant.Fields = append(variant.Fields, &ast.FieldDef{Span: ty.GetSpan(), Type: ty})
			if _, ok := p.eat(lexer.TokenComma); !ok {
				break
			}
		}
		p.expectClosing(lexer.TokenRParen, open)
	case lexer.TokenLBrace:
		variant.Kind = ast.VariantStruct
		open := p.advance()
		variant.Fields = p.parseFieldDefs(open)
	}
	if _, ok := p.eat(lexer.TokenAssign); ok {
		variant.Discriminant = p.parseExpr(bpLowest)
		if variant.Discriminant == nil {
			variant.Discriminant = &ast.BadExpr{Span: p.peek().Span}
		}
	}
	variant.Span = position.Span{Start: nameTok.Span.Start, End: p.cur.prev.Span.End}
	return variant
}
