package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseParam parses one parameter: pattern, optional type annotation,
// optional default value. Used by fn declarations, constructors, and
// both closure forms.
func (p *Parser) parseParam() *ast.Param {
	start := p.peek()
	pat := p.parsePattern()
	if _, bad := pat.(*ast.BadPattern); bad {
		return nil
	}
	param := &ast.Param{Span: p.spanFrom(start), Pat: pat}
	if _, ok := p.eat(lexer.TokenColon); ok {
		param.Type = p.parseType()
	}
	if _, ok := p.eat(lexer.TokenAssign); ok {
		param.Default = p.parseExpr(bpLowest)
		if param.Default == nil {
			param.Default = &ast.BadExpr{Span: p.peek().Span}
		}
	}
	param.Span = p.spanFrom(start)
	return param
}

// parseParamList parses ( param, param, ) including both parentheses.
func (p *Parser) parseParamList() []*ast.Param {
	open, ok := p.expect(lexer.TokenLParen, "to open parameter list")
	if !ok {
		return nil
	}
	var params []*ast.Param
	for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenEOF) {
		param := p.parseParam()
		if param == nil {
			break
		}
		params = append(params, param)
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	p.expectClosing(lexer.TokenRParen, open)
	return params
}

// parseGenericParams parses an optional <T, U: Bound + Bound> clause on
// a declaration.
func (p *Parser) parseGenericParams() []*ast.GenericParam {
	if !p.at(lexer.TokenLt) {
		return nil
	}
	open := p.advance()
	var params []*ast.GenericParam
	for !p.at(lexer.TokenEOF) {
		nameTok, ok := p.expect(lexer.TokenIdent, "as generic parameter")
		if !ok {
			break
		}
		gp := &ast.GenericParam{Span: nameTok.Span, Name: identFrom(nameTok)}
		if _, ok := p.eat(lexer.TokenColon); ok {
			gp.Bounds = p.parseBoundList()
			gp.Span = p.spanFrom(nameTok)
		}
		params = append(params, gp)
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	if !p.cur.splitGt() {
		p.expectClosing(lexer.TokenGt, open)
	}
	return params
}

// parseBoundList parses Bound + Bound + ... after a colon.
func (p *Parser) parseBoundList() []ast.TypeExpr {
	bounds := []ast.TypeExpr{p.parseType()}
	for {
		if _, ok := p.eat(lexer.TokenPlus); !ok {
			return bounds
		}
		bounds = append(bounds, p.parseType())
	}
}

// fnModifiers carries the modifier context accumulated before a
// declaration keyword.
type fnModifiers struct {
	isPub      bool
	isStatic   bool
	isAsync    bool
	start      lexer.Token
	hasStart   bool
	decorators []*ast.Decorator
}

func (m *fnModifiers) startOr(tok lexer.Token) lexer.Token {
	if m.hasStart {
		return m.start
	}
	return tok
}

// parseFnDecl parses fn name<T>(params) -> Ret { body }. Inside traits
// the body may be a bare semicolon, leaving a nil body.
func (p *Parser) parseFnDecl(mods fnModifiers) *ast.FnDecl {
	kw := p.advance() // fn
	start := mods.startOr(kw)
	nameTok, _ := p.expect(lexer.TokenIdent, "as function name")
	fn := &ast.FnDecl{
		Name:       identFrom(nameTok),
		Generics:   p.parseGenericParams(),
		IsAsync:    mods.isAsync,
		IsPub:      mods.isPub,
		IsStatic:   mods.isStatic,
		Decorators: mods.decorators,
	}
	fn.Params = p.parseParamList()
	if _, ok := p.eat(lexer.TokenArrow); ok {
		fn.ReturnType = p.parseType()
	}
	switch {
	case p.at(lexer.TokenLBrace):
		open := p.advance()
		fn.Body = p.parseBlockBody(open)
	case p.at(lexer.TokenSemicolon):
		p.advance()
	default:
		p.expect(lexer.TokenLBrace, "to open function body")
		p.synchronize()
	}
	fn.Span = position.Span{Start: start.Span.Start, End: p.cur.prev.Span.End}
	return fn
}

// parsePipeLambda parses |x, y| body and the empty form || body. The
// start token is the async keyword for async closures, otherwise the
// opening pipe.
func (p *Parser) parsePipeLambda(start lexer.Token, isAsync bool) ast.Expr {
	var params []*ast.Param
	if p.at(lexer.TokenOrOr) {
		p.advance()
	} else {
		p.advance() // |
		for !p.at(lexer.TokenPipe) && !p.at(lexer.TokenEOF) {
			param := p.parseParam()
			if param == nil {
				p.synchronize()
				break
			}
			params = append(params, param)
			if _, ok := p.eat(lexer.TokenComma); !ok {
				break
			}
		}
		p.expect(lexer.TokenPipe, "to close closure parameters")
	}
	var ret ast.TypeExpr
	if _, ok := p.eat(lexer.TokenArrow); ok {
		ret = p.parseType()
	}
	body := p.parseLambdaBody()
	return &ast.Lambda{
		Span:       position.Span{Start: start.Span.Start, End: body.GetSpan().End},
		Params:     params,
		ReturnType: ret,
		Body:       body,
		IsAsync:    isAsync,
	}
}
