package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
)

// parsePrimary dispatches on the leading token of an atomic expression.
// Returns nil (after reporting) when the token cannot start one.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokenInt, lexer.TokenFloat:
		return p.parseNumberLit()
	case lexer.TokenString, lexer.TokenRawString, lexer.TokenByteString, lexer.TokenChar:
		return p.parseStringLikeLit()
	case lexer.TokenStringStart:
		return p.parseInterpolatedString()
	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.Literal{
			Span:  tok.Span,
			Kind:  ast.LitBool,
			Value: tok.Type == lexer.TokenTrue,
			Text:  tok.Lexeme,
		}
	case lexer.TokenIdent:
		return p.parsePathExpr()
	case lexer.TokenLParen:
		return p.parseParenExpr()
	case lexer.TokenLBracket:
		return p.parseArrayLit()
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenMatch:
		return p.parseMatch()
	case lexer.TokenFor:
		return p.parseFor("")
	case lexer.TokenWhile:
		return p.parseWhile("")
	case lexer.TokenLoop:
		return p.parseLoop("")
	case lexer.TokenLabel:
		return p.parseLabeled()
	case lexer.TokenBreak:
		return p.parseBreak()
	case lexer.TokenContinue:
		return p.parseContinue()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenTry:
		return p.parseTry()
	case lexer.TokenAsync:
		return p.parseAsync()
	case lexer.TokenPipe, lexer.TokenOrOr:
		return p.parsePipeLambda(tok, false)
	case lexer.TokenError:
		// The lexer already reported it; consume and keep going.
		p.advance()
		return &ast.BadExpr{Span: tok.Span}
	}
	p.report(diag.UnexpectedToken, tok.Span,
		"expected expression, found %s", describe(tok))
	return nil
}

// parseArrayLit parses [a, b, c] with optional trailing comma.
func (p *Parser) parseArrayLit() ast.Expr {
	open := p.advance()
	saved := p.noStructLit
	p.noStructLit = 0
	defer func() { p.noStructLit = saved }()

	var elems []ast.Expr
	for !p.at(lexer.TokenRBracket) && !p.at(lexer.TokenEOF) {
		e := p.parseExpr(bpLowest)
		if e == nil {
			p.synchronize()
			break
		}
		elems = append(elems, e)
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	p.expectClosing(lexer.TokenRBracket, open)
	return &ast.ArrayLit{Span: p.spanFrom(open), Elems: elems}
}

// parseParenExpr handles everything that starts with ( in expression
// position: the unit literal, a parenthesized group, a tuple, and the
// arrow-lambda parameter list. Lambda is tried first with a bounded
// rewind; a group or tuple never looks like params followed by =>.
func (p *Parser) parseParenExpr() ast.Expr {
	open := p.advance()
	saved := p.noStructLit
	p.noStructLit = 0
	defer func() { p.noStructLit = saved }()

	if p.at(lexer.TokenRParen) {
		p.advance()
		if p.at(lexer.TokenFatArrow) {
			p.advance()
			body := p.parseLambdaBody()
			return &ast.Lambda{Span: p.spanFrom(open), Body: body}
		}
		return &ast.Literal{Span: p.spanFrom(open), Kind: ast.LitUnit, Text: "()"}
	}

	cp := p.beginTrial()
	params, ok := p.tryParenParams()
	if ok && p.at(lexer.TokenFatArrow) {
		p.endTrial(cp, true)
		p.advance()
		body := p.parseLambdaBody()
		return &ast.Lambda{Span: p.spanFrom(open), Params: params, Body: body}
	}
	p.endTrial(cp, false)

	first := p.parseExpr(bpLowest)
	if first == nil {
		p.synchronize()
		p.expectClosing(lexer.TokenRParen, open)
		return &ast.BadExpr{Span: p.spanFrom(open)}
	}
	if p.at(lexer.TokenComma) {
		elems := []ast.Expr{first}
		for {
			if _, ok := p.eat(lexer.TokenComma); !ok {
				break
			}
			if p.at(lexer.TokenRParen) {
				break
			}
			e := p.parseExpr(bpLowest)
			if e == nil {
				p.synchronize()
				break
			}
			elems = append(elems, e)
		}
		p.expectClosing(lexer.TokenRParen, open)
		return &ast.TupleLit{Span: p.spanFrom(open), Elems: elems}
	}
	p.expectClosing(lexer.TokenRParen, open)
	// A parenthesized group is transparent: the inner node carries its
	// own span and the parentheses leave no node behind.
	return first
}

// tryParenParams speculatively parses a parameter list up to and
// including the closing parenthesis. Any token that does not fit the
// parameter grammar fails the attempt.
func (p *Parser) tryParenParams() ([]*ast.Param, bool) {
	var params []*ast.Param
	for !p.at(lexer.TokenRParen) {
		if !canStartPattern(p.peek().Type) {
			return nil, false
		}
		param := p.parseParam()
		if param == nil {
			return nil, false
		}
		params = append(params, param)
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	if !p.at(lexer.TokenRParen) {
		return nil, false
	}
	p.advance()
	return params, true
}

// parseLambdaBody parses the body after => or after closure pipes:
// either a block or a single expression.
func (p *Parser) parseLambdaBody() ast.Expr {
	if p.at(lexer.TokenLBrace) {
		return p.parseBlock()
	}
	body := p.parseExpr(bpLowest)
	if body == nil {
		body = &ast.BadExpr{Span: p.peek().Span}
	}
	return body
}

// parseBreak parses break with optional label and optional value.
func (p *Parser) parseBreak() ast.Expr {
	kw := p.advance()
	label := p.eatLabel()
	var value ast.Expr
	if canStartExpr(p.peek().Type) && !p.at(lexer.TokenLBrace) {
		value = p.parseExpr(bpLowest)
	}
	return &ast.BreakExpr{Span: p.spanFrom(kw), Label: label, Value: value}
}

func (p *Parser) parseContinue() ast.Expr {
	kw := p.advance()
	label := p.eatLabel()
	return &ast.ContinueExpr{Span: p.spanFrom(kw), Label: label}
}

func (p *Parser) parseReturn() ast.Expr {
	kw := p.advance()
	var value ast.Expr
	if canStartExpr(p.peek().Type) {
		value = p.parseExpr(bpLowest)
	}
	return &ast.ReturnExpr{Span: p.spanFrom(kw), Value: value}
}

func (p *Parser) eatLabel() string {
	if p.at(lexer.TokenLabel) {
		return p.advance().Lexeme
	}
	return ""
}

// parseAsync handles async blocks and async closures in expression
// position; async fn is a declaration and never reaches here.
func (p *Parser) parseAsync() ast.Expr {
	kw := p.advance()
	switch p.peek().Type {
	case lexer.TokenLBrace:
		body := p.parseBlockExpr()
		return &ast.AsyncBlock{Span: p.spanFrom(kw), Body: body}
	case lexer.TokenPipe, lexer.TokenOrOr:
		lam := p.parsePipeLambda(kw, true)
		return lam
	}
	p.report(diag.UnexpectedToken, p.peek().Span,
		"expected block or closure after async, found %s", describe(p.peek()))
	return &ast.BadExpr{Span: p.spanFrom(kw)}
}

// parseBlockExpr is parseBlock with the concrete result type, for
// callers that require a block node.
func (p *Parser) parseBlockExpr() *ast.BlockExpr {
	e := p.parseBlock()
	if b, ok := e.(*ast.BlockExpr); ok {
		return b
	}
	return &ast.BlockExpr{Span: e.GetSpan()}
}

// parseBlock parses { stmt* tail? }. The last expression without a
// trailing semicolon becomes the block's value.
func (p *Parser) parseBlock() ast.Expr {
	open, ok := p.expect(lexer.TokenLBrace, "to open block")
	if !ok {
		return &ast.BlockExpr{Span: open.Span}
	}
	return p.parseBlockBody(open)
}

func (p *Parser) parseBlockBody(open lexer.Token) *ast.BlockExpr {
	saved := p.noStructLit
	p.noStructLit = 0
	defer func() { p.noStructLit = saved }()

	var stmts []ast.Stmt
	var tail ast.Expr
	for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenSemicolon) {
			p.advance()
			continue
		}
		if startsDeclaration(p.peek().Type) {
			before := p.cur.pos
			stmt := p.parseStmt()
			if stmt != nil {
				stmts = append(stmts, stmt)
			}
			if p.cur.pos == before {
				p.advance()
			}
			continue
		}
		exprTok := p.peek()
		expr := p.parseExpr(bpLowest)
		if expr == nil {
			p.synchronize()
			stmts = append(stmts, &ast.BadStmt{Span: p.spanFrom(exprTok)})
			continue
		}
		switch {
		case p.at(lexer.TokenSemicolon):
			p.advance()
			stmts = append(stmts, &ast.ExprStmt{Span: p.spanFromExpr(expr), X: expr})
		case p.at(lexer.TokenRBrace), p.at(lexer.TokenEOF):
			tail = expr
		case isBlockLike(expr):
			// Block-shaped expressions terminate themselves.
			stmts = append(stmts, &ast.ExprStmt{Span: expr.GetSpan(), X: expr})
		default:
			p.report(diag.UnexpectedToken, p.peek().Span,
				"expected ; or } after expression, found %s", describe(p.peek()))
			stmts = append(stmts, &ast.ExprStmt{Span: expr.GetSpan(), X: expr})
			p.synchronize()
		}
	}
	p.expectClosing(lexer.TokenRBrace, open)
	return &ast.BlockExpr{Span: p.spanFrom(open), Stmts: stmts, Tail: tail}
}

// isBlockLike reports whether an expression form ends with a brace and
// therefore needs no semicolon in statement position.
func isBlockLike(e ast.Expr) bool {
	switch e.(type) {
	case *ast.BlockExpr, *ast.IfExpr, *ast.MatchExpr, *ast.ForExpr,
		*ast.WhileExpr, *ast.LoopExpr, *ast.TryExpr, *ast.AsyncBlock:
		return true
	}
	return false
}

// startsDeclaration reports whether a token begins a declaration
// statement inside a block.
func startsDeclaration(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenLet, lexer.TokenVar, lexer.TokenConst,
		lexer.TokenFn, lexer.TokenStruct, lexer.TokenClass,
		lexer.TokenEnum, lexer.TokenTrait, lexer.TokenImpl,
		lexer.TokenTypeKw, lexer.TokenModule, lexer.TokenUse,
		lexer.TokenPub:
		return true
	}
	return false
}
