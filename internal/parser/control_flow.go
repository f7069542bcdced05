package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseSubject parses the scrutinee of a control-flow construct. A
// brace after a path here opens the body, never a struct literal.
func (p *Parser) parseSubject() ast.Expr {
	p.noStructLit++
	defer func() { p.noStructLit-- }()
	expr := p.parseExpr(bpLowest)
	if expr == nil {
		expr = &ast.BadExpr{Span: p.peek().Span}
		p.synchronize()
	}
	return expr
}

// parseIf parses if cond { } else if ... else { }. The else arm is
// either another if or a block; both are expressions.
func (p *Parser) parseIf() ast.Expr {
	kw := p.advance()
	cond := p.parseSubject()
	then := p.parseBlockRequired("if body")
	var els ast.Expr
	if _, ok := p.eat(lexer.TokenElse); ok {
		if p.at(lexer.TokenIf) {
			els = p.parseIf()
		} else {
			els = p.parseBlockRequired("else body")
		}
	}
	return &ast.IfExpr{Span: p.spanFrom(kw), Cond: cond, Then: blockOf(then), Else: els}
}

// parseBlockRequired parses a block where only a block is legal,
// reporting when the brace is missing.
func (p *Parser) parseBlockRequired(what string) ast.Expr {
	if !p.at(lexer.TokenLBrace) {
		p.report(diag.UnexpectedToken, p.peek().Span,
			"expected { to open %s, found %s", what, describe(p.peek()))
		return &ast.BlockExpr{Span: p.peek().Span}
	}
	open := p.advance()
	return p.parseBlockBody(open)
}

func blockOf(e ast.Expr) *ast.BlockExpr {
	if b, ok := e.(*ast.BlockExpr); ok {
		return b
	}
	return &ast.BlockExpr{Span: e.GetSpan()}
}

// parseMatch parses match subject { pat | pat if guard => body, ... }.
// A broken arm is reported once and skipped to the next comma so the
// remaining arms still parse.
func (p *Parser) parseMatch() ast.Expr {
	kw := p.advance()
	subject := p.parseSubject()
	open, ok := p.expect(lexer.TokenLBrace, "to open match body")
	if !ok {
		return &ast.MatchExpr{Span: p.spanFrom(kw), Subject: subject}
	}
	var arms []*ast.MatchArm
	for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenComma) {
			p.advance()
			continue
		}
		before := p.cur.pos
		arm := p.parseMatchArm()
		if arm != nil {
			arms = append(arms, arm)
		}
		if p.cur.pos == before {
			p.advance()
		}
	}
	p.expectClosing(lexer.TokenRBrace, open)
	return &ast.MatchExpr{Span: p.spanFrom(kw), Subject: subject, Arms: arms}
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	start := p.peek()
	pat := p.parseOrPattern()
	if _, bad := pat.(*ast.BadPattern); bad {
		p.syncArm()
		return nil
	}
	var guard ast.Expr
	if _, ok := p.eat(lexer.TokenIf); ok {
		guard = p.parseExpr(bpLowest)
		if guard == nil {
			guard = &ast.BadExpr{Span: p.peek().Span}
		}
	}
	if _, ok := p.expect(lexer.TokenFatArrow, "after match pattern"); !ok {
		p.syncArm()
		return nil
	}
	body := p.parseExpr(bpLowest)
	if body == nil {
		body = &ast.BadExpr{Span: p.peek().Span}
		p.syncArm()
	}
	return &ast.MatchArm{Span: p.spanFrom(start), Pat: pat, Guard: guard, Body: body}
}

// syncArm skips to the end of a broken match arm: the next comma or
// the closing brace of the match.
func (p *Parser) syncArm() {
	depth := 0
	for !p.at(lexer.TokenEOF) {
		switch p.peek().Type {
		case lexer.TokenComma:
			if depth == 0 {
				p.advance()
				return
			}
		case lexer.TokenLBrace, lexer.TokenLParen, lexer.TokenLBracket:
			depth++
		case lexer.TokenRBrace, lexer.TokenRParen, lexer.TokenRBracket:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// parseFor parses for pat in iterable { }.
func (p *Parser) parseFor(label string) ast.Expr {
	kw := p.advance()
	pat := p.parsePattern()
	p.expect(lexer.TokenIn, "after for pattern")
	iterable := p.parseSubject()
	body := p.parseBlockRequired("for body")
	return &ast.ForExpr{
		Span:     p.spanFrom(kw),
		Label:    label,
		Pat:      pat,
		Iterable: iterable,
		Body:     blockOf(body),
	}
}

// parseWhile parses while cond { } and while let pat = subject { }.
func (p *Parser) parseWhile(label string) ast.Expr {
	kw := p.advance()
	var pat ast.Pattern
	if _, ok := p.eat(lexer.TokenLet); ok {
		pat = p.parsePattern()
		p.expect(lexer.TokenAssign, "after while let pattern")
	}
	cond := p.parseSubject()
	body := p.parseBlockRequired("while body")
	return &ast.WhileExpr{
		Span:  p.spanFrom(kw),
		Label: label,
		Pat:   pat,
		Cond:  cond,
		Body:  blockOf(body),
	}
}

// parseLoop parses loop { }.
func (p *Parser) parseLoop(label string) ast.Expr {
	kw := p.advance()
	body := p.parseBlockRequired("loop body")
	return &ast.LoopExpr{Span: p.spanFrom(kw), Label: label, Body: blockOf(body)}
}

// parseLabeled parses 'name: for/while/loop.
func (p *Parser) parseLabeled() ast.Expr {
	labelTok := p.advance()
	p.expect(lexer.TokenColon, "after loop label")
	switch p.peek().Type {
	case lexer.TokenFor:
		e := p.parseFor(labelTok.Lexeme)
		return relabelSpan(e, labelTok)
	case lexer.TokenWhile:
		e := p.parseWhile(labelTok.Lexeme)
		return relabelSpan(e, labelTok)
	case lexer.TokenLoop:
		e := p.parseLoop(labelTok.Lexeme)
		return relabelSpan(e, labelTok)
	}
	p.report(diag.UnexpectedToken, p.peek().Span,
		"expected for, while, or loop after label, found %s", describe(p.peek()))
	return &ast.BadExpr{Span: labelTok.Span}
}

// relabelSpan stretches a labeled loop's span back to the label token.
func relabelSpan(e ast.Expr, label lexer.Token) ast.Expr {
	start := label.Span.Start
	switch n := e.(type) {
	case *ast.ForExpr:
		n.Span = position.Span{Start: start, End: n.Span.End}
	case *ast.WhileExpr:
		n.Span = position.Span{Start: start, End: n.Span.End}
	case *ast.LoopExpr:
		n.Span = position.Span{Start: start, End: n.Span.End}
	}
	return e
}

// parseTry parses try { } catch pat { } ... finally { }. A try with
// neither catch nor finally is reported but kept in the tree.
func (p *Parser) parseTry() ast.Expr {
	kw := p.advance()
	body := blockOf(p.parseBlockRequired("try body"))
	var catches []*ast.CatchClause
	for p.at(lexer.TokenCatch) {
		catchKw := p.advance()
		var pat ast.Pattern
		if _, ok := p.eat(lexer.TokenLParen); ok {
			pat = p.parsePattern()
			p.expect(lexer.TokenRParen, "after catch pattern")
		} else if canStartPattern(p.peek().Type) && !p.at(lexer.TokenLBrace) {
			pat = p.parsePattern()
		}
		cbody := blockOf(p.parseBlockRequired("catch body"))
		catches = append(catches, &ast.CatchClause{
			Span: position.Span{Start: catchKw.Span.Start, End: cbody.Span.End},
			Pat:  pat,
			Body: cbody,
		})
	}
	var finally *ast.BlockExpr
	if _, ok := p.eat(lexer.TokenFinally); ok {
		finally = blockOf(p.parseBlockRequired("finally body"))
	}
	if len(catches) == 0 && finally == nil {
		p.report(diag.DanglingTry, kw.Span,
			"try block has no catch or finally clause")
	}
	return &ast.TryExpr{Span: p.spanFrom(kw), Body: body, Catches: catches, Finally: finally}
}
