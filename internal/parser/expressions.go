package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// parseExpr parses an expression whose operators all bind at least as
// tightly as minBP. Returns nil when the current token cannot start an
// expression; the failure has been reported.
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	return p.parseBinaryRHS(left, minBP)
}

// parseBinaryRHS is the precedence-climbing loop. Assignment, cast,
// type test, and pipeline build their own node shapes; everything else
// goes through the binaryOps table.
func (p *Parser) parseBinaryRHS(left ast.Expr, minBP int) ast.Expr {
	for {
		tok := p.peek()

		if op, ok := assignOps[tok.Type]; ok {
			if bpAssign < minBP {
				return left
			}
			p.advance()
			right := p.parseExpr(bpAssign) // right-associative
			if right == nil {
				right = p.missingOperand(tok)
			}
			left = &ast.Assign{
				Span:   position.Span{Start: left.GetSpan().Start, End: right.GetSpan().End},
				Op:     op,
				Target: left,
				Value:  right,
			}
			continue
		}

		switch tok.Type {
		case lexer.TokenAs:
			if bpTypeTest < minBP {
				return left
			}
			p.advance()
			ty := p.parseType()
			left = &ast.Cast{
				Span: position.Span{Start: left.GetSpan().Start, End: ty.GetSpan().End},
				X:    left,
				Type: ty,
			}
			continue
		case lexer.TokenIs:
			if bpTypeTest < minBP {
				return left
			}
			p.advance()
			ty := p.parseType()
			left = &ast.TypeTest{
				Span: position.Span{Start: left.GetSpan().Start, End: ty.GetSpan().End},
				X:    left,
				Type: ty,
			}
			continue
		case lexer.TokenPipeline:
			if bpPipeline < minBP {
				return left
			}
			p.advance()
			right := p.parseExpr(bpPipeline + 1) // left-associative
			if right == nil {
				right = p.missingOperand(tok)
			}
			left = rewritePipeline(left, right)
			continue
		}

		info, ok := binaryOps[tok.Type]
		if !ok || info.lbp < minBP {
			return left
		}
		p.advance()
		right := p.parseExpr(info.rbp)
		if right == nil {
			right = p.missingOperand(tok)
		}
		left = &ast.Binary{
			Span:  position.Span{Start: left.GetSpan().Start, End: right.GetSpan().End},
			Op:    info.op,
			Left:  left,
			Right: right,
		}
	}
}

// missingOperand reports a dangling operator and yields a placeholder
// so the surrounding expression keeps its shape. One diagnostic per
// broken construct: the primary dispatch has already reported the token
// that failed to start the operand, and that report is replaced here.
func (p *Parser) missingOperand(op lexer.Token) ast.Expr {
	if p.trial == 0 {
		if n := len(p.diags); n > 0 {
			last := p.diags[n-1]
			if last.Kind == diag.UnexpectedToken &&
				last.Span.Start.Offset == p.peek().Span.Start.Offset {
				p.diags = p.diags[:n-1]
			}
		}
	}
	p.report(diag.ExpectedExpressionAfterOperator, op.Span,
		"expected expression after %s", describe(op))
	return &ast.BadExpr{Span: position.Span{Start: op.Span.End, End: op.Span.End}}
}

// rewritePipeline desugars value |> callee into a call with the value
// prepended to the arguments. The pipeline never survives into the
// tree as a binary node.
func rewritePipeline(value, callee ast.Expr) ast.Expr {
	span := position.Span{Start: value.GetSpan().Start, End: callee.GetSpan().End}
	if call, ok := callee.(*ast.Call); ok {
		call.Span = span
		call.Args = append([]ast.Expr{value}, call.Args...)
		return call
	}
	return &ast.Call{Span: span, Callee: callee, Args: []ast.Expr{value}}
}

// parseUnary parses prefix operators, which bind tighter than every
// binary operator including **, then hands off to the postfix chain.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	if op, ok := unaryOps[tok.Type]; ok {
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			operand = p.missingOperand(tok)
		}
		return &ast.Unary{
			Span:    position.Span{Start: tok.Span.Start, End: operand.GetSpan().End},
			Op:      op,
			Operand: operand,
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix applies call, method call, field access, and index
// suffixes, which bind tighter than any operator.
func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	if left == nil {
		return nil
	}
	for {
		switch p.peek().Type {
		case lexer.TokenDot:
			p.advance()
			nameTok, ok := p.expect(lexer.TokenIdent, "after .")
			if !ok {
				return &ast.BadExpr{Span: p.spanFromExpr(left)}
			}
			name := identFrom(nameTok)
			var generics []ast.TypeExpr
			if p.at(lexer.TokenColonColon) && p.peek2().Type == lexer.TokenLt {
				generics = p.parseTurbofish()
			}
			if p.at(lexer.TokenLParen) {
				open := p.advance()
				args := p.parseCallArgs(open)
				left = &ast.MethodCall{
					Span:     p.spanFromExpr(left),
					Receiver: left,
					Method:   name,
					Generics: generics,
					Args:     args,
				}
			} else {
				if generics != nil {
					p.report(diag.UnexpectedToken, p.peek().Span,
						"expected argument list after method type arguments, found %s", describe(p.peek()))
				}
				left = &ast.FieldAccess{
					Span:     position.Span{Start: left.GetSpan().Start, End: name.Span.End},
					Receiver: left,
					Field:    name,
				}
			}
		case lexer.TokenLParen:
			open := p.advance()
			args := p.parseCallArgs(open)
			left = &ast.Call{Span: p.spanFromExpr(left), Callee: left, Args: args}
		case lexer.TokenLBracket:
			open := p.advance()
			saved := p.noStructLit
			p.noStructLit = 0
			idx := p.parseExpr(bpLowest)
			p.noStructLit = saved
			if idx == nil {
				idx = &ast.BadExpr{Span: p.peek().Span}
			}
			p.expectClosing(lexer.TokenRBracket, open)
			left = &ast.Index{Span: p.spanFromExpr(left), Receiver: left, Index: idx}
		default:
			return left
		}
	}
}

// spanFromExpr extends an expression's span to the last consumed token.
func (p *Parser) spanFromExpr(e ast.Expr) position.Span {
	return position.Span{Start: e.GetSpan().Start, End: p.cur.prev.Span.End}
}

// parseCallArgs parses a comma-separated argument list; the opening
// parenthesis has been consumed. Struct literals are legal again inside
// the parentheses regardless of the surrounding context.
func (p *Parser) parseCallArgs(open lexer.Token) []ast.Expr {
	saved := p.noStructLit
	p.noStructLit = 0
	defer func() { p.noStructLit = saved }()

	var args []ast.Expr
	for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenEOF) {
		arg := p.parseExpr(bpLowest)
		if arg == nil {
			p.synchronize()
			break
		}
		args = append(args, arg)
		if _, ok := p.eat(lexer.TokenComma); !ok {
			break
		}
	}
	p.expectClosing(lexer.TokenRParen, open)
	return args
}

func identFrom(tok lexer.Token) *ast.Identifier {
	return &ast.Identifier{Span: tok.Span, Name: tok.Lexeme}
}
