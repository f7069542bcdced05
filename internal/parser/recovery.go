package parser

import "github.com/veld-lang/veld/internal/lexer"

// declStarters are the tokens panic-mode recovery treats as the start
// of a fresh statement or declaration.
var declStarters = map[lexer.TokenType]bool{
	lexer.TokenLet:      true,
	lexer.TokenVar:      true,
	lexer.TokenConst:    true,
	lexer.TokenFn:       true,
	lexer.TokenStruct:   true,
	lexer.TokenClass:    true,
	lexer.TokenEnum:     true,
	lexer.TokenTrait:    true,
	lexer.TokenImpl:     true,
	lexer.TokenTypeKw:   true,
	lexer.TokenModule:   true,
	lexer.TokenUse:      true,
	lexer.TokenPub:      true,
	lexer.TokenIf:       true,
	lexer.TokenMatch:    true,
	lexer.TokenFor:      true,
	lexer.TokenWhile:    true,
	lexer.TokenLoop:     true,
	lexer.TokenReturn:   true,
	lexer.TokenTry:      true,
	lexer.TokenBreak:    true,
	lexer.TokenContinue: true,
}

// synchronize discards tokens until a statement boundary: a semicolon
// (consumed), a closing brace (left for the enclosing block), a token
// that starts a declaration, or end of input. One diagnostic has
// already been reported for the broken construct; everything skipped
// here is swallowed silently.
func (p *Parser) synchronize() {
	p.cur.panicking = false
	for !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenSemicolon) {
			p.advance()
			return
		}
		if p.at(lexer.TokenRBrace) || declStarters[p.peek().Type] {
			return
		}
		p.advance()
	}
}

// syncMember discards tokens inside a struct, enum, class, or trait
// body until something that can start the next member, a comma, or the
// closing brace. Sibling members after a broken one still parse.
func (p *Parser) syncMember() {
	p.cur.panicking = false
	for !p.at(lexer.TokenEOF) {
		switch p.peek().Type {
		case lexer.TokenComma, lexer.TokenSemicolon:
			p.advance()
			return
		case lexer.TokenRBrace,
			lexer.TokenPub, lexer.TokenStatic, lexer.TokenAt,
			lexer.TokenFn, lexer.TokenNew, lexer.TokenConst,
			lexer.TokenLet, lexer.TokenVar, lexer.TokenTypeKw:
			return
		}
		p.advance()
	}
}

// canStartExpr reports whether a token can begin an expression; used
// to decide whether break/return carry a value and whether a list may
// continue after recovery.
func canStartExpr(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenIdent, lexer.TokenInt, lexer.TokenFloat,
		lexer.TokenString, lexer.TokenRawString, lexer.TokenByteString,
		lexer.TokenChar, lexer.TokenStringStart, lexer.TokenLabel,
		lexer.TokenTrue, lexer.TokenFalse,
		lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
		lexer.TokenMinus, lexer.TokenBang, lexer.TokenTilde,
		lexer.TokenAmp, lexer.TokenStar,
		lexer.TokenPipe, lexer.TokenOrOr,
		lexer.TokenIf, lexer.TokenMatch, lexer.TokenFor,
		lexer.TokenWhile, lexer.TokenLoop, lexer.TokenTry,
		lexer.TokenAsync, lexer.TokenSpawn, lexer.TokenAwait,
		lexer.TokenBreak, lexer.TokenContinue, lexer.TokenReturn:
		return true
	}
	return false
}

// canStartPattern reports whether a token can begin a pattern.
func canStartPattern(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenUnderscore, lexer.TokenIdent,
		lexer.TokenInt, lexer.TokenFloat, lexer.TokenString,
		lexer.TokenRawString, lexer.TokenByteString, lexer.TokenChar,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenMinus,
		lexer.TokenLParen, lexer.TokenLBracket:
		return true
	}
	return false
}
