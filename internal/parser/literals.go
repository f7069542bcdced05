package parser

import (
	"strconv"
	"strings"

	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/lexer"
)

// parseNumberLit decodes an integer or float token into a literal node.
// The lexer has already validated the shape; only range errors remain.
func (p *Parser) parseNumberLit() ast.Expr {
	tok := p.advance()
	text := strings.ReplaceAll(tok.Lexeme, "_", "")
	// The lexeme carries the type suffix; the numeric value does not.
	text = strings.TrimSuffix(text, tok.Suffix)

	if tok.Type == lexer.TokenFloat {
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.report(diag.LexError, tok.Span, "float literal out of range")
		}
		return &ast.Literal{
			Span:   tok.Span,
			Kind:   ast.LitFloat,
			Value:  val,
			Text:   tok.Lexeme,
			Suffix: tok.Suffix,
		}
	}

	base := 10
	digits := text
	if len(text) > 2 {
		switch text[:2] {
		case "0x", "0X":
			base, digits = 16, text[2:]
		case "0o", "0O":
			base, digits = 8, text[2:]
		case "0b", "0B":
			base, digits = 2, text[2:]
		}
	}
	val, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		p.report(diag.LexError, tok.Span, "integer literal out of range")
	}
	return &ast.Literal{
		Span:   tok.Span,
		Kind:   ast.LitInt,
		Value:  val,
		Text:   tok.Lexeme,
		Suffix: tok.Suffix,
	}
}

// parseStringLikeLit handles plain strings, raw strings, byte strings,
// and character literals. The token lexeme holds the content between
// the quotes, escapes still encoded.
func (p *Parser) parseStringLikeLit() ast.Expr {
	tok := p.advance()
	lit := &ast.Literal{Span: tok.Span, Text: tok.Lexeme}
	switch tok.Type {
	case lexer.TokenString:
		lit.Kind = ast.LitString
		lit.Value = p.decodeEscapes(tok)
	case lexer.TokenRawString:
		lit.Kind = ast.LitRawString
		lit.Value = tok.Lexeme
	case lexer.TokenByteString:
		lit.Kind = ast.LitByteString
		lit.Value = []byte(p.decodeEscapes(tok))
	case lexer.TokenChar:
		lit.Kind = ast.LitChar
		decoded := p.decodeEscapes(tok)
		r := []rune(decoded)
		if len(r) != 1 {
			p.report(diag.LexError, tok.Span, "character literal must contain exactly one character")
			lit.Value = rune(0)
		} else {
			lit.Value = r[0]
		}
	}
	return lit
}

// decodeEscapes resolves backslash escapes in a string or char token.
// Unknown escapes are reported once and passed through verbatim.
func (p *Parser) decodeEscapes(tok lexer.Token) string {
	s := tok.Lexeme
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'', '{', '}':
			b.WriteByte(s[i])
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			p.report(diag.LexError, tok.Span, "invalid \\x escape")
			b.WriteString("\\x")
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				end := strings.IndexByte(s[i+1:], '}')
				if end > 1 {
					hex := s[i+2 : i+1+end]
					if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
						b.WriteRune(rune(v))
						i += 1 + end
						continue
					}
				}
			}
			p.report(diag.LexError, tok.Span, "invalid \\u escape")
			b.WriteString("\\u")
		default:
			p.report(diag.LexError, tok.Span, "unknown escape \\%c", s[i])
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// parseInterpolatedString assembles the part list of an interpolated
// string from the lexer's start/fragment/open/close/end token protocol.
// Literal fragments become string literal parts; each interpolation
// hole holds one full expression, which may itself be an interpolated
// string.
func (p *Parser) parseInterpolatedString() ast.Expr {
	start := p.advance() // string start
	var parts []ast.Expr
	for {
		switch p.peek().Type {
		case lexer.TokenStringFragment:
			tok := p.advance()
			parts = append(parts, &ast.Literal{
				Span:  tok.Span,
				Kind:  ast.LitString,
				Value: p.decodeEscapes(tok),
				Text:  tok.Lexeme,
			})
		case lexer.TokenInterpOpen:
			open := p.advance()
			saved := p.noStructLit
			p.noStructLit = 0
			expr := p.parseExpr(bpLowest)
			p.noStructLit = saved
			if expr == nil {
				expr = &ast.BadExpr{Span: p.peek().Span}
				p.synchronize()
			}
			parts = append(parts, expr)
			p.expectClosing(lexer.TokenInterpClose, open)
		case lexer.TokenStringEnd:
			p.advance()
			return &ast.InterpolatedString{Span: p.spanFrom(start), Parts: parts}
		default:
			// Unterminated string: the lexer reported it and emitted a
			// synthetic end before this point, so reaching here means a
			// hole that never closed.
			return &ast.InterpolatedString{Span: p.spanFrom(start), Parts: parts}
		}
	}
}
