// Package parser implements the Veld recursive descent parser: a
// precedence-climbing expression core with per-production grammar
// modules, bounded checkpoint/restore disambiguation, and panic-mode
// error recovery that keeps producing diagnostics after the first
// mistake.
package parser

import (
	"github.com/veld-lang/veld/internal/lexer"
	"github.com/veld-lang/veld/internal/position"
)

// cursor is the token stream cursor: two-token lookahead over the lazy
// lexer, O(1) checkpoint/restore for the small fixed set of documented
// ambiguities, and the panic-mode flag. It is exclusively owned by one
// parse call and never shared.
//
// Tokens already pulled from the lexer are retained in an append-only
// buffer, which is what makes restore cheap: a checkpoint is just an
// index. Comment tokens are filtered out here; the full stream with
// comments stays available through lexer.Tokenize.
type cursor struct {
	lex  *lexer.Lexer
	toks []lexer.Token
	pos  int
	prev lexer.Token

	panicking bool

	// splitLog records > tokens carved out of >> / >>= / >= while
	// closing generic-argument lists, so restore can undo them.
	splitLog []splitRecord
}

type splitRecord struct {
	idx  int
	orig lexer.Token
}

// checkpoint captures the cursor state for bounded backtracking.
type checkpoint struct {
	pos    int
	prev   lexer.Token
	splits int
}

func newCursor(lex *lexer.Lexer) *cursor {
	return &cursor{lex: lex}
}

// fill ensures toks[pos+n] exists. Past end of input the lexer yields
// EOF forever, so this always terminates.
func (c *cursor) fill(n int) {
	for len(c.toks) <= c.pos+n {
		tok := c.lex.NextToken()
		if tok.IsComment() {
			continue
		}
		c.toks = append(c.toks, tok)
	}
}

// peek returns the current token without consuming it.
func (c *cursor) peek() lexer.Token {
	c.fill(0)
	return c.toks[c.pos]
}

// peek2 returns the token after the current one. Two tokens of lookahead
// are what the generic-vs-comparison and label disambiguations need.
func (c *cursor) peek2() lexer.Token {
	c.fill(1)
	return c.toks[c.pos+1]
}

// advance consumes and returns the current token.
func (c *cursor) advance() lexer.Token {
	tok := c.peek()
	c.pos++
	c.prev = tok
	return tok
}

// save takes a checkpoint.
func (c *cursor) save() checkpoint {
	return checkpoint{pos: c.pos, prev: c.prev, splits: len(c.splitLog)}
}

// restore rewinds to a checkpoint, undoing any token splits performed
// since it was taken.
func (c *cursor) restore(cp checkpoint) {
	for len(c.splitLog) > cp.splits {
		r := c.splitLog[len(c.splitLog)-1]
		c.splitLog = c.splitLog[:len(c.splitLog)-1]
		c.toks[r.idx] = r.orig
		c.toks = append(c.toks[:r.idx+1], c.toks[r.idx+2:]...)
	}
	c.pos = cp.pos
	c.prev = cp.prev
}

// splitGt consumes a closing > for a generic-argument list. When the
// lexer munched the > into >>, >>=, or >=, the token is split in place
// so the remainder stays in the stream (Vec<Vec<i32>> needs this).
func (c *cursor) splitGt() bool {
	tok := c.peek()
	switch tok.Type {
	case lexer.TokenGt:
		c.advance()
		return true
	case lexer.TokenShr, lexer.TokenShrAssign, lexer.TokenGe:
		var restType lexer.TokenType
		switch tok.Type {
		case lexer.TokenShr:
			restType = lexer.TokenGt
		case lexer.TokenShrAssign:
			restType = lexer.TokenGe
		case lexer.TokenGe:
			restType = lexer.TokenAssign
		}
		mid := position.Position{
			Filename: tok.Span.Start.Filename,
			Line:     tok.Span.Start.Line,
			Column:   tok.Span.Start.Column + 1,
			Offset:   tok.Span.Start.Offset + 1,
		}
		first := lexer.Token{
			Type:   lexer.TokenGt,
			Lexeme: ">",
			Span:   position.Span{Start: tok.Span.Start, End: mid},
		}
		rest := lexer.Token{
			Type:   restType,
			Lexeme: tok.Lexeme[1:],
			Span:   position.Span{Start: mid, End: tok.Span.End},
		}
		c.splitLog = append(c.splitLog, splitRecord{idx: c.pos, orig: tok})
		c.toks[c.pos] = first
		c.toks = append(c.toks[:c.pos+1], append([]lexer.Token{rest}, c.toks[c.pos+1:]...)...)
		c.advance()
		return true
	}
	return false
}
