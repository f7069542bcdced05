package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/veld-lang/veld/internal/diag"
	"github.com/veld-lang/veld/internal/position"
)

// lexMode selects how NextToken interprets the next bytes. Interpolated
// strings push and pop modes so that embedded expressions are lexed with
// the ordinary code rules.
type lexMode int

const (
	modeCode   lexMode = iota
	modeString         // inside an interpolated string, between fragments
)

type modeFrame struct {
	mode lexMode
	// braceDepth tracks nested { } inside an interpolation expression so
	// the closing brace of the interpolation is not confused with a block.
	braceDepth int
}

// Lexer scans an in-memory source buffer. Tokens are produced lazily,
// one at a time, forward-only; a lex error never stalls the stream
// because the lexer always advances at least one code point.
type Lexer struct {
	input    string
	filename string

	pos  int // byte offset of the next unread byte
	line int // 1-based line of input[pos]
	col  int // 1-based column of input[pos]

	modes []modeFrame
	diags []diag.Diagnostic
}

// New creates a new lexer for the given source buffer.
func New(input, filename string) *Lexer {
	return &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		col:      1,
		modes:    []modeFrame{{mode: modeCode}},
	}
}

// Diagnostics returns the lexical errors accumulated so far.
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.diags
}

// Tokenize scans the whole buffer and returns every token including the
// trailing EOF token. Comments are retained; this is the stream handed
// to documentation and formatting tools.
func Tokenize(input, filename string) ([]Token, []diag.Diagnostic) {
	l := New(input, filename)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks, l.diags
		}
	}
}

func (l *Lexer) top() *modeFrame {
	return &l.modes[len(l.modes)-1]
}

func (l *Lexer) push(m modeFrame) {
	l.modes = append(l.modes, m)
}

func (l *Lexer) pop() {
	if len(l.modes) > 1 {
		l.modes = l.modes[:len(l.modes)-1]
	}
}

func (l *Lexer) here() position.Position {
	return position.Position{Filename: l.filename, Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(k int) byte {
	if l.pos+k >= len(l.input) {
		return 0
	}
	return l.input[l.pos+k]
}

// bump consumes one byte. Column counting skips UTF-8 continuation bytes
// so columns stay rune-based.
func (l *Lexer) bump() {
	if l.pos >= len(l.input) {
		return
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else if ch&0xC0 != 0x80 {
		l.col++
	}
}

// bumpRune consumes one full rune.
func (l *Lexer) bumpRune() {
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if size == 0 {
		size = 1
	}
	for i := 0; i < size; i++ {
		l.bump()
	}
}

// accept consumes s if the input starts with it at the current position.
func (l *Lexer) accept(s string) bool {
	if len(l.input)-l.pos < len(s) || l.input[l.pos:l.pos+len(s)] != s {
		return false
	}
	for i := 0; i < len(s); i++ {
		l.bump()
	}
	return true
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peekByte() {
		case ' ', '\t', '\r', '\n':
			l.bump()
		default:
			return
		}
	}
}

func (l *Lexer) addError(span position.Span, format string, args ...any) {
	l.diags = append(l.diags, diag.Diagnostic{
		Span:      span,
		Kind:      diag.LexError,
		Message:   fmt.Sprintf(format, args...),
		Recovered: true,
	})
}

// make builds a token whose lexeme is the consumed source text.
func (l *Lexer) make(tt TokenType, start position.Position) Token {
	return Token{
		Type:   tt,
		Lexeme: l.input[start.Offset:l.pos],
		Span:   position.Span{Start: start, End: l.here()},
	}
}

// makeLex builds a token with an explicit lexeme, used for string-family
// tokens whose payload excludes the delimiters.
func (l *Lexer) makeLex(tt TokenType, start position.Position, lexeme string) Token {
	return Token{
		Type:   tt,
		Lexeme: lexeme,
		Span:   position.Span{Start: start, End: l.here()},
	}
}

// NextToken scans and returns the next token. At end of input it yields
// TokenEOF forever.
func (l *Lexer) NextToken() Token {
	if l.top().mode == modeString {
		return l.lexStringPart()
	}

	l.skipWhitespace()
	start := l.here()

	if l.pos >= len(l.input) {
		return l.make(TokenEOF, start)
	}

	ch := l.peekByte()

	// Raw and byte string prefixes win over identifier scanning.
	if ch == 'r' && l.peekAt(1) == '"' {
		return l.lexRawString(start)
	}
	if ch == 'b' && l.peekAt(1) == '"' {
		return l.lexByteString(start)
	}
	if isIdentStart(ch) || (ch >= 0x80 && l.runeIsLetter()) {
		return l.lexIdent(start)
	}
	if isDigit(ch) {
		return l.lexNumber(start)
	}

	switch ch {
	case '"':
		return l.lexStringOpen(start)
	case '\'':
		return l.lexCharOrLabel(start)
	case '/':
		if l.peekAt(1) == '/' || l.peekAt(1) == '*' {
			return l.lexComment(start)
		}
	}

	if tok, ok := l.lexOperator(start); ok {
		return tok
	}

	// No token can be formed here. Report and advance one code point so
	// the stream keeps making forward progress.
	l.bumpRune()
	span := position.Span{Start: start, End: l.here()}
	l.addError(span, "unexpected character %q", l.input[start.Offset:l.pos])
	return l.makeLex(TokenError, start, l.input[start.Offset:l.pos])
}

func (l *Lexer) runeIsLetter() bool {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return unicode.IsLetter(r)
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

// lexIdent scans an identifier or keyword. Unicode identifiers are
// NFC-normalized so visually identical names compare equal downstream.
func (l *Lexer) lexIdent(start position.Position) Token {
	ascii := true
	for l.pos < len(l.input) {
		ch := l.peekByte()
		if isIdentPart(ch) {
			l.bump()
			continue
		}
		if ch >= 0x80 {
			r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
			// Combining marks continue an identifier so decomposed input
			// survives until NFC normalization below.
			if unicode.IsLetter(r) || unicode.IsDigit(r) ||
				unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) {
				ascii = false
				l.bumpRune()
				continue
			}
		}
		break
	}
	lexeme := l.input[start.Offset:l.pos]
	if !ascii {
		lexeme = norm.NFC.String(lexeme)
	}
	return l.makeLex(LookupIdent(lexeme), start, lexeme)
}

// numericSuffixes is the set of type suffixes a numeric literal may carry.
var numericSuffixes = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true,
}

// lexNumber scans an integer or float literal. Radix prefixes and
// underscore grouping are lexical sugar; the optional type suffix is
// captured with the literal rather than emitted as its own token.
func (l *Lexer) lexNumber(start position.Position) Token {
	malformed := false
	isFloat := false

	if l.peekByte() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X' ||
		l.peekAt(1) == 'o' || l.peekAt(1) == 'O' ||
		l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		radix := l.peekAt(1)
		l.bump()
		l.bump()
		digits := 0
		for {
			ch := l.peekByte()
			if ch == '_' {
				l.bump()
				continue
			}
			ok := false
			switch radix {
			case 'x', 'X':
				ok = isHexDigit(ch)
			case 'o', 'O':
				ok = '0' <= ch && ch <= '7'
			case 'b', 'B':
				ok = ch == '0' || ch == '1'
			}
			if !ok {
				break
			}
			digits++
			l.bump()
		}
		if digits == 0 {
			malformed = true
		}
	} else {
		l.scanDigits()
		if l.peekByte() == '.' && isDigit(l.peekAt(1)) {
			isFloat = true
			l.bump()
			l.scanDigits()
			// A second decimal point glued onto a float is malformed,
			// not a fresh token.
			if l.peekByte() == '.' && isDigit(l.peekAt(1)) {
				malformed = true
				l.bump()
				l.scanDigits()
			}
		}
		if l.peekByte() == 'e' || l.peekByte() == 'E' {
			next := l.peekAt(1)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
				isFloat = true
				l.bump()
				if l.peekByte() == '+' || l.peekByte() == '-' {
					l.bump()
				}
				l.scanDigits()
			}
		}
	}

	// Trailing identifier characters are either a known type suffix or a
	// malformed literal (e.g. 123abc).
	suffix := ""
	if isIdentStart(l.peekByte()) {
		suffixStart := l.pos
		for isIdentPart(l.peekByte()) {
			l.bump()
		}
		suffix = l.input[suffixStart:l.pos]
		if !numericSuffixes[suffix] {
			malformed = true
		} else if suffix == "f32" || suffix == "f64" {
			isFloat = true
		}
	}

	span := position.Span{Start: start, End: l.here()}
	lexeme := l.input[start.Offset:l.pos]
	if malformed {
		l.addError(span, "malformed numeric literal %q", lexeme)
		return Token{Type: TokenError, Lexeme: lexeme, Span: span}
	}
	tt := TokenInt
	if isFloat {
		tt = TokenFloat
	}
	return Token{Type: tt, Lexeme: lexeme, Suffix: suffix, Span: span}
}

func (l *Lexer) scanDigits() {
	for isDigit(l.peekByte()) || l.peekByte() == '_' {
		l.bump()
	}
}

// lexStringOpen handles a double quote in code mode. A plain string is
// emitted as a single token; a string containing interpolation emits
// TokenStringStart and pushes string mode so fragments and embedded
// expressions stream out one by one.
func (l *Lexer) lexStringOpen(start position.Position) Token {
	interp := false
	terminated := false
	for i := start.Offset + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case '\\':
			// \u{...} owns its braces; any other escape shields one char.
			if i+2 < len(l.input) && l.input[i+1] == 'u' && l.input[i+2] == '{' {
				j := i + 3
				for j < len(l.input) && l.input[j] != '}' && l.input[j] != '"' && l.input[j] != '\n' {
					j++
				}
				i = j
			} else {
				i++
			}
		case '{':
			interp = true
		case '"':
			terminated = true
		case '\n':
		}
		if interp || terminated {
			break
		}
	}

	if interp {
		l.bump() // opening quote
		l.push(modeFrame{mode: modeString})
		return l.make(TokenStringStart, start)
	}

	l.bump() // opening quote
	inner := l.pos
	for l.pos < len(l.input) {
		ch := l.peekByte()
		if ch == '\\' {
			l.bump()
			l.bump()
			continue
		}
		if ch == '"' {
			lexeme := l.input[inner:l.pos]
			l.bump() // closing quote
			return l.makeLex(TokenString, start, lexeme)
		}
		l.bump()
	}
	span := position.Span{Start: start, End: l.here()}
	l.addError(span, "unterminated string literal")
	return l.makeLex(TokenError, start, l.input[inner:l.pos])
}

// lexStringPart produces the next token inside an interpolated string:
// a fragment, an interpolation opener, or the closing quote.
func (l *Lexer) lexStringPart() Token {
	start := l.here()

	if l.pos >= len(l.input) {
		l.pop()
		span := position.Span{Start: start, End: l.here()}
		l.addError(span, "unterminated string literal")
		return l.makeLex(TokenStringEnd, start, "")
	}

	switch l.peekByte() {
	case '"':
		l.bump()
		l.pop()
		return l.makeLex(TokenStringEnd, start, "")
	case '{':
		l.bump()
		l.push(modeFrame{mode: modeCode})
		return l.make(TokenInterpOpen, start)
	}

	inner := l.pos
	for l.pos < len(l.input) {
		ch := l.peekByte()
		if ch == '"' || ch == '{' {
			break
		}
		if ch == '\\' {
			l.bump()
			if l.peekByte() == 'u' && l.peekAt(1) == '{' {
				l.bump()
				l.bump()
				for l.pos < len(l.input) && l.peekByte() != '}' && l.peekByte() != '"' {
					l.bump()
				}
				if l.peekByte() == '}' {
					l.bump()
				}
				continue
			}
		}
		l.bump()
	}
	return l.makeLex(TokenStringFragment, start, l.input[inner:l.pos])
}

// lexRawString scans r"..." with no escape processing.
func (l *Lexer) lexRawString(start position.Position) Token {
	l.bump() // r
	l.bump() // opening quote
	inner := l.pos
	for l.pos < len(l.input) {
		if l.peekByte() == '"' {
			lexeme := l.input[inner:l.pos]
			l.bump()
			return l.makeLex(TokenRawString, start, lexeme)
		}
		l.bump()
	}
	span := position.Span{Start: start, End: l.here()}
	l.addError(span, "unterminated raw string literal")
	return l.makeLex(TokenError, start, l.input[inner:l.pos])
}

// lexByteString scans b"..." with escapes but no interpolation.
func (l *Lexer) lexByteString(start position.Position) Token {
	l.bump() // b
	l.bump() // opening quote
	inner := l.pos
	for l.pos < len(l.input) {
		ch := l.peekByte()
		if ch == '\\' {
			l.bump()
			l.bump()
			continue
		}
		if ch == '"' {
			lexeme := l.input[inner:l.pos]
			l.bump()
			return l.makeLex(TokenByteString, start, lexeme)
		}
		l.bump()
	}
	span := position.Span{Start: start, End: l.here()}
	l.addError(span, "unterminated byte string literal")
	return l.makeLex(TokenError, start, l.input[inner:l.pos])
}

// lexCharOrLabel disambiguates 'x' character literals from 'name loop
// labels: an identifier run after the quote with no closing quote is a
// label.
func (l *Lexer) lexCharOrLabel(start position.Position) Token {
	if isIdentStart(l.peekAt(1)) && l.peekAt(1) != '\\' {
		// Scan the identifier run to see whether a closing quote follows.
		j := l.pos + 1
		for j < len(l.input) && isIdentPart(l.input[j]) {
			j++
		}
		if j >= len(l.input) || l.input[j] != '\'' {
			l.bump() // quote
			inner := l.pos
			for isIdentPart(l.peekByte()) {
				l.bump()
			}
			return l.makeLex(TokenLabel, start, l.input[inner:l.pos])
		}
	}
	return l.lexChar(start)
}

func (l *Lexer) lexChar(start position.Position) Token {
	l.bump() // opening quote
	inner := l.pos
	if l.peekByte() == '\\' {
		l.bump()
		l.bump()
	} else if l.pos < len(l.input) && l.peekByte() != '\'' {
		l.bumpRune()
	}
	// A run of extra characters before the closing quote is malformed,
	// consume it so the stream stays aligned.
	extra := false
	for l.pos < len(l.input) && l.peekByte() != '\'' && l.peekByte() != '\n' {
		extra = true
		l.bumpRune()
	}
	lexeme := l.input[inner:l.pos]
	if l.peekByte() != '\'' {
		l.bump()
		span := position.Span{Start: start, End: l.here()}
		l.addError(span, "unterminated character literal")
		return l.makeLex(TokenError, start, lexeme)
	}
	l.bump() // closing quote
	if extra || len(lexeme) == 0 {
		span := position.Span{Start: start, End: l.here()}
		l.addError(span, "malformed character literal %q", lexeme)
		return l.makeLex(TokenError, start, lexeme)
	}
	return l.makeLex(TokenChar, start, lexeme)
}

// lexComment scans //, ///, and /* */ comments. Comments are emitted as
// tokens rather than discarded so a later pass can reattach docs.
func (l *Lexer) lexComment(start position.Position) Token {
	if l.peekAt(1) == '/' {
		tt := TokenComment
		if l.peekAt(2) == '/' {
			tt = TokenDocComment
		}
		for l.pos < len(l.input) && l.peekByte() != '\n' {
			l.bump()
		}
		return l.make(tt, start)
	}

	// Block comment, non-nesting.
	l.bump()
	l.bump()
	for l.pos < len(l.input) {
		if l.peekByte() == '*' && l.peekAt(1) == '/' {
			l.bump()
			l.bump()
			return l.make(TokenComment, start)
		}
		l.bump()
	}
	span := position.Span{Start: start, End: l.here()}
	l.addError(span, "unterminated block comment")
	return l.make(TokenComment, start)
}

// operatorTable lists multi-byte operators longest-first so maximal munch
// falls out of a linear scan.
var operatorTable = []struct {
	text string
	tt   TokenType
}{
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{"..=", TokenDotDotEq},
	{"**", TokenStarStar},
	{"==", TokenEq},
	{"=>", TokenFatArrow},
	{"!=", TokenNe},
	{"<=", TokenLe},
	{">=", TokenGe},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"&&", TokenAndAnd},
	{"||", TokenOrOr},
	{"|>", TokenPipeline},
	{"|=", TokenPipeAssign},
	{"??", TokenCoalesce},
	{"::", TokenColonColon},
	{"->", TokenArrow},
	{"..", TokenDotDot},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAmpAssign},
	{"^=", TokenCaretAssign},
}

var singleByteOperators = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'=': TokenAssign,
	'<': TokenLt,
	'>': TokenGt,
	'!': TokenBang,
	'&': TokenAmp,
	'|': TokenPipe,
	'^': TokenCaret,
	'~': TokenTilde,
	'?': TokenQuestion,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	'.': TokenDot,
	':': TokenColon,
	';': TokenSemicolon,
	'@': TokenAt,
}

func (l *Lexer) lexOperator(start position.Position) (Token, bool) {
	// Braces interact with the interpolation mode stack.
	switch l.peekByte() {
	case '{':
		l.bump()
		if len(l.modes) > 1 {
			l.top().braceDepth++
		}
		return l.make(TokenLBrace, start), true
	case '}':
		if len(l.modes) > 1 && l.top().braceDepth == 0 {
			l.bump()
			l.pop() // back to string mode
			return l.make(TokenInterpClose, start), true
		}
		l.bump()
		if len(l.modes) > 1 {
			l.top().braceDepth--
		}
		return l.make(TokenRBrace, start), true
	}

	for _, op := range operatorTable {
		if l.accept(op.text) {
			return l.make(op.tt, start), true
		}
	}
	if tt, ok := singleByteOperators[l.peekByte()]; ok {
		l.bump()
		return l.make(tt, start), true
	}
	return Token{}, false
}
