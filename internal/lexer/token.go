// Package lexer implements the Veld lexical analyzer. It turns an
// in-memory source buffer into a forward-only token stream with spans,
// retaining comments as first-class tokens and sub-lexing string
// interpolation with an explicit mode stack.
package lexer

import (
	"fmt"

	"github.com/veld-lang/veld/internal/position"
)

// TokenType identifies the lexical class of a token. The enumeration is
// closed; parser dispatch switches over it exhaustively.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError
	TokenComment
	TokenDocComment

	// Literals
	TokenIdent
	TokenInt
	TokenFloat
	TokenString
	TokenRawString
	TokenByteString
	TokenChar
	TokenLabel // 'name

	// Interpolated string structure
	TokenStringStart    // opening quote of an interpolated string
	TokenStringFragment // literal text between interpolations
	TokenInterpOpen     // { opening an embedded expression
	TokenInterpClose    // } closing an embedded expression
	TokenStringEnd      // closing quote of an interpolated string

	// Keywords
	TokenLet
	TokenVar
	TokenConst
	TokenFn
	TokenClass
	TokenStruct
	TokenEnum
	TokenTrait // also produced for the `interface` alias spelling
	TokenImpl
	TokenTypeKw
	TokenModule
	TokenUse
	TokenAs
	TokenIs
	TokenIn
	TokenIf
	TokenElse
	TokenMatch
	TokenFor
	TokenWhile
	TokenLoop
	TokenBreak
	TokenContinue
	TokenReturn
	TokenTry
	TokenCatch
	TokenFinally
	TokenAsync
	TokenAwait
	TokenSpawn
	TokenPub
	TokenStatic
	TokenNew
	TokenExtends
	TokenTrue
	TokenFalse
	TokenUnderscore

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenStarStar
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAmpAssign
	TokenPipeAssign
	TokenCaretAssign
	TokenShlAssign
	TokenShrAssign
	TokenEq
	TokenNe
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenAndAnd
	TokenOrOr
	TokenBang
	TokenAmp
	TokenPipe
	TokenCaret
	TokenTilde
	TokenShl
	TokenShr
	TokenDotDot
	TokenDotDotEq
	TokenCoalesce // ??
	TokenPipeline // |>
	TokenArrow    // ->
	TokenFatArrow // =>
	TokenQuestion

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
	TokenColon
	TokenColonColon
	TokenSemicolon
	TokenAt
)

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenError:      "ERROR",
	TokenComment:    "COMMENT",
	TokenDocComment: "DOC_COMMENT",

	TokenIdent:      "IDENT",
	TokenInt:        "INT",
	TokenFloat:      "FLOAT",
	TokenString:     "STRING",
	TokenRawString:  "RAW_STRING",
	TokenByteString: "BYTE_STRING",
	TokenChar:       "CHAR",
	TokenLabel:      "LABEL",

	TokenStringStart:    "STRING_START",
	TokenStringFragment: "STRING_FRAGMENT",
	TokenInterpOpen:     "INTERP_OPEN",
	TokenInterpClose:    "INTERP_CLOSE",
	TokenStringEnd:      "STRING_END",

	TokenLet:        "let",
	TokenVar:        "var",
	TokenConst:      "const",
	TokenFn:         "fn",
	TokenClass:      "class",
	TokenStruct:     "struct",
	TokenEnum:       "enum",
	TokenTrait:      "trait",
	TokenImpl:       "impl",
	TokenTypeKw:     "type",
	TokenModule:     "module",
	TokenUse:        "use",
	TokenAs:         "as",
	TokenIs:         "is",
	TokenIn:         "in",
	TokenIf:         "if",
	TokenElse:       "else",
	TokenMatch:      "match",
	TokenFor:        "for",
	TokenWhile:      "while",
	TokenLoop:       "loop",
	TokenBreak:      "break",
	TokenContinue:   "continue",
	TokenReturn:     "return",
	TokenTry:        "try",
	TokenCatch:      "catch",
	TokenFinally:    "finally",
	TokenAsync:      "async",
	TokenAwait:      "await",
	TokenSpawn:      "spawn",
	TokenPub:        "pub",
	TokenStatic:     "static",
	TokenNew:        "new",
	TokenExtends:    "extends",
	TokenTrue:       "true",
	TokenFalse:      "false",
	TokenUnderscore: "_",

	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenStarStar:      "**",
	TokenAssign:        "=",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAmpAssign:     "&=",
	TokenPipeAssign:    "|=",
	TokenCaretAssign:   "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenEq:            "==",
	TokenNe:            "!=",
	TokenLt:            "<",
	TokenLe:            "<=",
	TokenGt:            ">",
	TokenGe:            ">=",
	TokenAndAnd:        "&&",
	TokenOrOr:          "||",
	TokenBang:          "!",
	TokenAmp:           "&",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenTilde:         "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenDotDot:        "..",
	TokenDotDotEq:      "..=",
	TokenCoalesce:      "??",
	TokenPipeline:      "|>",
	TokenArrow:         "->",
	TokenFatArrow:      "=>",
	TokenQuestion:      "?",

	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenComma:      ",",
	TokenDot:        ".",
	TokenColon:      ":",
	TokenColonColon: "::",
	TokenSemicolon:  ";",
	TokenAt:         "@",
}

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// keywords maps identifier spellings to keyword token types. `interface`
// is a pure alias of `trait` and never gets its own token type.
var keywords = map[string]TokenType{
	"let":       TokenLet,
	"var":       TokenVar,
	"const":     TokenConst,
	"fn":        TokenFn,
	"class":     TokenClass,
	"struct":    TokenStruct,
	"enum":      TokenEnum,
	"trait":     TokenTrait,
	"interface": TokenTrait,
	"impl":      TokenImpl,
	"type":      TokenTypeKw,
	"module":    TokenModule,
	"use":       TokenUse,
	"as":        TokenAs,
	"is":        TokenIs,
	"in":        TokenIn,
	"if":        TokenIf,
	"else":      TokenElse,
	"match":     TokenMatch,
	"for":       TokenFor,
	"while":     TokenWhile,
	"loop":      TokenLoop,
	"break":     TokenBreak,
	"continue":  TokenContinue,
	"return":    TokenReturn,
	"try":       TokenTry,
	"catch":     TokenCatch,
	"finally":   TokenFinally,
	"async":     TokenAsync,
	"await":     TokenAwait,
	"spawn":     TokenSpawn,
	"pub":       TokenPub,
	"static":    TokenStatic,
	"new":       TokenNew,
	"extends":   TokenExtends,
	"true":      TokenTrue,
	"false":     TokenFalse,
	"_":         TokenUnderscore,
}

// LookupIdent maps an identifier spelling to its keyword token type, or
// TokenIdent if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}

// Token is a classified lexical unit with its span and payload. Tokens
// are immutable once produced.
type Token struct {
	Type   TokenType
	Lexeme string
	// Suffix holds the optional numeric type suffix (i32, f64, ...)
	// captured with an integer or float literal.
	Suffix string
	Span   position.Span
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{%s %q %s}", t.Type, t.Lexeme, t.Span)
}

// IsComment reports whether the token is a retained comment token. The
// parser skips these during grammar matching; documentation tooling does
// not.
func (t Token) IsComment() bool {
	return t.Type == TokenComment || t.Type == TokenDocComment
}
