package parser

import (
	"github.com/veld-lang/veld/internal/ast"
	"github.com/veld-lang/veld/internal/lexer"
)

// Binding power levels, loosest to tightest. The expression loop
// continues while the operator's left binding power is at least the
// minimum the caller demands; left-associative operators recurse with
// lbp+1 on the right, right-associative ones with lbp.
const (
	bpLowest = 1

	bpAssign         = 2  // = += -= ... (right)
	bpPipeline       = 4  // |> (left)
	bpCoalesce       = 6  // ?? (right)
	bpRange          = 8  // .. ..=
	bpOr             = 10 // ||
	bpAnd            = 12 // &&
	bpTypeTest       = 14 // is, in, as
	bpEquality       = 16 // == !=
	bpRelational     = 18 // < <= > >=
	bpBitOr          = 20 // |
	bpBitXor         = 22 // ^
	bpBitAnd         = 24 // &
	bpShift          = 26 // << >>
	bpAdditive       = 28 // + -
	bpMultiplicative = 30 // * / %
	bpPower          = 32 // ** (right)
)

type binaryInfo struct {
	op  ast.BinaryOp
	lbp int
	rbp int
}

func left(op ast.BinaryOp, bp int) binaryInfo  { return binaryInfo{op: op, lbp: bp, rbp: bp + 1} }
func right(op ast.BinaryOp, bp int) binaryInfo { return binaryInfo{op: op, lbp: bp, rbp: bp} }

// binaryOps drives the precedence-climbing loop for plain binary
// operators. Assignment, cast, type test, and pipeline have bespoke
// handling in parseBinaryRHS because they build different node shapes.
var binaryOps = map[lexer.TokenType]binaryInfo{
	lexer.TokenCoalesce: right(ast.OpCoalesce, bpCoalesce),

	lexer.TokenDotDot:   left(ast.OpRange, bpRange),
	lexer.TokenDotDotEq: left(ast.OpRangeInclusive, bpRange),

	lexer.TokenOrOr:   left(ast.OpOr, bpOr),
	lexer.TokenAndAnd: left(ast.OpAnd, bpAnd),

	lexer.TokenIn: left(ast.OpIn, bpTypeTest),

	lexer.TokenEq: left(ast.OpEq, bpEquality),
	lexer.TokenNe: left(ast.OpNe, bpEquality),

	lexer.TokenLt: left(ast.OpLt, bpRelational),
	lexer.TokenLe: left(ast.OpLe, bpRelational),
	lexer.TokenGt: left(ast.OpGt, bpRelational),
	lexer.TokenGe: left(ast.OpGe, bpRelational),

	lexer.TokenPipe:  left(ast.OpBitOr, bpBitOr),
	lexer.TokenCaret: left(ast.OpBitXor, bpBitXor),
	lexer.TokenAmp:   left(ast.OpBitAnd, bpBitAnd),

	lexer.TokenShl: left(ast.OpShl, bpShift),
	lexer.TokenShr: left(ast.OpShr, bpShift),

	lexer.TokenPlus:  left(ast.OpAdd, bpAdditive),
	lexer.TokenMinus: left(ast.OpSub, bpAdditive),

	lexer.TokenStar:    left(ast.OpMul, bpMultiplicative),
	lexer.TokenSlash:   left(ast.OpDiv, bpMultiplicative),
	lexer.TokenPercent: left(ast.OpRem, bpMultiplicative),

	lexer.TokenStarStar: right(ast.OpPow, bpPower),
}

// assignOps maps assignment tokens to their AST operator. All are
// right-associative and sit at the loosest level.
var assignOps = map[lexer.TokenType]ast.AssignOp{
	lexer.TokenAssign:        ast.AssignSimple,
	lexer.TokenPlusAssign:    ast.AssignAdd,
	lexer.TokenMinusAssign:   ast.AssignSub,
	lexer.TokenStarAssign:    ast.AssignMul,
	lexer.TokenSlashAssign:   ast.AssignDiv,
	lexer.TokenPercentAssign: ast.AssignRem,
	lexer.TokenAmpAssign:     ast.AssignBitAnd,
	lexer.TokenPipeAssign:    ast.AssignBitOr,
	lexer.TokenCaretAssign:   ast.AssignBitXor,
	lexer.TokenShlAssign:     ast.AssignShl,
	lexer.TokenShrAssign:     ast.AssignShr,
}

// unaryOps maps prefix operator tokens to their AST operator. spawn and
// await are keyword prefixes at the same tightness as the symbolic
// ones.
var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.TokenMinus: ast.OpNeg,
	lexer.TokenBang:  ast.OpNot,
	lexer.TokenTilde: ast.OpBitNot,
	lexer.TokenAmp:   ast.OpRef,
	lexer.TokenStar:  ast.OpDeref,
	lexer.TokenSpawn: ast.OpSpawn,
	lexer.TokenAwait: ast.OpAwait,
}
