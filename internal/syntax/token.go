// Package syntax implements lexical and syntactic analysis for the ember language.
package syntax

import "fmt"

// Token represents the kind of a lexical token.
type Token uint8

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // malformed token, Lexeme.Err holds the message

	// Literals
	_Name    // identifier
	_Integer // 123, 0x1F, 0b1010, 1_000
	_Float   // 3.14, 1e10

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Lbrack // [
	_Rbrack // ]
	_Colon  // :
	_Semi   // ;
	_Comma  // ,

	// Operators
	_Add    // +
	_Sub    // -
	_Mul    // *
	_Div    // /
	_Rem    // %
	_Caret  // ^
	_Assign // =
	_Not    // !
	_Lss    // <
	_Gtr    // >

	// Compound operators
	_AddAssign // +=
	_SubAssign // -=
	_MulAssign // *=
	_DivAssign // /=
	_RemAssign // %=
	_Eql       // ==
	_Neq       // !=
	_Leq       // <=
	_Geq       // >=
	_Arrow     // ->

	tokenCount
)

// tokenNames maps tokens to the text used for them in diagnostics.
var tokenNames = [...]string{
	_EOF:   "EndOfFile",
	_Error: "Error",

	_Name:    "Name",
	_Integer: "Integer",
	_Float:   "Float",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Lbrack: "[",
	_Rbrack: "]",
	_Colon:  ":",
	_Semi:   ";",
	_Comma:  ",",

	_Add:    "+",
	_Sub:    "-",
	_Mul:    "*",
	_Div:    "/",
	_Rem:    "%",
	_Caret:  "^",
	_Assign: "=",
	_Not:    "!",
	_Lss:    "<",
	_Gtr:    ">",

	_AddAssign: "+=",
	_SubAssign: "-=",
	_MulAssign: "*=",
	_DivAssign: "/=",
	_RemAssign: "%=",
	_Eql:       "==",
	_Neq:       "!=",
	_Leq:       "<=",
	_Geq:       ">=",
	_Arrow:     "->",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the binding power of t as a binary operator.
// Returns 0 for non-operators.
//
//	1: < <= > >=
//	2: + -
//	3: * / %
func (t Token) Precedence() int {
	switch t {
	case _Mul, _Div, _Rem:
		return 3
	case _Add, _Sub:
		return 2
	case _Lss, _Leq, _Gtr, _Geq:
		return 1
	}
	return 0
}

// UnaryPrecedence returns the binding power of t as a prefix operator.
// All prefix operators bind tighter than any binary operator.
func (t Token) UnaryPrecedence() int {
	switch t {
	case _Add, _Sub, _Mul, _Caret:
		return 4
	}
	return 0
}

// IsLiteral reports whether t is a numeric literal token.
func (t Token) IsLiteral() bool {
	return t == _Integer || t == _Float
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Add && t <= _Arrow
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported tokens for consumers outside the package.
const (
	EOF     Token = _EOF
	Integer Token = _Integer
	Float   Token = _Float

	Add   Token = _Add
	Sub   Token = _Sub
	Mul   Token = _Mul
	Div   Token = _Div
	Rem   Token = _Rem
	Caret Token = _Caret
	Lss   Token = _Lss
	Leq   Token = _Leq
	Gtr   Token = _Gtr
	Geq   Token = _Geq
)

// Lexeme is a single token produced by a TokenSource.
// The payload field that is meaningful depends on Tok.
type Lexeme struct {
	Tok   Token
	Pos   Pos
	Len   int     // length in bytes of the source text
	Lit   string  // identifier name or punctuation text
	Int   uint64  // value of an _Integer token
	Float float64 // value of a _Float token
	Err   string  // message of an _Error token
}

// TokenSource is the pull-based token stream consumed by the Parser.
// Once it has returned an EOF lexeme it must keep returning EOF.
type TokenSource interface {
	Next() Lexeme
}
