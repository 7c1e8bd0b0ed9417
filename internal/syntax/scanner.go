package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scanner performs lexical analysis on ember source code.
// It implements TokenSource.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // identifier name or punctuation text
	ival   uint64  // integer payload
	fval   float64 // float payload
	bad    string  // error payload, set when tok == _Error
	tokPos Pos     // token start position

	// Identifier interning
	names map[string]string

	// Literal accumulation
	litBuf strings.Builder

	// Lexical errors, in the order they were found
	errs []*SyntaxError
	errh ErrorHandler
}

// NewScanner creates a new Scanner for the given source.
// Lexical errors are appended to the scanner's error list (see Errors) and,
// if errh is non-nil, also passed to errh as they occur.
func NewScanner(filename string, src io.Reader, errh ErrorHandler) *Scanner {
	s := &Scanner{
		names: make(map[string]string),
		errh:  errh,
	}
	s.source = *newSource(filename, src, s.report)
	return s
}

// report records a lexical error.
func (s *Scanner) report(pos Pos, msg string) {
	s.errs = append(s.errs, &SyntaxError{Pos: pos, Msg: msg})
	if s.errh != nil {
		s.errh(pos, msg)
	}
}

// Errors returns the lexical errors found so far.
func (s *Scanner) Errors() []*SyntaxError {
	return s.errs
}

// Next scans and returns the next token.
// At the end of input it returns an EOF lexeme, on every call.
func (s *Scanner) Next() Lexeme {
	s.next()
	lx := Lexeme{
		Tok: s.tok,
		Pos: s.tokPos,
		Len: s.chOff - int(s.tokPos.Offset()),
		Lit: s.lit,
	}
	switch s.tok {
	case _Integer:
		lx.Int = s.ival
	case _Float:
		lx.Float = s.fval
	case _Error:
		lx.Err = s.bad
	}
	return lx
}

// next advances to the next token.
func (s *Scanner) next() {
	s.lit = ""
	s.bad = ""

redo:
	s.skipWhitespace()
	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// a comment was skipped
			goto redo
		}

	default:
		s.error(fmt.Sprintf("Unknown character %q", s.ch))
		s.nextch()
		goto redo
	}
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// scanIdent scans an identifier. Identifier text is interned so equal
// names share storage for the lifetime of the scanner.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	name := s.litBuf.String()
	if interned, ok := s.names[name]; ok {
		name = interned
	} else {
		s.names[name] = name
	}
	s.lit = name
	s.tok = _Name
}

// scanNumber scans an integer or float literal.
// Digits may be separated by '_'; 0x, 0o and 0b select the base.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	base := 10

	if s.ch == '0' {
		s.nextch()
		switch lower(s.ch) {
		case 'x':
			base = 16
			s.nextch()
		case 'o':
			base = 8
			s.nextch()
		case 'b':
			base = 2
			s.nextch()
		default:
			s.litBuf.WriteByte('0')
		}
	}

	var invalid string
	for {
		switch {
		case s.ch == '_':
		case base == 16 && isHexDigit(s.ch):
			s.continueLit()
		case isDigit(s.ch):
			if !digitOK(s.ch, base) && invalid == "" {
				invalid = fmt.Sprintf("Digit '%c' too big for base %d", s.ch, base)
			}
			s.continueLit()
		default:
			goto done
		}
		s.nextch()
	}
done:

	if base == 10 && (s.ch == '.' || lower(s.ch) == 'e') {
		s.scanFraction()
		return
	}

	digits := s.litBuf.String()
	switch {
	case invalid != "":
		s.setError(invalid)
	case digits == "":
		s.setError(fmt.Sprintf("missing digits in base %d literal", base))
	default:
		v, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			s.setError("integer literal overflows 64 bits")
			return
		}
		s.tok = _Integer
		s.ival = v
	}
}

// digitOK reports whether the decimal digit ch is valid in base.
func digitOK(ch rune, base int) bool {
	switch base {
	case 2:
		return isBinaryDigit(ch)
	case 8:
		return isOctalDigit(ch)
	}
	return true
}

// scanFraction scans the fractional part of a float (. and/or exponent).
// The integer digits are already in litBuf.
func (s *Scanner) scanFraction() {
	if s.ch == '.' {
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}

	if lower(s.ch) == 'e' {
		s.continueLit()
		s.nextch()

		if s.ch == '+' || s.ch == '-' {
			s.continueLit()
			s.nextch()
		}

		if !isDigit(s.ch) {
			s.setError("exponent has no digits")
			return
		}
		s.scanDecimalDigits()
	}

	v, err := strconv.ParseFloat(s.litBuf.String(), 64)
	if err != nil {
		s.setError("float literal out of range")
		return
	}
	s.tok = _Float
	s.fval = v
}

// scanDecimalDigits scans decimal digits, skipping '_' separators.
func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) || s.ch == '_' {
		if s.ch != '_' {
			s.continueLit()
		}
		s.nextch()
	}
}

// setError turns the current token into an _Error token and records msg.
func (s *Scanner) setError(msg string) {
	s.tok = _Error
	s.bad = msg
	s.report(s.tokPos, msg)
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	// compound picks tok2 if the current character is next, tok otherwise.
	compound := func(tok Token, next rune, tok2 Token) {
		if s.ch == next {
			s.nextch()
			tok = tok2
		}
		s.tok = tok
	}

	switch ch {
	case '+':
		compound(_Add, '=', _AddAssign)
	case '-':
		if s.ch == '>' {
			s.nextch()
			s.tok = _Arrow
			break
		}
		compound(_Sub, '=', _SubAssign)
	case '*':
		compound(_Mul, '=', _MulAssign)
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return true
		}
		compound(_Div, '=', _DivAssign)
	case '%':
		compound(_Rem, '=', _RemAssign)
	case '=':
		compound(_Assign, '=', _Eql)
	case '!':
		compound(_Not, '=', _Neq)
	case '<':
		compound(_Lss, '=', _Leq)
	case '>':
		compound(_Gtr, '=', _Geq)
	case '^':
		s.tok = _Caret
	case ':':
		s.tok = _Colon
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	}

	s.lit = s.tok.String()
	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	// Already consumed the first /
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
