package syntax

import (
	"fmt"
	"io"
)

// DefaultMaxDepth bounds the nesting of expressions, types and scopes
// when no other limit is set.
const DefaultMaxDepth = 1000

// ErrorHandler is called for each lexical or syntax error.
type ErrorHandler func(pos Pos, msg string)

// SyntaxError represents a lexical or syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on ember source code.
//
// Syntax errors never stop the parser: each one is recorded, a placeholder
// is substituted, and parsing continues.
type Parser struct {
	src      TokenSource
	filename string

	// Lookahead
	tok    Lexeme // current, not yet consumed
	ahead  Lexeme // token after tok, valid if peeked
	peeked bool
	ntok   int // number of tokens consumed

	// Enclosing context for new nodes
	file  *File
	scope *Scope
	slot  int

	// Error handling
	errh      ErrorHandler
	errs      []*SyntaxError
	maxErrors int  // 0 means unlimited
	abort     bool // set when parsing was cut short

	// Nesting
	depth    int
	maxDepth int
}

// NewParser creates a new Parser reading ember source from src.
// Lexical errors are reported through errh as well as syntax errors.
func NewParser(filename string, src io.Reader, errh ErrorHandler) *Parser {
	return newParser(filename, NewScanner(filename, src, errh), errh)
}

// NewTokenParser creates a new Parser consuming tokens from src.
func NewTokenParser(src TokenSource, errh ErrorHandler) *Parser {
	return newParser("", src, errh)
}

func newParser(filename string, src TokenSource, errh ErrorHandler) *Parser {
	p := &Parser{
		src:      src,
		filename: filename,
		errh:     errh,
		maxDepth: DefaultMaxDepth,
	}
	p.tok = p.src.Next() // prime the parser with first token
	return p
}

// SetMaxErrors sets the number of syntax errors after which parsing stops.
// 0 means no limit.
func (p *Parser) SetMaxErrors(n int) {
	p.maxErrors = n
}

// SetMaxDepth sets the maximum nesting depth. n <= 0 restores the default.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// ----------------------------------------------------------------------------
// Token navigation

// advance consumes the current token, pulls the next one from the token
// source and returns the consumed token.
func (p *Parser) advance() Lexeme {
	tok := p.tok
	p.next()
	return tok
}

// next advances to the next token.
func (p *Parser) next() {
	if p.abort {
		p.tok = Lexeme{Tok: _EOF, Pos: p.tok.Pos}
		return
	}
	p.ntok++
	if p.peeked {
		p.tok = p.ahead
		p.peeked = false
		return
	}
	p.tok = p.src.Next()
}

// peek returns the token after the current one without consuming anything.
func (p *Parser) peek() Lexeme {
	if p.abort {
		return Lexeme{Tok: _EOF, Pos: p.tok.Pos}
	}
	if !p.peeked {
		p.ahead = p.src.Next()
		p.peeked = true
	}
	return p.ahead
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok.Tok == tok {
		p.next()
		return true
	}
	return false
}

// expect consumes the current token if it matches tok and returns it.
// Otherwise it reports an error and returns a placeholder token of kind tok
// without consuming anything.
func (p *Parser) expect(tok Token) Lexeme {
	if p.tok.Tok == tok {
		return p.advance()
	}
	p.errorExpected(tok.String())
	return Lexeme{Tok: tok, Pos: p.tok.Pos, Lit: tok.String()}
}

// want is like expect but discards the token.
func (p *Parser) want(tok Token) {
	p.expect(tok)
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current position.
func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.tok.Pos, msg)
}

// syntaxErrorAt reports a syntax error at a specific position.
func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	p.errs = append(p.errs, &SyntaxError{Pos: pos, Msg: msg})
	if p.errh != nil {
		p.errh(pos, msg)
	}
	p.errorLimitCheck(pos)
}

// errorExpected reports that what was expected instead of the current token.
func (p *Parser) errorExpected(what string) {
	p.syntaxError(fmt.Sprintf("Expected '%s' got '%s'", what, p.tok.Tok))
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck(pos Pos) {
	if p.maxErrors > 0 && len(p.errs) >= p.maxErrors {
		p.stop(pos, "too many errors; aborting parse")
	}
}

// stop records msg and makes every following token EOF.
func (p *Parser) stop(pos Pos, msg string) {
	p.errs = append(p.errs, &SyntaxError{Pos: pos, Msg: msg})
	if p.errh != nil {
		p.errh(pos, msg)
	}
	p.abort = true
	p.peeked = false
	p.tok = Lexeme{Tok: _EOF, Pos: pos}
}

// enter increases the nesting depth, stopping the parse if it gets too deep.
// Every call must be paired with leave.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth && !p.abort {
		p.stop(p.tok.Pos, "nesting too deep")
	}
}

func (p *Parser) leave() {
	p.depth--
}

// Errors returns the syntax errors found so far, in order.
// Lexical errors are available from the token source (see LexErrors).
func (p *Parser) Errors() []*SyntaxError {
	return p.errs
}

// LexErrors returns the lexical errors of the token source,
// if it keeps a list of them.
func (p *Parser) LexErrors() []*SyntaxError {
	if s, ok := p.src.(interface{ Errors() []*SyntaxError }); ok {
		return s.Errors()
	}
	return nil
}

// Aborted reports whether parsing was cut short by the error or depth limit.
func (p *Parser) Aborted() bool {
	return p.abort
}

// ----------------------------------------------------------------------------
// Node construction

// set initializes the position and back-references of a new node.
func (p *Parser) set(n *node, pos Pos) {
	n.pos = pos
	n.file = p.file
	n.scope = p.scope
	n.slot = p.slot
}

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	n := &Name{}
	p.set(&n.node, p.tok.Pos)
	if p.tok.Tok != _Name {
		p.errorExpected(_Name.String())
		// Return a placeholder for error recovery
		n.Value = "_"
		return n
	}
	n.Value = p.tok.Lit
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Files and scopes

// ParseFile parses statements until EOF and returns them as a file.
func (p *Parser) ParseFile() *File {
	f := &File{Name: p.filename}
	f.pos = p.tok.Pos

	f.Body = &Scope{}
	f.Body.pos = p.tok.Pos
	f.Body.file = f

	p.ParseInto(f)
	return f
}

// ParseInto parses statements until EOF, appends them to the scope of f
// and returns the new statements. It can be called repeatedly on the same
// file with different parsers, each adding to what came before.
func (p *Parser) ParseInto(f *File) []Stmt {
	oldFile, oldScope, oldSlot := p.file, p.scope, p.slot
	p.file, p.scope = f, f.Body
	defer func() {
		p.file, p.scope, p.slot = oldFile, oldScope, oldSlot
	}()

	start := len(f.Body.Stmts)
	f.Body.Stmts = p.stmtList(f.Body.Stmts, _EOF)
	return f.Body.Stmts[start:]
}

// ParseScope parses a brace-delimited scope. The extra declarations, if any,
// become visible to every statement in the scope.
func (p *Parser) ParseScope(extra []*Declaration) *Scope {
	p.enter()
	defer p.leave()

	s := &Scope{Extra: extra}
	p.set(&s.node, p.tok.Pos)
	p.want(_Lbrace)

	// New nodes belong to s while inside the braces.
	oldScope, oldSlot := p.scope, p.slot
	p.scope = s
	s.Stmts = p.stmtList(nil, _Rbrace)
	p.scope, p.slot = oldScope, oldSlot

	s.Rbrace = p.tok.Pos
	p.want(_Rbrace)
	return s
}

// stmtList parses statements into list until the closing token.
func (p *Parser) stmtList(list []Stmt, close Token) []Stmt {
	for p.tok.Tok != close && p.tok.Tok != _EOF {
		// Skip empty statements
		if p.got(_Semi) {
			continue
		}

		p.slot = len(list)
		ntok := p.ntok
		if s := p.ParseStatement(); s != nil {
			list = append(list, s)
		}

		// Make progress on tokens that cannot start a statement.
		if p.ntok == ntok {
			p.next()
		}
	}
	return list
}

// ----------------------------------------------------------------------------
// Statements

// ParseStatement parses a statement: a declaration, a scope, or an
// expression followed by ';'.
func (p *Parser) ParseStatement() Stmt {
	switch p.tok.Tok {
	case _Lbrace:
		return p.ParseScope(nil)

	case _Name:
		switch p.peek().Tok {
		case _Colon, _Assign:
			return p.declaration()
		}
	}

	pos := p.tok.Pos
	v := p.value()
	p.want(_Semi)

	x, ok := v.(Expr)
	if !ok {
		p.syntaxErrorAt(pos, "procedure type is not a statement")
		return nil
	}
	return x
}

// declaration parses:
//
//	Name ':' [Type] (':' Value | '=' Value | ε)
//	Name '=' Value
func (p *Parser) declaration() *Declaration {
	d := &Declaration{}
	p.set(&d.node, p.tok.Pos)

	d.Name = p.name()

	if p.got(_Assign) {
		d.Value = p.value()
	} else {
		p.want(_Colon)

		switch p.tok.Tok {
		case _Colon, _Assign, _Semi:
		default:
			d.Type = p.ParseType()
		}

		switch {
		case p.got(_Colon):
			d.Constant = true
			d.Value = p.value()
		case p.got(_Assign):
			d.Value = p.value()
		}
	}

	if d.Type == nil && d.Value == nil {
		p.syntaxErrorAt(d.pos, fmt.Sprintf("declaration of '%s' has neither a type nor a value", d.Name.Value))
	}

	// A procedure body closes the statement.
	if proc, ok := d.Value.(*Procedure); ok && proc.Body != nil {
		return d
	}
	p.want(_Semi)
	return d
}

// ----------------------------------------------------------------------------
// Expressions

// ParseExpression parses an expression.
func (p *Parser) ParseExpression() Expr {
	return p.asExpr(p.value())
}

// value parses an expression, or a procedure type written where a value
// is expected. The result is an Expr or a *TypeProcedure.
func (p *Parser) value() Node {
	return p.binaryExpr(0)
}

// asExpr returns v as an expression, reporting an error if it is a type.
func (p *Parser) asExpr(v Node) Expr {
	if x, ok := v.(Expr); ok {
		return x
	}
	p.syntaxErrorAt(v.Pos(), "procedure type used as an expression")
	n := &Name{Value: "_"}
	p.set(&n.node, v.Pos())
	return n
}

// binaryExpr parses a binary expression whose operators bind tighter
// than prec. Implements precedence climbing.
func (p *Parser) binaryExpr(prec int) Node {
	p.enter()
	defer p.leave()

	var x Node
	if uprec := p.tok.Tok.UnaryPrecedence(); uprec > prec {
		u := &Unary{Op: p.tok.Tok}
		p.set(&u.node, p.tok.Pos)
		p.next() // consume operator
		// One below uprec admits another prefix operator but no binary one.
		u.X = p.asExpr(p.binaryExpr(uprec - 1))
		x = u
	} else {
		x = p.primaryExpr()
	}

	for {
		// Check if current token is a binary operator with sufficient precedence
		oprec := p.tok.Tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Binary{Op: p.tok.Tok, X: p.asExpr(x)}
		p.set(&op.node, x.Pos())

		p.next() // consume operator

		// Parse right operand with higher precedence (left associative)
		op.Y = p.asExpr(p.binaryExpr(oprec))
		x = op
	}
}

// primaryExpr parses a name, a literal, a parenthesized expression or
// a procedure.
func (p *Parser) primaryExpr() Node {
	switch p.tok.Tok {
	case _Name:
		n := &Name{Value: p.tok.Lit}
		p.set(&n.node, p.tok.Pos)
		p.next()
		return n

	case _Integer:
		lit := &IntegerLiteral{Value: p.tok.Int}
		p.set(&lit.node, p.tok.Pos)
		p.next()
		return lit

	case _Float:
		lit := &FloatLiteral{Value: p.tok.Float}
		p.set(&lit.node, p.tok.Pos)
		p.next()
		return lit

	case _Error:
		// Malformed literal, already reported by the scanner.
		lit := &IntegerLiteral{}
		p.set(&lit.node, p.tok.Pos)
		p.next()
		return lit

	case _Lparen:
		return p.parenOrProcedure()

	default:
		p.errorExpected("expression")
		n := &Name{Value: "_"} // error recovery
		p.set(&n.node, p.tok.Pos)
		switch p.tok.Tok {
		case _Semi, _Rparen, _Rbrace, _Rbrack, _Comma, _EOF:
			// leave closers for the enclosing construct
		default:
			p.next()
		}
		return n
	}
}

// parenOrProcedure parses a construct starting with '(':
//
//	()...            procedure with no arguments
//	(Name : ...)...  procedure whose first argument is Name
//	(Expr)           parenthesized expression
func (p *Parser) parenOrProcedure() Node {
	pos := p.expect(_Lparen).Pos

	if p.got(_Rparen) {
		return p.procedureTail(pos, nil, false)
	}

	x := p.value()
	if p.tok.Tok == _Colon {
		name, ok := x.(*Name)
		if !ok {
			p.syntaxErrorAt(x.Pos(), "Expected 'Name' got expression")
			name = &Name{Value: "_"}
			p.set(&name.node, x.Pos())
		}
		args := p.argList(p.argument(name))
		p.want(_Rparen)
		return p.procedureTail(pos, args, false)
	}

	p.want(_Rparen)
	return x
}

// argList parses the remaining arguments of a procedure after first,
// up to but not including ')'.
func (p *Parser) argList(first *Declaration) []*Declaration {
	args := []*Declaration{first}
	for p.got(_Comma) {
		args = append(args, p.argument(p.name()))
	}
	return args
}

// argument parses the rest of a procedure argument after its name:
//
//	':' [Type] ['=' Value]
func (p *Parser) argument(name *Name) *Declaration {
	d := &Declaration{Name: name}
	p.set(&d.node, name.Pos())

	p.want(_Colon)
	switch p.tok.Tok {
	case _Assign, _Comma, _Rparen:
	default:
		d.Type = p.ParseType()
	}
	if p.got(_Assign) {
		d.Value = p.value()
	}

	if d.Type == nil && d.Value == nil {
		p.syntaxErrorAt(d.pos, fmt.Sprintf("argument '%s' has neither a type nor a default value", name.Value))
	}
	return d
}

// procedureTail parses what follows a procedure's argument list:
// an optional '-> Type' and, unless typeOnly is set, an optional body.
// Without a body the result is a *TypeProcedure.
func (p *Parser) procedureTail(pos Pos, args []*Declaration, typeOnly bool) Node {
	var result Type
	if p.got(_Arrow) {
		result = p.ParseType()
	}

	if !typeOnly && p.tok.Tok == _Lbrace {
		proc := &Procedure{Args: args, Result: result}
		p.set(&proc.node, pos)
		proc.Body = p.ParseScope(args)
		return proc
	}

	t := &TypeProcedure{Result: result}
	p.set(&t.node, pos)
	for _, arg := range args {
		if arg.Type == nil {
			p.syntaxErrorAt(arg.Pos(), fmt.Sprintf("argument '%s' of a procedure type needs a type", arg.Name.Value))
			continue
		}
		t.Args = append(t.Args, arg.Type)
	}
	return t
}

// ----------------------------------------------------------------------------
// Types

// ParseType parses a type expression.
func (p *Parser) ParseType() Type {
	p.enter()
	defer p.leave()

	switch p.tok.Tok {
	case _Name:
		t := &TypeName{Value: p.tok.Lit}
		p.set(&t.node, p.tok.Pos)
		p.next()
		return t

	case _Caret: // ^T
		t := &TypePointer{}
		p.set(&t.node, p.tok.Pos)
		p.next()
		t.Elem = p.ParseType()
		return t

	case _Mul: // *T
		t := &TypeDeref{}
		p.set(&t.node, p.tok.Pos)
		p.next()
		t.X = p.ParseType()
		return t

	case _Lparen: // (args) -> T
		pos := p.advance().Pos
		var args []*Declaration
		if p.tok.Tok != _Rparen {
			args = p.argList(p.argument(p.name()))
		}
		p.want(_Rparen)
		return p.procedureTail(pos, args, true).(Type)

	default:
		p.errorExpected("type")
		t := &TypeName{Value: "_"} // error recovery
		p.set(&t.node, p.tok.Pos)
		return t
	}
}
