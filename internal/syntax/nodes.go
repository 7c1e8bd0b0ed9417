package syntax

import "github.com/you-not-fish/ember/internal/types"

// ----------------------------------------------------------------------------
// Interfaces
//
// The node hierarchy is closed. There are 2 structural nodes (File, Scope)
// and 3 categories: Statements, Expressions and Types. Every Expression is
// also a Statement. All nodes implement the Node interface.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos      // position of first character belonging to the node
	File() *File   // enclosing file, nil at the root
	Scope() *Scope // innermost enclosing scope, nil outside any scope
	Slot() int     // index in Scope() of the statement containing the node

	// Resolution state, written by the resolver.
	Completion() Completion
	SetCompletion(Completion)
	Resolved() types.Type // type of the node's value
	SetResolved(types.Type)
	Denoted() types.Type // type the node stands for, if it names one
	SetDenoted(types.Type)

	aNode() // marker method to restrict implementations to this package
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Stmt
	aExpr()
}

// Type is the interface for all type expression nodes.
type Type interface {
	Node
	aType()
}

// Completion tracks the progress of resolving a node.
type Completion uint8

const (
	Incomplete Completion = iota
	Completing
	Complete
)

func (c Completion) String() string {
	switch c {
	case Incomplete:
		return "incomplete"
	case Completing:
		return "completing"
	case Complete:
		return "complete"
	}
	return "completion(?)"
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
// file and scope are back-references; a node never owns its parents.
type node struct {
	pos   Pos
	file  *File
	scope *Scope
	slot  int

	state    Completion
	resolved types.Type
	denoted  types.Type
}

func (n *node) Pos() Pos      { return n.pos }
func (n *node) File() *File   { return n.file }
func (n *node) Scope() *Scope { return n.scope }
func (n *node) Slot() int     { return n.slot }
func (n *node) aNode()        {}

func (n *node) Completion() Completion     { return n.state }
func (n *node) SetCompletion(c Completion) { n.state = c }
func (n *node) Resolved() types.Type       { return n.resolved }
func (n *node) SetResolved(t types.Type)   { n.resolved = t }
func (n *node) Denoted() types.Type        { return n.denoted }
func (n *node) SetDenoted(t types.Type)    { n.denoted = t }

// SetParent sets the back-references of n. The parser does this for every
// node it creates; it is exported for code that builds trees by hand.
func (n *node) SetParent(file *File, scope *Scope, slot int) {
	n.file = file
	n.scope = scope
	n.slot = slot
}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// expr is embedded in all expression nodes.
type expr struct{ stmt }

func (*expr) aExpr() {}

// typeNode is embedded in all type expression nodes.
type typeNode struct{ node }

func (*typeNode) aType() {}

// ----------------------------------------------------------------------------
// Structural nodes

// File represents a complete source file.
type File struct {
	node
	Name string // file name
	Body *Scope // file scope
}

// Scope represents a brace-delimited list of statements, or the body of a file.
// Extra holds declarations injected into the scope, such as procedure
// parameters; they are visible to every statement in Stmts.
type Scope struct {
	stmt
	Stmts  []Stmt
	Extra  []*Declaration
	Rbrace Pos // position of closing brace, invalid for a file scope
}

// ----------------------------------------------------------------------------
// Statements

// Declaration represents a declaration: Name : Type = Value or Name :: Value.
// At least one of Type and Value is set.
type Declaration struct {
	stmt
	Constant bool  // declared with ::
	Name     *Name // declared name
	Type     Type  // explicit type, nil if inferred
	Value    Node  // initial value: an Expr or a *TypeProcedure; nil if none

	varType types.Type
}

// VarType returns the type of the declared name, once resolved.
func (d *Declaration) VarType() types.Type { return d.varType }

// SetVarType sets the type of the declared name.
func (d *Declaration) SetVarType(t types.Type) { d.varType = t }

// ----------------------------------------------------------------------------
// Expressions

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	expr
	Value uint64
}

// FloatLiteral represents a floating-point literal.
type FloatLiteral struct {
	expr
	Value float64
}

// Name represents an identifier.
type Name struct {
	expr
	Value string
}

// Unary represents a prefix operation: Op X.
type Unary struct {
	expr
	Op Token // Add, Sub, Mul or Caret
	X  Expr
}

// Binary represents a binary operation: X Op Y.
type Binary struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// Procedure represents a procedure literal: (Args) -> Result { Body }.
type Procedure struct {
	expr
	Args   []*Declaration
	Result Type   // nil for void
	Body   *Scope // Body.Extra holds Args
}

// ----------------------------------------------------------------------------
// Type expressions

// TypeName represents a type referred to by name.
type TypeName struct {
	typeNode
	Value string
}

// TypePointer represents a pointer type: ^Elem.
type TypePointer struct {
	typeNode
	Elem Type
}

// TypeDeref represents the pointee of a pointer type: *X.
type TypeDeref struct {
	typeNode
	X Type
}

// TypeInteger represents a sized integer type.
type TypeInteger struct {
	typeNode
	Size   int // bits
	Signed bool
}

// TypeFloat represents a sized floating-point type.
type TypeFloat struct {
	typeNode
	Size int // bits
}

// TypeVoid represents void.
type TypeVoid struct {
	typeNode
}

// TypeType represents the type of types.
type TypeType struct {
	typeNode
}

// TypeProcedure represents a procedure type: (Args) -> Result.
type TypeProcedure struct {
	typeNode
	Args   []Type
	Result Type // nil for void
}

// ----------------------------------------------------------------------------
// Category predicates

// IsStatement reports whether n is a statement. Every expression is one.
func IsStatement(n Node) bool {
	_, ok := n.(Stmt)
	return ok
}

// IsExpression reports whether n is an expression.
func IsExpression(n Node) bool {
	_, ok := n.(Expr)
	return ok
}

// IsType reports whether n is a type expression.
func IsType(n Node) bool {
	_, ok := n.(Type)
	return ok
}
