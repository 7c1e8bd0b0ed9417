package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an s-expression representation of the AST to w.
// Every child is printed on its own line, labeled with its role and
// indented with tabs. Absent children print as ().
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node, 0)
	p.printf("\n")
}

// FprintTyped is like Fprint but also prints the resolved type of every
// node that has one.
func FprintTyped(w io.Writer, node Node) {
	p := &printer{w: w, typed: true}
	p.print(node, 0)
	p.printf("\n")
}

type printer struct {
	w     io.Writer
	typed bool
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// header prints the opening of a node: "(<Kind>".
func (p *printer) header(kind string, n Node) {
	p.printf("(<%s>", kind)
	if p.typed && n.Resolved() != nil {
		p.printf(" : %s", n.Resolved())
	}
}

// category starts a new labeled line one level below indent.
func (p *printer) category(indent int, label string) {
	p.printf("\n%s%s", strings.Repeat("\t", indent+1), label)
}

// list prints nodes as a comma separated list, one per line.
func (p *printer) list(indent int, nodes []Node) {
	for i, n := range nodes {
		if i == 0 {
			p.printf("\n")
		}
		p.printf("%s", strings.Repeat("\t", indent+2))
		p.print(n, indent+2)
		if i != len(nodes)-1 {
			p.printf(",\n")
		}
	}
	p.printf(")")
}

func (p *printer) print(node Node, indent int) {
	if node == nil {
		p.printf("()")
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("(<File> Scope: ")
		p.print(n.Body, indent+1)
		p.printf(")")

	case *Scope:
		p.header("Scope", n)
		p.category(indent, "Statements: (")
		p.list(indent, stmtNodes(n.Stmts))
		p.printf(")")

	case *Declaration:
		p.header("Declaration", n)
		p.category(indent, "Constant: ")
		p.printf("%t", n.Constant)
		p.category(indent, "Name: ")
		p.print(n.Name, indent+1)
		p.category(indent, "Type: ")
		p.print(n.Type, indent+1)
		p.category(indent, "Value: ")
		p.print(n.Value, indent+1)
		if p.typed && n.VarType() != nil {
			p.category(indent, "VarType: ")
			p.printf("%s", n.VarType())
		}
		p.printf(")")

	case *IntegerLiteral:
		p.header("Integer", n)
		p.category(indent, "Value: ")
		p.printf("%d)", n.Value)

	case *FloatLiteral:
		p.header("Float", n)
		p.category(indent, "Value: ")
		p.printf("%f)", n.Value)

	case *Name:
		p.header("Name", n)
		p.category(indent, "Value: ")
		p.printf("'%s')", n.Value)

	case *Unary:
		p.header("Unary", n)
		p.category(indent, "Operator: ")
		p.printf("'%s'", n.Op)
		p.category(indent, "Operand: ")
		p.print(n.X, indent+1)
		p.printf(")")

	case *Binary:
		p.header("Binary", n)
		p.category(indent, "Operator: ")
		p.printf("'%s'", n.Op)
		p.category(indent, "Left: ")
		p.print(n.X, indent+1)
		p.category(indent, "Right: ")
		p.print(n.Y, indent+1)
		p.printf(")")

	case *Procedure:
		p.header("Procedure", n)
		p.category(indent, "Arguments: (")
		p.list(indent, declNodes(n.Args))
		p.category(indent, "ReturnType: ")
		p.print(n.Result, indent+1)
		p.category(indent, "Body: ")
		if n.Body != nil {
			p.print(n.Body, indent+1)
		} else {
			p.printf("()")
		}
		p.printf(")")

	case *TypeName:
		p.header("Type Name", n)
		p.category(indent, "Value: ")
		p.printf("'%s')", n.Value)

	case *TypePointer:
		p.header("Type Pointer", n)
		p.category(indent, "Pointer To: ")
		p.print(n.Elem, indent+1)
		p.printf(")")

	case *TypeDeref:
		p.header("Type Deref", n)
		p.category(indent, "Derefed Type: ")
		p.print(n.X, indent+1)
		p.printf(")")

	case *TypeInteger:
		p.header("Type Integer", n)
		p.category(indent, "Size: ")
		p.printf("%d", n.Size)
		p.category(indent, "Signed: ")
		p.printf("%t)", n.Signed)

	case *TypeFloat:
		p.header("Type Float", n)
		p.category(indent, "Size: ")
		p.printf("%d)", n.Size)

	case *TypeVoid:
		p.header("Type Void", n)
		p.printf(")")

	case *TypeType:
		p.header("Type Type", n)
		p.printf(")")

	case *TypeProcedure:
		p.header("Type Procedure", n)
		p.category(indent, "Arguments: (")
		p.list(indent, typeNodes(n.Args))
		p.category(indent, "ReturnType: ")
		p.print(n.Result, indent+1)
		p.printf(")")

	default:
		p.printf("(<%T>)", node)
	}
}

func stmtNodes(list []Stmt) []Node {
	nodes := make([]Node, len(list))
	for i, s := range list {
		nodes[i] = s
	}
	return nodes
}

func declNodes(list []*Declaration) []Node {
	nodes := make([]Node, len(list))
	for i, d := range list {
		nodes[i] = d
	}
	return nodes
}

func typeNodes(list []Type) []Node {
	nodes := make([]Node, len(list))
	for i, t := range list {
		nodes[i] = t
	}
	return nodes
}
