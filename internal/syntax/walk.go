package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// It needs no resolver state, so unresolved trees can be walked.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *Scope:
		for _, d := range n.Extra {
			Walk(d, v)
		}
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *Declaration:
		Walk(n.Name, v)
		if n.Type != nil {
			Walk(n.Type, v)
		}
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *Unary:
		Walk(n.X, v)

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Procedure:
		// Arguments are also the body's extra declarations;
		// visit them once, through the argument list.
		for _, a := range n.Args {
			Walk(a, v)
		}
		if n.Result != nil {
			Walk(n.Result, v)
		}
		if n.Body != nil && v(n.Body) {
			for _, s := range n.Body.Stmts {
				Walk(s, v)
			}
		}

	case *TypePointer:
		Walk(n.Elem, v)

	case *TypeDeref:
		Walk(n.X, v)

	case *TypeProcedure:
		for _, a := range n.Args {
			Walk(a, v)
		}
		if n.Result != nil {
			Walk(n.Result, v)
		}

	// Leaf nodes: IntegerLiteral, FloatLiteral, Name, TypeName,
	// TypeInteger, TypeFloat, TypeVoid, TypeType
	// No children to visit
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
