package resolve

import (
	"github.com/you-not-fish/ember/internal/syntax"
	"github.com/you-not-fish/ember/internal/types"
)

// Resolver resolves syntax trees.
type Resolver struct {
	conf  *Config
	info  *Info
	table *types.Table

	// Nodes currently being resolved, innermost last.
	path []syntax.Node
}

// resolve resolves n once. Reentering a node that is still being
// resolved is a cycle.
func (r *Resolver) resolve(n syntax.Node) {
	switch n.Completion() {
	case syntax.Complete:
		return
	case syntax.Completing:
		r.cycle(n)
	}

	n.SetCompletion(syntax.Completing)
	r.path = append(r.path, n)

	r.resolveNode(n)

	r.path = r.path[:len(r.path)-1]
	n.SetCompletion(syntax.Complete)
}

// cycle reports that n depends on itself.
func (r *Resolver) cycle(n syntax.Node) {
	if d, ok := n.(*syntax.Declaration); ok {
		r.errorf(n.Pos(), ErrCyclicDependency, "cyclic dependency in declaration of '%s'", d.Name.Value)
	}
	r.errorf(n.Pos(), ErrCyclicDependency, "cyclic dependency")
}

func (r *Resolver) resolveNode(n syntax.Node) {
	switch n := n.(type) {
	case *syntax.File:
		if n.Body == nil {
			r.invalidAST(n, "file without a scope")
		}
		r.resolve(n.Body)
		n.SetResolved(types.Typ[types.Void])

	case *syntax.Scope:
		for _, d := range n.Extra {
			r.resolve(d)
		}
		for _, s := range n.Stmts {
			r.resolve(s)
		}
		n.SetResolved(types.Typ[types.Void])

	case *syntax.Declaration:
		r.declaration(n)

	case syntax.Expr:
		r.expr(n)

	case syntax.Type:
		r.typExpr(n)

	default:
		r.invalidAST(n, "unexpected node %T", n)
	}
}

// identical reports whether x and y are the same type. Composite types
// are compared by their representatives in the table.
func (r *Resolver) identical(x, y types.Type) bool {
	if x == nil || y == nil {
		return x == y
	}
	return r.table.Intern(x) == r.table.Intern(y)
}

// recordUse records that the name n refers to target.
func (r *Resolver) recordUse(n, target syntax.Node) {
	if r.info != nil {
		r.info.Uses[n] = target
	}
}
