package resolve

import "github.com/you-not-fish/ember/internal/syntax"

// lookup finds the declaration of name visible from n.
//
// Each scope on the chain from n's scope to the file scope is searched in
// source order: first its extra declarations, then the statements before
// the one containing the reference. A name is therefore never visible
// before its declaration, nor inside its own declaration. The first match
// wins.
func lookup(name string, n syntax.Node) *syntax.Declaration {
	scope, slot := n.Scope(), n.Slot()
	for scope != nil {
		for _, d := range scope.Extra {
			if d.Name.Value == name {
				return d
			}
		}
		for i := 0; i < slot && i < len(scope.Stmts); i++ {
			if d, ok := scope.Stmts[i].(*syntax.Declaration); ok && d.Name.Value == name {
				return d
			}
		}
		scope, slot = scope.Scope(), scope.Slot()
	}
	return nil
}

// builtin returns the shared node of the predeclared type name, or nil.
func (r *Resolver) builtin(name string) syntax.Type {
	return syntax.Builtin(name, r.conf.ExtendedPrimitives)
}

// resolveName resolves the target of a reference to name at n and returns
// it: a declaration, or a builtin type node.
func (r *Resolver) resolveName(n syntax.Node, name string) syntax.Node {
	if b := r.builtin(name); b != nil {
		r.recordUse(n, b)
		return b
	}

	d := lookup(name, n)
	if d == nil {
		r.errorf(n.Pos(), ErrNameNotFound, "name '%s' not found", name)
	}
	r.resolve(d)
	r.recordUse(n, d)
	return d
}
