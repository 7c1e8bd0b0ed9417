package resolve

import (
	"github.com/you-not-fish/ember/internal/syntax"
	"github.com/you-not-fish/ember/internal/types"
)

// expr resolves an expression.
func (r *Resolver) expr(x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.IntegerLiteral:
		x.SetResolved(types.Typ[types.Int])

	case *syntax.FloatLiteral:
		r.errorf(x.Pos(), ErrUnsupported, "float literals are not supported")

	case *syntax.Name:
		r.name(x)

	// Operators are not typed yet: the result has the type of the
	// (left) operand.
	case *syntax.Unary:
		r.resolve(x.X)
		x.SetResolved(x.X.Resolved())

	case *syntax.Binary:
		r.resolve(x.X)
		r.resolve(x.Y)
		x.SetResolved(x.X.Resolved())

	case *syntax.Procedure:
		r.procedure(x)

	default:
		r.invalidAST(x, "unexpected expression %T", x)
	}
}

// name resolves a name used as a value. A name that refers to a type is
// a value of type type.
func (r *Resolver) name(x *syntax.Name) {
	switch target := r.resolveName(x, x.Value).(type) {
	case *syntax.Declaration:
		x.SetResolved(target.VarType())
		x.SetDenoted(target.Name.Denoted())
	case syntax.Type:
		x.SetResolved(target.Resolved())
		x.SetDenoted(target.Denoted())
	}
}

// procedure resolves the arguments, the result type and then the body.
func (r *Resolver) procedure(x *syntax.Procedure) {
	params := make([]types.Type, len(x.Args))
	for i, arg := range x.Args {
		r.resolve(arg)
		params[i] = arg.VarType()
	}

	var result types.Type
	if x.Result != nil {
		result = r.typeOf(x.Result)
	}

	sig := r.table.Proc(params, result)

	if x.Body != nil {
		r.resolve(x.Body)
	}
	x.SetResolved(sig)
}
