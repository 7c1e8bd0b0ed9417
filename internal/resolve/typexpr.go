package resolve

import (
	"github.com/you-not-fish/ember/internal/syntax"
	"github.com/you-not-fish/ember/internal/types"
)

// typeOf resolves the type expression t and returns the type it denotes.
func (r *Resolver) typeOf(t syntax.Type) types.Type {
	r.resolve(t)
	typ := t.Denoted()
	if typ == nil {
		r.invalidAST(t, "type expression %T denotes no type", t)
	}
	return typ
}

// typExpr resolves a type expression. Every type expression is a value
// of type type; what it stands for is recorded as its denoted type.
func (r *Resolver) typExpr(t syntax.Type) {
	var typ types.Type

	switch t := t.(type) {
	case *syntax.TypeName:
		typ = r.typeName(t)

	case *syntax.TypePointer:
		typ = r.table.Pointer(r.typeOf(t.Elem))

	case *syntax.TypeDeref:
		x := r.typeOf(t.X)
		ptr, ok := x.(*types.Pointer)
		if !ok {
			r.errorf(t.Pos(), ErrDerefNonPointer, "cannot dereference non-pointer type %s", x)
		}
		typ = ptr.Elem()

	case *syntax.TypeProcedure:
		params := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			params[i] = r.typeOf(arg)
		}
		var result types.Type
		if t.Result != nil {
			result = r.typeOf(t.Result)
		}
		typ = r.table.Proc(params, result)

	case *syntax.TypeInteger:
		if b := types.IntegerType(t.Size, t.Signed); b != nil {
			typ = b
		} else {
			r.errorf(t.Pos(), ErrUnsupported, "no %d-bit integer type", t.Size)
		}

	case *syntax.TypeFloat:
		if b := types.FloatType(t.Size); b != nil {
			typ = b
		} else {
			r.errorf(t.Pos(), ErrUnsupported, "no %d-bit float type", t.Size)
		}

	case *syntax.TypeVoid:
		typ = types.Typ[types.Void]

	case *syntax.TypeType:
		typ = types.Typ[types.Meta]

	default:
		r.invalidAST(t, "unexpected type %T", t)
	}

	t.SetResolved(types.Typ[types.Meta])
	t.SetDenoted(typ)
}

// typeName returns the type denoted by a type name: a predeclared type or
// a constant declared with a type value.
func (r *Resolver) typeName(t *syntax.TypeName) types.Type {
	switch target := r.resolveName(t, t.Value).(type) {
	case *syntax.Declaration:
		if typ := target.Name.Denoted(); typ != nil {
			return typ
		}
		r.errorf(t.Pos(), ErrNotAType, "'%s' is not a type", t.Value)
	case syntax.Type:
		return target.Denoted()
	}
	return nil
}
