package resolve

import (
	"github.com/you-not-fish/ember/internal/syntax"
	"github.com/you-not-fish/ember/internal/types"
)

// declaration resolves a declaration. The declared type is the explicit
// type if there is one, otherwise the type of the value; when both are
// present they must be identical.
//
// A constant whose value is a type makes its name denote that type.
func (r *Resolver) declaration(d *syntax.Declaration) {
	if d.Name == nil {
		r.invalidAST(d, "declaration without a name")
	}

	var declared types.Type
	if d.Type != nil {
		declared = r.typeOf(d.Type)
	}

	var value types.Type
	if d.Value != nil {
		r.resolve(d.Value)
		value = d.Value.Resolved()
	}

	switch {
	case declared != nil && value != nil:
		if !r.identical(declared, value) {
			r.errorf(d.Value.Pos(), ErrTypeMismatch,
				"type mismatch in declaration of '%s': declared %s, value has type %s",
				d.Name.Value, declared, value)
		}
	case declared != nil:
	case value != nil:
		declared = value
	default:
		r.invalidAST(d, "declaration of '%s' has neither a type nor a value", d.Name.Value)
	}

	declared = r.table.Intern(declared)
	d.SetVarType(declared)

	d.Name.SetResolved(declared)
	if d.Constant && d.Value != nil && types.IsMeta(value) {
		d.Name.SetDenoted(d.Value.Denoted())
	}
	d.Name.SetCompletion(syntax.Complete)

	d.SetResolved(types.Typ[types.Void])
	if r.info != nil {
		r.info.Decls = append(r.info.Decls, d)
	}
}
