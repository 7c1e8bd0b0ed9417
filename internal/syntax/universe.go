package syntax

import "github.com/you-not-fish/ember/internal/types"

// Builtin type nodes. They are created once, already resolved, and shared
// by every tree; they are never part of a parsed file.
var (
	builtinType *TypeType
	builtinVoid *TypeVoid
	builtinInt  *TypeInteger

	builtins map[string]Type
)

func init() {
	builtinType = &TypeType{}
	builtinVoid = &TypeVoid{}
	builtinInt = &TypeInteger{Size: 64, Signed: true}

	builtins = map[string]Type{
		"type": builtinType,
		"void": builtinVoid,
		"int":  builtinInt,
	}
	for name, b := range types.Extended {
		if name == "s64" {
			builtins[name] = builtinInt
			continue
		}
		if b.Info()&types.IsFloat != 0 {
			builtins[name] = &TypeFloat{Size: b.Bits()}
		} else {
			builtins[name] = &TypeInteger{Size: b.Bits(), Signed: b.Signed()}
		}
	}

	for name, n := range builtins {
		n.SetResolved(types.Typ[types.Meta])
		n.SetDenoted(types.Lookup(name, true))
		n.SetCompletion(Complete)
	}
}

// Builtin returns the shared node for the predeclared type with the given
// name. Sized primitives such as u8 or f32 are only returned when extended
// is set.
func Builtin(name string, extended bool) Type {
	if types.Lookup(name, extended) == nil {
		return nil
	}
	return builtins[name]
}
