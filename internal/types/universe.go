package types

// Universe maps the always-predeclared type names to their types.
var Universe map[string]*Basic

// Extended maps the sized primitive names to their types. They are only
// predeclared when extended primitives are enabled.
var Extended map[string]*Basic

func init() {
	Universe = make(map[string]*Basic)
	for _, kind := range []BasicKind{Meta, Void, Int} {
		Universe[Typ[kind].name] = Typ[kind]
	}

	Extended = make(map[string]*Basic)
	for _, kind := range []BasicKind{Int8, Int16, Int32, Uint8, Uint16, Uint32, Uint64, Float32, Float64} {
		Extended[Typ[kind].name] = Typ[kind]
	}
	// s64 is the same type as int.
	Extended["s64"] = Typ[Int]
}

// Lookup returns the predeclared type with the given name.
// Sized primitives are only found when extended is set.
func Lookup(name string, extended bool) *Basic {
	if b, ok := Universe[name]; ok {
		return b
	}
	if extended {
		return Extended[name]
	}
	return nil
}
