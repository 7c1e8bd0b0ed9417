package types

// Identical reports whether x and y are identical types.
// Identity is structural: types built by different tables compare equal
// when their shapes and leaf types match.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Pointer:
		if y, ok := y.(*Pointer); ok {
			return Identical(x.elem, y.elem)
		}
	case *Proc:
		if y, ok := y.(*Proc); ok {
			return identicalProcs(x, y)
		}
	}
	return false
}

func identicalProcs(x, y *Proc) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i], y.params[i]) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

// IsMeta reports whether T is the type of types.
func IsMeta(T Type) bool {
	return isKind(T, Meta)
}

// IsVoid reports whether T is void.
func IsVoid(T Type) bool {
	return isKind(T, Void)
}

// IsIntegerType reports whether T is an integer type.
func IsIntegerType(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.info&IsInteger != 0
}

// IsFloatType reports whether T is a floating-point type.
func IsFloatType(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.info&IsFloat != 0
}

// IsPointer reports whether T is a pointer type.
func IsPointer(T Type) bool {
	_, ok := T.(*Pointer)
	return ok
}

// IsProc reports whether T is a procedure type.
func IsProc(T Type) bool {
	_, ok := T.(*Proc)
	return ok
}

func isKind(T Type, kind BasicKind) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == kind
}
