package syntax

// TypesEqual reports whether the type expressions a and b are structurally
// equal: the same variant with equal contents. Names are compared by their
// text, not by what they refer to.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a := a.(type) {
	case *TypeName:
		if b, ok := b.(*TypeName); ok {
			return a.Value == b.Value
		}
	case *TypeInteger:
		if b, ok := b.(*TypeInteger); ok {
			return a.Size == b.Size && a.Signed == b.Signed
		}
	case *TypeFloat:
		if b, ok := b.(*TypeFloat); ok {
			return a.Size == b.Size
		}
	case *TypeVoid:
		_, ok := b.(*TypeVoid)
		return ok
	case *TypeType:
		_, ok := b.(*TypeType)
		return ok
	case *TypePointer:
		if b, ok := b.(*TypePointer); ok {
			return TypesEqual(a.Elem, b.Elem)
		}
	case *TypeDeref:
		if b, ok := b.(*TypeDeref); ok {
			return TypesEqual(a.X, b.X)
		}
	case *TypeProcedure:
		if b, ok := b.(*TypeProcedure); ok {
			return proceduresEqual(a, b)
		}
	}
	return false
}

func proceduresEqual(a, b *TypeProcedure) bool {
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !TypesEqual(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return TypesEqual(a.Result, b.Result)
}
