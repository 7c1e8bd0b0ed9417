package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	// Built-in types, always predeclared
	Meta // the type of types, spelled "type"
	Void
	Int // 64-bit signed

	// Sized primitives, predeclared when extended primitives are enabled.
	// There is no separate 64-bit signed kind: s64 is Int.
	Int8
	Int16
	Int32
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	IsInteger BasicInfo = 1 << iota
	IsUnsigned
	IsFloat
	IsNumeric = IsInteger | IsFloat
)

// Basic represents a primitive type.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	bits int // width in bits, 0 for type and void
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Bits returns the width of the type in bits.
// It is 0 for type and void.
func (b *Basic) Bits() int {
	return b.bits
}

// Signed reports whether b is a signed integer type.
func (b *Basic) Signed() bool {
	return b.info&IsInteger != 0 && b.info&IsUnsigned == 0
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Meta:    {kind: Meta, name: "type"},
	Void:    {kind: Void, name: "void"},
	Int:     {kind: Int, info: IsInteger, bits: 64, name: "int"},
	Int8:    {kind: Int8, info: IsInteger, bits: 8, name: "s8"},
	Int16:   {kind: Int16, info: IsInteger, bits: 16, name: "s16"},
	Int32:   {kind: Int32, info: IsInteger, bits: 32, name: "s32"},
	Uint8:   {kind: Uint8, info: IsInteger | IsUnsigned, bits: 8, name: "u8"},
	Uint16:  {kind: Uint16, info: IsInteger | IsUnsigned, bits: 16, name: "u16"},
	Uint32:  {kind: Uint32, info: IsInteger | IsUnsigned, bits: 32, name: "u32"},
	Uint64:  {kind: Uint64, info: IsInteger | IsUnsigned, bits: 64, name: "u64"},
	Float32: {kind: Float32, info: IsFloat, bits: 32, name: "f32"},
	Float64: {kind: Float64, info: IsFloat, bits: 64, name: "f64"},
}

// IntegerType returns the predeclared integer type with the given width and
// signedness, or nil if there is none.
func IntegerType(bits int, signed bool) *Basic {
	for _, b := range Typ {
		if b != nil && b.info&IsInteger != 0 && b.bits == bits && b.Signed() == signed {
			return b
		}
	}
	return nil
}

// FloatType returns the predeclared float type with the given width,
// or nil if there is none.
func FloatType(bits int) *Basic {
	switch bits {
	case 32:
		return Typ[Float32]
	case 64:
		return Typ[Float64]
	}
	return nil
}
