package types

// Target sizes, in bytes.
const (
	PtrSize  = 8
	PtrAlign = 8
)

// Sizes provides size and alignment calculations for types.
type Sizes struct{}

// DefaultSizes is the default Sizes implementation.
var DefaultSizes = &Sizes{}

// Sizeof returns the size of type T in bytes.
// type and void have size 0; procedures are pointer-sized.
func (s *Sizes) Sizeof(T Type) int64 {
	switch t := T.(type) {
	case *Basic:
		return int64(t.bits / 8)
	case *Pointer, *Proc:
		return PtrSize
	}
	return 0
}

// Alignof returns the alignment of type T in bytes.
func (s *Sizes) Alignof(T Type) int64 {
	switch t := T.(type) {
	case *Basic:
		if t.bits == 0 {
			return 1
		}
		return int64(t.bits / 8)
	case *Pointer, *Proc:
		return PtrAlign
	}
	return 1
}
