package types

import "strings"

// Pointer represents a pointer type ^Elem.
// Pointers are created by a Table so that equal pointer types are
// the same *Pointer.
type Pointer struct {
	typ
	elem Type
}

// Elem returns the element type of the pointer.
func (p *Pointer) Elem() Type {
	return p.elem
}

// String implements Type.
func (p *Pointer) String() string {
	return "^" + p.elem.String()
}

// Proc represents a procedure type (Params...) -> Result.
// Procs are created by a Table so that equal procedure types are
// the same *Proc.
type Proc struct {
	typ
	params []Type
	result Type // Typ[Void] for procedures without a result
}

// NumParams returns the number of parameters.
func (p *Proc) NumParams() int {
	return len(p.params)
}

// Param returns the type of parameter i.
func (p *Proc) Param(i int) Type {
	return p.params[i]
}

// Params returns the parameter types.
func (p *Proc) Params() []Type {
	return p.params
}

// Result returns the result type.
func (p *Proc) Result() Type {
	return p.result
}

// String implements Type.
func (p *Proc) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, t := range p.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteString(") -> ")
	b.WriteString(p.result.String())
	return b.String()
}
