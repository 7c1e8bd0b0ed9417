package types

import "sync"

// A Table interns composite types. Within one table, two structurally
// identical pointer or procedure types are represented by the same value,
// so they can be compared with ==.
//
// Basic types are shared process-wide through Typ and are never
// copied into a table.
type Table struct {
	mu       sync.Mutex
	pointers map[string]*Pointer
	procs    map[string]*Proc
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		pointers: make(map[string]*Pointer),
		procs:    make(map[string]*Proc),
	}
}

// Pointer returns the pointer type ^elem.
func (t *Table) Pointer(elem Type) *Pointer {
	p := &Pointer{elem: t.canon(elem)}
	key := p.String()

	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.pointers[key]; ok {
		return old
	}
	t.pointers[key] = p
	return p
}

// Proc returns the procedure type (params...) -> result.
// A nil result means void.
func (t *Table) Proc(params []Type, result Type) *Proc {
	if result == nil {
		result = Typ[Void]
	}
	p := &Proc{
		params: make([]Type, len(params)),
		result: t.canon(result),
	}
	for i, param := range params {
		p.params[i] = t.canon(param)
	}
	key := p.String()

	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.procs[key]; ok {
		return old
	}
	t.procs[key] = p
	return p
}

// Intern returns the representative of typ in t.
// typ may have been built by another table.
func (t *Table) Intern(typ Type) Type {
	return t.canon(typ)
}

// Len returns the number of composite types interned in t.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pointers) + len(t.procs)
}

// canon maps typ to its representative in t.
func (t *Table) canon(typ Type) Type {
	switch x := typ.(type) {
	case *Pointer:
		return t.Pointer(x.elem)
	case *Proc:
		return t.Proc(x.params, x.result)
	}
	return typ
}
