// Package resolve implements name resolution and type checking for the
// ember language.
//
// Resolution works in place: every node reached is given a resolved type,
// and nodes that stand for a type also record the type they denote. The
// first semantic error stops resolution.
package resolve

import (
	"github.com/you-not-fish/ember/internal/syntax"
	"github.com/you-not-fish/ember/internal/types"
)

// Config specifies the configuration for resolution.
type Config struct {
	// Error is called with the error that stopped resolution.
	// If nil, the error is only returned.
	Error ErrorHandler

	// ExtendedPrimitives predeclares the sized primitive types
	// s8, s16, s32, s64, u8, u16, u32, u64, f32 and f64.
	ExtendedPrimitives bool

	// Table interns composite types. If nil, each Resolver uses its own.
	Table *types.Table
}

// Info holds the results of resolution.
type Info struct {
	// Uses maps each resolved *syntax.Name and *syntax.TypeName to what
	// it refers to: a *syntax.Declaration, or the shared builtin node of
	// a predeclared type (see syntax.Builtin).
	Uses map[syntax.Node]syntax.Node

	// Decls lists the declarations in the order they completed.
	Decls []*syntax.Declaration
}

// Resolve resolves node and everything it depends on.
// It returns the first error encountered, if any.
func Resolve(node syntax.Node, conf *Config, info *Info) error {
	return NewResolver(conf, info).Resolve(node)
}

// NewResolver returns a Resolver that can be used for several calls to
// Resolve, for example on statements added to a file one at a time.
func NewResolver(conf *Config, info *Info) *Resolver {
	if conf == nil {
		conf = &Config{}
	}
	if info != nil && info.Uses == nil {
		info.Uses = make(map[syntax.Node]syntax.Node)
	}

	table := conf.Table
	if table == nil {
		table = types.NewTable()
	}

	return &Resolver{
		conf:  conf,
		info:  info,
		table: table,
	}
}

// Resolve resolves node. Nodes that are already complete are not
// visited again, so calling Resolve twice on the same tree is cheap.
//
// After an error, the nodes that were being resolved are reset so a
// later call can retry them.
func (r *Resolver) Resolve(node syntax.Node) (err error) {
	if node == nil {
		return nil
	}

	defer func() {
		x := recover()
		if x == nil {
			return
		}
		e, ok := x.(*Error)
		if !ok {
			panic(x)
		}
		for _, n := range r.path {
			n.SetCompletion(syntax.Incomplete)
		}
		r.path = r.path[:0]
		if r.conf.Error != nil {
			r.conf.Error(e.Pos, e.Msg)
		}
		err = e
	}()

	r.resolve(node)
	return nil
}
