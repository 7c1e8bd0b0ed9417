package resolve

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/ember/internal/syntax"
)

// Error kinds. An *Error wraps exactly one of them; use errors.Is to
// test for a kind.
var (
	ErrNameNotFound     = errors.New("name not found")
	ErrCyclicDependency = errors.New("cyclic dependency")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrDerefNonPointer  = errors.New("dereference of non-pointer type")
	ErrUnsupported      = errors.New("unsupported")
	ErrNotAType         = errors.New("not a type")
	ErrInvalidAST       = errors.New("invalid AST")
)

// Error is a semantic error found during resolution.
type Error struct {
	Pos  syntax.Pos
	Kind error // one of the Err* kinds
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// ErrorHandler is called with the error that stopped resolution.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf stops resolution with an error of the given kind.
// It is recovered in Resolver.Resolve.
func (r *Resolver) errorf(pos syntax.Pos, kind error, format string, args ...interface{}) {
	panic(&Error{Pos: pos, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// invalidAST reports a tree the parser could not have produced.
func (r *Resolver) invalidAST(n syntax.Node, format string, args ...interface{}) {
	r.errorf(n.Pos(), ErrInvalidAST, "invalid AST: "+format, args...)
}
