// Package types implements the type universe for the ember language.
// This package provides type representations without AST dependencies.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
