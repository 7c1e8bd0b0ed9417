package syntax

import "testing"

func parseTypeString(t *testing.T, src string) Type {
	t.Helper()
	p := newTestParser(src)
	typ := p.ParseType()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("ParseType(%q): %v", src, errs)
	}
	return typ
}

func TestTypesEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"int", "int", true},
		{"int", "s64", false}, // names are compared as written
		{"^int", "^int", true},
		{"^int", "^^int", false},
		{"*^int", "*^int", true},
		{"*^int", "^int", false},
		{"(a: int) -> int", "(b: int) -> int", true},
		{"(a: int) -> int", "(a: int)", false},
		{"(a: int)", "(a: int, b: int)", false},
		{"(a: int)", "(a: u8)", false},
		{"()", "()", true},
		{"() -> ^int", "() -> ^int", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := parseTypeString(t, tt.a), parseTypeString(t, tt.b)
			if got := TypesEqual(a, b); got != tt.want {
				t.Errorf("TypesEqual(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := TypesEqual(b, a); got != tt.want {
				t.Errorf("TypesEqual(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestTypesEqualBuiltins(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"nil", nil, nil, true},
		{"nil and void", nil, &TypeVoid{}, false},
		{"void", &TypeVoid{}, &TypeVoid{}, true},
		{"type", &TypeType{}, &TypeType{}, true},
		{"void and type", &TypeVoid{}, &TypeType{}, false},
		{"integer", &TypeInteger{Size: 8}, &TypeInteger{Size: 8}, true},
		{"integer size", &TypeInteger{Size: 8}, &TypeInteger{Size: 16}, false},
		{"integer sign", &TypeInteger{Size: 8, Signed: true}, &TypeInteger{Size: 8}, false},
		{"float", &TypeFloat{Size: 32}, &TypeFloat{Size: 32}, true},
		{"float and integer", &TypeFloat{Size: 32}, &TypeInteger{Size: 32}, false},
		{"shared int", Builtin("int", false), &TypeInteger{Size: 64, Signed: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypesEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("TypesEqual = %v, want %v", got, tt.want)
			}
		})
	}
}
