package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/ember/internal/syntax"
	"github.com/you-not-fish/ember/internal/types"
)

// parse parses src, failing the test on any syntax error.
func parse(t *testing.T, src string) *syntax.File {
	t.Helper()
	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	f := syntax.NewParser("test.em", strings.NewReader(src), errh).ParseFile()
	if len(errs) > 0 {
		t.Fatalf("syntax errors:\n%s", strings.Join(errs, "\n"))
	}
	return f
}

// parseAndResolve parses and resolves src.
func parseAndResolve(t *testing.T, src string, conf *Config) (*syntax.File, *Info, error) {
	t.Helper()
	f := parse(t, src)
	info := &Info{}
	err := Resolve(f, conf, info)
	return f, info, err
}

// expectNoError resolves src and returns the declarations by name.
func expectNoError(t *testing.T, src string, conf *Config) map[string]*syntax.Declaration {
	t.Helper()
	_, info, err := parseAndResolve(t, src, conf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decls := make(map[string]*syntax.Declaration)
	for _, d := range info.Decls {
		decls[d.Name.Value] = d
	}
	return decls
}

// expectError resolves src and checks the kind and message of the error.
func expectError(t *testing.T, src string, kind error, msg string) *Error {
	t.Helper()
	_, _, err := parseAndResolve(t, src, nil)
	if err == nil {
		t.Fatalf("expected %v error, got none", kind)
	}
	if !errors.Is(err, kind) {
		t.Errorf("error %q is not %v", err, kind)
	}
	if !strings.Contains(err.Error(), msg) {
		t.Errorf("error %q does not contain %q", err, msg)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %T is not *Error", err)
	}
	return e
}

func TestResolveInference(t *testing.T) {
	f, _, err := parseAndResolve(t, "x := 5;", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := f.Body.Stmts[0].(*syntax.Declaration)
	lit := d.Value.(*syntax.IntegerLiteral)
	if lit.Resolved() != types.Typ[types.Int] {
		t.Errorf("literal type = %v, want int", lit.Resolved())
	}
	if !types.Identical(d.VarType(), lit.Resolved()) {
		t.Errorf("declared type %v, want the literal's type %v", d.VarType(), lit.Resolved())
	}
	if d.Resolved() != types.Typ[types.Void] {
		t.Errorf("declaration type = %v, want void", d.Resolved())
	}
	if d.Name.Resolved() != d.VarType() {
		t.Errorf("name type = %v, want %v", d.Name.Resolved(), d.VarType())
	}
	if f.Resolved() != types.Typ[types.Void] || f.Body.Resolved() != types.Typ[types.Void] {
		t.Error("file and scope should resolve to void")
	}
}

func TestResolveDeclaredTypes(t *testing.T) {
	tests := []struct {
		src  string
		name string
		want string
	}{
		{"x : int = 5;", "x", "int"},
		{"x : int;", "x", "int"},
		{"x :: 5;", "x", "int"},
		{"p : ^int;", "p", "^int"},
		{"p : ^^int;", "p", "^^int"},
		{"x : *^int = 5;", "x", "int"},
		{"T :: int; y : T = 5;", "y", "int"},
		{"T :: int; U :: T; y : ^U;", "y", "^int"},
		{"x : type = int;", "x", "type"},
		{"v : void;", "v", "void"},
		{"F :: (a: int) -> ^int;", "F", "type"},
		{"F :: (a: int) -> ^int; f : F;", "f", "(int) -> ^int"},
		{"p : ^int; q := -p;", "q", "^int"},
		{"p : ^int; q := **p;", "q", "^int"},
		{"x := - - 1;", "x", "int"},
		{"x := 1 + 2 * 3;", "x", "int"},
		{"a : ^int; b := a * 2;", "b", "^int"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			decls := expectNoError(t, tt.src, nil)
			d := decls[tt.name]
			if d == nil {
				t.Fatalf("no declaration of %s", tt.name)
			}
			if got := d.VarType().String(); got != tt.want {
				t.Errorf("type of %s = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveTypeMismatch(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"x : ^int = 5;", "type mismatch in declaration of 'x': declared ^int, value has type int"},
		{"p : ^int; x : int = p;", "declared int, value has type ^int"},
		{"x : type = 5;", "declared type, value has type int"},
		{"F :: (x: int) -> int; f : F = (y: int) { }", "declared (int) -> int, value has type (int) -> void"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectError(t, tt.src, ErrTypeMismatch, tt.msg)
		})
	}
}

func TestResolveNameNotFound(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"forward reference", "{ b := a; a := 1; }"},
		{"self reference", "a := a;"},
		{"inner scope not visible", "{ a := 1; } b := a;"},
		{"procedure inside its body", "f :: () { f; }"},
		{"argument outside procedure", "f :: (a: int) { } b := a;"},
		{"argument in sibling default", "f :: (a: int, b := a) { }"},
		{"undeclared type", "x : T;"},
		{"sized primitive without extension", "x : u8;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, ErrNameNotFound, "not found")
		})
	}
}

func TestResolveScopeOrdering(t *testing.T) {
	f, info, err := parseAndResolve(t, "{ a := 1; b := a; }", nil)
	if err != nil {
		t.Fatal(err)
	}

	scope := f.Body.Stmts[0].(*syntax.Scope)
	a := scope.Stmts[0].(*syntax.Declaration)
	b := scope.Stmts[1].(*syntax.Declaration)
	if info.Uses[b.Value] != a {
		t.Errorf("b refers to %v, want the declaration of a", info.Uses[b.Value])
	}
}

func TestResolveShadowing(t *testing.T) {
	f, info, err := parseAndResolve(t, "a := 1; { a : ^int; b := a; } c := a;", nil)
	if err != nil {
		t.Fatal(err)
	}

	outer := f.Body.Stmts[0].(*syntax.Declaration)
	scope := f.Body.Stmts[1].(*syntax.Scope)
	inner := scope.Stmts[0].(*syntax.Declaration)
	b := scope.Stmts[1].(*syntax.Declaration)
	c := f.Body.Stmts[2].(*syntax.Declaration)

	if info.Uses[b.Value] != inner || b.VarType().String() != "^int" {
		t.Errorf("b should see the inner a, got type %v", b.VarType())
	}
	if info.Uses[c.Value] != outer || c.VarType().String() != "int" {
		t.Errorf("c should see the outer a, got type %v", c.VarType())
	}
}

func TestResolveFirstDeclarationWins(t *testing.T) {
	f, info, err := parseAndResolve(t, "a := 1; a : ^int; b := a;", nil)
	if err != nil {
		t.Fatal(err)
	}
	first := f.Body.Stmts[0]
	b := f.Body.Stmts[2].(*syntax.Declaration)
	if info.Uses[b.Value] != first {
		t.Errorf("b refers to %v, want the first declaration of a", info.Uses[b.Value])
	}
}

func TestResolveCycle(t *testing.T) {
	f := parse(t, "{ a := a; }")

	// Make the reference see its own declaration.
	scope := f.Body.Stmts[0].(*syntax.Scope)
	d := scope.Stmts[0].(*syntax.Declaration)
	ref := d.Value.(*syntax.Name)
	ref.SetParent(f, scope, 1)

	calls := 0
	conf := &Config{
		Error: func(pos syntax.Pos, msg string) { calls++ },
	}
	err := Resolve(f, conf, nil)
	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("error = %v, want cyclic dependency", err)
	}
	if !strings.Contains(err.Error(), "cyclic dependency in declaration of 'a'") {
		t.Errorf("error = %q", err)
	}
	if calls != 1 {
		t.Errorf("error handler called %d times, want 1", calls)
	}

	// The interrupted nodes can be resolved again, and fail the same way.
	if d.Completion() != syntax.Incomplete {
		t.Errorf("declaration left %v", d.Completion())
	}
	if err := Resolve(f, conf, nil); !errors.Is(err, ErrCyclicDependency) {
		t.Errorf("second error = %v, want cyclic dependency", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	f := parse(t, "T :: int; f :: (a: ^T) -> int { b := *a; }")
	info := &Info{}
	r := NewResolver(nil, info)

	if err := r.Resolve(f); err != nil {
		t.Fatal(err)
	}
	proc := f.Body.Stmts[1].(*syntax.Declaration).Value
	sig := proc.Resolved()
	ndecls := len(info.Decls)
	nuses := len(info.Uses)

	if err := r.Resolve(f); err != nil {
		t.Fatal(err)
	}
	if proc.Resolved() != sig {
		t.Errorf("second resolution changed the type to %v", proc.Resolved())
	}
	if len(info.Decls) != ndecls || len(info.Uses) != nuses {
		t.Errorf("second resolution revisited nodes: %d decls, %d uses; want %d, %d",
			len(info.Decls), len(info.Uses), ndecls, nuses)
	}
}

func TestResolveCompletesEveryNode(t *testing.T) {
	f, _, err := parseAndResolve(t, `
		P :: int;
		F :: (a: int, b: ^P) -> *^P;
		f :: (a: int, b: ^P) -> int {
			c := -a + 2;
			{ d : *^P = c; }
		}
		g : F;
	`, nil)
	if err != nil {
		t.Fatal(err)
	}

	syntax.Inspect(f, func(n syntax.Node) bool {
		if n.Completion() != syntax.Complete {
			t.Errorf("%T at %v is %v", n, n.Pos(), n.Completion())
		}
		if n.Resolved() == nil {
			t.Errorf("%T at %v has no type", n, n.Pos())
		}
		if syntax.IsType(n) && n.Denoted() == nil {
			t.Errorf("%T at %v denotes nothing", n, n.Pos())
		}
		return true
	})
}

func TestResolveProcedure(t *testing.T) {
	decls := expectNoError(t, "f :: (a: int, b: ^int) -> int { c := a; d := b; } g :: () { }", nil)

	tests := []struct {
		name string
		want string
	}{
		{"f", "(int, ^int) -> int"},
		{"g", "() -> void"},
		{"a", "int"},
		{"c", "int"},
		{"d", "^int"},
	}
	for _, tt := range tests {
		if got := decls[tt.name].VarType().String(); got != tt.want {
			t.Errorf("type of %s = %s, want %s", tt.name, got, tt.want)
		}
	}

	if _, ok := decls["f"].VarType().(*types.Proc); !ok {
		t.Errorf("f has type %T, want *types.Proc", decls["f"].VarType())
	}
}

func TestResolveProcedureTypeMatchesValue(t *testing.T) {
	decls := expectNoError(t, "F :: (x: int) -> int; f : F = (y: int) -> int { };", nil)

	F, f := decls["F"], decls["f"]
	if F.Name.Denoted() != f.VarType() {
		t.Errorf("F denotes %v (%p), f has %v (%p); want the same interned type",
			F.Name.Denoted(), F.Name.Denoted(), f.VarType(), f.VarType())
	}
}

func TestResolveInterning(t *testing.T) {
	decls := expectNoError(t, "a : ^int; b : ^int; P :: int; c : ^P; f : (x: ^int) -> void; g : () -> void;", nil)

	if decls["a"].VarType() != decls["b"].VarType() || decls["a"].VarType() != decls["c"].VarType() {
		t.Error("equal pointer types should be the same value")
	}
	if decls["f"].VarType().(*types.Proc).Param(0) != decls["a"].VarType() {
		t.Error("parameter types should be interned too")
	}
}

func TestResolveSharedTable(t *testing.T) {
	table := types.NewTable()
	conf := &Config{Table: table}

	f1 := parse(t, "a : ^int;")
	f2 := parse(t, "b : ^int;")
	if err := Resolve(f1, conf, nil); err != nil {
		t.Fatal(err)
	}
	if err := Resolve(f2, conf, nil); err != nil {
		t.Fatal(err)
	}

	a := f1.Body.Stmts[0].(*syntax.Declaration)
	b := f2.Body.Stmts[0].(*syntax.Declaration)
	if a.VarType() != b.VarType() {
		t.Error("resolvers sharing a table should share composite types")
	}
	if table.Len() != 1 {
		t.Errorf("table.Len() = %d, want 1", table.Len())
	}
}

func TestResolveFatalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
		msg  string
	}{
		{"float literal", "x := 1.5;", ErrUnsupported, "float literals are not supported"},
		{"float in procedure", "f :: () { x := 2.0; }", ErrUnsupported, "float literals are not supported"},
		{"deref non-pointer", "T :: int; x : *T;", ErrDerefNonPointer, "cannot dereference non-pointer type int"},
		{"deref builtin", "x : *int;", ErrDerefNonPointer, "cannot dereference non-pointer type int"},
		{"variable as type", "x := 1; y : x;", ErrNotAType, "'x' is not a type"},
		{"mutable type value", "T := int; y : T;", ErrNotAType, "'T' is not a type"},
		{"pointer operator is not a type", "P :: ^int; x : P;", ErrNotAType, "'P' is not a type"},
		{"typed constant not a type", "T : int : 1; y : ^T;", ErrNotAType, "'T' is not a type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, tt.kind, tt.msg)
		})
	}
}

func TestResolveErrorPosition(t *testing.T) {
	var gotPos syntax.Pos
	var gotMsg string
	conf := &Config{
		Error: func(pos syntax.Pos, msg string) {
			gotPos, gotMsg = pos, msg
		},
	}

	f := parse(t, "a := 1;\nb := c;")
	err := Resolve(f, conf, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if gotPos.Line() != 2 || gotPos.Col() != 6 {
		t.Errorf("error at %v, want 2:6", gotPos)
	}
	if gotMsg != "name 'c' not found" {
		t.Errorf("message = %q", gotMsg)
	}
	if err.Error() != "test.em:2:6: name 'c' not found" {
		t.Errorf("err.Error() = %q", err.Error())
	}
}

func TestResolveUsesBuiltins(t *testing.T) {
	f, info, err := parseAndResolve(t, "x : int = 1; T :: void;", nil)
	if err != nil {
		t.Fatal(err)
	}

	x := f.Body.Stmts[0].(*syntax.Declaration)
	if info.Uses[x.Type] != syntax.Builtin("int", false) {
		t.Errorf("int refers to %v, want the builtin node", info.Uses[x.Type])
	}
	T := f.Body.Stmts[1].(*syntax.Declaration)
	if info.Uses[T.Value] != syntax.Builtin("void", false) {
		t.Errorf("void refers to %v, want the builtin node", info.Uses[T.Value])
	}
	if T.Name.Denoted() != types.Typ[types.Void] {
		t.Errorf("T denotes %v, want void", T.Name.Denoted())
	}
}

func TestResolveExtendedPrimitives(t *testing.T) {
	conf := &Config{ExtendedPrimitives: true}
	decls := expectNoError(t, "a : u8; b : s16; c : s64 = 1; d : ^f32; e : f64; g : u64;", conf)

	tests := []struct {
		name string
		want types.Type
	}{
		{"a", types.Typ[types.Uint8]},
		{"b", types.Typ[types.Int16]},
		{"c", types.Typ[types.Int]},
		{"e", types.Typ[types.Float64]},
		{"g", types.Typ[types.Uint64]},
	}
	for _, tt := range tests {
		if got := decls[tt.name].VarType(); got != tt.want {
			t.Errorf("type of %s = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := decls["d"].VarType().String(); got != "^f32" {
		t.Errorf("type of d = %s, want ^f32", got)
	}
}

func TestResolveSizedTypeFromLiteral(t *testing.T) {
	conf := &Config{ExtendedPrimitives: true}
	for _, src := range []string{"x : u8 = 1;", "x : f32 = 1;", "x : s32 = 1 + 2;"} {
		t.Run(src, func(t *testing.T) {
			_, _, err := parseAndResolve(t, src, conf)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("err = %v, want %v", err, ErrTypeMismatch)
			}
			if !strings.Contains(err.Error(), "value has type int") {
				t.Errorf("error %q does not name the literal type", err)
			}
		})
	}
}

func TestUnused(t *testing.T) {
	src := `x := 1;
f :: (a : int, b : int) -> int {
	c := a;
	d := c;
	{ e := 1; }
	g :: (h : int) { };
	g;
};
y := x;
`
	_, info, err := parseAndResolve(t, src, nil)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, d := range info.Unused() {
		got = append(got, d.Name.Value)
	}
	if want := "d e"; strings.Join(got, " ") != want {
		t.Errorf("unused = %v, want %s", got, want)
	}
}

func TestResolveBuiltinTypeNodes(t *testing.T) {
	// Hand-built trees may use sized type nodes directly.
	tests := []struct {
		typ  syntax.Type
		want types.Type
		kind error
	}{
		{&syntax.TypeInteger{Size: 32, Signed: true}, types.Typ[types.Int32], nil},
		{&syntax.TypeInteger{Size: 64, Signed: true}, types.Typ[types.Int], nil},
		{&syntax.TypeInteger{Size: 16}, types.Typ[types.Uint16], nil},
		{&syntax.TypeFloat{Size: 32}, types.Typ[types.Float32], nil},
		{&syntax.TypeVoid{}, types.Typ[types.Void], nil},
		{&syntax.TypeType{}, types.Typ[types.Meta], nil},
		{&syntax.TypeInteger{Size: 24, Signed: true}, nil, ErrUnsupported},
		{&syntax.TypeFloat{Size: 16}, nil, ErrUnsupported},
	}

	for _, tt := range tests {
		err := Resolve(tt.typ, nil, nil)
		if tt.kind != nil {
			if !errors.Is(err, tt.kind) {
				t.Errorf("%#v: error = %v, want %v", tt.typ, err, tt.kind)
			}
			continue
		}
		if err != nil {
			t.Errorf("%#v: %v", tt.typ, err)
			continue
		}
		if tt.typ.Denoted() != tt.want || tt.typ.Resolved() != types.Typ[types.Meta] {
			t.Errorf("%#v denotes %v : %v, want %v : type", tt.typ, tt.typ.Denoted(), tt.typ.Resolved(), tt.want)
		}
	}
}

func TestResolveIncremental(t *testing.T) {
	f := parse(t, "a := 1;")
	r := NewResolver(nil, nil)
	if err := r.Resolve(f); err != nil {
		t.Fatal(err)
	}

	add := func(src string) []syntax.Stmt {
		t.Helper()
		p := syntax.NewParser("repl", strings.NewReader(src), nil)
		stmts := p.ParseInto(f)
		if len(p.Errors()) > 0 {
			t.Fatalf("syntax errors: %v", p.Errors())
		}
		return stmts
	}

	// A failing statement is dropped from the file.
	bad := add("b := c;")
	if err := r.Resolve(bad[0]); !errors.Is(err, ErrNameNotFound) {
		t.Fatalf("error = %v, want name not found", err)
	}
	f.Body.Stmts = f.Body.Stmts[:len(f.Body.Stmts)-len(bad)]

	good := add("b : ^int; c := b;")
	for _, s := range good {
		if err := r.Resolve(s); err != nil {
			t.Fatalf("resolving %T: %v", s, err)
		}
	}
	c := good[1].(*syntax.Declaration)
	if c.VarType().String() != "^int" {
		t.Errorf("type of c = %v, want ^int", c.VarType())
	}
}

func TestResolveInvalidAST(t *testing.T) {
	d := &syntax.Declaration{Name: &syntax.Name{Value: "x"}}
	err := Resolve(d, nil, nil)
	if !errors.Is(err, ErrInvalidAST) {
		t.Errorf("error = %v, want invalid AST", err)
	}
}

func TestResolveNil(t *testing.T) {
	if err := Resolve(nil, nil, nil); err != nil {
		t.Errorf("Resolve(nil) = %v", err)
	}
}
