package syntax

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/you-not-fish/ember/internal/types"
	"gopkg.in/yaml.v3"
)

func TestFprint(t *testing.T) {
	tests := []struct {
		name string
		node func(t *testing.T) Node
		want string
	}{
		{
			name: "declaration",
			node: func(t *testing.T) Node { return parseDecl(t, "x :: 5;") },
			want: "(<Declaration>\n" +
				"\tConstant: true\n" +
				"\tName: (<Name>\n" +
				"\t\tValue: 'x')\n" +
				"\tType: ()\n" +
				"\tValue: (<Integer>\n" +
				"\t\tValue: 5))\n",
		},
		{
			name: "binary",
			node: func(t *testing.T) Node { return parseExpr(t, "1 + 2") },
			want: "(<Binary>\n" +
				"\tOperator: '+'\n" +
				"\tLeft: (<Integer>\n" +
				"\t\tValue: 1)\n" +
				"\tRight: (<Integer>\n" +
				"\t\tValue: 2))\n",
		},
		{
			name: "procedure",
			node: func(t *testing.T) Node { return parseDecl(t, "f :: () {}") },
			want: "(<Declaration>\n" +
				"\tConstant: true\n" +
				"\tName: (<Name>\n" +
				"\t\tValue: 'f')\n" +
				"\tType: ()\n" +
				"\tValue: (<Procedure>\n" +
				"\t\tArguments: ()\n" +
				"\t\tReturnType: ()\n" +
				"\t\tBody: (<Scope>\n" +
				"\t\t\tStatements: ())))\n",
		},
		{
			name: "pointer type",
			node: func(t *testing.T) Node { return parseDecl(t, "p : ^int;") },
			want: "(<Declaration>\n" +
				"\tConstant: false\n" +
				"\tName: (<Name>\n" +
				"\t\tValue: 'p')\n" +
				"\tType: (<Type Pointer>\n" +
				"\t\tPointer To: (<Type Name>\n" +
				"\t\t\tValue: 'int'))\n" +
				"\tValue: ())\n",
		},
		{
			name: "empty file",
			node: func(t *testing.T) Node { return parseFile(t, "") },
			want: "(<File> Scope: (<Scope>\n" +
				"\t\tStatements: ()))\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Fprint(&buf, tt.node(t))
			if got := buf.String(); got != tt.want {
				t.Errorf("Fprint mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFprintNestedList(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, parseExpr(t, "(a: int, b: int) {}"))
	out := buf.String()

	// List items are separated by a comma and sit two levels in.
	if !strings.Contains(out, "\tValue: ()),\n\t\t(<Declaration>") {
		t.Errorf("arguments not printed as a list:\n%s", out)
	}
}

func TestFprintTyped(t *testing.T) {
	d := parseDecl(t, "x :: 5;")
	d.Value.SetResolved(types.Typ[types.Int])
	d.SetVarType(types.Typ[types.Int])

	var buf bytes.Buffer
	FprintTyped(&buf, d)

	want := "(<Declaration>\n" +
		"\tConstant: true\n" +
		"\tName: (<Name>\n" +
		"\t\tValue: 'x')\n" +
		"\tType: ()\n" +
		"\tValue: (<Integer> : int\n" +
		"\t\tValue: 5)\n" +
		"\tVarType: int)\n"
	if got := buf.String(); got != want {
		t.Errorf("FprintTyped mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	// Plain printing ignores resolution state.
	buf.Reset()
	Fprint(&buf, d)
	if strings.Contains(buf.String(), ": int") || strings.Contains(buf.String(), "VarType") {
		t.Errorf("Fprint printed types:\n%s", buf.String())
	}
}

func TestFprintJSON(t *testing.T) {
	d := parseDecl(t, "x : int = -5;")
	d.SetVarType(types.Typ[types.Int])

	var buf bytes.Buffer
	if err := FprintJSON(&buf, d); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if m["type"] != "Declaration" || m["name"] != "x" || m["constant"] != false {
		t.Errorf("declaration fields = %v", m)
	}
	if m["pos"] != "test.em:1:1" {
		t.Errorf("pos = %v", m["pos"])
	}
	if m["declared"] != "int" {
		t.Errorf("declared = %v, want int", m["declared"])
	}
	vt, _ := m["vartype"].(map[string]interface{})
	if vt["type"] != "TypeName" || vt["value"] != "int" {
		t.Errorf("vartype = %v", m["vartype"])
	}
	val, _ := m["value"].(map[string]interface{})
	if val["type"] != "Unary" || val["op"] != "-" {
		t.Errorf("value = %v", m["value"])
	}
	x, _ := val["x"].(map[string]interface{})
	if x["value"] != float64(5) {
		t.Errorf("operand = %v", val["x"])
	}
}

func TestFprintYAML(t *testing.T) {
	f := parseFile(t, "f :: (a: int) -> int { b := a; }")

	var buf bytes.Buffer
	if err := FprintYAML(&buf, f); err != nil {
		t.Fatalf("FprintYAML: %v", err)
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if m["type"] != "File" || m["name"] != "test.em" {
		t.Fatalf("file fields = %v", m)
	}

	scope, _ := m["scope"].(map[string]interface{})
	stmts, _ := scope["stmts"].([]interface{})
	if len(stmts) != 1 {
		t.Fatalf("stmts = %v", scope["stmts"])
	}
	decl, _ := stmts[0].(map[string]interface{})
	proc, _ := decl["value"].(map[string]interface{})
	if proc["type"] != "Procedure" {
		t.Fatalf("value = %v", decl["value"])
	}
	if args, _ := proc["args"].([]interface{}); len(args) != 1 {
		t.Errorf("args = %v", proc["args"])
	}
	if _, ok := proc["body"].(map[string]interface{}); !ok {
		t.Errorf("body = %v", proc["body"])
	}
}
