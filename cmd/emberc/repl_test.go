package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{":quit", false},
		{"a := 1;", false},
		{"a := 1", true},
		{"x := (1", true},
		{"f :: (a : int) -> int {", true},
		{"f :: (a : int) -> int {\n b := a;", true},
		{"f :: (a : int) -> int {\n b := a;\n}", false},
		{"a := 1; // trailing comment", false},
	}

	for _, tt := range tests {
		if got := incomplete(tt.src); got != tt.want {
			t.Errorf("incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestSession(t *testing.T) {
	sess := newSession(testOptions(emitTyped, "text"))

	eval := func(src string, ok bool) (string, string) {
		t.Helper()
		var out, errOut bytes.Buffer
		if got := sess.eval(src, &out, &errOut); got != ok {
			t.Fatalf("eval(%q) = %v, want %v\nstderr:\n%s", src, got, ok, errOut.String())
		}
		return out.String(), errOut.String()
	}

	out, _ := eval("a := 1;", true)
	if !strings.Contains(out, "VarType: int)") {
		t.Errorf("missing type of a:\n%s", out)
	}

	// Failed inputs are dropped as a whole.
	_, errOut := eval("b := a; c := d;", false)
	if !strings.Contains(errOut, "repl:1:14: error: name 'd' not found") {
		t.Errorf("stderr = %q", errOut)
	}
	if n := len(sess.file.Body.Stmts); n != 1 {
		t.Fatalf("session has %d statements, want 1", n)
	}
	_, errOut = eval("e := b;", false)
	if !strings.Contains(errOut, "name 'b' not found") {
		t.Errorf("b survived a failed input: %q", errOut)
	}

	_, errOut = eval("x := ;", false)
	if !strings.Contains(errOut, "Parser Errors:") {
		t.Errorf("stderr = %q", errOut)
	}

	out, _ = eval("p : ^int; q := p;", true)
	if strings.Count(out, "VarType: ^int)") != 2 {
		t.Errorf("want two ^int declarations:\n%s", out)
	}
	if n := len(sess.file.Body.Stmts); n != 3 {
		t.Errorf("session has %d statements, want 3", n)
	}

	// Earlier declarations stay visible.
	out, _ = eval("r :: (n : int) -> int { m := a; };", true)
	if !strings.Contains(out, "VarType: (int) -> int)") {
		t.Errorf("missing procedure type:\n%s", out)
	}
}

func TestSessionReset(t *testing.T) {
	opts := testOptions(emitTyped, "text")

	sess := newSession(opts)
	var out, errOut bytes.Buffer
	if !sess.eval("a := 1;", &out, &errOut) {
		t.Fatalf("eval failed: %s", errOut.String())
	}

	sess = newSession(opts)
	if sess.eval("b := a;", &out, &errOut) {
		t.Error("a is visible in a new session")
	}
}
