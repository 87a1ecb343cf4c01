package parser

import (
	"testing"

	"vnc/internal/ast"
	"vnc/internal/diag"
)

func parse(src string) (*ast.Program, *diag.Sink) {
	sink := &diag.Sink{}
	prog := ParseSource("test.vn", src, sink)
	return prog, sink
}

func TestParseMainFunction(t *testing.T) {
	_, sink := parse("main { let x: i32 = 1; }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
}

func TestParseFunctionWithParamsAndReturn(t *testing.T) {
	_, sink := parse("fn add(a: i32, b: i32) -> i32 { return a + b; }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
}

func TestParseIfElseIf(t *testing.T) {
	_, sink := parse(`main { if (a) { } else if (b) { } else { } }`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
}

func TestParseForLoop(t *testing.T) {
	_, sink := parse(`main { for (let mut i: i32 = 0; i < 10; i = i + 1) { } }`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
}

func TestParseArrayLiteralAndIndex(t *testing.T) {
	_, sink := parse(`main { let xs = [1, 2, 3]; let y = xs[0]; }`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
}

func TestParseUnterminatedBlockReportsError(t *testing.T) {
	_, sink := parse(`main { let x = 1;`)
	if !sink.HasErrors() {
		t.Fatal("expected a diagnostic for the unclosed block")
	}
}
