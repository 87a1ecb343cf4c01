package sccp

import (
	"testing"

	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/irgen"
	"vnc/internal/parser"
	"vnc/internal/ssa"
)

func build(t *testing.T, src string) (*ir.Function, *diag.Sink) {
	t.Helper()
	sink := &diag.Sink{}
	prog := parser.ParseSource("test.vn", src, sink)
	mod := irgen.Lower("test.vn", prog, "test", ir.PlatformLinux, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", sink.Diagnostics)
	}
	fn, ok := mod.GetFunction("main")
	if !ok {
		t.Fatal("expected a main function")
	}
	if err := ssa.Construct(fn); err != nil {
		t.Fatal(err)
	}
	return fn, sink
}

func TestFoldsConstantArithmetic(t *testing.T) {
	fn, sink := build(t, "main { let x: i32 = 1 + 2; let y: i32 = x + x; }")
	stats := Run(fn, 0, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected SCCP errors: %+v", sink.Diagnostics)
	}
	if stats.ConstantsFolded == 0 {
		t.Error("expected at least one constant fold")
	}
}

func TestConstantConditionPrunesBranch(t *testing.T) {
	fn, sink := build(t, `main {
		let mut x: i32 = 0;
		if (true) { x = 1; } else { x = 2; }
	}`)
	stats := Run(fn, 0, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected SCCP errors: %+v", sink.Diagnostics)
	}
	if stats.BranchesSimplified == 0 {
		t.Error("expected the constant-condition branch to simplify to an unconditional one")
	}

	entry, ok := fn.Block(fn.CFG.Entry)
	if !ok {
		t.Fatal("missing entry block")
	}
	if _, ok := entry.Terminator.(*ir.BranchTerminator); !ok {
		t.Errorf("expected entry's terminator to become unconditional, got %T", entry.Terminator)
	}
}

func TestDivisionByZeroIsNotFolded(t *testing.T) {
	fn, sink := build(t, "main { let x: i32 = 1 / 0; }")
	stats := Run(fn, 0, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected SCCP errors: %+v", sink.Diagnostics)
	}
	if stats.ConstantsFolded != 0 {
		t.Error("division by zero must not be folded to a constant")
	}
}

func TestLoopConditionStaysTopWithoutFolding(t *testing.T) {
	fn, sink := build(t, `main {
		let mut i: i32 = 0;
		while (i < 10) { i = i + 1; }
	}`)
	stats := Run(fn, 0, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected SCCP errors: %+v", sink.Diagnostics)
	}
	if stats.BranchesSimplified != 0 {
		t.Error("a loop condition that depends on a phi should not collapse to a single branch")
	}
}
