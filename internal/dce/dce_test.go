package dce

import (
	"testing"

	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/irgen"
	"vnc/internal/parser"
	"vnc/internal/sccp"
	"vnc/internal/ssa"
)

func build(t *testing.T, src string) *ir.Function {
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
	sccp.Run(fn, 0, sink)
	return fn
}

func instCount(fn *ir.Function) int {
	n := 0
	for _, blk := range fn.Blocks() {
		n += len(blk.Instructions)
	}
	return n
}

func TestDeadArithmeticCascadeRemoved(t *testing.T) {
	sink := &diag.Sink{}
	prog := parser.ParseSource("test.vn", `fn f() -> i32 {
		let t1: i32 = 1 + 2;
		let t2: i32 = t1 * 3;
		let t3: i32 = t2 - 4;
		return 0;
	}`, sink)
	mod := irgen.Lower("test.vn", prog, "test", ir.PlatformLinux, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", sink.Diagnostics)
	}
	fn, ok := mod.GetFunction("f")
	if !ok {
		t.Fatal("expected function f")
	}
	if err := ssa.Construct(fn); err != nil {
		t.Fatal(err)
	}
	sccp.Run(fn, 0, sink)

	stats := Run(fn, 0)
	if stats.InstructionsRemoved == 0 {
		t.Error("expected the dead arithmetic chain to be removed")
	}
	entry, _ := fn.Block(fn.CFG.Entry)
	if len(entry.Instructions) != 0 {
		t.Errorf("expected entry to have zero surviving instructions, got %d", len(entry.Instructions))
	}
}

func TestDCENeverAddsBlocksAndKeepsCFGValid(t *testing.T) {
	fn := build(t, "main { let x: i32 = 1; }")
	before := len(fn.Blocks())
	stats := Run(fn, 0)
	if len(fn.Blocks()) > before {
		t.Error("DCE should never add blocks")
	}
	if err := fn.CFG.Verify(); err != nil {
		t.Fatalf("CFG failed to verify after DCE: %v", err)
	}
	_ = stats
}

func TestIdempotentSecondRunHasNoEffect(t *testing.T) {
	fn := build(t, `main {
		let mut x: i32 = 0;
		if (true) { x = 1; } else { x = 2; }
	}`)
	Run(fn, 0)
	second := Run(fn, 0)
	if second.HadEffect() {
		t.Errorf("second DCE run should have no effect, got %+v", second)
	}
}

func TestEntryBlockNeverRemoved(t *testing.T) {
	fn := build(t, "main { let x: i32 = 1; }")
	Run(fn, 0)
	if _, ok := fn.Block(fn.CFG.Entry); !ok {
		t.Fatal("entry block must never be removed by DCE")
	}
}

func TestDeadPureInstructionsAreRemoved(t *testing.T) {
	fn := build(t, `main {
		let t1: i32 = 1 + 2;
		let t2: i32 = t1 * 3;
	}`)
	before := instCount(fn)
	stats := Run(fn, 0)
	if stats.InstructionsRemoved == 0 {
		t.Error("expected unused pure arithmetic to be removed")
	}
	if instCount(fn) >= before {
		t.Errorf("instruction count did not shrink: before=%d after=%d", before, instCount(fn))
	}
}
