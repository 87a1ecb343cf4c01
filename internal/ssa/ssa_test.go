package ssa

import (
	"testing"

	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/irgen"
	"vnc/internal/parser"
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
	return fn
}

func countAllocas(fn *ir.Function) int {
	n := 0
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			if _, ok := inst.(*ir.AllocaInstruction); ok {
				n++
			}
		}
	}
	return n
}

func countPhis(fn *ir.Function) int {
	n := 0
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			if _, ok := inst.(*ir.PhiInstruction); ok {
				n++
			}
		}
	}
	return n
}

func TestPromotesSimpleMutableLocal(t *testing.T) {
	fn := build(t, "main { let mut x: i32 = 1; x = x + 1; }")
	if err := Construct(fn); err != nil {
		t.Fatal(err)
	}
	if n := countAllocas(fn); n != 0 {
		t.Errorf("expected the scalar local's alloca to be eliminated, got %d remaining", n)
	}
}

func TestPhiPlacedAtIfMerge(t *testing.T) {
	fn := build(t, `main {
		let mut x: i32 = 0;
		if (x < 1) { x = 1; } else { x = 2; }
	}`)
	if err := Construct(fn); err != nil {
		t.Fatal(err)
	}
	if n := countPhis(fn); n != 1 {
		t.Errorf("expected exactly one phi at the if-merge block, got %d", n)
	}
	if n := countAllocas(fn); n != 0 {
		t.Errorf("expected x's alloca to be eliminated, got %d remaining", n)
	}
}

func TestPhiPlacedAtLoopHeader(t *testing.T) {
	fn := build(t, `main {
		let mut i: i32 = 0;
		while (i < 10) { i = i + 1; }
	}`)
	if err := Construct(fn); err != nil {
		t.Fatal(err)
	}
	if n := countPhis(fn); n != 1 {
		t.Errorf("expected exactly one phi at the loop header, got %d", n)
	}
}

func TestArrayLocalIsNotPromoted(t *testing.T) {
	fn := build(t, `main {
		let mut arr: [i32; 3] = [1, 2, 3];
		let x: i32 = arr[0];
	}`)
	if err := Construct(fn); err != nil {
		t.Fatal(err)
	}
	if n := countAllocas(fn); n != 2 {
		t.Errorf("expected arr's alloca and the array literal's own alloca to survive (both GEP-escaped), got %d", n)
	}
}

func TestConstructIsIdempotent(t *testing.T) {
	fn := build(t, "main { let mut x: i32 = 1; x = x + 1; }")
	if err := Construct(fn); err != nil {
		t.Fatal(err)
	}
	firstPhis := countPhis(fn)
	if err := Construct(fn); err != nil {
		t.Fatal(err)
	}
	if countPhis(fn) != firstPhis {
		t.Errorf("re-running Construct changed phi count: %d -> %d", firstPhis, countPhis(fn))
	}
	if err := fn.CFG.Verify(); err != nil {
		t.Fatalf("CFG failed to verify after SSA construction: %v", err)
	}
}
