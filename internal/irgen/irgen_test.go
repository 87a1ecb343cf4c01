package irgen

import (
	"testing"

	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/parser"
)

func lower(t *testing.T, src string) (*ir.Module, *diag.Sink) {
	t.Helper()
	sink := &diag.Sink{}
	prog := parser.ParseSource("test.vn", src, sink)
	mod := Lower("test.vn", prog, "test", ir.PlatformLinux, sink)
	return mod, sink
}

func TestLowerMainReturnsVoid(t *testing.T) {
	mod, sink := lower(t, "main { let x: i32 = 1; }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
	fn, ok := mod.GetFunction("main")
	if !ok {
		t.Fatal("expected a main function in the module")
	}
	if err := fn.CFG.Verify(); err != nil {
		t.Fatalf("main's CFG failed to verify: %v", err)
	}
}

func TestImmutableDeclWithoutInitIsError(t *testing.T) {
	_, sink := lower(t, "main { let x: i32; }")
	if !sink.HasErrors() {
		t.Fatal("expected E3004 for an uninitialized immutable declaration")
	}
	if sink.Diagnostics[0].Code != diag.ErrConstantMustInit {
		t.Errorf("got code %v, want %v", sink.Diagnostics[0].Code, diag.ErrConstantMustInit)
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	_, sink := lower(t, "main { break; }")
	if !sink.HasErrors() {
		t.Fatal("expected E3001 for break outside a loop")
	}
	if sink.Diagnostics[0].Code != diag.ErrBreakOutsideLoop {
		t.Errorf("got code %v, want %v", sink.Diagnostics[0].Code, diag.ErrBreakOutsideLoop)
	}
}

func TestWhileLoopProducesVerifiableCFG(t *testing.T) {
	mod, sink := lower(t, "main { let mut i: i32 = 0; while (i < 10) { i = i + 1; } }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
	fn, _ := mod.GetFunction("main")
	if err := fn.CFG.Verify(); err != nil {
		t.Fatalf("CFG failed to verify: %v", err)
	}
	if len(fn.Blocks()) < 4 {
		t.Errorf("expected at least 4 blocks (entry, cond, body, end), got %d", len(fn.Blocks()))
	}
}

func TestFunctionCallResolvesDeclaredReturnType(t *testing.T) {
	mod, sink := lower(t, "fn one() -> i32 { return 1; } main { let x: i32 = one(); }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
	if _, ok := mod.GetFunction("one"); !ok {
		t.Fatal("expected function 'one' in the module")
	}
}
