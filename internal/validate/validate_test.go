package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/irgen"
	"vnc/internal/parser"
	"vnc/internal/sccp"
	"vnc/internal/ssa"
)

func build(t *testing.T, src string) (*ir.Module, *diag.Sink) {
	t.Helper()
	sink := &diag.Sink{}
	prog := parser.ParseSource("test.vn", src, sink)
	mod := irgen.Lower("test.vn", prog, "test", ir.PlatformLinux, sink)
	require.False(t, sink.HasErrors(), "unexpected lowering errors: %+v", sink.Diagnostics)
	for _, fn := range mod.Functions {
		require.NoError(t, ssa.Construct(fn), "ssa construction failed for %q", fn.Name)
		sccp.Run(fn, 0, sink)
	}
	return mod, sink
}

func hasCode(sink *diag.Sink, code diag.Code) bool {
	for _, d := range sink.Diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestWellFormedProgramHasNoErrors(t *testing.T) {
	mod, sink := build(t, `
		fn add(a: i32, b: i32) -> i32 {
			return a + b;
		}
		main {
			let mut x: i32 = 0;
			if (x < 10) { x = add(x, 1); } else { x = 0; }
		}
	`)
	Run(mod, sink)
	assert.False(t, sink.HasErrors(), "unexpected errors on a well-formed module: %+v", sink.Diagnostics)
}

func TestCallArityMismatchIsReported(t *testing.T) {
	mod, sink := build(t, `
		fn add(a: i32, b: i32) -> i32 {
			return a + b;
		}
		main {
			let x: i32 = add(1, 2);
		}
	`)
	// Hand-corrupt a well-typed call site to simulate a malformed
	// caller, since the lowering pass itself never emits arity
	// mismatches: the validator must catch this independently of the
	// front end that produced the IR.
	fn, ok := mod.GetFunction("main")
	require.True(t, ok)
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			if call, ok := inst.(*ir.CallInstruction); ok {
				call.Args = call.Args[:1]
			}
		}
	}
	Run(mod, sink)
	assert.True(t, sink.HasErrors(), "expected a bad call site diagnostic")
}

func TestUnreachableBlockYieldsWarningNotError(t *testing.T) {
	mod, sink := build(t, `main { let x: i32 = 1; return; }`)
	fn, ok := mod.GetFunction("main")
	require.True(t, ok)
	dead := ir.NewBasicBlock("dead.block")
	dead.SetTerminator(&ir.ReturnTerminator{})
	require.NoError(t, fn.AddBlock(dead))

	Run(mod, sink)
	assert.False(t, sink.HasErrors(), "an unreachable block must warn, not error: %+v", sink.Diagnostics)
	assert.True(t, hasCode(sink, diag.WarnUnreachableBlock))
}

func TestLoopWithoutExitIsWarned(t *testing.T) {
	mod, sink := build(t, `main { let mut i: i32 = 0; }`)
	fn, ok := mod.GetFunction("main")
	require.True(t, ok)

	// Build a self-looping block with no way out, reachable from entry.
	loop := ir.NewBasicBlock("spin")
	loop.SetTerminator(&ir.BranchTerminator{Label: "spin"})
	require.NoError(t, fn.AddBlock(loop))
	entry, ok := fn.Block(fn.CFG.Entry)
	require.True(t, ok)
	entry.SetTerminator(&ir.BranchTerminator{Label: "spin"})
	require.NoError(t, fn.Connect(fn.CFG.Entry, "spin"))
	require.NoError(t, fn.Connect("spin", "spin"))

	Run(mod, sink)
	assert.True(t, hasCode(sink, diag.WarnLoopWithoutExit), "expected a WarnLoopWithoutExit diagnostic for the self-loop")
}

func TestDanglingPhiPredecessorIsRejected(t *testing.T) {
	mod, sink := build(t, `main {
		let mut x: i32 = 0;
		if (true) { x = 1; } else { x = 2; }
	}`)
	fn, ok := mod.GetFunction("main")
	require.True(t, ok)
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			if phi, ok := inst.(*ir.PhiInstruction); ok && len(phi.Incoming) > 0 {
				phi.Incoming[0].Pred = "nonexistent.block"
			}
		}
	}
	Run(mod, sink)
	assert.True(t, sink.HasErrors(), "expected a dangling-predecessor diagnostic")
}

func TestRunIsIdempotent(t *testing.T) {
	mod, sink := build(t, `main {
		let mut x: i32 = 0;
		while (x < 10) { x = x + 1; }
	}`)
	Run(mod, sink)
	first := len(sink.Diagnostics)
	Run(mod, sink)
	assert.Equal(t, 2*first, len(sink.Diagnostics), "second run should add exactly the same diagnostics again")
}
