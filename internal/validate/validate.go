// Package validate implements the structural IR validator (C12,
// spec.md §4.10): a non-mutating pass that checks every function's
// shape, every instruction's operand types, every branch/switch/phi
// target, and reports unreachable blocks and exit-less loops as
// warnings rather than errors. It runs last, after SSA construction
// and optimization, as the gate between the IR and code generation.
package validate

import (
	"fmt"

	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/types"
)

// Stats summarizes one validation run. Callers should gate on
// sink.HasErrors(), not these counts; Warnings is informational.
type Stats struct {
	FunctionsChecked int
	Warnings         int
}

// Run validates every non-external function in mod, appending
// diagnostics to sink. Run never mutates mod; running it twice in a
// row produces identical diagnostics.
func Run(mod *ir.Module, sink *diag.Sink) Stats {
	var stats Stats
	for _, fn := range mod.Functions {
		if fn.External {
			continue
		}
		stats.FunctionsChecked++
		v := &funcValidator{mod: mod, fn: fn, sink: sink}
		if !v.checkShape() {
			// A function with no blocks, no entry, or an unterminated
			// block makes every deeper check meaningless.
			continue
		}
		v.checkInstructions()
		v.checkTargets()
		stats.Warnings += v.checkReachability()
		stats.Warnings += v.checkLoopExits()
	}
	return stats
}

type funcValidator struct {
	mod  *ir.Module
	fn   *ir.Function
	sink *diag.Sink
}

func (v *funcValidator) errf(code diag.Code, format string, args ...interface{}) {
	msg := fmt.Sprintf("function %q: "+format, append([]interface{}{v.fn.Name}, args...)...)
	v.sink.Add(diag.New(code, diag.Position{}, msg))
}

// checkShape verifies the function has at least one block, a
// resolvable entry, and that every block was actually terminated
// (spec.md §3: a fresh block's Unreachable terminator is a structural
// placeholder, never a valid final state for this language, which has
// no unreachable() expression of its own).
func (v *funcValidator) checkShape() bool {
	if v.fn.CFG == nil || len(v.fn.Blocks()) == 0 {
		v.errf(diag.ErrMalformedFunction, "has no basic blocks")
		return false
	}
	if _, ok := v.fn.Block(v.fn.CFG.Entry); !ok {
		v.errf(diag.ErrMalformedFunction, "entry block %q does not exist", v.fn.CFG.Entry)
		return false
	}
	ok := true
	for _, blk := range v.fn.Blocks() {
		if !blk.IsTerminated() {
			v.errf(diag.ErrMalformedFunction, "block %q was never terminated", blk.Label)
			ok = false
		}
	}
	return ok
}

func (v *funcValidator) checkInstructions() {
	for _, blk := range v.fn.Blocks() {
		for _, inst := range blk.Instructions {
			v.checkInstruction(blk, inst)
		}
	}
}

func (v *funcValidator) checkInstruction(blk *ir.BasicBlock, inst ir.Instruction) {
	switch x := inst.(type) {
	case *ir.BinaryInstruction:
		if !typesEqual(x.Left.Ty, x.Right.Ty) || !typesEqual(x.Left.Ty, x.Result.Ty) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: %s operands/result types disagree (%s, %s -> %s)",
				blk.Label, x.Op, typeName(x.Left.Ty), typeName(x.Right.Ty), typeName(x.Result.Ty))
		}
	case *ir.UnaryInstruction:
		if !typesEqual(x.Value_.Ty, x.Result.Ty) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: %s operand type %s does not match result type %s",
				blk.Label, x.Op, typeName(x.Value_.Ty), typeName(x.Result.Ty))
		}
	case *ir.ICmpInstruction:
		v.checkCmp(blk, x.Left.Ty, x.Right.Ty, x.Result.Ty, "icmp")
	case *ir.FCmpInstruction:
		v.checkCmp(blk, x.Left.Ty, x.Right.Ty, x.Result.Ty, "fcmp")
	case *ir.SelectInstruction:
		if x.Cond.Ty != nil && x.Cond.Ty.Kind() != types.Bool {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: select condition has non-bool type %s", blk.Label, typeName(x.Cond.Ty))
		}
		if !typesEqual(x.IfTrue.Ty, x.IfFalse.Ty) || !typesEqual(x.IfTrue.Ty, x.Result.Ty) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: select arms/result types disagree (%s, %s -> %s)",
				blk.Label, typeName(x.IfTrue.Ty), typeName(x.IfFalse.Ty), typeName(x.Result.Ty))
		}
	case *ir.PhiInstruction:
		for _, in := range x.Incoming {
			if !typesEqual(in.Value.Ty, x.Ty) {
				v.errf(diag.ErrOperandTypeMismatch, "block %q: phi incoming value from %q has type %s, want %s",
					blk.Label, in.Pred, typeName(in.Value.Ty), typeName(x.Ty))
			}
		}
	case *ir.AllocaInstruction:
		if !pointeeMatches(x.Result.Ty, x.ElemTy) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: alloca result type %s is not a pointer to %s",
				blk.Label, typeName(x.Result.Ty), typeName(x.ElemTy))
		}
	case *ir.LoadInstruction:
		if !pointeeMatches(x.Ptr.Ty, x.Result.Ty) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: load pointer type %s does not point to result type %s",
				blk.Label, typeName(x.Ptr.Ty), typeName(x.Result.Ty))
		}
	case *ir.StoreInstruction:
		if !pointeeMatches(x.Ptr.Ty, x.Value_.Ty) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: store pointer type %s does not point to stored value's type %s",
				blk.Label, typeName(x.Ptr.Ty), typeName(x.Value_.Ty))
		}
	case *ir.GetElementPtrInstruction:
		if _, ok := x.Base.Ty.(*types.PointerType); !ok {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: gep base has non-pointer type %s", blk.Label, typeName(x.Base.Ty))
		}
		for _, idx := range x.Indices {
			if idx.Ty != nil && !types.IsInteger(idx.Ty) {
				v.errf(diag.ErrOperandTypeMismatch, "block %q: gep index has non-integer type %s", blk.Label, typeName(idx.Ty))
			}
		}
	case *ir.ConvertInstruction:
		if !typesEqual(x.Value_.Ty, x.SrcTy) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: convert operand type %s does not match declared source type %s",
				blk.Label, typeName(x.Value_.Ty), typeName(x.SrcTy))
		}
		if !typesEqual(x.Result.Ty, x.DstTy) {
			v.errf(diag.ErrOperandTypeMismatch, "block %q: convert result type %s does not match declared destination type %s",
				blk.Label, typeName(x.Result.Ty), typeName(x.DstTy))
		}
	case *ir.CallInstruction:
		v.checkCall(blk, x)
	}
}

func (v *funcValidator) checkCmp(blk *ir.BasicBlock, left, right, result types.Type, mnemonic string) {
	if !typesEqual(left, right) {
		v.errf(diag.ErrOperandTypeMismatch, "block %q: %s operands have differing types (%s, %s)",
			blk.Label, mnemonic, typeName(left), typeName(right))
	}
	if result != nil && result.Kind() != types.Bool {
		v.errf(diag.ErrOperandTypeMismatch, "block %q: %s result type %s is not bool", blk.Label, mnemonic, typeName(result))
	}
}

// checkCall cross-checks a call site against its callee's actual
// signature, resolved through the owning module (spec.md §4.10: "call-
// site argument count and types match the callee's function type").
// A computed callee, or one not defined in this module, is out of
// this pass's reach and is left unchecked.
func (v *funcValidator) checkCall(blk *ir.BasicBlock, call *ir.CallInstruction) {
	if call.Callee.Kind != ir.ValGlobal {
		return
	}
	callee, ok := v.mod.GetFunction(call.Callee.Name)
	if !ok {
		return
	}

	want, got := len(callee.Params), len(call.Args)
	if got != want && !(callee.Variadic && got >= want) {
		v.errf(diag.ErrBadCallSite, "block %q: call to %q passes %d argument(s), callee expects %d",
			blk.Label, callee.Name, got, want)
		return
	}
	for i := 0; i < want; i++ {
		if !typesEqual(call.Args[i].Value.Ty, callee.Params[i].Ty) {
			v.errf(diag.ErrBadCallSite, "block %q: call to %q argument %d has type %s, want %s",
				blk.Label, callee.Name, i, typeName(call.Args[i].Value.Ty), typeName(callee.Params[i].Ty))
		}
	}

	isVoid := callee.Ret == nil || callee.Ret.Kind() == types.Void
	switch {
	case isVoid && call.Dest != nil:
		v.errf(diag.ErrBadCallSite, "block %q: call to %q has no return value but captures a destination", blk.Label, callee.Name)
	case !isVoid && call.Dest == nil:
		v.errf(diag.ErrBadCallSite, "block %q: call to %q returns %s but its destination is missing", blk.Label, callee.Name, typeName(callee.Ret))
	case !isVoid && call.Dest != nil && !typesEqual(call.Dest.Ty, callee.Ret):
		v.errf(diag.ErrBadCallSite, "block %q: call to %q destination type %s does not match return type %s",
			blk.Label, callee.Name, typeName(call.Dest.Ty), typeName(callee.Ret))
	}
}

// checkTargets verifies every terminator's targets, and every phi's
// incoming predecessor labels, resolve to real blocks that are
// actually wired into the CFG as predecessors.
func (v *funcValidator) checkTargets() {
	for _, blk := range v.fn.Blocks() {
		for _, target := range blk.Terminator.TargetLabels() {
			if _, ok := v.fn.Block(target); !ok {
				v.errf(diag.ErrDanglingTarget, "block %q terminator references nonexistent block %q", blk.Label, target)
			}
		}
		for _, inst := range blk.Instructions {
			phi, ok := inst.(*ir.PhiInstruction)
			if !ok {
				continue
			}
			for _, in := range phi.Incoming {
				if _, ok := v.fn.Block(in.Pred); !ok {
					v.errf(diag.ErrDanglingTarget, "block %q phi references nonexistent predecessor %q", blk.Label, in.Pred)
					continue
				}
				if !containsStr(blk.Predecessors, in.Pred) {
					v.errf(diag.ErrDanglingTarget, "block %q phi references %q, which is not one of its CFG predecessors", blk.Label, in.Pred)
				}
			}
		}
	}
}

// checkReachability warns on every block the CFG can never reach from
// the entry (spec.md §4.10, "unreachable blocks yield warnings").
func (v *funcValidator) checkReachability() int {
	reachable := v.fn.CFG.Reachable()
	warnings := 0
	for _, blk := range v.fn.Blocks() {
		if reachable[blk.Label] {
			continue
		}
		warnings++
		v.sink.Add(diag.New(diag.WarnUnreachableBlock, diag.Position{},
			fmt.Sprintf("function %q: block %q is not reachable from the entry block", v.fn.Name, blk.Label)))
	}
	return warnings
}

// checkLoopExits warns on every strongly connected component of the
// reachable CFG that has no edge leaving it (spec.md §4.10, "loops
// without exits yield warnings"), using Tarjan's algorithm over
// BasicBlock.Successors.
func (v *funcValidator) checkLoopExits() int {
	reachable := v.fn.CFG.Reachable()
	sccs := tarjanSCCs(v.fn, reachable)

	warnings := 0
	for _, scc := range sccs {
		if !v.isLoop(scc) || hasExit(v.fn, scc) {
			continue
		}
		warnings++
		v.sink.Add(diag.New(diag.WarnLoopWithoutExit, diag.Position{},
			fmt.Sprintf("function %q: loop containing block %q has no edge leaving the loop", v.fn.Name, sccRepresentative(scc))))
	}
	return warnings
}

func (v *funcValidator) isLoop(scc []string) bool {
	if len(scc) > 1 {
		return true
	}
	blk, ok := v.fn.Block(scc[0])
	if !ok {
		return false
	}
	return containsStr(blk.Successors, scc[0])
}

func hasExit(fn *ir.Function, scc []string) bool {
	set := make(map[string]bool, len(scc))
	for _, l := range scc {
		set[l] = true
	}
	for _, l := range scc {
		blk, ok := fn.Block(l)
		if !ok {
			continue
		}
		for _, s := range blk.Successors {
			if !set[s] {
				return true
			}
		}
	}
	return false
}

func sccRepresentative(scc []string) string {
	rep := scc[0]
	for _, l := range scc[1:] {
		if l < rep {
			rep = l
		}
	}
	return rep
}

// tarjanSCCs computes strongly connected components over fn's
// reachable blocks, in Tarjan's classic single-pass form.
func tarjanSCCs(fn *ir.Function, reachable map[string]bool) [][]string {
	index := map[string]int{}
	low := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var sccs [][]string
	counter := 0

	var strongconnect func(string)
	strongconnect = func(label string) {
		index[label] = counter
		low[label] = counter
		counter++
		stack = append(stack, label)
		onStack[label] = true

		if blk, ok := fn.Block(label); ok {
			for _, w := range blk.Successors {
				if !reachable[w] {
					continue
				}
				if _, seen := index[w]; !seen {
					strongconnect(w)
					if low[w] < low[label] {
						low[label] = low[w]
					}
				} else if onStack[w] && index[w] < low[label] {
					low[label] = index[w]
				}
			}
		}

		if low[label] == index[label] {
			var scc []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == label {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, blk := range fn.Blocks() {
		if !reachable[blk.Label] {
			continue
		}
		if _, seen := index[blk.Label]; !seen {
			strongconnect(blk.Label)
		}
	}
	return sccs
}

func containsStr(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func typesEqual(a, b types.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func typeName(t types.Type) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}

func pointeeMatches(ptrTy, elem types.Type) bool {
	p, ok := ptrTy.(*types.PointerType)
	if !ok {
		return false
	}
	return typesEqual(p.Elem, elem)
}
