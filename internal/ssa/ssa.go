// Package ssa promotes alloca-backed locals to pure SSA form (C9,
// spec.md §4.7). It runs after internal/irgen (C7) and consumes the
// dominator tree and dominance frontiers internal/dominance (C8)
// computes: phis are placed at the dominance frontier of every
// variable's defining blocks, then a dominator-tree-order walk renames
// every load/store pair into direct SSA def-use edges.
//
// Only allocas whose pointer never escapes a load or a store are
// promoted. An array-typed local's alloca is always used as the base
// of a GetElementPtr and is therefore never promoted — it stays
// ordinary memory, matching how C7 lowers array indexing.
package ssa

import (
	"sort"

	"vnc/internal/dominance"
	"vnc/internal/ir"
)

// promoted describes one alloca-backed local eligible for SSA
// promotion: its pointer value's id, its pointee type, and the
// source-level name carried on the alloca's result for phi naming.
type promoted struct {
	id     ir.ValueID
	elemTy ir.Type_
	name   string
}

// phiPlacement maps a block label to the phi instructions placed in it,
// keyed by the promoted variable's alloca id.
type phiPlacement map[string]map[ir.ValueID]*ir.PhiInstruction

// Construct promotes every eligible local of fn to SSA form in place.
// It recomputes dominance itself so callers never need to sequence it
// manually; running it on a function with nothing to promote is a
// no-op.
func Construct(fn *ir.Function) error {
	if err := dominance.Compute(fn); err != nil {
		return err
	}

	vars := promotableAllocas(fn)
	if len(vars) == 0 {
		return nil
	}

	phis := placePhis(fn, vars)
	(&renameState{fn: fn, vars: vars, phis: phis, stacks: map[ir.ValueID][]ir.Value{}}).visit(fn.CFG.Entry)
	return nil
}

// promotableAllocas collects every alloca in fn whose result pointer is
// used only as the Ptr operand of a Load or a Store. Any other use —
// passed to a call, fed into a GetElementPtr, stored through another
// pointer, returned, branched on — marks it escaped and disqualifies it.
func promotableAllocas(fn *ir.Function) map[ir.ValueID]*promoted {
	vars := map[ir.ValueID]*promoted{}
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			if al, ok := inst.(*ir.AllocaInstruction); ok {
				vars[al.Result.ID] = &promoted{id: al.Result.ID, elemTy: al.ElemTy, name: al.Result.DefName}
			}
		}
	}
	if len(vars) == 0 {
		return vars
	}

	escaped := map[ir.ValueID]bool{}
	mark := func(v ir.Value) {
		if v.Kind != ir.ValTemporary {
			return
		}
		if _, tracked := vars[v.ID]; tracked {
			escaped[v.ID] = true
		}
	}
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			switch x := inst.(type) {
			case *ir.AllocaInstruction:
				// Defining site, not a use.
			case *ir.LoadInstruction:
				// Ptr is the load's own legitimate use.
			case *ir.StoreInstruction:
				// Ptr is legitimate; storing the pointer itself elsewhere escapes it.
				mark(x.Value_)
			default:
				for _, op := range inst.GetOperands() {
					mark(op)
				}
			}
		}
		for _, op := range blk.Terminator.GetOperands() {
			mark(op)
		}
	}
	for id := range escaped {
		delete(vars, id)
	}
	return vars
}

// placePhis runs the standard iterated dominance-frontier phi-placement
// algorithm (Cytron et al.) for every promoted variable independently.
func placePhis(fn *ir.Function, vars map[ir.ValueID]*promoted) phiPlacement {
	defBlocks := map[ir.ValueID]map[string]bool{}
	for id := range vars {
		defBlocks[id] = map[string]bool{}
	}
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			st, ok := inst.(*ir.StoreInstruction)
			if !ok || st.Ptr.Kind != ir.ValTemporary {
				continue
			}
			if _, tracked := vars[st.Ptr.ID]; tracked {
				defBlocks[st.Ptr.ID][blk.Label] = true
			}
		}
	}

	placement := phiPlacement{}
	for id, v := range vars {
		placed := map[string]bool{}
		inWorklist := map[string]bool{}
		var worklist []string
		for label := range defBlocks[id] {
			worklist = append(worklist, label)
			inWorklist[label] = true
		}
		sort.Strings(worklist) // deterministic placement order

		for len(worklist) > 0 {
			b := worklist[0]
			worklist = worklist[1:]
			blk, ok := fn.Block(b)
			if !ok {
				continue
			}
			for _, df := range blk.DomFrontier {
				if placed[df] {
					continue
				}
				placed[df] = true

				dfBlk, _ := fn.Block(df)
				result := ir.Temporary(fn.FreshTemp(), v.elemTy)
				result.DefName = v.name
				phi := &ir.PhiInstruction{Ty: v.elemTy, Result: result}
				dfBlk.Instructions = append([]ir.Instruction{phi}, dfBlk.Instructions...)

				if placement[df] == nil {
					placement[df] = map[ir.ValueID]*ir.PhiInstruction{}
				}
				placement[df][id] = phi

				if !inWorklist[df] {
					inWorklist[df] = true
					worklist = append(worklist, df)
				}
			}
		}
	}
	return placement
}

// renameState carries the per-variable value stacks threaded through
// the dominator-tree-order renaming walk.
type renameState struct {
	fn     *ir.Function
	vars   map[ir.ValueID]*promoted
	phis   phiPlacement
	stacks map[ir.ValueID][]ir.Value
}

func (st *renameState) top(id ir.ValueID) ir.Value {
	s := st.stacks[id]
	if len(s) == 0 {
		return ir.Undef(st.vars[id].elemTy)
	}
	return s[len(s)-1]
}

func (st *renameState) push(id ir.ValueID, v ir.Value) {
	st.stacks[id] = append(st.stacks[id], v)
}

// visit renames one block and recurses over its dominator-tree
// children, restoring every variable's stack depth on the way back out
// so a sibling subtree never sees a definition from this one.
func (st *renameState) visit(label string) {
	blk, ok := st.fn.Block(label)
	if !ok {
		return
	}

	depths := make(map[ir.ValueID]int, len(st.vars))
	for id := range st.vars {
		depths[id] = len(st.stacks[id])
	}

	if blkPhis, ok := st.phis[label]; ok {
		for id, phi := range blkPhis {
			st.push(id, phi.Result)
		}
	}

	localSubst := map[ir.ValueID]ir.Value{}
	substitute := func(v ir.Value) ir.Value {
		if v.Kind == ir.ValTemporary {
			if sub, ok := localSubst[v.ID]; ok {
				return sub
			}
		}
		return v
	}

	var out []ir.Instruction
	for _, inst := range blk.Instructions {
		switch x := inst.(type) {
		case *ir.PhiInstruction:
			out = append(out, inst)
		case *ir.AllocaInstruction:
			if _, tracked := st.vars[x.Result.ID]; tracked {
				continue // eliminated; reads/writes now flow through SSA values
			}
			out = append(out, inst)
		case *ir.LoadInstruction:
			if x.Ptr.Kind == ir.ValTemporary {
				if _, tracked := st.vars[x.Ptr.ID]; tracked {
					localSubst[x.Result.ID] = st.top(x.Ptr.ID)
					continue
				}
			}
			x.Ptr = substitute(x.Ptr)
			out = append(out, inst)
		case *ir.StoreInstruction:
			if x.Ptr.Kind == ir.ValTemporary {
				if _, tracked := st.vars[x.Ptr.ID]; tracked {
					st.push(x.Ptr.ID, substitute(x.Value_))
					continue
				}
			}
			x.Value_ = substitute(x.Value_)
			x.Ptr = substitute(x.Ptr)
			out = append(out, inst)
		default:
			ops := inst.GetOperands()
			for i, op := range ops {
				ops[i] = substitute(op)
			}
			inst.SetOperands(ops)
			out = append(out, inst)
		}
	}
	blk.Instructions = out

	term := blk.Terminator
	ops := term.GetOperands()
	for i, op := range ops {
		ops[i] = substitute(op)
	}
	term.SetOperands(ops)

	for _, succ := range blk.Successors {
		succPhis, ok := st.phis[succ]
		if !ok {
			continue
		}
		for id, phi := range succPhis {
			phi.Incoming = append(phi.Incoming, ir.PhiIncoming{Value: st.top(id), Pred: label})
		}
	}

	for _, child := range blk.DominatorChildren {
		st.visit(child)
	}

	for id, depth := range depths {
		st.stacks[id] = st.stacks[id][:depth]
	}
}
