// Package dce implements dead code elimination (C11, spec.md §4.9): two
// intertwined eliminations — reachability-based block removal with phi
// repair, and liveness-based instruction removal with conservative
// side-effect handling — alternated to a fixed point.
package dce

import "vnc/internal/ir"

// DefaultMaxIterations bounds the reachability/liveness alternation.
const DefaultMaxIterations = 1000

// Warning records one conservative keep: an instruction DCE could not
// prove dead only because its effect classification forced it to be
// treated as live (spec.md §4.9's reason tags).
type Warning struct {
	Instruction string
	Reason      string
	Block       string
}

// Stats reports one function's DCE run.
type Stats struct {
	InstructionsRemoved int
	BlocksRemoved       int
	Iterations          int
	Warnings            []Warning
}

// HadEffect reports whether this run changed anything. Running DCE
// again immediately afterward always reports false (spec.md's
// idempotence invariant).
func (s Stats) HadEffect() bool {
	return s.InstructionsRemoved > 0 || s.BlocksRemoved > 0
}

// Run alternates reachability and liveness passes over fn until neither
// changes anything, up to maxIter rounds (<= 0 uses
// DefaultMaxIterations). External function declarations (empty CFG)
// are skipped, matching spec.md's external-function exclusion.
func Run(fn *ir.Function, maxIter int) Stats {
	if fn.External || fn.CFG == nil {
		return Stats{}
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	var stats Stats
	for iter := 0; iter < maxIter; iter++ {
		stats.Iterations++
		blocksRemoved := removeUnreachableBlocks(fn)
		instsRemoved, warnings := removeDeadInstructions(fn)
		stats.BlocksRemoved += blocksRemoved
		stats.InstructionsRemoved += instsRemoved
		stats.Warnings = append(stats.Warnings, warnings...)
		if blocksRemoved == 0 && instsRemoved == 0 {
			break
		}
	}
	return stats
}

// removeUnreachableBlocks drops every block not reachable from the
// entry, then repairs phis in surviving blocks that referenced a
// removed predecessor (spec.md §4.9: drop the incoming pair; a phi left
// with one incoming value collapses to it; left with zero, it is
// removed and its uses fold to Undef).
func removeUnreachableBlocks(fn *ir.Function) int {
	reachable := fn.CFG.Reachable()

	var dead []string
	for _, blk := range fn.Blocks() {
		if blk.Label != fn.CFG.Entry && !reachable[blk.Label] {
			dead = append(dead, blk.Label)
		}
	}
	for _, label := range dead {
		fn.CFG.RemoveBlock(label)
	}
	if len(dead) == 0 {
		return 0
	}

	deadSet := make(map[string]bool, len(dead))
	for _, l := range dead {
		deadSet[l] = true
	}

	trivial := map[ir.ValueID]ir.Value{}
	for _, blk := range fn.Blocks() {
		var kept []ir.Instruction
		for _, inst := range blk.Instructions {
			phi, ok := inst.(*ir.PhiInstruction)
			if !ok {
				kept = append(kept, inst)
				continue
			}
			survivors := phi.Incoming[:0]
			for _, in := range phi.Incoming {
				if !deadSet[in.Pred] {
					survivors = append(survivors, in)
				}
			}
			phi.Incoming = survivors
			switch len(phi.Incoming) {
			case 0:
				trivial[phi.Result.ID] = ir.Undef(phi.Ty)
			case 1:
				trivial[phi.Result.ID] = phi.Incoming[0].Value
			default:
				kept = append(kept, inst)
				continue
			}
			// Trivial phi: dropped, its id folds to the recorded value below.
		}
		blk.Instructions = kept
	}

	if len(trivial) > 0 {
		substituteAll(fn, trivial)
	}

	return len(dead)
}

// substituteAll rewrites every remaining operand reference to a
// trivially-collapsed phi id with its replacement value. Values carry a
// slice field (Aggregate.Elements) and so aren't comparable with ==;
// apply reports whether it replaced anything instead of relying on
// before/after equality.
func substituteAll(fn *ir.Function, repl map[ir.ValueID]ir.Value) {
	apply := func(v ir.Value) (ir.Value, bool) {
		if v.Kind == ir.ValTemporary {
			if r, ok := repl[v.ID]; ok {
				return r, true
			}
		}
		return v, false
	}
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			ops := inst.GetOperands()
			changed := false
			for i, op := range ops {
				if sub, ok := apply(op); ok {
					ops[i] = sub
					changed = true
				}
			}
			if changed {
				inst.SetOperands(ops)
			}
		}
		ops := blk.Terminator.GetOperands()
		changed := false
		for i, op := range ops {
			if sub, ok := apply(op); ok {
				ops[i] = sub
				changed = true
			}
		}
		if changed {
			blk.Terminator.SetOperands(ops)
		}
	}
}

// removeDeadInstructions runs the backward liveness sweep: every
// instruction with an observable effect (a store, an unknown-purity
// call, a volatile load) seeds the live set; liveness then propagates
// to whatever defines a live instruction's operands. Everything else is
// pure and unused, and is removed.
func removeDeadInstructions(fn *ir.Function) (int, []Warning) {
	defOf := map[ir.ValueID]ir.Instruction{}
	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			if res, ok := inst.GetResult(); ok && res.Kind == ir.ValTemporary {
				defOf[res.ID] = inst
			}
		}
	}

	live := map[ir.Instruction]bool{}
	var queue []ir.Instruction
	var warnings []Warning

	seed := func(inst ir.Instruction) {
		if !live[inst] {
			live[inst] = true
			queue = append(queue, inst)
		}
	}

	for _, blk := range fn.Blocks() {
		for _, inst := range blk.Instructions {
			for _, eff := range inst.GetEffects() {
				switch e := eff.(type) {
				case ir.UnknownEffect:
					if !live[inst] {
						warnings = append(warnings, Warning{Instruction: inst.String(), Reason: e.Reason, Block: blk.Label})
					}
					seed(inst)
				case ir.MemoryEffectOp:
					if e.Type == ir.MemoryEffectWrite {
						seed(inst)
					}
				}
			}
		}
		for _, op := range blk.Terminator.GetOperands() {
			if op.Kind != ir.ValTemporary {
				continue
			}
			if def, ok := defOf[op.ID]; ok {
				seed(def)
			}
		}
	}

	for len(queue) > 0 {
		inst := queue[0]
		queue = queue[1:]
		for _, op := range inst.GetOperands() {
			if op.Kind != ir.ValTemporary {
				continue
			}
			if def, ok := defOf[op.ID]; ok {
				seed(def)
			}
		}
	}

	removed := 0
	for _, blk := range fn.Blocks() {
		kept := blk.Instructions[:0]
		for _, inst := range blk.Instructions {
			if live[inst] {
				kept = append(kept, inst)
			} else {
				removed++
			}
		}
		blk.Instructions = kept
	}
	return removed, warnings
}
