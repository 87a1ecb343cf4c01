package sccp

import "vnc/internal/ir"

// rewrite applies the lattice's conclusions back onto the IR: constant
// values replace every use, conditional branches/switches with a
// provably constant selector collapse to an unconditional branch, and
// phi incoming pairs along proven-non-executable edges are dropped.
// Block removal itself is left to internal/dce (C11), which reasons
// about reachability across the whole CFG.
func rewrite(s *State) {
	substitute := func(v ir.Value) ir.Value {
		if v.Kind != ir.ValTemporary {
			return v
		}
		l, ok := s.lattice[v.ID]
		if !ok || l.Kind != Constant {
			return v
		}
		s.stats.ConstantsFolded++
		return l.Val
	}

	for _, blk := range s.fn.Blocks() {
		for _, inst := range blk.Instructions {
			if _, isPhi := inst.(*ir.PhiInstruction); isPhi {
				continue // phi operands are rewritten via the incoming-edge pass below
			}
			ops := inst.GetOperands()
			for i, op := range ops {
				ops[i] = substitute(op)
			}
			inst.SetOperands(ops)
		}

		if s.reached[blk.Label] {
			for _, inst := range blk.Instructions {
				if phi, ok := inst.(*ir.PhiInstruction); ok {
					kept := phi.Incoming[:0]
					for _, in := range phi.Incoming {
						if s.execEdges[edge{in.Pred, blk.Label}] {
							in.Value = substitute(in.Value)
							kept = append(kept, in)
						} else {
							s.stats.PhiIncomingDropped++
						}
					}
					phi.Incoming = kept
				}
			}
		}

		ops := blk.Terminator.GetOperands()
		for i, op := range ops {
			ops[i] = substitute(op)
		}
		blk.Terminator.SetOperands(ops)

		switch t := blk.Terminator.(type) {
		case *ir.ConditionalBranchTerminator:
			if t.Cond.Kind == ir.ValLiteral {
				target := t.FalseLabel
				if t.Cond.Lit.BoolVal {
					target = t.TrueLabel
				}
				blk.SetTerminator(&ir.BranchTerminator{Label: target})
				s.stats.BranchesSimplified++
			}
		case *ir.SwitchTerminator:
			if t.Value.Kind == ir.ValLiteral {
				target := t.Default
				for _, c := range t.Cases {
					if scalarEqual(c.Const, t.Value) {
						target = c.Label
						break
					}
				}
				blk.SetTerminator(&ir.BranchTerminator{Label: target})
				s.stats.BranchesSimplified++
			}
		}
	}
}
