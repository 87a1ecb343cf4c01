// Package sccp implements Sparse Conditional Constant Propagation
// (C10, spec.md §4.8, Wegman-Zadeck) over an already-SSA-constructed
// function: a lattice per SSA value, an executable-edge set, and two
// deduplicating worklists (CFG edges, SSA values) driven to a fixed
// point. A rewriter then folds every value the lattice proved Constant,
// simplifies branches with a constant condition, and strips phi
// incoming pairs whose predecessor edge never became executable.
package sccp

import (
	"vnc/internal/diag"
	"vnc/internal/ir"
)

// DefaultMaxIterations bounds the worklist loop when the caller passes
// a non-positive cap. It is generous enough that only a malformed CFG
// (a cycle in the dominator-independent edge set that never stabilizes)
// would hit it.
const DefaultMaxIterations = 100_000

// Stats summarizes one SCCP run for diagnostics/tooling (not part of
// the pass's correctness contract).
type Stats struct {
	Iterations         int
	ConstantsFolded    int
	ExecutableEdges    int
	BranchesSimplified int
	PhiIncomingDropped int
}

type edge struct{ from, to string }

// instRef locates one use site: either an instruction at Idx, or (when
// Idx is termIdx) the block's terminator.
type instRef struct {
	block string
	idx   int
}

const termIdx = -1

// State holds the mutable worklist-algorithm state for one function run.
type State struct {
	fn *ir.Function

	lattice    map[ir.ValueID]Lattice
	execEdges  map[edge]bool
	reached    map[string]bool
	users      map[ir.ValueID][]instRef

	cfgWork  []edge
	ssaWork  []ir.ValueID
	cfgQueue map[edge]bool
	ssaQueue map[ir.ValueID]bool

	maxIter int
	stats   Stats
}

// Run propagates constants through fn and rewrites it in place. maxIter
// <= 0 uses DefaultMaxIterations. Returns the run's stats, or a fatal
// MaxIterationsExceeded diagnostic via sink if the worklist never
// stabilized.
func Run(fn *ir.Function, maxIter int, sink *diag.Sink) Stats {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	s := &State{
		fn:        fn,
		lattice:   map[ir.ValueID]Lattice{},
		execEdges: map[edge]bool{},
		reached:   map[string]bool{},
		users:     map[ir.ValueID][]instRef{},
		cfgQueue:  map[edge]bool{},
		ssaQueue:  map[ir.ValueID]bool{},
		maxIter:   maxIter,
	}
	s.buildUseLists()

	entry := fn.CFG.Entry
	s.reached[entry] = true
	s.visitBlockFirstTime(entry)

	iter := 0
	for len(s.cfgWork) > 0 || len(s.ssaWork) > 0 {
		iter++
		if iter > s.maxIter {
			sink.Add(diag.New(diag.ErrMaxIterationsExceeded, diag.Position{},
				"SCCP did not converge within the configured iteration cap"))
			break
		}
		if len(s.cfgWork) > 0 {
			e := s.cfgWork[0]
			s.cfgWork = s.cfgWork[1:]
			delete(s.cfgQueue, e)
			s.processEdge(e)
			continue
		}
		v := s.ssaWork[0]
		s.ssaWork = s.ssaWork[1:]
		delete(s.ssaQueue, v)
		s.processValueUsers(v)
	}
	s.stats.Iterations = iter
	s.stats.ExecutableEdges = len(s.execEdges)

	rewrite(s)
	return s.stats
}

func (s *State) buildUseLists() {
	for _, blk := range s.fn.Blocks() {
		for idx, inst := range blk.Instructions {
			for _, op := range inst.GetOperands() {
				if op.Kind == ir.ValTemporary {
					s.users[op.ID] = append(s.users[op.ID], instRef{blk.Label, idx})
				}
			}
		}
		for _, op := range blk.Terminator.GetOperands() {
			if op.Kind == ir.ValTemporary {
				s.users[op.ID] = append(s.users[op.ID], instRef{blk.Label, termIdx})
			}
		}
	}
}

func (s *State) pushEdge(e edge) {
	if s.cfgQueue[e] {
		return
	}
	s.cfgQueue[e] = true
	s.cfgWork = append(s.cfgWork, e)
}

func (s *State) pushValue(id ir.ValueID) {
	if s.ssaQueue[id] {
		return
	}
	s.ssaQueue[id] = true
	s.ssaWork = append(s.ssaWork, id)
}

// setLattice applies a monotonic update, pushing the value's users onto
// the SSA worklist when the entry actually advances.
func (s *State) setLattice(id ir.ValueID, l Lattice) {
	cur, ok := s.lattice[id]
	if !ok {
		cur = bottom()
	}
	if !higher(cur, l) {
		return
	}
	s.lattice[id] = l
	s.pushValue(id)
}

func (s *State) processEdge(e edge) {
	if s.execEdges[e] {
		return
	}
	s.execEdges[e] = true

	firstVisit := !s.reached[e.to]
	s.reached[e.to] = true

	if firstVisit {
		s.visitBlockFirstTime(e.to)
		return
	}
	// Block already live: only its phis can be affected by a newly
	// executable incoming edge.
	blk, ok := s.fn.Block(e.to)
	if !ok {
		return
	}
	for _, inst := range blk.Instructions {
		if phi, ok := inst.(*ir.PhiInstruction); ok {
			s.evalPhi(phi)
		}
	}
}

func (s *State) visitBlockFirstTime(label string) {
	blk, ok := s.fn.Block(label)
	if !ok {
		return
	}
	for _, inst := range blk.Instructions {
		s.evalInst(inst)
	}
	s.evalTerminator(label, blk)
}

func (s *State) processValueUsers(id ir.ValueID) {
	for _, ref := range s.users[id] {
		if !s.reached[ref.block] {
			continue
		}
		blk, ok := s.fn.Block(ref.block)
		if !ok {
			continue
		}
		if ref.idx == termIdx {
			s.evalTerminator(ref.block, blk)
			continue
		}
		if ref.idx < len(blk.Instructions) {
			s.evalInst(blk.Instructions[ref.idx])
		}
	}
}

func (s *State) evalInst(inst ir.Instruction) {
	switch x := inst.(type) {
	case *ir.PhiInstruction:
		s.evalPhi(x)
	case *ir.BinaryInstruction:
		l, r := s.valueLattice(x.Left), s.valueLattice(x.Right)
		s.setLattice(x.Result.ID, meetedFold(l, r, func() (ir.Value, bool) {
			return evalBinary(x.Op, l.Val, r.Val, x.Result.Ty)
		}))
	case *ir.UnaryInstruction:
		v := s.valueLattice(x.Value_)
		s.setLattice(x.Result.ID, meetedFold1(v, func() (ir.Value, bool) {
			return evalUnary(x.Op, v.Val, x.Result.Ty)
		}))
	case *ir.ICmpInstruction:
		l, r := s.valueLattice(x.Left), s.valueLattice(x.Right)
		s.setLattice(x.Result.ID, meetedFold(l, r, func() (ir.Value, bool) {
			return evalCmp(x.Pred, l.Val, r.Val, x.Left.Ty)
		}))
	case *ir.FCmpInstruction:
		l, r := s.valueLattice(x.Left), s.valueLattice(x.Right)
		s.setLattice(x.Result.ID, meetedFold(l, r, func() (ir.Value, bool) {
			return evalCmp(x.Pred, l.Val, r.Val, x.Left.Ty)
		}))
	case *ir.SelectInstruction:
		cond := s.valueLattice(x.Cond)
		switch cond.Kind {
		case Top:
			s.setLattice(x.Result.ID, top())
		case Constant:
			if cond.Val.Lit.BoolVal {
				s.setLattice(x.Result.ID, s.valueLattice(x.IfTrue))
			} else {
				s.setLattice(x.Result.ID, s.valueLattice(x.IfFalse))
			}
		}
	default:
		if res, ok := inst.GetResult(); ok && res.Kind == ir.ValTemporary {
			// Loads, calls, GEPs, conversions, aggregates: outside this
			// pass's scalar constant model (spec.md §4.8).
			s.setLattice(res.ID, top())
		}
	}
}

func meetedFold(l, r Lattice, fold func() (ir.Value, bool)) Lattice {
	if l.Kind == Bottom || r.Kind == Bottom {
		return bottom()
	}
	if l.Kind == Top || r.Kind == Top {
		return top()
	}
	v, ok := fold()
	if !ok {
		return top()
	}
	return constant(v)
}

func meetedFold1(v Lattice, fold func() (ir.Value, bool)) Lattice {
	if v.Kind == Bottom {
		return bottom()
	}
	if v.Kind == Top {
		return top()
	}
	folded, ok := fold()
	if !ok {
		return top()
	}
	return constant(folded)
}

func (s *State) evalPhi(phi *ir.PhiInstruction) {
	result := bottom()
	for _, in := range phi.Incoming {
		e := edge{from: in.Pred, to: phi.GetBlock()}
		if !s.execEdges[e] {
			continue
		}
		result = meet(result, s.valueLattice(in.Value))
	}
	s.setLattice(phi.Result.ID, result)
}

func (s *State) evalTerminator(label string, blk *ir.BasicBlock) {
	switch t := blk.Terminator.(type) {
	case *ir.BranchTerminator:
		s.pushEdge(edge{label, t.Label})
	case *ir.ConditionalBranchTerminator:
		cond := s.valueLattice(t.Cond)
		switch cond.Kind {
		case Constant:
			if cond.Val.Lit.BoolVal {
				s.pushEdge(edge{label, t.TrueLabel})
			} else {
				s.pushEdge(edge{label, t.FalseLabel})
			}
		case Top:
			s.pushEdge(edge{label, t.TrueLabel})
			s.pushEdge(edge{label, t.FalseLabel})
		}
	case *ir.SwitchTerminator:
		val := s.valueLattice(t.Value)
		switch val.Kind {
		case Constant:
			matched := t.Default
			for _, c := range t.Cases {
				if scalarEqual(c.Const, val.Val) {
					matched = c.Label
					break
				}
			}
			s.pushEdge(edge{label, matched})
		case Top:
			s.pushEdge(edge{label, t.Default})
			for _, c := range t.Cases {
				s.pushEdge(edge{label, c.Label})
			}
		}
	}
}
