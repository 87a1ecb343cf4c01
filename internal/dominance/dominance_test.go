package dominance

import (
	"testing"

	"vnc/internal/ir"
	"vnc/internal/types"
)

// buildDiamond builds entry -> {then, else} -> merge, the textbook case
// where merge's dominance frontier is empty (entry dominates it) but
// the branch blocks' frontiers are {merge} is not — merge is the join
// point whose *predecessors* have merge in their frontier.
func buildDiamond(t *testing.T) *ir.Function {
	t.Helper()
	fn := ir.NewFunction("f", nil, types.TVoid)
	for _, label := range []string{"entry", "then", "else", "merge"} {
		if err := fn.AddBlock(ir.NewBasicBlock(label)); err != nil {
			t.Fatal(err)
		}
	}
	fn.CFG.Entry = "entry"
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(fn.Connect("entry", "then"))
	must(fn.Connect("entry", "else"))
	must(fn.Connect("then", "merge"))
	must(fn.Connect("else", "merge"))
	return fn
}

func TestImmediateDominators(t *testing.T) {
	fn := buildDiamond(t)
	if err := Compute(fn); err != nil {
		t.Fatal(err)
	}

	then, _ := fn.CFG.Block("then")
	if !then.HasImmDom || then.ImmDom != "entry" {
		t.Errorf("then's idom = %q, want entry", then.ImmDom)
	}
	merge, _ := fn.CFG.Block("merge")
	if !merge.HasImmDom || merge.ImmDom != "entry" {
		t.Errorf("merge's idom = %q, want entry", merge.ImmDom)
	}
}

func TestDominanceFrontierAtJoin(t *testing.T) {
	fn := buildDiamond(t)
	if err := Compute(fn); err != nil {
		t.Fatal(err)
	}

	then, _ := fn.CFG.Block("then")
	if len(then.DomFrontier) != 1 || then.DomFrontier[0] != "merge" {
		t.Errorf("then's dominance frontier = %v, want [merge]", then.DomFrontier)
	}
	entry, _ := fn.CFG.Block("entry")
	if len(entry.DomFrontier) != 0 {
		t.Errorf("entry's dominance frontier = %v, want empty", entry.DomFrontier)
	}
}

func TestDominatorTreeChildren(t *testing.T) {
	fn := buildDiamond(t)
	if err := Compute(fn); err != nil {
		t.Fatal(err)
	}
	entry, _ := fn.CFG.Block("entry")
	if len(entry.DominatorChildren) != 3 {
		t.Errorf("entry has %d dominator-tree children, want 3 (then, else, merge)", len(entry.DominatorChildren))
	}
}

func TestDominatesHelper(t *testing.T) {
	fn := buildDiamond(t)
	if err := Compute(fn); err != nil {
		t.Fatal(err)
	}
	if !Dominates(fn, "entry", "merge") {
		t.Error("expected entry to dominate merge")
	}
	if Dominates(fn, "then", "else") {
		t.Error("then must not dominate else")
	}
}
