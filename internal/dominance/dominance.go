// Package dominance computes dominator trees and dominance frontiers
// over a function's CFG (C8, spec.md §4.6), using the Cooper-Harvey-
// Kennedy iterative algorithm. Results are written directly onto each
// internal/ir.BasicBlock's ImmDom/HasImmDom/DominatorChildren/
// DomFrontier fields, which internal/ssa (C9) then reads to place phis.
package dominance

import (
	"fmt"

	"vnc/internal/ir"
)

// Compute populates the dominator tree and dominance frontiers of fn's
// CFG. It is idempotent: re-running it recomputes from scratch, which
// the SCCP/DCE pipeline relies on whenever a pass changes reachability.
func Compute(fn *ir.Function) error {
	if fn.CFG == nil {
		return fmt.Errorf("dominance: function %q has no CFG", fn.Name)
	}
	cfg := fn.CFG

	postOrder := cfg.PostOrder()
	if len(postOrder) == 0 {
		return fmt.Errorf("dominance: function %q has an empty CFG", fn.Name)
	}
	postIndex := make(map[string]int, len(postOrder))
	for i, blk := range postOrder {
		postIndex[blk.Label] = i
	}

	// Reverse postorder, the order the fixed-point loop processes blocks in.
	rpo := make([]*ir.BasicBlock, len(postOrder))
	for i, blk := range postOrder {
		rpo[len(postOrder)-1-i] = blk
	}

	idom := make(map[string]string)
	idom[cfg.Entry] = cfg.Entry

	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b.Label == cfg.Entry {
				continue
			}
			var newIdom string
			hasNewIdom := false
			for _, predLabel := range b.Predecessors {
				if _, ok := idom[predLabel]; !ok {
					continue
				}
				if !hasNewIdom {
					newIdom = predLabel
					hasNewIdom = true
					continue
				}
				newIdom = intersect(newIdom, predLabel, idom, postIndex)
			}
			if !hasNewIdom {
				continue
			}
			if cur, ok := idom[b.Label]; !ok || cur != newIdom {
				idom[b.Label] = newIdom
				changed = true
			}
		}
	}

	for _, blk := range cfg.Blocks() {
		blk.ImmDom = ""
		blk.HasImmDom = false
		blk.DominatorChildren = nil
		blk.DomFrontier = nil
	}

	for label, d := range idom {
		if label == cfg.Entry {
			continue
		}
		blk, _ := cfg.Block(label)
		blk.ImmDom = d
		blk.HasImmDom = true
		parent, _ := cfg.Block(d)
		parent.DominatorChildren = append(parent.DominatorChildren, label)
	}

	for _, b := range cfg.Blocks() {
		if len(b.Predecessors) < 2 {
			continue
		}
		for _, predLabel := range b.Predecessors {
			if _, ok := idom[predLabel]; !ok {
				continue
			}
			runner := predLabel
			for runner != idom[b.Label] {
				runnerBlk, _ := cfg.Block(runner)
				if !containsLabel(runnerBlk.DomFrontier, b.Label) {
					runnerBlk.DomFrontier = append(runnerBlk.DomFrontier, b.Label)
				}
				runner = idom[runner]
			}
		}
	}

	return nil
}

func intersect(a, b string, idom map[string]string, postIndex map[string]int) string {
	for a != b {
		for postIndex[a] < postIndex[b] {
			a = idom[a]
		}
		for postIndex[b] < postIndex[a] {
			b = idom[b]
		}
	}
	return a
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// Dominates reports whether a dominates b (every path from the entry to
// b passes through a), by walking b's immediate-dominator chain.
func Dominates(fn *ir.Function, a, b string) bool {
	if a == b {
		return true
	}
	cur := b
	for {
		blk, ok := fn.CFG.Block(cur)
		if !ok || !blk.HasImmDom {
			return false
		}
		if blk.ImmDom == a {
			return true
		}
		cur = blk.ImmDom
	}
}
