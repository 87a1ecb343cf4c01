package ir

import "fmt"

// CFG is the C4 directed graph of basic blocks keyed by label. The CFG
// owns its blocks; everything outside the graph references blocks by
// label, never by pointer (spec.md §9, "Cyclic structures avoided").
type CFG struct {
	Entry string

	blocks []*BasicBlock      // node order == insertion order ("graph order")
	index  map[string]int     // label -> index into blocks, O(1) lookup
}

// NewCFG creates an empty CFG with an entry label; the entry block is
// itself added via AddBlock by the caller immediately afterward (C7 does
// this when it creates a function's entry block, labelled "entry.<n>"
// from its per-module block counter).
func NewCFG(entry string) *CFG {
	return &CFG{Entry: entry, index: make(map[string]int)}
}

// AddBlock inserts blk, failing if its label already exists.
func (c *CFG) AddBlock(blk *BasicBlock) error {
	if _, exists := c.index[blk.Label]; exists {
		return fmt.Errorf("cfg: block %q already exists", blk.Label)
	}
	c.index[blk.Label] = len(c.blocks)
	c.blocks = append(c.blocks, blk)
	return nil
}

// Block looks up a block by label in O(1) amortized time.
func (c *CFG) Block(label string) (*BasicBlock, bool) {
	idx, ok := c.index[label]
	if !ok {
		return nil, false
	}
	return c.blocks[idx], true
}

// Connect adds a directed edge from `from` to `to`; both endpoints must
// already exist.
func (c *CFG) Connect(from, to string) error {
	fb, ok := c.Block(from)
	if !ok {
		return fmt.Errorf("cfg: connect: source block %q does not exist", from)
	}
	tb, ok := c.Block(to)
	if !ok {
		return fmt.Errorf("cfg: connect: target block %q does not exist", to)
	}
	if !containsStr(fb.Successors, to) {
		fb.Successors = append(fb.Successors, to)
	}
	if !containsStr(tb.Predecessors, from) {
		tb.Predecessors = append(tb.Predecessors, from)
	}
	return nil
}

// Disconnect removes the directed edge from `from` to `to`, if present.
func (c *CFG) Disconnect(from, to string) {
	if fb, ok := c.Block(from); ok {
		fb.Successors = removeStr(fb.Successors, to)
	}
	if tb, ok := c.Block(to); ok {
		tb.Predecessors = removeStr(tb.Predecessors, from)
	}
}

// RemoveBlock removes the node for label and every incident edge.
func (c *CFG) RemoveBlock(label string) {
	blk, ok := c.Block(label)
	if !ok {
		return
	}
	for _, pred := range append([]string(nil), blk.Predecessors...) {
		c.Disconnect(pred, label)
	}
	for _, succ := range append([]string(nil), blk.Successors...) {
		c.Disconnect(label, succ)
	}
	idx := c.index[label]
	c.blocks = append(c.blocks[:idx], c.blocks[idx+1:]...)
	delete(c.index, label)
	for l, i := range c.index {
		if i > idx {
			c.index[l] = i - 1
		}
	}
}

// Blocks iterates blocks in graph (insertion) order.
func (c *CFG) Blocks() []*BasicBlock { return c.blocks }

// PostOrder iterates blocks in DFS post-order from the entry block.
func (c *CFG) PostOrder() []*BasicBlock {
	visited := make(map[string]bool)
	var order []*BasicBlock
	var visit func(label string)
	visit = func(label string) {
		if visited[label] {
			return
		}
		visited[label] = true
		blk, ok := c.Block(label)
		if !ok {
			return
		}
		for _, s := range blk.Successors {
			visit(s)
		}
		order = append(order, blk)
	}
	visit(c.Entry)
	return order
}

// Reachable returns the set of block labels reachable from the entry
// block by following successor edges.
func (c *CFG) Reachable() map[string]bool {
	seen := make(map[string]bool)
	var stack []string
	if _, ok := c.Block(c.Entry); ok {
		stack = append(stack, c.Entry)
	}
	for len(stack) > 0 {
		label := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[label] {
			continue
		}
		seen[label] = true
		blk, ok := c.Block(label)
		if !ok {
			continue
		}
		for _, s := range blk.Successors {
			if !seen[s] {
				stack = append(stack, s)
			}
		}
	}
	return seen
}

// Verify is the CFG's own lightweight structural self-check (distinct
// from the full C12 validator): the entry block must exist and every
// block's terminator targets must resolve to existing blocks.
func (c *CFG) Verify() error {
	if _, ok := c.Block(c.Entry); !ok {
		return fmt.Errorf("cfg: entry block %q does not exist", c.Entry)
	}
	for _, blk := range c.blocks {
		for _, target := range blk.Terminator.TargetLabels() {
			if _, ok := c.Block(target); !ok {
				return fmt.Errorf("cfg: block %q terminator targets missing block %q", blk.Label, target)
			}
		}
	}
	return nil
}

func containsStr(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func removeStr(ss []string, s string) []string {
	out := ss[:0]
	for _, x := range ss {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}
