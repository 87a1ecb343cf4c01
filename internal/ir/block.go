package ir

import "fmt"

// BasicBlock is a maximal straight-line sequence of instructions ending
// in exactly one terminator (spec.md §3). Predecessor/successor label
// lists mirror the owning CFG's graph edges.
type BasicBlock struct {
	Label        string
	Instructions []Instruction
	Terminator   Terminator
	Debug        *DebugInfo

	Predecessors []string
	Successors   []string

	// Populated by internal/dominance (C8).
	ImmDom            string
	HasImmDom         bool
	DominatorChildren []string
	DomFrontier       []string

	// Liveness sets. No pass in this module fills them: C9 and C11
	// compute the liveness they need locally.
	LiveIn  map[ValueID]bool
	LiveOut map[ValueID]bool
}

// NewBasicBlock creates a block with the default Unreachable terminator
// (spec.md §3: "Unreachable is the default that makes the block
// structurally incomplete until replaced").
func NewBasicBlock(label string) *BasicBlock {
	return &BasicBlock{
		Label:      label,
		Terminator: &UnreachableTerminator{},
	}
}

// AddInstruction appends inst to the block's body, assigning it to this
// block's label.
func (b *BasicBlock) AddInstruction(inst Instruction) {
	inst.SetBlock(b.Label)
	b.Instructions = append(b.Instructions, inst)
}

// SetTerminator replaces the block's terminator.
func (b *BasicBlock) SetTerminator(t Terminator) { b.Terminator = t }

// IsTerminated reports whether the block's terminator is something
// other than the default Unreachable placeholder.
func (b *BasicBlock) IsTerminated() bool {
	_, isUnreachable := b.Terminator.(*UnreachableTerminator)
	return !isUnreachable
}

func (b *BasicBlock) String() string {
	s := fmt.Sprintf("%s:\n", b.Label)
	for _, inst := range b.Instructions {
		s += "  " + inst.String() + "\n"
	}
	s += "  " + b.Terminator.String() + "\n"
	return s
}
