package ir

import "vnc/internal/types"

// Parameter is one function parameter: name, type and attributes.
type Parameter struct {
	Name  string
	Ty    types.Type
	ByVal bool
}

// FunctionAttr enumerates function-level attributes.
type FunctionAttr int

const (
	AttrInlineHint FunctionAttr = iota
	AttrNoReturn
)

// Function is the C5 function: an ordered parameter list, return type, a
// CFG, attributes, calling convention, variadic flag and owning scope.
// Invariant: exactly one entry block; every block reachable from entry
// has all its terminator targets inside the function (enforced by the
// CFG itself plus C12's validator).
type Function struct {
	Name       string
	Params     []Parameter
	Ret        types.Type
	CFG        *CFG
	Attrs      []FunctionAttr
	Conv       CallingConvention
	Variadic   bool
	ScopeID    ScopeID
	External   bool // true for a declaration with no body (empty CFG)
	nextTemp   ValueID
}

// NewFunction creates a function with an empty CFG; the caller adds the
// entry block immediately (C7's buildFunction does this).
func NewFunction(name string, params []Parameter, ret types.Type) *Function {
	return &Function{Name: name, Params: params, Ret: ret}
}

// FreshTemp allocates a new, function-unique temporary id.
func (f *Function) FreshTemp() ValueID {
	f.nextTemp++
	return f.nextTemp
}

// AddBlock adds a block to the function's CFG, creating the CFG with
// this block as entry if the function has none yet.
func (f *Function) AddBlock(blk *BasicBlock) error {
	if f.CFG == nil {
		f.CFG = NewCFG(blk.Label)
	}
	return f.CFG.AddBlock(blk)
}

// Block looks up a block by label.
func (f *Function) Block(label string) (*BasicBlock, bool) {
	if f.CFG == nil {
		return nil, false
	}
	return f.CFG.Block(label)
}

// AddInstruction appends inst to the named block.
func (f *Function) AddInstruction(label string, inst Instruction) error {
	blk, ok := f.Block(label)
	if !ok {
		return blockNotFound(label)
	}
	blk.AddInstruction(inst)
	return nil
}

// SetTerminator sets the terminator of the named block.
func (f *Function) SetTerminator(label string, t Terminator) error {
	blk, ok := f.Block(label)
	if !ok {
		return blockNotFound(label)
	}
	blk.SetTerminator(t)
	return nil
}

// Connect adds a CFG edge between two of the function's blocks.
func (f *Function) Connect(from, to string) error {
	if f.CFG == nil {
		return blockNotFound(from)
	}
	return f.CFG.Connect(from, to)
}

// Blocks iterates the function's blocks in deterministic graph order.
func (f *Function) Blocks() []*BasicBlock {
	if f.CFG == nil {
		return nil
	}
	return f.CFG.Blocks()
}

// InstructionCount sums instructions across every block (terminators
// excluded, matching Module.InstructionCount's definition).
func (f *Function) InstructionCount() int {
	n := 0
	for _, blk := range f.Blocks() {
		n += len(blk.Instructions)
	}
	return n
}

func blockNotFound(label string) error {
	return &BlockNotFoundError{Label: label}
}

// BlockNotFoundError reports a reference to a nonexistent block label.
type BlockNotFoundError struct{ Label string }

func (e *BlockNotFoundError) Error() string { return "ir: block not found: " + e.Label }
