package ir

import (
	"fmt"

	"vnc/internal/types"
)

// Instruction is the closed C3 union over every non-terminator op. Every
// concrete instruction carries a debug span and optional scope id, and
// has zero or one result value.
type Instruction interface {
	GetID() InstructionID
	GetResult() (Value, bool)
	GetOperands() []Value
	SetOperands([]Value)
	GetBlock() string
	SetBlock(string)
	IsTerminator() bool
	String() string
	GetEffects() []Effect
	GetDebug() *DebugInfo
	SetDebug(*DebugInfo)
	GetScope() *ScopeID
}

type base struct {
	ID      InstructionID
	Block   string
	Debug   *DebugInfo
	Scope_  *ScopeID
}

func (b *base) GetID() InstructionID  { return b.ID }
func (b *base) GetBlock() string      { return b.Block }
func (b *base) SetBlock(s string)     { b.Block = s }
func (b *base) IsTerminator() bool    { return false }
func (b *base) GetDebug() *DebugInfo  { return b.Debug }
func (b *base) SetDebug(d *DebugInfo) { b.Debug = d }
func (b *base) GetScope() *ScopeID    { return b.Scope_ }

// BinaryOp enumerates the arithmetic, bitwise and shift binary opcodes.
// Comparisons are separate instructions (ICmpInstruction, FCmpInstruction).
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
)

func (o BinaryOp) String() string {
	return [...]string{"add", "sub", "mul", "div", "rem", "and", "or", "xor", "shl", "shr"}[o]
}

// BinaryInstruction computes a binary op over two rvalue operands.
type BinaryInstruction struct {
	base
	Op       BinaryOp
	Left     Value
	Right    Value
	Result   Value
}

func (i *BinaryInstruction) GetResult() (Value, bool)   { return i.Result, true }
func (i *BinaryInstruction) GetOperands() []Value       { return []Value{i.Left, i.Right} }
func (i *BinaryInstruction) SetOperands(v []Value)      { i.Left, i.Right = v[0], v[1] }
func (i *BinaryInstruction) String() string {
	return fmt.Sprintf("%s = %s %s, %s : %s", i.Result, i.Op, i.Left, i.Right, i.Result.Ty)
}

// UnaryOp enumerates unary opcodes.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (o UnaryOp) String() string { return [...]string{"neg", "not"}[o] }

// UnaryInstruction computes a unary op over one rvalue operand.
type UnaryInstruction struct {
	base
	Op     UnaryOp
	Value_ Value
	Result Value
}

func (i *UnaryInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *UnaryInstruction) GetOperands() []Value      { return []Value{i.Value_} }
func (i *UnaryInstruction) SetOperands(v []Value)     { i.Value_ = v[0] }
func (i *UnaryInstruction) String() string {
	return fmt.Sprintf("%s = %s %s : %s", i.Result, i.Op, i.Value_, i.Result.Ty)
}

// CmpPredicate enumerates comparison predicates shared by ICmp/FCmp.
type CmpPredicate int

const (
	CmpEQ CmpPredicate = iota
	CmpNE
	CmpLT
	CmpLE
	CmpGT
	CmpGE
)

func (p CmpPredicate) String() string {
	return [...]string{"eq", "ne", "lt", "le", "gt", "ge"}[p]
}

// ICmpInstruction compares two integer/pointer operands.
type ICmpInstruction struct {
	base
	Pred   CmpPredicate
	Left   Value
	Right  Value
	Result Value
}

func (i *ICmpInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *ICmpInstruction) GetOperands() []Value      { return []Value{i.Left, i.Right} }
func (i *ICmpInstruction) SetOperands(v []Value)     { i.Left, i.Right = v[0], v[1] }
func (i *ICmpInstruction) String() string {
	return fmt.Sprintf("%s = icmp.%s %s, %s", i.Result, i.Pred, i.Left, i.Right)
}

// FCmpInstruction compares two floating-point operands.
type FCmpInstruction struct {
	base
	Pred   CmpPredicate
	Left   Value
	Right  Value
	Result Value
}

func (i *FCmpInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *FCmpInstruction) GetOperands() []Value      { return []Value{i.Left, i.Right} }
func (i *FCmpInstruction) SetOperands(v []Value)     { i.Left, i.Right = v[0], v[1] }
func (i *FCmpInstruction) String() string {
	return fmt.Sprintf("%s = fcmp.%s %s, %s", i.Result, i.Pred, i.Left, i.Right)
}

// SelectInstruction chooses between two values based on a boolean cond.
type SelectInstruction struct {
	base
	Cond    Value
	IfTrue  Value
	IfFalse Value
	Result  Value
}

func (i *SelectInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *SelectInstruction) GetOperands() []Value      { return []Value{i.Cond, i.IfTrue, i.IfFalse} }
func (i *SelectInstruction) SetOperands(v []Value)     { i.Cond, i.IfTrue, i.IfFalse = v[0], v[1], v[2] }
func (i *SelectInstruction) String() string {
	return fmt.Sprintf("%s = select %s, %s, %s", i.Result, i.Cond, i.IfTrue, i.IfFalse)
}

// PhiIncoming pairs an incoming value with the predecessor label it
// arrives from.
type PhiIncoming struct {
	Value Value
	Pred  string
}

// PhiInstruction merges values along multiple predecessor edges.
type PhiInstruction struct {
	base
	Ty       types.Type
	Incoming []PhiIncoming
	Result   Value
}

func (i *PhiInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *PhiInstruction) GetOperands() []Value {
	vs := make([]Value, len(i.Incoming))
	for k, in := range i.Incoming {
		vs[k] = in.Value
	}
	return vs
}
func (i *PhiInstruction) SetOperands(v []Value) {
	for k := range i.Incoming {
		i.Incoming[k].Value = v[k]
	}
}
func (i *PhiInstruction) String() string {
	s := fmt.Sprintf("%s = phi %s [", i.Result, i.Ty)
	for k, in := range i.Incoming {
		if k > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s:%s", in.Value, in.Pred)
	}
	return s + "]"
}

// AllocaInstruction reserves stack storage for a mutable local, yielding
// a pointer to it (spec.md §4.5, VarDeclaration (mutable)).
type AllocaInstruction struct {
	base
	ElemTy Type_
	Result Value
}

// Type_ aliases types.Type to keep field names uncluttered without an
// import-qualified field type at every call site in this file.
type Type_ = types.Type

func (i *AllocaInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *AllocaInstruction) GetOperands() []Value      { return nil }
func (i *AllocaInstruction) SetOperands([]Value)       {}
func (i *AllocaInstruction) String() string {
	return fmt.Sprintf("%s = alloca %s", i.Result, i.ElemTy)
}

// LoadInstruction dereferences a pointer operand.
type LoadInstruction struct {
	base
	Ptr      Value
	Result   Value
	Volatile bool
}

func (i *LoadInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *LoadInstruction) GetOperands() []Value      { return []Value{i.Ptr} }
func (i *LoadInstruction) SetOperands(v []Value)     { i.Ptr = v[0] }
func (i *LoadInstruction) String() string {
	return fmt.Sprintf("%s = load %s, %s", i.Result, i.Result.Ty, i.Ptr)
}

// StoreInstruction writes a value through a pointer operand. Has no
// result (spec.md: "zero or one result value").
type StoreInstruction struct {
	base
	Value_ Value
	Ptr    Value
}

func (i *StoreInstruction) GetResult() (Value, bool) { return Value{}, false }
func (i *StoreInstruction) GetOperands() []Value      { return []Value{i.Value_, i.Ptr} }
func (i *StoreInstruction) SetOperands(v []Value)     { i.Value_, i.Ptr = v[0], v[1] }
func (i *StoreInstruction) String() string {
	return fmt.Sprintf("store %s, %s", i.Value_, i.Ptr)
}

// GetElementPtrInstruction computes an address offset from a base pointer by a
// list of indices, without dereferencing (spec.md §4.5 ArrayLiteral/
// ArrayAccess both lower through GEP).
type GetElementPtrInstruction struct {
	base
	Base    Value
	Indices []Value
	ElemTy  Type_
	Result  Value
}

func (i *GetElementPtrInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *GetElementPtrInstruction) GetOperands() []Value {
	return append([]Value{i.Base}, i.Indices...)
}
func (i *GetElementPtrInstruction) SetOperands(v []Value) {
	i.Base = v[0]
	i.Indices = v[1:]
}
func (i *GetElementPtrInstruction) String() string {
	s := fmt.Sprintf("%s = gep %s, %s", i.Result, i.ElemTy, i.Base)
	for _, idx := range i.Indices {
		s += ", " + idx.String()
	}
	return s
}

// ExtractValueInstruction extracts one field/element from an aggregate
// rvalue by index path.
type ExtractValueInstruction struct {
	base
	Agg     Value
	Indices []int
	Result  Value
}

func (i *ExtractValueInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *ExtractValueInstruction) GetOperands() []Value      { return []Value{i.Agg} }
func (i *ExtractValueInstruction) SetOperands(v []Value)     { i.Agg = v[0] }
func (i *ExtractValueInstruction) String() string {
	return fmt.Sprintf("%s = extractvalue %s, %v", i.Result, i.Agg, i.Indices)
}

// InsertValueInstruction produces a new aggregate with one field/element
// replaced.
type InsertValueInstruction struct {
	base
	Agg     Value
	Elem    Value
	Indices []int
	Result  Value
}

func (i *InsertValueInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *InsertValueInstruction) GetOperands() []Value      { return []Value{i.Agg, i.Elem} }
func (i *InsertValueInstruction) SetOperands(v []Value)     { i.Agg, i.Elem = v[0], v[1] }
func (i *InsertValueInstruction) String() string {
	return fmt.Sprintf("%s = insertvalue %s, %s, %v", i.Result, i.Agg, i.Elem, i.Indices)
}

// ConvertKind enumerates the supported explicit conversions.
type ConvertKind int

const (
	ConvTrunc ConvertKind = iota
	ConvZExt
	ConvSExt
	ConvFPToSI
	ConvFPToUI
	ConvSIToFP
	ConvUIToFP
	ConvBitcast
	ConvPtrToInt
	ConvIntToPtr
)

// ConvertInstruction converts a value between explicit source and
// destination types.
type ConvertInstruction struct {
	base
	Kind   ConvertKind
	Value_ Value
	SrcTy  Type_
	DstTy  Type_
	Result Value
}

func (i *ConvertInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *ConvertInstruction) GetOperands() []Value      { return []Value{i.Value_} }
func (i *ConvertInstruction) SetOperands(v []Value)     { i.Value_ = v[0] }
func (i *ConvertInstruction) String() string {
	return fmt.Sprintf("%s = convert %s -> %s, %s", i.Result, i.SrcTy, i.DstTy, i.Value_)
}

// CallingConvention tags the ABI used at a call site / function
// definition (C5/C14 boundary).
type CallingConvention int

const (
	CConvC CallingConvention = iota
	CConvFast
)

// CallArg pairs an argument value with its static type at the call site.
type CallArg struct {
	Value Value
	Ty    Type_
}

// CallInstruction invokes a callee with typed arguments; Dest is nil for
// void calls.
type CallInstruction struct {
	base
	Callee Value
	Args   []CallArg
	Conv   CallingConvention
	Dest   *Value
	// Pure marks callees statically known to have no observable effect;
	// DCE (C11) treats calls to unknown or non-pure callees as live.
	Pure bool
}

func (i *CallInstruction) GetResult() (Value, bool) {
	if i.Dest == nil {
		return Value{}, false
	}
	return *i.Dest, true
}
func (i *CallInstruction) GetOperands() []Value {
	vs := make([]Value, 0, len(i.Args)+1)
	vs = append(vs, i.Callee)
	for _, a := range i.Args {
		vs = append(vs, a.Value)
	}
	return vs
}
func (i *CallInstruction) SetOperands(v []Value) {
	i.Callee = v[0]
	for k := range i.Args {
		i.Args[k].Value = v[k+1]
	}
}
func (i *CallInstruction) String() string {
	s := ""
	if i.Dest != nil {
		s = i.Dest.String() + " = "
	}
	s += fmt.Sprintf("call %s(", i.Callee)
	for k, a := range i.Args {
		if k > 0 {
			s += ", "
		}
		s += a.Value.String()
	}
	return s + ")"
}

// LandingPadInstruction marks an exception landing pad block's catch
// value.
type LandingPadInstruction struct {
	base
	Result Value
}

func (i *LandingPadInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *LandingPadInstruction) GetOperands() []Value      { return nil }
func (i *LandingPadInstruction) SetOperands([]Value)       {}
func (i *LandingPadInstruction) String() string            { return fmt.Sprintf("%s = landingpad", i.Result) }

// VAArgInstruction reads the next variadic argument from a va_list
// pointer operand.
type VAArgInstruction struct {
	base
	VAList Value
	Result Value
}

func (i *VAArgInstruction) GetResult() (Value, bool) { return i.Result, true }
func (i *VAArgInstruction) GetOperands() []Value      { return []Value{i.VAList} }
func (i *VAArgInstruction) SetOperands(v []Value)     { i.VAList = v[0] }
func (i *VAArgInstruction) String() string {
	return fmt.Sprintf("%s = vaarg %s, %s", i.Result, i.VAList, i.Result.Ty)
}
