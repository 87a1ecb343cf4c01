// Package ir implements the compiler's intermediate representation: the
// value and constant model (C2), the instruction and terminator model
// (C3), the CFG (C4), and Function/Module (C5).
package ir

import (
	"fmt"

	"vnc/internal/types"
)

// ValueID is the unique identifier of an SSA value within its owning
// function. Before SSA construction, uniqueness only holds per
// definition site (spec.md §3, Value (C2) invariant); after SSA
// construction every id is globally unique within the function.
type ValueID uint64

// DebugInfo is the source span carried by values, instructions and
// terminators. It is preserved verbatim by every pass that rewrites or
// creates instructions (spec.md §9, "Debug info is data, not decoration").
type DebugInfo struct {
	File        string
	StartLine   int
	StartCol    int
	StartOffset int
	EndLine     int
	EndCol      int
	EndOffset   int
}

// ScopeID identifies the lexical scope (C6) a value or instruction was
// produced in. Zero is the root scope.
type ScopeID uint64

// ValueKind tags the Value union (C2).
type ValueKind int

const (
	ValLiteral ValueKind = iota
	ValConstantAggregate
	ValTemporary
	ValLocal
	ValGlobal
	ValArgument
	ValUndef
)

// Scalar is a literal scalar payload carried by a Literal value.
type Scalar struct {
	IntVal   int64
	UintVal  uint64
	FloatVal float64
	BoolVal  bool
	CharVal  rune
	StrVal   string
	IsFloat  bool
	IsUint   bool
	IsBool   bool
	IsChar   bool
	IsStr    bool
}

// IntScalar builds a signed-integer Scalar.
func IntScalar(v int64) Scalar { return Scalar{IntVal: v} }

// UintScalar builds an unsigned-integer Scalar.
func UintScalar(v uint64) Scalar { return Scalar{UintVal: v, IsUint: true} }

// FloatScalar builds a floating-point Scalar.
func FloatScalar(v float64) Scalar { return Scalar{FloatVal: v, IsFloat: true} }

// BoolScalar builds a boolean Scalar.
func BoolScalar(v bool) Scalar { return Scalar{BoolVal: v, IsBool: true} }

// Aggregate is a constant aggregate payload (array/struct literal folded
// to a compile-time constant).
type Aggregate struct {
	Elements []Value
}

// Value is the tagged C2 value union. Every concrete value carries its
// type, optional debug info and optional scope id.
type Value struct {
	Kind  ValueKind
	Ty    types.Type
	Debug *DebugInfo
	Scope *ScopeID

	// ValLiteral
	Lit Scalar
	// ValConstantAggregate
	Agg Aggregate
	// ValTemporary
	ID ValueID
	// ValLocal / ValGlobal
	Name string
	// ValArgument
	Index int

	// DefName is the optional source-level variable name a temporary was
	// produced for; the SSA builder (C9) uses this to recognize
	// phi-candidate variables and to name phi results (spec.md §4.7).
	DefName string
}

func (v Value) String() string {
	switch v.Kind {
	case ValLiteral:
		switch {
		case v.Lit.IsFloat:
			return fmt.Sprintf("%g", v.Lit.FloatVal)
		case v.Lit.IsBool:
			return fmt.Sprintf("%t", v.Lit.BoolVal)
		case v.Lit.IsChar:
			return fmt.Sprintf("%q", v.Lit.CharVal)
		case v.Lit.IsStr:
			return fmt.Sprintf("%q", v.Lit.StrVal)
		case v.Lit.IsUint:
			return fmt.Sprintf("%d", v.Lit.UintVal)
		default:
			return fmt.Sprintf("%d", v.Lit.IntVal)
		}
	case ValConstantAggregate:
		return "<aggregate>"
	case ValTemporary:
		return fmt.Sprintf("%%t%d", v.ID)
	case ValLocal:
		return fmt.Sprintf("%%%s", v.Name)
	case ValGlobal:
		return fmt.Sprintf("@%s", v.Name)
	case ValArgument:
		return fmt.Sprintf("%%arg%d", v.Index)
	case ValUndef:
		return "undef"
	default:
		return "<?value>"
	}
}

// Literal constructs a ValLiteral value.
func Literal(s Scalar, ty types.Type) Value { return Value{Kind: ValLiteral, Lit: s, Ty: ty} }

// ConstantAggregate constructs a ValConstantAggregate value.
func ConstantAggregate(a Aggregate, ty types.Type) Value {
	return Value{Kind: ValConstantAggregate, Agg: a, Ty: ty}
}

// Temporary constructs a ValTemporary value.
func Temporary(id ValueID, ty types.Type) Value { return Value{Kind: ValTemporary, ID: id, Ty: ty} }

// Local constructs a ValLocal value.
func Local(name string, ty types.Type) Value { return Value{Kind: ValLocal, Name: name, Ty: ty} }

// Global constructs a ValGlobal value.
func Global(name string, ty types.Type) Value { return Value{Kind: ValGlobal, Name: name, Ty: ty} }

// Argument constructs a ValArgument value.
func Argument(index int, ty types.Type) Value {
	return Value{Kind: ValArgument, Index: index, Ty: ty}
}

// Undef constructs a ValUndef value.
func Undef(ty types.Type) Value { return Value{Kind: ValUndef, Ty: ty} }

// Use records one operand use of a Value by an instruction or terminator.
type Use struct {
	UserInst  InstructionID
	UserTerm  bool
	OperandNo int
}

// InstructionID identifies an instruction within its owning block.
type InstructionID uint64
