package ir

import "fmt"

// Terminator is the closed C3 union over block terminators. A block has
// exactly one terminator at all times; Unreachable is the default that
// leaves a block structurally incomplete until replaced (spec.md §3).
type Terminator interface {
	GetOperands() []Value
	SetOperands([]Value)
	TargetLabels() []string
	SetTargetLabels([]string)
	String() string
	GetEffects() []Effect
	GetDebug() *DebugInfo
	SetDebug(*DebugInfo)
	GetScope() *ScopeID
}

type termBase struct {
	Debug  *DebugInfo
	Scope_ *ScopeID
}

func (t *termBase) GetDebug() *DebugInfo  { return t.Debug }
func (t *termBase) SetDebug(d *DebugInfo) { t.Debug = d }
func (t *termBase) GetScope() *ScopeID    { return t.Scope_ }

// ReturnTerminator returns an optional value from the function.
type ReturnTerminator struct {
	termBase
	Value *Value
	Ty    Type_
}

func (t *ReturnTerminator) GetOperands() []Value {
	if t.Value == nil {
		return nil
	}
	return []Value{*t.Value}
}
func (t *ReturnTerminator) SetOperands(v []Value) {
	if len(v) > 0 {
		t.Value = &v[0]
	}
}
func (t *ReturnTerminator) TargetLabels() []string     { return nil }
func (t *ReturnTerminator) SetTargetLabels([]string) {}
func (t *ReturnTerminator) String() string {
	if t.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", *t.Value)
}

// BranchTerminator unconditionally transfers control to Label.
type BranchTerminator struct {
	termBase
	Label string
}

func (t *BranchTerminator) GetOperands() []Value        { return nil }
func (t *BranchTerminator) SetOperands([]Value)          {}
func (t *BranchTerminator) TargetLabels() []string       { return []string{t.Label} }
func (t *BranchTerminator) SetTargetLabels(ls []string)  { t.Label = ls[0] }
func (t *BranchTerminator) String() string               { return fmt.Sprintf("branch %s", t.Label) }

// ConditionalBranchTerminator transfers control to TrueLabel or
// FalseLabel based on Cond.
type ConditionalBranchTerminator struct {
	termBase
	Cond       Value
	TrueLabel  string
	FalseLabel string
}

func (t *ConditionalBranchTerminator) GetOperands() []Value { return []Value{t.Cond} }
func (t *ConditionalBranchTerminator) SetOperands(v []Value) { t.Cond = v[0] }
func (t *ConditionalBranchTerminator) TargetLabels() []string {
	return []string{t.TrueLabel, t.FalseLabel}
}
func (t *ConditionalBranchTerminator) SetTargetLabels(ls []string) {
	t.TrueLabel, t.FalseLabel = ls[0], ls[1]
}
func (t *ConditionalBranchTerminator) String() string {
	return fmt.Sprintf("condbr %s, %s, %s", t.Cond, t.TrueLabel, t.FalseLabel)
}

// SwitchCase pairs a constant selector value with its target label.
type SwitchCase struct {
	Const Value
	Label string
}

// SwitchTerminator dispatches on Value to the matching case label, or
// Default if none match.
type SwitchTerminator struct {
	termBase
	Value   Value
	Ty      Type_
	Cases   []SwitchCase
	Default string
}

func (t *SwitchTerminator) GetOperands() []Value {
	vs := []Value{t.Value}
	for _, c := range t.Cases {
		vs = append(vs, c.Const)
	}
	return vs
}
func (t *SwitchTerminator) SetOperands(v []Value) {
	t.Value = v[0]
	for k := range t.Cases {
		t.Cases[k].Const = v[k+1]
	}
}
func (t *SwitchTerminator) TargetLabels() []string {
	ls := make([]string, 0, len(t.Cases)+1)
	for _, c := range t.Cases {
		ls = append(ls, c.Label)
	}
	return append(ls, t.Default)
}
func (t *SwitchTerminator) SetTargetLabels(ls []string) {
	for k := range t.Cases {
		t.Cases[k].Label = ls[k]
	}
	t.Default = ls[len(ls)-1]
}
func (t *SwitchTerminator) String() string {
	s := fmt.Sprintf("switch %s [", t.Value)
	for k, c := range t.Cases {
		if k > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s:%s", c.Const, c.Label)
	}
	return s + fmt.Sprintf("] default:%s", t.Default)
}

// IndirectBranchTerminator transfers control to an address computed at
// runtime, conservatively to any of PossibleLabels.
type IndirectBranchTerminator struct {
	termBase
	Addr            Value
	PossibleLabels  []string
}

func (t *IndirectBranchTerminator) GetOperands() []Value       { return []Value{t.Addr} }
func (t *IndirectBranchTerminator) SetOperands(v []Value)       { t.Addr = v[0] }
func (t *IndirectBranchTerminator) TargetLabels() []string      { return t.PossibleLabels }
func (t *IndirectBranchTerminator) SetTargetLabels(ls []string) { t.PossibleLabels = ls }
func (t *IndirectBranchTerminator) String() string {
	return fmt.Sprintf("indirectbr %s %v", t.Addr, t.PossibleLabels)
}

// InvokeTerminator calls a function that may unwind, splitting control
// to NormalLabel on return or UnwindLabel on exception.
type InvokeTerminator struct {
	termBase
	Callee      Value
	Args        []CallArg
	NormalLabel string
	UnwindLabel string
	Dest        *Value
}

func (t *InvokeTerminator) GetOperands() []Value {
	vs := []Value{t.Callee}
	for _, a := range t.Args {
		vs = append(vs, a.Value)
	}
	return vs
}
func (t *InvokeTerminator) SetOperands(v []Value) {
	t.Callee = v[0]
	for k := range t.Args {
		t.Args[k].Value = v[k+1]
	}
}
func (t *InvokeTerminator) TargetLabels() []string { return []string{t.NormalLabel, t.UnwindLabel} }
func (t *InvokeTerminator) SetTargetLabels(ls []string) {
	t.NormalLabel, t.UnwindLabel = ls[0], ls[1]
}
func (t *InvokeTerminator) String() string {
	return fmt.Sprintf("invoke %s to %s unwind %s", t.Callee, t.NormalLabel, t.UnwindLabel)
}

// UnreachableTerminator marks a block whose execution can never be
// reached; it is the default terminator of a freshly created block.
type UnreachableTerminator struct {
	termBase
}

func (t *UnreachableTerminator) GetOperands() []Value    { return nil }
func (t *UnreachableTerminator) SetOperands([]Value)      {}
func (t *UnreachableTerminator) TargetLabels() []string   { return nil }
func (t *UnreachableTerminator) SetTargetLabels([]string) {}
func (t *UnreachableTerminator) String() string            { return "unreachable" }
