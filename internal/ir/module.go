package ir

import (
	"fmt"

	"vnc/internal/types"
)

// Linkage enumerates global/function linkage.
type Linkage int

const (
	LinkageExternal Linkage = iota
	LinkageInternal
)

// Global is a module-level variable: name, type, optional constant
// initializer, linkage, visibility, alignment, section and constness.
type Global struct {
	Name        string
	Ty          types.Type
	Init        *Value
	Linkage     Linkage
	Visible     bool
	Align       int
	Section     string
	Const       bool
}

// Platform tags the target operating system for data-layout/triple
// selection (spec.md §6).
type Platform int

const (
	PlatformLinux Platform = iota
	PlatformMacOS
	PlatformWindows
)

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformMacOS:
		return "macos"
	case PlatformWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// DataLayoutFor returns the (data_layout, target_triple) pair for a
// platform (spec.md §6 table).
func DataLayoutFor(p Platform) (dataLayout, targetTriple string) {
	switch p {
	case PlatformLinux:
		return "e-m:e-p270:32:32-p271:32:32-p272:64:64-i64:64-f80:128-n8:16:32:64-S128", "x86_64-unknown-linux-gnu"
	case PlatformWindows:
		return "e-m:w-p270:32:32-p271:32:32-p272:64:64-i64:64-f80:128-n8:16:32:64-S128", "x86_64-pc-windows-gnu"
	case PlatformMacOS:
		return "e-m:o-p270:32:32-p271:32:32-p272:64:64-i64:64-f80:128-n8:16:32:64-S128", "x86_64-apple-darwin"
	default:
		return "", ""
	}
}

// Module is the C5 compilation unit: ordered functions, ordered globals,
// type definitions, a symbol table, and platform descriptors. Invariant:
// global and function names are resolvable from the symbol table; data
// layout and target triple are a coherent pair.
type Module struct {
	Name         string
	Functions    []*Function
	Globals      []*Global
	TypeDefs     map[string]types.Type
	Platform     Platform
	DataLayout   string
	TargetTriple string

	funcIndex   map[string]int
	globalIndex map[string]int
}

// NewModule creates an empty module for the given platform, with a
// coherent data-layout/target-triple pair (spec.md §5 Module invariant).
func NewModule(name string, platform Platform) *Module {
	dl, tt := DataLayoutFor(platform)
	return &Module{
		Name:         name,
		TypeDefs:     make(map[string]types.Type),
		Platform:     platform,
		DataLayout:   dl,
		TargetTriple: tt,
		funcIndex:    make(map[string]int),
		globalIndex:  make(map[string]int),
	}
}

// AddFunction registers fn in the module and its symbol table.
func (m *Module) AddFunction(fn *Function) error {
	if _, exists := m.funcIndex[fn.Name]; exists {
		return fmt.Errorf("module: duplicate function %q", fn.Name)
	}
	m.funcIndex[fn.Name] = len(m.Functions)
	m.Functions = append(m.Functions, fn)
	return nil
}

// GetFunction looks up a function by name.
func (m *Module) GetFunction(name string) (*Function, bool) {
	idx, ok := m.funcIndex[name]
	if !ok {
		return nil, false
	}
	return m.Functions[idx], true
}

// AddGlobal registers g in the module and its symbol table.
func (m *Module) AddGlobal(g *Global) error {
	if _, exists := m.globalIndex[g.Name]; exists {
		return fmt.Errorf("module: duplicate global %q", g.Name)
	}
	m.globalIndex[g.Name] = len(m.Globals)
	m.Globals = append(m.Globals, g)
	return nil
}

// GetGlobal looks up a global by name.
func (m *Module) GetGlobal(name string) (*Global, bool) {
	idx, ok := m.globalIndex[name]
	if !ok {
		return nil, false
	}
	return m.Globals[idx], true
}

// AddTypeDef registers a named type definition, erroring on duplicate
// names (spec.md §4.10, Validator: "Duplicate type definition names are
// errors" — enforced eagerly here too since Module owns the table).
func (m *Module) AddTypeDef(name string, ty types.Type) error {
	if _, exists := m.TypeDefs[name]; exists {
		return fmt.Errorf("module: duplicate type definition %q", name)
	}
	m.TypeDefs[name] = ty
	return nil
}

// InstructionCount sums instructions over every function and block, in
// deterministic order (module function order, then block graph order).
func (m *Module) InstructionCount() int {
	n := 0
	for _, fn := range m.Functions {
		n += fn.InstructionCount()
	}
	return n
}

// Verify runs the module's own lightweight structural self-check: every
// function's CFG must itself verify. This is distinct from, and cheaper
// than, the full C12 validator pass.
func (m *Module) Verify() error {
	for _, fn := range m.Functions {
		if fn.External {
			continue
		}
		if fn.CFG == nil {
			return fmt.Errorf("module: function %q has no blocks", fn.Name)
		}
		if err := fn.CFG.Verify(); err != nil {
			return fmt.Errorf("module: function %q: %w", fn.Name, err)
		}
	}
	return nil
}
