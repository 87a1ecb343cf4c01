package ir

import (
	"fmt"
	"strings"
)

// Printer renders a Module to the canonical textual IR (spec.md §6,
// "Module text rendering"). This rendering is used only for debugging
// and snapshot tests; no pass depends on the textual form (spec.md §4.1).
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer.
func NewPrinter() *Printer { return &Printer{} }

// Print renders an entire Module.
func Print(m *Module) string {
	p := NewPrinter()
	p.printModule(m)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printModule(m *Module) {
	p.writeLine("module %s {", m.Name)
	p.indent++
	p.writeLine("data_layout = %q;", m.DataLayout)
	p.writeLine("target_triple = %q;", m.TargetTriple)
	for _, g := range m.Globals {
		p.printGlobal(g)
	}
	for _, fn := range m.Functions {
		p.printFunction(fn)
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printGlobal(g *Global) {
	init := ""
	if g.Init != nil {
		init = " = " + g.Init.String()
	}
	p.writeLine("global @%s : %s%s;", g.Name, g.Ty.String(), init)
}

func (p *Printer) printFunction(fn *Function) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", param.Name, param.Ty.String())
	}
	ret := "void"
	if fn.Ret != nil {
		ret = fn.Ret.String()
	}
	p.writeLine("function %s (%s) -> %s:", fn.Name, strings.Join(params, ", "), ret)
	if fn.External {
		return
	}
	p.indent++
	for _, blk := range fn.Blocks() {
		p.printBlock(blk)
	}
	p.indent--
}

func (p *Printer) printBlock(blk *BasicBlock) {
	p.writeLine("%s:", blk.Label)
	p.indent++
	for _, inst := range blk.Instructions {
		p.writeLine("%s", inst.String())
	}
	p.writeLine("%s", blk.Terminator.String())
	p.indent--
}

// PrintCFG renders a per-function summary of block relationships
// (entry point, `label -> label` successor arrows), used by tooling that
// wants the graph shape without full instruction detail.
func PrintCFG(fn *Function) string {
	var b strings.Builder
	if fn.CFG == nil {
		return ""
	}
	fmt.Fprintf(&b, "entry: %s\n", fn.CFG.Entry)
	for _, blk := range fn.Blocks() {
		for _, succ := range blk.Successors {
			fmt.Fprintf(&b, "%s -> %s\n", blk.Label, succ)
		}
	}
	return b.String()
}
