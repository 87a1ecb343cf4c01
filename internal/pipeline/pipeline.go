// Package pipeline drives one compilation unit end to end: parse,
// lower to IR (C7), promote to SSA (C9), propagate constants (C10),
// eliminate dead code (C11), and structurally validate the result
// (C12). It is the single place that sequences these passes so every
// caller (the CLI, the LSP, the REPL) observes the same order
// (spec.md §2: "AST → C7 → C9 → C10 → C11 → C12").
package pipeline

import (
	"vnc/internal/dce"
	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/irgen"
	"vnc/internal/parser"
	"vnc/internal/sccp"
	"vnc/internal/ssa"
	"vnc/internal/validate"
)

// Options configures which optional passes run. The zero value runs
// every pass with its default iteration cap.
type Options struct {
	Platform    ir.Platform
	SkipSCCP    bool
	SkipDCE     bool
	MaxSCCPIter int
	MaxDCEIter  int
}

// Result is the outcome of running the pipeline over one source file.
// Module is nil when parsing or IR generation reported a diagnostic of
// Error severity or worse (spec.md §7: "(nothing, diagnostic list) when a fatal
// error occurred upstream").
type Result struct {
	Module      *ir.Module
	SCCPStats   map[string]sccp.Stats
	DCEStats    map[string]dce.Stats
	ValidateStats validate.Stats
}

// Run compiles one source file's text through the full pipeline,
// collecting every diagnostic into sink. It never panics on malformed
// input: each pass recovers locally and continues (spec.md §7).
func Run(filename, source, moduleName string, opts Options, sink *diag.Sink) Result {
	prog := parser.ParseSource(filename, source, sink)
	if sink.HasErrors() {
		return Result{}
	}

	mod := irgen.Lower(filename, prog, moduleName, opts.Platform, sink)
	if sink.HasErrors() {
		return Result{}
	}

	res := Result{
		Module:    mod,
		SCCPStats: make(map[string]sccp.Stats),
		DCEStats:  make(map[string]dce.Stats),
	}

	for _, fn := range mod.Functions {
		if fn.External {
			continue
		}
		if err := ssa.Construct(fn); err != nil {
			sink.Add(diag.New(diag.ErrInvalidSSA, diag.Position{Filename: filename}, err.Error()))
			continue
		}
		if !opts.SkipSCCP {
			res.SCCPStats[fn.Name] = sccp.Run(fn, opts.MaxSCCPIter, sink)
		}
		if !opts.SkipDCE {
			res.DCEStats[fn.Name] = dce.Run(fn, opts.MaxDCEIter)
		}
	}

	res.ValidateStats = validate.Run(mod, sink)
	return res
}
