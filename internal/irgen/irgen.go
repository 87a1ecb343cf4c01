// Package irgen lowers an internal/ast.Program into an internal/ir.Module
// (C7, spec.md §4.5). It is the sole bridge between the front end
// (internal/lexer + internal/parser) and the optimizer/codegen
// pipeline; it never inspects tokens and never emits machine code.
package irgen

import (
	"fmt"

	"vnc/internal/ast"
	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/scope"
	"vnc/internal/types"
)

// Generator holds the mutable state of one lowering pass: the module
// under construction, the function currently being built, the active
// scope tree, the diagnostic sink, and the stack of enclosing loops
// (for break/continue target resolution).
type Generator struct {
	filename string
	mod      *ir.Module
	fn       *ir.Function
	sc       *scope.Manager
	sink     *diag.Sink
	cur      string
	blockSeq int
	loops    []loopCtx
	sigs     map[string]types.Type
}

type loopCtx struct {
	continueLabel string
	breakLabel    string
}

// Lower builds a Module named moduleName for platform from prog,
// collecting diagnostics into sink (never panicking on a malformed
// program; spec.md §7's best-effort policy).
func Lower(filename string, prog *ast.Program, moduleName string, platform ir.Platform, sink *diag.Sink) *ir.Module {
	g := &Generator{filename: filename, mod: ir.NewModule(moduleName, platform), sc: scope.NewManager(), sink: sink}

	g.sigs = make(map[string]types.Type)
	for _, fd := range prog.Functions {
		retTy := types.Type(types.TVoid)
		if fd.Ret != nil {
			retTy = g.resolveType(fd.Ret)
		}
		g.sigs[fd.Name.Value] = retTy
	}
	if prog.Main != nil {
		g.sigs["main"] = types.TVoid
	}

	for _, fd := range prog.Functions {
		fn := g.lowerFunctionDecl(fd)
		if err := g.mod.AddFunction(fn); err != nil {
			g.sink.Add(diag.New(diag.ErrUnsupportedStatement, g.pos(fd.Pos), err.Error()))
		}
	}
	if prog.Main != nil {
		fn := g.lowerMain(prog.Main)
		if err := g.mod.AddFunction(fn); err != nil {
			g.sink.Add(diag.New(diag.ErrUnsupportedStatement, g.pos(prog.Main.Pos), err.Error()))
		}
	}
	return g.mod
}

func (g *Generator) pos(p ast.Position) diag.Position {
	return diag.Position{Filename: p.Filename, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func (g *Generator) debugSpan(start, end ast.Position) *ir.DebugInfo {
	return &ir.DebugInfo{
		File: start.Filename, StartLine: start.Line, StartCol: start.Column, StartOffset: start.Offset,
		EndLine: end.Line, EndCol: end.Column, EndOffset: end.Offset,
	}
}

func (g *Generator) freshLabel(prefix string) string {
	g.blockSeq++
	return fmt.Sprintf("%s.%d", prefix, g.blockSeq)
}

// newBlock creates and registers a block with the current function but
// does not make it current.
func (g *Generator) newBlock(label string) {
	if err := g.fn.AddBlock(ir.NewBasicBlock(label)); err != nil {
		g.sink.Add(diag.New(diag.ErrUnsupportedStatement, diag.Position{}, err.Error()))
	}
}

func (g *Generator) setCur(label string) { g.cur = label }

func (g *Generator) curTerminated() bool {
	blk, ok := g.fn.Block(g.cur)
	return ok && blk.IsTerminated()
}

func (g *Generator) emit(inst ir.Instruction) {
	if g.curTerminated() {
		return
	}
	_ = g.fn.AddInstruction(g.cur, inst)
}

// terminate sets the current block's terminator (skipped if already
// terminated, which happens for unreachable tail statements after a
// return/break/continue) and wires the CFG edges for its targets.
func (g *Generator) terminate(t ir.Terminator) {
	if g.curTerminated() {
		return
	}
	_ = g.fn.SetTerminator(g.cur, t)
	for _, target := range t.TargetLabels() {
		_ = g.fn.Connect(g.cur, target)
	}
}

func (g *Generator) freshTemp(ty types.Type) ir.Value {
	return ir.Temporary(g.fn.FreshTemp(), ty)
}

func (g *Generator) lowerFunctionDecl(fd *ast.FunctionDecl) *ir.Function {
	retTy := types.TVoid
	if fd.Ret != nil {
		retTy = g.resolveType(fd.Ret)
	}
	params := make([]ir.Parameter, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = ir.Parameter{Name: p.Name.Value, Ty: g.resolveType(p.Type)}
	}

	fn := ir.NewFunction(fd.Name.Value, params, retTy)
	g.fn = fn

	sc := g.sc.EnterScope()
	fn.ScopeID = sc
	for i, p := range params {
		g.sc.AddSymbol(p.Name, ir.Argument(i, p.Ty), false)
	}

	entry := g.freshLabel("entry")
	g.newBlock(entry)
	g.setCur(entry)
	g.fn.CFG.Entry = entry

	g.lowerBlockStmts(fd.Body.Stmts)
	g.finishFunctionBody(retTy)

	g.sc.ExitScope()
	return fn
}

func (g *Generator) lowerMain(md *ast.MainFunctionDecl) *ir.Function {
	fn := ir.NewFunction("main", nil, types.TVoid)
	g.fn = fn

	sc := g.sc.EnterScope()
	fn.ScopeID = sc

	entry := g.freshLabel("entry")
	g.newBlock(entry)
	g.setCur(entry)
	g.fn.CFG.Entry = entry

	g.lowerBlockStmts(md.Body.Stmts)
	g.finishFunctionBody(types.TVoid)

	g.sc.ExitScope()
	return fn
}

// finishFunctionBody closes off a function whose body fell through
// without an explicit return. A void function gets an implicit `return`;
// a non-void function is left with the block's Unreachable placeholder,
// which C12 flags as a malformed terminator (falling off the end of a
// value-returning function is a programmer error, not a compiler one).
func (g *Generator) finishFunctionBody(retTy types.Type) {
	if g.curTerminated() {
		return
	}
	if retTy == types.TVoid {
		g.terminate(&ir.ReturnTerminator{Ty: retTy})
	}
}
