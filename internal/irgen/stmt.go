package irgen

import (
	"vnc/internal/ast"
	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/types"
)

// lowerBlockStmts lowers each statement of a block in its own scope,
// stopping early once the current block is terminated (anything after
// a return/break/continue in the same block is unreachable and is never
// lowered, so no IR is emitted for it).
func (g *Generator) lowerBlockStmts(stmts []ast.Stmt) {
	g.sc.EnterScope()
	defer g.sc.ExitScope()

	for _, st := range stmts {
		if g.curTerminated() {
			return
		}
		g.lowerStmt(st)
	}
}

func (g *Generator) lowerStmt(st ast.Stmt) {
	switch x := st.(type) {
	case *ast.VarDeclStmt:
		g.lowerVarDecl(x)
	case *ast.ExprStmt:
		g.lowerExpr(x.X)
	case *ast.ReturnStmt:
		g.lowerReturn(x)
	case *ast.IfStmt:
		g.lowerIf(x)
	case *ast.WhileStmt:
		g.lowerWhile(x)
	case *ast.ForStmt:
		g.lowerFor(x)
	case *ast.BlockStmt:
		g.lowerBlockStmts(x.Stmts)
	case *ast.BreakStmt:
		g.lowerBreak(x)
	case *ast.ContinueStmt:
		g.lowerContinue(x)
	default:
		g.diagErr(diag.ErrUnsupportedStatement, st.NodePos(), "unsupported statement form")
	}
}

func (g *Generator) lowerVarDecl(st *ast.VarDeclStmt) {
	if st.Mutable {
		var ty types.Type
		if st.Type != nil {
			ty = g.resolveType(st.Type)
		} else if st.Init != nil {
			ty = g.peekType(st.Init)
		} else {
			ty = types.TI32
		}
		slot := g.freshTemp(types.NewPointer(ty))
		slot.DefName = st.Name.Value
		g.emit(&ir.AllocaInstruction{ElemTy: ty, Result: slot})
		g.sc.AddSymbol(st.Name.Value, slot, true)
		if st.Init != nil {
			val := g.lowerExpr(st.Init)
			g.emit(&ir.StoreInstruction{Value_: val, Ptr: slot})
		}
		return
	}

	if st.Init == nil {
		g.diagErr(diag.ErrConstantMustInit, st.Pos, "immutable declaration '"+st.Name.Value+"' has no initializer")
		ty := types.TI32
		if st.Type != nil {
			ty = g.resolveType(st.Type)
		}
		g.sc.AddSymbol(st.Name.Value, ir.Undef(ty), false)
		return
	}
	val := g.lowerExpr(st.Init)
	g.sc.AddSymbol(st.Name.Value, val, false)
}

// peekType lowers init purely to discover its static type when no
// explicit annotation was written, without re-lowering it afterward.
func (g *Generator) peekType(init ast.Expr) types.Type {
	switch x := init.(type) {
	case *ast.LiteralExpr:
		return g.lowerLiteral(x).Ty
	default:
		return types.TI32
	}
}

func (g *Generator) lowerReturn(st *ast.ReturnStmt) {
	if st.Value == nil {
		g.terminate(&ir.ReturnTerminator{})
		return
	}
	val := g.lowerExpr(st.Value)
	g.terminate(&ir.ReturnTerminator{Value: &val, Ty: val.Ty})
}

func (g *Generator) lowerIf(st *ast.IfStmt) {
	cond := g.lowerExpr(st.Cond)

	thenLabel := g.freshLabel("if.then")
	mergeLabel := g.freshLabel("if.end")
	elseLabel := mergeLabel
	hasElse := st.Else != nil
	if hasElse {
		elseLabel = g.freshLabel("if.else")
	}

	g.newBlock(thenLabel)
	if hasElse {
		g.newBlock(elseLabel)
	}
	g.newBlock(mergeLabel)

	g.terminate(&ir.ConditionalBranchTerminator{Cond: cond, TrueLabel: thenLabel, FalseLabel: elseLabel})

	g.setCur(thenLabel)
	g.lowerBlockStmts(st.Then.Stmts)
	g.terminate(&ir.BranchTerminator{Label: mergeLabel})

	if hasElse {
		g.setCur(elseLabel)
		g.lowerStmt(st.Else)
		g.terminate(&ir.BranchTerminator{Label: mergeLabel})
	}

	g.setCur(mergeLabel)
}

func (g *Generator) lowerWhile(st *ast.WhileStmt) {
	condLabel := g.freshLabel("while.cond")
	bodyLabel := g.freshLabel("while.body")
	endLabel := g.freshLabel("while.end")

	g.newBlock(condLabel)
	g.newBlock(bodyLabel)
	g.newBlock(endLabel)

	g.terminate(&ir.BranchTerminator{Label: condLabel})

	g.setCur(condLabel)
	cond := g.lowerExpr(st.Cond)
	g.terminate(&ir.ConditionalBranchTerminator{Cond: cond, TrueLabel: bodyLabel, FalseLabel: endLabel})

	g.loops = append(g.loops, loopCtx{continueLabel: condLabel, breakLabel: endLabel})
	g.setCur(bodyLabel)
	g.lowerBlockStmts(st.Body.Stmts)
	g.terminate(&ir.BranchTerminator{Label: condLabel})
	g.loops = g.loops[:len(g.loops)-1]

	g.setCur(endLabel)
}

func (g *Generator) lowerFor(st *ast.ForStmt) {
	g.sc.EnterScope()
	defer g.sc.ExitScope()

	if st.Init != nil {
		g.lowerStmt(st.Init)
	}

	condLabel := g.freshLabel("for.cond")
	bodyLabel := g.freshLabel("for.body")
	postLabel := g.freshLabel("for.post")
	endLabel := g.freshLabel("for.end")

	g.newBlock(condLabel)
	g.newBlock(bodyLabel)
	g.newBlock(postLabel)
	g.newBlock(endLabel)

	g.terminate(&ir.BranchTerminator{Label: condLabel})

	g.setCur(condLabel)
	if st.Cond != nil {
		cond := g.lowerExpr(st.Cond)
		g.terminate(&ir.ConditionalBranchTerminator{Cond: cond, TrueLabel: bodyLabel, FalseLabel: endLabel})
	} else {
		g.terminate(&ir.BranchTerminator{Label: bodyLabel})
	}

	g.loops = append(g.loops, loopCtx{continueLabel: postLabel, breakLabel: endLabel})
	g.setCur(bodyLabel)
	g.lowerBlockStmts(st.Body.Stmts)
	g.terminate(&ir.BranchTerminator{Label: postLabel})
	g.loops = g.loops[:len(g.loops)-1]

	g.setCur(postLabel)
	if st.Post != nil {
		g.lowerExpr(st.Post)
	}
	g.terminate(&ir.BranchTerminator{Label: condLabel})

	g.setCur(endLabel)
}

func (g *Generator) lowerBreak(st *ast.BreakStmt) {
	if len(g.loops) == 0 {
		g.diagErr(diag.ErrBreakOutsideLoop, st.Pos, "'break' outside any enclosing loop")
		return
	}
	target := g.loops[len(g.loops)-1].breakLabel
	g.terminate(&ir.BranchTerminator{Label: target})
}

func (g *Generator) lowerContinue(st *ast.ContinueStmt) {
	if len(g.loops) == 0 {
		g.diagErr(diag.ErrContinueOutsideLoop, st.Pos, "'continue' outside any enclosing loop")
		return
	}
	target := g.loops[len(g.loops)-1].continueLabel
	g.terminate(&ir.BranchTerminator{Label: target})
}
