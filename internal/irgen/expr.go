package irgen

import (
	"vnc/internal/ast"
	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/types"
)

func (g *Generator) diagErr(code diag.Code, pos ast.Position, msg string) {
	g.sink.Add(diag.New(code, g.pos(pos), msg))
}

// lowerExpr lowers e as an rvalue: a VariableExpr bound to a mutable
// (alloca-backed) local is dereferenced through a Load; an immutable
// binding's Value is already the SSA value and is returned directly
// (spec.md §4.5's mutable-vs-immutable split).
func (g *Generator) lowerExpr(e ast.Expr) ir.Value {
	switch x := e.(type) {
	case *ast.LiteralExpr:
		return g.lowerLiteral(x)
	case *ast.VariableExpr:
		return g.lowerVariable(x)
	case *ast.BinaryExpr:
		return g.lowerBinary(x)
	case *ast.UnaryExpr:
		return g.lowerUnary(x)
	case *ast.AssignExpr:
		return g.lowerAssign(x)
	case *ast.CallExpr:
		return g.lowerCall(x)
	case *ast.ArrayAccessExpr:
		ptr, elemTy := g.lowerAddressOf(x)
		result := g.freshTemp(elemTy)
		g.emit(&ir.LoadInstruction{Ptr: ptr, Result: result})
		return result
	case *ast.ArrayLiteralExpr:
		return g.lowerArrayLiteral(x)
	case *ast.GroupingExpr:
		return g.lowerExpr(x.X)
	default:
		g.diagErr(diag.ErrUnsupportedExpression, e.NodePos(), "unsupported expression form")
		return ir.Undef(types.TI32)
	}
}

func (g *Generator) lowerLiteral(e *ast.LiteralExpr) ir.Value {
	switch e.Kind {
	case ast.LiteralInt:
		return ir.Literal(ir.IntScalar(e.IntVal), types.TI32)
	case ast.LiteralFloat:
		return ir.Literal(ir.FloatScalar(e.FloatVal), types.TF64)
	case ast.LiteralBool:
		return ir.Literal(ir.BoolScalar(e.BoolVal), types.TBool)
	case ast.LiteralChar:
		return ir.Literal(ir.Scalar{CharVal: e.CharVal, IsChar: true}, types.TChar)
	case ast.LiteralString:
		return ir.Literal(ir.Scalar{StrVal: e.StringVal, IsStr: true}, types.TString)
	case ast.LiteralNull:
		return ir.Literal(ir.Scalar{}, types.TNull)
	default:
		return ir.Undef(types.TI32)
	}
}

func (g *Generator) lowerVariable(e *ast.VariableExpr) ir.Value {
	sym := g.sc.Lookup(e.Name)
	if sym == nil {
		g.diagErr(diag.ErrUndefinedName, e.Pos, "undefined name: "+e.Name)
		return ir.Undef(types.TI32)
	}
	if !sym.Mutable {
		return sym.Value
	}
	elemTy := elementTypeOf(sym.Value.Ty)
	result := g.freshTemp(elemTy)
	g.emit(&ir.LoadInstruction{Ptr: sym.Value, Result: result})
	return result
}

// lowerAddressOf computes the address of a variable or array-indexed
// lvalue without requiring mutability — reading through an immutable
// binding to an array is legal, only rebinding the array itself is not.
func (g *Generator) lowerAddressOf(e ast.Expr) (ir.Value, types.Type) {
	switch x := e.(type) {
	case *ast.VariableExpr:
		sym := g.sc.Lookup(x.Name)
		if sym == nil {
			g.diagErr(diag.ErrUndefinedName, x.Pos, "undefined name: "+x.Name)
			return ir.Undef(types.TI32), types.TI32
		}
		return sym.Value, elementTypeOf(sym.Value.Ty)
	case *ast.ArrayAccessExpr:
		basePtr, baseElemTy := g.lowerAddressOf(x.Array)
		idx := g.lowerExpr(x.Index)
		elemTy := elementTypeOf(baseElemTy)
		result := g.freshTemp(types.NewPointer(elemTy))
		g.emit(&ir.GetElementPtrInstruction{
			Base: basePtr, Indices: []ir.Value{ir.Literal(ir.IntScalar(0), types.TI64), idx},
			ElemTy: baseElemTy, Result: result,
		})
		return result, elemTy
	default:
		g.diagErr(diag.ErrUnsupportedExpression, e.NodePos(), "expression is not addressable")
		return ir.Undef(types.TI32), types.TI32
	}
}

// lowerAssignTarget is lowerAddressOf plus the mutability check that
// only applies at the root of a plain `x = ...` assignment.
func (g *Generator) lowerAssignTarget(e ast.Expr) (ir.Value, types.Type) {
	if v, ok := e.(*ast.VariableExpr); ok {
		sym := g.sc.Lookup(v.Name)
		if sym == nil {
			g.diagErr(diag.ErrUndefinedName, v.Pos, "undefined name: "+v.Name)
			return ir.Undef(types.TI32), types.TI32
		}
		if !sym.Mutable {
			g.diagErr(diag.ErrUnsupportedExpression, v.Pos, "cannot assign to immutable binding: "+v.Name)
		}
		return sym.Value, elementTypeOf(sym.Value.Ty)
	}
	return g.lowerAddressOf(e)
}

func (g *Generator) lowerAssign(e *ast.AssignExpr) ir.Value {
	ptr, _ := g.lowerAssignTarget(e.Target)
	val := g.lowerExpr(e.Value)
	g.emit(&ir.StoreInstruction{Value_: val, Ptr: ptr})
	return val
}

func (g *Generator) lowerArrayLiteral(e *ast.ArrayLiteralExpr) ir.Value {
	elems := make([]ir.Value, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = g.lowerExpr(el)
	}
	elemTy := types.Type(types.TI32)
	if len(elems) > 0 {
		elemTy = elems[0].Ty
	}
	arrTy := types.NewArray(elemTy, len(elems))
	base := g.freshTemp(types.NewPointer(arrTy))
	g.emit(&ir.AllocaInstruction{ElemTy: arrTy, Result: base})

	for i, v := range elems {
		idx := ir.Literal(ir.IntScalar(int64(i)), types.TI64)
		gep := g.freshTemp(types.NewPointer(elemTy))
		g.emit(&ir.GetElementPtrInstruction{
			Base: base, Indices: []ir.Value{ir.Literal(ir.IntScalar(0), types.TI64), idx},
			ElemTy: arrTy, Result: gep,
		})
		g.emit(&ir.StoreInstruction{Value_: v, Ptr: gep})
	}
	return base
}

func (g *Generator) lowerCall(e *ast.CallExpr) ir.Value {
	args := make([]ir.CallArg, len(e.Args))
	for i, a := range e.Args {
		v := g.lowerExpr(a)
		args[i] = ir.CallArg{Value: v, Ty: v.Ty}
	}
	retTy, known := g.sigs[e.Callee]
	if !known {
		retTy = types.TVoid
	}
	paramTys := make([]types.Type, len(args))
	for i, a := range args {
		paramTys[i] = a.Ty
	}
	callee := ir.Global(e.Callee, types.NewFunction(retTy, paramTys, false))

	var dest *ir.Value
	if retTy != types.TVoid {
		d := g.freshTemp(retTy)
		dest = &d
	}
	g.emit(&ir.CallInstruction{Callee: callee, Args: args, Dest: dest})
	if dest != nil {
		return *dest
	}
	return ir.Value{Kind: ir.ValUndef, Ty: types.TVoid}
}

func (g *Generator) lowerUnary(e *ast.UnaryExpr) ir.Value {
	x := g.lowerExpr(e.X)
	switch e.Op {
	case ast.OpNegate:
		zero := ir.Literal(ir.IntScalar(0), x.Ty)
		result := g.freshTemp(x.Ty)
		g.emit(&ir.BinaryInstruction{Op: ir.OpSub, Left: zero, Right: x, Result: result})
		return result
	case ast.OpNot, ast.OpBitNot:
		negOne := ir.Literal(ir.IntScalar(-1), x.Ty)
		result := g.freshTemp(x.Ty)
		g.emit(&ir.BinaryInstruction{Op: ir.OpXor, Left: x, Right: negOne, Result: result})
		return result
	default:
		return x
	}
}

var binaryOpTable = map[ast.BinaryOp]ir.BinaryOp{
	ast.OpAdd: ir.OpAdd, ast.OpSub: ir.OpSub, ast.OpMul: ir.OpMul,
	ast.OpDiv: ir.OpDiv, ast.OpRem: ir.OpRem,
	ast.OpAnd: ir.OpAnd, ast.OpOr: ir.OpOr, ast.OpXor: ir.OpXor,
	ast.OpShl: ir.OpShl, ast.OpShr: ir.OpShr,
}

var cmpPredicateTable = map[ast.BinaryOp]ir.CmpPredicate{
	ast.OpEq: ir.CmpEQ, ast.OpNe: ir.CmpNE,
	ast.OpLt: ir.CmpLT, ast.OpLe: ir.CmpLE,
	ast.OpGt: ir.CmpGT, ast.OpGe: ir.CmpGE,
}

func isFloatType(ty types.Type) bool {
	return ty == types.TF32 || ty == types.TF64
}

func (g *Generator) lowerBinary(e *ast.BinaryExpr) ir.Value {
	switch e.Op {
	case ast.OpLogAnd:
		return g.lowerShortCircuit(e, true)
	case ast.OpLogOr:
		return g.lowerShortCircuit(e, false)
	}

	left := g.lowerExpr(e.Left)
	right := g.lowerExpr(e.Right)

	if pred, ok := cmpPredicateTable[e.Op]; ok {
		result := g.freshTemp(types.TBool)
		if isFloatType(left.Ty) {
			g.emit(&ir.FCmpInstruction{Pred: pred, Left: left, Right: right, Result: result})
		} else {
			g.emit(&ir.ICmpInstruction{Pred: pred, Left: left, Right: right, Result: result})
		}
		return result
	}

	op, ok := binaryOpTable[e.Op]
	if !ok {
		g.diagErr(diag.ErrUnsupportedExpression, e.Pos, "unsupported binary operator")
		return ir.Undef(types.TI32)
	}
	result := g.freshTemp(left.Ty)
	g.emit(&ir.BinaryInstruction{Op: op, Left: left, Right: right, Result: result})
	return result
}

// lowerShortCircuit lowers && / || through a branch and a storage slot
// rather than a hand-placed phi, so the result stays an ordinary
// alloca/load/store sequence for internal/ssa (C9) to promote later —
// the same non-SSA shape C7 uses for every other mutable local.
func (g *Generator) lowerShortCircuit(e *ast.BinaryExpr, isAnd bool) ir.Value {
	slot := g.freshTemp(types.NewPointer(types.TBool))
	slot.DefName = g.freshLabel("logic.tmp")
	g.emit(&ir.AllocaInstruction{ElemTy: types.TBool, Result: slot})

	left := g.lowerExpr(e.Left)
	g.emit(&ir.StoreInstruction{Value_: left, Ptr: slot})

	rhsLabel := g.freshLabel("logic.rhs")
	mergeLabel := g.freshLabel("logic.end")
	g.newBlock(rhsLabel)
	g.newBlock(mergeLabel)

	if isAnd {
		g.terminate(&ir.ConditionalBranchTerminator{Cond: left, TrueLabel: rhsLabel, FalseLabel: mergeLabel})
	} else {
		g.terminate(&ir.ConditionalBranchTerminator{Cond: left, TrueLabel: mergeLabel, FalseLabel: rhsLabel})
	}

	g.setCur(rhsLabel)
	right := g.lowerExpr(e.Right)
	g.emit(&ir.StoreInstruction{Value_: right, Ptr: slot})
	g.terminate(&ir.BranchTerminator{Label: mergeLabel})

	g.setCur(mergeLabel)
	result := g.freshTemp(types.TBool)
	g.emit(&ir.LoadInstruction{Ptr: slot, Result: result})
	return result
}

func elementTypeOf(ty types.Type) types.Type {
	switch t := ty.(type) {
	case *types.PointerType:
		return t.Elem
	case *types.ArrayType:
		return t.Elem
	default:
		return ty
	}
}
