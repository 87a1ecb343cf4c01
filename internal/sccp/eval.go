package sccp

import (
	"vnc/internal/ir"
	"vnc/internal/types"
)

// valueLattice resolves the lattice entry of any value operand: a
// literal is trivially Constant, an SSA temporary looks up the current
// propagated entry (defaulting Bottom if the defining instruction
// hasn't been visited yet), and everything else (arguments, globals,
// loads' results once stored in the map, undef) is Top — the analysis
// has no interprocedural or memory model to do better (spec.md §4.8).
func (s *State) valueLattice(v ir.Value) Lattice {
	switch v.Kind {
	case ir.ValLiteral:
		return constant(v)
	case ir.ValTemporary:
		if l, ok := s.lattice[v.ID]; ok {
			return l
		}
		return bottom()
	default:
		return top()
	}
}

func isFloatKind(k types.Kind) bool { return k == types.F32 || k == types.F64 }
func isUnsignedKind(k types.Kind) bool {
	switch k {
	case types.U8, types.U16, types.U32, types.U64:
		return true
	default:
		return false
	}
}

func wrapSigned(v int64, ty types.Type) int64 {
	if ty == nil {
		return v
	}
	switch ty.Kind() {
	case types.I8:
		return int64(int8(v))
	case types.I16:
		return int64(int16(v))
	case types.I32:
		return int64(int32(v))
	default:
		return v
	}
}

func wrapUnsigned(v uint64, ty types.Type) uint64 {
	if ty == nil {
		return v
	}
	switch ty.Kind() {
	case types.U8:
		return uint64(uint8(v))
	case types.U16:
		return uint64(uint16(v))
	case types.U32:
		return uint64(uint32(v))
	default:
		return v
	}
}

// evalBinary folds a binary op over two Constant lattice entries,
// reporting ok=false when the op cannot be safely evaluated (e.g.
// division by zero, which is left for runtime rather than folded).
func evalBinary(op ir.BinaryOp, l, r ir.Value, resultTy types.Type) (ir.Value, bool) {
	if isFloatKind(resultTy.Kind()) {
		a, b := l.Lit.FloatVal, r.Lit.FloatVal
		var out float64
		switch op {
		case ir.OpAdd:
			out = a + b
		case ir.OpSub:
			out = a - b
		case ir.OpMul:
			out = a * b
		case ir.OpDiv:
			out = a / b // IEEE-754: division by zero yields Inf/NaN, not UB
		default:
			return ir.Value{}, false
		}
		return ir.Literal(ir.FloatScalar(out), resultTy), true
	}

	if isUnsignedKind(resultTy.Kind()) {
		a, b := asUint(l), asUint(r)
		var out uint64
		switch op {
		case ir.OpAdd:
			out = a + b
		case ir.OpSub:
			out = a - b
		case ir.OpMul:
			out = a * b
		case ir.OpDiv:
			if b == 0 {
				return ir.Value{}, false
			}
			out = a / b
		case ir.OpRem:
			if b == 0 {
				return ir.Value{}, false
			}
			out = a % b
		case ir.OpAnd:
			out = a & b
		case ir.OpOr:
			out = a | b
		case ir.OpXor:
			out = a ^ b
		case ir.OpShl:
			out = a << b
		case ir.OpShr:
			out = a >> b
		default:
			return ir.Value{}, false
		}
		return ir.Literal(ir.UintScalar(wrapUnsigned(out, resultTy)), resultTy), true
	}

	a, b := asInt(l), asInt(r)
	var out int64
	switch op {
	case ir.OpAdd:
		out = a + b
	case ir.OpSub:
		out = a - b
	case ir.OpMul:
		out = a * b
	case ir.OpDiv:
		if b == 0 {
			return ir.Value{}, false
		}
		out = a / b
	case ir.OpRem:
		if b == 0 {
			return ir.Value{}, false
		}
		out = a % b
	case ir.OpAnd:
		out = a & b
	case ir.OpOr:
		out = a | b
	case ir.OpXor:
		out = a ^ b
	case ir.OpShl:
		out = a << uint64(b)
	case ir.OpShr:
		out = a >> uint64(b)
	default:
		return ir.Value{}, false
	}
	return ir.Literal(ir.IntScalar(wrapSigned(out, resultTy)), resultTy), true
}

func evalUnary(op ir.UnaryOp, v ir.Value, resultTy types.Type) (ir.Value, bool) {
	if isFloatKind(resultTy.Kind()) {
		switch op {
		case ir.OpNeg:
			return ir.Literal(ir.FloatScalar(-v.Lit.FloatVal), resultTy), true
		default:
			return ir.Value{}, false
		}
	}
	if isUnsignedKind(resultTy.Kind()) {
		a := asUint(v)
		switch op {
		case ir.OpNeg:
			return ir.Literal(ir.UintScalar(wrapUnsigned(-a, resultTy)), resultTy), true
		case ir.OpNot:
			return ir.Literal(ir.UintScalar(wrapUnsigned(^a, resultTy)), resultTy), true
		default:
			return ir.Value{}, false
		}
	}
	a := asInt(v)
	switch op {
	case ir.OpNeg:
		return ir.Literal(ir.IntScalar(wrapSigned(-a, resultTy)), resultTy), true
	case ir.OpNot:
		return ir.Literal(ir.IntScalar(wrapSigned(^a, resultTy)), resultTy), true
	default:
		return ir.Value{}, false
	}
}

func evalCmp(pred ir.CmpPredicate, l, r ir.Value, operandTy types.Type) (ir.Value, bool) {
	var result bool
	if isFloatKind(operandTy.Kind()) {
		a, b := l.Lit.FloatVal, r.Lit.FloatVal
		result = cmpOrdered(pred, a < b, a > b, a == b)
	} else if isUnsignedKind(operandTy.Kind()) {
		a, b := asUint(l), asUint(r)
		result = cmpOrdered(pred, a < b, a > b, a == b)
	} else if operandTy.Kind() == types.Bool {
		a, b := l.Lit.BoolVal, r.Lit.BoolVal
		switch pred {
		case ir.CmpEQ:
			result = a == b
		case ir.CmpNE:
			result = a != b
		default:
			return ir.Value{}, false
		}
		return ir.Literal(ir.BoolScalar(result), types.TBool), true
	} else {
		a, b := asInt(l), asInt(r)
		result = cmpOrdered(pred, a < b, a > b, a == b)
	}
	return ir.Literal(ir.BoolScalar(result), types.TBool), true
}

func cmpOrdered(pred ir.CmpPredicate, lt, gt, eq bool) bool {
	switch pred {
	case ir.CmpEQ:
		return eq
	case ir.CmpNE:
		return !eq
	case ir.CmpLT:
		return lt
	case ir.CmpLE:
		return lt || eq
	case ir.CmpGT:
		return gt
	case ir.CmpGE:
		return gt || eq
	default:
		return false
	}
}

func asInt(v ir.Value) int64 {
	if v.Lit.IsUint {
		return int64(v.Lit.UintVal)
	}
	return v.Lit.IntVal
}

func asUint(v ir.Value) uint64 {
	if v.Lit.IsUint {
		return v.Lit.UintVal
	}
	return uint64(v.Lit.IntVal)
}
