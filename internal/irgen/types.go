package irgen

import (
	"vnc/internal/ast"
	"vnc/internal/types"
)

var primitiveNames = map[string]types.Type{
	"i8": types.TI8, "i16": types.TI16, "i32": types.TI32, "i64": types.TI64,
	"u8": types.TU8, "u16": types.TU16, "u32": types.TU32, "u64": types.TU64,
	"f32": types.TF32, "f64": types.TF64,
	"bool": types.TBool, "char": types.TChar, "string": types.TString,
	"void": types.TVoid,
}

// resolveType converts a surface type annotation into the C1 type
// lattice. An unrecognized base name resolves to a NamedType, deferring
// the "does this name exist" question to a later phase (spec.md §1
// Non-goals exclude semantic analysis from the core).
func (g *Generator) resolveType(te *ast.TypeExpr) types.Type {
	if te == nil {
		return types.TVoid
	}
	switch {
	case te.Pointer:
		return types.NewPointer(g.resolveType(te.Elem))
	case te.Array:
		return types.NewArray(g.resolveType(te.Elem), te.ArraySize)
	default:
		if t, ok := primitiveNames[te.Name]; ok {
			return t
		}
		return types.NewNamed(te.Name)
	}
}
