package sccp

import "vnc/internal/ir"

// Kind tags the three-point SCCP lattice (spec.md §4.8): Bottom means
// "unreachable or not yet proven reachable", Constant carries a known
// literal, Top means "proven to vary at runtime". Bottom ⊑ Constant ⊑
// Top; meeting two distinct constants yields Top.
type Kind int

const (
	Bottom Kind = iota
	Constant
	Top
)

// Lattice is one SSA value's current lattice entry.
type Lattice struct {
	Kind Kind
	Val  ir.Value // meaningful only when Kind == Constant
}

func bottom() Lattice  { return Lattice{Kind: Bottom} }
func top() Lattice      { return Lattice{Kind: Top} }
func constant(v ir.Value) Lattice { return Lattice{Kind: Constant, Val: v} }

// meet combines a and b into the lowest entry that is at or above both
// in the Bottom ⊑ Constant ⊑ Top order above (Bottom is the identity).
func meet(a, b Lattice) Lattice {
	if a.Kind == Bottom {
		return b
	}
	if b.Kind == Bottom {
		return a
	}
	if a.Kind == Top || b.Kind == Top {
		return top()
	}
	// Both Constant: equal values stay constant, distinct values meet to Top.
	if scalarEqual(a.Val, b.Val) {
		return a
	}
	return top()
}

// higher reports whether b is strictly further up the lattice than a,
// i.e. whether assigning b to a value currently at a is a legal
// monotonic update (Bottom -> Constant -> Top, never backwards).
func higher(a, b Lattice) bool {
	return rank(b) > rank(a)
}

func rank(l Lattice) int {
	switch l.Kind {
	case Bottom:
		return 0
	case Constant:
		return 1
	default:
		return 2
	}
}

func scalarEqual(a, b ir.Value) bool {
	if a.Ty != nil && b.Ty != nil && !a.Ty.Equal(b.Ty) {
		return false
	}
	la, lb := a.Lit, b.Lit
	switch {
	case la.IsFloat || lb.IsFloat:
		return la.FloatVal == lb.FloatVal
	case la.IsBool || lb.IsBool:
		return la.BoolVal == lb.BoolVal
	case la.IsChar || lb.IsChar:
		return la.CharVal == lb.CharVal
	case la.IsStr || lb.IsStr:
		return la.StrVal == lb.StrVal
	case la.IsUint || lb.IsUint:
		return la.UintVal == lb.UintVal
	default:
		return la.IntVal == lb.IntVal
	}
}
