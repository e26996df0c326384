package formula

import "fmt"

// Valuation assigns truth values to atoms. Missing atoms are false.
type Valuation map[string]bool

// Eval evaluates a classical formula under v. It panics on modal operators,
// which have no truth-functional meaning.
func Eval(e Expr, v Valuation) bool {
	switch x := e.(type) {
	case Atom:
		return v[x.Name]
	case Not:
		return !Eval(x.X, v)
	case Binary:
		l, r := Eval(x.Left, v), Eval(x.Right, v)
		switch x.Op {
		case OpAnd:
			return l && r
		case OpOr:
			return l || r
		case OpImplies:
			return !l || r
		case OpEquiv:
			return l == r
		}
	case Modal:
		panic(fmt.Sprintf("formula: cannot evaluate modal formula %s truth-functionally", e))
	}
	panic(fmt.Sprintf("formula: unknown expression %T", e))
}

// Valuations enumerates all 2^n assignments of atoms.
func Valuations(atoms []string) []Valuation {
	out := make([]Valuation, 0, 1<<len(atoms))
	for mask := 0; mask < 1<<len(atoms); mask++ {
		v := make(Valuation, len(atoms))
		for i, name := range atoms {
			v[name] = mask&(1<<i) != 0
		}
		out = append(out, v)
	}
	return out
}

// Valid reports whether the classical argument premises ⊢ conclusion holds
// in every valuation. It is a brute-force reference for small formulas.
func Valid(premises []Expr, conclusion Expr) bool {
	atoms := Atoms(append(append([]Expr{}, premises...), conclusion)...)
	for _, v := range Valuations(atoms) {
		allTrue := true
		for _, p := range premises {
			if !Eval(p, v) {
				allTrue = false
				break
			}
		}
		if allTrue && !Eval(conclusion, v) {
			return false
		}
	}
	return true
}
