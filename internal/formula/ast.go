package formula

// Expr is a propositional or modal formula.
//
// Every implementation is a comparable value type, so two formulas can be
// compared with ==.
type Expr interface {
	isExpr()
	String() string
}

// Atom is a propositional constant such as p or A.
type Atom struct {
	Name string
}

func (Atom) isExpr() {}
func (e Atom) String() string {
	return e.Name
}

// Not is the negation of X.
type Not struct {
	X Expr
}

func (Not) isExpr() {}
func (e Not) String() string {
	return SymNot.Unicode + e.X.String()
}

// BinaryOp enumerates the binary connectives.
type BinaryOp int

const (
	_ BinaryOp = iota
	OpAnd
	OpOr
	OpImplies
	OpEquiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return SymAnd.Unicode
	case OpOr:
		return SymOr.Unicode
	case OpImplies:
		return SymImplies.Unicode
	case OpEquiv:
		return SymEquiv.Unicode
	default:
		return "?"
	}
}

// Binary is a formula built from a binary connective.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (Binary) isExpr() {}
func (e Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// ModalOp enumerates the modal operators.
type ModalOp int

const (
	_ ModalOp = iota
	OpPossibly
	OpNecessarily
)

func (op ModalOp) String() string {
	switch op {
	case OpPossibly:
		return SymPossibly.Unicode
	case OpNecessarily:
		return SymNecessarily.Unicode
	default:
		return "?"
	}
}

// Modal is a formula prefixed by a modal operator.
type Modal struct {
	Op ModalOp
	X  Expr
}

func (Modal) isExpr() {}
func (e Modal) String() string {
	return e.Op.String() + e.X.String()
}

// Constructors

func Var(name string) Expr {
	return Atom{Name: name}
}

func Negate(x Expr) Expr {
	return Not{X: x}
}

func And(left, right Expr) Expr {
	return Binary{Op: OpAnd, Left: left, Right: right}
}

func Or(left, right Expr) Expr {
	return Binary{Op: OpOr, Left: left, Right: right}
}

func Implies(left, right Expr) Expr {
	return Binary{Op: OpImplies, Left: left, Right: right}
}

func Equiv(left, right Expr) Expr {
	return Binary{Op: OpEquiv, Left: left, Right: right}
}

func Possibly(x Expr) Expr {
	return Modal{Op: OpPossibly, X: x}
}

func Necessarily(x Expr) Expr {
	return Modal{Op: OpNecessarily, X: x}
}

// Literal reports whether e is an atom or a negated atom, returning the
// atom's name and the truth value the literal asserts.
func Literal(e Expr) (name string, value bool, ok bool) {
	switch x := e.(type) {
	case Atom:
		return x.Name, true, true
	case Not:
		if a, isAtom := x.X.(Atom); isAtom {
			return a.Name, false, true
		}
	}
	return "", false, false
}

// IsModal reports whether e contains a modal operator.
func IsModal(e Expr) bool {
	switch x := e.(type) {
	case Atom:
		return false
	case Not:
		return IsModal(x.X)
	case Binary:
		return IsModal(x.Left) || IsModal(x.Right)
	case Modal:
		return true
	default:
		return false
	}
}

// Atoms returns the distinct atom names of e in order of first occurrence.
func Atoms(exprs ...Expr) []string {
	seen := make(map[string]struct{})
	var names []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch x := e.(type) {
		case Atom:
			if _, ok := seen[x.Name]; !ok {
				seen[x.Name] = struct{}{}
				names = append(names, x.Name)
			}
		case Not:
			walk(x.X)
		case Binary:
			walk(x.Left)
			walk(x.Right)
		case Modal:
			walk(x.X)
		}
	}
	for _, e := range exprs {
		walk(e)
	}
	return names
}
