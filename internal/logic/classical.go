// Package logic provides the rule sets the tableau engine runs with:
// classical propositional logic, the basic modal logic K and the normal
// modal systems obtained by adding accessibility axioms to K.
package logic

import (
	"fmt"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/tableau"
)

// Classical is propositional logic. Nodes are plain formulas.
type Classical struct{}

var _ tableau.Logic[formula.Expr] = Classical{}

func (Classical) MakePremiseNode(expr formula.Expr) formula.Expr {
	return expr
}

func (Classical) MakeConclusionNode(expr formula.Expr) formula.Expr {
	return formula.Negate(expr)
}

func (Classical) Infer(node formula.Expr, _ tableau.Branch[formula.Expr]) tableau.Rule[formula.Expr] {
	rule, ok := decompose(node)
	if !ok {
		panic(fmt.Sprintf("logic: modal formula %s given to classical logic", node))
	}
	return rule
}

func (Classical) HasContradiction(branch tableau.Branch[formula.Expr]) bool {
	name, value, ok := formula.Literal(branch.Leaf())
	if !ok {
		return false
	}
	return tableau.Any(branch, func(e formula.Expr) bool {
		other, otherValue, ok := formula.Literal(e)
		return ok && other == name && otherValue != value
	})
}

func (Classical) Priority(node formula.Expr) int {
	return classicalPriority(node)
}

// decompose applies the propositional rules. It returns false for formulas
// whose main operator is modal, or the negation of one.
func decompose(e formula.Expr) (tableau.Rule[formula.Expr], bool) {
	neg := formula.Negate
	switch x := e.(type) {
	case formula.Atom:
		return tableau.None[formula.Expr](), true

	case formula.Not:
		switch y := x.X.(type) {
		case formula.Atom:
			return tableau.None[formula.Expr](), true
		case formula.Not:
			return tableau.Single(y.X), true
		case formula.Binary:
			p, q := y.Left, y.Right
			switch y.Op {
			case formula.OpAnd:
				return tableau.Split(neg(p), neg(q)), true
			case formula.OpOr:
				return tableau.Chain(neg(p), neg(q)), true
			case formula.OpImplies:
				return tableau.Chain(p, neg(q)), true
			case formula.OpEquiv:
				return tableau.SplitAndChain([2]formula.Expr{neg(p), q}, [2]formula.Expr{p, neg(q)}), true
			}
		case formula.Modal:
			return tableau.Rule[formula.Expr]{}, false
		}

	case formula.Binary:
		p, q := x.Left, x.Right
		switch x.Op {
		case formula.OpAnd:
			return tableau.Chain(p, q), true
		case formula.OpOr:
			return tableau.Split(p, q), true
		case formula.OpImplies:
			return tableau.Split(neg(p), q), true
		case formula.OpEquiv:
			return tableau.SplitAndChain([2]formula.Expr{p, q}, [2]formula.Expr{neg(p), neg(q)}), true
		}

	case formula.Modal:
		return tableau.Rule[formula.Expr]{}, false
	}
	panic(fmt.Sprintf("logic: unknown expression %T", e))
}

// classicalPriority favors rules that do not branch.
func classicalPriority(e formula.Expr) int {
	switch x := e.(type) {
	case formula.Atom:
		return 10
	case formula.Not:
		switch y := x.X.(type) {
		case formula.Atom:
			return 10
		case formula.Not:
			return 9
		case formula.Binary:
			switch y.Op {
			case formula.OpAnd:
				return 7
			case formula.OpOr, formula.OpImplies:
				return 8
			case formula.OpEquiv:
				return 6
			}
		}
	case formula.Binary:
		switch x.Op {
		case formula.OpAnd:
			return 8
		case formula.OpOr, formula.OpImplies:
			return 7
		case formula.OpEquiv:
			return 6
		}
	}
	return tableau.DefaultPriority
}
