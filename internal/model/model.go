// Package model reads countermodels off open tableau branches and checks
// them against the argument they refute.
package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/logic"
)

// ErrNotCountermodel is returned when a model fails to refute an argument.
var ErrNotCountermodel = errors.New("not a countermodel")

// Valuation collects the literals among exprs. Atoms that never occur as a
// literal are left unassigned and read as false.
func Valuation(exprs []formula.Expr) formula.Valuation {
	v := make(formula.Valuation)
	for _, e := range exprs {
		if name, value, ok := formula.Literal(e); ok {
			v[name] = value
		}
	}
	return v
}

// CheckClassical confirms that v makes every premise true and the
// conclusion false.
func CheckClassical(v formula.Valuation, premises []formula.Expr, conclusion formula.Expr) error {
	return check(func(e formula.Expr) bool { return formula.Eval(e, v) }, premises, conclusion)
}

// Kripke is a finite Kripke model: worlds, the successor relation and the
// atoms true at each world.
type Kripke struct {
	Worlds []logic.World
	Succ   map[logic.World][]logic.World
	Val    map[logic.World]formula.Valuation
}

// FromBranch builds the model described by the nodes of one open branch.
func FromBranch(nodes []logic.Node) *Kripke {
	k := &Kripke{
		Succ: make(map[logic.World][]logic.World),
		Val:  make(map[logic.World]formula.Valuation),
	}
	addWorld := func(w logic.World) {
		if _, ok := k.Val[w]; !ok {
			k.Val[w] = make(formula.Valuation)
			k.Worlds = append(k.Worlds, w)
		}
	}

	for _, n := range nodes {
		if n.IsRelation() {
			addWorld(n.From)
			addWorld(n.To)
			if !slices.Contains(k.Succ[n.From], n.To) {
				k.Succ[n.From] = append(k.Succ[n.From], n.To)
			}
			continue
		}
		addWorld(n.World)
		if name, value, ok := formula.Literal(n.Expr); ok {
			k.Val[n.World][name] = value
		}
	}

	slices.Sort(k.Worlds)
	for _, succ := range k.Succ {
		slices.Sort(succ)
	}
	return k
}

// Satisfies evaluates e at world w. A world with no successors satisfies
// every necessity and no possibility.
func (k *Kripke) Satisfies(e formula.Expr, w logic.World) bool {
	switch x := e.(type) {
	case formula.Atom:
		return k.Val[w][x.Name]
	case formula.Not:
		return !k.Satisfies(x.X, w)
	case formula.Binary:
		l := k.Satisfies(x.Left, w)
		r := k.Satisfies(x.Right, w)
		switch x.Op {
		case formula.OpAnd:
			return l && r
		case formula.OpOr:
			return l || r
		case formula.OpImplies:
			return !l || r
		case formula.OpEquiv:
			return l == r
		}
	case formula.Modal:
		for _, v := range k.Succ[w] {
			sat := k.Satisfies(x.X, v)
			if x.Op == formula.OpPossibly && sat {
				return true
			}
			if x.Op == formula.OpNecessarily && !sat {
				return false
			}
		}
		return x.Op == formula.OpNecessarily
	}
	panic(fmt.Sprintf("model: unknown expression %T", e))
}

// CheckModal confirms that k refutes the argument at world 0.
func CheckModal(k *Kripke, premises []formula.Expr, conclusion formula.Expr) error {
	return check(func(e formula.Expr) bool { return k.Satisfies(e, 0) }, premises, conclusion)
}

func (k *Kripke) String() string {
	var b strings.Builder
	for _, w := range k.Worlds {
		atoms := make([]string, 0, len(k.Val[w]))
		for name, value := range k.Val[w] {
			if value {
				atoms = append(atoms, name)
			} else {
				atoms = append(atoms, formula.SymNot.Unicode+name)
			}
		}
		slices.Sort(atoms)

		succ := make([]string, len(k.Succ[w]))
		for i, v := range k.Succ[w] {
			succ[i] = fmt.Sprint(v)
		}
		fmt.Fprintf(&b, "world %d: {%s} -> [%s]\n", w, strings.Join(atoms, ", "), strings.Join(succ, ", "))
	}
	return b.String()
}

func check(holds func(formula.Expr) bool, premises []formula.Expr, conclusion formula.Expr) error {
	for _, p := range premises {
		if !holds(p) {
			return fmt.Errorf("%w: premise %s is false", ErrNotCountermodel, p)
		}
	}
	if holds(conclusion) {
		return fmt.Errorf("%w: conclusion %s is true", ErrNotCountermodel, conclusion)
	}
	return nil
}
