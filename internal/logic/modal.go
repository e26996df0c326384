package logic

import (
	"fmt"
	"slices"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/tableau"
)

// World names a possible world. The initial chain lives in world 0.
type World uint32

// NodeKind distinguishes the two kinds of modal tableau node.
type NodeKind uint8

const (
	// KindFormula is a formula asserted at a world.
	KindFormula NodeKind = iota
	// KindRelation is an accessibility edge between two worlds.
	KindRelation
)

// Node is a modal tableau node. Nodes are comparable; two nodes are equal
// when they assert the same thing.
type Node struct {
	Kind  NodeKind
	Expr  formula.Expr
	World World
	From  World
	To    World
}

// At asserts e at world w.
func At(e formula.Expr, w World) Node {
	return Node{Kind: KindFormula, Expr: e, World: w}
}

// Relation records that to is accessible from from.
func Relation(from, to World) Node {
	return Node{Kind: KindRelation, From: from, To: to}
}

func (n Node) IsRelation() bool {
	return n.Kind == KindRelation
}

func (n Node) String() string {
	if n.IsRelation() {
		return fmt.Sprintf("%dr%d", n.From, n.To)
	}
	return fmt.Sprintf("%s, %d", n.Expr, n.World)
}

// Modal is the basic modal logic K: no constraint on accessibility.
type Modal struct{}

var _ tableau.Logic[Node] = Modal{}

func (Modal) MakePremiseNode(expr formula.Expr) Node {
	return At(expr, 0)
}

func (Modal) MakeConclusionNode(expr formula.Expr) Node {
	return At(formula.Negate(expr), 0)
}

func (Modal) Infer(node Node, branch tableau.Branch[Node]) tableau.Rule[Node] {
	if node.IsRelation() {
		return tableau.Chain(necessityInstances(node, branch)...)
	}
	return inferFormula(node, branch, false)
}

func (Modal) HasContradiction(branch tableau.Branch[Node]) bool {
	return modalContradiction(branch)
}

func (Modal) Priority(node Node) int {
	return modalPriority(node)
}

// inferFormula applies the classical rules within the node's world and the
// modal rules across worlds. With loops set every fresh world also gets a
// relation to itself.
func inferFormula(node Node, branch tableau.Branch[Node], loops bool) tableau.Rule[Node] {
	w := node.World
	at := func(e formula.Expr) Node { return At(e, w) }

	switch x := node.Expr.(type) {
	case formula.Modal:
		if x.Op == formula.OpPossibly {
			fresh := freshWorld(branch)
			chain := []Node{Relation(w, fresh)}
			if loops {
				chain = append(chain, Relation(fresh, fresh))
			}
			return tableau.Chain(append(chain, At(x.X, fresh))...)
		}
		// □p needs p at every world w already reaches. Worlds reached later
		// pick it up when their relation node expands.
		var out []Node
		for n := range branch.Ancestors() {
			if n.IsRelation() && n.From == w {
				out = appendNew(out, branch, At(x.X, n.To))
			}
		}
		return tableau.Chain(out...)

	case formula.Not:
		if m, ok := x.X.(formula.Modal); ok {
			dual := formula.OpNecessarily
			if m.Op == formula.OpNecessarily {
				dual = formula.OpPossibly
			}
			return tableau.Single(at(formula.Modal{Op: dual, X: formula.Negate(m.X)}))
		}
	}

	rule, ok := decompose(node.Expr)
	if !ok {
		panic(fmt.Sprintf("logic: cannot decompose %s", node.Expr))
	}
	return tableau.MapRule(rule, at)
}

// necessityInstances returns p at rel.To for every □p held at rel.From.
func necessityInstances(rel Node, branch tableau.Branch[Node]) []Node {
	var out []Node
	for n := range branch.Ancestors() {
		if n.IsRelation() || n.World != rel.From {
			continue
		}
		if m, ok := n.Expr.(formula.Modal); ok && m.Op == formula.OpNecessarily {
			out = appendNew(out, branch, At(m.X, rel.To))
		}
	}
	return out
}

// appendNew appends n unless the branch or out already has it.
func appendNew(out []Node, branch tableau.Branch[Node], n Node) []Node {
	if slices.Contains(out, n) || tableau.Contains(branch, n) {
		return out
	}
	return append(out, n)
}

// freshWorld returns one more than the largest world the branch mentions.
func freshWorld(branch tableau.Branch[Node]) World {
	var (
		top  World
		seen bool
	)
	for w := range branchWorlds(branch) {
		if !seen || w > top {
			top, seen = w, true
		}
	}
	if !seen {
		return 0
	}
	return top + 1
}

// branchWorlds returns every world a node on the branch mentions.
func branchWorlds(branch tableau.Branch[Node]) map[World]struct{} {
	worlds := make(map[World]struct{})
	for n := range branch.Ancestors() {
		if n.IsRelation() {
			worlds[n.From] = struct{}{}
			worlds[n.To] = struct{}{}
		} else {
			worlds[n.World] = struct{}{}
		}
	}
	return worlds
}

// modalContradiction reports whether the leaf is a literal whose negation
// holds at the same world higher up the branch.
func modalContradiction(branch tableau.Branch[Node]) bool {
	leaf := branch.Leaf()
	if leaf.IsRelation() {
		return false
	}
	name, value, ok := formula.Literal(leaf.Expr)
	if !ok {
		return false
	}
	return tableau.Any(branch, func(n Node) bool {
		if n.IsRelation() || n.World != leaf.World {
			return false
		}
		other, otherValue, ok := formula.Literal(n.Expr)
		return ok && other == name && otherValue != value
	})
}

func modalPriority(node Node) int {
	if node.IsRelation() {
		return 9
	}
	switch x := node.Expr.(type) {
	case formula.Modal:
		if x.Op == formula.OpPossibly {
			return 4
		}
		return 3
	case formula.Not:
		if _, ok := x.X.(formula.Modal); ok {
			return 9
		}
	}
	return classicalPriority(node.Expr)
}
