// Package tableau implements the semantic tableau engine.
//
// A Tableau grows a proof tree from premises and a negated conclusion by
// repeatedly decomposing pending nodes with the rules of a Logic. Nodes live
// in an append-only arena and refer to each other by index. A branch whose
// commitments contradict is marked dead, and death propagates to an ancestor
// once all of its children are dead. When no pending nodes remain the tableau
// freezes into a Result: the argument holds iff the root is dead.
package tableau

import "github.com/gnoswap-labs/tableaux/internal/formula"

// DefaultPriority is the expansion priority of a node when a logic has no
// preference.
const DefaultPriority = 0

// Logic is a rule set for one logic system. N is the node value type: the
// logic decides what a node holds (a formula, a formula at a world, an
// accessibility relation ...).
type Logic[N any] interface {
	// MakePremiseNode wraps a premise, assumed true.
	MakePremiseNode(expr formula.Expr) N
	// MakeConclusionNode wraps the negation of the conclusion.
	MakeConclusionNode(expr formula.Expr) N

	// Infer decomposes node on the branch ending at a live leaf below it.
	Infer(node N, branch Branch[N]) Rule[N]

	// HasContradiction is called once for every new node with the branch
	// ending at that node. Its ancestors are known to be consistent.
	HasContradiction(branch Branch[N]) bool

	// Priority orders pending nodes; higher expands sooner. It only affects
	// the shape of the tree, never the verdict.
	Priority(node N) int
}

// Initializer is implemented by logics that seed structural facts before
// the first expansion.
type Initializer[N any] interface {
	Initialize(t *Tableau[N])
}
