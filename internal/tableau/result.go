package tableau

import (
	"fmt"
	"strings"
)

// Result is a completed tableau. It only answers queries.
type Result[N any] struct {
	tree[N]
	steps int
}

// Holds reports whether every branch closed, i.e. the premises together with
// the negated conclusion are unsatisfiable and the argument is valid.
func (r *Result[N]) Holds() bool {
	return r.IsDead(r.Root())
}

// Steps returns the number of expansion steps the search took.
func (r *Result[N]) Steps() int {
	return r.steps
}

// OpenBranches returns the number of live leaves.
func (r *Result[N]) OpenBranches() int {
	return len(r.LiveLeaves())
}

// Countermodel returns the values along one open path from the root, or
// false when the argument holds.
func (r *Result[N]) Countermodel() (Countermodel[N], bool) {
	if r.Holds() {
		return Countermodel[N]{}, false
	}

	var nodes []N
	id := r.Root()
	for {
		nodes = append(nodes, r.Value(id))
		next := NoNode
		for _, c := range r.Children(id) {
			if !r.IsDead(c) {
				next = c
				break
			}
		}
		if next == NoNode {
			break
		}
		id = next
	}
	return Countermodel[N]{Nodes: nodes}, true
}

// Countermodel is the flat listing of an open branch.
type Countermodel[N any] struct {
	Nodes []N
}

func (c Countermodel[N]) String() string {
	var b strings.Builder
	b.WriteString("Countermodel:\n")
	for _, n := range c.Nodes {
		fmt.Fprintf(&b, "➡ %v\n", n)
	}
	return b.String()
}
