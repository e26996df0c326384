package tableau

import "iter"

// Branch is a read-only view of the path from a leaf up to the root.
type Branch[N any] interface {
	// Leaf returns the value of the node the branch ends at.
	Leaf() N
	// Ancestors yields the leaf first, then each parent up to and including
	// the root. The sequence can be ranged over any number of times.
	Ancestors() iter.Seq[N]
}

type treeBranch[N any] struct {
	t    *tree[N]
	leaf NodeID
}

func (b treeBranch[N]) Leaf() N {
	return b.t.nodes[b.leaf].value
}

func (b treeBranch[N]) Ancestors() iter.Seq[N] {
	return func(yield func(N) bool) {
		for id := b.leaf; id != NoNode; id = b.t.nodes[id].parent {
			if !yield(b.t.nodes[id].value) {
				return
			}
		}
	}
}

type pathBranch[N any] struct {
	path []N
}

// PathBranch returns a Branch over values given root first. The last value
// is the leaf. It lets rule sets be exercised without building a tableau.
func PathBranch[N any](rootFirst ...N) Branch[N] {
	if len(rootFirst) == 0 {
		panic("tableau: PathBranch needs at least one node")
	}
	return pathBranch[N]{path: rootFirst}
}

func (b pathBranch[N]) Leaf() N {
	return b.path[len(b.path)-1]
}

func (b pathBranch[N]) Ancestors() iter.Seq[N] {
	return func(yield func(N) bool) {
		for i := len(b.path) - 1; i >= 0; i-- {
			if !yield(b.path[i]) {
				return
			}
		}
	}
}

// Find returns the first value on the branch, leaf first, matching pred.
func Find[N any](b Branch[N], pred func(N) bool) (N, bool) {
	for n := range b.Ancestors() {
		if pred(n) {
			return n, true
		}
	}
	var zero N
	return zero, false
}

// Any reports whether some value on the branch matches pred.
func Any[N any](b Branch[N], pred func(N) bool) bool {
	_, ok := Find(b, pred)
	return ok
}

// Contains reports whether v occurs on the branch.
func Contains[N comparable](b Branch[N], v N) bool {
	return Any(b, func(n N) bool { return n == v })
}
