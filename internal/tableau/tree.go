package tableau

// NodeID indexes a node in the arena. IDs are dense, assigned at insertion
// and never reused.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Death records whether and why a node is dead.
type Death int

const (
	Alive Death = iota
	// Contradiction marks a node whose own commitment clashes with one of
	// its ancestors.
	Contradiction
	// Closed marks a node all of whose children died.
	Closed
)

func (d Death) String() string {
	switch d {
	case Alive:
		return "alive"
	case Contradiction:
		return "contradiction"
	case Closed:
		return "closed"
	default:
		return "?"
	}
}

type node[N any] struct {
	value        N
	parent       NodeID
	children     []NodeID
	liveChildren int
	death        Death
}

// tree holds the arena and the read-only queries shared by the growing
// Tableau and the frozen Result.
type tree[N any] struct {
	nodes []node[N]
}

// Len returns the number of nodes.
func (t *tree[N]) Len() int {
	return len(t.nodes)
}

// Root returns the id of the root node.
func (t *tree[N]) Root() NodeID {
	return 0
}

func (t *tree[N]) Value(id NodeID) N {
	return t.nodes[id].value
}

// Parent returns the parent of id, or NoNode for the root.
func (t *tree[N]) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns the children of id in insertion order. The slice must
// not be modified.
func (t *tree[N]) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

func (t *tree[N]) IsDead(id NodeID) bool {
	return t.nodes[id].death != Alive
}

func (t *tree[N]) DeathOf(id NodeID) Death {
	return t.nodes[id].death
}

// LiveChildren returns the cached count of live children of id.
func (t *tree[N]) LiveChildren(id NodeID) int {
	return t.nodes[id].liveChildren
}

// Depth returns the length of the longest root-to-leaf path, counted in
// edges.
func (t *tree[N]) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	type frame struct {
		id    NodeID
		depth int
	}
	deepest := 0
	stack := []frame{{id: t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deepest = max(deepest, f.depth)
		for _, c := range t.nodes[f.id].children {
			stack = append(stack, frame{id: c, depth: f.depth + 1})
		}
	}
	return deepest
}

// LiveLeaves returns every leaf of the whole tree that is not dead, left to
// right.
func (t *tree[N]) LiveLeaves() []NodeID {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.liveLeavesBelow(t.Root())
}

// liveLeavesBelow returns the live leaves of the subtree rooted at id, left
// to right. Dead subtrees are skipped entirely.
func (t *tree[N]) liveLeavesBelow(id NodeID) []NodeID {
	var leaves []NodeID
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		if n.death != Alive {
			continue
		}
		if len(n.children) == 0 {
			leaves = append(leaves, cur)
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return leaves
}

// Path returns the values from the root down to id.
func (t *tree[N]) Path(id NodeID) []N {
	var rev []N
	for cur := id; cur != NoNode; cur = t.nodes[cur].parent {
		rev = append(rev, t.nodes[cur].value)
	}
	out := make([]N, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// Branch returns the branch view ending at leaf.
func (t *tree[N]) Branch(leaf NodeID) Branch[N] {
	return treeBranch[N]{t: t, leaf: leaf}
}
