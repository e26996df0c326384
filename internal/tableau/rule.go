package tableau

import "fmt"

// RuleKind tells the engine how to attach the nodes of a Rule below a leaf.
type RuleKind int

const (
	// RuleNone adds nothing.
	RuleNone RuleKind = iota
	// RuleSingle appends one node.
	RuleSingle
	// RuleSplit opens two branches, one per node.
	RuleSplit
	// RuleChain appends the nodes as a linear path, stopping at the first
	// node that closes the branch.
	RuleChain
	// RuleSplitAndChain opens two branches, each a chain of two nodes.
	RuleSplitAndChain
)

func (k RuleKind) String() string {
	switch k {
	case RuleNone:
		return "none"
	case RuleSingle:
		return "single"
	case RuleSplit:
		return "split"
	case RuleChain:
		return "chain"
	case RuleSplitAndChain:
		return "split-and-chain"
	default:
		return "?"
	}
}

// Rule is the result of decomposing one node.
type Rule[N any] struct {
	kind  RuleKind
	nodes []N
}

func None[N any]() Rule[N] {
	return Rule[N]{kind: RuleNone}
}

func Single[N any](x N) Rule[N] {
	return Rule[N]{kind: RuleSingle, nodes: []N{x}}
}

func Split[N any](left, right N) Rule[N] {
	return Rule[N]{kind: RuleSplit, nodes: []N{left, right}}
}

// Chain returns a chain rule. An empty chain is a rule that matched but had
// nothing to add yet, which is different from None.
func Chain[N any](xs ...N) Rule[N] {
	return Rule[N]{kind: RuleChain, nodes: xs}
}

func SplitAndChain[N any](left, right [2]N) Rule[N] {
	return Rule[N]{kind: RuleSplitAndChain, nodes: []N{left[0], left[1], right[0], right[1]}}
}

func (r Rule[N]) Kind() RuleKind {
	return r.kind
}

// Nodes returns the nodes in attachment order. For SplitAndChain the first
// two form the left chain and the last two the right chain.
func (r Rule[N]) Nodes() []N {
	return r.nodes
}

func (r Rule[N]) Len() int {
	return len(r.nodes)
}

// IsEmpty reports whether applying r adds no node.
func (r Rule[N]) IsEmpty() bool {
	return len(r.nodes) == 0
}

func (r Rule[N]) String() string {
	return fmt.Sprintf("%s%v", r.kind, r.nodes)
}

// MapRule converts the nodes of r with f, keeping the shape.
func MapRule[N, M any](r Rule[N], f func(N) M) Rule[M] {
	out := Rule[M]{kind: r.kind}
	if r.nodes != nil {
		out.nodes = make([]M, len(r.nodes))
		for i, n := range r.nodes {
			out.nodes[i] = f(n)
		}
	}
	return out
}
