package tableau

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/tableaux/internal/formula"
)

// ErrSearchExhausted is returned when a node or step limit stops the search
// before every pending node was expanded.
var ErrSearchExhausted = errors.New("search exhausted")

// Tableau is a proof tree that is still growing.
type Tableau[N any] struct {
	tree[N]

	logic    Logic[N]
	priority func(N) int
	pending  pendingQueue
	steps    int
	frozen   bool
	opts     options
	log      *zap.Logger
}

// New builds the initial chain premises..., ¬conclusion and runs the logic's
// Initializer if it has one. The root is the first premise, or the negated
// conclusion when there are no premises.
func New[N any](logic Logic[N], premises []formula.Expr, conclusion formula.Expr, opts ...Option) *Tableau[N] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tableau[N]{
		tree:     tree[N]{nodes: make([]node[N], 0, len(premises)+1)},
		logic:    logic,
		priority: logic.Priority,
		pending:  pendingQueue{ties: o.ties},
		opts:     o,
		log:      o.logger,
	}
	if o.priority != nil {
		f, ok := o.priority.(func(N) int)
		if !ok {
			panic(fmt.Sprintf("tableau: priority function %T does not match node type", o.priority))
		}
		t.priority = f
	}

	chain := make([]NodeID, 0, len(premises)+1)
	for _, p := range premises {
		chain = append(chain, t.AddOrphan(logic.MakePremiseNode(p)))
	}
	chain = append(chain, t.AddOrphan(logic.MakeConclusionNode(conclusion)))
	for i := 1; i < len(chain); i++ {
		t.BindChild(chain[i-1], chain[i])
	}

	// The chain has no branching, so one clash anywhere closes it whole.
	for _, id := range chain {
		if logic.HasContradiction(t.Branch(id)) {
			t.kill(chain[len(chain)-1], Contradiction)
			break
		}
	}

	if init, ok := logic.(Initializer[N]); ok {
		init.Initialize(t)
	}
	return t
}

// AddOrphan appends a parentless node to the arena and queues it for
// expansion.
func (t *Tableau[N]) AddOrphan(value N) NodeID {
	t.mustGrow()
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[N]{value: value, parent: NoNode})
	t.pending.push(id, t.priority(value))
	return id
}

// BindChild makes child, which must be an orphan, the last child of parent.
func (t *Tableau[N]) BindChild(parent, child NodeID) {
	t.mustGrow()
	c := &t.nodes[child]
	if c.parent != NoNode || child == t.Root() {
		panic(fmt.Sprintf("tableau: node %d is not an orphan", child))
	}
	c.parent = parent
	p := &t.nodes[parent]
	p.children = append(p.children, child)
	p.liveChildren++
}

// AddChild appends value below parent and checks the new branch for a
// contradiction.
func (t *Tableau[N]) AddChild(parent NodeID, value N) NodeID {
	id := t.AddOrphan(value)
	t.BindChild(parent, id)
	t.checkLiveness(id)
	return id
}

// Pending returns the number of nodes that still wait for expansion.
func (t *Tableau[N]) Pending() int {
	return t.pending.Len()
}

// Steps returns the number of expansion steps taken so far.
func (t *Tableau[N]) Steps() int {
	return t.steps
}

// Step expands the highest-priority pending node. It returns false once the
// queue is empty.
func (t *Tableau[N]) Step() (bool, error) {
	t.mustGrow()
	if t.pending.Len() == 0 {
		return false, nil
	}
	if t.opts.maxSteps > 0 && t.steps >= t.opts.maxSteps {
		return false, t.exhausted()
	}
	if t.opts.maxNodes > 0 && len(t.nodes) >= t.opts.maxNodes {
		return false, t.exhausted()
	}

	id, _ := t.pending.pop()
	t.steps++
	t.InferNode(id)
	return true, nil
}

// InferNode applies the decomposition of id to every live branch that
// contains it. Dead nodes are skipped.
func (t *Tableau[N]) InferNode(id NodeID) {
	t.mustGrow()
	if t.IsDead(id) {
		return
	}

	value := t.nodes[id].value
	leaves := t.liveLeavesBelow(id)
	before := len(t.nodes)
	for _, leaf := range leaves {
		rule := t.logic.Infer(value, t.Branch(leaf))
		t.apply(leaf, rule)
	}

	if ce := t.log.Check(zap.DebugLevel, "expanded node"); ce != nil {
		ce.Write(
			zap.Int("node", int(id)),
			zap.Stringer("value", stringer{value}),
			zap.Int("leaves", len(leaves)),
			zap.Int("added", len(t.nodes)-before),
			zap.Int("pending", t.pending.Len()),
		)
	}
}

// Infer expands nodes until none are pending and freezes the tableau.
func (t *Tableau[N]) Infer() (*Result[N], error) {
	for {
		more, err := t.Step()
		if err != nil {
			t.log.Warn("proof search stopped", zap.Error(err))
			return nil, err
		}
		if !more {
			break
		}
	}

	res := &Result[N]{tree: t.tree, steps: t.steps}
	t.tree = tree[N]{}
	t.frozen = true

	t.log.Debug("tableau complete",
		zap.Bool("holds", res.Holds()),
		zap.Int("nodes", res.Len()),
		zap.Int("steps", res.Steps()),
	)
	return res, nil
}

func (t *Tableau[N]) apply(leaf NodeID, rule Rule[N]) {
	nodes := rule.Nodes()
	switch rule.Kind() {
	case RuleNone:
	case RuleSingle:
		t.AddChild(leaf, nodes[0])
	case RuleSplit:
		left, right := t.AddOrphan(nodes[0]), t.AddOrphan(nodes[1])
		t.BindChild(leaf, left)
		t.BindChild(leaf, right)
		t.checkLiveness(left)
		t.checkLiveness(right)
	case RuleChain:
		parent := leaf
		for _, v := range nodes {
			id := t.AddChild(parent, v)
			if t.IsDead(id) {
				break
			}
			parent = id
		}
	case RuleSplitAndChain:
		left, right := t.AddOrphan(nodes[0]), t.AddOrphan(nodes[2])
		t.BindChild(leaf, left)
		t.BindChild(leaf, right)
		if !t.checkLiveness(left) {
			t.AddChild(left, nodes[1])
		}
		if !t.checkLiveness(right) {
			t.AddChild(right, nodes[3])
		}
	default:
		panic(fmt.Sprintf("tableau: unknown rule kind %d", rule.Kind()))
	}
}

// checkLiveness tests the branch ending at id and kills it on a
// contradiction. It reports whether the node is dead.
func (t *Tableau[N]) checkLiveness(id NodeID) bool {
	if t.logic.HasContradiction(t.Branch(id)) {
		t.kill(id, Contradiction)
		return true
	}
	return false
}

// kill marks id dead and walks up: each dead node decrements its parent's
// live count, and a parent whose count reaches zero dies too.
func (t *Tableau[N]) kill(id NodeID, reason Death) {
	for {
		n := &t.nodes[id]
		if n.death != Alive {
			return
		}
		n.death = reason
		if n.parent == NoNode {
			return
		}
		p := &t.nodes[n.parent]
		p.liveChildren--
		if p.liveChildren > 0 {
			return
		}
		id, reason = n.parent, Closed
	}
}

func (t *Tableau[N]) exhausted() error {
	return fmt.Errorf("%w: %d nodes after %d steps, %d still pending",
		ErrSearchExhausted, len(t.nodes), t.steps, t.pending.Len())
}

func (t *Tableau[N]) mustGrow() {
	if t.frozen {
		panic("tableau: tableau is frozen")
	}
}

type stringer struct {
	v any
}

func (s stringer) String() string {
	return fmt.Sprint(s.v)
}
