package logic

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/tableau"
)

func prove[N any](t *testing.T, l tableau.Logic[N], statement string, d formula.Dialect) *tableau.Result[N] {
	t.Helper()
	stmt, err := formula.ParseStatement(statement, d)
	require.NoError(t, err)
	res, err := tableau.New(l, stmt.Premises, stmt.Conclusion, tableau.WithMaxNodes(50000)).Infer()
	require.NoError(t, err)
	return res
}

func TestClassicalArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		statement string
		holds     bool
	}{
		{"⊢ p ∨ ¬p", true},
		{"p, p ⊃ q ⊢ q", true},
		{"p ⊃ q, ¬q ⊢ ¬p", true},
		{"p ⊃ q, q ⊢ p", false},
		{"p ∨ q, ¬p ⊢ q", true},
		{"⊢ (p ≡ q) ≡ (q ≡ p)", true},
		{"p ≡ q ⊢ p ∧ q", false},
		{"p, ¬p ⊢ q", true},
		{"⊢ ¬(p ∧ q) ≡ (¬p ∨ ¬q)", true},
		{"⊢ p", false},
	}

	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			res := prove[formula.Expr](t, Classical{}, tt.statement, formula.DialectClassical)
			assert.Equal(t, tt.holds, res.Holds())
		})
	}
}

// formulaGen returns a generator of random formulas over p, q and r.
// Modal operators are only drawn when modal is set.
func formulaGen(rng *rand.Rand, modal bool) func(depth int) formula.Expr {
	atoms := []formula.Expr{formula.Var("p"), formula.Var("q"), formula.Var("r")}
	ops := 5
	if modal {
		ops = 7
	}
	var gen func(depth int) formula.Expr
	gen = func(depth int) formula.Expr {
		if depth == 0 || rng.Intn(4) == 0 {
			return atoms[rng.Intn(len(atoms))]
		}
		switch rng.Intn(ops) {
		case 0:
			return formula.Negate(gen(depth - 1))
		case 1:
			return formula.And(gen(depth-1), gen(depth-1))
		case 2:
			return formula.Or(gen(depth-1), gen(depth-1))
		case 3:
			return formula.Implies(gen(depth-1), gen(depth-1))
		case 4:
			return formula.Equiv(gen(depth-1), gen(depth-1))
		case 5:
			return formula.Possibly(gen(depth - 1))
		default:
			return formula.Necessarily(gen(depth - 1))
		}
	}
	return gen
}

func TestClassicalAgreesWithTruthTables(t *testing.T) {
	t.Parallel()

	gen := formulaGen(rand.New(rand.NewSource(7)), false)
	for range 300 {
		premises := []formula.Expr{gen(3)}
		conclusion := gen(3)
		res, err := tableau.New[formula.Expr](Classical{}, premises, conclusion).Infer()
		require.NoError(t, err)
		assert.Equal(t, formula.Valid(premises, conclusion), res.Holds(), "%s ⊢ %s", premises[0], conclusion)
	}
}

type ordering struct {
	name string
	opts []tableau.Option
}

// orderings covers the logic's priorities and a flat priority, each with
// both tie orders.
func orderings[N any]() []ordering {
	flat := tableau.WithPriority(func(N) int { return tableau.DefaultPriority })
	lifo := tableau.WithTieOrder(tableau.TiesLIFO)
	return []ordering{
		{"priority fifo", nil},
		{"priority lifo", []tableau.Option{lifo}},
		{"flat fifo", []tableau.Option{flat}},
		{"flat lifo", []tableau.Option{flat, lifo}},
	}
}

// verdicts proves the argument once per ordering. It returns false when any
// ordering ran into the node limit.
func verdicts[N any](t *testing.T, l tableau.Logic[N], premises []formula.Expr, conclusion formula.Expr, maxNodes int) (map[string]bool, bool) {
	t.Helper()
	out := make(map[string]bool)
	for _, o := range orderings[N]() {
		opts := append([]tableau.Option{tableau.WithMaxNodes(maxNodes)}, o.opts...)
		res, err := tableau.New(l, premises, conclusion, opts...).Infer()
		if errors.Is(err, tableau.ErrSearchExhausted) {
			return nil, false
		}
		require.NoError(t, err)
		out[o.name] = res.Holds()
	}
	return out, true
}

func TestVerdictIndependentOfOrder(t *testing.T) {
	t.Parallel()

	t.Run("classical", func(t *testing.T) {
		t.Parallel()

		gen := formulaGen(rand.New(rand.NewSource(11)), false)
		for range 200 {
			premises := []formula.Expr{gen(3)}
			conclusion := gen(3)
			got, ok := verdicts[formula.Expr](t, Classical{}, premises, conclusion, 0)
			require.True(t, ok)
			want := formula.Valid(premises, conclusion)
			for name, holds := range got {
				assert.Equal(t, want, holds, "%s: %s ⊢ %s", name, premises[0], conclusion)
			}
		}
	})

	for i, name := range Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := mustNamed(t, name)
			gen := formulaGen(rand.New(rand.NewSource(int64(100+i))), true)
			const cases = 60
			decided := 0
			for range cases {
				premises := []formula.Expr{gen(3)}
				conclusion := gen(3)
				got, ok := verdicts[Node](t, l, premises, conclusion, 1500)
				if !ok {
					continue
				}
				decided++
				want := got["priority fifo"]
				for order, holds := range got {
					assert.Equal(t, want, holds, "%s: %s ⊢ %s", order, premises[0], conclusion)
				}
			}
			assert.Greater(t, decided, cases/2)
		})
	}
}

func TestClassicalRejectsModal(t *testing.T) {
	t.Parallel()

	node := formula.Necessarily(formula.Var("p"))
	assert.Panics(t, func() {
		Classical{}.Infer(node, tableau.PathBranch(node))
	})
}

func TestClassicalContradiction(t *testing.T) {
	t.Parallel()

	p := formula.Var("p")
	assert.True(t, Classical{}.HasContradiction(tableau.PathBranch(p, formula.Var("q"), formula.Negate(p))))
	assert.False(t, Classical{}.HasContradiction(tableau.PathBranch(formula.Negate(p), formula.And(p, p))))
	assert.False(t, Classical{}.HasContradiction(tableau.PathBranch(p, p)))
}

func TestModalRules(t *testing.T) {
	t.Parallel()

	p := formula.Var("p")

	t.Run("possibility opens a fresh world", func(t *testing.T) {
		b := tableau.PathBranch(At(formula.Possibly(p), 0), At(p, 3))
		got := Modal{}.Infer(At(formula.Possibly(p), 0), b)
		assert.Equal(t, tableau.RuleChain, got.Kind())
		assert.Equal(t, []Node{Relation(0, 4), At(p, 4)}, got.Nodes())
	})

	t.Run("necessity reaches known worlds once", func(t *testing.T) {
		box := At(formula.Necessarily(p), 0)
		b := tableau.PathBranch(box, Relation(0, 1), Relation(0, 2), At(p, 2), Relation(1, 3))
		got := Modal{}.Infer(box, b)
		assert.Equal(t, []Node{At(p, 1)}, got.Nodes())
	})

	t.Run("relation carries necessities", func(t *testing.T) {
		rel := Relation(0, 1)
		b := tableau.PathBranch(At(formula.Necessarily(p), 0), At(formula.Necessarily(formula.Negate(p)), 0), At(formula.Necessarily(p), 1), rel)
		got := Modal{}.Infer(rel, b)
		assert.Equal(t, []Node{At(formula.Negate(p), 1), At(p, 1)}, got.Nodes())
	})

	t.Run("negated modals swap", func(t *testing.T) {
		n := At(formula.Negate(formula.Necessarily(p)), 2)
		got := Modal{}.Infer(n, tableau.PathBranch(n))
		assert.Equal(t, []Node{At(formula.Possibly(formula.Negate(p)), 2)}, got.Nodes())
	})

	t.Run("classical rules stay in their world", func(t *testing.T) {
		n := At(formula.Or(p, formula.Var("q")), 5)
		got := Modal{}.Infer(n, tableau.PathBranch(n))
		assert.Equal(t, tableau.RuleSplit, got.Kind())
		assert.Equal(t, []Node{At(p, 5), At(formula.Var("q"), 5)}, got.Nodes())
	})

	t.Run("contradiction is per world", func(t *testing.T) {
		assert.False(t, Modal{}.HasContradiction(tableau.PathBranch(At(p, 0), At(formula.Negate(p), 1))))
		assert.True(t, Modal{}.HasContradiction(tableau.PathBranch(At(p, 1), Relation(0, 1), At(formula.Negate(p), 1))))
	})
}

func TestModalTheorems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		logic     tableau.Logic[Node]
		statement string
		holds     bool
	}{
		{"K distribution", Modal{}, "⊢ □(p ⊃ q) ⊃ (□p ⊃ □q)", true},
		{"K duality", Modal{}, "⊢ ◇p ≡ ¬□¬p", true},
		{"K lacks T", Modal{}, "⊢ □p ⊃ p", false},
		{"K lacks D", Modal{}, "⊢ □p ⊃ ◇p", false},
		{"K possibility distributes", Modal{}, "◇(p ∨ q) ⊢ ◇p ∨ ◇q", true},
		{"K zero axioms", NewNormalModal(Axioms{}), "⊢ □(p ⊃ q) ⊃ (□p ⊃ □q)", true},
		{"T", mustNamed(t, "T"), "⊢ □p ⊃ p", true},
		{"T lacks 4", mustNamed(t, "T"), "⊢ □p ⊃ □□p", false},
		{"D", mustNamed(t, "D"), "⊢ □p ⊃ ◇p", true},
		{"D lacks T", mustNamed(t, "D"), "⊢ □p ⊃ p", false},
		{"B", mustNamed(t, "B"), "⊢ p ⊃ □◇p", true},
		{"S4", mustNamed(t, "S4"), "⊢ □p ⊃ □□p", true},
		{"S5", mustNamed(t, "S5"), "⊢ ◇p ⊃ □◇p", true},
		{"S5 includes B", mustNamed(t, "S5"), "⊢ p ⊃ □◇p", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := prove(t, tt.logic, tt.statement, formula.DialectModal)
			assert.Equal(t, tt.holds, res.Holds())
		})
	}
}

func mustNamed(t *testing.T, name string) NormalModal {
	t.Helper()
	ax, ok := Named(name)
	require.True(t, ok, name)
	return NewNormalModal(ax)
}

func TestNormalModalRelations(t *testing.T) {
	t.Parallel()

	l := NewNormalModal(Axioms{Symmetric: true, Transitive: true})
	rel := Relation(1, 2)
	b := tableau.PathBranch(Relation(0, 1), Relation(2, 3), Relation(2, 1), rel)
	got := l.Infer(rel, b)
	assert.Equal(t, tableau.RuleChain, got.Kind())
	assert.ElementsMatch(t, []Node{Relation(0, 2), Relation(1, 3), Relation(1, 1), Relation(2, 2)}, got.Nodes())
}

func TestNormalModalReflexiveLoops(t *testing.T) {
	t.Parallel()

	p := formula.Var("p")
	l := NewNormalModal(Axioms{Reflexive: true})
	n := At(formula.Possibly(p), 0)
	got := l.Infer(n, tableau.PathBranch(Relation(0, 0), n))
	assert.Equal(t, []Node{Relation(0, 1), Relation(1, 1), At(p, 1)}, got.Nodes())

	tab := tableau.New[Node](l, []formula.Expr{p}, formula.Var("q"))
	res, err := tab.Infer()
	require.NoError(t, err)
	cm, ok := res.Countermodel()
	require.True(t, ok)
	assert.Contains(t, cm.Nodes, Relation(0, 0))
}

func TestNormalModalExtension(t *testing.T) {
	t.Parallel()

	p := formula.Var("p")
	l := NewNormalModal(Axioms{Extendable: true})

	box := At(formula.Necessarily(p), 2)
	b := tableau.PathBranch(At(p, 0), Relation(0, 2), box)
	got := l.Infer(box, b)
	assert.Equal(t, []Node{Relation(2, 3)}, got.Nodes())

	// Nothing to extend when no world holds a necessity.
	lit := At(p, 0)
	got = l.Infer(lit, tableau.PathBranch(lit))
	assert.Equal(t, tableau.RuleNone, got.Kind())

	// Reflexive logics never extend.
	got = NewNormalModal(Axioms{Reflexive: true, Extendable: true}).Infer(box, b)
	assert.True(t, got.IsEmpty())
}

func TestAxioms(t *testing.T) {
	t.Parallel()

	s5, _ := Named("s5")
	assert.Equal(t, "Kρστ", s5.String())
	assert.True(t, s5.Equal(Axioms{Symmetric: true, Transitive: true, Extendable: true}))
	assert.True(t, Axioms{Reflexive: true}.Equal(Axioms{Reflexive: true, Extendable: true}))
	assert.False(t, Axioms{}.Equal(Axioms{Extendable: true}))
	assert.Equal(t, Axioms{Reflexive: true, Extendable: true}, Axioms{Reflexive: true}.Normalize())

	name, ok := NameOf(Axioms{Reflexive: true, Transitive: true, Extendable: true})
	assert.True(t, ok)
	assert.Equal(t, "S4", name)

	_, ok = Named("S3")
	assert.False(t, ok)
	assert.Equal(t, []string{"K", "T", "D", "B", "S4", "S5"}, Names())
}

func TestModalPriorities(t *testing.T) {
	t.Parallel()

	p := formula.Var("p")
	assert.Equal(t, 10, modalPriority(At(formula.Negate(p), 0)))
	assert.Equal(t, 9, modalPriority(Relation(0, 1)))
	assert.Equal(t, 9, modalPriority(At(formula.Negate(formula.Possibly(p)), 0)))
	assert.Equal(t, 8, modalPriority(At(formula.And(p, p), 0)))
	assert.Equal(t, 4, modalPriority(At(formula.Possibly(p), 0)))
	assert.Equal(t, 3, modalPriority(At(formula.Necessarily(p), 0)))
}
