package model

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/logic"
	"github.com/gnoswap-labs/tableaux/internal/tableau"
)

func TestValuation(t *testing.T) {
	t.Parallel()

	p, q := formula.Var("p"), formula.Var("q")
	v := Valuation([]formula.Expr{p, formula.Implies(p, q), formula.Negate(q), formula.Negate(formula.Negate(p))})
	assert.Equal(t, formula.Valuation{"p": true, "q": false}, v)

	require.NoError(t, CheckClassical(v, []formula.Expr{p}, q))
	err := CheckClassical(v, []formula.Expr{q}, p)
	assert.True(t, errors.Is(err, ErrNotCountermodel))
	assert.ErrorContains(t, err, "premise q is false")
	err = CheckClassical(v, nil, p)
	assert.ErrorContains(t, err, "conclusion p is true")
}

func TestClassicalCountermodels(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"p ⊃ q, q ⊢ p",
		"p ∨ q ⊢ p ∧ q",
		"⊢ (p ≡ q) ⊃ r",
		"¬(p ∧ q) ⊢ ¬p",
	} {
		t.Run(text, func(t *testing.T) {
			stmt, err := formula.ParseStatement(text, formula.DialectClassical)
			require.NoError(t, err)
			res, err := tableau.New[formula.Expr](logic.Classical{}, stmt.Premises, stmt.Conclusion).Infer()
			require.NoError(t, err)

			cm, ok := res.Countermodel()
			require.True(t, ok)
			assert.NoError(t, CheckClassical(Valuation(cm.Nodes), stmt.Premises, stmt.Conclusion))
		})
	}
}

func TestModalCountermodels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		system    string
		statement string
	}{
		{"K", "□p ⊢ p"},
		{"K", "⊢ □p ⊃ ◇p"},
		{"K", "◇p, ◇q ⊢ ◇(p ∧ q)"},
		{"K", "□(p ∨ q) ⊢ □p ∨ □q"},
		{"T", "⊢ □p ⊃ □□p"},
		{"D", "⊢ □p ⊃ p"},
		{"B", "⊢ ◇p ⊃ □p"},
	}

	for _, tt := range tests {
		t.Run(tt.system+" "+tt.statement, func(t *testing.T) {
			ax, ok := logic.Named(tt.system)
			require.True(t, ok)
			stmt, err := formula.ParseStatement(tt.statement, formula.DialectModal)
			require.NoError(t, err)

			res, err := tableau.New[logic.Node](logic.NewNormalModal(ax), stmt.Premises, stmt.Conclusion, tableau.WithMaxNodes(10000)).Infer()
			require.NoError(t, err)
			cm, ok := res.Countermodel()
			require.True(t, ok)

			k := FromBranch(cm.Nodes)
			assert.NoError(t, CheckModal(k, stmt.Premises, stmt.Conclusion), "%s", k)
		})
	}
}

func TestRandomModalCountermodels(t *testing.T) {
	t.Parallel()

	atoms := []formula.Expr{formula.Var("p"), formula.Var("q")}
	flat := tableau.WithPriority(func(logic.Node) int { return tableau.DefaultPriority })
	lifo := tableau.WithTieOrder(tableau.TiesLIFO)

	for i, name := range logic.Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ax, ok := logic.Named(name)
			require.True(t, ok)
			rng := rand.New(rand.NewSource(int64(40 + i)))
			var gen func(depth int) formula.Expr
			gen = func(depth int) formula.Expr {
				if depth == 0 || rng.Intn(4) == 0 {
					return atoms[rng.Intn(len(atoms))]
				}
				switch rng.Intn(6) {
				case 0:
					return formula.Negate(gen(depth - 1))
				case 1:
					return formula.And(gen(depth-1), gen(depth-1))
				case 2:
					return formula.Or(gen(depth-1), gen(depth-1))
				case 3:
					return formula.Implies(gen(depth-1), gen(depth-1))
				case 4:
					return formula.Possibly(gen(depth - 1))
				default:
					return formula.Necessarily(gen(depth - 1))
				}
			}

			checked := 0
			for range 60 {
				premises := []formula.Expr{gen(3)}
				conclusion := gen(3)
				for _, opts := range [][]tableau.Option{nil, {lifo}, {flat, lifo}} {
					opts = append(opts, tableau.WithMaxNodes(1500))
					res, err := tableau.New[logic.Node](logic.NewNormalModal(ax), premises, conclusion, opts...).Infer()
					if errors.Is(err, tableau.ErrSearchExhausted) {
						continue
					}
					require.NoError(t, err)
					cm, ok := res.Countermodel()
					if !ok {
						continue
					}
					checked++
					k := FromBranch(cm.Nodes)
					assert.NoError(t, CheckModal(k, premises, conclusion), "%s ⊢ %s\n%s", premises[0], conclusion, k)
				}
			}
			assert.Positive(t, checked)
		})
	}
}

func TestFromBranch(t *testing.T) {
	t.Parallel()

	p, q := formula.Var("p"), formula.Var("q")
	k := FromBranch([]logic.Node{
		logic.At(formula.Necessarily(p), 0),
		logic.At(formula.Negate(q), 0),
		logic.Relation(0, 2),
		logic.Relation(0, 1),
		logic.Relation(0, 1),
		logic.At(p, 1),
		logic.At(p, 2),
	})

	assert.Equal(t, []logic.World{0, 1, 2}, k.Worlds)
	assert.Equal(t, []logic.World{1, 2}, k.Succ[0])
	assert.Equal(t, "world 0: {¬q} -> [1, 2]\nworld 1: {p} -> []\nworld 2: {p} -> []\n", k.String())

	assert.True(t, k.Satisfies(formula.Necessarily(p), 0))
	assert.True(t, k.Satisfies(formula.Possibly(p), 0))
	assert.False(t, k.Satisfies(q, 0))
	// Dead ends satisfy every necessity and no possibility.
	assert.True(t, k.Satisfies(formula.Necessarily(q), 1))
	assert.False(t, k.Satisfies(formula.Possibly(p), 1))
}
