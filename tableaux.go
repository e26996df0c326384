// Package tableaux decides whether an argument Σ ⊢ A holds in classical
// propositional logic or in a normal modal logic by building a semantic
// tableau for Σ together with ¬A.
package tableaux

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/logic"
	"github.com/gnoswap-labs/tableaux/internal/model"
	"github.com/gnoswap-labs/tableaux/internal/tableau"
)

// ErrModalFormula is returned when a modal formula is checked classically.
var ErrModalFormula = errors.New("modal operator in classical argument")

// ErrSearchExhausted is returned when a proof hits its node or step limit.
var ErrSearchExhausted = tableau.ErrSearchExhausted

type settings struct {
	maxNodes int
	maxSteps int
	logger   *zap.Logger
	tree     bool
	color    bool
}

type Option func(*settings)

func newSettings(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// OptionsKey describes the options that shape a Report: limits and tree
// rendering. The logger is left out.
func OptionsKey(opts ...Option) string {
	s := newSettings(opts)
	return fmt.Sprintf("nodes=%d steps=%d tree=%t color=%t", s.maxNodes, s.maxSteps, s.tree, s.tree && s.color)
}

// WithMaxNodes bounds the size of the tableau. Zero disables the bound.
func WithMaxNodes(n int) Option {
	return func(s *settings) { s.maxNodes = n }
}

// WithMaxSteps bounds the number of expansion steps. Zero disables the bound.
func WithMaxSteps(n int) Option {
	return func(s *settings) { s.maxSteps = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithTree renders the finished tableau into Report.Tree.
func WithTree(color bool) Option {
	return func(s *settings) {
		s.tree = true
		s.color = color
	}
}

// Report is the outcome of checking one argument.
type Report struct {
	System    string `json:"system"`
	Statement string `json:"statement"`
	Holds     bool   `json:"holds"`
	// Countermodel lists the nodes of one open branch when the argument
	// does not hold.
	Countermodel []string `json:"countermodel,omitempty"`
	// Model describes the countermodel as a valuation or a Kripke model.
	Model string `json:"model,omitempty"`
	// Verified is set when the countermodel was checked to satisfy the
	// premises and falsify the conclusion.
	Verified bool   `json:"verified"`
	Nodes    int    `json:"nodes"`
	Steps    int    `json:"steps"`
	Depth    int    `json:"depth"`
	Tree     string `json:"tree,omitempty"`

	// Entries splits Countermodel into formula and world for aligned text
	// output.
	Entries []Entry `json:"-"`
}

// Entry is one countermodel node. World is empty for relations and for
// classical nodes.
type Entry struct {
	Text  string
	World string
}

// ProveStatement parses text as `Σ ⊢ A` in the notation of sys and proves it.
func ProveStatement(sys System, text string, opts ...Option) (*Report, error) {
	stmt, err := formula.ParseStatement(text, sys.Dialect())
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", text, err)
	}
	return Prove(sys, stmt.Premises, stmt.Conclusion, opts...)
}

// Prove checks whether conclusion follows from premises in sys.
func Prove(sys System, premises []formula.Expr, conclusion formula.Expr, opts ...Option) (*Report, error) {
	s := newSettings(opts)

	if !sys.IsModal() {
		for _, e := range append([]formula.Expr{conclusion}, premises...) {
			if formula.IsModal(e) {
				return nil, fmt.Errorf("%w: %s", ErrModalFormula, e)
			}
		}
	}

	stmt := formula.Statement{Premises: premises, Conclusion: conclusion}
	log := s.logger.With(zap.Stringer("system", sys), zap.Stringer("statement", stmt))

	var (
		r   *Report
		err error
	)
	switch sys.Kind {
	case KindClassical:
		r, err = run[formula.Expr](logic.Classical{}, stmt, s, log, func(nodes []formula.Expr) (string, error) {
			v := model.Valuation(nodes)
			return formatValuation(v, formula.Atoms(append([]formula.Expr{conclusion}, premises...)...)),
				model.CheckClassical(v, premises, conclusion)
		})
	case KindModal, KindNormal:
		var l tableau.Logic[logic.Node] = logic.Modal{}
		if sys.Kind == KindNormal {
			l = logic.NewNormalModal(sys.Axioms)
		}
		r, err = run(l, stmt, s, log, func(nodes []logic.Node) (string, error) {
			k := model.FromBranch(nodes)
			return k.String(), model.CheckModal(k, premises, conclusion)
		})
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownSystem, int(sys.Kind))
	}
	if err != nil {
		return nil, err
	}
	r.System = sys.String()
	r.Statement = stmt.String()
	return r, nil
}

func run[N any](
	l tableau.Logic[N],
	stmt formula.Statement,
	s settings,
	log *zap.Logger,
	interpret func([]N) (string, error),
) (*Report, error) {
	t := tableau.New(l, stmt.Premises, stmt.Conclusion,
		tableau.WithMaxNodes(s.maxNodes),
		tableau.WithMaxSteps(s.maxSteps),
		tableau.WithLogger(log),
	)
	res, err := t.Infer()
	if err != nil {
		return nil, err
	}

	r := &Report{
		Holds: res.Holds(),
		Nodes: res.Len(),
		Steps: res.Steps(),
		Depth: res.Depth(),
	}
	if s.tree {
		var b strings.Builder
		if err := res.Render(&b, tableau.RenderOptions{Color: s.color}); err != nil {
			return nil, err
		}
		r.Tree = b.String()
	}

	cm, ok := res.Countermodel()
	if !ok {
		return r, nil
	}
	for _, n := range cm.Nodes {
		r.Countermodel = append(r.Countermodel, fmt.Sprint(n))
		r.Entries = append(r.Entries, newEntry(n))
	}

	desc, err := interpret(cm.Nodes)
	r.Model = desc
	if err != nil {
		log.Warn("countermodel failed verification", zap.Error(err))
	} else {
		r.Verified = true
	}
	return r, nil
}

func newEntry(n any) Entry {
	switch v := n.(type) {
	case logic.Node:
		if v.IsRelation() {
			return Entry{Text: fmt.Sprintf("%dr%d", v.From, v.To)}
		}
		return Entry{Text: v.Expr.String(), World: fmt.Sprint(v.World)}
	default:
		return Entry{Text: fmt.Sprint(n)}
	}
}

func formatValuation(v formula.Valuation, atoms []string) string {
	parts := make([]string, 0, len(atoms))
	for _, a := range atoms {
		parts = append(parts, fmt.Sprintf("%s=%t", a, v[a]))
	}
	return strings.Join(parts, " ")
}
