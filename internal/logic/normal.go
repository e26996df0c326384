package logic

import (
	"slices"
	"strings"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/tableau"
)

// Axioms are the constraints placed on the accessibility relation.
type Axioms struct {
	// Reflexive (ρ): every world accesses itself.
	Reflexive bool `yaml:"reflexive" json:"reflexive"`
	// Symmetric (σ): if w accesses v then v accesses w.
	Symmetric bool `yaml:"symmetric" json:"symmetric"`
	// Transitive (τ): if u accesses v and v accesses w then u accesses w.
	Transitive bool `yaml:"transitive" json:"transitive"`
	// Extendable (η): every world accesses some world.
	Extendable bool `yaml:"extendable" json:"extendable"`
}

// Normalize adds the axioms implied by the others. Reflexivity gives
// extendability, and symmetry with transitivity and extendability gives
// reflexivity.
func (a Axioms) Normalize() Axioms {
	if a.Symmetric && a.Transitive && a.Extendable {
		a.Reflexive = true
	}
	if a.Reflexive {
		a.Extendable = true
	}
	return a
}

// Equal reports whether a and b describe the same logic.
func (a Axioms) Equal(b Axioms) bool {
	return a.Normalize() == b.Normalize()
}

// String spells the axioms after K, e.g. "Kρτ" for S4.
func (a Axioms) String() string {
	var b strings.Builder
	b.WriteString("K")
	for _, ax := range []struct {
		on bool
		s  string
	}{
		{a.Reflexive, "ρ"},
		{a.Symmetric, "σ"},
		{a.Transitive, "τ"},
		{a.Extendable, "η"},
	} {
		if ax.on {
			b.WriteString(ax.s)
		}
	}
	return b.String()
}

var namedSystems = []struct {
	name   string
	axioms Axioms
}{
	{"K", Axioms{}},
	{"T", Axioms{Reflexive: true}},
	{"D", Axioms{Extendable: true}},
	{"B", Axioms{Reflexive: true, Symmetric: true}},
	{"S4", Axioms{Reflexive: true, Transitive: true}},
	{"S5", Axioms{Reflexive: true, Symmetric: true, Transitive: true}},
}

// Named returns the axioms of a named normal modal system. Names are
// matched case-insensitively.
func Named(name string) (Axioms, bool) {
	for _, s := range namedSystems {
		if strings.EqualFold(s.name, name) {
			return s.axioms, true
		}
	}
	return Axioms{}, false
}

// Names lists the named systems Named accepts.
func Names() []string {
	out := make([]string, len(namedSystems))
	for i, s := range namedSystems {
		out[i] = s.name
	}
	return out
}

// NameOf returns the name of the system equal to a, if it has one.
func NameOf(a Axioms) (string, bool) {
	for _, s := range namedSystems {
		if s.axioms.Equal(a) {
			return s.name, true
		}
	}
	return "", false
}

// NormalModal is K extended with Axioms. The zero value is K.
type NormalModal struct {
	Axioms Axioms
}

var (
	_ tableau.Logic[Node]       = NormalModal{}
	_ tableau.Initializer[Node] = NormalModal{}
)

func NewNormalModal(axioms Axioms) NormalModal {
	return NormalModal{Axioms: axioms}
}

func (NormalModal) MakePremiseNode(expr formula.Expr) Node {
	return At(expr, 0)
}

func (NormalModal) MakeConclusionNode(expr formula.Expr) Node {
	return At(formula.Negate(expr), 0)
}

func (l NormalModal) Infer(node Node, branch tableau.Branch[Node]) tableau.Rule[Node] {
	ax := l.Axioms
	if node.IsRelation() {
		return tableau.Chain(l.relationConsequences(node, branch)...)
	}

	rule := inferFormula(node, branch, ax.Reflexive)
	if rule.IsEmpty() && ax.Extendable && !ax.Reflexive {
		if leaf, ok := extensionWorld(node.World, branch); ok {
			return tableau.Single(Relation(leaf, freshWorld(branch)))
		}
	}
	return rule
}

// relationConsequences closes a new edge under the axioms and passes the
// necessities of its source along it.
func (l NormalModal) relationConsequences(rel Node, branch tableau.Branch[Node]) []Node {
	out := necessityInstances(rel, branch)
	if l.Axioms.Transitive {
		for n := range branch.Ancestors() {
			if !n.IsRelation() {
				continue
			}
			if n.To == rel.From {
				out = appendNew(out, branch, Relation(n.From, rel.To))
			}
			if n.From == rel.To {
				out = appendNew(out, branch, Relation(rel.From, n.To))
			}
		}
	}
	if l.Axioms.Symmetric {
		out = appendNew(out, branch, Relation(rel.To, rel.From))
	}
	return out
}

func (NormalModal) HasContradiction(branch tableau.Branch[Node]) bool {
	return modalContradiction(branch)
}

func (NormalModal) Priority(node Node) int {
	return modalPriority(node)
}

// Initialize adds w r w below each live leaf for every world on its branch
// when the logic is reflexive.
func (l NormalModal) Initialize(t *tableau.Tableau[Node]) {
	if !l.Axioms.Reflexive {
		return
	}
	for _, leaf := range t.LiveLeaves() {
		branch := t.Branch(leaf)
		var worlds []World
		for w := range branchWorlds(branch) {
			worlds = append(worlds, w)
		}
		slices.Sort(worlds)

		parent := leaf
		for _, w := range worlds {
			loop := Relation(w, w)
			if tableau.Contains(branch, loop) {
				continue
			}
			parent = t.AddChild(parent, loop)
		}
	}
}

// extensionWorld picks a world that accesses nothing yet but holds a
// necessity, so a successor can make it bite. The node's own world wins,
// otherwise the smallest candidate.
func extensionWorld(prefer World, branch tableau.Branch[Node]) (World, bool) {
	hasSuccessor := make(map[World]bool)
	boxed := make(map[World]bool)
	for n := range branch.Ancestors() {
		if n.IsRelation() {
			hasSuccessor[n.From] = true
			continue
		}
		if m, ok := n.Expr.(formula.Modal); ok && m.Op == formula.OpNecessarily {
			boxed[n.World] = true
		}
	}

	var candidates []World
	for w := range boxed {
		if !hasSuccessor[w] {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	if slices.Contains(candidates, prefer) {
		return prefer, true
	}
	return slices.Min(candidates), true
}
