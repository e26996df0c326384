package tableaux

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnoswap-labs/tableaux/internal/formula"
	"github.com/gnoswap-labs/tableaux/internal/logic"
)

// ErrUnknownSystem is returned by ParseSystem for names it does not know.
var ErrUnknownSystem = errors.New("unknown system")

// Kind is the closed set of rule sets a proof can run with.
type Kind int

const (
	KindClassical Kind = iota
	// KindModal is the basic modal logic K.
	KindModal
	// KindNormal is K plus the accessibility axioms in System.Axioms.
	KindNormal
)

// System selects the logic an argument is checked in.
type System struct {
	Kind   Kind
	Axioms logic.Axioms
}

var (
	Classical = System{Kind: KindClassical}
	K         = System{Kind: KindModal}
)

// Normal returns K extended with axioms.
func Normal(axioms logic.Axioms) System {
	return System{Kind: KindNormal, Axioms: axioms}
}

// ParseSystem resolves "classical", "modal" and the named normal systems
// K, T, D, B, S4 and S5. Matching ignores case.
func ParseSystem(name string) (System, error) {
	switch n := strings.TrimSpace(name); {
	case strings.EqualFold(n, "classical"):
		return Classical, nil
	case strings.EqualFold(n, "modal"):
		return K, nil
	default:
		if ax, ok := logic.Named(n); ok {
			return Normal(ax), nil
		}
	}
	return System{}, fmt.Errorf("%w %q (want classical, modal or one of %s)",
		ErrUnknownSystem, name, strings.Join(logic.Names(), ", "))
}

// SystemNames lists the names ParseSystem accepts.
func SystemNames() []string {
	return append([]string{"classical", "modal"}, logic.Names()...)
}

func (s System) IsModal() bool {
	return s.Kind != KindClassical
}

// Dialect is the notation statements for s are parsed in.
func (s System) Dialect() formula.Dialect {
	if s.IsModal() {
		return formula.DialectModal
	}
	return formula.DialectClassical
}

func (s System) String() string {
	switch s.Kind {
	case KindClassical:
		return "classical"
	case KindModal:
		return "K"
	case KindNormal:
		if name, ok := logic.NameOf(s.Axioms); ok {
			return name
		}
		return s.Axioms.String()
	default:
		return fmt.Sprintf("System(%d)", int(s.Kind))
	}
}

// Equal reports whether s and o check arguments the same way.
func (s System) Equal(o System) bool {
	if !s.IsModal() || !o.IsModal() {
		return s.IsModal() == o.IsModal()
	}
	return s.axioms().Equal(o.axioms())
}

func (s System) axioms() logic.Axioms {
	if s.Kind == KindModal {
		return logic.Axioms{}
	}
	return s.Axioms
}
