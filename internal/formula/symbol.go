package formula

import "strings"

// Symbol describes one operator of the notation together with its ASCII
// alias. Both spellings parse identically.
type Symbol struct {
	Name    string
	Unicode string
	ASCII   string
	Modal   bool
}

var (
	SymNot         = Symbol{Name: "Not", Unicode: "¬", ASCII: "!"}
	SymAnd         = Symbol{Name: "And", Unicode: "∧", ASCII: "&&"}
	SymOr          = Symbol{Name: "Or", Unicode: "∨", ASCII: "||"}
	SymImplies     = Symbol{Name: "Material implication", Unicode: "⊃", ASCII: ">"}
	SymEquiv       = Symbol{Name: "Material equivalence", Unicode: "≡", ASCII: "=="}
	SymPossibly    = Symbol{Name: "Possibility", Unicode: "◇", ASCII: "<>", Modal: true}
	SymNecessarily = Symbol{Name: "Necessity", Unicode: "□", ASCII: "[]", Modal: true}
	SymTurnstile   = Symbol{Name: "Inference", Unicode: "⊢", ASCII: "|-"}
)

// Symbols returns the operator table for the given dialect.
func Symbols(d Dialect) []Symbol {
	syms := []Symbol{SymNot, SymAnd, SymOr, SymImplies, SymEquiv}
	if d == DialectModal {
		syms = append(syms, SymPossibly, SymNecessarily)
	}
	return syms
}

// asciiReplacer rewrites longer aliases first: "<>" must win over ">" and
// "|-" must not be read as the start of "||".
var asciiReplacer = strings.NewReplacer(
	SymPossibly.ASCII, SymPossibly.Unicode,
	SymNecessarily.ASCII, SymNecessarily.Unicode,
	SymEquiv.ASCII, SymEquiv.Unicode,
	SymAnd.ASCII, SymAnd.Unicode,
	SymOr.ASCII, SymOr.Unicode,
	SymTurnstile.ASCII, SymTurnstile.Unicode,
	SymImplies.ASCII, SymImplies.Unicode,
	SymNot.ASCII, SymNot.Unicode,
)

// ToUnicode rewrites every ASCII alias in text with its Unicode symbol.
func ToUnicode(text string) string {
	return asciiReplacer.Replace(text)
}

// symbolStart holds the characters that cannot appear inside an identifier.
const symbolStart = "()¬∧∨⊃≡□◇⊢,!|&>=[<"
