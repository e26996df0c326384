package formula

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect selects which operators the parser accepts.
type Dialect int

const (
	// DialectClassical rejects the modal operators.
	DialectClassical Dialect = iota
	// DialectModal accepts every operator.
	DialectModal
)

func (d Dialect) String() string {
	if d == DialectModal {
		return "modal"
	}
	return "classical"
}

var (
	ErrMissingTurnstile  = errors.New("missing inference symbol")
	ErrMissingConclusion = errors.New("missing conclusion")
)

// ParseError reports a malformed formula. Pos is a byte offset into the
// parsed text.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

// lookalikes are characters often pasted in place of ◇ and □.
var lookalikes = map[rune]string{
	'⬦': SymPossibly.Unicode,
	'⋄': SymPossibly.Unicode,
	'◊': SymPossibly.Unicode,
	'⬚': SymNecessarily.Unicode,
	'◻': SymNecessarily.Unicode,
	'⬜': SymNecessarily.Unicode,
	'◽': SymNecessarily.Unicode,
}

// Statement is an argument Σ ⊢ A.
type Statement struct {
	Premises   []Expr
	Conclusion Expr
}

func (s Statement) String() string {
	parts := make([]string, len(s.Premises))
	for i, p := range s.Premises {
		parts[i] = p.String()
	}
	if len(parts) == 0 {
		return SymTurnstile.Unicode + " " + s.Conclusion.String()
	}
	return strings.Join(parts, ", ") + " " + SymTurnstile.Unicode + " " + s.Conclusion.String()
}

// Parse parses a single formula.
func Parse(text string, d Dialect) (Expr, error) {
	p := newParser(text, d)
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.unexpected(tok)
	}
	return e, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// static tables.
func MustParse(text string, d Dialect) Expr {
	e, err := Parse(text, d)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseStatement parses an argument of the form `Σ ⊢ A` where Σ is zero or
// more comma separated premises.
func ParseStatement(text string, d Dialect) (Statement, error) {
	p := newParser(text, d)
	if !p.hasTurnstile() {
		return Statement{}, ErrMissingTurnstile
	}

	var stmt Statement
	if p.peek().Type != TokenTurnstile {
		for {
			e, err := p.parseExpr()
			if err != nil {
				return Statement{}, err
			}
			stmt.Premises = append(stmt.Premises, e)
			if p.peek().Type != TokenComma {
				break
			}
			p.next()
		}
	}

	if tok := p.next(); tok.Type != TokenTurnstile {
		return Statement{}, p.unexpected(tok)
	}
	if p.peek().Type == TokenEOF {
		return Statement{}, ErrMissingConclusion
	}

	conclusion, err := p.parseExpr()
	if err != nil {
		return Statement{}, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return Statement{}, p.unexpected(tok)
	}
	stmt.Conclusion = conclusion
	return stmt, nil
}

type parser struct {
	tokens  []Token
	pos     int
	dialect Dialect
}

func newParser(text string, d Dialect) *parser {
	return &parser{
		tokens:  NewLexer(text).Tokenize(),
		dialect: d,
	}
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) hasTurnstile() bool {
	for _, tok := range p.tokens {
		if tok.Type == TokenTurnstile {
			return true
		}
	}
	return false
}

// parseExpr parses `unary (binop expr)?`. All binary connectives share one
// precedence level and associate to the right.
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	var op BinaryOp
	switch p.peek().Type {
	case TokenAnd:
		op = OpAnd
	case TokenOr:
		op = OpOr
	case TokenImplies:
		op = OpImplies
	case TokenEquiv:
		op = OpEquiv
	default:
		return left, nil
	}
	p.next()

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return Binary{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenLParen:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRParen {
			return nil, &ParseError{Pos: closing.Position, Msg: fmt.Sprintf("expected ')', found %s", describe(closing))}
		}
		return e, nil

	case TokenIdent:
		for _, r := range tok.Value {
			if want, ok := lookalikes[r]; ok {
				return nil, &ParseError{Pos: tok.Position, Msg: fmt.Sprintf("unsupported symbol %q, use %s", r, want)}
			}
		}
		return Atom{Name: tok.Value}, nil

	case TokenNot:
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil

	case TokenPossibly, TokenNecessarily:
		if p.dialect != DialectModal {
			return nil, &ParseError{Pos: tok.Position, Msg: fmt.Sprintf("modal operator %s is not available in %s logic", tok.Type, p.dialect)}
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := OpPossibly
		if tok.Type == TokenNecessarily {
			op = OpNecessarily
		}
		return Modal{Op: op, X: x}, nil

	default:
		return nil, p.unexpected(tok)
	}
}

func (p *parser) unexpected(tok Token) error {
	return &ParseError{Pos: tok.Position, Msg: "unexpected " + describe(tok)}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenIdent, TokenIllegal:
		return fmt.Sprintf("%s %q", tok.Type, tok.Value)
	default:
		return tok.Type.String()
	}
}
