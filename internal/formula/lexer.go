package formula

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the kind of a lexed token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenLParen
	TokenRParen
	TokenComma
	TokenNot
	TokenAnd
	TokenOr
	TokenImplies
	TokenEquiv
	TokenPossibly
	TokenNecessarily
	TokenTurnstile
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenNot:
		return SymNot.Unicode
	case TokenAnd:
		return SymAnd.Unicode
	case TokenOr:
		return SymOr.Unicode
	case TokenImplies:
		return SymImplies.Unicode
	case TokenEquiv:
		return SymEquiv.Unicode
	case TokenPossibly:
		return SymPossibly.Unicode
	case TokenNecessarily:
		return SymNecessarily.Unicode
	case TokenTurnstile:
		return SymTurnstile.Unicode
	default:
		return "illegal character"
	}
}

// Token is a lexed token. Position is the byte offset in the input.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

// spelling maps every accepted spelling of an operator to its token type.
// Longer ASCII spellings are listed before their prefixes.
var spelling = []struct {
	text string
	typ  TokenType
}{
	{SymNot.Unicode, TokenNot},
	{SymAnd.Unicode, TokenAnd},
	{SymOr.Unicode, TokenOr},
	{SymImplies.Unicode, TokenImplies},
	{SymEquiv.Unicode, TokenEquiv},
	{SymPossibly.Unicode, TokenPossibly},
	{SymNecessarily.Unicode, TokenNecessarily},
	{SymTurnstile.Unicode, TokenTurnstile},
	{SymPossibly.ASCII, TokenPossibly},
	{SymNecessarily.ASCII, TokenNecessarily},
	{SymEquiv.ASCII, TokenEquiv},
	{SymAnd.ASCII, TokenAnd},
	{SymOr.ASCII, TokenOr},
	{SymTurnstile.ASCII, TokenTurnstile},
	{SymImplies.ASCII, TokenImplies},
	{SymNot.ASCII, TokenNot},
	{"(", TokenLParen},
	{")", TokenRParen},
	{",", TokenComma},
}

// Lexer scans a formula or statement into tokens.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0),
	}
}

// Tokenize scans the whole input. The result always ends with a TokenEOF.
// Characters that start no known symbol become TokenIllegal tokens and are
// reported by the parser.
func (l *Lexer) Tokenize() []Token {
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if unicode.IsSpace(r) {
			l.position += size
			continue
		}

		if l.matchSymbol() {
			continue
		}

		if strings.ContainsRune(symbolStart, r) {
			// '|', '&', '[', '<', '=' not followed by the rest of an alias
			l.addToken(TokenIllegal, string(r), l.position)
			l.position += size
			continue
		}

		l.lexIdent()
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens
}

func (l *Lexer) matchSymbol() bool {
	rest := l.input[l.position:]
	for _, s := range spelling {
		if strings.HasPrefix(rest, s.text) {
			l.addToken(s.typ, s.text, l.position)
			l.position += len(s.text)
			return true
		}
	}
	return false
}

// lexIdent consumes a run of characters that neither start a symbol nor are
// whitespace.
func (l *Lexer) lexIdent() {
	start := l.position
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if unicode.IsSpace(r) || strings.ContainsRune(symbolStart, r) {
			break
		}
		l.position += size
	}
	l.addToken(TokenIdent, l.input[start:l.position], start)
}

func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}
