package frugurt

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent    TokenType = "IDENT"
	tokenNumber   TokenType = "NUMBER"
	tokenString   TokenType = "STRING"
	tokenOperator TokenType = "OPERATOR"

	tokenAssign    TokenType = "="
	tokenArrow     TokenType = "=>"
	tokenComma     TokenType = ","
	tokenColon     TokenType = ":"
	tokenSemicolon TokenType = ";"
	tokenDot       TokenType = "."
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenCurry     TokenType = "$("
	tokenInstance  TokenType = ":{"
)

// Token captures lexical information for the parser. Literal is the raw
// source slice; Value holds the decoded text of string literals.
type Token struct {
	Type    TokenType
	Literal string
	Value   string
	Span    Span

	err *LexError
}

func (t Token) String() string {
	switch t.Type {
	case tokenEOF:
		return "end of input"
	case tokenIdent, tokenNumber, tokenString, tokenOperator:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}

// Position identifies a location in the source. Offset is a byte offset,
// Line and Column are 1-based and count runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open source range [Start, End) covered by a token or node.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

func spanBetween(start, end Span) Span {
	return Span{Start: start.Start, End: end.End}
}

// reservedWords cannot be read as a variable reference or start a plain
// expression statement. They may still be declared as names, and the other
// keywords only matter in the positions that introduce them.
var reservedWords = map[string]struct{}{
	"let":      {},
	"if":       {},
	"else":     {},
	"while":    {},
	"return":   {},
	"break":    {},
	"continue": {},
	"fn":       {},
	"scope":    {},
	"import":   {},
	"true":     {},
	"false":    {},
	"nah":      {},
}

// Keywords lists every word the grammar gives meaning to, reserved or
// contextual.
var Keywords = []string{
	"break", "class", "commutative", "constraints", "continue", "data", "else",
	"false", "fn", "get", "if", "impl", "import", "let", "nah", "operator",
	"pub", "return", "scope", "set", "static", "struct", "true", "watch", "while",
}

// IsReserved reports whether word can never be read back as a variable.
func IsReserved(word string) bool {
	_, ok := reservedWords[word]
	return ok
}
