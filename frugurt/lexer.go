package frugurt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const eof = -1

// lexer pulls one token at a time from an immutable buffer. Whitespace and
// comments are skipped before every token.
type lexer struct {
	input string

	offset     int
	readOffset int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{}
	l.Reset(input)
	return l
}

// Reset rewinds the lexer onto input.
func (l *lexer) Reset(input string) {
	*l = lexer{input: input, line: 1}
	l.readRune()
}

func (l *lexer) readRune() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.offset = l.readOffset
	l.column++
	if l.readOffset >= len(l.input) {
		l.ch = eof
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readOffset:])
	l.readOffset += w
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.readOffset >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readOffset:])
	return r
}

func (l *lexer) position() Position {
	return Position{Offset: l.offset, Line: l.line, Column: l.column}
}

// NextToken returns the next significant token. At the end of the input it
// keeps returning an EOF token.
func (l *lexer) NextToken() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{Type: tokenIllegal, Span: err.Span}, err
	}

	start := l.position()

	switch ch := l.ch; {
	case ch == eof:
		return Token{Type: tokenEOF, Span: Span{Start: start, End: start}}, nil
	case ch == '"':
		return l.readString(start)
	case isIdentifierStart(ch):
		l.readIdentifier()
		return l.makeToken(tokenIdent, start), nil
	case isDigit(ch), ch == '.' && isDigit(l.peekRune()):
		l.readNumber()
		return l.makeToken(tokenNumber, start), nil
	case ch == '=' && !isOperatorRune(l.peekRune()):
		l.readRune()
		return l.makeToken(tokenAssign, start), nil
	case ch == '=' && l.peekRune() == '>' && !l.operatorContinuesAfter(2):
		l.readRune()
		l.readRune()
		return l.makeToken(tokenArrow, start), nil
	case isOperatorRune(ch):
		l.readOperator()
		return l.makeToken(tokenOperator, start), nil
	case ch == ':' && l.peekRune() == '{':
		l.readRune()
		l.readRune()
		return l.makeToken(tokenInstance, start), nil
	case ch == '$' && l.peekRune() == '(':
		l.readRune()
		l.readRune()
		return l.makeToken(tokenCurry, start), nil
	}

	if tt, ok := punctuation[l.ch]; ok {
		l.readRune()
		return l.makeToken(tt, start), nil
	}

	bad := l.ch
	l.readRune()
	err := &LexError{
		Reason: InvalidCharacter,
		Detail: strconv.QuoteRune(bad),
		Span:   Span{Start: start, End: l.position()},
	}
	return Token{Type: tokenIllegal, Literal: string(bad), Span: err.Span}, err
}

var punctuation = map[rune]TokenType{
	',': tokenComma,
	':': tokenColon,
	';': tokenSemicolon,
	'.': tokenDot,
	'(': tokenLParen,
	')': tokenRParen,
	'{': tokenLBrace,
	'}': tokenRBrace,
}

func (l *lexer) makeToken(tt TokenType, start Position) Token {
	return Token{
		Type:    tt,
		Literal: l.input[start.Offset:l.offset],
		Span:    Span{Start: start, End: l.position()},
	}
}

func (l *lexer) skipWhitespaceAndComments() *LexError {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readRune()
		case l.ch == '/' && l.peekRune() == '/':
			for l.ch != eof && l.ch != '\n' {
				l.readRune()
			}
		case l.ch == '/' && l.peekRune() == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// Block comments do not nest; the first */ closes the comment.
func (l *lexer) skipBlockComment() *LexError {
	start := l.position()
	l.readRune()
	l.readRune()
	for {
		switch {
		case l.ch == eof:
			return &LexError{Reason: UnterminatedComment, Span: Span{Start: start, End: l.position()}}
		case l.ch == '*' && l.peekRune() == '/':
			l.readRune()
			l.readRune()
			return nil
		default:
			l.readRune()
		}
	}
}

func (l *lexer) readIdentifier() {
	for isIdentifierRune(l.ch) {
		l.readRune()
	}
}

// readNumber accepts digits with an optional fraction, or a bare fraction
// such as .5. A trailing dot is only taken when it cannot start a property
// access.
func (l *lexer) readNumber() {
	for isDigit(l.ch) {
		l.readRune()
	}
	if l.ch == '.' && !isIdentifierStart(l.peekRune()) && l.peekRune() != '.' {
		l.readRune()
		for isDigit(l.ch) {
			l.readRune()
		}
	}
}

// readOperator consumes the longest run of operator characters. The run
// stops short of a comment opener.
func (l *lexer) readOperator() {
	for isOperatorRune(l.ch) {
		if l.ch == '/' && (l.peekRune() == '/' || l.peekRune() == '*') {
			return
		}
		l.readRune()
	}
}

// operatorContinuesAfter reports whether the rune n positions past the
// current one is an operator character.
func (l *lexer) operatorContinuesAfter(n int) bool {
	rest := l.input[l.offset:]
	for i := 0; i < n; i++ {
		_, w := utf8.DecodeRuneInString(rest)
		if w == 0 {
			return false
		}
		rest = rest[w:]
	}
	r, w := utf8.DecodeRuneInString(rest)
	return w > 0 && isOperatorRune(r)
}

func (l *lexer) readString(start Position) (Token, error) {
	var sb strings.Builder
	l.readRune()

	for {
		switch l.ch {
		case eof, '\n':
			err := &LexError{Reason: UnterminatedString, Span: Span{Start: start, End: l.position()}}
			return Token{Type: tokenIllegal, Literal: l.input[start.Offset:l.offset], Span: err.Span}, err
		case '"':
			l.readRune()
			tok := l.makeToken(tokenString, start)
			tok.Value = sb.String()
			return tok, nil
		case '\\':
			if err := l.readEscape(&sb); err != nil {
				l.skipRestOfString()
				return Token{Type: tokenIllegal, Literal: l.input[start.Offset:l.offset], Span: err.Span}, err
			}
		default:
			sb.WriteRune(l.ch)
			l.readRune()
		}
	}
}

func (l *lexer) readEscape(sb *strings.Builder) *LexError {
	escStart := l.position()
	l.readRune()

	if b, ok := simpleEscapes[l.ch]; ok {
		sb.WriteByte(b)
		l.readRune()
		return nil
	}

	switch l.ch {
	case '\n':
		l.readRune()
		return nil
	case '\r':
		if l.peekRune() == '\n' {
			l.readRune()
			l.readRune()
			return nil
		}
	case 'u':
		return l.readUnicodeEscape(sb, escStart)
	}

	if l.ch != eof && l.ch != '\n' {
		l.readRune()
	}
	return &LexError{
		Reason: InvalidEscape,
		Detail: strconv.Quote(l.input[escStart.Offset:l.offset]),
		Span:   Span{Start: escStart, End: l.position()},
	}
}

var simpleEscapes = map[rune]byte{
	'\\': '\\',
	'"':  '"',
	't':  '\t',
	'n':  '\n',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
}

func (l *lexer) readUnicodeEscape(sb *strings.Builder, escStart Position) *LexError {
	invalid := func() *LexError {
		return &LexError{
			Reason: InvalidEscape,
			Detail: strconv.Quote(l.input[escStart.Offset:l.offset]),
			Span:   Span{Start: escStart, End: l.position()},
		}
	}

	l.readRune()
	if l.ch != '{' {
		return invalid()
	}
	l.readRune()
	digitsStart := l.offset
	for isHexDigit(l.ch) {
		l.readRune()
	}
	digits := l.input[digitsStart:l.offset]
	if digits == "" || l.ch != '}' {
		return invalid()
	}
	l.readRune()

	code, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf8.ValidRune(rune(code)) {
		return invalid()
	}
	sb.WriteRune(rune(code))
	return nil
}

// skipRestOfString moves past the closing quote of a string that failed to
// decode, so lexing can continue after the error.
func (l *lexer) skipRestOfString() {
	for l.ch != eof && l.ch != '\n' && l.ch != '"' {
		if l.ch == '\\' {
			l.readRune()
		}
		l.readRune()
	}
	if l.ch == '"' {
		l.readRune()
	}
}

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune("-+*/%<>&|^!?=", r)
}

// Tokenize lexes the whole input, for tooling that wants the raw token
// stream. It stops at the first lexical error.
func Tokenize(input string) ([]Token, error) {
	l := newLexer(input)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == tokenEOF {
			return toks, nil
		}
	}
}

// Describe returns a short human readable label for the token's category.
func (t TokenType) Describe() string {
	switch t {
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenOperator:
		return "operator"
	case tokenEOF:
		return "end of input"
	case tokenIllegal:
		return "illegal token"
	}
	return fmt.Sprintf("%q", string(t))
}
