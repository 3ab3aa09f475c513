package frugurt

import "fmt"

const defaultMaxErrors = 10

// maxNesting bounds how deeply expressions, blocks and else-if chains may
// nest before the parser gives up on the input.
const maxNesting = 10000

// Config controls how a source buffer is parsed. The zero value stops at the
// first error.
type Config struct {
	// Recover skips to the next statement boundary after a syntax error
	// and keeps parsing, collecting up to MaxErrors diagnostics.
	Recover bool

	// MaxErrors caps the diagnostics collected in recovery mode.
	MaxErrors int
}

func (c Config) maxErrors() int {
	if !c.Recover {
		return 1
	}
	if c.MaxErrors <= 0 {
		return defaultMaxErrors
	}
	return c.MaxErrors
}

// Parse parses a complete source file with the default configuration.
func Parse(source string) (*File, error) {
	return Config{}.Parse(source)
}

// Parse parses a complete source file. On failure the error is a non-empty
// Diagnostics; in recovery mode the partial File is returned alongside it.
func (c Config) Parse(source string) (*File, error) {
	p := newParser(source, c)
	file := p.parseFile()
	if len(p.errors) > 0 {
		if c.Recover {
			return file, p.errors
		}
		return nil, p.errors
	}
	return file, nil
}

// ParseExpression parses source as a single expression with nothing after it.
func ParseExpression(source string) (Expression, error) {
	p := newParser(source, Config{})
	expr := p.parseExpression()
	if expr != nil && p.curToken.Type != tokenEOF {
		p.errorExpected(p.curToken, "end of input")
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return expr, nil
}

type parser struct {
	l   *lexer
	cfg Config

	curToken  Token
	peekToken Token
	ahead     []Token

	errors    Diagnostics
	stmtStart int
	nestLev   int
}

func newParser(source string, cfg Config) *parser {
	p := &parser{l: newLexer(source), cfg: cfg}
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances by one token. Lexical errors are reported when the
// offending token becomes current, not when it is first looked ahead at.
func (p *parser) nextToken() {
	p.curToken = p.peekToken
	if len(p.ahead) > 0 {
		p.peekToken = p.ahead[0]
		p.ahead = p.ahead[1:]
	} else {
		p.peekToken = p.lex()
	}
	if p.curToken.err != nil {
		p.addDiagnostic(diagnosticFromLexError(p.curToken.err))
	}
}

func (p *parser) lex() Token {
	tok, err := p.l.NextToken()
	if lexErr, ok := err.(*LexError); ok {
		tok.err = lexErr
	}
	return tok
}

// peekAt returns the token n positions past the current one; peekAt(1) is
// peekToken.
func (p *parser) peekAt(n int) Token {
	switch n {
	case 0:
		return p.curToken
	case 1:
		return p.peekToken
	}
	for len(p.ahead) < n-1 {
		p.ahead = append(p.ahead, p.lex())
	}
	return p.ahead[n-2]
}

func (p *parser) parseFile() *File {
	file := &File{}
	start := p.curToken.Span

	for p.curToken.Type != tokenEOF && !p.stopped() {
		p.stmtStart = len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			file.Statements = append(file.Statements, stmt)
		}
		// A nil statement without a new diagnostic stopped on an illegal
		// token whose error was recorded earlier.
		if stmt == nil || p.failed() {
			if p.stopped() {
				break
			}
			p.synchronize()
		}
	}

	file.span = spanBetween(start, p.curToken.Span)
	return file
}

// stopped reports whether no further diagnostics may be collected.
func (p *parser) stopped() bool {
	return len(p.errors) >= p.cfg.maxErrors()
}

// failed reports whether an error has been recorded since the current
// top-level statement began. Nested productions bail out once it is true.
func (p *parser) failed() bool {
	return len(p.errors) > p.stmtStart
}

// synchronize skips to the next statement boundary: past a `;` or a closing
// brace at the current nesting depth, or up to a statement keyword.
func (p *parser) synchronize() {
	depth := 0
	for p.curToken.Type != tokenEOF {
		switch p.curToken.Type {
		case tokenLBrace, tokenInstance:
			depth++
		case tokenRBrace:
			if depth <= 1 {
				p.nextToken()
				return
			}
			depth--
		case tokenSemicolon:
			if depth == 0 {
				p.nextToken()
				return
			}
		case tokenIdent:
			if depth == 0 && startsStatement(p.curToken.Literal) {
				return
			}
		}
		p.nextToken()
	}
}

func startsStatement(word string) bool {
	switch word {
	case "let", "if", "while", "return", "break", "continue", "operator", "commutative", "struct", "class", "data":
		return true
	}
	return false
}

// enter records one more level of nesting. It reports false, with a
// diagnostic, once maxNesting is exceeded. Every call must be paired with
// leave.
func (p *parser) enter(what string) bool {
	p.nestLev++
	if p.nestLev > maxNesting {
		p.addSyntaxError(p.curToken.Span, what+" nested too deeply")
		return false
	}
	return true
}

func (p *parser) leave() {
	p.nestLev--
}

func (p *parser) isWord(tok Token, word string) bool {
	return tok.Type == tokenIdent && tok.Literal == word
}

// expect consumes the current token when it has type tt and reports an
// error otherwise.
func (p *parser) expect(tt TokenType) (Token, bool) {
	tok := p.curToken
	if tok.Type != tt {
		p.errorExpected(tok, tt.Describe())
		return tok, false
	}
	p.nextToken()
	return tok, true
}

// expectName consumes an identifier in a declaration position. Any word is
// accepted there, keywords included.
func (p *parser) expectName(what string) (Token, bool) {
	tok := p.curToken
	if tok.Type != tokenIdent {
		p.errorExpected(tok, what)
		return tok, false
	}
	p.nextToken()
	return tok, true
}

func (p *parser) addDiagnostic(d Diagnostic) {
	if p.stopped() {
		return
	}
	p.errors = append(p.errors, d)
}

func (p *parser) addSyntaxError(span Span, msg string) {
	// Illegal tokens already carry their lexical diagnostic.
	if p.curToken.Type == tokenIllegal {
		return
	}
	p.addDiagnostic(Diagnostic{Kind: KindSyntax, Message: msg, Span: span})
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addSyntaxError(tok.Span, fmt.Sprintf("expected %s, got %s", expected, tok))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addSyntaxError(tok.Span, fmt.Sprintf("unexpected %s", tok))
}
