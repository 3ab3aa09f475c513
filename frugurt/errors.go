package frugurt

import (
	"fmt"
	"strings"
)

// LexErrorReason classifies a lexical failure.
type LexErrorReason string

const (
	UnterminatedString  LexErrorReason = "unterminated string"
	UnterminatedComment LexErrorReason = "unterminated comment"
	InvalidEscape       LexErrorReason = "invalid escape sequence"
	InvalidCharacter    LexErrorReason = "invalid character"
)

// LexError is returned by the lexer when the input cannot be tokenized.
type LexError struct {
	Reason LexErrorReason
	Detail string
	Span   Span
}

func (e *LexError) Error() string {
	msg := string(e.Reason)
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	return fmt.Sprintf("lex error at %d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, msg)
}

// DiagnosticKind separates lexical from syntactic failures.
type DiagnosticKind string

const (
	KindLex    DiagnosticKind = "lex"
	KindSyntax DiagnosticKind = "syntax"
)

// Diagnostic is a single span-tagged problem found while parsing.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Span    Span
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s error at %d:%d: %s", d.Kind, d.Span.Start.Line, d.Span.Start.Column, d.Message)
}

// Frame renders the offending source line with the span underlined.
func (d Diagnostic) Frame(source string) string {
	return formatCodeFrame(source, d.Span)
}

func diagnosticFromLexError(err *LexError) Diagnostic {
	msg := string(err.Reason)
	if err.Detail != "" {
		msg += " " + err.Detail
	}
	return Diagnostic{Kind: KindLex, Message: msg, Span: err.Span}
}

// Diagnostics is the ordered, non-empty list of problems returned by a
// failed parse.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].Error()
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}
