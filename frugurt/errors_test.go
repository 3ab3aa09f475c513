package frugurt

import (
	"strings"
	"testing"
)

func TestDiagnosticErrorText(t *testing.T) {
	d := Diagnostic{
		Kind:    KindSyntax,
		Message: "expected \";\", got end of input",
		Span:    Span{Start: Position{Offset: 9, Line: 3, Column: 7}},
	}
	if got := d.Error(); got != "syntax error at 3:7: expected \";\", got end of input" {
		t.Fatalf("unexpected error text %q", got)
	}

	lexErr := &LexError{Reason: InvalidEscape, Detail: `"\\q"`, Span: Span{Start: Position{Line: 1, Column: 2}}}
	if got := lexErr.Error(); got != `lex error at 1:2: invalid escape sequence "\\q"` {
		t.Fatalf("unexpected lex error text %q", got)
	}

	var empty Diagnostics
	if empty.Error() != "no diagnostics" {
		t.Fatalf("unexpected empty text %q", empty.Error())
	}
}

func TestDiagnosticFrame(t *testing.T) {
	source := "let a = 1;\nlet x = foo bar;\n"
	_, err := Parse(source)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	diags := err.(Diagnostics)
	frame := diags[0].Frame(source)

	if !strings.Contains(frame, "line 2, column 13") {
		t.Fatalf("expected location header, got:\n%s", frame)
	}
	if !strings.Contains(frame, " 2 | let x = foo bar;") {
		t.Fatalf("expected offending line, got:\n%s", frame)
	}
	lines := strings.Split(frame, "\n")
	caret := lines[len(lines)-1]
	if !strings.HasSuffix(caret, strings.Repeat(" ", 12)+"^^^") {
		t.Fatalf("expected caret under bar, got %q", caret)
	}
}

func TestDiagnosticFrameEdges(t *testing.T) {
	if got := formatCodeFrame("", Span{Start: Position{Line: 1, Column: 1}}); got != "" {
		t.Fatalf("expected empty frame for empty source, got %q", got)
	}
	if got := formatCodeFrame("a", Span{Start: Position{Line: 5, Column: 1}}); got != "" {
		t.Fatalf("expected empty frame past the last line, got %q", got)
	}

	span := Span{
		Start: Position{Line: 1, Column: 3},
		End:   Position{Line: 2, Column: 2},
	}
	frame := formatCodeFrame("ab\"cd\nef", span)
	if !strings.HasSuffix(frame, "  ^^^") {
		t.Fatalf("expected multi-line span underlined to end of line, got %q", frame)
	}
}
