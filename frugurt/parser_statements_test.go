package frugurt

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, source string) *File {
	t.Helper()
	file, err := Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return file
}

func parseError(t *testing.T, source string) Diagnostics {
	t.Helper()
	file, err := Parse(source)
	if err == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	if file != nil {
		t.Fatalf("expected no file on failure, got %d statements", len(file.Statements))
	}
	var diags Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected Diagnostics, got %T", err)
	}
	return diags
}

func sexprLines(file *File) string {
	lines := make([]string, len(file.Statements))
	for i, stmt := range file.Statements {
		lines[i] = Sexpr(stmt)
	}
	return strings.Join(lines, "\n")
}

func TestParseStatementShapes(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"let", "let x = 1;", "(let x 1)"},
		{"set", "x = 2;", "(set x 2)"},
		{"set_prop", "a.b.c = 3;", "(set-prop (. a b) c 3)"},
		{"expression_statement", "f(1);", "(expr (call f 1))"},
		{"statement_block", "{ let x = 1; }", "(block (let x 1))"},
		{"empty_block", "{}", "(block)"},
		{"nested_blocks", "{ { f(); } }", "(block (block (expr (call f))))"},
		{"if_without_else", "if a { f(); }", "(if a (block (expr (call f))))"},
		{"separate_ifs", "if a {} if b {} else {}", "(if a (block))\n(if b (block) (block))"},
		{"else_binds_inner_if", "if a { if b {} else {} }", "(if a (block (if b (block) (block))))"},
		{"else_if_chain", "if a {} else if b {} else {}", "(if a (block) (if b (block) (block)))"},
		{"while", "while x < 10 { x = x + 1; }", "(while (< x 10) (block (set x (+ x 1))))"},
		{"loop_control", "while true { break; continue; }", "(while true (block (break) (continue)))"},
		{"bare_return", "return;", "(return)"},
		{"return_value", "return a + 1;", "(return (+ a 1))"},
		{"let_if_expression", "let y = if c {1} else {2};", "(let y (if-expr c (block-expr 1) (block-expr 2)))"},
		{"if_expression_statement", "if c {1} else {2};", "(expr (if-expr c (block-expr 1) (block-expr 2)))"},
		{"if_expression_in_arithmetic", "if c {1} else {2} + 3;", "(expr (+ (if-expr c (block-expr 1) (block-expr 2)) 3))"},
		{"value_block_statement", "{1} + 2;", "(expr (+ (block-expr 1) 2))"},
		{"value_block_call", "{f}(1);", "(expr (call (block-expr f) 1))"},
		{"scope_statement", "scope s { let a = 1; }", "(scope s (let a 1))"},
		{"scope_expression_statement", "scope s { a };", "(expr (scope-expr s a))"},
		{"ambient_scope", "let s = scope();", "(let s (scope))"},
		{"function_value", "let f = fn(x) { return x; };", "(let f (fn (x) (block (return x))))"},
		{"contextual_let", "let struct = 1;", "(let struct 1)"},
		{"keyword_let_name", "let while = 1;", "(let while 1)"},
		{"keyword_param_name", "let f = fn(return) { 1 };", "(let f (fn (return) (block-expr 1)))"},
		{"keyword_named_argument", "f(if: 1);", "(expr (call f if:1))"},
		{"operator_as_variable", "operator + 1;", "(expr (+ operator 1))"},
		{"import", "let m = import \"m.fru\";", "(let m (import \"m.fru\"))"},
		{"comments", "// lead\nlet /* mid */ x = 1; // tail", "(let x 1)"},
		{"empty_file", "  // nothing\n", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sexprLines(mustParse(t, tc.source))
			if got != tc.want {
				t.Fatalf("parse %q:\nexpected %s\ngot      %s", tc.source, tc.want, got)
			}
		})
	}
}

func TestParseBlockDisambiguation(t *testing.T) {
	expr := mustParseExpression(t, "{ let x = 1; x }")
	block, ok := expr.(*BlockExpr)
	if !ok {
		t.Fatalf("expected *BlockExpr, got %T", expr)
	}
	if len(block.Body) != 1 {
		t.Fatalf("expected one statement before the value, got %d", len(block.Body))
	}
	if v, ok := block.Value.(*Variable); !ok || v.Name != "x" {
		t.Fatalf("expected trailing x, got %#v", block.Value)
	}

	file := mustParse(t, "{ let x = 1; }")
	stmt, ok := file.Statements[0].(*BlockStmt)
	if !ok {
		t.Fatalf("expected *BlockStmt, got %T", file.Statements[0])
	}
	if len(stmt.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(stmt.Body))
	}

	fn, ok := mustParseExpression(t, "fn() { 1 }").(*FuncExpr)
	if !ok {
		t.Fatalf("expected function literal")
	}
	if _, ok := fn.Body.(*BlockExpr); !ok {
		t.Fatalf("expected function body to be a value block, got %T", fn.Body)
	}
	fn, ok = mustParseExpression(t, "fn() { 1; }").(*FuncExpr)
	if !ok {
		t.Fatalf("expected function literal")
	}
	if _, ok := fn.Body.(*BlockStmt); !ok {
		t.Fatalf("expected function body to be a statement block, got %T", fn.Body)
	}
}

func TestParseDanglingElse(t *testing.T) {
	file := mustParse(t, "if a {} if b {} else {}")
	if len(file.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(file.Statements))
	}
	first := file.Statements[0].(*IfStmt)
	if first.Else != nil {
		t.Fatalf("expected outer if to have no else, got %T", first.Else)
	}
	second := file.Statements[1].(*IfStmt)
	if _, ok := second.Else.(*BlockStmt); !ok {
		t.Fatalf("expected else bound to the second if, got %T", second.Else)
	}
}

func TestParseStatementErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		message string
		line    int
		column  int
	}{
		{"missing_semicolon", "let x = 1", "expected \";\", got end of input", 1, 10},
		{"missing_semicolon_after_call", "f(1) g(2);", "expected \";\", got IDENT \"g\"", 1, 6},
		{"let_name_is_a_word", "let 1 = 1;", "expected variable name, got NUMBER \"1\"", 1, 5},
		{"keyword_is_not_a_variable", "let x = while;", "unexpected IDENT \"while\"", 1, 9},
		{"if_value_without_else", "if c {1}", "if expression requires an else branch", 1, 9},
		{"if_statement_else_value", "if c {} else {2}", "expected \";\", got \"}\"", 1, 16},
		{"while_value_body", "while c {1}", "expected \";\", got \"}\"", 1, 11},
		{"value_then_more", "{ 1 2 }", "expected \";\" or \"}\", got NUMBER \"2\"", 1, 5},
		{"unterminated_block", "{ let x = 1;", "unterminated block", 1, 13},
		{"bad_assignment_target", "f() = 1;", "cannot assign to this expression", 1, 1},
		{"break_needs_semicolon", "while c { break }", "expected \";\", got \"}\"", 1, 17},
		{"stray_brace", "}", "unexpected \"}\"", 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := parseError(t, tc.source)
			if len(diags) != 1 {
				t.Fatalf("expected exactly one diagnostic, got %v", diags)
			}
			d := diags[0]
			if !strings.Contains(d.Message, tc.message) {
				t.Fatalf("expected message containing %q, got %q", tc.message, d.Message)
			}
			if d.Span.Start.Line != tc.line || d.Span.Start.Column != tc.column {
				t.Fatalf("expected diagnostic at %d:%d, got %s", tc.line, tc.column, d.Span.Start)
			}
		})
	}
}

func TestParseLexErrorsSurfaceAsDiagnostics(t *testing.T) {
	diags := parseError(t, "let x = \"abc")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if diags[0].Kind != KindLex || diags[0].Message != string(UnterminatedString) {
		t.Fatalf("expected unterminated string lex diagnostic, got %#v", diags[0])
	}
	if got := diags[0].Error(); got != "lex error at 1:9: unterminated string" {
		t.Fatalf("unexpected error text %q", got)
	}

	diags = parseError(t, "# let x = 1;")
	if len(diags) != 1 || diags[0].Kind != KindLex {
		t.Fatalf("expected a single lex diagnostic, got %v", diags)
	}
}

func TestParseNestingLimit(t *testing.T) {
	deep := maxNesting * 3
	parens := "let x = " + strings.Repeat("(", deep) + "1" + strings.Repeat(")", deep) + ";"

	cases := []struct {
		name    string
		source  string
		message string
	}{
		{"parentheses", parens, "expression nested too deeply"},
		{"blocks", strings.Repeat("{", deep) + strings.Repeat("}", deep), "block nested too deeply"},
		{"else_if_chain", "if a {}" + strings.Repeat(" else if a {}", deep), "nested too deeply"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := parseError(t, tc.source)
			if len(diags) != 1 {
				t.Fatalf("expected one diagnostic, got %d", len(diags))
			}
			if !strings.HasSuffix(diags[0].Message, tc.message) {
				t.Fatalf("expected %q, got %q", tc.message, diags[0].Message)
			}
		})
	}

	shallow := "let x = " + strings.Repeat("(", 1000) + "1" + strings.Repeat(")", 1000) + ";"
	mustParse(t, shallow)

	file, err := Config{Recover: true}.Parse(parens + "\nlet y = 2;")
	var diags Diagnostics
	if !errors.As(err, &diags) || len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", err)
	}
	if got := sexprLines(file); got != "(let y 2)" {
		t.Fatalf("expected parsing to resume after the nested statement, got %q", got)
	}
}

func TestParseRecovery(t *testing.T) {
	source := "let = 1; let y = 2; let z 3; let w = 4;"

	file, err := Config{Recover: true}.Parse(source)
	if err == nil {
		t.Fatalf("expected diagnostics")
	}
	var diags Diagnostics
	if !errors.As(err, &diags) || len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", err)
	}
	if file == nil {
		t.Fatalf("expected partial file in recovery mode")
	}
	if got := sexprLines(file); got != "(let y 2)\n(let w 4)" {
		t.Fatalf("unexpected recovered statements:\n%s", got)
	}
	if !strings.Contains(err.Error(), "\n") {
		t.Fatalf("expected one line per diagnostic, got %q", err.Error())
	}

	_, err = Config{Recover: true, MaxErrors: 1}.Parse(source)
	if !errors.As(err, &diags) || len(diags) != 1 {
		t.Fatalf("expected MaxErrors to cap diagnostics at 1, got %v", err)
	}

	_, err = Parse(source)
	if !errors.As(err, &diags) || len(diags) != 1 {
		t.Fatalf("expected default config to stop at first error, got %v", err)
	}
}

func TestParseRecoveryPastIllegalTokens(t *testing.T) {
	file, err := Config{Recover: true}.Parse("# # let a = 1;")
	if err == nil {
		t.Fatalf("expected diagnostics")
	}
	var diags Diagnostics
	if !errors.As(err, &diags) || len(diags) != 2 {
		t.Fatalf("expected 2 lex diagnostics, got %v", err)
	}
	for _, d := range diags {
		if d.Kind != KindLex {
			t.Fatalf("expected only lex diagnostics, got %v", diags)
		}
	}
	if file == nil {
		t.Fatalf("expected partial file")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	source := `struct P { pub x: Int = 1; impl { len(self) { self.x } } }
let p = P:{x: 2};
while p.x > 0 { p.x = p.x - 1; }
commutative operator <+> (a: P, b: Int) { a }`

	first := mustParse(t, source)
	second := mustParse(t, source)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical ASTs for identical input")
	}
}

func TestParseSpans(t *testing.T) {
	file := mustParse(t, "let x = 1;\nwhile x { x = x - 1; }")
	let := file.Statements[0].(*LetStmt)
	if s := let.Span(); s.Start.Offset != 0 || s.End.Offset != 10 {
		t.Fatalf("unexpected let span %s", s)
	}
	loop := file.Statements[1].(*WhileStmt)
	if s := loop.Span(); s.Start.Line != 2 || s.Start.Column != 1 || s.End.Column != 23 {
		t.Fatalf("unexpected while span %s", s)
	}
	set := loop.Body.Body[0].(*SetStmt)
	if s := set.Span(); s.Start.Column != 11 || s.End.Column != 21 {
		t.Fatalf("unexpected set span %s", s)
	}
}
