package frugurt

import (
	"errors"
	"strings"
	"testing"
)

func mustParseExpression(t *testing.T, source string) Expression {
	t.Helper()
	expr, err := ParseExpression(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return expr
}

func parseExpressionError(t *testing.T, source string) Diagnostics {
	t.Helper()
	_, err := ParseExpression(source)
	if err == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	var diags Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected Diagnostics, got %T", err)
	}
	if len(diags) == 0 {
		t.Fatalf("expected at least one diagnostic for %q", source)
	}
	return diags
}

func TestParseExpressionShapes(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"product_binds_tighter", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"power_is_left_associative", "2 ** 3 ** 2", "(** (** 2 3) 2)"},
		{"sum_is_left_associative", "1 - 2 - 3", "(- (- 1 2) 3)"},
		{"custom_operator_binds_tightest", "a + b <=> c", "(+ a (<=> b c))"},
		{"custom_operators_associate_left", "a |> b |> c", "(|> (|> a b) c)"},
		{"logic_ladder", "a || b && c == d", "(|| a (&& b (== c d)))"},
		{"comparison_below_sum", "x < y + 1", "(< x (+ y 1))"},
		{"concat_at_power_level", "a * b <> c", "(* a (<> b c))"},
		{"parentheses", "(1 + 2) * 3", "(* (paren (+ 1 2)) 3)"},
		{"postfix_chain", "f(x).y$(z):{w}", "(new (curry (. (call f x) y) z) w)"},
		{"postfix_before_binary", "a.b(x):{y}.c", "(. (new (call (. a b) x) y) c)"},
		{"curry_then_call", "f$(1)(2)", "(call (curry f 1) 2)"},
		{"named_arguments", "Point:{x: 1, y: 2,}", "(new Point x:1 y:2)"},
		{"empty_arguments", "f()", "(call f)"},
		{"signed_literal", "a - -1", "(- a -1)"},
		{"signed_fraction", "+.5", "+.5"},
		{"literals", "f(true, false, nah, \"s\", 1.)", "(call f true false nah \"s\" 1.)"},
		{"function", "fn(a, b: Int = 2,) { a + b }", "(fn (a (= b:Int 2)) (block-expr (+ a b)))"},
		{"function_statement_body", "fn() { return 1; }", "(fn () (block (return 1)))"},
		{"if_expression", "if c {1} else {2}", "(if-expr c (block-expr 1) (block-expr 2))"},
		{"else_if_chain", "if a {1} else if b {2} else {3}", "(if-expr a (block-expr 1) (if-expr b (block-expr 2) (block-expr 3)))"},
		{"value_block", "{ let x = 1; x }", "(block-expr (let x 1) x)"},
		{"block_in_arithmetic", "{1} + 2", "(+ (block-expr 1) 2)"},
		{"ambient_scope", "scope()", "(scope)"},
		{"scope_modifier", "scope s { let a = 1; a }", "(scope-expr s (let a 1) a)"},
		{"import", "import \"lib\" + 1", "(import (+ \"lib\" 1))"},
		{"contextual_words_are_variables", "struct + impl.get", "(+ struct (. impl get))"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sexpr(mustParseExpression(t, tc.source))
			if got != tc.want {
				t.Fatalf("parse %q:\nexpected %s\ngot      %s", tc.source, tc.want, got)
			}
		})
	}
}

func TestParseNumberValues(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"42", "42"},
		{"1.25", "1.25"},
		{".5", "0.5"},
		{"3.", "3"},
		{"-7", "-7"},
		{"-.25", "-0.25"},
		{"+8", "8"},
		{"0.1", "0.1"},
	}

	for _, tc := range cases {
		lit, ok := mustParseExpression(t, tc.source).(*NumberLit)
		if !ok {
			t.Fatalf("expected number literal for %q", tc.source)
		}
		if lit.Value.String() != tc.want {
			t.Fatalf("value of %q: expected %s, got %s", tc.source, tc.want, lit.Value.String())
		}
		if lit.Raw != tc.source {
			t.Fatalf("raw of %q: got %q", tc.source, lit.Raw)
		}
	}
}

func TestParseExpressionNodeTypes(t *testing.T) {
	expr := mustParseExpression(t, "f(x).y$(z):{w}")
	inst, ok := expr.(*InstantiationExpr)
	if !ok {
		t.Fatalf("expected instantiation, got %T", expr)
	}
	curry, ok := inst.Callee.(*CurryCallExpr)
	if !ok {
		t.Fatalf("expected curry call callee, got %T", inst.Callee)
	}
	prop, ok := curry.Callee.(*PropAccessExpr)
	if !ok || prop.Name != "y" {
		t.Fatalf("expected property access .y, got %#v", curry.Callee)
	}
	call, ok := prop.Target.(*CallExpr)
	if !ok {
		t.Fatalf("expected call target, got %T", prop.Target)
	}
	if v, ok := call.Callee.(*Variable); !ok || v.Name != "f" {
		t.Fatalf("expected callee f, got %#v", call.Callee)
	}

	if got := expr.Span(); got.Start.Offset != 0 || got.End.Offset != len("f(x).y$(z):{w}") {
		t.Fatalf("expected span to cover whole input, got %s", got)
	}
}

func TestParseExpressionErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		message string
	}{
		{"if_expression_without_else", "if c {1}", "if expression requires an else branch"},
		{"if_expression_statement_arm", "if c {1;}", "block used as a value must end with an expression"},
		{"if_expression_statement_else", "if c {1} else {2;}", "block used as a value must end with an expression"},
		{"dangling_operator", "1 +", "expected expression, got end of input"},
		{"unclosed_call", "f(1, 2", "expected \")\", got end of input"},
		{"reserved_word", "let", "unexpected IDENT \"let\""},
		{"leading_operator", "* 2", "unexpected OPERATOR \"*\""},
		{"detached_sign", "- 1", "unexpected OPERATOR \"-\""},
		{"trailing_tokens", "1 2", "expected end of input, got NUMBER \"2\""},
		{"property_needs_name", "a.", "expected identifier, got end of input"},
		{"value_block_needs_value", "{ let x = 1; }", "block used as a value must end with an expression"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := parseExpressionError(t, tc.source)
			if diags[0].Kind != KindSyntax {
				t.Fatalf("expected syntax diagnostic, got %s", diags[0].Kind)
			}
			if !strings.Contains(diags[0].Message, tc.message) {
				t.Fatalf("expected message containing %q, got %q", tc.message, diags[0].Message)
			}
		})
	}
}

func TestPrecedenceTable(t *testing.T) {
	if Precedence("||") >= Precedence("&&") || Precedence("+") >= Precedence("*") {
		t.Fatalf("built-in levels out of order")
	}
	if Precedence("**") != Precedence("<>") {
		t.Fatalf("expected ** and <> to share a level")
	}
	for _, op := range []string{"<=>", "|>", "!", "?", "^"} {
		if Precedence(op) != precCustom || IsBuiltinOperator(op) {
			t.Fatalf("expected %s to be a custom operator", op)
		}
	}
	if !IsBuiltinOperator("%") {
		t.Fatalf("expected %% to be built in")
	}
}
