package frugurt

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the S-expression form of node to w. A *File is printed one
// top-level statement per line.
func Fprint(w io.Writer, node Node) error {
	if file, ok := node.(*File); ok {
		for _, stmt := range file.Statements {
			if _, err := fmt.Fprintln(w, Sexpr(stmt)); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(w, Sexpr(node))
	return err
}

// Sexpr renders node as a single-line S-expression, e.g. `(+ 1 (* 2 3))`.
func Sexpr(node Node) string {
	var p printer
	p.print(node)
	return p.sb.String()
}

type printer struct {
	sb strings.Builder
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(&p.sb, format, args...)
}

// list prints `(head items...)`.
func (p *printer) list(head string, items ...Node) {
	p.sb.WriteString("(")
	p.sb.WriteString(head)
	for _, item := range items {
		p.sb.WriteString(" ")
		p.print(item)
	}
	p.sb.WriteString(")")
}

func (p *printer) print(node Node) {
	if node == nil {
		p.sb.WriteString("_")
		return
	}

	switch n := node.(type) {
	case *File:
		p.list("file", statementNodes(n.Statements)...)

	// Statements
	case *BlockStmt:
		p.list("block", statementNodes(n.Body)...)
	case *ScopeModifierStmt:
		p.list("scope", append([]Node{n.Scope}, statementNodes(n.Body)...)...)
	case *ExprStmt:
		p.list("expr", n.Expr)
	case *LetStmt:
		p.list("let "+n.Name, n.Value)
	case *SetStmt:
		p.list("set "+n.Name, n.Value)
	case *SetPropStmt:
		p.sb.WriteString("(set-prop ")
		p.print(n.Target)
		p.printf(" %s ", n.Name)
		p.print(n.Value)
		p.sb.WriteString(")")
	case *IfStmt:
		if n.Else != nil {
			p.list("if", n.Condition, n.Then, n.Else)
		} else {
			p.list("if", n.Condition, n.Then)
		}
	case *WhileStmt:
		p.list("while", n.Condition, n.Body)
	case *ReturnStmt:
		if n.Value != nil {
			p.list("return", n.Value)
		} else {
			p.list("return")
		}
	case *BreakStmt:
		p.list("break")
	case *ContinueStmt:
		p.list("continue")
	case *OperatorStmt:
		head := "operator " + n.Symbol
		if n.Commutative {
			head = "commutative " + head
		}
		p.list(head, n.Left, n.Right, n.Body)
	case *TypeStmt:
		items := make([]Node, 0, len(n.Members)+2)
		for _, m := range n.Members {
			items = append(items, m)
		}
		if n.Impl != nil {
			items = append(items, n.Impl)
		}
		if n.Constraints != nil {
			items = append(items, n.Constraints)
		}
		p.list(string(n.Kind)+" "+n.Name, items...)

	// Type members
	case *FieldDecl:
		head := "field " + memberHead(n.Pub, n.Static, n.Name, n.Type)
		if n.Default != nil {
			p.list(head, n.Default)
		} else {
			p.list(head)
		}
	case *PropertyDecl:
		items := make([]Node, len(n.Accessors))
		for i, a := range n.Accessors {
			items[i] = a
		}
		p.list("property "+memberHead(n.Pub, n.Static, n.Name, n.Type), items...)
	case *GetAccessor:
		if n.Arrow {
			p.list("get =>", n.Value)
		} else {
			p.list("get", n.Value)
		}
	case *SetAccessor:
		if n.Param != nil {
			p.list("set", n.Param, n.Body)
		} else {
			p.list("set", n.Body)
		}
	case *ImplSection:
		items := make([]Node, len(n.Methods))
		for i, m := range n.Methods {
			items[i] = m
		}
		p.list("impl", items...)
	case *Method:
		head := "method " + n.Name
		if n.Static {
			head = "static " + head
		}
		p.sb.WriteString("(" + head + " ")
		p.params(n.Params)
		p.sb.WriteString(" ")
		p.print(n.Body)
		p.sb.WriteString(")")
	case *ConstraintsSection:
		items := make([]Node, len(n.Watches))
		for i, w := range n.Watches {
			items[i] = w
		}
		p.list("constraints", items...)
	case *Watch:
		p.list("watch ("+strings.Join(n.Observed, " ")+")", n.Body)

	// Expressions
	case *NumberLit:
		p.sb.WriteString(n.Raw)
	case *StringLit:
		p.sb.WriteString(n.Raw)
	case *BoolLit:
		p.printf("%t", n.Value)
	case *NahLit:
		p.sb.WriteString("nah")
	case *Variable:
		p.sb.WriteString(n.Name)
	case *ScopeExpr:
		p.list("scope")
	case *FuncExpr:
		p.sb.WriteString("(fn ")
		p.params(n.Params)
		p.sb.WriteString(" ")
		p.print(n.Body)
		p.sb.WriteString(")")
	case *Param:
		name := n.Name
		if n.Type != "" {
			name += ":" + n.Type
		}
		if n.Default != nil {
			p.list("= "+name, n.Default)
		} else {
			p.sb.WriteString(name)
		}
	case *ParenExpr:
		p.list("paren", n.Inner)
	case *BlockExpr:
		p.list("block-expr", append(statementNodes(n.Body), n.Value)...)
	case *ScopeModifierExpr:
		items := append([]Node{n.Scope}, statementNodes(n.Body)...)
		p.list("scope-expr", append(items, n.Value)...)
	case *CallExpr:
		p.call("call", n.Callee, n.Args)
	case *CurryCallExpr:
		p.call("curry", n.Callee, n.Args)
	case *InstantiationExpr:
		p.call("new", n.Callee, n.Args)
	case *Argument:
		if n.Name != "" {
			p.sb.WriteString(n.Name + ":")
		}
		p.print(n.Value)
	case *PropAccessExpr:
		p.sb.WriteString("(. ")
		p.print(n.Target)
		p.printf(" %s)", n.Name)
	case *IfExpr:
		p.list("if-expr", n.Condition, n.Then, n.Else)
	case *ImportExpr:
		p.list("import", n.Path)
	case *BinaryExpr:
		p.list(n.Operator, n.Left, n.Right)
	default:
		p.printf("<%T>", node)
	}
}

func (p *printer) params(params []*Param) {
	p.sb.WriteString("(")
	for i, param := range params {
		if i > 0 {
			p.sb.WriteString(" ")
		}
		p.print(param)
	}
	p.sb.WriteString(")")
}

func (p *printer) call(head string, callee Expression, args []*Argument) {
	items := make([]Node, 0, len(args)+1)
	items = append(items, callee)
	for _, a := range args {
		items = append(items, a)
	}
	p.list(head, items...)
}

func memberHead(pub, static bool, name, typ string) string {
	var parts []string
	if pub {
		parts = append(parts, "pub")
	}
	if static {
		parts = append(parts, "static")
	}
	if typ != "" {
		name += ":" + typ
	}
	return strings.Join(append(parts, name), " ")
}

func statementNodes(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}
