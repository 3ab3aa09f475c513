package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/frugurt-lang/frugurt/frugurt"
)

type lintWarning struct {
	Pos     frugurt.Position
	Message string
}

type lintReporter struct {
	warnings []lintWarning
}

func (r *lintReporter) add(node frugurt.Node, format string, args ...any) {
	r.warnings = append(r.warnings, lintWarning{
		Pos:     node.Span().Start,
		Message: fmt.Sprintf(format, args...),
	})
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("frugurt analyze: source path required")
	}

	path, source, err := readSource(remaining[0])
	if err != nil {
		return err
	}
	file, err := frugurt.Parse(source)
	if err != nil {
		fmt.Print(renderDiagnostics(path, source, err))
		return errors.New("frugurt analyze: source has errors")
	}

	warnings := analyzeFile(file)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		fmt.Printf("%s:%d:%d: %s\n", path, warning.Pos.Line, warning.Pos.Column, warning.Message)
	}
	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

func analyzeFile(file *frugurt.File) []lintWarning {
	r := &lintReporter{}
	operators := make(map[frugurt.OperatorKey]frugurt.Position)

	frugurt.Walk(file, func(n frugurt.Node) bool {
		switch n := n.(type) {
		case *frugurt.File:
			lintUnreachable(r, n.Statements, nil)
		case frugurt.Body:
			var value frugurt.Expression
			if block, ok := n.(*frugurt.BlockExpr); ok {
				value = block.Value
			}
			lintUnreachable(r, n.Statements(), value)
		case *frugurt.ScopeModifierStmt:
			lintUnreachable(r, n.Body, nil)
		case *frugurt.ScopeModifierExpr:
			lintUnreachable(r, n.Body, n.Value)
		case *frugurt.OperatorStmt:
			lintOperator(r, n, operators)
		case *frugurt.TypeStmt:
			lintTypeMembers(r, n)
		case *frugurt.PropertyDecl:
			lintProperty(r, n)
		}
		return true
	})
	lintLoopControl(r, file, false)

	warnings := r.warnings
	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Message < warnings[j].Message
	})
	return warnings
}

// lintUnreachable flags the first statement, or the trailing value, that
// follows a statement which always leaves the block.
func lintUnreachable(r *lintReporter, stmts []frugurt.Statement, value frugurt.Expression) {
	for i, stmt := range stmts {
		if !statementTerminates(stmt) {
			continue
		}
		switch {
		case i+1 < len(stmts):
			r.add(stmts[i+1], "unreachable statement")
		case value != nil:
			r.add(value, "unreachable expression")
		}
		return
	}
}

func statementTerminates(stmt frugurt.Statement) bool {
	switch s := stmt.(type) {
	case *frugurt.ReturnStmt, *frugurt.BreakStmt, *frugurt.ContinueStmt:
		return true
	case *frugurt.BlockStmt:
		return statementsTerminate(s.Body)
	case *frugurt.ScopeModifierStmt:
		return statementsTerminate(s.Body)
	case *frugurt.IfStmt:
		if s.Else == nil {
			return false
		}
		return statementsTerminate(s.Then.Body) && statementTerminates(s.Else)
	default:
		return false
	}
}

func statementsTerminate(stmts []frugurt.Statement) bool {
	for _, stmt := range stmts {
		if statementTerminates(stmt) {
			return true
		}
	}
	return false
}

// lintLoopControl reports break and continue outside a while body. Function,
// method, operator, accessor and watch bodies start a fresh loop context.
func lintLoopControl(r *lintReporter, node frugurt.Node, inLoop bool) {
	frugurt.Walk(node, func(n frugurt.Node) bool {
		switch n := n.(type) {
		case *frugurt.BreakStmt:
			if !inLoop {
				r.add(n, "break outside of a loop")
			}
		case *frugurt.ContinueStmt:
			if !inLoop {
				r.add(n, "continue outside of a loop")
			}
		case *frugurt.WhileStmt:
			lintLoopControl(r, n.Condition, inLoop)
			lintLoopControl(r, n.Body, true)
			return false
		case *frugurt.FuncExpr:
			lintParamDefaults(r, n.Params)
			lintLoopControl(r, n.Body, false)
			return false
		case *frugurt.Method:
			lintParamDefaults(r, n.Params)
			lintLoopControl(r, n.Body, false)
			return false
		case *frugurt.OperatorStmt:
			lintLoopControl(r, n.Body, false)
			return false
		case *frugurt.TypeStmt:
			for _, member := range n.Members {
				lintLoopControl(r, member, false)
			}
			if n.Impl != nil {
				lintLoopControl(r, n.Impl, false)
			}
			if n.Constraints != nil {
				lintLoopControl(r, n.Constraints, false)
			}
			return false
		case *frugurt.GetAccessor:
			lintLoopControl(r, n.Value, false)
			return false
		case *frugurt.SetAccessor:
			lintLoopControl(r, n.Body, false)
			return false
		case *frugurt.Watch:
			lintLoopControl(r, n.Body, false)
			return false
		}
		return true
	})
}

func lintParamDefaults(r *lintReporter, params []*frugurt.Param) {
	for _, param := range params {
		if param.Default != nil {
			lintLoopControl(r, param.Default, false)
		}
	}
}

func lintOperator(r *lintReporter, stmt *frugurt.OperatorStmt, seen map[frugurt.OperatorKey]frugurt.Position) {
	for _, k := range stmt.Keys() {
		if first, ok := seen[k]; ok {
			r.add(stmt, "duplicate operator overload %s (first declared at %s)", k, first)
			continue
		}
		seen[k] = stmt.Span().Start
	}
}

func lintTypeMembers(r *lintReporter, decl *frugurt.TypeStmt) {
	members := make(map[string]struct{})
	fields := make(map[string]struct{})
	for _, member := range decl.Members {
		name := member.MemberName()
		if _, ok := members[name]; ok {
			r.add(member, "duplicate member %s in %s %s", name, decl.Kind, decl.Name)
		}
		members[name] = struct{}{}
	}
	for _, field := range decl.Fields() {
		fields[field.Name] = struct{}{}
	}

	if decl.Impl != nil {
		for _, method := range decl.Impl.Methods {
			if _, ok := members[method.Name]; ok {
				r.add(method, "duplicate member %s in %s %s", method.Name, decl.Kind, decl.Name)
			}
			members[method.Name] = struct{}{}
		}
	}

	if decl.Constraints == nil {
		return
	}
	for _, watch := range decl.Constraints.Watches {
		for _, name := range watch.Observed {
			if _, ok := fields[name]; !ok {
				r.add(watch, "watch observes unknown field %s of %s %s", name, decl.Kind, decl.Name)
			}
		}
	}
}

func lintProperty(r *lintReporter, prop *frugurt.PropertyDecl) {
	if len(prop.Accessors) == 0 {
		r.add(prop, "property %s has no accessors", prop.Name)
		return
	}
	var getters, setters int
	for _, accessor := range prop.Accessors {
		switch accessor.(type) {
		case *frugurt.GetAccessor:
			getters++
			if getters == 2 {
				r.add(accessor, "duplicate get accessor in property %s", prop.Name)
			}
		case *frugurt.SetAccessor:
			setters++
			if setters == 2 {
				r.add(accessor, "duplicate set accessor in property %s", prop.Name)
			}
		}
	}
}
