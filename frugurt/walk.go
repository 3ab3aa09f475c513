package frugurt

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, children in source order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		walkStatements(n.Statements, v)

	// Statements
	case *BlockStmt:
		walkStatements(n.Body, v)
	case *ScopeModifierStmt:
		Walk(n.Scope, v)
		walkStatements(n.Body, v)
	case *ExprStmt:
		Walk(n.Expr, v)
	case *LetStmt:
		Walk(n.Value, v)
	case *SetStmt:
		Walk(n.Value, v)
	case *SetPropStmt:
		Walk(n.Target, v)
		Walk(n.Value, v)
	case *IfStmt:
		Walk(n.Condition, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}
	case *WhileStmt:
		Walk(n.Condition, v)
		Walk(n.Body, v)
	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, v)
		}
	case *OperatorStmt:
		Walk(n.Left, v)
		Walk(n.Right, v)
		Walk(n.Body, v)
	case *TypeStmt:
		for _, m := range n.Members {
			Walk(m, v)
		}
		if n.Impl != nil {
			Walk(n.Impl, v)
		}
		if n.Constraints != nil {
			Walk(n.Constraints, v)
		}

	// Type members
	case *FieldDecl:
		if n.Default != nil {
			Walk(n.Default, v)
		}
	case *PropertyDecl:
		for _, a := range n.Accessors {
			Walk(a, v)
		}
	case *GetAccessor:
		Walk(n.Value, v)
	case *SetAccessor:
		if n.Param != nil {
			Walk(n.Param, v)
		}
		Walk(n.Body, v)
	case *ImplSection:
		for _, m := range n.Methods {
			Walk(m, v)
		}
	case *Method:
		walkParams(n.Params, v)
		Walk(n.Body, v)
	case *ConstraintsSection:
		for _, w := range n.Watches {
			Walk(w, v)
		}
	case *Watch:
		Walk(n.Body, v)

	// Expressions
	case *FuncExpr:
		walkParams(n.Params, v)
		Walk(n.Body, v)
	case *Param:
		if n.Default != nil {
			Walk(n.Default, v)
		}
	case *ParenExpr:
		Walk(n.Inner, v)
	case *BlockExpr:
		walkStatements(n.Body, v)
		Walk(n.Value, v)
	case *ScopeModifierExpr:
		Walk(n.Scope, v)
		walkStatements(n.Body, v)
		Walk(n.Value, v)
	case *CallExpr:
		Walk(n.Callee, v)
		walkArguments(n.Args, v)
	case *CurryCallExpr:
		Walk(n.Callee, v)
		walkArguments(n.Args, v)
	case *InstantiationExpr:
		Walk(n.Callee, v)
		walkArguments(n.Args, v)
	case *Argument:
		Walk(n.Value, v)
	case *PropAccessExpr:
		Walk(n.Target, v)
	case *IfExpr:
		Walk(n.Condition, v)
		Walk(n.Then, v)
		Walk(n.Else, v)
	case *ImportExpr:
		Walk(n.Path, v)
	case *BinaryExpr:
		Walk(n.Left, v)
		Walk(n.Right, v)
	}
}

func walkStatements(stmts []Statement, v Visitor) {
	for _, s := range stmts {
		Walk(s, v)
	}
}

func walkParams(params []*Param, v Visitor) {
	for _, p := range params {
		Walk(p, v)
	}
}

func walkArguments(args []*Argument, v Visitor) {
	for _, a := range args {
		Walk(a, v)
	}
}
