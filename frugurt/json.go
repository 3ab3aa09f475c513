package frugurt

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	m := map[string]interface{}{
		"span": node.Span().String(),
	}
	switch n := node.(type) {
	case *File:
		m["type"] = "File"
		m["statements"] = mapSlice(n.Statements)

	case *BlockStmt:
		m["type"] = "BlockStmt"
		m["body"] = mapSlice(n.Body)
	case *ScopeModifierStmt:
		m["type"] = "ScopeModifierStmt"
		m["scope"] = toJSON(n.Scope)
		m["body"] = mapSlice(n.Body)
	case *ExprStmt:
		m["type"] = "ExprStmt"
		m["expr"] = toJSON(n.Expr)
	case *LetStmt:
		m["type"] = "LetStmt"
		m["name"] = n.Name
		m["value"] = toJSON(n.Value)
	case *SetStmt:
		m["type"] = "SetStmt"
		m["name"] = n.Name
		m["value"] = toJSON(n.Value)
	case *SetPropStmt:
		m["type"] = "SetPropStmt"
		m["target"] = toJSON(n.Target)
		m["name"] = n.Name
		m["value"] = toJSON(n.Value)
	case *IfStmt:
		m["type"] = "IfStmt"
		m["condition"] = toJSON(n.Condition)
		m["then"] = toJSON(n.Then)
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
	case *WhileStmt:
		m["type"] = "WhileStmt"
		m["condition"] = toJSON(n.Condition)
		m["body"] = toJSON(n.Body)
	case *ReturnStmt:
		m["type"] = "ReturnStmt"
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
	case *BreakStmt:
		m["type"] = "BreakStmt"
	case *ContinueStmt:
		m["type"] = "ContinueStmt"
	case *OperatorStmt:
		m["type"] = "OperatorStmt"
		m["commutative"] = n.Commutative
		m["symbol"] = n.Symbol
		m["left"] = toJSON(n.Left)
		m["right"] = toJSON(n.Right)
		m["body"] = toJSON(n.Body)
	case *TypeStmt:
		m["type"] = "TypeStmt"
		m["kind"] = string(n.Kind)
		m["name"] = n.Name
		m["members"] = mapSlice(n.Members)
		if n.Impl != nil {
			m["impl"] = toJSON(n.Impl)
		}
		if n.Constraints != nil {
			m["constraints"] = toJSON(n.Constraints)
		}

	case *FieldDecl:
		m["type"] = "FieldDecl"
		m["pub"] = n.Pub
		m["static"] = n.Static
		m["name"] = n.Name
		if n.Type != "" {
			m["typeHint"] = n.Type
		}
		if n.Default != nil {
			m["default"] = toJSON(n.Default)
		}
	case *PropertyDecl:
		m["type"] = "PropertyDecl"
		m["pub"] = n.Pub
		m["static"] = n.Static
		m["name"] = n.Name
		if n.Type != "" {
			m["typeHint"] = n.Type
		}
		m["accessors"] = mapSlice(n.Accessors)
	case *GetAccessor:
		m["type"] = "GetAccessor"
		m["arrow"] = n.Arrow
		m["value"] = toJSON(n.Value)
	case *SetAccessor:
		m["type"] = "SetAccessor"
		if n.Param != nil {
			m["param"] = toJSON(n.Param)
		}
		m["body"] = toJSON(n.Body)
	case *ImplSection:
		m["type"] = "ImplSection"
		m["methods"] = mapSlice(n.Methods)
	case *Method:
		m["type"] = "Method"
		m["static"] = n.Static
		m["name"] = n.Name
		m["params"] = mapSlice(n.Params)
		m["body"] = toJSON(n.Body)
	case *ConstraintsSection:
		m["type"] = "ConstraintsSection"
		m["watches"] = mapSlice(n.Watches)
	case *Watch:
		m["type"] = "Watch"
		m["observed"] = n.Observed
		m["body"] = toJSON(n.Body)

	case *NumberLit:
		m["type"] = "NumberLit"
		m["raw"] = n.Raw
		m["value"] = n.Value.String()
	case *StringLit:
		m["type"] = "StringLit"
		m["value"] = n.Value
	case *BoolLit:
		m["type"] = "BoolLit"
		m["value"] = n.Value
	case *NahLit:
		m["type"] = "NahLit"
	case *Variable:
		m["type"] = "Variable"
		m["name"] = n.Name
	case *ScopeExpr:
		m["type"] = "ScopeExpr"
	case *FuncExpr:
		m["type"] = "FuncExpr"
		m["params"] = mapSlice(n.Params)
		m["body"] = toJSON(n.Body)
	case *Param:
		m["type"] = "Param"
		m["name"] = n.Name
		if n.Type != "" {
			m["typeHint"] = n.Type
		}
		if n.Default != nil {
			m["default"] = toJSON(n.Default)
		}
	case *ParenExpr:
		m["type"] = "ParenExpr"
		m["inner"] = toJSON(n.Inner)
	case *BlockExpr:
		m["type"] = "BlockExpr"
		m["body"] = mapSlice(n.Body)
		m["value"] = toJSON(n.Value)
	case *ScopeModifierExpr:
		m["type"] = "ScopeModifierExpr"
		m["scope"] = toJSON(n.Scope)
		m["body"] = mapSlice(n.Body)
		m["value"] = toJSON(n.Value)
	case *CallExpr:
		m["type"] = "CallExpr"
		m["callee"] = toJSON(n.Callee)
		m["args"] = mapSlice(n.Args)
	case *CurryCallExpr:
		m["type"] = "CurryCallExpr"
		m["callee"] = toJSON(n.Callee)
		m["args"] = mapSlice(n.Args)
	case *InstantiationExpr:
		m["type"] = "InstantiationExpr"
		m["callee"] = toJSON(n.Callee)
		m["args"] = mapSlice(n.Args)
	case *Argument:
		m["type"] = "Argument"
		if n.Name != "" {
			m["name"] = n.Name
		}
		m["value"] = toJSON(n.Value)
	case *PropAccessExpr:
		m["type"] = "PropAccessExpr"
		m["target"] = toJSON(n.Target)
		m["name"] = n.Name
	case *IfExpr:
		m["type"] = "IfExpr"
		m["condition"] = toJSON(n.Condition)
		m["then"] = toJSON(n.Then)
		m["else"] = toJSON(n.Else)
	case *ImportExpr:
		m["type"] = "ImportExpr"
		m["path"] = toJSON(n.Path)
	case *BinaryExpr:
		m["type"] = "BinaryExpr"
		m["operator"] = n.Operator
		m["left"] = toJSON(n.Left)
		m["right"] = toJSON(n.Right)
	}
	return m
}

func mapSlice[T Node](s []T) []interface{} {
	out := make([]interface{}, len(s))
	for i, n := range s {
		out[i] = toJSON(n)
	}
	return out
}
