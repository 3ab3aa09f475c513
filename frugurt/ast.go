package frugurt

import "github.com/shopspring/decimal"

// Node is implemented by every AST node.
type Node interface {
	Span() Span
}

// Statement is the closed family of statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// Expression is the closed family of expression nodes.
type Expression interface {
	Node
	exprNode()
}

// Body is a braced block that may or may not end in a value: either a
// *BlockStmt or a *BlockExpr. Function, method and operator bodies use it.
type Body interface {
	Node
	bodyNode()
	Statements() []Statement
}

// File is the root of a parsed source file.
type File struct {
	Statements []Statement
	span       Span
}

func (f *File) Span() Span { return f.span }

// Statements

type BlockStmt struct {
	Body []Statement
	span Span
}

func (s *BlockStmt) stmtNode()               {}
func (s *BlockStmt) bodyNode()               {}
func (s *BlockStmt) Span() Span              { return s.span }
func (s *BlockStmt) Statements() []Statement { return s.Body }

// ScopeModifierStmt runs Body inside the scope produced by Scope.
type ScopeModifierStmt struct {
	Scope Expression
	Body  []Statement
	span  Span
}

func (s *ScopeModifierStmt) stmtNode()  {}
func (s *ScopeModifierStmt) Span() Span { return s.span }

type ExprStmt struct {
	Expr Expression
	span Span
}

func (s *ExprStmt) stmtNode()  {}
func (s *ExprStmt) Span() Span { return s.span }

type LetStmt struct {
	Name  string
	Value Expression
	span  Span
}

func (s *LetStmt) stmtNode()  {}
func (s *LetStmt) Span() Span { return s.span }

type SetStmt struct {
	Name  string
	Value Expression
	span  Span
}

func (s *SetStmt) stmtNode()  {}
func (s *SetStmt) Span() Span { return s.span }

type SetPropStmt struct {
	Target Expression
	Name   string
	Value  Expression
	span   Span
}

func (s *SetPropStmt) stmtNode()  {}
func (s *SetPropStmt) Span() Span { return s.span }

// IfStmt is the statement form of a conditional. Else is nil, a *BlockStmt
// or a nested *IfStmt.
type IfStmt struct {
	Condition Expression
	Then      *BlockStmt
	Else      Statement
	span      Span
}

func (s *IfStmt) stmtNode()  {}
func (s *IfStmt) Span() Span { return s.span }

type WhileStmt struct {
	Condition Expression
	Body      *BlockStmt
	span      Span
}

func (s *WhileStmt) stmtNode()  {}
func (s *WhileStmt) Span() Span { return s.span }

// ReturnStmt carries a nil Value for a bare `return;`.
type ReturnStmt struct {
	Value Expression
	span  Span
}

func (s *ReturnStmt) stmtNode()  {}
func (s *ReturnStmt) Span() Span { return s.span }

type BreakStmt struct {
	span Span
}

func (s *BreakStmt) stmtNode()  {}
func (s *BreakStmt) Span() Span { return s.span }

type ContinueStmt struct {
	span Span
}

func (s *ContinueStmt) stmtNode()  {}
func (s *ContinueStmt) Span() Span { return s.span }

// OperatorStmt declares an overload of Symbol for (Left.Type, Right.Type).
// Both parameters always carry a type.
type OperatorStmt struct {
	Commutative bool
	Symbol      string
	Left        *Param
	Right       *Param
	Body        Body
	span        Span
}

func (s *OperatorStmt) stmtNode()  {}
func (s *OperatorStmt) Span() Span { return s.span }

// Expressions

// NumberLit keeps the literal text alongside its exact decimal value.
type NumberLit struct {
	Raw   string
	Value decimal.Decimal
	span  Span
}

func (e *NumberLit) exprNode()  {}
func (e *NumberLit) Span() Span { return e.span }

// StringLit holds the decoded string; Raw is the quoted source text.
type StringLit struct {
	Value string
	Raw   string
	span  Span
}

func (e *StringLit) exprNode()  {}
func (e *StringLit) Span() Span { return e.span }

type BoolLit struct {
	Value bool
	span  Span
}

func (e *BoolLit) exprNode()  {}
func (e *BoolLit) Span() Span { return e.span }

type NahLit struct {
	span Span
}

func (e *NahLit) exprNode()  {}
func (e *NahLit) Span() Span { return e.span }

type Variable struct {
	Name string
	span Span
}

func (e *Variable) exprNode()  {}
func (e *Variable) Span() Span { return e.span }

// ScopeExpr is the bare `scope()` form naming the ambient scope.
type ScopeExpr struct {
	span Span
}

func (e *ScopeExpr) exprNode()  {}
func (e *ScopeExpr) Span() Span { return e.span }

type FuncExpr struct {
	Params []*Param
	Body   Body
	span   Span
}

func (e *FuncExpr) exprNode()  {}
func (e *FuncExpr) Span() Span { return e.span }

// Param is a formal parameter. Type is empty when no annotation was written
// and Default is nil when there is no default value.
type Param struct {
	Name    string
	Type    string
	Default Expression
	span    Span
}

func (p *Param) Span() Span { return p.span }

type ParenExpr struct {
	Inner Expression
	span  Span
}

func (e *ParenExpr) exprNode()  {}
func (e *ParenExpr) Span() Span { return e.span }

// BlockExpr is a braced block whose value is its trailing expression.
type BlockExpr struct {
	Body  []Statement
	Value Expression
	span  Span
}

func (e *BlockExpr) exprNode()               {}
func (e *BlockExpr) bodyNode()               {}
func (e *BlockExpr) Span() Span              { return e.span }
func (e *BlockExpr) Statements() []Statement { return e.Body }

type ScopeModifierExpr struct {
	Scope Expression
	Body  []Statement
	Value Expression
	span  Span
}

func (e *ScopeModifierExpr) exprNode()  {}
func (e *ScopeModifierExpr) Span() Span { return e.span }

// Argument is a positional argument when Name is empty.
type Argument struct {
	Name  string
	Value Expression
	span  Span
}

func (a *Argument) Span() Span { return a.span }

type CallExpr struct {
	Callee Expression
	Args   []*Argument
	span   Span
}

func (e *CallExpr) exprNode()  {}
func (e *CallExpr) Span() Span { return e.span }

// CurryCallExpr is `callee$(args)`, a partial application.
type CurryCallExpr struct {
	Callee Expression
	Args   []*Argument
	span   Span
}

func (e *CurryCallExpr) exprNode()  {}
func (e *CurryCallExpr) Span() Span { return e.span }

// InstantiationExpr is `callee:{args}`, construction of a declared type.
type InstantiationExpr struct {
	Callee Expression
	Args   []*Argument
	span   Span
}

func (e *InstantiationExpr) exprNode()  {}
func (e *InstantiationExpr) Span() Span { return e.span }

type PropAccessExpr struct {
	Target Expression
	Name   string
	span   Span
}

func (e *PropAccessExpr) exprNode()  {}
func (e *PropAccessExpr) Span() Span { return e.span }

// IfExpr always has an else branch: Else is a *BlockExpr or an *IfExpr.
type IfExpr struct {
	Condition Expression
	Then      *BlockExpr
	Else      Expression
	span      Span
}

func (e *IfExpr) exprNode()  {}
func (e *IfExpr) Span() Span { return e.span }

type ImportExpr struct {
	Path Expression
	span Span
}

func (e *ImportExpr) exprNode()  {}
func (e *ImportExpr) Span() Span { return e.span }

type BinaryExpr struct {
	Left     Expression
	Operator string
	Right    Expression
	span     Span
}

func (e *BinaryExpr) exprNode()  {}
func (e *BinaryExpr) Span() Span { return e.span }
