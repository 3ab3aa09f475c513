package frugurt

// TypeKind records which keyword introduced a type declaration.
type TypeKind string

const (
	TypeStruct TypeKind = "struct"
	TypeClass  TypeKind = "class"
	TypeData   TypeKind = "data"
)

// TypeStmt declares a struct, class or data type. Impl and Constraints are
// nil when the declaration has no such section.
type TypeStmt struct {
	Kind        TypeKind
	Name        string
	Members     []TypeMember
	Impl        *ImplSection
	Constraints *ConstraintsSection
	span        Span
}

func (s *TypeStmt) stmtNode()  {}
func (s *TypeStmt) Span() Span { return s.span }

// Fields returns the field members in declaration order.
func (s *TypeStmt) Fields() []*FieldDecl {
	var out []*FieldDecl
	for _, m := range s.Members {
		if f, ok := m.(*FieldDecl); ok {
			out = append(out, f)
		}
	}
	return out
}

// TypeMember is a *FieldDecl or a *PropertyDecl.
type TypeMember interface {
	Node
	memberNode()
	MemberName() string
}

type FieldDecl struct {
	Pub     bool
	Static  bool
	Name    string
	Type    string
	Default Expression
	span    Span
}

func (m *FieldDecl) memberNode()        {}
func (m *FieldDecl) Span() Span         { return m.span }
func (m *FieldDecl) MemberName() string { return m.Name }

// PropertyDecl is a computed member. Accessors keeps source order; duplicate
// or missing accessors are accepted here.
type PropertyDecl struct {
	Pub       bool
	Static    bool
	Name      string
	Type      string
	Accessors []Accessor
	span      Span
}

func (m *PropertyDecl) memberNode()        {}
func (m *PropertyDecl) Span() Span         { return m.span }
func (m *PropertyDecl) MemberName() string { return m.Name }

// Accessor is a *GetAccessor or a *SetAccessor.
type Accessor interface {
	Node
	accessorNode()
}

// GetAccessor yields the property value. Value is a *BlockExpr for the
// braced form; Arrow marks the `get => expr;` form.
type GetAccessor struct {
	Value Expression
	Arrow bool
	span  Span
}

func (a *GetAccessor) accessorNode() {}
func (a *GetAccessor) Span() Span    { return a.span }

// SetAccessor runs Body on assignment. Param is nil when the value name is
// left implicit.
type SetAccessor struct {
	Param *Param
	Body  *BlockStmt
	span  Span
}

func (a *SetAccessor) accessorNode() {}
func (a *SetAccessor) Span() Span    { return a.span }

type ImplSection struct {
	Methods []*Method
	span    Span
}

func (s *ImplSection) Span() Span { return s.span }

type Method struct {
	Static bool
	Name   string
	Params []*Param
	Body   Body
	span   Span
}

func (m *Method) Span() Span { return m.span }

type ConstraintsSection struct {
	Watches []*Watch
	span    Span
}

func (s *ConstraintsSection) Span() Span { return s.span }

// Watch is re-run whenever one of the Observed fields changes.
type Watch struct {
	Observed []string
	Body     *BlockStmt
	span     Span
}

func (w *Watch) Span() Span { return w.span }
