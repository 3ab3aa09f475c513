package frugurt

import "fmt"

// parseOperatorStatement parses
// `[commutative] operator SYM (left: Type, right: Type) body`.
func (p *parser) parseOperatorStatement() Statement {
	start := p.curToken
	commutative := false
	if p.isWord(p.curToken, "commutative") {
		commutative = true
		p.nextToken()
	}
	if !p.isWord(p.curToken, "operator") {
		p.errorExpected(p.curToken, "\"operator\"")
		return nil
	}
	p.nextToken()

	symbol, ok := p.expect(tokenOperator)
	if !ok {
		return nil
	}
	if _, ok := p.expect(tokenLParen); !ok {
		return nil
	}
	left := p.parseOperatorParam()
	if left == nil {
		return nil
	}
	if _, ok := p.expect(tokenComma); !ok {
		return nil
	}
	right := p.parseOperatorParam()
	if right == nil {
		return nil
	}
	if p.curToken.Type == tokenComma {
		p.nextToken()
	}
	if _, ok := p.expect(tokenRParen); !ok {
		return nil
	}

	body := p.parseBlock(blockEither)
	if body == nil {
		return nil
	}
	return &OperatorStmt{
		Commutative: commutative,
		Symbol:      symbol.Literal,
		Left:        left,
		Right:       right,
		Body:        body,
		span:        spanBetween(start.Span, body.Span()),
	}
}

// parseOperatorParam parses `name: Type`. Unlike function parameters the
// annotation is mandatory and no default is allowed.
func (p *parser) parseOperatorParam() *Param {
	name, ok := p.expectName("parameter name")
	if !ok {
		return nil
	}
	if p.curToken.Type != tokenColon {
		p.addSyntaxError(name.Span, fmt.Sprintf("operator parameter %s requires a type annotation", name.Literal))
		return nil
	}
	p.nextToken()
	typ, ok := p.expectName("type name")
	if !ok {
		return nil
	}
	return &Param{Name: name.Literal, Type: typ.Literal, span: spanBetween(name.Span, typ.Span)}
}

// parseTypeStatement parses `kind Name { member* [impl {...}] [constraints {...}] }`.
// A trailing `impl { ... }` after the closing brace is accepted too.
func (p *parser) parseTypeStatement() Statement {
	kindTok := p.curToken
	kind := TypeKind(kindTok.Literal)
	p.nextToken()

	name, ok := p.expectName("type name")
	if !ok {
		return nil
	}
	stmt := &TypeStmt{Kind: kind, Name: name.Literal, Members: []TypeMember{}}

	if _, ok := p.expect(tokenLBrace); !ok {
		return nil
	}
	for p.curToken.Type != tokenRBrace {
		if p.curToken.Type == tokenEOF {
			p.errorExpected(p.curToken, "\"}\"")
			return nil
		}
		if section, ok := p.parseTypeSection(stmt); ok {
			if section == nil {
				return nil
			}
			continue
		}
		member := p.parseTypeMember()
		if member == nil {
			return nil
		}
		stmt.Members = append(stmt.Members, member)
	}
	end := p.curToken.Span
	p.nextToken()

	for {
		section, ok := p.parseTypeSection(stmt)
		if !ok {
			break
		}
		if section == nil {
			return nil
		}
		end = section.Span()
	}

	stmt.span = spanBetween(kindTok.Span, end)
	return stmt
}

// parseTypeSection parses an impl or constraints section if one starts at
// the current token. ok reports whether a section was attempted; the node is
// nil when it failed.
func (p *parser) parseTypeSection(stmt *TypeStmt) (Node, bool) {
	if p.peekToken.Type != tokenLBrace {
		return nil, false
	}
	switch {
	case p.isWord(p.curToken, "impl"):
		if stmt.Impl != nil {
			p.addSyntaxError(p.curToken.Span, fmt.Sprintf("duplicate impl section in %s %s", stmt.Kind, stmt.Name))
			return nil, true
		}
		stmt.Impl = p.parseImplSection()
		if stmt.Impl == nil {
			return nil, true
		}
		return stmt.Impl, true
	case p.isWord(p.curToken, "constraints"):
		if stmt.Constraints != nil {
			p.addSyntaxError(p.curToken.Span, fmt.Sprintf("duplicate constraints section in %s %s", stmt.Kind, stmt.Name))
			return nil, true
		}
		stmt.Constraints = p.parseConstraintsSection()
		if stmt.Constraints == nil {
			return nil, true
		}
		return stmt.Constraints, true
	}
	return nil, false
}

func (p *parser) parseTypeMember() TypeMember {
	start := p.curToken
	var pub, static bool
	if p.isWord(p.curToken, "pub") && p.peekToken.Type == tokenIdent {
		pub = true
		p.nextToken()
	}
	if p.isWord(p.curToken, "static") && p.peekToken.Type == tokenIdent {
		static = true
		p.nextToken()
	}

	name, ok := p.expectName("member name")
	if !ok {
		return nil
	}
	typ := ""
	if p.curToken.Type == tokenColon {
		p.nextToken()
		typTok, ok := p.expectName("type name")
		if !ok {
			return nil
		}
		typ = typTok.Literal
	}

	switch p.curToken.Type {
	case tokenLBrace:
		return p.parseProperty(start, pub, static, name.Literal, typ)
	case tokenAssign, tokenSemicolon:
		field := &FieldDecl{Pub: pub, Static: static, Name: name.Literal, Type: typ}
		if p.curToken.Type == tokenAssign {
			p.nextToken()
			field.Default = p.parseExpression()
			if field.Default == nil {
				return nil
			}
		}
		semi, ok := p.expect(tokenSemicolon)
		if !ok {
			return nil
		}
		field.span = spanBetween(start.Span, semi.Span)
		return field
	}
	p.errorExpected(p.curToken, "\";\", \"=\" or \"{\"")
	return nil
}

func (p *parser) parseProperty(start Token, pub, static bool, name, typ string) TypeMember {
	p.nextToken()
	prop := &PropertyDecl{Pub: pub, Static: static, Name: name, Type: typ, Accessors: []Accessor{}}

	for p.curToken.Type != tokenRBrace {
		var acc Accessor
		switch {
		case p.isWord(p.curToken, "get"):
			acc = p.parseGetAccessor()
		case p.isWord(p.curToken, "set"):
			acc = p.parseSetAccessor()
		default:
			p.errorExpected(p.curToken, "\"get\" or \"set\"")
			return nil
		}
		if acc == nil {
			return nil
		}
		prop.Accessors = append(prop.Accessors, acc)
	}
	end := p.curToken
	p.nextToken()

	prop.span = spanBetween(start.Span, end.Span)
	return prop
}

// parseGetAccessor parses `get { ... value }` or `get => expr;`.
func (p *parser) parseGetAccessor() Accessor {
	getTok := p.curToken
	p.nextToken()

	if p.curToken.Type == tokenArrow {
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		semi, ok := p.expect(tokenSemicolon)
		if !ok {
			return nil
		}
		return &GetAccessor{Value: value, Arrow: true, span: spanBetween(getTok.Span, semi.Span)}
	}

	if p.curToken.Type != tokenLBrace {
		p.errorExpected(p.curToken, "\"{\" or \"=>\"")
		return nil
	}
	block := p.parseValueBlock()
	if block == nil {
		return nil
	}
	return &GetAccessor{Value: block, span: spanBetween(getTok.Span, block.Span())}
}

// parseSetAccessor parses `set [(name[: Type])] { ... }`.
func (p *parser) parseSetAccessor() Accessor {
	setTok := p.curToken
	p.nextToken()

	var param *Param
	if p.curToken.Type == tokenLParen {
		p.nextToken()
		name, ok := p.expectName("parameter name")
		if !ok {
			return nil
		}
		param = &Param{Name: name.Literal, span: name.Span}
		if p.curToken.Type == tokenColon {
			p.nextToken()
			typ, ok := p.expectName("type name")
			if !ok {
				return nil
			}
			param.Type = typ.Literal
			param.span = spanBetween(name.Span, typ.Span)
		}
		if _, ok := p.expect(tokenRParen); !ok {
			return nil
		}
	}

	body := p.parseStatementBlock()
	if body == nil {
		return nil
	}
	return &SetAccessor{Param: param, Body: body, span: spanBetween(setTok.Span, body.Span())}
}

func (p *parser) parseImplSection() *ImplSection {
	implTok := p.curToken
	p.nextToken()
	p.nextToken()

	section := &ImplSection{Methods: []*Method{}}
	for p.curToken.Type != tokenRBrace {
		method := p.parseMethod()
		if method == nil {
			return nil
		}
		section.Methods = append(section.Methods, method)
	}
	end := p.curToken
	p.nextToken()

	section.span = spanBetween(implTok.Span, end.Span)
	return section
}

// parseMethod parses `[static] name(params) body`.
func (p *parser) parseMethod() *Method {
	start := p.curToken
	static := false
	if p.isWord(p.curToken, "static") && p.peekToken.Type == tokenIdent {
		static = true
		p.nextToken()
	}

	name, ok := p.expectName("method name")
	if !ok {
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	body := p.parseBlock(blockEither)
	if body == nil {
		return nil
	}
	return &Method{Static: static, Name: name.Literal, Params: params, Body: body, span: spanBetween(start.Span, body.Span())}
}

func (p *parser) parseConstraintsSection() *ConstraintsSection {
	sectionTok := p.curToken
	p.nextToken()
	p.nextToken()

	section := &ConstraintsSection{Watches: []*Watch{}}
	for p.curToken.Type != tokenRBrace {
		if !p.isWord(p.curToken, "watch") {
			p.errorExpected(p.curToken, "\"watch\"")
			return nil
		}
		watch := p.parseWatch()
		if watch == nil {
			return nil
		}
		section.Watches = append(section.Watches, watch)
	}
	end := p.curToken
	p.nextToken()

	section.span = spanBetween(sectionTok.Span, end.Span)
	return section
}

// parseWatch parses `watch(a, b, ...) { ... }`. At least one field must be
// observed.
func (p *parser) parseWatch() *Watch {
	watchTok := p.curToken
	p.nextToken()
	if _, ok := p.expect(tokenLParen); !ok {
		return nil
	}

	observed := []string{}
	for p.curToken.Type != tokenRParen {
		name, ok := p.expectName("field name")
		if !ok {
			return nil
		}
		observed = append(observed, name.Literal)
		if p.curToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}
	if len(observed) == 0 {
		p.addSyntaxError(p.curToken.Span, "watch must observe at least one field")
		return nil
	}
	if _, ok := p.expect(tokenRParen); !ok {
		return nil
	}

	body := p.parseStatementBlock()
	if body == nil {
		return nil
	}
	return &Watch{Observed: observed, Body: body, span: spanBetween(watchTok.Span, body.Span())}
}
