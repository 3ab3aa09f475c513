package frugurt

// blockMode says whether a braced block may, must, or must not end in a
// trailing expression.
type blockMode int

const (
	blockEither blockMode = iota
	blockStatements
	blockValue
)

// parseBlock parses `{ statement* [expression] }`. The block is a
// *BlockExpr exactly when its last element is an expression with no `;`
// directly before the closing brace.
func (p *parser) parseBlock(mode blockMode) Body {
	defer p.leave()
	if !p.enter("block") {
		return nil
	}
	open, ok := p.expect(tokenLBrace)
	if !ok {
		return nil
	}

	stmts := []Statement{}
	var value Expression
	for p.curToken.Type != tokenRBrace {
		if p.curToken.Type == tokenEOF {
			p.addSyntaxError(p.curToken.Span, "unterminated block: expected \"}\", got end of input")
			return nil
		}
		stmt, expr := p.parseStatementOrValue()
		if expr != nil {
			if p.curToken.Type != tokenRBrace {
				p.errorExpected(p.curToken, "\";\" or \"}\"")
				return nil
			}
			value = expr
			break
		}
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}

	closeTok := p.curToken
	switch {
	case mode == blockValue && value == nil:
		p.addSyntaxError(closeTok.Span, "block used as a value must end with an expression")
		return nil
	case mode == blockStatements && value != nil:
		p.errorExpected(closeTok, "\";\"")
		return nil
	}
	p.nextToken()

	span := spanBetween(open.Span, closeTok.Span)
	if value != nil {
		return &BlockExpr{Body: stmts, Value: value, span: span}
	}
	return &BlockStmt{Body: stmts, span: span}
}

func (p *parser) parseValueBlock() *BlockExpr {
	block, _ := p.parseBlock(blockValue).(*BlockExpr)
	return block
}

func (p *parser) parseStatementBlock() *BlockStmt {
	block, _ := p.parseBlock(blockStatements).(*BlockStmt)
	return block
}

// parseStatement parses one complete statement.
func (p *parser) parseStatement() Statement {
	stmt, expr := p.parseStatementOrValue()
	if expr != nil {
		p.errorExpected(p.curToken, "\";\"")
		return nil
	}
	return stmt
}

// parseStatementOrValue parses either a statement or an expression that is
// not terminated by `;`. The caller decides whether such an expression is a
// block's trailing value or an error.
func (p *parser) parseStatementOrValue() (Statement, Expression) {
	tok := p.curToken
	switch tok.Type {
	case tokenLBrace:
		switch block := p.parseBlock(blockEither).(type) {
		case *BlockStmt:
			return block, nil
		case *BlockExpr:
			return p.continueExpressionStatement(block)
		}
		return nil, nil
	case tokenIdent:
		switch tok.Literal {
		case "let":
			return p.parseLetStatement(), nil
		case "while":
			return p.parseWhileStatement(), nil
		case "return":
			return p.parseReturnStatement(), nil
		case "break":
			return p.parseBreakStatement(), nil
		case "continue":
			return p.parseContinueStatement(), nil
		case "if":
			return p.parseIf()
		case "scope":
			if p.peekToken.Type != tokenLParen || p.peekAt(2).Type != tokenRParen {
				return p.parseScopeModifier()
			}
		case "operator":
			if p.peekToken.Type == tokenOperator && p.peekAt(2).Type == tokenLParen {
				return p.parseOperatorStatement(), nil
			}
		case "commutative":
			if p.isWord(p.peekToken, "operator") {
				return p.parseOperatorStatement(), nil
			}
		case "struct", "class", "data":
			if p.peekToken.Type == tokenIdent && p.peekAt(2).Type == tokenLBrace {
				return p.parseTypeStatement(), nil
			}
		}
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil, nil
	}
	return p.finishExpressionStatement(expr)
}

// continueExpressionStatement resumes a statement that began with a
// block-like expression: postfix suffixes and binary operators may follow.
func (p *parser) continueExpressionStatement(unit Expression) (Statement, Expression) {
	expr := p.parsePostfix(unit)
	if expr == nil {
		return nil, nil
	}
	expr = p.parseBinaryRest(expr, precOr)
	if expr == nil {
		return nil, nil
	}
	return p.finishExpressionStatement(expr)
}

func (p *parser) finishExpressionStatement(expr Expression) (Statement, Expression) {
	switch p.curToken.Type {
	case tokenAssign:
		switch target := expr.(type) {
		case *Variable:
			return p.parseAssignment(expr, func(value Expression, span Span) Statement {
				return &SetStmt{Name: target.Name, Value: value, span: span}
			}), nil
		case *PropAccessExpr:
			return p.parseAssignment(expr, func(value Expression, span Span) Statement {
				return &SetPropStmt{Target: target.Target, Name: target.Name, Value: value, span: span}
			}), nil
		}
		p.addSyntaxError(expr.Span(), "cannot assign to this expression")
		return nil, nil
	case tokenSemicolon:
		semi := p.curToken
		p.nextToken()
		return &ExprStmt{Expr: expr, span: spanBetween(expr.Span(), semi.Span)}, nil
	}
	return nil, expr
}

func (p *parser) parseAssignment(target Expression, build func(Expression, Span) Statement) Statement {
	p.nextToken()
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	semi, ok := p.expect(tokenSemicolon)
	if !ok {
		return nil
	}
	return build(value, spanBetween(target.Span(), semi.Span))
}

func (p *parser) parseLetStatement() Statement {
	letTok := p.curToken
	p.nextToken()
	name, ok := p.expectName("variable name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(tokenAssign); !ok {
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	semi, ok := p.expect(tokenSemicolon)
	if !ok {
		return nil
	}
	return &LetStmt{Name: name.Literal, Value: value, span: spanBetween(letTok.Span, semi.Span)}
}

func (p *parser) parseWhileStatement() Statement {
	whileTok := p.curToken
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	body := p.parseStatementBlock()
	if body == nil {
		return nil
	}
	return &WhileStmt{Condition: cond, Body: body, span: spanBetween(whileTok.Span, body.Span())}
}

func (p *parser) parseReturnStatement() Statement {
	retTok := p.curToken
	p.nextToken()

	var value Expression
	if p.curToken.Type != tokenSemicolon {
		value = p.parseExpression()
		if value == nil {
			return nil
		}
	}
	semi, ok := p.expect(tokenSemicolon)
	if !ok {
		return nil
	}
	return &ReturnStmt{Value: value, span: spanBetween(retTok.Span, semi.Span)}
}

func (p *parser) parseBreakStatement() Statement {
	tok := p.curToken
	p.nextToken()
	semi, ok := p.expect(tokenSemicolon)
	if !ok {
		return nil
	}
	return &BreakStmt{span: spanBetween(tok.Span, semi.Span)}
}

func (p *parser) parseContinueStatement() Statement {
	tok := p.curToken
	p.nextToken()
	semi, ok := p.expect(tokenSemicolon)
	if !ok {
		return nil
	}
	return &ContinueStmt{span: spanBetween(tok.Span, semi.Span)}
}

// parseIf handles an `if` at statement position. The then-block decides
// the form: a trailing expression makes the whole conditional an
// expression, which then needs an else branch and a terminating `;`.
func (p *parser) parseIf() (Statement, Expression) {
	ifTok := p.curToken
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil, nil
	}

	switch then := p.parseBlock(blockEither).(type) {
	case *BlockExpr:
		expr := p.finishIfExpression(ifTok, cond, then)
		if expr == nil {
			return nil, nil
		}
		return p.continueExpressionStatement(expr)
	case *BlockStmt:
		stmt := &IfStmt{Condition: cond, Then: then, span: spanBetween(ifTok.Span, then.Span())}
		if !p.parseElseStatement(stmt) {
			return nil, nil
		}
		return stmt, nil
	}
	return nil, nil
}

// parseIfStatement parses an `else if` link of a statement conditional.
func (p *parser) parseIfStatement() *IfStmt {
	defer p.leave()
	if !p.enter("if statement") {
		return nil
	}
	ifTok := p.curToken
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	then := p.parseStatementBlock()
	if then == nil {
		return nil
	}
	stmt := &IfStmt{Condition: cond, Then: then, span: spanBetween(ifTok.Span, then.Span())}
	if !p.parseElseStatement(stmt) {
		return nil
	}
	return stmt
}

// parseElseStatement attaches an optional else branch to stmt. Since every
// branch is braced, an else always belongs to the nearest open if.
func (p *parser) parseElseStatement(stmt *IfStmt) bool {
	if !p.isWord(p.curToken, "else") {
		return true
	}
	p.nextToken()

	if p.isWord(p.curToken, "if") {
		nested := p.parseIfStatement()
		if nested == nil {
			return false
		}
		stmt.Else = nested
		stmt.span = spanBetween(stmt.span, nested.Span())
		return true
	}

	els := p.parseStatementBlock()
	if els == nil {
		return false
	}
	stmt.Else = els
	stmt.span = spanBetween(stmt.span, els.Span())
	return true
}

// parseScopeModifier handles `scope expr { ... }` at statement position.
func (p *parser) parseScopeModifier() (Statement, Expression) {
	scopeTok := p.curToken
	p.nextToken()
	what := p.parseExpression()
	if what == nil {
		return nil, nil
	}

	switch block := p.parseBlock(blockEither).(type) {
	case *BlockStmt:
		return &ScopeModifierStmt{Scope: what, Body: block.Body, span: spanBetween(scopeTok.Span, block.Span())}, nil
	case *BlockExpr:
		expr := &ScopeModifierExpr{Scope: what, Body: block.Body, Value: block.Value, span: spanBetween(scopeTok.Span, block.Span())}
		return p.continueExpressionStatement(expr)
	}
	return nil, nil
}
