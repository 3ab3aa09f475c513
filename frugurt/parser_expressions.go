package frugurt

import (
	"strings"

	"github.com/shopspring/decimal"
)

func (p *parser) parseExpression() Expression {
	return p.parseBinary(precOr)
}

// parseBinary is the precedence-climbing loop. The right operand is parsed
// one level tighter than the operator, so every level associates left.
func (p *parser) parseBinary(minPrec int) Expression {
	defer p.leave()
	if !p.enter("expression") {
		return nil
	}
	left := p.parseUnit()
	if left == nil {
		return nil
	}
	return p.parseBinaryRest(left, minPrec)
}

func (p *parser) parseBinaryRest(left Expression, minPrec int) Expression {
	for p.curToken.Type == tokenOperator {
		op := p.curToken
		prec := Precedence(op.Literal)
		if prec < minPrec {
			return left
		}
		p.nextToken()
		right := p.parseBinary(prec + 1)
		if right == nil {
			return nil
		}
		left = &BinaryExpr{Left: left, Operator: op.Literal, Right: right, span: spanBetween(left.Span(), right.Span())}
	}
	return left
}

// parseUnit parses an expression unit followed by its postfix chain.
func (p *parser) parseUnit() Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	return p.parsePostfix(expr)
}

// parsePostfix applies call, curry-call, instantiation and property access
// suffixes left to right.
func (p *parser) parsePostfix(expr Expression) Expression {
	for {
		switch p.curToken.Type {
		case tokenLParen:
			args, end, ok := p.parseArguments(tokenRParen)
			if !ok {
				return nil
			}
			expr = &CallExpr{Callee: expr, Args: args, span: spanBetween(expr.Span(), end)}
		case tokenCurry:
			args, end, ok := p.parseArguments(tokenRParen)
			if !ok {
				return nil
			}
			expr = &CurryCallExpr{Callee: expr, Args: args, span: spanBetween(expr.Span(), end)}
		case tokenInstance:
			args, end, ok := p.parseArguments(tokenRBrace)
			if !ok {
				return nil
			}
			expr = &InstantiationExpr{Callee: expr, Args: args, span: spanBetween(expr.Span(), end)}
		case tokenDot:
			p.nextToken()
			name, ok := p.expect(tokenIdent)
			if !ok {
				return nil
			}
			expr = &PropAccessExpr{Target: expr, Name: name.Literal, span: spanBetween(expr.Span(), name.Span)}
		default:
			return expr
		}
	}
}

// parseArguments parses a comma separated argument list. The current token
// is the opener; the list ends at closer and may have a trailing comma.
func (p *parser) parseArguments(closer TokenType) ([]*Argument, Span, bool) {
	p.nextToken()
	args := []*Argument{}

	for p.curToken.Type != closer {
		arg := p.parseArgument()
		if arg == nil {
			return nil, Span{}, false
		}
		args = append(args, arg)
		if p.curToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}

	end, ok := p.expect(closer)
	if !ok {
		return nil, Span{}, false
	}
	return args, end.Span, true
}

func (p *parser) parseArgument() *Argument {
	if p.curToken.Type == tokenIdent && p.peekToken.Type == tokenColon {
		name := p.curToken
		p.nextToken()
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		return &Argument{Name: name.Literal, Value: value, span: spanBetween(name.Span, value.Span())}
	}

	value := p.parseExpression()
	if value == nil {
		return nil
	}
	return &Argument{Value: value, span: value.Span()}
}

func (p *parser) parsePrimary() Expression {
	tok := p.curToken
	switch tok.Type {
	case tokenNumber:
		p.nextToken()
		return p.parseNumberLiteral(tok.Literal, tok.Span)
	case tokenString:
		p.nextToken()
		return &StringLit{Value: tok.Value, Raw: tok.Literal, span: tok.Span}
	case tokenOperator:
		return p.parseSignedNumber()
	case tokenLParen:
		return p.parseParenExpression()
	case tokenLBrace:
		if block := p.parseValueBlock(); block != nil {
			return block
		}
		return nil
	case tokenIdent:
		return p.parseWord()
	}

	if tok.Type == tokenEOF {
		p.errorExpected(tok, "expression")
	} else {
		p.errorUnexpected(tok)
	}
	return nil
}

func (p *parser) parseWord() Expression {
	tok := p.curToken
	switch tok.Literal {
	case "true", "false":
		p.nextToken()
		return &BoolLit{Value: tok.Literal == "true", span: tok.Span}
	case "nah":
		p.nextToken()
		return &NahLit{span: tok.Span}
	case "fn":
		return p.parseFunctionExpression()
	case "if":
		return p.parseIfExpression()
	case "scope":
		if p.peekToken.Type == tokenLParen && p.peekAt(2).Type == tokenRParen {
			p.nextToken()
			p.nextToken()
			end := p.curToken
			p.nextToken()
			return &ScopeExpr{span: spanBetween(tok.Span, end.Span)}
		}
		return p.parseScopeModifierExpression()
	case "import":
		p.nextToken()
		path := p.parseExpression()
		if path == nil {
			return nil
		}
		return &ImportExpr{Path: path, span: spanBetween(tok.Span, path.Span())}
	}

	if IsReserved(tok.Literal) {
		p.errorUnexpected(tok)
		return nil
	}
	p.nextToken()
	return &Variable{Name: tok.Literal, span: tok.Span}
}

func (p *parser) parseNumberLiteral(raw string, span Span) Expression {
	text := raw
	sign := ""
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		sign, text = text[:1], text[1:]
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	if sign == "-" {
		text = sign + text
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		p.addSyntaxError(span, "invalid number literal "+raw)
		return nil
	}
	return &NumberLit{Raw: raw, Value: value, span: span}
}

// parseSignedNumber folds a `+` or `-` written directly against a number
// into the literal. Any other operator cannot start an expression.
func (p *parser) parseSignedNumber() Expression {
	sign := p.curToken
	next := p.peekToken
	if (sign.Literal != "-" && sign.Literal != "+") || next.Type != tokenNumber || next.Span.Start.Offset != sign.Span.End.Offset {
		p.errorUnexpected(sign)
		return nil
	}
	p.nextToken()
	p.nextToken()
	return p.parseNumberLiteral(sign.Literal+next.Literal, spanBetween(sign.Span, next.Span))
}

func (p *parser) parseParenExpression() Expression {
	open := p.curToken
	p.nextToken()
	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	closeTok, ok := p.expect(tokenRParen)
	if !ok {
		return nil
	}
	return &ParenExpr{Inner: inner, span: spanBetween(open.Span, closeTok.Span)}
}

func (p *parser) parseFunctionExpression() Expression {
	fnTok := p.curToken
	p.nextToken()
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	body := p.parseBlock(blockEither)
	if body == nil {
		return nil
	}
	return &FuncExpr{Params: params, Body: body, span: spanBetween(fnTok.Span, body.Span())}
}

// parseParams parses `(name[: Type][= default], ...)`.
func (p *parser) parseParams() ([]*Param, bool) {
	if _, ok := p.expect(tokenLParen); !ok {
		return nil, false
	}
	params := []*Param{}

	for p.curToken.Type != tokenRParen {
		param := p.parseParam()
		if param == nil {
			return nil, false
		}
		params = append(params, param)
		if p.curToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}

	if _, ok := p.expect(tokenRParen); !ok {
		return nil, false
	}
	return params, true
}

func (p *parser) parseParam() *Param {
	name, ok := p.expectName("parameter name")
	if !ok {
		return nil
	}
	param := &Param{Name: name.Literal, span: name.Span}

	if p.curToken.Type == tokenColon {
		p.nextToken()
		typ, ok := p.expectName("type name")
		if !ok {
			return nil
		}
		param.Type = typ.Literal
		param.span = spanBetween(name.Span, typ.Span)
	}

	if p.curToken.Type == tokenAssign {
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		param.Default = value
		param.span = spanBetween(name.Span, value.Span())
	}
	return param
}

// parseIfExpression parses an if used as a value: both arms must be
// expression blocks and the else branch is mandatory.
func (p *parser) parseIfExpression() Expression {
	defer p.leave()
	if !p.enter("if expression") {
		return nil
	}
	ifTok := p.curToken
	p.nextToken()
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	then := p.parseValueBlock()
	if then == nil {
		return nil
	}
	return p.finishIfExpression(ifTok, cond, then)
}

func (p *parser) finishIfExpression(ifTok Token, cond Expression, then *BlockExpr) Expression {
	if !p.isWord(p.curToken, "else") {
		p.addSyntaxError(p.curToken.Span, "if expression requires an else branch, got "+p.curToken.String())
		return nil
	}
	p.nextToken()

	var els Expression
	if p.isWord(p.curToken, "if") {
		els = p.parseIfExpression()
	} else if block := p.parseValueBlock(); block != nil {
		els = block
	}
	if els == nil {
		return nil
	}
	return &IfExpr{Condition: cond, Then: then, Else: els, span: spanBetween(ifTok.Span, els.Span())}
}

func (p *parser) parseScopeModifierExpression() Expression {
	scopeTok := p.curToken
	p.nextToken()
	what := p.parseExpression()
	if what == nil {
		return nil
	}
	block := p.parseValueBlock()
	if block == nil {
		return nil
	}
	return &ScopeModifierExpr{Scope: what, Body: block.Body, Value: block.Value, span: spanBetween(scopeTok.Span, block.Span())}
}
