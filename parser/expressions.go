package parser

import (
	"strconv"
	"strings"

	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/token"
)

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	left := p.parsePrefix()
	for !p.at(token.SEMICOLON) && precedence < p.curPrecedence() {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Type {
	case token.IDENT:
		return p.parseIdentOrCall()
	case token.INT:
		return p.parseIntLiteral()
	case token.HEXINT:
		return p.parseHexLiteral()
	case token.FLOAT:
		return p.parseDecimalLiteral()
	case token.STRING:
		lit := &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
		p.advance()
		return lit
	case token.TRUE, token.FALSE:
		lit := &ast.BoolLiteral{Token: p.cur, Value: p.cur.Type == token.TRUE}
		p.advance()
		return lit
	case token.NULL:
		lit := &ast.NullLiteral{Token: p.cur}
		p.advance()
		return lit
	case token.THIS:
		e := &ast.ThisExpr{Token: p.cur}
		p.advance()
		return e
	case token.SUPER:
		return p.parseSuperExpr()
	case token.MINUS, token.BANG, token.TILDE, token.PLUS_PLUS, token.MINUS_MINUS:
		return p.parsePrefixExpr()
	case token.TYPEOF:
		return p.parsePrefixExpr()
	case token.NEW:
		return p.parseNewExpr()
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression(LOWEST)
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseMapLiteral()
	case token.FUNCTION:
		return p.parseFunctionLiteral()
	default:
		p.errorf("line %d: unexpected token %s (%q) in expression", p.cur.StartPosition.LineNumber(), p.cur.Type, p.cur.Literal)
		tok := p.cur
		p.advance()
		return &ast.BadExpr{From: tok.StartPosition, To: tok.EndPosition}
	}
}

func (p *Parser) parseIdentOrCall() ast.Expr {
	return p.parseIdentExpr()
}

func (p *Parser) parseIntLiteral() ast.Expr {
	tok := p.cur
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf("line %d: invalid integer literal %q", tok.StartPosition.LineNumber(), tok.Literal)
	}
	p.advance()
	return &ast.IntLiteral{Token: tok, Value: v}
}

func (p *Parser) parseHexLiteral() ast.Expr {
	tok := p.cur
	text := strings.TrimPrefix(strings.TrimPrefix(tok.Literal, "0x"), "0X")
	v, err := strconv.ParseInt(text, 16, 64)
	if err != nil {
		p.errorf("line %d: invalid hex literal %q", tok.StartPosition.LineNumber(), tok.Literal)
	}
	p.advance()
	return &ast.IntLiteral{Token: tok, Value: v}
}

func (p *Parser) parseDecimalLiteral() ast.Expr {
	tok := p.cur
	v, err := strconv.ParseFloat(tok.Literal, 32)
	if err != nil {
		p.errorf("line %d: invalid decimal literal %q", tok.StartPosition.LineNumber(), tok.Literal)
	}
	p.advance()
	return &ast.DecimalLiteral{Token: tok, Value: float32(v)}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	tok := p.cur
	op := tok.Literal
	p.advance()
	right := p.parseExpression(PREFIX)
	return &ast.PrefixExpr{Token: tok, Operator: op, Right: right}
}

func (p *Parser) parseSuperExpr() ast.Expr {
	tok := p.cur
	p.advance()
	p.expect(token.PERIOD)
	name := p.cur.Literal
	end := p.cur
	p.expect(token.IDENT)
	return &ast.MemberExpr{Token: tok, Object: &ast.ThisExpr{Token: tok}, Name: name, IsSuper: true, EndToken: end}
}

func (p *Parser) parseNewExpr() ast.Expr {
	tok := p.cur
	p.advance()
	class := p.parseIdentExpr()
	var args []ast.Expr
	var end token.Token
	if p.accept(token.LPAREN) {
		args = p.parseArgList()
		end = p.expect(token.RPAREN)
	} else {
		end = class.Token
	}
	return &ast.NewExpr{Token: tok, Class: class, Args: args, EndToken: end}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	tok := p.cur
	p.advance()
	lit := &ast.ArrayLiteral{Token: tok}
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
		if !p.accept(token.COMMA) {
			break
		}
	}
	lit.EndToken = p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseMapLiteral() ast.Expr {
	tok := p.cur
	p.advance()
	lit := &ast.MapLiteral{Token: tok}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		var key ast.Expr
		if p.at(token.STRING) {
			key = &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
			p.advance()
		} else {
			ident := p.parseIdentExpr()
			key = &ast.StringLiteral{Token: ident.Token, Value: ident.Name}
		}
		p.expect(token.COLON)
		value := p.parseExpression(LOWEST)
		lit.Pairs = append(lit.Pairs, ast.MapPair{Key: key, Value: value})
		if !p.accept(token.COMMA) {
			break
		}
	}
	lit.EndToken = p.expect(token.RBRACE)
	return lit
}

func (p *Parser) parseFunctionLiteral() ast.Expr {
	tok := p.cur
	p.advance()
	name := ""
	if p.at(token.IDENT) {
		name = p.cur.Literal
		p.advance()
	}
	p.expect(token.LPAREN)
	params := p.parseParamList()
	body := p.parseBlockStmt()
	return &ast.FunctionLiteral{Token: tok, Name: name, Parameters: params, Body: body, EndToken: body.EndToken}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExpression(LOWEST))
		if !p.accept(token.COMMA) {
			break
		}
	}
	return args
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.cur.Type {
	case token.LPAREN:
		return p.parseCallExpr(left)
	case token.PERIOD:
		return p.parseMemberExpr(left)
	case token.LBRACKET:
		return p.parseIndexExpr(left)
	case token.QUESTION:
		return p.parseTernaryExpr(left)
	case token.PLUS_PLUS, token.MINUS_MINUS:
		tok := p.cur
		op := tok.Literal
		p.advance()
		return &ast.PostfixExpr{Token: tok, Left: left, Operator: op}
	default:
		if assignOps[p.cur.Type] {
			return p.parseAssignExpr(left)
		}
		return p.parseBinaryExpr(left)
	}
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	op := tok.Literal
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.InfixExpr{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	op := tok.Literal
	p.advance()
	value := p.parseExpression(ASSIGN - 1)
	return &ast.AssignExpr{Token: tok, Target: left, Operator: op, Value: value}
}

func (p *Parser) parseTernaryExpr(cond ast.Expr) ast.Expr {
	tok := p.cur
	p.advance()
	cons := p.parseExpression(LOWEST)
	p.expect(token.COLON)
	alt := p.parseExpression(TERNARY)
	return &ast.TernaryExpr{Token: tok, Condition: cond, Consequence: cons, Alternative: alt}
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	tok := p.cur
	p.advance()
	args := p.parseArgList()
	end := p.expect(token.RPAREN)
	return &ast.CallExpr{Token: tok, Callee: callee, Args: args, EndToken: end}
}

func (p *Parser) parseMemberExpr(object ast.Expr) ast.Expr {
	tok := p.cur
	p.advance()
	name := p.cur.Literal
	end := p.cur
	p.expect(token.IDENT)
	return &ast.MemberExpr{Token: tok, Object: object, Name: name, EndToken: end}
}

func (p *Parser) parseIndexExpr(object ast.Expr) ast.Expr {
	tok := p.cur
	p.advance()
	index := p.parseExpression(LOWEST)
	end := p.expect(token.RBRACKET)
	return &ast.IndexExpr{Token: tok, Object: object, Index: index, EndToken: end}
}
