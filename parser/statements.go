package parser

import (
	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/token"
)

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case token.VAR, token.CONST:
		return p.parseVarStmt(false)
	case token.LOCAL:
		return p.parseLocalStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.DO:
		return p.parseDoWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.FOREACH:
		return p.parseForeachStmt()
	case token.REPEAT:
		return p.parseRepeatStmt()
	case token.SWITCH:
		return p.parseSwitchStmt()
	case token.BREAK:
		tok := p.cur
		p.advance()
		p.accept(token.SEMICOLON)
		return &ast.BreakStmt{Token: tok}
	case token.CONTINUE:
		tok := p.cur
		p.advance()
		p.accept(token.SEMICOLON)
		return &ast.ContinueStmt{Token: tok}
	case token.RETURN:
		return p.parseReturnStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.WITH:
		return p.parseWithStmt()
	case token.CLASS:
		return p.parseClassDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.IMPORT:
		return p.parseImportStmt()
	case token.FROM:
		return p.parseFromImportStmt()
	case token.USING:
		return p.parseUsingNamespaceStmt()
	case token.NAMESPACE:
		return p.parseNamespaceDecl()
	case token.LBRACE:
		return p.parseBlockStmt()
	case token.SEMICOLON:
		p.advance()
		return nil
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	tok := p.expect(token.LBRACE)
	block := &ast.BlockStmt{Token: tok}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	block.EndToken = p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseExprStmt() ast.Stmt {
	tok := p.cur
	expr := p.parseExpression(LOWEST)
	p.accept(token.SEMICOLON)
	return &ast.ExprStmt{Token: tok, Expr: expr}
}

func (p *Parser) parseVarStmt(isModule bool) ast.Stmt {
	tok := p.cur
	isConst := p.at(token.CONST)
	p.advance()
	name := p.parseIdentExpr()
	scope := ast.ScopeLocalVar
	if isConst {
		scope = ast.ScopeConst
	}
	if isModule {
		if isConst {
			scope = ast.ScopeModuleConst
		} else {
			scope = ast.ScopeModuleVar
		}
	}
	var value ast.Expr
	if p.accept(token.ASSIGN) {
		value = p.parseExpression(LOWEST)
	}
	p.accept(token.SEMICOLON)
	return &ast.VarStmt{Token: tok, Scope: scope, Name: name, Value: value}
}

func (p *Parser) parseLocalStmt() ast.Stmt {
	p.advance() // consume `local`
	return p.parseVarStmt(true)
}

func (p *Parser) parseIdentExpr() *ast.Ident {
	tok := p.cur
	name := tok.Literal
	p.expect(token.IDENT)
	return &ast.Ident{Token: tok, Name: name}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	cons := p.parseBlockStmt()
	stmt := &ast.IfStmt{Token: tok, Condition: cond, Consequence: cons}
	if p.accept(token.ELSE) {
		if p.at(token.IF) {
			stmt.Alternative = p.parseIfStmt()
		} else {
			stmt.Alternative = p.parseBlockStmt()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseBlockStmt()
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	body := p.parseBlockStmt()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	end := p.cur
	p.accept(token.SEMICOLON)
	return &ast.DoWhileStmt{Token: tok, Body: body, Condition: cond, EndToken: end}
}

func (p *Parser) parseForStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	stmt := &ast.ForStmt{Token: tok}
	if !p.at(token.SEMICOLON) {
		stmt.Init = p.parseForClauseStmt()
	} else {
		p.advance()
	}
	if !p.at(token.SEMICOLON) {
		stmt.Condition = p.parseExpression(LOWEST)
	}
	p.expect(token.SEMICOLON)
	if !p.at(token.RPAREN) {
		stmt.Step = &ast.ExprStmt{Token: p.cur, Expr: p.parseExpression(LOWEST)}
	}
	p.expect(token.RPAREN)
	stmt.Body = p.parseBlockStmt()
	return stmt
}

// parseForClauseStmt parses the init clause of a `for`, consuming its
// trailing semicolon (var-decl or expression-statement form).
func (p *Parser) parseForClauseStmt() ast.Stmt {
	if p.at(token.VAR) || p.at(token.CONST) {
		return p.parseVarStmt(false)
	}
	expr := p.parseExpression(LOWEST)
	p.expect(token.SEMICOLON)
	return &ast.ExprStmt{Expr: expr}
}

func (p *Parser) parseForeachStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	name := p.parseIdentExpr()
	p.expect(token.IN)
	iterable := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseBlockStmt()
	return &ast.ForeachStmt{Token: tok, Name: name, Iterable: iterable, Body: body}
}

func (p *Parser) parseRepeatStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	count := p.parseExpression(LOWEST)
	stmt := &ast.RepeatStmt{Token: tok, Count: count}
	if p.accept(token.COMMA) {
		stmt.Name = p.parseIdentExpr()
		if p.accept(token.COMMA) {
			stmt.Remaining = p.parseIdentExpr()
		}
	}
	p.expect(token.RPAREN)
	stmt.Body = p.parseBlockStmt()
	return stmt
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	value := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	stmt := &ast.SwitchStmt{Token: tok, Value: value}
	for p.at(token.CASE) || p.at(token.DEFAULT) {
		clause := &ast.CaseClause{Token: p.cur}
		if p.at(token.DEFAULT) {
			clause.IsDefault = true
			p.advance()
		} else {
			p.advance()
			clause.Values = append(clause.Values, p.parseExpression(LOWEST))
			for p.accept(token.COMMA) {
				clause.Values = append(clause.Values, p.parseExpression(LOWEST))
			}
		}
		p.expect(token.COLON)
		for !p.at(token.CASE) && !p.at(token.DEFAULT) && !p.at(token.RBRACE) && !p.at(token.EOF) {
			if s := p.parseStatement(); s != nil {
				clause.Consequence = append(clause.Consequence, s)
			}
		}
		stmt.Cases = append(stmt.Cases, clause)
	}
	stmt.EndToken = p.expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	stmt := &ast.ReturnStmt{Token: tok}
	if !p.at(token.SEMICOLON) && !p.at(token.RBRACE) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	p.accept(token.SEMICOLON)
	return stmt
}

func (p *Parser) parsePrintStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	value := p.parseExpression(LOWEST)
	p.accept(token.SEMICOLON)
	return &ast.PrintStmt{Token: tok, Value: value}
}

func (p *Parser) parseWithStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	subject := p.parseExpression(LOWEST)
	stmt := &ast.WithStmt{Token: tok, Subject: subject}
	if p.accept(token.AS) {
		stmt.As = p.parseIdentExpr()
	}
	p.expect(token.RPAREN)
	stmt.Body = p.parseBlockStmt()
	return stmt
}

func (p *Parser) parseClassDecl() ast.Stmt {
	tok := p.cur
	p.advance()
	name := p.parseIdentExpr()
	decl := &ast.ClassDecl{Token: tok, Name: name}
	if p.accept(token.PLUS) {
		decl.IsExtend = true
	}
	if p.accept(token.LT) {
		decl.Base = p.parseIdentExpr()
	}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.STATIC) || p.at(token.VAR) {
			if p.accept(token.STATIC) {
				p.accept(token.VAR) // `static var name`
			} else {
				p.advance()
			}
			fname := p.parseIdentExpr()
			field := &ast.FieldDecl{Name: fname}
			if p.accept(token.ASSIGN) {
				field.Value = p.parseExpression(LOWEST)
			}
			p.accept(token.SEMICOLON)
			decl.Fields = append(decl.Fields, field)
			continue
		}
		isEvent := p.accept(token.EVENT)
		mname := p.parseIdentExpr()
		p.expect(token.LPAREN)
		params := p.parseParamList()
		body := p.parseBlockStmt()
		decl.Methods = append(decl.Methods, &ast.MethodDecl{
			Name: mname, Parameters: params, Body: body, IsEvent: isEvent, EndToken: body.EndToken,
		})
	}
	decl.EndToken = p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseEnumDecl() ast.Stmt {
	tok := p.cur
	p.advance()
	decl := &ast.EnumDecl{Token: tok}
	if p.at(token.IDENT) {
		decl.Name = p.parseIdentExpr()
	}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		member := &ast.EnumMember{Name: p.parseIdentExpr()}
		if p.accept(token.ASSIGN) {
			member.Value = p.parseExpression(LOWEST)
		}
		decl.Members = append(decl.Members, member)
		if !p.accept(token.COMMA) {
			break
		}
	}
	decl.EndToken = p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseImportStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	stmt := &ast.ImportStmt{Token: tok}
	stmt.Names = append(stmt.Names, p.expect(token.STRING).Literal)
	for p.accept(token.COMMA) {
		stmt.Names = append(stmt.Names, p.expect(token.STRING).Literal)
	}
	p.accept(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseFromImportStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	stmt := &ast.FromImportStmt{Token: tok}
	stmt.Paths = append(stmt.Paths, p.expect(token.STRING).Literal)
	for p.accept(token.COMMA) {
		stmt.Paths = append(stmt.Paths, p.expect(token.STRING).Literal)
	}
	p.expect(token.IMPORT)
	p.accept(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseUsingNamespaceStmt() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.NAMESPACE)
	name := p.parseIdentExpr()
	p.accept(token.SEMICOLON)
	return &ast.UsingNamespaceStmt{Token: tok, Namespace: name}
}

func (p *Parser) parseNamespaceDecl() ast.Stmt {
	tok := p.cur
	p.advance()
	name := p.parseIdentExpr()
	p.expect(token.LBRACE)
	decl := &ast.NamespaceDecl{Token: tok, Name: name}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if s := p.parseStatement(); s != nil {
			decl.Statements = append(decl.Statements, s)
		}
	}
	decl.EndToken = p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		name := p.parseIdentExpr()
		param := &ast.Param{Name: name}
		if p.accept(token.ASSIGN) {
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}
