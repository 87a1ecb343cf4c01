package parser

import (
	"vnc/internal/ast"
	"vnc/internal/lexer"
)

func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.consume(lexer.LEFT_BRACE, "expected '{' to open block")
	var stmts []ast.Stmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.consume(lexer.RIGHT_BRACE, "expected '}' to close block")
	return &ast.BlockStmt{Pos: p.makePos(start), EndPos: p.makeEndPos(end), Stmts: stmts}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.check(lexer.LET):
		return p.parseVarDecl()
	case p.check(lexer.RETURN):
		return p.parseReturn()
	case p.check(lexer.IF):
		return p.parseIf()
	case p.check(lexer.WHILE):
		return p.parseWhile()
	case p.check(lexer.FOR):
		return p.parseFor()
	case p.check(lexer.LEFT_BRACE):
		return p.parseBlock()
	case p.check(lexer.BREAK):
		tok := p.advance()
		end := p.consume(lexer.SEMICOLON, "expected ';' after 'break'")
		return &ast.BreakStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(end)}
	case p.check(lexer.CONTINUE):
		tok := p.advance()
		end := p.consume(lexer.SEMICOLON, "expected ';' after 'continue'")
		return &ast.ContinueStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(end)}
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	start := p.advance() // 'let'
	mutable := p.match(lexer.MUT)
	name, _ := p.consumeIdent("expected variable name")

	var ty *ast.TypeExpr
	if p.match(lexer.COLON) {
		ty = p.parseTypeExpr()
	}

	var init ast.Expr
	if p.match(lexer.EQUAL) {
		init = p.parseExpr()
	}
	end := p.consume(lexer.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarDeclStmt{Pos: p.makePos(start), EndPos: p.makeEndPos(end), Name: name, Type: ty, Mutable: mutable, Init: init}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance() // 'return'
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.parseExpr()
	}
	end := p.consume(lexer.SEMICOLON, "expected ';' after return value")
	return &ast.ReturnStmt{Pos: p.makePos(start), EndPos: p.makeEndPos(end), Value: value}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // 'if'
	p.consume(lexer.LEFT_PAREN, "expected '(' after 'if'")
	cond := p.parseExpr()
	p.consume(lexer.RIGHT_PAREN, "expected ')' after condition")
	then := p.parseBlock()

	node := &ast.IfStmt{Pos: p.makePos(start), EndPos: then.NodeEndPos(), Cond: cond, Then: then}
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			node.Else = p.parseIf()
		} else {
			node.Else = p.parseBlock()
		}
		node.EndPos = node.Else.NodeEndPos()
	}
	return node
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance() // 'while'
	p.consume(lexer.LEFT_PAREN, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.consume(lexer.RIGHT_PAREN, "expected ')' after condition")
	body := p.parseBlock()
	return &ast.WhileStmt{Pos: p.makePos(start), EndPos: body.NodeEndPos(), Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.advance() // 'for'
	p.consume(lexer.LEFT_PAREN, "expected '(' after 'for'")

	var init ast.Stmt
	if p.check(lexer.LET) {
		init = p.parseVarDecl()
	} else if !p.check(lexer.SEMICOLON) {
		init = p.parseExprStmt()
	} else {
		p.advance() // consume bare ';'
	}

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.parseExpr()
	}
	p.consume(lexer.SEMICOLON, "expected ';' after loop condition")

	var post ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		post = p.parseExpr()
	}
	p.consume(lexer.RIGHT_PAREN, "expected ')' after for clauses")

	body := p.parseBlock()
	return &ast.ForStmt{Pos: p.makePos(start), EndPos: body.NodeEndPos(), Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.peek()
	expr := p.parseExpr()
	end := p.consume(lexer.SEMICOLON, "expected ';' after expression")
	return &ast.ExprStmt{Pos: p.makePos(start), EndPos: p.makeEndPos(end), X: expr}
}
