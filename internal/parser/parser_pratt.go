package parser

import (
	"strconv"

	"vnc/internal/ast"
	"vnc/internal/diag"
	"vnc/internal/lexer"
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR:  1,
	lexer.AND: 2,
	lexer.PIPE: 3, lexer.CARET: 3, lexer.AMPERSAND: 4,
	lexer.EQUAL_EQUAL: 5, lexer.BANG_EQUAL: 5,
	lexer.LESS: 6, lexer.LESS_EQUAL: 6, lexer.GREATER: 6, lexer.GREATER_EQUAL: 6,
	lexer.SHL: 7, lexer.SHR: 7,
	lexer.PLUS: 8, lexer.MINUS: 8,
	lexer.STAR: 9, lexer.SLASH: 9, lexer.PERCENT: 9,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub, lexer.STAR: ast.OpMul,
	lexer.SLASH: ast.OpDiv, lexer.PERCENT: ast.OpRem,
	lexer.AMPERSAND: ast.OpAnd, lexer.PIPE: ast.OpOr, lexer.CARET: ast.OpXor,
	lexer.SHL: ast.OpShl, lexer.SHR: ast.OpShr,
	lexer.AND: ast.OpLogAnd, lexer.OR: ast.OpLogOr,
	lexer.EQUAL_EQUAL: ast.OpEq, lexer.BANG_EQUAL: ast.OpNe,
	lexer.LESS: ast.OpLt, lexer.LESS_EQUAL: ast.OpLe,
	lexer.GREATER: ast.OpGt, lexer.GREATER_EQUAL: ast.OpGe,
}

// parseExpr is the top-level entry; it handles assignment (right-
// associative, lowest precedence) before falling into the Pratt climber.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseBinary(1)
	if p.match(lexer.EQUAL) {
		value := p.parseExpr()
		return &ast.AssignExpr{Pos: left.NodePos(), EndPos: value.NodeEndPos(), Target: left, Value: value}
	}
	return left
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Pos: left.NodePos(), EndPos: right.NodeEndPos(), Op: binaryOps[tok.Type], Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.match(lexer.MINUS, lexer.BANG, lexer.TILDE) {
		op := p.previous()
		x := p.parseUnary()
		var uop ast.UnaryOp
		switch op.Type {
		case lexer.MINUS:
			uop = ast.OpNegate
		case lexer.BANG:
			uop = ast.OpNot
		case lexer.TILDE:
			uop = ast.OpBitNot
		}
		return &ast.UnaryExpr{Pos: p.makePos(op), EndPos: x.NodeEndPos(), Op: uop, X: x}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for p.check(lexer.LEFT_BRACKET) {
		p.advance()
		idx := p.parseExpr()
		end := p.consume(lexer.RIGHT_BRACKET, "expected ']' after index")
		expr = &ast.ArrayAccessExpr{Pos: expr.NodePos(), EndPos: p.makeEndPos(end), Array: expr, Index: idx}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.INT_NUMBER, lexer.HEX_NUMBER:
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 0, 64)
		return &ast.LiteralExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.LiteralInt, Raw: tok.Lexeme, IntVal: v}
	case lexer.FLOAT_NUMBER:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.LiteralExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.LiteralFloat, Raw: tok.Lexeme, FloatVal: v}
	case lexer.STRING:
		p.advance()
		return &ast.LiteralExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.LiteralString, Raw: tok.Lexeme, StringVal: tok.Lexeme}
	case lexer.CHAR:
		p.advance()
		r := rune(0)
		for _, c := range tok.Lexeme {
			r = c
			break
		}
		return &ast.LiteralExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.LiteralChar, Raw: tok.Lexeme, CharVal: r}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.LiteralExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.LiteralBool, Raw: tok.Lexeme, BoolVal: tok.Type == lexer.TRUE}
	case lexer.NULL:
		p.advance()
		return &ast.LiteralExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.LiteralNull, Raw: tok.Lexeme}
	case lexer.LEFT_BRACKET:
		return p.parseArrayLiteral()
	case lexer.LEFT_PAREN:
		p.advance()
		x := p.parseExpr()
		end := p.consume(lexer.RIGHT_PAREN, "expected ')' to close grouping")
		return &ast.GroupingExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(end), X: x}
	case lexer.IDENTIFIER:
		p.advance()
		if p.check(lexer.LEFT_PAREN) {
			return p.parseCall(tok)
		}
		return &ast.VariableExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Name: tok.Lexeme}
	default:
		p.errorAtCurrent(diag.ErrExpectedExpr, "expected expression")
		p.advance()
		return &ast.LiteralExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Kind: ast.LiteralInt, Raw: "0"}
	}
}

func (p *Parser) parseCall(callee lexer.Token) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	for !p.check(lexer.RIGHT_PAREN) && !p.isAtEnd() {
		args = append(args, p.parseExpr())
		if !p.match(lexer.COMMA) {
			break
		}
	}
	end := p.consume(lexer.RIGHT_PAREN, "expected ')' after call arguments")
	return &ast.CallExpr{Pos: p.makePos(callee), EndPos: p.makeEndPos(end), Callee: callee.Lexeme, Args: args}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.advance() // '['
	var elems []ast.Expr
	for !p.check(lexer.RIGHT_BRACKET) && !p.isAtEnd() {
		elems = append(elems, p.parseExpr())
		if !p.match(lexer.COMMA) {
			break
		}
	}
	end := p.consume(lexer.RIGHT_BRACKET, "expected ']' to close array literal")
	return &ast.ArrayLiteralExpr{Pos: p.makePos(start), EndPos: p.makeEndPos(end), Elements: elems}
}
