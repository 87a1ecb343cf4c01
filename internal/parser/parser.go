// Package parser implements a hand-rolled recursive-descent and
// Pratt-expression parser producing an internal/ast.Program from a
// internal/lexer token stream. There is exactly one entry point,
// ParseSource, to avoid the ambiguity of two functions sharing that
// name serving two different parsing strategies.
package parser

import (
	"vnc/internal/ast"
	"vnc/internal/diag"
	"vnc/internal/lexer"
)

type Parser struct {
	filename string
	tokens   []lexer.Token
	current  int
	sink     *diag.Sink
}

// ParseSource scans and parses one source file into a Program. Parse
// errors are appended to sink and parsing recovers at statement
// boundaries (synchronize) so a single mistake does not abort the
// whole file (spec.md §7).
func ParseSource(filename, source string, sink *diag.Sink) *ast.Program {
	toks := lexer.NewScanner(filename, source, sink).ScanTokens()
	p := &Parser{filename: filename, tokens: toks, sink: sink}
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.peek()
	prog := &ast.Program{Pos: p.makePos(start)}

	for !p.isAtEnd() {
		if p.check(lexer.MAIN) {
			prog.Main = p.parseMainFunction()
			continue
		}
		if p.check(lexer.FN) {
			prog.Functions = append(prog.Functions, p.parseFunction())
			continue
		}
		p.errorAtCurrent(diag.ErrUnexpectedToken, "expected 'fn' or 'main' at top level")
		p.synchronize()
	}

	prog.EndPos = p.makePos(p.previous())
	return prog
}

func (p *Parser) parseFunction() *ast.FunctionDecl {
	start := p.advance() // 'fn'
	name, _ := p.consumeIdent("expected function name")

	p.consume(lexer.LEFT_PAREN, "expected '(' after function name")
	var params []*ast.Param
	for !p.check(lexer.RIGHT_PAREN) && !p.isAtEnd() {
		params = append(params, p.parseParam())
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.consume(lexer.RIGHT_PAREN, "expected ')' after parameters")

	var ret *ast.TypeExpr
	if p.match(lexer.ARROW) {
		ret = p.parseTypeExpr()
	}

	body := p.parseBlock()
	return &ast.FunctionDecl{
		Pos: p.makePos(start), EndPos: body.NodeEndPos(),
		Name: name, Params: params, Ret: ret, Body: body,
	}
}

func (p *Parser) parseMainFunction() *ast.MainFunctionDecl {
	start := p.advance() // 'main'
	body := p.parseBlock()
	return &ast.MainFunctionDecl{Pos: p.makePos(start), EndPos: body.NodeEndPos(), Body: body}
}

func (p *Parser) parseParam() *ast.Param {
	name, _ := p.consumeIdent("expected parameter name")
	p.consume(lexer.COLON, "expected ':' after parameter name")
	ty := p.parseTypeExpr()
	return &ast.Param{Pos: name.Pos, EndPos: ty.NodeEndPos(), Name: name, Type: ty}
}

func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	start := p.peek()
	if p.match(lexer.LEFT_BRACKET) {
		elem := p.parseTypeExpr()
		p.consume(lexer.SEMICOLON, "expected ';' in array type")
		size := p.consume(lexer.INT_NUMBER, "expected array size")
		end := p.consume(lexer.RIGHT_BRACKET, "expected ']' to close array type")
		return &ast.TypeExpr{Pos: p.makePos(start), EndPos: p.makeEndPos(end), Array: true, ArraySize: parseIntLiteral(size.Lexeme), Elem: elem}
	}

	name, _ := p.consumeIdent("expected type name")
	ty := &ast.TypeExpr{Pos: name.Pos, EndPos: name.EndPos, Name: name.Value}
	for p.match(lexer.STAR) {
		ty = &ast.TypeExpr{Pos: ty.Pos, EndPos: p.makeEndPos(p.previous()), Pointer: true, Elem: ty}
	}
	return ty
}
