package lsp

import (
	"github.com/alecthomas/participle/v2/lexer"

	"vnc/grammar"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

func collectSemanticTokens(program *grammar.Program) []SemanticToken {
	var tokens []SemanticToken

	if program == nil {
		return tokens
	}

	for _, decl := range program.Declarations {
		switch {
		case decl.Function != nil:
			tokens = append(tokens, walkFunction(decl.Function)...)
		case decl.Main != nil:
			tokens = append(tokens, walkMain(decl.Main)...)
		}
	}

	return tokens
}

func walkFunction(f *grammar.Function) []SemanticToken {
	var tokens []SemanticToken

	if f.Name.Value != "" {
		tokens = append(tokens, makeToken(f.Name.Pos, f.Name.EndPos, f.Name.Value, "function", 1))
	}
	for _, p := range f.Params {
		tokens = append(tokens, makeToken(p.Name.Pos, p.Name.EndPos, p.Name.Value, "parameter", 1))
		tokens = append(tokens, typeReferenceTokens(p.Type)...)
	}
	tokens = append(tokens, typeReferenceTokens(f.Return)...)
	tokens = append(tokens, walkBlock(f.Body)...)

	return tokens
}

func walkMain(m *grammar.MainFunction) []SemanticToken {
	return walkBlock(m.Body)
}

func walkBlock(b *grammar.Block) []SemanticToken {
	var tokens []SemanticToken
	if b == nil {
		return tokens
	}
	for _, stmt := range b.Stmts {
		tokens = append(tokens, walkStmt(stmt)...)
	}
	return tokens
}

func walkStmt(s *grammar.Stmt) []SemanticToken {
	var tokens []SemanticToken
	if s == nil {
		return tokens
	}

	switch {
	case s.Let != nil:
		if s.Let.Name.Value != "" {
			tokens = append(tokens, makeToken(s.Let.Name.Pos, s.Let.Name.EndPos, s.Let.Name.Value, "variable", 1))
		}
		tokens = append(tokens, typeReferenceTokens(s.Let.Type)...)
		tokens = append(tokens, walkExpr(s.Let.Init)...)
	case s.Return != nil:
		tokens = append(tokens, walkExpr(s.Return.Value)...)
	case s.If != nil:
		tokens = append(tokens, walkIf(s.If)...)
	case s.While != nil:
		tokens = append(tokens, walkExpr(s.While.Cond)...)
		tokens = append(tokens, walkBlock(s.While.Body)...)
	case s.For != nil:
		tokens = append(tokens, walkForInit(s.For.Init)...)
		tokens = append(tokens, walkExpr(s.For.Cond)...)
		tokens = append(tokens, walkExpr(s.For.Post)...)
		tokens = append(tokens, walkBlock(s.For.Body)...)
	case s.Block != nil:
		tokens = append(tokens, walkBlock(s.Block)...)
	case s.ExprStmt != nil:
		tokens = append(tokens, walkExpr(s.ExprStmt.Expr)...)
	}

	return tokens
}

func walkIf(i *grammar.IfStmt) []SemanticToken {
	var tokens []SemanticToken
	if i == nil {
		return tokens
	}
	tokens = append(tokens, walkExpr(i.Cond)...)
	tokens = append(tokens, walkBlock(i.Then)...)
	if i.Else != nil {
		if i.Else.If != nil {
			tokens = append(tokens, walkIf(i.Else.If)...)
		} else {
			tokens = append(tokens, walkBlock(i.Else.Block)...)
		}
	}
	return tokens
}

func walkForInit(init *grammar.ForInit) []SemanticToken {
	var tokens []SemanticToken
	if init == nil {
		return tokens
	}
	if init.Let != nil {
		if init.Let.Name.Value != "" {
			tokens = append(tokens, makeToken(init.Let.Name.Pos, init.Let.Name.EndPos, init.Let.Name.Value, "variable", 1))
		}
		tokens = append(tokens, typeReferenceTokens(init.Let.Type)...)
		tokens = append(tokens, walkExpr(init.Let.Init)...)
	}
	if init.Expr != nil {
		tokens = append(tokens, walkExpr(init.Expr)...)
	}
	return tokens
}

func walkExpr(expr *grammar.Expr) []SemanticToken {
	var tokens []SemanticToken
	if expr == nil {
		return tokens
	}
	if expr.Binary != nil {
		tokens = append(tokens, walkUnary(expr.Binary.Left)...)
		for _, op := range expr.Binary.Ops {
			tokens = append(tokens, walkUnary(op.Right)...)
		}
	}
	if expr.Assign != nil {
		tokens = append(tokens, walkExpr(expr.Assign)...)
	}
	return tokens
}

func walkUnary(ue *grammar.UnaryExpr) []SemanticToken {
	if ue == nil || ue.Value == nil {
		return nil
	}
	return walkPostfix(ue.Value)
}

func walkPostfix(pe *grammar.PostfixExpr) []SemanticToken {
	var tokens []SemanticToken
	if pe == nil {
		return tokens
	}
	tokens = append(tokens, walkPrimary(pe.Primary)...)
	for _, idx := range pe.Index {
		tokens = append(tokens, walkExpr(idx)...)
	}
	return tokens
}

func walkPrimary(p *grammar.PrimaryExpr) []SemanticToken {
	var tokens []SemanticToken
	if p == nil {
		return tokens
	}
	switch {
	case p.Call != nil:
		tokens = append(tokens, walkCallExpr(p.Call)...)
	case p.Array != nil:
		for _, e := range p.Array.Elements {
			tokens = append(tokens, walkExpr(e)...)
		}
	case p.Ident != nil:
		tokens = append(tokens, makeToken(p.Ident.Pos, p.Ident.EndPos, p.Ident.Value, "variable", 0))
	case p.Parens != nil:
		tokens = append(tokens, walkExpr(p.Parens)...)
	}
	return tokens
}

func walkCallExpr(call *grammar.CallExpr) []SemanticToken {
	var tokens []SemanticToken
	if call == nil {
		return tokens
	}

	tokens = append(tokens, makeToken(call.Callee.Pos, call.Callee.EndPos, call.Callee.Value, "function", 0))
	for _, arg := range call.Args {
		tokens = append(tokens, walkExpr(arg)...)
	}

	return tokens
}

func makeToken(pos, endPos lexer.Position, value, tokenType string, decl int) SemanticToken {
	length := endPos.Column - pos.Column
	if length <= 0 {
		length = len(value)
	}

	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: decl << indexOf("declaration", SemanticTokenModifiers),
	}
}

// typeReferenceTokens collects tokens for type references (parameter
// types, return types, let bindings), including array element types.
func typeReferenceTokens(t *grammar.Type) []SemanticToken {
	if t == nil {
		return nil
	}
	if t.Array != nil {
		return typeReferenceTokens(t.Array.Elem)
	}
	if t.Name == nil || t.Name.Value == "" {
		return nil
	}
	return []SemanticToken{
		makeToken(t.Name.Pos, t.Name.EndPos, t.Name.Value, "type", 0),
	}
}

// indexOf returns the index of a string in a list, or -1 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
