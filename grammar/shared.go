package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PosIdent carries an identifier's text alongside its source span, so
// the LSP's semantic-token walker can place each name precisely.
type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

type DocComment struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `@DocComment`
}

type Comment struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `@Comment`
}
