package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// VncLexer tokenizes .vn surface syntax for the LSP's semantic-token
// pass. It stays permissive at the token level (keywords are not
// their own token kind; vncParser's literal-string matches pick them
// out of Ident) so a buffer with a syntax error still tokenizes far
// enough to classify the tokens around the mistake.
var VncLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"DocComment", `///[^\n]*`, nil},
		{"Comment", `//[^\n]*`, nil},

		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Char", `'(\\.|[^'\\])'`, nil},

		{"Arrow", `->`, nil},
		{"Operator", `(\|\||&&|==|!=|<=|>=|<<|>>|[-+*/%&|^~!<>=])`, nil},

		{"Punctuation", `[{}\[\]():,;.]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
