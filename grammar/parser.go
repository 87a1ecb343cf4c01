package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var vncParser = participle.MustBuild[Program](
	participle.Lexer(VncLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(3),
)

// ParseFile reads path off disk and parses it for semantic-token
// classification. The CLI and LSP use internal/pipeline to actually
// compile; this path exists only to feed the LSP's highlighter.
func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses in-memory .vn text, such as an LSP document
// buffer that hasn't been saved to disk.
func ParseSource(filename, source string) (*Program, error) {
	program, err := vncParser.ParseString(filename, source)
	if err != nil {
		reportParseError(source, err)
		return program, err
	}
	return program, nil
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
