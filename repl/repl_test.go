package repl_test

import (
	"strings"
	"testing"

	"vnc/repl"
)

func TestStartPrintsIRForPlainSnippet(t *testing.T) {
	in := strings.NewReader("let x: i32 = 1 + 2;\n\n")
	var out strings.Builder

	repl.Start(in, &out)

	if !strings.Contains(out.String(), "function") {
		t.Fatalf("expected IR output to contain a function definition, got: %s", out.String())
	}
}

func TestStartReportsParseErrors(t *testing.T) {
	in := strings.NewReader("fn broken(\n\n")
	var out strings.Builder

	repl.Start(in, &out)

	if !strings.Contains(out.String(), "error") {
		t.Fatalf("expected a reported parse error, got: %s", out.String())
	}
}
