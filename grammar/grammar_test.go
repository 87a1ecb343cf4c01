package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"vnc/grammar"
)

func TestParseSourceFunctionAndMain(t *testing.T) {
	src := `
/// adds two integers
fn add(a: i32, b: i32) -> i32 {
    return a + b;
}

main {
    let mut total: i32 = add(1, 2);
    if (total > 0) {
        total = total - 1;
    } else {
        total = 0;
    }
    while (total > 0) {
        total = total - 1;
    }
    for (let i: i32 = 0; i < 10; i = i + 1) {
        total = total + i;
    }
}
`
	program, err := grammar.ParseSource("test.vn", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	assert.NotNil(t, program)
	assert.Len(t, program.Declarations, 2)

	fn := program.Declarations[0].Function
	assert.NotNil(t, fn)
	assert.Equal(t, "add", fn.Name.Value)
	assert.NotNil(t, fn.Doc)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name.Value)
	assert.Equal(t, "i32", fn.Params[0].Type.Name.Value)
	assert.Equal(t, "i32", fn.Return.Name.Value)
	assert.Len(t, fn.Body.Stmts, 1)
	assert.NotNil(t, fn.Body.Stmts[0].Return)

	main := program.Declarations[1].Main
	assert.NotNil(t, main)
	assert.Len(t, main.Body.Stmts, 4)
	assert.NotNil(t, main.Body.Stmts[0].Let)
	assert.True(t, main.Body.Stmts[0].Let.Mut)
	assert.NotNil(t, main.Body.Stmts[1].If)
	assert.NotNil(t, main.Body.Stmts[1].If.Else)
	assert.NotNil(t, main.Body.Stmts[1].If.Else.Block)
	assert.NotNil(t, main.Body.Stmts[2].While)
	assert.NotNil(t, main.Body.Stmts[3].For)
}

func TestParseSourcePointerAndArrayTypes(t *testing.T) {
	src := `
fn sum(values: [i32; 4], out: i32*) -> i32 {
    return values[0];
}
`
	program, err := grammar.ParseSource("test.vn", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	fn := program.Declarations[0].Function
	assert.NotNil(t, fn.Params[0].Type.Array)
	assert.Equal(t, "i32", fn.Params[0].Type.Array.Elem.Name.Value)
	assert.Equal(t, "4", fn.Params[0].Type.Array.Size)
	assert.Len(t, fn.Params[1].Type.Pointer, 1)
}

func TestParseSourceElseIfChain(t *testing.T) {
	src := `
main {
    if (1 > 0) {
        let x: i32 = 1;
    } else if (1 < 0) {
        let x: i32 = 2;
    } else {
        let x: i32 = 3;
    }
}
`
	program, err := grammar.ParseSource("test.vn", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	ifStmt := program.Declarations[0].Main.Body.Stmts[0].If
	assert.NotNil(t, ifStmt.Else)
	assert.NotNil(t, ifStmt.Else.If)
	assert.NotNil(t, ifStmt.Else.If.Else)
	assert.NotNil(t, ifStmt.Else.If.Else.Block)
}

func TestParseSourceSyntaxErrorReturnsError(t *testing.T) {
	_, err := grammar.ParseSource("test.vn", "main { let x = 1;")
	assert.Error(t, err)
}
