package lexer

import (
	"testing"

	"vnc/internal/diag"
)

func scan(src string) []Token {
	sink := &diag.Sink{}
	s := NewScanner("test.vn", src, sink)
	return s.ScanTokens()
}

func TestScanKeywordsAndIdent(t *testing.T) {
	toks := scan("fn main let mut x")
	want := []TokenType{FN, MAIN, LET, MUT, IDENTIFIER, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestScanOperators(t *testing.T) {
	toks := scan("-> == != <= >> &&")
	want := []TokenType{ARROW, EQUAL_EQUAL, BANG_EQUAL, LESS_EQUAL, SHR, AND, EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestScanHexAndFloat(t *testing.T) {
	toks := scan("0xFF 3.14 42")
	want := []TokenType{HEX_NUMBER, FLOAT_NUMBER, INT_NUMBER, EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestUnterminatedStringReportsDiagnostic(t *testing.T) {
	sink := &diag.Sink{}
	s := NewScanner("test.vn", `"abc`, sink)
	s.ScanTokens()
	if !sink.HasErrors() {
		t.Fatal("expected a diagnostic for an unterminated string")
	}
	if sink.Diagnostics[0].Code != diag.ErrUnterminatedStr {
		t.Errorf("got code %v, want %v", sink.Diagnostics[0].Code, diag.ErrUnterminatedStr)
	}
}

func TestDocCommentDistinguishedFromComment(t *testing.T) {
	toks := scan("// plain\n/// doc")
	if toks[0].Type != COMMENT {
		t.Errorf("got %v, want COMMENT", toks[0].Type)
	}
	if toks[1].Type != DOC_COMMENT {
		t.Errorf("got %v, want DOC_COMMENT", toks[1].Type)
	}
}
