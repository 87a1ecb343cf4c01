package pipeline

import (
	"testing"

	"vnc/internal/diag"
	"vnc/internal/ir"
)

func TestRunProducesValidatedModule(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 {
    return a + b;
}

main { let x: i32 = add(1, 2); }
`
	sink := &diag.Sink{}
	res := Run("test.vn", src, "test", Options{Platform: ir.PlatformLinux}, sink)

	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}
	if res.Module == nil {
		t.Fatal("expected a module")
	}
	if res.ValidateStats.FunctionsChecked == 0 {
		t.Fatal("expected the validator to check at least one function")
	}
	if _, ok := res.SCCPStats["add"]; !ok {
		t.Fatal("expected SCCP stats for add")
	}
	if _, ok := res.DCEStats["add"]; !ok {
		t.Fatal("expected DCE stats for add")
	}
}

func TestRunStopsBeforeIRGenOnParseErrors(t *testing.T) {
	sink := &diag.Sink{}
	res := Run("test.vn", `main { let x = 1;`, "test", Options{Platform: ir.PlatformLinux}, sink)
	if res.Module != nil {
		t.Fatal("expected no module when parsing fails")
	}
	if !sink.HasErrors() {
		t.Fatal("expected parse errors to be reported")
	}
}

func TestRunHonorsSkipOptions(t *testing.T) {
	src := `
fn id(a: i32) -> i32 {
    return a;
}
`
	sink := &diag.Sink{}
	res := Run("test.vn", src, "test", Options{Platform: ir.PlatformLinux, SkipSCCP: true, SkipDCE: true}, sink)
	if len(res.SCCPStats) != 0 {
		t.Fatal("expected SCCP to be skipped")
	}
	if len(res.DCEStats) != 0 {
		t.Fatal("expected DCE to be skipped")
	}
}
