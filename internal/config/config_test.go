package config

import (
	"testing"

	"vnc/internal/ir"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{"prog.vn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Path != "prog.vn" {
		t.Errorf("Path = %q, want prog.vn", cfg.Path)
	}
	if cfg.Platform != ir.PlatformLinux {
		t.Errorf("default Platform = %v, want Linux", cfg.Platform)
	}
	if cfg.Emit != EmitIR {
		t.Errorf("default Emit = %v, want EmitIR", cfg.Emit)
	}
	if cfg.NoSCCP || cfg.NoDCE {
		t.Error("optimization toggles should default to false")
	}
}

func TestParseFlagsAndPositional(t *testing.T) {
	cfg, err := Parse([]string{"-target=windows", "-emit=asm", "-no-sccp", "-no-dce", "prog.vn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Platform != ir.PlatformWindows {
		t.Errorf("Platform = %v, want Windows", cfg.Platform)
	}
	if cfg.Emit != EmitAsm {
		t.Errorf("Emit = %v, want EmitAsm", cfg.Emit)
	}
	if !cfg.NoSCCP || !cfg.NoDCE {
		t.Error("expected both optimization toggles set")
	}
}

func TestParseMissingPathIsError(t *testing.T) {
	if _, err := Parse([]string{"-target=linux"}); err == nil {
		t.Error("expected an error when no file path is given")
	}
}

func TestParseUnknownTargetIsError(t *testing.T) {
	if _, err := Parse([]string{"-target=bogus", "prog.vn"}); err == nil {
		t.Error("expected an error for an unrecognized -target value")
	}
}

func TestParseUnknownEmitIsError(t *testing.T) {
	if _, err := Parse([]string{"-emit=bogus", "prog.vn"}); err == nil {
		t.Error("expected an error for an unrecognized -emit value")
	}
}
