// Package config parses the CLI's flat command-line flags into a
// plain struct. No config-file format is introduced: the teacher's
// own CLI takes a bare positional path and nothing else, so this
// module stays just as flat, adding only the flags the external
// interface requires.
package config

import (
	"flag"
	"fmt"

	"vnc/internal/ir"
)

// EmitKind selects what the CLI prints after a successful compile.
type EmitKind int

const (
	EmitIR EmitKind = iota
	EmitAsm
)

func (k EmitKind) String() string {
	switch k {
	case EmitAsm:
		return "asm"
	default:
		return "ir"
	}
}

// Config is the fully-parsed set of CLI options for one invocation.
type Config struct {
	Path     string
	Platform ir.Platform
	Emit     EmitKind
	NoSCCP   bool
	NoDCE    bool
}

// Parse builds a Config from args (normally os.Args[1:]). It returns
// an error describing the first malformed flag or missing path; the
// caller is expected to print it and exit, matching the teacher's
// "bad usage prints to stderr and exits 1" convention.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("vnc", flag.ContinueOnError)
	target := fs.String("target", "linux", "target platform: linux|darwin|windows")
	emit := fs.String("emit", "ir", "what to print after compiling: ir|asm")
	noSCCP := fs.Bool("no-sccp", false, "skip constant propagation")
	noDCE := fs.Bool("no-dce", false, "skip dead code elimination")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() < 1 {
		return Config{}, fmt.Errorf("usage: vnc [flags] <file.vn>")
	}

	platform, err := parsePlatform(*target)
	if err != nil {
		return Config{}, err
	}

	emitKind, err := parseEmit(*emit)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Path:     fs.Arg(0),
		Platform: platform,
		Emit:     emitKind,
		NoSCCP:   *noSCCP,
		NoDCE:    *noDCE,
	}, nil
}

func parsePlatform(s string) (ir.Platform, error) {
	switch s {
	case "linux":
		return ir.PlatformLinux, nil
	case "darwin", "macos":
		return ir.PlatformMacOS, nil
	case "windows":
		return ir.PlatformWindows, nil
	default:
		return 0, fmt.Errorf("unknown -target %q: want linux, darwin, or windows", s)
	}
}

func parseEmit(s string) (EmitKind, error) {
	switch s {
	case "ir":
		return EmitIR, nil
	case "asm":
		return EmitAsm, nil
	default:
		return 0, fmt.Errorf("unknown -emit %q: want ir or asm", s)
	}
}
