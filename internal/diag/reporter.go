package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Position mirrors the (file, line, col, offset) span the external
// collaborator AST attaches to every node (spec.md §6).
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// Suggestion is a suggested fix attached to a Diagnostic.
type Suggestion struct {
	Message     string
	Replacement string
}

// Diagnostic is a single structured diagnostic: a stable code, severity,
// position, message and optional suggestions/notes (spec.md §6).
type Diagnostic struct {
	Code        Code
	Severity    Severity
	Message     string
	Position    Position
	Length      int
	Suggestions []Suggestion
	Notes       []string
	Help        string
}

// New builds a Diagnostic from a catalog Code at its default severity.
func New(code Code, pos Position, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: code.Default, Message: message, Position: pos, Length: 1}
}

// Sink collects diagnostics across a compilation; C7 (and later passes)
// append to it and never throw (spec.md §7: "collected in a vector,
// never thrown; generation continues on a best-effort basis").
type Sink struct {
	Diagnostics []Diagnostic
}

func (s *Sink) Add(d Diagnostic) { s.Diagnostics = append(s.Diagnostics, d) }

func (s *Sink) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// Reporter renders Diagnostics as Rust-style caret diagnostics.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a Reporter over one source file's text.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders one diagnostic to a colored, multi-line string.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	levelColor := severityColor(d.Severity)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(&out, "%s[%s]: %s\n", levelColor(d.Severity.String()), d.Code, d.Message)

	width := lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&out, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))

	if d.Position.Line > 1 && d.Position.Line-1 <= len(r.lines) {
		fmt.Fprintf(&out, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, d.Position.Line-1)), dim("│"), r.lines[d.Position.Line-2])
	}
	if d.Position.Line >= 1 && d.Position.Line <= len(r.lines) {
		fmt.Fprintf(&out, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, d.Position.Line)), dim("│"), r.lines[d.Position.Line-1])
		fmt.Fprintf(&out, "%s %s %s\n", indent, dim("│"), marker(d.Position.Column, d.Length, d.Severity))
	}
	if d.Position.Line >= 1 && d.Position.Line < len(r.lines) {
		fmt.Fprintf(&out, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, d.Position.Line+1)), dim("│"), r.lines[d.Position.Line])
	}

	for i, s := range d.Suggestions {
		help := color.New(color.FgCyan).SprintFunc()
		if i == 0 {
			fmt.Fprintf(&out, "%s %s %s: %s\n", indent, help("help"), help("try"), s.Message)
		} else {
			fmt.Fprintf(&out, "%s %s %s\n", indent, help("    "), s.Message)
		}
	}
	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}
	if d.Help != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), helpColor("help:"), d.Help)
	}
	out.WriteString("\n")
	return out.String()
}

func severityColor(sev Severity) func(...interface{}) string {
	switch sev {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func marker(column, length int, sev Severity) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	m := strings.Repeat("^", length)
	return spaces + severityColor(sev)(m)
}

func lineNumberWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		w = 3
	}
	return w
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
