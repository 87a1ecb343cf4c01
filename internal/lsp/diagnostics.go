package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"vnc/internal/diag"
)

// ConvertDiagnostics translates the compiler's diagnostic sink into
// LSP protocol diagnostics for publishing to the editor.
func ConvertDiagnostics(diagnostics []diag.Diagnostic) []protocol.Diagnostic {
	var out []protocol.Diagnostic
	for _, d := range diagnostics {
		endChar := d.Position.Column - 1 + d.Length
		if d.Length <= 0 {
			endChar = d.Position.Column + 3
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(max0(d.Position.Line - 1)),
					Character: uint32(max0(d.Position.Column - 1)),
				},
				End: protocol.Position{
					Line:      uint32(max0(d.Position.Line - 1)),
					Character: uint32(max0(endChar)),
				},
			},
			Severity: ptrSeverity(severityToProtocol(d.Severity)),
			Source:   ptrString("vnc"),
			Message:  d.Code.String() + ": " + d.Message,
		})
	}
	return out
}

func severityToProtocol(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.Fatal, diag.Error:
		return protocol.DiagnosticSeverityError
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
