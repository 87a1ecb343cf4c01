// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"vnc/internal/diag"
	"vnc/internal/ir"
	"vnc/internal/pipeline"
)

const PROMPT = ">> "

// Start runs an interactive loop that reads .vn snippets terminated
// by a blank line, drives them through the full pipeline (parse,
// lower, SCCP, DCE, validate), and prints the resulting IR or any
// diagnostics. A snippet with no top-level "fn"/"main" is wrapped in
// an implicit main block so plain statements can be typed directly.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	count := 0

	for {
		fmt.Fprint(out, PROMPT)
		var lines []string
		sawBlank := false
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				sawBlank = true
				break
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			if !sawBlank {
				return
			}
			continue
		}

		count++
		source := wrapSnippet(strings.Join(lines, "\n"))
		name := fmt.Sprintf("repl%d", count)

		sink := &diag.Sink{}
		res := pipeline.Run(name+".vn", source, name, pipeline.Options{Platform: ir.PlatformLinux}, sink)

		reporter := diag.NewReporter(name+".vn", source)
		for _, d := range sink.Diagnostics {
			fmt.Fprint(out, reporter.Format(d))
		}
		if res.Module != nil {
			fmt.Fprint(out, ir.Print(res.Module))
		}
	}
}

func wrapSnippet(src string) string {
	if strings.Contains(src, "fn ") || strings.Contains(src, "main") {
		return src
	}
	return "main {\n" + src + "\n}\n"
}
