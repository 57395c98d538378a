package errors

import (
	"fmt"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

// ExtractContext returns the lines of text surrounding line, numbered and
// with an arrow on the offending line. Sources are decoded in memory before
// parsing, so context is taken from the decoded text rather than re-read
// from disk.
func ExtractContext(text string, location ast.Location, contextLines int) string {
	if location.Line <= 0 || text == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}

	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, lines[i]))

		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), padding))
		}
	}

	return sb.String()
}

// WithSourceContext attaches a snippet of text around the error location.
func WithSourceContext(err *Error, text string, contextLines int) *Error {
	if err != nil && err.Location.Line > 0 {
		err.Context = ExtractContext(text, err.Location, contextLines)
	}
	return err
}

// AddSourceContext attaches context to every entry of el whose location
// names file.
func AddSourceContext(el *ErrorList, file, text string) {
	for _, err := range el.Errors {
		if err.Location.File == file && err.Context == "" {
			WithSourceContext(err, text, 2)
		}
	}
}
