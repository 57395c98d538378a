package ast

import "fmt"

// Location represents the source location of a declaration or entry in its
// original file. It enables precise diagnostics with file, line, and column.
type Location struct {
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`     // 1-based
	Column int    `json:"column,omitempty" yaml:"column,omitempty"` // 1-based
}

// String returns a human-readable representation of the location.
// Format: "file:line:column"
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location has valid file and line information.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}

// Offset returns a copy of l moved by the line/column of a position inside
// a text fragment that itself starts at l.
func (l Location) Offset(line, column int) Location {
	if line <= 1 {
		return Location{File: l.File, Line: l.Line, Column: l.Column + column - 1}
	}
	return Location{File: l.File, Line: l.Line + line - 1, Column: column}
}
