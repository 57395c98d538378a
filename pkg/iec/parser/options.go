package parser

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens to repeated names inside one
// declaration (enumeration literals, structure members, variables of one
// function or function block, constants of one block).
type DuplicatePolicy string

const (
	DuplicatesKeep     DuplicatePolicy = "keep"      // tolerate silently
	DuplicatesWarn     DuplicatePolicy = "warn"      // keep all, warn on each repeat
	DuplicatesLastWins DuplicatePolicy = "last-wins" // drop earlier occurrences, warn
	DuplicatesReject   DuplicatePolicy = "reject"    // fail the declaration
)

// ParseDuplicatePolicy converts a configuration value to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DuplicatesKeep, DuplicatesWarn, DuplicatesLastWins, DuplicatesReject:
		return p, nil
	case "":
		return DuplicatesKeep, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want keep, warn, last-wins or reject)", s)
	}
}

// Parser parses declaration files into declarations.
type Parser struct {
	duplicates  DuplicatePolicy
	maxFileSize int64
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		duplicates:  DuplicatesKeep,
		maxFileSize: 16 * 1024 * 1024, // 16MB
	}
}

// WithDuplicatePolicy sets how repeated names are handled.
func (p *Parser) WithDuplicatePolicy(policy DuplicatePolicy) *Parser {
	p.duplicates = policy
	return p
}

// WithMaxFileSize sets the maximum accepted file size in bytes.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// MaxFileSize returns the configured file size limit.
func (p *Parser) MaxFileSize() int64 {
	return p.maxFileSize
}
