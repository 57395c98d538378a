package parser

import (
	"regexp"
	"strconv"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

var (
	arrayTypeRe  = regexp.MustCompile(`(?is)^ARRAY\s*\[([^\]]*)\]\s*OF\s+(\S.*)$`)
	stringTypeRe = regexp.MustCompile(`(?is)^STRING\s*\[\s*([^\]]*?)\s*\]$`)
	rangeTypeRe  = regexp.MustCompile(`(?s)^([A-Za-z_]\w*)\s*\(\s*([^.)]*?)\s*\.\.\s*([^)]*?)\s*\)$`)
	dimensionRe  = regexp.MustCompile(`(?s)^\s*([^.]*?)\s*\.\.\s*(.*?)\s*$`)
	prefixRe     = regexp.MustCompile(`(?i)^(?:POINTER\s+TO|REFERENCE\s+TO|ARRAY\s+OF)\s+`)
	literalRe    = regexp.MustCompile(`^[+-]?\d+$`)
	identRe      = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// ParseType parses a type expression. Leading POINTER TO, REFERENCE TO
// and ARRAY OF prefixes are peeled first; then array, string and range
// forms are tried in that order and carry the prefixes in their Prefix
// field. Anything else, including a malformed candidate of those forms, is
// a basic type whose name keeps its source spelling (prefixes included)
// with inner whitespace collapsed.
func ParseType(text string) ast.Type {
	text = strings.TrimSpace(text)

	rest := text
	for {
		m := prefixRe.FindString(rest)
		if m == "" {
			break
		}
		rest = rest[len(m):]
	}
	prefix := collapseSpace(text[:len(text)-len(rest)])

	if t, ok := parseDecorated(rest); ok {
		switch v := t.(type) {
		case *ast.ArrayType:
			v.Prefix = prefix
		case *ast.StringType:
			v.Prefix = prefix
		case *ast.RangeType:
			v.Prefix = prefix
		}
		return t
	}
	return &ast.BasicType{Name: collapseSpace(text)}
}

func parseDecorated(text string) (ast.Type, bool) {
	if t, ok := parseArray(text); ok {
		return t, true
	}
	if t, ok := parseString(text); ok {
		return t, true
	}
	return parseRange(text)
}

func parseArray(text string) (ast.Type, bool) {
	m := arrayTypeRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}

	var dims []ast.Dimension
	for _, part := range strings.Split(m[1], ",") {
		d := dimensionRe.FindStringSubmatch(part)
		if d == nil {
			return nil, false
		}
		lower, ok := ParseBound(d[1])
		if !ok {
			return nil, false
		}
		upper, ok := ParseBound(d[2])
		if !ok {
			return nil, false
		}
		dims = append(dims, ast.Dimension{Lower: lower, Upper: upper})
	}

	return &ast.ArrayType{Element: ParseType(m[2]), Dimensions: dims}, true
}

func parseString(text string) (ast.Type, bool) {
	m := stringTypeRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	length, ok := ParseBound(m[1])
	if !ok {
		return nil, false
	}
	return &ast.StringType{Length: length}, true
}

func parseRange(text string) (ast.Type, bool) {
	m := rangeTypeRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	lower, ok := ParseBound(m[2])
	if !ok {
		return nil, false
	}
	upper, ok := ParseBound(m[3])
	if !ok {
		return nil, false
	}
	return &ast.RangeType{Base: m[1], Lower: lower, Upper: upper}, true
}

// ParseBound classifies a bound: a signed integer literal, or an identifier
// naming a constant. Anything else is rejected.
func ParseBound(text string) (ast.Bound, bool) {
	text = strings.TrimSpace(text)
	if literalRe.MatchString(text) {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return ast.Bound{}, false
		}
		return ast.LiteralBound(v), true
	}
	if identRe.MatchString(text) {
		return ast.SymbolicBound(text), true
	}
	return ast.Bound{}, false
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
