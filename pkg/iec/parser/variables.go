package parser

import (
	"regexp"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/scanner"
)

// entryRe matches one variable entry with comments already blanked:
// name : [{redundancy}] [REFERENCE TO] type [:= default]
var entryRe = regexp.MustCompile(`(?s)^\s*([A-Za-z_]\w*)\s*:\s*(\{[^}]*\}\s*)?((?i:REFERENCE\s+TO)\s+)?(.+?)(?:\s*:=\s*(.*?))?\s*$`)

// typeTextRe limits the characters a type expression may contain.
var typeTextRe = regexp.MustCompile(`^[\w\s\[\]\.,()+\-#]+$`)

// ParseVariables parses the body of a variable section. Entries are
// separated by ';' outside brackets; up to three comments directly after the
// ';' become the entry's comments. base is the location of the first byte
// of body. Malformed entries are skipped with a warning.
func ParseVariables(body string, role ast.Role, base ast.Location) ([]*ast.Variable, *errors.ErrorList) {
	src := scanner.Scan(body)
	return parseEntries(src, 0, len(body), role, base)
}

func parseEntries(src *scanner.Source, from, to int, role ast.Role, base ast.Location) ([]*ast.Variable, *errors.ErrorList) {
	warnings := errors.NewErrorList()
	code := src.Code
	var vars []*ast.Variable

	locate := func(offset int) ast.Location {
		line, col := src.Position(offset)
		return base.Offset(line, col)
	}

	depth := 0
	start := from
	for i := from; i < to; i++ {
		switch code[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth > 0 {
				continue
			}
			entryStart := scanner.SkipSpace(code, start, i)
			start = i + 1
			if entryStart == i {
				// stray ';'
				continue
			}

			v, ok := parseEntry(src.Strip(entryStart, i))
			if !ok {
				warnings.Add(errors.Warning(errors.ErrorTypeMalformed, locate(entryStart),
					"cannot parse variable entry %q", collapseSpace(src.Strip(entryStart, i))))
				continue
			}

			comments := src.AdjoiningComments(i+1, ast.MaxComments)
			texts := make([]string, len(comments))
			for k, c := range comments {
				texts[k] = c.Text()
			}
			v.SetComments(texts)
			v.Role = role
			v.Location = locate(entryStart)
			vars = append(vars, v)
		}
	}

	if rest := scanner.SkipSpace(code, start, to); rest < to {
		warnings.Add(errors.Warning(errors.ErrorTypeMalformed, locate(rest),
			"variable entry %q is not terminated by ';'", collapseSpace(src.Strip(rest, to))))
	}
	return vars, warnings
}

// parseEntry parses one entry without its terminating ';'.
func parseEntry(text string) (*ast.Variable, bool) {
	m := entryRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	typeText := strings.TrimSpace(m[4])
	if typeText == "" || !typeTextRe.MatchString(typeText) {
		return nil, false
	}
	return &ast.Variable{
		Name:        m[1],
		Type:        ParseType(typeText),
		IsReference: m[3] != "",
		Redundancy:  strings.TrimSpace(m[2]),
		Default:     strings.TrimSpace(m[5]),
	}, true
}
