package parser

import (
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/scanner"
)

// ParseEnumeration parses a "name : ( literals ) [:= default] ;" unit.
// Comments that occupy whole lines are dropped first, so commented-out
// literals never attach to a neighbour. Comments sharing a line with code
// are kept.
func (p *Parser) ParseEnumeration(unit scanner.Unit) (*ast.Enumeration, *errors.ErrorList, error) {
	stripped := stripCommentLines(unit.Text)
	u := newUnitParse(scanner.Unit{Kind: unit.Kind, Name: unit.Name, Text: stripped, Offset: unit.Offset, Location: unit.Location})
	code := u.src.Code

	start := scanner.SkipSpace(code, 0, len(code))
	name, after := scanner.Identifier(code, start)
	open := scanner.SkipSpace(code, after, len(code))
	if name == "" || open >= len(code) || code[open] != ':' {
		return nil, u.warnings, u.fail(start, "no enumeration declaration found")
	}
	open = scanner.SkipSpace(code, open+1, len(code))
	if open >= len(code) || code[open] != '(' {
		return nil, u.warnings, u.fail(start, "enumeration %s has no '(' delimiter", name)
	}

	closeAt := matchParen(code, open)
	if closeAt < 0 {
		return nil, u.warnings, u.fail(open, "enumeration %s has no matching ')'", name)
	}

	e := &ast.Enumeration{
		Name:        name,
		Description: u.description(open + 1),
		Location:    unit.Location,
	}

	k := scanner.SkipSpace(code, closeAt+1, len(code))
	if strings.HasPrefix(code[k:], ":=") {
		v := scanner.SkipSpace(code, k+2, len(code))
		j := v
		for j < len(code) && (scanner.IsWordByte(code[j]) || code[j] == '#') {
			j++
		}
		e.Default = code[v:j]
	}

	// The description comment is consumed; literal comments start after it.
	first := open + 1
	if c := u.src.AdjoiningComments(first, 1); len(c) > 0 {
		first = c[0].End
	}
	e.Literals = u.literals(first, closeAt, name)

	entries := make([]named, len(e.Literals))
	for i, l := range e.Literals {
		entries[i] = named{name: l.Name, location: unit.Location}
	}
	keep, err := p.applyDuplicates("enumeration "+name, entries, u.warnings)
	if err != nil {
		return nil, u.warnings, err
	}
	literals := e.Literals[:0:0]
	for i, l := range e.Literals {
		if keep[i] {
			literals = append(literals, l)
		}
	}
	e.Literals = literals
	return e, u.warnings, nil
}

// literals parses "name [:= value] [,] [comments]" entries in [from, to).
func (u *unitParse) literals(from, to int, owner string) []*ast.EnumLiteral {
	code := u.src.Code
	var out []*ast.EnumLiteral

	pos := from
	for {
		pos = scanner.SkipSpace(code, pos, to)
		if pos >= to {
			return out
		}
		if code[pos] == ',' {
			pos++
			continue
		}

		name, end := scanner.Identifier(code[:to], pos)
		if name == "" {
			next := strings.IndexByte(code[pos:to], ',')
			stop := to
			if next >= 0 {
				stop = pos + next
			}
			u.warnings.Add(errors.Warning(errors.ErrorTypeMalformed, u.location(pos),
				"cannot parse literal %q of enumeration %s", collapseSpace(u.src.Strip(pos, stop)), owner))
			pos = stop
			continue
		}

		lit := &ast.EnumLiteral{Name: name}
		pos = end
		k := scanner.SkipSpace(code, pos, to)
		if strings.HasPrefix(code[k:to], ":=") {
			v := scanner.SkipSpace(code, k+2, to)
			j := v
			for j < to && code[j] != ',' && code[j] != ')' && !isSpaceByte(code[j]) {
				j++
			}
			lit.Value = strings.TrimSpace(u.src.Text[v:j])
			pos = j
		}

		comments := u.src.AdjoiningComments(pos, ast.MaxComments)
		if len(comments) > 0 {
			pos = comments[len(comments)-1].End
		}
		if k := scanner.SkipSpace(code, pos, to); k < to && code[k] == ',' {
			pos = k + 1
			more := u.src.AdjoiningComments(pos, ast.MaxComments-len(comments))
			if len(more) > 0 {
				pos = more[len(more)-1].End
			}
			comments = append(comments, more...)
		}

		texts := make([]string, len(comments))
		for i, c := range comments {
			texts[i] = c.Text()
		}
		lit.SetComments(texts)
		out = append(out, lit)
	}
}

// matchParen returns the offset of the ')' closing the '(' at open.
func matchParen(code string, open int) int {
	depth := 0
	for i := open; i < len(code); i++ {
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripCommentLines blanks every comment whose lines carry no code. Byte
// offsets are kept.
func stripCommentLines(text string) string {
	src := scanner.Scan(text)
	if len(src.Comments) == 0 {
		return text
	}

	lineHasCode := func(offset int) bool {
		start := strings.LastIndexByte(text[:offset], '\n') + 1
		end := strings.IndexByte(text[offset:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += offset
		}
		return strings.TrimSpace(src.Code[start:end]) != ""
	}

	out := []byte(text)
	for _, c := range src.Comments {
		whole := true
		for off := c.Start; off < c.End && whole; {
			if lineHasCode(off) {
				whole = false
			}
			next := strings.IndexByte(text[off:c.End], '\n')
			if next < 0 {
				break
			}
			off += next + 1
		}
		if !whole {
			continue
		}
		for i := c.Start; i < c.End; i++ {
			if out[i] != '\n' && out[i] != '\r' {
				out[i] = ' '
			}
		}
	}
	return string(out)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
