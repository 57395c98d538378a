package parser

import (
	"regexp"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/scanner"
)

var endStructRe = regexp.MustCompile(`(?i)\bEND_STRUCT\b`)

// unitParse carries the scanned unit text through one declaration parse.
type unitParse struct {
	unit     scanner.Unit
	src      *scanner.Source
	warnings *errors.ErrorList
}

func newUnitParse(unit scanner.Unit) *unitParse {
	return &unitParse{unit: unit, src: scanner.Scan(unit.Text), warnings: errors.NewErrorList()}
}

func (u *unitParse) location(offset int) ast.Location {
	line, col := u.src.Position(offset)
	return u.unit.Location.Offset(line, col)
}

func (u *unitParse) fail(offset int, format string, args ...any) *errors.Error {
	return errors.Errorf(errors.ErrorTypeStructural, u.location(offset), format, args...)
}

// description returns the first comment adjoining pos.
func (u *unitParse) description(pos int) string {
	if c := u.src.AdjoiningComments(pos, 1); len(c) > 0 {
		return c[0].Text()
	}
	return ""
}

// header reads "KEYWORD name" at the start of the unit and returns the name
// and the offset past it.
func (u *unitParse) header(keyword string) (string, int, bool) {
	code := u.src.Code
	p := scanner.SkipSpace(code, 0, len(code))
	if !scanner.HasKeyword(code, p, keyword) {
		return "", 0, false
	}
	name, end := scanner.Identifier(code, scanner.SkipSpace(code, p+len(keyword), len(code)))
	return name, end, name != ""
}

// sectionRole maps a section header to a role. ok is false for headers that
// have no role in the model.
func sectionRole(sec scanner.Section) (ast.Role, bool) {
	switch sec.Keyword {
	case "VAR_INPUT":
		return ast.RoleInput, true
	case "VAR_OUTPUT":
		return ast.RoleOutput, true
	case "VAR_IN_OUT":
		return ast.RoleInOut, true
	case "VAR_CONSTANT":
		return ast.RoleConstant, true
	case "VAR":
		if sec.Has("CONSTANT") {
			return ast.RoleConstant, true
		}
		return ast.RoleLocal, true
	default:
		return "", false
	}
}

// sections parses every variable section after from and hands the
// variables of each routed section to route. route returns false to reject
// a role.
func (u *unitParse) sections(from int, owner string, route func(ast.Role, []*ast.Variable) bool) {
	code := u.src.Code
	for _, sec := range scanner.Sections(code, from, len(code)) {
		if !sec.Terminated {
			u.warnings.Add(errors.Warning(errors.ErrorTypeStructural, u.location(sec.Start),
				"%s section of %s has no END_VAR", sec.Keyword, owner))
		}
		role, ok := sectionRole(sec)
		if !ok {
			u.warnings.Add(errors.Warning(errors.ErrorTypeMalformed, u.location(sec.Start),
				"%s section of %s is not supported; skipped", sec.Keyword, owner))
			continue
		}

		vars, warnings := parseEntries(u.src, sec.BodyStart, sec.BodyEnd, role, u.unit.Location)
		u.warnings.Merge(warnings)

		if sec.Has("RETAIN") {
			for _, v := range vars {
				v.Retain = true
			}
		}
		if !route(role, vars) {
			u.warnings.Add(errors.Warning(errors.ErrorTypeMalformed, u.location(sec.Start),
				"%s section is not allowed in %s; skipped", sec.Keyword, owner))
		}
	}
}

// ParseFunctionBlock parses a FUNCTION_BLOCK unit. A non-nil error means the
// unit produced no declaration; warnings are returned in both cases.
func (p *Parser) ParseFunctionBlock(unit scanner.Unit) (*ast.FunctionBlock, *errors.ErrorList, error) {
	u := newUnitParse(unit)
	name, nameEnd, ok := u.header("FUNCTION_BLOCK")
	if !ok {
		return nil, u.warnings, u.fail(0, "no FUNCTION_BLOCK header found")
	}

	fb := &ast.FunctionBlock{
		Name:        name,
		Description: u.description(nameEnd),
		Location:    unit.Location,
	}

	owner := "function block " + name
	u.sections(nameEnd, owner, func(role ast.Role, vars []*ast.Variable) bool {
		section := fb.Section(role)
		*section = append(*section, vars...)
		return true
	})

	if err := p.dedupeSections(owner, fb.Section, ast.Roles, u.warnings); err != nil {
		return nil, u.warnings, err
	}
	return fb, u.warnings, nil
}

// ParseFunction parses a FUNCTION unit. The return type after "name :" is
// mandatory. Output and constant sections are rejected with a warning.
func (p *Parser) ParseFunction(unit scanner.Unit) (*ast.Function, *errors.ErrorList, error) {
	u := newUnitParse(unit)
	code := u.src.Code
	name, nameEnd, ok := u.header("FUNCTION")
	if !ok {
		return nil, u.warnings, u.fail(0, "no FUNCTION header found")
	}

	colon := scanner.SkipSpace(code, nameEnd, len(code))
	if colon >= len(code) || code[colon] != ':' {
		return nil, u.warnings, u.fail(nameEnd, "function %s has no return type", name)
	}

	retStart := colon + 1
	retEnd := len(code)
	if nl := strings.IndexByte(code[retStart:], '\n'); nl >= 0 {
		retEnd = retStart + nl
	}
	if secs := scanner.Sections(code, retStart, retEnd); len(secs) > 0 {
		retEnd = secs[0].Start
	}
	retText := strings.TrimSpace(code[retStart:retEnd])
	if retText == "" {
		return nil, u.warnings, u.fail(nameEnd, "function %s has no return type", name)
	}
	retEnd = retStart + strings.Index(code[retStart:retEnd], retText) + len(retText)

	fn := &ast.Function{
		Name:        name,
		Description: u.description(retEnd),
		ReturnType:  ParseType(retText),
		Location:    unit.Location,
	}

	owner := "function " + name
	u.sections(retEnd, owner, func(role ast.Role, vars []*ast.Variable) bool {
		section := fn.Section(role)
		if section == nil {
			return false
		}
		*section = append(*section, vars...)
		return true
	})

	roles := []ast.Role{ast.RoleInput, ast.RoleInOut, ast.RoleLocal}
	if err := p.dedupeSections(owner, fn.Section, roles, u.warnings); err != nil {
		return nil, u.warnings, err
	}
	return fn, u.warnings, nil
}

// dedupeSections applies the duplicate policy across all sections of one
// declaration.
func (p *Parser) dedupeSections(owner string, section func(ast.Role) *[]*ast.Variable, roles []ast.Role, warnings *errors.ErrorList) error {
	var all []*ast.Variable
	for _, role := range roles {
		all = append(all, *section(role)...)
	}
	kept, err := p.dedupeVariables(owner, all, warnings)
	if err != nil {
		return err
	}
	if len(kept) == len(all) {
		return nil
	}

	survivors := make(map[*ast.Variable]bool, len(kept))
	for _, v := range kept {
		survivors[v] = true
	}
	for _, role := range roles {
		list := section(role)
		filtered := (*list)[:0:0]
		for _, v := range *list {
			if survivors[v] {
				filtered = append(filtered, v)
			}
		}
		*list = filtered
	}
	return nil
}

// ParseStructure parses a "name : STRUCT … END_STRUCT" unit into a flat
// member list.
func (p *Parser) ParseStructure(unit scanner.Unit) (*ast.Structure, *errors.ErrorList, error) {
	u := newUnitParse(unit)
	code := u.src.Code

	start := scanner.SkipSpace(code, 0, len(code))
	name, after := scanner.Identifier(code, start)
	colon := scanner.SkipSpace(code, after, len(code))
	kw := scanner.SkipSpace(code, colon+1, len(code))
	if name == "" || colon >= len(code) || code[colon] != ':' || !scanner.HasKeyword(code, kw, "STRUCT") {
		return nil, u.warnings, u.fail(start, "no STRUCT declaration found")
	}

	bodyStart := kw + len("STRUCT")
	end := endStructRe.FindStringIndex(code[bodyStart:])
	if end == nil {
		return nil, u.warnings, u.fail(kw, "structure %s has no END_STRUCT", name)
	}

	s := &ast.Structure{
		Name:        name,
		Description: u.description(bodyStart),
		Location:    unit.Location,
	}

	members, warnings := parseEntries(u.src, bodyStart, bodyStart+end[0], ast.RoleLocal, unit.Location)
	u.warnings.Merge(warnings)

	members, err := p.dedupeVariables("structure "+name, members, u.warnings)
	if err != nil {
		return nil, u.warnings, err
	}
	s.Members = members
	return s, u.warnings, nil
}
