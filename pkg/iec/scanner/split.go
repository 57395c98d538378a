package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

// Kind classifies a declaration unit.
type Kind string

const (
	KindFunction      Kind = "function"
	KindFunctionBlock Kind = "function_block"
	KindStructure     Kind = "structure"
	KindEnumeration   Kind = "enumeration"
	KindConstants     Kind = "constants"
)

// Unit is one syntactically complete candidate declaration cut out of a
// file. Text is the raw source slice including comments.
type Unit struct {
	Kind     Kind
	Name     string
	Text     string
	Offset   int
	Location ast.Location
}

var (
	functionTokenRe = regexp.MustCompile(`(?i)\b(END_FUNCTION_BLOCK|END_FUNCTION|FUNCTION_BLOCK|FUNCTION)\b`)
	typeTokenRe     = regexp.MustCompile(`(?i)\b(END_TYPE|TYPE)\b`)
	structTokenRe   = regexp.MustCompile(`(?i)\b(END_STRUCT|STRUCT)\b`)
)

type splitter struct {
	file     string
	src      *Source
	units    []Unit
	warnings *errors.ErrorList
}

func newSplitter(file, text string) *splitter {
	return &splitter{file: file, src: Scan(text), warnings: errors.NewErrorList()}
}

func (s *splitter) location(offset int) ast.Location {
	line, col := s.src.Position(offset)
	return ast.Location{File: s.file, Line: line, Column: col}
}

func (s *splitter) warn(errType errors.ErrorType, offset int, format string, args ...any) {
	s.warnings.Add(errors.Warning(errType, s.location(offset), format, args...))
}

func (s *splitter) add(kind Kind, name string, start, end int) {
	s.units = append(s.units, Unit{
		Kind:     kind,
		Name:     name,
		Text:     s.src.Text[start:end],
		Offset:   start,
		Location: s.location(start),
	})
}

func (s *splitter) result() ([]Unit, *errors.ErrorList) {
	if s.src.Unterminated {
		last := s.src.Comments[len(s.src.Comments)-1]
		s.warn(errors.ErrorTypeStructural, last.Start, "comment is not closed before end of file")
	}
	return s.units, s.warnings
}

// SplitFunctionFile cuts a function declaration file into FUNCTION and
// FUNCTION_BLOCK units. An opener met before the closer of the current unit
// abandons that unit and starts over at the new opener.
func SplitFunctionFile(file, text string) ([]Unit, *errors.ErrorList) {
	s := newSplitter(file, text)
	code := s.src.Code

	type candidate struct {
		kind  Kind
		name  string
		start int
	}
	var open *candidate

	for _, tok := range functionTokenRe.FindAllStringIndex(code, -1) {
		start, end := tok[0], tok[1]
		if !keywordAt(code, start, end) {
			continue
		}
		word := strings.ToUpper(code[start:end])

		switch word {
		case "FUNCTION", "FUNCTION_BLOCK":
			if open != nil {
				s.warn(errors.ErrorTypeStructural, open.start,
					"%s %s has no %s before the next declaration", kindKeyword(open.kind), open.name, closerFor(open.kind))
			}
			kind := KindFunction
			if word == "FUNCTION_BLOCK" {
				kind = KindFunctionBlock
			}
			name, _ := Identifier(code, SkipSpace(code, end, len(code)))
			open = &candidate{kind: kind, name: name, start: start}

		default:
			if open == nil {
				s.warn(errors.ErrorTypeStructural, start, "%s without matching declaration", word)
				continue
			}
			if word != closerFor(open.kind) {
				s.warn(errors.ErrorTypeStructural, start,
					"%s %s is closed by %s, expected %s", kindKeyword(open.kind), open.name, word, closerFor(open.kind))
			}
			if open.name == "" {
				s.warn(errors.ErrorTypeMalformed, open.start, "%s has no name", kindKeyword(open.kind))
			} else {
				s.add(open.kind, open.name, open.start, end)
			}
			open = nil
		}
	}

	if open != nil {
		s.warn(errors.ErrorTypeStructural, open.start,
			"%s %s has no %s", kindKeyword(open.kind), open.name, closerFor(open.kind))
	}
	return s.result()
}

func kindKeyword(kind Kind) string {
	if kind == KindFunctionBlock {
		return "FUNCTION_BLOCK"
	}
	return "FUNCTION"
}

func closerFor(kind Kind) string {
	return "END_" + kindKeyword(kind)
}

// SplitTypeFile cuts a type declaration file into STRUCT and enumeration
// units. Derived and alias declarations are skipped.
func SplitTypeFile(file, text string) ([]Unit, *errors.ErrorList) {
	s := newSplitter(file, text)
	code := s.src.Code

	bodyStart := -1
	for _, tok := range typeTokenRe.FindAllStringIndex(code, -1) {
		start, end := tok[0], tok[1]
		if !keywordAt(code, start, end) {
			continue
		}
		if strings.EqualFold(code[start:end], "TYPE") {
			if bodyStart >= 0 {
				s.warn(errors.ErrorTypeStructural, start, "TYPE block is not closed by END_TYPE")
				s.typeBody(bodyStart, start)
			}
			bodyStart = end
			continue
		}
		if bodyStart < 0 {
			s.warn(errors.ErrorTypeStructural, start, "END_TYPE without TYPE")
			continue
		}
		s.typeBody(bodyStart, start)
		bodyStart = -1
	}
	if bodyStart >= 0 {
		s.warn(errors.ErrorTypeStructural, bodyStart, "TYPE block is not closed by END_TYPE")
		s.typeBody(bodyStart, len(code))
	}
	return s.result()
}

func (s *splitter) typeBody(start, end int) {
	code := s.src.Code
	p := start
	for {
		p = SkipSpace(code, p, end)
		if p >= end {
			return
		}

		name, q, ok := declarationHead(code, p, end)
		if !ok {
			s.warn(errors.ErrorTypeMalformed, p, "unrecognised text %q in TYPE block", snippet(s.src.Text[p:end]))
			p = s.resync(p+1, end)
			continue
		}

		q = SkipSpace(code, q, end)
		switch {
		case HasKeyword(code[:end], q, "STRUCT"):
			p = s.structUnit(name, p, q, end)
		case q < end && code[q] == '(':
			p = s.enumUnit(name, p, q, end)
		default:
			p = skipStatement(code, q, end)
		}
	}
}

// declarationHead matches "identifier :" (not ":=") at p and returns the
// name and the offset past the colon.
func declarationHead(code string, p, end int) (string, int, bool) {
	name, q := Identifier(code[:end], p)
	if name == "" {
		return "", p, false
	}
	q = SkipSpace(code, q, end)
	if q >= end || code[q] != ':' || (q+1 < end && code[q+1] == '=') {
		return "", p, false
	}
	return name, q + 1, true
}

// resync returns the offset of the next "identifier :" at or after from, or
// end if there is none.
func (s *splitter) resync(from, end int) int {
	code := s.src.Code
	for i := from; i < end; i++ {
		if !isIdentStart(code[i]) || (i > 0 && IsWordByte(code[i-1])) {
			continue
		}
		if _, _, ok := declarationHead(code, i, end); ok {
			return i
		}
	}
	return end
}

func (s *splitter) structUnit(name string, p, q, end int) int {
	code := s.src.Code
	bodyStart := q + len("STRUCT")
	closeAt := -1
	for _, tok := range structTokenRe.FindAllStringIndex(code[bodyStart:end], -1) {
		start, stop := bodyStart+tok[0], bodyStart+tok[1]
		if DeclaresName(code[:end], stop) {
			continue
		}
		if strings.EqualFold(code[start:stop], "END_STRUCT") {
			closeAt = stop
		}
		break
	}
	if closeAt < 0 {
		s.warn(errors.ErrorTypeStructural, p, "structure %s has no END_STRUCT", name)
		return s.resync(bodyStart, end)
	}

	stop := optionalSemicolon(code, closeAt, end)
	s.add(KindStructure, name, p, stop)
	return stop
}

func (s *splitter) enumUnit(name string, p, q, end int) int {
	code := s.src.Code
	depth := 0
	closeAt := -1
scan:
	for i := q; i < end; i++ {
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeAt = i
				break scan
			}
		case ';':
			break scan
		}
	}
	if closeAt < 0 {
		s.warn(errors.ErrorTypeStructural, q, "enumeration %s has an unterminated parenthesis group", name)
		return s.resync(q+1, end)
	}

	stop := closeAt + 1
	k := SkipSpace(code, stop, end)
	if strings.HasPrefix(code[k:end], ":=") {
		v := SkipSpace(code, k+2, end)
		j := v
		for j < end && (IsWordByte(code[j]) || code[j] == '#') {
			j++
		}
		if j > v {
			stop = j
		}
	}
	stop = optionalSemicolon(code, stop, end)
	s.add(KindEnumeration, name, p, stop)
	return stop
}

func optionalSemicolon(code string, pos, end int) int {
	k := SkipSpace(code, pos, end)
	if k < end && code[k] == ';' {
		return k + 1
	}
	return pos
}

// skipStatement returns the offset past the next ';' outside brackets.
func skipStatement(code string, from, end int) int {
	depth := 0
	for i := from; i < end; i++ {
		switch code[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				return i + 1
			}
		}
	}
	return end
}

// SplitVarFile cuts a variable declaration file into VAR CONSTANT units.
// Other VAR blocks are ignored.
func SplitVarFile(file, text string) ([]Unit, *errors.ErrorList) {
	s := newSplitter(file, text)
	for _, sec := range Sections(s.src.Code, 0, len(s.src.Code)) {
		if sec.Keyword != "VAR" || !sec.Has("CONSTANT") {
			continue
		}
		if !sec.Terminated {
			s.warn(errors.ErrorTypeStructural, sec.Start, "VAR CONSTANT block has no END_VAR")
			continue
		}
		s.add(KindConstants, "", sec.Start, sec.End)
	}
	return s.result()
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > 40 {
		return fmt.Sprintf("%s...", text[:40])
	}
	return text
}
