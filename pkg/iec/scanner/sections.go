package scanner

import (
	"regexp"
	"strings"
)

var sectionTokenRe = regexp.MustCompile(`(?i)\b(END_VAR|VAR(?:_INPUT|_OUTPUT|_IN_OUT|_CONSTANT|_TEMP|_EXTERNAL|_GLOBAL)?)\b`)

// Section is one VAR…END_VAR block.
type Section struct {
	Keyword    string   // upper-cased opener, e.g. "VAR_INPUT"
	Qualifiers []string // upper-cased RETAIN / CONSTANT / PERSISTENT after the opener
	Start      int      // offset of the opener
	BodyStart  int      // offset past the header
	BodyEnd    int      // offset of END_VAR, or of the next opener when unterminated
	End        int      // offset past END_VAR
	Terminated bool
}

// Has reports whether the header carries qualifier q.
func (s Section) Has(q string) bool {
	for _, have := range s.Qualifiers {
		if strings.EqualFold(have, q) {
			return true
		}
	}
	return false
}

// Sections finds the variable sections of code within [from, to). A section
// without END_VAR ends at the next opener and is reported unterminated.
func Sections(code string, from, to int) []Section {
	tokens := sectionTokenRe.FindAllStringIndex(code[from:to], -1)

	var out []Section
	var open *Section
	closeOpen := func(at int) {
		if open != nil {
			open.BodyEnd = at
			open.End = at
			out = append(out, *open)
			open = nil
		}
	}

	for _, tok := range tokens {
		start, end := from+tok[0], from+tok[1]
		if DeclaresName(code[:to], end) {
			continue
		}
		word := strings.ToUpper(code[start:end])
		if word == "END_VAR" {
			if open == nil {
				continue
			}
			open.BodyEnd = start
			open.End = end
			open.Terminated = true
			out = append(out, *open)
			open = nil
			continue
		}

		closeOpen(start)
		quals, bodyStart := qualifiers(code, end, to)
		open = &Section{Keyword: word, Qualifiers: quals, Start: start, BodyStart: bodyStart}
	}
	closeOpen(to)
	return out
}

// qualifiers reads RETAIN, CONSTANT and PERSISTENT after a section opener.
// A word followed by ':' is the first variable of the section instead.
func qualifiers(code string, from, to int) ([]string, int) {
	var quals []string
	pos := from
	for {
		next := SkipSpace(code, pos, to)
		word, end := Identifier(code[:to], next)
		if word != "" && DeclaresName(code[:to], end) {
			return quals, pos
		}
		switch strings.ToUpper(word) {
		case "RETAIN", "CONSTANT", "PERSISTENT":
			quals = append(quals, strings.ToUpper(word))
			pos = end
		default:
			return quals, pos
		}
	}
}
