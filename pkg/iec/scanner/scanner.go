package scanner

import (
	"sort"
	"strings"
)

// Span is one comment in the scanned text.
type Span struct {
	Start int    // offset of the opening delimiter
	End   int    // offset just past the closing delimiter
	Body  string // text between the delimiters, untrimmed
	Line  bool   // true for // comments
}

// Text returns the trimmed comment body.
func (s Span) Text() string {
	return strings.TrimSpace(s.Body)
}

// Source is a scanned declaration text. Code has the same byte length as
// Text, with comment bytes and string literal bodies replaced by spaces.
// Newlines are kept so offsets, lines and columns agree between both views.
//
// Keyword searches and bracket counting run on Code, extraction slices Text.
type Source struct {
	Text         string
	Code         string
	Comments     []Span
	Unterminated bool // a block comment runs to the end of the text

	lineStarts []int
}

// Scan masks comments and string bodies of text.
func Scan(text string) *Source {
	n := len(text)
	code := []byte(text)
	src := &Source{Text: text, lineStarts: []int{0}}

	for i := 0; i < n; {
		c := text[i]
		switch {
		case c == '(' && i+1 < n && text[i+1] == '*':
			end, ok := blockCommentEnd(text, i)
			bodyEnd := end
			if ok {
				bodyEnd = end - 2
			} else {
				src.Unterminated = true
			}
			src.Comments = append(src.Comments, Span{Start: i, End: end, Body: text[i+2 : bodyEnd]})
			blank(code, i, end)
			i = end

		case c == '/' && i+1 < n && text[i+1] == '/':
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				end = n
			} else {
				end += i
			}
			body := strings.TrimSuffix(text[i+2:end], "\r")
			src.Comments = append(src.Comments, Span{Start: i, End: end, Body: body, Line: true})
			blank(code, i, end)
			i = end

		case c == '\'' || c == '"':
			end := stringEnd(text, i)
			blank(code, i+1, end)
			if end < n && text[end] == c {
				end++
			}
			i = end

		default:
			i++
		}
	}

	for i := 0; i < n; i++ {
		if text[i] == '\n' {
			src.lineStarts = append(src.lineStarts, i+1)
		}
	}
	src.Code = string(code)
	return src
}

// blockCommentEnd returns the offset past the "*)" that closes the comment
// opened at start. Nested comments are counted.
func blockCommentEnd(text string, start int) (int, bool) {
	depth := 1
	for j := start + 2; j < len(text)-1; {
		switch {
		case text[j] == '(' && text[j+1] == '*':
			depth++
			j += 2
		case text[j] == '*' && text[j+1] == ')':
			depth--
			j += 2
			if depth == 0 {
				return j, true
			}
		default:
			j++
		}
	}
	return len(text), false
}

// stringEnd returns the offset of the closing quote of the literal opened at
// start, or of the end of the line when the literal is unterminated. '$'
// escapes the next byte.
func stringEnd(text string, start int) int {
	quote := text[start]
	for j := start + 1; j < len(text); j++ {
		switch text[j] {
		case '$':
			j++
		case quote, '\n':
			return j
		}
	}
	return len(text)
}

func blank(code []byte, from, to int) {
	if to > len(code) {
		to = len(code)
	}
	for k := from; k < to; k++ {
		if code[k] != '\n' && code[k] != '\r' {
			code[k] = ' '
		}
	}
}

// Position converts a byte offset into a 1-based line and column.
func (s *Source) Position(offset int) (line, column int) {
	idx := sort.SearchInts(s.lineStarts, offset+1) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1, offset - s.lineStarts[idx] + 1
}

// AdjoiningComments returns up to limit comments that follow pos with only
// whitespace before and between them.
func (s *Source) AdjoiningComments(pos, limit int) []Span {
	i := sort.Search(len(s.Comments), func(i int) bool { return s.Comments[i].Start >= pos })
	var out []Span
	cur := pos
	for ; i < len(s.Comments) && len(out) < limit; i++ {
		c := s.Comments[i]
		if strings.TrimSpace(s.Text[cur:c.Start]) != "" {
			break
		}
		out = append(out, c)
		cur = c.End
	}
	return out
}

// IsWordByte reports whether b can be part of an identifier.
func IsWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentStart(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// SkipSpace returns the first offset at or after from, below to, that is not
// whitespace in code.
func SkipSpace(code string, from, to int) int {
	for from < to && isSpace(code[from]) {
		from++
	}
	return from
}

// HasKeyword reports whether code at offset starts with the word kw,
// compared case-insensitively and word bounded.
func HasKeyword(code string, offset int, kw string) bool {
	end := offset + len(kw)
	if offset < 0 || end > len(code) || !strings.EqualFold(code[offset:end], kw) {
		return false
	}
	if offset > 0 && IsWordByte(code[offset-1]) {
		return false
	}
	return end == len(code) || !IsWordByte(code[end])
}

// DeclaresName reports whether the word ending at end is followed by a
// single ':' (not ':='), which makes it the name of a declaration or entry
// rather than a keyword.
func DeclaresName(code string, end int) bool {
	k := SkipSpace(code, end, len(code))
	return k < len(code) && code[k] == ':' && (k+1 >= len(code) || code[k+1] != '=')
}

// isReference reports whether the word at [start, end) is used as a type
// or member reference: it follows ':' or '.', or is followed by '.'.
func isReference(code string, start, end int) bool {
	k := start - 1
	for k >= 0 && isSpace(code[k]) {
		k--
	}
	if k >= 0 && (code[k] == ':' || code[k] == '.') {
		return true
	}
	return end < len(code) && code[end] == '.'
}

// keywordAt reports whether the word at [start, end) is in keyword
// position: neither a declared name nor a reference.
func keywordAt(code string, start, end int) bool {
	return !DeclaresName(code, end) && !isReference(code, start, end)
}

// Identifier returns the identifier starting at offset and the offset past
// it. It returns an empty name if no identifier starts there.
func Identifier(code string, offset int) (string, int) {
	if offset >= len(code) || !isIdentStart(code[offset]) {
		return "", offset
	}
	end := offset + 1
	for end < len(code) && IsWordByte(code[end]) {
		end++
	}
	return code[offset:end], end
}

// Strip returns Text[from:to] with comments replaced by spaces. String
// literals are kept.
func (s *Source) Strip(from, to int) string {
	out := []byte(s.Text[from:to])
	for _, c := range s.Comments {
		if c.End <= from || c.Start >= to {
			continue
		}
		blank(out, max(c.Start, from)-from, min(c.End, to)-from)
	}
	return string(out)
}
