package resolver

import (
	"regexp"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

var (
	decoratorRe = regexp.MustCompile(`(?i)^(?:POINTER\s+TO|REFERENCE\s+TO|ARRAY\s+OF)\s+`)
	arrayOpenRe = regexp.MustCompile(`(?i)^ARRAY\s*\[`)
	ofRe        = regexp.MustCompile(`(?i)^\s*OF\s+`)
)

// ResolveType marks the base type of a type expression when it names a
// structure or enumeration. Decorators such as POINTER TO and ARRAY[..] OF
// are kept with their source spelling; constants inside array dimensions
// and inside a base that is not a declared type are marked as in
// ResolveText.
func (r *Resolver) ResolveType(text string) string {
	var b strings.Builder
	rest := strings.TrimSpace(text)

	for {
		if m := decoratorRe.FindString(rest); m != "" {
			b.WriteString(r.marker.Escape(m))
			rest = rest[len(m):]
			continue
		}
		loc := arrayOpenRe.FindStringIndex(rest)
		if loc == nil {
			break
		}
		open := loc[1] - 1
		end := closeBracket(rest, open)
		b.WriteString(r.marker.Escape(rest[:open]))
		b.WriteString(r.ResolveText(rest[open:end]))
		rest = rest[end:]
		if m := ofRe.FindString(rest); m != "" {
			b.WriteString(r.marker.Escape(m))
			rest = rest[len(m):]
		} else {
			trimmed := strings.TrimLeft(rest, " \t\r\n")
			b.WriteString(r.marker.Escape(rest[:len(rest)-len(trimmed)]))
			rest = trimmed
		}
	}

	base := strings.TrimRight(rest, " \t\r\n")
	if ref, ok := r.typeRef(base); ok {
		b.WriteString(r.marker.Mark(ref))
		b.WriteString(r.marker.Escape(rest[len(base):]))
	} else {
		b.WriteString(r.ResolveText(rest))
	}
	return b.String()
}

// closeBracket returns the offset just past the bracket matching the one
// at open, or len(s) if it is never closed.
func closeBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// ResolveTypeOf renders t in canonical form with references marked.
func (r *Resolver) ResolveTypeOf(t ast.Type) string {
	switch v := t.(type) {
	case *ast.BasicType:
		return r.ResolveType(v.Name)
	case *ast.ArrayType:
		dims := make([]string, len(v.Dimensions))
		for i, d := range v.Dimensions {
			dims[i] = r.bound(d.Lower) + r.marker.Escape("..") + r.bound(d.Upper)
		}
		elem := ""
		if v.Element != nil {
			elem = r.ResolveTypeOf(v.Element)
		}
		return r.prefix(v.Prefix) + r.marker.Escape("ARRAY[") + strings.Join(dims, r.marker.Escape(",")) +
			r.marker.Escape("] OF ") + elem
	case *ast.StringType:
		return r.prefix(v.Prefix) + r.marker.Escape("STRING[") + r.bound(v.Length) + r.marker.Escape("]")
	case *ast.RangeType:
		return r.prefix(v.Prefix) + r.ResolveType(v.Base) + r.marker.Escape("(") + r.bound(v.Lower) +
			r.marker.Escape("..") + r.bound(v.Upper) + r.marker.Escape(")")
	default:
		return ""
	}
}

func (r *Resolver) prefix(p string) string {
	if p == "" {
		return ""
	}
	return r.marker.Escape(p + " ")
}

func (r *Resolver) bound(b ast.Bound) string {
	if b.IsSymbolic() {
		return r.ResolveText(b.Symbol)
	}
	return r.marker.Escape(b.String())
}
