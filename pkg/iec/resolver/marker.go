package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

// Marker renders references. Escape is applied to all text outside
// references. Existing returns the [start, end) spans of text that Mark
// produced earlier; those spans are copied unchanged.
type Marker interface {
	Mark(ref Reference) string
	Escape(text string) string
	Existing(text string) [][2]int
}

var tokenRe = regexp.MustCompile(`\[\[[a-z_]+:[^\[\]]*\]\]`)

// TokenMarker renders references as [[kind:Name]] and leaves other text
// untouched.
type TokenMarker struct{}

// Mark implements Marker.
func (TokenMarker) Mark(ref Reference) string {
	return "[[" + string(ref.Kind) + ":" + ref.Name + "]]"
}

// Escape implements Marker.
func (TokenMarker) Escape(text string) string { return text }

// Existing implements Marker.
func (TokenMarker) Existing(text string) [][2]int {
	return spans(tokenRe, text)
}

var anchorRe = regexp.MustCompile(`(?is)<a\s[^>]*>.*?</a>`)

// HTMLMarker renders references as anchors into the help tree below Root.
// External references point below ExternalRoot + library name + "/" when
// ExternalRoot is set, and below Root otherwise.
type HTMLMarker struct {
	Root         string
	ExternalRoot string
}

// Mark implements Marker.
func (m HTMLMarker) Mark(ref Reference) string {
	root := m.Root
	if ref.Library != "" && m.ExternalRoot != "" {
		root = m.ExternalRoot + ref.Library + "/"
	}
	name := escapeHTML(ref.Name)

	var href string
	switch ref.Kind {
	case ast.KindStructure:
		href = root + "DataTypes/Structures/" + name + ".html"
	case ast.KindEnumeration:
		href = root + "DataTypes/Enumerations/" + name + ".html"
	case ast.KindConstant:
		href = root + "DataTypes/Constants/Constants.html#" + name
	default:
		href = root + "FBKs/" + name + ".html"
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, name)
}

// Escape implements Marker. Character references already present in text
// are kept so escaping twice is harmless.
func (HTMLMarker) Escape(text string) string {
	return escapeHTML(text)
}

// Existing implements Marker.
func (HTMLMarker) Existing(text string) [][2]int {
	return spans(anchorRe, text)
}

var entityRe = regexp.MustCompile(`^&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)

func escapeHTML(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if entityRe.MatchString(s[i:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func spans(re *regexp.Regexp, text string) [][2]int {
	locs := re.FindAllStringIndex(text, -1)
	out := make([][2]int, len(locs))
	for i, l := range locs {
		out[i] = [2]int{l[0], l[1]}
	}
	return out
}
