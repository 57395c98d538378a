package resolver

import (
	"errors"
	"sort"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/scanner"
)

// ErrNotFrozen is returned by New for a library that is still being built.
var ErrNotFrozen = errors.New("resolver: library is not frozen")

// Reference is a resolved name.
type Reference struct {
	Kind ast.DeclarationKind
	Name string

	// Library is empty for names declared by the resolved library itself
	// and names the declaring library for external references.
	Library string
}

// Lookup finds names declared outside the library, typically by a
// dependency library stored in the catalog.
type Lookup interface {
	Lookup(name string) (Reference, bool)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(name string) (Reference, bool)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(name string) (Reference, bool) { return f(name) }

// Option configures a Resolver.
type Option func(*Resolver)

// WithMarker sets the output format. The default is TokenMarker.
func WithMarker(m Marker) Option {
	return func(r *Resolver) {
		r.marker = m
	}
}

// WithExternal links names the library does not declare but l knows.
func WithExternal(l Lookup) Option {
	return func(r *Resolver) {
		r.external = l
	}
}

// Resolver marks references to one library's declarations.
type Resolver struct {
	marker   Marker
	external Lookup

	constants []string
	types     map[string]ast.DeclarationKind
}

// New returns a resolver over lib.
func New(lib *ast.Library, opts ...Option) (*Resolver, error) {
	if lib == nil || !lib.Frozen() {
		return nil, ErrNotFrozen
	}

	r := &Resolver{
		marker: TokenMarker{},
		types:  make(map[string]ast.DeclarationKind),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, c := range lib.Constants {
		r.constants = append(r.constants, c.Name)
	}
	r.constants = byLength(r.constants)

	// Enumerations first so a structure wins a name clash.
	for _, e := range lib.Enumerations {
		r.types[e.Name] = ast.KindEnumeration
	}
	for _, s := range lib.Structures {
		r.types[s.Name] = ast.KindStructure
	}
	return r, nil
}

// byLength sorts names longest first, ties lexicographic, and drops
// duplicates and empty names.
func byLength(names []string) []string {
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	out := names[:0]
	for i, n := range names {
		if n == "" || (i > 0 && n == names[i-1]) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ResolveText marks constant names in free text.
func (r *Resolver) ResolveText(text string) string {
	return r.render(text, r.match(text))
}

// span is a half-open byte range of the input. A nil ref marks a span the
// marker produced earlier.
type span struct {
	start, end int
	ref        *Reference
}

func (r *Resolver) match(text string) []span {
	var accepted []span
	for _, s := range r.marker.Existing(text) {
		accepted = append(accepted, span{start: s[0], end: s[1]})
	}

	free := func(start, end int) bool {
		for _, a := range accepted {
			if start < a.end && a.start < end {
				return false
			}
		}
		return true
	}

	for _, name := range r.constants {
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], name)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(name)
			from = start + 1
			if !wordBounded(text, start, end) || !free(start, end) {
				continue
			}
			accepted = append(accepted, span{start: start, end: end,
				ref: &Reference{Kind: ast.KindConstant, Name: name}})
		}
	}

	if r.external != nil {
		for i := 0; i < len(text); {
			if !scanner.IsWordByte(text[i]) {
				i++
				continue
			}
			name, end := scanner.Identifier(text, i)
			if name == "" {
				for i < len(text) && scanner.IsWordByte(text[i]) {
					i++
				}
				continue
			}
			if wordBounded(text, i, end) && free(i, end) {
				if ref, ok := r.external.Lookup(name); ok && ref.Kind == ast.KindConstant {
					ref.Name = name
					accepted = append(accepted, span{start: i, end: end, ref: &ref})
				}
			}
			i = end
		}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })
	return accepted
}

func (r *Resolver) render(text string, spans []span) string {
	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(r.marker.Escape(text[last:s.start]))
		if s.ref == nil {
			b.WriteString(text[s.start:s.end])
		} else {
			b.WriteString(r.marker.Mark(*s.ref))
		}
		last = s.end
	}
	b.WriteString(r.marker.Escape(text[last:]))
	return b.String()
}

func wordBounded(text string, start, end int) bool {
	if start > 0 && scanner.IsWordByte(text[start-1]) {
		return false
	}
	return end >= len(text) || !scanner.IsWordByte(text[end])
}

// typeRef finds a structure or enumeration named name.
func (r *Resolver) typeRef(name string) (Reference, bool) {
	if kind, ok := r.types[name]; ok {
		return Reference{Kind: kind, Name: name}, true
	}
	if r.external == nil {
		return Reference{}, false
	}
	ref, ok := r.external.Lookup(name)
	if !ok || (ref.Kind != ast.KindStructure && ref.Kind != ast.KindEnumeration) {
		return Reference{}, false
	}
	ref.Name = name
	return ref, true
}
