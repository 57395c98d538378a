// Package resolver rewrites free text and type expressions so that names
// declared by a library become cross-references.
//
// Matching is exact, word bounded, longest first and never overlapping.
// The output format is chosen by a Marker; TokenMarker emits
// [[kind:Name]] tokens and HTMLMarker emits anchors into a help tree.
// Spans a marker produced earlier are recognized and copied verbatim, so
// resolving already resolved text changes nothing.
//
// A Resolver only accepts a frozen ast.Library:
//
//	lib, _, err := loader.Load(ctx, dir)
//	r, err := resolver.New(lib, resolver.WithMarker(resolver.HTMLMarker{Root: "../"}))
//	html := r.ResolveType("ARRAY[0..MAX_AXES] OF AxisCfg")
package resolver
