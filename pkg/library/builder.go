package library

import (
	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/parser"
)

// Builder collects parsed files and descriptor metadata into a Library.
//
// Declarations are strictly additive in AddFile order. Metadata is held
// back and applied once in Build, after every declaration, so the result
// does not depend on whether ApplyMetadata is called before or after the
// files are added.
type Builder struct {
	name     string
	decls    ast.Declarations
	metadata *ast.Metadata
	files    []string
}

// NewBuilder returns a builder for the library folder named folderName.
func NewBuilder(folderName string) *Builder {
	return &Builder{name: folderName}
}

// AddFile appends the declarations of a parsed file. A nil result is
// ignored.
func (b *Builder) AddFile(r *parser.FileResult) {
	if r == nil {
		return
	}
	b.decls.Append(r.Declarations)
	b.files = append(b.files, r.Path)
}

// ApplyMetadata records descriptor overrides. Later calls override the
// fields they set.
func (b *Builder) ApplyMetadata(md *ast.Metadata) {
	if md == nil {
		return
	}
	if b.metadata == nil {
		b.metadata = &ast.Metadata{}
	}
	mergeMetadata(b.metadata, md)
}

func mergeMetadata(dst, src *ast.Metadata) {
	for _, f := range []struct{ dst, src **string }{
		{&dst.Name, &src.Name},
		{&dst.Version, &src.Version},
		{&dst.SubType, &src.SubType},
		{&dst.Description, &src.Description},
		{&dst.HeaderFileName, &src.HeaderFileName},
		{&dst.FileVersion, &src.FileVersion},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	if src.Files != nil {
		dst.Files = src.Files
	}
	if src.Dependencies != nil {
		dst.Dependencies = src.Dependencies
	}
}

// Files returns the paths added so far in order.
func (b *Builder) Files() []string {
	return append([]string(nil), b.files...)
}

// Build returns a new frozen Library. The builder can keep collecting and
// build again.
func (b *Builder) Build() *ast.Library {
	lib := ast.NewLibrary(b.name)

	var decls ast.Declarations
	decls.Append(b.decls)
	// A fresh library is never frozen, so neither call can fail.
	_ = lib.AppendDeclarations(decls)
	if b.metadata != nil {
		_ = lib.ApplyMetadata(*b.metadata)
	}

	lib.Freeze()
	return lib
}
