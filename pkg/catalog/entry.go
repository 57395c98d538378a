package catalog

import (
	"time"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

// NewEntry builds the catalog entry of a frozen library.
func NewEntry(lib *ast.Library, root, buildID string, indexedAt time.Time) *Entry {
	deps := make([]string, 0, len(lib.Dependencies))
	for _, d := range lib.Dependencies {
		deps = append(deps, d.ObjectName)
	}

	c := &collector{library: lib.Name}
	// collector never fails
	_ = ast.Walk(lib, c)

	return &Entry{
		Library: LibraryInfo{
			Name:         lib.Name,
			Version:      lib.Version,
			Root:         root,
			BuildID:      buildID,
			IndexedAt:    indexedAt.UTC(),
			Stats:        lib.Stats(),
			Dependencies: deps,
		},
		Symbols: c.symbols,
	}
}

// collector gathers top-level declarations. Members and parameters are not
// catalog symbols; library constants are the variables without owner.
type collector struct {
	ast.NopVisitor
	library string
	symbols []*Symbol
}

func (c *collector) add(kind ast.DeclarationKind, name, typ, desc string, loc ast.Location) {
	c.symbols = append(c.symbols, &Symbol{
		Library:     c.library,
		Kind:        kind,
		Name:        name,
		Type:        typ,
		Description: desc,
		File:        loc.File,
		Line:        loc.Line,
	})
}

func (c *collector) VisitFunction(f *ast.Function) error {
	typ := ""
	if f.ReturnType != nil {
		typ = f.ReturnType.String()
	}
	c.add(ast.KindFunction, f.Name, typ, f.Description, f.Location)
	return nil
}

func (c *collector) VisitFunctionBlock(fb *ast.FunctionBlock) error {
	c.add(ast.KindFunctionBlock, fb.Name, "", fb.Description, fb.Location)
	return nil
}

func (c *collector) VisitStructure(s *ast.Structure) error {
	c.add(ast.KindStructure, s.Name, "", s.Description, s.Location)
	return nil
}

func (c *collector) VisitEnumeration(e *ast.Enumeration) error {
	c.add(ast.KindEnumeration, e.Name, "", e.Description, e.Location)
	return nil
}

func (c *collector) VisitVariable(owner string, v *ast.Variable) error {
	if owner != "" {
		return nil
	}
	typ := ""
	if v.Type != nil {
		typ = v.Type.String()
	}
	c.add(ast.KindConstant, v.Name, typ, v.Comment1, v.Location)
	return nil
}
