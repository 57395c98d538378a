package ast

// Visitor provides an interface for traversing a Library.
// Implement this interface to perform operations on declarations
// (validation, indexing, statistics, etc.).
type Visitor interface {
	VisitLibrary(*Library) error
	VisitFunction(*Function) error
	VisitFunctionBlock(*FunctionBlock) error
	VisitStructure(*Structure) error
	VisitEnumeration(*Enumeration) error
	VisitLiteral(*Enumeration, *EnumLiteral) error
	// VisitVariable is called for parameters, members and constants. owner
	// is the enclosing declaration name, empty for library constants.
	VisitVariable(owner string, v *Variable) error
}

// NopVisitor implements Visitor with methods that do nothing. Embed it to
// implement only the callbacks you need.
type NopVisitor struct{}

func (NopVisitor) VisitLibrary(*Library) error                   { return nil }
func (NopVisitor) VisitFunction(*Function) error                 { return nil }
func (NopVisitor) VisitFunctionBlock(*FunctionBlock) error       { return nil }
func (NopVisitor) VisitStructure(*Structure) error               { return nil }
func (NopVisitor) VisitEnumeration(*Enumeration) error           { return nil }
func (NopVisitor) VisitLiteral(*Enumeration, *EnumLiteral) error { return nil }
func (NopVisitor) VisitVariable(string, *Variable) error         { return nil }

// Walk traverses the library and calls the visitor for each declaration and
// variable. It returns the first error encountered, or nil if traversal
// completes.
func Walk(lib *Library, visitor Visitor) error {
	if err := visitor.VisitLibrary(lib); err != nil {
		return err
	}

	for _, fn := range lib.Functions {
		if err := visitor.VisitFunction(fn); err != nil {
			return err
		}
		if err := walkVariables(fn.Name, fn.Variables(), visitor); err != nil {
			return err
		}
	}

	for _, fb := range lib.FunctionBlocks {
		if err := visitor.VisitFunctionBlock(fb); err != nil {
			return err
		}
		if err := walkVariables(fb.Name, fb.Variables(), visitor); err != nil {
			return err
		}
	}

	for _, s := range lib.Structures {
		if err := visitor.VisitStructure(s); err != nil {
			return err
		}
		if err := walkVariables(s.Name, s.Members, visitor); err != nil {
			return err
		}
	}

	for _, e := range lib.Enumerations {
		if err := visitor.VisitEnumeration(e); err != nil {
			return err
		}
		for _, lit := range e.Literals {
			if err := visitor.VisitLiteral(e, lit); err != nil {
				return err
			}
		}
	}

	return walkVariables("", lib.Constants, visitor)
}

func walkVariables(owner string, vars []*Variable, visitor Visitor) error {
	for _, v := range vars {
		if err := visitor.VisitVariable(owner, v); err != nil {
			return err
		}
	}
	return nil
}
