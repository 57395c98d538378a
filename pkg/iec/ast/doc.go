// Package ast defines the typed model of an automation library: functions,
// function blocks, structures, enumerations and constants, together with
// their parsed type expressions.
//
// # Core Types
//
// Library: aggregate root for one library folder, built by additive merges
// and frozen before use
//
// Function, FunctionBlock, Structure, Enumeration: top-level declarations
//
// Variable: parameter, member, local or constant with up to three comments
//
// Type: closed union of *BasicType, *ArrayType, *StringType and *RangeType
//
// Location: source position (file, line, column)
//
// # Basic Usage
//
// Build a library and traverse it:
//
//	lib := ast.NewLibrary("MpAxis")
//	if err := lib.AppendDeclarations(decls); err != nil {
//	    log.Fatal(err)
//	}
//	lib.Freeze()
//
//	type counter struct {
//	    ast.NopVisitor
//	    n int
//	}
//
//	func (c *counter) VisitVariable(string, *ast.Variable) error {
//	    c.n++
//	    return nil
//	}
//
//	c := &counter{}
//	if err := ast.Walk(lib, c); err != nil {
//	    log.Fatal(err)
//	}
//
// Type expressions render back to their canonical source form:
//
//	t := &ast.ArrayType{
//	    Element:    &ast.BasicType{Name: "REAL"},
//	    Dimensions: []ast.Dimension{{Lower: ast.LiteralBound(0), Upper: ast.LiteralBound(10)}},
//	}
//	fmt.Println(t) // ARRAY[0..10] OF REAL
package ast
