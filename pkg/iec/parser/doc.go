// Package parser turns declaration file text into typed declarations.
//
// Parsing runs in two stages. The scanner package cuts a file into
// candidate units; this package parses each unit on its own. A unit that
// cannot be parsed is reported as a warning and never affects its siblings,
// so a FileResult always carries whatever could be recovered.
//
// # Basic Usage
//
//	p := parser.NewParser().WithDuplicatePolicy(parser.DuplicatesWarn)
//	result, err := p.ParseFile("MpAxis.typ", text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range result.Declarations.Structures {
//	    fmt.Println(s.Name, len(s.Members))
//	}
//
// Type expressions can be parsed directly:
//
//	t := parser.ParseType("ARRAY[0..MAX_AXES] OF REAL")
//	fmt.Println(ast.SymbolicBounds(t)) // [MAX_AXES]
package parser
