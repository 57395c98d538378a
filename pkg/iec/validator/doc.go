// Package validator checks a loaded library for problems the parser cannot
// see on its own.
//
// Structural validation covers the library as a whole: missing names,
// declarations that share a name, enumeration defaults that are not
// literals. Semantic validation walks every type expression and reports
// symbolic bounds and base types that nothing declares.
//
//	v := validator.NewValidator(validator.WithExternal(catalogHas))
//	findings := v.Validate(lib)
//	if findings.HasFailures() {
//	    fmt.Println(findings.Error())
//	}
package validator
