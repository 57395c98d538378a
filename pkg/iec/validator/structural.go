package validator

import (
	"fmt"
	"regexp"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

// versionPattern accepts dotted numeric versions such as "1.00.2".
var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// StructuralValidator checks library-level consistency: names, versions,
// duplicate declarations and enumeration defaults.
type StructuralValidator struct {
	errors *errors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{
		errors: errors.NewErrorList(),
	}
}

// Validate performs structural validation on a library.
func (v *StructuralValidator) Validate(lib *ast.Library) *errors.ErrorList {
	v.errors = errors.NewErrorList()

	v.validateMetadata(lib)
	v.validateDeclarationNames(lib)
	v.validateEnumerations(lib)
	v.validateStructures(lib)

	return v.errors
}

func (v *StructuralValidator) validateMetadata(lib *ast.Library) {
	if lib.Name == "" {
		v.errors.AddError(errors.ErrorTypeStructural, "Library has no name", ast.Location{})
	}
	if lib.Version != "" && !versionPattern.MatchString(lib.Version) {
		v.errors.AddWarning(errors.ErrorTypeMetadata,
			fmt.Sprintf("Library version %q is not a dotted numeric version", lib.Version), ast.Location{})
	}
}

// validateDeclarationNames reports names declared more than once. Functions,
// function blocks, types and constants share one namespace.
func (v *StructuralValidator) validateDeclarationNames(lib *ast.Library) {
	type seen struct {
		kind     ast.DeclarationKind
		location ast.Location
	}
	first := make(map[string]seen)

	check := func(kind ast.DeclarationKind, name string, loc ast.Location) {
		if name == "" {
			v.errors.AddError(errors.ErrorTypeStructural, fmt.Sprintf("%s without a name", kind), loc)
			return
		}
		if prev, ok := first[name]; ok {
			v.errors.AddErrorWithSuggestion(errors.ErrorTypeSemantic, errors.SeverityError,
				fmt.Sprintf("%s %q is already declared as %s at %s", kind, name, prev.kind, prev.location),
				loc, errors.SuggestRename(name))
			return
		}
		first[name] = seen{kind: kind, location: loc}
	}

	for _, f := range lib.Functions {
		check(ast.KindFunction, f.Name, f.Location)
	}
	for _, fb := range lib.FunctionBlocks {
		check(ast.KindFunctionBlock, fb.Name, fb.Location)
	}
	for _, s := range lib.Structures {
		check(ast.KindStructure, s.Name, s.Location)
	}
	for _, e := range lib.Enumerations {
		check(ast.KindEnumeration, e.Name, e.Location)
	}
	for _, c := range lib.Constants {
		check(ast.KindConstant, c.Name, c.Location)
	}
}

func (v *StructuralValidator) validateEnumerations(lib *ast.Library) {
	for _, e := range lib.Enumerations {
		if len(e.Literals) == 0 {
			v.errors.AddWarning(errors.ErrorTypeStructural,
				fmt.Sprintf("Enumeration %q has no literals", e.Name), e.Location)
			continue
		}
		if e.Default == "" || e.HasLiteral(e.Default) {
			continue
		}
		names := make([]string, len(e.Literals))
		for i, l := range e.Literals {
			names[i] = l.Name
		}
		v.errors.AddErrorWithSuggestion(errors.ErrorTypeSemantic, errors.SeverityError,
			fmt.Sprintf("Default %q of enumeration %q is not one of its literals", e.Default, e.Name),
			e.Location, errors.SuggestLiteral(e.Default, names))
	}
}

func (v *StructuralValidator) validateStructures(lib *ast.Library) {
	for _, s := range lib.Structures {
		if len(s.Members) == 0 {
			v.errors.AddWarning(errors.ErrorTypeStructural,
				fmt.Sprintf("Structure %q has no members", s.Name), s.Location)
		}
	}
}
