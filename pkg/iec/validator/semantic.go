package validator

import (
	"fmt"
	"sort"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

// elementaryTypes are the built-in type names that need no declaration.
var elementaryTypes = map[string]bool{
	"BOOL": true, "SINT": true, "INT": true, "DINT": true, "LINT": true,
	"USINT": true, "UINT": true, "UDINT": true, "ULINT": true,
	"BYTE": true, "WORD": true, "DWORD": true, "LWORD": true,
	"REAL": true, "LREAL": true,
	"TIME": true, "DATE": true, "TIME_OF_DAY": true, "TOD": true, "DATE_AND_TIME": true, "DT": true,
	"STRING": true, "WSTRING": true,
	"ANY": true, "ANY_NUM": true, "ANY_INT": true, "ANY_REAL": true,
}

// typePrefixes are display-only decorations kept inside basic type names.
var typePrefixes = []string{"POINTER TO ", "REFERENCE TO ", "ARRAY OF "}

// SemanticValidator checks that names used in type expressions are
// declared: symbolic bounds must name constants and base types must be
// elementary or declared types. Findings are warnings since the names may
// come from libraries that were not loaded.
type SemanticValidator struct {
	ast.NopVisitor

	lib      *ast.Library
	errors   *errors.ErrorList
	external ExternalFunc

	constants []string
	types     []string
	declared  map[string]bool
}

// NewSemanticValidator creates a new semantic validator.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{
		errors: errors.NewErrorList(),
	}
}

// Validate performs semantic validation on a library.
func (v *SemanticValidator) Validate(lib *ast.Library) *errors.ErrorList {
	v.lib = lib
	v.errors = errors.NewErrorList()
	v.index()

	if err := ast.Walk(lib, v); err != nil {
		v.errors.AddError(errors.ErrorTypeSemantic, err.Error(), ast.Location{})
	}
	return v.errors
}

func (v *SemanticValidator) index() {
	v.declared = make(map[string]bool)
	v.constants = v.constants[:0]
	v.types = v.types[:0]

	for _, c := range v.lib.Constants {
		v.constants = append(v.constants, c.Name)
	}
	for _, s := range v.lib.Structures {
		v.types = append(v.types, s.Name)
	}
	for _, e := range v.lib.Enumerations {
		v.types = append(v.types, e.Name)
	}
	for _, fb := range v.lib.FunctionBlocks {
		v.types = append(v.types, fb.Name)
	}
	for _, name := range v.types {
		v.declared[name] = true
	}
	sort.Strings(v.constants)
	sort.Strings(v.types)
}

// VisitFunction checks the return type.
func (v *SemanticValidator) VisitFunction(f *ast.Function) error {
	v.checkType("return type of "+f.Name, f.ReturnType, f.Location)
	return nil
}

// VisitVariable checks the variable's type.
func (v *SemanticValidator) VisitVariable(owner string, variable *ast.Variable) error {
	what := variable.Name
	if owner != "" {
		what = owner + "." + variable.Name
	}
	v.checkType(what, variable.Type, variable.Location)
	return nil
}

func (v *SemanticValidator) checkType(what string, t ast.Type, loc ast.Location) {
	if t == nil {
		v.errors.AddError(errors.ErrorTypeSemantic, fmt.Sprintf("%s has no type", what), loc)
		return
	}

	for _, bound := range ast.SymbolicBounds(t) {
		if v.isConstant(bound) {
			continue
		}
		v.errors.AddErrorWithSuggestion(errors.ErrorTypeSemantic, errors.SeverityWarning,
			fmt.Sprintf("Bound %q in type of %s is not a known constant", bound, what),
			loc, errors.SuggestName(bound, v.constants))
	}

	if _, ok := t.(*ast.StringType); ok {
		return
	}
	base := stripPrefixes(ast.BaseName(t))
	if base == "" || v.isType(base) {
		return
	}
	v.errors.AddErrorWithSuggestion(errors.ErrorTypeSemantic, errors.SeverityWarning,
		fmt.Sprintf("Type %q of %s is not declared", base, what),
		loc, errors.SuggestName(base, v.types))
}

func (v *SemanticValidator) isConstant(name string) bool {
	i := sort.SearchStrings(v.constants, name)
	if i < len(v.constants) && v.constants[i] == name {
		return true
	}
	return v.external != nil && v.external(name)
}

func (v *SemanticValidator) isType(name string) bool {
	if elementaryTypes[strings.ToUpper(name)] || v.declared[name] {
		return true
	}
	return v.external != nil && v.external(name)
}

func stripPrefixes(name string) string {
	for {
		stripped := false
		for _, p := range typePrefixes {
			if len(name) > len(p) && strings.EqualFold(name[:len(p)], p) {
				name = strings.TrimSpace(name[len(p):])
				stripped = true
			}
		}
		if !stripped {
			return name
		}
	}
}
