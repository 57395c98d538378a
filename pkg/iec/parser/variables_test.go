package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

var ignoreLocation = cmpopts.IgnoreFields(ast.Variable{}, "Location")

func TestParseVariables(t *testing.T) {
	body := `
	Enable : BOOL; (*Enables the block*)
	Axis : REFERENCE TO MpAxisType;
	Speed : {REDUND_UNREPLICABLE} REAL := 1.5; (*First*) (*Second*)
		(*Third*) (*Fourth is dropped*)
	Name : STRING[32] := 'a;b (*not a comment*)';
	Values : ARRAY[0..MAX_VALUES] OF INT (*ignored*) := [3(0)];
`
	vars, warnings := ParseVariables(body, ast.RoleInput, ast.Location{File: "lib.fun", Line: 10, Column: 1})
	if warnings.HasErrors() {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []*ast.Variable{
		{Name: "Enable", Type: &ast.BasicType{Name: "BOOL"}, Comment1: "Enables the block", Role: ast.RoleInput},
		{Name: "Axis", Type: &ast.BasicType{Name: "MpAxisType"}, IsReference: true, Role: ast.RoleInput},
		{
			Name: "Speed", Type: &ast.BasicType{Name: "REAL"}, Redundancy: "{REDUND_UNREPLICABLE}", Default: "1.5",
			Comment1: "First", Comment2: "Second", Comment3: "Third", Role: ast.RoleInput,
		},
		{Name: "Name", Type: &ast.StringType{Length: ast.LiteralBound(32)}, Default: "'a;b (*not a comment*)'", Role: ast.RoleInput},
		{
			Name: "Values",
			Type: &ast.ArrayType{
				Element:    &ast.BasicType{Name: "INT"},
				Dimensions: []ast.Dimension{{Lower: ast.LiteralBound(0), Upper: ast.SymbolicBound("MAX_VALUES")}},
			},
			Default: "[3(0)]",
			Role:    ast.RoleInput,
		},
	}
	if diff := cmp.Diff(want, vars, ignoreLocation); diff != "" {
		t.Errorf("ParseVariables() mismatch (-want +got):\n%s", diff)
	}

	if got := vars[1].Location; got.Line != 12 || got.File != "lib.fun" {
		t.Errorf("Axis location = %v, want line 12", got)
	}
}

func TestParseVariables_Malformed(t *testing.T) {
	body := "a : INT;\n b INT;\n c : ;\n d : BOOL;\n e : REAL"
	vars, warnings := ParseVariables(body, ast.RoleLocal, ast.Location{File: "x.typ", Line: 1, Column: 1})

	var names []string
	for _, v := range vars {
		names = append(names, v.Name)
	}
	if diff := cmp.Diff([]string{"a", "d"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if got := len(warnings.ByType(errors.ErrorTypeMalformed)); got != 3 {
		t.Errorf("malformed warnings = %d, want 3:\n%v", got, warnings)
	}
	for _, w := range warnings.Errors {
		if !w.IsWarning() {
			t.Errorf("got non-warning %v", w)
		}
	}
}

func TestParseVariables_CommentsSeparatedByCode(t *testing.T) {
	body := "a : INT; b : INT; (*for b*)"
	vars, _ := ParseVariables(body, ast.RoleLocal, ast.Location{})
	if len(vars) != 2 {
		t.Fatalf("len(vars) = %d, want 2", len(vars))
	}
	if vars[0].Comment1 != "" || vars[1].Comment1 != "for b" {
		t.Errorf("comments = %q / %q", vars[0].Comment1, vars[1].Comment1)
	}
}
