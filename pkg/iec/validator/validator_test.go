package validator

import (
	"strings"
	"testing"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/parser"
)

func loc(line int) ast.Location {
	return ast.Location{File: "lib.typ", Line: line, Column: 1}
}

func newLibrary(t *testing.T, d ast.Declarations) *ast.Library {
	t.Helper()
	lib := ast.NewLibrary("MyLib")
	if err := lib.AppendDeclarations(d); err != nil {
		t.Fatal(err)
	}
	lib.Freeze()
	return lib
}

func arrayOf(elem string, upper ast.Bound) ast.Type {
	return &ast.ArrayType{
		Element:    &ast.BasicType{Name: elem},
		Dimensions: []ast.Dimension{{Lower: ast.LiteralBound(0), Upper: upper}},
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name     string
		decls    ast.Declarations
		wantErr  bool
		errType  errors.ErrorType
		contains string
	}{
		{
			name: "valid",
			decls: ast.Declarations{
				Enumerations: []*ast.Enumeration{{Name: "Colors", Literals: []*ast.EnumLiteral{{Name: "RED"}}, Default: "RED"}},
				Structures:   []*ast.Structure{{Name: "Point", Members: []*ast.Variable{{Name: "x", Type: &ast.BasicType{Name: "REAL"}}}}},
			},
		},
		{
			name: "enum default not a literal",
			decls: ast.Declarations{
				Enumerations: []*ast.Enumeration{{Name: "Colors", Literals: []*ast.EnumLiteral{{Name: "RED"}, {Name: "GREEN"}}, Default: "GREN", Location: loc(3)}},
			},
			wantErr:  true,
			errType:  errors.ErrorTypeSemantic,
			contains: "Did you mean 'GREEN'?",
		},
		{
			name: "duplicate declaration across kinds",
			decls: ast.Declarations{
				Structures: []*ast.Structure{{Name: "Thing", Location: loc(1), Members: []*ast.Variable{{Name: "x", Type: &ast.BasicType{Name: "INT"}}}}},
				Constants:  []*ast.Variable{{Name: "Thing", Type: &ast.BasicType{Name: "INT"}, Location: loc(9)}},
			},
			wantErr:  true,
			errType:  errors.ErrorTypeSemantic,
			contains: "already declared as structure",
		},
		{
			name: "unnamed declaration",
			decls: ast.Declarations{
				Functions: []*ast.Function{{ReturnType: &ast.BasicType{Name: "INT"}}},
			},
			wantErr: true,
			errType: errors.ErrorTypeStructural,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := NewStructuralValidator().Validate(newLibrary(t, tt.decls))

			if findings.HasFailures() != tt.wantErr {
				t.Fatalf("HasFailures() = %v, want %v:\n%v", findings.HasFailures(), tt.wantErr, findings)
			}
			if !tt.wantErr {
				return
			}
			if !findings.HasErrorType(tt.errType) {
				t.Errorf("missing %s finding:\n%v", tt.errType, findings)
			}
			if tt.contains != "" && !strings.Contains(findings.Error(), tt.contains) {
				t.Errorf("findings do not mention %q:\n%v", tt.contains, findings)
			}
		})
	}
}

func TestStructuralValidator_Warnings(t *testing.T) {
	lib := newLibrary(t, ast.Declarations{
		Enumerations: []*ast.Enumeration{{Name: "Empty"}},
		Structures:   []*ast.Structure{{Name: "Hollow"}},
	})
	lib.Version = "v1-beta"

	findings := NewStructuralValidator().Validate(lib)
	if findings.HasFailures() {
		t.Errorf("unexpected failures:\n%v", findings)
	}
	if got := len(findings.BySeverity(errors.SeverityWarning)); got != 3 {
		t.Errorf("warnings = %d, want 3:\n%v", got, findings)
	}
}

func TestSemanticValidator(t *testing.T) {
	lib := newLibrary(t, ast.Declarations{
		Constants: []*ast.Variable{{Name: "MAX_AXES", Type: &ast.BasicType{Name: "USINT"}, Default: "4"}},
		Structures: []*ast.Structure{{
			Name: "Axis",
			Members: []*ast.Variable{
				{Name: "pos", Type: arrayOf("REAL", ast.SymbolicBound("MAX_AXES")), Location: loc(2)},
				{Name: "vel", Type: arrayOf("REAL", ast.SymbolicBound("MAX_AXIS")), Location: loc(3)},
				{Name: "cfg", Type: &ast.BasicType{Name: "POINTER TO AxisCfg"}, Location: loc(4)},
				{Name: "name", Type: &ast.StringType{Length: ast.SymbolicBound("NAME_LEN")}, Location: loc(5)},
				{Name: "self", Type: &ast.BasicType{Name: "REFERENCE TO Axis"}, Location: loc(6)},
				{Name: "flag", Type: &ast.BasicType{Name: "bool"}, Location: loc(7)},
			},
		}},
		FunctionBlocks: []*ast.FunctionBlock{{
			Name:   "MoveFB",
			Inputs: []*ast.Variable{{Name: "Axis", Type: &ast.BasicType{Name: "Axis"}}},
		}},
		Functions: []*ast.Function{{Name: "Get", ReturnType: &ast.BasicType{Name: "MoveFB"}}},
	})

	findings := NewSemanticValidator().Validate(lib)

	if findings.HasFailures() {
		t.Errorf("semantic findings must be warnings:\n%v", findings)
	}
	if findings.Count() != 3 {
		t.Fatalf("Count() = %d, want 3:\n%v", findings.Count(), findings)
	}
	out := findings.Error()
	for _, want := range []string{
		`Bound "MAX_AXIS" in type of Axis.vel`,
		"Did you mean 'MAX_AXES'?",
		`Type "AxisCfg" of Axis.cfg is not declared`,
		`Bound "NAME_LEN" in type of Axis.name`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("findings missing %q:\n%s", want, out)
		}
	}
}

func TestSemanticValidator_PrefixedArray(t *testing.T) {
	lib := newLibrary(t, ast.Declarations{
		Constants: []*ast.Variable{{Name: "MAXX", Type: &ast.BasicType{Name: "UINT"}, Default: "7"}},
		Structures: []*ast.Structure{
			{Name: "MyStruct", Members: []*ast.Variable{{Name: "a", Type: &ast.BasicType{Name: "INT"}}}},
			{Name: "Holder", Members: []*ast.Variable{
				{Name: "items", Type: parser.ParseType("POINTER TO ARRAY[0..MAXX] OF MyStruct"), Location: loc(2)},
				{Name: "lost", Type: parser.ParseType("REFERENCE TO ARRAY[0..MAXY] OF Missing"), Location: loc(3)},
			}},
		},
	})

	findings := NewSemanticValidator().Validate(lib)
	out := findings.Error()
	if strings.Contains(out, "Holder.items") {
		t.Errorf("prefixed array of a declared type reported:\n%s", out)
	}
	for _, want := range []string{
		`Bound "MAXY" in type of Holder.lost`,
		`Type "Missing" of Holder.lost is not declared`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("findings missing %q:\n%s", want, out)
		}
	}
}

func TestValidator_External(t *testing.T) {
	lib := newLibrary(t, ast.Declarations{
		Structures: []*ast.Structure{{
			Name:    "Wrapper",
			Members: []*ast.Variable{{Name: "x", Type: arrayOf("ExtType", ast.SymbolicBound("EXT_MAX"))}},
		}},
	})

	if got := NewValidator().Validate(lib).Count(); got != 2 {
		t.Errorf("without external: Count() = %d, want 2", got)
	}

	known := map[string]bool{"ExtType": true, "EXT_MAX": true}
	v := NewValidator(WithExternal(func(name string) bool { return known[name] }))
	if findings := v.Validate(lib); findings.HasErrors() {
		t.Errorf("with external: unexpected findings:\n%v", findings)
	}
}

func TestValidator_SkipsSemanticOnStructuralFailure(t *testing.T) {
	lib := newLibrary(t, ast.Declarations{
		Constants: []*ast.Variable{
			{Name: "DUP", Type: &ast.BasicType{Name: "Unknown"}},
			{Name: "DUP", Type: &ast.BasicType{Name: "INT"}},
		},
	})

	findings := NewValidator().Validate(lib)
	if strings.Contains(findings.Error(), `"Unknown"`) {
		t.Errorf("semantic pass ran after structural failure:\n%v", findings)
	}
	if !findings.HasFailures() {
		t.Error("duplicate constant not reported")
	}
}
