package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/scanner"
)

func singleUnit(t *testing.T, units []scanner.Unit, warnings *errors.ErrorList) scanner.Unit {
	t.Helper()
	if warnings.HasErrors() {
		t.Fatalf("split warnings: %v", warnings)
	}
	if len(units) != 1 {
		t.Fatalf("len(units) = %d, want 1", len(units))
	}
	return units[0]
}

func TestParseFunctionBlock_DescriptionAndInput(t *testing.T) {
	units, warnings := scanner.SplitFunctionFile("a.fun",
		"FUNCTION_BLOCK FB1 (*desc*) VAR_INPUT x : INT; (*c1*) END_VAR END_FUNCTION_BLOCK")
	unit := singleUnit(t, units, warnings)

	fb, w, err := NewParser().ParseFunctionBlock(unit)
	if err != nil {
		t.Fatalf("ParseFunctionBlock() failed: %v", err)
	}
	if w.HasErrors() {
		t.Errorf("unexpected warnings: %v", w)
	}

	if fb.Name != "FB1" || fb.Description != "desc" {
		t.Errorf("name/description = %q/%q", fb.Name, fb.Description)
	}
	want := []*ast.Variable{{Name: "x", Type: &ast.BasicType{Name: "INT"}, Comment1: "c1", Role: ast.RoleInput}}
	if diff := cmp.Diff(want, fb.Inputs, ignoreLocation); diff != "" {
		t.Errorf("Inputs mismatch (-want +got):\n%s", diff)
	}
	if len(fb.Outputs)+len(fb.InOuts)+len(fb.Locals)+len(fb.Constants) != 0 {
		t.Error("unexpected variables in other roles")
	}
}

func TestParseFunctionBlock_Sections(t *testing.T) {
	text := `FUNCTION_BLOCK MC_Move (*Moves an axis*) (*second comment ignored*)
	VAR_INPUT
		Axis : REFERENCE TO AxisType;
		Execute : BOOL;
	END_VAR
	VAR_OUTPUT
		Done : BOOL;
	END_VAR
	VAR_IN_OUT
		Buffer : ARRAY[0..9] OF USINT;
	END_VAR
	VAR RETAIN
		Counter : UDINT;
	END_VAR
	VAR CONSTANT
		LIMIT : UDINT := 100;
	END_VAR
	VAR_CONSTANT
		OTHER : INT := 1;
	END_VAR
	VAR
		internal : INT; (* VAR_OUTPUT inside a comment *)
	END_VAR
END_FUNCTION_BLOCK`
	units, warnings := scanner.SplitFunctionFile("mc.fun", text)
	unit := singleUnit(t, units, warnings)

	fb, w, err := NewParser().ParseFunctionBlock(unit)
	if err != nil {
		t.Fatalf("ParseFunctionBlock() failed: %v", err)
	}
	if w.HasErrors() {
		t.Errorf("unexpected warnings: %v", w)
	}

	names := func(vars []*ast.Variable) []string {
		var out []string
		for _, v := range vars {
			out = append(out, v.Name)
		}
		return out
	}
	got := map[ast.Role][]string{
		ast.RoleInput:    names(fb.Inputs),
		ast.RoleOutput:   names(fb.Outputs),
		ast.RoleInOut:    names(fb.InOuts),
		ast.RoleLocal:    names(fb.Locals),
		ast.RoleConstant: names(fb.Constants),
	}
	want := map[ast.Role][]string{
		ast.RoleInput:    {"Axis", "Execute"},
		ast.RoleOutput:   {"Done"},
		ast.RoleInOut:    {"Buffer"},
		ast.RoleLocal:    {"Counter", "internal"},
		ast.RoleConstant: {"LIMIT", "OTHER"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}

	if fb.Description != "Moves an axis" {
		t.Errorf("Description = %q", fb.Description)
	}
	if !fb.Locals[0].Retain || fb.Locals[1].Retain {
		t.Errorf("RETAIN not stamped per section: %v, %v", fb.Locals[0].Retain, fb.Locals[1].Retain)
	}
	if !fb.Inputs[0].IsReference {
		t.Error("Axis should be a reference")
	}
	if fb.Inputs[1].Location.Line != 4 {
		t.Errorf("Execute line = %d, want 4", fb.Inputs[1].Location.Line)
	}
}

func TestParseFunctionBlock_KeywordNamedVariables(t *testing.T) {
	units, warnings := scanner.SplitFunctionFile("k.fun", `FUNCTION_BLOCK Selector
	VAR_INPUT
		Function : UINT;
		Var : BOOL;
	END_VAR
	VAR Retain : BOOL; Count : INT; END_VAR
END_FUNCTION_BLOCK`)
	unit := singleUnit(t, units, warnings)

	fb, w, err := NewParser().ParseFunctionBlock(unit)
	if err != nil {
		t.Fatalf("ParseFunctionBlock() failed: %v", err)
	}
	if w.HasErrors() {
		t.Errorf("unexpected warnings: %v", w)
	}

	wantInputs := []*ast.Variable{
		{Name: "Function", Type: &ast.BasicType{Name: "UINT"}, Role: ast.RoleInput},
		{Name: "Var", Type: &ast.BasicType{Name: "BOOL"}, Role: ast.RoleInput},
	}
	if diff := cmp.Diff(wantInputs, fb.Inputs, ignoreLocation); diff != "" {
		t.Errorf("Inputs mismatch (-want +got):\n%s", diff)
	}
	wantLocals := []*ast.Variable{
		{Name: "Retain", Type: &ast.BasicType{Name: "BOOL"}, Role: ast.RoleLocal},
		{Name: "Count", Type: &ast.BasicType{Name: "INT"}, Role: ast.RoleLocal},
	}
	if diff := cmp.Diff(wantLocals, fb.Locals, ignoreLocation); diff != "" {
		t.Errorf("Locals mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFunction(t *testing.T) {
	text := `FUNCTION Scale : REAL (*Scales a value*)
	VAR_INPUT
		In : REAL;
	END_VAR
	VAR_OUTPUT
		Bad : INT;
	END_VAR
	VAR_IN_OUT
		Ref : REAL;
	END_VAR
	VAR
		tmp : REAL;
	END_VAR
END_FUNCTION`
	units, warnings := scanner.SplitFunctionFile("f.fun", text)
	unit := singleUnit(t, units, warnings)

	fn, w, err := NewParser().ParseFunction(unit)
	if err != nil {
		t.Fatalf("ParseFunction() failed: %v", err)
	}
	if fn.Name != "Scale" || fn.Description != "Scales a value" {
		t.Errorf("name/description = %q/%q", fn.Name, fn.Description)
	}
	if diff := cmp.Diff(ast.Type(&ast.BasicType{Name: "REAL"}), fn.ReturnType); diff != "" {
		t.Errorf("ReturnType mismatch (-want +got):\n%s", diff)
	}
	if len(fn.Inputs) != 1 || len(fn.InOuts) != 1 || len(fn.Locals) != 1 {
		t.Errorf("sections = %d/%d/%d", len(fn.Inputs), len(fn.InOuts), len(fn.Locals))
	}
	if got := len(w.ByType(errors.ErrorTypeMalformed)); got != 1 {
		t.Errorf("malformed warnings = %d, want 1 for VAR_OUTPUT:\n%v", got, w)
	}
}

func TestParseFunction_ArrayReturnType(t *testing.T) {
	units, warnings := scanner.SplitFunctionFile("f.fun", "FUNCTION Get : STRING[80]\nEND_FUNCTION")
	unit := singleUnit(t, units, warnings)

	fn, _, err := NewParser().ParseFunction(unit)
	if err != nil {
		t.Fatalf("ParseFunction() failed: %v", err)
	}
	if fn.ReturnType.String() != "STRING[80]" {
		t.Errorf("ReturnType = %s", fn.ReturnType)
	}
}

func TestParseFunction_MissingReturnType(t *testing.T) {
	for _, text := range []string{
		"FUNCTION NoType\nVAR_INPUT a : INT; END_VAR\nEND_FUNCTION",
		"FUNCTION NoType : (*only a comment*)\nEND_FUNCTION",
	} {
		units, warnings := scanner.SplitFunctionFile("f.fun", text)
		unit := singleUnit(t, units, warnings)

		fn, _, err := NewParser().ParseFunction(unit)
		if err == nil {
			t.Errorf("ParseFunction(%q) = %+v, want error", text, fn)
		}
	}
}

func TestParseStructure_SymbolicArrayBound(t *testing.T) {
	units, warnings := scanner.SplitTypeFile("c.typ",
		"TYPE MyStruct : STRUCT x : ARRAY[0..MAXX] OF INT; END_STRUCT; END_TYPE")
	unit := singleUnit(t, units, warnings)

	s, w, err := NewParser().ParseStructure(unit)
	if err != nil {
		t.Fatalf("ParseStructure() failed: %v", err)
	}
	if w.HasErrors() {
		t.Errorf("unexpected warnings: %v", w)
	}
	if s.Name != "MyStruct" || len(s.Members) != 1 {
		t.Fatalf("structure = %+v", s)
	}

	x := s.Members[0]
	arr, ok := x.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("x type = %T, want *ast.ArrayType", x.Type)
	}
	if ast.BaseName(arr) != "INT" || len(arr.Dimensions) != 1 {
		t.Fatalf("array = %s", arr)
	}
	dim := arr.Dimensions[0]
	if dim.Lower != ast.LiteralBound(0) || dim.Lower.IsSymbolic() {
		t.Errorf("lower = %+v", dim.Lower)
	}
	if dim.Upper != ast.SymbolicBound("MAXX") || !dim.Upper.IsSymbolic() {
		t.Errorf("upper = %+v", dim.Upper)
	}
	if x.Role != ast.RoleLocal {
		t.Errorf("member role = %q", x.Role)
	}
}

func TestParseStructure_MemberNamedType(t *testing.T) {
	units, warnings := scanner.SplitTypeFile("c.typ",
		"TYPE AxisCfg : STRUCT Type : USINT; Speed : REAL; END_STRUCT; END_TYPE")
	unit := singleUnit(t, units, warnings)

	s, w, err := NewParser().ParseStructure(unit)
	if err != nil {
		t.Fatalf("ParseStructure() failed: %v", err)
	}
	if w.HasErrors() {
		t.Errorf("unexpected warnings: %v", w)
	}
	var names []string
	for _, m := range s.Members {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"Type", "Speed"}, names); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStructure_Description(t *testing.T) {
	units, warnings := scanner.SplitTypeFile("c.typ", `TYPE
	Point : STRUCT (*A point*)
		x : REAL; (*X*)
		y : REAL; (*Y*)
	END_STRUCT;
END_TYPE`)
	unit := singleUnit(t, units, warnings)

	s, _, err := NewParser().ParseStructure(unit)
	if err != nil {
		t.Fatalf("ParseStructure() failed: %v", err)
	}
	if s.Description != "A point" {
		t.Errorf("Description = %q", s.Description)
	}
	if s.Members[0].Comment1 != "X" || s.Members[1].Comment1 != "Y" {
		t.Errorf("member comments = %q, %q", s.Members[0].Comment1, s.Members[1].Comment1)
	}
	if s.Members[1].Location.Line != 4 {
		t.Errorf("y line = %d, want 4", s.Members[1].Location.Line)
	}
}

func TestParseStructure_NoStruct(t *testing.T) {
	unit := scanner.Unit{Kind: scanner.KindStructure, Text: "Point : (A, B);", Location: ast.Location{File: "c.typ", Line: 1, Column: 1}}
	if _, _, err := NewParser().ParseStructure(unit); err == nil {
		t.Error("ParseStructure() succeeded without STRUCT")
	}
}

func TestDuplicatePolicies(t *testing.T) {
	text := `TYPE
	Point : STRUCT
		x : REAL;
		y : REAL;
		x : INT;
	END_STRUCT;
END_TYPE`

	tests := []struct {
		policy   DuplicatePolicy
		members  []string
		warnings int
		fails    bool
	}{
		{DuplicatesKeep, []string{"x", "y", "x"}, 0, false},
		{DuplicatesWarn, []string{"x", "y", "x"}, 1, false},
		{DuplicatesLastWins, []string{"y", "x"}, 1, false},
		{DuplicatesReject, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			units, warnings := scanner.SplitTypeFile("p.typ", text)
			unit := singleUnit(t, units, warnings)

			s, w, err := NewParser().WithDuplicatePolicy(tt.policy).ParseStructure(unit)
			if tt.fails {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStructure() failed: %v", err)
			}

			var names []string
			for _, m := range s.Members {
				names = append(names, m.Name)
			}
			if diff := cmp.Diff(tt.members, names); diff != "" {
				t.Errorf("members mismatch (-want +got):\n%s", diff)
			}
			if w.Count() != tt.warnings {
				t.Errorf("warnings = %d, want %d:\n%v", w.Count(), tt.warnings, w)
			}
			if tt.policy == DuplicatesLastWins && s.Members[1].Type.String() != "INT" {
				t.Errorf("last-wins kept %s", s.Members[1].Type)
			}
		})
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	for in, want := range map[string]DuplicatePolicy{
		"":          DuplicatesKeep,
		"keep":      DuplicatesKeep,
		"WARN":      DuplicatesWarn,
		"last-wins": DuplicatesLastWins,
		" reject ":  DuplicatesReject,
	} {
		got, err := ParseDuplicatePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseDuplicatePolicy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDuplicatePolicy("first-wins"); err == nil {
		t.Error("ParseDuplicatePolicy(first-wins) succeeded")
	}
}
