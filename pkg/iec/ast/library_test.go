package ast

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleDeclarations() Declarations {
	return Declarations{
		Functions: []*Function{{
			Name:       "Add",
			ReturnType: &BasicType{Name: "INT"},
			Inputs: []*Variable{
				{Name: "a", Type: &BasicType{Name: "INT"}, Role: RoleInput},
				{Name: "b", Type: &BasicType{Name: "INT"}, Role: RoleInput},
			},
		}},
		FunctionBlocks: []*FunctionBlock{{
			Name:    "MyFB",
			Inputs:  []*Variable{{Name: "Enable", Type: &BasicType{Name: "BOOL"}, Role: RoleInput}},
			Outputs: []*Variable{{Name: "Done", Type: &BasicType{Name: "BOOL"}, Role: RoleOutput}},
		}},
		Structures: []*Structure{{
			Name:    "MyStruct",
			Members: []*Variable{{Name: "x", Type: &BasicType{Name: "REAL"}, Role: RoleLocal}},
		}},
		Enumerations: []*Enumeration{{
			Name:     "Colors",
			Literals: []*EnumLiteral{{Name: "RED"}, {Name: "GREEN"}},
			Default:  "RED",
		}},
		Constants: []*Variable{{Name: "MAX", Type: &BasicType{Name: "INT"}, Default: "10", Role: RoleConstant}},
	}
}

func TestNewLibrary_Defaults(t *testing.T) {
	lib := NewLibrary("MyLib")
	if lib.Name != "MyLib" {
		t.Errorf("Name = %q, want %q", lib.Name, "MyLib")
	}
	if lib.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", lib.Version, DefaultVersion)
	}
	if lib.Frozen() {
		t.Error("new library is frozen")
	}
}

func TestLibrary_AppendDeclarations(t *testing.T) {
	lib := NewLibrary("MyLib")
	if err := lib.AppendDeclarations(sampleDeclarations()); err != nil {
		t.Fatalf("AppendDeclarations() failed: %v", err)
	}
	if err := lib.AppendDeclarations(Declarations{
		Constants: []*Variable{{Name: "MIN", Type: &BasicType{Name: "INT"}, Role: RoleConstant}},
	}); err != nil {
		t.Fatalf("AppendDeclarations() failed: %v", err)
	}

	want := Stats{Functions: 1, FunctionBlocks: 1, Structures: 1, Enumerations: 1, Constants: 2}
	if diff := cmp.Diff(want, lib.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
	if lib.Constants[0].Name != "MAX" || lib.Constants[1].Name != "MIN" {
		t.Errorf("constants out of order: %q, %q", lib.Constants[0].Name, lib.Constants[1].Name)
	}
	if lib.Structure("MyStruct") == nil || lib.Enumeration("Colors") == nil {
		t.Error("lookup by name failed")
	}
	if lib.FunctionBlock("Nope") != nil {
		t.Error("FunctionBlock(Nope) should be nil")
	}
}

func TestLibrary_ApplyMetadata(t *testing.T) {
	lib := NewLibrary("Folder")
	version := "2.3.0"
	desc := "Motion helpers"

	err := lib.ApplyMetadata(Metadata{
		Version:      &version,
		Description:  &desc,
		Dependencies: []Dependency{{ObjectName: "AsBrStr", FromVersion: "1.0.0"}},
	})
	if err != nil {
		t.Fatalf("ApplyMetadata() failed: %v", err)
	}

	if lib.Name != "Folder" {
		t.Errorf("Name = %q, unset field must not override", lib.Name)
	}
	if lib.Version != "2.3.0" || lib.Description != "Motion helpers" {
		t.Errorf("Version/Description = %q/%q", lib.Version, lib.Description)
	}
	if len(lib.Dependencies) != 1 || lib.Dependencies[0].ObjectName != "AsBrStr" {
		t.Errorf("Dependencies = %+v", lib.Dependencies)
	}
}

func TestLibrary_Freeze(t *testing.T) {
	lib := NewLibrary("MyLib")
	lib.Freeze()

	if !lib.Frozen() {
		t.Fatal("Frozen() = false after Freeze()")
	}
	if err := lib.AppendDeclarations(sampleDeclarations()); !errors.Is(err, ErrFrozen) {
		t.Errorf("AppendDeclarations() error = %v, want ErrFrozen", err)
	}
	if err := lib.ApplyMetadata(Metadata{}); !errors.Is(err, ErrFrozen) {
		t.Errorf("ApplyMetadata() error = %v, want ErrFrozen", err)
	}
	if lib.Stats() != (Stats{}) {
		t.Errorf("frozen library changed: %+v", lib.Stats())
	}
}

type recordingVisitor struct {
	NopVisitor
	visited []string
}

func (r *recordingVisitor) VisitFunction(f *Function) error {
	r.visited = append(r.visited, "function:"+f.Name)
	return nil
}

func (r *recordingVisitor) VisitFunctionBlock(fb *FunctionBlock) error {
	r.visited = append(r.visited, "fb:"+fb.Name)
	return nil
}

func (r *recordingVisitor) VisitStructure(s *Structure) error {
	r.visited = append(r.visited, "struct:"+s.Name)
	return nil
}

func (r *recordingVisitor) VisitLiteral(e *Enumeration, l *EnumLiteral) error {
	r.visited = append(r.visited, "literal:"+e.Name+"."+l.Name)
	return nil
}

func (r *recordingVisitor) VisitVariable(owner string, v *Variable) error {
	r.visited = append(r.visited, "var:"+owner+"."+v.Name)
	return nil
}

func TestWalk(t *testing.T) {
	lib := NewLibrary("MyLib")
	if err := lib.AppendDeclarations(sampleDeclarations()); err != nil {
		t.Fatal(err)
	}

	v := &recordingVisitor{}
	if err := Walk(lib, v); err != nil {
		t.Fatalf("Walk() failed: %v", err)
	}

	want := []string{
		"function:Add", "var:Add.a", "var:Add.b",
		"fb:MyFB", "var:MyFB.Enable", "var:MyFB.Done",
		"struct:MyStruct", "var:MyStruct.x",
		"literal:Colors.RED", "literal:Colors.GREEN",
		"var:.MAX",
	}
	if diff := cmp.Diff(want, v.visited); diff != "" {
		t.Errorf("Walk() order mismatch (-want +got):\n%s", diff)
	}
}

type failingVisitor struct{ NopVisitor }

var errStop = errors.New("stop")

func (failingVisitor) VisitStructure(*Structure) error { return errStop }

func TestWalk_StopsOnError(t *testing.T) {
	lib := NewLibrary("MyLib")
	_ = lib.AppendDeclarations(sampleDeclarations())

	if err := Walk(lib, failingVisitor{}); !errors.Is(err, errStop) {
		t.Errorf("Walk() error = %v, want errStop", err)
	}
}

func TestLocation(t *testing.T) {
	base := Location{File: "lib.fun", Line: 10, Column: 5}

	if got := base.Offset(1, 3); got != (Location{File: "lib.fun", Line: 10, Column: 7}) {
		t.Errorf("Offset(1,3) = %v", got)
	}
	if got := base.Offset(3, 2); got != (Location{File: "lib.fun", Line: 12, Column: 2}) {
		t.Errorf("Offset(3,2) = %v", got)
	}
	if got := (Location{}).String(); got != "<unknown>" {
		t.Errorf("empty String() = %q", got)
	}
}
