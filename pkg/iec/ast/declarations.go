package ast

import "encoding/json"

// Function is a FUNCTION declaration. Functions have a scalar return type and
// only input, in-out and local sections.
type Function struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	ReturnType  Type        `json:"return_type" yaml:"return_type"`
	Inputs      []*Variable `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	InOuts      []*Variable `json:"in_outs,omitempty" yaml:"in_outs,omitempty"`
	Locals      []*Variable `json:"locals,omitempty" yaml:"locals,omitempty"`
	Location    Location    `json:"location" yaml:"location"`
}

// Variables returns every variable of the function in role order.
func (f *Function) Variables() []*Variable {
	out := make([]*Variable, 0, len(f.Inputs)+len(f.InOuts)+len(f.Locals))
	out = append(out, f.Inputs...)
	out = append(out, f.InOuts...)
	return append(out, f.Locals...)
}

// Section returns the variable list for role, or nil if the role is not
// allowed in a function.
func (f *Function) Section(role Role) *[]*Variable {
	switch role {
	case RoleInput:
		return &f.Inputs
	case RoleInOut:
		return &f.InOuts
	case RoleLocal:
		return &f.Locals
	default:
		return nil
	}
}

// MarshalJSON encodes the return type as a tagged object.
func (f *Function) MarshalJSON() ([]byte, error) {
	type alias Function
	ret, err := MarshalType(f.ReturnType)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		*alias
		ReturnType json.RawMessage `json:"return_type"`
	}{alias: (*alias)(f), ReturnType: ret})
}

// FunctionBlock is a FUNCTION_BLOCK declaration with all five roles.
type FunctionBlock struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Inputs      []*Variable `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs     []*Variable `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	InOuts      []*Variable `json:"in_outs,omitempty" yaml:"in_outs,omitempty"`
	Locals      []*Variable `json:"locals,omitempty" yaml:"locals,omitempty"`
	Constants   []*Variable `json:"constants,omitempty" yaml:"constants,omitempty"`
	Location    Location    `json:"location" yaml:"location"`
}

// Variables returns every variable of the function block in role order.
func (fb *FunctionBlock) Variables() []*Variable {
	var out []*Variable
	for _, role := range Roles {
		out = append(out, *fb.Section(role)...)
	}
	return out
}

// Section returns the variable list for role.
func (fb *FunctionBlock) Section(role Role) *[]*Variable {
	switch role {
	case RoleInput:
		return &fb.Inputs
	case RoleOutput:
		return &fb.Outputs
	case RoleInOut:
		return &fb.InOuts
	case RoleConstant:
		return &fb.Constants
	default:
		return &fb.Locals
	}
}

// Structure is a STRUCT type declaration with a flat member list.
type Structure struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Members     []*Variable `json:"members" yaml:"members"`
	Location    Location    `json:"location" yaml:"location"`
}

// Member returns the first member named name, or nil.
func (s *Structure) Member(name string) *Variable {
	for _, m := range s.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Enumeration is an enumerated type declaration.
type Enumeration struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Literals    []*EnumLiteral `json:"literals" yaml:"literals"`
	Default     string         `json:"default,omitempty" yaml:"default,omitempty"`
	Location    Location       `json:"location" yaml:"location"`
}

// Literal returns the first literal named name, or nil.
func (e *Enumeration) Literal(name string) *EnumLiteral {
	for _, l := range e.Literals {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// HasLiteral reports whether the enumeration declares name.
func (e *Enumeration) HasLiteral(name string) bool {
	return e.Literal(name) != nil
}

// DeclarationKind names the kind of a top-level declaration.
type DeclarationKind string

const (
	KindFunction      DeclarationKind = "function"
	KindFunctionBlock DeclarationKind = "function_block"
	KindStructure     DeclarationKind = "structure"
	KindEnumeration   DeclarationKind = "enumeration"
	KindConstant      DeclarationKind = "constant"
)

// Declarations is the set of declarations produced by parsing one or more
// files. It is the unit merged into a Library.
type Declarations struct {
	Functions      []*Function      `json:"functions,omitempty" yaml:"functions,omitempty"`
	FunctionBlocks []*FunctionBlock `json:"function_blocks,omitempty" yaml:"function_blocks,omitempty"`
	Structures     []*Structure     `json:"structures,omitempty" yaml:"structures,omitempty"`
	Enumerations   []*Enumeration   `json:"enumerations,omitempty" yaml:"enumerations,omitempty"`
	Constants      []*Variable      `json:"constants,omitempty" yaml:"constants,omitempty"`
}

// Count returns the total number of declarations.
func (d *Declarations) Count() int {
	return len(d.Functions) + len(d.FunctionBlocks) + len(d.Structures) +
		len(d.Enumerations) + len(d.Constants)
}

// Append adds other's declarations after d's own.
func (d *Declarations) Append(other Declarations) {
	d.Functions = append(d.Functions, other.Functions...)
	d.FunctionBlocks = append(d.FunctionBlocks, other.FunctionBlocks...)
	d.Structures = append(d.Structures, other.Structures...)
	d.Enumerations = append(d.Enumerations, other.Enumerations...)
	d.Constants = append(d.Constants, other.Constants...)
}
