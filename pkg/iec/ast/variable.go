package ast

import "encoding/json"

// Role is the classification of a variable fixed by its declaring section.
type Role string

const (
	RoleInput    Role = "input"    // VAR_INPUT
	RoleOutput   Role = "output"   // VAR_OUTPUT
	RoleInOut    Role = "in_out"   // VAR_IN_OUT
	RoleLocal    Role = "local"    // VAR
	RoleConstant Role = "constant" // VAR CONSTANT / VAR_CONSTANT
)

// Roles lists every role in declaration order.
var Roles = []Role{RoleInput, RoleOutput, RoleInOut, RoleLocal, RoleConstant}

// MaxComments is the number of documentation comments kept per entry.
const MaxComments = 3

// Variable is one parameter, member, local or constant declaration.
type Variable struct {
	Name        string   `json:"name" yaml:"name"`
	Type        Type     `json:"type" yaml:"type"`
	IsReference bool     `json:"is_reference,omitempty" yaml:"is_reference,omitempty"`
	Redundancy  string   `json:"redundancy,omitempty" yaml:"redundancy,omitempty"`
	Comment1    string   `json:"comment1,omitempty" yaml:"comment1,omitempty"`
	Comment2    string   `json:"comment2,omitempty" yaml:"comment2,omitempty"`
	Comment3    string   `json:"comment3,omitempty" yaml:"comment3,omitempty"`
	Default     string   `json:"default,omitempty" yaml:"default,omitempty"`
	Retain      bool     `json:"retain,omitempty" yaml:"retain,omitempty"`
	Role        Role     `json:"role" yaml:"role"`
	Location    Location `json:"location" yaml:"location"`
}

// Comments returns the non-empty comments in order.
func (v *Variable) Comments() []string {
	return compactComments(v.Comment1, v.Comment2, v.Comment3)
}

// SetComments assigns up to MaxComments comments in encounter order.
// Extra comments are dropped.
func (v *Variable) SetComments(comments []string) {
	v.Comment1, v.Comment2, v.Comment3 = spreadComments(comments)
}

// MarshalJSON encodes the type as a tagged object so the variant survives.
func (v *Variable) MarshalJSON() ([]byte, error) {
	type alias Variable
	typ, err := MarshalType(v.Type)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		*alias
		Type json.RawMessage `json:"type"`
	}{alias: (*alias)(v), Type: typ})
}

// EnumLiteral is one member of an enumeration.
type EnumLiteral struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Comment1 string `json:"comment1,omitempty" yaml:"comment1,omitempty"`
	Comment2 string `json:"comment2,omitempty" yaml:"comment2,omitempty"`
	Comment3 string `json:"comment3,omitempty" yaml:"comment3,omitempty"`
}

// Comments returns the non-empty comments in order.
func (l *EnumLiteral) Comments() []string {
	return compactComments(l.Comment1, l.Comment2, l.Comment3)
}

// SetComments assigns up to MaxComments comments in encounter order.
func (l *EnumLiteral) SetComments(comments []string) {
	l.Comment1, l.Comment2, l.Comment3 = spreadComments(comments)
}

func compactComments(c ...string) []string {
	out := make([]string, 0, len(c))
	for _, s := range c {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func spreadComments(comments []string) (c1, c2, c3 string) {
	slots := [MaxComments]string{}
	copy(slots[:], comments)
	return slots[0], slots[1], slots[2]
}
