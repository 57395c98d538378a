package ast

import (
	"encoding/json"
	"strconv"
	"strings"
)

// TypeKind identifies one of the four type expression forms.
type TypeKind string

const (
	TypeKindBasic  TypeKind = "basic"
	TypeKindArray  TypeKind = "array"
	TypeKindString TypeKind = "string"
	TypeKindRange  TypeKind = "range"
)

// Type is a parsed type expression. The set of implementations is closed:
// *BasicType, *ArrayType, *StringType and *RangeType. Consumers switch on
// the concrete type and must handle all four.
type Type interface {
	// Kind returns the variant tag.
	Kind() TypeKind

	// String returns the canonical source form of the type. Parsing the
	// canonical form again yields an equal value.
	String() string

	isType()
}

// Bound is an array, string or range bound. It is either an integer literal
// (Symbol empty) or a symbolic constant name (Value zero). Symbolic names are
// not checked at parse time so forward and external references are allowed.
type Bound struct {
	Value  int64  `json:"value,omitempty" yaml:"value,omitempty"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

// LiteralBound returns an integer literal bound.
func LiteralBound(v int64) Bound {
	return Bound{Value: v}
}

// SymbolicBound returns a bound that names a constant.
func SymbolicBound(name string) Bound {
	return Bound{Symbol: name}
}

// IsSymbolic reports whether the bound names a constant.
func (b Bound) IsSymbolic() bool {
	return b.Symbol != ""
}

// String returns the literal digits or the symbol name.
func (b Bound) String() string {
	if b.IsSymbolic() {
		return b.Symbol
	}
	return strconv.FormatInt(b.Value, 10)
}

// Dimension is one lower..upper pair of an array declaration.
type Dimension struct {
	Lower Bound `json:"lower" yaml:"lower"`
	Upper Bound `json:"upper" yaml:"upper"`
}

// String returns "lower..upper".
func (d Dimension) String() string {
	return d.Lower.String() + ".." + d.Upper.String()
}

// BasicType is any type that is not an array, sized string or range. The
// name keeps its source spelling, including display-only prefixes such as
// "POINTER TO" or "ARRAY OF". The other variants hold such prefixes in
// their Prefix field.
type BasicType struct {
	Name string `json:"name" yaml:"name"`
}

func (*BasicType) isType() {}

// Kind implements Type.
func (*BasicType) Kind() TypeKind { return TypeKindBasic }

// String implements Type.
func (t *BasicType) String() string { return t.Name }

// ArrayType is ARRAY[dims] OF element.
type ArrayType struct {
	Prefix     string      `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Element    Type        `json:"element" yaml:"element"`
	Dimensions []Dimension `json:"dimensions" yaml:"dimensions"`
}

func (*ArrayType) isType() {}

// Kind implements Type.
func (*ArrayType) Kind() TypeKind { return TypeKindArray }

// String implements Type.
func (t *ArrayType) String() string {
	dims := make([]string, len(t.Dimensions))
	for i, d := range t.Dimensions {
		dims[i] = d.String()
	}
	elem := ""
	if t.Element != nil {
		elem = t.Element.String()
	}
	return decorate(t.Prefix, "ARRAY["+strings.Join(dims, ",")+"] OF "+elem)
}

// StringType is STRING[length].
type StringType struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Length Bound  `json:"length" yaml:"length"`
}

func (*StringType) isType() {}

// Kind implements Type.
func (*StringType) Kind() TypeKind { return TypeKindString }

// String implements Type.
func (t *StringType) String() string {
	return decorate(t.Prefix, "STRING["+t.Length.String()+"]")
}

// RangeType is a subrange such as UDINT(1..9).
type RangeType struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Base   string `json:"base" yaml:"base"`
	Lower  Bound  `json:"lower" yaml:"lower"`
	Upper  Bound  `json:"upper" yaml:"upper"`
}

func (*RangeType) isType() {}

// Kind implements Type.
func (*RangeType) Kind() TypeKind { return TypeKindRange }

// String implements Type.
func (t *RangeType) String() string {
	return decorate(t.Prefix, t.Base+"("+t.Lower.String()+".."+t.Upper.String()+")")
}

func decorate(prefix, body string) string {
	if prefix == "" {
		return body
	}
	return prefix + " " + body
}

// BaseName returns the innermost named type of t: the basic name, the array
// element's base name, "STRING" or the range base.
func BaseName(t Type) string {
	switch v := t.(type) {
	case *BasicType:
		return v.Name
	case *ArrayType:
		if v.Element == nil {
			return ""
		}
		return BaseName(v.Element)
	case *StringType:
		return "STRING"
	case *RangeType:
		return v.Base
	default:
		return ""
	}
}

// SymbolicBounds returns every symbolic bound name used in t, in source order.
func SymbolicBounds(t Type) []string {
	var names []string
	add := func(b Bound) {
		if b.IsSymbolic() {
			names = append(names, b.Symbol)
		}
	}
	switch v := t.(type) {
	case *ArrayType:
		for _, d := range v.Dimensions {
			add(d.Lower)
			add(d.Upper)
		}
		if v.Element != nil {
			names = append(names, SymbolicBounds(v.Element)...)
		}
	case *StringType:
		add(v.Length)
	case *RangeType:
		add(v.Lower)
		add(v.Upper)
	}
	return names
}

// typeJSON is the tagged wire form used by MarshalType.
type typeJSON struct {
	Kind TypeKind `json:"kind"`
	Text string   `json:"text"`
	Type Type     `json:"detail"`
}

// MarshalType encodes t as {"kind": ..., "text": ..., "detail": {...}}.
func MarshalType(t Type) ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(typeJSON{Kind: t.Kind(), Text: t.String(), Type: t})
}
