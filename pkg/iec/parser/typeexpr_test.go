package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ast.Type
	}{
		{"basic", "INT", &ast.BasicType{Name: "INT"}},
		{"basic keeps casing", "MpAxisBasicType", &ast.BasicType{Name: "MpAxisBasicType"}},
		{"pointer prefix", "POINTER  TO   MyStruct", &ast.BasicType{Name: "POINTER TO MyStruct"}},
		{"bare array of", "ARRAY OF INT", &ast.BasicType{Name: "ARRAY OF INT"}},
		{
			name: "array",
			text: "ARRAY[0..10] OF REAL",
			want: &ast.ArrayType{
				Element:    &ast.BasicType{Name: "REAL"},
				Dimensions: []ast.Dimension{{Lower: ast.LiteralBound(0), Upper: ast.LiteralBound(10)}},
			},
		},
		{
			name: "array with whitespace and symbolic bound",
			text: "ARRAY [ 1 .. MAXX , -2..2 ] OF Point",
			want: &ast.ArrayType{
				Element: &ast.BasicType{Name: "Point"},
				Dimensions: []ast.Dimension{
					{Lower: ast.LiteralBound(1), Upper: ast.SymbolicBound("MAXX")},
					{Lower: ast.LiteralBound(-2), Upper: ast.LiteralBound(2)},
				},
			},
		},
		{
			name: "array of strings",
			text: "ARRAY[0..3] OF STRING[NAME_LEN]",
			want: &ast.ArrayType{
				Element:    &ast.StringType{Length: ast.SymbolicBound("NAME_LEN")},
				Dimensions: []ast.Dimension{{Lower: ast.LiteralBound(0), Upper: ast.LiteralBound(3)}},
			},
		},
		{"string", "STRING[80]", &ast.StringType{Length: ast.LiteralBound(80)}},
		{"string spaced", "STRING [ 80 ]", &ast.StringType{Length: ast.LiteralBound(80)}},
		{"range", "UDINT(1..9)", &ast.RangeType{Base: "UDINT", Lower: ast.LiteralBound(1), Upper: ast.LiteralBound(9)}},
		{
			name: "pointer to array keeps bounds",
			text: "POINTER TO ARRAY[0..MAXX] OF MyStruct",
			want: &ast.ArrayType{
				Prefix:     "POINTER TO",
				Element:    &ast.BasicType{Name: "MyStruct"},
				Dimensions: []ast.Dimension{{Lower: ast.LiteralBound(0), Upper: ast.SymbolicBound("MAXX")}},
			},
		},
		{"reference to string", "reference  to STRING[LEN]", &ast.StringType{Prefix: "reference to", Length: ast.SymbolicBound("LEN")}},
		{
			name: "stacked prefixes on range",
			text: "POINTER TO ARRAY OF UDINT(1..9)",
			want: &ast.RangeType{Prefix: "POINTER TO ARRAY OF", Base: "UDINT", Lower: ast.LiteralBound(1), Upper: ast.LiteralBound(9)},
		},
		{
			name: "array of pointer elements",
			text: "ARRAY[0..1] OF POINTER TO STRING[80]",
			want: &ast.ArrayType{
				Element:    &ast.StringType{Prefix: "POINTER TO", Length: ast.LiteralBound(80)},
				Dimensions: []ast.Dimension{{Lower: ast.LiteralBound(0), Upper: ast.LiteralBound(1)}},
			},
		},
		{"empty dimension falls back", "ARRAY[] OF INT", &ast.BasicType{Name: "ARRAY[] OF INT"}},
		{"bad bound falls back", "STRING[16#10]", &ast.BasicType{Name: "STRING[16#10]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseType(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseType(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestParseType_CanonicalRoundTrip(t *testing.T) {
	for _, text := range []string{
		"ARRAY[0..10] OF REAL",
		"STRING[80]",
		"UDINT(1..9)",
		"ARRAY[0..1,1..MAXX] OF INT",
		"ARRAY[0..1] OF ARRAY[0..2] OF BOOL",
		"POINTER TO ARRAY[0..MAXX] OF MyStruct",
		"REFERENCE TO STRING[80]",
	} {
		t.Run(text, func(t *testing.T) {
			first := ParseType(text)
			if first.String() != text {
				t.Errorf("String() = %q, want %q", first.String(), text)
			}
			if diff := cmp.Diff(first, ParseType(first.String())); diff != "" {
				t.Errorf("re-parse mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

func TestParseType_PrefixedArrayExposesBase(t *testing.T) {
	typ := ParseType("POINTER TO ARRAY[0..MAXX] OF MyStruct")
	if got := ast.BaseName(typ); got != "MyStruct" {
		t.Errorf("BaseName() = %q, want %q", got, "MyStruct")
	}
	if diff := cmp.Diff([]string{"MAXX"}, ast.SymbolicBounds(typ)); diff != "" {
		t.Errorf("SymbolicBounds() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		text     string
		want     ast.Bound
		symbolic bool
		ok       bool
	}{
		{"10", ast.LiteralBound(10), false, true},
		{"-3", ast.LiteralBound(-3), false, true},
		{"+7", ast.LiteralBound(7), false, true},
		{" 0 ", ast.LiteralBound(0), false, true},
		{"MAXX", ast.SymbolicBound("MAXX"), true, true},
		{"_n1", ast.SymbolicBound("_n1"), true, true},
		{"1A", ast.Bound{}, false, false},
		{"", ast.Bound{}, false, false},
		{"99999999999999999999", ast.Bound{}, false, false},
	}

	for _, tt := range tests {
		got, ok := ParseBound(tt.text)
		if ok != tt.ok {
			t.Errorf("ParseBound(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			continue
		}
		if got != tt.want || got.IsSymbolic() != tt.symbolic {
			t.Errorf("ParseBound(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}
