package resolver

import (
	"testing"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

func TestHTMLMarker_Mark(t *testing.T) {
	m := HTMLMarker{Root: "../"}

	tests := []struct {
		ref  Reference
		want string
	}{
		{Reference{Kind: ast.KindStructure, Name: "Point"}, `<a href="../DataTypes/Structures/Point.html">Point</a>`},
		{Reference{Kind: ast.KindEnumeration, Name: "Mode"}, `<a href="../DataTypes/Enumerations/Mode.html">Mode</a>`},
		{Reference{Kind: ast.KindConstant, Name: "MAXX"}, `<a href="../DataTypes/Constants/Constants.html#MAXX">MAXX</a>`},
		{Reference{Kind: ast.KindFunctionBlock, Name: "MoveFB"}, `<a href="../FBKs/MoveFB.html">MoveFB</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.ref.Name, func(t *testing.T) {
			if got := m.Mark(tt.ref); got != tt.want {
				t.Errorf("Mark() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTMLMarker_Escape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a < b", "a &lt; b"},
		{"x & y", "x &amp; y"},
		{"x &amp; y", "x &amp; y"},
		{"&#60; &#x3C; &lt;", "&#60; &#x3C; &lt;"},
		{`"q" 'q'`, "&#34;q&#34; &#39;q&#39;"},
		{"&nope", "&amp;nope"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := HTMLMarker{}.Escape(tt.in)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := (HTMLMarker{}).Escape(got); again != got {
				t.Errorf("Escape not stable: %q -> %q", got, again)
			}
		})
	}
}

func TestMarker_Existing(t *testing.T) {
	tests := []struct {
		name   string
		marker Marker
		in     string
		want   [][2]int
	}{
		{"token", TokenMarker{}, "a [[constant:X]] b", [][2]int{{2, 16}}},
		{"token not a token", TokenMarker{}, "a[0] [[x]]", [][2]int{}},
		{"html", HTMLMarker{}, `<a href="x">X</a> and <A HREF="y">Y</A>`, [][2]int{{0, 17}, {22, 39}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.marker.Existing(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Existing() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Existing()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
