package errors

import (
	"strings"
	"testing"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

func TestError_Format(t *testing.T) {
	err := &Error{
		Type:       ErrorTypeMalformed,
		Severity:   SeverityWarning,
		Message:    "cannot parse entry",
		Location:   ast.Location{File: "lib.fun", Line: 2, Column: 3},
		Suggestion: "Did you mean 'MAX'?",
	}

	out := err.Error()
	for _, want := range []string{
		"warning[malformed] cannot parse entry",
		"--> lib.fun:2:3",
		"= suggestion: Did you mean 'MAX'?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Error() = %q, missing %q", out, want)
		}
	}
}

func TestErrorList_Filters(t *testing.T) {
	el := NewErrorList()
	loc := ast.Location{File: "a.typ", Line: 1}

	el.AddWarning(ErrorTypeMalformed, "skipped entry", loc)
	el.AddError(ErrorTypeSemantic, "duplicate", loc)
	el.Add(&Error{Type: ErrorTypeIO, Message: "no severity"})
	el.Add(nil)

	if el.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", el.Count())
	}
	if got := len(el.BySeverity(SeverityWarning)); got != 1 {
		t.Errorf("warnings = %d, want 1", got)
	}
	if got := len(el.BySeverity(SeverityError)); got != 2 {
		t.Errorf("errors = %d, want 2 (missing severity defaults to error)", got)
	}
	if !el.HasErrorType(ErrorTypeSemantic) || el.HasErrorType(ErrorTypeEncoding) {
		t.Error("HasErrorType() mismatch")
	}
	if len(el.ByType(ErrorTypeMalformed)) != 1 {
		t.Error("ByType(malformed) != 1")
	}
	if !el.HasFailures() {
		t.Error("HasFailures() = false")
	}
}

func TestErrorList_ToError(t *testing.T) {
	el := NewErrorList()
	if el.ToError() != nil {
		t.Error("empty list ToError() should be nil")
	}

	el.AddWarning(ErrorTypeMalformed, "w", ast.Location{})
	if el.HasFailures() {
		t.Error("warnings only: HasFailures() = true")
	}
	if el.ToError() == nil {
		t.Error("non-empty list ToError() should not be nil")
	}

	other := NewErrorList()
	other.AddError(ErrorTypeStructural, "e", ast.Location{})
	el.Merge(other)
	el.Merge(nil)
	if el.Count() != 2 {
		t.Errorf("Count() after Merge = %d, want 2", el.Count())
	}
}

func TestExtractContext(t *testing.T) {
	text := "line one\nline two\nline three\nline four"
	got := ExtractContext(text, ast.Location{File: "x", Line: 3, Column: 6}, 1)

	want := "   2 | line two\n" +
		"-> 3 | line three\n" +
		"     |      ^\n" +
		"   4 | line four\n"
	if got != want {
		t.Errorf("ExtractContext() =\n%q\nwant\n%q", got, want)
	}

	if ExtractContext(text, ast.Location{Line: 10}, 1) != "" {
		t.Error("out-of-range line should give empty context")
	}
}

func TestAddSourceContext(t *testing.T) {
	el := NewErrorList()
	el.AddWarning(ErrorTypeMalformed, "a", ast.Location{File: "a.typ", Line: 1, Column: 1})
	el.AddWarning(ErrorTypeMalformed, "b", ast.Location{File: "b.typ", Line: 1, Column: 1})

	AddSourceContext(el, "a.typ", "TYPE\nEND_TYPE")

	if el.Errors[0].Context == "" {
		t.Error("context not attached for matching file")
	}
	if el.Errors[1].Context != "" {
		t.Error("context attached for other file")
	}
}

func TestSuggestName(t *testing.T) {
	known := []string{"MAX_AXES", "MAX_NAME_LEN", "MIN_SPEED"}

	tests := []struct {
		unknown string
		want    string
	}{
		{"MAX_AXIS", "Did you mean 'MAX_AXES'?"},
		{"max_axes", "Did you mean 'MAX_AXES'?"},
		{"COMPLETELY_DIFFERENT", ""},
	}

	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			if got := SuggestName(tt.unknown, known); got != tt.want {
				t.Errorf("SuggestName(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}
}

func TestSuggestLiteral_ListsLiterals(t *testing.T) {
	got := SuggestLiteral("PURPLE", []string{"RED", "GREEN"})
	if got != "Valid literals: RED, GREEN" {
		t.Errorf("SuggestLiteral() = %q", got)
	}
}
