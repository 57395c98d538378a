package logging

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if GetLibrary(ctx) != "" || GetFile(ctx) != "" || GetBuildID(ctx) != "" {
		t.Fatal("empty context returned values")
	}

	ctx = WithLibrary(ctx, "AxisLib")
	ctx = WithBuildID(ctx, "b-1")

	if got := GetLibrary(ctx); got != "AxisLib" {
		t.Errorf("GetLibrary() = %q", got)
	}
	if got := GetBuildID(ctx); got != "b-1" {
		t.Errorf("GetBuildID() = %q", got)
	}
	if got := GetFile(ctx); got != "" {
		t.Errorf("GetFile() = %q, want empty", got)
	}

	want := []any{"library", "AxisLib", "build_id", "b-1"}
	if diff := cmp.Diff(want, contextFields(ctx)); diff != "" {
		t.Errorf("contextFields() mismatch (-want +got):\n%s", diff)
	}
}
