package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// LibraryKey is the context key for the library being processed.
	LibraryKey contextKey = "library"

	// FileKey is the context key for the source file being processed.
	FileKey contextKey = "file"

	// BuildIDKey is the context key for the build identifier.
	BuildIDKey contextKey = "build_id"
)

// fieldKeys lists the context keys in output order.
var fieldKeys = []contextKey{LibraryKey, FileKey, BuildIDKey}

// WithLibrary adds a library name to the context.
func WithLibrary(ctx context.Context, library string) context.Context {
	return context.WithValue(ctx, LibraryKey, library)
}

// GetLibrary retrieves the library name from the context.
func GetLibrary(ctx context.Context) string {
	return get(ctx, LibraryKey)
}

// WithFile adds a source file path to the context.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, FileKey, file)
}

// GetFile retrieves the source file path from the context.
func GetFile(ctx context.Context) string {
	return get(ctx, FileKey)
}

// WithBuildID adds a build identifier to the context.
func WithBuildID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, BuildIDKey, id)
}

// GetBuildID retrieves the build identifier from the context.
func GetBuildID(ctx context.Context) string {
	return get(ctx, BuildIDKey)
}

func get(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// contextFields returns the non-empty context fields as key-value pairs.
func contextFields(ctx context.Context) []any {
	var fields []any
	for _, key := range fieldKeys {
		if v := get(ctx, key); v != "" {
			fields = append(fields, string(key), v)
		}
	}
	return fields
}

// contextHandler adds the context fields to every record logged with a
// context.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if fields := contextFields(ctx); len(fields) > 0 {
		r = r.Clone()
		r.Add(fields...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
