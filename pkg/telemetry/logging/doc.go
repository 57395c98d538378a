// Package logging provides structured logging on log/slog.
//
// A Logger writes JSON, text or console (text without timestamps) output
// at a configurable level. Components take the *slog.Logger returned by
// Slog. The library, file and build ID stored in a context with
// WithLibrary, WithFile and WithBuildID are added to every record logged
// with that context:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	ctx := logging.WithLibrary(ctx, "AxisLib")
//	logger.InfoContext(ctx, "library loaded", "files", 4)
package logging
