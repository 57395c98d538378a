// Package telemetry groups the observability support of libscribe.
//
//   - logging: structured logging on log/slog with library, file and
//     build ID context fields
//   - metrics: Prometheus metrics for parsing, builds, lint runs, resolver
//     calls and catalog indexing, exported through a textfile
package telemetry
