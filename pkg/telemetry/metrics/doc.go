// Package metrics provides Prometheus metrics for library builds.
//
// A Collector implements library.Observer, so attaching it to a Loader
// records per-file parse counts, durations and findings as well as
// per-library build outcomes and declaration counts. Commands record lint
// runs, resolver calls and catalog indexing runs explicitly.
//
// The CLI is short-lived, so metrics are exported through the node
// exporter textfile collector rather than an HTTP endpoint:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	loader := library.NewLoader(nil, p, logger).WithObserver(collector)
//	lib, report, err := loader.Load(ctx, dir)
//	...
//	err = collector.WriteToTextfile("/var/lib/node_exporter/libscribe.prom")
//
// Library labels are capped by a CardinalityLimiter; libraries beyond the
// cap are reported as "other".
package metrics
