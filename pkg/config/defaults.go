package config

import (
	"runtime"
	"time"
)

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultDuplicates  = "keep"
	DefaultMaxFileSize = int64(8 << 20)

	// Resolver defaults
	DefaultMarker       = "token"
	DefaultExternalRoot = "../"

	// Catalog defaults
	DefaultCatalogDriver      = "sqlite"
	DefaultCatalogPath        = "data/catalog.db"
	DefaultCatalogBusyTimeout = 5 * time.Second

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Git defaults
	DefaultGitBranch       = "main"
	DefaultGitLocalPath    = "data/sources"
	DefaultGitDepth        = 1
	DefaultGitTimeout      = 60 * time.Second
	DefaultGitPollInterval = 5 * time.Minute
	DefaultGitAuthType     = "none"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsNamespace = "libscribe"
)

// DefaultWatchExtensions are the suffixes that trigger a rebuild.
var DefaultWatchExtensions = []string{".fun", ".typ", ".var", ".lby"}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for any fields that have zero values.
// It is idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Parser.Duplicates == "" {
		cfg.Parser.Duplicates = DefaultDuplicates
	}
	if cfg.Parser.Concurrency == 0 {
		cfg.Parser.Concurrency = runtime.GOMAXPROCS(0)
	}
	if cfg.Parser.MaxFileSize == 0 {
		cfg.Parser.MaxFileSize = DefaultMaxFileSize
	}

	if cfg.Resolver.Marker == "" {
		cfg.Resolver.Marker = DefaultMarker
	}
	if cfg.Resolver.ExternalRoot == "" {
		cfg.Resolver.ExternalRoot = DefaultExternalRoot
	}

	if cfg.Catalog.Driver == "" {
		cfg.Catalog.Driver = DefaultCatalogDriver
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = DefaultCatalogPath
	}
	if cfg.Catalog.BusyTimeout == 0 {
		cfg.Catalog.BusyTimeout = DefaultCatalogBusyTimeout
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	if cfg.Git.Branch == "" {
		cfg.Git.Branch = DefaultGitBranch
	}
	if cfg.Git.LocalPath == "" {
		cfg.Git.LocalPath = DefaultGitLocalPath
	}
	if cfg.Git.Depth == 0 {
		cfg.Git.Depth = DefaultGitDepth
	}
	if cfg.Git.Timeout == 0 {
		cfg.Git.Timeout = DefaultGitTimeout
	}
	if cfg.Git.PollInterval == 0 {
		cfg.Git.PollInterval = DefaultGitPollInterval
	}
	if cfg.Git.Auth.Type == "" {
		cfg.Git.Auth.Type = DefaultGitAuthType
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}
