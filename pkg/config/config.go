package config

import "time"

// Config is the root configuration for libscribe.
type Config struct {
	// Parser controls declaration parsing and folder loading.
	Parser ParserConfig `yaml:"parser" toml:"parser"`

	// Resolver controls cross-reference rendering.
	Resolver ResolverConfig `yaml:"resolver" toml:"resolver"`

	// Catalog configures the symbol catalog used for cross-library links.
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog"`

	// Watch configures the folder watcher.
	Watch WatchConfig `yaml:"watch" toml:"watch"`

	// Git configures the remote library source.
	Git GitConfig `yaml:"git" toml:"git"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
}

// ParserConfig configures the parser and loader.
type ParserConfig struct {
	// Duplicates is the policy for repeated declaration names.
	// Options: "keep", "warn", "last-wins", "reject"
	// Default: "keep"
	Duplicates string `yaml:"duplicates" toml:"duplicates"`

	// Concurrency bounds the number of files parsed at once.
	// Default: number of CPUs
	Concurrency int `yaml:"concurrency" toml:"concurrency"`

	// MaxFileSize is the largest source file accepted, in bytes.
	// Default: 8388608 (8MB)
	MaxFileSize int64 `yaml:"max_file_size" toml:"max_file_size"`
}

// ResolverConfig configures reference marking.
type ResolverConfig struct {
	// Marker selects the reference form.
	// Options: "token", "html"
	// Default: "token"
	Marker string `yaml:"marker" toml:"marker"`

	// LinkRoot is prefixed to HTML links of the current library.
	LinkRoot string `yaml:"link_root" toml:"link_root"`

	// ExternalRoot is prefixed to HTML links into other libraries; the
	// library name and a slash follow it.
	// Default: "../"
	ExternalRoot string `yaml:"external_root" toml:"external_root"`
}

// CatalogConfig configures the symbol catalog.
type CatalogConfig struct {
	// Enabled turns on external lookups through the catalog.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Driver selects the store.
	// Options: "sqlite3" (cgo), "sqlite" (pure Go), "memory"
	// Default: "sqlite"
	Driver string `yaml:"driver" toml:"driver"`

	// Path is the database file.
	// Default: "data/catalog.db"
	Path string `yaml:"path" toml:"path"`

	// BusyTimeout is the SQLite busy timeout.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout" toml:"busy_timeout"`

	// Schedule is a cron expression for periodic re-indexing. Empty
	// disables the scheduler.
	// Example: "0 3 * * *"
	Schedule string `yaml:"schedule" toml:"schedule"`

	// Roots are the folders searched for libraries when indexing.
	Roots []string `yaml:"roots" toml:"roots"`
}

// WatchConfig configures folder watching.
type WatchConfig struct {
	// Debounce delays rebuilds until changes settle.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`

	// Extensions are the file suffixes that trigger a rebuild.
	// Default: [".fun", ".typ", ".var", ".lby"]
	Extensions []string `yaml:"extensions" toml:"extensions"`
}

// GitConfig configures fetching libraries from a Git repository.
type GitConfig struct {
	// Repository URL (HTTPS or SSH).
	// Example: "https://github.com/company/automation-libs.git"
	Repository string `yaml:"repository" toml:"repository"`

	// Branch to track.
	// Default: "main"
	Branch string `yaml:"branch" toml:"branch"`

	// Path within the repository that holds library folders.
	// Default: "" (repository root)
	Path string `yaml:"path" toml:"path"`

	// LocalPath is where the repository is cloned.
	// Default: "data/sources"
	LocalPath string `yaml:"local_path" toml:"local_path"`

	// Depth for shallow clones (0 = full clone).
	// Default: 1
	Depth int `yaml:"depth" toml:"depth"`

	// Timeout for Git operations.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`

	// PollInterval is the pull interval of "fetch --watch".
	// Default: 5m
	PollInterval time.Duration `yaml:"poll_interval" toml:"poll_interval"`

	// Auth configures Git authentication.
	Auth GitAuthConfig `yaml:"auth" toml:"auth"`
}

// GitAuthConfig configures Git authentication.
type GitAuthConfig struct {
	// Type: "token", "ssh", "none"
	// Default: "none"
	Type string `yaml:"type" toml:"type"`

	// Token for HTTPS authentication.
	// Required when Type is "token".
	Token string `yaml:"token" toml:"token"`

	// SSHKeyPath for SSH authentication.
	// Required when Type is "ssh".
	SSHKeyPath string `yaml:"ssh_key_path" toml:"ssh_key_path"`

	// SSHKeyPassphrase for encrypted SSH keys.
	SSHKeyPassphrase string `yaml:"ssh_key_passphrase" toml:"ssh_key_passphrase"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" toml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format" toml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source" toml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled turns on metrics collection.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "libscribe"
	Namespace string `yaml:"namespace" toml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	Subsystem string `yaml:"subsystem" toml:"subsystem"`

	// TextfilePath is where metrics are written in the node exporter
	// textfile format after a build. Empty disables the export.
	TextfilePath string `yaml:"textfile_path" toml:"textfile_path"`
}
