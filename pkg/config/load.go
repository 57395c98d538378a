package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "LIBSCRIBE_"

// LoadConfig loads configuration from a YAML or TOML file. The format is
// chosen by extension: ".toml" is TOML, anything else YAML. Defaults are
// applied and the result validated. Environment variables are not read;
// use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse configuration file %q: unknown key %q", path, undecoded[0].String())
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a file and applies
// LIBSCRIBE_SECTION_FIELD environment overrides, which always win over the
// file.
//
// The loading sequence is:
// 1. Load YAML or TOML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// LoadOptional behaves like LoadConfigWithEnvOverrides but starts from the
// defaults when path is empty or the file does not exist.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format LIBSCRIBE_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Parser overrides
	envString("PARSER_DUPLICATES", &cfg.Parser.Duplicates)
	envInt("PARSER_CONCURRENCY", &cfg.Parser.Concurrency)
	envInt64("PARSER_MAX_FILE_SIZE", &cfg.Parser.MaxFileSize)

	// Resolver overrides
	envString("RESOLVER_MARKER", &cfg.Resolver.Marker)
	envString("RESOLVER_LINK_ROOT", &cfg.Resolver.LinkRoot)
	envString("RESOLVER_EXTERNAL_ROOT", &cfg.Resolver.ExternalRoot)

	// Catalog overrides
	envBool("CATALOG_ENABLED", &cfg.Catalog.Enabled)
	envString("CATALOG_DRIVER", &cfg.Catalog.Driver)
	envString("CATALOG_PATH", &cfg.Catalog.Path)
	envDuration("CATALOG_BUSY_TIMEOUT", &cfg.Catalog.BusyTimeout)
	envString("CATALOG_SCHEDULE", &cfg.Catalog.Schedule)
	envList("CATALOG_ROOTS", &cfg.Catalog.Roots)

	// Watch overrides
	envDuration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	envList("WATCH_EXTENSIONS", &cfg.Watch.Extensions)

	// Git overrides
	envString("GIT_REPOSITORY", &cfg.Git.Repository)
	envString("GIT_BRANCH", &cfg.Git.Branch)
	envString("GIT_PATH", &cfg.Git.Path)
	envString("GIT_LOCAL_PATH", &cfg.Git.LocalPath)
	envInt("GIT_DEPTH", &cfg.Git.Depth)
	envDuration("GIT_TIMEOUT", &cfg.Git.Timeout)
	envDuration("GIT_POLL_INTERVAL", &cfg.Git.PollInterval)
	envString("GIT_AUTH_TYPE", &cfg.Git.Auth.Type)
	envString("GIT_AUTH_TOKEN", &cfg.Git.Auth.Token)
	envString("GIT_AUTH_SSH_KEY_PATH", &cfg.Git.Auth.SSHKeyPath)
	envString("GIT_AUTH_SSH_KEY_PASSPHRASE", &cfg.Git.Auth.SSHKeyPassphrase)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	envString("TELEMETRY_METRICS_SUBSYSTEM", &cfg.Telemetry.Metrics.Subsystem)
	envString("TELEMETRY_METRICS_TEXTFILE_PATH", &cfg.Telemetry.Metrics.TextfilePath)
}

func envString(key string, dst *string) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		*dst = val
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envInt64(key string, dst *int64) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			*dst = i
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

// envList reads a comma separated list. Empty items are dropped.
func envList(key string, dst *[]string) {
	val := os.Getenv(EnvPrefix + key)
	if val == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
