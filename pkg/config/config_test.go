package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Parser.Duplicates != "keep" {
		t.Errorf("Parser.Duplicates = %q, want keep", cfg.Parser.Duplicates)
	}
	if cfg.Parser.Concurrency != runtime.GOMAXPROCS(0) {
		t.Errorf("Parser.Concurrency = %d, want GOMAXPROCS", cfg.Parser.Concurrency)
	}
	if cfg.Catalog.Driver != "sqlite" || cfg.Catalog.Enabled {
		t.Errorf("Catalog = %+v, want disabled sqlite", cfg.Catalog)
	}
	if diff := cmp.Diff(DefaultWatchExtensions, cfg.Watch.Extensions); diff != "" {
		t.Errorf("Watch.Extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Git.Auth.Type != "none" || cfg.Git.Depth != 1 {
		t.Errorf("Git = %+v", cfg.Git)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}

	// Defaults must not alias the package slice.
	cfg.Watch.Extensions[0] = ".x"
	if DefaultWatchExtensions[0] != ".fun" {
		t.Error("ApplyDefaults aliased DefaultWatchExtensions")
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "libscribe.yaml", `
parser:
  duplicates: warn
  concurrency: 2
resolver:
  marker: html
  link_root: docs/
catalog:
  enabled: true
  driver: memory
  schedule: "0 3 * * *"
  roots: [libs, vendor/libs]
watch:
  debounce: 250ms
git:
  repository: https://example.com/libs.git
  auth:
    type: token
    token: secret
telemetry:
  logging:
    level: debug
    format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Parser.Duplicates != "warn" || cfg.Parser.Concurrency != 2 {
		t.Errorf("Parser = %+v", cfg.Parser)
	}
	if cfg.Resolver.Marker != "html" || cfg.Resolver.LinkRoot != "docs/" {
		t.Errorf("Resolver = %+v", cfg.Resolver)
	}
	if diff := cmp.Diff([]string{"libs", "vendor/libs"}, cfg.Catalog.Roots); diff != "" {
		t.Errorf("Catalog.Roots mismatch (-want +got):\n%s", diff)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}
	if cfg.Git.Branch != DefaultGitBranch {
		t.Errorf("Git.Branch = %q, want default", cfg.Git.Branch)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeFile(t, "libscribe.toml", `
[parser]
duplicates = "last-wins"
max_file_size = 1024

[watch]
debounce = "2s"
extensions = [".fun", ".typ"]

[telemetry.metrics]
enabled = true
textfile_path = "out/libscribe.prom"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Parser.Duplicates != "last-wins" || cfg.Parser.MaxFileSize != 1024 {
		t.Errorf("Parser = %+v", cfg.Parser)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
	if !cfg.Telemetry.Metrics.Enabled || cfg.Telemetry.Metrics.Namespace != "libscribe" {
		t.Errorf("Metrics = %+v", cfg.Telemetry.Metrics)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad yaml", "c.yaml", "parser: [", "failed to parse"},
		{"bad toml", "c.toml", "[parser\n", "failed to parse"},
		{"unknown toml key", "c.toml", "[parser]\ncolour = 1\n", `unknown key "parser.colour"`},
		{"invalid value", "c.yml", "resolver:\n  marker: pdf\n", "resolver.marker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeFile(t, "libscribe.yaml", "parser:\n  duplicates: warn\n")

	t.Setenv("LIBSCRIBE_PARSER_DUPLICATES", "reject")
	t.Setenv("LIBSCRIBE_PARSER_CONCURRENCY", "3")
	t.Setenv("LIBSCRIBE_CATALOG_ENABLED", "true")
	t.Setenv("LIBSCRIBE_CATALOG_ROOTS", "a, b,,c")
	t.Setenv("LIBSCRIBE_WATCH_DEBOUNCE", "1s")
	t.Setenv("LIBSCRIBE_GIT_DEPTH", "not-a-number")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Parser.Duplicates != "reject" || cfg.Parser.Concurrency != 3 {
		t.Errorf("Parser = %+v", cfg.Parser)
	}
	if !cfg.Catalog.Enabled {
		t.Error("Catalog.Enabled = false, want true")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, cfg.Catalog.Roots); diff != "" {
		t.Errorf("Catalog.Roots mismatch (-want +got):\n%s", diff)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Watch.Debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Git.Depth != DefaultGitDepth {
		t.Errorf("unparsable override changed Git.Depth to %d", cfg.Git.Depth)
	}
}

func TestLoadConfigWithEnvOverrides_Invalid(t *testing.T) {
	path := writeFile(t, "libscribe.yaml", "")
	t.Setenv("LIBSCRIBE_CATALOG_DRIVER", "postgres")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Fatalf("error = %v, want override validation failure", err)
	}
}

func TestLoadOptional(t *testing.T) {
	t.Setenv("LIBSCRIBE_RESOLVER_MARKER", "html")

	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadOptional(path)
		if err != nil {
			t.Fatalf("LoadOptional(%q) error = %v", path, err)
		}
		if cfg.Resolver.Marker != "html" {
			t.Errorf("LoadOptional(%q) marker = %q, want env override", path, cfg.Resolver.Marker)
		}
		if cfg.Parser.Duplicates != DefaultDuplicates {
			t.Errorf("LoadOptional(%q) did not apply defaults", path)
		}
	}

	if _, err := LoadOptional(writeFile(t, "bad.yaml", "parser: [")); err == nil {
		t.Error("LoadOptional() ignored a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"duplicates", func(c *Config) { c.Parser.Duplicates = "merge" }, []string{"parser.duplicates"}},
		{"concurrency", func(c *Config) { c.Parser.Concurrency = -1 }, []string{"parser.concurrency"}},
		{"driver", func(c *Config) { c.Catalog.Driver = "bolt" }, []string{"catalog.driver"}},
		{"sqlite needs path", func(c *Config) { c.Catalog.Path = "" }, []string{"catalog.path"}},
		{"memory needs no path", func(c *Config) { c.Catalog.Driver = "memory"; c.Catalog.Path = "" }, nil},
		{"schedule", func(c *Config) { c.Catalog.Schedule = "every day" }, []string{"catalog.schedule", "catalog.roots"}},
		{"extension", func(c *Config) { c.Watch.Extensions = []string{".fun", "typ"} }, []string{"watch.extensions[1]"}},
		{"token auth", func(c *Config) { c.Git.Auth.Type = "token" }, []string{"git.auth.token"}},
		{"ssh auth", func(c *Config) { c.Git.Auth.Type = "ssh" }, []string{"git.auth.ssh_key_path"}},
		{"auth type", func(c *Config) { c.Git.Auth.Type = "basic" }, []string{"git.auth.type"}},
		{"logging", func(c *Config) {
			c.Telemetry.Logging.Level = "trace"
			c.Telemetry.Logging.Format = "xml"
		}, []string{"telemetry.logging.level", "telemetry.logging.format"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			var got []string
			if err != nil {
				var verr ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error %T is not a ValidationError", err)
				}
				for _, fe := range verr.Errors {
					got = append(got, fe.Field)
				}
			}
			if diff := cmp.Diff(tt.fields, got); diff != "" {
				t.Errorf("invalid fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	one := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := one.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("single error = %q", got)
	}

	two := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	got := two.Error()
	if !strings.Contains(got, "with 2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("multi error = %q", got)
	}
}
