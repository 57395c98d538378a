// Package config provides configuration management for libscribe.
//
// Configuration is read from a YAML or TOML file (chosen by extension),
// completed with defaults, overridden from the environment and validated.
//
// # Loading
//
//	cfg, err := config.LoadConfig("libscribe.yaml")              // file only
//	cfg, err := config.LoadConfigWithEnvOverrides("libscribe.toml")
//	cfg, err := config.LoadOptional(path)                         // missing file = defaults
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention LIBSCRIBE_SECTION_FIELD:
//
//   - LIBSCRIBE_PARSER_DUPLICATES overrides parser.duplicates
//   - LIBSCRIBE_CATALOG_ROOTS overrides catalog.roots (comma separated)
//   - LIBSCRIBE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	parser:
//	  duplicates: warn
//	  concurrency: 4
//
//	resolver:
//	  marker: html
//
//	catalog:
//	  enabled: true
//	  driver: sqlite
//	  path: data/catalog.db
//	  schedule: "0 3 * * *"
//	  roots: [./libraries]
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
package config
