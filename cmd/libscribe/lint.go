package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/cli"
	iecerrors "libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/telemetry/logging"
)

var lintFlags struct {
	strict      bool
	format      string
	metricsFile string
}

var lintCmd = &cobra.Command{
	Use:   "lint <library-folder>...",
	Short: "Validate library folders",
	Long: `Load library folders and validate their declarations.

Parser findings are combined with two validation passes:
  - Structural: duplicate names, empty structures and enumerations
  - Semantic: unknown types, unknown constants in bounds, bad defaults

When the catalog is enabled, names declared by indexed libraries count as
known. The command exits with code 4 when any error is found.

Examples:
  # Lint one library
  libscribe lint Libraries/AxisLib

  # Strict mode (warnings as errors)
  libscribe lint Libraries/AxisLib Libraries/BaseLib --strict

  # JSON output for CI
  libscribe lint Libraries/AxisLib --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: lintLibraries,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVarP(&lintFlags.format, "format", "f", "text", "output format: text, json, yaml")
	lintCmd.Flags().StringVar(&lintFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

// lintResult is the validation result for one library folder.
type lintResult struct {
	Library  string             `json:"library" yaml:"library"`
	Root     string             `json:"root" yaml:"root"`
	Valid    bool               `json:"valid" yaml:"valid"`
	Errors   int                `json:"errors" yaml:"errors"`
	Warnings int                `json:"warnings" yaml:"warnings"`
	Findings []*iecerrors.Error `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// lintReport is the output of the lint command.
type lintReport struct {
	Results  []*lintResult `json:"results" yaml:"results"`
	Errors   int           `json:"errors" yaml:"errors"`
	Warnings int           `json:"warnings" yaml:"warnings"`
	Strict   bool          `json:"strict" yaml:"strict"`
}

func lintLibraries(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	collector := current.newCollector(lintFlags.metricsFile)
	loader, err := current.newLoader(collector)
	if err != nil {
		return err
	}

	report := &lintReport{Strict: lintFlags.strict}
	for _, dir := range args {
		lib, buildReport, err := loader.Load(ctx, dir)
		if err != nil {
			return cli.NewCommandError("lint", cli.ExitFolder, err)
		}

		linker, closeStore, err := current.linker(ctx, lib)
		if err != nil {
			return cli.NewCommandError("lint", cli.ExitUsage, err)
		}
		findings := iecerrors.NewErrorList()
		findings.Merge(buildReport.Warnings)
		findings.Merge(newValidator(linker).Validate(lib))
		closeStore()

		res := &lintResult{
			Library:  lib.Name,
			Root:     buildReport.Root,
			Errors:   len(findings.BySeverity(iecerrors.SeverityError)),
			Warnings: len(findings.BySeverity(iecerrors.SeverityWarning)),
			Findings: findings.Errors,
		}
		res.Valid = res.Errors == 0 && (!lintFlags.strict || res.Warnings == 0)
		report.Results = append(report.Results, res)
		report.Errors += res.Errors
		report.Warnings += res.Warnings

		collector.RecordLint(lib.Name, findings.Count(), !res.Valid)
		current.logger.DebugContext(logging.WithLibrary(ctx, lib.Name), "library linted",
			"errors", res.Errors,
			"warnings", res.Warnings)
	}

	if err := output("lint", cmd.OutOrStdout(), lintFlags.format, report); err != nil {
		return err
	}
	if err := current.flushMetrics("lint", collector, lintFlags.metricsFile); err != nil {
		return err
	}

	if report.Errors > 0 {
		return cli.NewCommandError("lint", cli.ExitFailure, fmt.Errorf("validation failed: %d error(s)", report.Errors))
	}
	if lintFlags.strict && report.Warnings > 0 {
		return cli.NewCommandError("lint", cli.ExitFailure, fmt.Errorf("validation failed: %d warning(s) in strict mode", report.Warnings))
	}
	return nil
}
