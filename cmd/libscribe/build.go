package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/iec/ast"
	iecerrors "libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/library"
)

var buildFlags struct {
	format      string
	metricsFile string
}

var buildCmd = &cobra.Command{
	Use:   "build <library-folder>",
	Short: "Build the model of a library folder",
	Long: `Load a library folder and print its model.

The folder must contain exactly one .fun file. Every .typ and .var file
below it is parsed as well, and the .lby descriptor, when present,
supplies name, version and dependencies.

Malformed entries in .typ and .var files are skipped and reported as
warnings. The command exits with code 4 when any file failed to parse.

Examples:
  # Text summary
  libscribe build Libraries/AxisLib

  # Full model as JSON
  libscribe build Libraries/AxisLib --format json

  # Also write Prometheus metrics for the node exporter
  libscribe build Libraries/AxisLib --metrics-file /var/lib/node_exporter/libscribe.prom`,
	Args: cobra.ExactArgs(1),
	RunE: buildLibrary,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFlags.format, "format", "f", "text", "output format: text, json, yaml")
	buildCmd.Flags().StringVar(&buildFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

// buildResult is the output of the build command.
type buildResult struct {
	Library  *ast.Library       `json:"library" yaml:"library"`
	Report   *library.Report    `json:"report" yaml:"report"`
	Findings []*iecerrors.Error `json:"findings,omitempty" yaml:"findings,omitempty"`
}

func buildLibrary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	collector := current.newCollector(buildFlags.metricsFile)
	loader, err := current.newLoader(collector)
	if err != nil {
		return err
	}

	lib, report, err := loader.Load(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("build", cli.ExitFolder, err)
	}
	current.logger.Info("library built",
		"library", lib.Name,
		"build_id", report.BuildID.String(),
		"duration", report.Duration.Round(time.Microsecond))

	result := &buildResult{Library: lib, Report: report, Findings: report.Warnings.Errors}
	if err := output("build", cmd.OutOrStdout(), buildFlags.format, result); err != nil {
		return err
	}
	if err := current.flushMetrics("build", collector, buildFlags.metricsFile); err != nil {
		return err
	}
	if report.HasFailures() {
		return cli.NewCommandError("build", cli.ExitFailure,
			fmt.Errorf("%s: %d file error(s)", lib.Name, len(report.Warnings.BySeverity(iecerrors.SeverityError))))
	}
	return nil
}
