package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/config"
	"libscribe-hq/libscribe/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logFormat string
)

// skipSetup marks commands that run without configuration.
const skipSetup = "skip-setup"

var rootCmd = &cobra.Command{
	Use:   "libscribe",
	Short: "libscribe - B&R automation library reader",
	Long: `libscribe parses the declaration files of B&R automation library folders
(.fun, .typ, .var and the .lby descriptor) into a library model.

It can:
  - Print the model as text, JSON or YAML
  - Validate declarations and report unknown types and constants
  - Link declaration names in free text and type expressions
  - Keep a searchable symbol catalog of many libraries
  - Rebuild libraries when their files or their Git repository change`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits with the code of its error.
// Commands see a context that is cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (.yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json, text, console")
}

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	if verbose {
		logCfg.Level = "debug"
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	current = newApp(cfg, logger)
	return nil
}
