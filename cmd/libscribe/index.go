package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/catalog"
	"libscribe-hq/libscribe/pkg/cli"
)

var indexFlags struct {
	schedule    string
	quiet       bool
	metricsFile string
}

var indexCmd = &cobra.Command{
	Use:   "index [root]...",
	Short: "Store libraries in the symbol catalog",
	Long: `Find every library folder below the given roots, load it and store its
declarations in the symbol catalog. Roots default to catalog.roots from
the configuration.

With --schedule the command keeps running and re-indexes the roots on the
given cron schedule until interrupted.

Examples:
  # Index once
  libscribe index Libraries/ Vendor/

  # Re-index every night at 3 AM
  libscribe index --schedule "0 3 * * *"`,
	RunE: indexLibraries,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&indexFlags.schedule, "schedule", "", "cron schedule for periodic re-indexing (default from config)")
	indexCmd.Flags().BoolVarP(&indexFlags.quiet, "quiet", "q", false, "do not show progress")
	indexCmd.Flags().StringVar(&indexFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

func indexLibraries(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	roots := args
	if len(roots) == 0 {
		roots = current.cfg.Catalog.Roots
	}
	if len(roots) == 0 {
		return cli.NewConfigError("catalog.roots", "no library roots given")
	}
	schedule := indexFlags.schedule
	if schedule == "" {
		schedule = current.cfg.Catalog.Schedule
	}

	store, err := current.openStore()
	if err != nil {
		return cli.NewCommandError("index", cli.ExitUsage, err)
	}
	defer store.Close()

	collector := current.newCollector(indexFlags.metricsFile)
	loader, err := current.newLoader(collector)
	if err != nil {
		return err
	}
	indexer := catalog.NewIndexer(store, loader, current.logger.Slog())

	var dirs []string
	for _, root := range roots {
		found, err := catalog.FindLibraries(root)
		if err != nil {
			return cli.NewCommandError("index", cli.ExitFolder, err)
		}
		dirs = append(dirs, found...)
	}

	var progress *cli.Progress
	if !indexFlags.quiet {
		progress = cli.NewProgress(cmd.ErrOrStderr(), "libraries")
		progress.Start(len(dirs))
	}
	start := time.Now()
	failed := 0
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(dir)
		if _, _, err := indexer.Index(ctx, dir); err != nil {
			failed++
			current.logger.Warn("library not indexed", "path", dir, "error", err)
			if progress != nil {
				progress.Fail(name, err)
			}
			continue
		}
		if progress != nil {
			progress.Advance(name)
		}
	}
	if progress != nil {
		progress.Finish()
	}
	collector.RecordIndex(len(dirs)-failed, failed, time.Since(start))
	if err := current.flushMetrics("index", collector, indexFlags.metricsFile); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d of %d librar%s into %s\n",
		len(dirs)-failed, len(dirs), plural(len(dirs), "y", "ies"), current.cfg.Catalog.Path)

	if schedule == "" {
		if failed > 0 {
			return cli.NewCommandError("index", cli.ExitFailure, fmt.Errorf("%d librar%s failed", failed, plural(failed, "y", "ies")))
		}
		return nil
	}

	scheduler := catalog.NewScheduler(indexer, roots, schedule, current.logger.Slog())
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewConfigError("catalog.schedule", err.Error())
	}
	if next := scheduler.NextRun(); next != nil {
		current.logger.Info("waiting for next indexing run", "next_run", next.Format(time.RFC3339))
	}
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
