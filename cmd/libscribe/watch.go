package main

import (
	"context"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/catalog"
	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/watch"
)

var watchFlags struct {
	initial bool
}

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Rebuild libraries when their files change",
	Long: `Watch a directory tree and rebuild and lint every library folder whose
declaration or descriptor files change. Changes are debounced so that a
save touching several files triggers one rebuild.

When the catalog is enabled, rebuilt libraries are stored in it.

Examples:
  # Watch the current directory
  libscribe watch

  # Watch a library tree without the initial build
  libscribe watch Libraries/ --initial=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: watchLibraries,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlags.initial, "initial", true, "build all libraries before watching")
}

func watchLibraries(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	ctx := cmd.Context()

	rb, done, err := current.newRebuilder(cmd.OutOrStdout())
	if err != nil {
		return cli.NewCommandError("watch", cli.ExitUsage, err)
	}
	defer done()

	if watchFlags.initial {
		dirs, err := catalog.FindLibraries(root)
		if err != nil {
			return cli.NewCommandError("watch", cli.ExitFolder, err)
		}
		rb.rebuild(ctx, dirs)
	}

	w, err := watch.New(&watch.Config{
		Root:       root,
		Debounce:   current.cfg.Watch.Debounce,
		Extensions: current.cfg.Watch.Extensions,
		SkipHidden: true,
	}, current.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", cli.ExitUsage, err)
	}
	defer w.Stop()

	err = w.Watch(ctx, func(ctx context.Context, changed []string) error {
		libs := watch.AffectedLibraries(root, changed)
		if len(libs) == 0 {
			current.logger.Debug("changes outside library folders", "files", len(changed))
			return nil
		}
		rb.rebuild(ctx, libs)
		return nil
	})
	if err != nil {
		return cli.NewCommandError("watch", cli.ExitFolder, err)
	}
	return nil
}
