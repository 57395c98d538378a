package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/source/git"
)

var fetchFlags struct {
	watch    bool
	format   string
	history  int
	checkout string
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Clone or update the library repository",
	Long: `Clone the Git repository configured under git, or pull it when a checkout
already exists, and list the library folders it contains.

Every fetched library is rebuilt and linted. When the catalog is enabled,
the libraries are stored in it.

With --watch the command keeps polling the repository every
git.poll_interval and rebuilds the library folders touched by new commits.

--checkout moves the working tree to an earlier commit before the
libraries are listed and rebuilt. It cannot be combined with --watch, since
the next poll would pull the branch head again.

Examples:
  # One-off clone or pull
  libscribe fetch

  # Show the last five commits as well
  libscribe fetch --history 5

  # Rebuild the libraries as they were at an earlier commit
  libscribe fetch --checkout 3f2c9a1e0b7d4c6a8e5f1b2d3c4a5e6f7a8b9c0d

  # Follow the repository
  libscribe fetch --watch`,
	Args: cobra.NoArgs,
	RunE: fetchLibraries,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVarP(&fetchFlags.watch, "watch", "w", false, "keep polling for new commits")
	fetchCmd.Flags().StringVarP(&fetchFlags.format, "format", "f", "text", "output format: text, json, yaml")
	fetchCmd.Flags().IntVar(&fetchFlags.history, "history", 0, "list this many commits reachable from HEAD")
	fetchCmd.Flags().StringVar(&fetchFlags.checkout, "checkout", "", "check out this commit SHA after syncing")
}

// fetchResult is the output of the fetch command.
type fetchResult struct {
	LocalPath string                `json:"local_path" yaml:"local_path"`
	Commit    *git.CommitInfo       `json:"commit,omitempty" yaml:"commit,omitempty"`
	Pull      *git.PullResult       `json:"pull,omitempty" yaml:"pull,omitempty"`
	History   []*git.CommitInfo     `json:"history,omitempty" yaml:"history,omitempty"`
	Metrics   git.RepositoryMetrics `json:"metrics" yaml:"metrics"`
	Libraries []string              `json:"libraries" yaml:"libraries"`
}

func fetchLibraries(cmd *cobra.Command, args []string) error {
	if current.cfg.Git.Repository == "" {
		return cli.NewConfigError("git.repository", "no repository configured")
	}
	if fetchFlags.checkout != "" && fetchFlags.watch {
		return cli.NewCommandError("fetch", cli.ExitUsage, fmt.Errorf("--checkout cannot be combined with --watch"))
	}
	if fetchFlags.history < 0 {
		return cli.NewCommandError("fetch", cli.ExitUsage, fmt.Errorf("--history must not be negative"))
	}

	ctx := cmd.Context()

	repo, err := git.NewRepository(&current.cfg.Git, current.logger.Slog())
	if err != nil {
		return cli.NewConfigError("git", err.Error())
	}

	pull, err := repo.Sync(ctx)
	if err != nil {
		return cli.NewCommandError("fetch", cli.ExitFolder, err)
	}
	if fetchFlags.checkout != "" {
		if err := repo.Rollback(ctx, fetchFlags.checkout); err != nil {
			return cli.NewCommandError("fetch", cli.ExitFolder, err)
		}
	}
	libs, err := repo.ListLibraryFolders()
	if err != nil {
		return cli.NewCommandError("fetch", cli.ExitFolder, err)
	}
	commit, err := repo.GetCurrentCommit()
	if err != nil {
		return cli.NewCommandError("fetch", cli.ExitFolder, err)
	}

	result := &fetchResult{
		LocalPath: repo.GetLocalPath(),
		Commit:    commit,
		Pull:      pull,
		Metrics:   repo.GetMetrics(),
		Libraries: libs,
	}
	if fetchFlags.history > 0 {
		if result.History, err = repo.GetCommitHistory(fetchFlags.history); err != nil {
			return cli.NewCommandError("fetch", cli.ExitFolder, err)
		}
	}
	if err := output("fetch", cmd.OutOrStdout(), fetchFlags.format, result); err != nil {
		return err
	}

	rb, done, err := current.newRebuilder(cmd.ErrOrStderr())
	if err != nil {
		return cli.NewCommandError("fetch", cli.ExitUsage, err)
	}
	defer done()

	if failed := rb.rebuild(ctx, libs); failed > 0 && !fetchFlags.watch {
		return cli.NewCommandError("fetch", cli.ExitFailure,
			fmt.Errorf("%d librar%s failed to build", failed, plural(failed, "y", "ies")))
	}
	if !fetchFlags.watch {
		return nil
	}

	poller := git.NewPoller(repo, current.cfg.Git.PollInterval, func(ctx context.Context, result *git.PullResult) error {
		if failed := rb.rebuild(ctx, result.Libraries); failed > 0 {
			return fmt.Errorf("%d of %d libraries failed to build", failed, len(result.Libraries))
		}
		return nil
	}, current.logger.Slog())
	if err := poller.Start(ctx); err != nil {
		return cli.NewConfigError("git.poll_interval", err.Error())
	}
	<-ctx.Done()
	poller.Stop()

	m := poller.Metrics()
	current.logger.Info("stopped polling",
		"polls", m.Polls,
		"changes", m.Changes,
		"failed_polls", m.FailedPolls)
	return nil
}
