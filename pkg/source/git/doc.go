// Package git fetches library folders from a Git repository.
//
// A Repository clones the configured branch, pulls updates and maps the
// changed files of each pull to the library folders that contain them, so
// only those libraries are rebuilt or re-indexed:
//
//	repo, err := git.NewRepository(&cfg.Git, logger)
//	if err != nil {
//		return err
//	}
//	result, err := repo.Sync(ctx)
//	if err != nil {
//		return err
//	}
//	for _, dir := range result.Libraries {
//		indexer.Index(ctx, dir)
//	}
//
// A Poller repeats the pull on an interval. Authentication supports HTTPS
// tokens, SSH keys and anonymous access.
package git
