/*
Package cli provides helpers shared by the libscribe commands.

Output Formatting:

Results are printed as styled text, JSON or YAML:

	format, err := cli.ParseFormat(flagFormat)
	formatter := cli.NewFormatter(format, cli.NewStyles(os.Stdout))
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return cli.NewCommandError("build", cli.ExitOutput, err)
	}

Text output goes through the Texter interface when a result implements
it. Styles drop color when stdout is not a terminal.

Exit Codes:

Commands return CommandError values carrying the exit code; ExitCode maps
any error to the code the process exits with.

Progress Reporting:

	progress := cli.NewProgress(os.Stderr, "libraries")
	progress.Start(len(dirs))
	for _, dir := range dirs {
		progress.Advance(filepath.Base(dir))
	}
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
