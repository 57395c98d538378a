package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/iec/resolver"
)

var resolveFlags struct {
	typeExpr    string
	text        string
	marker      string
	linkRoot    string
	metricsFile string
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <library-folder>",
	Short: "Link declaration names in text or a type expression",
	Long: `Load a library folder and mark every reference to one of its
declarations in a type expression or free text.

References are marked as [[kind:Name]] tokens by default, or as HTML
anchors into a help tree with --marker html. Already marked references
are left untouched, so resolving twice gives the same result. When the
catalog is enabled, names declared by indexed libraries are linked too.

Text is read from standard input when neither --type nor --text is given.

Examples:
  # Type expression
  libscribe resolve Libraries/AxisLib --type "ARRAY[0..MAX_AXES] OF AxisCfg_typ"

  # Free text as HTML
  echo "Fill AxisCfg_typ before calling MC_Power." | \
    libscribe resolve Libraries/AxisLib --marker html --link-root ../`,
	Args: cobra.ExactArgs(1),
	RunE: resolveNames,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveFlags.typeExpr, "type", "t", "", "type expression to resolve")
	resolveCmd.Flags().StringVar(&resolveFlags.text, "text", "", "free text to resolve")
	resolveCmd.Flags().StringVarP(&resolveFlags.marker, "marker", "m", "", "reference form: token, html (default from config)")
	resolveCmd.Flags().StringVar(&resolveFlags.linkRoot, "link-root", "", "prefix for HTML links into this library")
	resolveCmd.Flags().StringVar(&resolveFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	resolveCmd.MarkFlagsMutuallyExclusive("type", "text")
}

func resolveNames(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	markerName := resolveFlags.marker
	if markerName == "" {
		markerName = current.cfg.Resolver.Marker
	}
	marker, err := current.newMarker(markerName, resolveFlags.linkRoot)
	if err != nil {
		return err
	}

	mode, input := "text", resolveFlags.text
	switch {
	case resolveFlags.typeExpr != "":
		mode, input = "type", resolveFlags.typeExpr
	case input == "":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.NewCommandError("resolve", cli.ExitUsage, fmt.Errorf("failed to read input: %w", err))
		}
		input = string(data)
	}

	collector := current.newCollector(resolveFlags.metricsFile)
	loader, err := current.newLoader(collector)
	if err != nil {
		return err
	}
	lib, _, err := loader.Load(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("resolve", cli.ExitFolder, err)
	}

	opts := []resolver.Option{resolver.WithMarker(marker)}
	linker, closeStore, err := current.linker(ctx, lib)
	if err != nil {
		return cli.NewCommandError("resolve", cli.ExitUsage, err)
	}
	defer closeStore()
	if linker != nil {
		opts = append(opts, resolver.WithExternal(linker))
	}

	r, err := resolver.New(lib, opts...)
	if err != nil {
		return cli.NewCommandError("resolve", cli.ExitFailure, err)
	}

	start := time.Now()
	var resolved string
	if mode == "type" {
		resolved = r.ResolveType(input)
	} else {
		resolved = r.ResolveText(input)
	}
	collector.RecordResolve(mode, time.Since(start))

	out := cmd.OutOrStdout()
	if _, err := io.WriteString(out, resolved); err != nil {
		return cli.NewCommandError("resolve", cli.ExitOutput, err)
	}
	if !strings.HasSuffix(resolved, "\n") {
		fmt.Fprintln(out)
	}
	return current.flushMetrics("resolve", collector, resolveFlags.metricsFile)
}
