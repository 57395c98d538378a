package main

import (
	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/catalog"
	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/iec/ast"
)

var searchFlags struct {
	kind      string
	library   string
	limit     int
	libraries bool
	format    string
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Query the symbol catalog",
	Long: `Search the symbol catalog for declarations whose name or description
contains the given text, ignoring case.

Examples:
  # All symbols mentioning "axis"
  libscribe search axis

  # Structures of one library
  libscribe search --kind structure --library AxisLib

  # Indexed libraries
  libscribe search --libraries`,
	Args: cobra.MaximumNArgs(1),
	RunE: searchCatalog,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchFlags.kind, "kind", "k", "", "declaration kind: function, function_block, structure, enumeration, constant")
	searchCmd.Flags().StringVarP(&searchFlags.library, "library", "l", "", "only symbols of this library")
	searchCmd.Flags().IntVarP(&searchFlags.limit, "limit", "n", 50, "maximum number of symbols (0 = no limit)")
	searchCmd.Flags().BoolVar(&searchFlags.libraries, "libraries", false, "list indexed libraries instead of symbols")
	searchCmd.Flags().StringVarP(&searchFlags.format, "format", "f", "text", "output format: text, json, yaml")
}

// searchResult is the output of the search command.
type searchResult struct {
	Libraries []*catalog.LibraryInfo `json:"libraries,omitempty" yaml:"libraries,omitempty"`
	Symbols   []*catalog.Symbol      `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

var searchKinds = map[string]ast.DeclarationKind{
	"":               "",
	"function":       ast.KindFunction,
	"function_block": ast.KindFunctionBlock,
	"structure":      ast.KindStructure,
	"enumeration":    ast.KindEnumeration,
	"constant":       ast.KindConstant,
}

func searchCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kind, ok := searchKinds[searchFlags.kind]
	if !ok {
		return cli.NewConfigError("kind", "unknown declaration kind "+searchFlags.kind)
	}

	store, err := current.openStore()
	if err != nil {
		return cli.NewCommandError("search", cli.ExitUsage, err)
	}
	defer store.Close()

	result := &searchResult{}
	if searchFlags.libraries {
		result.Libraries, err = store.List(ctx)
	} else {
		q := &catalog.Query{Kind: kind, Library: searchFlags.library, Limit: searchFlags.limit}
		if len(args) == 1 {
			q.Text = args[0]
		}
		result.Symbols, err = store.Search(ctx, q)
	}
	if err != nil {
		return cli.NewCommandError("search", cli.ExitUsage, err)
	}

	return output("search", cmd.OutOrStdout(), searchFlags.format, result)
}
