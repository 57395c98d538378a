package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"libscribe-hq/libscribe/pkg/cli"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Print a completion script for the given shell to stdout.

  source <(libscribe completion bash)
  libscribe completion zsh > "${fpath[1]}/_libscribe"
  libscribe completion fish > ~/.config/fish/completions/libscribe.fish
  libscribe completion powershell | Out-String | Invoke-Expression`,
	ValidArgs:   []string{"bash", "zsh", "fish", "powershell"},
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, ok := completionGenerators[args[0]]
		if !ok {
			return cli.NewConfigError("shell", fmt.Sprintf("unsupported shell %q", args[0]))
		}
		return gen(cmd.OutOrStdout())
	},
}

var completionGenerators = map[string]func(io.Writer) error{
	"bash":       rootCmd.GenBashCompletion,
	"zsh":        rootCmd.GenZshCompletion,
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": rootCmd.GenPowerShellCompletion,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}
