package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for mapforge.

To load completions:

Bash:
  $ source <(mapforge completion bash)
  # To load permanently:
  $ mapforge completion bash > /etc/bash_completion.d/mapforge

Zsh:
  $ mapforge completion zsh > "${fpath[1]}/_mapforge"
  $ compinit

Fish:
  $ mapforge completion fish | source
  # To load permanently:
  $ mapforge completion fish > ~/.config/fish/completions/mapforge.fish

PowerShell:
  PS> mapforge completion powershell | Out-String | Invoke-Expression
  # To load permanently, add to your PowerShell profile
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
