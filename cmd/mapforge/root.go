package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mapforge",
	Short: "Strata - VMF level importer for scene hosts",
	Long: `Strata imports Valve-style VMF level sources into a typed document tree
and an assembled scene delivered through host-engine interfaces.

The mapforge CLI drives the pipeline end to end:
  - One-shot and batch imports with scene JSON export
  - Map inspection and canonical VMF round-tripping
  - Opt-in lint checks beyond what the parser enforces
  - Watch mode with debounced re-import and scheduled rescans
  - An import journal with a query surface

For more information, visit: https://github.com/mapforge/strata`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
