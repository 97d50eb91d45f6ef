// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repo-stats <owner/name>",
	Short: "A CLI tool to print aggregate statistics for a GitHub repository.",
	Long: `repo-stats queries the GitHub API for a single repository and prints
its basic metadata, the languages it uses, its contributor count, commits
per ISO week and an approximate line-of-code total.

Set GITHUB_TOKEN (or put it in a .env file) to use authenticated rate limits.`,
	Example: `  repo-stats golang/go
  repo-stats --all-ext -v tensorflow/tensorflow`,
	Args:          cobra.ExactArgs(1),
	RunE:          runStats,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a TOML or YAML config file")
	rootCmd.Flags().Bool("all-ext", false, "Count lines in every file (ignore the extension filter)")
}
