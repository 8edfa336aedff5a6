// Package cli provides the Cobra command structure for mdsplice.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsplice/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdsplice command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdsplice",
		Short: "Source-to-source Markdown rewriting with source maps",
		Long: `mdsplice rewrites Markdown documents by running a pipeline of visitors
over their syntax tree. Each visitor can replace, insert or delete text and
report diagnostics; the tree is refreshed after every edit.

Every rewritten byte keeps track of where it came from, so diagnostics are
reported against the original file and rewritten files can carry
standard source maps back to their input.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRewriteCommand())
	rootCmd.AddCommand(newVisitorsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter().ApplyToCommand(rootCmd)

	return rootCmd
}
