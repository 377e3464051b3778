package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sweepsafe
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweepsafe",
		Short: "Read-only analyzer that suggests which files are safe to delete",
		Long: `Sweepsafe walks a directory tree without modifying it and sorts every
file into one of three categories:

  LikelySafe   temporary/cache files and files untouched for a year
  BeCareful    large files dormant for six months, older duplicate copies
  DoNotDelete  everything with recent activity

Nothing is ever moved or deleted; the output is a report you act on yourself.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewAnalyzeCommand())
	cmd.AddCommand(NewRulesCommand())

	return cmd
}
