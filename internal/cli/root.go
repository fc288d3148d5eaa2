// Package cli wires stacktrain's commands into a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"stacktrain.dev/stacktrain/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stacktrain",
		Short: "Keep the pull requests of a git-branchless stack in sync",
		Long: `Stacktrain keeps the pull requests of a git-branchless stack in sync.

Every pull request in a stack gets a base branch matching its parent and a
"Train" section listing the other pull requests of the stack, so reviewers
can move between them.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			tui.InitColorProfile()
		},
	}

	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newWaitCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
