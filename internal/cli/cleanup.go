package cli

import (
	"github.com/spf13/cobra"

	"stacktrain.dev/stacktrain/internal/actions"
	"stacktrain.dev/stacktrain/internal/cli/common"
	"stacktrain.dev/stacktrain/internal/runtime"
)

// newCleanupCmd creates the cleanup command
func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Hide local branches whose pull requests were merged",
		Long: `Find draft branches that no longer descend from the main branch and,
for each one whose pull request was merged, offer to hide the commits it
does not share with the main branch and delete its branches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.CleanupAction(ctx, actions.CleanupOptions{})
				return err
			})
		},
	}
}
