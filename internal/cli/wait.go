package cli

import (
	"github.com/spf13/cobra"

	"stacktrain.dev/stacktrain/internal/actions"
	"stacktrain.dev/stacktrain/internal/cli/common"
	"stacktrain.dev/stacktrain/internal/runtime"
)

// newWaitCmd creates the wait command
func newWaitCmd() *cobra.Command {
	var opts actions.WaitOptions

	cmd := &cobra.Command{
		Use:   "wait [branch]",
		Short: "Wait until GitHub has seen the latest push of a branch",
		Long: `Poll GitHub until the pull request for branch (default: the current
branch) reports the branch's local tip as its head commit.

Run it between a push and an update so the update sees the new history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Branch = args[0]
			}
			return common.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.WaitAction(ctx, opts)
				return err
			})
		},
	}

	cmd.Flags().IntVar(&opts.MaxAttempts, "max-attempts", 0, "Give up after this many attempts (default from config)")

	return cmd
}
