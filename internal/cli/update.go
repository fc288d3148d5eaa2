package cli

import (
	"github.com/spf13/cobra"

	"stacktrain.dev/stacktrain/internal/actions"
	"stacktrain.dev/stacktrain/internal/cli/common"
	"stacktrain.dev/stacktrain/internal/runtime"
)

// newUpdateCmd creates the update command
func newUpdateCmd() *cobra.Command {
	var opts actions.UpdateOptions

	cmd := &cobra.Command{
		Use:   "update [revset]",
		Short: "Rewrite the base and train of every pull request in the stack",
		Long: `Rewrite the base branch and train section of every open pull request
whose branch is selected by revset (default: stack()).

Examples:
  stacktrain update
  stacktrain update --dry-run
  stacktrain update 'draft()'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Revset = args[0]
			}
			return common.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.UpdateAction(ctx, opts)
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would change without editing any pull request")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "Stop at the first pull request that fails to update")

	return cmd
}
