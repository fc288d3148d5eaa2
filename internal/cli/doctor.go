package cli

import (
	"github.com/spf13/cobra"

	"stacktrain.dev/stacktrain/internal/actions/doctor"
	"stacktrain.dev/stacktrain/internal/config"
	"stacktrain.dev/stacktrain/internal/runtime"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues with your stacktrain setup",
		Long: `Run diagnostic checks on your stacktrain environment and repository.

The doctor command checks:
  - Environment: git, git-branchless, GitHub credentials and the origin remote
  - Repository: the checked out branch, the trunk branch and configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := runtime.NewSplog()
			defer func() { _ = splog.Close() }()

			env, err := runtime.Inspect(cmd.Context())
			if err != nil {
				return err
			}
			cfg, cfgErr := config.Load(env.Repo.Root())

			return doctor.Action(splog, doctor.Options{
				Environment: env,
				Config:      cfg,
				ConfigErr:   cfgErr,
			})
		},
	}
}
