package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stacktrain.dev/stacktrain/internal/actions"
	"stacktrain.dev/stacktrain/internal/config"
	"stacktrain.dev/stacktrain/internal/git"
	"stacktrain.dev/stacktrain/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and set stacktrain configuration",
		Long: `Show and set stacktrain configuration.

Settings resolve from built-in defaults, then the user config
(~/.config/stacktrain/config.yaml), then the repository config.

Examples:
  stacktrain config list
  stacktrain config set trunk master
  stacktrain config set mergedRevset ''`,
	}

	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// newConfigListCmd creates the config list command
func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			repoRoot, err := git.GetRepoRoot()
			if err != nil {
				return err
			}
			cfg, err := config.Load(repoRoot)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			splog := runtime.NewSplog()
			defer func() { _ = splog.Close() }()
			return actions.ConfigListAction(splog, cfg, repoRoot)
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a repository configuration value",
		Long: fmt.Sprintf(`Set a repository configuration value.

Keys: %s`, strings.Join(config.Keys, ", ")),
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			repoRoot, err := git.GetRepoRoot()
			if err != nil {
				return err
			}

			splog := runtime.NewSplog()
			defer func() { _ = splog.Close() }()
			return actions.ConfigSetAction(splog, repoRoot, args[0], args[1])
		},
	}
}
