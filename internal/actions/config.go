package actions

import (
	"fmt"
	"strings"

	"stacktrain.dev/stacktrain/internal/config"
	"stacktrain.dev/stacktrain/internal/tui"
)

// ConfigListAction prints the resolved configuration
func ConfigListAction(splog *tui.Splog, cfg *config.Config, repoRoot string) error {
	mergedRevset := cfg.MergedRevset
	if mergedRevset == "" {
		mergedRevset = tui.ColorDim("(disabled)")
	}

	lines := []string{
		fmt.Sprintf("%s: %s", tui.ColorCyan("trunk"), cfg.Trunk),
		fmt.Sprintf("%s: %s", tui.ColorCyan("stackRevset"), cfg.StackRevset),
		fmt.Sprintf("%s: %s", tui.ColorCyan("mergedRevset"), mergedRevset),
		fmt.Sprintf("%s: %q", tui.ColorCyan("mergedTitlePrefix"), cfg.MergedTitlePrefix),
		fmt.Sprintf("%s: %d", tui.ColorCyan("wait.maxAttempts"), cfg.WaitMaxAttempts),
		fmt.Sprintf("%s: %d", tui.ColorCyan("wait.maxIntervalSeconds"), int(cfg.WaitMaxInterval.Seconds())),
	}
	splog.Page(strings.Join(lines, "\n"))
	splog.Newline()

	if userPath, err := config.UserConfigPath(); err == nil {
		splog.Debug("user config: %s", userPath)
	}
	if repoRoot != "" {
		splog.Debug("repository config: %s", config.RepoConfigPath(repoRoot))
	}
	return nil
}

// ConfigSetAction stores a single repository setting
func ConfigSetAction(splog *tui.Splog, repoRoot, key, value string) error {
	if err := config.SetRepoValue(repoRoot, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	splog.Info("Set %s to %q.", tui.ColorCyan(key), value)
	return nil
}
