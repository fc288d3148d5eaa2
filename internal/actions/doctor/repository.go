package doctor

import (
	"errors"
	"fmt"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
	"stacktrain.dev/stacktrain/internal/tui"
)

// checkRepository reports the checked out branch, the trunk and the loaded configuration
func checkRepository(splog *tui.Splog, opts Options, warnings []string, errs []string) ([]string, []string) {
	repo := opts.Environment.Repo
	splog.Info("  ✅ %s", repo.Root())

	branch, err := repo.CurrentBranch()
	switch {
	case errors.Is(err, stackerrors.ErrNotOnBranch):
		warnings = append(warnings, "HEAD is detached; `stacktrain wait` needs a branch argument")
		splog.Warn("  HEAD is detached")
	case err != nil:
		errs = append(errs, fmt.Sprintf("failed to read HEAD: %v", err))
		splog.Error("  failed to read HEAD: %v", err)
	default:
		splog.Info("  ✅ on branch %s", tui.ColorBranch(branch))
	}

	if opts.Config == nil {
		msg := "configuration could not be loaded"
		if opts.ConfigErr != nil {
			msg = fmt.Sprintf("%s: %v", msg, opts.ConfigErr)
		}
		errs = append(errs, msg)
		splog.Error("  %s", msg)
		return warnings, errs
	}

	cfg := opts.Config
	if _, err := repo.BranchTip(cfg.Trunk); err != nil {
		warnings = append(warnings, fmt.Sprintf("trunk branch %s does not exist locally; set it with `stacktrain config set trunk <name>`", cfg.Trunk))
		splog.Warn("  trunk branch %s not found", cfg.Trunk)
	} else {
		splog.Info("  ✅ trunk is %s", tui.ColorBranch(cfg.Trunk))
	}
	splog.Info("  ✅ stack revset %s", tui.ColorCyan(cfg.StackRevset))
	if cfg.MergedRevset == "" {
		splog.Info("  ✅ merged revset disabled")
	} else {
		splog.Info("  ✅ merged revset %s", tui.ColorCyan(cfg.MergedRevset))
	}
	return warnings, errs
}
