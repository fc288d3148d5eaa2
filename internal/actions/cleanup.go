package actions

import (
	"stacktrain.dev/stacktrain/internal/runtime"
	"stacktrain.dev/stacktrain/internal/train"
	"stacktrain.dev/stacktrain/internal/tui"
)

// CleanupOptions contains options for the cleanup command
type CleanupOptions struct {
	// Prompter confirms each hide. Defaults to a terminal prompt.
	Prompter train.Prompter
}

// CleanupAction offers to hide the local history of every branch that was
// left behind after its pull request merged.
func CleanupAction(ctx *runtime.Context, opts CleanupOptions) ([]train.CleanupEvent, error) {
	splog := ctx.Splog
	prompter := opts.Prompter
	if prompter == nil {
		prompter = tui.TerminalPrompter{}
	}

	cleaner := train.NewCleaner(ctx.Graph, ctx.Host, ctx.Config.TrainOptions())
	events, err := cleaner.Run(ctx.Context, train.CleanupOptions{
		Prompter: prompter,
		Show: func(branch, stack string) {
			splog.Newline()
			splog.Info("%s was merged:", tui.ColorBranch(branch))
			splog.Page(stack)
		},
		OnEvent: func(e train.CleanupEvent) { printCleanupEvent(splog, e) },
	})
	if err != nil {
		return events, err
	}

	if len(events) == 0 {
		splog.Info("No leftover branches to clean up.")
		return events, nil
	}

	hidden := 0
	for _, e := range events {
		if e.Outcome == train.CleanupHidden || e.Outcome == train.CleanupPruned {
			hidden++
		}
	}
	splog.Newline()
	splog.Info("Hid %d of %d leftover %s.", hidden, len(events), Pluralize("branch", len(events)))
	return events, nil
}

func printCleanupEvent(splog *tui.Splog, e train.CleanupEvent) {
	branch := tui.ColorBranch(e.Branch)
	switch e.Outcome {
	case train.CleanupNoRequest:
		splog.Debug("%s has no pull request, keeping it", e.Branch)
	case train.CleanupNotMerged:
		splog.Info("%s is not merged, keeping it.", formatRequest(e.Number, e.Branch))
	case train.CleanupDeclined:
		splog.Info("Kept %s.", branch)
	case train.CleanupNothingToHide:
		splog.Info("%s has no commits outside the main branch.", branch)
	case train.CleanupHidden:
		splog.Info("✅ Hid %s from %s.", branch, tui.ColorDim(e.Commit))
	case train.CleanupPruned:
		splog.Info("✅ Hid %s along with its parent from %s.", branch, tui.ColorDim(e.Commit))
	}
}
