package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stacktrain.dev/stacktrain/internal/runtime"
	"stacktrain.dev/stacktrain/internal/train"
	"stacktrain.dev/stacktrain/internal/tui"
)

// UpdateOptions contains options for the update command
type UpdateOptions struct {
	// Revset selects the branches to update; empty means the current stack.
	Revset   string
	DryRun   bool
	FailFast bool
}

// UpdateAction rewrites the base and train annotation of every open pull
// request in the selected branches.
func UpdateAction(ctx *runtime.Context, opts UpdateOptions) ([]train.Decision, error) {
	splog := ctx.Splog
	reconciler := train.NewReconciler(ctx.Graph, ctx.Host, ctx.Config.TrainOptions())

	revset := opts.Revset
	if revset == "" {
		revset = train.DefaultUpdateRevset
	}

	var decisions []train.Decision
	var passErr error
	title := "Updating pull requests"
	if opts.DryRun {
		title = "Planning pull request updates"
	}
	err := tui.RunWithSpinner(ctx.Context, splog, title, "Pull requests checked", func(workCtx context.Context, status func(string)) error {
		var err error
		decisions, err = reconciler.Run(workCtx, train.PassOptions{
			Revset:   revset,
			DryRun:   opts.DryRun,
			FailFast: opts.FailFast,
			OnDecision: func(d train.Decision) {
				status(fmt.Sprintf("%s #%d (%s)", d.Action, d.Number, d.Branch))
			},
		})
		return err
	})
	var pe *train.PassError
	if errors.As(err, &pe) {
		// Rejected edits are reported per branch below.
		passErr = err
	} else if err != nil {
		return decisions, err
	}

	if len(decisions) == 0 {
		splog.Info("No open pull requests in %s.", tui.ColorCyan(revset))
		return decisions, nil
	}

	splog.Newline()
	for _, d := range decisions {
		printDecision(splog, d)
	}
	splog.Newline()
	printUpdateSummary(splog, decisions, opts.DryRun)

	return decisions, passErr
}

func printDecision(splog *tui.Splog, d train.Decision) {
	ref := formatRequest(d.Number, d.Branch)
	switch d.Action {
	case train.ActionSkip:
		splog.Info("  %s %s", ref, tui.ColorDim("is up to date"))
	case train.ActionUpdate:
		verb := "Updated"
		if d.DryRun {
			verb = "Would update"
		}
		var changes []string
		if d.Base != d.OldBase {
			changes = append(changes, fmt.Sprintf("base %s → %s", tui.ColorDim(d.OldBase), tui.ColorBranch(d.Base)))
		}
		changes = append(changes, "train "+formatTrain(d.Members))
		splog.Info("  %s %s: %s", tui.ColorGreen(verb), ref, strings.Join(changes, ", "))
	case train.ActionFailed:
		splog.Error("Failed to update %s: %v", ref, d.Err)
	}
}

func printUpdateSummary(splog *tui.Splog, decisions []train.Decision, dryRun bool) {
	counts := countActions(decisions)
	updated, skipped, failed := counts[train.ActionUpdate], counts[train.ActionSkip], counts[train.ActionFailed]

	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}
	summary := fmt.Sprintf("%s %d %s, %d already up to date.", verb, updated, Pluralize("pull request", updated), skipped)
	if failed > 0 {
		splog.Warn("%s %d failed.", summary, failed)
		return
	}
	splog.Info("%s", summary)
	if dryRun && updated > 0 {
		splog.Tip("Run without --dry-run to apply these changes.")
	}
}
