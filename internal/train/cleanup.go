package train

import (
	"context"
	"fmt"
)

// Prompter asks the operator for confirmation.
type Prompter interface {
	Confirm(prompt string, defaultValue bool) (bool, error)
}

// CleanupOutcome describes what happened to a leftover branch.
type CleanupOutcome int

const (
	// CleanupNoRequest means the branch never had a pull request.
	CleanupNoRequest CleanupOutcome = iota
	// CleanupNotMerged means the branch's pull request is not merged.
	CleanupNotMerged
	// CleanupDeclined means the operator chose to keep the branch.
	CleanupDeclined
	// CleanupNothingToHide means no commit diverges from the main branch.
	CleanupNothingToHide
	// CleanupHidden means the branch's diverging history was hidden.
	CleanupHidden
	// CleanupPruned means the branch went away when an earlier branch it
	// descends from was hidden.
	CleanupPruned
)

func (o CleanupOutcome) String() string {
	switch o {
	case CleanupNoRequest:
		return "no pull request"
	case CleanupNotMerged:
		return "not merged"
	case CleanupDeclined:
		return "kept"
	case CleanupNothingToHide:
		return "nothing to hide"
	case CleanupHidden:
		return "hidden"
	case CleanupPruned:
		return "hidden with its parent"
	default:
		return "unknown"
	}
}

// CleanupEvent reports the outcome for one leftover branch.
type CleanupEvent struct {
	Branch  string
	Number  int
	Outcome CleanupOutcome
	// Commit is the prune root when Outcome is CleanupHidden or
	// CleanupPruned.
	Commit string
}

// CleanupOptions wires the interactive parts of a cleanup pass.
type CleanupOptions struct {
	Prompter Prompter
	// Show displays the local stack of a branch before asking to hide it.
	Show func(branch, stack string)
	// OnEvent, if set, is called once per leftover branch.
	OnEvent func(CleanupEvent)
}

// Cleaner prunes local history of branches whose requests were merged.
type Cleaner struct {
	graph Graph
	host  Host
	opts  Options
}

// NewCleaner creates a Cleaner.
func NewCleaner(graph Graph, host Host, opts Options) *Cleaner {
	return &Cleaner{graph: graph, host: host, opts: opts.withDefaults()}
}

// Run walks every draft branch no longer connected to the main branch and,
// after confirmation, hides the history it does not share with the main
// branch. It only reads from the request host.
func (c *Cleaner) Run(ctx context.Context, opts CleanupOptions) ([]CleanupEvent, error) {
	if opts.Prompter == nil {
		return nil, fmt.Errorf("cleanup requires a prompter")
	}

	branches, err := c.graph.QueryBranches(ctx, LeftoverRevset)
	if err != nil {
		return nil, fmt.Errorf("failed to query leftover branches: %w", err)
	}

	var events []CleanupEvent
	emit := func(e CleanupEvent) {
		events = append(events, e)
		if opts.OnEvent != nil {
			opts.OnEvent(e)
		}
	}

	// Hiding a branch also prunes its descendants, which may still be
	// waiting further down the list.
	prunedBy := make(map[string]string)

	for _, branch := range branches {
		if root, ok := prunedBy[branch]; ok {
			emit(CleanupEvent{Branch: branch, Outcome: CleanupPruned, Commit: root})
			continue
		}

		req, err := c.host.GetRequestByBranch(ctx, branch)
		if err != nil {
			return events, fmt.Errorf("failed to get pull request for %s: %w", branch, err)
		}
		if req == nil {
			emit(CleanupEvent{Branch: branch, Outcome: CleanupNoRequest})
			continue
		}
		if !IsMerged(req, c.opts.MergedTitlePrefix) {
			emit(CleanupEvent{Branch: branch, Number: req.Number, Outcome: CleanupNotMerged})
			continue
		}

		stack, err := c.graph.ShowStack(ctx, branch)
		if err != nil {
			return events, fmt.Errorf("failed to show stack for %s: %w", branch, err)
		}
		if opts.Show != nil {
			opts.Show(branch, stack)
		}

		confirmed, err := opts.Prompter.Confirm(fmt.Sprintf("Hide %q?", branch), true)
		if err != nil {
			return events, err
		}
		if !confirmed {
			emit(CleanupEvent{Branch: branch, Number: req.Number, Outcome: CleanupDeclined})
			continue
		}

		commits, err := c.graph.QueryCommits(ctx, DivergingRevset(branch))
		if err != nil {
			return events, fmt.Errorf("failed to query diverging commits for %s: %w", branch, err)
		}
		if len(commits) == 0 {
			emit(CleanupEvent{Branch: branch, Number: req.Number, Outcome: CleanupNothingToHide})
			continue
		}

		root := commits[0]
		if err := c.graph.HideAndPrune(ctx, root); err != nil {
			return events, fmt.Errorf("failed to hide %s: %w", branch, err)
		}
		emit(CleanupEvent{Branch: branch, Number: req.Number, Outcome: CleanupHidden, Commit: root})

		remaining, err := c.graph.QueryBranches(ctx, LeftoverRevset)
		if err != nil {
			return events, fmt.Errorf("failed to query leftover branches: %w", err)
		}
		present := make(map[string]bool, len(remaining))
		for _, b := range remaining {
			present[b] = true
		}
		for _, b := range branches {
			if _, seen := prunedBy[b]; !seen && b != branch && !present[b] {
				prunedBy[b] = root
			}
		}
	}

	return events, nil
}
