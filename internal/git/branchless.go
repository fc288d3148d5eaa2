package git

import (
	"context"
	"fmt"
	"strings"

	"stacktrain.dev/stacktrain/internal/train"
)

// Branchless answers commit graph questions through git-branchless.
type Branchless struct {
	runner Runner
}

var _ train.Graph = (*Branchless)(nil)

// NewBranchless creates a graph backed by the git-branchless CLI.
func NewBranchless(runner Runner) *Branchless {
	return &Branchless{runner: runner}
}

// QueryBranches returns the branches matching revset, one per line of
// `git branchless query --branches`.
func (b *Branchless) QueryBranches(ctx context.Context, revset string) ([]string, error) {
	out, err := b.runner.Run(ctx, "branchless", "query", "--branches", revset)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches %q: %w", revset, err)
	}
	return Lines(out), nil
}

// QueryCommits returns the commit ids matching revset.
func (b *Branchless) QueryCommits(ctx context.Context, revset string) ([]string, error) {
	out, err := b.runner.Run(ctx, "branchless", "query", "--raw", revset)
	if err != nil {
		return nil, fmt.Errorf("failed to query commits %q: %w", revset, err)
	}
	return Lines(out), nil
}

// HideAndPrune hides commit and its descendants and deletes their branches.
func (b *Branchless) HideAndPrune(ctx context.Context, commit string) error {
	if _, err := b.runner.Run(ctx, "branchless", "hide", "--recursive", "--delete-branches", commit); err != nil {
		return fmt.Errorf("failed to hide %s: %w", commit, err)
	}
	return nil
}

// ShowStack renders the smartlog for the stack containing branch, keeping
// colors even though output is captured.
func (b *Branchless) ShowStack(ctx context.Context, branch string) (string, error) {
	out, err := b.runner.RunWithEnv(ctx, []string{"CLICOLOR_FORCE=1"}, "branchless", "smartlog", train.Stack(train.RevsetName(branch)))
	if err != nil {
		return "", fmt.Errorf("failed to show stack for %s: %w", branch, err)
	}
	return out, nil
}

// Version returns the installed git-branchless version string.
func (b *Branchless) Version(ctx context.Context) (string, error) {
	out, err := b.runner.Run(ctx, "branchless", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
