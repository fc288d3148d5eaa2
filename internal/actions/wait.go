package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
	"stacktrain.dev/stacktrain/internal/runtime"
	"stacktrain.dev/stacktrain/internal/train"
	"stacktrain.dev/stacktrain/internal/tui"
)

const waitInitialInterval = time.Second

// WaitOptions contains options for the wait command
type WaitOptions struct {
	// Branch to wait for; empty means the current branch.
	Branch string
	// MaxAttempts overrides the configured attempt limit when positive.
	MaxAttempts int
	// Timer drives the delays between attempts. Nil uses the wall clock.
	Timer backoff.Timer
}

// headMismatchError means the host has not caught up with the local tip yet.
type headMismatchError struct {
	branch string
	want   string
	got    string
}

func (e *headMismatchError) Error() string {
	if e.got == "" {
		return fmt.Sprintf("no pull request for %s yet", e.branch)
	}
	return fmt.Sprintf("pull request for %s is at %s, want %s", e.branch, shortSHA(e.got), shortSHA(e.want))
}

// WaitAction polls the host until the pull request for a branch reports the
// branch's local tip as its head commit.
func WaitAction(ctx *runtime.Context, opts WaitOptions) (*train.Request, error) {
	branch := opts.Branch
	if branch == "" {
		current, err := ctx.Repo.CurrentBranch()
		if err != nil {
			return nil, err
		}
		branch = current
	}
	tip, err := ctx.Repo.BranchTip(branch)
	if err != nil {
		return nil, err
	}

	maxAttempts := ctx.Config.WaitMaxAttempts
	if opts.MaxAttempts > 0 {
		maxAttempts = opts.MaxAttempts
	}

	var req *train.Request
	ctx.Splog.Debug("waiting for %s to reach %s", branch, tip)
	err = tui.RunWithSpinner(ctx.Context, ctx.Splog, "Waiting for GitHub", "GitHub is up to date", func(workCtx context.Context, status func(string)) error {
		attempt := 0
		operation := func() error {
			attempt++
			got, err := ctx.Host.GetRequestByBranch(workCtx, branch)
			if err != nil {
				return backoff.Permanent(err)
			}
			if got == nil {
				return &headMismatchError{branch: branch, want: tip}
			}
			if got.HeadSHA != tip {
				return &headMismatchError{branch: branch, want: tip, got: got.HeadSHA}
			}
			req = got
			return nil
		}
		notify := func(err error, next time.Duration) {
			status(fmt.Sprintf("attempt %d/%d: %v, retrying in %s", attempt, maxAttempts, err, next.Round(time.Millisecond)))
		}
		return backoff.RetryNotifyWithTimer(operation, newWaitBackOff(workCtx, maxAttempts, ctx.Config.WaitMaxInterval), notify, opts.Timer)
	})
	if err != nil {
		var mismatch *headMismatchError
		if errors.As(err, &mismatch) {
			return nil, fmt.Errorf("%w after %d %s: %v", stackerrors.ErrWaitTimedOut, maxAttempts, Pluralize("attempt", maxAttempts), mismatch)
		}
		return nil, err
	}

	ctx.Splog.Info("%s is at %s.", formatRequest(req.Number, branch), tui.ColorDim(shortSHA(tip)))
	return req, nil
}

// newWaitBackOff doubles the delay from one second up to maxInterval and
// gives up after maxAttempts tries in total.
func newWaitBackOff(ctx context.Context, maxAttempts int, maxInterval time.Duration) backoff.BackOff {
	if maxInterval < waitInitialInterval {
		maxInterval = waitInitialInterval
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = waitInitialInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = maxInterval
	b.MaxElapsedTime = 0
	b.Reset()

	if maxAttempts <= 1 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxAttempts-1)), ctx)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
