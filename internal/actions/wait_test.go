package actions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stacktrain.dev/stacktrain/internal/actions"
	"stacktrain.dev/stacktrain/internal/demo"
	stackerrors "stacktrain.dev/stacktrain/internal/errors"
)

func TestWaitAction(t *testing.T) {
	t.Run("polls until the head matches the local tip", func(t *testing.T) {
		f := newFixture(t)
		timer := newInstantTimer()

		req, err := actions.WaitAction(f.ctx, actions.WaitOptions{Timer: timer})
		require.NoError(t, err)
		require.Equal(t, 103, req.Number)
		require.Equal(t, "d6f4a7c", req.HeadSHA)
		require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.delays)
		require.Contains(t, f.out.String(), "GitHub is up to date")
	})

	t.Run("delays are capped by the configured interval", func(t *testing.T) {
		f := newFixture(t)
		f.host.PendingHeads["feature/auth-login"] = []string{"old", "old", "old", "old", "d6f4a7c"}
		f.ctx.Config.WaitMaxInterval = 3 * time.Second
		timer := newInstantTimer()

		_, err := actions.WaitAction(f.ctx, actions.WaitOptions{Timer: timer})
		require.NoError(t, err)
		require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}, timer.delays)
	})

	t.Run("gives up after the attempt limit", func(t *testing.T) {
		f := newFixture(t)
		timer := newInstantTimer()

		_, err := actions.WaitAction(f.ctx, actions.WaitOptions{MaxAttempts: 2, Timer: timer})
		require.ErrorIs(t, err, stackerrors.ErrWaitTimedOut)
		require.ErrorContains(t, err, "after 2 attempts")
		require.Len(t, timer.delays, 1)
	})

	t.Run("a single attempt never sleeps", func(t *testing.T) {
		f := newFixture(t)
		timer := newInstantTimer()

		_, err := actions.WaitAction(f.ctx, actions.WaitOptions{MaxAttempts: 1, Timer: timer})
		require.ErrorIs(t, err, stackerrors.ErrWaitTimedOut)
		require.Empty(t, timer.delays)
	})

	t.Run("a branch without a request is still pending", func(t *testing.T) {
		f := newFixture(t)
		f.graph.Branches = append(f.graph.Branches, &demo.Branch{Name: "feature/new", Commits: []string{"e1e1e1e"}})

		_, err := actions.WaitAction(f.ctx, actions.WaitOptions{Branch: "feature/new", MaxAttempts: 2, Timer: newInstantTimer()})
		require.ErrorIs(t, err, stackerrors.ErrWaitTimedOut)
		require.ErrorContains(t, err, "no pull request for feature/new yet")
	})

	t.Run("requires a branch", func(t *testing.T) {
		f := newFixture(t)
		f.repo.Current = ""

		_, err := actions.WaitAction(f.ctx, actions.WaitOptions{Timer: newInstantTimer()})
		require.ErrorIs(t, err, stackerrors.ErrNotOnBranch)
	})

	t.Run("unknown branch", func(t *testing.T) {
		f := newFixture(t)

		_, err := actions.WaitAction(f.ctx, actions.WaitOptions{Branch: "nope", Timer: newInstantTimer()})
		require.ErrorContains(t, err, "branch nope does not exist")
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f.ctx.Context = ctx

		_, err := actions.WaitAction(f.ctx, actions.WaitOptions{Timer: newInstantTimer()})
		require.ErrorIs(t, err, context.Canceled)
	})
}
