package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
	"stacktrain.dev/stacktrain/internal/git"
	"stacktrain.dev/stacktrain/testhelpers"
)

func TestCommandRunner(t *testing.T) {
	fixture := testhelpers.NewGitRepo(t)
	fixture.Commit("initial")
	runner := git.NewCommandRunner(fixture.Dir)

	t.Run("runs in the working directory", func(t *testing.T) {
		out, err := runner.Run(context.Background(), "rev-parse", "--abbrev-ref", "HEAD")
		require.NoError(t, err)
		require.Equal(t, "main", out)
	})

	t.Run("passes extra environment", func(t *testing.T) {
		env := []string{"GIT_AUTHOR_NAME=Train Bot", "GIT_AUTHOR_EMAIL=bot@example.com"}
		out, err := runner.RunWithEnv(context.Background(), env, "var", "GIT_AUTHOR_IDENT")
		require.NoError(t, err)
		require.Contains(t, out, "Train Bot <bot@example.com>")
	})

	t.Run("failures are command errors", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "rev-parse", "does-not-exist")
		require.Error(t, err)

		var cmdErr *stackerrors.CommandError
		require.True(t, errors.As(err, &cmdErr))
		require.Equal(t, "git", cmdErr.Command)
		require.NotEmpty(t, cmdErr.Stderr)
	})
}
