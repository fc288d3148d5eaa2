package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
)

func TestPreconditionError(t *testing.T) {
	err := stackerrors.NewPreconditionError("git-branchless", "install it from https://github.com/arxanas/git-branchless", nil)
	require.ErrorIs(t, err, stackerrors.ErrToolMissing)
	require.Contains(t, err.Error(), "git-branchless is not available")

	wrapped := fmt.Errorf("startup: %w", err)
	var pe *stackerrors.PreconditionError
	require.ErrorAs(t, wrapped, &pe)
	require.Equal(t, "git-branchless", pe.Tool)
}

func TestCommandError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := stackerrors.NewCommandError("gh", []string{"auth", "token"}, "", "not logged in\n", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "command failed: gh [auth token]")
	require.Contains(t, err.Error(), "stderr: not logged in")
	require.NotContains(t, err.Error(), "stdout:")
}

func TestBranchError(t *testing.T) {
	cause := errors.New("422 Validation Failed")

	t.Run("with pull request number", func(t *testing.T) {
		err := stackerrors.NewBranchError("feature/a", 12, cause)
		require.Equal(t, "feature/a (#12): 422 Validation Failed", err.Error())
		require.ErrorIs(t, err, cause)
	})

	t.Run("without pull request number", func(t *testing.T) {
		err := stackerrors.NewBranchError("feature/a", 0, cause)
		require.Equal(t, "feature/a: 422 Validation Failed", err.Error())
	})
}
