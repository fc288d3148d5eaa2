package runtime

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrain.dev/stacktrain/internal/demo"
	"stacktrain.dev/stacktrain/internal/tui"
)

func TestGetContext_Demo(t *testing.T) {
	t.Setenv("STACKTRAIN_DEMO", "1")
	t.Setenv("STACKTRAIN_LOG_FILE", filepath.Join(t.TempDir(), "stacktrain.log"))
	require.True(t, IsDemoMode())

	ctx, err := GetContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = ctx.Splog.Close() }()

	require.IsType(t, &demo.Graph{}, ctx.Graph)
	require.IsType(t, &demo.Host{}, ctx.Host)
	require.Equal(t, "main", ctx.Config.Trunk)

	branch, err := ctx.Repo.CurrentBranch()
	require.NoError(t, err)
	require.Equal(t, "feature/auth-login", branch)
}

func TestEnvironment_Err(t *testing.T) {
	env := &Environment{Checks: []Check{{Name: "git"}, {Name: "git-branchless", Err: errTest}}}
	require.ErrorIs(t, env.Err(), errTest)

	env.Checks = env.Checks[:1]
	require.NoError(t, env.Err())
}

func TestNewDemoContext(t *testing.T) {
	var out strings.Builder
	ctx := NewDemoContext(context.Background(), tui.NewSplogWithWriter(&out, false))
	require.Empty(t, ctx.RepoRoot)
	require.NotNil(t, ctx.Graph)
}

var errTest = errors.New("boom")
