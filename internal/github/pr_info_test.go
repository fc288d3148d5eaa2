package github

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
)

func TestParseGitHubRemoteURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		hostname string
		owner    string
		repo     string
	}{
		{name: "https", url: "https://github.com/owner/repo.git", hostname: "github.com", owner: "owner", repo: "repo"},
		{name: "https without suffix", url: "https://github.com/owner/repo", hostname: "github.com", owner: "owner", repo: "repo"},
		{name: "scp-like ssh", url: "git@github.com:owner/repo.git", hostname: "github.com", owner: "owner", repo: "repo"},
		{name: "ssh scheme", url: "ssh://git@github.company.com/owner/repo.git", hostname: "github.company.com", owner: "owner", repo: "repo"},
		{name: "enterprise https", url: "https://github.company.com/owner/repo.git\n", hostname: "github.company.com", owner: "owner", repo: "repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseGitHubRemoteURL(tt.url)
			require.NoError(t, err)
			require.Equal(t, &RepoInfo{Hostname: tt.hostname, Owner: tt.owner, Repo: tt.repo}, info)
		})
	}

	for _, bad := range []string{"", "github.com/owner/repo", "git@github.com", "https://github.com/repo"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseGitHubRemoteURL(bad)
			require.Error(t, err)
		})
	}
}

func TestCreateGitHubClient(t *testing.T) {
	t.Run("github.com keeps default endpoints", func(t *testing.T) {
		client, err := createGitHubClient(context.Background(), "github.com", "token")
		require.NoError(t, err)
		require.Equal(t, "https://api.github.com/", client.BaseURL.String())
	})

	t.Run("enterprise host", func(t *testing.T) {
		client, err := createGitHubClient(context.Background(), "github.company.com", "token")
		require.NoError(t, err)
		require.Equal(t, "https://github.company.com/api/v3/", client.BaseURL.String())
		require.Equal(t, "https://github.company.com/api/uploads/", client.UploadURL.String())
	})
}

func TestGetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		token, err := GetToken(ctx, func(context.Context, ...string) (string, error) {
			t.Fatal("gh should not be called")
			return "", nil
		})
		require.NoError(t, err)
		require.Equal(t, "env-token", token)
	})

	t.Run("falls back to gh", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		var args []string
		token, err := GetToken(ctx, func(_ context.Context, a ...string) (string, error) {
			args = a
			return "gho_abc\n", nil
		})
		require.NoError(t, err)
		require.Equal(t, "gho_abc", token)
		require.Equal(t, []string{"auth", "token"}, args)
	})

	t.Run("gh failure", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		_, err := GetToken(ctx, func(context.Context, ...string) (string, error) {
			return "", errors.New("not logged in")
		})
		require.ErrorIs(t, err, stackerrors.ErrNoGitHubToken)
	})

	t.Run("no gh", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		_, err := GetToken(ctx, nil)
		require.ErrorIs(t, err, stackerrors.ErrNoGitHubToken)
	})
}
