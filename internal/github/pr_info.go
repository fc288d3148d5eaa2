package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
)

// TokenCommand runs `gh` and returns its output.
type TokenCommand func(ctx context.Context, args ...string) (string, error)

// GetToken gets a GitHub token from GITHUB_TOKEN or the gh CLI
func GetToken(ctx context.Context, gh TokenCommand) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	if gh == nil {
		return "", stackerrors.ErrNoGitHubToken
	}

	output, err := gh(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("%w: %w", stackerrors.ErrNoGitHubToken, err)
	}
	token := strings.TrimSpace(output)
	if token == "" {
		return "", stackerrors.ErrNoGitHubToken
	}
	return token, nil
}

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo.
// Both github.com and GitHub Enterprise URLs are accepted:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")

	var hostname, path string
	switch {
	case strings.Contains(remoteURL, "://"):
		u, err := url.Parse(remoteURL)
		if err != nil {
			return nil, fmt.Errorf("invalid remote URL: %w", err)
		}
		hostname = u.Hostname()
		path = strings.Trim(u.Path, "/")
	case strings.Contains(remoteURL, "@"):
		// scp-like syntax: git@hostname:owner/repo
		_, hostAndPath, _ := strings.Cut(remoteURL, "@")
		var ok bool
		hostname, path, ok = strings.Cut(hostAndPath, ":")
		if !ok {
			return nil, fmt.Errorf("invalid SSH remote URL: missing path")
		}
	default:
		return nil, fmt.Errorf("unsupported remote URL %q", remoteURL)
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid remote URL: path must be owner/repo")
	}
	owner, repo := parts[len(parts)-2], parts[len(parts)-1]
	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}

	return &RepoInfo{Hostname: hostname, Owner: owner, Repo: repo}, nil
}

// NewClientForRemote creates a Client for the repository behind remoteURL.
func NewClientForRemote(ctx context.Context, remoteURL, token string) (*Client, error) {
	info, err := ParseGitHubRemoteURL(remoteURL)
	if err != nil {
		return nil, err
	}
	gh, err := createGitHubClient(ctx, info.Hostname, token)
	if err != nil {
		return nil, err
	}
	return NewClient(gh, info.Owner, info.Repo), nil
}

// createGitHubClient creates a GitHub client configured for the given hostname.
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname != "github.com" {
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}
		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}
