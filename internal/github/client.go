// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/go-github/v62/github"

	"stacktrain.dev/stacktrain/internal/train"
)

const listPageSize = 100

// Client serves pull requests of a single repository to the train.
type Client struct {
	gh    *github.Client
	owner string
	repo  string

	loginOnce sync.Once
	login     string
	loginErr  error
}

var _ train.Host = (*Client)(nil)

// NewClient wraps a go-github client for owner/repo.
func NewClient(gh *github.Client, owner, repo string) *Client {
	return &Client{gh: gh, owner: owner, repo: repo}
}

// GetOwnerRepo returns the repository owner and name
func (c *Client) GetOwnerRepo() (owner, repo string) {
	return c.owner, c.repo
}

// Login returns the authenticated user's login, fetched once.
func (c *Client) Login(ctx context.Context) (string, error) {
	c.loginOnce.Do(func() {
		user, _, err := c.gh.Users.Get(ctx, "")
		if err != nil {
			c.loginErr = fmt.Errorf("failed to get authenticated user: %w", err)
			return
		}
		c.login = user.GetLogin()
	})
	return c.login, c.loginErr
}

// ListOpenRequests returns every open pull request authored by the
// authenticated user, keyed by head branch.
func (c *Client) ListOpenRequests(ctx context.Context) (train.Snapshot, error) {
	login, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(train.Snapshot)
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}
		for _, pr := range prs {
			if !strings.EqualFold(pr.GetUser().GetLogin(), login) {
				continue
			}
			snapshot[pr.GetHead().GetRef()] = toRequest(pr)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return snapshot, nil
}

// GetRequest returns a pull request by number in any state.
func (c *Client) GetRequest(ctx context.Context, number int) (*train.Request, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	return toRequest(pr), nil
}

// GetRequestByBranch returns the most recent pull request whose head is
// branch, or nil when there is none. Branches pushed to the authenticated
// user's fork are found too.
func (c *Client) GetRequestByBranch(ctx context.Context, branch string) (*train.Request, error) {
	req, err := c.newestByHead(ctx, c.owner, branch)
	if err != nil || req != nil {
		return req, err
	}

	login, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(login, c.owner) {
		return nil, nil
	}
	return c.newestByHead(ctx, login, branch)
}

func (c *Client) newestByHead(ctx context.Context, headOwner, branch string) (*train.Request, error) {
	prs, _, err := c.gh.PullRequests.List(ctx, c.owner, c.repo, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", headOwner, branch),
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request for %s: %w", branch, err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return toRequest(prs[0]), nil
}

// EditRequest rewrites the base branch and description of a pull request.
func (c *Client) EditRequest(ctx context.Context, number int, base, body string) error {
	update := &github.PullRequest{
		Base: &github.PullRequestBranch{Ref: github.String(base)},
		Body: github.String(body),
	}
	if _, _, err := c.gh.PullRequests.Edit(ctx, c.owner, c.repo, number, update); err != nil {
		return fmt.Errorf("failed to update pull request #%d: %w", number, err)
	}
	return nil
}

func toRequest(pr *github.PullRequest) *train.Request {
	state := strings.ToUpper(pr.GetState())
	if pr.GetMerged() || pr.MergedAt != nil {
		state = train.StateMerged
	}
	return &train.Request{
		Number:  pr.GetNumber(),
		Base:    pr.GetBase().GetRef(),
		Head:    pr.GetHead().GetRef(),
		Body:    pr.GetBody(),
		Title:   pr.GetTitle(),
		State:   state,
		HeadSHA: pr.GetHead().GetSHA(),
	}
}
