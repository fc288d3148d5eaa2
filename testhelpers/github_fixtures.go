package testhelpers

import (
	"time"

	"github.com/google/go-github/v62/github"
)

// SamplePRData provides common PR data for testing
type SamplePRData struct {
	Number  int
	Title   string
	Body    string
	Head    string
	HeadSHA string
	Base    string
	State   string
	Merged  bool
	Author  string
	// HeadOwner owns the repository the head branch lives in. Empty means
	// the base repository.
	HeadOwner string
}

// NewSamplePullRequest creates a github.PullRequest from sample data
func NewSamplePullRequest(data SamplePRData) *github.PullRequest {
	pr := &github.PullRequest{
		Number: github.Int(data.Number),
		Title:  github.String(data.Title),
		Body:   github.String(data.Body),
		Head:   &github.PullRequestBranch{Ref: github.String(data.Head), SHA: github.String(data.HeadSHA)},
		Base:   &github.PullRequestBranch{Ref: github.String(data.Base)},
		State:  github.String(data.State),
		User:   &github.User{Login: github.String(data.Author)},
	}
	if data.HeadOwner != "" {
		pr.Head.Repo = &github.Repository{Owner: &github.User{Login: github.String(data.HeadOwner)}}
	}
	if data.Merged {
		pr.Merged = github.Bool(true)
		pr.MergedAt = &github.Timestamp{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	}
	return pr
}

// DefaultPRData returns a default PR data structure for testing
func DefaultPRData() SamplePRData {
	return SamplePRData{
		Number:  123,
		Title:   "Test Pull Request",
		Body:    "This is a test pull request",
		Head:    "feature-branch",
		HeadSHA: "0123456789abcdef0123456789abcdef01234567",
		Base:    "main",
		State:   "open",
	}
}

// MergedPRData returns PR data for a merged PR
func MergedPRData() SamplePRData {
	data := DefaultPRData()
	data.State = "closed"
	data.Merged = true
	return data
}

// ClosedPRData returns PR data for a PR closed without merging
func ClosedPRData() SamplePRData {
	data := DefaultPRData()
	data.State = "closed"
	return data
}
