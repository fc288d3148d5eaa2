package train

import (
	"context"
	"strings"
)

// Pull request states as reported by the host, normalized to upper case.
const (
	StateOpen   = "OPEN"
	StateClosed = "CLOSED"
	StateMerged = "MERGED"
)

// DefaultMergedTitlePrefix marks a closed pull request as logically merged.
const DefaultMergedTitlePrefix = "[merged] "

// Request is a pull request as seen by the train.
type Request struct {
	Number  int
	Base    string
	Head    string
	Body    string
	Title   string
	State   string
	HeadSHA string
}

// Snapshot maps head branch names to their open requests. It is read once
// at the start of a pass and never refreshed while the pass runs.
type Snapshot map[string]*Request

// Numbers returns the set of request numbers present in the snapshot.
func (s Snapshot) Numbers() map[int]bool {
	numbers := make(map[int]bool, len(s))
	for _, req := range s {
		numbers[req.Number] = true
	}
	return numbers
}

// Graph is the commit-graph service. Revsets are opaque strings.
type Graph interface {
	// QueryBranches returns branch names matching revset, in commit order.
	QueryBranches(ctx context.Context, revset string) ([]string, error)
	// QueryCommits returns commit ids matching revset, most-ancestral first.
	QueryCommits(ctx context.Context, revset string) ([]string, error)
	// HideAndPrune hides commit and all of its descendants, deleting their branches.
	HideAndPrune(ctx context.Context, commit string) error
	// ShowStack renders the local stack containing branch for display.
	ShowStack(ctx context.Context, branch string) (string, error)
}

// Host is the request host service.
type Host interface {
	// ListOpenRequests returns the open requests authored by the caller.
	ListOpenRequests(ctx context.Context) (Snapshot, error)
	// GetRequest returns the request with the given number in any state.
	GetRequest(ctx context.Context, number int) (*Request, error)
	// GetRequestByBranch returns the most recent request for branch in any
	// state, or nil if there is none.
	GetRequestByBranch(ctx context.Context, branch string) (*Request, error)
	// EditRequest rewrites the base and body of a request.
	EditRequest(ctx context.Context, number int, base, body string) error
}

// IsMerged reports whether a request counts as merged: either the host says
// so, or it was closed with a title carrying prefix.
func IsMerged(req *Request, prefix string) bool {
	if req == nil {
		return false
	}
	state := strings.ToUpper(req.State)
	if state == StateMerged {
		return true
	}
	return state == StateClosed && prefix != "" && strings.HasPrefix(req.Title, prefix)
}

// Action is the outcome of reconciling one branch.
type Action int

const (
	// ActionSkip means the request already matches the train.
	ActionSkip Action = iota
	// ActionUpdate means the request was (or, in dry-run, would be) rewritten.
	ActionUpdate
	// ActionFailed means the host rejected the edit.
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skipped"
	case ActionUpdate:
		return "updated"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Decision is the reconciliation result for a single branch.
type Decision struct {
	Branch      string
	Number      int
	Members     []int
	Description string
	Base        string
	OldBase     string
	Action      Action
	DryRun      bool
	Err         error
}

// Options carries the configuration the core needs. It is built by the
// caller; the core never reads configuration on its own.
type Options struct {
	Trunk             string
	StackRevset       string
	MergedRevset      string
	MergedTitlePrefix string
}

func (o Options) withDefaults() Options {
	if o.Trunk == "" {
		o.Trunk = "main"
	}
	if o.StackRevset == "" {
		o.StackRevset = "draft()"
	}
	if o.MergedTitlePrefix == "" {
		o.MergedTitlePrefix = DefaultMergedTitlePrefix
	}
	return o
}
