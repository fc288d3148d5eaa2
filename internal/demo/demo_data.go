package demo

import (
	"fmt"
	"time"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
	"stacktrain.dev/stacktrain/internal/train"
)

const (
	delayShort = 80 * time.Millisecond
	delayGraph = 30 * time.Millisecond
)

// New returns a small simulated stack:
//
//	main
//	└─ feature/auth-base (#101)
//	   └─ feature/auth-validation (#102)
//	      └─ feature/auth-login (#103)
//
// plus feature/auth-setup (#100), merged and left behind by a rebase, and
// #99, closed by hand with a "[merged] " title.
func New() (*Graph, *Host) {
	graph := NewGraph(
		&Branch{Name: "feature/auth-setup", Commits: []string{"a1f0c3e"}, Detached: true},
		&Branch{Name: "feature/auth-base", Commits: []string{"b2e1d4f", "b3c9a01"}},
		&Branch{Name: "feature/auth-validation", Parent: "feature/auth-base", Commits: []string{"c4d2e5a"}},
		&Branch{Name: "feature/auth-login", Parent: "feature/auth-validation", Commits: []string{"d5e3f6b", "d6f4a7c"}},
	)
	graph.Delay = delayGraph

	oldTrain := train.UpsertAnnotation("Adds the authentication base module.", train.RenderTrain([]int{99, 100, 101}, 101))

	host := NewHost(
		&train.Request{Number: 99, Head: "docs/auth", Base: "main", Title: "[merged] Document auth flow", State: train.StateClosed},
		&train.Request{Number: 100, Head: "feature/auth-setup", Base: "main", Title: "Set up auth scaffolding", State: train.StateMerged},
		&train.Request{Number: 101, Head: "feature/auth-base", Base: "feature/auth-setup", Title: "Add authentication base module", Body: oldTrain, HeadSHA: "b3c9a01"},
		&train.Request{Number: 102, Head: "feature/auth-validation", Base: "main", Title: "Add input validation for auth", Body: "Validates login input.", HeadSHA: "c4d2e5a"},
		&train.Request{Number: 103, Head: "feature/auth-login", Base: "main", Title: "Implement login flow", HeadSHA: "d5e3f6b"},
	)
	host.PendingHeads["feature/auth-login"] = []string{"d5e3f6b", "d5e3f6b", "d6f4a7c"}
	host.Delay = delayShort

	return graph, host
}

// Tips returns the local tip of every simulated branch.
func Tips(graph *Graph) map[string]string {
	tips := make(map[string]string, len(graph.Branches))
	for _, b := range graph.Branches {
		if len(b.Commits) > 0 {
			tips[b.Name] = b.Commits[len(b.Commits)-1]
		}
	}
	return tips
}

// Repo simulates the local checkout on top of a Graph.
type Repo struct {
	graph *Graph
	// Current is the checked out branch; empty means a detached HEAD.
	Current string
}

// NewRepo creates a checkout of graph with current checked out.
func NewRepo(graph *Graph, current string) *Repo {
	return &Repo{graph: graph, Current: current}
}

// CurrentBranch returns the checked out branch.
func (r *Repo) CurrentBranch() (string, error) {
	if r.Current == "" {
		return "", stackerrors.ErrNotOnBranch
	}
	return r.Current, nil
}

// BranchTip returns the newest commit of branch.
func (r *Repo) BranchTip(branch string) (string, error) {
	tip, ok := Tips(r.graph)[branch]
	if !ok {
		return "", fmt.Errorf("branch %s does not exist", branch)
	}
	return tip, nil
}
