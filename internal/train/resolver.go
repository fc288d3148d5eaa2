package train

import (
	"context"
	"fmt"
)

// Resolver answers membership and base questions for a branch against the
// commit graph.
type Resolver struct {
	graph Graph
	opts  Options
}

// NewResolver creates a Resolver over graph.
func NewResolver(graph Graph, opts Options) *Resolver {
	return &Resolver{graph: graph, opts: opts.withDefaults()}
}

// Membership returns the stack branches that are ancestors or descendants
// of branch, including branch itself, in the order the graph reports them.
func (r *Resolver) Membership(ctx context.Context, branch string) ([]string, error) {
	members, err := r.graph.QueryBranches(ctx, MembershipRevset(branch, r.opts.StackRevset))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve train for %s: %w", branch, err)
	}
	return members, nil
}

// Base returns the branch a request for branch should target: the last
// unmerged stack ancestor reported by the graph, or the trunk.
func (r *Resolver) Base(ctx context.Context, branch string) (string, error) {
	ancestors, err := r.graph.QueryBranches(ctx, BaseRevset(branch, r.opts.StackRevset, r.opts.MergedRevset))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base for %s: %w", branch, err)
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i] != branch {
			return ancestors[i], nil
		}
	}
	return r.opts.Trunk, nil
}
