package train

import (
	"context"
	"fmt"
	"strings"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
)

// DefaultUpdateRevset selects every branch of the current stack.
const DefaultUpdateRevset = "stack()"

// PassOptions controls a single reconciliation pass.
type PassOptions struct {
	// Revset selects the branches to reconcile. Defaults to DefaultUpdateRevset.
	Revset string
	// DryRun computes decisions without editing any request.
	DryRun bool
	// FailFast stops the pass at the first rejected edit.
	FailFast bool
	// OnDecision, if set, is called for every decision as soon as it is final.
	OnDecision func(Decision)
}

// PassError summarizes the branches whose edits were rejected during a pass.
type PassError struct {
	Failures []*stackerrors.BranchError
}

func (e *PassError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("failed to update %d branch(es): %s", len(e.Failures), strings.Join(parts, "; "))
}

func (e *PassError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Reconciler rewrites request descriptions and bases to match the stack.
type Reconciler struct {
	graph    Graph
	host     Host
	resolver *Resolver
	opts     Options
}

// NewReconciler creates a Reconciler.
func NewReconciler(graph Graph, host Host, opts Options) *Reconciler {
	opts = opts.withDefaults()
	return &Reconciler{
		graph:    graph,
		host:     host,
		resolver: NewResolver(graph, opts),
		opts:     opts,
	}
}

// Run performs one pass. All decisions are made against a single snapshot
// of open requests. Query failures abort the pass; rejected edits are
// collected into a *PassError unless FailFast is set.
func (r *Reconciler) Run(ctx context.Context, pass PassOptions) ([]Decision, error) {
	revset := pass.Revset
	if revset == "" {
		revset = DefaultUpdateRevset
	}

	snapshot, err := r.host.ListOpenRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open pull requests: %w", err)
	}

	branches, err := r.graph.QueryBranches(ctx, revset)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches for %q: %w", revset, err)
	}

	lookup := newMergedLookup(r.host, snapshot, r.opts.MergedTitlePrefix)
	var decisions []Decision
	var failures []*stackerrors.BranchError

	for _, branch := range branches {
		req, ok := snapshot[branch]
		if !ok {
			continue
		}

		decision, err := r.plan(ctx, branch, req, snapshot, lookup)
		if err != nil {
			return decisions, err
		}
		decision.DryRun = pass.DryRun

		if decision.Action == ActionUpdate && !pass.DryRun {
			if err := r.host.EditRequest(ctx, req.Number, decision.Base, decision.Description); err != nil {
				branchErr := stackerrors.NewBranchError(branch, req.Number, err)
				decision.Action = ActionFailed
				decision.Err = branchErr
				failures = append(failures, branchErr)
			}
		}

		decisions = append(decisions, decision)
		if pass.OnDecision != nil {
			pass.OnDecision(decision)
		}

		if decision.Action == ActionFailed && pass.FailFast {
			return decisions, &PassError{Failures: failures}
		}
	}

	if len(failures) > 0 {
		return decisions, &PassError{Failures: failures}
	}
	return decisions, nil
}

// Plan computes the decision for a single branch against snapshot without
// editing anything. The branch must have a request in the snapshot.
func (r *Reconciler) Plan(ctx context.Context, branch string, snapshot Snapshot) (Decision, error) {
	req, ok := snapshot[branch]
	if !ok {
		return Decision{}, fmt.Errorf("no open pull request for %s", branch)
	}
	return r.plan(ctx, branch, req, snapshot, newMergedLookup(r.host, snapshot, r.opts.MergedTitlePrefix))
}

func (r *Reconciler) plan(ctx context.Context, branch string, req *Request, snapshot Snapshot, lookup *mergedLookup) (Decision, error) {
	memberBranches, err := r.resolver.Membership(ctx, branch)
	if err != nil {
		return Decision{}, err
	}

	newMembers := make([]int, 0, len(memberBranches))
	inNew := make(map[int]bool, len(memberBranches))
	for _, name := range memberBranches {
		memberReq, ok := snapshot[name]
		if !ok {
			continue
		}
		newMembers = append(newMembers, memberReq.Number)
		inNew[memberReq.Number] = true
	}

	var oldIDs []int
	if oldBody, ok := ExtractAnnotation(req.Body); ok {
		oldIDs = ParseIDs(oldBody)
	}

	var carried []int
	for _, id := range oldIDs {
		if inNew[id] {
			continue
		}
		merged, err := lookup.isMerged(ctx, id)
		if err != nil {
			return Decision{}, err
		}
		if merged {
			carried = append(carried, id)
		}
	}

	members := append(carried, newMembers...)
	description := UpsertAnnotation(req.Body, RenderTrain(members, req.Number))

	base, err := r.resolver.Base(ctx, branch)
	if err != nil {
		return Decision{}, err
	}

	action := ActionUpdate
	if description == req.Body && base == req.Base {
		action = ActionSkip
	}

	return Decision{
		Branch:      branch,
		Number:      req.Number,
		Members:     members,
		Description: description,
		Base:        base,
		OldBase:     req.Base,
		Action:      action,
	}, nil
}

// mergedLookup memoizes merged checks for the duration of one pass.
type mergedLookup struct {
	host   Host
	open   map[int]bool
	prefix string
	cache  map[int]bool
}

func newMergedLookup(host Host, snapshot Snapshot, prefix string) *mergedLookup {
	return &mergedLookup{
		host:   host,
		open:   snapshot.Numbers(),
		prefix: prefix,
		cache:  make(map[int]bool),
	}
}

func (l *mergedLookup) isMerged(ctx context.Context, number int) (bool, error) {
	if l.open[number] {
		return false, nil
	}
	if merged, ok := l.cache[number]; ok {
		return merged, nil
	}
	req, err := l.host.GetRequest(ctx, number)
	if err != nil {
		return false, fmt.Errorf("failed to look up #%d: %w", number, err)
	}
	merged := IsMerged(req, l.prefix)
	l.cache[number] = merged
	return merged, nil
}
