// Package demo provides an in-memory commit graph and pull request host so
// stacktrain can run without git-branchless or GitHub.
package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stacktrain.dev/stacktrain/internal/train"
)

// Branch is a simulated branch in the local commit graph.
type Branch struct {
	Name string
	// Parent is the branch this one is stacked on; empty means the main branch.
	Parent string
	// Commits are the branch's own commits, oldest first.
	Commits []string
	// Merged marks the branch as matched by the merged revset.
	Merged bool
	// Detached marks the branch as no longer descending from the main branch.
	Detached bool
}

// Graph implements train.Graph over a list of branches. Queries are answered
// for the revsets the train package builds; anything else must be scripted
// through Responses.
type Graph struct {
	StackRevset  string
	MergedRevset string
	// Branches in topological order: parents before children.
	Branches []*Branch
	// Responses overrides the answer for an exact revset.
	Responses map[string][]string
	// Errors fails queries for an exact revset.
	Errors map[string]error
	// Queries records every revset queried, in order.
	Queries []string
	// Pruned records every commit passed to HideAndPrune.
	Pruned []string
	Delay  time.Duration
}

// NewGraph creates a graph with the default stack and merged revsets.
func NewGraph(branches ...*Branch) *Graph {
	return &Graph{
		StackRevset:  "draft()",
		MergedRevset: "green",
		Branches:     branches,
		Responses:    make(map[string][]string),
		Errors:       make(map[string]error),
	}
}

// QueryBranches answers branch queries.
func (g *Graph) QueryBranches(_ context.Context, revset string) ([]string, error) {
	g.record(revset)
	if err := g.Errors[revset]; err != nil {
		return nil, err
	}
	if resp, ok := g.Responses[revset]; ok {
		return append([]string(nil), resp...), nil
	}

	switch revset {
	case train.DefaultUpdateRevset, g.StackRevset:
		return g.names(g.live()), nil
	case train.LeftoverRevset:
		var names []string
		for _, b := range g.Branches {
			if g.detached(b) {
				names = append(names, b.Name)
			}
		}
		return names, nil
	}

	for _, b := range g.Branches {
		switch revset {
		case train.MembershipRevset(b.Name, g.StackRevset):
			return g.names(g.membership(b)), nil
		case train.BaseRevset(b.Name, g.StackRevset, g.MergedRevset):
			var names []string
			for _, a := range g.ancestors(b) {
				if !a.Merged || g.MergedRevset == "" {
					names = append(names, a.Name)
				}
			}
			return names, nil
		case train.BaseRevset(b.Name, g.StackRevset, ""):
			return g.names(g.ancestors(b)), nil
		}
	}
	return nil, fmt.Errorf("demo graph: unsupported revset %q", revset)
}

// QueryCommits answers commit queries, most-ancestral first.
func (g *Graph) QueryCommits(_ context.Context, revset string) ([]string, error) {
	g.record(revset)
	if err := g.Errors[revset]; err != nil {
		return nil, err
	}
	if resp, ok := g.Responses[revset]; ok {
		return append([]string(nil), resp...), nil
	}
	for _, b := range g.Branches {
		if revset != train.DivergingRevset(b.Name) {
			continue
		}
		var commits []string
		for _, a := range append(g.ancestors(b), b) {
			if g.detached(a) {
				commits = append(commits, a.Commits...)
			}
		}
		return commits, nil
	}
	return nil, fmt.Errorf("demo graph: unsupported revset %q", revset)
}

// HideAndPrune removes the branch owning commit together with its descendants.
func (g *Graph) HideAndPrune(_ context.Context, commit string) error {
	g.sleep()
	owner := g.owner(commit)
	if owner == nil {
		return fmt.Errorf("demo graph: unknown commit %s", commit)
	}
	g.Pruned = append(g.Pruned, commit)

	doomed := map[string]bool{owner.Name: true}
	var kept []*Branch
	for _, b := range g.Branches {
		if doomed[b.Parent] {
			doomed[b.Name] = true
		}
		if !doomed[b.Name] {
			kept = append(kept, b)
		}
	}
	g.Branches = kept
	return nil
}

// ShowStack renders the stack containing branch as an indented list.
func (g *Graph) ShowStack(_ context.Context, branch string) (string, error) {
	g.sleep()
	b := g.find(branch)
	if b == nil {
		return "", fmt.Errorf("demo graph: unknown branch %s", branch)
	}
	var sb strings.Builder
	sb.WriteString("◇ main\n")
	for _, m := range g.membership(b) {
		depth := len(g.ancestors(m)) + 1
		marker := "◯"
		if m.Name == branch {
			marker = "●"
		}
		fmt.Fprintf(&sb, "%s%s %s\n", strings.Repeat("┃ ", depth), marker, m.Name)
	}
	return sb.String(), nil
}

func (g *Graph) record(revset string) {
	g.sleep()
	g.Queries = append(g.Queries, revset)
}

func (g *Graph) sleep() {
	if g.Delay > 0 {
		time.Sleep(g.Delay)
	}
}

func (g *Graph) find(name string) *Branch {
	for _, b := range g.Branches {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (g *Graph) owner(commit string) *Branch {
	for _, b := range g.Branches {
		for _, c := range b.Commits {
			if c == commit {
				return b
			}
		}
	}
	return nil
}

// ancestors returns the branches below b, oldest first.
func (g *Graph) ancestors(b *Branch) []*Branch {
	var chain []*Branch
	for p := g.find(b.Parent); p != nil; p = g.find(p.Parent) {
		chain = append([]*Branch{p}, chain...)
	}
	return chain
}

func (g *Graph) isAncestor(a, b *Branch) bool {
	for _, x := range g.ancestors(b) {
		if x == a {
			return true
		}
	}
	return false
}

func (g *Graph) detached(b *Branch) bool {
	if b.Detached {
		return true
	}
	for _, a := range g.ancestors(b) {
		if a.Detached {
			return true
		}
	}
	return false
}

func (g *Graph) live() []*Branch {
	var out []*Branch
	for _, b := range g.Branches {
		if !g.detached(b) {
			out = append(out, b)
		}
	}
	return out
}

func (g *Graph) membership(b *Branch) []*Branch {
	var out []*Branch
	for _, x := range g.Branches {
		if x == b || g.isAncestor(x, b) || g.isAncestor(b, x) {
			out = append(out, x)
		}
	}
	return out
}

func (g *Graph) names(branches []*Branch) []string {
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	return names
}
