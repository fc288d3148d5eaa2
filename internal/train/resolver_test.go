package train_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrain.dev/stacktrain/internal/demo"
	"stacktrain.dev/stacktrain/internal/train"
)

func TestResolver_Membership(t *testing.T) {
	ctx := context.Background()
	graph := demo.NewGraph()
	resolver := train.NewResolver(graph, train.Options{StackRevset: "stack()"})

	t.Run("trusts the order the graph reports", func(t *testing.T) {
		graph.Responses[train.MembershipRevset("mid", "stack()")] = []string{"low", "mid", "high"}

		members, err := resolver.Membership(ctx, "mid")
		require.NoError(t, err)
		require.Equal(t, []string{"low", "mid", "high"}, members)
		require.Equal(t, "((ancestors(mid) + descendants(mid)) & stack())", graph.Queries[len(graph.Queries)-1])
	})

	t.Run("wraps graph failures", func(t *testing.T) {
		graph.Errors[train.MembershipRevset("broken", "stack()")] = errors.New("exit status 1")

		_, err := resolver.Membership(ctx, "broken")
		require.ErrorContains(t, err, "failed to resolve train for broken")
	})
}

func TestResolver_Base(t *testing.T) {
	ctx := context.Background()

	t.Run("takes the last ancestor in the reported ordering", func(t *testing.T) {
		graph := demo.NewGraph()
		graph.Responses[train.BaseRevset("top", "draft()", "green")] = []string{"bottom", "middle"}
		resolver := train.NewResolver(graph, train.Options{MergedRevset: "green"})

		base, err := resolver.Base(ctx, "top")
		require.NoError(t, err)
		require.Equal(t, "middle", base)
	})

	t.Run("never targets the branch itself", func(t *testing.T) {
		graph := demo.NewGraph()
		graph.Responses[train.BaseRevset("top", "draft()", "")] = []string{"bottom", "top"}
		resolver := train.NewResolver(graph, train.Options{})

		base, err := resolver.Base(ctx, "top")
		require.NoError(t, err)
		require.Equal(t, "bottom", base)
	})

	t.Run("falls back to the configured trunk", func(t *testing.T) {
		graph := demo.NewGraph(&demo.Branch{Name: "solo"})
		resolver := train.NewResolver(graph, train.Options{Trunk: "master"})

		base, err := resolver.Base(ctx, "solo")
		require.NoError(t, err)
		require.Equal(t, "master", base)
	})

	t.Run("defaults the trunk to main", func(t *testing.T) {
		graph := demo.NewGraph(&demo.Branch{Name: "solo"})
		resolver := train.NewResolver(graph, train.Options{})

		base, err := resolver.Base(ctx, "solo")
		require.NoError(t, err)
		require.Equal(t, "main", base)
	})

	t.Run("skips merged ancestors", func(t *testing.T) {
		graph := demo.NewGraph(
			&demo.Branch{Name: "a"},
			&demo.Branch{Name: "b", Parent: "a", Merged: true},
			&demo.Branch{Name: "c", Parent: "b"},
		)
		resolver := train.NewResolver(graph, train.Options{MergedRevset: "green"})

		base, err := resolver.Base(ctx, "c")
		require.NoError(t, err)
		require.Equal(t, "a", base)
	})
}

func TestRevsets(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "plain names stay bare",
			got:  train.RevsetName("feature/auth-base_v2.1"),
			want: "feature/auth-base_v2.1",
		},
		{
			name: "operators are quoted",
			got:  train.RevsetName("fix+test"),
			want: `"fix+test"`,
		},
		{
			name: "membership",
			got:  train.MembershipRevset("b", "draft()"),
			want: "((ancestors(b) + descendants(b)) & draft())",
		},
		{
			name: "base with merged exclusion",
			got:  train.BaseRevset("b", "draft()", "green"),
			want: "(((ancestors(b) & draft()) - b) - green)",
		},
		{
			name: "base without merged exclusion",
			got:  train.BaseRevset("b", "draft()", ""),
			want: "((ancestors(b) & draft()) - b)",
		},
		{
			name: "diverging commits",
			got:  train.DivergingRevset("b"),
			want: "ancestors(b) - ancestors(main())",
		},
		{
			name: "stack",
			got:  train.Stack(train.RevsetName("b")),
			want: "stack(b)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.got)
		})
	}
}

func TestIsMerged(t *testing.T) {
	prefix := train.DefaultMergedTitlePrefix
	tests := []struct {
		name string
		req  *train.Request
		want bool
	}{
		{name: "nil", req: nil, want: false},
		{name: "merged", req: &train.Request{State: "MERGED"}, want: true},
		{name: "merged lower case", req: &train.Request{State: "merged"}, want: true},
		{name: "open", req: &train.Request{State: "OPEN", Title: "[merged] nope"}, want: false},
		{name: "closed", req: &train.Request{State: "CLOSED", Title: "cleanup old flag"}, want: false},
		{name: "closed with prefix", req: &train.Request{State: "CLOSED", Title: "[merged] cleanup old flag"}, want: true},
		{name: "closed with prefix not at start", req: &train.Request{State: "CLOSED", Title: "x [merged] y"}, want: false},
		{name: "closed with prefix missing space", req: &train.Request{State: "CLOSED", Title: "[merged]cleanup"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, train.IsMerged(tt.req, prefix))
		})
	}

	t.Run("empty prefix disables title check", func(t *testing.T) {
		require.False(t, train.IsMerged(&train.Request{State: "CLOSED", Title: "anything"}, ""))
	})
}
