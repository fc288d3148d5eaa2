package train_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrain.dev/stacktrain/internal/demo"
	"stacktrain.dev/stacktrain/internal/train"
)

type scriptedPrompter struct {
	answers []bool
	err     error
	prompts []string
}

func (p *scriptedPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return false, p.err
	}
	if len(p.answers) == 0 {
		return defaultValue, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// leftoverStack builds main <- old (detached, merged) <- child (detached), plus
// an unrelated live branch.
func leftoverStack() (*demo.Graph, *demo.Host) {
	graph := demo.NewGraph(
		&demo.Branch{Name: "old", Commits: []string{"c1", "c2"}, Detached: true},
		&demo.Branch{Name: "child", Parent: "old", Commits: []string{"c3"}},
		&demo.Branch{Name: "live", Commits: []string{"c9"}},
	)
	host := demo.NewHost(
		&train.Request{Number: 10, Head: "old", Title: "Old work", State: train.StateMerged},
		&train.Request{Number: 11, Head: "child", Title: "Child work", State: train.StateOpen},
		&train.Request{Number: 12, Head: "live", Title: "Live work"},
	)
	return graph, host
}

func TestCleaner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("hides a merged leftover after confirmation", func(t *testing.T) {
		graph, host := leftoverStack()
		prompter := &scriptedPrompter{answers: []bool{true}}
		var shown []string

		events, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{
			Prompter: prompter,
			Show:     func(branch, _ string) { shown = append(shown, branch) },
		})
		require.NoError(t, err)
		require.Len(t, events, 2)

		require.Equal(t, train.CleanupEvent{Branch: "old", Number: 10, Outcome: train.CleanupHidden, Commit: "c1"}, events[0])
		require.Equal(t, train.CleanupEvent{Branch: "child", Outcome: train.CleanupPruned, Commit: "c1"}, events[1])
		require.Equal(t, []string{"old"}, shown)
		require.Equal(t, []string{`Hide "old"?`}, prompter.prompts)
		require.Equal(t, []string{"c1"}, graph.Pruned)
		require.Empty(t, host.Edits)
	})

	t.Run("merged child pruned with its merged parent is not revisited", func(t *testing.T) {
		graph, host := leftoverStack()
		host.Put(&train.Request{Number: 11, Head: "child", Title: "Child work", State: train.StateMerged})
		prompter := &scriptedPrompter{}

		events, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{Prompter: prompter})
		require.NoError(t, err)
		require.Equal(t, []train.CleanupEvent{
			{Branch: "old", Number: 10, Outcome: train.CleanupHidden, Commit: "c1"},
			{Branch: "child", Outcome: train.CleanupPruned, Commit: "c1"},
		}, events)
		require.Equal(t, []string{`Hide "old"?`}, prompter.prompts)
		require.Equal(t, []string{"c1"}, graph.Pruned)
	})

	t.Run("keeps a branch when declined", func(t *testing.T) {
		graph, host := leftoverStack()
		prompter := &scriptedPrompter{answers: []bool{false}}

		events, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{Prompter: prompter})
		require.NoError(t, err)
		require.Equal(t, train.CleanupDeclined, events[0].Outcome)
		require.Empty(t, graph.Pruned)
	})

	t.Run("skips leftovers without a request", func(t *testing.T) {
		graph := demo.NewGraph(&demo.Branch{Name: "orphan", Commits: []string{"c1"}, Detached: true})
		host := demo.NewHost()
		prompter := &scriptedPrompter{}

		events, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{Prompter: prompter})
		require.NoError(t, err)
		require.Equal(t, []train.CleanupEvent{{Branch: "orphan", Outcome: train.CleanupNoRequest}}, events)
		require.Empty(t, prompter.prompts)
	})

	t.Run("treats prefixed closed requests as merged", func(t *testing.T) {
		graph := demo.NewGraph(&demo.Branch{Name: "manual", Commits: []string{"c1"}, Detached: true})
		host := demo.NewHost(&train.Request{Number: 3, Head: "manual", Title: "[merged] by hand", State: train.StateClosed})

		events, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{Prompter: &scriptedPrompter{}})
		require.NoError(t, err)
		require.Equal(t, train.CleanupHidden, events[0].Outcome)
	})

	t.Run("closed requests without the prefix are left alone", func(t *testing.T) {
		graph := demo.NewGraph(&demo.Branch{Name: "abandoned", Commits: []string{"c1"}, Detached: true})
		host := demo.NewHost(&train.Request{Number: 4, Head: "abandoned", Title: "Gave up", State: train.StateClosed})
		prompter := &scriptedPrompter{}

		events, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{Prompter: prompter})
		require.NoError(t, err)
		require.Equal(t, train.CleanupNotMerged, events[0].Outcome)
		require.Empty(t, prompter.prompts)
		require.Empty(t, graph.Pruned)
	})

	t.Run("nothing to hide when no commit diverges", func(t *testing.T) {
		graph := demo.NewGraph()
		graph.Responses[train.LeftoverRevset] = []string{"stale"}
		graph.Responses[train.DivergingRevset("stale")] = nil
		graph.Branches = []*demo.Branch{{Name: "stale"}}
		host := demo.NewHost(&train.Request{Number: 5, Head: "stale", State: train.StateMerged})

		events, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{Prompter: &scriptedPrompter{}})
		require.NoError(t, err)
		require.Equal(t, train.CleanupNothingToHide, events[0].Outcome)
		require.Empty(t, graph.Pruned)
	})

	t.Run("prompter errors abort", func(t *testing.T) {
		graph, host := leftoverStack()
		prompter := &scriptedPrompter{err: errors.New("interrupt")}

		_, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{Prompter: prompter})
		require.ErrorContains(t, err, "interrupt")
		require.Empty(t, graph.Pruned)
	})

	t.Run("requires a prompter", func(t *testing.T) {
		graph, host := leftoverStack()

		_, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{})
		require.Error(t, err)
		require.Empty(t, graph.Queries)
	})

	t.Run("reports every branch through OnEvent", func(t *testing.T) {
		graph, host := leftoverStack()
		var seen []train.CleanupOutcome

		_, err := train.NewCleaner(graph, host, train.Options{}).Run(ctx, train.CleanupOptions{
			Prompter: &scriptedPrompter{answers: []bool{false}},
			OnEvent:  func(e train.CleanupEvent) { seen = append(seen, e.Outcome) },
		})
		require.NoError(t, err)
		require.Equal(t, []train.CleanupOutcome{train.CleanupDeclined, train.CleanupNotMerged}, seen)
	})
}
