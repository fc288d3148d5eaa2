package actions_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"stacktrain.dev/stacktrain/internal/config"
	"stacktrain.dev/stacktrain/internal/demo"
	"stacktrain.dev/stacktrain/internal/runtime"
	"stacktrain.dev/stacktrain/internal/tui"
)

// fixture is the simulated stack from package demo with delays removed.
type fixture struct {
	ctx   *runtime.Context
	graph *demo.Graph
	host  *demo.Host
	repo  *demo.Repo
	out   *strings.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("STACKTRAIN_TEST_NO_INTERACTIVE", "1")

	graph, host := demo.New()
	graph.Delay = 0
	host.Delay = 0
	repo := demo.NewRepo(graph, "feature/auth-login")
	out := &strings.Builder{}

	return &fixture{
		ctx: &runtime.Context{
			Context: context.Background(),
			Config:  config.Default(),
			Splog:   tui.NewSplogWithWriter(out, true),
			Graph:   graph,
			Host:    host,
			Repo:    repo,
		},
		graph: graph,
		host:  host,
		repo:  repo,
		out:   out,
	}
}

// instantTimer fires as soon as it is started and records each delay.
type instantTimer struct {
	c      chan time.Time
	delays []time.Duration
}

func newInstantTimer() *instantTimer {
	return &instantTimer{c: make(chan time.Time, 1)}
}

func (t *instantTimer) Start(d time.Duration) {
	t.delays = append(t.delays, d)
	t.c <- time.Now()
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time {
	return t.c
}

// answers replies to confirmations in order and records the prompts.
type answers struct {
	replies []bool
	prompts []string
}

func (a *answers) Confirm(prompt string, _ bool) (bool, error) {
	a.prompts = append(a.prompts, prompt)
	if len(a.replies) == 0 {
		return false, nil
	}
	reply := a.replies[0]
	a.replies = a.replies[1:]
	return reply, nil
}
