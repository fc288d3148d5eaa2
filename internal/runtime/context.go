package runtime

import (
	"context"
	"fmt"
	"os"

	"stacktrain.dev/stacktrain/internal/config"
	"stacktrain.dev/stacktrain/internal/demo"
	"stacktrain.dev/stacktrain/internal/git"
	"stacktrain.dev/stacktrain/internal/github"
	"stacktrain.dev/stacktrain/internal/train"
	"stacktrain.dev/stacktrain/internal/tui"
)

// Repo is the local repository state commands read directly.
type Repo interface {
	CurrentBranch() (string, error)
	BranchTip(branch string) (string, error)
}

// Context provides access to configuration, output and services for commands
type Context struct {
	context.Context
	Config   *config.Config
	Splog    *tui.Splog
	Graph    train.Graph
	Host     train.Host
	Repo     Repo
	RepoRoot string
}

// IsDemoMode returns true if STACKTRAIN_DEMO environment variable is set
func IsDemoMode() bool {
	return os.Getenv("STACKTRAIN_DEMO") != ""
}

// NewDemoContext creates a context over the simulated stack in package demo.
func NewDemoContext(ctx context.Context, splog *tui.Splog) *Context {
	graph, host := demo.New()
	return &Context{
		Context: ctx,
		Config:  config.Default(),
		Splog:   splog,
		Graph:   graph,
		Host:    host,
		Repo:    demo.NewRepo(graph, "feature/auth-login"),
	}
}

// GetContext returns the appropriate context (demo or real) based on the
// environment. Outside demo mode every precondition must hold.
func GetContext(ctx context.Context) (*Context, error) {
	if IsDemoMode() {
		return NewDemoContext(ctx, NewSplog()), nil
	}

	env, err := Inspect(ctx)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(env.Repo.Root())
	if err != nil {
		return nil, err
	}

	host, err := github.NewClientForRemote(ctx, env.RemoteURL, env.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &Context{
		Context:  ctx,
		Config:   cfg,
		Splog:    NewSplog(),
		Graph:    git.NewBranchless(env.Runner),
		Host:     host,
		Repo:     env.Repo,
		RepoRoot: env.Repo.Root(),
	}, nil
}

// NewSplog logs to the console and the rotating log file, falling back to
// the console alone when the log directory cannot be created.
func NewSplog() *tui.Splog {
	splog, err := tui.NewSplogWithConfig(tui.LogFilePath())
	if err != nil {
		splog = tui.NewSplog()
		splog.Debug("file logging disabled: %v", err)
	}
	return splog
}
