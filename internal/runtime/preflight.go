package runtime

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
	"stacktrain.dev/stacktrain/internal/git"
	"stacktrain.dev/stacktrain/internal/github"
)

// Check is the outcome of one precondition.
type Check struct {
	Name   string
	Detail string
	Err    error
}

// Environment is what Inspect learned about the repository and its tools.
type Environment struct {
	Repo      *git.Repository
	Runner    *git.CommandRunner
	Token     string
	RemoteURL string
	Checks    []Check
}

// Inspect opens the repository containing the working directory and checks
// every external precondition. Only a missing repository is returned as an
// error; failed checks are recorded in Checks.
func Inspect(ctx context.Context) (*Environment, error) {
	root, err := git.GetRepoRoot()
	if err != nil {
		return nil, err
	}
	repo, err := git.OpenRepository(root)
	if err != nil {
		return nil, err
	}

	env := &Environment{Repo: repo, Runner: git.NewCommandRunner(root)}
	env.check("git", func() (string, error) { return checkGit(ctx, env.Runner) })
	env.check("git-branchless", func() (string, error) { return checkBranchless(ctx, env.Runner) })
	env.check("GitHub token", func() (string, error) {
		token, err := github.GetToken(ctx, env.Runner.RunGH)
		if err != nil {
			return "", stackerrors.NewPreconditionError("GitHub token", "set GITHUB_TOKEN or run `gh auth login`", err)
		}
		env.Token = token
		return "found", nil
	})
	env.check("origin remote", func() (string, error) {
		url, err := repo.RemoteURL("origin")
		if err != nil {
			return "", stackerrors.NewPreconditionError("origin remote", "add a GitHub remote named origin", err)
		}
		info, err := github.ParseGitHubRemoteURL(url)
		if err != nil {
			return "", stackerrors.NewPreconditionError("origin remote", fmt.Sprintf("%s is not a GitHub URL", url), err)
		}
		env.RemoteURL = url
		return fmt.Sprintf("%s/%s on %s", info.Owner, info.Repo, info.Hostname), nil
	})
	return env, nil
}

// Err returns the first failed check.
func (e *Environment) Err() error {
	for _, c := range e.Checks {
		if c.Err != nil {
			return c.Err
		}
	}
	return nil
}

func (e *Environment) check(name string, fn func() (string, error)) {
	detail, err := fn()
	e.Checks = append(e.Checks, Check{Name: name, Detail: detail, Err: err})
}

func checkGit(ctx context.Context, runner git.Runner) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", stackerrors.NewPreconditionError("git", "install git", err)
	}
	version, err := runner.Run(ctx, "--version")
	if err != nil {
		return "", stackerrors.NewPreconditionError("git", "", err)
	}
	return version, nil
}

func checkBranchless(ctx context.Context, runner git.Runner) (string, error) {
	version, err := git.NewBranchless(runner).Version(ctx)
	if err != nil {
		var cmdErr *stackerrors.CommandError
		hint := "install it from https://github.com/arxanas/git-branchless"
		if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
			hint += " and run `git branchless init`"
		}
		return "", stackerrors.NewPreconditionError("git-branchless", hint, err)
	}
	return version, nil
}
