package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// Runner executes git subcommands. The real implementation shells out; tests
// substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
	RunWithEnv(ctx context.Context, env []string, args ...string) (string, error)
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// WorkingDir returns the directory commands run in.
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "git", nil, args...)
}

// RunWithEnv executes a git command with extra environment variables
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return r.run(ctx, "git", env, args...)
}

// RunGH executes a gh command with the given context.
func (r *CommandRunner) RunGH(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "gh", nil, args...)
}

func (r *CommandRunner) run(ctx context.Context, name string, env []string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", stackerrors.NewCommandError(name, args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", stackerrors.NewCommandError(name, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

// Lines splits command output into non-empty trimmed lines.
func Lines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
