package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
)

// Repository wraps a go-git repository
type Repository struct {
	*gogit.Repository
	root string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	return &Repository{
		Repository: repo,
		root:       worktree.Filesystem.Root(),
	}, nil
}

// GetRepoRoot returns the root directory of the Git repository containing
// the working directory
func GetRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	repo, err := OpenRepository(wd)
	if err != nil {
		return "", err
	}
	return repo.Root(), nil
}

// Root returns the root directory of the worktree
func (r *Repository) Root() string {
	return r.root
}

// CurrentBranch returns the checked out branch. A detached HEAD yields
// ErrNotOnBranch.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", stackerrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

// BranchTip returns the commit hash a local branch points at
func (r *Repository) BranchTip(branch string) (string, error) {
	ref, err := r.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("branch %s does not exist", branch)
		}
		return "", fmt.Errorf("failed to resolve %s: %w", branch, err)
	}
	return ref.Hash().String(), nil
}

// RemoteURL returns the first configured URL of a remote
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}
