package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

const textFileName = "test.txt"

// GitRepo is a throwaway repository for tests, built with go-git so no git
// binary is required.
type GitRepo struct {
	t    testing.TB
	Dir  string
	Repo *gogit.Repository
	n    int
}

// NewGitRepo initializes a repository with main as the default branch in a
// temporary directory.
func NewGitRepo(t testing.TB) *GitRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.Main},
	})
	require.NoError(t, err)
	return &GitRepo{t: t, Dir: dir, Repo: repo}
}

// Commit writes a change and commits it on the current branch, returning
// the new commit hash.
func (r *GitRepo) Commit(message string) string {
	r.t.Helper()
	r.n++
	path := filepath.Join(r.Dir, textFileName)
	require.NoError(r.t, os.WriteFile(path, []byte(fmt.Sprintf("%d %s\n", r.n, message)), 0o644))

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(textFileName)
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
	return hash.String()
}

// CreateBranch creates a branch at HEAD without checking it out.
func (r *GitRepo) CreateBranch(name string) {
	r.t.Helper()
	head, err := r.Repo.Head()
	require.NoError(r.t, err)
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}

// CreateAndCheckoutBranch creates a branch at HEAD and checks it out.
func (r *GitRepo) CreateAndCheckoutBranch(name string) {
	r.t.Helper()
	r.CreateBranch(name)
	r.CheckoutBranch(name)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.Checkout(&gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}))
}

// CheckoutDetached detaches HEAD at a commit.
func (r *GitRepo) CheckoutDetached(hash string) {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.Checkout(&gogit.CheckoutOptions{Hash: plumbing.NewHash(hash)}))
}

// AddRemote configures a remote with a single URL.
func (r *GitRepo) AddRemote(name, url string) {
	r.t.Helper()
	_, err := r.Repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(r.t, err)
}
