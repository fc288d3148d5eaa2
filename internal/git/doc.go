// Package git provides low-level Git operations.
//
// It wraps git command execution and go-git for:
//   - Repository state (root, current branch, branch tips, remotes)
//   - Commit graph queries through git-branchless revsets
//   - Hiding and pruning local history
//
// This package should be the only place where git commands are executed.
package git
