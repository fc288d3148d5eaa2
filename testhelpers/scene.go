package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scene is a throwaway repository that the test process has moved into,
// with HOME pointed at a scratch directory so user config and logs stay
// isolated.
type Scene struct {
	Dir  string
	Home string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene)

// NewScene creates a repository with one commit on main, changes into it and
// runs setup.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	repo := NewGitRepo(t)
	repo.Commit("initial")

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("STACKTRAIN_CONFIG", "")
	t.Setenv("STACKTRAIN_LOG_FILE", filepath.Join(home, "stacktrain.log"))
	t.Chdir(repo.Dir)

	scene := &Scene{Dir: repo.Dir, Home: home, Repo: repo}
	if setup != nil {
		setup(scene)
	}
	return scene
}

// WriteRepoConfig writes raw JSON to the repository's stacktrain config.
func (s *Scene) WriteRepoConfig(t *testing.T, contents string) {
	t.Helper()
	path := filepath.Join(s.Dir, ".git", ".stacktrain_config")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// WriteUserConfig writes raw YAML to the user's stacktrain config.
func (s *Scene) WriteUserConfig(t *testing.T, contents string) {
	t.Helper()
	dir := filepath.Join(s.Home, ".config", "stacktrain")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644))
}
