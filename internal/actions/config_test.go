package actions_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrain.dev/stacktrain/internal/actions"
	"stacktrain.dev/stacktrain/internal/config"
	"stacktrain.dev/stacktrain/internal/tui"
	"stacktrain.dev/stacktrain/testhelpers"
)

func TestConfigActions(t *testing.T) {
	t.Run("set then list", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		var out strings.Builder
		splog := tui.NewSplogWithWriter(&out, false)

		require.NoError(t, actions.ConfigSetAction(splog, scene.Dir, "trunk", "develop"))
		require.NoError(t, actions.ConfigSetAction(splog, scene.Dir, "mergedRevset", ""))

		cfg, err := config.Load(scene.Dir)
		require.NoError(t, err)
		require.NoError(t, actions.ConfigListAction(splog, cfg, scene.Dir))

		require.Contains(t, out.String(), "trunk: develop")
		require.Contains(t, out.String(), "mergedRevset: (disabled)")
		require.Contains(t, out.String(), "wait.maxAttempts: 20")
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		var out strings.Builder

		err := actions.ConfigSetAction(tui.NewSplogWithWriter(&out, false), scene.Dir, "colour", "blue")
		require.ErrorContains(t, err, `unknown config key "colour"`)
	})
}
