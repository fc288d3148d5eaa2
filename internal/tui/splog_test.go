package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Run("console output is bare messages", func(t *testing.T) {
		var out strings.Builder
		splog := NewSplogWithWriter(&out, false)

		splog.Info("updated %s", "feature/a")
		splog.Warn("careful")
		splog.Error("failed")
		splog.Tip("try again")
		splog.Debug("hidden")

		require.Equal(t, "updated feature/a\n⚠️  careful\n❌ failed\n💡 try again\n", out.String())
	})

	t.Run("debug output when enabled", func(t *testing.T) {
		var out strings.Builder
		NewSplogWithWriter(&out, true).Debug("query %q", "stack()")
		require.Equal(t, "query \"stack()\"\n", out.String())
	})

	t.Run("quiet suppresses console output", func(t *testing.T) {
		var out strings.Builder
		splog := NewSplogWithWriter(&out, false)
		splog.SetQuiet(true)
		splog.Info("nope")
		splog.Page("nope")
		splog.Newline()
		splog.SetQuiet(false)
		splog.Page("yes")
		require.Equal(t, "yes", out.String())
	})

	t.Run("file log keeps debug records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "stacktrain.log")
		splog, err := NewSplogWithConfig(path)
		require.NoError(t, err)
		splog.SetQuiet(true)
		splog.Debug("resolved base %s", "main")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "level=DEBUG")
		require.Contains(t, string(data), `msg="resolved base main"`)
	})
}

func TestLogFilePath(t *testing.T) {
	t.Run("explicit file wins", func(t *testing.T) {
		t.Setenv("STACKTRAIN_LOG_FILE", "/tmp/custom.log")
		t.Setenv("XDG_STATE_HOME", "/state")
		require.Equal(t, "/tmp/custom.log", LogFilePath())
	})

	t.Run("xdg state home", func(t *testing.T) {
		t.Setenv("STACKTRAIN_LOG_FILE", "")
		t.Setenv("XDG_STATE_HOME", "/state")
		require.Equal(t, filepath.Join("/state", "stacktrain", "stacktrain.log"), LogFilePath())
	})

	t.Run("relative xdg state home is ignored", func(t *testing.T) {
		t.Setenv("STACKTRAIN_LOG_FILE", "")
		t.Setenv("XDG_STATE_HOME", "state")
		t.Setenv("HOME", "/home/train")
		require.Equal(t, filepath.Join("/home/train", ".local", "state", "stacktrain", "stacktrain.log"), LogFilePath())
	})

	t.Run("home state directory", func(t *testing.T) {
		t.Setenv("STACKTRAIN_LOG_FILE", "")
		t.Setenv("XDG_STATE_HOME", "")
		t.Setenv("HOME", "/home/train")
		require.Equal(t, filepath.Join("/home/train", ".local", "state", "stacktrain", "stacktrain.log"), LogFilePath())
	})
}

func TestCreateLumberjackLogger(t *testing.T) {
	t.Setenv("STACKTRAIN_LOG_MAX_SIZE", "5")
	t.Setenv("STACKTRAIN_LOG_MAX_BACKUPS", "0")
	t.Setenv("STACKTRAIN_LOG_MAX_AGE", "bogus")

	logger := createLumberjackLogger("x.log")
	require.Equal(t, 5, logger.MaxSize)
	require.Equal(t, 0, logger.MaxBackups)
	require.Equal(t, 30, logger.MaxAge)
}
