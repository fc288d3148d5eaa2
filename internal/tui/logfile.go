package tui

import (
	"os"
	"path/filepath"
)

const logFileName = "stacktrain.log"

// LogFilePath picks where the debug log goes: STACKTRAIN_LOG_FILE if set,
// else the XDG state directory ($XDG_STATE_HOME, or ~/.local/state). It
// falls back to the system temp directory when there is no home.
func LogFilePath() string {
	if path := os.Getenv("STACKTRAIN_LOG_FILE"); path != "" {
		return path
	}
	if state := os.Getenv("XDG_STATE_HOME"); filepath.IsAbs(state) {
		return filepath.Join(state, "stacktrain", logFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "stacktrain", logFileName)
	}
	return filepath.Join(os.TempDir(), logFileName)
}
