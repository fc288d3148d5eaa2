package actions_test

import (
	"os"
	"testing"

	"stacktrain.dev/stacktrain/internal/tui"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("NO_COLOR", "1")
	tui.InitColorProfile()
	os.Exit(m.Run())
}
