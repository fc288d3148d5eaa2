package tui

import (
	"os"

	"github.com/mattn/go-isatty"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsStdoutTTY reports whether stdout is a terminal
func IsStdoutTTY() bool {
	return isTerminal(os.Stdout)
}

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Interactive reports whether an operator can be prompted: a terminal is
// attached and STACKTRAIN_TEST_NO_INTERACTIVE is unset
func Interactive() bool {
	return os.Getenv("STACKTRAIN_TEST_NO_INTERACTIVE") == "" && IsTTY()
}
