// Package tui provides the terminal user interface for stacktrain.
//
// It handles:
//   - Confirmation prompts (using survey)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss and termenv)
//   - The spinner shown while waiting on GitHub (using bubbletea)
package tui
