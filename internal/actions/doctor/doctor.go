// Package doctor provides diagnostic functionality for checking the stacktrain environment and repository.
package doctor

import (
	"fmt"

	"stacktrain.dev/stacktrain/internal/config"
	"stacktrain.dev/stacktrain/internal/runtime"
	"stacktrain.dev/stacktrain/internal/tui"
)

// Options contains options for the doctor command
type Options struct {
	Environment *runtime.Environment
	// Config is nil when it could not be loaded.
	Config    *config.Config
	ConfigErr error
}

// Action reports every precondition stacktrain depends on
func Action(splog *tui.Splog, opts Options) error {
	splog.Info("Running stacktrain doctor...")
	splog.Newline()

	var warnings []string
	var errors []string

	splog.Info("Environment:")
	warnings, errors = checkEnvironment(splog, opts.Environment, warnings, errors)

	splog.Newline()

	splog.Info("Repository:")
	warnings, errors = checkRepository(splog, opts, warnings, errors)

	splog.Newline()
	switch {
	case len(errors) > 0:
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(errors), len(warnings))
		for _, err := range errors {
			splog.Error("  %s", err)
		}
		for _, warn := range warnings {
			splog.Warn("  %s", warn)
		}
		return fmt.Errorf("doctor found %d error(s)", len(errors))
	case len(warnings) > 0:
		splog.Info("Doctor found %d warning(s). Your stacktrain setup is mostly healthy.", len(warnings))
		for _, warn := range warnings {
			splog.Warn("  %s", warn)
		}
	default:
		splog.Info("✅ All checks passed. Your stacktrain setup is healthy.")
	}

	return nil
}
