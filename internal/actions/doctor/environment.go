package doctor

import (
	"fmt"

	"stacktrain.dev/stacktrain/internal/runtime"
	"stacktrain.dev/stacktrain/internal/tui"
)

// checkEnvironment reports the outcome of each tool and credential check
func checkEnvironment(splog *tui.Splog, env *runtime.Environment, warnings []string, errors []string) ([]string, []string) {
	for _, check := range env.Checks {
		if check.Err != nil {
			errors = append(errors, check.Err.Error())
			splog.Error("  %s: %v", check.Name, check.Err)
			continue
		}
		splog.Info("  ✅ %s", describe(check))
	}
	return warnings, errors
}

func describe(check runtime.Check) string {
	if check.Detail == "" {
		return check.Name
	}
	return fmt.Sprintf("%s (%s)", check.Name, check.Detail)
}
