package actions

import (
	"fmt"
	"strings"

	"stacktrain.dev/stacktrain/internal/train"
	"stacktrain.dev/stacktrain/internal/tui"
)

// Pluralize returns the plural of word unless count is 1.
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	for _, suffix := range []string{"ch", "sh", "s", "x"} {
		if strings.HasSuffix(word, suffix) {
			return word + "es"
		}
	}
	return word + "s"
}

// formatRequest renders a request reference such as "#12 (feature/x)".
func formatRequest(number int, branch string) string {
	return fmt.Sprintf("#%d (%s)", number, tui.ColorBranch(branch))
}

// formatTrain renders a member list as "#1 → #2 → #3".
func formatTrain(members []int) string {
	if len(members) == 0 {
		return tui.ColorDim("(empty)")
	}
	refs := make([]string, len(members))
	for i, n := range members {
		refs[i] = fmt.Sprintf("#%d", n)
	}
	return strings.Join(refs, " → ")
}

// countActions tallies decisions by action.
func countActions(decisions []train.Decision) map[train.Action]int {
	counts := make(map[train.Action]int)
	for _, d := range decisions {
		counts[d.Action]++
	}
	return counts
}
