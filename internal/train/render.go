package train

import (
	"fmt"
	"strings"
)

// PinGlyph marks the entry of the pull request the annotation lives in.
const PinGlyph = "📍"

const trainHeading = "### Train"

// RenderTrain renders members as a bulleted list of references under a
// heading, pinning the entry equal to self.
func RenderTrain(members []int, self int) string {
	var b strings.Builder
	b.WriteString(trainHeading)
	b.WriteString("\n")
	if len(members) > 0 {
		b.WriteString("\n")
	}
	for i, id := range members {
		fmt.Fprintf(&b, "- #%d", id)
		if id == self {
			b.WriteString(" " + PinGlyph)
		}
		if i < len(members)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
