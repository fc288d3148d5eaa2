package train

import (
	"regexp"
	"strconv"
	"strings"
)

// Markers delimiting the machine-managed region of a pull request description.
const (
	AnnotationStart = "<!-- stacktrain:start -->"
	AnnotationEnd   = "<!-- stacktrain:end -->"
)

var referenceRegex = regexp.MustCompile(`#(\d+)`)

// region is a complete annotation in a description: [start, end) covers
// both markers, body is the text between them.
type region struct {
	start, end int
	body       string
}

// findRegions pairs each end marker with the nearest start marker before it,
// so a stray start marker in prose never swallows the text after it.
func findRegions(description string) []region {
	var regions []region
	pos := 0
	for {
		e := strings.Index(description[pos:], AnnotationEnd)
		if e < 0 {
			return regions
		}
		e += pos
		next := e + len(AnnotationEnd)

		s := strings.LastIndex(description[pos:e], AnnotationStart)
		if s >= 0 {
			s += pos
			body := description[s+len(AnnotationStart) : e]
			body = strings.TrimPrefix(body, "\n")
			body = strings.TrimSuffix(body, "\n")
			regions = append(regions, region{start: s, end: next, body: body})
		}
		pos = next
	}
}

// ExtractAnnotation returns the body of the first annotation region in
// description. ok is false when there is no complete region.
func ExtractAnnotation(description string) (body string, ok bool) {
	regions := findRegions(description)
	if len(regions) == 0 {
		return "", false
	}
	return regions[0].body, true
}

// UpsertAnnotation replaces the first annotation region of description with
// one holding body, dropping any further regions, and leaves every other
// byte untouched. Without a region, one is appended after a blank line.
func UpsertAnnotation(description, body string) string {
	rendered := renderRegion(body)

	regions := findRegions(description)
	if len(regions) == 0 {
		if description == "" {
			return rendered
		}
		return description + "\n\n" + rendered
	}

	var b strings.Builder
	b.Grow(len(description) + len(rendered))
	b.WriteString(description[:regions[0].start])
	b.WriteString(rendered)
	prev := regions[0].end
	for _, r := range regions[1:] {
		b.WriteString(description[prev:r.start])
		prev = r.end
	}
	b.WriteString(description[prev:])
	return b.String()
}

// ParseIDs returns every #<digits> reference in body, in order of
// appearance. Duplicates are kept.
func ParseIDs(body string) []int {
	matches := referenceRegex.FindAllStringSubmatch(body, -1)
	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			// Out of int range; not something we wrote.
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func renderRegion(body string) string {
	return AnnotationStart + "\n" + body + "\n" + AnnotationEnd
}
