package train

import (
	"regexp"
	"strconv"
)

var bareRevsetName = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)

// RevsetName renders a branch or commit name as a revset atom, quoting it
// when it contains characters the revset grammar treats as operators.
func RevsetName(name string) string {
	if bareRevsetName.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}

// Ancestors returns ancestors(x).
func Ancestors(x string) string {
	return "ancestors(" + x + ")"
}

// Descendants returns descendants(x).
func Descendants(x string) string {
	return "descendants(" + x + ")"
}

// Stack returns stack(x).
func Stack(x string) string {
	return "stack(" + x + ")"
}

// Union returns (a + b).
func Union(a, b string) string {
	return "(" + a + " + " + b + ")"
}

// Intersect returns (a & b).
func Intersect(a, b string) string {
	return "(" + a + " & " + b + ")"
}

// Difference returns (a - b).
func Difference(a, b string) string {
	return "(" + a + " - " + b + ")"
}

// MembershipRevset selects stack branches that are ancestors or descendants
// of branch, inclusive.
func MembershipRevset(branch, stackRevset string) string {
	b := RevsetName(branch)
	return Intersect(Union(Ancestors(b), Descendants(b)), stackRevset)
}

// BaseRevset selects stack branches strictly below branch, excluding those
// matched by mergedRevset when it is set.
func BaseRevset(branch, stackRevset, mergedRevset string) string {
	b := RevsetName(branch)
	revset := Difference(Intersect(Ancestors(b), stackRevset), b)
	if mergedRevset != "" {
		revset = Difference(revset, mergedRevset)
	}
	return revset
}

// LeftoverRevset selects draft branches no longer connected to the main branch.
const LeftoverRevset = "draft() - descendants(main())"

// DivergingRevset selects commits reachable from branch but not from the
// main branch.
func DivergingRevset(branch string) string {
	return Ancestors(RevsetName(branch)) + " - " + Ancestors("main()")
}
