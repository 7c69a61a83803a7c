package render

import (
	"regexp"
	"strings"
)

var (
	idUnsafeChars = regexp.MustCompile(`[()\[\]{}/\\]`)
	idDashRuns    = regexp.MustCompile(`-+`)
)

// SanitizeID turns a term into the id fragment the Tag Renderer and
// Validator both key on (spec.md §4.10): unsafe characters become `-`,
// runs of `-` collapse to one, leading/trailing `-` are stripped, and the
// result is lowercased.
func SanitizeID(term string) string {
	s := idUnsafeChars.ReplaceAllString(term, "-")
	s = idDashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}

func sanitizeID(term string) string {
	return SanitizeID(term)
}
