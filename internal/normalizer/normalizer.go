// Package normalizer implements the Normalizer component (spec.md §4.3): it
// enforces canonical whitespace and prefix conventions on terminology
// Markdown content before the Tag Parser ever sees it. Normalize is
// idempotent — running it twice produces the same output as running it once.
package normalizer

import (
	"strings"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// Normalizer rewrites terminology Markdown content into canonical form:
//   - a line opening a `[[def:...]]` or `[[tref:...]]` tag is followed by
//     exactly one blank line;
//   - every other non-empty, non-comment, non-tag-opener line is prefixed
//     with "~ " (a continuation marker), unless already so prefixed;
//   - runs of two or more blank lines collapse to one;
//   - the content ends with exactly one trailing newline.
type Normalizer struct{}

// New constructs a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize applies the canonical form described above.
func (n *Normalizer) Normalize(content string) string {
	lines := strings.Split(content, "\n")
	lines = collapseBlankRuns(lines)
	lines = prefixContinuationLines(lines)
	lines = enforceBlankAfterOpeners(lines)
	lines = collapseBlankRuns(lines)
	lines = trimTrailingBlankLines(lines)

	return strings.Join(lines, "\n") + "\n"
}

func isTagOpener(trimmed string) bool {
	return strings.HasPrefix(trimmed, "[[")
}

func isHTMLComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "<!--")
}

func prefixContinuationLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			out[i] = line
		case isTagOpener(trimmed):
			out[i] = line
		case isHTMLComment(trimmed):
			out[i] = line
		case strings.HasPrefix(line, "~ "):
			out[i] = line
		default:
			out[i] = "~ " + line
		}
	}
	return out
}

func enforceBlankAfterOpeners(lines []string) []string {
	out := make([]string, 0, len(lines)+1)
	for i := 0; i < len(lines); i++ {
		out = append(out, lines[i])
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "[[def:") && !strings.HasPrefix(trimmed, "[[tref:") {
			continue
		}
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
			out = append(out, lines[i+1])
			i++
			continue
		}
		out = append(out, "")
	}
	return out
}

func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	blankRun := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if blankRun {
				continue
			}
			blankRun = true
			out = append(out, "")
			continue
		}
		blankRun = false
		out = append(out, line)
	}
	return out
}

func trimTrailingBlankLines(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

var _ interfaces.Normalizer = (*Normalizer)(nil)
