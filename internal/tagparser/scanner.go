package tagparser

import (
	"regexp"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// lexemePattern matches a full `[[...]]` occurrence. Tag content never
// itself contains brackets, so a non-nested match is sufficient (spec.md
// §9's second Open Question notes the collector's own membership test has
// an analogous, deliberately un-fixed limitation).
var lexemePattern = regexp.MustCompile(`\[\[[^\[\]]*\]\]`)

// Scanner implements interfaces.TagScanner over the `[[...]]` lexeme family.
type Scanner struct{}

// NewScanner constructs a Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan locates every `[[...]]` occurrence in content, in left-to-right order.
func (s *Scanner) Scan(content string) []interfaces.TagMatch {
	locs := lexemePattern.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]interfaces.TagMatch, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, interfaces.TagMatch{
			Start: loc[0],
			End:   loc[1],
			Raw:   content[loc[0]:loc[1]],
		})
	}
	return matches
}

var _ interfaces.TagScanner = (*Scanner)(nil)
