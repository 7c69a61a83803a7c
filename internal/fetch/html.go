package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// terminologyListClass is the class the Tag Renderer / Postprocessor give
// the main terminology <dl> (spec.md §4.11's classification decisions);
// the Remote Fetcher looks for the same class in a remote spec's built HTML.
const terminologyListClass = "terms-and-definitions-list"

// canonicalTermClass marks the <dt> child carrying the remote spec's
// canonical, unaliased term identifier (spec.md §4.7 step 3).
const canonicalTermClass = "term-local-original-term"

// extractTerms parses a remote spec's rendered HTML and returns every term
// it exports, keyed by canonical term identifier (spec.md §4.7 steps 3-4).
func extractTerms(htmlBody string) (map[string]interfaces.FetchedTerm, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, err
	}

	list := doc.Find("." + terminologyListClass).First()
	if list.Length() == 0 {
		return map[string]interfaces.FetchedTerm{}, nil
	}

	terms := make(map[string]interfaces.FetchedTerm)
	list.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		original := dt.Find("." + canonicalTermClass).First()
		if original.Length() == 0 {
			// Remote spec isn't exporting canonical identifiers; skip.
			return
		}
		term := strings.TrimSpace(original.Text())
		if term == "" {
			return
		}

		var content strings.Builder
		dt.NextUntil("dt").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.Is("dd")
		}).Each(func(_ int, dd *goquery.Selection) {
			if outer, err := goquery.OuterHtml(dd); err == nil {
				content.WriteString(outer)
			}
		})

		terms[term] = interfaces.FetchedTerm{
			Term:    term,
			Content: content.String(),
			Classes: dtClasses(dt),
		}
	})

	return terms, nil
}

// dtClasses returns dt's class list intersected with {term-local,
// term-external}, the only two classes the Validator/Applier care about.
func dtClasses(dt *goquery.Selection) []string {
	raw := strings.Fields(dt.AttrOr("class", ""))
	var out []string
	for _, c := range raw {
		if c == "term-local" || c == "term-external" {
			out = append(out, c)
		}
	}
	return out
}
