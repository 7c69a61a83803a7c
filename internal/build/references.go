package build

import "github.com/trustoverip/spec-up-t-go/pkg/interfaces"

// collectLocalReferences scans every processed file for `ref`/`iref` tag
// occurrences, independently of internal/collector (which only tracks
// xref/tref for the Reference Store). The Validator takes these occurrence
// maps directly (spec.md §4.12), one entry appended per occurrence so Count
// reflects total mentions while the map value itself is later deduped to
// source files.
func collectLocalReferences(files []interfaces.MarkdownFile, scanner interfaces.TagScanner, parser interfaces.TagParser) (refs, irefs map[string][]string) {
	refs = map[string][]string{}
	irefs = map[string][]string{}

	for _, file := range files {
		for _, match := range scanner.Scan(file.Content) {
			tag, err := parser.Parse(match.Raw)
			if err != nil {
				continue
			}
			switch tag.Kind {
			case interfaces.TagRef:
				refs[tag.Term] = append(refs[tag.Term], file.Path)
			case interfaces.TagIref:
				irefs[tag.Term] = append(irefs[tag.Term], file.Path)
			}
		}
	}
	return refs, irefs
}
