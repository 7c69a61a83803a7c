package fetch

import (
	"fmt"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const (
	notFoundContent    = "This term was not found in the external repository."
	notFoundCommitHash = "not found"
)

// ApplyOutcomes merges FetchAll's results back onto every enriched record
// in store (spec.md §4.7 "Contracts"). It is a free function rather than a
// Fetcher method because it needs the Reference Store, which
// interfaces.RemoteFetcher's FetchAll signature intentionally omits to keep
// the fetch and merge concerns independently testable; internal/build wires
// the two together.
func ApplyOutcomes(store interfaces.ReferenceStore, outcomes map[string]interfaces.FetchOutcome, diagnostics interfaces.DiagnosticsBuffer) {
	for _, record := range store.Records() {
		if record.Owner == "" || record.Repo == "" {
			continue
		}
		outcome, ok := outcomes[record.Owner+"/"+record.Repo]
		if !ok {
			continue
		}

		if outcome.Err != nil {
			store.Put(markNotFound(record))
			continue
		}

		term, found := outcome.Terms[record.Term]
		if !found {
			store.Put(markNotFound(record))
			if diagnostics != nil {
				diagnostics.Add(interfaces.Finding{
					Kind:        "TermNotFoundInRemote",
					Level:       interfaces.LevelWarning,
					Operation:   "fetch.apply",
					Message:     fmt.Sprintf("term %q was not found in %s/%s", record.Term, record.Owner, record.Repo),
					SourceFiles: sourceFilePaths(record.SourceFiles),
				})
			}
			continue
		}

		record.Content = term.Content
		record.Classes = term.Classes
		record.CommitHash = term.CommitHash
		record.AvatarURL = term.AvatarURL

		if diagnostics != nil && containsClass(term.Classes, "term-external") {
			switch record.Source {
			case interfaces.SourceTref:
				diagnostics.Add(interfaces.Finding{
					Kind:        "NestedTref",
					Level:       interfaces.LevelError,
					Operation:   "fetch.apply",
					Message:     fmt.Sprintf("%s/%s transcludes a term that is itself externally defined", record.ExternalSpec, record.Term),
					SourceFiles: sourceFilePaths(record.SourceFiles),
				})
			case interfaces.SourceXref:
				diagnostics.Add(interfaces.Finding{
					Kind:        "NestedXref",
					Level:       interfaces.LevelWarning,
					Operation:   "fetch.apply",
					Message:     fmt.Sprintf("%s/%s cross-references a term that is itself externally defined", record.ExternalSpec, record.Term),
					SourceFiles: sourceFilePaths(record.SourceFiles),
				})
			}
		}

		store.Put(record)
	}
}

func markNotFound(record interfaces.ReferenceRecord) interfaces.ReferenceRecord {
	record.Content = notFoundContent
	record.CommitHash = notFoundCommitHash
	record.AvatarURL = ""
	return record
}

func sourceFilePaths(refs []interfaces.SourceFileRef) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.File)
	}
	return out
}

func containsClass(classes []string, target string) bool {
	for _, c := range classes {
		if c == target {
			return true
		}
	}
	return false
}
