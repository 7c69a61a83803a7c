package interfaces

import "context"

// ReferenceCollector scans Markdown files for xref/tref tags, merges
// discoveries into the reference store, prunes stale records, and enriches
// surviving records with owner/repo/branch metadata (spec.md §4.6).
type ReferenceCollector interface {
	Collect(ctx context.Context, files []MarkdownFile, specs []ExternalSpec, store ReferenceStore) error
}
