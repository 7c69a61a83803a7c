package interfaces

import "context"

// RenderContext threads per-render mutable state explicitly through the
// Markdown Engine Facade's extension callbacks (spec.md §9: "thread this
// state as an explicit RenderContext value passed through ... Do not
// introduce process-wide singletons").
type RenderContext struct {
	Context context.Context

	// CurrentFile is the Markdown source path being rendered, used to stamp
	// LocalDefinition.SourceFile and diagnostics.
	CurrentFile string

	// Store is the reference store consulted for xref/tref content lookups.
	Store ReferenceStore

	// AnchorSymbol is emitted by TOC heading anchors.
	AnchorSymbol string

	// Definitions accumulates LocalDefinition entries as `def` tags render.
	Definitions []LocalDefinition

	// SpecGroups aggregates `[[spec:...]]`/`[[spec-<group>:...]]` references
	// for bibliography rendering.
	SpecGroups map[string][]SpecReference

	// Findings receives non-fatal diagnostics raised while rendering
	// (TagMalformed, XrefWithMultipleAliases). NestedTref and NestedXref are
	// raised by fetch.ApplyOutcomes instead, and an xref to an undeclared
	// external spec renders a fallback span without adding a finding.
	Findings *[]Finding
}

// MarkdownEngine renders Markdown to HTML with the terminology tag
// extensions registered (spec.md §4.9).
type MarkdownEngine interface {
	Render(rc *RenderContext, markdown string) (string, error)
}

// TagRenderer transforms one parsed TerminologyTag into its HTML fragment
// (spec.md §4.10).
type TagRenderer interface {
	Render(rc *RenderContext, tag TerminologyTag) (string, error)
}
