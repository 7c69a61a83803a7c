package interfaces

// TagKind enumerates the terminology tag variants recognised by the Tag
// Parser (spec.md §3, §4.5).
type TagKind string

const (
	TagDef  TagKind = "def"
	TagRef  TagKind = "ref"
	TagIref TagKind = "iref"
	TagXref TagKind = "xref"
	TagTref TagKind = "tref"
)

// TerminologyTag is the parsed, structured form of a single `[[...]]`
// lexeme. Only the fields relevant to Kind are populated; callers should
// switch on Kind before reading ExternalSpec/Aliases/Alias.
type TerminologyTag struct {
	Kind TagKind

	// Term is the source-authored term identifier. Populated for every kind.
	Term string

	// Aliases holds def/tref alias lists, in source order.
	Aliases []string

	// ExternalSpec is populated for xref/tref.
	ExternalSpec string

	// Alias is the single optional xref alias (spec.md: "xref carries at
	// most one alias").
	Alias string

	// Raw is the original `[[...]]` lexeme, kept for diagnostics.
	Raw string

	// Warning carries a non-fatal parser diagnostic code, e.g.
	// "xref_multiple_aliases" when an xref supplied more than one alias
	// (spec.md §4.5: "parser emits a diagnostic but accepts a single alias
	// when more appear"). Empty when the tag parsed cleanly.
	Warning string
}

// SourceFileType distinguishes how a file referenced a term.
type SourceFileType string

const (
	SourceXref SourceFileType = "xref"
	SourceTref SourceFileType = "tref"
)

// SourceFileRef records one file's reference to a given record, with the
// kind of reference it made.
type SourceFileRef struct {
	File string
	Type SourceFileType
}

// ReferenceRecord is the collector's canonical, persisted unit: at most one
// record exists per (ExternalSpec, Term) pair across a build (spec.md §3).
type ReferenceRecord struct {
	ExternalSpec string
	Term         string

	TrefAliases []string
	XrefAliases []string

	SourceFiles []SourceFileRef

	// Enrichment, populated by the Remote Fetcher.
	Owner      string
	Repo       string
	RepoURL    string
	GHPageURL  string
	AvatarURL  string
	Branch     string
	CommitHash string
	Content    string
	Classes    []string
	Site       string
	// Source records which tag kind most recently *discovered* (as opposed
	// to merely referenced) this record: "xref" or "tref", or empty when
	// the record predates this build's discovery pass.
	Source SourceFileType
}

// Key returns the (ExternalSpec, Term) identity of the record.
func (r ReferenceRecord) Key() RecordKey {
	return RecordKey{ExternalSpec: r.ExternalSpec, Term: r.Term}
}

// FirstTrefAlias returns the first element of TrefAliases, or "" when absent.
func (r ReferenceRecord) FirstTrefAlias() string {
	if len(r.TrefAliases) == 0 {
		return ""
	}
	return r.TrefAliases[0]
}

// FirstXrefAlias returns the first element of XrefAliases, or "" when absent.
func (r ReferenceRecord) FirstXrefAlias() string {
	if len(r.XrefAliases) == 0 {
		return ""
	}
	return r.XrefAliases[0]
}

// RecordKey is the store's map key: (ExternalSpec, Term).
type RecordKey struct {
	ExternalSpec string
	Term         string
}

// LocalDefinition is collected by the Tag Renderer while rendering Markdown;
// it feeds the Validator's dangling-definition check.
type LocalDefinition struct {
	Term         string
	PrimaryAlias string
	SourceFile   string
}

// SpecReference aggregates `[[spec:...]]` bibliography entries discovered
// during rendering (consumed by the Markdown Engine Facade's spec-reference
// extension, spec.md §4.9).
type SpecReference struct {
	Group string
	Name  string
}
