package interfaces

// ReferenceStore is the persistent, keyed collection of enriched references
// maintained across builds (spec.md §3, §4.8). Implementations must
// preserve insertion order for alias lists and SourceFiles, and must keep
// the invariant that at most one record exists per RecordKey.
type ReferenceStore interface {
	// Get returns the record for key, if present.
	Get(key RecordKey) (ReferenceRecord, bool)

	// Put inserts or replaces the record for its own key.
	Put(record ReferenceRecord)

	// Delete removes the record for key, if present.
	Delete(key RecordKey)

	// Keys returns every key currently stored, in no particular order.
	Keys() []RecordKey

	// Records returns every record sorted by (ExternalSpec, Term), ready for
	// deterministic serialization (spec.md §4.8).
	Records() []ReferenceRecord

	// Len reports the number of records currently stored.
	Len() int
}

// StorePersistence reads and writes the on-disk cache artifacts described
// in spec.md §6: xtrefs-data.json, xtrefs-data.js, history snapshots, and
// raw per-repo fetch snapshots.
type StorePersistence interface {
	// Load reads a previously persisted store from cacheDir, returning an
	// empty store (not an error) when no prior snapshot exists.
	Load(cacheDir string) (ReferenceStore, error)

	// Save writes xtrefs-data.json, xtrefs-data.js, and a timestamped
	// history snapshot for store into cacheDir.
	Save(cacheDir string, store ReferenceStore, unixMilli int64) error

	// SaveFetchSnapshot writes a raw remote fetch result snapshot named
	// with unixMilli, owner, and repo.
	SaveFetchSnapshot(cacheDir string, unixMilli int64, owner, repo string, terms map[string]FetchedTerm) error
}
