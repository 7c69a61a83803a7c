// Package store implements the Reference Store (spec.md §3, §4.8): the
// keyed, mergeable collection of ReferenceRecords, plus persistence of its
// two serialized forms and the client-side data snapshot.
package store

import (
	"sort"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// Store is an in-memory interfaces.ReferenceStore keyed by
// (ExternalSpec, Term).
type Store struct {
	records map[interfaces.RecordKey]interfaces.ReferenceRecord
}

// New constructs an empty Store.
func New() *Store {
	return &Store{records: make(map[interfaces.RecordKey]interfaces.ReferenceRecord)}
}

// Get returns the record for key, if present.
func (s *Store) Get(key interfaces.RecordKey) (interfaces.ReferenceRecord, bool) {
	r, ok := s.records[key]
	return r, ok
}

// Put inserts or replaces the record for its own key.
func (s *Store) Put(record interfaces.ReferenceRecord) {
	s.records[record.Key()] = record
}

// Delete removes the record for key, if present.
func (s *Store) Delete(key interfaces.RecordKey) {
	delete(s.records, key)
}

// Keys returns every key currently stored, in no particular order.
func (s *Store) Keys() []interfaces.RecordKey {
	keys := make([]interfaces.RecordKey, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	return keys
}

// Records returns every record sorted by (ExternalSpec, Term).
func (s *Store) Records() []interfaces.ReferenceRecord {
	out := make([]interfaces.ReferenceRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExternalSpec != out[j].ExternalSpec {
			return out[i].ExternalSpec < out[j].ExternalSpec
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// Len reports the number of records currently stored.
func (s *Store) Len() int {
	return len(s.records)
}

var _ interfaces.ReferenceStore = (*Store)(nil)
