package store

import (
	"testing"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

func TestPutGetDelete(t *testing.T) {
	s := New()
	key := interfaces.RecordKey{ExternalSpec: "keri", Term: "delegator"}

	if _, ok := s.Get(key); ok {
		t.Fatal("expected no record before Put")
	}

	s.Put(interfaces.ReferenceRecord{ExternalSpec: "keri", Term: "delegator"})
	if _, ok := s.Get(key); !ok {
		t.Fatal("expected record after Put")
	}
	if s.Len() != 1 {
		t.Fatalf("expected Len 1, got %d", s.Len())
	}

	s.Delete(key)
	if _, ok := s.Get(key); ok {
		t.Fatal("expected no record after Delete")
	}
	if s.Len() != 0 {
		t.Fatalf("expected Len 0, got %d", s.Len())
	}
}

func TestRecordsAreSortedByExternalSpecThenTerm(t *testing.T) {
	s := New()
	s.Put(interfaces.ReferenceRecord{ExternalSpec: "keri", Term: "zeta"})
	s.Put(interfaces.ReferenceRecord{ExternalSpec: "acdc", Term: "issuer"})
	s.Put(interfaces.ReferenceRecord{ExternalSpec: "keri", Term: "alpha"})

	records := s.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].ExternalSpec != "acdc" {
		t.Fatalf("expected acdc first, got %q", records[0].ExternalSpec)
	}
	if records[1].ExternalSpec != "keri" || records[1].Term != "alpha" {
		t.Fatalf("expected keri/alpha second, got %q/%q", records[1].ExternalSpec, records[1].Term)
	}
	if records[2].Term != "zeta" {
		t.Fatalf("expected zeta last, got %q", records[2].Term)
	}
}
