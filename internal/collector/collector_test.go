package collector

import (
	"context"
	"testing"

	"github.com/trustoverip/spec-up-t-go/internal/store"
	"github.com/trustoverip/spec-up-t-go/internal/tagparser"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

type recordingBuffer struct {
	findings []interfaces.Finding
}

func (b *recordingBuffer) Add(f interfaces.Finding)  { b.findings = append(b.findings, f) }
func (b *recordingBuffer) All() []interfaces.Finding { return b.findings }
func (b *recordingBuffer) HasErrors() bool           { return false }

func newCollector(buf *recordingBuffer) *Collector {
	return New(tagparser.NewScanner(), tagparser.NewParser(), WithDiagnostics(buf))
}

var keriSpec = interfaces.ExternalSpec{
	ExternalSpec: "keri",
	URL:          "https://github.com/trustoverip/keri",
	GHPage:       "https://trustoverip.github.io/keri/",
}

func TestCollectMergesXrefWithAlias(t *testing.T) {
	buf := &recordingBuffer{}
	c := newCollector(buf)
	s := store.New()

	files := []interfaces.MarkdownFile{
		{Path: "terms/delegation.md", Content: "See [[xref: keri, delegator, del]] for details."},
	}

	if err := c.Collect(context.Background(), files, []interfaces.ExternalSpec{keriSpec}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, ok := s.Get(interfaces.RecordKey{ExternalSpec: "keri", Term: "delegator"})
	if !ok {
		t.Fatal("expected a keri/delegator record")
	}
	if record.FirstXrefAlias() != "del" {
		t.Fatalf("expected first xref alias 'del', got %q", record.FirstXrefAlias())
	}
	if record.Owner != "trustoverip" || record.Repo != "keri" {
		t.Fatalf("expected enrichment owner/repo, got %q/%q", record.Owner, record.Repo)
	}
	if record.Branch != "main" {
		t.Fatalf("expected default branch main, got %q", record.Branch)
	}
	if len(record.SourceFiles) != 1 || record.SourceFiles[0].File != "terms/delegation.md" {
		t.Fatalf("unexpected source files: %+v", record.SourceFiles)
	}
}

func TestCollectFlagsUnknownExternalSpec(t *testing.T) {
	buf := &recordingBuffer{}
	c := newCollector(buf)
	s := store.New()

	files := []interfaces.MarkdownFile{
		{Path: "terms/a.md", Content: "[[xref: unknown-spec, term-a]]"},
	}

	if err := c.Collect(context.Background(), files, nil, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, f := range buf.findings {
		if f.Kind == "UnknownExternalSpec" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an UnknownExternalSpec finding, got %+v", buf.findings)
	}
	if _, ok := s.Get(interfaces.RecordKey{ExternalSpec: "unknown-spec", Term: "term-a"}); !ok {
		t.Fatal("expected record to be kept even though its spec is undeclared")
	}
}

func TestCollectPrunesRecordsNoLongerMentioned(t *testing.T) {
	buf := &recordingBuffer{}
	c := newCollector(buf)
	s := store.New()
	s.Put(interfaces.ReferenceRecord{ExternalSpec: "keri", Term: "stale-term"})

	files := []interfaces.MarkdownFile{
		{Path: "terms/a.md", Content: "nothing relevant here"},
	}

	if err := c.Collect(context.Background(), files, []interfaces.ExternalSpec{keriSpec}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := s.Get(interfaces.RecordKey{ExternalSpec: "keri", Term: "stale-term"}); ok {
		t.Fatal("expected stale record to be pruned")
	}
}

func TestCollectTrefObservedAsXrefPreservesTrefData(t *testing.T) {
	buf := &recordingBuffer{}
	c := newCollector(buf)
	s := store.New()
	s.Put(interfaces.ReferenceRecord{
		ExternalSpec: "keri",
		Term:         "delegator",
		TrefAliases:  []string{"KPB"},
		Content:      "<dd>previously fetched</dd>",
		Source:       interfaces.SourceTref,
	})

	files := []interfaces.MarkdownFile{
		{Path: "terms/a.md", Content: "[[tref: keri, delegator, KPB]]\n[[xref: keri, delegator, del]]"},
	}

	if err := c.Collect(context.Background(), files, []interfaces.ExternalSpec{keriSpec}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, ok := s.Get(interfaces.RecordKey{ExternalSpec: "keri", Term: "delegator"})
	if !ok {
		t.Fatal("expected the record to survive")
	}
	if record.FirstTrefAlias() != "KPB" {
		t.Fatalf("expected tref alias preserved, got %q", record.FirstTrefAlias())
	}
	if record.Content != "<dd>previously fetched</dd>" {
		t.Fatalf("expected fetched content preserved, got %q", record.Content)
	}
	if record.FirstXrefAlias() != "del" {
		t.Fatalf("expected new xref alias recorded, got %q", record.FirstXrefAlias())
	}
}

func TestCollectTrefReobservationReplacesAliases(t *testing.T) {
	buf := &recordingBuffer{}
	c := newCollector(buf)
	s := store.New()
	s.Put(interfaces.ReferenceRecord{
		ExternalSpec: "keri",
		Term:         "delegator",
		TrefAliases:  []string{"old-alias"},
		Source:       interfaces.SourceTref,
	})

	files := []interfaces.MarkdownFile{
		{Path: "terms/a.md", Content: "[[tref: keri, delegator]]"},
	}

	if err := c.Collect(context.Background(), files, []interfaces.ExternalSpec{keriSpec}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, _ := s.Get(interfaces.RecordKey{ExternalSpec: "keri", Term: "delegator"})
	if len(record.TrefAliases) != 0 {
		t.Fatalf("expected dropped aliases to be removed, got %v", record.TrefAliases)
	}
}
