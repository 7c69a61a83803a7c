package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const (
	dataFileName    = "xtrefs-data.json"
	jsFileName      = "xtrefs-data.js"
	historyDirName  = "xtrefs-history"
	jsAssignmentVar = "allXTrefs"
)

// Document is the canonical JSON shape of the Reference Store (spec.md §6,
// §4.8): every record, sorted by (externalSpec, term), under a single
// named key so the document can grow additional top-level fields later
// without breaking existing consumers of `xtrefs`.
type Document struct {
	XTrefs []wireRecord `json:"xtrefs"`
}

// Persistence implements interfaces.StorePersistence against a plain
// filesystem cache directory.
type Persistence struct {
	logger interfaces.Logger
}

// Option configures a Persistence.
type Option func(*Persistence)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(p *Persistence) {
		p.logger = logging.StoreLogger(provider)
	}
}

// NewPersistence constructs a Persistence.
func NewPersistence(opts ...Option) *Persistence {
	p := &Persistence{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads a previously persisted store from cacheDir/xtrefs-data.json,
// returning an empty store (not an error) when no prior snapshot exists.
func (p *Persistence) Load(cacheDir string) (interfaces.ReferenceStore, error) {
	path := filepath.Join(cacheDir, dataFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			p.logger.Debug("no prior reference store snapshot found", "path", path)
			return New(), nil
		}
		return nil, fmt.Errorf("store: reading %q: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("store: parsing %q: %w", path, err)
	}

	s := New()
	for _, w := range doc.XTrefs {
		s.Put(w.toRecord())
	}
	p.logger.Info("reference store loaded", "path", path, "recordCount", s.Len())
	return s, nil
}

// Save writes xtrefs-data.json, xtrefs-data.js, and a timestamped history
// snapshot for store into cacheDir.
func (p *Persistence) Save(cacheDir string, rs interfaces.ReferenceStore, unixMilli int64) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("store: creating cache dir %q: %w", cacheDir, err)
	}

	records := rs.Records()
	doc := Document{XTrefs: make([]wireRecord, 0, len(records))}
	for _, r := range records {
		doc.XTrefs = append(doc.XTrefs, toWireRecord(r))
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling reference store: %w", err)
	}

	if err := writeAtomic(filepath.Join(cacheDir, dataFileName), jsonBytes); err != nil {
		return err
	}

	jsBody := []byte(fmt.Sprintf("const %s = %s;\n", jsAssignmentVar, jsonBytes))
	if err := writeAtomic(filepath.Join(cacheDir, jsFileName), jsBody); err != nil {
		return err
	}

	historyDir := filepath.Join(cacheDir, historyDirName)
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return fmt.Errorf("store: creating history dir %q: %w", historyDir, err)
	}
	historyPath := filepath.Join(historyDir, fmt.Sprintf("xtrefs-data-%d.js", unixMilli))
	if err := writeAtomic(historyPath, jsBody); err != nil {
		return err
	}

	p.logger.Info("reference store saved", "cacheDir", cacheDir, "recordCount", len(records))
	return nil
}

// SaveFetchSnapshot writes a raw remote fetch result snapshot named with
// unixMilli, owner, and repo.
func (p *Persistence) SaveFetchSnapshot(cacheDir string, unixMilli int64, owner, repo string, terms map[string]interfaces.FetchedTerm) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("store: creating cache dir %q: %w", cacheDir, err)
	}

	raw, err := json.MarshalIndent(terms, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling fetch snapshot for %s/%s: %w", owner, repo, err)
	}

	name := fmt.Sprintf("%d-%s-%s-terms.json", unixMilli, owner, repo)
	return writeAtomic(filepath.Join(cacheDir, name), raw)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("store: renaming %q to %q: %w", tmp, path, err)
	}
	return nil
}

var _ interfaces.StorePersistence = (*Persistence)(nil)
