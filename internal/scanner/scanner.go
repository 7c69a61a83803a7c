// Package scanner implements the Markdown Scanner component (spec.md §4.2):
// it walks the terminology directory of a loaded manifest and yields the
// files eligible for parsing, in lexical directory order.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// Scanner discovers terminology Markdown files under a root directory.
// Files are walked with filepath.WalkDir and read with os.ReadFile, so Scan
// accepts an absolute or working-directory-relative root.
type Scanner struct {
	logger interfaces.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *Scanner) {
		s.logger = logging.ScannerLogger(provider)
	}
}

// New constructs a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks root and returns every eligible `.md` file, UTF-8 decoded, in
// lexical directory order. A file is eligible when its base name has a
// ".md" extension and does not start with "_" (spec.md §4.2: underscore
// prefix excludes partials/includes from direct scanning).
func (s *Scanner) Scan(root string) ([]interfaces.MarkdownFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("terminology directory does not exist", "root", root)
			return nil, nil
		}
		return nil, fmt.Errorf("scanner: stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanner: %q is not a directory", root)
	}

	var files []interfaces.MarkdownFile

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !eligible(d.Name()) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scanner: read %q: %w", path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		files = append(files, interfaces.MarkdownFile{
			Path:    filepath.ToSlash(rel),
			Content: string(content),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scanner: walking %q: %w", root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	s.logger.Info("terminology directory scanned", "root", root, "fileCount", len(files))
	return files, nil
}

// Paths extracts the relative paths from a slice of MarkdownFile, in the
// order given. Used to build the term-index.json diagnostic artifact
// (spec.md §6, supplemented: implemented rather than merely named).
func Paths(files []interfaces.MarkdownFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func eligible(name string) bool {
	if strings.HasPrefix(name, "_") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".md")
}

var _ interfaces.MarkdownScanner = (*Scanner)(nil)
