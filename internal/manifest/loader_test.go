package manifest

import (
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

type recordingBuffer struct {
	findings []interfaces.Finding
}

func (b *recordingBuffer) Add(f interfaces.Finding)    { b.findings = append(b.findings, f) }
func (b *recordingBuffer) All() []interfaces.Finding   { return b.findings }
func (b *recordingBuffer) HasErrors() bool {
	for _, f := range b.findings {
		if f.Level == interfaces.LevelError {
			return true
		}
	}
	return false
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "specs.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture manifest: %v", err)
	}
	return path
}

const validManifest = `{
  "specs": [
    {
      "title": "Example Spec",
      "description": "An example specification",
      "author": "Example Author",
      "source": {"account": "trustoverip", "repo": "example-spec"},
      "spec_directory": "spec/",
      "spec_terms_directory": "terms/",
      "output_path": "docs/",
      "markdown_paths": ["index.md", "terminology.md"],
      "external_specs": [
        {"external_spec": "keri", "url": "https://github.com/trustoverip/keri", "gh_page": "https://trustoverip.github.io/keri/"}
      ]
    }
  ]
}`

func TestLoadValidManifest(t *testing.T) {
	path := writeManifest(t, validManifest)
	l := NewLoader()

	m, err := l.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Title != "Example Spec" || m.Author != "Example Author" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if m.SpecDirectory != "spec" || m.TermsSubdirectory != "terms" || m.OutputPath != "docs" {
		t.Fatalf("expected trailing separators trimmed, got spec=%q terms=%q out=%q", m.SpecDirectory, m.TermsSubdirectory, m.OutputPath)
	}
	if len(m.MarkdownFiles) != 2 {
		t.Fatalf("expected 2 markdown files, got %d", len(m.MarkdownFiles))
	}
	if len(m.ExternalSpecs) != 1 || m.ExternalSpecs[0].ExternalSpec != "keri" {
		t.Fatalf("unexpected external specs: %+v", m.ExternalSpecs)
	}
	if m.Source.Account != "trustoverip" || m.Source.Repo != "example-spec" {
		t.Fatalf("unexpected source: %+v", m.Source)
	}
}

func TestLoadDefaultsMissingTermsSubdirectory(t *testing.T) {
	path := writeManifest(t, `{
  "specs": [
    {
      "title": "Example Spec",
      "description": "An example specification",
      "author": "Example Author",
      "source": {"account": "trustoverip", "repo": "example-spec"},
      "spec_directory": "spec/",
      "output_path": "docs/",
      "markdown_paths": ["index.md"]
    }
  ]
}`)

	l := NewLoader()
	m, err := l.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TermsSubdirectory != defaultTermsSubdirectory {
		t.Fatalf("expected default terms subdirectory %q, got %q", defaultTermsSubdirectory, m.TermsSubdirectory)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error for a missing manifest file")
	}
	if !goerrors.IsWrapped(err) {
		t.Fatalf("expected a wrapped error, got %v", err)
	}
}

func TestLoadEmptySpecsArrayFails(t *testing.T) {
	path := writeManifest(t, `{"specs": []}`)
	l := NewLoader()
	_, err := l.Load(path)
	if err == nil {
		t.Fatal("expected an error for an empty specs array")
	}
}

func TestLoadMalformedJSONFails(t *testing.T) {
	path := writeManifest(t, `{not valid json`)
	l := NewLoader()
	_, err := l.Load(path)
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestLoadMissingRequiredFieldFails(t *testing.T) {
	path := writeManifest(t, `{
  "specs": [
    {
      "description": "An example specification",
      "author": "Example Author",
      "source": {"account": "trustoverip", "repo": "example-spec"},
      "spec_directory": "spec/",
      "output_path": "docs/",
      "markdown_paths": ["index.md"]
    }
  ]
}`)
	l := NewLoader()
	_, err := l.Load(path)
	if err == nil {
		t.Fatal("expected an error for a missing title field")
	}
}

func TestLoadIncompleteSourceFails(t *testing.T) {
	path := writeManifest(t, `{
  "specs": [
    {
      "title": "Example Spec",
      "description": "An example specification",
      "author": "Example Author",
      "source": {"account": "trustoverip"},
      "spec_directory": "spec/",
      "output_path": "docs/",
      "markdown_paths": ["index.md"]
    }
  ]
}`)
	l := NewLoader()
	_, err := l.Load(path)
	if err == nil {
		t.Fatal("expected an error for an incomplete source")
	}
}

func TestLoadDiagnosticsRecordsDefaultedField(t *testing.T) {
	path := writeManifest(t, `{
  "specs": [
    {
      "title": "Example Spec",
      "description": "An example specification",
      "author": "Example Author",
      "source": {"account": "trustoverip", "repo": "example-spec"},
      "spec_directory": "spec/",
      "output_path": "docs/",
      "markdown_paths": ["index.md"]
    }
  ]
}`)

	buf := &recordingBuffer{}
	l := NewLoader(WithDiagnostics(buf))
	if _, err := l.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf.findings) != 1 || buf.findings[0].Kind != "ManifestFieldDefaulted" {
		t.Fatalf("expected one ManifestFieldDefaulted finding, got %+v", buf.findings)
	}
}
