// Package manifest implements the Manifest Loader component (spec.md §4.1):
// it reads the project manifest file, validates required fields, normalizes
// paths, and applies documented defaults for optional fields.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const defaultTermsSubdirectory = "terms"

// Loader reads and validates the manifest file named by Load's path
// argument, producing an immutable interfaces.Manifest.
type Loader struct {
	logger      interfaces.Logger
	diagnostics interfaces.DiagnosticsBuffer
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(l *Loader) {
		l.logger = logging.ManifestLogger(provider)
	}
}

// WithDiagnostics attaches the build's shared diagnostics buffer so
// default-substitution notices are recorded (spec.md §4.1: "Defaults are
// explicit and documented; no silent substitution").
func WithDiagnostics(buf interfaces.DiagnosticsBuffer) Option {
	return func(l *Loader) {
		l.diagnostics = buf
	}
}

// NewLoader constructs a Loader, defaulting to a no-op logger and a nil
// diagnostics buffer (in which case default substitution is simply not
// recorded anywhere but the returned Manifest).
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the manifest file at path, validates it, and returns the
// normalized Manifest. The first element of the top-level `specs` array is
// used; spec.md §6 documents `specs` as carrying one element per build.
func (l *Loader) Load(path string) (*interfaces.Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Error("manifest file not found", "path", path)
			return nil, wrapMissing(fmt.Errorf("manifest file %q does not exist", path))
		}
		return nil, wrapMissing(fmt.Errorf("reading manifest file %q: %w", path, err))
	}

	var doc wireDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, wrapInvalid(fmt.Errorf("parsing manifest JSON: %w", err))
	}

	if len(doc.Specs) == 0 {
		return nil, wrapInvalid(fmt.Errorf("manifest %q declares an empty specs array", path))
	}

	spec := doc.Specs[0]
	if err := validateSpec(spec); err != nil {
		return nil, wrapInvalid(err)
	}

	manifest := &interfaces.Manifest{
		Title:             spec.Title,
		Description:       spec.Description,
		Author:            spec.Author,
		Source:            interfaces.SourceInfo{Account: spec.Source.Account, Repo: spec.Source.Repo},
		SpecDirectory:     normalizePath(spec.SpecDirectory),
		OutputPath:        normalizePath(spec.OutputPath),
		MarkdownFiles:     append([]string(nil), spec.MarkdownPaths...),
		Logo:              spec.Logo,
		LogoLink:          spec.LogoLink,
		Favicon:           spec.Favicon,
		KaTeX:             spec.KaTeX,
		AnchorSymbol:      "§",
	}

	if termsDir := strings.TrimSpace(spec.TermsDir); termsDir != "" {
		manifest.TermsSubdirectory = normalizePath(termsDir)
	} else {
		manifest.TermsSubdirectory = defaultTermsSubdirectory
		l.recordDefault("spec_terms_directory", defaultTermsSubdirectory)
	}

	for _, ext := range spec.ExternalSpecs {
		manifest.ExternalSpecs = append(manifest.ExternalSpecs, interfaces.ExternalSpec{
			ExternalSpec: ext.ExternalSpec,
			URL:          ext.URL,
			GHPage:       ext.GHPage,
			TermsDir:     ext.TermsDir,
			AvatarURL:    ext.AvatarURL,
		})
	}

	l.logger.Info("manifest loaded", "path", path, "title", manifest.Title, "externalSpecs", len(manifest.ExternalSpecs))
	return manifest, nil
}

func (l *Loader) recordDefault(field, value string) {
	l.logger.Debug("manifest field defaulted", "field", field, "value", value)
	if l.diagnostics == nil {
		return
	}
	l.diagnostics.Add(interfaces.Finding{
		Kind:      "ManifestFieldDefaulted",
		Level:     interfaces.LevelWarning,
		Operation: "manifest.load",
		Message:   fmt.Sprintf("%s defaulted to %q", field, value),
	})
}

// validateSpec checks the required-field set spec.md §6 names, using
// go-ozzo/ozzo-validation the same way inbound command messages are
// validated elsewhere in this codebase.
func validateSpec(s wireSpec) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.Description, validation.Required),
		validation.Field(&s.Author, validation.Required),
		validation.Field(&s.SpecDirectory, validation.Required),
		validation.Field(&s.OutputPath, validation.Required),
		validation.Field(&s.MarkdownPaths, validation.Required),
		validation.Field(&s.Source, validation.Required, validation.By(func(value any) error {
			source, _ := value.(wireSource)
			if strings.TrimSpace(source.Account) == "" || strings.TrimSpace(source.Repo) == "" {
				return validation.NewError("manifest.source_incomplete", "source.account and source.repo are both required")
			}
			return nil
		})),
	)
}

// normalizePath trims trailing path separators and ensures a leading
// separator is present only when the original path was itself absolute;
// relative manifest paths (the common case) are left relative, mirroring
// spec.md's "trim trailing separators, add leading separator where needed."
func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/\\")
	if p == "" {
		return p
	}
	return filepath.ToSlash(p)
}

var _ interfaces.ManifestLoader = (*Loader)(nil)
