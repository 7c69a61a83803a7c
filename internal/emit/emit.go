// Package emit implements the Emitter (spec.md §4.13): it interpolates
// the HTML template and writes the final self-contained document.
package emit

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// templateData is the template-execution view of interfaces.EmitData: the
// fields carrying already-rendered HTML are wrapped as template.HTML so
// html/template does not re-escape them, for trusted, pre-sanitized
// markup. Title/Description/Author stay plain strings so they're still
// escaped on the way into the document.
type templateData struct {
	Title       string
	Description string
	Author      string
	TOC         template.HTML
	Render      template.HTML
	XTrefsData  template.HTML

	AssetsHead template.HTML
	AssetsBody template.HTML
	AssetsSvg  template.HTML

	CurrentDate        string
	UniversalTimestamp string
	GithubRepoInfo     string
}

// Emitter implements interfaces.Emitter.
type Emitter struct {
	logger interfaces.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(e *Emitter) {
		e.logger = logging.EmitLogger(provider)
	}
}

// New constructs an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit reads the template at templatePath, interpolates data, and writes
// the result to <outputPath>/index.html atomically.
func (e *Emitter) Emit(templatePath, outputPath string, data interfaces.EmitData) error {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("emit: reading template %q: %w", templatePath, err)
	}

	tmpl, err := template.New(filepath.Base(templatePath)).Parse(string(raw))
	if err != nil {
		return fmt.Errorf("emit: parsing template %q: %w", templatePath, err)
	}

	td := templateData{
		Title:              data.Title,
		Description:        data.Description,
		Author:             data.Author,
		TOC:                template.HTML(data.TOC),
		Render:             template.HTML(data.Render),
		XTrefsData:         template.HTML(data.XTrefsData),
		AssetsHead:         template.HTML(data.AssetsHead),
		AssetsBody:         template.HTML(data.AssetsBody),
		AssetsSvg:          template.HTML(data.AssetsSvg),
		CurrentDate:        data.CurrentDate,
		UniversalTimestamp: data.UniversalTimestamp,
		GithubRepoInfo:     data.GithubRepoInfo,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, td); err != nil {
		return fmt.Errorf("emit: executing template: %w", err)
	}

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("emit: creating output directory %q: %w", outputPath, err)
	}

	dest := filepath.Join(outputPath, "index.html")
	if err := writeAtomic(dest, buf.Bytes()); err != nil {
		return fmt.Errorf("emit: writing %q: %w", dest, err)
	}

	e.logger.Info("emitted document", "path", dest, "bytes", buf.Len())
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %q to %q: %w", tmp, path, err)
	}
	return nil
}

var _ interfaces.Emitter = (*Emitter)(nil)
