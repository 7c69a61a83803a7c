// Package render implements the Markdown Engine Facade and Tag Renderer
// (spec.md §4.9, §4.10): a goldmark wrapper that recognises terminology
// tags and the `[[spec:...]]` bibliography family, plus the HTML
// contracts each tag kind renders to.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/anchor"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/internal/tagparser"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const defaultAnchorSymbol = "§"

// Engine implements interfaces.MarkdownEngine. It is intentionally
// stateless between renders: Render builds a fresh goldmark.Markdown
// instance every call, closing its term extension over the supplied
// RenderContext so no state leaks between renders or across goroutines.
type Engine struct {
	tagParser   interfaces.TagParser
	tagRenderer interfaces.TagRenderer
	logger      interfaces.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(e *Engine) {
		e.logger = logging.RenderLogger(provider)
	}
}

// WithTagParser overrides the Tag Parser implementation (defaults to
// tagparser.NewParser()).
func WithTagParser(p interfaces.TagParser) Option {
	return func(e *Engine) { e.tagParser = p }
}

// WithTagRenderer overrides the Tag Renderer implementation (defaults to
// NewTagRenderer()).
func WithTagRenderer(r interfaces.TagRenderer) Option {
	return func(e *Engine) { e.tagRenderer = r }
}

// New constructs an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		tagParser:   tagparser.NewParser(),
		tagRenderer: NewTagRenderer(),
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render converts markdown to HTML, expanding terminology tags and
// spec-reference tags through rc.
func (e *Engine) Render(rc *interfaces.RenderContext, markdown string) (string, error) {
	if rc == nil {
		rc = &interfaces.RenderContext{}
	}
	if rc.AnchorSymbol == "" {
		rc.AnchorSymbol = defaultAnchorSymbol
	}
	if rc.SpecGroups == nil {
		rc.SpecGroups = map[string][]interfaces.SpecReference{}
	}

	md := e.newGoldmarkEngine(rc)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

func (e *Engine) newGoldmarkEngine(rc *interfaces.RenderContext) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
		goldmark.WithExtensions(
			extension.DefinitionList,
			extension.GFM,
			&anchor.Extender{Texter: anchor.Text(rc.AnchorSymbol), Position: anchor.After},
			&termExtension{rc: rc, tagParser: e.tagParser, tagRenderer: e.tagRenderer},
		),
	)
}

var _ interfaces.MarkdownEngine = (*Engine)(nil)
