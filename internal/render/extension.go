package render

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// inlineTagPriority places the template-tag inline rule after goldmark's
// built-in emphasis parser (priority 500), per spec.md §4.9: "Runs after
// emphasis."
const inlineTagPriority = 600

const nodeRendererPriority = 500

// termExtension registers the template-tag inline rule and its HTML node
// renderer on one goldmark.Markdown instance. It is scoped to a single
// RenderContext and must be constructed fresh for every render (spec.md
// §9: no process-wide singletons).
type termExtension struct {
	rc          *interfaces.RenderContext
	tagParser   interfaces.TagParser
	tagRenderer interfaces.TagRenderer
}

// Extend implements goldmark.Extender.
func (e *termExtension) Extend(md goldmark.Markdown) {
	md.Parser().Inline().Add(util.Prioritized(newTermInlineParser(e.tagParser, e.rc), inlineTagPriority))
	md.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newTermNodeRenderer(e.rc, e.tagRenderer), nodeRendererPriority),
	))
}
