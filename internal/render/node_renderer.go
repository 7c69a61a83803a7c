package render

import (
	"fmt"
	"html"

	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// termNodeRenderer expands TermTagNode, MalformedTagNode, and
// SpecRefTagNode to their HTML fragments during rendering. It closes over
// the active RenderContext and a TagRenderer, constructed fresh per
// Engine.Render call.
type termNodeRenderer struct {
	rc          *interfaces.RenderContext
	tagRenderer interfaces.TagRenderer
}

func newTermNodeRenderer(rc *interfaces.RenderContext, tagRenderer interfaces.TagRenderer) renderer.NodeRenderer {
	return &termNodeRenderer{rc: rc, tagRenderer: tagRenderer}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *termNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTermTag, r.renderTermTag)
	reg.Register(KindMalformedTag, r.renderMalformedTag)
	reg.Register(KindSpecRefTag, r.renderSpecRefTag)
}

func (r *termNodeRenderer) renderTermTag(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*TermTagNode)
	out, err := r.tagRenderer.Render(r.rc, n.Tag)
	if err != nil {
		return gast.WalkStop, err
	}
	if _, err := w.WriteString(out); err != nil {
		return gast.WalkStop, err
	}
	return gast.WalkContinue, nil
}

func (r *termNodeRenderer) renderMalformedTag(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*MalformedTagNode)
	if _, err := w.WriteString(html.EscapeString(n.Raw)); err != nil {
		return gast.WalkStop, err
	}
	return gast.WalkContinue, nil
}

func (r *termNodeRenderer) renderSpecRefTag(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*SpecRefTagNode)
	if _, err := fmt.Fprintf(w, `<a class="spec-reference" href="#ref:%s">%s</a>`, n.Name, html.EscapeString(n.Name)); err != nil {
		return gast.WalkStop, err
	}
	return gast.WalkContinue, nil
}
