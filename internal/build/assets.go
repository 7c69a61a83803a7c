package build

import (
	"fmt"
	"html"
	"strings"

	"github.com/trustoverip/spec-up-t-go/internal/util"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// katexHead/katexBody are the CDN includes spec-up-t-style tools wire in
// when a manifest opts into math rendering (spec.md §6's optional `katex`
// manifest field). The exact asset pipeline is left open by spec.md
// ("assetsHead/assetsBody/assetsSvg from the asset manifest"); this build
// resolves that by deriving the three fields from the fields the Manifest
// Loader already normalizes (Logo, LogoLink, Favicon, KaTeX) rather than
// introducing a second, undocumented asset-manifest file format.
const (
	katexHead = `<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/katex.min.css">` + "\n" +
		`<script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/katex.min.js"></script>` + "\n" +
		`<script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/contrib/auto-render.min.js"></script>`

	katexBody = `<script>document.addEventListener("DOMContentLoaded", function () {` +
		` if (window.renderMathInElement) { renderMathInElement(document.body); } });</script>`
)

// assetsHead builds the <head> asset fragment: an optional favicon link and,
// when the manifest opts in, the KaTeX stylesheet/script includes.
func assetsHead(m *interfaces.Manifest) string {
	var b strings.Builder
	if m.Favicon != "" {
		fmt.Fprintf(&b, `<link rel="icon" href="%s">`, html.EscapeString(m.Favicon))
		b.WriteByte('\n')
	}
	if m.KaTeX {
		b.WriteString(katexHead)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// assetsBody builds the closing-body asset fragment: an optional logo link
// and the KaTeX auto-render bootstrap script.
func assetsBody(m *interfaces.Manifest) string {
	var b strings.Builder
	if m.Logo != "" {
		href := util.FirstNonEmpty(m.LogoLink, "#")
		fmt.Fprintf(&b, `<a class="spec-logo" href="%s"><img src="%s" alt="logo"></a>`, html.EscapeString(href), html.EscapeString(m.Logo))
		b.WriteByte('\n')
	}
	if m.KaTeX {
		b.WriteString(katexBody)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// assetsSvg is reserved for inline SVG sprites (icons reused across the
// document, e.g. anchor-link glyphs); this build has no icon sprite sheet
// to embed, so it is always empty.
func assetsSvg(*interfaces.Manifest) string {
	return ""
}
