package build

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// buildTOC walks the rendered body HTML and collects every heading with an
// anchor id (assigned by go.abhg.dev/goldmark/anchor during rendering) into
// a flat navigation list. spec.md's Emitter keeps `toc` as a field separate
// from `render`, so this runs over the already-rendered body rather than
// registering a goldmark TOC extension inside internal/render's per-call
// engine construction (see that package's DESIGN.md entry for why TOC
// generation was deferred to this layer).
func buildTOC(bodyHTML string) (string, error) {
	root, err := html.ParseFragment(strings.NewReader(bodyHTML), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", fmt.Errorf("build: parsing rendered body for toc: %w", err)
	}

	var items []string
	for _, n := range root {
		collectHeadings(n, &items)
	}
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("<ul class=\"toc\">\n")
	for _, item := range items {
		b.WriteString(item)
		b.WriteByte('\n')
	}
	b.WriteString("</ul>")
	return b.String(), nil
}

func collectHeadings(n *html.Node, items *[]string) {
	if n.Type == html.ElementNode && isHeading(n.DataAtom) {
		if id := attrVal(n, "id"); id != "" {
			*items = append(*items, fmt.Sprintf(
				`<li class="toc-%s"><a href="#%s">%s</a></li>`,
				n.Data, id, textContent(n)))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectHeadings(c, items)
	}
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
