// Package postprocess implements the Definition-List Postprocessor
// (spec.md §4.11): it reunifies the terminology `<dl>` blocks that the
// Markdown engine tends to fragment, and sorts the final list
// case-insensitively by term.
package postprocess

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const terminologyListClass = "terms-and-definitions-list"
const terminologyStartMarkerID = "terminology-section-start"

// Postprocessor implements interfaces.Postprocessor.
type Postprocessor struct {
	logger interfaces.Logger
}

// Option configures a Postprocessor.
type Option func(*Postprocessor)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(p *Postprocessor) {
		p.logger = logging.PostprocessLogger(provider)
	}
}

// New constructs a Postprocessor.
func New(opts ...Option) *Postprocessor {
	p := &Postprocessor{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the eight-step reunification and sort described in
// spec.md §4.11 over htmlStr, an already-rendered HTML fragment.
func (p *Postprocessor) Process(htmlStr string) (string, error) {
	root, err := parseFragment(htmlStr)
	if err != nil {
		return "", fmt.Errorf("postprocess: parsing fragment: %w", err)
	}

	mainDL := findMainDL(root)
	if mainDL == nil {
		mainDL = createMainDL(root)
	}

	convertStandaloneExternalParagraphs(root, mainDL)
	mergeSubsequentDLs(mainDL)
	regroupStrayDTs(root, mainDL)
	relocateOrphanedDDs(root, mainDL)
	removeEmptyParagraphs(root)
	removeEmptyDTs(root)
	sortGroups(mainDL)

	out, err := renderFragment(root)
	if err != nil {
		return "", fmt.Errorf("postprocess: rendering fragment: %w", err)
	}
	return out, nil
}

// findMainDL locates the <dl> bearing the terminology class (step 1).
func findMainDL(root *html.Node) *html.Node {
	for _, dl := range collect(root, func(n *html.Node) bool { return isElement(n, "dl") }) {
		if hasClass(dl, terminologyListClass) {
			return dl
		}
	}
	return nil
}

// createMainDL builds a new terminology <dl> and inserts it after the
// terminology-section-start marker, or before the first orphaned term
// otherwise (step 1, fallback path).
func createMainDL(root *html.Node) *html.Node {
	dl := &html.Node{
		Type:     html.ElementNode,
		Data:     "dl",
		DataAtom: atom.Dl,
		Attr:     []html.Attribute{{Key: "class", Val: terminologyListClass}},
	}

	if marker := findByID(root, terminologyStartMarkerID); marker != nil && marker.Parent != nil {
		insertAfter(marker.Parent, marker, dl)
		return dl
	}

	if orphan := firstOrphanedTermNode(root); orphan != nil && orphan.Parent != nil {
		orphan.Parent.InsertBefore(dl, orphan)
		return dl
	}

	root.AppendChild(dl)
	return dl
}

func firstOrphanedTermNode(root *html.Node) *html.Node {
	matches := collect(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if n.Data == "dt" && (hasClass(n, "term-external") || hasClass(n, "term-local")) {
			return true
		}
		return n.Data == "p" && paragraphWrapsExternalSpan(n)
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func paragraphWrapsExternalSpan(p *html.Node) bool {
	span := firstElementChild(p)
	if span == nil || span.Data != "span" || !hasClass(span, "term-external") {
		return false
	}
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if c == span {
			continue
		}
		if c.Type == html.ElementNode {
			return false
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return true
}

// convertStandaloneExternalParagraphs implements step 2: each
// <p><span class="term-external">...</span></p> becomes a
// <dt class="term-external"> plus an empty <dd>, moved into mainDL.
func convertStandaloneExternalParagraphs(root, mainDL *html.Node) {
	paragraphs := collect(root, func(n *html.Node) bool {
		return isElement(n, "p") && paragraphWrapsExternalSpan(n)
	})
	for _, p := range paragraphs {
		span := firstElementChild(p)
		detach(span)

		dt := &html.Node{Type: html.ElementNode, Data: "dt", DataAtom: atom.Dt, Attr: []html.Attribute{{Key: "class", Val: "term-external"}}}
		dt.AppendChild(span)
		dd := &html.Node{Type: html.ElementNode, Data: "dd", DataAtom: atom.Dd}

		mainDL.AppendChild(dt)
		mainDL.AppendChild(dd)
		detach(p)
	}
}

// mergeSubsequentDLs implements step 3: every <dl> sibling following
// mainDL that isn't a reference list has its children absorbed into
// mainDL, and is then removed.
func mergeSubsequentDLs(mainDL *html.Node) {
	if mainDL == nil || mainDL.Parent == nil {
		return
	}
	sibling := mainDL.NextSibling
	for sibling != nil {
		next := sibling.NextSibling
		if isElement(sibling, "dl") && !isReferenceList(sibling) {
			for c := sibling.FirstChild; c != nil; {
				childNext := c.NextSibling
				detach(c)
				mainDL.AppendChild(c)
				c = childNext
			}
			detach(sibling)
		}
		sibling = next
	}
}

func isReferenceList(dl *html.Node) bool {
	if hasClass(dl, "reference-list") {
		return true
	}
	for c := dl.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, "dt") {
			if id, ok := attrVal(c, "id"); ok && strings.HasPrefix(id, "ref:") {
				return true
			}
		}
	}
	return false
}

// regroupStrayDTs implements step 4: every stray <dt> (non-ref id)
// outside mainDL, plus its consecutive <dd> siblings, is deep-cloned into
// mainDL and the originals deleted.
func regroupStrayDTs(root, mainDL *html.Node) {
	strays := collect(root, func(n *html.Node) bool {
		if !isElement(n, "dt") || insideNode(n, mainDL) {
			return false
		}
		if id, ok := attrVal(n, "id"); ok && strings.HasPrefix(id, "ref:") {
			return false
		}
		return true
	})

	for _, dt := range strays {
		if dt.Parent == nil {
			continue
		}
		group := []*html.Node{dt}
		sib := nextSignificantSibling(dt)
		for sib != nil && isElement(sib, "dd") {
			group = append(group, sib)
			sib = nextSignificantSibling(sib)
		}
		for _, n := range group {
			mainDL.AppendChild(cloneDeep(n))
		}
		for _, n := range group {
			detach(n)
		}
	}
}

// relocateOrphanedDDs implements step 5: a <dd> whose previous
// significant sibling isn't a <dt>, and which lives outside mainDL, is
// moved into mainDL.
func relocateOrphanedDDs(root, mainDL *html.Node) {
	orphans := collect(root, func(n *html.Node) bool {
		if !isElement(n, "dd") || insideNode(n, mainDL) {
			return false
		}
		prev := prevSignificantSibling(n)
		return prev == nil || !isElement(prev, "dt")
	})
	for _, dd := range orphans {
		if dd.Parent == nil {
			continue
		}
		detach(dd)
		mainDL.AppendChild(dd)
	}
}

// removeEmptyParagraphs implements step 6.
func removeEmptyParagraphs(root *html.Node) {
	for _, p := range collect(root, func(n *html.Node) bool { return isElement(n, "p") }) {
		if strings.TrimSpace(textContent(p)) == "" && firstElementChild(p) == nil {
			detach(p)
		}
	}
}

// removeEmptyDTs implements step 7; reference-list <dt id="ref:...">
// entries are never touched.
func removeEmptyDTs(root *html.Node) {
	for _, dt := range collect(root, func(n *html.Node) bool { return isElement(n, "dt") }) {
		if id, ok := attrVal(dt, "id"); ok && strings.HasPrefix(id, "ref:") {
			continue
		}
		if strings.TrimSpace(textContent(dt)) == "" && firstElementChild(dt) == nil {
			detach(dt)
		}
	}
}

// sortGroups implements step 8: mainDL's (dt, dd*) groups are sorted
// case-insensitively by the dt's text content; dd order within a group is
// preserved.
func sortGroups(mainDL *html.Node) {
	if mainDL == nil {
		return
	}

	type group struct {
		dt  *html.Node
		dds []*html.Node
		key string
	}

	var groups []group
	var loose []*html.Node

	child := mainDL.FirstChild
	for child != nil {
		next := child.NextSibling
		switch {
		case isElement(child, "dt"):
			g := group{dt: child, key: strings.ToLower(strings.TrimSpace(textContent(child)))}
			sib := nextSignificantSibling(child)
			for sib != nil && isElement(sib, "dd") {
				g.dds = append(g.dds, sib)
				sib = nextSignificantSibling(sib)
			}
			groups = append(groups, g)
		case child.Type == html.ElementNode:
			loose = append(loose, child)
		}
		child = next
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].key < groups[j].key })

	for c := mainDL.FirstChild; c != nil; {
		next := c.NextSibling
		mainDL.RemoveChild(c)
		c = next
	}

	for _, l := range loose {
		mainDL.AppendChild(l)
	}
	for _, g := range groups {
		mainDL.AppendChild(g.dt)
		for _, dd := range g.dds {
			mainDL.AppendChild(dd)
		}
	}
}

var _ interfaces.Postprocessor = (*Postprocessor)(nil)
