package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// TagRenderer implements interfaces.TagRenderer, producing the exact HTML
// fragments spec.md §4.10 requires for each tag kind.
type TagRenderer struct{}

// NewTagRenderer constructs a TagRenderer. It holds no state: every method
// is a pure function of its arguments.
func NewTagRenderer() *TagRenderer {
	return &TagRenderer{}
}

// Render dispatches on tag.Kind and returns the tag's HTML fragment.
func (r *TagRenderer) Render(rc *interfaces.RenderContext, tag interfaces.TerminologyTag) (string, error) {
	switch tag.Kind {
	case interfaces.TagDef:
		return r.renderDef(rc, tag), nil
	case interfaces.TagRef:
		return r.renderRef(tag), nil
	case interfaces.TagIref:
		return r.renderIref(tag), nil
	case interfaces.TagXref:
		return r.renderXref(rc, tag), nil
	case interfaces.TagTref:
		return r.renderTref(rc, tag), nil
	default:
		return "", fmt.Errorf("render: unsupported tag kind %q", tag.Kind)
	}
}

// renderDef builds the nested-span chain for a `def` tag and records the
// LocalDefinition for the Validator's dangling-definition check.
func (r *TagRenderer) renderDef(rc *interfaces.RenderContext, tag interfaces.TerminologyTag) string {
	primary := tag.Term
	if len(tag.Aliases) > 0 {
		primary = tag.Aliases[len(tag.Aliases)-1]
	}
	if rc != nil {
		rc.Definitions = append(rc.Definitions, interfaces.LocalDefinition{
			Term:         tag.Term,
			PrimaryAlias: primary,
			SourceFile:   rc.CurrentFile,
		})
	}

	display := fmt.Sprintf(`<span class="term-local-original-term term-original-term" title="original term">%s</span>`, html.EscapeString(tag.Term))
	if len(tag.Aliases) > 0 {
		inner := strings.Join(quoteAll(tag.Aliases[:len(tag.Aliases)-1]), ", ")
		var parenthetical strings.Builder
		parenthetical.WriteString(`<span class="term-local-parenthetical-terms">(`)
		if inner != "" {
			parenthetical.WriteString(inner)
			parenthetical.WriteString(", ")
		}
		parenthetical.WriteString(display)
		parenthetical.WriteString(")</span>")
		display = fmt.Sprintf("%s %s", html.EscapeString(tag.Aliases[len(tag.Aliases)-1]), parenthetical.String())
	}

	ids := append([]string{tag.Term}, tag.Aliases...)
	return nestSpans(ids, nil, display)
}

// renderRef builds the `ref` anchor.
func (r *TagRenderer) renderRef(tag interfaces.TerminologyTag) string {
	id := sanitizeID(tag.Term)
	return fmt.Sprintf(`<a class="term-reference" href="#term:%s">%s</a>`, id, html.EscapeString(tag.Term))
}

// renderIref builds the client-side-resolved `iref` placeholder.
func (r *TagRenderer) renderIref(tag interfaces.TerminologyTag) string {
	id := sanitizeID(tag.Term)
	return fmt.Sprintf(`<span class="iref-placeholder" data-iref-term="%s" data-iref-original="%s"></span>`, id, html.EscapeString(tag.Term))
}

// renderXref builds the external-link anchor, enriched with the store's
// fetched content when available.
func (r *TagRenderer) renderXref(rc *interfaces.RenderContext, tag interfaces.TerminologyTag) string {
	var ghPage string
	var record interfaces.ReferenceRecord
	var found bool
	if rc != nil && rc.Store != nil {
		record, found = rc.Store.Get(interfaces.RecordKey{ExternalSpec: tag.ExternalSpec, Term: tag.Term})
		ghPage = record.GHPageURL
	}

	if ghPage == "" {
		return fmt.Sprintf(`<span class="no-xref-found-message" title="external spec %s is not declared">xref cannot be resolved</span>`,
			html.EscapeString(tag.ExternalSpec))
	}

	primaryDisplay := tag.Term
	if tag.Alias != "" {
		primaryDisplay = tag.Alias
	}

	id := sanitizeID(tag.Term)
	var attrs strings.Builder
	attrs.WriteString(fmt.Sprintf(`class="x-term-reference term-reference" data-local-href="#term:%s:%s" href="%s#term:%s"`,
		tag.ExternalSpec, id, ghPage, id))
	if found && record.Content != "" {
		attrs.WriteString(fmt.Sprintf(` title="External term definition" data-term-content="%s"`, html.EscapeString(record.Content)))
	}

	return fmt.Sprintf(`<a %s>%s</a>`, attrs.String(), html.EscapeString(primaryDisplay))
}

// renderTref mirrors renderDef's nesting but with the external class names
// spec.md §4.10 requires.
func (r *TagRenderer) renderTref(rc *interfaces.RenderContext, tag interfaces.TerminologyTag) string {
	title := ""
	if len(tag.Aliases) > 0 {
		title = fmt.Sprintf(` title="Externally defined as %s"`, html.EscapeString(tag.Term))
	}

	display := fmt.Sprintf(`<span class="term-external-original-term term-original-term"%s>%s</span>`, title, html.EscapeString(tag.Term))
	if len(tag.Aliases) > 0 {
		inner := strings.Join(quoteAll(tag.Aliases[:len(tag.Aliases)-1]), ", ")
		var parenthetical strings.Builder
		parenthetical.WriteString(`<span class="term-external-parenthetical-terms">(`)
		if inner != "" {
			parenthetical.WriteString(inner)
			parenthetical.WriteString(", ")
		}
		parenthetical.WriteString(display)
		parenthetical.WriteString(")</span>")
		display = fmt.Sprintf("%s %s", html.EscapeString(tag.Aliases[len(tag.Aliases)-1]), parenthetical.String())
	}

	ids := append([]string{tag.Term}, tag.Aliases...)
	extraOuterClasses := []string{"term-external"}
	outerAttrs := fmt.Sprintf(` data-original-term="%s"`, html.EscapeString(tag.Term))
	return nestSpansWithAttrs(ids, extraOuterClasses, outerAttrs, display)
}

// nestSpans wraps display in a chain of <span id="term:<sanitize(id)>">
// elements, outermost first, one per entry in ids (outermost uses the
// last id, per spec.md §4.10's "outermost bearing the last alias").
func nestSpans(ids []string, extraOuterClasses []string, display string) string {
	return nestSpansWithAttrs(ids, extraOuterClasses, "", display)
}

func nestSpansWithAttrs(ids []string, extraOuterClasses []string, outerAttrs string, display string) string {
	out := display
	for i := 0; i < len(ids); i++ {
		class := ""
		attrs := ""
		if i == len(ids)-1 && len(extraOuterClasses) > 0 {
			class = fmt.Sprintf(` class="%s"`, strings.Join(extraOuterClasses, " "))
			attrs = outerAttrs
		}
		out = fmt.Sprintf(`<span id="term:%s"%s%s>%s</span>`, sanitizeID(ids[i]), class, attrs, out)
	}
	return out
}

func quoteAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = html.EscapeString(t)
	}
	return out
}

var _ interfaces.TagRenderer = (*TagRenderer)(nil)
