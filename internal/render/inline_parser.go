package render

import (
	"regexp"

	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// tagLexeme mirrors internal/tagparser.Scanner's non-nesting bracket
// pattern, anchored to the start of the remaining line so Parse only
// claims a match that begins at the current reader position.
var tagLexeme = regexp.MustCompile(`^\[\[[^\[\]]*\]\]`)

// termInlineParser recognises `[[...]]` lexemes during inline parsing and
// dispatches them to the Tag Parser (spec.md §4.9: "scans for `[[…]]`;
// dispatches to the Tag Parser; invokes the Tag Renderer during
// rendering"). It closes over the render's RenderContext so it can
// aggregate spec references and raise findings without global state.
type termInlineParser struct {
	tagParser interfaces.TagParser
	rc        *interfaces.RenderContext
}

func newTermInlineParser(tagParser interfaces.TagParser, rc *interfaces.RenderContext) parser.InlineParser {
	return &termInlineParser{tagParser: tagParser, rc: rc}
}

// Trigger implements parser.InlineParser.
func (p *termInlineParser) Trigger() []byte {
	return []byte{'['}
}

// Parse implements parser.InlineParser.
func (p *termInlineParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	loc := tagLexeme.FindIndex(line)
	if loc == nil || loc[0] != 0 {
		return nil
	}
	raw := string(line[loc[0]:loc[1]])
	block.Advance(loc[1])

	if spec := parseSpecReference(raw); spec != nil {
		if p.rc != nil {
			if p.rc.SpecGroups == nil {
				p.rc.SpecGroups = map[string][]interfaces.SpecReference{}
			}
			p.rc.SpecGroups[spec.Group] = append(p.rc.SpecGroups[spec.Group], interfaces.SpecReference{Group: spec.Group, Name: spec.Name})
		}
		return spec
	}

	tag, err := p.tagParser.Parse(raw)
	if err != nil {
		p.addFinding(interfaces.Finding{
			Kind:        "TagMalformed",
			Level:       interfaces.LevelWarning,
			Operation:   "render.parse",
			Message:     "malformed terminology tag: " + raw,
			SourceFiles: p.sourceFiles(),
		})
		return NewMalformedTagNode(raw)
	}

	if tag.Warning == "xref_multiple_aliases" {
		p.addFinding(interfaces.Finding{
			Kind:        "XrefWithMultipleAliases",
			Level:       interfaces.LevelWarning,
			Operation:   "render.parse",
			Message:     "xref supplied more than one alias; only the first was kept: " + raw,
			SourceFiles: p.sourceFiles(),
		})
	}

	return NewTermTagNode(tag)
}

func (p *termInlineParser) sourceFiles() []string {
	if p.rc == nil || p.rc.CurrentFile == "" {
		return nil
	}
	return []string{p.rc.CurrentFile}
}

func (p *termInlineParser) addFinding(f interfaces.Finding) {
	if p.rc == nil || p.rc.Findings == nil {
		return
	}
	*p.rc.Findings = append(*p.rc.Findings, f)
}
