package render

import (
	"github.com/yuin/goldmark/ast"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// KindTermTag identifies TermTagNode in the goldmark AST.
var KindTermTag = ast.NewNodeKind("TermTag")

// TermTagNode wraps one successfully parsed terminology tag; the node
// renderer expands it to HTML via a TagRenderer during rendering.
type TermTagNode struct {
	ast.BaseInline
	Tag interfaces.TerminologyTag
}

// NewTermTagNode constructs a TermTagNode for tag.
func NewTermTagNode(tag interfaces.TerminologyTag) *TermTagNode {
	return &TermTagNode{Tag: tag}
}

// Kind implements ast.Node.
func (n *TermTagNode) Kind() ast.NodeKind { return KindTermTag }

// Dump implements ast.Node.
func (n *TermTagNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Kind": string(n.Tag.Kind),
		"Term": n.Tag.Term,
	}, nil)
}

// KindMalformedTag identifies MalformedTagNode in the goldmark AST.
var KindMalformedTag = ast.NewNodeKind("MalformedTag")

// MalformedTagNode preserves the literal `[[...]]` lexeme of a tag that
// failed to parse so the source text still renders, while the node
// renderer raises a TagMalformed finding.
type MalformedTagNode struct {
	ast.BaseInline
	Raw string
}

// NewMalformedTagNode constructs a MalformedTagNode for the given raw lexeme.
func NewMalformedTagNode(raw string) *MalformedTagNode {
	return &MalformedTagNode{Raw: raw}
}

// Kind implements ast.Node.
func (n *MalformedTagNode) Kind() ast.NodeKind { return KindMalformedTag }

// Dump implements ast.Node.
func (n *MalformedTagNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Raw": n.Raw}, nil)
}

// KindSpecRefTag identifies SpecRefTagNode in the goldmark AST.
var KindSpecRefTag = ast.NewNodeKind("SpecRefTag")

// SpecRefTagNode carries a parsed `[[spec:...]]`/`[[spec-<group>:...]]`
// reference; the node renderer expands it and the engine aggregates it
// into RenderContext.SpecGroups for bibliography rendering.
type SpecRefTagNode struct {
	ast.BaseInline
	Group string
	Name  string
}

// NewSpecRefTagNode constructs a SpecRefTagNode.
func NewSpecRefTagNode(group, name string) *SpecRefTagNode {
	return &SpecRefTagNode{Group: group, Name: name}
}

// Kind implements ast.Node.
func (n *SpecRefTagNode) Kind() ast.NodeKind { return KindSpecRefTag }

// Dump implements ast.Node.
func (n *SpecRefTagNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Group": n.Group, "Name": n.Name}, nil)
}
