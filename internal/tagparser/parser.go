// Package tagparser implements the Tag Parser component (spec.md §4.5): it
// turns a single `[[...]]` lexeme into a structured interfaces.TerminologyTag,
// and exposes a Scanner that locates every such lexeme in a content string.
package tagparser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

var typePattern = regexp.MustCompile(`^(def|ref|iref|xref|tref|spec(-\w+)?)$`)

// Parser implements interfaces.TagParser.
type Parser struct{}

// NewParser constructs a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse turns a single `[[...]]` lexeme into a TerminologyTag.
func (p *Parser) Parse(lexeme string) (interfaces.TerminologyTag, error) {
	inner, ok := unwrap(lexeme)
	if !ok {
		return interfaces.TerminologyTag{}, fmt.Errorf("%w: missing opener/closer in %q", ErrTagMalformed, lexeme)
	}

	typeToken, rest, hasColon := splitType(inner)
	typeToken = strings.TrimSpace(typeToken)
	if !typePattern.MatchString(typeToken) {
		return interfaces.TerminologyTag{}, fmt.Errorf("%w: unrecognized type %q", ErrTagMalformed, typeToken)
	}

	if strings.HasPrefix(typeToken, "spec") {
		return interfaces.TerminologyTag{}, ErrNotTerminologyTag
	}

	var args []string
	if hasColon {
		args = splitArgs(rest)
	}

	tag := interfaces.TerminologyTag{Raw: lexeme}

	switch typeToken {
	case "def":
		if len(args) < 1 || args[0] == "" {
			return interfaces.TerminologyTag{}, fmt.Errorf("%w: def requires a term in %q", ErrTagMalformed, lexeme)
		}
		tag.Kind = interfaces.TagDef
		tag.Term = args[0]
		tag.Aliases = append([]string(nil), args[1:]...)

	case "ref":
		if len(args) != 1 || args[0] == "" {
			return interfaces.TerminologyTag{}, fmt.Errorf("%w: ref requires exactly one term in %q", ErrTagMalformed, lexeme)
		}
		tag.Kind = interfaces.TagRef
		tag.Term = args[0]

	case "iref":
		if len(args) != 1 || args[0] == "" {
			return interfaces.TerminologyTag{}, fmt.Errorf("%w: iref requires exactly one term in %q", ErrTagMalformed, lexeme)
		}
		tag.Kind = interfaces.TagIref
		tag.Term = args[0]

	case "xref":
		if len(args) < 2 || args[0] == "" || args[1] == "" {
			return interfaces.TerminologyTag{}, fmt.Errorf("%w: xref requires externalSpec and term in %q", ErrTagMalformed, lexeme)
		}
		tag.Kind = interfaces.TagXref
		tag.ExternalSpec = args[0]
		tag.Term = args[1]
		if len(args) >= 3 {
			tag.Alias = args[2]
		}
		if len(args) > 3 {
			tag.Warning = "xref_multiple_aliases"
		}

	case "tref":
		if len(args) < 2 || args[0] == "" || args[1] == "" {
			return interfaces.TerminologyTag{}, fmt.Errorf("%w: tref requires externalSpec and term in %q", ErrTagMalformed, lexeme)
		}
		tag.Kind = interfaces.TagTref
		tag.ExternalSpec = args[0]
		tag.Term = args[1]
		tag.Aliases = append([]string(nil), args[2:]...)
	}

	return tag, nil
}

func unwrap(lexeme string) (string, bool) {
	trimmed := strings.TrimSpace(lexeme)
	if !strings.HasPrefix(trimmed, "[[") || !strings.HasSuffix(trimmed, "]]") || len(trimmed) < 4 {
		return "", false
	}
	return trimmed[2 : len(trimmed)-2], true
}

// splitType separates the type token from the argument list on the first
// colon, reporting whether a colon was present at all.
func splitType(inner string) (typeToken, rest string, hasColon bool) {
	idx := strings.IndexByte(inner, ':')
	if idx < 0 {
		return strings.TrimSpace(inner), "", false
	}
	return strings.TrimSpace(inner[:idx]), inner[idx+1:], true
}

// splitArgs splits a comma-separated argument list, trims whitespace around
// each argument, and discards empty trailing arguments.
func splitArgs(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

var _ interfaces.TagParser = (*Parser)(nil)
