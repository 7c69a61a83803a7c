// Package escape implements the three-phase backslash-escape mechanism
// described in spec.md §4.4, letting authors type a literal `[[` without
// triggering terminology tag parsing.
package escape

import "strings"

// placeholder contains no `[` so the tag pipeline cannot mistake it for the
// opener of a terminology tag.
const placeholder = " ESCAPED-DOUBLE-BRACKET "

// Preprocess replaces each `\[[` with placeholder and each `\\[[` with a
// literal backslash followed by placeholder, ahead of ordinary tag parsing.
func Preprocess(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		switch {
		case matchesAt(runes, i, `\\[[`):
			b.WriteByte('\\')
			b.WriteString(placeholder)
			i += len(`\\[[`) - 1
		case matchesAt(runes, i, `\[[`):
			b.WriteString(placeholder)
			i += len(`\[[`) - 1
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// Postprocess restores every remaining placeholder to a literal `[[`.
func Postprocess(content string) string {
	return strings.ReplaceAll(content, placeholder, "[[")
}

func matchesAt(runes []rune, i int, pattern string) bool {
	p := []rune(pattern)
	if i+len(p) > len(runes) {
		return false
	}
	for j, r := range p {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}
