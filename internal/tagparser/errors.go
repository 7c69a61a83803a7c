package tagparser

import "errors"

// ErrTagMalformed is returned when a `[[...]]` lexeme has no closer or an
// unrecognized type token (spec.md §4.5, §7 TagMalformed).
var ErrTagMalformed = errors.New("tagparser: malformed tag")

// ErrNotTerminologyTag is returned for recognized-but-foreign lexeme types
// (currently `spec`/`spec-<group>`), which are handled by the Markdown
// Engine Facade's own spec-reference extension rather than by this parser.
var ErrNotTerminologyTag = errors.New("tagparser: not a terminology tag")
