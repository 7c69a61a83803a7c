package interfaces

// Postprocessor reunifies fragmented definition lists in rendered HTML and
// sorts the final terminology list case-insensitively (spec.md §4.11).
type Postprocessor interface {
	Process(html string) (string, error)
}
