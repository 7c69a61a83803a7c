package interfaces

// UnresolvedReference reports a ref/iref term with no matching rendered
// anchor (spec.md §4.12).
type UnresolvedReference struct {
	Term        string
	Count       int
	SourceFiles []string
}

// DanglingDefinition reports a def term (or alias) never targeted by any
// href in the rendered HTML.
type DanglingDefinition struct {
	Term       string
	SourceFile string
}

// ValidationReport is the Validator's output: both properties are always
// non-fatal warnings (spec.md §4.12).
type ValidationReport struct {
	Unresolved []UnresolvedReference
	Dangling   []DanglingDefinition
}

// Validator cross-checks rendered HTML against collected references and
// local definitions.
type Validator interface {
	Validate(html string, definitions []LocalDefinition, refs, irefs map[string][]string) ValidationReport
}
