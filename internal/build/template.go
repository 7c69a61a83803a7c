package build

import _ "embed"

// defaultTemplate is used when Config.TemplatePath is empty. It carries the
// output HTML surface spec.md §6 requires of every emitted document: the
// github-repo-info meta tag, the terminology-section-start marker
// immediately before the rendered body, and the allXTrefs script slot.
// Uses the standard go:embed pattern for packaging a single asset file
// into the binary.
//
//go:embed default_template.html
var defaultTemplate string
