package interfaces

import "time"

// EmitData carries every value the Emitter interpolates into the HTML
// template (spec.md §4.13).
type EmitData struct {
	Title       string
	Description string
	Author      string
	TOC         string
	Render      string
	XTrefsData  string // companion <script> body, already wrapped.

	AssetsHead string
	AssetsBody string
	AssetsSvg  string

	CurrentDate        string // author-local date, "DD Month YYYY"
	UniversalTimestamp string // ISO 8601 UTC
	GithubRepoInfo     string // "account,repo,branch"
}

// Emitter interpolates the HTML template and writes the final artifact.
type Emitter interface {
	Emit(templatePath, outputPath string, data EmitData) error
}

// Clock abstracts "now" so Emitter output is reproducible in tests.
type Clock interface {
	Now() time.Time
}
