package manifest

// wireDocument is the raw on-disk shape of the manifest file (spec.md §6):
// a top-level `specs` array, normally carrying exactly one element.
type wireDocument struct {
	Specs []wireSpec `json:"specs"`
}

type wireSpec struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Author        string           `json:"author"`
	Source        wireSource       `json:"source"`
	SpecDirectory string           `json:"spec_directory"`
	TermsDir      string           `json:"spec_terms_directory"`
	OutputPath    string           `json:"output_path"`
	MarkdownPaths []string         `json:"markdown_paths"`
	Logo          string           `json:"logo,omitempty"`
	LogoLink      string           `json:"logo_link,omitempty"`
	Favicon       string           `json:"favicon,omitempty"`
	ExternalSpecs []wireExternal   `json:"external_specs,omitempty"`
	KaTeX         bool             `json:"katex,omitempty"`
}

type wireSource struct {
	Account string `json:"account"`
	Repo    string `json:"repo"`
}

type wireExternal struct {
	ExternalSpec string `json:"external_spec"`
	URL          string `json:"url"`
	GHPage       string `json:"gh_page"`
	TermsDir     string `json:"terms_dir,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}
