package store

import "github.com/trustoverip/spec-up-t-go/pkg/interfaces"

// wireRecord is the JSON-serialized shape of a ReferenceRecord (spec.md
// §4.8): alias lists and sourceFiles preserve insertion order, and
// firstTrefAlias/firstXrefAlias are omitted entirely when absent rather
// than serialized as empty strings.
type wireRecord struct {
	ExternalSpec string `json:"externalSpec"`
	Term         string `json:"term"`

	TrefAliases    []string `json:"trefAliases,omitempty"`
	XrefAliases    []string `json:"xrefAliases,omitempty"`
	FirstTrefAlias string   `json:"firstTrefAlias,omitempty"`
	FirstXrefAlias string   `json:"firstXrefAlias,omitempty"`

	SourceFiles []wireSourceFile `json:"sourceFiles,omitempty"`

	Owner      string   `json:"owner,omitempty"`
	Repo       string   `json:"repo,omitempty"`
	RepoURL    string   `json:"repoUrl,omitempty"`
	GHPageURL  string   `json:"ghPageUrl,omitempty"`
	AvatarURL  string   `json:"avatarUrl,omitempty"`
	Branch     string   `json:"branch,omitempty"`
	CommitHash string   `json:"commitHash,omitempty"`
	Content    string   `json:"content,omitempty"`
	Classes    []string `json:"classes,omitempty"`
	Site       string   `json:"site,omitempty"`
	Source     string   `json:"source,omitempty"`
}

type wireSourceFile struct {
	File string `json:"file"`
	Type string `json:"type"`
}

func toWireRecord(r interfaces.ReferenceRecord) wireRecord {
	w := wireRecord{
		ExternalSpec:   r.ExternalSpec,
		Term:           r.Term,
		TrefAliases:    r.TrefAliases,
		XrefAliases:    r.XrefAliases,
		FirstTrefAlias: r.FirstTrefAlias(),
		FirstXrefAlias: r.FirstXrefAlias(),
		Owner:          r.Owner,
		Repo:           r.Repo,
		RepoURL:        r.RepoURL,
		GHPageURL:      r.GHPageURL,
		AvatarURL:      r.AvatarURL,
		Branch:         r.Branch,
		CommitHash:     r.CommitHash,
		Content:        r.Content,
		Classes:        r.Classes,
		Site:           r.Site,
		Source:         string(r.Source),
	}
	for _, sf := range r.SourceFiles {
		w.SourceFiles = append(w.SourceFiles, wireSourceFile{File: sf.File, Type: string(sf.Type)})
	}
	return w
}

func (w wireRecord) toRecord() interfaces.ReferenceRecord {
	r := interfaces.ReferenceRecord{
		ExternalSpec: w.ExternalSpec,
		Term:         w.Term,
		TrefAliases:  w.TrefAliases,
		XrefAliases:  w.XrefAliases,
		Owner:        w.Owner,
		Repo:         w.Repo,
		RepoURL:      w.RepoURL,
		GHPageURL:    w.GHPageURL,
		AvatarURL:    w.AvatarURL,
		Branch:       w.Branch,
		CommitHash:   w.CommitHash,
		Content:      w.Content,
		Classes:      w.Classes,
		Site:         w.Site,
		Source:       interfaces.SourceFileType(w.Source),
	}
	for _, sf := range w.SourceFiles {
		r.SourceFiles = append(r.SourceFiles, interfaces.SourceFileRef{File: sf.File, Type: interfaces.SourceFileType(sf.Type)})
	}
	return r
}
