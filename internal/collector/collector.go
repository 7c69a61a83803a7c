// Package collector implements the Reference Collector component (spec.md
// §4.6): it scans Markdown files for xref/tref tags, merges discoveries
// into the reference store per the merge rules of spec.md §3, prunes stale
// records, validates declared external specs, and enriches surviving
// records with their repository descriptors.
package collector

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const defaultBranch = "main"

// Collector implements interfaces.ReferenceCollector.
type Collector struct {
	scanner     interfaces.TagScanner
	parser      interfaces.TagParser
	diagnostics interfaces.DiagnosticsBuffer
	logger      interfaces.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(c *Collector) {
		c.logger = logging.CollectorLogger(provider)
	}
}

// WithDiagnostics attaches the build's shared diagnostics buffer.
func WithDiagnostics(buf interfaces.DiagnosticsBuffer) Option {
	return func(c *Collector) {
		c.diagnostics = buf
	}
}

// New constructs a Collector using the given tag scanner and parser.
func New(scanner interfaces.TagScanner, parser interfaces.TagParser, opts ...Option) *Collector {
	c := &Collector{scanner: scanner, parser: parser, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect scans files for xref/tref tags, merges discoveries into store,
// prunes stale records, and enriches surviving records.
func (c *Collector) Collect(ctx context.Context, files []interfaces.MarkdownFile, specs []interfaces.ExternalSpec, store interfaces.ReferenceStore) error {
	c.prune(files, store)

	declared := make(map[string]interfaces.ExternalSpec, len(specs))
	for _, s := range specs {
		declared[s.ExternalSpec] = s
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, match := range c.scanner.Scan(file.Content) {
			tag, err := c.parser.Parse(match.Raw)
			if err != nil {
				continue
			}
			if tag.Kind != interfaces.TagXref && tag.Kind != interfaces.TagTref {
				continue
			}
			c.observe(file.Path, tag, store)

			if _, ok := declared[tag.ExternalSpec]; !ok {
				c.addFinding(interfaces.Finding{
					Kind:        "UnknownExternalSpec",
					Level:       interfaces.LevelWarning,
					Operation:   "collector.validate",
					Message:     fmt.Sprintf("external spec %q is not declared in the manifest", tag.ExternalSpec),
					SourceFiles: []string{file.Path},
				})
			}
		}
	}

	for _, record := range store.Records() {
		spec, ok := declared[record.ExternalSpec]
		if !ok {
			continue
		}
		store.Put(c.enrich(record, spec))
	}

	return nil
}

// observe applies one parsed xref/tref tag occurrence to store, per the
// merge rules of spec.md §3.
func (c *Collector) observe(sourceFile string, tag interfaces.TerminologyTag, store interfaces.ReferenceStore) {
	key := interfaces.RecordKey{ExternalSpec: tag.ExternalSpec, Term: tag.Term}
	existing, found := store.Get(key)
	if !found {
		existing = interfaces.ReferenceRecord{ExternalSpec: tag.ExternalSpec, Term: tag.Term}
	}

	sourceType := interfaces.SourceXref
	if tag.Kind == interfaces.TagTref {
		sourceType = interfaces.SourceTref
	}
	existing.SourceFiles = appendSourceFile(existing.SourceFiles, interfaces.SourceFileRef{File: sourceFile, Type: sourceType})

	switch tag.Kind {
	case interfaces.TagTref:
		// Rule 3: re-observed as tref replaces the alias array wholesale;
		// an author dropping aliases in source removes them here too.
		existing.TrefAliases = append([]string(nil), tag.Aliases...)
		existing.Source = interfaces.SourceTref

	case interfaces.TagXref:
		if tag.Warning == "xref_multiple_aliases" {
			c.addFinding(interfaces.Finding{
				Kind:        "XrefWithMultipleAliases",
				Level:       interfaces.LevelWarning,
				Operation:   "collector.parse",
				Message:     fmt.Sprintf("xref %s/%s supplied more than one alias; only the first was kept", tag.ExternalSpec, tag.Term),
				SourceFiles: []string{sourceFile},
			})
		}
		if tag.Alias != "" {
			existing.XrefAliases = appendUnique(existing.XrefAliases, tag.Alias)
		}
		// Rule 2: a tref record later observed as xref keeps its tref
		// aliases, first alias, and fetched content; only Source is left
		// untouched here so tref priority survives re-discovery.
		if existing.Source != interfaces.SourceTref {
			existing.Source = interfaces.SourceXref
		}
	}

	store.Put(existing)
}

// prune removes any record whose (externalSpec, term) is no longer
// mentioned by any current file. The membership test is intentionally
// approximate (spec.md §9 Open Question, preserved as-is): it matches the
// literal tag opener and arguments with tolerant whitespace, not a full
// tag parse, so a reference inside an escaped or malformed tag can still
// keep a record alive.
func (c *Collector) prune(files []interfaces.MarkdownFile, store interfaces.ReferenceStore) {
	for _, key := range store.Keys() {
		if !mentionedAnywhere(files, key) {
			store.Delete(key)
		}
	}
}

func mentionedAnywhere(files []interfaces.MarkdownFile, key interfaces.RecordKey) bool {
	pattern := regexp.MustCompile(`\[\[(xref|tref):\s*` + regexp.QuoteMeta(key.ExternalSpec) + `\s*,\s*` + regexp.QuoteMeta(key.Term) + `\b`)
	for _, f := range files {
		if pattern.MatchString(f.Content) {
			return true
		}
	}
	return false
}

// enrich sets owner/repo/repoUrl/ghPageUrl/avatarUrl from the manifest's
// declared external spec, and a default branch when the record does not
// already carry one (spec.md §4.6 step 5: "default main if unavailable").
// The Remote Fetcher may later overwrite branch and commitHash once it
// resolves the spec's actual default branch.
func (c *Collector) enrich(record interfaces.ReferenceRecord, spec interfaces.ExternalSpec) interfaces.ReferenceRecord {
	owner, repo := parseOwnerRepo(spec.URL)
	record.Owner = owner
	record.Repo = repo
	record.RepoURL = spec.URL
	record.GHPageURL = spec.GHPage
	record.AvatarURL = spec.AvatarURL
	if record.Branch == "" {
		record.Branch = defaultBranch
	}
	return record
}

func (c *Collector) addFinding(f interfaces.Finding) {
	c.logger.Warn(f.Message, "kind", f.Kind)
	if c.diagnostics != nil {
		c.diagnostics.Add(f)
	}
}

func appendSourceFile(existing []interfaces.SourceFileRef, ref interfaces.SourceFileRef) []interfaces.SourceFileRef {
	for _, sf := range existing {
		if sf.File == ref.File && sf.Type == ref.Type {
			return existing
		}
	}
	return append(existing, ref)
}

func appendUnique(existing []string, value string) []string {
	for _, v := range existing {
		if v == value {
			return existing
		}
	}
	return append(existing, value)
}

// parseOwnerRepo extracts "owner" and "repo" from a GitHub repository URL
// such as "https://github.com/trustoverip/keri" or the same with a
// trailing slash or ".git" suffix.
func parseOwnerRepo(repoURL string) (owner, repo string) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", ""
	}
	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")
	return owner, repo
}

var _ interfaces.ReferenceCollector = (*Collector)(nil)
