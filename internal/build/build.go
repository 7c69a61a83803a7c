// Package build orchestrates one end-to-end run of the terminology
// reference pipeline: load the manifest, scan and normalize Markdown,
// collect and fetch references, render and postprocess HTML, validate the
// result, and emit the final document (spec.md §5's sequential pipeline).
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v43/github"

	"github.com/trustoverip/spec-up-t-go/internal/collector"
	"github.com/trustoverip/spec-up-t-go/internal/diagnostics"
	"github.com/trustoverip/spec-up-t-go/internal/emit"
	"github.com/trustoverip/spec-up-t-go/internal/escape"
	"github.com/trustoverip/spec-up-t-go/internal/fetch"
	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/internal/manifest"
	"github.com/trustoverip/spec-up-t-go/internal/normalizer"
	"github.com/trustoverip/spec-up-t-go/internal/postprocess"
	"github.com/trustoverip/spec-up-t-go/internal/render"
	"github.com/trustoverip/spec-up-t-go/internal/scanner"
	"github.com/trustoverip/spec-up-t-go/internal/store"
	"github.com/trustoverip/spec-up-t-go/internal/tagparser"
	"github.com/trustoverip/spec-up-t-go/internal/validate"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const defaultBranch = "main"

// systemClock is the default interfaces.Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config configures a single Build invocation.
type Config struct {
	// ManifestPath is the path to the project manifest file (specs.json).
	ManifestPath string

	// CacheDir overrides the persisted-cache directory; defaults to
	// "<spec_directory>/.cache" when empty.
	CacheDir string

	// TemplatePath overrides the HTML template file path; defaults to an
	// embedded template when empty.
	TemplatePath string

	// Branch names the branch recorded in the emitted
	// spec-up-t:github-repo-info meta tag; defaults to "main".
	Branch string

	// Check runs the full pipeline but skips the final HTML write,
	// for CI gating (the Validator itself stays non-fatal; the decision of
	// what to do with Result.Validation is left to the caller).
	Check bool

	LoggerProvider interfaces.LoggerProvider
	HTTPClient     *http.Client
	GitHubClient   *github.Client
	Clock          interfaces.Clock
}

func (c Config) clock() interfaces.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return systemClock{}
}

func (c Config) branch() string {
	if strings.TrimSpace(c.Branch) == "" {
		return defaultBranch
	}
	return c.Branch
}

// Result is everything a caller needs after one Build run.
type Result struct {
	Manifest   *interfaces.Manifest
	Validation interfaces.ValidationReport
	Findings   []interfaces.Finding

	OutputPath string
	Written    bool
}

// Build runs the full pipeline once: manifest -> scan/normalize/escape ->
// collect -> fetch -> render -> postprocess -> validate -> emit, persisting
// the reference store and diagnostics snapshot along the way.
func Build(ctx context.Context, cfg Config) (*Result, error) {
	clock := cfg.clock()
	logger := logging.BuildLogger(cfg.LoggerProvider)
	diag := diagnostics.New(diagnostics.WithLogger(cfg.LoggerProvider), diagnostics.WithClock(clock))

	loader := manifest.NewLoader(manifest.WithLogger(cfg.LoggerProvider), manifest.WithDiagnostics(diag))
	m, err := loader.Load(cfg.ManifestPath)
	if err != nil {
		logger.Error("manifest load failed", "error", err)
		return nil, err
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(m.SpecDirectory, ".cache")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("build: creating cache directory %q: %w", cacheDir, err)
	}

	persistence := store.NewPersistence(store.WithLogger(cfg.LoggerProvider))
	refStore, err := persistence.Load(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("build: loading reference store: %w", err)
	}

	termsRoot := filepath.Join(m.SpecDirectory, m.TermsSubdirectory)
	scn := scanner.New(scanner.WithLogger(cfg.LoggerProvider))
	termFiles, err := scn.Scan(termsRoot)
	if err != nil {
		return nil, fmt.Errorf("build: scanning terminology directory: %w", err)
	}
	termIndex := scanner.Paths(termFiles)

	mainFiles, err := readMainFiles(m.SpecDirectory, m.MarkdownFiles)
	if err != nil {
		return nil, err
	}

	norm := normalizer.New()
	processed := make([]interfaces.MarkdownFile, 0, len(mainFiles)+len(termFiles))
	processed = append(processed, mainFiles...)
	for _, f := range termFiles {
		processed = append(processed, interfaces.MarkdownFile{
			Path:    filepath.ToSlash(filepath.Join(m.TermsSubdirectory, f.Path)),
			Content: norm.Normalize(f.Content),
		})
	}

	for i := range processed {
		processed[i].Content = escape.Preprocess(processed[i].Content)
	}

	coll := collector.New(tagparser.NewScanner(), tagparser.NewParser(),
		collector.WithLogger(cfg.LoggerProvider), collector.WithDiagnostics(diag))
	if err := coll.Collect(ctx, processed, m.ExternalSpecs, refStore); err != nil {
		return nil, fmt.Errorf("build: collecting references: %w", err)
	}

	fetcherOpts := []fetch.Option{
		fetch.WithLogger(cfg.LoggerProvider),
		fetch.WithDiagnostics(diag),
		fetch.WithPersistence(persistence, cacheDir),
		fetch.WithClock(clock),
	}
	if cfg.HTTPClient != nil {
		fetcherOpts = append(fetcherOpts, fetch.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.GitHubClient != nil {
		fetcherOpts = append(fetcherOpts, fetch.WithGitHubClient(cfg.GitHubClient))
	}
	fetcher := fetch.New(fetcherOpts...)
	outcomes := fetcher.FetchAll(ctx, m.ExternalSpecs)
	fetch.ApplyOutcomes(refStore, outcomes, diag)

	var findings []interfaces.Finding
	rc := &interfaces.RenderContext{
		Context:      ctx,
		Store:        refStore,
		AnchorSymbol: m.AnchorSymbol,
		SpecGroups:   map[string][]interfaces.SpecReference{},
		Findings:     &findings,
	}

	engine := render.New(render.WithLogger(cfg.LoggerProvider))
	var body strings.Builder
	for _, f := range processed {
		rc.CurrentFile = f.Path
		out, err := engine.Render(rc, f.Content)
		if err != nil {
			return nil, fmt.Errorf("build: rendering %q: %w", f.Path, err)
		}
		body.WriteString(out)
		body.WriteString("\n")
	}
	for _, f := range findings {
		diag.Add(f)
	}

	pp := postprocess.New(postprocess.WithLogger(cfg.LoggerProvider))
	postprocessed, err := pp.Process(body.String())
	if err != nil {
		return nil, fmt.Errorf("build: postprocessing html: %w", err)
	}
	finalHTML := escape.Postprocess(postprocessed)

	refs, irefs := collectLocalReferences(processed, tagparser.NewScanner(), tagparser.NewParser())
	validator := validate.New(validate.WithLogger(cfg.LoggerProvider))
	report := validator.Validate(finalHTML, rc.Definitions, refs, irefs)
	recordValidation(diag, report)

	if err := writeTermIndex(cacheDir, termIndex); err != nil {
		return nil, fmt.Errorf("build: writing term index: %w", err)
	}

	if err := persistence.Save(cacheDir, refStore, clock.Now().UnixMilli()); err != nil {
		return nil, fmt.Errorf("build: saving reference store: %w", err)
	}

	if err := writeConsoleMessages(cacheDir, diag.Snapshot(clock)); err != nil {
		return nil, fmt.Errorf("build: writing console messages: %w", err)
	}

	result := &Result{
		Manifest:   m,
		Validation: report,
		Findings:   diag.All(),
		OutputPath: m.OutputPath,
	}

	if cfg.Check {
		logger.Info("check mode: skipping final document write")
		return result, nil
	}

	toc, err := buildTOC(finalHTML)
	if err != nil {
		return nil, fmt.Errorf("build: building table of contents: %w", err)
	}
	xtrefsData, err := store.ScriptTag(refStore)
	if err != nil {
		return nil, fmt.Errorf("build: rendering xtrefs script tag: %w", err)
	}

	templatePath := cfg.TemplatePath
	if templatePath == "" {
		templatePath, err = writeDefaultTemplate(cacheDir)
		if err != nil {
			return nil, fmt.Errorf("build: writing default template: %w", err)
		}
	}

	data := interfaces.EmitData{
		Title:              m.Title,
		Description:        m.Description,
		Author:             m.Author,
		TOC:                toc,
		Render:             finalHTML,
		XTrefsData:         xtrefsData,
		AssetsHead:         assetsHead(m),
		AssetsBody:         assetsBody(m),
		AssetsSvg:          assetsSvg(m),
		CurrentDate:        clock.Now().Format("02 January 2006"),
		UniversalTimestamp: clock.Now().UTC().Format("2006-01-02T15:04:05Z"),
		GithubRepoInfo:     fmt.Sprintf("%s,%s,%s", m.Source.Account, m.Source.Repo, cfg.branch()),
	}

	emitter := emit.New(emit.WithLogger(cfg.LoggerProvider))
	if err := emitter.Emit(templatePath, m.OutputPath, data); err != nil {
		return nil, wrapOutputUnwritable(fmt.Errorf("build: emitting document: %w", err))
	}

	result.Written = true
	logger.Info("build complete", "output", m.OutputPath, "unresolved", len(report.Unresolved), "dangling", len(report.Dangling))
	return result, nil
}

func readMainFiles(specDirectory string, relativePaths []string) ([]interfaces.MarkdownFile, error) {
	files := make([]interfaces.MarkdownFile, 0, len(relativePaths))
	for _, rel := range relativePaths {
		path := filepath.Join(specDirectory, rel)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("build: reading markdown file %q: %w", path, err)
		}
		files = append(files, interfaces.MarkdownFile{Path: filepath.ToSlash(rel), Content: string(raw)})
	}
	return files, nil
}

func recordValidation(diag interfaces.DiagnosticsBuffer, report interfaces.ValidationReport) {
	for _, u := range report.Unresolved {
		diag.Add(interfaces.Finding{
			Kind:        "UnresolvedRef",
			Level:       interfaces.LevelWarning,
			Operation:   "validate",
			Message:     fmt.Sprintf("reference to %q never resolved to a rendered anchor", u.Term),
			SourceFiles: u.SourceFiles,
		})
	}
	for _, d := range report.Dangling {
		diag.Add(interfaces.Finding{
			Kind:        "DanglingDefinition",
			Level:       interfaces.LevelWarning,
			Operation:   "validate",
			Message:     fmt.Sprintf("definition %q is never referenced", d.Term),
			SourceFiles: []string{d.SourceFile},
		})
	}
}

func writeTermIndex(cacheDir string, paths []string) error {
	raw, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling term index: %w", err)
	}
	return writeAtomic(filepath.Join(cacheDir, "term-index.json"), raw)
}

func writeConsoleMessages(cacheDir string, snapshot diagnostics.Snapshot) error {
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling console messages: %w", err)
	}
	return writeAtomic(filepath.Join(cacheDir, "console-messages.json"), raw)
}

func writeDefaultTemplate(cacheDir string) (string, error) {
	path := filepath.Join(cacheDir, "default-template.html")
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %q to %q: %w", tmp, path, err)
	}
	return nil
}
