// Package fetch implements the Remote Fetcher (spec.md §4.7): for every
// unique (owner, repo) pair among the declared external specs, it performs
// at most one remote HTTP fetch per build, tries GitHub Pages first with a
// raw-content fallback via the GitHub API, extracts term definitions from
// the retrieved HTML, and classifies failures into the non-fatal error
// taxonomy of spec.md §7.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v43/github"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const (
	requestTimeout       = 5 * time.Second
	defaultBranch        = "main"
	maxConcurrentFetches = 6
	githubTokenEnvVar    = "GITHUB_TOKEN"
	fetchCacheSize       = 256
)

// systemClock is the default interfaces.Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Fetcher implements interfaces.RemoteFetcher.
type Fetcher struct {
	http        *http.Client
	gh          *github.Client
	logger      interfaces.Logger
	diagnostics interfaces.DiagnosticsBuffer
	persistence interfaces.StorePersistence
	cacheDir    string
	clock       interfaces.Clock

	// cache dedupes fetches by "owner/repo" across FetchAll calls against
	// the same Fetcher instance. Build orchestration constructs one Fetcher
	// per build, so this gives "at most one remote fetch per (owner, repo)
	// pair per build" (spec.md §4.7) without extra bookkeeping in the
	// caller.
	cache *lru.Cache[string, interfaces.FetchOutcome]
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(f *Fetcher) { f.logger = logging.FetchLogger(provider) }
}

// WithDiagnostics attaches the build's shared diagnostics buffer.
func WithDiagnostics(buf interfaces.DiagnosticsBuffer) Option {
	return func(f *Fetcher) { f.diagnostics = buf }
}

// WithHTTPClient overrides the plain HTTP client used for GitHub Pages and
// raw-content requests (tests substitute one pointed at an httptest server).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.http = c }
}

// WithGitHubClient overrides the go-github client used for API-hosted
// lookups (default branch, commit hash, specs.json fallback).
func WithGitHubClient(c *github.Client) Option {
	return func(f *Fetcher) { f.gh = c }
}

// WithPersistence enables writing a fetch snapshot file after every
// successful fetch (spec.md §4.7 step 5).
func WithPersistence(p interfaces.StorePersistence, cacheDir string) Option {
	return func(f *Fetcher) {
		f.persistence = p
		f.cacheDir = cacheDir
	}
}

// WithClock overrides the fetcher's notion of "now", used for snapshot
// filenames.
func WithClock(clock interfaces.Clock) Option {
	return func(f *Fetcher) { f.clock = clock }
}

// New constructs a Fetcher. When no GitHub client is supplied, one is built
// from the GITHUB_TOKEN environment variable if present; its absence is
// logged, not treated as an error (spec.md §4.7 "Authentication").
func New(opts ...Option) *Fetcher {
	cache, _ := lru.New[string, interfaces.FetchOutcome](fetchCacheSize)
	f := &Fetcher{
		http:   &http.Client{Timeout: requestTimeout},
		logger: logging.NoOp(),
		clock:  systemClock{},
		cache:  cache,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.gh == nil {
		f.gh = f.newGitHubClient()
	}
	return f
}

func (f *Fetcher) newGitHubClient() *github.Client {
	token := strings.TrimSpace(os.Getenv(githubTokenEnvVar))
	if token == "" {
		f.logger.Warn("no GITHUB_TOKEN set; remote fetches will use the unauthenticated, lower rate limit")
		return github.NewClient(f.http)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(context.Background(), ts))
}

// FetchAll fetches every unique (owner, repo) pair among specs, bounded to
// maxConcurrentFetches concurrent requests (spec.md §5's concurrency
// model), and returns one FetchOutcome per pair keyed by "owner/repo".
func (f *Fetcher) FetchAll(ctx context.Context, specs []interfaces.ExternalSpec) map[string]interfaces.FetchOutcome {
	type pair struct {
		key  string
		spec interfaces.ExternalSpec
	}

	seen := make(map[string]struct{})
	var pairs []pair
	for _, spec := range specs {
		owner, repo := parseOwnerRepo(spec.URL)
		if owner == "" || repo == "" {
			continue
		}
		key := owner + "/" + repo
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pairs = append(pairs, pair{key: key, spec: spec})
	}

	results := make(map[string]interfaces.FetchOutcome, len(pairs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, p := range pairs {
		p := p
		g.Go(func() error {
			outcome := f.fetchOne(gctx, p.spec)
			mu.Lock()
			results[p.key] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, spec interfaces.ExternalSpec) interfaces.FetchOutcome {
	owner, repo := parseOwnerRepo(spec.URL)
	cacheKey := owner + "/" + repo

	if cached, ok := f.cache.Get(cacheKey); ok {
		return cached
	}

	var (
		htmlBody   string
		commitHash string
		err        error
	)

	if spec.GHPage != "" {
		htmlBody, err = f.getURL(ctx, strings.TrimRight(spec.GHPage, "/")+"/index.html")
		if err == nil {
			if sha, branchErr := f.resolveDefaultBranchCommit(ctx, owner, repo); branchErr == nil {
				commitHash = sha
			} else {
				f.logger.Warn("could not resolve default branch commit", "owner", owner, "repo", repo, "error", branchErr)
			}
		}
	}

	if htmlBody == "" || err != nil {
		htmlBody, commitHash, err = f.fetchViaRawFallback(ctx, owner, repo)
	}

	if err != nil {
		outcome := notFoundOutcome(owner, repo, classify(err))
		f.logger.Warn("remote fetch failed", "owner", owner, "repo", repo, "error", outcome.Err)
		f.cache.Add(cacheKey, outcome)
		return outcome
	}

	terms, parseErr := extractTerms(htmlBody)
	if parseErr != nil {
		outcome := notFoundOutcome(owner, repo, classify(parseErr))
		f.logger.Warn("remote spec HTML could not be parsed", "owner", owner, "repo", repo, "error", outcome.Err)
		f.cache.Add(cacheKey, outcome)
		return outcome
	}

	for term, t := range terms {
		t.CommitHash = commitHash
		t.AvatarURL = spec.AvatarURL
		terms[term] = t
	}

	outcome := interfaces.FetchOutcome{Owner: owner, Repo: repo, Terms: terms, CommitHash: commitHash}

	if f.persistence != nil && f.cacheDir != "" {
		if saveErr := f.persistence.SaveFetchSnapshot(f.cacheDir, f.clock.Now().UnixMilli(), owner, repo, terms); saveErr != nil {
			f.logger.Warn("failed writing fetch snapshot", "owner", owner, "repo", repo, "error", saveErr)
		}
	}

	f.cache.Add(cacheKey, outcome)
	return outcome
}

// notFoundOutcome is the "content not found" shape applied by the caller to
// every affected record (spec.md §4.7 "Fetch errors"): the outcome itself
// just carries the classified error; ApplyOutcomes (apply.go) is the one
// that stamps the not-found content/commitHash/avatarUrl fields onto
// individual ReferenceRecords.
func notFoundOutcome(owner, repo string, err error) interfaces.FetchOutcome {
	return interfaces.FetchOutcome{Owner: owner, Repo: repo, Err: err}
}

func (f *Fetcher) resolveDefaultBranchCommit(ctx context.Context, owner, repo string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	repoInfo, _, err := f.gh.Repositories.Get(reqCtx, owner, repo)
	if err != nil {
		return "", err
	}
	branch := repoInfo.GetDefaultBranch()
	if branch == "" {
		branch = defaultBranch
	}

	b, _, err := f.gh.Repositories.GetBranch(reqCtx, owner, repo, branch, true)
	if err != nil {
		return "", err
	}
	return b.GetCommit().GetSHA(), nil
}

// fetchViaRawFallback implements spec.md §4.7 step 2: read the remote
// repo's own specs.json for its outputPath, then fetch the built index.html
// over the raw-content path.
func (f *Fetcher) fetchViaRawFallback(ctx context.Context, owner, repo string) (body, commitHash string, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	fileContent, _, _, err := f.gh.Repositories.GetContents(reqCtx, owner, repo, "specs.json", nil)
	if err != nil {
		return "", "", err
	}
	raw, err := fileContent.GetContent()
	if err != nil {
		return "", "", err
	}

	var doc struct {
		Specs []struct {
			OutputPath string `json:"output_path"`
		} `json:"specs"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return "", "", err
	}
	if len(doc.Specs) == 0 {
		return "", "", fmt.Errorf("specs.json for %s/%s declares no specs entries", owner, repo)
	}
	outputPath := strings.Trim(doc.Specs[0].OutputPath, "/")

	rawURL := fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s/index.html", owner, repo, defaultBranch, outputPath)
	body, err = f.getURL(ctx, rawURL)
	if err != nil {
		return "", "", err
	}

	commits, _, cErr := f.gh.Repositories.ListCommits(reqCtx, owner, repo, &github.CommitsListOptions{
		Path:        outputPath + "/index.html",
		SHA:         defaultBranch,
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if cErr == nil && len(commits) > 0 {
		commitHash = commits[0].GetSHA()
	}

	return body, commitHash, nil
}

func (f *Fetcher) getURL(ctx context.Context, target string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httpStatusError{StatusCode: resp.StatusCode, URL: target}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var _ interfaces.RemoteFetcher = (*Fetcher)(nil)
