// Package validate implements the Validator (spec.md §4.12): two
// non-fatal cross-checks run against the final rendered HTML.
package validate

import (
	"regexp"
	"sort"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/internal/render"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

var (
	anchorIDPattern   = regexp.MustCompile(`id="term:([a-z0-9-]+)"`)
	hrefTargetPattern = regexp.MustCompile(`href="#term:([a-z0-9-]+)"`)
)

// Validator implements interfaces.Validator.
type Validator struct {
	logger interfaces.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger attaches a module-scoped logger.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(v *Validator) {
		v.logger = logging.ValidateLogger(provider)
	}
}

// New constructs a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks html against definitions and the collected ref/iref
// occurrence maps (term -> one entry per referencing source file).
func (v *Validator) Validate(html string, definitions []interfaces.LocalDefinition, refs, irefs map[string][]string) interfaces.ValidationReport {
	anchored := idSet(anchorIDPattern, html)
	targeted := idSet(hrefTargetPattern, html)

	report := interfaces.ValidationReport{
		Unresolved: unresolvedReferences(anchored, refs, irefs),
		Dangling:   danglingDefinitions(targeted, definitions),
	}

	if v.logger != nil {
		v.logger.Info("validation complete", "unresolved", len(report.Unresolved), "dangling", len(report.Dangling))
	}
	return report
}

func idSet(pattern *regexp.Regexp, html string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range pattern.FindAllStringSubmatch(html, -1) {
		set[m[1]] = struct{}{}
	}
	return set
}

// unresolvedReferences reports every ref/iref term lacking a matching
// rendered anchor id="term:<sanitize(T)>".
func unresolvedReferences(anchored map[string]struct{}, refs, irefs map[string][]string) []interfaces.UnresolvedReference {
	terms := map[string][]string{}
	for term, files := range refs {
		terms[term] = append(terms[term], files...)
	}
	for term, files := range irefs {
		terms[term] = append(terms[term], files...)
	}

	var out []interfaces.UnresolvedReference
	for term, files := range terms {
		if _, ok := anchored[sanitizeID(term)]; ok {
			continue
		}
		out = append(out, interfaces.UnresolvedReference{
			Term:        term,
			Count:       len(files),
			SourceFiles: dedupe(files),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

// danglingDefinitions reports every local definition whose term and
// primary alias are never targeted by a href="#term:<sanitize(x)>".
func danglingDefinitions(targeted map[string]struct{}, definitions []interfaces.LocalDefinition) []interfaces.DanglingDefinition {
	var out []interfaces.DanglingDefinition
	for _, def := range definitions {
		if _, ok := targeted[sanitizeID(def.Term)]; ok {
			continue
		}
		if def.PrimaryAlias != "" {
			if _, ok := targeted[sanitizeID(def.PrimaryAlias)]; ok {
				continue
			}
		}
		out = append(out, interfaces.DanglingDefinition{Term: def.Term, SourceFile: def.SourceFile})
	}
	return out
}

func dedupe(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sanitizeID(term string) string {
	return render.SanitizeID(term)
}

var _ interfaces.Validator = (*Validator)(nil)
