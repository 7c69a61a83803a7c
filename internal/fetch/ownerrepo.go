package fetch

import (
	"net/url"
	"strings"
)

// parseOwnerRepo extracts "owner" and "repo" from a GitHub repository URL
// such as "https://github.com/trustoverip/keri" or the same with a
// trailing slash or ".git" suffix. Mirrors internal/collector's helper of
// the same purpose; kept local since the two packages use it for different
// ends (enrichment vs. fetch-pair dedupe) and neither depends on the other.
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
