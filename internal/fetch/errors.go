package fetch

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v43/github"

	goerrors "github.com/goliatone/go-errors"
)

const (
	remoteUnreachableCode = "REMOTE_UNREACHABLE"
	remoteNotFoundCode    = "REMOTE_NOT_FOUND"
	rateLimitedCode       = "RATE_LIMITED"
)

// classify turns a transport/HTTP/go-github error into the non-fatal error
// taxonomy of spec.md §7: RemoteUnreachable, RemoteNotFound, RateLimited.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "remote spec rate-limited the request").
			WithTextCode(rateLimitedCode)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if ghErr.Response.StatusCode == http.StatusForbidden && ghErr.Response.Header.Get("X-RateLimit-Remaining") == "0" {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "remote spec rate-limited the request").
				WithTextCode(rateLimitedCode)
		}
		if ghErr.Response.StatusCode == http.StatusNotFound {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "remote spec resource not found").
				WithTextCode(remoteNotFoundCode)
		}
	}

	if statusErr, ok := err.(httpStatusError); ok {
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "remote spec rate-limited the request").
				WithTextCode(rateLimitedCode)
		}
		if statusErr.StatusCode == http.StatusNotFound {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "remote spec resource not found").
				WithTextCode(remoteNotFoundCode)
		}
	}

	return goerrors.Wrap(err, goerrors.CategoryValidation, "remote spec unreachable").
		WithTextCode(remoteUnreachableCode)
}

// httpStatusError wraps a plain (non go-github) HTTP response status for
// classification, used by the GitHub Pages / raw-fallback fetch paths which
// talk to plain *http.Client rather than the go-github client.
type httpStatusError struct {
	StatusCode int
	URL        string
}

func (e httpStatusError) Error() string {
	return "unexpected status " + http.StatusText(e.StatusCode) + " fetching " + e.URL
}
