package manifest

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	manifestMissingCode = "MANIFEST_MISSING"
	manifestInvalidCode = "MANIFEST_INVALID"
)

// wrapMissing wraps a manifest-file-not-found error with the ManifestMissing
// text code (spec.md §4.1, §7 — fatal, configuration category).
func wrapMissing(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "manifest file is missing").
		WithTextCode(manifestMissingCode)
}

// wrapInvalid wraps a JSON-parse or required-field error with the
// ManifestInvalid text code.
func wrapInvalid(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "manifest file is invalid").
		WithTextCode(manifestInvalidCode)
}
