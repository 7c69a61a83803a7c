package build

import (
	goerrors "github.com/goliatone/go-errors"
)

const outputPathUnwritableCode = "OUTPUT_PATH_UNWRITABLE"

// wrapOutputUnwritable wraps a final-document write failure with the
// OutputPathUnwritable text code (spec.md §7: fatal, configuration
// category), following the same goerrors.Wrap/WithTextCode pattern as
// internal/manifest/errors.go.
func wrapOutputUnwritable(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "output path is not writable").
		WithTextCode(outputPathUnwritableCode)
}
