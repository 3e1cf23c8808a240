// Package errs defines the error taxonomy shared by the migration stages.
package errs

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to taxonomy errors.
const (
	CodeSkippableInput  = "SKIPPABLE_INPUT"
	CodeDateParse       = "DATE_PARSE"
	CodeSubmission      = "SUBMISSION_FAILED"
	CodeUnresolvedAsset = "UNRESOLVED_ASSET"
	CodeCorpus          = "CORPUS_IO"
)

// Skippable marks a malformed record that is skipped while the run continues.
func Skippable(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, message).
		WithTextCode(CodeSkippableInput)
}

// DateParse marks an unparseable publish date. It aborts the current record.
func DateParse(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(CodeDateParse)
}

// Submission marks a sink call that did not persist its entity.
func Submission(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, message).
		WithTextCode(CodeSubmission)
}

// Corpus marks an unrecoverable input corpus failure.
func Corpus(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(CodeCorpus)
}

// UnresolvedAsset builds the warning logged for an image without a rename entry.
func UnresolvedAsset(src string) *goerrors.Error {
	return goerrors.NewWarning("no rename entry for "+src, goerrors.CategoryNotFound).
		WithTextCode(CodeUnresolvedAsset).
		WithMetadata(map[string]any{"src": src})
}

// IsSkippable reports whether err is a skippable input error.
func IsSkippable(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryBadInput)
}

// IsDateParse reports whether err is a date parse failure.
func IsDateParse(err error) bool {
	return hasTextCode(err, CodeDateParse)
}

// IsSubmission reports whether err is a sink failure.
func IsSubmission(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryExternal)
}

// IsCorpus reports whether err is a corpus I/O failure.
func IsCorpus(err error) bool {
	return hasTextCode(err, CodeCorpus)
}

func hasTextCode(err error, code string) bool {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode == code
	}

	return false
}
