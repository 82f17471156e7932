package types

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type ErrorKind string

const (
	ErrorKindConfiguration    ErrorKind = "configuration"
	ErrorKindPackageNotFound  ErrorKind = "package-not-found"
	ErrorKindFetch            ErrorKind = "fetch"
	ErrorKindArchiveCorrupted ErrorKind = "archive-corrupted"
	ErrorKindExtraction       ErrorKind = "extraction"
)

// ExtractionKind narrows an extraction failure down to the backend
// condition that caused it.
type ExtractionKind string

const (
	ExtractionAlreadyExists   ExtractionKind = "already-exists"
	ExtractionInconsistent    ExtractionKind = "inconsistent"
	ExtractionInvalidArgument ExtractionKind = "invalid-argument"
	ExtractionAllocation      ExtractionKind = "allocation-failure"
	ExtractionNotFound        ExtractionKind = "not-found"
	ExtractionNotAnArchive    ExtractionKind = "not-an-archive"
	ExtractionOpenFailure     ExtractionKind = "open-failure"
	ExtractionReadError       ExtractionKind = "read-error"
	ExtractionSeekError       ExtractionKind = "seek-error"
	ExtractionWriteFailed     ExtractionKind = "write-failed"
	ExtractionUnknownCode     ExtractionKind = "unknown-code"
	ExtractionCaseCollision   ExtractionKind = "case-collision"
)

// UpdateError is the error type for every failure the updater reports
// to the command boundary.
type UpdateError struct {
	Kind       ErrorKind
	Extraction ExtractionKind
	// Code is the archive backend code, zero when not applicable.
	Code int
	Msg  string
	Err  error
}

func (e *UpdateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
	}
	return e.Msg
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// ErrCode maps the failure onto the errbuilder code space used for
// exit status decisions.
func (e *UpdateError) ErrCode() errbuilder.ErrCode {
	switch e.Kind {
	case ErrorKindConfiguration:
		return errbuilder.CodeInvalidArgument
	case ErrorKindPackageNotFound:
		return errbuilder.CodeNotFound
	case ErrorKindFetch, ErrorKindArchiveCorrupted, ErrorKindExtraction:
		return errbuilder.CodeInternal
	default:
		return errbuilder.CodeInternal
	}
}

func NewConfigurationError(msg string, cause error) *UpdateError {
	return &UpdateError{Kind: ErrorKindConfiguration, Msg: msg, Err: cause}
}

func NewPackageNotFoundError(name string) *UpdateError {
	return &UpdateError{
		Kind: ErrorKindPackageNotFound,
		Msg:  fmt.Sprintf("could not find a package matching %s", name),
	}
}

func NewFetchError(msg string, cause error) *UpdateError {
	return &UpdateError{Kind: ErrorKindFetch, Msg: msg, Err: cause}
}

func NewArchiveCorruptedError(path string) *UpdateError {
	return &UpdateError{
		Kind: ErrorKindArchiveCorrupted,
		Code: -1,
		Msg:  fmt.Sprintf("'%s' is a corrupted zip archive (0 bytes), try again.", path),
	}
}

func NewExtractionError(kind ExtractionKind, code int, msg string, cause error) *UpdateError {
	return &UpdateError{
		Kind:       ErrorKindExtraction,
		Extraction: kind,
		Code:       code,
		Msg:        msg,
		Err:        cause,
	}
}

// AsUpdateError extracts the first UpdateError in err's chain.
func AsUpdateError(err error) (*UpdateError, bool) {
	var updateErr *UpdateError
	if errors.As(err, &updateErr) {
		return updateErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an UpdateError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	updateErr, ok := AsUpdateError(err)
	return ok && updateErr.Kind == kind
}
