package domain

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrDownloadFailed   = errors.New("download failed")
	ErrExtractFailed    = errors.New("extraction failed")
	ErrNoPayload        = errors.New("no embedded payload")
	ErrMarkerMissing    = errors.New("original file marker missing")
	ErrGameDirMissing   = errors.New("game directory does not exist")
	ErrLinkFailed       = errors.New("link operation failed")
	ErrPatchListInvalid = errors.New("patch list does not match schema")
)

// FailureKind classifies an error for status reporting.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNetwork
	FailureExtraction
	FailureFilesystem
	FailureSerialization
	FailureIntegrity
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNetwork:
		return "network"
	case FailureExtraction:
		return "extraction"
	case FailureFilesystem:
		return "filesystem"
	case FailureSerialization:
		return "serialization"
	case FailureIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

// SerializationError wraps a malformed JSON or ini document.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return "parsing " + e.Path + ": " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Classify maps an error onto a FailureKind. Unknown errors are treated as
// filesystem failures since everything else in the install path touches disk.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	var serr *SerializationError
	switch {
	case errors.Is(err, ErrDownloadFailed):
		return FailureNetwork
	case errors.Is(err, ErrExtractFailed), errors.Is(err, ErrNoPayload):
		return FailureExtraction
	case errors.Is(err, ErrMarkerMissing), errors.Is(err, ErrPatchListInvalid):
		return FailureIntegrity
	case errors.As(err, &serr):
		return FailureSerialization
	default:
		return FailureFilesystem
	}
}
