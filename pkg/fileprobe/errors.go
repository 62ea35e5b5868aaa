package fileprobe

import (
	"errors"
	"fmt"
)

var (
	ErrIsDirectory = errors.New("is a directory")
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
)

// NotFoundError is returned when an operation requires the path to exist
// (optionally as a specific type) and it does not.
type NotFoundError struct {
	Path string
	Type Type
}

func (e *NotFoundError) Error() string {
	switch e.Type {
	case TypeFile:
		return fmt.Sprintf("File %s does not exist or is not a regular file", e.Path)
	case TypeDirectory:
		return fmt.Sprintf("Directory %s does not exist or is not a directory", e.Path)
	default:
		return fmt.Sprintf("File %s does not exist", e.Path)
	}
}

type StaleFileError struct {
	Path  string
	Hours int64
}

func (e *StaleFileError) Error() string {
	return fmt.Sprintf("File %s last modified %d hours ago", e.Path, e.Hours)
}

type MissingContentError struct {
	Path      string
	Substring string
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("File %s does not contain '%s' string", e.Path, e.Substring)
}

// ReadError wraps a failure of the underlying filesystem call (permissions,
// directories opened as text, undecodable content).
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %s", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsProbeError reports whether err is one of the failure kinds a probe
// operation produces.
func IsProbeError(err error) bool {
	var (
		notFound *NotFoundError
		stale    *StaleFileError
		missing  *MissingContentError
		read     *ReadError
	)

	return errors.As(err, &notFound) ||
		errors.As(err, &stale) ||
		errors.As(err, &missing) ||
		errors.As(err, &read)
}
