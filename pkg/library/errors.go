package library

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrimary means the folder root has no *.fun file.
	ErrNoPrimary = errors.New("no .fun file found in library folder")

	// ErrAmbiguousPrimary means the folder root has more than one *.fun file.
	ErrAmbiguousPrimary = errors.New("library folder has more than one .fun file")
)

// LoadError reports a library folder or file that could not be read.
type LoadError struct {
	// Path is the folder or file that failed
	Path string

	// Message describes the error
	Message string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load library %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load library %q: %s", e.Path, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
