package extract

import "fmt"

// UnsupportedFileTypeError indicates a file extension outside the supported
// PDF/Word set. Surfaced to callers as a client error.
type UnsupportedFileTypeError struct {
	Path string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (only PDF and DOCX allowed)", e.Path)
}

// ExtractionError indicates the underlying document parser failed.
// Treated as a malformed upload; never retried.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s", e.Path)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
