package llm

import "fmt"

// ServiceError indicates the generation backend was unreachable or returned
// an unusable response. Retried for transient causes, then surfaced as a
// server error.
type ServiceError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
