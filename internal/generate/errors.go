package generate

import "fmt"

// MissingInputError reports a required input that was empty or invalid.
// It is returned before any generation call is made.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}
