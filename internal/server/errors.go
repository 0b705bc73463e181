package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/careerpilot/internal/extract"
	"github.com/jonathan/careerpilot/internal/generate"
	"github.com/jonathan/careerpilot/internal/llm"
)

// ErrResumeMissing indicates the user has not uploaded a resume yet
type ErrResumeMissing struct{}

func (e *ErrResumeMissing) Error() string {
	return "no resume on file; upload one first"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var missingInput *generate.MissingInputError
	var unsupported *extract.UnsupportedFileTypeError
	var resumeMissing *ErrResumeMissing
	var service *llm.ServiceError

	switch {
	case errors.As(err, &missingInput), errors.As(err, &unsupported), errors.As(err, &resumeMissing):
		return http.StatusBadRequest
	case errors.As(err, &service):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
