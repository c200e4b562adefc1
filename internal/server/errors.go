// Package server provides the HTTP REST API for the job portal.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/analysis"
)

// ErrEmailAlreadyExists indicates the email is already registered.
// Message is the client-facing text.
type ErrEmailAlreadyExists struct {
	Email   string
	Message string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return e.Message
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid credentials"
}

// ErrNotFound indicates a missing resource.
type ErrNotFound struct {
	Message string
}

func (e *ErrNotFound) Error() string {
	return e.Message
}

// ErrForbidden indicates the caller may not act on the resource. The
// portal reports these as 401.
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return e.Message
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		dup      *ErrEmailAlreadyExists
		creds    *ErrInvalidCredentials
		notFound *ErrNotFound
		denied   *ErrForbidden
		invalid  *ErrValidation
		input    *analysis.InputError
	)
	switch {
	case errors.As(err, &dup), errors.As(err, &creds), errors.As(err, &invalid), errors.As(err, &input):
		return http.StatusBadRequest
	case errors.As(err, &denied):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
