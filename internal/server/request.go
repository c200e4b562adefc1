package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/schemas"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server/middleware"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// readBody reads a bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Message: "Request body too large"}
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ErrValidation{Message: msgInvalidBody}
	}
	return nil
}

// validationError converts validator and schema failures into one
// client-facing ErrValidation.
func validationError(err error) error {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		fe := schemaErr.First()
		if fe.Field == "(root)" {
			return &ErrValidation{Message: fe.Message}
		}
		return &ErrValidation{Field: fe.Field, Message: fe.Message}
	}
	fe := types.FirstFieldError(err)
	return &ErrValidation{Field: fe.Field, Message: fe.Message}
}

// principal returns the authenticated account. Routes using it are
// wrapped in the auth middleware, so a missing principal is a wiring bug.
func principal(r *http.Request) (middleware.Principal, error) {
	p, err := middleware.GetPrincipal(r)
	if err != nil {
		return middleware.Principal{}, fmt.Errorf("auth middleware not applied: %w", err)
	}
	return p, nil
}

// issueToken signs a token for p and also returns it in the x-auth-token header.
func (s *Server) issueToken(w http.ResponseWriter, p middleware.Principal) (string, error) {
	token, err := s.jwtService.GenerateToken(p)
	if err != nil {
		return "", err
	}
	w.Header().Set(middleware.TokenHeader, token)
	return token, nil
}
