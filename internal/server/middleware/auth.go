// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// principalKey is the context key for storing the authenticated principal.
const principalKey ContextKey = "principal"

// TokenHeader is the header the web client sends its token in.
const TokenHeader = "x-auth-token"

// Client-facing authentication failures.
const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// Kind distinguishes job seeker accounts from employer accounts.
type Kind string

const (
	KindUser     Kind = "user"
	KindEmployer Kind = "employer"
)

// Principal identifies the account a request is made on behalf of.
type Principal struct {
	ID   uuid.UUID
	Kind Kind
}

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (PrincipalGetter, error)
}

// PrincipalGetter extracts the principal from token claims.
type PrincipalGetter interface {
	GetPrincipal() Principal
}

// TokenFromRequest returns the token from the x-auth-token header, falling
// back to an "Authorization: Bearer" header. It returns "" when neither is set.
func TokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// AuthMiddleware creates middleware that validates tokens and adds the
// principal to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				Unauthorized(w, MsgNoToken)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				Unauthorized(w, MsgInvalidToken)
				return
			}

			ctx := WithPrincipal(r.Context(), claims.GetPrincipal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireKind rejects authenticated requests made by a different kind of
// account. It must run after AuthMiddleware.
func RequireKind(kind Kind, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := GetPrincipal(r)
			if err != nil || p.Kind != kind {
				Unauthorized(w, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(r *http.Request) (Principal, error) {
	p, ok := r.Context().Value(principalKey).(Principal)
	if !ok {
		return Principal{}, errors.New("principal not found in request context")
	}
	return p, nil
}

// Unauthorized writes a 401 JSON error.
func Unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
