package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/db"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server/middleware"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// handleRegisterUser handles POST /api/users/register
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	existing, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if existing != nil {
		s.writeError(w, r, &ErrEmailAlreadyExists{Email: req.Email, Message: msgUserExists})
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.CreateUser(r.Context(), db.UserCreateInput{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if errors.Is(err, db.ErrDuplicateEmail) {
		s.writeError(w, r, &ErrEmailAlreadyExists{Email: req.Email, Message: msgUserExists})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.issueToken(w, middleware.Principal{ID: user.ID, Kind: middleware.KindUser})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	s.jsonResponse(w, http.StatusCreated, userAuthResponse{Token: token, User: user})
}

// handleLoginUser handles POST /api/users/login
func (s *Server) handleLoginUser(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	user, err := s.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil || !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		s.writeError(w, r, &ErrInvalidCredentials{})
		return
	}

	token, err := s.issueToken(w, middleware.Principal{ID: user.ID, Kind: middleware.KindUser})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, userAuthResponse{Token: token, User: user})
}

// handleGetMe handles GET /api/users/me
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.GetUser(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgUserNotFound})
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

// handleUpdateUserProfile handles PUT /api/users/profile
func (s *Server) handleUpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.UpdateUserProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	user, err := s.users.UpdateUserProfile(r.Context(), p.ID, req.Profile, req.Settings)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgUserNotFound})
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}
