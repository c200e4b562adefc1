package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/db"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server/middleware"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// handleRegisterEmployer handles POST /api/employers/register
func (s *Server) handleRegisterEmployer(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterEmployerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	existing, err := s.employers.GetEmployerByEmail(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if existing != nil {
		s.writeError(w, r, &ErrEmailAlreadyExists{Email: req.Email, Message: msgEmployerExists})
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var profile types.EmployerProfile
	if req.Profile != nil {
		profile = *req.Profile
	}
	profile.Normalize()

	employer, err := s.employers.CreateEmployer(r.Context(), db.EmployerCreateInput{
		CompanyName:  req.CompanyName,
		Email:        req.Email,
		PasswordHash: hash,
		Profile:      profile,
	})
	if errors.Is(err, db.ErrDuplicateEmail) {
		s.writeError(w, r, &ErrEmailAlreadyExists{Email: req.Email, Message: msgEmployerExists})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.issueToken(w, middleware.Principal{ID: employer.ID, Kind: middleware.KindEmployer})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("employer registered", zap.String("employer_id", employer.ID.String()))
	s.jsonResponse(w, http.StatusCreated, types.TokenResponse{Token: token})
}

// handleLoginEmployer handles POST /api/employers/login
func (s *Server) handleLoginEmployer(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	employer, err := s.employers.GetEmployerByEmail(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if employer == nil || !s.passwords.VerifyPassword(req.Password, employer.PasswordHash) {
		s.writeError(w, r, &ErrInvalidCredentials{})
		return
	}

	token, err := s.issueToken(w, middleware.Principal{ID: employer.ID, Kind: middleware.KindEmployer})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.TokenResponse{Token: token})
}

// handleGetEmployerProfile handles GET /api/employers/profile
func (s *Server) handleGetEmployerProfile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	employer, err := s.employers.GetEmployer(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if employer == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgEmployerNotFound})
		return
	}
	s.jsonResponse(w, http.StatusOK, employer)
}

// handleUpdateEmployerProfile handles PUT /api/employers/profile
func (s *Server) handleUpdateEmployerProfile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.UpdateEmployerProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	employer, err := s.employers.UpdateEmployerProfile(r.Context(), p.ID, req.Profile, req.SocialMedia)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if employer == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgEmployerNotFound})
		return
	}
	s.jsonResponse(w, http.StatusOK, employer)
}

// handleGetPublicEmployer handles GET /api/employers/{id}. Malformed IDs
// are reported as not found.
func (s *Server) handleGetPublicEmployer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, &ErrNotFound{Message: msgEmployerNotFound})
		return
	}

	employer, err := s.employers.GetEmployer(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if employer == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgEmployerNotFound})
		return
	}

	jobs, err := s.jobs.ListJobsByEmployer(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, employer.Public(jobs))
}
