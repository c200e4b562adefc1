package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/db"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/schemas"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server/middleware"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// placeholderJobLists are job IDs the web client requests for lists that
// are not stored server side.
var placeholderJobLists = map[string]bool{"saved": true, "applied": true}

// parseJobFilter reads listing filters from the query string. Unparseable
// page and limit values fall back to the defaults.
func parseJobFilter(q url.Values) db.JobFilter {
	f := db.JobFilter{
		Location:      q.Get("location"),
		Type:          q.Get("type"),
		Accommodation: q.Get("accessibility"),
	}
	if v := q.Get("remoteWork"); v != "" {
		remote := v == "true"
		f.RemoteWork = &remote
	}
	if v := q.Get("skills"); v != "" {
		f.Skills = strings.Split(v, ",")
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Normalize()
	return f
}

// handleListJobs handles GET /api/jobs
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	f := parseJobFilter(r.URL.Query())

	page, snap, hit := s.cache.GetPage(r.Context(), f)
	if !hit {
		var err error
		page, err = s.jobs.SearchJobs(r.Context(), f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.cache.SetPage(r.Context(), snap, f, page)
	}

	jobs := page.Jobs
	if jobs == nil {
		jobs = []db.Job{}
	}
	s.jsonResponse(w, http.StatusOK, jobListResponse{
		Jobs:        jobs,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	})
}

// handleGetJob handles GET /api/jobs/{id}
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	if placeholderJobLists[raw] {
		s.jsonResponse(w, http.StatusOK, emptyJobListResponse{
			Jobs:    []db.Job{},
			Message: "No " + raw + " jobs found",
		})
		return
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Message: msgInvalidJobID})
		return
	}

	cached, snap, ok := s.cache.GetJob(r.Context(), id)
	if ok {
		s.jsonResponse(w, http.StatusOK, cached)
		return
	}

	job, err := s.jobs.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgJobNotFound})
		return
	}
	s.cache.SetJob(r.Context(), snap, job)
	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreateJob handles POST /api/jobs. The normalized input is checked
// against the job JSON Schema before the struct validator runs.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in types.JobInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	in.Normalize()
	if err := s.checkJobSchema(schemas.ValidateValue(schemas.JobInput, in)); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	employer, err := s.employers.GetEmployer(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if employer == nil {
		s.writeError(w, r, &ErrForbidden{Message: msgNotEmployer})
		return
	}

	job, err := s.jobs.CreateJob(r.Context(), employer.ID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cache.Invalidate(r.Context())

	s.logger.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("employer_id", employer.ID.String()),
	)
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleUpdateJob handles PUT /api/jobs/{id}. Fields absent from the body
// keep their stored values.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r, msgNotJobOwnerUpdate)
	if !ok {
		return
	}

	in := job.Input()
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	in.Normalize()
	if err := s.checkJobSchema(schemas.ValidateValue(schemas.JobInput, in)); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	updated, err := s.jobs.UpdateJob(r.Context(), job.ID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if updated == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgJobNotFound})
		return
	}
	s.cache.Invalidate(r.Context(), job.ID)
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteJob handles DELETE /api/jobs/{id}
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r, msgNotJobOwnerDelete)
	if !ok {
		return
	}

	deleted, err := s.jobs.DeleteJob(r.Context(), job.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, &ErrNotFound{Message: msgJobNotFound})
		return
	}
	s.cache.Invalidate(r.Context(), job.ID)

	s.logger.Info("job deleted", zap.String("job_id", job.ID.String()))
	s.jsonResponse(w, http.StatusOK, messageBody{Message: msgJobRemoved})
}

// ownedJob loads the job named in the path and checks that the caller is
// the employer that posted it. It writes the error response itself and
// reports false on any failure.
func (s *Server) ownedJob(w http.ResponseWriter, r *http.Request, deniedMsg string) (*db.Job, bool) {
	p, err := principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Message: msgInvalidJobID})
		return nil, false
	}

	job, err := s.jobs.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	if job == nil {
		s.writeError(w, r, &ErrNotFound{Message: msgJobNotFound})
		return nil, false
	}

	if p.Kind != middleware.KindEmployer || job.Company.ID != p.ID {
		s.writeError(w, r, &ErrForbidden{Message: deniedMsg})
		return nil, false
	}
	return job, true
}

// checkJobSchema turns a schema failure into a 400; schema loading
// problems stay internal errors.
func (s *Server) checkJobSchema(err error) error {
	if err == nil {
		return nil
	}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return validationError(err)
	}
	return err
}
