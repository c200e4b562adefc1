package server

import (
	"errors"
	"net/http"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/analysis"
)

const (
	// resumeField is the multipart field carrying the resume.
	resumeField = "resume"
	// multipartMemory is held in memory before parts spill to disk.
	multipartMemory = 1 << 20
	// multipartOverhead allows for boundaries and headers around the file.
	multipartOverhead = 1 << 20
)

// handleAnalyzeResume handles POST /api/analyze-resume. The uploaded file
// is scored and never stored beyond the request.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.analyzer.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusBadRequest, analysis.MsgTooLarge)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, analysis.MsgNoFile)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, analysis.MsgNoFile)
		return
	}
	defer file.Close()

	result, err := s.analyzer.Analyze(r.Context(), analysis.Upload{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// writeAnalysisError reports input problems as 400 and everything else as
// 500. Failure details are only exposed outside production.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var inErr *analysis.InputError
	if errors.As(err, &inErr) {
		s.errorResponse(w, http.StatusBadRequest, inErr.Message)
		return
	}

	body := errorBody{Error: analysis.MsgAnalyzing}
	if !s.cfg.IsProduction() {
		var extErr *analysis.ExtractionError
		if errors.As(err, &extErr) {
			body.Details = extErr.Details()
		} else {
			body.Details = err.Error()
		}
	}
	s.jsonResponse(w, http.StatusInternalServerError, body)
}
