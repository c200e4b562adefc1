package server

import (
	"time"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/db"
)

// Client-facing messages.
const (
	msgServerError       = "Server error"
	msgInvalidBody       = "Invalid request body"
	msgUserExists        = "User already exists"
	msgEmployerExists    = "Employer already exists"
	msgUserNotFound      = "User not found"
	msgEmployerNotFound  = "Employer not found"
	msgJobNotFound       = "Job not found"
	msgInvalidJobID      = "Invalid job ID format"
	msgNotUser           = "Not authorized as a job seeker"
	msgNotEmployer       = "Not authorized as an employer"
	msgNotJobOwnerUpdate = "Not authorized to update this job"
	msgNotJobOwnerDelete = "Not authorized to delete this job"
	msgJobRemoved        = "Job removed"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

type rateLimitBody struct {
	Error      string `json:"error"`
	Limit      int    `json:"limit"`
	Remaining  int    `json:"remaining"`
	ResetAt    string `json:"resetAt,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// userAuthResponse is returned by user register and login.
type userAuthResponse struct {
	Token string   `json:"token"`
	User  *db.User `json:"user"`
}

// jobListResponse is one page of GET /api/jobs.
type jobListResponse struct {
	Jobs        []db.Job `json:"jobs"`
	TotalPages  int      `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
}

// emptyJobListResponse answers the saved and applied placeholders.
type emptyJobListResponse struct {
	Jobs    []db.Job `json:"jobs"`
	Message string   `json:"message"`
}
