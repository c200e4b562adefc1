package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/analysis"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/db"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/scoring"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// UserStore persists job seeker accounts. Lookups return nil, nil when
// the user does not exist.
type UserStore interface {
	CreateUser(ctx context.Context, in db.UserCreateInput) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, profile *types.UserProfile, settings *types.UserSettings) (*db.User, error)
}

// EmployerStore persists employer accounts. Lookups return nil, nil when
// the employer does not exist.
type EmployerStore interface {
	CreateEmployer(ctx context.Context, in db.EmployerCreateInput) (*db.Employer, error)
	GetEmployer(ctx context.Context, id uuid.UUID) (*db.Employer, error)
	GetEmployerByEmail(ctx context.Context, email string) (*db.Employer, error)
	UpdateEmployerProfile(ctx context.Context, id uuid.UUID, profile *types.EmployerProfile, social *types.SocialMedia) (*db.Employer, error)
}

// JobStore persists job postings. Lookups return nil, nil when the job
// does not exist.
type JobStore interface {
	SearchJobs(ctx context.Context, f db.JobFilter) (*db.JobPage, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobsByEmployer(ctx context.Context, employerID uuid.UUID) ([]db.Job, error)
	CreateJob(ctx context.Context, employerID uuid.UUID, in types.JobInput) (*db.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, in types.JobInput) (*db.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) (bool, error)
}

// Analyzer scores uploaded resumes.
type Analyzer interface {
	Analyze(ctx context.Context, up analysis.Upload) (scoring.Result, error)
	MaxBytes() int64
}

var (
	_ UserStore     = (*db.DB)(nil)
	_ EmployerStore = (*db.DB)(nil)
	_ JobStore      = (*db.DB)(nil)
	_ Analyzer      = (*analysis.Service)(nil)
)
