package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// Employer is a company account that posts jobs.
type Employer struct {
	ID                 uuid.UUID             `json:"id"`
	CompanyName        string                `json:"companyName"`
	Email              string                `json:"email"`
	PasswordHash       string                `json:"-"` // Never serialize to JSON
	Profile            types.EmployerProfile `json:"profile"`
	SocialMedia        types.SocialMedia     `json:"socialMedia"`
	VerificationStatus string                `json:"verificationStatus"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// PublicEmployer is the view of an employer shown to anonymous visitors.
type PublicEmployer struct {
	ID                 uuid.UUID             `json:"id"`
	CompanyName        string                `json:"companyName"`
	Profile            types.EmployerProfile `json:"profile"`
	SocialMedia        types.SocialMedia     `json:"socialMedia"`
	VerificationStatus string                `json:"verificationStatus"`
	CreatedAt          time.Time             `json:"createdAt"`
	Jobs               []Job                 `json:"jobs"`
}

// Public returns the employer without contact or credential fields.
func (e *Employer) Public(jobs []Job) *PublicEmployer {
	if jobs == nil {
		jobs = []Job{}
	}
	return &PublicEmployer{
		ID:                 e.ID,
		CompanyName:        e.CompanyName,
		Profile:            e.Profile,
		SocialMedia:        e.SocialMedia,
		VerificationStatus: e.VerificationStatus,
		CreatedAt:          e.CreatedAt,
		Jobs:               jobs,
	}
}

// EmployerCreateInput holds the fields needed to insert an employer.
type EmployerCreateInput struct {
	CompanyName  string
	Email        string
	PasswordHash string
	Profile      types.EmployerProfile
}
