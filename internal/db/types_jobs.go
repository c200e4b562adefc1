package db

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// Job is a job posting.
type Job struct {
	ID                  uuid.UUID              `json:"id"`
	Company             JobCompany             `json:"company"`
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	Requirements        []string               `json:"requirements"`
	Accessibility       types.JobAccessibility `json:"accessibility"`
	Location            string                 `json:"location"`
	Type                string                 `json:"type"`
	Salary              types.Salary           `json:"salary"`
	Skills              []string               `json:"skills"`
	ApplicationDeadline *time.Time             `json:"applicationDeadline,omitempty"`
	Status              string                 `json:"status"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

// JobCompany is the employer summary embedded in a job.
type JobCompany struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	Logo        string    `json:"logo,omitempty"`
}

// Input returns the editable fields of the job, for merging updates.
func (j *Job) Input() types.JobInput {
	return types.JobInput{
		Title:               j.Title,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Accessibility:       j.Accessibility,
		Location:            j.Location,
		Type:                j.Type,
		Salary:              j.Salary,
		Skills:              j.Skills,
		ApplicationDeadline: j.ApplicationDeadline,
		Status:              j.Status,
	}
}

// Pagination defaults for job listings.
const (
	DefaultJobPageSize = 10
	MaxJobPageSize     = 100

	// MaxJobPage keeps Offset from overflowing at any page size.
	MaxJobPage = math.MaxInt32 / MaxJobPageSize
)

// JobFilter selects jobs for a listing page.
type JobFilter struct {
	RemoteWork    *bool
	Location      string
	Type          string
	Accommodation string
	Skills        []string
	Page          int
	Limit         int
}

// Normalize applies pagination defaults and trims text filters.
func (f *JobFilter) Normalize() {
	f.Location = strings.TrimSpace(f.Location)
	f.Type = strings.TrimSpace(f.Type)
	f.Accommodation = strings.TrimSpace(f.Accommodation)

	skills := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	f.Skills = skills

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxJobPage {
		f.Page = MaxJobPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultJobPageSize
	}
	if f.Limit > MaxJobPageSize {
		f.Limit = MaxJobPageSize
	}
}

// Offset is the row offset of the filter's page.
func (f *JobFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// JobPage is one page of a job listing.
type JobPage struct {
	Jobs        []Job `json:"jobs"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Total       int   `json:"total"`
}

// totalPages is ceil(total / limit).
func totalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
