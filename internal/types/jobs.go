package types

import (
	"strings"
	"time"
)

// Job types.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// Job statuses.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// DefaultCurrency is applied to salaries posted without one.
const DefaultCurrency = "USD"

// JobAccessibility describes the accommodations a posting offers.
type JobAccessibility struct {
	RemoteWork           bool                `json:"remoteWork"`
	FlexibleHours        bool                `json:"flexibleHours"`
	WheelchairAccessible bool                `json:"wheelchairAccessible"`
	AssistiveTechnology  AssistiveTechnology `json:"assistiveTechnology"`
	Accommodations       []string            `json:"accommodations"`
}

// AssistiveTechnology reports whether assistive tooling is provided.
type AssistiveTechnology struct {
	Available   bool   `json:"available"`
	Description string `json:"description,omitempty"`
}

// Salary is an optional pay range.
type Salary struct {
	Min      *float64 `json:"min,omitempty" validate:"omitempty,gte=0"`
	Max      *float64 `json:"max,omitempty" validate:"omitempty,gte=0"`
	Currency string   `json:"currency" validate:"omitempty,len=3,alpha"`
}

// JobInput is the body of a job create or update request.
type JobInput struct {
	Title               string           `json:"title" validate:"required,max=200"`
	Description         string           `json:"description" validate:"required"`
	Requirements        []string         `json:"requirements"`
	Accessibility       JobAccessibility `json:"accessibility"`
	Location            string           `json:"location" validate:"required,max=200"`
	Type                string           `json:"type" validate:"required,oneof=full-time part-time contract internship"`
	Salary              Salary           `json:"salary"`
	Skills              []string         `json:"skills"`
	ApplicationDeadline *time.Time       `json:"applicationDeadline,omitempty"`
	Status              string           `json:"status" validate:"omitempty,oneof=active closed draft"`
}

// Normalize trims text fields, applies defaults and replaces nil slices.
func (in *JobInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.Status == "" {
		in.Status = JobStatusActive
	}
	if in.Salary.Currency == "" {
		in.Salary.Currency = DefaultCurrency
	}
	in.Salary.Currency = strings.ToUpper(in.Salary.Currency)
	in.Requirements = nonNil(in.Requirements)
	in.Skills = trimAll(nonNil(in.Skills))
	in.Accessibility.Accommodations = nonNil(in.Accessibility.Accommodations)
}

// Validate checks struct tags and that the salary range is ordered.
func (in *JobInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if in.Salary.Min != nil && in.Salary.Max != nil && *in.Salary.Max < *in.Salary.Min {
		return &FieldError{Field: "salary.max", Message: "must be greater than or equal to salary.min"}
	}
	return nil
}

func trimAll(s []string) []string {
	out := s[:0]
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
