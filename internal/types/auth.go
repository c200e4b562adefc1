// Package types provides request payloads and value types shared by the
// HTTP layer and the database layer.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterUserRequest is the body of POST /api/users/register.
type RegisterUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// LoginRequest is the body of the user and employer login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserProfileRequest is the body of PUT /api/users/profile. Absent
// sections are left unchanged.
type UpdateUserProfileRequest struct {
	Profile  *UserProfile  `json:"profile"`
	Settings *UserSettings `json:"settings"`
}

// RegisterEmployerRequest is the body of POST /api/employers/register.
type RegisterEmployerRequest struct {
	CompanyName string           `json:"companyName" validate:"required,max=200"`
	Email       string           `json:"email" validate:"required,email"`
	Password    string           `json:"password" validate:"required,min=6"`
	Profile     *EmployerProfile `json:"profile"`
}

// UpdateEmployerProfileRequest is the body of PUT /api/employers/profile.
type UpdateEmployerProfileRequest struct {
	Profile     *EmployerProfile `json:"profile"`
	SocialMedia *SocialMedia     `json:"socialMedia"`
}

// TokenResponse carries an issued auth token.
type TokenResponse struct {
	Token string `json:"token"`
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate validates the RegisterUserRequest using the validator.
func (r *RegisterUserRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return validate.Struct(r)
}

// Validate validates the UpdateUserProfileRequest using the validator.
func (r *UpdateUserProfileRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RegisterEmployerRequest using the validator.
func (r *RegisterEmployerRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	return validate.Struct(r)
}

// Validate validates the UpdateEmployerProfileRequest using the validator.
func (r *UpdateEmployerProfileRequest) Validate() error {
	return validate.Struct(r)
}

// FieldError is a single failed field check.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// FirstFieldError reduces a validation failure to one client-facing
// FieldError. Field names use the JSON path of the failing field.
func FirstFieldError(err error) *FieldError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		v := verrs[0]
		return &FieldError{Field: jsonPath(v.Namespace()), Message: describeTag(v)}
	}
	return &FieldError{Field: "(root)", Message: "is invalid"}
}

func describeTag(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", v.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", v.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(v.Param(), " ", ", "))
	case "url":
		return "must be a valid URL"
	case "gte":
		return fmt.Sprintf("must be at least %s", v.Param())
	default:
		return fmt.Sprintf("failed %s check", v.Tag())
	}
}

// jsonPath drops the root struct name: "JobInput.salary.min" becomes "salary.min".
func jsonPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
