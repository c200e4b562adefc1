package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

// User is a registered job seeker.
type User struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"` // Never serialize to JSON
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	Profile      types.UserProfile  `json:"profile"`
	Settings     types.UserSettings `json:"settings"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// UserCreateInput holds the fields needed to insert a user.
type UserCreateInput struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}
