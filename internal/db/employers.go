package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

const employerColumns = `id, company_name, email, password_hash, profile, social_media,
	verification_status, created_at, updated_at`

func scanEmployer(row pgx.Row) (*Employer, error) {
	var e Employer
	err := row.Scan(
		&e.ID, &e.CompanyName, &e.Email, &e.PasswordHash, &e.Profile, &e.SocialMedia,
		&e.VerificationStatus, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Profile.Normalize()
	return &e, nil
}

// CreateEmployer inserts an employer in pending verification.
// Returns ErrDuplicateEmail if the email is taken.
func (db *DB) CreateEmployer(ctx context.Context, in EmployerCreateInput) (*Employer, error) {
	in.Profile.Normalize()

	e, err := scanEmployer(db.pool.QueryRow(ctx,
		`INSERT INTO employers (company_name, email, password_hash, profile, social_media, verification_status)
		 VALUES ($1, $2, $3, $4, '{}'::jsonb, $5)
		 RETURNING `+employerColumns,
		in.CompanyName, types.NormalizeEmail(in.Email), in.PasswordHash, in.Profile, types.VerificationPending,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create employer: %w", err)
	}
	return e, nil
}

// GetEmployer retrieves an employer by ID. Returns nil, nil if not found.
func (db *DB) GetEmployer(ctx context.Context, id uuid.UUID) (*Employer, error) {
	e, err := scanEmployer(db.pool.QueryRow(ctx,
		`SELECT `+employerColumns+` FROM employers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employer: %w", err)
	}
	return e, nil
}

// GetEmployerByEmail retrieves an employer by normalized email. Returns nil, nil if not found.
func (db *DB) GetEmployerByEmail(ctx context.Context, email string) (*Employer, error) {
	e, err := scanEmployer(db.pool.QueryRow(ctx,
		`SELECT `+employerColumns+` FROM employers WHERE email = $1`, types.NormalizeEmail(email)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employer by email: %w", err)
	}
	return e, nil
}

// UpdateEmployerProfile replaces the profile and social links. Nil
// arguments keep the stored value. Returns nil, nil if not found.
func (db *DB) UpdateEmployerProfile(ctx context.Context, id uuid.UUID, profile *types.EmployerProfile, social *types.SocialMedia) (*Employer, error) {
	if profile != nil {
		profile.Normalize()
	}
	e, err := scanEmployer(db.pool.QueryRow(ctx,
		`UPDATE employers
		 SET profile = COALESCE($2, profile),
		     social_media = COALESCE($3, social_media),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+employerColumns,
		id, profile, social,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update employer profile: %w", err)
	}
	return e, nil
}
