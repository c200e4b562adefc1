package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

const userColumns = `id, email, password_hash, first_name, last_name, profile, settings, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Profile, &u.Settings, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Profile.Normalize()
	return &u, nil
}

// CreateUser inserts a user with an empty profile and default settings.
// Returns ErrDuplicateEmail if the email is taken.
func (db *DB) CreateUser(ctx context.Context, in UserCreateInput) (*User, error) {
	profile := types.UserProfile{}
	profile.Normalize()

	row := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, profile, settings)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		types.NormalizeEmail(in.Email), in.PasswordHash, in.FirstName, in.LastName,
		profile, types.DefaultUserSettings(),
	)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID. Returns nil, nil if not found.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by normalized email. Returns nil, nil if not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, types.NormalizeEmail(email)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// UpdateUserProfile replaces the profile and settings. Nil arguments keep
// the stored value. Returns nil, nil if the user does not exist.
func (db *DB) UpdateUserProfile(ctx context.Context, id uuid.UUID, profile *types.UserProfile, settings *types.UserSettings) (*User, error) {
	if profile != nil {
		profile.Normalize()
	}
	u, err := scanUser(db.pool.QueryRow(ctx,
		`UPDATE users
		 SET profile = COALESCE($2, profile),
		     settings = COALESCE($3, settings),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, profile, settings,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
