// Package db provides PostgreSQL storage for users, employers and jobs.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrDuplicateEmail is returned when an insert violates an email unique constraint.
var ErrDuplicateEmail = errors.New("email already exists")

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// RetryOptions control ConnectWithRetry.
type RetryOptions struct {
	Attempts int
	Delay    time.Duration
	Logger   *zap.Logger
}

// ConnectWithRetry calls Connect up to opts.Attempts times, waiting
// opts.Delay between attempts. It stops early when ctx is done.
func ConnectWithRetry(ctx context.Context, databaseURL string, opts RetryOptions) (*DB, error) {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var lastErr error
	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		db, err := Connect(ctx, databaseURL)
		if err == nil {
			opts.Logger.Info("connected to database", zap.Int("attempt", attempt))
			return db, nil
		}
		lastErr = err
		opts.Logger.Warn("database connection failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", opts.Attempts),
			zap.Error(err),
		)
		if attempt == opts.Attempts {
			break
		}

		timer := time.NewTimer(opts.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("database connection aborted: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", opts.Attempts, lastErr)
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
