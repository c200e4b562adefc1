package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/types"
)

const jobColumns = `j.id, j.company_id, e.company_name, COALESCE(e.profile->>'logo', ''),
	j.title, j.description, j.requirements, j.accessibility, j.location, j.type,
	j.salary, j.skills, j.application_deadline, j.status, j.created_at, j.updated_at`

const jobFrom = `FROM jobs j JOIN employers e ON e.id = j.company_id`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.Company.ID, &j.Company.CompanyName, &j.Company.Logo,
		&j.Title, &j.Description, &j.Requirements, &j.Accessibility, &j.Location, &j.Type,
		&j.Salary, &j.Skills, &j.ApplicationDeadline, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	if j.Accessibility.Accommodations == nil {
		j.Accessibility.Accommodations = []string{}
	}
	return &j, nil
}

func collectJobs(rows pgx.Rows) ([]Job, error) {
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// buildJobFilter renders the WHERE clause and arguments for f. Placeholders
// start at $1.
func buildJobFilter(f JobFilter) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	if f.RemoteWork != nil {
		conditions = append(conditions, fmt.Sprintf("COALESCE((j.accessibility->>'remoteWork')::boolean, false) = $%d", argIndex))
		args = append(args, *f.RemoteWork)
		argIndex++
	}

	if f.Location != "" {
		conditions = append(conditions, fmt.Sprintf(`j.location ILIKE '%%' || $%d || '%%' ESCAPE '\'`, argIndex))
		args = append(args, escapeLike(f.Location))
		argIndex++
	}

	if f.Type != "" {
		conditions = append(conditions, fmt.Sprintf("j.type = $%d", argIndex))
		args = append(args, f.Type)
		argIndex++
	}

	if f.Accommodation != "" {
		conditions = append(conditions, fmt.Sprintf("j.accessibility->'accommodations' ? $%d", argIndex))
		args = append(args, f.Accommodation)
		argIndex++
	}

	if len(f.Skills) > 0 {
		conditions = append(conditions, fmt.Sprintf("j.skills && $%d::text[]", argIndex))
		args = append(args, f.Skills)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SearchJobs returns one page of jobs matching f, newest first. The page
// and the total count are queried concurrently.
func (db *DB) SearchJobs(ctx context.Context, f JobFilter) (*JobPage, error) {
	f.Normalize()
	where, args := buildJobFilter(f)

	var (
		jobs  []Job
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := db.pool.QueryRow(gctx, `SELECT COUNT(*) `+jobFrom+` `+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		n := len(args)
		pageArgs := append(append([]any{}, args...), f.Limit, f.Offset())
		query := fmt.Sprintf(`SELECT %s %s %s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`,
			jobColumns, jobFrom, where, n+1, n+2)

		rows, err := db.pool.Query(gctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		jobs, err = collectJobs(rows)
		if err != nil {
			return fmt.Errorf("failed to scan jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &JobPage{
		Jobs:        jobs,
		TotalPages:  totalPages(total, f.Limit),
		CurrentPage: f.Page,
		Total:       total,
	}, nil
}

// GetJob retrieves a job by ID. Returns nil, nil if not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx, `SELECT `+jobColumns+` `+jobFrom+` WHERE j.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// ListJobsByEmployer returns all jobs of one employer, newest first.
func (db *DB) ListJobsByEmployer(ctx context.Context, employerID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` `+jobFrom+` WHERE j.company_id = $1 ORDER BY j.created_at DESC`, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan employer jobs: %w", err)
	}
	return jobs, nil
}

// CreateJob inserts a job owned by employerID.
func (db *DB) CreateJob(ctx context.Context, employerID uuid.UUID, in types.JobInput) (*Job, error) {
	in.Normalize()

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (company_id, title, description, requirements, accessibility, location,
		                   type, salary, skills, application_deadline, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		employerID, in.Title, in.Description, in.Requirements, in.Accessibility, in.Location,
		in.Type, in.Salary, in.Skills, in.ApplicationDeadline, in.Status,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return db.GetJob(ctx, id)
}

// UpdateJob replaces the editable fields of a job. Returns nil, nil if not found.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, in types.JobInput) (*Job, error) {
	in.Normalize()

	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, requirements = $4, accessibility = $5, location = $6,
		     type = $7, salary = $8, skills = $9, application_deadline = $10, status = $11,
		     updated_at = NOW()
		 WHERE id = $1`,
		id, in.Title, in.Description, in.Requirements, in.Accessibility, in.Location,
		in.Type, in.Salary, in.Skills, in.ApplicationDeadline, in.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return db.GetJob(ctx, id)
}

// DeleteJob removes a job. It reports whether a row was deleted.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
