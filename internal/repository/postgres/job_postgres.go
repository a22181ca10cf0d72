package postgres

import (
	"context"
	"database/sql"

	"recruitapi/internal/model"
	"recruitapi/internal/repository"
)

// JobPostgres is a PostgreSQL implementation of repository.JobRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type JobPostgres struct {
	db *sql.DB
}

// NewJobPostgres creates a new JobPostgres repository.
func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobRepository = (*JobPostgres)(nil)

// FindPublished fetches a posting by ID, restricted to published rows.
func (r *JobPostgres) FindPublished(ctx context.Context, id string) (*model.JobPosting, error) {
	const q = `
		SELECT id, title, department, description, requirements, published, created_at
		FROM job_postings
		WHERE id = $1 AND published = true
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var j model.JobPosting
	if err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Department,
		&j.Description,
		&j.Requirements,
		&j.Published,
		&j.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListPublished returns all published postings, newest first.
func (r *JobPostgres) ListPublished(ctx context.Context) ([]model.JobPosting, error) {
	const q = `
		SELECT id, title, department, description, requirements, published, created_at
		FROM job_postings
		WHERE published = true
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]model.JobPosting, 0)
	for rows.Next() {
		var j model.JobPosting
		if err := rows.Scan(
			&j.ID,
			&j.Title,
			&j.Department,
			&j.Description,
			&j.Requirements,
			&j.Published,
			&j.CreatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}
