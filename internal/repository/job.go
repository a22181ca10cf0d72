package repository

import (
	"context"

	"recruitapi/internal/model"
)

// JobRepository defines read-only data access for job postings.
// The intake pipeline never writes postings; lifecycle management is external.
type JobRepository interface {
	// FindPublished returns the posting with the given ID only if it is
	// published. An unpublished or missing posting yields sql.ErrNoRows.
	FindPublished(ctx context.Context, id string) (*model.JobPosting, error)

	// ListPublished returns all published postings, newest first.
	ListPublished(ctx context.Context) ([]model.JobPosting, error)
}
