package repository

import (
	"context"

	"recruitapi/internal/model"
)

// CandidateRepository defines data access for candidate records using SQL
// queries only. No business logic here, strictly persistence operations.
type CandidateRepository interface {
	// Create inserts a new candidate row. The caller provides ID and
	// CreatedAt. Returns the stored record. There is intentionally no
	// uniqueness constraint on (job, email): repeated applications create
	// distinct rows.
	Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error)

	// FindByID returns a single candidate with its job title joined in.
	FindByID(ctx context.Context, id string) (*model.Candidate, error)

	// List returns candidate summaries, newest first.
	List(ctx context.Context) ([]model.CandidateSummary, error)

	// Stats returns the aggregate counts behind the analytics endpoint.
	// AvgScore is 0.0 when no candidates exist.
	Stats(ctx context.Context) (*model.CandidateStats, error)
}
