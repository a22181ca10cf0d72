// Package service implements the application intake pipeline and the
// read-side queries behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruitapi/internal/model"
)

var (
	// ErrJobNotFound means the job posting does not exist or is not published.
	ErrJobNotFound = errors.New("job posting not found or not published")

	// ErrEmptyResume means extraction (or redaction) left no usable text.
	ErrEmptyResume = errors.New("resume contains no extractable text")

	// ErrPersistenceFailed means the application could not be durably stored.
	ErrPersistenceFailed = errors.New("failed to persist application")
)

// MissingFieldsError reports which required submission fields were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ApplicationRequest is one candidate submission as parsed off the wire.
type ApplicationRequest struct {
	JobID    string
	Name     string
	Email    string
	Filename string
	Resume   []byte
}

// ApplicationOutcome is the synchronous result returned to the applicant.
// MatchScore is rounded to one decimal place for presentation; the stored
// record keeps full precision.
type ApplicationOutcome struct {
	CandidateID     string   `json:"candidate_id"`
	JobTitle        string   `json:"job_title"`
	MatchScore      float64  `json:"match_score"`
	Shortlisted     bool     `json:"shortlisted"`
	Skills          []string `json:"skills"`
	Strengths       []string `json:"strengths"`
	MissingSkills   []string `json:"missing_skills"`
	ExperienceYears int      `json:"experience_years"`
	Education       string   `json:"education"`
}

// ApplicationService is the business surface exposed to the HTTP layer.
type ApplicationService interface {
	// ProcessApplication runs the full intake pipeline for one submission:
	// validate, resolve the job, extract and redact resume text, score it
	// remotely, persist the result, and queue a shortlist notification.
	// Each call creates a new candidate record; resubmitting the same
	// application creates another one.
	ProcessApplication(ctx context.Context, req ApplicationRequest) (*ApplicationOutcome, error)

	// ListJobs returns all published job postings, newest first.
	ListJobs(ctx context.Context) ([]model.JobPosting, error)

	// ListCandidates returns all stored candidates, newest first.
	ListCandidates(ctx context.Context) ([]model.CandidateSummary, error)

	// GetCandidate returns one stored candidate with its job title joined in.
	// A missing candidate yields sql.ErrNoRows.
	GetCandidate(ctx context.Context, id string) (*model.Candidate, error)

	// Analytics returns aggregate counts over stored candidates.
	Analytics(ctx context.Context) (*model.CandidateStats, error)
}
