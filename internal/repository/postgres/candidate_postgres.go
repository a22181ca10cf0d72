package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"recruitapi/internal/model"
	"recruitapi/internal/repository"
)

// CandidatePostgres is a PostgreSQL implementation of repository.CandidateRepository.
// Skill/strength/missing-skill lists are stored as JSONB.
type CandidatePostgres struct {
	db *sql.DB
}

// NewCandidatePostgres creates a new CandidatePostgres repository.
func NewCandidatePostgres(db *sql.DB) *CandidatePostgres {
	return &CandidatePostgres{db: db}
}

var _ repository.CandidateRepository = (*CandidatePostgres)(nil)

func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func unmarshalList(raw []byte) ([]string, error) {
	out := make([]string, 0)
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new candidate row and returns the stored record.
func (r *CandidatePostgres) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	skills, err := marshalList(c.Skills)
	if err != nil {
		return nil, fmt.Errorf("marshal skills: %w", err)
	}
	strengths, err := marshalList(c.Strengths)
	if err != nil {
		return nil, fmt.Errorf("marshal strengths: %w", err)
	}
	missing, err := marshalList(c.MissingSkills)
	if err != nil {
		return nil, fmt.Errorf("marshal missing skills: %w", err)
	}

	const q = `
		INSERT INTO candidates (
			id, name, email, job_id, resume_text, resume_path,
			match_score, shortlisted, skills, strengths, missing_skills,
			experience_years, education, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`
	out := *c
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Email,
		c.JobID,
		c.ResumeText,
		c.ResumePath,
		c.MatchScore,
		c.Shortlisted,
		skills,
		strengths,
		missing,
		c.ExperienceYears,
		c.Education,
		c.CreatedAt,
	)
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single candidate with the job title joined in.
func (r *CandidatePostgres) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	const q = `
		SELECT c.id, c.name, c.email, c.job_id, j.title, c.resume_text, c.resume_path,
		       c.match_score, c.shortlisted, c.skills, c.strengths, c.missing_skills,
		       c.experience_years, c.education, c.created_at
		FROM candidates c
		JOIN job_postings j ON j.id = c.job_id
		WHERE c.id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)

	var (
		c                          model.Candidate
		skills, strengths, missing []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.JobID,
		&c.JobTitle,
		&c.ResumeText,
		&c.ResumePath,
		&c.MatchScore,
		&c.Shortlisted,
		&skills,
		&strengths,
		&missing,
		&c.ExperienceYears,
		&c.Education,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if c.Skills, err = unmarshalList(skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	if c.Strengths, err = unmarshalList(strengths); err != nil {
		return nil, fmt.Errorf("unmarshal strengths: %w", err)
	}
	if c.MissingSkills, err = unmarshalList(missing); err != nil {
		return nil, fmt.Errorf("unmarshal missing skills: %w", err)
	}
	return &c, nil
}

// List returns candidate summaries, newest first.
func (r *CandidatePostgres) List(ctx context.Context) ([]model.CandidateSummary, error) {
	const q = `
		SELECT c.id, c.name, c.email, c.match_score, c.shortlisted, c.skills, j.title
		FROM candidates c
		JOIN job_postings j ON j.id = c.job_id
		ORDER BY c.created_at DESC, c.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CandidateSummary, 0)
	for rows.Next() {
		var (
			s      model.CandidateSummary
			skills []byte
		)
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.MatchScore,
			&s.Shortlisted,
			&skills,
			&s.JobTitle,
		); err != nil {
			return nil, err
		}
		if s.Skills, err = unmarshalList(skills); err != nil {
			return nil, fmt.Errorf("unmarshal skills: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Stats computes the analytics aggregate in a single query.
// COALESCE keeps avg_score at 0.0 for an empty table.
func (r *CandidatePostgres) Stats(ctx context.Context) (*model.CandidateStats, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE shortlisted),
		       COALESCE(AVG(match_score), 0.0)
		FROM candidates
	`
	var st model.CandidateStats
	if err := r.db.QueryRowContext(ctx, q).Scan(
		&st.TotalCandidates,
		&st.Shortlisted,
		&st.AvgScore,
	); err != nil {
		return nil, err
	}
	return &st, nil
}
