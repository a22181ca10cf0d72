package model

import "time"

// Candidate is the durable record of one scored application.
// It is created exactly once per successful pipeline run and never mutated
// by the pipeline afterwards. ResumeText holds the redacted text; the
// original upload lives in object storage under ResumePath.
// This is a pure domain model with no database-specific dependencies or tags.
type Candidate struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	JobID           string    `json:"job_id"`
	JobTitle        string    `json:"job_title,omitempty"`
	ResumeText      string    `json:"-"`
	ResumePath      string    `json:"-"`
	MatchScore      float64   `json:"match_score"`
	Shortlisted     bool      `json:"shortlisted"`
	Skills          []string  `json:"skills"`
	Strengths       []string  `json:"strengths"`
	MissingSkills   []string  `json:"missing_skills"`
	ExperienceYears int       `json:"experience_years"`
	Education       string    `json:"education"`
	CreatedAt       time.Time `json:"created_at"`
}

// CandidateSummary is the listing projection returned by the candidates
// endpoint; it omits resume text and scoring detail lists.
type CandidateSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	MatchScore  float64  `json:"match_score"`
	Shortlisted bool     `json:"shortlisted"`
	Skills      []string `json:"skills"`
	JobTitle    string   `json:"job_title"`
}

// CandidateStats is the aggregate shape behind the analytics endpoint.
type CandidateStats struct {
	TotalCandidates int     `json:"total_candidates"`
	Shortlisted     int     `json:"shortlisted"`
	AvgScore        float64 `json:"avg_score"`
}
