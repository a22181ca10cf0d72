package model

import "time"

// JobPosting represents an open position candidates apply to.
// The intake pipeline only ever reads published postings; posting lifecycle
// management happens outside this service.
type JobPosting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Department   string    `json:"department"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
}
