// Package types defines the shared data model for the sourcing pipeline:
// hiring requisitions, raw and processed candidates, and scrape outcomes.
package types

import (
	"github.com/google/uuid"
)

// JobStatus constants. Only Active jobs are scraped.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// Source constants for candidate providers.
const (
	SourceLinkedIn = "linkedin" // profile-search actor
	SourceGitHub   = "github"   // developer-profile API
	SourceResumeDB = "resumedb" // resume database
	SourceJobBoard = "jobboard" // job-board resume database
)

// AllSources lists every provider source in priority order.
var AllSources = []string{SourceLinkedIn, SourceGitHub, SourceResumeDB, SourceJobBoard}

// Job is a hiring requisition. It is read-only input to the pipeline and
// immutable for the duration of one scrape.
type Job struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	Department      string    `json:"department,omitempty"`
	Location        string    `json:"location,omitempty"`
	Remote          bool      `json:"remote"`
	ExperienceLevel string    `json:"experience_level,omitempty"` // free text, e.g. "Senior Level (5+ years)"
	Skills          []string  `json:"skills,omitempty"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status"`
}

// IsActive reports whether the job is eligible for scraping.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}
