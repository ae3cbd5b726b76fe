package types

import (
	"time"

	"github.com/google/uuid"
)

// WorkExperience is a single entry in a candidate's work history.
type WorkExperience struct {
	Role        string `json:"role"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"` // free text, e.g. "Jan 2021 - Present"
	Description string `json:"description,omitempty"`
}

// Education is a single entry in a candidate's education history.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// PortfolioLinks holds external profile URLs extracted from a candidate.
type PortfolioLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// IsEmpty reports whether no portfolio link is set.
func (p PortfolioLinks) IsEmpty() bool {
	return p.GitHub == "" && p.LinkedIn == "" && p.Website == "" && p.Twitter == ""
}

// LocationParts is a structured location as returned by some providers.
// The processor coerces it to a "city, country" style string.
type LocationParts struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// RawCandidate is the unvalidated output of a provider adapter. Each adapter
// maps its provider-specific payload into this canonical shape.
type RawCandidate struct {
	Name            string           `json:"name"`
	Email           string           `json:"email,omitempty"`
	Location        string           `json:"location,omitempty"`
	LocationParts   *LocationParts   `json:"location_parts,omitempty"`
	ExperienceYears *float64         `json:"experience_years,omitempty"`
	Skills          []string         `json:"skills,omitempty"`
	ResumeSummary   string           `json:"resume_summary,omitempty"`
	ProfileURL      string           `json:"profile_url,omitempty"`
	WorkExperience  []WorkExperience `json:"work_experience,omitempty"`
	Education       []Education      `json:"education,omitempty"`
	Portfolio       PortfolioLinks   `json:"portfolio,omitempty"`

	// Passive-signal flags surfaced directly by some providers.
	OpenToWork bool `json:"open_to_work,omitempty"`
	Hiring     bool `json:"hiring,omitempty"`

	Source  string         `json:"source"`
	RawData map[string]any `json:"-"` // opaque provider payload, kept for audit
}

// JobSeekingSignals summarizes passive job-seeking indicators detected for a
// candidate. Strength is clamped to [-20, 100].
type JobSeekingSignals struct {
	SignalStrength  int      `json:"signal_strength"`
	DetectedSignals []string `json:"detected_signals,omitempty"`
}

// ProcessedCandidate is a RawCandidate after validation, normalization, and
// scoring. Created once per RawCandidate and never mutated afterwards.
type ProcessedCandidate struct {
	RawCandidate

	IsValid          bool              `json:"is_valid"`
	MatchScore       int               `json:"match_score"` // always in [0, 100]
	ValidationErrors []string          `json:"validation_errors,omitempty"`
	Signals          JobSeekingSignals `json:"job_seeking_signals"`
}

// LifecycleStageNew is the initial pipeline stage for a stored candidate.
const LifecycleStageNew = "New"

// AIAnalysis is the narrative analysis returned by the external AI service.
// Treated as opaque; any failure is replaced with FallbackAnalysis.
type AIAnalysis struct {
	Score      int      `json:"score"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// FallbackAnalysis is stored when the AI narrative service fails or returns
// an unparseable response.
func FallbackAnalysis() AIAnalysis {
	return AIAnalysis{Score: 0, Summary: "analysis unavailable"}
}

// CandidateRecord is the shape handed to the persistence gateway for each
// accepted candidate.
type CandidateRecord struct {
	UserID          uuid.UUID  `json:"user_id" validate:"required"`
	JobID           uuid.UUID  `json:"job_id" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	Email           *string    `json:"email,omitempty" validate:"omitempty,email"`
	Role            string     `json:"role"` // = job title
	Location        string     `json:"location,omitempty"`
	ExperienceYears int        `json:"experience_years"`
	Skills          []string   `json:"skills,omitempty"`
	ResumeSummary   string     `json:"resume_summary,omitempty"`
	Analysis        AIAnalysis `json:"analysis"`
	Stage           string     `json:"stage"`
	Source          string     `json:"source" validate:"required"`
	IsTest          bool       `json:"is_test"`
	AppliedAt       time.Time  `json:"applied_at"`

	// Optional fields, set only when present on the candidate.
	ProfileURL          *string          `json:"profile_url,omitempty" validate:"omitempty,url"`
	Portfolio           *PortfolioLinks  `json:"portfolio,omitempty"`
	CanonicalProfileURL *string          `json:"canonical_profile_url,omitempty"` // per-job dedup key
	WorkExperience      []WorkExperience `json:"work_experience,omitempty"`
	Education           []Education      `json:"education,omitempty"`
}
