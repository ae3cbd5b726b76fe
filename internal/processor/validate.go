package processor

import (
	"fmt"

	"github.com/jonathan/talent-sourcer/internal/parsing"
	"github.com/jonathan/talent-sourcer/internal/query"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// Experience-bracket tolerances. These thresholds are empirically chosen
// and deliberately asymmetric per tier; keep them as-is.
const (
	entryOverqualifiedSlack = 2.0 // entry: reject when over bracket max by more than this
	midUnderqualifiedSlack  = 1.0 // mid: reject when below bracket min by more than this
	midOverqualifiedSlack   = 3.0 // mid: reject when over bracket max by more than this
)

// Validate checks a normalized candidate against the job. Each failure
// appends a message; nothing raises. A non-empty return means the candidate
// will not be persisted.
func Validate(c *types.RawCandidate, job *types.Job) []string {
	var errs []string

	if c.Name == "" {
		errs = append(errs, "candidate name is required")
	}

	// Strict location matching applies only to on-site jobs where both
	// sides declare a location.
	if !job.Remote && job.Location != "" && c.Location != "" && !parsing.IsRemoteKeyword(c.Location) {
		if !parsing.MatchLocations(c.Location, job.Location) {
			errs = append(errs, fmt.Sprintf("location mismatch: candidate is in %q, job requires %q", c.Location, job.Location))
		}
	}

	if msg := validateExperience(c, job); msg != "" {
		errs = append(errs, msg)
	}

	// Skills are optional; before giving up, try extraction from the
	// resume summary. An empty list is acceptable, not an error.
	if len(c.Skills) == 0 && c.ResumeSummary != "" {
		c.Skills = query.ExtractSkillsFromText(c.ResumeSummary)
	}

	return errs
}

// validateExperience applies the tiered bracket checks: entry rejects the
// clearly overqualified, mid rejects both directions, senior only rejects
// the underqualified.
func validateExperience(c *types.RawCandidate, job *types.Job) string {
	if job.ExperienceLevel == "" || c.ExperienceYears == nil {
		return ""
	}
	bracket, ok := parsing.ParseExperienceLevel(job.ExperienceLevel)
	if !ok {
		return ""
	}

	years := *c.ExperienceYears
	switch bracket.Tier {
	case parsing.TierEntry:
		if !bracket.Unbounded() && years > bracket.Max+entryOverqualifiedSlack {
			return fmt.Sprintf("overqualified: %.0f years of experience for an entry-level role (%.0f-%.0f years)", years, bracket.Min, bracket.Max)
		}
	case parsing.TierMid:
		if years < bracket.Min-midUnderqualifiedSlack {
			return fmt.Sprintf("insufficient experience: %.0f years, role requires at least %.0f", years, bracket.Min)
		}
		if !bracket.Unbounded() && years > bracket.Max+midOverqualifiedSlack {
			return fmt.Sprintf("overqualified: %.0f years of experience for a mid-level role (%.0f-%.0f years)", years, bracket.Min, bracket.Max)
		}
	case parsing.TierSenior:
		if years < bracket.Min {
			return fmt.Sprintf("insufficient experience: %.0f years, senior role requires at least %.0f", years, bracket.Min)
		}
	}
	return ""
}
