package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// CandidateExists reports whether a candidate is already stored for this
// job. Candidates with a canonical profile URL are deduped by URL alone;
// the case-insensitive name match applies only when no URL is available,
// so two distinct profiles sharing a name can both be saved.
func (db *DB) CandidateExists(ctx context.Context, jobID uuid.UUID, canonicalURL, name string) (bool, error) {
	var exists bool

	if canonicalURL != "" {
		err := db.pool.QueryRow(ctx,
			`SELECT EXISTS(
			    SELECT 1 FROM candidates
			    WHERE job_id = $1 AND canonical_profile_url = $2)`,
			jobID, canonicalURL,
		).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check candidate by URL: %w", err)
		}
		return exists, nil
	}

	if name == "" {
		return false, nil
	}
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(
		    SELECT 1 FROM candidates
		    WHERE job_id = $1 AND LOWER(name) = LOWER($2))`,
		jobID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check candidate by name: %w", err)
	}
	return exists, nil
}

// InsertCandidate validates and stores one accepted candidate.
func (db *DB) InsertCandidate(ctx context.Context, record *types.CandidateRecord) error {
	if err := db.validate.Struct(record); err != nil {
		return fmt.Errorf("invalid candidate record: %w", err)
	}

	analysisJSON, err := json.Marshal(record.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var portfolioJSON, workJSON, eduJSON []byte
	if record.Portfolio != nil {
		if portfolioJSON, err = json.Marshal(record.Portfolio); err != nil {
			return fmt.Errorf("failed to marshal portfolio: %w", err)
		}
	}
	if len(record.WorkExperience) > 0 {
		if workJSON, err = json.Marshal(record.WorkExperience); err != nil {
			return fmt.Errorf("failed to marshal work experience: %w", err)
		}
	}
	if len(record.Education) > 0 {
		if eduJSON, err = json.Marshal(record.Education); err != nil {
			return fmt.Errorf("failed to marshal education: %w", err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidates
		   (user_id, job_id, name, email, role, location, experience_years,
		    skills, resume_summary, analysis, stage, source, is_test, applied_at,
		    profile_url, portfolio, canonical_profile_url, work_experience, education)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		         $15, $16, $17, $18, $19)`,
		record.UserID, record.JobID, record.Name, record.Email, record.Role,
		record.Location, record.ExperienceYears, record.Skills, record.ResumeSummary,
		analysisJSON, record.Stage, record.Source, record.IsTest, record.AppliedAt,
		record.ProfileURL, portfolioJSON, record.CanonicalProfileURL, workJSON, eduJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}
