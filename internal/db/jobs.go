package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// ErrJobNotFound is returned when a job ID does not exist.
var ErrJobNotFound = errors.New("job not found")

// GetJob retrieves a job by ID.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*types.Job, error) {
	var job types.Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, COALESCE(department, ''), COALESCE(location, ''),
		        remote, COALESCE(experience_level, ''), COALESCE(skills, '{}'),
		        COALESCE(description, ''), status
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.UserID, &job.Title, &job.Department, &job.Location,
		&job.Remote, &job.ExperienceLevel, &job.Skills, &job.Description, &job.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListActiveJobs retrieves every active job, optionally restricted to one
// user. Used by the scheduler to enumerate scrape targets.
func (db *DB) ListActiveJobs(ctx context.Context, userID uuid.UUID) ([]types.Job, error) {
	query := `SELECT id, user_id, title, COALESCE(department, ''), COALESCE(location, ''),
	                 remote, COALESCE(experience_level, ''), COALESCE(skills, '{}'),
	                 COALESCE(description, ''), status
	          FROM jobs WHERE status = $1`
	args := []any{types.JobStatusActive}
	if userID != uuid.Nil {
		query += " AND user_id = $2"
		args = append(args, userID)
	}
	query += " ORDER BY created_at ASC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		var job types.Job
		if err := rows.Scan(&job.ID, &job.UserID, &job.Title, &job.Department, &job.Location,
			&job.Remote, &job.ExperienceLevel, &job.Skills, &job.Description, &job.Status); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateJobCounters accumulates found and saved counts on the job row after
// a scrape run.
func (db *DB) UpdateJobCounters(ctx context.Context, jobID uuid.UUID, found, saved int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET candidates_found = COALESCE(candidates_found, 0) + $1,
		     candidates_saved = COALESCE(candidates_saved, 0) + $2,
		     last_scraped_at = NOW()
		 WHERE id = $3`,
		found, saved, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job counters: %w", err)
	}
	return nil
}
