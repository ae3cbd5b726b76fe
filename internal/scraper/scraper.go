// Package scraper orchestrates a sourcing run: it fans a job out to the
// configured providers, processes and scores the raw candidates, and hands
// the accepted ones to the persistence gateway. Provider failures never
// cross source boundaries; each source reports its own ScrapeResult.
package scraper

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-sourcer/internal/analyzer"
	"github.com/jonathan/talent-sourcer/internal/dedup"
	"github.com/jonathan/talent-sourcer/internal/processor"
	"github.com/jonathan/talent-sourcer/internal/provider"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// DefaultMaxCandidates is applied when Options leaves the budget zero.
// DefaultMinMatchScore is the CLI-layer default; the orchestrator itself
// treats a zero threshold as "store every valid candidate".
const (
	DefaultMaxCandidates = 50
	DefaultMinMatchScore = 60
)

// JobStore loads requisitions for scraping.
type JobStore interface {
	GetJob(ctx context.Context, jobID uuid.UUID) (*types.Job, error)
}

// CandidateStore persists accepted candidates and per-job counters.
type CandidateStore interface {
	CandidateExists(ctx context.Context, jobID uuid.UUID, canonicalURL, name string) (bool, error)
	InsertCandidate(ctx context.Context, record *types.CandidateRecord) error
	UpdateJobCounters(ctx context.Context, jobID uuid.UUID, found, saved int) error
}

// NarrativeAnalyzer produces an AI narrative for an accepted candidate.
// Implementations must return a usable fallback payload instead of failing.
type NarrativeAnalyzer interface {
	Analyze(ctx context.Context, job *types.Job, candidate *types.ProcessedCandidate) types.AIAnalysis
}

// Options configures one orchestration call.
type Options struct {
	Sources       []string // empty means use the analyzer's recommendation
	MaxCandidates int      // zero uses DefaultMaxCandidates
	MinMatchScore int      // zero persists every valid candidate
	Parallel      bool
	Verbose       bool
}

// Orchestrator wires providers, the processor, and the stores together.
type Orchestrator struct {
	jobs       JobStore
	candidates CandidateStore
	providers  map[string]provider.Searcher
	seen       *dedup.Cache // optional, nil disables the fast path
	narrator   NarrativeAnalyzer
}

// New builds an Orchestrator. seen and narrator may be nil.
func New(jobs JobStore, candidates CandidateStore, providers map[string]provider.Searcher, seen *dedup.Cache, narrator NarrativeAnalyzer) *Orchestrator {
	return &Orchestrator{
		jobs:       jobs,
		candidates: candidates,
		providers:  providers,
		seen:       seen,
		narrator:   narrator,
	}
}

// ScrapeForJob runs the full sourcing pipeline for one job. It returns an
// error only when the job itself cannot be loaded; provider and persistence
// failures are folded into the per-source results.
func (o *Orchestrator) ScrapeForJob(ctx context.Context, jobID uuid.UUID, opts Options) ([]types.ScrapeResult, error) {
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultMaxCandidates
	}
	if opts.MinMatchScore < 0 {
		opts.MinMatchScore = 0
	}

	job, err := o.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("loading job %s: %w", jobID, err)
	}
	if !job.IsActive() {
		if opts.Verbose {
			fmt.Printf("Job %q is %s, skipping scrape\n", job.Title, job.Status)
		}
		return []types.ScrapeResult{}, nil
	}

	plan := o.sourcePlan(job, opts)
	if opts.Verbose {
		for _, rec := range plan {
			fmt.Printf("Source plan: %s weight=%d quota=%d\n", rec.Source, rec.Weight, rec.Quota)
		}
	}

	results := make([]types.ScrapeResult, len(plan))
	if opts.Parallel {
		g, gCtx := errgroup.WithContext(ctx)
		for i, rec := range plan {
			i, rec := i, rec
			g.Go(func() error {
				results[i] = o.scrapeSource(gCtx, job, rec, opts)
				return nil
			})
		}
		// Workers never return errors; isolation is per-source.
		_ = g.Wait()
	} else {
		for i, rec := range plan {
			results[i] = o.scrapeSource(ctx, job, rec, opts)
		}
	}

	found, saved := 0, 0
	for _, r := range results {
		found += r.CandidatesFound
		saved += r.CandidatesSaved
	}
	if err := o.candidates.UpdateJobCounters(ctx, job.ID, found, saved); err != nil {
		fmt.Printf("Warning: failed to update job counters: %v\n", err)
	}

	return results, nil
}

// sourcePlan resolves the per-source quotas. Explicit sources split the
// budget evenly; otherwise the analyzer's weighted recommendation applies.
func (o *Orchestrator) sourcePlan(job *types.Job, opts Options) []types.SourceRecommendation {
	if len(opts.Sources) == 0 {
		return analyzer.RecommendSources(job, opts.MaxCandidates)
	}

	quota := opts.MaxCandidates / len(opts.Sources)
	remainder := opts.MaxCandidates % len(opts.Sources)
	plan := make([]types.SourceRecommendation, 0, len(opts.Sources))
	for i, source := range opts.Sources {
		q := quota
		if i == 0 {
			q += remainder
		}
		plan = append(plan, types.SourceRecommendation{Source: source, Weight: 1, Quota: q})
	}
	return plan
}

// scrapeSource runs one provider end to end and never propagates an error.
func (o *Orchestrator) scrapeSource(ctx context.Context, job *types.Job, rec types.SourceRecommendation, opts Options) types.ScrapeResult {
	result := types.ScrapeResult{Source: rec.Source}

	searcher, ok := o.providers[rec.Source]
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("unknown source %q", rec.Source))
		return result
	}
	if !searcher.IsConfigured() {
		result.Errors = append(result.Errors, fmt.Sprintf("source %q is not configured", rec.Source))
		return result
	}

	start := time.Now()
	raw, err := searcher.Search(ctx, job, rec.Quota)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(raw) > rec.Quota {
		raw = raw[:rec.Quota]
	}
	result.Success = true
	result.CandidatesFound = len(raw)

	for i := range raw {
		processed := processor.Process(raw[i], job)
		if !processed.IsValid {
			if opts.Verbose {
				fmt.Printf("[%s] rejected %q: %s\n", rec.Source, processed.Name, strings.Join(processed.ValidationErrors, "; "))
			}
			continue
		}
		if processed.MatchScore < opts.MinMatchScore {
			if opts.Verbose {
				fmt.Printf("[%s] rejected %q: score %d below threshold %d\n", rec.Source, processed.Name, processed.MatchScore, opts.MinMatchScore)
			}
			continue
		}

		saved, err := o.persist(ctx, job, &processed)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("saving %q: %v", processed.Name, err))
			continue
		}
		if saved {
			result.CandidatesSaved++
		}
	}

	if opts.Verbose {
		fmt.Printf("[%s] found=%d saved=%d in %s\n", rec.Source, result.CandidatesFound, result.CandidatesSaved, time.Since(start).Round(time.Millisecond))
	}
	return result
}

// persist deduplicates and stores one accepted candidate. Returns false
// without error when the candidate is a duplicate.
func (o *Orchestrator) persist(ctx context.Context, job *types.Job, c *types.ProcessedCandidate) (bool, error) {
	canonical := dedup.CanonicalProfileURL(c.ProfileURL)

	if o.seen.Seen(ctx, job.ID, canonical) {
		return false, nil
	}
	exists, err := o.candidates.CandidateExists(ctx, job.ID, canonical, c.Name)
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	if exists {
		o.seen.Mark(ctx, job.ID, canonical)
		return false, nil
	}

	record := buildRecord(job, c, canonical)
	if o.narrator != nil {
		record.Analysis = o.narrator.Analyze(ctx, job, c)
	} else {
		record.Analysis = types.FallbackAnalysis()
	}

	if err := o.candidates.InsertCandidate(ctx, record); err != nil {
		return false, fmt.Errorf("insert: %w", err)
	}
	o.seen.Mark(ctx, job.ID, canonical)
	return true, nil
}

// buildRecord maps a processed candidate to the persistence shape.
func buildRecord(job *types.Job, c *types.ProcessedCandidate, canonical string) *types.CandidateRecord {
	record := &types.CandidateRecord{
		UserID:        job.UserID,
		JobID:         job.ID,
		Name:          c.Name,
		Role:          job.Title,
		Location:      c.Location,
		Skills:        c.Skills,
		ResumeSummary: buildSummary(c),
		Stage:         types.LifecycleStageNew,
		Source:        c.Source,
		AppliedAt:     time.Now().UTC(),

		WorkExperience: c.WorkExperience,
		Education:      c.Education,
	}
	if c.ExperienceYears != nil {
		record.ExperienceYears = int(math.Round(*c.ExperienceYears))
	}
	if c.Email != "" {
		email := c.Email
		record.Email = &email
	}
	if c.ProfileURL != "" {
		url := c.ProfileURL
		record.ProfileURL = &url
	}
	if canonical != "" {
		record.CanonicalProfileURL = &canonical
	}
	if !c.Portfolio.IsEmpty() {
		portfolio := c.Portfolio
		record.Portfolio = &portfolio
	}
	return record
}

// buildSummary augments the candidate summary with profile links and any
// detected job-seeking signals so recruiters see them in one place.
func buildSummary(c *types.ProcessedCandidate) string {
	var b strings.Builder
	b.WriteString(c.ResumeSummary)

	var links []string
	if c.Portfolio.GitHub != "" {
		links = append(links, "GitHub: "+c.Portfolio.GitHub)
	}
	if c.Portfolio.LinkedIn != "" {
		links = append(links, "LinkedIn: "+c.Portfolio.LinkedIn)
	}
	if c.Portfolio.Website != "" {
		links = append(links, "Website: "+c.Portfolio.Website)
	}
	if len(links) > 0 {
		b.WriteString("\n\nProfiles:\n")
		b.WriteString(strings.Join(links, "\n"))
	}

	if len(c.Signals.DetectedSignals) > 0 {
		fmt.Fprintf(&b, "\n\nJob-seeking signals (strength %d): %s",
			c.Signals.SignalStrength, strings.Join(c.Signals.DetectedSignals, ", "))
	}
	return b.String()
}
