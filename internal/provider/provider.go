// Package provider implements the adapters for external people-search
// providers. Every adapter satisfies the Searcher contract, hides its
// provider's authentication, retry, and pagination, and maps the provider
// payload into the canonical RawCandidate shape.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/jonathan/talent-sourcer/internal/fetchjson"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// Searcher is the uniform contract implemented by every provider adapter.
// A zero-result search is a valid, successful empty response; adapters only
// return an error on configuration or transport failure.
type Searcher interface {
	// Name returns the source tag for this provider.
	Name() string
	// IsConfigured reports whether credentials for this provider exist.
	IsConfigured() bool
	// Search finds candidates for the job, returning at most maxResults.
	Search(ctx context.Context, job *types.Job, maxResults int) ([]types.RawCandidate, error)
}

// Error is a provider failure carrying a human-readable cause.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s provider: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s provider: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrNotConfigured is returned when an adapter has no credentials.
var ErrNotConfigured = errors.New("provider is not configured")

// quotaIndicators mark an error as quota exhaustion for the current token.
var quotaIndicators = []string{
	"quota",
	"run limit",
	"free tier limit",
	"rate limit",
	"too many requests",
	"429",
}

// IsQuotaError reports whether the error looks like a quota-limit response,
// which should exhaust the current token rather than fail the search.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var fe *fetchjson.Error
	if errors.As(err, &fe) && fe.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range quotaIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

// IsTransientError reports whether the error looks like a recoverable
// transport failure worth retrying on the same token.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"connection reset",
		"connection refused",
		"timeout",
		"timed out",
		"broken pipe",
		"temporary failure",
		"eof",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

// Registry builds the full adapter set from configuration, keyed by source
// tag. Unconfigured adapters are still present; the orchestrator surfaces
// their missing credentials as per-source errors.
func Registry(cfg Config) map[string]Searcher {
	return map[string]Searcher{
		types.SourceLinkedIn: NewProfileSearch(cfg.ProfileSearch),
		types.SourceGitHub:   NewDeveloper(cfg.Developer),
		types.SourceResumeDB: NewResumeDB(types.SourceResumeDB, cfg.ResumeDB),
		types.SourceJobBoard: NewResumeDB(types.SourceJobBoard, cfg.JobBoard),
	}
}

// Config aggregates per-provider configuration for the registry.
type Config struct {
	ProfileSearch ProfileSearchConfig
	Developer     DeveloperConfig
	ResumeDB      ResumeDBConfig
	JobBoard      ResumeDBConfig
}
