package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/talent-sourcer/internal/fetchjson"
	"github.com/jonathan/talent-sourcer/internal/query"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// Profile-search actor defaults.
const (
	defaultActorBaseURL  = "https://api.apify.com"
	defaultActorID       = "profile-search-scraper"
	defaultInvokeTimeout = 30 * time.Second
	defaultPollInterval  = 3 * time.Second
	defaultMaxPollWait   = 2 * time.Minute
	defaultRetryStep     = 2 * time.Second
)

// Actor run terminal states.
const (
	runStatusSucceeded = "SUCCEEDED"
	runStatusFailed    = "FAILED"
	runStatusAborted   = "ABORTED"
	runStatusTimedOut  = "TIMED-OUT"
)

// ProfileSearchConfig configures the profile-search adapter. Tokens is a
// comma-separated list; multiple tokens enable credential rotation.
type ProfileSearchConfig struct {
	Tokens  string
	BaseURL string
	ActorID string

	// Tuning knobs, zero values use the defaults above.
	InvokeTimeout time.Duration
	PollInterval  time.Duration
	MaxPollWait   time.Duration
	RetryStep     time.Duration
}

// ProfileSearch runs people searches through a remote profile-search actor.
// It owns the credential pool: quota-limited tokens are marked exhausted and
// the search continues with the next available token.
type ProfileSearch struct {
	cfg    ProfileSearchConfig
	pool   *CredentialPool
	client *fetchjson.Client
}

// NewProfileSearch creates the profile-search adapter.
func NewProfileSearch(cfg ProfileSearchConfig) *ProfileSearch {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultActorBaseURL
	}
	if cfg.ActorID == "" {
		cfg.ActorID = defaultActorID
	}
	if cfg.InvokeTimeout == 0 {
		cfg.InvokeTimeout = defaultInvokeTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxPollWait == 0 {
		cfg.MaxPollWait = defaultMaxPollWait
	}
	if cfg.RetryStep == 0 {
		cfg.RetryStep = defaultRetryStep
	}
	return &ProfileSearch{
		cfg:    cfg,
		pool:   NewCredentialPool(cfg.Tokens),
		client: fetchjson.NewClient(),
	}
}

// Name implements Searcher.
func (a *ProfileSearch) Name() string { return types.SourceLinkedIn }

// IsConfigured implements Searcher.
func (a *ProfileSearch) IsConfigured() bool { return a.pool.Size() > 0 }

// Search implements Searcher. Each quota-limited token is exhausted and the
// search rotates to the next one; no token is reused within one search.
func (a *ProfileSearch) Search(ctx context.Context, job *types.Job, maxResults int) ([]types.RawCandidate, error) {
	if !a.IsConfigured() {
		return nil, &Error{Source: a.Name(), Message: "no API token configured", Cause: ErrNotConfigured}
	}

	q := query.BuildProfileSearchQuery(job, maxResults)

	tried := make(map[string]bool)
	for {
		token, err := a.pool.Acquire()
		if err != nil {
			return nil, &Error{Source: a.Name(), Message: "no available tokens", Cause: err}
		}
		if tried[token] {
			return nil, &Error{Source: a.Name(), Message: "every configured token was tried for this search"}
		}
		tried[token] = true

		candidates, err := a.searchWithToken(ctx, token, q, maxResults)
		if err == nil {
			return candidates, nil
		}
		if IsQuotaError(err) {
			a.pool.MarkExhausted(token)
			continue
		}
		return nil, &Error{Source: a.Name(), Message: "actor search failed", Cause: err}
	}
}

// searchWithToken runs the full invoke -> poll -> fetch sequence on one
// token. Transient transport failures are retried with linear backoff;
// quota errors propagate so the caller can rotate tokens.
func (a *ProfileSearch) searchWithToken(ctx context.Context, token string, q query.ProfileSearchQuery, maxResults int) ([]types.RawCandidate, error) {
	backoff := LinearBackoff(a.cfg.RetryStep)

	var run actorRun
	err := WithRetry(ctx, DefaultRetryAttempts, backoff, IsTransientError, func(ctx context.Context) error {
		invokeCtx, cancel := context.WithTimeout(ctx, a.cfg.InvokeTimeout)
		defer cancel()
		return a.client.PostJSON(invokeCtx, a.runsURL(token), q, nil, &run)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start actor run: %w", err)
	}

	finished, err := a.waitForRun(ctx, token, run.Data.ID)
	if err != nil {
		return nil, err
	}

	datasetID := finished.Data.DefaultDatasetID
	if datasetID == "" {
		datasetID = run.Data.DefaultDatasetID
	}
	if datasetID == "" {
		return nil, fmt.Errorf("actor run %s finished without a dataset", run.Data.ID)
	}

	var items []json.RawMessage
	err = WithRetry(ctx, DefaultRetryAttempts, backoff, IsTransientError, func(ctx context.Context) error {
		items = nil
		return a.client.GetJSON(ctx, a.datasetURL(datasetID, token), nil, &items)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset items: %w", err)
	}

	if len(items) > maxResults {
		items = items[:maxResults]
	}
	return a.mapItems(items), nil
}

// waitForRun polls the run status at a fixed interval until it reaches a
// terminal state or the wait budget is spent. A non-success terminal state
// is fatal for this attempt.
func (a *ProfileSearch) waitForRun(ctx context.Context, token, runID string) (*actorRun, error) {
	deadline := time.Now().Add(a.cfg.MaxPollWait)
	backoff := LinearBackoff(a.cfg.RetryStep)

	for {
		var run actorRun
		err := WithRetry(ctx, DefaultRetryAttempts, backoff, IsTransientError, func(ctx context.Context) error {
			return a.client.GetJSON(ctx, a.runURL(runID, token), nil, &run)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to poll run %s: %w", runID, err)
		}

		switch run.Data.Status {
		case runStatusSucceeded:
			return &run, nil
		case runStatusFailed, runStatusAborted, runStatusTimedOut:
			return nil, fmt.Errorf("actor run %s ended with status %s", runID, run.Data.Status)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("actor run %s did not finish within %s", runID, a.cfg.MaxPollWait)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.cfg.PollInterval):
		}
	}
}

func (a *ProfileSearch) runsURL(token string) string {
	return fmt.Sprintf("%s/v2/acts/%s/runs?token=%s", a.cfg.BaseURL, url.PathEscape(a.cfg.ActorID), url.QueryEscape(token))
}

func (a *ProfileSearch) runURL(runID, token string) string {
	return fmt.Sprintf("%s/v2/actor-runs/%s?token=%s", a.cfg.BaseURL, url.PathEscape(runID), url.QueryEscape(token))
}

func (a *ProfileSearch) datasetURL(datasetID, token string) string {
	return fmt.Sprintf("%s/v2/datasets/%s/items?token=%s", a.cfg.BaseURL, url.PathEscape(datasetID), url.QueryEscape(token))
}

// actorRun is the actor API envelope for run creation and status responses.
type actorRun struct {
	Data struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

// profileSearchItem is the tagged variant for profile-search results; one
// explicit mapping turns it into a RawCandidate.
type profileSearchItem struct {
	FullName   string     `json:"fullName"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Headline   string     `json:"headline"`
	ProfileURL string     `json:"profileUrl"`
	Location   string     `json:"location"`
	Geo        *geoFields `json:"geo"`
	About      string     `json:"about"`
	Skills     flexSkills `json:"skills"`
	OpenToWork bool       `json:"openToWork"`
	Hiring     bool       `json:"hiring"`

	Experience []struct {
		Title       string `json:"title"`
		CompanyName string `json:"companyName"`
		Duration    string `json:"duration"`
		Description string `json:"description"`
	} `json:"experience"`

	Education []struct {
		Degree     string `json:"degree"`
		SchoolName string `json:"schoolName"`
		Year       string `json:"year"`
	} `json:"education"`
}

type geoFields struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// flexSkills accepts both ["Go", "SQL"] and [{"name": "Go"}] payloads.
type flexSkills []string

func (s *flexSkills) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = plain
		return nil
	}
	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objects); err != nil {
		return err
	}
	for _, o := range objects {
		if o.Name != "" {
			*s = append(*s, o.Name)
		}
	}
	return nil
}

// mapItems converts raw dataset items into RawCandidates. Profile-search
// sources never expose verified emails, so Email is always left empty.
func (a *ProfileSearch) mapItems(items []json.RawMessage) []types.RawCandidate {
	candidates := make([]types.RawCandidate, 0, len(items))
	for _, raw := range items {
		var item profileSearchItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		var rawData map[string]any
		_ = json.Unmarshal(raw, &rawData)

		c := types.RawCandidate{
			Name:          profileName(&item),
			Location:      item.Location,
			Skills:        item.Skills,
			ResumeSummary: item.About,
			ProfileURL:    item.ProfileURL,
			OpenToWork:    item.OpenToWork,
			Hiring:        item.Hiring,
			Source:        a.Name(),
			RawData:       rawData,
		}
		if item.Geo != nil {
			c.LocationParts = &types.LocationParts{City: item.Geo.City, Region: item.Geo.Region, Country: item.Geo.Country}
		}
		if item.ProfileURL != "" {
			c.Portfolio.LinkedIn = item.ProfileURL
		}
		for _, exp := range item.Experience {
			c.WorkExperience = append(c.WorkExperience, types.WorkExperience{
				Role:        exp.Title,
				Company:     exp.CompanyName,
				Duration:    exp.Duration,
				Description: exp.Description,
			})
		}
		for _, edu := range item.Education {
			c.Education = append(c.Education, types.Education{
				Degree:      edu.Degree,
				Institution: edu.SchoolName,
				Year:        edu.Year,
			})
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// profileName resolves a display name: explicit name fields first, then
// first+last, then the first word of the headline, then a slug from the
// profile URL, and finally a fixed placeholder. Never returns "".
func profileName(item *profileSearchItem) string {
	if name := strings.TrimSpace(item.FullName); name != "" {
		return name
	}
	first, last := strings.TrimSpace(item.FirstName), strings.TrimSpace(item.LastName)
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}
	if fields := strings.Fields(item.Headline); len(fields) > 0 {
		return fields[0]
	}
	if slug := nameFromProfileURL(item.ProfileURL); slug != "" {
		return slug
	}
	return "Unknown Candidate"
}

// nameFromProfileURL derives a readable name from the last path segment of
// a profile URL, e.g. ".../in/jane-doe-1a2b" -> "Jane Doe".
func nameFromProfileURL(profileURL string) string {
	if profileURL == "" {
		return ""
	}
	parsed, err := url.Parse(profileURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	slug := segments[len(segments)-1]
	if slug == "" {
		return ""
	}

	var words []string
	for _, part := range strings.Split(slug, "-") {
		if part == "" || containsDigit(part) {
			continue // id suffixes like "1a2b" are not name parts
		}
		words = append(words, strings.ToUpper(part[:1])+part[1:])
	}
	return strings.Join(words, " ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
