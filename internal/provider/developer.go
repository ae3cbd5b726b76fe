package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/talent-sourcer/internal/fetchjson"
	"github.com/jonathan/talent-sourcer/internal/query"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// Developer-profile API defaults.
const (
	defaultDeveloperBaseURL = "https://api.github.com"
	// defaultCallDelay paces successive API calls to respect the shared
	// search quota.
	defaultCallDelay = 100 * time.Millisecond
)

// DeveloperConfig configures the developer-profile adapter.
type DeveloperConfig struct {
	Token     string
	BaseURL   string
	CallDelay time.Duration
}

// Developer searches public developer profiles. Exact-location filters on
// this provider are frequently over-restrictive, so the search tries a
// ladder of progressively relaxed queries and stops at the first one that
// returns results.
type Developer struct {
	cfg    DeveloperConfig
	client *fetchjson.Client

	mu       sync.Mutex // guards lastCall; one adapter serves concurrent scrapes
	lastCall time.Time
}

// NewDeveloper creates the developer-profile adapter.
func NewDeveloper(cfg DeveloperConfig) *Developer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDeveloperBaseURL
	}
	if cfg.CallDelay == 0 {
		cfg.CallDelay = defaultCallDelay
	}
	return &Developer{cfg: cfg, client: fetchjson.NewClient()}
}

// Name implements Searcher.
func (a *Developer) Name() string { return types.SourceGitHub }

// IsConfigured implements Searcher.
func (a *Developer) IsConfigured() bool { return a.cfg.Token != "" }

// Search implements Searcher.
func (a *Developer) Search(ctx context.Context, job *types.Job, maxResults int) ([]types.RawCandidate, error) {
	if !a.IsConfigured() {
		return nil, &Error{Source: a.Name(), Message: "no API token configured", Cause: ErrNotConfigured}
	}

	q := query.BuildDeveloperQuery(job, maxResults)

	users, err := FirstSuccess(ctx, a.strategies(q))
	if err != nil {
		return nil, &Error{Source: a.Name(), Message: "user search failed", Cause: err}
	}

	if len(users) > maxResults {
		users = users[:maxResults]
	}

	candidates := make([]types.RawCandidate, 0, len(users))
	for _, u := range users {
		detail, err := a.fetchUser(ctx, u.Login)
		if err != nil {
			// A single unreachable profile should not sink the search.
			continue
		}
		candidates = append(candidates, a.mapUser(detail, q.Language))
	}
	return candidates, nil
}

// strategies is the relaxation ladder: location+language+keywords, then
// language+keywords, then language alone, then keywords alone, and finally
// a generic active-users query.
func (a *Developer) strategies(q query.DeveloperQuery) []func(ctx context.Context) ([]developerUser, error) {
	keywords := strings.Join(q.Keywords, " ")

	var terms []string
	if q.Location != "" {
		terms = append(terms, a.composeQuery(keywords, q.Language, q.Location))
	}
	terms = append(terms, a.composeQuery(keywords, q.Language, ""))
	terms = append(terms, a.composeQuery("", q.Language, ""))
	if keywords != "" {
		terms = append(terms, a.composeQuery(keywords, "", ""))
	}
	terms = append(terms, "type:user followers:>10")

	strategies := make([]func(ctx context.Context) ([]developerUser, error), 0, len(terms))
	for _, term := range terms {
		term := term
		strategies = append(strategies, func(ctx context.Context) ([]developerUser, error) {
			return a.searchUsers(ctx, term)
		})
	}
	return strategies
}

func (a *Developer) composeQuery(keywords, language, location string) string {
	var parts []string
	if keywords != "" {
		parts = append(parts, keywords)
	}
	if language != "" {
		parts = append(parts, "language:"+language)
	}
	if location != "" {
		// Only the first segment; full "city, state" strings over-filter.
		city := strings.TrimSpace(strings.Split(location, ",")[0])
		parts = append(parts, fmt.Sprintf("location:%q", city))
	}
	parts = append(parts, "type:user")
	return strings.Join(parts, " ")
}

func (a *Developer) searchUsers(ctx context.Context, term string) ([]developerUser, error) {
	a.pace()

	var resp struct {
		Items []developerUser `json:"items"`
	}
	u := fmt.Sprintf("%s/search/users?q=%s&per_page=50", a.cfg.BaseURL, url.QueryEscape(term))
	err := WithRetry(ctx, DefaultRetryAttempts, LinearBackoff(defaultRetryStep), IsTransientError, func(ctx context.Context) error {
		return a.client.GetJSON(ctx, u, a.authHeaders(), &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (a *Developer) fetchUser(ctx context.Context, login string) (*developerUserDetail, error) {
	a.pace()

	var detail developerUserDetail
	u := fmt.Sprintf("%s/users/%s", a.cfg.BaseURL, url.PathEscape(login))
	err := WithRetry(ctx, DefaultRetryAttempts, LinearBackoff(defaultRetryStep), IsTransientError, func(ctx context.Context) error {
		return a.client.GetJSON(ctx, u, a.authHeaders(), &detail)
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// pace inserts the fixed inter-call delay. Concurrent callers serialize
// here so the shared quota sees at most one call per CallDelay.
func (a *Developer) pace() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if elapsed := time.Since(a.lastCall); elapsed < a.cfg.CallDelay {
		time.Sleep(a.cfg.CallDelay - elapsed)
	}
	a.lastCall = time.Now()
}

func (a *Developer) authHeaders() map[string]string {
	return map[string]string{"Authorization": "token " + a.cfg.Token}
}

// developerUser is a search-results entry; developerUserDetail is the full
// profile fetched per user. Both are tagged variants mapped explicitly into
// RawCandidate.
type developerUser struct {
	Login string `json:"login"`
}

type developerUserDetail struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Company  string `json:"company"`
	Blog     string `json:"blog"`
	HTMLURL  string `json:"html_url"`
	Hireable bool   `json:"hireable"`
}

func (a *Developer) mapUser(u *developerUserDetail, language string) types.RawCandidate {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		name = u.Login
	}

	c := types.RawCandidate{
		Name:          name,
		Email:         u.Email,
		Location:      u.Location,
		ResumeSummary: u.Bio,
		ProfileURL:    u.HTMLURL,
		OpenToWork:    u.Hireable,
		Source:        a.Name(),
	}
	if language != "" {
		c.Skills = []string{language}
	}
	c.Portfolio.GitHub = u.HTMLURL
	if u.Blog != "" {
		c.Portfolio.Website = u.Blog
	}
	if u.Company != "" {
		c.WorkExperience = []types.WorkExperience{{Role: "Developer", Company: strings.TrimPrefix(u.Company, "@")}}
	}
	return c
}
