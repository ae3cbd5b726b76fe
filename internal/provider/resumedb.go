package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/talent-sourcer/internal/fetchjson"
	"github.com/jonathan/talent-sourcer/internal/query"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// ResumeDBConfig configures one resume-database adapter instance.
type ResumeDBConfig struct {
	APIKey  string
	BaseURL string
}

// ResumeDB searches a resume-database provider. Two instances cover the
// resume-db and job-board sources; they share transport and mapping and
// differ only in name and endpoint.
type ResumeDB struct {
	name   string
	cfg    ResumeDBConfig
	client *fetchjson.Client
}

// NewResumeDB creates a resume-database adapter for the given source tag.
func NewResumeDB(name string, cfg ResumeDBConfig) *ResumeDB {
	return &ResumeDB{name: name, cfg: cfg, client: fetchjson.NewClient()}
}

// Name implements Searcher.
func (a *ResumeDB) Name() string { return a.name }

// IsConfigured implements Searcher.
func (a *ResumeDB) IsConfigured() bool { return a.cfg.APIKey != "" && a.cfg.BaseURL != "" }

// Search implements Searcher.
func (a *ResumeDB) Search(ctx context.Context, job *types.Job, maxResults int) ([]types.RawCandidate, error) {
	if !a.IsConfigured() {
		return nil, &Error{Source: a.name, Message: "no API key or endpoint configured", Cause: ErrNotConfigured}
	}

	q := query.BuildResumeDBQuery(job, maxResults)

	var resp struct {
		Results []json.RawMessage `json:"results"`
	}
	err := WithRetry(ctx, DefaultRetryAttempts, LinearBackoff(defaultRetryStep), IsTransientError, func(ctx context.Context) error {
		resp.Results = nil
		searchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return a.client.PostJSON(searchCtx, a.cfg.BaseURL+"/v1/resumes/search", q, a.authHeaders(), &resp)
	})
	if err != nil {
		return nil, &Error{Source: a.name, Message: "resume search failed", Cause: err}
	}

	items := resp.Results
	if len(items) > maxResults {
		items = items[:maxResults]
	}
	return a.mapItems(items), nil
}

func (a *ResumeDB) authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + a.cfg.APIKey}
}

// resumeDBItem is the tagged variant for resume-database results. Location
// may arrive as a plain string or a structured object; flexLocation accepts
// both.
type resumeDBItem struct {
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Location        flexLocation `json:"location"`
	ExperienceYears *float64     `json:"experience_years"`
	Skills          []string     `json:"skills"`
	Summary         string       `json:"summary"`
	ResumeURL       string       `json:"resume_url"`

	WorkHistory []struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Dates       string `json:"dates"`
		Description string `json:"description"`
	} `json:"work_history"`

	Education []struct {
		Degree string `json:"degree"`
		School string `json:"school"`
		Year   string `json:"year"`
	} `json:"education"`

	Links struct {
		GitHub   string `json:"github"`
		LinkedIn string `json:"linkedin"`
		Website  string `json:"website"`
		Twitter  string `json:"twitter"`
	} `json:"links"`
}

// flexLocation accepts "Austin, TX" and {"city": "Austin", "region": "TX"}.
type flexLocation struct {
	Text  string
	Parts *types.LocationParts
}

func (l *flexLocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Text = s
		return nil
	}
	var parts types.LocationParts
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	l.Parts = &parts
	return nil
}

// mapItems converts result items into RawCandidates. Postings with no
// extractable applicant (no name and no resume link) are kept with an
// empty name so they count as found; validation rejects them downstream,
// so they are never saved.
func (a *ResumeDB) mapItems(items []json.RawMessage) []types.RawCandidate {
	candidates := make([]types.RawCandidate, 0, len(items))
	for _, raw := range items {
		var item resumeDBItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		var rawData map[string]any
		_ = json.Unmarshal(raw, &rawData)

		c := types.RawCandidate{
			Name:            strings.TrimSpace(item.Name),
			Email:           item.Email,
			Location:        item.Location.Text,
			LocationParts:   item.Location.Parts,
			ExperienceYears: item.ExperienceYears,
			Skills:          item.Skills,
			ResumeSummary:   fetchjson.StripHTML(item.Summary),
			ProfileURL:      item.ResumeURL,
			Source:          a.name,
			RawData:         rawData,
		}
		if c.Name == "" && item.ResumeURL != "" {
			c.Name = fmt.Sprintf("Applicant %s", shortID(item.ResumeURL))
		}
		c.Portfolio = types.PortfolioLinks{
			GitHub:   item.Links.GitHub,
			LinkedIn: item.Links.LinkedIn,
			Website:  item.Links.Website,
			Twitter:  item.Links.Twitter,
		}
		for _, w := range item.WorkHistory {
			c.WorkExperience = append(c.WorkExperience, types.WorkExperience{
				Role:        w.Title,
				Company:     w.Company,
				Duration:    w.Dates,
				Description: w.Description,
			})
		}
		for _, e := range item.Education {
			c.Education = append(c.Education, types.Education{
				Degree:      e.Degree,
				Institution: e.School,
				Year:        e.Year,
			})
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func shortID(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
