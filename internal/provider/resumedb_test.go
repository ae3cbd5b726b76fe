package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-sourcer/internal/types"
)

func newTestResumeDB(t *testing.T, name, payload string) *ResumeDB {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/resumes/search", r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return NewResumeDB(name, ResumeDBConfig{APIKey: "key-1", BaseURL: srv.URL})
}

func TestResumeDBSearchMapsItems(t *testing.T) {
	payload := `{"results":[
		{
			"name": "Priya Shah",
			"email": "priya@example.com",
			"location": {"city": "Toronto", "country": "Canada"},
			"experience_years": 4,
			"skills": ["Python", "Django"],
			"summary": "<p>Full-stack developer with <b>4 years</b> experience</p>",
			"resume_url": "https://resumes.test/priya-shah",
			"work_history": [{"title": "Developer", "company": "Acme", "dates": "2020 - 2024"}],
			"education": [{"degree": "BSc", "school": "U of T", "year": "2020"}],
			"links": {"github": "https://github.test/priya"}
		},
		{"title": "Job posting with no applicant"},
		{"name": "", "resume_url": "https://resumes.test/abc12345xyz"}
	]}`
	adapter := newTestResumeDB(t, types.SourceResumeDB, payload)

	candidates, err := adapter.Search(context.Background(), &types.Job{Title: "Backend Developer"}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 3, "posting without applicant still counts as found")

	priya := candidates[0]
	assert.Equal(t, "Priya Shah", priya.Name)
	assert.Equal(t, "priya@example.com", priya.Email)
	require.NotNil(t, priya.LocationParts)
	assert.Equal(t, "Toronto", priya.LocationParts.City)
	require.NotNil(t, priya.ExperienceYears)
	assert.Equal(t, 4.0, *priya.ExperienceYears)
	assert.Equal(t, "Full-stack developer with 4 years experience", priya.ResumeSummary, "HTML summary is stripped to text")
	assert.Equal(t, types.SourceResumeDB, priya.Source)
	assert.Equal(t, "https://github.test/priya", priya.Portfolio.GitHub)
	require.Len(t, priya.WorkExperience, 1)

	// Posting with no applicant keeps an empty name, so validation
	// rejects it downstream and it is never saved.
	assert.Empty(t, candidates[1].Name)

	// Nameless resume with a link gets a derived placeholder instead.
	assert.Equal(t, "Applicant abc12345", candidates[2].Name)
}

func TestResumeDBStringLocation(t *testing.T) {
	payload := `{"results":[{"name": "Lee", "location": "Berlin, Germany"}]}`
	adapter := newTestResumeDB(t, types.SourceJobBoard, payload)

	candidates, err := adapter.Search(context.Background(), &types.Job{Title: "X"}, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Berlin, Germany", candidates[0].Location)
	assert.Nil(t, candidates[0].LocationParts)
	assert.Equal(t, types.SourceJobBoard, candidates[0].Source)
}

func TestResumeDBNotConfigured(t *testing.T) {
	adapter := NewResumeDB(types.SourceResumeDB, ResumeDBConfig{})
	assert.False(t, adapter.IsConfigured())

	_, err := adapter.Search(context.Background(), &types.Job{Title: "X"}, 5)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestRegistryCoversAllSources(t *testing.T) {
	reg := Registry(Config{})
	for _, source := range types.AllSources {
		searcher, ok := reg[source]
		require.True(t, ok, "missing adapter for %s", source)
		assert.Equal(t, source, searcher.Name())
	}
}
