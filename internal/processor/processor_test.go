package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-sourcer/internal/types"
)

func yearsPtr(v float64) *float64 { return &v }

func TestProcessScoringExample(t *testing.T) {
	job := &types.Job{
		Title:           "Frontend Engineer",
		Skills:          []string{"React", "TypeScript"},
		ExperienceLevel: "Mid Level (2-5 years)",
		Location:        "Austin, TX",
		Remote:          false,
		Status:          types.JobStatusActive,
	}
	candidate := types.RawCandidate{
		Name:            "Alex Rivera",
		Skills:          []string{"React", "Node"},
		ExperienceYears: yearsPtr(3),
		Location:        "Austin, TX",
		Source:          types.SourceLinkedIn,
	}

	result := Process(candidate, job)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.ValidationErrors)
	// skills 1/2 -> 30, experience exact fit -> 20, location exact -> 10,
	// plus partial completeness.
	assert.GreaterOrEqual(t, result.MatchScore, 60)
	assert.LessOrEqual(t, result.MatchScore, 75)
}

func TestProcessEntryOverqualified(t *testing.T) {
	job := &types.Job{
		Title:           "Junior Developer",
		ExperienceLevel: "Entry Level (0-2 years)",
		Status:          types.JobStatusActive,
	}
	candidate := types.RawCandidate{Name: "Sam Old", ExperienceYears: yearsPtr(6)}

	result := Process(candidate, job)

	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.ValidationErrors)
	assert.Contains(t, strings.ToLower(result.ValidationErrors[0]), "overqualified")
}

func TestProcessLocationMismatchInvalidRegardlessOfScore(t *testing.T) {
	job := &types.Job{
		Title:    "Engineer",
		Skills:   []string{"Go"},
		Location: "Austin, TX",
		Remote:   false,
		Status:   types.JobStatusActive,
	}
	candidate := types.RawCandidate{
		Name:     "Lena Berg",
		Skills:   []string{"Go"},
		Location: "Berlin, Germany",
	}

	result := Process(candidate, job)

	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.ValidationErrors)
	assert.Contains(t, result.ValidationErrors[0], "location mismatch")
}

func TestProcessRemoteJobSkipsLocationCheck(t *testing.T) {
	job := &types.Job{Title: "Engineer", Location: "Austin, TX", Remote: true, Status: types.JobStatusActive}
	candidate := types.RawCandidate{Name: "Lena Berg", Location: "Berlin, Germany"}

	result := Process(candidate, job)
	assert.True(t, result.IsValid)
}

func TestProcessEmptyNameInvalid(t *testing.T) {
	job := &types.Job{Title: "Engineer", Status: types.JobStatusActive}
	result := Process(types.RawCandidate{Name: "   "}, job)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.ValidationErrors[0], "name")
}

func TestProcessScoreAlwaysInRange(t *testing.T) {
	job := &types.Job{
		Title:           "Engineer",
		Skills:          []string{"Go", "Kubernetes"},
		ExperienceLevel: "Senior Level (5+ years)",
		Location:        "Austin, TX",
	}

	candidates := []types.RawCandidate{
		{},
		{Name: "Max Fit", Email: "max@example.com", Skills: []string{"Go", "Kubernetes"},
			ExperienceYears: yearsPtr(8), Location: "Austin, TX",
			ResumeSummary:  "open to work, actively looking for a new role",
			OpenToWork:     true,
			WorkExperience: []types.WorkExperience{{Role: "Contract Engineer", Duration: "2024 - 2025"}},
			Portfolio:      types.PortfolioLinks{GitHub: "https://github.test/max"},
			Source:         types.SourceGitHub},
		{Name: "No Fit", Skills: []string{"Cooking"}, ExperienceYears: yearsPtr(0.5), Location: "Oslo, Norway", Hiring: true},
	}

	for _, c := range candidates {
		result := Process(c, job)
		assert.GreaterOrEqual(t, result.MatchScore, 0)
		assert.LessOrEqual(t, result.MatchScore, 100)
	}
}

func TestProcessSynthesizesSummary(t *testing.T) {
	job := &types.Job{Title: "Engineer", Status: types.JobStatusActive}
	candidate := types.RawCandidate{
		Name:            "Ana Cruz",
		Skills:          []string{"Go", "SQL", "Docker", "AWS"},
		ExperienceYears: yearsPtr(5),
		Location:        "Lisbon, Portugal",
	}

	result := Process(candidate, job)
	assert.Contains(t, result.ResumeSummary, "5 years")
	assert.Contains(t, result.ResumeSummary, "Go, SQL, Docker")
	assert.NotContains(t, result.ResumeSummary, "AWS", "summary lists only the top three skills")
	assert.Contains(t, result.ResumeSummary, "Lisbon, Portugal")
}

func TestNormalize(t *testing.T) {
	candidate := types.RawCandidate{
		Name:          "  Joan Vu  ",
		Email:         " Joan.Vu@Example.COM ",
		Skills:        []string{"react", "React", "REACT", "node.js", "go"},
		LocationParts: &types.LocationParts{City: "Toronto", Country: "Canada"},
	}

	n := Normalize(candidate)
	assert.Equal(t, "Joan Vu", n.Name)
	assert.Equal(t, "joan.vu@example.com", n.Email)
	assert.Equal(t, "Toronto, Canada", n.Location)
	assert.Equal(t, []string{"React", "Node.js", "Go"}, n.Skills)
}

func TestNormalizeDiscardsBadEmail(t *testing.T) {
	n := Normalize(types.RawCandidate{Email: "not-an-email"})
	assert.Empty(t, n.Email)
}

func TestNormalizeCoercesRegionWhenNoCountry(t *testing.T) {
	n := Normalize(types.RawCandidate{LocationParts: &types.LocationParts{City: "Austin", Region: "TX"}})
	assert.Equal(t, "Austin, TX", n.Location)
}

func TestValidateExtractsSkillsFromSummary(t *testing.T) {
	job := &types.Job{Title: "Engineer", Status: types.JobStatusActive}
	candidate := types.RawCandidate{
		Name:          "Omar Haddad",
		ResumeSummary: "Seasoned engineer working with Python, Django and PostgreSQL.",
	}

	result := Process(candidate, job)
	assert.ElementsMatch(t, []string{"Python", "Django", "PostgreSQL"}, result.Skills)
}
