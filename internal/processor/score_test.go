package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-sourcer/internal/types"
)

func TestSkillsRatio(t *testing.T) {
	tests := []struct {
		name      string
		jobSkills []string
		candidate []string
		expected  float64
	}{
		{"exact overlap", []string{"React", "TypeScript"}, []string{"react", "typescript"}, 1.0},
		{"half overlap", []string{"React", "TypeScript"}, []string{"React", "Node"}, 0.5},
		{"substring matches", []string{"React"}, []string{"React Native"}, 1.0},
		{"no overlap", []string{"Go"}, []string{"Painting"}, 0.0},
		{"no job skills defaults", nil, []string{"Go"}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &types.RawCandidate{Skills: tt.candidate}
			job := &types.Job{Skills: tt.jobSkills}
			assert.InDelta(t, tt.expected, skillsRatio(c, job), 0.001)
		})
	}
}

func TestExperienceFit(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		years    *float64
		expected float64
	}{
		{"exact bracket fit", "Mid Level (2-5 years)", yearsPtr(3), 1.0},
		{"near bracket", "Mid Level (2-5 years)", yearsPtr(6), 0.7},
		{"out of bracket", "Mid Level (2-5 years)", yearsPtr(12), 0.3},
		{"entry overqualified", "Entry Level (0-2 years)", yearsPtr(7), 0.5},
		{"senior no upper bound", "Senior Level (5+ years)", yearsPtr(25), 1.0},
		{"missing candidate data", "Mid Level (2-5 years)", nil, 0.5},
		{"missing job data", "", yearsPtr(3), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &types.RawCandidate{ExperienceYears: tt.years}
			job := &types.Job{ExperienceLevel: tt.level}
			assert.InDelta(t, tt.expected, experienceFit(c, job), 0.001)
		})
	}
}

func TestLocationFit(t *testing.T) {
	tests := []struct {
		name     string
		cand     string
		job      string
		expected float64
	}{
		{"exact match", "Austin, TX", "Austin, TX", 1.0},
		{"remote keyword", "Remote", "Austin, TX", 0.9},
		{"substring", "Austin", "Austin, TX", 0.8},
		{"same state", "Dallas, TX", "Austin, TX", 0.6},
		{"same country", "Munich, Germany", "Berlin, Germany", 0.6},
		{"no relation", "Oslo, Norway", "Austin, TX", 0.3},
		{"missing candidate location", "", "Austin, TX", 0.5},
		{"missing job location", "Austin, TX", "", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &types.RawCandidate{Location: tt.cand}
			job := &types.Job{Location: tt.job}
			assert.InDelta(t, tt.expected, locationFit(c, job), 0.001)
		})
	}
}

func TestCompletenessFullProfile(t *testing.T) {
	c := &types.RawCandidate{
		Name:            "Full Profile",
		Email:           "full@example.com",
		Location:        "Austin, TX",
		ExperienceYears: yearsPtr(4),
		Skills:          []string{"Go"},
		ResumeSummary:   "summary",
		WorkExperience:  []types.WorkExperience{{Role: "Engineer"}},
		Portfolio:       types.PortfolioLinks{GitHub: "https://github.test/full"},
	}
	assert.InDelta(t, 1.0, completeness(c), 0.001)

	empty := &types.RawCandidate{}
	assert.InDelta(t, 0.0, completeness(empty), 0.001)
}
