package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-sourcer/internal/types"
)

func TestFilterSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "keeps plain skills",
			input:    []string{"React", "TypeScript", "PostgreSQL"},
			expected: []string{"React", "TypeScript", "PostgreSQL"},
		},
		{
			name:     "drops sentences with periods",
			input:    []string{"React", "Must have strong communication skills."},
			expected: []string{"React"},
		},
		{
			name:     "drops entries over five words",
			input:    []string{"Go", "experience building large scale distributed systems daily"},
			expected: []string{"Go"},
		},
		{
			name:     "drops entries over fifty characters",
			input:    []string{"Go", "a skill name that is far too long to be a real skill entry"},
			expected: []string{"Go"},
		},
		{
			name:     "keeps dotted tech names",
			input:    []string{"Node.js", "Vue.js"},
			expected: []string{"Node.js", "Vue.js"},
		},
		{
			name:     "drops blanks",
			input:    []string{"", "  ", "Go"},
			expected: []string{"Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterSkills(tt.input))
		})
	}
}

func TestExtractSkillsFromText(t *testing.T) {
	desc := "We need someone comfortable with React and TypeScript, deploying to AWS with Docker. Java is a plus."
	skills := ExtractSkillsFromText(desc)
	assert.Contains(t, skills, "React")
	assert.Contains(t, skills, "TypeScript")
	assert.Contains(t, skills, "AWS")
	assert.Contains(t, skills, "Docker")
	assert.Contains(t, skills, "Java")
	// "java" must not be matched inside "javascript"
	assert.NotContains(t, ExtractSkillsFromText("pure javascript role"), "Java")
}

func TestJobSkillsFallsBackToDescription(t *testing.T) {
	job := &types.Job{
		Skills:      []string{"Must be a great communicator and a team player overall."},
		Description: "Looking for Python and Django experience with PostgreSQL.",
	}
	skills := JobSkills(job)
	assert.ElementsMatch(t, []string{"Python", "Django", "PostgreSQL"}, skills)
}

func TestBuildProfileSearchQueryOmitsLocationForRemote(t *testing.T) {
	job := &types.Job{Title: "Backend Engineer", Location: "Austin, TX", Remote: true, Skills: []string{"Go"}}
	q := BuildProfileSearchQuery(job, 25)
	assert.Empty(t, q.Location)
	assert.Equal(t, 25, q.MaxResults)

	job.Remote = false
	q = BuildProfileSearchQuery(job, 25)
	assert.Equal(t, "Austin, TX", q.Location)
}

func TestPrimaryLanguage(t *testing.T) {
	tests := []struct {
		name     string
		skills   []string
		expected string
	}{
		{"first mapped skill wins", []string{"React", "Python"}, "javascript"},
		{"skips unmapped skills", []string{"Leadership", "Go"}, "go"},
		{"case insensitive", []string{"TYPESCRIPT"}, "typescript"},
		{"defaults to javascript", []string{"Communication"}, "javascript"},
		{"empty list defaults", nil, "javascript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrimaryLanguage(tt.skills))
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	job := &types.Job{
		Title:           "Senior Backend Engineer",
		ExperienceLevel: "Senior Level (5+ years)",
		Description:     "You will build services in Go with Kafka and PostgreSQL on Kubernetes and Docker.",
	}
	kws := ExtractKeywords(job)

	assert.LessOrEqual(t, len(kws), 5)
	// Title words come first.
	assert.Equal(t, "backend", kws[0])
	assert.Contains(t, kws, "senior")
	// No duplicates.
	seen := make(map[string]bool)
	for _, kw := range kws {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}
}

func TestExtractKeywordsCapsAtFive(t *testing.T) {
	job := &types.Job{
		Title:       "Distributed Systems Platform Infrastructure Reliability Engineer",
		Description: "Python Django Flask PostgreSQL Redis Docker Kubernetes Terraform",
	}
	assert.Len(t, ExtractKeywords(job), 5)
}
