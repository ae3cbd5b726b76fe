package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-sourcer/internal/types"
)

func TestDiagnoseComplexTitle(t *testing.T) {
	job := &types.Job{
		Title:    "Senior Full-Stack Ninja Developer with 10+ years (React/Node/AWS/GCP/Docker)",
		Location: "Austin, TX",
	}

	result := Diagnose(job)

	assert.Equal(t, ActionEditTitle, result.Action)
	assert.Equal(t, "Full-Stack Ninja Developer", result.Suggestion)
}

func TestDiagnoseUncommonLocation(t *testing.T) {
	job := &types.Job{
		Title:    "Backend Engineer",
		Location: "Piggott, Arkansas",
	}

	result := Diagnose(job)

	assert.Equal(t, ActionEditLocation, result.Action)
	assert.Equal(t, "Piggott", result.Suggestion)
}

func TestDiagnoseCommonMetroNotFlagged(t *testing.T) {
	job := &types.Job{
		Title:    "Backend Engineer",
		Location: "Austin, TX",
		Skills:   []string{"Go", "Postgres", "Kafka", "Kubernetes"},
	}

	result := Diagnose(job)

	assert.Equal(t, ActionTrimSkills, result.Action)
	assert.Equal(t, []string{"Go", "Postgres"}, result.Suggestions)
}

func TestDiagnoseRemoteSkipsLocation(t *testing.T) {
	job := &types.Job{
		Title:    "Backend Engineer",
		Location: "Piggott, Arkansas",
		Remote:   true,
		Skills:   []string{"Go"},
	}

	result := Diagnose(job)
	assert.NotEqual(t, ActionEditLocation, result.Action)
}

func TestDiagnoseSlangTitle(t *testing.T) {
	job := &types.Job{Title: "Code Ninja", Remote: true}

	result := Diagnose(job)

	assert.Equal(t, ActionReplaceSlang, result.Action)
	assert.Equal(t, "Code Engineer", result.Suggestion)
}

func TestDiagnoseOrdinaryTitleNotSlang(t *testing.T) {
	job := &types.Job{Title: "Software Engineer", Remote: true}

	result := Diagnose(job)
	assert.Equal(t, ActionBroadenSearch, result.Action)
	assert.Len(t, result.Suggestions, 2)
}

func TestDiagnoseFallback(t *testing.T) {
	job := &types.Job{Title: "Data Analyst", Location: "Berlin", Skills: []string{"SQL"}}

	result := Diagnose(job)
	assert.Equal(t, ActionBroadenSearch, result.Action)
	assert.NotEmpty(t, result.Message)
}

func TestSimplifyTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Senior Software Engineer", "Software Engineer"},
		{"Lead Developer (Platform Team)", "Developer"},
		{"Engineer with 5+ years", "Engineer"},
		{"Mid-Level Analyst", "Analyst"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SimplifyTitle(tt.input), tt.input)
	}
}
