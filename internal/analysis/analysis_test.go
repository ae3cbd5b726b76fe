package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-sourcer/internal/types"
)

func TestParseAnalysisValid(t *testing.T) {
	text := `{"score": 78, "summary": "Solid backend candidate.", "strengths": ["Go"], "weaknesses": ["no cloud exposure"]}`

	analysis := ParseAnalysis(text)

	assert.Equal(t, 78, analysis.Score)
	assert.Equal(t, "Solid backend candidate.", analysis.Summary)
	assert.Equal(t, []string{"Go"}, analysis.Strengths)
	assert.Equal(t, []string{"no cloud exposure"}, analysis.Weaknesses)
}

func TestParseAnalysisFencedBlock(t *testing.T) {
	text := "```json\n{\"score\": 55, \"summary\": \"Partial overlap.\"}\n```"

	analysis := ParseAnalysis(text)
	assert.Equal(t, 55, analysis.Score)
	assert.Equal(t, "Partial overlap.", analysis.Summary)
}

func TestParseAnalysisFallbacks(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "the candidate is great"},
		{"missing summary", `{"score": 70}`},
		{"score out of range", `{"score": 140, "summary": "x"}`},
		{"score wrong type", `{"score": "high", "summary": "x"}`},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, types.FallbackAnalysis(), ParseAnalysis(tt.text))
		})
	}
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{`{"a": 1}`, `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	assert.Error(t, err)
}
