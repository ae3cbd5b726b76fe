package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-sourcer/internal/diagnosis"
	"github.com/jonathan/talent-sourcer/internal/types"
)

func TestPrintScrapeResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScrapeResults([]types.ScrapeResult{
		{Source: types.SourceGitHub, Success: true, CandidatesFound: 12, CandidatesSaved: 4},
		{Source: types.SourceLinkedIn, Success: false, Errors: []string{"all tokens exhausted"}},
	})

	out := buf.String()
	assert.Contains(t, out, "SCRAPE RESULTS")
	assert.Contains(t, out, "github")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "all tokens exhausted")
	assert.Contains(t, out, "Total: found=12 saved=4")
}

func TestPrintScrapeResultsEmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScrapeResults(nil)
	assert.Empty(t, buf.String())
}

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJob(&types.Job{
		Title:    "Backend Engineer",
		Location: "Austin, TX",
		Skills:   []string{"Go", "Postgres"},
	})

	out := buf.String()
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Austin, TX")
	assert.Contains(t, out, "Go, Postgres")
}

func TestPrintDiagnosis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDiagnosis(diagnosis.Result{
		Message:    "The job title is long.",
		Suggestion: "Backend Engineer",
		Action:     diagnosis.ActionEditTitle,
	})

	out := buf.String()
	assert.Contains(t, out, "ZERO-RESULT DIAGNOSIS")
	assert.Contains(t, out, "Suggestion: Backend Engineer")
	assert.Contains(t, out, "edit_title")
}
