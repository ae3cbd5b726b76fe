// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-sourcer/internal/diagnosis"
	"github.com/jonathan/talent-sourcer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs a human-readable summary of the job being scraped.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	if job.Department != "" {
		sb.WriteString(fmt.Sprintf("Dept:     %s\n", job.Department))
	}
	if job.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s (remote: %t)\n", job.Location, job.Remote))
	} else if job.Remote {
		sb.WriteString("Location: remote\n")
	}
	if job.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Level:    %s\n", job.ExperienceLevel))
	}
	if len(job.Skills) > 0 {
		count := min(len(job.Skills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Skills:   %s", strings.Join(job.Skills[:count], ", ")))
		if len(job.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d more)", len(job.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSourcePlan outputs the weighted source recommendation.
func (p *Printer) PrintSourcePlan(plan []types.SourceRecommendation) {
	if len(plan) == 0 {
		return
	}

	var sb strings.Builder
	for _, rec := range plan {
		sb.WriteString(fmt.Sprintf("%-10s weight=%d  quota=%d\n", rec.Source, rec.Weight, rec.Quota))
	}

	p.printBox("SOURCE PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScrapeResults outputs the per-source outcome of a scrape run.
func (p *Printer) PrintScrapeResults(results []types.ScrapeResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	totalFound, totalSaved := 0, 0
	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "FAILED"
		}
		sb.WriteString(fmt.Sprintf("%-10s %-7s found=%-3d saved=%d\n",
			r.Source, status, r.CandidatesFound, r.CandidatesSaved))
		for _, e := range r.Errors {
			sb.WriteString(fmt.Sprintf("  ! %s\n", e))
		}
		totalFound += r.CandidatesFound
		totalSaved += r.CandidatesSaved
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total: found=%d saved=%d", totalFound, totalSaved))

	p.printBox("SCRAPE RESULTS", sb.String())
}

// PrintDiagnosis outputs a zero-result diagnosis.
func (p *Printer) PrintDiagnosis(result diagnosis.Result) {
	var sb strings.Builder
	sb.WriteString(result.Message)
	sb.WriteString("\n")
	if result.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", result.Suggestion))
	}
	for _, s := range result.Suggestions {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}
	sb.WriteString(fmt.Sprintf("\nAction: %s", result.Action))

	p.printBox("ZERO-RESULT DIAGNOSIS", sb.String())
}
