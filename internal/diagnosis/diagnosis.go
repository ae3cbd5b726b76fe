// Package diagnosis explains why a job search returned zero candidates and
// suggests a query relaxation. It is a pure function over the Job record.
package diagnosis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// Action tags returned with a diagnosis, in order of preference.
const (
	ActionEditTitle      = "edit_title"
	ActionEditLocation   = "edit_location"
	ActionTrimSkills     = "trim_skills"
	ActionReplaceSlang   = "replace_slang"
	ActionBroadenSearch  = "broaden_search"
	maxReasonableTitle   = 40
	maxTitleWords        = 5
	maxReasonableSkills  = 3
	suggestedSkillsCount = 2
)

// Result is a zero-candidate diagnosis: a human-readable message, an
// optional suggestion, and an action tag the caller can act on.
type Result struct {
	Message     string   `json:"message"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Action      string   `json:"action"`
}

// commonMetros are location names unlikely to be the reason for an empty
// result set.
var commonMetros = []string{
	"new york", "san francisco", "los angeles", "chicago", "austin",
	"seattle", "boston", "denver", "atlanta", "miami", "dallas", "houston",
	"washington", "london", "berlin", "paris", "amsterdam", "dublin",
	"toronto", "vancouver", "sydney", "singapore", "bangalore", "remote",
}

// slangTitles maps informal title words to searchable equivalents.
var slangTitles = map[string]string{
	"ninja":     "Engineer",
	"rockstar":  "Engineer",
	"guru":      "Specialist",
	"wizard":    "Engineer",
	"unicorn":   "Generalist",
	"superstar": "Specialist",
	"jedi":      "Engineer",
	"hacker":    "Engineer",
}

// commonTitles is the vocabulary of ordinary role words; a title made of
// these is not flagged for slang.
var commonTitles = []string{
	"engineer", "developer", "designer", "manager", "analyst", "architect",
	"scientist", "consultant", "specialist", "administrator", "lead",
	"director", "coordinator", "recruiter", "marketer", "writer",
}

var (
	seniorityWords = regexp.MustCompile(`(?i)\b(senior|junior|lead|staff|principal|entry[- ]level|mid[- ]level)\b`)
	parenthetical  = regexp.MustCompile(`\([^)]*\)`)
	yearCount      = regexp.MustCompile(`(?i)\b(?:with\s+)?\d+\+?\s*years?\b`)
	multiSpace     = regexp.MustCompile(`\s+`)
)

// Diagnose inspects a job that produced zero candidates and returns the
// most likely fix, checking causes in a fixed preference order.
func Diagnose(job *types.Job) Result {
	if r, ok := diagnoseTitleComplexity(job); ok {
		return r
	}
	if r, ok := diagnoseLocation(job); ok {
		return r
	}
	if r, ok := diagnoseSkillCount(job); ok {
		return r
	}
	if r, ok := diagnoseSlangTitle(job); ok {
		return r
	}

	return Result{
		Message: "No candidates matched the current search. The combination of filters may be too narrow.",
		Suggestions: []string{
			"Remove the location filter or mark the job as remote",
			fmt.Sprintf("Broaden the title %q to a more common variant", job.Title),
		},
		Action: ActionBroadenSearch,
	}
}

func diagnoseTitleComplexity(job *types.Job) (Result, bool) {
	if len(job.Title) <= maxReasonableTitle && len(strings.Fields(job.Title)) <= maxTitleWords {
		return Result{}, false
	}
	return Result{
		Message:    fmt.Sprintf("The job title %q is long or complex, which sharply narrows provider searches.", job.Title),
		Suggestion: SimplifyTitle(job.Title),
		Action:     ActionEditTitle,
	}, true
}

func diagnoseLocation(job *types.Job) (Result, bool) {
	if job.Remote || job.Location == "" {
		return Result{}, false
	}
	lower := strings.ToLower(job.Location)
	for _, metro := range commonMetros {
		if strings.Contains(lower, metro) {
			return Result{}, false
		}
	}
	first := strings.TrimSpace(strings.Split(job.Location, ",")[0])
	return Result{
		Message:    fmt.Sprintf("The location %q is uncommon in provider indexes and may over-filter results.", job.Location),
		Suggestion: first,
		Action:     ActionEditLocation,
	}, true
}

func diagnoseSkillCount(job *types.Job) (Result, bool) {
	if len(job.Skills) <= maxReasonableSkills {
		return Result{}, false
	}
	top := job.Skills
	if len(top) > suggestedSkillsCount {
		top = top[:suggestedSkillsCount]
	}
	return Result{
		Message:     fmt.Sprintf("Requiring %d skills simultaneously leaves few matching profiles.", len(job.Skills)),
		Suggestions: top,
		Action:      ActionTrimSkills,
	}, true
}

func diagnoseSlangTitle(job *types.Job) (Result, bool) {
	lower := strings.ToLower(job.Title)
	for _, common := range commonTitles {
		if strings.Contains(lower, common) {
			return Result{}, false
		}
	}
	for slang, proper := range slangTitles {
		if strings.Contains(lower, slang) {
			suggestion := replaceWordInsensitive(job.Title, slang, proper)
			return Result{
				Message:    fmt.Sprintf("The title %q uses informal wording that candidates rarely put on their profiles.", job.Title),
				Suggestion: suggestion,
				Action:     ActionReplaceSlang,
			}, true
		}
	}
	return Result{}, false
}

// SimplifyTitle strips seniority words, parentheticals, and year counts
// from a title, collapsing the leftover whitespace.
func SimplifyTitle(title string) string {
	out := parenthetical.ReplaceAllString(title, " ")
	out = seniorityWords.ReplaceAllString(out, " ")
	out = yearCount.ReplaceAllString(out, " ")
	out = multiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(out), "-–,"))
}

func replaceWordInsensitive(s, word, replacement string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return re.ReplaceAllString(s, replacement)
}
