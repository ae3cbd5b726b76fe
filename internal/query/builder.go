// Package query translates a hiring requisition into provider-specific
// search queries. Builders are pure functions over the Job record.
package query

import (
	"strings"

	"github.com/jonathan/talent-sourcer/internal/parsing"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// maxSkillLen and maxSkillWords reject accidental full sentences stored in a
// job's skill list.
const (
	maxSkillLen   = 50
	maxSkillWords = 5
)

// ProfileSearchQuery is the query shape for the profile-search actor.
type ProfileSearchQuery struct {
	JobTitle        string   `json:"job_title"`
	Skills          []string `json:"skills,omitempty"`
	Location        string   `json:"location,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	MaxResults      int      `json:"max_results"`
}

// ResumeDBQuery is the query shape for resume-database providers.
type ResumeDBQuery struct {
	JobTitle   string   `json:"job_title"`
	Skills     []string `json:"skills,omitempty"`
	Location   string   `json:"location,omitempty"`
	MaxResults int      `json:"max_results"`
}

// DeveloperQuery is the query shape for the developer-profile API.
type DeveloperQuery struct {
	Language   string   `json:"language"`
	Keywords   []string `json:"keywords,omitempty"`
	Location   string   `json:"location,omitempty"`
	MaxResults int      `json:"max_results"`
}

// BuildProfileSearchQuery builds the profile-search actor query for a job.
// Remote jobs carry no location so they are never location-filtered.
func BuildProfileSearchQuery(job *types.Job, maxResults int) ProfileSearchQuery {
	q := ProfileSearchQuery{
		JobTitle:        job.Title,
		Skills:          JobSkills(job),
		ExperienceLevel: job.ExperienceLevel,
		MaxResults:      maxResults,
	}
	if !job.Remote {
		q.Location = job.Location
	}
	return q
}

// BuildResumeDBQuery builds a resume-database query for a job.
func BuildResumeDBQuery(job *types.Job, maxResults int) ResumeDBQuery {
	q := ResumeDBQuery{
		JobTitle:   job.Title,
		Skills:     JobSkills(job),
		MaxResults: maxResults,
	}
	if !job.Remote {
		q.Location = job.Location
	}
	return q
}

// BuildDeveloperQuery builds the developer-profile query: a primary language
// plus a capped keyword list.
func BuildDeveloperQuery(job *types.Job, maxResults int) DeveloperQuery {
	q := DeveloperQuery{
		Language:   PrimaryLanguage(JobSkills(job)),
		Keywords:   ExtractKeywords(job),
		MaxResults: maxResults,
	}
	if !job.Remote {
		q.Location = job.Location
	}
	return q
}

// JobSkills returns the job's usable skill list: verbatim skills that pass
// the sanity filter, falling back to extraction from the description when
// the filtered list is empty.
func JobSkills(job *types.Job) []string {
	filtered := FilterSkills(job.Skills)
	if len(filtered) > 0 {
		return filtered
	}
	return ExtractSkillsFromText(job.Description)
}

// FilterSkills drops skill entries that look like sentences rather than
// skill names: longer than 50 characters, containing a period, or more than
// five words.
func FilterSkills(skills []string) []string {
	var out []string
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || len(s) > maxSkillLen {
			continue
		}
		if strings.Contains(s, ".") && !isDottedTechName(s) {
			continue
		}
		if len(strings.Fields(s)) > maxSkillWords {
			continue
		}
		out = append(out, s)
	}
	return out
}

// isDottedTechName allows the handful of skill names that legitimately
// contain a dot.
func isDottedTechName(s string) bool {
	switch strings.ToLower(s) {
	case "node.js", "vue.js", "react.js", "next.js", "nest.js", ".net", "asp.net", "d3.js", "three.js":
		return true
	}
	return false
}

// ExtractSkillsFromText scans free text for entries of the closed technical
// vocabulary. Arbitrary substrings of the text are never used as skills.
func ExtractSkillsFromText(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range technicalVocabulary {
		if containsWord(lower, kw) {
			out = append(out, canonicalSkillName(kw))
		}
	}
	return out
}

// containsWord reports whether text contains kw bounded by non-letter
// characters, so "java" does not match inside "javascript".
func containsWord(text, kw string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '+' || c == '#'
}

// SeniorityKeyword derives "senior"/"mid"/"junior" from the requisition's
// experience text for use as a search keyword. Returns "" when no tier is
// recognized.
func SeniorityKeyword(job *types.Job) string {
	switch parsing.TierForLevel(job.ExperienceLevel) {
	case parsing.TierSenior:
		return "senior"
	case parsing.TierMid:
		return "mid"
	case parsing.TierEntry:
		return "junior"
	}
	return ""
}
