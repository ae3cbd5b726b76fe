// Package analyzer classifies a hiring requisition as technical or
// non-technical and recommends which provider sources to query, with a
// candidate quota per source.
package analyzer

import (
	"sort"
	"strings"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// technicalDepartments force a technical classification regardless of the
// keyword counts.
var technicalDepartments = []string{"engineering", "it", "tech", "development", "product"}

// technicalKeywords match technical titles and skills.
var technicalKeywords = []string{
	"engineer", "developer", "programmer", "architect", "devops", "sre",
	"data scientist", "machine learning", "software", "backend", "frontend",
	"full-stack", "full stack", "mobile", "ios", "android", "cloud",
	"security", "qa", "database", "javascript", "python", "java", "golang",
	"react", "kubernetes", "api", "infrastructure",
}

// nonTechnicalKeywords match non-technical roles.
var nonTechnicalKeywords = []string{
	"sales", "marketing", "account", "recruiter", "human resources", "hr",
	"finance", "accounting", "legal", "counsel", "customer success",
	"support", "operations", "office manager", "executive assistant",
	"business development", "copywriter", "content", "designer", "community",
}

// technicalDominanceRatio: technical wins when technical keyword matches are
// at least 1.5x the non-technical matches.
const technicalDominanceRatio = 1.5

// IsTechnical classifies a job as technical. Department names from the
// technical list short-circuit the keyword comparison.
func IsTechnical(job *types.Job) bool {
	dept := strings.ToLower(strings.TrimSpace(job.Department))
	for _, d := range technicalDepartments {
		if dept == d {
			return true
		}
	}

	haystack := strings.ToLower(job.Title + " " + strings.Join(job.Skills, " ") + " " + job.Description)
	tech := countMatches(haystack, technicalKeywords)
	nonTech := countMatches(haystack, nonTechnicalKeywords)

	// No technical evidence means non-technical, even when the non-technical
	// count is also zero. Sourcing an unclassifiable job from a developer
	// platform wastes its quota.
	if tech == 0 {
		return false
	}
	return float64(tech) >= technicalDominanceRatio*float64(nonTech)
}

func countMatches(haystack string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			n++
		}
	}
	return n
}

// sourceWeights in priority order. The developer source is excluded entirely
// for non-technical jobs.
var (
	technicalWeights = []types.SourceRecommendation{
		{Source: types.SourceLinkedIn, Weight: 6},
		{Source: types.SourceGitHub, Weight: 3},
		{Source: types.SourceResumeDB, Weight: 1},
		{Source: types.SourceJobBoard, Weight: 1},
	}
	nonTechnicalWeights = []types.SourceRecommendation{
		{Source: types.SourceLinkedIn, Weight: 7},
		{Source: types.SourceResumeDB, Weight: 3},
		{Source: types.SourceJobBoard, Weight: 3},
	}
)

// RecommendSources produces the weighted source plan for a job. Quota per
// source is floor(maxCandidates * weight / totalWeight); the rounding
// remainder goes to the highest-priority source (profile search). The
// returned slice is sorted by weight descending.
func RecommendSources(job *types.Job, maxCandidates int) []types.SourceRecommendation {
	weights := nonTechnicalWeights
	if IsTechnical(job) {
		weights = technicalWeights
	}

	total := 0
	for _, w := range weights {
		total += w.Weight
	}

	recs := make([]types.SourceRecommendation, len(weights))
	assigned := 0
	for i, w := range weights {
		quota := maxCandidates * w.Weight / total
		recs[i] = types.SourceRecommendation{Source: w.Source, Weight: w.Weight, Quota: quota}
		assigned += quota
	}

	// Rounding remainder goes to the top source.
	if remainder := maxCandidates - assigned; remainder > 0 {
		recs[0].Quota += remainder
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Weight > recs[j].Weight })
	return recs
}
