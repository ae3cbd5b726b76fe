package processor

import (
	"math"
	"strings"

	"github.com/jonathan/talent-sourcer/internal/parsing"
	"github.com/jonathan/talent-sourcer/internal/types"
)

// Score weights (raw points out of 100).
const (
	skillsWeight       = 60.0
	experienceWeight   = 20.0
	locationWeight     = 10.0
	completenessWeight = 10.0
)

// MatchScore computes the base weighted match score for a normalized
// candidate, rounded and clamped to [0, 100].
func MatchScore(c *types.RawCandidate, job *types.Job) int {
	score := skillsWeight*skillsRatio(c, job) +
		experienceWeight*experienceFit(c, job) +
		locationWeight*locationFit(c, job) +
		completenessWeight*completeness(c)

	rounded := int(math.Round(score))
	if rounded > 100 {
		rounded = 100
	}
	if rounded < 0 {
		rounded = 0
	}
	return rounded
}

// skillsRatio is the fraction of the job's skills matched by any candidate
// skill, exact or substring in either direction. Defaults to 0.5 when the
// job lists no skills.
func skillsRatio(c *types.RawCandidate, job *types.Job) float64 {
	if len(job.Skills) == 0 {
		return 0.5
	}

	matched := 0
	for _, jobSkill := range job.Skills {
		js := strings.ToLower(strings.TrimSpace(jobSkill))
		if js == "" {
			continue
		}
		for _, candSkill := range c.Skills {
			cs := strings.ToLower(strings.TrimSpace(candSkill))
			if cs == "" {
				continue
			}
			if cs == js || strings.Contains(cs, js) || strings.Contains(js, cs) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(job.Skills))
}

// experienceFit rates how well the candidate's years fit the job's bracket:
// inside the bracket 1.0, within a year of it 0.7, entry-level overqualified
// 0.5, otherwise 0.3. Missing data on either side scores the neutral 0.5.
func experienceFit(c *types.RawCandidate, job *types.Job) float64 {
	if c.ExperienceYears == nil || job.ExperienceLevel == "" {
		return 0.5
	}
	bracket, ok := parsing.ParseExperienceLevel(job.ExperienceLevel)
	if !ok {
		return 0.5
	}

	years := *c.ExperienceYears
	if bracket.Contains(years) {
		return 1.0
	}
	nearMin := years >= bracket.Min-1
	nearMax := bracket.Unbounded() || years <= bracket.Max+1
	if nearMin && nearMax {
		return 0.7
	}
	if bracket.Tier == parsing.TierEntry && !bracket.Unbounded() && years > bracket.Max {
		return 0.5
	}
	return 0.3
}

// locationFit rates geographic compatibility, checked in descending match
// strength. Missing data on either side scores the neutral 0.5.
func locationFit(c *types.RawCandidate, job *types.Job) float64 {
	if c.Location == "" || job.Location == "" {
		return 0.5
	}

	candLoc := strings.ToLower(strings.TrimSpace(c.Location))
	jobLoc := strings.ToLower(strings.TrimSpace(job.Location))

	switch {
	case candLoc == jobLoc:
		return 1.0
	case parsing.IsRemoteKeyword(candLoc) || parsing.IsRemoteKeyword(jobLoc):
		return 0.9
	case strings.Contains(candLoc, jobLoc) || strings.Contains(jobLoc, candLoc):
		return 0.8
	case parsing.SameCity(c.Location, job.Location), parsing.SameState(c.Location, job.Location), parsing.SameCountry(c.Location, job.Location):
		return 0.6
	}
	return 0.3
}

// completeness is the fraction of profile factors present. Name, email,
// location, experience, skills, and resume summary count as full factors;
// work experience and portfolio links count as half-factors each.
func completeness(c *types.RawCandidate) float64 {
	present := 0.0
	if c.Name != "" {
		present++
	}
	if c.Email != "" {
		present++
	}
	if c.Location != "" {
		present++
	}
	if c.ExperienceYears != nil {
		present++
	}
	if len(c.Skills) > 0 {
		present++
	}
	if c.ResumeSummary != "" {
		present++
	}
	if len(c.WorkExperience) > 0 {
		present += 0.5
	}
	if !c.Portfolio.IsEmpty() {
		present += 0.5
	}
	return present / 7.0
}
