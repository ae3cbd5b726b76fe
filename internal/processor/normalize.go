package processor

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// Normalize returns a cleaned copy of the candidate: trimmed name, verified
// email, coerced location string, and a deduplicated, title-cased skill
// list. The input is not mutated.
func Normalize(candidate types.RawCandidate) types.RawCandidate {
	c := candidate

	c.Name = strings.TrimSpace(c.Name)
	c.Email = normalizeEmail(c.Email)
	c.Location = coerceLocation(c.Location, c.LocationParts)
	c.Skills = NormalizeSkills(c.Skills)
	c.ResumeSummary = strings.TrimSpace(c.ResumeSummary)

	return c
}

// normalizeEmail trims and lowercases an email, discarding anything without
// an "@".
func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

// coerceLocation flattens a structured location into a "city, country" or
// "city, region" string. An explicit location string wins.
func coerceLocation(location string, parts *types.LocationParts) string {
	if location = strings.TrimSpace(location); location != "" {
		return location
	}
	if parts == nil {
		return ""
	}

	var segments []string
	if parts.City != "" {
		segments = append(segments, parts.City)
	}
	if parts.Country != "" {
		segments = append(segments, parts.Country)
	} else if parts.Region != "" {
		segments = append(segments, parts.Region)
	}
	return strings.Join(segments, ", ")
}

// NormalizeSkills deduplicates skills case-insensitively and title-cases
// each entry. Skills that already carry interior capitalization (JavaScript,
// PostgreSQL, gRPC) are kept as written.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, titleCaseSkill(s))
	}
	return out
}

func titleCaseSkill(s string) string {
	if s != strings.ToLower(s) {
		return s // mixed case supplied by the provider, trust it
	}
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SynthesizeSummary builds a short resume summary from experience years,
// the top three skills, and location, for candidates that arrived without
// one.
func SynthesizeSummary(c *types.RawCandidate) string {
	var parts []string

	if c.ExperienceYears != nil {
		parts = append(parts, fmt.Sprintf("Professional with %.0f years of experience.", *c.ExperienceYears))
	} else {
		parts = append(parts, "Professional candidate.")
	}

	if len(c.Skills) > 0 {
		top := c.Skills
		if len(top) > 3 {
			top = top[:3]
		}
		parts = append(parts, fmt.Sprintf("Skilled in %s.", strings.Join(top, ", ")))
	}

	if c.Location != "" {
		parts = append(parts, fmt.Sprintf("Based in %s.", c.Location))
	}

	return strings.Join(parts, " ")
}
