package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// Experience tiers derived from a requisition's experience-level text.
const (
	TierEntry  = "entry"
	TierMid    = "mid"
	TierSenior = "senior"
)

// Bracket is a parsed experience range in years. Max < 0 means unbounded
// (e.g. "5+ years").
type Bracket struct {
	Tier string
	Min  float64
	Max  float64
}

// Unbounded reports whether the bracket has no upper limit.
func (b Bracket) Unbounded() bool {
	return b.Max < 0
}

// Contains reports whether years falls inside the bracket.
func (b Bracket) Contains(years float64) bool {
	if years < b.Min {
		return false
	}
	return b.Unbounded() || years <= b.Max
}

var (
	rangeRe  = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)\s*\+?\s*years?`)
	plusRe   = regexp.MustCompile(`(\d+)\s*\+\s*years?`)
	singleRe = regexp.MustCompile(`(\d+)\s*years?`)
)

// defaultBrackets are used when the experience text names a tier but carries
// no parseable year range.
var defaultBrackets = map[string]Bracket{
	TierEntry:  {Tier: TierEntry, Min: 0, Max: 2},
	TierMid:    {Tier: TierMid, Min: 2, Max: 5},
	TierSenior: {Tier: TierSenior, Min: 5, Max: -1},
}

// ParseExperienceLevel turns a free-text experience-level string such as
// "Mid Level (2-5 years)" or "Senior Level (5+ years)" into a Bracket.
// Returns false when neither a tier keyword nor a year range is found.
func ParseExperienceLevel(level string) (Bracket, bool) {
	lower := strings.ToLower(level)
	tier := TierForLevel(level)

	if m := rangeRe.FindStringSubmatch(lower); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		max, _ := strconv.ParseFloat(m[2], 64)
		return Bracket{Tier: tier, Min: min, Max: max}, true
	}
	if m := plusRe.FindStringSubmatch(lower); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		return Bracket{Tier: tier, Min: min, Max: -1}, true
	}
	if m := singleRe.FindStringSubmatch(lower); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		return Bracket{Tier: tier, Min: min, Max: min + 2}, true
	}
	if b, ok := defaultBrackets[tier]; ok {
		return b, true
	}
	return Bracket{}, false
}

// TierForLevel derives the seniority tier by substring match against the
// requisition's experience text. Returns "" when no tier keyword is present.
func TierForLevel(level string) string {
	lower := strings.ToLower(level)
	switch {
	case strings.Contains(lower, "senior") || strings.Contains(lower, "lead") || strings.Contains(lower, "principal") || strings.Contains(lower, "staff"):
		return TierSenior
	case strings.Contains(lower, "mid") || strings.Contains(lower, "intermediate"):
		return TierMid
	case strings.Contains(lower, "entry") || strings.Contains(lower, "junior") || strings.Contains(lower, "graduate") || strings.Contains(lower, "intern"):
		return TierEntry
	}
	return ""
}
