package processor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// Signal strengths. Detected signals accumulate; the total is clamped to
// [-20, 100].
const (
	signalOpenToWork     = 50
	signalHiring         = -20 // candidate is hiring, less likely to be seeking
	signalSeekingPhrase  = 25
	signalTransition     = 20
	signalShortTenure    = 15
	signalContractHist   = 15
	signalRecentRoleEnd  = 20
	signalActiveDevProf  = 5
	minSignalStrength    = -20
	maxSignalStrength    = 100
	shortTenureMaxMonths = 12
)

// jobSeekingPhrases indicate an active search when found in profile text.
var jobSeekingPhrases = []string{
	"open to work",
	"open to opportunities",
	"open to new opportunities",
	"seeking new opportunities",
	"looking for a new role",
	"looking for new opportunities",
	"actively looking",
	"available for hire",
	"seeking a position",
	"in search of",
}

// transitionPhrases indicate interim work that often precedes a move.
var transitionPhrases = []string{"contract", "freelance", "freelancer", "temporary", "interim"}

// DetectSignals scans a candidate for passive job-seeking indicators and
// returns the aggregate signal strength with the list of detected signals.
func DetectSignals(c *types.RawCandidate) types.JobSeekingSignals {
	return detectSignalsAt(c, time.Now())
}

func detectSignalsAt(c *types.RawCandidate, now time.Time) types.JobSeekingSignals {
	var signals types.JobSeekingSignals
	add := func(name string, strength int) {
		signals.DetectedSignals = append(signals.DetectedSignals, name)
		signals.SignalStrength += strength
	}

	if c.OpenToWork {
		add("open_to_work_flag", signalOpenToWork)
	}
	if c.Hiring {
		add("actively_hiring_flag", signalHiring)
	}

	freeText := strings.ToLower(c.ResumeSummary)
	for _, w := range c.WorkExperience {
		freeText += " " + strings.ToLower(w.Description)
	}

	if containsAny(freeText, jobSeekingPhrases) {
		add("job_seeking_phrase", signalSeekingPhrase)
	}
	if containsAny(freeText, transitionPhrases) {
		add("transition_phrase", signalTransition)
	}

	if len(c.WorkExperience) > 0 {
		recent := c.WorkExperience[0]
		if months, ok := durationMonths(recent.Duration); ok && months < shortTenureMaxMonths {
			add("short_current_tenure", signalShortTenure)
		}
		if hasContractHistory(c.WorkExperience) {
			add("contract_history", signalContractHist)
		}
		if year, ok := endYear(recent.Duration); ok && now.Year()-year <= 1 {
			add("recent_role_end", signalRecentRoleEnd)
		}
	}

	if c.Source == types.SourceGitHub {
		add("active_developer_profile", signalActiveDevProf)
	}

	if signals.SignalStrength > maxSignalStrength {
		signals.SignalStrength = maxSignalStrength
	}
	if signals.SignalStrength < minSignalStrength {
		signals.SignalStrength = minSignalStrength
	}
	return signals
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func hasContractHistory(history []types.WorkExperience) bool {
	for _, w := range history {
		role := strings.ToLower(w.Role)
		if containsAny(role, transitionPhrases) {
			return true
		}
	}
	return false
}

var (
	yearRangeRe = regexp.MustCompile(`(\d{4})\s*[-–—]\s*(\d{4}|present|current|now)`)
	yearsDurRe  = regexp.MustCompile(`(\d+)\s*(?:\+\s*)?(?:years?|yrs?)`)
	monthsDurRe = regexp.MustCompile(`(\d+)\s*(?:months?|mos?)`)
)

// durationMonths estimates a tenure length in months from a free-text
// duration such as "2021 - 2023", "Jan 2023 - Present", or "8 months".
func durationMonths(duration string) (int, bool) {
	lower := strings.ToLower(duration)

	if m := yearRangeRe.FindStringSubmatch(lower); m != nil {
		start, _ := strconv.Atoi(m[1])
		end := time.Now().Year()
		if m[2] != "present" && m[2] != "current" && m[2] != "now" {
			end, _ = strconv.Atoi(m[2])
		}
		if end < start {
			return 0, false
		}
		return (end - start) * 12, true
	}

	months := 0
	found := false
	if m := yearsDurRe.FindStringSubmatch(lower); m != nil {
		y, _ := strconv.Atoi(m[1])
		months += y * 12
		found = true
	}
	if m := monthsDurRe.FindStringSubmatch(lower); m != nil {
		mo, _ := strconv.Atoi(m[1])
		months += mo
		found = true
	}
	return months, found
}

// endYear extracts the end year of a duration range. Returns false for
// open-ended ("Present") or unparseable durations.
func endYear(duration string) (int, bool) {
	lower := strings.ToLower(duration)
	m := yearRangeRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	if m[2] == "present" || m[2] == "current" || m[2] == "now" {
		return 0, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return year, true
}
