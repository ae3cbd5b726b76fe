// Package processor validates, normalizes, and scores one candidate against
// one job. Processing is deterministic and does no I/O; the same inputs
// always yield the same ProcessedCandidate.
package processor

import (
	"math"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// signalDivisor converts signal strength into score boost points:
// boost = floor(strength / 6.67), so a +50 signal adds 7 points.
const signalDivisor = 6.67

// Process produces a ProcessedCandidate for one RawCandidate and one Job.
// The candidate is normalized, validated, and scored; validation failures
// mark the candidate invalid but never abort processing.
func Process(candidate types.RawCandidate, job *types.Job) types.ProcessedCandidate {
	normalized := Normalize(candidate)

	errs := Validate(&normalized, job)
	base := MatchScore(&normalized, job)
	signals := DetectSignals(&normalized)

	// Summary synthesis happens after scoring so profile completeness
	// reflects what the provider actually supplied.
	if normalized.ResumeSummary == "" {
		normalized.ResumeSummary = SynthesizeSummary(&normalized)
	}

	score := base + int(math.Floor(float64(signals.SignalStrength)/signalDivisor))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return types.ProcessedCandidate{
		RawCandidate:     normalized,
		IsValid:          len(errs) == 0 && normalized.Name != "",
		MatchScore:       score,
		ValidationErrors: errs,
		Signals:          signals,
	}
}
