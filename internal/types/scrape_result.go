package types

// ScrapeResult is the per-source outcome of one orchestration call. The
// aggregated slice is returned to the caller and logged, never persisted as
// a single object.
type ScrapeResult struct {
	Source          string   `json:"source"`
	Success         bool     `json:"success"`
	CandidatesFound int      `json:"candidates_found"`
	CandidatesSaved int      `json:"candidates_saved"`
	Errors          []string `json:"errors,omitempty"`
}

// SourceRecommendation is one entry of the job analyzer's weighted source
// plan: which provider to query and how many candidates to request from it.
type SourceRecommendation struct {
	Source string `json:"source"`
	Weight int    `json:"weight"`
	Quota  int    `json:"quota"`
}
