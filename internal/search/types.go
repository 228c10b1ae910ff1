package search

// Candidate is one structured extraction of a search-result entry.
// Identity is the profile URL; nothing else participates in dedup.
type Candidate struct {
	Name       string  `json:"name"`
	Headline   string  `json:"headline"`
	ProfileURL string  `json:"profileUrl"`
	Score      float64 `json:"score,omitempty"`
}

// Params bounds one search run. Zero fields fall back to configured
// defaults.
type Params struct {
	Query       string
	Location    string
	PageLimit   int
	MinScore    float64
	TargetCount int
}

// Result is the aggregate outcome of one run.
type Result struct {
	Success         bool        `json:"success"`
	CandidatesFound int         `json:"candidates_found"`
	Candidates      []Candidate `json:"candidates,omitempty"`
	Error           string      `json:"error,omitempty"`
}
