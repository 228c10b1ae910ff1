package search

import "strings"

const (
	verbatimBonus  = 5.0
	tokenBonus     = 1.0
	seniorityBonus = 1.5
	roleBonus      = 1.0
)

var seniorityMarkers = []string{"senior", "staff", "principal", "lead"}

var roleTerms = []string{"engineer", "architect", "developer"}

// Score rates a headline against a query. Both inputs must already be
// lowercased by the caller. Deterministic and never negative: a
// verbatim query match, each matched query token, each seniority
// marker, and each generic role term all add up; an unrelated headline
// scores zero.
func Score(headline, query string) float64 {
	if headline == "" || query == "" {
		return 0
	}

	score := 0.0
	if strings.Contains(headline, query) {
		score += verbatimBonus
	}
	for _, token := range strings.Fields(query) {
		if strings.Contains(headline, token) {
			score += tokenBonus
		}
	}
	for _, marker := range seniorityMarkers {
		if strings.Contains(headline, marker) {
			score += seniorityBonus
		}
	}
	for _, term := range roleTerms {
		if strings.Contains(headline, term) {
			score += roleBonus
		}
	}
	return score
}
