package domain

import (
	"strings"

	"marketplace_backend/platform/textmatch"
)

const (
	scoreBase      = 75
	scoreSector    = 10
	scoreTechStack = 15
	scoreCap       = 98
)

// Scorer computes the display match score of a listing. The score annotates
// results and never reorders them.
type Scorer struct {
	// Jitter adds index%3*2 so neighbouring equal scores look different.
	Jitter bool
}

// MatchScore scores without jitter.
func MatchScore(l Listing, s FilterState, index int) *int {
	return Scorer{}.Score(l, s, index)
}

// Score returns nil when no filter is active, otherwise a value in [75, 98].
func (sc Scorer) Score(l Listing, s FilterState, index int) *int {
	if ActiveFilterCount(s) == 0 {
		return nil
	}

	score := scoreBase
	if sectors := activeValues(s.Sector); len(sectors) > 0 && textmatch.ContainsAny(l.Industry, sectors) {
		score += scoreSector
	}
	if q := strings.TrimSpace(s.TechStack); q != "" && textmatch.AnyContains(l.TechStack, q) {
		score += scoreTechStack
	}
	if sc.Jitter && index > 0 {
		score += index % 3 * 2
	}
	score = min(score, scoreCap)
	return &score
}
