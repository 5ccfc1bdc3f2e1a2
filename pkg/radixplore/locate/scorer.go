package locate

import (
	"fmt"
	"math"
	"strings"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/geocode"
)

// Result is the outcome of disambiguating one mention's candidates.
type Result struct {
	ChosenLocation *string     `json:"chosen_location"`
	Coordinates    *[2]float64 `json:"coordinates"`
	Confidence     float64     `json:"geolocation_confidence"`
	Justification  string      `json:"justification"`
}

// Disambiguator selects one candidate given the mention context. Any
// implementation must be deterministic for identical inputs, accept a
// winner only above the 0.5 score threshold, and use the fixed 0.25
// confidence to mark the low-confidence first-candidate fallback.
type Disambiguator interface {
	Score(context string, candidates []geocode.Candidate) Result
}

// Scoring constants. regionBonus rewards a Western Australia cue in both
// context and candidate; countryBonus rewards an Australia cue. The two
// are additive, so a raw score can reach 1.3 before clamping.
const (
	regionBonus  = 0.8
	countryBonus = 0.5

	// acceptThreshold is the minimum winning score for a contextual
	// match; at or below it the scorer falls back to the first
	// candidate.
	acceptThreshold = 0.5

	// fallbackConfidence marks the low-confidence default pick. It is a
	// distinct signal, never produced by genuine scoring.
	fallbackConfidence = 0.25
)

// RuleScorer is the rule-based Disambiguator implementation.
type RuleScorer struct{}

// NewRuleScorer creates the rule-based scorer.
func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

// Score implements Disambiguator.
func (s *RuleScorer) Score(context string, candidates []geocode.Candidate) Result {
	if len(candidates) == 0 {
		return Result{
			Confidence:    0.0,
			Justification: "no candidates",
		}
	}

	contextLower := strings.ToLower(context)
	hasRegionCue := strings.Contains(contextLower, "western australia") ||
		strings.Contains(context, "WA")
	hasCountryCue := strings.Contains(contextLower, "australia")

	best := -1
	bestScore := -1.0
	for i, cand := range candidates {
		nameLower := strings.ToLower(cand.Name)
		score := 0.0
		if hasRegionCue && strings.Contains(nameLower, "western australia") {
			score += regionBonus
		}
		if hasCountryCue && strings.Contains(nameLower, "australia") {
			score += countryBonus
		}
		// Strict improvement only: ties keep the earliest candidate.
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	if bestScore > acceptThreshold {
		confidence := math.Min(round4(bestScore), 1.0)
		return pick(candidates[best], confidence,
			fmt.Sprintf("Selected candidate on high contextual match (score: %v).", confidence))
	}

	return pick(candidates[0], fallbackConfidence,
		"Context was ambiguous. Defaulted to the first available result.")
}

func pick(cand geocode.Candidate, confidence float64, justification string) Result {
	name := cand.Name
	coords := [2]float64{cand.Latitude, cand.Longitude}
	return Result{
		ChosenLocation: &name,
		Coordinates:    &coords,
		Confidence:     confidence,
		Justification:  justification,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
