package locate

import (
	"reflect"
	"testing"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/geocode"
)

func TestScoreEmptyCandidates(t *testing.T) {
	s := NewRuleScorer()
	got := s.Score("The project lies in WA", nil)

	if got.ChosenLocation != nil {
		t.Errorf("ChosenLocation should be nil, got %v", *got.ChosenLocation)
	}
	if got.Coordinates != nil {
		t.Errorf("Coordinates should be nil")
	}
	if got.Confidence != 0.0 {
		t.Errorf("Confidence should be 0, got %v", got.Confidence)
	}
	if got.Justification != "no candidates" {
		t.Errorf("Unexpected justification: %q", got.Justification)
	}
}

func TestScorePicksContextualMatch(t *testing.T) {
	s := NewRuleScorer()
	candidates := []geocode.Candidate{
		{Name: "Perth, Western Australia, Australia", Latitude: -31.95, Longitude: 115.86},
		{Name: "Perth, UK", Latitude: 56.39, Longitude: -3.43},
	}

	got := s.Score("The project lies in WA near Perth", candidates)
	if got.ChosenLocation == nil || *got.ChosenLocation != "Perth, Western Australia, Australia" {
		t.Fatalf("Expected Perth, Australia; got %+v", got)
	}
	if got.Confidence <= 0.5 {
		t.Errorf("Confidence should exceed 0.5, got %v", got.Confidence)
	}
	if got.Coordinates == nil || got.Coordinates[0] != -31.95 {
		t.Errorf("Coordinates wrong: %v", got.Coordinates)
	}
}

func TestScoreRegionAndCountryBonusesAdd(t *testing.T) {
	s := NewRuleScorer()
	candidates := []geocode.Candidate{
		{Name: "Leonora, Western Australia, Australia", Latitude: -28.88, Longitude: 121.33},
	}

	// Both cues fire: 0.8 + 0.5 = 1.3, clamped to 1.0.
	got := s.Score("The Leonora project in Western Australia, Australia", candidates)
	if got.Confidence != 1.0 {
		t.Errorf("Confidence should clamp to 1.0, got %v", got.Confidence)
	}
}

func TestScoreAmbiguousFallsBackToFirst(t *testing.T) {
	s := NewRuleScorer()
	candidates := []geocode.Candidate{
		{Name: "Springfield, Illinois, USA", Latitude: 39.78, Longitude: -89.65},
		{Name: "Springfield, Missouri, USA", Latitude: 37.21, Longitude: -93.29},
	}

	got := s.Score("near the Springfield site boundary", candidates)
	if got.ChosenLocation == nil || *got.ChosenLocation != "Springfield, Illinois, USA" {
		t.Fatalf("Fallback must pick the first candidate; got %+v", got)
	}
	if got.Confidence != 0.25 {
		t.Errorf("Fallback confidence must be exactly 0.25, got %v", got.Confidence)
	}
}

func TestScoreTiesKeepEarliestCandidate(t *testing.T) {
	s := NewRuleScorer()
	candidates := []geocode.Candidate{
		{Name: "Newman, Western Australia", Latitude: -23.36, Longitude: 119.73},
		{Name: "Tom Price, Western Australia", Latitude: -22.69, Longitude: 117.79},
	}

	// Both score 0.8 via the WA cue; the first strict improvement wins.
	got := s.Score("Iron ore operations in WA", candidates)
	if got.ChosenLocation == nil || *got.ChosenLocation != "Newman, Western Australia" {
		t.Errorf("Tie should keep the earliest candidate; got %+v", got)
	}
}

func TestScoreWACueIsCaseSensitive(t *testing.T) {
	s := NewRuleScorer()
	candidates := []geocode.Candidate{
		{Name: "Karratha, Western Australia", Latitude: -20.74, Longitude: 116.85},
	}

	got := s.Score("the wa region hosts several mines", candidates)
	if got.Confidence != 0.25 {
		t.Errorf("Lowercase 'wa' must not trigger the region bonus; got %v", got.Confidence)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewRuleScorer()
	context := "The project lies in WA near Perth"
	candidates := []geocode.Candidate{
		{Name: "Perth, Western Australia, Australia", Latitude: -31.95, Longitude: 115.86},
		{Name: "Perth, UK", Latitude: 56.39, Longitude: -3.43},
	}

	first := s.Score(context, candidates)
	for i := 0; i < 10; i++ {
		if got := s.Score(context, candidates); !reflect.DeepEqual(got, first) {
			t.Fatalf("Scorer not deterministic: %+v vs %+v", got, first)
		}
	}
}
