// Package locate proposes location names from mention context and picks
// the best geocoded candidate.
//
// Both halves are deliberate rule-based stand-ins for a learned
// extractor/disambiguator. They sit behind the CandidateExtractor and
// Disambiguator interfaces so a stronger model can replace either without
// touching alignment or orchestration.
package locate

import (
	"regexp"
	"strings"
)

// CandidateExtractor proposes place-name strings from a context sentence.
// The output is deduplicated; no ordering is guaranteed by the contract,
// though the rule-based implementation preserves insertion order.
type CandidateExtractor interface {
	Extract(context string) []string
}

// capitalizedRun matches maximal runs of capitalized words.
var capitalizedRun = regexp.MustCompile(`\b([A-Z][A-Za-z'-]+(?: [A-Z][A-Za-z'-]+)*)\b`)

// westernAustralia is appended whenever the bare "WA" abbreviation
// appears, so the geocoder sees the full region name.
const westernAustralia = "Western Australia"

// Extractor finds candidate location names by capitalization heuristics.
type Extractor struct {
	stopwords map[string]struct{}
}

// DefaultStopwords are capitalized words that start sentences or name
// generic things, never places.
var DefaultStopwords = []string{"The", "A", "An", "This", "Project", "Company"}

// NewExtractor creates an extractor with the default stopword set.
func NewExtractor() *Extractor {
	e := &Extractor{stopwords: make(map[string]struct{}, len(DefaultStopwords))}
	for _, w := range DefaultStopwords {
		e.stopwords[w] = struct{}{}
	}
	return e
}

// AddStopword excludes a word from candidate extraction.
func (e *Extractor) AddStopword(word string) {
	e.stopwords[word] = struct{}{}
}

// Extract implements CandidateExtractor. Candidates are maximal runs of
// capitalized words, minus stopwords and anything two characters or
// shorter. When the literal "WA" occurs in the sentence and "Western
// Australia" is not already a candidate, it is appended. The result is
// deduplicated in insertion order.
func (e *Extractor) Extract(context string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, match := range capitalizedRun.FindAllString(context, -1) {
		if _, stop := e.stopwords[match]; stop {
			continue
		}
		if len(match) <= 2 {
			continue
		}
		add(match)
	}

	if strings.Contains(context, "WA") {
		add(westernAustralia)
	}

	return out
}
