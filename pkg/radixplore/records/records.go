// Package records defines the mention records exchanged between pipeline
// stages and their newline-delimited JSON persistence.
package records

// Mention is one entity occurrence found by the tagger, before
// geolocation. Coordinates stays null until disambiguation succeeds.
type Mention struct {
	PDFFile         string      `json:"pdf_file"`
	PageNumber      int         `json:"page_number"`
	ProjectName     string      `json:"project_name"`
	NERConfidence   float64     `json:"ner_confidence"`
	ContextSentence string      `json:"context_sentence"`
	Coordinates     *[2]float64 `json:"coordinates"`
}

// FinalRecord is a mention enriched with its disambiguated location.
type FinalRecord struct {
	Mention
	RunID                 string  `json:"run_id,omitempty"`
	ChosenLocation        *string `json:"chosen_location"`
	GeolocationConfidence float64 `json:"geolocation_confidence"`
	Justification         string  `json:"justification"`
}
