package annotate

// BIO tag symbols for the single PROJECT entity type.
const (
	TagOutside = "O"
	TagBegin   = "B-PROJECT"
	TagInside  = "I-PROJECT"
)

// LabelProject is the only annotation label the aligner acts on.
const LabelProject = "PROJECT"

// Align maps character-offset annotation spans onto the token spans of a
// tokenization, producing one BIO tag per token.
//
// All tags start as O. For each PROJECT annotation, every token whose span
// strictly overlaps the annotation interval (max of starts < min of ends,
// so zero-width or merely adjacent spans never count) is tagged: the first
// overlapping token gets B-PROJECT, the rest I-PROJECT. Annotations are
// applied in listed order; a later annotation overwrites the tag of any
// token it shares with an earlier one. Tokens with anomalous spans keep
// their default tag.
func Align(tok Tokenization, anns []Annotation) []string {
	tags := make([]string, len(tok.Tokens))
	for i := range tags {
		tags[i] = TagOutside
	}

	for _, ann := range anns {
		if ann.Label != LabelProject {
			continue
		}
		first := true
		for i, sp := range tok.Spans {
			if sp.Start < 0 {
				continue
			}
			if max(ann.Start, sp.Start) < min(ann.End, sp.End) {
				if first {
					tags[i] = TagBegin
					first = false
				} else {
					tags[i] = TagInside
				}
			}
		}
	}

	return tags
}

// Example is a single tagged training sequence.
type Example struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"-"`
}

// BuildExamples tokenizes and aligns every record, returning one example
// per record plus the total number of tokenization anomalies encountered.
func BuildExamples(records []Record) ([]Example, int) {
	examples := make([]Example, 0, len(records))
	anomalies := 0
	for _, rec := range records {
		tok := Tokenize(rec.Text)
		anomalies += tok.Anomalies
		examples = append(examples, Example{
			Tokens: tok.Tokens,
			Tags:   Align(tok, rec.Annotations),
		})
	}
	return examples, anomalies
}
