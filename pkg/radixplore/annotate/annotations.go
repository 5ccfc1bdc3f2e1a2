package annotate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/internalerr"
)

// Annotation is a character-offset entity span over a record's text.
// Invariant: 0 <= Start < End <= len(text).
type Annotation struct {
	Start int
	End   int
	Label string
}

// Record is one annotated text with its entity spans.
type Record struct {
	Text        string
	Annotations []Annotation
}

// Label Studio export shapes. Only the fields the pipeline reads.
type exportRecord struct {
	Data struct {
		Text string `json:"text"`
	} `json:"data"`
	Annotations []struct {
		Result []struct {
			Value struct {
				Start  int      `json:"start"`
				End    int      `json:"end"`
				Labels []string `json:"labels"`
			} `json:"value"`
		} `json:"result"`
	} `json:"annotations"`
}

// LoadRecords reads a Label Studio export file. Records with empty text
// are skipped; records with no annotation results are kept so that all-O
// examples still reach training.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("annotations %s: %w", path, internalerr.ErrMissingInput)
		}
		return nil, fmt.Errorf("read annotations %s: %w", path, err)
	}

	var export []exportRecord
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse annotations %s: %w", path, err)
	}

	var records []Record
	for _, rec := range export {
		if rec.Data.Text == "" {
			continue
		}
		out := Record{Text: rec.Data.Text}
		if len(rec.Annotations) > 0 {
			for _, res := range rec.Annotations[0].Result {
				label := ""
				if len(res.Value.Labels) > 0 {
					label = res.Value.Labels[0]
				}
				out.Annotations = append(out.Annotations, Annotation{
					Start: res.Value.Start,
					End:   res.Value.End,
					Label: label,
				})
			}
		}
		records = append(records, out)
	}

	return records, nil
}
