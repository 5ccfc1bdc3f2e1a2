package tagger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore"
)

// ExportTrainingSet writes examples as JSONL, the interchange format for
// offline fitting of the tagger.
func ExportTrainingSet(path string, examples []radixplore.TrainingExample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create training set %s: %w", path, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, ex := range examples {
		if err := encoder.Encode(ex); err != nil {
			return fmt.Errorf("write training set %s: %w", path, err)
		}
	}
	return nil
}
