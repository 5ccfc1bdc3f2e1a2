package records

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/internalerr"
)

// Writer appends records to a newline-delimited JSON file. The file is
// truncated once at construction; each Append opens it in append mode and
// closes it again, so a crash never leaves a partially written record
// buffered. Single writer only: concurrent orchestrator instances must
// use separate output paths.
type Writer struct {
	path string
}

// NewWriter truncates (or creates) the output file and returns a writer
// for it.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return &Writer{path: path}, nil
}

// Append marshals one record and writes it as a single line. The record
// is only written whole; marshal failures write nothing.
func (w *Writer) Append(record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output %s: %w", w.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append record to %s: %w", w.path, err)
	}
	return nil
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// LoadMentions reads mention records from a JSONL file, skipping
// malformed lines with a warning.
func LoadMentions(path string) ([]Mention, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("mentions %s: %w", path, internalerr.ErrMissingInput)
		}
		return nil, fmt.Errorf("read mentions %s: %w", path, err)
	}

	var mentions []Mention
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var m Mention
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		mentions = append(mentions, m)
	}

	return mentions, nil
}
