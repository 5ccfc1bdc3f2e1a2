package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/internalerr"
)

// TextSource reads a plain-text file. Form feeds mark page breaks, the
// convention used by most PDF-to-text converters; a file without form
// feeds is a single page.
type TextSource struct {
	path string
}

// NewTextSource creates a source over a .txt file.
func NewTextSource(path string) *TextSource {
	return &TextSource{path: path}
}

// Name implements Source.
func (s *TextSource) Name() string {
	return filepath.Base(s.path)
}

// Pages implements Source.
func (s *TextSource) Pages() (map[int]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %s: %w", s.path, internalerr.ErrMissingInput)
		}
		return nil, fmt.Errorf("read document %s: %w", s.path, err)
	}

	pages := make(map[int]string)
	for i, page := range strings.Split(string(data), "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		pages[i+1] = page
	}
	return pages, nil
}
