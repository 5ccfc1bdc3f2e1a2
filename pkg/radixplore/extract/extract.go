// Package extract supplies per-page document text to the pipeline.
//
// The pipeline treats text extraction as a collaborator contract: a
// Source returns the text of each 1-based page. PDF parsing itself is out
// of scope; sources here read pre-extracted plain text and HTML.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/internalerr"
)

// Source yields the per-page text of one document.
type Source interface {
	// Name identifies the document (typically its file name) and is
	// carried into every mention extracted from it.
	Name() string

	// Pages maps 1-based page numbers to their text. Pages with no text
	// are absent from the map.
	Pages() (map[int]string, error)
}

// FromPath selects a source for a file based on its extension.
func FromPath(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return NewTextSource(path), nil
	case ".html", ".htm":
		return NewHTMLSource(path), nil
	default:
		return nil, fmt.Errorf("no text source for %s: %w", path, internalerr.ErrNoText)
	}
}
