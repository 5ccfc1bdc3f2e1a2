package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/internalerr"
)

// HTMLSource extracts the visible text of an HTML document as a single
// page. Script and style contents are skipped.
type HTMLSource struct {
	path string
}

// NewHTMLSource creates a source over an .html file.
func NewHTMLSource(path string) *HTMLSource {
	return &HTMLSource{path: path}
}

// Name implements Source.
func (s *HTMLSource) Name() string {
	return filepath.Base(s.path)
}

// Pages implements Source.
func (s *HTMLSource) Pages() (map[int]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %s: %w", s.path, internalerr.ErrMissingInput)
		}
		return nil, fmt.Errorf("open document %s: %w", s.path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", s.path, err)
	}

	text := strings.TrimSpace(visibleText(doc))
	if text == "" {
		return map[int]string{}, nil
	}
	return map[int]string{1: text}, nil
}

func visibleText(n *html.Node) string {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return ""
	}

	var buf strings.Builder
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(visibleText(c))
	}
	// Block elements separate sentences when serialized flat.
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
			buf.WriteString("\n")
		}
	}
	return buf.String()
}
