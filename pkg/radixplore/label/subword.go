package label

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Subword splits whitespace tokens into the finer-grained pieces used by
// a model tokenizer. The returned wordIDs slice is aligned 1:1 with the
// pieces and maps each piece back to the index of its owning token, with
// -1 for special/boundary pieces. Implementations must keep that contract
// so AlignToPieces can re-align labels.
type Subword interface {
	Pieces(tokens []string) (pieces []string, wordIDs []int)
}

// WordPiece is a greedy longest-match WordPiece splitter over a fixed
// vocabulary, the scheme used by BERT-style tokenizers. Pieces after the
// first within a token carry the continuation prefix. A token with no
// valid segmentation becomes a single unknown piece.
type WordPiece struct {
	vocab       map[string]struct{}
	unknown     string
	prefix      string
	maxTokenLen int
	boundTokens bool
	clsToken    string
	sepToken    string
}

// WordPieceOption customizes a WordPiece splitter.
type WordPieceOption func(*WordPiece)

// WithBoundaryTokens wraps every sequence in [CLS] and [SEP] pieces,
// which carry no owning token.
func WithBoundaryTokens() WordPieceOption {
	return func(w *WordPiece) { w.boundTokens = true }
}

// NewWordPiece builds a splitter from a vocabulary listing.
func NewWordPiece(vocab []string, opts ...WordPieceOption) *WordPiece {
	set := make(map[string]struct{}, len(vocab))
	for _, v := range vocab {
		set[v] = struct{}{}
	}
	w := &WordPiece{
		vocab:       set,
		unknown:     "[UNK]",
		prefix:      "##",
		maxTokenLen: 100,
		clsToken:    "[CLS]",
		sepToken:    "[SEP]",
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// LoadVocab reads a BERT-style vocab file, one piece per line.
func LoadVocab(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab %s: %w", path, err)
	}
	defer f.Close()

	var vocab []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			vocab = append(vocab, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocab %s: %w", path, err)
	}
	return vocab, nil
}

// Pieces implements Subword.
func (w *WordPiece) Pieces(tokens []string) ([]string, []int) {
	var pieces []string
	var wordIDs []int

	if w.boundTokens {
		pieces = append(pieces, w.clsToken)
		wordIDs = append(wordIDs, -1)
	}

	for idx, token := range tokens {
		for _, piece := range w.split(token) {
			pieces = append(pieces, piece)
			wordIDs = append(wordIDs, idx)
		}
	}

	if w.boundTokens {
		pieces = append(pieces, w.sepToken)
		wordIDs = append(wordIDs, -1)
	}

	return pieces, wordIDs
}

// split segments one token by greedy longest match against the
// vocabulary.
func (w *WordPiece) split(token string) []string {
	runes := []rune(strings.ToLower(token))
	if len(runes) == 0 || len(runes) > w.maxTokenLen {
		return []string{w.unknown}
	}

	var out []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		match := ""
		for end > start {
			candidate := string(runes[start:end])
			if start > 0 {
				candidate = w.prefix + candidate
			}
			if _, ok := w.vocab[candidate]; ok {
				match = candidate
				break
			}
			end--
		}
		if match == "" {
			// No segmentation exists; the whole token is unknown.
			return []string{w.unknown}
		}
		out = append(out, match)
		start = end
	}
	return out
}
