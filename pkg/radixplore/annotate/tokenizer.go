package annotate

import (
	"strings"
	"unicode/utf8"
)

// TokenSpan holds the character offsets of a whitespace token within its
// source text. Offsets count code points, not bytes, because annotation
// tools (and the exports they produce) index text by character; byte
// offsets drift as soon as the text contains an en dash or a degree
// sign. End is exclusive.
type TokenSpan struct {
	Start int
	End   int
}

// Tokenization is the result of splitting a text into whitespace tokens.
// Spans is aligned 1:1 with Tokens. A token that could not be located in
// the source text keeps its slot with a span of {-1, -1} and is counted
// in Anomalies, so downstream tag sequences stay the same length.
type Tokenization struct {
	Tokens    []string
	Spans     []TokenSpan
	Anomalies int
}

// Tokenize splits text into maximal runs of non-whitespace characters and
// computes their character spans. Each token is searched from the end of
// the previous token, not from the beginning of the text, so repeated
// identical tokens resolve to their true left-to-right positions.
func Tokenize(text string) Tokenization {
	tokens := strings.Fields(text)
	result := Tokenization{
		Tokens: tokens,
		Spans:  make([]TokenSpan, len(tokens)),
	}

	// pos is a byte offset into text; charAt is the number of code
	// points consumed up to pos.
	pos := 0
	charAt := 0
	for i, tok := range tokens {
		idx := strings.Index(text[pos:], tok)
		if idx < 0 {
			// Cannot happen for a strict whitespace split of the same
			// text, but keep the slot and count it so the aligner never
			// miscounts silently.
			result.Spans[i] = TokenSpan{Start: -1, End: -1}
			result.Anomalies++
			continue
		}
		start := charAt + utf8.RuneCountInString(text[pos:pos+idx])
		end := start + utf8.RuneCountInString(tok)
		result.Spans[i] = TokenSpan{Start: start, End: end}
		pos += idx + len(tok)
		charAt = end
	}

	return result
}
