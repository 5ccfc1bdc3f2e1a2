// Package sentence prepares page text for per-sentence tagging.
package sentence

import "strings"

// minLength filters out fragments too short to carry an entity mention.
const minLength = 10

// Split flattens newlines and cuts text into sentences at runs of
// terminal punctuation followed by whitespace. Fragments whose trimmed
// length is at most ten characters are dropped.
func Split(text string) []string {
	flat := strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	start := 0
	runes := []rune(flat)
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		// Consume the full punctuation run, then require whitespace.
		j := i
		for j+1 < len(runes) && isTerminal(runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && isSpace(runes[j+1]) {
			appendSentence(&sentences, string(runes[start:j+1]))
			i = j + 1
			for i < len(runes) && isSpace(runes[i]) {
				i++
			}
			start = i
			i--
		} else {
			i = j
		}
	}
	if start < len(runes) {
		appendSentence(&sentences, string(runes[start:]))
	}

	return sentences
}

func appendSentence(out *[]string, s string) {
	s = strings.TrimSpace(s)
	if len(s) > minLength {
		*out = append(*out, s)
	}
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f' || r == '\v'
}
