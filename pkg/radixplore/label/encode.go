// Package label maps BIO tag symbols to the dense ids consumed by the
// sequence tagger and re-aligns them to sub-word tokenizations.
package label

// Names enumerates the tag alphabet. The positions are the label ids and
// must never be reordered: trained models depend on them.
var Names = []string{"O", "B-PROJECT", "I-PROJECT"}

// Ignore is the reserved label for sub-word pieces that must be excluded
// from loss and accuracy computation. It is outside the valid id range by
// construction.
const Ignore = -100

var ids = func() map[string]int {
	m := make(map[string]int, len(Names))
	for i, name := range Names {
		m[name] = i
	}
	return m
}()

// ID returns the id of a tag symbol. Unknown symbols map to O's id.
func ID(tag string) int {
	if id, ok := ids[tag]; ok {
		return id
	}
	return 0
}

// Name returns the tag symbol for an id, or "O" for any id outside the
// alphabet (including Ignore).
func Name(id int) string {
	if id >= 0 && id < len(Names) {
		return Names[id]
	}
	return "O"
}

// Encode converts a tag sequence to label ids.
func Encode(tags []string) []int {
	out := make([]int, len(tags))
	for i, tag := range tags {
		out[i] = ID(tag)
	}
	return out
}

// Decode converts label ids back to tag symbols.
func Decode(labelIDs []int) []string {
	out := make([]string, len(labelIDs))
	for i, id := range labelIDs {
		out[i] = Name(id)
	}
	return out
}

// AlignToPieces re-aligns token-level label ids to a sub-word
// tokenization. wordIDs maps each piece to the index of its owning token,
// with -1 for special or boundary pieces. The first piece of each token
// receives the token's label id; every following piece of the same token,
// and every piece with no owning token, receives Ignore.
func AlignToPieces(labelIDs []int, wordIDs []int) []int {
	out := make([]int, len(wordIDs))
	prev := -1
	for i, w := range wordIDs {
		switch {
		case w < 0 || w >= len(labelIDs):
			out[i] = Ignore
		case w == prev:
			out[i] = Ignore
		default:
			out[i] = labelIDs[w]
		}
		prev = w
	}
	return out
}
