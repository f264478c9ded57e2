package scorer

import (
	"strings"

	"moltbook-digest/moltbook"
)

// Lexicon is an immutable phrase-to-weight table used for relevance scoring.
// Phrases match case-insensitively by substring containment.
type Lexicon struct {
	weights map[string]int
}

// NewLexicon builds a Lexicon from a weight table. Phrases are lowercased and
// the table is copied, so later mutation of the input has no effect. Empty
// phrases are dropped.
func NewLexicon(weights map[string]int) Lexicon {
	w := make(map[string]int, len(weights))
	for phrase, weight := range weights {
		if phrase == "" {
			continue
		}
		w[strings.ToLower(phrase)] = weight
	}
	return Lexicon{weights: w}
}

// Len returns the number of phrases in the lexicon.
func (l Lexicon) Len() int {
	return len(l.weights)
}

// ScoredPost pairs a post with its computed relevance score.
type ScoredPost struct {
	Score int
	Post  moltbook.Post
}

// Score sums the weight of every lexicon phrase contained in the post's
// lowercased title, content, URL and submolt name, plus 1 when the post
// carries an external URL. A phrase occurring several times still counts
// once; distinct phrases matching overlapping text all count.
func (l Lexicon) Score(p moltbook.Post) int {
	text := strings.ToLower(strings.Join([]string{
		p.Title,
		p.Content,
		p.URL,
		p.SubmoltName(),
	}, " "))

	score := 0
	for phrase, weight := range l.weights {
		if strings.Contains(text, phrase) {
			score += weight
		}
	}
	if p.URL != "" {
		score++
	}
	return score
}
