package selector

import (
	"sort"

	"moltbook-digest/moltbook"
	"moltbook-digest/scorer"
)

// Options controls a selection round.
type Options struct {
	// TopMatched caps how many positively scored posts are returned.
	TopMatched int
	// TopFallback caps how many posts are returned in discovery mode, when
	// nothing scores above zero.
	TopFallback int
	// FilterSeen drops posts whose ID Seen reports as already surfaced,
	// before scoring. Posts without an ID are never filtered.
	FilterSeen bool
	Seen       func(id string) bool
}

// Select scores posts against the lexicon and returns the winners ordered by
// score descending, most recent first among ties (created_at compared as a
// string). When no post scores above zero it falls back to the TopFallback
// most recent posts regardless of score; the second return value reports
// that discovery mode was used.
func Select(posts []moltbook.Post, lex scorer.Lexicon, opts Options) ([]scorer.ScoredPost, bool) {
	scored := make([]scorer.ScoredPost, 0, len(posts))
	for _, p := range posts {
		if opts.FilterSeen && opts.Seen != nil && p.ID != "" && opts.Seen(p.ID) {
			continue
		}
		scored = append(scored, scorer.ScoredPost{Score: lex.Score(p), Post: p})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Post.CreatedAt > scored[j].Post.CreatedAt
	})

	top := make([]scorer.ScoredPost, 0, opts.TopMatched)
	for _, sp := range scored {
		if len(top) >= opts.TopMatched || sp.Score <= 0 {
			break
		}
		top = append(top, sp)
	}
	if len(top) > 0 {
		return top, false
	}

	n := opts.TopFallback
	if n > len(scored) {
		n = len(scored)
	}
	return scored[:n], true
}
