package selector

import (
	"fmt"
	"testing"

	"moltbook-digest/moltbook"
	"moltbook-digest/scorer"
)

var testOpts = Options{TopMatched: 10, TopFallback: 6}

func TestSelectCapsMatched(t *testing.T) {
	lex := scorer.NewLexicon(map[string]int{"hit": 1})
	posts := make([]moltbook.Post, 15)
	for i := range posts {
		posts[i] = moltbook.Post{
			ID:        fmt.Sprintf("p%02d", i),
			Content:   "hit",
			CreatedAt: fmt.Sprintf("2026-08-25T10:%02d:00Z", i),
		}
	}

	top, fallback := Select(posts, lex, testOpts)
	if fallback {
		t.Fatal("fallback = true, want false")
	}
	if len(top) != 10 {
		t.Fatalf("got %d posts, want 10", len(top))
	}
	// Equal scores sort most recent first.
	if top[0].Post.ID != "p14" {
		t.Errorf("top[0] = %s, want p14", top[0].Post.ID)
	}
	if top[9].Post.ID != "p05" {
		t.Errorf("top[9] = %s, want p05", top[9].Post.ID)
	}
}

func TestSelectOrdersByScore(t *testing.T) {
	lex := scorer.NewLexicon(map[string]int{"alpha": 5, "beta": 2})
	posts := []moltbook.Post{
		{ID: "low", Content: "beta", CreatedAt: "2026-08-25T12:00:00Z"},
		{ID: "high", Content: "alpha beta", CreatedAt: "2026-08-25T10:00:00Z"},
		{ID: "mid", Content: "alpha", CreatedAt: "2026-08-25T11:00:00Z"},
	}

	top, fallback := Select(posts, lex, testOpts)
	if fallback {
		t.Fatal("fallback = true, want false")
	}

	wantOrder := []string{"high", "mid", "low"}
	if len(top) != len(wantOrder) {
		t.Fatalf("got %d posts, want %d", len(top), len(wantOrder))
	}
	for i, want := range wantOrder {
		if top[i].Post.ID != want {
			t.Errorf("top[%d] = %s, want %s", i, top[i].Post.ID, want)
		}
	}
	if top[0].Score != 7 {
		t.Errorf("top score = %d, want 7", top[0].Score)
	}
}

func TestSelectFallback(t *testing.T) {
	lex := scorer.NewLexicon(map[string]int{"nomatch": 1})
	posts := make([]moltbook.Post, 8)
	for i := range posts {
		posts[i] = moltbook.Post{
			ID:        fmt.Sprintf("p%d", i),
			Content:   "unrelated",
			CreatedAt: fmt.Sprintf("2026-08-25T10:0%d:00Z", i),
		}
	}

	top, fallback := Select(posts, lex, testOpts)
	if !fallback {
		t.Fatal("fallback = false, want true")
	}
	if len(top) != 6 {
		t.Fatalf("got %d posts, want 6", len(top))
	}
	// Discovery mode keeps the most recent posts first.
	if top[0].Post.ID != "p7" {
		t.Errorf("top[0] = %s, want p7", top[0].Post.ID)
	}
	for _, sp := range top {
		if sp.Score != 0 {
			t.Errorf("post %s score = %d, want 0", sp.Post.ID, sp.Score)
		}
	}
}

func TestSelectFallbackFewerThanCap(t *testing.T) {
	lex := scorer.NewLexicon(nil)
	posts := []moltbook.Post{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	top, fallback := Select(posts, lex, testOpts)
	if !fallback {
		t.Fatal("fallback = false, want true")
	}
	if len(top) != 3 {
		t.Errorf("got %d posts, want 3", len(top))
	}
}

func TestSelectEmptyInput(t *testing.T) {
	top, fallback := Select(nil, scorer.DefaultLexicon(), testOpts)
	if !fallback {
		t.Error("fallback = false, want true")
	}
	if len(top) != 0 {
		t.Errorf("got %d posts, want 0", len(top))
	}
}

func TestSelectURLBonusIsAMatch(t *testing.T) {
	// A post matching no keyword still scores 1 through its external URL,
	// which keeps it out of discovery mode.
	lex := scorer.NewLexicon(nil)
	posts := []moltbook.Post{{ID: "linked", URL: "https://example.com"}}

	top, fallback := Select(posts, lex, testOpts)
	if fallback {
		t.Fatal("fallback = true, want false")
	}
	if len(top) != 1 || top[0].Score != 1 {
		t.Fatalf("top = %+v, want one post with score 1", top)
	}
}

func TestSelectFilterSeen(t *testing.T) {
	lex := scorer.NewLexicon(map[string]int{"hit": 1})
	posts := []moltbook.Post{
		{ID: "old", Content: "hit", CreatedAt: "2026-08-25T12:00:00Z"},
		{ID: "new", Content: "hit", CreatedAt: "2026-08-25T11:00:00Z"},
	}
	seen := func(id string) bool { return id == "old" }

	opts := testOpts
	opts.FilterSeen = true
	opts.Seen = seen

	top, _ := Select(posts, lex, opts)
	if len(top) != 1 || top[0].Post.ID != "new" {
		t.Fatalf("top = %+v, want only the unseen post", top)
	}

	// With the flag off the seen set is ignored.
	opts.FilterSeen = false
	top, _ = Select(posts, lex, opts)
	if len(top) != 2 {
		t.Fatalf("got %d posts, want 2 when filtering is disabled", len(top))
	}
}
