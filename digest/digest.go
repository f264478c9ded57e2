package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"moltbook-digest/moltbook"
	"moltbook-digest/render"
	"moltbook-digest/report"
	"moltbook-digest/scorer"
	"moltbook-digest/selector"
	"moltbook-digest/state"
)

const (
	defaultHotCount     = 200
	defaultNewCount     = 400
	defaultTopMatched   = 10
	defaultTopFallback  = 6
	defaultSnapMatched  = 30
	defaultSnapFallback = 10
	defaultSnapshotPath = "moltbook-candidates.json"
)

// FeedClient fetches posts from the Moltbook feed.
type FeedClient interface {
	FetchPosts(ctx context.Context, sort string, want int) ([]moltbook.Post, error)
}

// SeenStore persists which posts have already been surfaced.
type SeenStore interface {
	Load() (*state.State, error)
	Save(st *state.State) error
}

// DigestWriter appends a rendered section to the dated report file.
type DigestWriter interface {
	Append(now time.Time, header, section string) (string, error)
}

// SnapshotWriter writes the candidates snapshot document.
type SnapshotWriter interface {
	Write(path string, snap report.Snapshot) (string, error)
}

// Excerpter fetches readable text for link-only posts.
type Excerpter interface {
	Excerpt(ctx context.Context, url string) (string, error)
}

// NoticePost is one selected post in a run notice.
type NoticePost struct {
	Title string
	URL   string
	Score int
}

// Notice summarizes a completed digest run for notification.
type Notice struct {
	GeneratedAt time.Time
	ReportPath  string
	Fallback    bool
	Posts       []NoticePost
}

// Notifier delivers a run notice.
type Notifier interface {
	SendDigest(ctx context.Context, notice *Notice) error
}

// Runner orchestrates the digest workflow.
type Runner struct {
	client    FeedClient
	store     SeenStore
	writer    DigestWriter
	snapshots SnapshotWriter
	excerpter Excerpter
	notifier  Notifier

	lexicon  scorer.Lexicon
	renderer *render.Renderer

	hotCount     int
	newCount     int
	topMatched   int
	topFallback  int
	snapMatched  int
	snapFallback int
	filterSeen   bool

	location *time.Location
	tzLabel  string

	snapshotPath string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLexicon sets the scoring lexicon.
func WithLexicon(lex scorer.Lexicon) Option {
	return func(r *Runner) {
		r.lexicon = lex
	}
}

// WithRenderer sets the entry renderer.
func WithRenderer(ren *render.Renderer) Option {
	return func(r *Runner) {
		r.renderer = ren
	}
}

// WithCounts sets how many hot and new posts to fetch.
func WithCounts(hotCount, newCount int) Option {
	return func(r *Runner) {
		r.hotCount = hotCount
		r.newCount = newCount
	}
}

// WithTopLimits sets the matched cap and the zero-match fallback count.
func WithTopLimits(matched, fallback int) Option {
	return func(r *Runner) {
		r.topMatched = matched
		r.topFallback = fallback
	}
}

// WithSnapshotLimits sets the matched cap and fallback count for snapshots.
func WithSnapshotLimits(matched, fallback int) Option {
	return func(r *Runner) {
		r.snapMatched = matched
		r.snapFallback = fallback
	}
}

// WithFilterSeen drops already-seen posts before selection.
func WithFilterSeen(enabled bool) Option {
	return func(r *Runner) {
		r.filterSeen = enabled
	}
}

// WithLocation sets the timezone for timestamps and the heading label.
func WithLocation(loc *time.Location, label string) Option {
	return func(r *Runner) {
		r.location = loc
		r.tzLabel = label
	}
}

// WithExcerpter enables excerpt enrichment for link-only posts.
func WithExcerpter(e Excerpter) Option {
	return func(r *Runner) {
		r.excerpter = e
	}
}

// WithNotifier enables run notifications.
func WithNotifier(n Notifier) Option {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithSnapshotWriter sets the writer and output path for snapshots.
func WithSnapshotWriter(w SnapshotWriter, path string) Option {
	return func(r *Runner) {
		r.snapshots = w
		r.snapshotPath = path
	}
}

// NewRunner creates a new digest runner.
func NewRunner(client FeedClient, store SeenStore, writer DigestWriter, opts ...Option) *Runner {
	r := &Runner{
		client:       client,
		store:        store,
		writer:       writer,
		lexicon:      scorer.DefaultLexicon(),
		renderer:     render.NewRenderer(),
		hotCount:     defaultHotCount,
		newCount:     defaultNewCount,
		topMatched:   defaultTopMatched,
		topFallback:  defaultTopFallback,
		snapMatched:  defaultSnapMatched,
		snapFallback: defaultSnapFallback,
		location:     time.Local,
		tzLabel:      "Asia/Taipei",
		snapshotPath: defaultSnapshotPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one digest cycle: fetch, select, render, append, persist.
// Returns the report file path.
func (r *Runner) Run(ctx context.Context) (string, error) {
	now := time.Now().In(r.location)

	slog.Info("starting digest run", "hot_count", r.hotCount, "new_count", r.newCount)

	// Step 1: Fetch both feed orderings
	hot, err := r.client.FetchPosts(ctx, "hot", r.hotCount)
	if err != nil {
		return "", fmt.Errorf("fetch hot posts: %w", err)
	}
	fresh, err := r.client.FetchPosts(ctx, "new", r.newCount)
	if err != nil {
		return "", fmt.Errorf("fetch new posts: %w", err)
	}

	merged := moltbook.Merge(hot, fresh)
	slog.Info("fetched posts", "hot", len(hot), "new", len(fresh), "unique", len(merged))

	// Step 2: Load seen state (a bad state file resets history, never aborts)
	st, err := r.store.Load()
	if err != nil {
		slog.Warn("failed to load state, starting fresh", "error", err)
	}

	// Step 3: Select top candidates
	selected, fallback := selector.Select(merged, r.lexicon, selector.Options{
		TopMatched:  r.topMatched,
		TopFallback: r.topFallback,
		FilterSeen:  r.filterSeen,
		Seen:        st.Has,
	})
	slog.Info("selected posts", "count", len(selected), "fallback", fallback)

	// Step 4: Enrich link-only posts with excerpts
	if r.excerpter != nil {
		r.enrich(ctx, selected)
	}

	// Step 5: Render and append the digest section
	entries := make([]string, len(selected))
	for i, sp := range selected {
		entries[i] = r.renderer.Entry(sp.Post)
	}

	header := render.Header(now.Format("2006-01-02"))
	section := render.Section(now, r.tzLabel, r.hotCount, r.newCount, entries)

	path, err := r.writer.Append(now, header, section)
	if err != nil {
		return "", fmt.Errorf("append digest: %w", err)
	}
	slog.Info("digest appended", "path", path, "posts", len(selected))

	// Step 6: Mark every fetched post as seen and persist
	for _, p := range merged {
		st.Add(p.ID)
	}
	st.LastRunAt = now.Format(time.RFC3339)
	if err := r.store.Save(st); err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}

	// Step 7: Notify, if configured
	if r.notifier != nil {
		notice := &Notice{
			GeneratedAt: now,
			ReportPath:  path,
			Fallback:    fallback,
		}
		for _, sp := range selected {
			notice.Posts = append(notice.Posts, NoticePost{
				Title: sp.Post.Title,
				URL:   moltbook.PostURL(sp.Post.ID),
				Score: sp.Score,
			})
		}
		if err := r.notifier.SendDigest(ctx, notice); err != nil {
			slog.Warn("failed to send digest notification", "error", err)
		}
	}

	slog.Info("digest run complete", "path", path, "seen_total", st.Len())
	return path, nil
}

// Snapshot fetches and selects candidates, then writes them as JSON. Digest
// files and seen state are not touched. Returns the snapshot path.
func (r *Runner) Snapshot(ctx context.Context) (string, error) {
	if r.snapshots == nil {
		return "", fmt.Errorf("snapshot writer not set")
	}

	slog.Info("starting snapshot run", "hot_count", r.hotCount, "new_count", r.newCount)

	hot, err := r.client.FetchPosts(ctx, "hot", r.hotCount)
	if err != nil {
		return "", fmt.Errorf("fetch hot posts: %w", err)
	}
	fresh, err := r.client.FetchPosts(ctx, "new", r.newCount)
	if err != nil {
		return "", fmt.Errorf("fetch new posts: %w", err)
	}

	merged := moltbook.Merge(hot, fresh)
	slog.Info("fetched posts", "hot", len(hot), "new", len(fresh), "unique", len(merged))

	selected, fallback := selector.Select(merged, r.lexicon, selector.Options{
		TopMatched:  r.snapMatched,
		TopFallback: r.snapFallback,
	})
	slog.Info("selected snapshot candidates", "count", len(selected), "fallback", fallback)

	posts := make([]moltbook.Post, len(selected))
	for i, sp := range selected {
		posts[i] = sp.Post
	}

	snap := report.Snapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Counts: report.SnapshotCounts{
			Hot:      len(hot),
			New:      len(fresh),
			Unique:   len(merged),
			Selected: len(selected),
		},
		Posts: posts,
	}

	path, err := r.snapshots.Write(r.snapshotPath, snap)
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	slog.Info("snapshot written", "path", path, "posts", len(posts))
	return path, nil
}

// enrich replaces empty content on link-only posts with scraped excerpts.
func (r *Runner) enrich(ctx context.Context, selected []scorer.ScoredPost) {
	for i := range selected {
		p := &selected[i].Post
		if p.URL == "" || strings.TrimSpace(p.Content) != "" {
			continue
		}
		text, err := r.excerpter.Excerpt(ctx, p.URL)
		if err != nil {
			slog.Warn("excerpt failed, keeping original content", "url", p.URL, "error", err)
			continue
		}
		if text != "" {
			p.Content = text
		}
	}
}
