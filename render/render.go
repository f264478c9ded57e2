package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"moltbook-digest/moltbook"
)

const maxSnippetRunes = 260

var (
	cjkRE        = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// HintProvider produces an optional Chinese summary line for a post. When ok
// is false the cleaned snippet is used as-is.
type HintProvider interface {
	Hint(p moltbook.Post, snippet string) (hint string, ok bool)
}

// CJKHint is the default HintProvider. Content that already contains CJK is
// left alone; anything else gets a labelled restatement of title and snippet.
// A heuristic placeholder, not translation.
type CJKHint struct{}

func (CJKHint) Hint(p moltbook.Post, snippet string) (string, bool) {
	if hasCJK(p.Content) {
		return "", false
	}
	return "主題：" + displayTitle(p) + "。重點（原文摘錄）：" + snippet, true
}

// Renderer formats selected posts into digest text blocks.
type Renderer struct {
	hint  HintProvider
	ideas IdeaProvider
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHintProvider replaces the summary hint step.
func WithHintProvider(h HintProvider) Option {
	return func(r *Renderer) {
		r.hint = h
	}
}

// WithIdeaProvider replaces the suggestion step.
func WithIdeaProvider(p IdeaProvider) Option {
	return func(r *Renderer) {
		r.ideas = p
	}
}

// NewRenderer creates a Renderer with the heuristic default providers.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		hint:  CJKHint{},
		ideas: KeywordIdeas{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Entry renders one selected post as a digest list block: title, links,
// Chinese summary, idea bullets, and a copy-pasteable task prompt.
func (r *Renderer) Entry(p moltbook.Post) string {
	title := displayTitle(p)
	permalink := moltbook.PostURL(p.ID)
	snippet := Snippet(p.Content)

	summary := snippet
	if hint, ok := r.hint.Hint(p, snippet); ok {
		summary = hint
	}

	lines := []string{
		"- **" + title + "**",
		"  - 連結：" + permalink,
	}
	if p.URL != "" {
		lines = append(lines, "  - 外部連結："+p.URL)
	}
	lines = append(lines, "  - 中文摘要："+summary)

	lines = append(lines, "  - 可直接用的 idea（Clawdbot / 工作流）：")
	for i, idea := range r.ideas.Ideas(p) {
		lines = append(lines, fmt.Sprintf("    %d. %s", i+1, idea))
	}

	lines = append(lines,
		"  - 可複製給 molt 的任務（直接貼這段我就會做）：",
		"    ```",
		"    請閱讀下面這篇 Moltbook 貼文，並用繁體中文輸出：",
		"    1) 5–8 點中文重點摘要（偏研究/可執行）",
		"    2) 3 個可以落地到我現有 Clawdbot 的自動化/工作流 idea（最好能接 cron + git）",
		"    3) 若要實作其中 1 個 idea：給我具體步驟/檔案/cron 設定草案",
		"",
		"    Moltbook 連結："+permalink,
	)
	if p.URL != "" {
		lines = append(lines, "    外部連結："+p.URL)
	}
	lines = append(lines, "    ```")

	return strings.Join(lines, "\n")
}

// Header returns the one-time digest file header for a date (YYYY-MM-DD).
func Header(day string) string {
	return "# Moltbook 精選點子（" + day + "）\n\n" +
		"偏好：moltbot/clawdbot、財經/市場、AI 應用、K8s、Storage。\n\n"
}

// Section renders one timestamped digest section. Entry blocks are separated
// by blank lines; an empty entry list produces the no-match placeholder.
func Section(now time.Time, tzLabel string, hotCount, newCount int, entries []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s %s (%s)\n\n", now.Format("2006-01-02"), now.Format("15:04"), tzLabel)
	fmt.Fprintf(&b, "本輪精選（來源：熱門前%d + 最新%d；已篩選/摘要/給可落地點子）：\n\n", hotCount, newCount)

	if len(entries) == 0 {
		b.WriteString("- （本輪沒有找到明顯相關的貼文；可能需要擴大關鍵字或改抓特定 submolt。）\n")
	} else {
		b.WriteString(strings.Join(entries, "\n\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// Snippet collapses whitespace runs to single spaces and truncates to 260
// runes, marking longer content with an ellipsis.
func Snippet(content string) string {
	s := strings.TrimSpace(whitespaceRE.ReplaceAllString(content, " "))
	runes := []rune(s)
	if len(runes) > maxSnippetRunes {
		s = string(runes[:maxSnippetRunes]) + "…"
	}
	return s
}

func displayTitle(p moltbook.Post) string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "(no title)"
	}
	return title
}

func hasCJK(s string) bool {
	return cjkRE.MatchString(s)
}
