package notify

import (
	"strings"
	"testing"
	"time"
)

var testGeneratedAt = time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

func TestFormatDigestMessage(t *testing.T) {
	msg := DigestMessage{
		GeneratedAt: testGeneratedAt,
		ReportPath:  "reports/202608/08-25.md",
		Posts: []PostLine{
			{Title: "First post", URL: "https://www.moltbook.com/post/a1", Score: 12},
			{Title: "Second", URL: "https://www.moltbook.com/post/b2", Score: 3},
		},
	}

	got := FormatDigestMessage(msg)
	want := "📬 <b>Moltbook 精選 2026-08-25 09:00</b>\n" +
		"\n" +
		"1. <a href=\"https://www.moltbook.com/post/a1\">First post</a>（12 分）\n" +
		"2. <a href=\"https://www.moltbook.com/post/b2\">Second</a>（3 分）\n" +
		"\n" +
		"報告：reports/202608/08-25.md"
	if got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestFormatDigestMessageFallback(t *testing.T) {
	msg := DigestMessage{
		GeneratedAt: testGeneratedAt,
		ReportPath:  "reports/202608/08-25.md",
		Fallback:    true,
		Posts:       []PostLine{{Title: "Anything", URL: "https://www.moltbook.com/post/x", Score: 0}},
	}

	got := FormatDigestMessage(msg)
	if !strings.Contains(got, "（無關鍵字命中，改列最新貼文）") {
		t.Errorf("fallback note missing: %q", got)
	}
}

func TestFormatDigestMessageEmpty(t *testing.T) {
	msg := DigestMessage{
		GeneratedAt: testGeneratedAt,
		ReportPath:  "reports/202608/08-25.md",
	}

	got := FormatDigestMessage(msg)
	if !strings.Contains(got, "本輪沒有精選貼文。") {
		t.Errorf("empty note missing: %q", got)
	}
	if !strings.Contains(got, "報告：reports/202608/08-25.md") {
		t.Errorf("report path missing: %q", got)
	}
}

func TestFormatDigestMessageEscapesHTML(t *testing.T) {
	msg := DigestMessage{
		GeneratedAt: testGeneratedAt,
		Posts: []PostLine{
			{Title: "<script>alert('x')</script> & more", URL: "https://www.moltbook.com/post/a1", Score: 1},
		},
	}

	got := FormatDigestMessage(msg)
	if strings.Contains(got, "<script>") {
		t.Errorf("title not escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") || !strings.Contains(got, "&amp; more") {
		t.Errorf("escaped title missing: %q", got)
	}
}

func TestFormatDigestMessageBlankTitle(t *testing.T) {
	msg := DigestMessage{
		GeneratedAt: testGeneratedAt,
		Posts:       []PostLine{{Title: "  ", URL: "https://www.moltbook.com/post/a1", Score: 2}},
	}

	got := FormatDigestMessage(msg)
	if !strings.Contains(got, ">(no title)</a>") {
		t.Errorf("blank title not defaulted: %q", got)
	}
}
