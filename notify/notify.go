package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// PostLine is one selected post in a digest message.
type PostLine struct {
	Title string
	URL   string
	Score int
}

// DigestMessage holds the outcome of a digest run for delivery.
type DigestMessage struct {
	GeneratedAt time.Time
	ReportPath  string
	Fallback    bool
	Posts       []PostLine
}

// Notifier mirrors digest results to a Telegram chat.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a Telegram notifier for the given chat.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// SendDigest delivers a formatted digest summary to the configured chat.
func (n *Notifier) SendDigest(ctx context.Context, msg DigestMessage) error {
	m := tgbotapi.NewMessage(n.chatID, FormatDigestMessage(msg))
	m.ParseMode = tgbotapi.ModeHTML
	m.DisableWebPagePreview = true

	if _, err := n.bot.Send(m); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatDigestMessage renders a digest summary as Telegram HTML.
func FormatDigestMessage(msg DigestMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📬 <b>Moltbook 精選 %s %s</b>\n",
		msg.GeneratedAt.Format("2006-01-02"), msg.GeneratedAt.Format("15:04"))
	if msg.Fallback {
		b.WriteString("（無關鍵字命中，改列最新貼文）\n")
	}
	b.WriteString("\n")

	if len(msg.Posts) == 0 {
		b.WriteString("本輪沒有精選貼文。\n")
	}
	for i, p := range msg.Posts {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = "(no title)"
		}
		fmt.Fprintf(&b, "%d. <a href=\"%s\">%s</a>（%d 分）\n",
			i+1, p.URL, html.EscapeString(title), p.Score)
	}

	fmt.Fprintf(&b, "\n報告：%s", msg.ReportPath)
	return b.String()
}
