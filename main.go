package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"moltbook-digest/config"
	"moltbook-digest/digest"
	"moltbook-digest/excerpt"
	"moltbook-digest/moltbook"
	"moltbook-digest/notify"
	"moltbook-digest/report"
	"moltbook-digest/scheduler"
	"moltbook-digest/scorer"
	"moltbook-digest/state"
)

func main() {
	// .env is optional; the real environment wins
	_ = godotenv.Load()

	snapshotMode := flag.Bool("snapshot", false, "write the candidates snapshot instead of a digest")
	flag.Parse()

	// Structured logging goes to stderr; stdout carries only result paths
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	configPath := config.GetConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	setupLogging(cfg)
	slog.Info("config loaded", "path", configPath)

	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		slog.Error("failed to resolve API key", "error", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("failed to load timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	runner := buildRunner(cfg, apiKey, loc)
	ctx := context.Background()

	switch {
	case *snapshotMode:
		path, err := runner.Snapshot(ctx)
		if err != nil {
			slog.Error("snapshot run failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(path)
	case len(cfg.DigestTimes) > 0:
		runDaemon(cfg, runner)
	default:
		path, err := runner.Run(ctx)
		if err != nil {
			slog.Error("digest run failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(path)
	}
}

func setupLogging(cfg *config.Config) {
	var w io.Writer = os.Stderr
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stderr, rotator)
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveAPIKey prefers the environment over the credentials file.
func resolveAPIKey(cfg *config.Config) (string, error) {
	if key := os.Getenv("MOLTBOOK_API_KEY"); key != "" {
		return key, nil
	}
	return moltbook.LoadCredentials(cfg.CredentialsPath)
}

func buildRunner(cfg *config.Config, apiKey string, loc *time.Location) *digest.Runner {
	client := moltbook.NewClient(
		apiKey,
		moltbook.WithBaseURL(cfg.APIBaseURL),
		moltbook.WithTimeout(time.Duration(cfg.FetchTimeoutSecs)*time.Second),
		moltbook.WithPageSize(cfg.PageSize),
		moltbook.WithMaxPages(cfg.MaxPages),
		moltbook.WithRetries(cfg.FetchRetries),
	)

	store := state.NewStore(cfg.StatePath, state.WithMaxSeen(cfg.MaxSeen))
	writer := report.NewWriter(cfg.ReportDir)

	lexicon := scorer.DefaultLexicon()
	if len(cfg.Keywords) > 0 {
		lexicon = scorer.NewLexicon(cfg.Keywords)
	}

	opts := []digest.Option{
		digest.WithLexicon(lexicon),
		digest.WithCounts(cfg.HotCount, cfg.NewCount),
		digest.WithTopLimits(cfg.TopMatched, cfg.TopFallback),
		digest.WithSnapshotLimits(cfg.SnapshotMatched, cfg.SnapshotFallback),
		digest.WithFilterSeen(cfg.FilterSeen),
		digest.WithLocation(loc, cfg.Timezone),
		digest.WithSnapshotWriter(snapshotWriter{}, cfg.SnapshotPath),
	}

	if cfg.EnrichExcerpts {
		fetcher := excerpt.NewFetcher(
			excerpt.WithTimeout(time.Duration(cfg.ExcerptTimeoutSecs)*time.Second),
			excerpt.WithMaxChars(cfg.ExcerptMaxChars),
		)
		opts = append(opts, digest.WithExcerpter(fetcher))
		slog.Info("excerpt enrichment enabled", "timeout_secs", cfg.ExcerptTimeoutSecs)
	}

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			slog.Warn("failed to initialize telegram notifier, continuing without", "error", err)
		} else {
			opts = append(opts, digest.WithNotifier(&notifierAdapter{notifier}))
			slog.Info("telegram notifications enabled", "chat_id", cfg.TelegramChatID)
		}
	}

	return digest.NewRunner(client, store, writer, opts...)
}

func runDaemon(cfg *config.Config, runner *digest.Runner) {
	sched, err := scheduler.NewScheduler(cfg.Timezone)
	if err != nil {
		slog.Error("failed to initialize scheduler", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	if err := sched.Schedule(cfg.DigestTimes, func() {
		if _, err := runner.Run(context.Background()); err != nil {
			slog.Error("digest run failed", "error", err)
		}
	}); err != nil {
		slog.Error("failed to schedule digest", "error", err)
		os.Exit(1)
	}

	sched.Start()
	defer sched.Stop()
	slog.Info("digest scheduled", "times", cfg.DigestTimes, "timezone", cfg.Timezone)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	slog.Info("received shutdown signal", "signal", sig)
}

// Adapter types to bridge between package APIs and the digest package interfaces

type snapshotWriter struct{}

func (snapshotWriter) Write(path string, snap report.Snapshot) (string, error) {
	return report.WriteSnapshot(path, snap)
}

type notifierAdapter struct {
	notifier *notify.Notifier
}

func (n *notifierAdapter) SendDigest(ctx context.Context, notice *digest.Notice) error {
	msg := notify.DigestMessage{
		GeneratedAt: notice.GeneratedAt,
		ReportPath:  notice.ReportPath,
		Fallback:    notice.Fallback,
	}
	for _, p := range notice.Posts {
		msg.Posts = append(msg.Posts, notify.PostLine{
			Title: p.Title,
			URL:   p.URL,
			Score: p.Score,
		})
	}
	return n.notifier.SendDigest(ctx, msg)
}
