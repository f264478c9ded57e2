package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	APIBaseURL         string         `yaml:"api_base_url"`
	CredentialsPath    string         `yaml:"credentials_path"`
	FetchTimeoutSecs   int            `yaml:"fetch_timeout_secs"`
	FetchRetries       int            `yaml:"fetch_retries"`
	PageSize           int            `yaml:"page_size"`
	MaxPages           int            `yaml:"max_pages"`
	HotCount           int            `yaml:"hot_count"`
	NewCount           int            `yaml:"new_count"`
	TopMatched         int            `yaml:"top_matched"`
	TopFallback        int            `yaml:"top_fallback"`
	FilterSeen         bool           `yaml:"filter_seen"`
	Keywords           map[string]int `yaml:"keywords"`
	ReportDir          string         `yaml:"report_dir"`
	StatePath          string         `yaml:"state_path"`
	MaxSeen            int            `yaml:"max_seen"`
	SnapshotPath       string         `yaml:"snapshot_path"`
	SnapshotMatched    int            `yaml:"snapshot_matched"`
	SnapshotFallback   int            `yaml:"snapshot_fallback"`
	Timezone           string         `yaml:"timezone"`
	DigestTimes        []string       `yaml:"digest_times"`
	EnrichExcerpts     bool           `yaml:"enrich_excerpts"`
	ExcerptTimeoutSecs int            `yaml:"excerpt_timeout_secs"`
	ExcerptMaxChars    int            `yaml:"excerpt_max_chars"`
	TelegramToken      string         `yaml:"telegram_token"`
	TelegramChatID     int64          `yaml:"telegram_chat_id"`
	LogLevel           string         `yaml:"log_level"`
	LogFile            string         `yaml:"log_file"`
	LogMaxSizeMB       int            `yaml:"log_max_size_mb"`
	LogMaxBackups      int            `yaml:"log_max_backups"`
}

// digestTimeRegex validates HH:MM format with proper ranges.
var digestTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the config file path from environment or default.
func GetConfigPath() string {
	if path := os.Getenv("MOLTBOOK_DIGEST_CONFIG"); path != "" {
		return path
	}
	return "./config.yaml"
}

func applyDefaults(cfg *Config) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://www.moltbook.com/api/v1"
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = "secrets/moltbook.json"
	}
	if cfg.FetchTimeoutSecs == 0 {
		cfg.FetchTimeoutSecs = 30
	}
	if cfg.FetchRetries == 0 {
		cfg.FetchRetries = 3
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 50
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = 20
	}
	if cfg.HotCount == 0 {
		cfg.HotCount = 200
	}
	if cfg.NewCount == 0 {
		cfg.NewCount = 400
	}
	if cfg.TopMatched == 0 {
		cfg.TopMatched = 10
	}
	if cfg.TopFallback == 0 {
		cfg.TopFallback = 6
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "reports"
	}
	if cfg.StatePath == "" {
		cfg.StatePath = "state/moltbook-digest-state.json"
	}
	if cfg.MaxSeen == 0 {
		cfg.MaxSeen = 800
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = "moltbook-candidates.json"
	}
	if cfg.SnapshotMatched == 0 {
		cfg.SnapshotMatched = 30
	}
	if cfg.SnapshotFallback == 0 {
		cfg.SnapshotFallback = 10
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Taipei"
	}
	if cfg.ExcerptTimeoutSecs == 0 {
		cfg.ExcerptTimeoutSecs = 10
	}
	if cfg.ExcerptMaxChars == 0 {
		cfg.ExcerptMaxChars = 2000
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogMaxSizeMB == 0 {
		cfg.LogMaxSizeMB = 10
	}
	if cfg.LogMaxBackups == 0 {
		cfg.LogMaxBackups = 3
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	if statePath := os.Getenv("MOLTBOOK_STATE_PATH"); statePath != "" {
		cfg.StatePath = statePath
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
}

func validate(cfg *Config) error {
	if cfg.PageSize < 1 || cfg.PageSize > 50 {
		return fmt.Errorf("page_size must be between 1 and 50, got %d", cfg.PageSize)
	}
	if cfg.MaxPages < 1 {
		return fmt.Errorf("max_pages must be positive, got %d", cfg.MaxPages)
	}
	if cfg.HotCount < 0 || cfg.NewCount < 0 {
		return fmt.Errorf("hot_count and new_count must not be negative")
	}
	if cfg.TopMatched < 1 || cfg.TopFallback < 1 {
		return fmt.Errorf("top_matched and top_fallback must be positive")
	}
	if cfg.SnapshotMatched < 1 || cfg.SnapshotFallback < 1 {
		return fmt.Errorf("snapshot_matched and snapshot_fallback must be positive")
	}
	if cfg.MaxSeen < 1 {
		return fmt.Errorf("max_seen must be positive, got %d", cfg.MaxSeen)
	}
	for _, t := range cfg.DigestTimes {
		if !digestTimeRegex.MatchString(t) {
			return fmt.Errorf("digest_times entry must be in HH:MM format (00:00-23:59), got %q", t)
		}
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", cfg.LogLevel)
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return fmt.Errorf("telegram_chat_id is required when telegram_token is set")
	}
	return nil
}
