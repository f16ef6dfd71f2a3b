package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "Asia/Kolkata"
	configPathEnv    = "MARKET_RADAR_CONFIG"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
	sentimentKeyEnv  = "SENTIMENT_API_KEY"
	exportPathEnv    = "MARKET_RADAR_EXPORT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Universe      []string           `yaml:"universe"`
	Window        WindowConfig       `yaml:"window"`
	Scoring       ScoringConfig      `yaml:"scoring"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sentiment     SentimentConfig    `yaml:"sentiment"`
	Export        ExportConfig       `yaml:"export"`
}

// LoggingConfig selects handler level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WindowConfig bounds how far back news queries reach.
type WindowConfig struct {
	Days int `yaml:"days"`
}

// ScoringConfig carries the display knobs around the scoring engine. The
// weight and keyword tables themselves live in the scoring package.
type ScoringConfig struct {
	// Threshold is the minimum score an article needs to stay visible when
	// OnlyImpact is on; it is also the Medium-priority floor.
	Threshold  int  `yaml:"threshold"`
	OnlyImpact bool `yaml:"onlyImpact"`

	// Matching is "substring" (default, historical behavior) or "word".
	Matching string `yaml:"matching"`

	ShowSnippet bool `yaml:"showSnippet"`
}

// FetchConfig describes the news source fan-out.
type FetchConfig struct {
	Strategy string `yaml:"strategy"`
	Workers  int    `yaml:"workers"`
	Language string `yaml:"language"`
	Country  string `yaml:"country"`
}

// SchedulerConfig defines when refresh cycles run. An empty cron expression
// means a single run per invocation.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send digests.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SentimentConfig points at an optional remote analyzer; when InferenceURL
// is empty the local lexicon is used.
type SentimentConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// ExportConfig names the CSV destination; empty disables export.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// fileConfig mirrors Config for YAML decoding. The scoring knobs use pointer
// fields so an explicit false or zero in the file is distinguishable from an
// absent key and can override an enabled default.
type fileConfig struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Universe      []string           `yaml:"universe"`
	Window        WindowConfig       `yaml:"window"`
	Scoring       fileScoringConfig  `yaml:"scoring"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sentiment     SentimentConfig    `yaml:"sentiment"`
	Export        ExportConfig       `yaml:"export"`
}

type fileScoringConfig struct {
	Threshold   *int   `yaml:"threshold"`
	OnlyImpact  *bool  `yaml:"onlyImpact"`
	Matching    string `yaml:"matching"`
	ShowSnippet *bool  `yaml:"showSnippet"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg fileConfig
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Universe) == 0 {
		cfg.Universe = defaultConfig().Universe
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(sentimentKeyEnv); v != "" {
		c.Sentiment.APIKey = v
	}

	if v := os.Getenv(exportPathEnv); v != "" {
		c.Export.Path = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base Config, override fileConfig) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if len(override.Universe) > 0 {
		base.Universe = override.Universe
	}

	if override.Window.Days > 0 {
		base.Window.Days = override.Window.Days
	}

	if override.Scoring.Threshold != nil {
		base.Scoring.Threshold = *override.Scoring.Threshold
	}
	if override.Scoring.Matching != "" {
		base.Scoring.Matching = override.Scoring.Matching
	}
	if override.Scoring.OnlyImpact != nil {
		base.Scoring.OnlyImpact = *override.Scoring.OnlyImpact
	}
	if override.Scoring.ShowSnippet != nil {
		base.Scoring.ShowSnippet = *override.Scoring.ShowSnippet
	}

	if override.Fetch.Strategy != "" {
		base.Fetch.Strategy = override.Fetch.Strategy
	}
	if override.Fetch.Workers > 0 {
		base.Fetch.Workers = override.Fetch.Workers
	}
	if override.Fetch.Language != "" {
		base.Fetch.Language = override.Fetch.Language
	}
	if override.Fetch.Country != "" {
		base.Fetch.Country = override.Fetch.Country
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Sentiment.InferenceURL != "" {
		base.Sentiment.InferenceURL = override.Sentiment.InferenceURL
	}
	if override.Sentiment.APIKey != "" {
		base.Sentiment.APIKey = override.Sentiment.APIKey
	}

	if override.Export.Path != "" {
		base.Export.Path = override.Export.Path
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Universe: []string{
			"Reliance Industries",
			"HDFC Bank",
			"Infosys",
			"Tata Consultancy Services",
			"ICICI Bank",
			"State Bank of India",
			"Adani Enterprises",
			"Tata Motors",
			"Bharti Airtel",
			"Larsen & Toubro",
		},
		Window:  WindowConfig{Days: 7},
		Scoring: ScoringConfig{Threshold: 40, OnlyImpact: true, Matching: "substring", ShowSnippet: true},
		Fetch:   FetchConfig{Strategy: "googlenews", Workers: 8, Language: "en-IN", Country: "IN"},
		Scheduler: SchedulerConfig{
			CronExpression: "",
			Timezone:       defaultTimezone,
			location:       tz,
		},
		Notifications: NotificationConfig{Telegram: TelegramConfig{BotToken: "", ChatID: ""}},
		Sentiment:     SentimentConfig{InferenceURL: "", APIKey: ""},
		Export:        ExportConfig{Path: ""},
	}
}
