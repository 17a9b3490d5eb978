package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Placeholder credentials from the sample config. Validate refuses to start
// while the API pair is still set to these.
const (
	PlaceholderUsername = "YOUR_USERNAME"
	PlaceholderPassword = "YOUR_PASSWORD"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL  string `yaml:"base_url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"api"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		Silent   bool   `yaml:"silent"`
	} `yaml:"telegram"`
	HTTP struct {
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		MaxRetries     int     `yaml:"max_retries"`
		BackoffSeconds float64 `yaml:"backoff_seconds"`
	} `yaml:"http"`
	Schedule struct {
		IntervalSeconds   int    `yaml:"interval_seconds"`
		Cron              string `yaml:"cron"`
		RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
		OnceMaxAttempts   int    `yaml:"once_max_attempts"`
	} `yaml:"schedule"`
	Pairlist struct {
		Include  bool   `yaml:"include"`
		Limit    int    `yaml:"limit"`
		Heading  string `yaml:"heading"`
		Style    string `yaml:"style"`
		Columns  int    `yaml:"columns"`
		ColWidth int    `yaml:"col_width"`
	} `yaml:"pairlist"`
}

// Load starts from defaults, then merges the YAML file and environment
// variable overrides on top. Defaults come first so an explicit zero in the
// file or environment (e.g. REPORT_HTTP_MAX_RETRIES=0) is honored. A
// missing file is fine; everything can come from the environment
// (container usage).
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FREQTRADE_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("FREQTRADE_API_USERNAME"); v != "" {
		cfg.API.Username = v
	}
	if v := os.Getenv("FREQTRADE_API_PASSWORD"); v != "" {
		cfg.API.Password = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := firstEnv("TELEGRAM_SILENT", "TELEGRAM_DISABLE_NOTIFICATION"); v != "" {
		cfg.Telegram.Silent = parseBool(v)
	}
	if v := os.Getenv("REPORT_INTERVAL_SECONDS"); v != "" {
		setInt(&cfg.Schedule.IntervalSeconds, v)
	}
	if v := os.Getenv("REPORT_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("REPORT_HTTP_TIMEOUT"); v != "" {
		setInt(&cfg.HTTP.TimeoutSeconds, v)
	}
	if v := os.Getenv("REPORT_HTTP_MAX_RETRIES"); v != "" {
		setInt(&cfg.HTTP.MaxRetries, v)
	}
	if v := os.Getenv("REPORT_HTTP_BACKOFF"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HTTP.BackoffSeconds = f
		}
	}
	if v := os.Getenv("REPORT_RETRY_DELAY_SECONDS"); v != "" {
		setInt(&cfg.Schedule.RetryDelaySeconds, v)
	}
	if v := os.Getenv("REPORT_ONCE_MAX_ATTEMPTS"); v != "" {
		setInt(&cfg.Schedule.OnceMaxAttempts, v)
	}
	if v := os.Getenv("REPORT_INCLUDE_PAIRLIST"); v != "" {
		cfg.Pairlist.Include = parseBool(v)
	}
	if v := os.Getenv("REPORT_PAIRLIST_LIMIT"); v != "" {
		setInt(&cfg.Pairlist.Limit, v)
	}
	if v := os.Getenv("REPORT_PAIRLIST_HEADING"); v != "" {
		cfg.Pairlist.Heading = v
	}
	if v := os.Getenv("REPORT_PAIRLIST_STYLE"); v != "" {
		cfg.Pairlist.Style = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("REPORT_PAIRLIST_COLUMNS"); v != "" {
		setInt(&cfg.Pairlist.Columns, v)
	}
	if v := os.Getenv("REPORT_PAIRLIST_COLWIDTH"); v != "" {
		setInt(&cfg.Pairlist.ColWidth, v)
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:8080/api/v1"
	cfg.API.Username = PlaceholderUsername
	cfg.API.Password = PlaceholderPassword
	cfg.Telegram.BotToken = "YOUR_TELEGRAM_BOT_TOKEN"
	cfg.Telegram.ChatID = "YOUR_TELEGRAM_CHAT_ID"
	cfg.HTTP.TimeoutSeconds = 15
	cfg.HTTP.MaxRetries = 3
	cfg.HTTP.BackoffSeconds = 1
	cfg.Schedule.IntervalSeconds = 1800
	cfg.Schedule.RetryDelaySeconds = 10
	cfg.Schedule.OnceMaxAttempts = 6
	cfg.Pairlist.Limit = 25
	cfg.Pairlist.Heading = "Pairlist"
	cfg.Pairlist.Style = "list"
	cfg.Pairlist.Columns = 3
	cfg.Pairlist.ColWidth = 18
	return cfg
}

// Validate rejects placeholder API credentials before any network activity.
// Telegram placeholders are checked at send time instead, so fetch-only
// debugging still works.
func (c *Config) Validate() error {
	if strings.Contains(c.API.Username, PlaceholderUsername) || strings.Contains(c.API.Password, PlaceholderPassword) {
		return fmt.Errorf("api credentials placeholders detected, configure REST auth first")
	}
	return nil
}

// HTTPTimeout returns the per-request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Backoff returns the initial retry delay.
func (c *Config) Backoff() time.Duration {
	return time.Duration(c.HTTP.BackoffSeconds * float64(time.Second))
}

// Interval returns the continuous-mode report cadence.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Schedule.IntervalSeconds) * time.Second
}

// RetryDelay returns the wait between failed cycles.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Schedule.RetryDelaySeconds) * time.Second
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func setInt(dst *int, v string) {
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
