package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api/v1" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Schedule.IntervalSeconds != 1800 {
		t.Errorf("interval = %d, want 1800", cfg.Schedule.IntervalSeconds)
	}
	if cfg.HTTP.TimeoutSeconds != 15 || cfg.HTTP.MaxRetries != 3 {
		t.Errorf("http defaults = %+v", cfg.HTTP)
	}
	if cfg.Schedule.RetryDelaySeconds != 10 || cfg.Schedule.OnceMaxAttempts != 6 {
		t.Errorf("schedule defaults = %+v", cfg.Schedule)
	}
	if cfg.Pairlist.Limit != 25 || cfg.Pairlist.Heading != "Pairlist" || cfg.Pairlist.Style != "list" {
		t.Errorf("pairlist defaults = %+v", cfg.Pairlist)
	}
	if cfg.Pairlist.Columns != 3 || cfg.Pairlist.ColWidth != 18 {
		t.Errorf("pairlist column defaults = %+v", cfg.Pairlist)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api:
  base_url: http://bot:8080/api/v1
  username: admin
  password: secret
telegram:
  bot_token: "123:abc"
  chat_id: "42"
pairlist:
  include: true
  style: columns
  limit: 10
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Username != "admin" || cfg.API.Password != "secret" {
		t.Errorf("api creds = %q/%q", cfg.API.Username, cfg.API.Password)
	}
	if !cfg.Pairlist.Include || cfg.Pairlist.Style != "columns" || cfg.Pairlist.Limit != 10 {
		t.Errorf("pairlist = %+v", cfg.Pairlist)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FREQTRADE_API_URL", "http://env:9090/api/v1")
	t.Setenv("REPORT_INTERVAL_SECONDS", "60")
	t.Setenv("TELEGRAM_SILENT", "yes")
	t.Setenv("REPORT_HTTP_BACKOFF", "0.5")
	t.Setenv("REPORT_PAIRLIST_STYLE", "COLUMNS")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://env:9090/api/v1" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Schedule.IntervalSeconds != 60 {
		t.Errorf("interval = %d", cfg.Schedule.IntervalSeconds)
	}
	if !cfg.Telegram.Silent {
		t.Error("silent not set from TELEGRAM_SILENT=yes")
	}
	if cfg.Backoff() != 500*time.Millisecond {
		t.Errorf("backoff = %v", cfg.Backoff())
	}
	if cfg.Pairlist.Style != "columns" {
		t.Errorf("style = %q, want lowercased", cfg.Pairlist.Style)
	}
}

func TestLoad_ExplicitZeroFromEnv(t *testing.T) {
	t.Setenv("REPORT_HTTP_MAX_RETRIES", "0")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.MaxRetries != 0 {
		t.Errorf("max retries = %d, want explicit 0 honored", cfg.HTTP.MaxRetries)
	}
}

func TestLoad_ExplicitZeroFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
http:
  max_retries: 0
schedule:
  retry_delay_seconds: 0
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.MaxRetries != 0 {
		t.Errorf("max retries = %d, want explicit 0 honored", cfg.HTTP.MaxRetries)
	}
	if cfg.Schedule.RetryDelaySeconds != 0 {
		t.Errorf("retry delay = %d, want explicit 0 honored", cfg.Schedule.RetryDelaySeconds)
	}
	// Untouched fields keep their defaults.
	if cfg.HTTP.TimeoutSeconds != 15 {
		t.Errorf("timeout = %d, want default 15", cfg.HTTP.TimeoutSeconds)
	}
}

func TestLoad_SilentFallbackVariable(t *testing.T) {
	t.Setenv("TELEGRAM_DISABLE_NOTIFICATION", "1")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Telegram.Silent {
		t.Error("silent not set from TELEGRAM_DISABLE_NOTIFICATION")
	}
}

func TestValidate_PlaceholderCredentials(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected placeholder credentials to fail validation")
	}

	cfg.API.Username = "admin"
	cfg.API.Password = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"1", "true", "YES", " on "}
	for _, v := range truthy {
		if !parseBool(v) {
			t.Errorf("parseBool(%q) = false, want true", v)
		}
	}
	falsy := []string{"", "0", "false", "off", "nope"}
	for _, v := range falsy {
		if parseBool(v) {
			t.Errorf("parseBool(%q) = true, want false", v)
		}
	}
}
