package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"FreqReporter/internal/client"

	"github.com/avast/retry-go/v4"
)

// Placeholder values shipped in sample configs. Sends are rejected before
// any network I/O while these are still set.
const (
	PlaceholderToken  = "YOUR_TELEGRAM_BOT_TOKEN"
	PlaceholderChatID = "YOUR_TELEGRAM_CHAT_ID"
)

// ErrPlaceholder reports unconfigured Telegram credentials.
var ErrPlaceholder = errors.New("telegram credentials placeholder detected")

const defaultAPIBase = "https://api.telegram.org"

// Telegram sends messages via the Telegram Bot API.
type Telegram struct {
	BotToken string
	ChatID   string
	Silent   bool
	Retries  int
	Backoff  time.Duration
	BaseURL  string // Telegram API base, overridable in tests
	Client   *http.Client
}

// NewTelegram creates a notifier. retries/backoff mirror the API client's
// transient-failure policy.
func NewTelegram(botToken, chatID string, silent bool, timeout time.Duration, retries int, backoff time.Duration) *Telegram {
	return &Telegram{
		BotToken: botToken,
		ChatID:   chatID,
		Silent:   silent,
		Retries:  retries,
		Backoff:  backoff,
		BaseURL:  defaultAPIBase,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Send posts a Markdown-formatted message to the configured chat. It fails
// fast, before any network call, when the token or chat id is still a
// placeholder.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if strings.Contains(t.BotToken, PlaceholderToken) {
		return fmt.Errorf("%w: configure telegram.bot_token", ErrPlaceholder)
	}
	if strings.Contains(t.ChatID, PlaceholderChatID) {
		return fmt.Errorf("%w: configure telegram.chat_id", ErrPlaceholder)
	}

	payload := map[string]any{
		"chat_id":              t.ChatID,
		"text":                 text,
		"parse_mode":           "Markdown",
		"disable_notification": t.Silent,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL(), t.BotToken)
	err = retry.Do(
		func() error { return t.post(ctx, apiURL, body) },
		retry.Context(ctx),
		retry.Attempts(uint(t.Retries)+1),
		retry.Delay(t.Backoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(client.IsTransient),
	)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (t *Telegram) post(ctx context.Context, apiURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		// URL left out of the error: it embeds the bot token.
		return &client.StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

func (t *Telegram) baseURL() string {
	if t.BaseURL != "" {
		return strings.TrimRight(t.BaseURL, "/")
	}
	return defaultAPIBase
}
