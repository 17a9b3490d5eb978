package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"FreqReporter/internal/extract"

	"github.com/avast/retry-go/v4"
)

// Client talks to the trading bot's REST API using HTTP basic auth. One
// client (and its underlying connection pool) is reused across report
// cycles; calls are strictly sequential.
type Client struct {
	baseURL  string
	username string
	password string
	retries  int
	backoff  time.Duration
	http     *http.Client
}

// New creates a Client. retries is the number of additional attempts after
// the first; backoff is the initial delay and doubles per attempt.
func New(baseURL, username, password string, timeout time.Duration, retries int, backoff time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		retries:  retries,
		backoff:  backoff,
		http:     &http.Client{Timeout: timeout},
	}
}

// Fetch GETs <base>/<endpoint> and decodes the JSON body. Transient
// failures (HTTP 429/5xx, connection errors, timeouts) are retried with
// exponential backoff before the last error is surfaced.
func (c *Client) Fetch(ctx context.Context, endpoint string) (any, error) {
	endpointURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	var payload any
	err := retry.Do(
		func() error {
			body, err := c.get(ctx, endpointURL)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.retries)+1),
		retry.Delay(c.backoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsTransient),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, endpointURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, URL: endpointURL, Body: truncate(string(body), 200)}
	}
	return body, nil
}

var (
	whitelistEndpoints = []string{"whitelist", "pairlist", "pairs"}
	whitelistKeys      = []string{"whitelist", "pairs", "pairlist"}
)

// FetchWhitelist resolves the bot's active pairlist, trying the known
// endpoint names in order and using the first that responds. Shape
// mismatches and fetch failures degrade to an empty list; the report simply
// omits the pairlist block instead of failing.
func (c *Client) FetchWhitelist(ctx context.Context) []string {
	for _, ep := range whitelistEndpoints {
		payload, err := c.Fetch(ctx, ep)
		if err != nil {
			log.Printf("[WARN] whitelist endpoint %q: %v", ep, err)
			continue
		}
		return parsePairlist(payload)
	}
	return nil
}

func parsePairlist(payload any) []string {
	switch data := payload.(type) {
	case []any:
		return stringifyAll(data)
	case map[string]any:
		for _, key := range whitelistKeys {
			if list, ok := data[key].([]any); ok {
				return stringifyAll(list)
			}
		}
		// Some bots nest the list under a non-standard key; take the first
		// array value, walking keys in sorted order for stability.
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := data[k].([]any); ok {
				return stringifyAll(list)
			}
		}
	}
	return nil
}

func stringifyAll(items []any) []string {
	pairs := make([]string, len(items))
	for i, it := range items {
		pairs[i] = extract.Stringify(it)
	}
	return pairs
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
