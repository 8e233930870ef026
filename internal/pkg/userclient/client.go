package userclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 5 * time.Second

// Client represents the user-service HTTP client.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	retries int
	backoff time.Duration
}

// New creates a new user-service client. timeout bounds a single attempt,
// retries is the number of additional attempts on transient failures, and
// backoff is the initial delay between attempts (doubled each retry).
func New(baseURL string, timeout time.Duration, retries int, backoff time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: transport},
		timeout: timeout,
		retries: retries,
		backoff: backoff,
	}
}

// Exists reports whether the user service confirms the user exists.
// Fail-closed: a user whose existence cannot be confirmed (timeouts, network
// failures, 5xx after all retries) is reported as not existing. Callers get a
// boolean, never an error.
func (c *Client) Exists(ctx context.Context, userID int64) bool {
	if userID <= 0 {
		return false
	}

	url := fmt.Sprintf("%s/api/users/%d/exists", c.baseURL, userID)
	for attempt := 0; ; attempt++ {
		exists, retryable, err := c.tryExists(ctx, url)
		if err == nil {
			return exists
		}
		if !retryable || attempt >= c.retries {
			log.Warn().
				Err(err).
				Int64("user_id", userID).
				Int("attempts", attempt+1).
				Msg("User existence unconfirmed, treating user as missing")
			return false
		}

		select {
		case <-time.After(c.backoff << attempt):
		case <-ctx.Done():
			return false
		}
	}
}

// tryExists performs a single existence call. A definitive 4xx answer is not
// an error: the user does not exist. Network failures and 5xx are errors the
// caller may retry.
func (c *Client) tryExists(ctx context.Context, url string) (exists bool, retryable bool, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return false, false, fmt.Errorf("user service request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, true, fmt.Errorf("user service call: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var v bool
		if decErr := json.NewDecoder(resp.Body).Decode(&v); decErr != nil {
			return false, false, fmt.Errorf("user service response decode: %w", decErr)
		}
		return v, false, nil
	case resp.StatusCode >= 500:
		return false, true, fmt.Errorf("user service status %d", resp.StatusCode)
	default:
		return false, false, nil
	}
}
