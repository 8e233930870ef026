package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 5 * time.Second

// Client represents the chat-service HTTP client.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	retries int
	backoff time.Duration
}

// New creates a new chat-service client with the same attempt semantics as
// the user-service client: timeout per attempt, retries on transient
// failures, doubling backoff.
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

// Exists reports whether the chat service confirms the chat exists.
// Fail-closed like userclient.Exists.
func (c *Client) Exists(ctx context.Context, chatID int64) bool {
	if chatID <= 0 {
		return false
	}

	url := fmt.Sprintf("%s/api/chats/%d/exists", c.baseURL, chatID)
	for attempt := 0; ; attempt++ {
		exists, retryable, err := c.tryExists(ctx, url)
		if err == nil {
			return exists
		}
		if !retryable || attempt >= c.retries {
			log.Warn().
				Err(err).
				Int64("chat_id", chatID).
				Int("attempts", attempt+1).
				Msg("Chat existence unconfirmed, treating chat as missing")
			return false
		}

		select {
		case <-time.After(c.backoff << attempt):
		case <-ctx.Done():
			return false
		}
	}
}

func (c *Client) tryExists(ctx context.Context, url string) (exists bool, retryable bool, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return false, false, fmt.Errorf("chat service request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, true, fmt.Errorf("chat service call: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var v bool
		if decErr := json.NewDecoder(resp.Body).Decode(&v); decErr != nil {
			return false, false, fmt.Errorf("chat service response decode: %w", decErr)
		}
		return v, false, nil
	case resp.StatusCode >= 500:
		return false, true, fmt.Errorf("chat service status %d", resp.StatusCode)
	default:
		return false, false, nil
	}
}

// CreateChat asks the chat service for a fresh chat and returns its id.
// Unlike the existence checks this is a mutating call, so it is attempted
// exactly once; retrying is the caller's decision. idempotencyKey lets the
// chat service deduplicate a replayed creation.
func (c *Client) CreateChat(ctx context.Context, idempotencyKey string) (int64, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/api/chats", nil)
	if err != nil {
		return 0, fmt.Errorf("chat service request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("chat service call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("chat service status %d: %s", resp.StatusCode, string(body))
	}

	var chatID int64
	if err := json.NewDecoder(resp.Body).Decode(&chatID); err != nil {
		return 0, fmt.Errorf("chat service response decode: %w", err)
	}
	if chatID <= 0 {
		return 0, fmt.Errorf("chat service returned invalid chat id %d", chatID)
	}

	log.Info().Int64("chat_id", chatID).Msg("Chat created")
	return chatID, nil
}

// DeleteChat removes a chat, compensating a creation whose follow-up work
// failed. A chat that is already gone is not an error.
func (c *Client) DeleteChat(ctx context.Context, chatID int64) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/chats/%d", c.baseURL, chatID)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("chat service request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("chat service call: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chat service status %d: %s", resp.StatusCode, string(body))
	}
}
