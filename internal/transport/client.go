// Package transport is the HTTP client for the remote lecture service.
// Every failure is classified into the engine's error taxonomy so
// callers can branch on category rather than matching message text.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quizsync/internal/domain"
)

const (
	subscriptionAddPath    = "/api/subscriptions/add"
	subscriptionRemovePath = "/api/subscriptions/remove"
	subscriptionListPath   = "/api/subscriptions/list"
	requestReviewPath      = "/api/stage/request-review"
)

// Config holds remote service configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	SyncTimeout    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client talks to the remote lecture service.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	syncTimeout    time.Duration
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		syncTimeout:    cfg.SyncTimeout,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "transport"),
	}
}

// GetJSON fetches a URL, expecting a JSON document back. Network
// failures are retried with exponential backoff; auth failures are not.
func (c *Client) GetJSON(ctx context.Context, rawURL string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.withRetry(ctx, rawURL, func() error {
		data, err := c.do(ctx, http.MethodGet, rawURL, nil)
		out = data
		return err
	})
	return out, err
}

// GetHTML fetches a URL, expecting HTML back.
func (c *Client) GetHTML(ctx context.Context, rawURL string) (string, error) {
	var out string
	err := c.withRetry(ctx, rawURL, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(rawURL), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return c.classifyTransport(rawURL, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return c.classifyTransport(rawURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			return c.classifyStatus(rawURL, resp.StatusCode, body)
		}
		out = string(body)
		return nil
	})
	return out, err
}

// PostJSON posts a JSON body and returns the JSON response. No retry:
// non-idempotent at the transport level, the caller decides.
func (c *Client) PostJSON(ctx context.Context, rawURL string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, payload)
}

// SyncLecture posts a lecture snapshot to its own URI and returns the
// authoritative merged record.
func (c *Client) SyncLecture(ctx context.Context, lec *domain.Lecture) (*domain.Lecture, error) {
	if c.syncTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.syncTimeout)
		defer cancel()
	}

	data, err := c.PostJSON(ctx, lec.URI, lec)
	if err != nil {
		return nil, err
	}

	var out domain.Lecture
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode lecture %s: %w", lec.URI, err)
	}
	return &out, nil
}

// SubscriptionAdd subscribes the student to a syllabus path.
func (c *Client) SubscriptionAdd(ctx context.Context, path string) error {
	_, err := c.PostJSON(ctx, subscriptionAddPath+"?path="+url.QueryEscape(path), struct{}{})
	return err
}

// SubscriptionRemove unsubscribes the student from a syllabus path.
func (c *Client) SubscriptionRemove(ctx context.Context, path string) error {
	_, err := c.PostJSON(ctx, subscriptionRemovePath+"?path="+url.QueryEscape(path), struct{}{})
	return err
}

// SubscriptionList fetches the authoritative subscriptions tree.
func (c *Client) SubscriptionList(ctx context.Context) (*domain.Subscription, error) {
	data, err := c.PostJSON(ctx, subscriptionListPath, struct{}{})
	if err != nil {
		return nil, err
	}
	var out domain.Subscription
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode subscriptions: %w", err)
	}
	return &out, nil
}

// RequestReview asks the server for material needing peer review.
// Returns nil when nothing is available.
func (c *Client) RequestReview(ctx context.Context, lecURI string) (*domain.Answer, error) {
	data, err := c.GetJSON(ctx, requestReviewPath+"?path="+url.QueryEscape(lecURI))
	if err != nil {
		return nil, err
	}
	var out domain.Answer
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode review allocation: %w", err)
	}
	if out.URI == "" {
		return nil, nil
	}
	return &out, nil
}

func (c *Client) withRetry(ctx context.Context, rawURL string, fn func() error) error {
	attempts := c.maxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		var netErr *domain.NetworkError
		if !errors.As(err, &netErr) || attempt == attempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"url", rawURL,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return &domain.NetworkError{URL: rawURL, Err: ctx.Err()}
		case <-time.After(backoff):
		}
	}
	return err
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(rawURL), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransport(rawURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransport(rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.classifyStatus(rawURL, resp.StatusCode, respBody)
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("got non-JSON response whilst fetching %s", rawURL)
	}
	return json.RawMessage(respBody), nil
}

func (c *Client) resolve(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return c.baseURL + rawURL
}

func (c *Client) classifyTransport(rawURL string, err error) error {
	timeout := false
	if errors.Is(err, context.DeadlineExceeded) {
		timeout = true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		timeout = true
	}
	return &domain.NetworkError{URL: rawURL, Timeout: timeout, Err: err}
}

func (c *Client) classifyStatus(rawURL string, status int, body []byte) error {
	message := serverMessage(body)

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &domain.AuthError{
			URL:              rawURL,
			TermsNotAccepted: strings.Contains(message, "not accepted terms"),
			Message:          message,
		}
	}
	if message != "" {
		return fmt.Errorf("fetch %s: %s (status %d)", rawURL, message, status)
	}
	return fmt.Errorf("fetch %s: unexpected status %d", rawURL, status)
}

// serverMessage extracts the error message from a JSON error response
// body, if there is one.
func serverMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Error.Message
}
