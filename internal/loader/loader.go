// Package loader retrieves quiz documents from local files or HTTP(S)
// sources. HTTP fetches retry transient failures with exponential backoff
// and jitter; file reads do not retry.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxDocumentSize caps how much of a document the loader will read.
const maxDocumentSize = 4 << 20

// RetryConfig configures retry behavior for transient HTTP failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry defaults used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// ErrHTTPStatus reports a non-success response for a document URL.
type ErrHTTPStatus struct {
	URL  string
	Code int
}

func (e *ErrHTTPStatus) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}

// retryable reports whether fetching again can plausibly succeed.
func (e *ErrHTTPStatus) retryable() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Loader reads quiz documents from disk or over HTTP.
type Loader struct {
	client *http.Client
	retry  RetryConfig
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient replaces the HTTP client, mainly for tests.
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.client.Timeout = d }
}

// WithRetry replaces the retry configuration.
func WithRetry(cfg RetryConfig) Option {
	return func(l *Loader) { l.retry = cfg }
}

// New builds a Loader with a 30 second request timeout and default retries.
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		retry:  DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load retrieves the document named by source. Sources with an http:// or
// https:// scheme are fetched; anything else is read as a local file path.
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	if isHTTP(source) {
		return l.fetch(ctx, source)
	}
	return readFile(source)
}

func isHTTP(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxDocumentSize))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

// fetch GETs the document, retrying transient failures up to MaxAttempts.
func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := range l.retry.MaxAttempts {
		body, err := l.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return "", err
		}

		// No sleep after the final attempt.
		if attempt == l.retry.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.backoff(attempt)):
		}
	}
	return "", fmt.Errorf("fetch document after %d attempts: %w", l.retry.MaxAttempts, lastErr)
}

func (l *Loader) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &ErrHTTPStatus{URL: url, Code: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// shouldRetry treats 5xx and 429 responses plus transport errors as
// transient. Other HTTP statuses and context errors are final.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var status *ErrHTTPStatus
	if errors.As(err, &status) {
		return status.retryable()
	}
	return true
}

// backoff computes the wait before the next attempt.
func (l *Loader) backoff(attempt int) time.Duration {
	wait := float64(l.retry.InitialWait) * math.Pow(l.retry.Multiplier, float64(attempt))
	if wait > float64(l.retry.MaxWait) {
		wait = float64(l.retry.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
