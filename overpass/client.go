package overpass

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

// Client is an HTTP client for an Overpass-style query endpoint. Transient
// failures (rate limiting, gateway timeouts, network errors) are retried with
// increasing backoff up to a fixed attempt cap; anything else fails
// immediately.
type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	log        *zap.Logger
}

// NewClient creates a client for the given endpoint. maxRetries bounds the
// number of attempts after the first.
func NewClient(endpoint string, timeout time.Duration, maxRetries int, log *zap.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		backoff:    2 * time.Second,
		log:        log,
	}
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Fetch posts the query and returns the raw response body.
func (c *Client) Fetch(ctx context.Context, query string) ([]byte, error) {
	wait := c.backoff
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("retrying overpass fetch",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", wait),
				zap.Error(lastErr))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			wait *= 2
		}

		body, err := c.post(ctx, query)
		if err == nil {
			return body, nil
		}
		lastErr = err
		var re *retryableError
		if !errors.As(err, &re) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("overpass fetch: retry budget exhausted: %w", lastErr)
}

func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &retryableError{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.endpoint)
		if retryableStatus(resp.StatusCode) {
			return nil, &retryableError{err: err}
		}
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// retryableError marks a failure the retry loop is allowed to absorb.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Decode parses a raw Overpass JSON response into the osm object model.
func Decode(raw []byte) (*osm.OSM, error) {
	var data osm.OSM
	if err := data.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}
	return &data, nil
}
