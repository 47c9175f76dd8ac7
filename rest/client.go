// Package rest is the shared HTTP getter behind the Midgard, Thornode and Viewblock clients.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client issues rate limited GET requests against one upstream and decodes JSON responses.
type Client struct {
	BaseURL      string
	Headers      map[string]string
	RateLimiter  *rate.Limiter
	MaxRetries   int
	RetryMaxWait time.Duration
	HTTPClient   *http.Client
	Logger       zerolog.Logger
}

type Options struct {
	RequestsPerSecond float64
	MaxRetries        int
	RetryMaxWait      time.Duration
	Timeout           time.Duration
	Headers           map[string]string
}

func NewClient(baseURL string, opts Options, logger zerolog.Logger) *Client {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryMaxWait == 0 {
		opts.RetryMaxWait = 30 * time.Second
	}

	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Headers:      opts.Headers,
		RateLimiter:  rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		MaxRetries:   opts.MaxRetries,
		RetryMaxWait: opts.RetryMaxWait,
		HTTPClient:   &http.Client{Timeout: opts.Timeout},
		Logger:       logger,
	}
}

// StatusError is returned for any non 200 response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error getting response for endpoint %s: Status %s Body %s", e.Endpoint, e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// GetJSON requests BaseURL+endpoint with the query and decodes the body into result.
// Client errors (4xx) are returned immediately, everything else is retried with an incremental backoff.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	requestURL := c.BaseURL + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * time.Second
			if wait > c.RetryMaxWait {
				wait = c.RetryMaxWait
			}
			c.Logger.Warn().Err(lastErr).Str("endpoint", endpoint).Int("attempt", attempt).Msg("Retrying request")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		lastErr = c.get(ctx, endpoint, requestURL, result)
		if lastErr == nil {
			return nil
		}

		var statusErr *StatusError
		if errors.As(lastErr, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 && statusErr.StatusCode != http.StatusTooManyRequests {
			return lastErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return lastErr
}

func (c *Client) get(ctx context.Context, endpoint, requestURL string, result interface{}) error {
	if err := c.RateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}

	c.Logger.Debug().Str("url", requestURL).Msg("GET")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	err = checkResponseErrorCode(endpoint, resp)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, result)
}

func checkResponseErrorCode(requestEndpoint string, resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{
			Endpoint:   requestEndpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return nil
}
