package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Client wraps http.Client with rate limiting and retry on transient failures.
type Client struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	maxElapsed time.Duration
}

// Options configures a new Client.
type Options struct {
	Timeout        time.Duration
	RequestsPerMin int
	MaxElapsed     time.Duration
	Proxy          string
}

// New creates a rate-limited HTTP client.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerMin == 0 {
		opts.RequestsPerMin = 30
	}
	if opts.MaxElapsed == 0 {
		opts.MaxElapsed = 60 * time.Second
	}

	transport := &http.Transport{}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		Limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMin)), 1),
		maxElapsed: opts.MaxElapsed,
	}
}

// StatusError reports a non-200 response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Do performs the request with rate limiting and exponential-backoff retries.
// Client errors other than 429 are not retried.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.HTTPClient.Do(req.WithContext(ctx))
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusOK {
			return nil
		}
		resp.Body.Close()
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(statusErr)
		}
		return statusErr
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		return nil, err
	}
	return resp, nil
}
