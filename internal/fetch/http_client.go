// FILE: internal/fetch/http_client.go
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"thainews/internal/logger"
)

// ClientOptions for the fetch client.
type ClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	// RetryMax is the number of retries after the first attempt. Zero disables retries.
	RetryMax int
}

// Client is a small wrapper around retryablehttp to provide timeouts and UA.
type Client struct {
	inner     *retryablehttp.Client
	userAgent string
}

// NewClient creates a new Client.
func NewClient(opts ClientOptions) *Client {
	r := retryablehttp.NewClient()
	r.RetryMax = opts.RetryMax
	r.HTTPClient.Timeout = opts.Timeout
	r.Logger = zapLeveled{}
	return &Client{inner: r, userAgent: opts.UserAgent}
}

// Get issues a GET bound to ctx. The caller owns the response body.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.inner.Do(req)
}

// GetBody fetches url and returns the body of a 2xx response.
func (c *Client) GetBody(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	resp, err := c.Get(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected HTTP status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// zapLeveled routes retryablehttp logs to the process logger.
type zapLeveled struct{}

func (zapLeveled) Error(msg string, kv ...interface{}) { logger.Log.Sugar().Errorw(msg, kv...) }
func (zapLeveled) Info(msg string, kv ...interface{})  { logger.Log.Sugar().Debugw(msg, kv...) }
func (zapLeveled) Debug(msg string, kv ...interface{}) { logger.Log.Sugar().Debugw(msg, kv...) }
func (zapLeveled) Warn(msg string, kv ...interface{})  { logger.Log.Sugar().Warnw(msg, kv...) }

var _ retryablehttp.LeveledLogger = zapLeveled{}
