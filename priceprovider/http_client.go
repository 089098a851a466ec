package priceprovider

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// StatusHandler receives the outcome of each HTTP request
type StatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
}

// ClientOptions configures the shared provider HTTP client
type ClientOptions struct {
	// RequestTimeout is the total request timeout including reading the response
	RequestTimeout time.Duration
	// ConnectionTimeout bounds connection establishment
	ConnectionTimeout time.Duration
	// RateLimitPerMinute limits outbound requests (0 disables limiting)
	RateLimitPerMinute int
}

// DefaultClientOptions returns the default provider client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		RequestTimeout:    10 * time.Second,
		ConnectionTimeout: 10 * time.Second,
	}
}

// HTTPClient executes provider requests with a bounded timeout, optional
// rate limiting and status reporting. There is no internal retry: a failed
// request is a soft failure for the owning provider and the resolver's
// fallback chain moves on.
type HTTPClient struct {
	client        *http.Client
	limiter       *rate.Limiter
	statusHandler StatusHandler
}

// NewHTTPClient creates a provider HTTP client with the given options
func NewHTTPClient(opts ClientOptions, handler StatusHandler) *HTTPClient {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	var limiter *rate.Limiter
	if opts.RateLimitPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RateLimitPerMinute)/60.0), opts.RateLimitPerMinute)
	}

	return &HTTPClient{
		client:        client,
		limiter:       limiter,
		statusHandler: handler,
	}
}

// Do executes the request and returns the response body on HTTP 200
func (c *HTTPClient) Do(req *http.Request) ([]byte, time.Duration, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			c.report("error")
			return nil, 0, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	requestStart := time.Now()
	resp, err := c.client.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		c.report("error")
		return nil, requestDuration, fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.report("bad_status")
		return nil, requestDuration, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.report("error")
		return nil, requestDuration, fmt.Errorf("error reading response: %w", err)
	}

	c.report("success")
	return body, requestDuration, nil
}

func (c *HTTPClient) report(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}
