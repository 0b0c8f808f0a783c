// Package fetch is the shared outbound HTTP client for board fetchers:
// per-host rate limiting plus a fixed timeout and User-Agent, so no single
// board gets hammered when several sources share a host.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const userAgent = "JobScout/1.0 (+local)"

type Client struct {
	hc *http.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewClient(reqPerSec float64, burst int, timeout time.Duration) *Client {
	if reqPerSec <= 0 {
		reqPerSec = 1.0
	}
	if burst <= 0 {
		burst = 1
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		hc:       &http.Client{Timeout: timeout},
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(reqPerSec),
		burst:    burst,
	}
}

// Get waits on the target host's limiter, then performs the request.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.wait(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("get %s: status %d", rawURL, res.StatusCode)
	}
	return res, nil
}

func (c *Client) wait(ctx context.Context, rawURL string) error {
	host := "_"
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return c.limiterFor(host).Wait(ctx)
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lim, ok := c.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(c.rps, c.burst)
	c.limiters[host] = lim
	return lim
}
